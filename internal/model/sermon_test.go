package model

import (
	"encoding/json"
	"errors"
	"testing"
)

func validOutline() *Outline {
	return &Outline{
		Thesis: "Deus nos chama a viver com propósito.",
		Points: []OutlinePoint{
			{Title: "Dependência", Summary: "Buscar direção em Deus."},
			{Title: "Prática", Summary: "Aplicar a Palavra no cotidiano."},
		},
		Illustration: "Um lampião numa noite escura.",
		References: []OutlineReference{
			{Reference: "Mateus 5:14-16", Note: "Iluminar o mundo."},
			{Reference: "Romanos 12:2", Note: "Renovação da mente."},
			{Reference: "Salmos 37:5", Note: "Confiança no Senhor."},
		},
		CallToAction: "Comprometa-se com a devoção diária.",
	}
}

func TestOutlineValidateAccepts(t *testing.T) {
	if err := validOutline().Validate(); err != nil {
		t.Fatalf("valid outline rejected: %v", err)
	}
}

func TestOutlineValidateRejects(t *testing.T) {
	cases := map[string]func(*Outline){
		"empty thesis":       func(o *Outline) { o.Thesis = "  " },
		"one point":          func(o *Outline) { o.Points = o.Points[:1] },
		"four points":        func(o *Outline) { o.Points = append(o.Points, o.Points[0], o.Points[0]) },
		"point without text": func(o *Outline) { o.Points[0].Summary = "" },
		"two references":     func(o *Outline) { o.References = o.References[:2] },
		"six references": func(o *Outline) {
			o.References = append(o.References, o.References[0], o.References[0], o.References[0])
		},
		"empty illustration": func(o *Outline) { o.Illustration = "" },
		"empty call":         func(o *Outline) { o.CallToAction = "" },
	}
	for name, mutate := range cases {
		o := validOutline()
		mutate(o)
		if err := o.Validate(); !errors.Is(err, ErrInvalidOutline) {
			t.Fatalf("%s: expected ErrInvalidOutline, got %v", name, err)
		}
	}
}

func TestParseOutlineRoundTrip(t *testing.T) {
	original := validOutline()
	content, err := json.Marshal(original)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	parsed, err := ParseOutline(content)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if parsed.Thesis != original.Thesis || len(parsed.Points) != len(original.Points) ||
		len(parsed.References) != len(original.References) || parsed.CallToAction != original.CallToAction {
		t.Fatalf("round-trip mismatch: %+v", parsed)
	}
}

func TestParseOutlineDegradedContent(t *testing.T) {
	for _, content := range []string{``, `{"raw":"not an outline"}`, `{"thesis":"only a thesis"}`, `not json at all`} {
		if _, err := ParseOutline(json.RawMessage(content)); !errors.Is(err, ErrInvalidOutline) {
			t.Fatalf("content %q: expected ErrInvalidOutline, got %v", content, err)
		}
	}
}
