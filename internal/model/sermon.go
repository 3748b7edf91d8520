package model

import (
	"encoding/json"
	"errors"
	"strings"
)

// Outline is the structured sermon content produced by generation.
type Outline struct {
	Thesis       string             `json:"thesis"`
	Points       []OutlinePoint     `json:"points"`
	Illustration string             `json:"illustration"`
	References   []OutlineReference `json:"references"`
	CallToAction string             `json:"callToAction"`
}

type OutlinePoint struct {
	Title   string `json:"title"`
	Summary string `json:"summary"`
}

type OutlineReference struct {
	Reference string `json:"reference"`
	Note      string `json:"note"`
}

// SermonMetadata describes the request that produced an artifact.
// Generator records which collaborator produced the outline
// ("openai" or "fallback").
type SermonMetadata struct {
	Type      string `json:"type"`
	Category  string `json:"category"`
	Theme     string `json:"theme"`
	Depth     string `json:"depth"`
	Generator string `json:"generator,omitempty"`
}

// SermonRequest carries the validated generation parameters.
type SermonRequest struct {
	Category string
	Theme    string
	Depth    string
}

var ErrInvalidOutline = errors.New("outline is not well-formed")

// Validate checks the structural invariants of an outline: non-empty
// thesis, illustration and call to action, 2-3 points and 3-5
// references with non-empty fields.
func (o *Outline) Validate() error {
	if o == nil {
		return ErrInvalidOutline
	}
	if strings.TrimSpace(o.Thesis) == "" ||
		strings.TrimSpace(o.Illustration) == "" ||
		strings.TrimSpace(o.CallToAction) == "" {
		return ErrInvalidOutline
	}
	if len(o.Points) < 2 || len(o.Points) > 3 {
		return ErrInvalidOutline
	}
	for _, p := range o.Points {
		if strings.TrimSpace(p.Title) == "" || strings.TrimSpace(p.Summary) == "" {
			return ErrInvalidOutline
		}
	}
	if len(o.References) < 3 || len(o.References) > 5 {
		return ErrInvalidOutline
	}
	for _, r := range o.References {
		if strings.TrimSpace(r.Reference) == "" {
			return ErrInvalidOutline
		}
	}
	return nil
}

// ParseOutline decodes stored sermon content into an Outline and
// validates it. Degraded payloads (raw wrappers, truncated content)
// come back as ErrInvalidOutline, never as a panic or a decode crash.
func ParseOutline(content json.RawMessage) (*Outline, error) {
	if len(content) == 0 {
		return nil, ErrInvalidOutline
	}
	var o Outline
	if err := json.Unmarshal(content, &o); err != nil {
		return nil, ErrInvalidOutline
	}
	if err := o.Validate(); err != nil {
		return nil, err
	}
	return &o, nil
}
