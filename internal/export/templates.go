// Package export renders outlines to the downloadable formats. All
// builders are pure functions of the outline and metadata.
package export

import (
	"fmt"
	"regexp"
	"strings"

	"app/internal/model"
)

const fallbackText = "Não informado"

type header struct {
	Title    string
	Category string
	Depth    string
}

func normalize(value, fallback string) string {
	if trimmed := strings.TrimSpace(value); trimmed != "" {
		return trimmed
	}
	return fallback
}

func composeHeader(meta model.SermonMetadata) header {
	docType := normalize(meta.Type, "Sermão")
	theme := normalize(meta.Theme, "Tema não informado")
	return header{
		Title:    docType + " — " + theme,
		Category: normalize(meta.Category, "Categoria não informada"),
		Depth:    normalize(meta.Depth, "curto"),
	}
}

var slugPattern = regexp.MustCompile(`[^a-z0-9]+`)

// Filename derives the attachment filename stem from the request theme
// (or category), suffixed with the artifact id.
func Filename(meta model.SermonMetadata, artifactID string) string {
	theme := meta.Theme
	if theme == "" {
		theme = meta.Category
	}
	slug := slugPattern.ReplaceAllString(strings.ToLower(theme), "-")
	slug = strings.Trim(slug, "-")
	if len(slug) > 40 {
		slug = strings.Trim(slug[:40], "-")
	}
	if slug == "" {
		slug = "sermao-" + artifactID
	}
	return slug + "-" + artifactID
}

// BuildMarkdown renders the outline as a Markdown document.
func BuildMarkdown(o *model.Outline, meta model.SermonMetadata) string {
	h := composeHeader(meta)

	var sections []string
	sections = append(sections,
		"# "+h.Title,
		"*Categoria:* "+h.Category,
		"*Profundidade:* "+h.Depth,
		"",
		"## Tese",
		normalize(o.Thesis, fallbackText),
		"",
		"## Pontos principais",
	)
	for i, p := range o.Points {
		sections = append(sections,
			fmt.Sprintf("### %d. %s", i+1, normalize(p.Title, fmt.Sprintf("Ponto %d", i+1))),
			normalize(p.Summary, fallbackText),
			"",
		)
	}
	sections = append(sections,
		"## Ilustração",
		normalize(o.Illustration, fallbackText),
		"",
		"## Referências bíblicas",
	)
	for _, r := range o.References {
		sections = append(sections, fmt.Sprintf("- **%s** — %s", normalize(r.Reference, fallbackText), normalize(r.Note, fallbackText)))
	}
	sections = append(sections,
		"",
		"## Aplicação prática",
		normalize(o.CallToAction, fallbackText),
	)
	return strings.Join(sections, "\n")
}

// BuildPlainText renders the outline as plain text (used in PDF body
// assembly and handy for logs).
func BuildPlainText(o *model.Outline, meta model.SermonMetadata) string {
	h := composeHeader(meta)

	var lines []string
	lines = append(lines,
		strings.ToUpper(h.Title),
		"Categoria: "+h.Category,
		"Profundidade: "+h.Depth,
		"",
		"Tese: "+normalize(o.Thesis, fallbackText),
		"",
		"Pontos principais:",
	)
	for i, p := range o.Points {
		lines = append(lines,
			fmt.Sprintf("%d. %s", i+1, normalize(p.Title, fmt.Sprintf("Ponto %d", i+1))),
			"   "+normalize(p.Summary, fallbackText),
		)
	}
	lines = append(lines,
		"",
		"Ilustração: "+normalize(o.Illustration, fallbackText),
		"",
		"Referências bíblicas:",
	)
	for _, r := range o.References {
		lines = append(lines, fmt.Sprintf("- %s — %s", normalize(r.Reference, fallbackText), normalize(r.Note, fallbackText)))
	}
	lines = append(lines,
		"",
		"Aplicação prática: "+normalize(o.CallToAction, fallbackText),
	)
	return strings.Join(lines, "\n")
}
