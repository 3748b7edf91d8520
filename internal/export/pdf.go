package export

import (
	"bytes"
	"fmt"
	"time"

	"app/internal/model"

	"github.com/jung-kurt/gofpdf"
)

// BuildPDF renders the outline as an A4 PDF. The creation date is
// pinned to the artifact's timestamp so exporting the same artifact
// twice yields identical bytes.
func BuildPDF(o *model.Outline, meta model.SermonMetadata, createdAt time.Time) ([]byte, error) {
	h := composeHeader(meta)

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(h.Title, true)
	pdf.SetAuthor("Logos AI", true)
	pdf.SetSubject("Esboço de sermão gerado pelo Logos AI", true)
	pdf.SetCreationDate(createdAt.UTC())
	pdf.SetModificationDate(createdAt.UTC())
	pdf.SetMargins(18, 18, 18)
	pdf.AddPage()

	// Core fonts are cp1252; the translator maps the pt-BR accents.
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Helvetica", "B", 20)
	pdf.MultiCell(0, 9, tr(h.Title), "", "C", false)
	pdf.Ln(3)
	pdf.SetFont("Helvetica", "", 12)
	pdf.MultiCell(0, 6, tr("Categoria: "+h.Category), "", "L", false)
	pdf.MultiCell(0, 6, tr("Profundidade: "+h.Depth), "", "L", false)

	sectionTitle := func(title string) {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "B", 16)
		pdf.MultiCell(0, 8, tr(title), "", "L", false)
		pdf.SetFont("Helvetica", "", 12)
	}
	paragraph := func(text string) {
		pdf.MultiCell(0, 6, tr(normalize(text, fallbackText)), "", "J", false)
		pdf.Ln(2)
	}

	sectionTitle("Tese")
	paragraph(o.Thesis)

	sectionTitle("Pontos principais")
	for i, p := range o.Points {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.MultiCell(0, 6, tr(fmt.Sprintf("%d. %s", i+1, normalize(p.Title, fmt.Sprintf("Ponto %d", i+1)))), "", "L", false)
		pdf.SetFont("Helvetica", "", 12)
		pdf.MultiCell(0, 6, tr(normalize(p.Summary, fallbackText)), "", "L", false)
		pdf.Ln(2)
	}

	sectionTitle("Ilustração")
	paragraph(o.Illustration)

	sectionTitle("Referências bíblicas")
	for _, r := range o.References {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.MultiCell(0, 6, tr(normalize(r.Reference, fallbackText)), "", "L", false)
		pdf.SetFont("Helvetica", "", 12)
		pdf.MultiCell(0, 6, tr(normalize(r.Note, fallbackText)), "", "L", false)
		pdf.Ln(1)
	}

	sectionTitle("Aplicação prática")
	paragraph(o.CallToAction)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("writing pdf: %w", err)
	}
	return buf.Bytes(), nil
}
