package export

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"

	"app/internal/model"
)

// The DOCX export writes a minimal WordprocessingML package by hand:
// three part files in a zip. See DESIGN.md for why no docx library is
// used. Zip entry timestamps are left at zero so the output is
// byte-stable across exports of the same artifact.

const docxContentTypes = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
<Default Extension="xml" ContentType="application/xml"/>
<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
</Types>`

const docxRels = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>
</Relationships>`

type docxRun struct {
	text string
	bold bool
	// size in half-points; zero keeps the default
	size int
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}

func renderRun(r docxRun) string {
	var props []string
	if r.bold {
		props = append(props, `<w:b/>`)
	}
	if r.size > 0 {
		props = append(props, fmt.Sprintf(`<w:sz w:val="%d"/><w:szCs w:val="%d"/>`, r.size, r.size))
	}
	rpr := ""
	if len(props) > 0 {
		rpr = "<w:rPr>" + strings.Join(props, "") + "</w:rPr>"
	}
	return fmt.Sprintf(`<w:r>%s<w:t xml:space="preserve">%s</w:t></w:r>`, rpr, escapeXML(r.text))
}

func renderParagraph(runs ...docxRun) string {
	var b strings.Builder
	b.WriteString("<w:p>")
	for _, r := range runs {
		b.WriteString(renderRun(r))
	}
	b.WriteString("</w:p>")
	return b.String()
}

func docxTitle(text string) string {
	return renderParagraph(docxRun{text: text, bold: true, size: 40})
}

func docxHeading(text string) string {
	return renderParagraph(docxRun{text: text, bold: true, size: 28})
}

func docxText(text string) string {
	return renderParagraph(docxRun{text: text})
}

// BuildDOCX renders the outline as a Word document.
func BuildDOCX(o *model.Outline, meta model.SermonMetadata) ([]byte, error) {
	h := composeHeader(meta)

	var body []string
	body = append(body,
		docxTitle(h.Title),
		docxText("Categoria: "+h.Category),
		docxText("Profundidade: "+h.Depth),
		docxText(""),
		docxHeading("Tese"),
		docxText(normalize(o.Thesis, fallbackText)),
		docxHeading("Pontos principais"),
	)
	for i, p := range o.Points {
		body = append(body, renderParagraph(
			docxRun{text: fmt.Sprintf("%d. %s", i+1, normalize(p.Title, fmt.Sprintf("Ponto %d", i+1))), bold: true},
			docxRun{text: " — " + normalize(p.Summary, fallbackText)},
		))
	}
	body = append(body,
		docxHeading("Ilustração"),
		docxText(normalize(o.Illustration, fallbackText)),
		docxHeading("Referências bíblicas"),
	)
	for _, r := range o.References {
		body = append(body, renderParagraph(
			docxRun{text: normalize(r.Reference, fallbackText), bold: true},
			docxRun{text: " — " + normalize(r.Note, fallbackText)},
		))
	}
	body = append(body,
		docxHeading("Aplicação prática"),
		docxText(normalize(o.CallToAction, fallbackText)),
	)

	document := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
<w:body>` + strings.Join(body, "\n") + `</w:body>
</w:document>`

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	parts := []struct {
		name, content string
	}{
		{"[Content_Types].xml", docxContentTypes},
		{"_rels/.rels", docxRels},
		{"word/document.xml", document},
	}
	for _, part := range parts {
		f, err := zw.CreateHeader(&zip.FileHeader{Name: part.name, Method: zip.Deflate})
		if err != nil {
			return nil, fmt.Errorf("creating docx part %s: %w", part.name, err)
		}
		if _, err := f.Write([]byte(part.content)); err != nil {
			return nil, fmt.Errorf("writing docx part %s: %w", part.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("finalizing docx package: %w", err)
	}
	return buf.Bytes(), nil
}
