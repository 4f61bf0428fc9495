package export

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"strings"

	"resume-builder/resume/document"
	"resume-builder/resume/preview"
)

// DOCX writes a WordprocessingML package.
type DOCX struct{}

// ContentType implements Exporter.
func (DOCX) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
}

// Extension implements Exporter.
func (DOCX) Extension() string { return "docx" }

const contentTypesXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
<Default Extension="xml" ContentType="application/xml"/>
<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
</Types>`

const relsXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>
</Relationships>`

const documentRelsXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"></Relationships>`

const documentHeader = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>`

const documentFooter = `<w:sectPr><w:pgMar w:top="1020" w:right="1020" w:bottom="1020" w:left="1020"/></w:sectPr></w:body></w:document>`

// Export implements Exporter.
func (d DOCX) Export(ctx context.Context, doc document.Resume) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	body, err := DocumentXML(doc)
	if err != nil {
		return nil, err
	}

	var out bytes.Buffer
	writer := zip.NewWriter(&out)
	parts := []struct {
		name    string
		content string
	}{
		{"[Content_Types].xml", contentTypesXML},
		{"_rels/.rels", relsXML},
		{"word/_rels/document.xml.rels", documentRelsXML},
		{"word/document.xml", body},
	}
	for _, part := range parts {
		w, err := writer.Create(part.name)
		if err != nil {
			return nil, fmt.Errorf("docx create %s: %w", part.name, err)
		}
		if _, err := w.Write([]byte(part.content)); err != nil {
			return nil, fmt.Errorf("docx write %s: %w", part.name, err)
		}
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("docx close: %w", err)
	}
	return out.Bytes(), nil
}

// DocumentXML renders word/document.xml for doc.
func DocumentXML(doc document.Resume) (string, error) {
	accent := strings.TrimPrefix(preview.AccentColor(doc.TemplateSettings.ColorScheme), "#")
	var b strings.Builder
	b.WriteString(documentHeader)
	for _, block := range Layout(doc) {
		for i, line := range block.Lines {
			keepNext := i < len(block.Lines)-1
			if err := writeParagraph(&b, line, accent, keepNext); err != nil {
				return "", err
			}
		}
	}
	b.WriteString(documentFooter)
	return b.String(), nil
}

func writeParagraph(b *strings.Builder, line Line, accent string, keepNext bool) error {
	style := styleFor(line.Style)
	b.WriteString("<w:p><w:pPr>")
	if keepNext {
		b.WriteString("<w:keepNext/>")
	}
	if style.SpaceBefore > 0 {
		fmt.Fprintf(b, `<w:spacing w:before="%d"/>`, int(style.SpaceBefore*20))
	}
	if line.Style == StyleBullet {
		b.WriteString(`<w:ind w:left="360" w:hanging="360"/>`)
	}
	if line.Style == StyleSectionHeading {
		fmt.Fprintf(b, `<w:pBdr><w:bottom w:val="single" w:sz="8" w:space="1" w:color="%s"/></w:pBdr>`, accent)
	}
	b.WriteString("</w:pPr><w:r><w:rPr>")
	if style.Bold {
		b.WriteString("<w:b/>")
	}
	if style.Italic {
		b.WriteString("<w:i/>")
	}
	color := style.Color
	if style.Accent {
		color = accent
	}
	fmt.Fprintf(b, `<w:color w:val="%s"/><w:sz w:val="%d"/>`, color, int(style.Size*2))
	b.WriteString(`</w:rPr><w:t xml:space="preserve">`)
	text := line.Text
	if line.Style == StyleBullet {
		text = bulletGlyph + "\t" + text
	}
	var escaped bytes.Buffer
	if err := xml.EscapeText(&escaped, []byte(text)); err != nil {
		return fmt.Errorf("docx escape: %w", err)
	}
	b.Write(escaped.Bytes())
	b.WriteString("</w:t></w:r></w:p>")
	return nil
}
