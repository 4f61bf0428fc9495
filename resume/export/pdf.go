package export

import (
	"bytes"
	"context"
	"fmt"

	"github.com/go-pdf/fpdf"

	"resume-builder/resume/document"
	"resume-builder/resume/preview"
)

const (
	pageMarginMM  = 18.0
	pointToMM     = 0.3528
	lineSpacing   = 1.35
	bulletIndent  = 5.0
	bulletGlyph   = "•"
	pdfFontFamily = "Helvetica"
)

// PDF lays the resume out with fpdf.
type PDF struct {
	// PageSize is an fpdf size name such as "A4" or "Letter". Empty means A4.
	PageSize string
}

// ContentType implements Exporter.
func (PDF) ContentType() string { return "application/pdf" }

// Extension implements Exporter.
func (PDF) Extension() string { return "pdf" }

// Export implements Exporter.
func (p PDF) Export(ctx context.Context, doc document.Resume) ([]byte, error) {
	data, _, err := p.render(ctx, doc)
	return data, err
}

func (p PDF) render(ctx context.Context, doc document.Resume) ([]byte, int, error) {
	size := p.PageSize
	if size == "" {
		size = "A4"
	}
	pdf := fpdf.New("P", "mm", size, "")
	pdf.SetMargins(pageMarginMM, pageMarginMM, pageMarginMM)
	pdf.SetAutoPageBreak(true, pageMarginMM)
	pdf.SetTitle(doc.Personal.FullName, true)
	pdf.AddPage()

	tr := pdf.UnicodeTranslatorFromDescriptor("")
	accent := preview.AccentColor(doc.TemplateSettings.ColorScheme)
	pageW, pageH := pdf.GetPageSize()
	left, top, right, bottom := pdf.GetMargins()
	width := pageW - left - right

	for _, block := range Layout(doc) {
		if err := ctx.Err(); err != nil {
			return nil, 0, err
		}
		height := measureBlock(pdf, tr, block, width)
		if needsBreak(pdf.GetY(), height, pageH, top, bottom) {
			pdf.AddPage()
		}
		for _, line := range block.Lines {
			drawLine(pdf, tr, line, width, accent)
		}
	}

	if err := pdf.Error(); err != nil {
		return nil, 0, fmt.Errorf("pdf layout: %w", err)
	}
	pages := pdf.PageNo()
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, 0, fmt.Errorf("pdf output: %w", err)
	}
	return buf.Bytes(), pages, nil
}

// needsBreak reports whether a block of height h starting at y would overflow
// the page. A block at the top of a page never breaks again.
func needsBreak(y, h, pageH, top, bottom float64) bool {
	if y <= top {
		return false
	}
	return y+h > pageH-bottom
}

func lineHeight(style RunStyle) float64 {
	return style.Size * pointToMM * lineSpacing
}

func setStyle(pdf *fpdf.Fpdf, style RunStyle, accent string) {
	fontStyle := ""
	if style.Bold {
		fontStyle += "B"
	}
	if style.Italic {
		fontStyle += "I"
	}
	pdf.SetFont(pdfFontFamily, fontStyle, style.Size)
	color := style.Color
	if style.Accent {
		color = accent
	}
	r, g, b := hexRGB(color)
	pdf.SetTextColor(r, g, b)
}

func lineWidth(line Line, width float64) float64 {
	if line.Style == StyleBullet {
		return width - bulletIndent
	}
	return width
}

func measureBlock(pdf *fpdf.Fpdf, tr func(string) string, block Block, width float64) float64 {
	total := 0.0
	for _, line := range block.Lines {
		style := styleFor(line.Style)
		setStyle(pdf, style, "")
		// tr yields cp1252 bytes, so wrapping has to work on bytes rather than runes.
		lines := len(pdf.SplitLines([]byte(tr(line.Text)), lineWidth(line, width)))
		if lines == 0 {
			lines = 1
		}
		total += style.SpaceBefore*pointToMM + float64(lines)*lineHeight(style)
		if line.Style == StyleSectionHeading {
			total++
		}
	}
	return total
}

func drawLine(pdf *fpdf.Fpdf, tr func(string) string, line Line, width float64, accent string) {
	style := styleFor(line.Style)
	setStyle(pdf, style, accent)
	if style.SpaceBefore > 0 {
		pdf.Ln(style.SpaceBefore * pointToMM)
	}
	h := lineHeight(style)
	left, _, _, _ := pdf.GetMargins()

	if line.Style == StyleBullet {
		pdf.SetX(left)
		pdf.CellFormat(bulletIndent, h, tr(bulletGlyph), "", 0, "L", false, 0, "")
		pdf.MultiCell(width-bulletIndent, h, tr(line.Text), "", "L", false)
		return
	}
	pdf.SetX(left)
	pdf.MultiCell(width, h, tr(line.Text), "", "L", false)
	if line.Style == StyleSectionHeading {
		r, g, b := hexRGB(accent)
		pdf.SetDrawColor(r, g, b)
		y := pdf.GetY()
		pdf.Line(left, y, left+width, y)
		pdf.Ln(1)
	}
}
