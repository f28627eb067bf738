// Package renderer lays the assembled paper text out as a styled PDF.
//
// Rendering is two-stage: the body is first split into typed elements by a
// per-line prefix classifier, then the elements are drawn with per-style
// fonts. Classification is a single forward pass; a line's style never
// depends on its neighbors.
package renderer

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/go-pdf/fpdf"

	"github.com/khadijah-Shabir/exam-paper-generator/internal/domain"
)

type elementKind int

const (
	elementHeading elementKind = iota
	elementQuestion
	elementOption
	elementBody
)

type element struct {
	kind elementKind
	text string
}

// classify splits the body on newlines and tags each non-empty line by its
// prefix, in priority order: "###" section heading, "Q" question, "A)"-"D)"
// option, otherwise body text.
func classify(body string) []element {
	var elements []element
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		switch {
		case strings.HasPrefix(line, "###"):
			text := strings.TrimSpace(strings.TrimPrefix(line, "###"))
			elements = append(elements, element{kind: elementHeading, text: text})
		case strings.HasPrefix(line, "Q"):
			elements = append(elements, element{kind: elementQuestion, text: line})
		case isOptionLine(line):
			elements = append(elements, element{kind: elementOption, text: line})
		default:
			elements = append(elements, element{kind: elementBody, text: line})
		}
	}
	return elements
}

func isOptionLine(line string) bool {
	if len(line) < 2 || line[1] != ')' {
		return false
	}
	return line[0] >= 'A' && line[0] <= 'D'
}

// Layout constants, in points.
const (
	pageMargin    = 54
	titleSpacer   = 21.6 // 0.3 inch below the title
	elementSpacer = 6
	optionIndent  = 18
)

// PDFRenderer implements domain.PaperRenderer on a US Letter page.
type PDFRenderer struct{}

// New creates a PDFRenderer.
func New() *PDFRenderer {
	return &PDFRenderer{}
}

var _ domain.PaperRenderer = (*PDFRenderer)(nil)

// Render draws the title followed by the classified body lines, each element
// trailed by a small spacer, and returns the finished document bytes.
func (r *PDFRenderer) Render(title, body string) ([]byte, error) {
	pdf := fpdf.New("P", "pt", "Letter", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(true, pageMargin)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	// Centered title in the header color.
	pdf.SetFont("Helvetica", "B", 18)
	pdf.SetTextColor(0x2C, 0x3E, 0x50)
	pdf.CellFormat(0, 22, tr(title), "", 1, "C", false, 0, "")
	pdf.Ln(titleSpacer)

	for _, el := range classify(body) {
		switch el.kind {
		case elementHeading:
			pdf.SetFont("Helvetica", "B", 14)
			pdf.SetTextColor(0x2C, 0x3E, 0x50)
			pdf.MultiCell(0, 18, tr(el.text), "", "L", false)
		case elementQuestion:
			pdf.SetFont("Helvetica", "B", 12)
			pdf.SetTextColor(0, 0, 0)
			pdf.MultiCell(0, 15, tr(el.text), "", "L", false)
		case elementOption:
			pdf.SetFont("Helvetica", "", 11)
			pdf.SetTextColor(0, 0, 0)
			left, _, _, _ := pdf.GetMargins()
			pdf.SetLeftMargin(left + optionIndent)
			pdf.SetX(left + optionIndent)
			pdf.MultiCell(0, 14, tr(el.text), "", "L", false)
			pdf.SetLeftMargin(left)
		default:
			pdf.SetFont("Helvetica", "", 11)
			pdf.SetTextColor(0, 0, 0)
			pdf.MultiCell(0, 14, tr(el.text), "", "L", false)
		}
		pdf.Ln(elementSpacer)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}
	return buf.Bytes(), nil
}
