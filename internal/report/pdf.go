package report

import (
	"bufio"
	"io"
	"regexp"
	"strings"

	"github.com/jung-kurt/gofpdf"
)

var boldRe = regexp.MustCompile(`\*\*([^*]+)\*\*`)

// WritePDF renders markdown to a PDF file at outPath.
func WritePDF(markdown string, outPath string) error {
	return build(markdown).OutputFileAndClose(outPath)
}

// RenderPDF renders markdown as PDF into w.
func RenderPDF(markdown string, w io.Writer) error {
	return build(markdown).Output(w)
}

// build lays out headings, bullet lines and paragraphs. It does not attempt
// full Markdown layout.
func build(markdown string) *gofpdf.Fpdf {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetCreator("numlookup", true)
	// Core fonts are cp1252; anything outside it is replaced.
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetFont("Helvetica", "", 11)
	pdf.AddPage()

	scanner := bufio.NewScanner(strings.NewReader(markdown))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		s := strings.TrimSpace(scanner.Text())
		if s == "" {
			pdf.Ln(4)
			continue
		}
		if strings.HasPrefix(s, "#") {
			i := 0
			for i < len(s) && s[i] == '#' {
				i++
			}
			text := strings.TrimSpace(s[i:])
			if text == "" {
				continue
			}
			size := 16.0
			if i >= 2 {
				size = 13.0
			}
			pdf.SetFont("Helvetica", "B", size)
			pdf.CellFormat(0, 9, tr(text), "", 1, "L", false, 0, "")
			pdf.SetFont("Helvetica", "", 11)
			continue
		}
		if strings.HasPrefix(s, "- ") {
			s = "\x95 " + tr(boldRe.ReplaceAllString(s[2:], "$1"))
		} else {
			s = tr(boldRe.ReplaceAllString(s, "$1"))
		}
		pdf.MultiCell(0, 6, s, "", "L", false)
	}
	return pdf
}
