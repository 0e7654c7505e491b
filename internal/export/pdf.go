package export

import (
	"io"
	"strconv"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/hyperifyio/gobrd/internal/sections"
)

// PDF renders doc with the same layout as Markdown onto A4 pages.
func PDF(w io.Writer, doc *sections.Document, m Meta) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(tr(DocumentTitle), false)
	pdf.AddPage()

	heading := func(text string, size float64) {
		pdf.SetFont("Helvetica", "B", size)
		pdf.MultiCell(0, size*0.6, tr(text), "", "C", false)
		pdf.Ln(2)
	}
	body := func(text string) {
		pdf.SetFont("Helvetica", "", 11)
		pdf.MultiCell(0, 5, tr(text), "", "L", false)
	}
	item := func(text string) {
		pdf.SetFont("Helvetica", "", 11)
		pdf.SetX(pdf.GetX() + 5)
		pdf.MultiCell(0, 5, tr("- "+text), "", "L", false)
	}

	// Title page
	heading(DocumentTitle, 20)
	if t := strings.TrimSpace(m.Title); t != "" {
		heading(t, 16)
	}
	if m.Domain != "" {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.CellFormat(0, 8, tr("Domain: "+m.Domain), "", 1, "C", false, 0, "")
	}
	pdf.SetFont("Helvetica", "", 11)
	for _, f := range m.Fields {
		pdf.CellFormat(0, 6, tr(f.Key+": "+f.Value), "", 1, "C", false, 0, "")
	}
	pdf.Ln(4)
	pdf.CellFormat(0, 6, tr(m.generatedOn()), "", 1, "C", false, 0, "")

	all := doc.Sections()
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 8, "Table of Contents", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	for i, s := range all {
		pdf.CellFormat(0, 6, tr(strconv.Itoa(i+1)+". "+s.Name), "", 1, "L", false, 0, "")
	}

	pdf.AddPage()
	for i, s := range all {
		pdf.SetFont("Helvetica", "B", 14)
		pdf.MultiCell(0, 8, tr(strconv.Itoa(i+1)+". "+s.Name), "", "L", false)
		lines := bodyLines(s.Content)
		if len(lines) == 0 {
			body(EmptySection)
		}
		for _, l := range lines {
			if kind, text := classify(l); kind == bullet {
				item(text)
			} else {
				body(text)
			}
		}
		pdf.Ln(5)
	}

	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 8, "Appendix", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, "Compliance References", "", 1, "L", false, 0, "")
	for _, r := range m.References {
		item(r)
	}
	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, "Glossary", "", 1, "L", false, 0, "")
	body(m.glossary())
	for _, t := range m.Terminology {
		item(t)
	}

	if err := pdf.Error(); err != nil {
		return err
	}
	return pdf.Output(w)
}
