package report

import (
	"io"

	"github.com/jung-kurt/gofpdf"
)

// WritePDF renders the report as a single column A4 document.
func WritePDF(w io.Writer, r *Report) error {
	pdf := newPDF(r)
	return pdf.Output(w)
}

// WritePDFFile renders the report into the file at path.
func WritePDFFile(path string, r *Report) error {
	pdf := newPDF(r)
	return pdf.OutputFileAndClose(path)
}

func newPDF(r *Report) *gofpdf.Fpdf {
	pdf := gofpdf.New("P", "mm", "A4", "")
	// core fonts are cp1252, translate the UTF-8 input
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetTitle("ATS match report", true)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, "ATS match report", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(0, 5, r.GeneratedAt.Format("2006-01-02 15:04 MST"), "", 1, "L", false, 0, "")
	pdf.Ln(3)

	for _, s := range Sections(r) {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.CellFormat(0, 8, tr(s.Title), "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		for _, line := range s.Lines {
			pdf.MultiCell(0, 5, tr(line), "", "L", false)
		}
		pdf.Ln(3)
	}
	return pdf
}
