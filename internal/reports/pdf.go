package reports

import (
	"fmt"
	"io"

	"github.com/SscSPs/expense_management_app/internal/core/domain"
	"github.com/go-pdf/fpdf"
)

// PDFContentType is the MIME type of WritePDF output.
const PDFContentType = "application/pdf"

// column widths in mm, landscape A4 leaves 277mm between margins
var pdfColumnWidths = []float64{22, 32, 32, 28, 60, 16, 24, 20, 43}

// WritePDF writes the expenses as a landscape table.
func WritePDF(w io.Writer, title string, expenses []domain.Expense) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pdf rendering panicked: %v", r)
		}
	}()

	pdf := fpdf.New("L", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(title, true)
	pdf.SetHeaderFunc(func() {
		pdf.SetFont("Helvetica", "B", 14)
		pdf.CellFormat(0, 10, tr(title), "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 9)
		pdf.SetFillColor(230, 230, 230)
		for i, h := range expenseHeaders {
			pdf.CellFormat(pdfColumnWidths[i], 7, h, "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)
	})
	pdf.SetFooterFunc(func() {
		pdf.SetY(-12)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.CellFormat(0, 8, fmt.Sprintf("Page %d", pdf.PageNo()), "", 0, "C", false, 0, "")
	})
	pdf.AddPage()

	pdf.SetFont("Helvetica", "", 8)
	for _, e := range expenses {
		for i, v := range toRow(e).values() {
			align := "L"
			if i == amountColumn-1 {
				align = "R"
			}
			pdf.CellFormat(pdfColumnWidths[i], 6, truncate(tr(v), pdf, pdfColumnWidths[i]-2), "1", 0, align, false, 0, "")
		}
		pdf.Ln(-1)
	}
	if len(expenses) == 0 {
		pdf.CellFormat(0, 8, "No expenses match the selected filters.", "", 1, "L", false, 0, "")
	}

	if pdf.Error() != nil {
		return pdf.Error()
	}
	return pdf.Output(w)
}

// truncate shortens s so it fits in width mm with the current font.
// s is already translated to the single-byte core font encoding.
func truncate(s string, pdf *fpdf.Fpdf, width float64) string {
	if pdf.GetStringWidth(s) <= width {
		return s
	}
	b := []byte(s)
	for len(b) > 0 && pdf.GetStringWidth(string(b)+"...") > width {
		b = b[:len(b)-1]
	}
	return string(b) + "..."
}
