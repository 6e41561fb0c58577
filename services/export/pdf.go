package export

import (
	"fmt"
	"io"
	"strconv"

	"github.com/go-pdf/fpdf"
	"github.com/pkg/errors"

	"github.com/techagentng/dutyreport/models"
)

const PDFContentType = "application/pdf"

// column widths in mm on landscape A4, matching headings.
var pdfWidths = []float64{10, 24, 24, 28, 22, 22, 16, 16, 16, 16, 14, 30, 39}

// WritePDF renders the same layout as Workbook into w.
func WritePDF(w io.Writer, date string, records []models.DeploymentRecord) error {
	pdf := fpdf.New("L", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle("Daily Deployment Report "+date, true)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 10, tr(fmt.Sprintf("Daily Deployment Report - %s", date)), "", 1, "C", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetFillColor(220, 220, 220)
	for i, h := range headings {
		pdf.CellFormat(pdfWidths[i], 7, tr(h), "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 8)
	rows, sum := buildRows(records)
	for i, r := range rows {
		cells := []string{
			strconv.Itoa(i + 1), r.zone, r.unit, r.station, r.dutyType, r.arrangement,
			strconv.Itoa(r.dayDuty), strconv.Itoa(r.nightDuty), strconv.Itoa(r.dayPhotos),
			strconv.Itoa(r.nightPhotos), strconv.Itoa(r.total()), r.officer, r.remarks,
		}
		writePDFRow(pdf, tr, cells, false)
	}

	pdf.SetFont("Helvetica", "B", 8)
	writePDFRow(pdf, tr, []string{
		"", "Total", "", "", "", "",
		strconv.Itoa(sum.dayDuty), strconv.Itoa(sum.nightDuty), strconv.Itoa(sum.dayPhotos),
		strconv.Itoa(sum.nightPhotos), strconv.Itoa(sum.total()), "", "",
	}, true)

	if err := pdf.Output(w); err != nil {
		return errors.Wrap(err, "writing pdf")
	}
	return nil
}

func writePDFRow(pdf *fpdf.Fpdf, tr func(string) string, cells []string, fill bool) {
	for i, c := range cells {
		align := "L"
		if i == 0 || (i >= 6 && i <= 10) {
			align = "R"
		}
		pdf.CellFormat(pdfWidths[i], 6, tr(truncate(pdf, c, pdfWidths[i]-2)), "1", 0, align, fill, 0, "")
	}
	pdf.Ln(-1)
}

// truncate shortens s so it fits in width mm with the current font.
func truncate(pdf *fpdf.Fpdf, s string, width float64) string {
	if pdf.GetStringWidth(s) <= width {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 && pdf.GetStringWidth(string(runes)+"...") > width {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "..."
}
