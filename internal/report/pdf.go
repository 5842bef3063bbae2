package report

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/invtally/invtally/internal/models"
	"github.com/invtally/invtally/internal/services/catalog"
)

// BuildCatalogPDF renders the full inventory report: title, summary totals
// and a striped data table, landscape A4.
func BuildCatalogPDF(products []models.Product) ([]byte, error) {
	pdf := newReportPage("Complete Inventory Report", 44, 62, 80)

	writeSummaryTable(pdf, catalog.Stats(products))
	pdf.Ln(8)

	headers := []string{"ID", "Name", "Code", "Description", "Cost", "Retail", "Required", "Good", "Damaged", "Gift", "Total", "Note"}
	widths := []float64{10, 42, 24, 46, 18, 18, 20, 14, 20, 14, 14, 37}
	writeTableHeader(pdf, headers, widths, 52, 152, 219)

	pdf.SetFont("Arial", "", 8)
	for i := range products {
		p := &products[i]
		fill := i%2 == 1
		pdf.SetFillColor(248, 249, 250)
		pdf.SetTextColor(0, 0, 0)
		cells := []string{
			models.CellValue(p, models.ColID),
			truncate(p.Name, 26),
			p.Code,
			truncate(p.Description, 32),
			fmt.Sprintf("$%.2f", p.Cost),
			fmt.Sprintf("$%.2f", p.Retail),
			models.CellValue(p, models.ColRequiredQty),
			models.CellValue(p, models.ColGoodQty),
			models.CellValue(p, models.ColDamagedQty),
			models.CellValue(p, models.ColGift),
			models.CellValue(p, models.ColTotalQty),
			truncate(p.Note, 22),
		}
		for j, cell := range cells {
			pdf.CellFormat(widths[j], 6, cell, "1", 0, "C", fill, 0, "")
		}
		pdf.Ln(-1)
	}

	pdf.Ln(6)
	writeFooter(pdf, fmt.Sprintf("Total Products: %d", len(products)))

	return output(pdf)
}

// BuildMismatchPDF renders only the rows where required != total, with the
// signed variance highlighted.
func BuildMismatchPDF(products []models.Product) ([]byte, int, error) {
	mismatched := Mismatched(products)

	pdf := newReportPage("Mismatched Inventory Report", 231, 76, 60)

	pdf.SetFont("Arial", "B", 11)
	pdf.SetTextColor(231, 76, 60)
	pdf.CellFormat(0, 6, fmt.Sprintf("%d products have quantity mismatches (Required <> Total)", len(mismatched)), "", 1, "C", false, 0, "")
	pdf.Ln(6)

	headers := []string{"ID", "Name", "Code", "Description", "Required", "Good", "Damaged", "Gift", "Total", "Variance"}
	widths := []float64{12, 48, 26, 60, 24, 20, 24, 18, 20, 25}
	writeTableHeader(pdf, headers, widths, 231, 76, 60)

	pdf.SetFont("Arial", "", 8)
	for i := range mismatched {
		p := &mismatched[i]
		fill := i%2 == 1
		pdf.SetFillColor(248, 249, 250)
		pdf.SetTextColor(0, 0, 0)
		cells := []string{
			models.CellValue(p, models.ColID),
			truncate(p.Name, 30),
			p.Code,
			truncate(p.Description, 40),
			models.CellValue(p, models.ColRequiredQty),
			models.CellValue(p, models.ColGoodQty),
			models.CellValue(p, models.ColDamagedQty),
			models.CellValue(p, models.ColGift),
			models.CellValue(p, models.ColTotalQty),
		}
		for j, cell := range cells {
			pdf.CellFormat(widths[j], 6, cell, "1", 0, "C", fill, 0, "")
		}
		// Variance cell stands out
		pdf.SetFillColor(255, 243, 205)
		pdf.SetTextColor(133, 100, 4)
		pdf.SetFont("Arial", "B", 8)
		pdf.CellFormat(widths[9], 6, fmt.Sprintf("%+d", p.Variance()), "1", 0, "C", true, 0, "")
		pdf.SetFont("Arial", "", 8)
		pdf.Ln(-1)
	}

	pdf.Ln(6)
	writeFooter(pdf, fmt.Sprintf("Mismatched Products: %d", len(mismatched)))

	data, err := output(pdf)
	return data, len(mismatched), err
}

func newReportPage(title string, r, g, b int) *gofpdf.Fpdf {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 14)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 18)
	pdf.SetTextColor(r, g, b)
	pdf.CellFormat(0, 10, title, "", 1, "C", false, 0, "")

	pdf.SetFont("Arial", "", 10)
	pdf.SetTextColor(127, 140, 141)
	pdf.CellFormat(0, 6, "Generated on: "+time.Now().Format("2006-01-02 15:04:05"), "", 1, "C", false, 0, "")
	pdf.Ln(4)
	return pdf
}

func writeSummaryTable(pdf *gofpdf.Fpdf, t catalog.Totals) {
	headers := []string{"Summary", "Required", "Good", "Damaged", "Gift", "Total Stock"}
	widths := []float64{50, 34, 34, 34, 34, 34}

	writeTableHeader(pdf, headers, widths, 44, 62, 80)

	pdf.SetFont("Arial", "B", 9)
	pdf.SetFillColor(236, 240, 241)
	pdf.SetTextColor(0, 0, 0)
	cells := []string{
		"Totals",
		fmt.Sprintf("%d", t.Required),
		fmt.Sprintf("%d", t.Good),
		fmt.Sprintf("%d", t.Damaged),
		fmt.Sprintf("%d", t.Gift),
		fmt.Sprintf("%d", t.Stock),
	}
	for j, cell := range cells {
		pdf.CellFormat(widths[j], 8, cell, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)
}

func writeTableHeader(pdf *gofpdf.Fpdf, headers []string, widths []float64, r, g, b int) {
	pdf.SetFont("Arial", "B", 9)
	pdf.SetFillColor(r, g, b)
	pdf.SetTextColor(255, 255, 255)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 8, h, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)
}

func writeFooter(pdf *gofpdf.Fpdf, text string) {
	pdf.SetFont("Arial", "I", 8)
	pdf.SetTextColor(127, 140, 141)
	pdf.CellFormat(0, 5, fmt.Sprintf("%s | (c) %d Inventory Tracker", text, time.Now().Year()), "", 1, "C", false, 0, "")
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}

func output(pdf *gofpdf.Fpdf) ([]byte, error) {
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
