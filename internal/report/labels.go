package report

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/invtally/invtally/internal/models"
)

// LabelLayout describes the label sheet geometry.
type LabelLayout struct {
	Cols       int     `json:"cols"`
	Rows       int     `json:"rows"`
	MarginTop  float64 `json:"marginTop"`
	MarginLeft float64 `json:"marginLeft"`
	GapX       float64 `json:"gapX"`
	GapY       float64 `json:"gapY"`
}

// DefaultLabelLayout fits 40 labels on an A4 sheet.
var DefaultLabelLayout = LabelLayout{Cols: 4, Rows: 10, MarginTop: 10, MarginLeft: 8, GapX: 2, GapY: 2}

// BuildLabelsPDF creates a printable sheet of product labels, one QR code
// per product encoding its code, with the code and name printed beneath.
func BuildLabelsPDF(products []models.Product, layout LabelLayout) ([]byte, error) {
	if layout.Cols <= 0 || layout.Rows <= 0 {
		layout = DefaultLabelLayout
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetFont("Arial", "B", 10)

	pageWidth, pageHeight := 210.0, 297.0

	totalGapX := float64(layout.Cols-1) * layout.GapX
	totalGapY := float64(layout.Rows-1) * layout.GapY
	availW := pageWidth - (layout.MarginLeft * 2)
	availH := pageHeight - (layout.MarginTop * 2)
	labelW := (availW - totalGapX) / float64(layout.Cols)
	labelH := (availH - totalGapY) / float64(layout.Rows)

	labelsPerPage := layout.Cols * layout.Rows

	printed := 0
	for i := range products {
		p := &products[i]
		if p.Code == "" {
			continue
		}

		if printed%labelsPerPage == 0 {
			pdf.AddPage()
		}
		indexOnPage := printed % labelsPerPage
		printed++
		col := indexOnPage % layout.Cols
		row := indexOnPage / layout.Cols

		x := layout.MarginLeft + float64(col)*(labelW+layout.GapX)
		y := layout.MarginTop + float64(row)*(labelH+layout.GapY)

		qrPng, err := qrcode.Encode(p.Code, qrcode.Medium, 256)
		if err != nil {
			return nil, fmt.Errorf("encode qr for %s: %w", p.Code, err)
		}

		imgName := fmt.Sprintf("qr_%d", i)
		imgOptions := gofpdf.ImageOptions{ImageType: "PNG", ReadDpi: true}
		_ = pdf.RegisterImageOptionsReader(imgName, imgOptions, bytes.NewReader(qrPng))

		// QR centered, ~60% of label height, leaving room for two text lines
		qrSize := labelH * 0.6
		if qrSize > labelW {
			qrSize = labelW * 0.9
		}
		qrX := x + (labelW-qrSize)/2
		qrY := y + 1
		pdf.ImageOptions(imgName, qrX, qrY, qrSize, qrSize, false, imgOptions, 0, "")

		pdf.SetXY(x, y+labelH-8)
		pdf.SetFontSize(8)
		pdf.CellFormat(labelW, 4, p.Code, "", 0, "C", false, 0, "")

		pdf.SetXY(x, y+labelH-4)
		pdf.SetFontSize(6)
		pdf.CellFormat(labelW, 3, truncate(p.Name, 28), "", 0, "C", false, 0, "")
	}
	if printed == 0 {
		pdf.AddPage()
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render labels pdf: %w", err)
	}
	return buf.Bytes(), nil
}
