package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/invtally/invtally/internal/models"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// WriteCatalogCSV writes the full catalog as CSV. The output is prefixed
// with a UTF-8 BOM so spreadsheet applications pick the right encoding.
func WriteCatalogCSV(w io.Writer, products []models.Product) error {
	if _, err := w.Write(utf8BOM); err != nil {
		return fmt.Errorf("write catalog csv: %w", err)
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(models.Columns); err != nil {
		return fmt.Errorf("write catalog csv header: %w", err)
	}
	for i := range products {
		if err := cw.Write(rowValues(&products[i])); err != nil {
			return fmt.Errorf("write catalog csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// Mismatched selects products whose stock on hand differs from the target.
func Mismatched(products []models.Product) []models.Product {
	var out []models.Product
	for _, p := range products {
		if p.Mismatched() {
			out = append(out, p)
		}
	}
	return out
}

// WriteMismatchCSV writes the mismatch report: only rows with
// required != total, with an extra variance column (total - required).
// Returns the number of mismatched rows written.
func WriteMismatchCSV(w io.Writer, products []models.Product) (int, error) {
	mismatched := Mismatched(products)
	if _, err := w.Write(utf8BOM); err != nil {
		return 0, fmt.Errorf("write mismatch csv: %w", err)
	}
	cw := csv.NewWriter(w)
	header := append(append([]string{}, models.Columns...), "variance")
	if err := cw.Write(header); err != nil {
		return 0, fmt.Errorf("write mismatch csv header: %w", err)
	}
	for i := range mismatched {
		p := &mismatched[i]
		row := append(rowValues(p), strconv.Itoa(p.Variance()))
		if err := cw.Write(row); err != nil {
			return 0, fmt.Errorf("write mismatch csv row: %w", err)
		}
	}
	cw.Flush()
	return len(mismatched), cw.Error()
}

func rowValues(p *models.Product) []string {
	row := make([]string, len(models.Columns))
	for i, col := range models.Columns {
		row[i] = models.CellValue(p, col)
	}
	return row
}
