package grid

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/invtally/invtally/internal/models"
)

// ErrValidation reports non-numeric input in a numeric cell. It is local
// and recoverable: the commit is aborted and the overlay stays open.
var ErrValidation = errors.New("grid: invalid numeric input")

// CellRef addresses one cell: the row's product id plus the column index
// within models.Columns.
type CellRef struct {
	RowID int64
	Col   int
}

// Row is the in-memory projection of one catalog row: the typed product
// plus its display-formatted cell values in column order.
type Row struct {
	Product models.Product
	Cells   []string
}

// Overlay is the single live input widget. The frontend owns its screen
// representation; the sequencer only reads its text and closes it.
type Overlay interface {
	Text() string
	SetText(s string)
	SelectAll()
	Close()
}

// Frontend is the presentation collaborator. OpenOverlay returns false when
// the target cell's geometry cannot be resolved (row not rendered), which
// the sequencer treats as a silent no-op.
type Frontend interface {
	RenderRows(rows []Row)
	OpenOverlay(cell CellRef, initial string) (Overlay, bool)
	NotifyError(err error)
}

// CoerceInput validates raw cell text for a column and returns the
// normalized display string. Currency columns become two-decimal floats
// ("0.00" when empty), integer columns coerce float-then-int ("0" when
// empty). Non-numeric input in a numeric column returns ErrValidation.
func CoerceInput(column, raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	switch {
	case models.CurrencyFields[column]:
		if raw == "" {
			return "0.00", nil
		}
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return "", fmt.Errorf("%w: %q is not a valid number for %s", ErrValidation, raw, column)
		}
		return fmt.Sprintf("%.2f", f), nil
	case models.NumericFields[column]:
		if raw == "" {
			return "0", nil
		}
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return "", fmt.Errorf("%w: %q is not a valid number for %s", ErrValidation, raw, column)
		}
		return strconv.Itoa(int(f)), nil
	}
	return raw, nil
}

// ApplyInput writes an already-normalized cell value into p. The identity
// column is rejected; TotalQty accepts a value but callers recompute it
// from the buckets before persisting, so a direct edit never survives.
func ApplyInput(p *models.Product, column, normalized string) error {
	switch column {
	case models.ColName:
		p.Name = normalized
	case models.ColCode:
		p.Code = normalized
	case models.ColDescription:
		p.Description = normalized
	case models.ColNote:
		p.Note = normalized
	case models.ColCost:
		p.Cost = models.SafeFloat(normalized)
	case models.ColRetail:
		p.Retail = models.SafeFloat(normalized)
	case models.ColRequiredQty:
		p.RequiredQty = models.SafeInt(normalized)
	case models.ColGoodQty:
		p.GoodQty = models.SafeInt(normalized)
	case models.ColDamagedQty:
		p.DamagedQty = models.SafeInt(normalized)
	case models.ColGift:
		p.Gift = models.SafeInt(normalized)
	case models.ColTotalQty:
		p.TotalQty = models.SafeInt(normalized)
	default:
		return fmt.Errorf("grid: column %q is not editable", column)
	}
	return nil
}

// ProjectRow builds the display projection for one product.
func ProjectRow(p models.Product) Row {
	cells := make([]string, len(models.Columns))
	for i, col := range models.Columns {
		cells[i] = models.CellValue(&p, col)
	}
	return Row{Product: p, Cells: cells}
}
