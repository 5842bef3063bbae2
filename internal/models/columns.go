package models

import (
	"fmt"
	"strconv"
	"strings"
)

// Display column names, in grid order. The ID column is the identity column
// and is never editable.
const (
	ColID          = "id"
	ColName        = "name"
	ColCode        = "code"
	ColDescription = "description"
	ColCost        = "cost"
	ColRetail      = "retail"
	ColRequiredQty = "required_qty"
	ColGoodQty     = "good_qty"
	ColDamagedQty  = "damaged_qty"
	ColGift        = "gift"
	ColTotalQty    = "total_qty"
	ColNote        = "note"
)

// Columns is the ordered column list shared by the grid and the reports.
var Columns = []string{
	ColID, ColName, ColCode, ColDescription, ColCost, ColRetail,
	ColRequiredQty, ColGoodQty, ColDamagedQty, ColGift, ColTotalQty, ColNote,
}

// ColumnTitles maps column names to their display headings.
var ColumnTitles = map[string]string{
	ColID:          "ID",
	ColName:        "Product Name",
	ColCode:        "Code",
	ColDescription: "Description",
	ColCost:        "Cost",
	ColRetail:      "Retail",
	ColRequiredQty: "Required",
	ColGoodQty:     "Good",
	ColDamagedQty:  "Damaged",
	ColGift:        "Gift",
	ColTotalQty:    "Total",
	ColNote:        "Note",
}

// EditableFields are the locally-owned columns the grid fills in directly.
// Sync-managed fields (name, description, cost, retail, required_qty) are
// refreshed by reconciliation instead.
var EditableFields = map[string]bool{
	ColGoodQty:    true,
	ColDamagedQty: true,
	ColGift:       true,
	ColNote:       true,
}

// CurrencyFields are numeric columns displayed with two decimal places.
var CurrencyFields = map[string]bool{
	ColCost:   true,
	ColRetail: true,
}

// NumericFields are all columns validated and coerced as numbers.
var NumericFields = map[string]bool{
	ColCost:        true,
	ColRetail:      true,
	ColRequiredQty: true,
	ColGoodQty:     true,
	ColDamagedQty:  true,
	ColGift:        true,
	ColTotalQty:    true,
}

// EditableIndexes returns the positions of editable columns within Columns,
// in left-to-right order. Computed once at startup by callers that chain
// edits across cells.
func EditableIndexes() []int {
	var idx []int
	for i, col := range Columns {
		if EditableFields[col] {
			idx = append(idx, i)
		}
	}
	return idx
}

// CellValue renders the given column of p for display. Currency columns are
// formatted to two decimal places; everything else prints as stored.
func CellValue(p *Product, column string) string {
	switch column {
	case ColID:
		return strconv.FormatInt(p.ID, 10)
	case ColName:
		return p.Name
	case ColCode:
		return p.Code
	case ColDescription:
		return p.Description
	case ColCost:
		return fmt.Sprintf("%.2f", p.Cost)
	case ColRetail:
		return fmt.Sprintf("%.2f", p.Retail)
	case ColRequiredQty:
		return strconv.Itoa(p.RequiredQty)
	case ColGoodQty:
		return strconv.Itoa(p.GoodQty)
	case ColDamagedQty:
		return strconv.Itoa(p.DamagedQty)
	case ColGift:
		return strconv.Itoa(p.Gift)
	case ColTotalQty:
		return strconv.Itoa(p.TotalQty)
	case ColNote:
		return p.Note
	}
	return ""
}

// SafeInt coerces an external string to an integer via a float parse.
// Unparseable or missing values become 0 rather than failing; external
// batches routinely carry blanks and stray formatting.
func SafeInt(s string) int {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return int(f)
}

// SafeFloat coerces an external string to a float, 0.0 when unparseable.
func SafeFloat(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0.0
	}
	return f
}
