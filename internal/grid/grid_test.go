package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/invtally/invtally/internal/models"
)

func TestCoerceInput(t *testing.T) {
	cases := []struct {
		column  string
		raw     string
		want    string
		wantErr bool
	}{
		{models.ColCost, "3.5", "3.50", false},
		{models.ColCost, "", "0.00", false},
		{models.ColCost, "abc", "", true},
		{models.ColGoodQty, "7", "7", false},
		{models.ColGoodQty, "7.9", "7", false},
		{models.ColGoodQty, "", "0", false},
		{models.ColGoodQty, "x", "", true},
		{models.ColNote, "  pallet B  ", "pallet B", false},
		{models.ColName, "", "", false},
	}
	for _, c := range cases {
		got, err := CoerceInput(c.column, c.raw)
		if c.wantErr {
			assert.ErrorIs(t, err, ErrValidation, "%s %q", c.column, c.raw)
			continue
		}
		require.NoError(t, err, "%s %q", c.column, c.raw)
		assert.Equal(t, c.want, got, "%s %q", c.column, c.raw)
	}
}

func TestApplyInputRejectsIdentityColumn(t *testing.T) {
	var p models.Product
	assert.Error(t, ApplyInput(&p, models.ColID, "5"))
}

func TestProjectRowFormatsCurrency(t *testing.T) {
	p := models.Product{ID: 3, Name: "Widget", Code: "W-1", Cost: 1.5, Retail: 4, GoodQty: 2}
	p.RecomputeTotal()

	row := ProjectRow(p)
	require.Len(t, row.Cells, len(models.Columns))
	assert.Equal(t, "3", row.Cells[0])
	assert.Equal(t, "1.50", row.Cells[4])
	assert.Equal(t, "4.00", row.Cells[5])
	assert.Equal(t, "2", row.Cells[10]) // total
}
