package report

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/invtally/invtally/internal/models"
)

func sample() []models.Product {
	products := []models.Product{
		{ID: 1, Name: "Matched", Code: "M-1", Cost: 1.5, RequiredQty: 5, GoodQty: 5},
		{ID: 2, Name: "Short", Code: "S-1", RequiredQty: 10, GoodQty: 6, DamagedQty: 1},
		{ID: 3, Name: "Over", Code: "O-1", RequiredQty: 2, GoodQty: 3},
	}
	for i := range products {
		products[i].RecomputeTotal()
	}
	return products
}

func TestWriteCatalogCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCatalogCSV(&buf, sample()))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "\xEF\xBB\xBF"), "missing BOM prefix")

	rows, err := csv.NewReader(strings.NewReader(strings.TrimPrefix(out, "\xEF\xBB\xBF"))).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, models.Columns, rows[0])
	assert.Equal(t, "M-1", rows[1][2])
	assert.Equal(t, "1.50", rows[1][4]) // currency formatting
}

func TestWriteMismatchCSV(t *testing.T) {
	var buf bytes.Buffer
	count, err := WriteMismatchCSV(&buf, sample())
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	rows, err := csv.NewReader(strings.NewReader(strings.TrimPrefix(buf.String(), "\xEF\xBB\xBF"))).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "variance", rows[0][len(rows[0])-1])
	assert.Equal(t, "S-1", rows[1][2])
	assert.Equal(t, "-3", rows[1][len(rows[1])-1])
	assert.Equal(t, "O-1", rows[2][2])
	assert.Equal(t, "1", rows[2][len(rows[2])-1])
}

func TestWriteMismatchCSVNoMismatches(t *testing.T) {
	products := []models.Product{{Name: "Matched", Code: "M-1", RequiredQty: 3, GoodQty: 3}}
	products[0].RecomputeTotal()

	var buf bytes.Buffer
	count, err := WriteMismatchCSV(&buf, products)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestBuildPDFs(t *testing.T) {
	data, err := BuildCatalogPDF(sample())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))

	data, count, err := BuildMismatchPDF(sample())
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))

	data, err = BuildLabelsPDF(sample(), DefaultLabelLayout)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}
