package reconcile

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadBatchStripsBOM(t *testing.T) {
	raw := "\xEF\xBB\xBFcode,name\nA-1,Widget\n"
	records, err := ReadBatch(strings.NewReader(raw))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "A-1", records[0].Code)
}

func TestReadBatchMissingOptionalColumns(t *testing.T) {
	records, err := ReadBatch(strings.NewReader("code\nA-1\n"))
	require.NoError(t, err)
	require.Len(t, records, 1)

	assert.Equal(t, "A-1", records[0].Code)
	assert.Equal(t, "", records[0].Name)
	assert.Equal(t, 0.0, records[0].Cost)
	assert.Equal(t, 0, records[0].RequiredQty)
}

func TestReadBatchCoercesNumbersPermissively(t *testing.T) {
	raw := "code,cost,retail,required_qty\n" +
		"A-1,1.50,abc,7.9\n" + // bad retail reads as 0, float qty truncates
		"B-2,,2.00,\n"
	records, err := ReadBatch(strings.NewReader(raw))
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, 1.50, records[0].Cost)
	assert.Equal(t, 0.0, records[0].Retail)
	assert.Equal(t, 7, records[0].RequiredQty)

	assert.Equal(t, 0.0, records[1].Cost)
	assert.Equal(t, 2.00, records[1].Retail)
	assert.Equal(t, 0, records[1].RequiredQty)
}

func TestReadBatchShortRows(t *testing.T) {
	// Rows shorter than the header are not an error; missing cells are empty.
	raw := "code,name,cost\nA-1\n"
	records, err := ReadBatch(strings.NewReader(raw))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "", records[0].Name)
}

func TestReadBatchRejectsMissingCodeColumn(t *testing.T) {
	_, err := ReadBatch(strings.NewReader("name,cost\nWidget,1.00\n"))
	assert.Error(t, err)
}

func TestReadBatchRejectsEmptyInput(t *testing.T) {
	_, err := ReadBatch(strings.NewReader(""))
	assert.Error(t, err)
}
