package reconcile

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/invtally/invtally/internal/models"
)

// Record is one parsed row of an external batch. Numeric fields are coerced
// permissively on read: float-first, 0 when blank or unparseable.
type Record struct {
	Code        string
	Name        string
	Description string
	Cost        float64
	Retail      float64
	RequiredQty int
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// stripBOM skips a UTF-8 byte-order mark if present. Exported spreadsheets
// frequently carry one.
func stripBOM(r io.Reader) io.Reader {
	br := bufio.NewReader(r)
	if head, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(head, utf8BOM) {
		_, _ = br.Discard(len(utf8BOM))
	}
	return br
}

// ReadBatch parses a whole CSV batch up front. Any read or parse failure is
// fatal for the batch: nothing has been applied yet at that point, so the
// caller can abort without partial state. The header must contain a "code"
// column; missing optional columns read as empty strings.
func ReadBatch(r io.Reader) ([]Record, error) {
	reader := csv.NewReader(stripBOM(r))
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("batch is empty: no header row")
	}
	if err != nil {
		return nil, fmt.Errorf("read batch header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(name)] = i
	}
	if _, ok := index[models.ColCode]; !ok {
		return nil, fmt.Errorf("batch header has no %q column", models.ColCode)
	}

	field := func(row []string, name string) string {
		i, ok := index[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var records []Record
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read batch row %d: %w", len(records)+1, err)
		}
		records = append(records, Record{
			Code:        field(row, models.ColCode),
			Name:        field(row, models.ColName),
			Description: field(row, models.ColDescription),
			Cost:        models.SafeFloat(field(row, models.ColCost)),
			Retail:      models.SafeFloat(field(row, models.ColRetail)),
			RequiredQty: models.SafeInt(field(row, models.ColRequiredQty)),
		})
	}
	return records, nil
}

// ReadBatchFile opens and parses a CSV file.
func ReadBatchFile(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open batch file: %w", err)
	}
	defer f.Close()
	return ReadBatch(f)
}
