// csvio/reader.go
package csvio

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/alphazella/zella/ledger"
)

// Read decodes a trade CSV into raw rows keyed by the file's own header
// names. Column aliasing and per-row validation happen later, in
// ledger.Normalize, so one bad line here must not abort the batch: rows are
// decoded leniently and short rows simply lack the missing columns.
//
// Expected columns: Date, Ticker, Type, Entry, Exit, Quantity, Setup,
// Mistake[, Notes][, P&L] — header casing is not significant.
func Read(r io.Reader) ([]ledger.RawRow, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // ragged rows become missing-field errors per row, not a dead batch
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("empty input: no header row")
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	var rows []ledger.RawRow
	for {
		fields, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", len(rows)+2, err)
		}
		row := make(ledger.RawRow, len(header))
		for i, name := range header {
			if i < len(fields) {
				row[name] = fields[i]
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}
