// store/csv.go
package store

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/alphazella/zella/ledger"
)

// CSVStore persists the ledger as a single CSV file. Unlike the import
// format, this is a full-fidelity dump: it round-trips ids, the Incomplete
// flag and the source tag, so it carries everything the engine needs to
// rebuild its state.
type CSVStore struct {
	path string
}

var csvStoreHeader = []string{"id", "date", "ticker", "side", "entry", "exit", "quantity", "setup", "mistake", "notes", "pnl", "status", "incomplete", "source"}

func NewCSV(path string) *CSVStore {
	return &CSVStore{path: path}
}

// Load reads the backing file. A missing file is an empty ledger, not an
// error: first run has nothing to load.
func (s *CSVStore) Load() ([]ledger.TradeRecord, error) {
	file, err := os.Open(s.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer file.Close()

	cr := csv.NewReader(file)
	if _, err := cr.Read(); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("read header: %w", err)
	}

	var out []ledger.TradeRecord
	for line := 2; ; line++ {
		fields, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read line %d: %w", line, err)
		}
		rec, err := recordFromFields(fields)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		out = append(out, rec)
	}
	return out, nil
}

func (s *CSVStore) Save(recs []ledger.TradeRecord) error {
	file, err := os.Create(s.path)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(file)
	if err := cw.Write(csvStoreHeader); err != nil {
		file.Close()
		return err
	}
	for _, r := range recs {
		err := cw.Write([]string{
			r.ID,
			r.Date.Format("2006-01-02"),
			r.Ticker,
			string(r.Side),
			f(r.Entry),
			f(r.Exit),
			f(r.Quantity),
			r.Setup,
			r.Mistake,
			r.Notes,
			f(r.PnL),
			string(r.Status),
			strconv.FormatBool(r.Incomplete),
			string(r.Source),
		})
		if err != nil {
			file.Close()
			return err
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

func (s *CSVStore) Close() error {
	return nil
}

func recordFromFields(fields []string) (ledger.TradeRecord, error) {
	if len(fields) != len(csvStoreHeader) {
		return ledger.TradeRecord{}, fmt.Errorf("want %d fields, got %d", len(csvStoreHeader), len(fields))
	}

	date, err := time.Parse("2006-01-02", fields[1])
	if err != nil {
		return ledger.TradeRecord{}, fmt.Errorf("date %q: %w", fields[1], err)
	}

	nums := make([]float64, 4)
	for i, idx := range []int{4, 5, 6, 10} {
		v, err := strconv.ParseFloat(fields[idx], 64)
		if err != nil {
			return ledger.TradeRecord{}, fmt.Errorf("%s %q: %w", csvStoreHeader[idx], fields[idx], err)
		}
		nums[i] = v
	}

	incomplete, err := strconv.ParseBool(fields[12])
	if err != nil {
		return ledger.TradeRecord{}, fmt.Errorf("incomplete %q: %w", fields[12], err)
	}

	return ledger.TradeRecord{
		ID:         fields[0],
		Date:       date,
		Ticker:     fields[2],
		Side:       ledger.Side(fields[3]),
		Entry:      nums[0],
		Exit:       nums[1],
		Quantity:   nums[2],
		Setup:      fields[7],
		Mistake:    fields[8],
		Notes:      fields[9],
		PnL:        nums[3],
		Status:     ledger.Status(fields[11]),
		Incomplete: incomplete,
		Source:     ledger.Source(fields[13]),
	}, nil
}

func f(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}
