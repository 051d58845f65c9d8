package importer

import (
	"encoding/csv"
	"fmt"
	"io"
)

// CommBankParser parses CommBank per-account CSV exports: date, amount,
// description, and sometimes a running balance column.
type CommBankParser struct{}

const (
	commbankColDate   = 0
	commbankColAmount = 1
	commbankColDesc   = 2
	commbankColBal    = 3
)

// Format returns the parser name.
func (p *CommBankParser) Format() string { return "commbank" }

// Parse reads a CommBank CSV and returns raw rows. The first line is a
// header and is skipped; field values stay untouched for the normalizer.
func (p *CommBankParser) Parse(r io.Reader) ([]Row, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // exports vary between 3 and 4 columns

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading commbank CSV: %w", err)
	}

	if len(records) <= 1 {
		return nil, nil
	}

	var rows []Row
	for i, rec := range records[1:] {
		if len(rec) < 3 {
			return nil, fmt.Errorf("row %d: expected at least 3 fields, got %d", i+2, len(rec))
		}
		row := Row{
			Date:        rec[commbankColDate],
			Amount:      rec[commbankColAmount],
			Description: rec[commbankColDesc],
		}
		if len(rec) > commbankColBal {
			row.Balance = rec[commbankColBal]
		}
		rows = append(rows, row)
	}
	return rows, nil
}
