// Package auditlog persists balance-check anomalies as an append-only CSV
// so degraded journal records stay inspectable after the run.
package auditlog

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Entry is one row in the anomaly log.
type Entry struct {
	Timestamp   time.Time
	RecordID    string
	Description string
	DebitTotal  decimal.Decimal
	CreditTotal decimal.Decimal
}

// Difference is the absolute debit/credit gap.
func (e Entry) Difference() decimal.Decimal {
	return e.DebitTotal.Sub(e.CreditTotal).Abs()
}

// Header is the CSV header for anomaly-log.csv.
const Header = "timestamp,record_id,description,debit_total,credit_total,difference"

const (
	numFields    = 6
	logDir       = "logs"
	logFile      = "logs/anomaly-log.csv"
	colTimestamp = 0
	colRecordID  = 1
	colDesc      = 2
	colDebit     = 3
	colCredit    = 4
	colDiff      = 5
)

// MarshalEntry converts an Entry to a CSV row.
func MarshalEntry(e Entry) []string {
	row := make([]string, numFields)
	row[colTimestamp] = e.Timestamp.Format(time.RFC3339)
	row[colRecordID] = e.RecordID
	row[colDesc] = e.Description
	row[colDebit] = e.DebitTotal.StringFixed(2)
	row[colCredit] = e.CreditTotal.StringFixed(2)
	row[colDiff] = e.Difference().StringFixed(2)
	return row
}

// UnmarshalEntry converts a CSV row to an Entry.
func UnmarshalEntry(record []string) (Entry, error) {
	if len(record) != numFields {
		return Entry{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	ts, err := time.Parse(time.RFC3339, record[colTimestamp])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing timestamp %q: %w", record[colTimestamp], err)
	}

	debit, err := decimal.NewFromString(record[colDebit])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing debit_total %q: %w", record[colDebit], err)
	}
	credit, err := decimal.NewFromString(record[colCredit])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing credit_total %q: %w", record[colCredit], err)
	}

	return Entry{
		Timestamp:   ts,
		RecordID:    record[colRecordID],
		Description: record[colDesc],
		DebitTotal:  debit,
		CreditTotal: credit,
	}, nil
}

// Append writes entries to <root>/logs/anomaly-log.csv, creating the file
// and header if needed.
func Append(root string, entries []Entry) error {
	dir := filepath.Join(root, logDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating logs dir: %w", err)
	}

	path := filepath.Join(root, logFile)
	needsHeader := false
	if _, err := os.Stat(path); os.IsNotExist(err) {
		needsHeader = true
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening anomaly log: %w", err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	defer cw.Flush()

	if needsHeader {
		if err := cw.Write(strings.Split(Header, ",")); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}

	for i, e := range entries {
		if err := cw.Write(MarshalEntry(e)); err != nil {
			return fmt.Errorf("writing entry %d: %w", i, err)
		}
	}

	return cw.Error()
}

// Read returns all entries from <root>/logs/anomaly-log.csv, or nil if the
// file does not exist.
func Read(root string) ([]Entry, error) {
	path := filepath.Join(root, logFile)
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening anomaly log: %w", err)
	}
	defer f.Close()

	return readEntries(f)
}

func readEntries(r io.Reader) ([]Entry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading anomaly log CSV: %w", err)
	}

	if len(records) <= 1 {
		return nil, nil
	}

	var entries []Entry
	for i, rec := range records[1:] {
		e, err := UnmarshalEntry(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}
