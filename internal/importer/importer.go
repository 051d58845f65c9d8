// Package importer reads per-account bank statement CSV exports.
package importer

import (
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
	"time"
)

// Row is one statement line before normalization. All fields are raw text;
// the pipeline decides what they mean.
type Row struct {
	Date        string
	Amount      string
	Description string
	Balance     string
}

// Parser converts one statement file into raw rows.
type Parser interface {
	Parse(r io.Reader) ([]Row, error)
	Format() string
}

// Registry holds named parsers.
type Registry struct {
	parsers map[string]Parser
}

// NewRegistry creates an empty parser registry.
func NewRegistry() *Registry {
	return &Registry{parsers: make(map[string]Parser)}
}

// Register adds a parser. Panics on duplicate format.
func (r *Registry) Register(p Parser) {
	key := strings.ToLower(p.Format())
	if _, ok := r.parsers[key]; ok {
		panic("duplicate parser format: " + key)
	}
	r.parsers[key] = p
}

// Get returns the parser for format, or nil.
func (r *Registry) Get(format string) Parser {
	return r.parsers[strings.ToLower(format)]
}

// DefaultRegistry returns a registry with all built-in parsers.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(&CommBankParser{})
	return r
}

// statementDirFormat is the DD-MM-YYYY layout of statement drop directories.
const statementDirFormat = "02-01-2006"

var statementDirPattern = regexp.MustCompile(`^\d{2}-\d{2}-\d{4}$`)

// LatestStatementDir finds the newest DD-MM-YYYY directory under root.
func LatestStatementDir(root string) (string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return "", fmt.Errorf("reading statements dir: %w", err)
	}

	var latest string
	var latestDate time.Time
	for _, e := range entries {
		if !e.IsDir() || !statementDirPattern.MatchString(e.Name()) {
			continue
		}
		d, err := time.Parse(statementDirFormat, e.Name())
		if err != nil {
			continue
		}
		if latest == "" || d.After(latestDate) {
			latest, latestDate = e.Name(), d
		}
	}
	if latest == "" {
		return "", fmt.Errorf("no DD-MM-YYYY statement directories in %s", root)
	}
	return latest, nil
}
