// Package normalize turns raw statement text fields into canonical values.
// Nothing here fails: bad dates keep their original text, bad amounts become
// zero, and the callers decide what to do with the degraded value.
package normalize

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tally-dev/tally/internal/model"
)

// statementDateFormat is the day-first format used by bank statement exports.
const statementDateFormat = "02/01/2006"

// ParseDate parses DD/MM/YYYY date text. Unparsable input is preserved as-is
// inside the returned Date; it is never an error.
func ParseDate(s string) model.Date {
	t, err := time.Parse(statementDateFormat, s)
	if err != nil {
		return model.RawDate(s)
	}
	return model.NewDate(t)
}

// ParseAmount parses statement amount text: thousands separators are
// stripped, parenthesized values read as negative, stray wrapping quotes
// removed. Non-numeric input yields zero, which callers filter out before
// the row can enter the pool.
func ParseAmount(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, ",", "")
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		s = "-" + s[1:len(s)-1]
	}
	s = strings.Trim(s, `"`)

	amt, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return amt
}

// CleanDescription trims wrapping quotes and collapses internal whitespace
// runs to single spaces.
func CleanDescription(s string) string {
	s = strings.Trim(s, `"`)
	return strings.Join(strings.Fields(s), " ")
}
