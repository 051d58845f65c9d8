// Package report renders a plain-text summary of one batch run.
package report

import (
	"fmt"
	"io"
	"sort"

	"github.com/tally-dev/tally/internal/accounts"
	"github.com/tally-dev/tally/internal/model"
)

// Write prints final balances, category statistics and the verification
// verdict. Liability balances are shown negated so a growing debt reads as
// a negative number, the way a bank statement would show it.
func Write(w io.Writer, reg *accounts.Registry, balances model.BalanceSnapshot, records []model.JournalRecord, balanced bool) error {
	fmt.Fprintln(w, "Account balances:")
	for _, acct := range reg.All() {
		bal := balances[acct.Key]
		if acct.Type == model.AccountTypeLiability {
			bal = bal.Neg()
		}
		fmt.Fprintf(w, "  %-20s $%s\n", acct.Name, bal.StringFixed(2))
	}

	fmt.Fprintf(w, "\nTransactions: %d\n", len(records))

	counts := categoryCounts(records)
	if len(counts) > 0 {
		fmt.Fprintln(w, "\nCategory breakdown:")
		for _, c := range counts {
			fmt.Fprintf(w, "  %-20s %d\n", c.name, c.count)
		}
	}

	verdict := "balanced"
	if !balanced {
		verdict = "NOT balanced"
	}
	fmt.Fprintf(w, "\nDouble-entry accounting is %s\n", verdict)
	return nil
}

type categoryCount struct {
	name  string
	count int
}

// categoryCounts tallies records per category, most frequent first, name
// order on ties so output is stable.
func categoryCounts(records []model.JournalRecord) []categoryCount {
	byName := make(map[string]int)
	for _, rec := range records {
		byName[rec.Category]++
	}

	out := make([]categoryCount, 0, len(byName))
	for name, count := range byName {
		out = append(out, categoryCount{name: name, count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].count != out[j].count {
			return out[i].count > out[j].count
		}
		return out[i].name < out[j].name
	})
	return out
}
