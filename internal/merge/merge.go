// Package merge reconciles locally generated exports with a real Up Bank
// API export, preferring the bank's record when both describe the same
// movement.
package merge

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/tally-dev/tally/internal/export"
)

// txKey identifies a movement across both sources: settled day plus amount.
func txKey(tx export.Transaction) string {
	day, _, _ := strings.Cut(tx.SettledAt, "T")
	return day + "_" + tx.Amount.Value
}

// Transactions merges local transactions with an Up Bank export. Matching is
// by settled day and amount value; the bank side wins, with the local
// category carried over when the bank has none. Unmatched transactions from
// either side are kept. The result is sorted by settledAt descending.
func Transactions(ours, theirs []export.Transaction) []export.Transaction {
	lookup := make(map[string][]export.Transaction)
	for _, tx := range theirs {
		k := txKey(tx)
		lookup[k] = append(lookup[k], tx)
	}

	var merged []export.Transaction
	for _, our := range ours {
		k := txKey(our)
		candidates := lookup[k]
		if len(candidates) == 0 {
			merged = append(merged, our)
			continue
		}

		bank := candidates[0]
		lookup[k] = candidates[1:]
		if bank.Category == "" {
			bank.Category = our.Category
		}
		merged = append(merged, bank)
	}

	// Bank transactions nothing local matched are still part of history.
	for _, leftover := range lookup {
		merged = append(merged, leftover...)
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].SettledAt > merged[j].SettledAt
	})
	return merged
}

// Accounts merges local accounts with an Up Bank export by display name. The
// bank account wins except for the balance, which the local replay computed.
// Unmatched accounts from either side are kept.
func Accounts(ours, theirs []export.Account) []export.Account {
	lookup := make(map[string]export.Account, len(theirs))
	for _, acct := range theirs {
		lookup[acct.DisplayName] = acct
	}

	var merged []export.Account
	for _, our := range ours {
		bank, ok := lookup[our.DisplayName]
		if !ok {
			merged = append(merged, our)
			continue
		}
		delete(lookup, our.DisplayName)
		bank.Balance = our.Balance
		merged = append(merged, bank)
	}

	names := make([]string, 0, len(lookup))
	for name := range lookup {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		merged = append(merged, lookup[name])
	}
	return merged
}

// LoadTransactions reads a transaction document from path. A missing file is
// an empty document, matching how partial exports are merged.
func LoadTransactions(path string) (export.TransactionDocument, error) {
	var doc export.TransactionDocument
	err := loadJSON(path, &doc)
	return doc, err
}

// LoadAccounts reads an account document from path.
func LoadAccounts(path string) (export.AccountDocument, error) {
	var doc export.AccountDocument
	err := loadJSON(path, &doc)
	return doc, err
}

func loadJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	return nil
}
