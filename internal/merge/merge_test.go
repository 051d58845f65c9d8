package merge

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tally-dev/tally/internal/export"
)

func tx(id, settledAt, value, category string) export.Transaction {
	return export.Transaction{
		ID:        id,
		SettledAt: settledAt + "T00:00:00+10:00",
		Amount:    export.Money{CurrencyCode: "AUD", Value: value},
		Category:  category,
	}
}

func TestTransactions_BankSideWins(t *testing.T) {
	ours := []export.Transaction{tx("local-1", "2024-03-01", "45.00", "groceries")}
	theirs := []export.Transaction{tx("bank-1", "2024-03-01", "45.00", "good-life")}

	merged := Transactions(ours, theirs)
	require.Len(t, merged, 1)
	assert.Equal(t, "bank-1", merged[0].ID)
	assert.Equal(t, "good-life", merged[0].Category)
}

func TestTransactions_LocalCategoryFillsGap(t *testing.T) {
	ours := []export.Transaction{tx("local-1", "2024-03-01", "45.00", "groceries")}
	theirs := []export.Transaction{tx("bank-1", "2024-03-01", "45.00", "")}

	merged := Transactions(ours, theirs)
	require.Len(t, merged, 1)
	assert.Equal(t, "bank-1", merged[0].ID)
	assert.Equal(t, "groceries", merged[0].Category)
}

func TestTransactions_KeepsUnmatchedFromBothSides(t *testing.T) {
	ours := []export.Transaction{tx("local-1", "2024-03-01", "45.00", "groceries")}
	theirs := []export.Transaction{tx("bank-1", "2024-03-05", "12.00", "dining")}

	merged := Transactions(ours, theirs)
	require.Len(t, merged, 2)
	// Sorted by settledAt descending.
	assert.Equal(t, "bank-1", merged[0].ID)
	assert.Equal(t, "local-1", merged[1].ID)
}

func TestTransactions_DuplicateAmountsMatchOneToOne(t *testing.T) {
	ours := []export.Transaction{
		tx("local-1", "2024-03-01", "45.00", "groceries"),
		tx("local-2", "2024-03-01", "45.00", "dining"),
	}
	theirs := []export.Transaction{tx("bank-1", "2024-03-01", "45.00", "")}

	merged := Transactions(ours, theirs)
	require.Len(t, merged, 2)

	ids := []string{merged[0].ID, merged[1].ID}
	assert.Contains(t, ids, "bank-1")
	assert.Contains(t, ids, "local-2")
}

func TestAccounts(t *testing.T) {
	ours := []export.Account{
		{ID: "local-cc", DisplayName: "Credit Card", Balance: export.Money{Value: "45.00"}},
		{ID: "local-only", DisplayName: "Shoebox"},
	}
	theirs := []export.Account{
		{ID: "bank-cc", DisplayName: "Credit Card", Balance: export.Money{Value: "99.99"}},
		{ID: "bank-only", DisplayName: "Round Ups"},
	}

	merged := Accounts(ours, theirs)
	require.Len(t, merged, 3)

	// Bank identity wins but the locally replayed balance is kept.
	assert.Equal(t, "bank-cc", merged[0].ID)
	assert.Equal(t, "45.00", merged[0].Balance.Value)
	assert.Equal(t, "local-only", merged[1].ID)
	assert.Equal(t, "bank-only", merged[2].ID)
}

func TestLoadDocuments(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "transactions.json")
	require.NoError(t, export.WriteTransactionDocument(path, []export.Transaction{{ID: "rec-1"}}))

	doc, err := LoadTransactions(path)
	require.NoError(t, err)
	require.Len(t, doc.Data, 1)
	assert.Equal(t, "rec-1", doc.Data[0].ID)

	// A missing file is an empty document, not an error.
	empty, err := LoadAccounts(filepath.Join(dir, "absent.json"))
	require.NoError(t, err)
	assert.Empty(t, empty.Data)
}

func TestLoadTransactions_BadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.json")
	require.NoError(t, os.WriteFile(path, []byte("{"), 0o644))

	_, err := LoadTransactions(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing")
}
