package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tally-dev/tally/internal/accounts"
	"github.com/tally-dev/tally/internal/model"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	require.Len(t, cfg.Accounts, model.NumAccounts)
	assert.Equal(t, "credit_card", cfg.Accounts[0].Key)
	assert.NotEmpty(t, cfg.Accounts[0].ExternalID)
	assert.Empty(t, cfg.Accounts[5].ExternalID, "synthetic buckets have no external id")

	assert.Equal(t, "credit_card", cfg.References["xx5784"])
	assert.Equal(t, "saver", cfg.References["xx2467"])

	// Category order is match precedence; groceries must outrank transfers.
	assert.Equal(t, "groceries", cfg.Categories[0].Name)
	assert.Contains(t, cfg.TransferMarkers, "COMMBANK APP")
	require.Len(t, cfg.Statements, 5)
	assert.Equal(t, "combined_transactions.json", cfg.Export.TransactionsFile)
}

func TestDefault_BuildsValidRegistry(t *testing.T) {
	cfg := Default()

	accts, err := cfg.LedgerAccounts()
	require.NoError(t, err)
	refs, err := cfg.ReferenceTable()
	require.NoError(t, err)

	_, err = accounts.NewRegistry(accts, refs)
	require.NoError(t, err)
}

func TestSaveLoadRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tally.yaml")
	cfg := Default()
	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading config")
}

func TestLedgerAccounts_UnknownKey(t *testing.T) {
	cfg := &Config{Accounts: []AccountConfig{{Key: "mystery", Name: "Mystery", Type: "asset"}}}
	_, err := cfg.LedgerAccounts()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown account key")
}

func TestLedgerAccounts_UnknownType(t *testing.T) {
	cfg := &Config{Accounts: []AccountConfig{{Key: "saver", Name: "Saver", Type: "chequing"}}}
	_, err := cfg.LedgerAccounts()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown account type")
}

func TestReferenceTable_UnknownAccount(t *testing.T) {
	cfg := &Config{References: map[string]string{"xx0001": "mystery"}}
	_, err := cfg.ReferenceTable()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `reference "xx0001"`)
}

func TestCategoryTable_PreservesOrder(t *testing.T) {
	cfg := &Config{Categories: []CategoryConfig{
		{Name: "b", Keywords: []string{"B"}},
		{Name: "a", Keywords: []string{"A"}},
	}}
	table := cfg.CategoryTable()
	require.Len(t, table, 2)
	assert.Equal(t, "b", table[0].Name)
	assert.Equal(t, "a", table[1].Name)
}
