package export

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tally-dev/tally/internal/accounts"
	"github.com/tally-dev/tally/internal/model"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func day(y int, m time.Month, d int) model.Date {
	return model.NewDate(time.Date(y, m, d, 0, 0, 0, 0, time.UTC))
}

func newTestExporter(t *testing.T) *Exporter {
	t.Helper()
	reg, err := accounts.NewRegistry([]model.LedgerAccount{
		{Key: model.CreditCard, Name: "Credit Card", Type: model.AccountTypeLiability, ExternalID: "acct-cc", ExternalSubtype: "TRANSACTIONAL"},
		{Key: model.Debit, Name: "Debit", Type: model.AccountTypeAsset, ExternalID: "acct-debit", ExternalSubtype: "TRANSACTIONAL"},
		{Key: model.EmergencyFund, Name: "Emergency Fund", Type: model.AccountTypeAsset, ExternalID: "acct-emergency", ExternalSubtype: "SAVER"},
		{Key: model.OldCreditCard, Name: "Old Credit Card", Type: model.AccountTypeLiability, ExternalID: "acct-old-cc", ExternalSubtype: "TRANSACTIONAL"},
		{Key: model.Saver, Name: "Saver", Type: model.AccountTypeAsset, ExternalID: "acct-saver", ExternalSubtype: "SAVER"},
		{Key: model.Expense, Name: "Expense", Type: model.AccountTypeExpense},
		{Key: model.Income, Name: "Income", Type: model.AccountTypeIncome},
		{Key: model.Transfer, Name: "Transfer", Type: model.AccountTypeEquity},
	}, nil)
	require.NoError(t, err)
	return NewExporter(reg)
}

func TestTransactions_PrimaryLeg(t *testing.T) {
	e := newTestExporter(t)
	txs := e.Transactions([]model.JournalRecord{
		{
			ID:          "rec-1",
			Date:        day(2024, 3, 1),
			Description: "WOOLWORTHS METRO",
			Category:    "groceries",
			Entries: []model.JournalEntry{
				{Account: model.Expense, Amount: dec("45.00"), Side: model.SideDebit},
				{Account: model.CreditCard, Amount: dec("45.00"), Side: model.SideCredit},
			},
		},
	})

	require.Len(t, txs, 1)
	tx := txs[0]
	assert.Equal(t, "rec-1", tx.ID)
	assert.Equal(t, "SETTLED", tx.Status)
	assert.Equal(t, "WOOLWORTHS METRO", tx.Description)
	assert.Equal(t, "groceries", tx.Category)
	assert.Equal(t, "AUD", tx.Amount.CurrencyCode)
	assert.Equal(t, "45.00", tx.Amount.Value)
	assert.Equal(t, int64(4500), tx.Amount.BaseUnits)
	assert.Equal(t, "2024-03-01T00:00:00+10:00", tx.SettledAt)
	assert.Equal(t, tx.SettledAt, tx.CreatedAt)
	assert.Equal(t, "acct-cc", tx.Account.ID)
	assert.Nil(t, tx.TransferAccount)
}

func TestTransactions_DropsRecordsWithoutRealLeg(t *testing.T) {
	e := newTestExporter(t)
	txs := e.Transactions([]model.JournalRecord{
		{
			ID:   "rec-synth",
			Date: day(2024, 3, 1),
			Entries: []model.JournalEntry{
				{Account: model.Expense, Amount: dec("10.00"), Side: model.SideDebit},
				{Account: model.Income, Amount: dec("10.00"), Side: model.SideCredit},
			},
		},
	})

	assert.Empty(t, txs)
}

func TestTransactions_LinksTransferCounterpart(t *testing.T) {
	e := newTestExporter(t)
	txs := e.Transactions([]model.JournalRecord{
		{
			ID:   "rec-transfer",
			Date: day(2024, 3, 2),
			Entries: []model.JournalEntry{
				{Account: model.CreditCard, Amount: dec("200.00"), Side: model.SideDebit},
				{Account: model.Saver, Amount: dec("200.00"), Side: model.SideCredit},
			},
		},
	})

	require.Len(t, txs, 1)
	assert.Equal(t, "acct-cc", txs[0].Account.ID)
	require.NotNil(t, txs[0].TransferAccount)
	assert.Equal(t, "acct-saver", txs[0].TransferAccount.ID)
}

func TestTransactions_InvalidDateKeepsRawText(t *testing.T) {
	e := newTestExporter(t)
	txs := e.Transactions([]model.JournalRecord{
		{
			ID:   "rec-raw",
			Date: model.RawDate("pending"),
			Entries: []model.JournalEntry{
				{Account: model.Debit, Amount: dec("5.00"), Side: model.SideDebit},
				{Account: model.Income, Amount: dec("5.00"), Side: model.SideCredit},
			},
		},
	})

	require.Len(t, txs, 1)
	assert.Equal(t, "pendingT00:00:00+10:00", txs[0].SettledAt)
}

func TestAccounts(t *testing.T) {
	e := newTestExporter(t)
	accts := e.Accounts(model.BalanceSnapshot{
		model.CreditCard: dec("45.00"),
		model.Debit:      dec("-12.30"),
		model.Expense:    dec("45.00"),
	})

	// Synthetic buckets never appear.
	require.Len(t, accts, 5)
	assert.Equal(t, "acct-cc", accts[0].ID)
	assert.Equal(t, "Credit Card", accts[0].DisplayName)
	assert.Equal(t, "TRANSACTIONAL", accts[0].AccountType)
	assert.Equal(t, "INDIVIDUAL", accts[0].OwnershipType)
	assert.Equal(t, "45.00", accts[0].Balance.Value)

	assert.Equal(t, "acct-debit", accts[1].ID)
	assert.Equal(t, "-12.30", accts[1].Balance.Value)
	assert.Equal(t, int64(-1230), accts[1].Balance.BaseUnits)
}

func TestWriteDocuments(t *testing.T) {
	dir := t.TempDir()
	txPath := filepath.Join(dir, "transactions.json")
	acctPath := filepath.Join(dir, "accounts.json")

	require.NoError(t, WriteTransactionDocument(txPath, []Transaction{{ID: "rec-1"}}))
	require.NoError(t, WriteAccountDocument(acctPath, nil))

	data, err := os.ReadFile(txPath)
	require.NoError(t, err)
	var doc TransactionDocument
	require.NoError(t, json.Unmarshal(data, &doc))
	require.Len(t, doc.Data, 1)
	assert.Equal(t, "rec-1", doc.Data[0].ID)
	assert.Nil(t, doc.Links.Prev)
	assert.Nil(t, doc.Links.Next)

	data, err = os.ReadFile(acctPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"links"`)
}
