// Package export projects journal records and balances into the external
// transaction schema. It is a mechanical boundary projection: the double
// entry detail stays ledger-internal, only movements touching real bank
// accounts are visible outside.
package export

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/shopspring/decimal"

	"github.com/tally-dev/tally/internal/accounts"
	"github.com/tally-dev/tally/internal/model"
)

const (
	currencyCode  = "AUD"
	statusSettled = "SETTLED"
	ownership     = "INDIVIDUAL"
)

// Money is a currency amount in both decimal-string and base-unit form.
type Money struct {
	CurrencyCode string `json:"currencyCode"`
	Value        string `json:"value"`
	BaseUnits    int64  `json:"valueInBaseUnits"`
}

// AccountRef links a transaction to an external account id.
type AccountRef struct {
	ID string `json:"id"`
}

// Transaction is the canonical output transaction.
type Transaction struct {
	ID              string      `json:"id"`
	Status          string      `json:"status"`
	Description     string      `json:"description"`
	Amount          Money       `json:"amount"`
	SettledAt       string      `json:"settledAt"`
	CreatedAt       string      `json:"createdAt"`
	Category        string      `json:"category"`
	Account         AccountRef  `json:"account"`
	TransferAccount *AccountRef `json:"transferAccount,omitempty"`
}

// Account is the canonical output account. Only externally identified
// accounts are exported; synthetic buckets never appear.
type Account struct {
	ID            string `json:"id"`
	DisplayName   string `json:"displayName"`
	AccountType   string `json:"accountType"`
	OwnershipType string `json:"ownershipType"`
	Balance       Money  `json:"balance"`
}

// Links carries the pagination stubs the schema requires.
type Links struct {
	Prev *string `json:"prev"`
	Next *string `json:"next"`
}

// TransactionDocument is the on-disk transaction export.
type TransactionDocument struct {
	Data  []Transaction `json:"data"`
	Links Links         `json:"links"`
}

// AccountDocument is the on-disk account export.
type AccountDocument struct {
	Data  []Account `json:"data"`
	Links Links     `json:"links"`
}

// Exporter projects records through the account registry.
type Exporter struct {
	reg *accounts.Registry
}

// NewExporter creates an Exporter.
func NewExporter(reg *accounts.Registry) *Exporter {
	return &Exporter{reg: reg}
}

// Transactions projects journal records into output transactions. The first
// entry touching a real account is the primary leg; records with no real leg
// are dropped. A second real leg marks an inter-account transfer and is
// linked as the counterparty.
func (e *Exporter) Transactions(records []model.JournalRecord) []Transaction {
	var out []Transaction
	for _, rec := range records {
		tx, ok := e.project(rec)
		if !ok {
			continue
		}
		out = append(out, tx)
	}
	return out
}

func (e *Exporter) project(rec model.JournalRecord) (Transaction, bool) {
	primary := -1
	for i, entry := range rec.Entries {
		if e.reg.Real(entry.Account) {
			primary = i
			break
		}
	}
	if primary < 0 {
		return Transaction{}, false
	}

	leg := rec.Entries[primary]
	ts := timestamp(rec.Date)

	tx := Transaction{
		ID:          rec.ID,
		Status:      statusSettled,
		Description: rec.Description,
		Amount:      money(leg.Amount),
		SettledAt:   ts,
		CreatedAt:   ts,
		Category:    rec.Category,
		Account:     AccountRef{ID: e.reg.Get(leg.Account).ExternalID},
	}

	for i, entry := range rec.Entries {
		if i == primary || !e.reg.Real(entry.Account) || entry.Account == leg.Account {
			continue
		}
		tx.TransferAccount = &AccountRef{ID: e.reg.Get(entry.Account).ExternalID}
		break
	}
	return tx, true
}

// Accounts projects final balances into output accounts, skipping synthetic
// buckets.
func (e *Exporter) Accounts(balances model.BalanceSnapshot) []Account {
	var out []Account
	for _, acct := range e.reg.All() {
		if !acct.Real() {
			continue
		}
		out = append(out, Account{
			ID:            acct.ExternalID,
			DisplayName:   acct.Name,
			AccountType:   acct.ExternalSubtype,
			OwnershipType: ownership,
			Balance:       money(balances[acct.Key]),
		})
	}
	return out
}

// WriteTransactionDocument writes a transaction document to path as
// indented JSON.
func WriteTransactionDocument(path string, txs []Transaction) error {
	return writeJSON(path, TransactionDocument{Data: txs})
}

// WriteAccountDocument writes an account document to path as indented JSON.
func WriteAccountDocument(path string, accts []Account) error {
	return writeJSON(path, AccountDocument{Data: accts})
}

func writeJSON(path string, doc any) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling export: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("writing export: %w", err)
	}
	return nil
}

func money(amount decimal.Decimal) Money {
	return Money{
		CurrencyCode: currencyCode,
		Value:        amount.StringFixed(2),
		BaseUnits:    amount.Mul(decimal.NewFromInt(100)).Round(0).IntPart(),
	}
}

func timestamp(d model.Date) string {
	return d.String() + "T00:00:00+10:00"
}
