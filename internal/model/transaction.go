package model

import "github.com/shopspring/decimal"

// RawTransaction is one normalized, classified statement row awaiting
// journaling. It is single-entry: just the movement seen from the owning
// account's side. Consumption state is not part of the value; the journal
// builder tracks it separately for the duration of a batch.
type RawTransaction struct {
	Account     AccountKey
	Date        Date
	Amount      decimal.Decimal // signed: negative = money out / new debt
	Description string
	Category    string
	IsTransfer  bool
	AccountRef  string          // masked counterparty reference like "xx5784", empty if none
	Balance     decimal.Decimal // statement running balance when the export carries one
}
