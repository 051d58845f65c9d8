package model

import "github.com/shopspring/decimal"

// Side is the double-entry side of a journal entry.
type Side string

const (
	SideDebit  Side = "DEBIT"
	SideCredit Side = "CREDIT"
)

// JournalEntry is one leg of a journal record. Amount is never negative;
// direction is carried entirely by Side.
type JournalEntry struct {
	Account AccountKey
	Amount  decimal.Decimal
	Side    Side
}

// JournalRecord is one balanced double-entry transaction. Records always have
// exactly two entries; an unbalanced pair is a logged anomaly, not an error.
type JournalRecord struct {
	ID          string
	Date        Date
	Description string
	Category    string
	Entries     []JournalEntry
	Balances    BalanceSnapshot // set during ledger replay
}

// DebitTotal sums the debit legs.
func (r JournalRecord) DebitTotal() decimal.Decimal {
	return r.sideTotal(SideDebit)
}

// CreditTotal sums the credit legs.
func (r JournalRecord) CreditTotal() decimal.Decimal {
	return r.sideTotal(SideCredit)
}

func (r JournalRecord) sideTotal(side Side) decimal.Decimal {
	total := decimal.Zero
	for _, e := range r.Entries {
		if e.Side == side {
			total = total.Add(e.Amount)
		}
	}
	return total
}

// BalanceSnapshot is a point-in-time copy of every account balance, taken
// after a record is applied during replay.
type BalanceSnapshot map[AccountKey]decimal.Decimal

// Clone returns an independent copy so later replay steps cannot mutate a
// snapshot already attached to a record.
func (s BalanceSnapshot) Clone() BalanceSnapshot {
	out := make(BalanceSnapshot, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}
