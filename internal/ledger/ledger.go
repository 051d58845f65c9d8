// Package ledger replays journal records into running per-account balances
// and checks the global accounting identity.
package ledger

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/tally-dev/tally/internal/accounts"
	"github.com/tally-dev/tally/internal/model"
)

var tolerance = decimal.RequireFromString("0.01")

// Ledger holds running balances for every registered account. Balances are
// owned exclusively by the replay step; snapshots handed out are copies.
type Ledger struct {
	reg      *accounts.Registry
	balances [model.NumAccounts]decimal.Decimal
}

// New creates a Ledger with every balance at zero.
func New(reg *accounts.Registry) *Ledger {
	return &Ledger{reg: reg}
}

// Replay applies records in ascending date order (insertion order on ties),
// resetting balances first, and attaches a value-copy balance snapshot to
// each record after its entries are applied.
func (l *Ledger) Replay(records []model.JournalRecord) {
	for i := range l.balances {
		l.balances[i] = decimal.Zero
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Date.Before(records[j].Date)
	})

	for i := range records {
		for _, e := range records[i].Entries {
			l.apply(e)
		}
		records[i].Balances = l.Snapshot()
	}
}

// apply adjusts one balance: a debit increases asset and expense accounts
// and decreases liability, equity and income accounts; a credit mirrors.
func (l *Ledger) apply(e model.JournalEntry) {
	delta := e.Amount
	if e.Side == model.SideCredit {
		delta = delta.Neg()
	}
	switch l.reg.Type(e.Account) {
	case model.AccountTypeLiability, model.AccountTypeEquity, model.AccountTypeIncome:
		delta = delta.Neg()
	}
	l.balances[e.Account] = l.balances[e.Account].Add(delta)
}

// Balance returns the current balance for one account.
func (l *Ledger) Balance(key model.AccountKey) decimal.Decimal {
	return l.balances[key]
}

// Snapshot returns a value copy of every balance.
func (l *Ledger) Snapshot() model.BalanceSnapshot {
	snap := make(model.BalanceSnapshot, model.NumAccounts)
	for i := range l.balances {
		snap[model.AccountKey(i)] = l.balances[i]
	}
	return snap
}

// Verify checks the global accounting identity over the current balances:
// the asset and expense side must equal the liability, equity and income
// side within tolerance. It never mutates state.
func (l *Ledger) Verify() bool {
	left, right := decimal.Zero, decimal.Zero
	for i := range l.balances {
		switch l.reg.Type(model.AccountKey(i)) {
		case model.AccountTypeAsset, model.AccountTypeExpense:
			left = left.Add(l.balances[i])
		default:
			right = right.Add(l.balances[i])
		}
	}
	return left.Sub(right).Abs().LessThan(tolerance)
}

// VerifyRaw checks the accounting identity directly over raw statement rows,
// before any journaling: liability amounts are sign-flipped so both sides of
// every internal movement cancel, then positive balances must equal the
// absolute value of negative ones. Returns the verdict and the per-account
// single-entry balances it was computed from.
func VerifyRaw(reg *accounts.Registry, rows []model.RawTransaction) (bool, model.BalanceSnapshot) {
	balances := make(model.BalanceSnapshot)
	for _, tx := range rows {
		amount := tx.Amount
		if reg.Type(tx.Account) == model.AccountTypeLiability {
			amount = amount.Neg()
		}
		balances[tx.Account] = balances[tx.Account].Add(amount)
	}

	debits, credits := decimal.Zero, decimal.Zero
	for _, bal := range balances {
		if bal.IsPositive() {
			debits = debits.Add(bal)
		} else {
			credits = credits.Add(bal.Abs())
		}
	}
	return debits.Sub(credits).Abs().LessThan(tolerance), balances
}
