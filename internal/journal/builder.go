// Package journal converts single-entry statement rows into balanced
// double-entry journal records, inferring inter-account transfers along the
// way. This is the core of the pipeline: it needs the whole pool in memory
// because a record's counterparty may sit in a different account's statement.
package journal

import (
	"sort"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/tally-dev/tally/internal/accounts"
	"github.com/tally-dev/tally/internal/model"
)

// tolerance is the maximum debit/credit difference treated as balanced.
var tolerance = decimal.RequireFromString("0.01")

// matchWindowDays bounds how far apart in time the two legs of one transfer
// may be recorded.
const matchWindowDays = 2

// Anomaly records a journal record that failed the post-construction balance
// check. Anomalous records still flow downstream; the anomaly is a visible
// diagnostic, not a rejection.
type Anomaly struct {
	RecordID    string
	Description string
	DebitTotal  decimal.Decimal
	CreditTotal decimal.Decimal
}

// Difference returns the absolute debit/credit gap.
func (a Anomaly) Difference() decimal.Decimal {
	return a.DebitTotal.Sub(a.CreditTotal).Abs()
}

// Builder owns the transaction pool for one batch run. The pool is an
// append-only arena; journaled and consumed states live in parallel bitsets
// that never leave the builder.
type Builder struct {
	reg *accounts.Registry
	log zerolog.Logger

	pool      []model.RawTransaction
	journaled []bool
	consumed  []bool
	order     []int // pool indices, date-sorted, insertion order on ties

	anomalies []Anomaly
}

// NewBuilder creates a Builder over an empty pool.
func NewBuilder(reg *accounts.Registry, log zerolog.Logger) *Builder {
	return &Builder{reg: reg, log: log}
}

// Add appends one transaction to the pool.
func (b *Builder) Add(tx model.RawTransaction) {
	b.pool = append(b.pool, tx)
}

// AddAll appends a batch of transactions to the pool.
func (b *Builder) AddAll(txs []model.RawTransaction) {
	b.pool = append(b.pool, txs...)
}

// Anomalies returns the balance-check diagnostics from the last Build.
func (b *Builder) Anomalies() []Anomaly {
	return b.anomalies
}

// Build journals the whole pool in ascending date order (insertion order on
// ties) and returns the resulting records. Rows consumed as a transfer
// counterparty are skipped: their movement is already captured by the record
// that consumed them.
func (b *Builder) Build() []model.JournalRecord {
	b.journaled = make([]bool, len(b.pool))
	b.consumed = make([]bool, len(b.pool))
	b.anomalies = nil

	b.order = make([]int, len(b.pool))
	for i := range b.order {
		b.order[i] = i
	}
	sort.SliceStable(b.order, func(i, j int) bool {
		return b.pool[b.order[i]].Date.Before(b.pool[b.order[j]].Date)
	})

	var records []model.JournalRecord
	for _, idx := range b.order {
		if b.consumed[idx] {
			continue
		}

		rec := b.journalOne(idx)
		b.journaled[idx] = true
		records = append(records, rec)
	}
	return records
}

func (b *Builder) journalOne(idx int) model.JournalRecord {
	tx := b.pool[idx]
	rec := model.JournalRecord{
		ID:          uuid.NewString(),
		Date:        tx.Date,
		Description: tx.Description,
		Category:    tx.Category,
	}

	switch b.reg.Type(tx.Account) {
	case model.AccountTypeLiability:
		b.buildLiability(&rec, idx)
	case model.AccountTypeAsset:
		b.buildAsset(&rec, idx)
	}

	if a, unbalanced := balanceAnomaly(rec); unbalanced {
		b.anomalies = append(b.anomalies, a)
		b.log.Warn().
			Str("record_id", a.RecordID).
			Str("description", a.Description).
			Str("debit_total", a.DebitTotal.StringFixed(2)).
			Str("credit_total", a.CreditTotal.StringFixed(2)).
			Str("difference", a.Difference().StringFixed(2)).
			Msg("journal record is not balanced")
	}
	return rec
}

// buildLiability journals a credit-card style row. Negative amounts are new
// spending on the card; non-negative amounts are payments onto it.
func (b *Builder) buildLiability(rec *model.JournalRecord, idx int) {
	tx := b.pool[idx]
	if tx.Amount.IsNegative() {
		abs := tx.Amount.Abs()
		addEntry(rec, model.Expense, abs, model.SideDebit)
		addEntry(rec, tx.Account, abs, model.SideCredit)
		return
	}

	addEntry(rec, tx.Account, tx.Amount, model.SideDebit)
	if tx.IsTransfer {
		b.transferCredit(rec, idx)
	} else {
		addEntry(rec, model.Transfer, tx.Amount, model.SideCredit)
	}
}

// buildAsset journals a bank-account row. Negative amounts are outflows,
// non-negative amounts inflows.
func (b *Builder) buildAsset(rec *model.JournalRecord, idx int) {
	tx := b.pool[idx]
	if tx.Amount.IsNegative() {
		abs := tx.Amount.Abs()
		if tx.IsTransfer {
			b.transferDebit(rec, idx)
		} else {
			addEntry(rec, model.Expense, abs, model.SideDebit)
		}
		addEntry(rec, tx.Account, abs, model.SideCredit)
		return
	}

	addEntry(rec, tx.Account, tx.Amount, model.SideDebit)
	if tx.IsTransfer {
		b.transferCredit(rec, idx)
	} else {
		addEntry(rec, model.Income, tx.Amount, model.SideCredit)
	}
}

// transferDebit resolves the debit side of an outgoing transfer: the masked
// reference names the destination when the table knows it, otherwise the
// generic transfer bucket absorbs the movement.
func (b *Builder) transferDebit(rec *model.JournalRecord, idx int) {
	tx := b.pool[idx]
	abs := tx.Amount.Abs()
	if tx.AccountRef != "" {
		if dest, ok := b.reg.Resolve(tx.AccountRef); ok {
			addEntry(rec, dest, abs, model.SideDebit)
			return
		}
	}
	addEntry(rec, model.Transfer, abs, model.SideDebit)
}

// transferCredit resolves the credit side of an incoming transfer. Liability
// owners first look for the counterpart row in the pool; when found, that row
// is consumed so the movement is journaled exactly once. Otherwise the masked
// reference, then the generic transfer bucket.
func (b *Builder) transferCredit(rec *model.JournalRecord, idx int) {
	tx := b.pool[idx]

	if b.reg.Type(tx.Account) == model.AccountTypeLiability {
		if match, ok := b.findCounterpart(idx); ok {
			addEntry(rec, b.pool[match].Account, tx.Amount, model.SideCredit)
			b.consumed[match] = true
			b.log.Debug().
				Str("description", tx.Description).
				Str("counterpart", b.pool[match].Description).
				Str("amount", tx.Amount.StringFixed(2)).
				Msg("matched transfer counterpart")
			return
		}
	}

	if tx.AccountRef != "" {
		if src, ok := b.reg.Resolve(tx.AccountRef); ok {
			addEntry(rec, src, tx.Amount, model.SideCredit)
			return
		}
	}
	addEntry(rec, model.Transfer, tx.Amount, model.SideCredit)
}

// findCounterpart scans the pool, in the same stable order Build uses, for
// the other leg of a transfer: a different account, both dates valid and at
// most two days apart, equal absolute amount, opposite sign convention. The
// first qualifying row wins; there is no scoring among ties. Rows already
// journaled or consumed are not candidates.
func (b *Builder) findCounterpart(self int) (int, bool) {
	tx := b.pool[self]
	if !tx.Date.Valid() {
		return 0, false
	}

	for _, j := range b.order {
		if j == self || b.journaled[j] || b.consumed[j] {
			continue
		}
		other := b.pool[j]
		if other.Account == tx.Account {
			continue
		}
		if !tx.Date.WithinDays(other.Date, matchWindowDays) {
			continue
		}
		if !other.Amount.Abs().Sub(tx.Amount.Abs()).Abs().LessThan(tolerance) {
			continue
		}
		if other.Amount.IsNegative() != tx.Amount.IsPositive() {
			continue
		}
		return j, true
	}
	return 0, false
}

func addEntry(rec *model.JournalRecord, account model.AccountKey, amount decimal.Decimal, side model.Side) {
	rec.Entries = append(rec.Entries, model.JournalEntry{Account: account, Amount: amount, Side: side})
}

// balanceAnomaly checks the debit/credit identity for one record.
func balanceAnomaly(rec model.JournalRecord) (Anomaly, bool) {
	debits, credits := rec.DebitTotal(), rec.CreditTotal()
	if debits.Sub(credits).Abs().LessThan(tolerance) {
		return Anomaly{}, false
	}
	return Anomaly{
		RecordID:    rec.ID,
		Description: rec.Description,
		DebitTotal:  debits,
		CreditTotal: credits,
	}, true
}
