// Package accounts holds the fixed ledger account registry and the masked
// reference table used to resolve transfer counterparties.
package accounts

import (
	"fmt"

	"github.com/tally-dev/tally/internal/model"
)

// Registry is the closed set of ledger accounts, indexed directly by
// AccountKey. It is validated once at construction and immutable afterwards,
// so lookups during journaling are plain array reads.
type Registry struct {
	table [model.NumAccounts]model.LedgerAccount
	refs  map[string]model.AccountKey
}

// NewRegistry builds a Registry from the configured account list and the
// reference table. Every account key must appear exactly once; references
// must point at real bank accounts.
func NewRegistry(accts []model.LedgerAccount, refs map[string]model.AccountKey) (*Registry, error) {
	r := &Registry{refs: make(map[string]model.AccountKey, len(refs))}

	seen := [model.NumAccounts]bool{}
	for _, a := range accts {
		if int(a.Key) >= model.NumAccounts {
			return nil, fmt.Errorf("account %q: key out of range", a.Name)
		}
		if seen[a.Key] {
			return nil, fmt.Errorf("account key %s registered twice", a.Key)
		}
		if _, err := model.ParseAccountType(string(a.Type)); err != nil {
			return nil, fmt.Errorf("account %s: %w", a.Key, err)
		}
		seen[a.Key] = true
		r.table[a.Key] = a
	}
	for i, ok := range seen {
		if !ok {
			return nil, fmt.Errorf("account key %s missing from registry", model.AccountKey(i))
		}
	}

	for ref, key := range refs {
		if int(key) >= model.NumAccounts || !seen[key] {
			return nil, fmt.Errorf("reference %q points at unknown account", ref)
		}
		if !r.table[key].Real() {
			return nil, fmt.Errorf("reference %q points at synthetic account %s", ref, key)
		}
		r.refs[ref] = key
	}

	return r, nil
}

// Get returns the account for a key.
func (r *Registry) Get(key model.AccountKey) model.LedgerAccount {
	return r.table[key]
}

// Type returns the accounting type for a key.
func (r *Registry) Type(key model.AccountKey) model.AccountType {
	return r.table[key].Type
}

// Real reports whether the key maps to an externally identified bank account.
func (r *Registry) Real(key model.AccountKey) bool {
	return r.table[key].Real()
}

// Resolve maps a masked statement reference like "xx5784" to an account key.
func (r *Registry) Resolve(ref string) (model.AccountKey, bool) {
	key, ok := r.refs[ref]
	return key, ok
}

// All returns every registered account in key order.
func (r *Registry) All() []model.LedgerAccount {
	out := make([]model.LedgerAccount, model.NumAccounts)
	copy(out, r.table[:])
	return out
}
