package model

import "fmt"

// AccountType classifies ledger accounts by their debit/credit sign convention.
type AccountType string

const (
	AccountTypeAsset     AccountType = "asset"
	AccountTypeLiability AccountType = "liability"
	AccountTypeExpense   AccountType = "expense"
	AccountTypeIncome    AccountType = "income"
	AccountTypeEquity    AccountType = "equity"
)

// ParseAccountType converts a config string to an AccountType.
func ParseAccountType(s string) (AccountType, error) {
	switch AccountType(s) {
	case AccountTypeAsset, AccountTypeLiability, AccountTypeExpense, AccountTypeIncome, AccountTypeEquity:
		return AccountType(s), nil
	}
	return "", fmt.Errorf("unknown account type %q", s)
}

// AccountKey identifies one ledger account. The account set is closed: five
// real bank accounts plus three synthetic buckets.
type AccountKey uint8

const (
	CreditCard AccountKey = iota
	Debit
	EmergencyFund
	OldCreditCard
	Saver
	Expense
	Income
	Transfer

	// NumAccounts is the size of the closed account set.
	NumAccounts = int(Transfer) + 1
)

var accountKeyNames = [NumAccounts]string{
	CreditCard:    "credit_card",
	Debit:         "debit",
	EmergencyFund: "emergency_fund",
	OldCreditCard: "old_credit_card",
	Saver:         "saver",
	Expense:       "expense",
	Income:        "income",
	Transfer:      "transfer",
}

// String returns the stable config/export name for the key.
func (k AccountKey) String() string {
	if int(k) < NumAccounts {
		return accountKeyNames[k]
	}
	return fmt.Sprintf("account(%d)", uint8(k))
}

// ParseAccountKey converts a config string to an AccountKey.
func ParseAccountKey(s string) (AccountKey, error) {
	for i, name := range accountKeyNames {
		if name == s {
			return AccountKey(i), nil
		}
	}
	return 0, fmt.Errorf("unknown account key %q", s)
}

// LedgerAccount is one entry in the account registry. Real bank accounts carry
// an external identity; synthetic buckets (expense, income, transfer) do not.
type LedgerAccount struct {
	Key             AccountKey
	Name            string
	Type            AccountType
	ExternalID      string // empty for synthetic buckets
	ExternalSubtype string // e.g. TRANSACTIONAL or SAVER
}

// Real reports whether the account maps to an external bank account.
func (a LedgerAccount) Real() bool { return a.ExternalID != "" }
