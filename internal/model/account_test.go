package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAccountKey(t *testing.T) {
	key, err := ParseAccountKey("credit_card")
	require.NoError(t, err)
	assert.Equal(t, CreditCard, key)
	assert.Equal(t, "credit_card", key.String())

	key, err = ParseAccountKey("transfer")
	require.NoError(t, err)
	assert.Equal(t, Transfer, key)

	_, err = ParseAccountKey("mystery")
	require.Error(t, err)
}

func TestParseAccountType(t *testing.T) {
	typ, err := ParseAccountType("liability")
	require.NoError(t, err)
	assert.Equal(t, AccountTypeLiability, typ)

	_, err = ParseAccountType("chequing")
	require.Error(t, err)
}

func TestLedgerAccount_Real(t *testing.T) {
	assert.True(t, LedgerAccount{Key: Saver, ExternalID: "acct-saver"}.Real())
	assert.False(t, LedgerAccount{Key: Expense}.Real())
}
