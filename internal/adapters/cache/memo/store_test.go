package memo

import (
	"testing"

	"github.com/bnema/balanceline/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreGetMissingKey(t *testing.T) {
	t.Parallel()

	_, ok := NewStore().Get("missing")
	assert.False(t, ok)
}

func TestStoreSetOverwritesAndIsolatesKeys(t *testing.T) {
	t.Parallel()

	store := NewStore()
	first := domain.NewAccountIdentity("https://gw.example.com", "sk-1").Key()
	second := domain.NewAccountIdentity("https://gw.example.com", "sk-2").Key()

	store.Set(first, domain.BalanceData{Balance: decimal.NewFromInt(1)})
	store.Set(first, domain.BalanceData{Balance: decimal.NewFromInt(2)})

	got, ok := store.Get(first)
	require.True(t, ok)
	assert.True(t, decimal.NewFromInt(2).Equal(got.Balance))

	_, ok = store.Get(second)
	assert.False(t, ok)
}
