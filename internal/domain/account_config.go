package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

var (
	DefaultExchangeRate = decimal.RequireFromString("7.3")
	DefaultQuotaPerUnit = decimal.NewFromInt(500_000)
)

// AccountConfig enables the account-quota query. It is optional: without
// both an access token and a user id only the billing query is used.
type AccountConfig struct {
	AccessToken  string
	UserID       int64
	ExchangeRate decimal.Decimal
	QuotaPerUnit decimal.Decimal
}

func (c AccountConfig) QuotaEnabled() bool {
	return strings.TrimSpace(c.AccessToken) != "" && c.UserID > 0
}

func (c AccountConfig) WithDefaults() AccountConfig {
	if c.ExchangeRate.IsZero() {
		c.ExchangeRate = DefaultExchangeRate
	}
	if c.QuotaPerUnit.IsZero() {
		c.QuotaPerUnit = DefaultQuotaPerUnit
	}

	return c
}

// AccountConfigRecord is the persisted form of AccountConfig. The access
// token stays in the secret store and is referenced by AccessTokenRef.
type AccountConfigRecord struct {
	AccessTokenRef string
	UserID         int64
	ExchangeRate   decimal.Decimal
	QuotaPerUnit   decimal.Decimal
}
