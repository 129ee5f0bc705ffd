package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	DefaultCurrencySymbol = "¥"
	UnlimitedGlyph        = "∞"

	displayPrecision = 2
)

// UnlimitedThreshold is the hard limit at or above which the billing
// endpoints mean "no ceiling".
var UnlimitedThreshold = decimal.NewFromInt(100_000_000)

var minorUnitsPerMajor = decimal.NewFromInt(100)

// BalanceData is the normalized balance of one account in display currency.
type BalanceData struct {
	Balance     decimal.Decimal `json:"balance"`
	Used        decimal.Decimal `json:"used"`
	Total       decimal.Decimal `json:"total"`
	IsUnlimited bool            `json:"is_unlimited"`
}

// AccountQuota holds raw quota units reported by the account-level endpoint.
type AccountQuota struct {
	Remaining int64
	Used      int64
}

// BillingSnapshot holds the subscription hard limit (major units) and the
// cumulative usage (minor units) reported by the billing endpoints.
type BillingSnapshot struct {
	HardLimit  decimal.Decimal
	UsageMinor decimal.Decimal
}

// BalanceFromQuota converts quota units into currency:
// amount = units / quotaPerUnit * exchangeRate.
func BalanceFromQuota(quota AccountQuota, quotaPerUnit, exchangeRate decimal.Decimal) BalanceData {
	convert := func(units int64) decimal.Decimal {
		if quotaPerUnit.IsZero() {
			return decimal.Zero
		}
		return decimal.NewFromInt(units).Div(quotaPerUnit).Mul(exchangeRate)
	}

	return BalanceData{
		Balance: convert(quota.Remaining),
		Used:    convert(quota.Used),
		Total:   convert(quota.Remaining + quota.Used),
	}
}

func BalanceFromBilling(snapshot BillingSnapshot) BalanceData {
	total := snapshot.HardLimit
	used := snapshot.UsageMinor.Div(minorUnitsPerMajor)
	unlimited := total.GreaterThanOrEqual(UnlimitedThreshold)

	balance := decimal.Zero
	if !unlimited {
		balance = total.Sub(used)
	}

	return BalanceData{
		Balance:     balance,
		Used:        used,
		Total:       total,
		IsUnlimited: unlimited,
	}
}

func (b BalanceData) FormatDisplay(symbol string) string {
	if b.IsUnlimited {
		return UnlimitedGlyph
	}

	return symbol + b.Balance.StringFixed(displayPrecision)
}

func (b BalanceData) Display() string {
	return b.FormatDisplay(DefaultCurrencySymbol)
}

// CacheEntry is the last-known-good balance persisted for one cache key.
type CacheEntry struct {
	Key        CacheKey
	Balance    BalanceData
	CapturedAt time.Time
}

func (e CacheEntry) Age(now time.Time) time.Duration {
	if e.CapturedAt.IsZero() {
		return 0
	}

	return now.Sub(e.CapturedAt)
}
