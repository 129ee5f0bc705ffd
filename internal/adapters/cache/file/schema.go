package file

import (
	"fmt"
	"time"

	"github.com/bnema/balanceline/internal/domain"
	"github.com/shopspring/decimal"
)

const currentRecordVersion = 1

// recordSchema is one cached balance. Amounts are decimal strings so the
// record round-trips without float rounding.
type recordSchema struct {
	Version     int    `toml:"version"`
	Key         string `toml:"key"`
	CapturedAt  string `toml:"captured_at"`
	Balance     string `toml:"balance"`
	Used        string `toml:"used"`
	Total       string `toml:"total"`
	IsUnlimited bool   `toml:"is_unlimited"`
}

func (s *recordSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentRecordVersion
	}
}

func (s recordSchema) validateVersion() error {
	if s.Version > currentRecordVersion {
		return fmt.Errorf("unsupported balance cache schema version %d (current %d)", s.Version, currentRecordVersion)
	}

	return nil
}

func toRecordSchema(key domain.CacheKey, data domain.BalanceData, capturedAt time.Time) recordSchema {
	return recordSchema{
		Version:     currentRecordVersion,
		Key:         string(key),
		CapturedAt:  capturedAt.UTC().Format(time.RFC3339Nano),
		Balance:     data.Balance.String(),
		Used:        data.Used.String(),
		Total:       data.Total.String(),
		IsUnlimited: data.IsUnlimited,
	}
}

func fromRecordSchema(record recordSchema) (domain.CacheEntry, error) {
	capturedAt, err := time.Parse(time.RFC3339Nano, record.CapturedAt)
	if err != nil {
		return domain.CacheEntry{}, fmt.Errorf("parse captured_at: %w", err)
	}

	amounts := make([]decimal.Decimal, 0, 3)
	for _, raw := range []string{record.Balance, record.Used, record.Total} {
		amount, err := decimal.NewFromString(raw)
		if err != nil {
			return domain.CacheEntry{}, fmt.Errorf("parse amount %q: %w", raw, err)
		}
		amounts = append(amounts, amount)
	}

	return domain.CacheEntry{
		Key: domain.CacheKey(record.Key),
		Balance: domain.BalanceData{
			Balance:     amounts[0],
			Used:        amounts[1],
			Total:       amounts[2],
			IsUnlimited: record.IsUnlimited,
		},
		CapturedAt: capturedAt,
	}, nil
}
