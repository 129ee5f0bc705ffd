package toml

import "fmt"

const currentSchemaVersion = 1

type fileSchema struct {
	Version int          `toml:"version"`
	Quota   *quotaSchema `toml:"quota,omitempty"`
}

func (s *fileSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentSchemaVersion
	}
}

func (s fileSchema) validateVersion() error {
	if s.Version > currentSchemaVersion {
		return fmt.Errorf("unsupported balance config schema version %d (current %d)", s.Version, currentSchemaVersion)
	}

	return nil
}

// Amounts are decimal strings so that rates survive a round trip exactly.
type quotaSchema struct {
	AccessTokenRef string `toml:"access_token_ref"`
	UserID         int64  `toml:"user_id"`
	ExchangeRate   string `toml:"exchange_rate,omitempty"`
	QuotaPerUnit   string `toml:"quota_per_unit,omitempty"`
}
