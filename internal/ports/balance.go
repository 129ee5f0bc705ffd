package ports

import (
	"context"

	"github.com/bnema/balanceline/internal/domain"
)

type UpstreamClient interface {
	FetchAccountQuota(ctx context.Context, identity domain.AccountIdentity, cfg domain.AccountConfig) (domain.BalanceData, error)
	FetchBilling(ctx context.Context, identity domain.AccountIdentity) (domain.BalanceData, error)
}

// BalanceMemo holds values resolved earlier in the same process.
type BalanceMemo interface {
	Get(key domain.CacheKey) (domain.BalanceData, bool)
	Set(key domain.CacheKey, data domain.BalanceData)
}

// BalanceCache is the durable last-known-good store. Read reports false for
// missing or unreadable records.
type BalanceCache interface {
	Read(ctx context.Context, key domain.CacheKey) (domain.CacheEntry, bool)
	Write(ctx context.Context, key domain.CacheKey, data domain.BalanceData) error
}

type ResolutionObserver interface {
	ObserveTier(tier string, outcome string)
	ObserveUpstream(tier string, seconds float64)
}
