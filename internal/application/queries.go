package application

import (
	"time"

	"github.com/bnema/balanceline/internal/domain"
	"github.com/samber/lo"
)

// Tier names one step of the resolution chain.
type Tier string

const (
	TierConfig       Tier = "config"
	TierMemo         Tier = "memo"
	TierAccountQuota Tier = "account_quota"
	TierBilling      Tier = "billing"
	TierDurable      Tier = "durable"
)

type Attempt struct {
	Tier Tier
	Err  error
}

// Resolution is the outcome of one Resolve call. Source is empty when every
// tier was exhausted.
type Resolution struct {
	Key        domain.CacheKey
	Balance    domain.BalanceData
	Source     Tier
	Stale      bool
	CapturedAt time.Time
	Attempts   []Attempt
}

func (r Resolution) Available() bool {
	return r.Source != ""
}

func (r Resolution) Failures() []Attempt {
	return lo.Filter(r.Attempts, func(attempt Attempt, _ int) bool {
		return attempt.Err != nil
	})
}
