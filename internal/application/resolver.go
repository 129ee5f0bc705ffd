package application

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/bnema/balanceline/internal/domain"
	"github.com/bnema/balanceline/internal/logger"
	"github.com/bnema/balanceline/internal/ports"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

var ErrCacheMiss = errors.New("no durable balance record")

const (
	outcomeHit           = "hit"
	outcomeMiss          = "miss"
	outcomeError         = "error"
	outcomeSkipped       = "skipped"
	outcomeNotConfigured = "not_configured"
)

type ResolverDeps struct {
	Credentials   ports.CredentialSource
	AccountConfig ports.AccountConfigSource
	Upstream      ports.UpstreamClient
	Memo          ports.BalanceMemo
	Cache         ports.BalanceCache
	Clock         ports.Clock
	Observer      ports.ResolutionObserver

	// Timeout bounds the remote tiers of one resolution. Zero means no bound.
	Timeout time.Duration
	// ConfigTimeout bounds loading the account-quota configuration, which
	// may shell out to pass and wait on gpg-agent.
	ConfigTimeout time.Duration
}

// Resolver walks memo, account quota, billing and the durable cache in that
// order and stops at the first tier that yields a balance. Failures of
// individual tiers are recorded on the Resolution, never returned.
type Resolver struct {
	credentials   ports.CredentialSource
	accountConfig ports.AccountConfigSource
	upstream      ports.UpstreamClient
	memo          ports.BalanceMemo
	cache         ports.BalanceCache
	clock         ports.Clock
	observer      ports.ResolutionObserver
	timeout       time.Duration
	configTimeout time.Duration

	flight singleflight.Group

	metaMu sync.Mutex
	meta   map[domain.CacheKey]memoMeta
}

// memoMeta keeps what the memo port does not carry, so a memo hit reports
// the same staleness as the resolution that filled it.
type memoMeta struct {
	capturedAt time.Time
	stale      bool
}

func NewResolver(deps ResolverDeps) *Resolver {
	if deps.Clock == nil {
		deps.Clock = ports.SystemClock{}
	}
	if deps.Observer == nil {
		deps.Observer = nopObserver{}
	}

	return &Resolver{
		credentials:   deps.Credentials,
		accountConfig: deps.AccountConfig,
		upstream:      deps.Upstream,
		memo:          deps.Memo,
		cache:         deps.Cache,
		clock:         deps.Clock,
		observer:      deps.Observer,
		timeout:       deps.Timeout,
		configTimeout: deps.ConfigTimeout,
		meta:          make(map[domain.CacheKey]memoMeta),
	}
}

// Identity reports the account the resolver would query.
func (r *Resolver) Identity() (domain.AccountIdentity, error) {
	if r.credentials == nil {
		return domain.AccountIdentity{}, domain.ErrNotConfigured
	}

	baseURL, _ := r.credentials.BaseURL()
	apiKey, _ := r.credentials.APIKey()
	identity := domain.NewAccountIdentity(baseURL, apiKey)
	if err := identity.Validate(); err != nil {
		return domain.AccountIdentity{}, fmt.Errorf("%w: base url or api key missing", err)
	}

	return identity, nil
}

func (r *Resolver) Resolve(ctx context.Context) Resolution {
	identity, err := r.Identity()
	if err != nil {
		r.observer.ObserveTier(string(TierConfig), outcomeNotConfigured)
		logger.FromContext(ctx).Debug("balance source not configured", zap.Error(err))
		return Resolution{Attempts: []Attempt{{Tier: TierConfig, Err: err}}}
	}

	key := identity.Key()
	if resolution, ok := r.peekMemo(key); ok {
		r.observer.ObserveTier(string(TierMemo), outcomeHit)
		return resolution
	}
	r.observer.ObserveTier(string(TierMemo), outcomeMiss)

	value, _, _ := r.flight.Do(string(key), func() (any, error) {
		// A concurrent flight may have filled the memo already.
		if resolution, ok := r.peekMemo(key); ok {
			r.observer.ObserveTier(string(TierMemo), outcomeHit)
			return resolution, nil
		}
		return r.resolveRemote(ctx, identity, key), nil
	})

	return value.(Resolution)
}

func (r *Resolver) peekMemo(key domain.CacheKey) (Resolution, bool) {
	data, ok := r.memo.Get(key)
	if !ok {
		return Resolution{}, false
	}

	r.metaMu.Lock()
	meta := r.meta[key]
	r.metaMu.Unlock()

	return Resolution{
		Key:        key,
		Balance:    data,
		Source:     TierMemo,
		Stale:      meta.stale,
		CapturedAt: meta.capturedAt,
	}, true
}

func (r *Resolver) remember(key domain.CacheKey, data domain.BalanceData, meta memoMeta) {
	r.metaMu.Lock()
	r.meta[key] = meta
	r.metaMu.Unlock()

	r.memo.Set(key, data)
}

func (r *Resolver) resolveRemote(ctx context.Context, identity domain.AccountIdentity, key domain.CacheKey) Resolution {
	log := logger.FromContext(ctx)
	var attempts []Attempt

	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	if cfg, err := r.loadAccountConfig(ctx); err != nil {
		attempts = append(attempts, Attempt{Tier: TierAccountQuota, Err: err})
		r.observer.ObserveTier(string(TierAccountQuota), outcomeError)
		log.Warn("account quota config unavailable", zap.Error(err))
	} else if cfg.QuotaEnabled() {
		data, err := r.fetch(ctx, TierAccountQuota, func(ctx context.Context) (domain.BalanceData, error) {
			return r.upstream.FetchAccountQuota(ctx, identity, cfg)
		})
		if err == nil {
			return r.commit(ctx, key, data, TierAccountQuota, attempts)
		}
		attempts = append(attempts, Attempt{Tier: TierAccountQuota, Err: err})
	} else {
		r.observer.ObserveTier(string(TierAccountQuota), outcomeSkipped)
	}

	data, err := r.fetch(ctx, TierBilling, func(ctx context.Context) (domain.BalanceData, error) {
		return r.upstream.FetchBilling(ctx, identity)
	})
	if err == nil {
		return r.commit(ctx, key, data, TierBilling, attempts)
	}
	attempts = append(attempts, Attempt{Tier: TierBilling, Err: err})

	if r.cache != nil {
		// The last known value is still served when the budget ran out.
		if entry, ok := r.cache.Read(context.WithoutCancel(ctx), key); ok {
			r.remember(key, entry.Balance, memoMeta{capturedAt: entry.CapturedAt, stale: true})
			r.observer.ObserveTier(string(TierDurable), outcomeHit)
			log.Info("serving last known balance",
				zap.Time("captured_at", entry.CapturedAt),
				zap.Duration("age", entry.Age(r.clock.Now())),
			)
			return Resolution{
				Key:        key,
				Balance:    entry.Balance,
				Source:     TierDurable,
				Stale:      true,
				CapturedAt: entry.CapturedAt,
				Attempts:   attempts,
			}
		}
	}
	attempts = append(attempts, Attempt{Tier: TierDurable, Err: ErrCacheMiss})
	r.observer.ObserveTier(string(TierDurable), outcomeMiss)

	return Resolution{Key: key, Attempts: attempts}
}

// loadAccountConfig treats a missing configuration as "quota disabled"
// rather than a failure.
func (r *Resolver) loadAccountConfig(ctx context.Context) (domain.AccountConfig, error) {
	if r.accountConfig == nil {
		return domain.AccountConfig{}, nil
	}

	if r.configTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.configTimeout)
		defer cancel()
	}

	cfg, err := r.accountConfig.Load(ctx)
	if errors.Is(err, domain.ErrNotConfigured) {
		return domain.AccountConfig{}, nil
	}

	return cfg, err
}

func (r *Resolver) fetch(ctx context.Context, tier Tier, call func(context.Context) (domain.BalanceData, error)) (domain.BalanceData, error) {
	started := r.clock.Now()
	data, err := call(ctx)
	r.observer.ObserveUpstream(string(tier), r.clock.Now().Sub(started).Seconds())

	if err != nil {
		r.observer.ObserveTier(string(tier), outcomeError)
		logger.FromContext(ctx).Warn("balance query failed", zap.String("tier", string(tier)), zap.Error(err))
		return domain.BalanceData{}, err
	}

	r.observer.ObserveTier(string(tier), outcomeHit)
	return data, nil
}

func (r *Resolver) commit(ctx context.Context, key domain.CacheKey, data domain.BalanceData, tier Tier, attempts []Attempt) Resolution {
	capturedAt := r.clock.Now()
	r.remember(key, data, memoMeta{capturedAt: capturedAt})

	if r.cache != nil {
		if err := r.cache.Write(context.WithoutCancel(ctx), key, data); err != nil {
			attempts = append(attempts, Attempt{Tier: TierDurable, Err: err})
			logger.FromContext(ctx).Warn("persist balance failed", zap.Error(err))
		}
	}

	return Resolution{
		Key:        key,
		Balance:    data,
		Source:     tier,
		CapturedAt: capturedAt,
		Attempts:   attempts,
	}
}

type nopObserver struct{}

func (nopObserver) ObserveTier(string, string)      {}
func (nopObserver) ObserveUpstream(string, float64) {}
