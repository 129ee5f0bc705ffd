package ports

import (
	"context"

	"github.com/bnema/balanceline/internal/domain"
)

type AccountConfigRepository interface {
	// Get returns domain.ErrNotConfigured when no configuration was saved.
	Get(ctx context.Context) (domain.AccountConfigRecord, error)
	Save(ctx context.Context, record domain.AccountConfigRecord) error
	Delete(ctx context.Context) error
}

// AccountConfigSource yields the account-quota configuration with its access
// token resolved.
type AccountConfigSource interface {
	Load(ctx context.Context) (domain.AccountConfig, error)
}
