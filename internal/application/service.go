package application

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bnema/balanceline/internal/domain"
	"github.com/bnema/balanceline/internal/ports"
)

const AccessTokenSecretKey = "balanceline/account/access_token"

var (
	ErrAccessTokenRequired = errors.New("access token is required")
	ErrInvalidUserID       = errors.New("user id must be positive")
	ErrInvalidAmount       = errors.New("exchange rate and quota per unit must not be negative")
)

// Service manages the optional account-quota configuration. The access token
// goes to the secret store; the repository only keeps its reference.
type Service struct {
	repo  ports.AccountConfigRepository
	store ports.SecretStore
}

var _ ports.AccountConfigSource = (*Service)(nil)

func NewService(repo ports.AccountConfigRepository, store ports.SecretStore) *Service {
	return &Service{repo: repo, store: store}
}

func (s *Service) Load(ctx context.Context) (domain.AccountConfig, error) {
	record, err := s.repo.Get(ctx)
	if err != nil {
		return domain.AccountConfig{}, fmt.Errorf("get account config: %w", err)
	}

	token, err := s.store.Get(ctx, record.AccessTokenRef)
	if err != nil {
		return domain.AccountConfig{}, fmt.Errorf("load access token: %w", err)
	}

	return domain.AccountConfig{
		AccessToken:  token,
		UserID:       record.UserID,
		ExchangeRate: record.ExchangeRate,
		QuotaPerUnit: record.QuotaPerUnit,
	}.WithDefaults(), nil
}

func (s *Service) SetAccountConfig(ctx context.Context, cmd SetAccountConfigCommand) error {
	token := strings.TrimSpace(cmd.AccessToken)
	if token == "" {
		return ErrAccessTokenRequired
	}
	if cmd.UserID <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidUserID, cmd.UserID)
	}
	if cmd.ExchangeRate.IsNegative() || cmd.QuotaPerUnit.IsNegative() {
		return ErrInvalidAmount
	}

	previous, err := s.repo.Get(ctx)
	hadPrevious := err == nil
	if err != nil && !errors.Is(err, domain.ErrNotConfigured) {
		return fmt.Errorf("get account config: %w", err)
	}

	// Remember the token being overwritten so a failed save can put it back.
	previousToken, err := s.store.Get(ctx, AccessTokenSecretKey)
	hadPreviousToken := err == nil
	if err != nil && !errors.Is(err, domain.ErrSecretNotFound) {
		return fmt.Errorf("read current access token: %w", err)
	}

	if err := s.store.Put(ctx, AccessTokenSecretKey, token); err != nil {
		return fmt.Errorf("store access token: %w", err)
	}

	record := domain.AccountConfigRecord{
		AccessTokenRef: AccessTokenSecretKey,
		UserID:         cmd.UserID,
		ExchangeRate:   cmd.ExchangeRate,
		QuotaPerUnit:   cmd.QuotaPerUnit,
	}
	if err := s.repo.Save(ctx, record); err != nil {
		var rollbackErr error
		if hadPreviousToken {
			rollbackErr = s.store.Put(ctx, AccessTokenSecretKey, previousToken)
		} else {
			rollbackErr = s.store.Delete(ctx, AccessTokenSecretKey)
		}
		if rollbackErr != nil {
			return fmt.Errorf("save account config and rollback access token: %w", errors.Join(err, rollbackErr))
		}

		return fmt.Errorf("save account config: %w", err)
	}

	if hadPrevious && previous.AccessTokenRef != "" && previous.AccessTokenRef != AccessTokenSecretKey {
		if err := s.store.Delete(ctx, previous.AccessTokenRef); err != nil {
			return fmt.Errorf("delete previous access token: %w", err)
		}
	}

	return nil
}

// ClearAccountConfig is a no-op when nothing is configured.
func (s *Service) ClearAccountConfig(ctx context.Context) error {
	record, err := s.repo.Get(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrNotConfigured) {
			return nil
		}
		return fmt.Errorf("get account config: %w", err)
	}

	if err := s.repo.Delete(ctx); err != nil {
		return fmt.Errorf("delete account config: %w", err)
	}

	if err := s.store.Delete(ctx, record.AccessTokenRef); err != nil {
		if restoreErr := s.repo.Save(ctx, record); restoreErr != nil {
			return fmt.Errorf("delete access token and restore account config: %w", errors.Join(err, restoreErr))
		}
		return fmt.Errorf("delete access token: %w", err)
	}

	return nil
}
