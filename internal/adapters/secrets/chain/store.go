package chain

import (
	"context"
	"errors"
	"fmt"

	filestore "github.com/bnema/balanceline/internal/adapters/secrets/file"
	passstore "github.com/bnema/balanceline/internal/adapters/secrets/pass"
	"github.com/bnema/balanceline/internal/logger"
	"github.com/bnema/balanceline/internal/ports"
	"go.uber.org/zap"
)

// Store reads and writes through primary, falling back on failure. Delete
// clears both backends so a removed secret cannot resurface from the
// fallback.
type Store struct {
	primary  ports.SecretStore
	fallback ports.SecretStore
}

var _ ports.SecretStore = (*Store)(nil)

var (
	errNilPrimaryStore  = errors.New("primary secret store is nil")
	errNilFallbackStore = errors.New("fallback secret store is nil")
)

func NewStore(primary ports.SecretStore, fallback ports.SecretStore) (*Store, error) {
	if primary == nil {
		return nil, errNilPrimaryStore
	}
	if fallback == nil {
		return nil, errNilFallbackStore
	}

	return &Store{primary: primary, fallback: fallback}, nil
}

func NewPassFirstWithFileFallback(fileRoot string) (*Store, error) {
	return NewStore(passstore.NewStore(), filestore.NewStore(fileRoot))
}

func (s *Store) Put(ctx context.Context, key string, value string) error {
	err := s.primary.Put(ctx, key, value)
	if err == nil || shouldSkipFallback(err) {
		return err
	}

	if fallbackErr := s.fallback.Put(ctx, key, value); fallbackErr != nil {
		return combine("put", err, fallbackErr)
	}
	logFallback(ctx, "put", key, err)

	return nil
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	value, err := s.primary.Get(ctx, key)
	if err == nil || shouldSkipFallback(err) {
		return value, err
	}

	value, fallbackErr := s.fallback.Get(ctx, key)
	if fallbackErr != nil {
		return "", combine("get", err, fallbackErr)
	}
	logFallback(ctx, "get", key, err)

	return value, nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	err := s.primary.Delete(ctx, key)
	if shouldSkipFallback(err) {
		return err
	}
	if errors.Is(err, passstore.ErrUnavailable) {
		err = nil
	}
	if err != nil {
		err = fmt.Errorf("primary backend delete failed: %w", err)
	}

	fallbackErr := s.fallback.Delete(ctx, key)
	if fallbackErr != nil {
		fallbackErr = fmt.Errorf("fallback backend delete failed: %w", fallbackErr)
	}

	return errors.Join(err, fallbackErr)
}

func shouldSkipFallback(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

func combine(op string, primaryErr, fallbackErr error) error {
	return fmt.Errorf("primary backend %s failed: %w; fallback backend %s failed: %w", op, primaryErr, op, fallbackErr)
}

// logFallback stays at debug level for a missing pass binary, which is the
// normal case on hosts without pass.
func logFallback(ctx context.Context, op, key string, primaryErr error) {
	log := logger.FromContext(ctx).With(zap.String("op", op), zap.String("key", key), zap.Error(primaryErr))
	if errors.Is(primaryErr, passstore.ErrUnavailable) {
		log.Debug("secret served by file fallback")
		return
	}
	log.Warn("primary secret backend failed, used file fallback")
}
