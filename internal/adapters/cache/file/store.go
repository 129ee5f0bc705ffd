package file

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bnema/balanceline/internal/domain"
	"github.com/bnema/balanceline/internal/fsutil"
	"github.com/bnema/balanceline/internal/logger"
	"github.com/bnema/balanceline/internal/ports"
	toml "github.com/pelletier/go-toml/v2"
	"go.uber.org/zap"
)

const (
	cacheDirMode  = 0o700
	cacheFileMode = 0o600
	recordExt     = ".toml"
)

// Store keeps one TOML record per cache key. Records are replaced by
// rename, so concurrent readers see either the previous or the next
// complete record.
type Store struct {
	root  string
	clock ports.Clock
}

var _ ports.BalanceCache = (*Store)(nil)

func NewStore(root string, clock ports.Clock) *Store {
	if clock == nil {
		clock = ports.SystemClock{}
	}

	return &Store{root: filepath.Clean(root), clock: clock}
}

func (s *Store) Path(key domain.CacheKey) (string, error) {
	trimmed := strings.TrimSpace(string(key))
	if trimmed == "" {
		return "", errors.New("cache key is empty")
	}
	if strings.ContainsAny(trimmed, `/\`) || strings.HasPrefix(trimmed, ".") {
		return "", fmt.Errorf("invalid cache key %q", key)
	}

	return filepath.Join(s.root, trimmed+recordExt), nil
}

// Read fails closed: missing, unreadable, corrupt or foreign records are
// all reported as absent.
func (s *Store) Read(ctx context.Context, key domain.CacheKey) (domain.CacheEntry, bool) {
	if err := ctx.Err(); err != nil {
		return domain.CacheEntry{}, false
	}

	log := logger.FromContext(ctx).With(zap.String("component", "balance_cache"))

	path, err := s.Path(key)
	if err != nil {
		log.Debug("skip balance cache read", zap.Error(err))
		return domain.CacheEntry{}, false
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			log.Warn("read balance cache file", zap.String("path", path), zap.Error(err))
		}
		return domain.CacheEntry{}, false
	}

	var record recordSchema
	if err := toml.Unmarshal(data, &record); err != nil {
		log.Warn("decode balance cache file", zap.String("path", path), zap.Error(err))
		return domain.CacheEntry{}, false
	}
	record.applyDefaults()
	if err := record.validateVersion(); err != nil {
		log.Warn("ignore balance cache file", zap.String("path", path), zap.Error(err))
		return domain.CacheEntry{}, false
	}

	entry, err := fromRecordSchema(record)
	if err != nil {
		log.Warn("ignore balance cache file", zap.String("path", path), zap.Error(err))
		return domain.CacheEntry{}, false
	}
	if entry.Key != key {
		log.Warn("ignore balance cache file with foreign key", zap.String("path", path))
		return domain.CacheEntry{}, false
	}

	return entry, true
}

func (s *Store) Write(ctx context.Context, key domain.CacheKey, data domain.BalanceData) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	path, err := s.Path(key)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrPersistence, err)
	}

	encoded, err := toml.Marshal(toRecordSchema(key, data, s.clock.Now()))
	if err != nil {
		return fmt.Errorf("%w: encode balance cache record: %w", domain.ErrPersistence, err)
	}

	if err := fsutil.WriteFileAtomic(path, encoded, cacheFileMode, cacheDirMode); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrPersistence, err)
	}

	return nil
}
