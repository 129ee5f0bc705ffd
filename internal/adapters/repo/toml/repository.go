package toml

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/bnema/balanceline/internal/domain"
	"github.com/bnema/balanceline/internal/fsutil"
	"github.com/bnema/balanceline/internal/ports"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

const (
	BalancePathKey    = "balance.path"
	balanceFileMode   = 0o600
	balanceDirMode    = 0o700
	balanceConfigDir  = ".claude/balanceline"
	balanceConfigFile = "balance.toml"
)

// Repository persists the optional account-quota configuration. The access
// token itself is never written here, only the secret store reference.
type Repository struct {
	path string
	mu   *sync.RWMutex
}

var (
	lockRegistryMu sync.Mutex
	pathLockMap    = map[string]*sync.RWMutex{}
)

var _ ports.AccountConfigRepository = (*Repository)(nil)

func NewRepository(cfg *viper.Viper) (*Repository, error) {
	if cfg == nil {
		cfg = viper.New()
	}

	path := cfg.GetString(BalancePathKey)
	if path == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home directory: %w", err)
		}
		path = filepath.Join(homeDir, balanceConfigDir, balanceConfigFile)
	}

	path, err := normalizePath(path)
	if err != nil {
		return nil, err
	}

	return &Repository{path: path, mu: lockForPath(path)}, nil
}

func (r *Repository) Path() string {
	return r.path
}

func (r *Repository) Get(ctx context.Context) (domain.AccountConfigRecord, error) {
	if err := ctx.Err(); err != nil {
		return domain.AccountConfigRecord{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	file, err := r.readSchema()
	if err != nil {
		return domain.AccountConfigRecord{}, err
	}
	if file.Quota == nil || strings.TrimSpace(file.Quota.AccessTokenRef) == "" || file.Quota.UserID <= 0 {
		return domain.AccountConfigRecord{}, domain.ErrNotConfigured
	}

	return fromQuotaSchema(*file.Quota)
}

func (r *Repository) Save(ctx context.Context, record domain.AccountConfigRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if strings.TrimSpace(record.AccessTokenRef) == "" {
		return errors.New("access token reference is empty")
	}
	if record.UserID <= 0 {
		return fmt.Errorf("user id must be positive, got %d", record.UserID)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	file, err := r.readSchema()
	if err != nil {
		return err
	}

	quota := toQuotaSchema(record)
	file.Quota = &quota

	if err := ctx.Err(); err != nil {
		return err
	}

	return r.writeSchema(file)
}

func (r *Repository) Delete(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := os.Remove(r.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("delete balance config file: %w", err)
	}

	return nil
}

func (r *Repository) readSchema() (fileSchema, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fileSchema{Version: currentSchemaVersion}, nil
		}
		return fileSchema{}, fmt.Errorf("read balance config file: %w", err)
	}

	var file fileSchema
	if err := toml.Unmarshal(data, &file); err != nil {
		return fileSchema{}, fmt.Errorf("decode balance config file: %w", err)
	}
	if err := file.validateVersion(); err != nil {
		return fileSchema{}, err
	}
	file.applyDefaults()

	return file, nil
}

func normalizePath(path string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve balance config path: %w", err)
	}

	return filepath.Clean(absPath), nil
}

func lockForPath(path string) *sync.RWMutex {
	lockRegistryMu.Lock()
	defer lockRegistryMu.Unlock()

	if mu, ok := pathLockMap[path]; ok {
		return mu
	}

	mu := &sync.RWMutex{}
	pathLockMap[path] = mu
	return mu
}

func (r *Repository) writeSchema(file fileSchema) error {
	file.applyDefaults()

	data, err := toml.Marshal(file)
	if err != nil {
		return fmt.Errorf("encode balance config file: %w", err)
	}

	if err := fsutil.WriteFileAtomic(r.path, data, balanceFileMode, balanceDirMode); err != nil {
		return fmt.Errorf("write balance config file: %w", err)
	}

	return nil
}

func toQuotaSchema(record domain.AccountConfigRecord) quotaSchema {
	return quotaSchema{
		AccessTokenRef: record.AccessTokenRef,
		UserID:         record.UserID,
		ExchangeRate:   formatAmount(record.ExchangeRate),
		QuotaPerUnit:   formatAmount(record.QuotaPerUnit),
	}
}

func fromQuotaSchema(schema quotaSchema) (domain.AccountConfigRecord, error) {
	exchangeRate, err := parseAmount(schema.ExchangeRate)
	if err != nil {
		return domain.AccountConfigRecord{}, fmt.Errorf("decode exchange_rate: %w", err)
	}
	quotaPerUnit, err := parseAmount(schema.QuotaPerUnit)
	if err != nil {
		return domain.AccountConfigRecord{}, fmt.Errorf("decode quota_per_unit: %w", err)
	}

	return domain.AccountConfigRecord{
		AccessTokenRef: schema.AccessTokenRef,
		UserID:         schema.UserID,
		ExchangeRate:   exchangeRate,
		QuotaPerUnit:   quotaPerUnit,
	}, nil
}

// Zero means "use the default" and is left out of the file.
func formatAmount(value decimal.Decimal) string {
	if value.IsZero() {
		return ""
	}

	return value.String()
}

func parseAmount(raw string) (decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero, nil
	}

	return decimal.NewFromString(raw)
}
