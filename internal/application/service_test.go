package application

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	tomlrepo "github.com/bnema/balanceline/internal/adapters/repo/toml"
	filestore "github.com/bnema/balanceline/internal/adapters/secrets/file"
	"github.com/bnema/balanceline/internal/domain"
	"github.com/bnema/balanceline/internal/ports/mocks"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setCommand() SetAccountConfigCommand {
	return SetAccountConfigCommand{
		AccessToken:  "access-tok",
		UserID:       42,
		ExchangeRate: decimal.RequireFromString("7.3"),
	}
}

func setRecord() domain.AccountConfigRecord {
	return domain.AccountConfigRecord{
		AccessTokenRef: AccessTokenSecretKey,
		UserID:         42,
		ExchangeRate:   decimal.RequireFromString("7.3"),
	}
}

func notFound() error {
	return fmt.Errorf("file secret: %w", domain.ErrSecretNotFound)
}

func TestServiceLoadResolvesToken(t *testing.T) {
	repo := mocks.NewMockAccountConfigRepository(t)
	store := mocks.NewMockSecretStore(t)
	service := NewService(repo, store)

	repo.EXPECT().Get(mockAnyContext()).Return(setRecord(), nil)
	store.EXPECT().Get(mockAnyContext(), AccessTokenSecretKey).Return("access-tok", nil)

	cfg, err := service.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "access-tok", cfg.AccessToken)
	assert.Equal(t, int64(42), cfg.UserID)
	assert.True(t, cfg.QuotaEnabled())
	assert.True(t, domain.DefaultQuotaPerUnit.Equal(cfg.QuotaPerUnit))
}

func TestServiceLoadPassesNotConfiguredThrough(t *testing.T) {
	repo := mocks.NewMockAccountConfigRepository(t)
	service := NewService(repo, mocks.NewMockSecretStore(t))

	repo.EXPECT().Get(mockAnyContext()).Return(domain.AccountConfigRecord{}, domain.ErrNotConfigured)

	_, err := service.Load(context.Background())
	require.ErrorIs(t, err, domain.ErrNotConfigured)
}

func TestServiceLoadFailsWhenTokenMissing(t *testing.T) {
	repo := mocks.NewMockAccountConfigRepository(t)
	store := mocks.NewMockSecretStore(t)
	service := NewService(repo, store)

	repo.EXPECT().Get(mockAnyContext()).Return(setRecord(), nil)
	store.EXPECT().Get(mockAnyContext(), AccessTokenSecretKey).Return("", notFound())

	_, err := service.Load(context.Background())
	require.ErrorIs(t, err, domain.ErrSecretNotFound)
	assert.NotErrorIs(t, err, domain.ErrNotConfigured)
}

func TestServiceSetAccountConfigSuccess(t *testing.T) {
	repo := mocks.NewMockAccountConfigRepository(t)
	store := mocks.NewMockSecretStore(t)
	service := NewService(repo, store)

	repo.EXPECT().Get(mockAnyContext()).Return(domain.AccountConfigRecord{}, domain.ErrNotConfigured)
	store.EXPECT().Get(mockAnyContext(), AccessTokenSecretKey).Return("", notFound())
	store.EXPECT().Put(mockAnyContext(), AccessTokenSecretKey, "access-tok").Return(nil)
	repo.EXPECT().Save(mockAnyContext(), setRecord()).Return(nil)

	require.NoError(t, service.SetAccountConfig(context.Background(), setCommand()))
}

func TestServiceSetAccountConfigValidatesInput(t *testing.T) {
	service := NewService(mocks.NewMockAccountConfigRepository(t), mocks.NewMockSecretStore(t))

	tests := []struct {
		name    string
		mutate  func(*SetAccountConfigCommand)
		wantErr error
	}{
		{name: "blank token", mutate: func(c *SetAccountConfigCommand) { c.AccessToken = "  " }, wantErr: ErrAccessTokenRequired},
		{name: "zero user", mutate: func(c *SetAccountConfigCommand) { c.UserID = 0 }, wantErr: ErrInvalidUserID},
		{name: "negative rate", mutate: func(c *SetAccountConfigCommand) { c.ExchangeRate = decimal.NewFromInt(-1) }, wantErr: ErrInvalidAmount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := setCommand()
			tt.mutate(&cmd)
			require.ErrorIs(t, service.SetAccountConfig(context.Background(), cmd), tt.wantErr)
		})
	}
}

func TestServiceSetAccountConfigFailsWhenSecretStorePutFails(t *testing.T) {
	repo := mocks.NewMockAccountConfigRepository(t)
	store := mocks.NewMockSecretStore(t)
	service := NewService(repo, store)

	repo.EXPECT().Get(mockAnyContext()).Return(domain.AccountConfigRecord{}, domain.ErrNotConfigured)
	store.EXPECT().Get(mockAnyContext(), AccessTokenSecretKey).Return("", notFound())
	store.EXPECT().Put(mockAnyContext(), AccessTokenSecretKey, "access-tok").Return(errors.New("pass locked"))

	err := service.SetAccountConfig(context.Background(), setCommand())
	require.Error(t, err)
	assert.ErrorContains(t, err, "store access token")
}

func TestServiceSetAccountConfigCompensatesNewTokenWhenSaveFails(t *testing.T) {
	repo := mocks.NewMockAccountConfigRepository(t)
	store := mocks.NewMockSecretStore(t)
	service := NewService(repo, store)

	saveErr := errors.New("disk full")
	repo.EXPECT().Get(mockAnyContext()).Return(domain.AccountConfigRecord{}, domain.ErrNotConfigured)
	store.EXPECT().Get(mockAnyContext(), AccessTokenSecretKey).Return("", notFound())
	store.EXPECT().Put(mockAnyContext(), AccessTokenSecretKey, "access-tok").Return(nil)
	repo.EXPECT().Save(mockAnyContext(), mock.Anything).Return(saveErr)
	store.EXPECT().Delete(mockAnyContext(), AccessTokenSecretKey).Return(nil)

	err := service.SetAccountConfig(context.Background(), setCommand())
	require.ErrorIs(t, err, saveErr)
	assert.ErrorContains(t, err, "save account config")
}

func TestServiceSetAccountConfigRestoresPreviousTokenWhenSaveFails(t *testing.T) {
	repo := mocks.NewMockAccountConfigRepository(t)
	store := mocks.NewMockSecretStore(t)
	service := NewService(repo, store)

	repo.EXPECT().Get(mockAnyContext()).Return(setRecord(), nil)
	store.EXPECT().Get(mockAnyContext(), AccessTokenSecretKey).Return("old-tok", nil)
	store.EXPECT().Put(mockAnyContext(), AccessTokenSecretKey, "access-tok").Return(nil).Once()
	repo.EXPECT().Save(mockAnyContext(), mock.Anything).Return(errors.New("disk full"))
	store.EXPECT().Put(mockAnyContext(), AccessTokenSecretKey, "old-tok").Return(nil).Once()

	err := service.SetAccountConfig(context.Background(), setCommand())
	require.Error(t, err)
}

func TestServiceSetAccountConfigReportsRollbackFailure(t *testing.T) {
	repo := mocks.NewMockAccountConfigRepository(t)
	store := mocks.NewMockSecretStore(t)
	service := NewService(repo, store)

	saveErr := errors.New("disk full")
	rollbackErr := errors.New("pass locked")
	repo.EXPECT().Get(mockAnyContext()).Return(domain.AccountConfigRecord{}, domain.ErrNotConfigured)
	store.EXPECT().Get(mockAnyContext(), AccessTokenSecretKey).Return("", notFound())
	store.EXPECT().Put(mockAnyContext(), AccessTokenSecretKey, "access-tok").Return(nil)
	repo.EXPECT().Save(mockAnyContext(), mock.Anything).Return(saveErr)
	store.EXPECT().Delete(mockAnyContext(), AccessTokenSecretKey).Return(rollbackErr)

	err := service.SetAccountConfig(context.Background(), setCommand())
	require.ErrorIs(t, err, saveErr)
	require.ErrorIs(t, err, rollbackErr)
	assert.ErrorContains(t, err, "rollback access token")
}

func TestServiceSetAccountConfigDeletesLegacyTokenRef(t *testing.T) {
	repo := mocks.NewMockAccountConfigRepository(t)
	store := mocks.NewMockSecretStore(t)
	service := NewService(repo, store)

	legacy := setRecord()
	legacy.AccessTokenRef = "balanceline/legacy_token"
	repo.EXPECT().Get(mockAnyContext()).Return(legacy, nil)
	store.EXPECT().Get(mockAnyContext(), AccessTokenSecretKey).Return("", notFound())
	store.EXPECT().Put(mockAnyContext(), AccessTokenSecretKey, "access-tok").Return(nil)
	repo.EXPECT().Save(mockAnyContext(), setRecord()).Return(nil)
	store.EXPECT().Delete(mockAnyContext(), "balanceline/legacy_token").Return(nil)

	require.NoError(t, service.SetAccountConfig(context.Background(), setCommand()))
}

func TestServiceClearAccountConfigSuccess(t *testing.T) {
	repo := mocks.NewMockAccountConfigRepository(t)
	store := mocks.NewMockSecretStore(t)
	service := NewService(repo, store)

	repo.EXPECT().Get(mockAnyContext()).Return(setRecord(), nil)
	repo.EXPECT().Delete(mockAnyContext()).Return(nil)
	store.EXPECT().Delete(mockAnyContext(), AccessTokenSecretKey).Return(nil)

	require.NoError(t, service.ClearAccountConfig(context.Background()))
}

func TestServiceClearAccountConfigWhenNothingConfigured(t *testing.T) {
	repo := mocks.NewMockAccountConfigRepository(t)
	service := NewService(repo, mocks.NewMockSecretStore(t))

	repo.EXPECT().Get(mockAnyContext()).Return(domain.AccountConfigRecord{}, domain.ErrNotConfigured)

	require.NoError(t, service.ClearAccountConfig(context.Background()))
}

func TestServiceClearAccountConfigRestoresRecordWhenTokenDeleteFails(t *testing.T) {
	repo := mocks.NewMockAccountConfigRepository(t)
	store := mocks.NewMockSecretStore(t)
	service := NewService(repo, store)

	deleteErr := errors.New("pass locked")
	repo.EXPECT().Get(mockAnyContext()).Return(setRecord(), nil)
	repo.EXPECT().Delete(mockAnyContext()).Return(nil)
	store.EXPECT().Delete(mockAnyContext(), AccessTokenSecretKey).Return(deleteErr)
	repo.EXPECT().Save(mockAnyContext(), setRecord()).Return(nil)

	err := service.ClearAccountConfig(context.Background())
	require.ErrorIs(t, err, deleteErr)
	assert.ErrorContains(t, err, "delete access token")
}

func TestServiceAccountConfigPersistsAcrossServiceInstances(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfg := viper.New()
	cfg.Set(tomlrepo.BalancePathKey, filepath.Join(dir, "balance.toml"))

	repo, err := tomlrepo.NewRepository(cfg)
	require.NoError(t, err)
	store := filestore.NewStore(filepath.Join(dir, "secrets"))

	require.NoError(t, NewService(repo, store).SetAccountConfig(context.Background(), SetAccountConfigCommand{
		AccessToken:  "access-tok",
		UserID:       7,
		QuotaPerUnit: decimal.NewFromInt(1000),
	}))

	loaded, err := NewService(repo, store).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "access-tok", loaded.AccessToken)
	assert.Equal(t, int64(7), loaded.UserID)
	assert.True(t, decimal.NewFromInt(1000).Equal(loaded.QuotaPerUnit))
	assert.True(t, domain.DefaultExchangeRate.Equal(loaded.ExchangeRate))

	require.NoError(t, NewService(repo, store).ClearAccountConfig(context.Background()))
	_, err = NewService(repo, store).Load(context.Background())
	require.ErrorIs(t, err, domain.ErrNotConfigured)
}

func mockAnyContext() interface{} {
	return mock.Anything
}
