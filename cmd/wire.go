package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	filecache "github.com/bnema/balanceline/internal/adapters/cache/file"
	"github.com/bnema/balanceline/internal/adapters/cache/memo"
	"github.com/bnema/balanceline/internal/adapters/credentials/settings"
	statusadapter "github.com/bnema/balanceline/internal/adapters/render/status"
	tomlrepo "github.com/bnema/balanceline/internal/adapters/repo/toml"
	chainstore "github.com/bnema/balanceline/internal/adapters/secrets/chain"
	"github.com/bnema/balanceline/internal/adapters/upstream/newapi"
	"github.com/bnema/balanceline/internal/application"
	"github.com/bnema/balanceline/internal/config"
	"github.com/bnema/balanceline/internal/logger"
	"github.com/bnema/balanceline/internal/metrics"
	"github.com/bnema/balanceline/internal/ports"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

type app struct {
	cfg            config.Config
	logger         *zap.Logger
	service        *application.Service
	resolver       *application.Resolver
	cache          *filecache.Store
	recorder       *metrics.Recorder
	statusRenderer func(application.Resolution, statusadapter.RenderOptions) (string, error)
	now            func() time.Time
}

func wireApp() (*app, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}

	v := viper.New()
	cfg, err := config.Load(v, homeDir)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	// A broken log setup must not take the statusline down with it.
	log, err := logger.New(logger.Config{Level: cfg.LogLevel, Path: cfg.LogPath})
	if err != nil {
		log = zap.NewNop()
	}
	ctx := logger.ContextWithLogger(context.Background(), log)

	repo, err := tomlrepo.NewRepository(v)
	if err != nil {
		return nil, fmt.Errorf("wire account config repository: %w", err)
	}

	secretStore, err := chainstore.NewPassFirstWithFileFallback(cfg.SecretsDir)
	if err != nil {
		return nil, fmt.Errorf("wire secret store chain: %w", err)
	}

	service := application.NewService(repo, secretStore)
	recorder := metrics.NewRecorder()
	clock := ports.SystemClock{}
	cache := filecache.NewStore(cfg.CacheDir, clock)

	resolver := application.NewResolver(application.ResolverDeps{
		Credentials:   settings.Load(ctx, cfg.SettingsDir),
		AccountConfig: service,
		Upstream:      newapi.NewClient(cfg.HTTPTimeout),
		Memo:          memo.NewStore(),
		Cache:         cache,
		Clock:         clock,
		Observer:      recorder,
		Timeout:       cfg.ResolveTimeout,
		ConfigTimeout: cfg.ConfigTimeout,
	})

	return &app{
		cfg:            cfg,
		logger:         log,
		service:        service,
		resolver:       resolver,
		cache:          cache,
		recorder:       recorder,
		statusRenderer: statusadapter.Render,
		now:            time.Now,
	}, nil
}

// flush persists metrics and log buffers. Failures are logged, never
// returned, so they cannot change the statusline exit code.
func (a *app) flush() {
	if err := a.recorder.WriteTextfile(a.cfg.MetricsTextfile); err != nil {
		a.logger.Warn("write metrics textfile", zap.Error(err))
	}
	_ = a.logger.Sync()
}
