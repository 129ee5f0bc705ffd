package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	configName = "config"
	configType = "toml"
	envPrefix  = "BALANCELINE"

	AppDir = ".claude/balanceline"

	KeyCacheDir        = "cache.dir"
	KeyHTTPTimeout     = "http.timeout"
	KeyCurrencySymbol  = "display.currency_symbol"
	KeyLogLevel        = "log.level"
	KeyLogPath         = "log.path"
	KeyMetricsTextfile = "metrics.textfile"
	KeyBalancePath     = "balance.path"
	KeySecretsDir      = "secrets.dir"
	KeySettingsDir     = "settings.dir"
	KeyResolveTimeout  = "resolve.timeout"
	KeyConfigTimeout   = "resolve.config_timeout"

	defaultHTTPTimeout    = 5 * time.Second
	defaultCurrencySymbol = "¥"
	defaultLogLevel       = "error"
	defaultConfigTimeout  = 2 * time.Second
)

type Config struct {
	CacheDir        string
	HTTPTimeout     time.Duration
	CurrencySymbol  string
	LogLevel        string
	LogPath         string
	MetricsTextfile string
	BalancePath     string
	SecretsDir      string
	SettingsDir     string
	// ResolveTimeout bounds one whole resolution. Zero in the file means
	// derived from the HTTP and config timeouts.
	ResolveTimeout time.Duration
	ConfigTimeout  time.Duration
}

// Load layers defaults, the optional config.toml under ~/.claude/balanceline
// and BALANCELINE_* environment variables onto v, in increasing precedence.
func Load(v *viper.Viper, homeDir string) (Config, error) {
	if v == nil {
		v = viper.New()
	}
	if homeDir == "" {
		return Config{}, errors.New("home directory is empty")
	}

	appDir := filepath.Join(homeDir, AppDir)
	v.SetDefault(KeyCacheDir, filepath.Join(appDir, "cache"))
	v.SetDefault(KeyHTTPTimeout, defaultHTTPTimeout)
	v.SetDefault(KeyCurrencySymbol, defaultCurrencySymbol)
	v.SetDefault(KeyLogLevel, defaultLogLevel)
	v.SetDefault(KeyLogPath, filepath.Join(appDir, "balanceline.log"))
	v.SetDefault(KeyMetricsTextfile, "")
	v.SetDefault(KeyBalancePath, filepath.Join(appDir, "balance.toml"))
	v.SetDefault(KeySecretsDir, filepath.Join(appDir, "secrets"))
	v.SetDefault(KeySettingsDir, filepath.Join(homeDir, ".claude"))
	v.SetDefault(KeyResolveTimeout, time.Duration(0))
	v.SetDefault(KeyConfigTimeout, defaultConfigTimeout)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigName(configName)
	v.SetConfigType(configType)
	v.AddConfigPath(appDir)
	if err := v.ReadInConfig(); err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configNotFound) {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	cfg := Config{
		CacheDir:        expandHome(v.GetString(KeyCacheDir), homeDir),
		HTTPTimeout:     v.GetDuration(KeyHTTPTimeout),
		CurrencySymbol:  v.GetString(KeyCurrencySymbol),
		LogLevel:        v.GetString(KeyLogLevel),
		LogPath:         expandHome(v.GetString(KeyLogPath), homeDir),
		MetricsTextfile: expandHome(v.GetString(KeyMetricsTextfile), homeDir),
		BalancePath:     expandHome(v.GetString(KeyBalancePath), homeDir),
		SecretsDir:      expandHome(v.GetString(KeySecretsDir), homeDir),
		SettingsDir:     expandHome(v.GetString(KeySettingsDir), homeDir),
		ResolveTimeout:  v.GetDuration(KeyResolveTimeout),
		ConfigTimeout:   v.GetDuration(KeyConfigTimeout),
	}
	if cfg.HTTPTimeout <= 0 {
		return Config{}, fmt.Errorf("%s must be positive, got %s", KeyHTTPTimeout, cfg.HTTPTimeout)
	}
	if cfg.ConfigTimeout <= 0 {
		return Config{}, fmt.Errorf("%s must be positive, got %s", KeyConfigTimeout, cfg.ConfigTimeout)
	}
	if cfg.ResolveTimeout < 0 {
		return Config{}, fmt.Errorf("%s must not be negative, got %s", KeyResolveTimeout, cfg.ResolveTimeout)
	}
	if cfg.ResolveTimeout == 0 {
		// Room for both upstream tiers after the secret lookup.
		cfg.ResolveTimeout = cfg.ConfigTimeout + 2*cfg.HTTPTimeout
	}
	if cfg.CacheDir == "" {
		return Config{}, fmt.Errorf("%s is empty", KeyCacheDir)
	}
	// Keep the resolved path visible to adapters that read v directly.
	v.Set(KeyBalancePath, cfg.BalancePath)

	return cfg, nil
}

func expandHome(path, homeDir string) string {
	if path == "~" {
		return homeDir
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(homeDir, path[2:])
	}

	return path
}
