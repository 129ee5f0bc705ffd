package settings

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/bnema/balanceline/internal/logger"
	"github.com/bnema/balanceline/internal/ports"
	"github.com/samber/lo"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	claudeDir         = ".claude"
	settingsFile      = "settings.json"
	localSettingsFile = "settings.local.json"
	envBlockKey       = "env"

	baseURLKey   = "ANTHROPIC_BASE_URL"
	authTokenKey = "ANTHROPIC_AUTH_TOKEN"
	apiKeyKey    = "ANTHROPIC_API_KEY"
)

// Source resolves gateway credentials from the env blocks of the Claude
// settings files, then from the process environment. settings.local.json
// overrides settings.json key by key.
type Source struct {
	settings  map[string]string
	lookupEnv func(string) (string, bool)
}

var _ ports.CredentialSource = (*Source)(nil)

func DefaultDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(homeDir, claudeDir), nil
}

// Load never fails on a missing or malformed settings file; such files
// contribute nothing.
func Load(ctx context.Context, dir string) *Source {
	log := logger.FromContext(ctx)

	layers := make([]map[string]string, 0, 2)
	for _, name := range []string{settingsFile, localSettingsFile} {
		env, err := readEnvBlock(filepath.Join(dir, name))
		if err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				log.Warn("ignoring unreadable settings file", zap.String("file", name), zap.Error(err))
			}
			continue
		}
		layers = append(layers, env)
	}

	return &Source{settings: lo.Assign(layers...), lookupEnv: os.LookupEnv}
}

func (s *Source) BaseURL() (string, bool) {
	value, ok := s.lookup(baseURLKey)
	if !ok {
		return "", false
	}

	value = strings.TrimRight(value, "/")
	return value, value != ""
}

func (s *Source) APIKey() (string, bool) {
	return s.lookup(authTokenKey, apiKeyKey)
}

func (s *Source) lookup(names ...string) (string, bool) {
	fromSettings := func(name string) string {
		return s.settings[strings.ToLower(name)]
	}
	fromEnv := func(name string) string {
		if s.lookupEnv == nil {
			return ""
		}
		value, _ := s.lookupEnv(name)
		return value
	}

	for _, get := range []func(string) string{fromSettings, fromEnv} {
		values := lo.Map(names, func(name string, _ int) string {
			return strings.TrimSpace(get(name))
		})
		if value, ok := lo.Find(values, func(v string) bool { return v != "" }); ok {
			return value, true
		}
	}

	return "", false
}

func readEnvBlock(path string) (map[string]string, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("json")
	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	return lo.MapKeys(v.GetStringMapString(envBlockKey), func(_ string, key string) string {
		return strings.ToLower(key)
	}), nil
}
