package settings

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSettings(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600))
}

func envFrom(values map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		value, ok := values[key]
		return value, ok
	}
}

func TestLoadReadsSettingsEnvBlock(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeSettings(t, dir, settingsFile, `{"model":"x","env":{"ANTHROPIC_BASE_URL":"https://gw.example.com/","ANTHROPIC_AUTH_TOKEN":"sk-global"}}`)

	source := Load(context.Background(), dir)
	source.lookupEnv = envFrom(nil)

	baseURL, ok := source.BaseURL()
	require.True(t, ok)
	assert.Equal(t, "https://gw.example.com", baseURL)

	apiKey, ok := source.APIKey()
	require.True(t, ok)
	assert.Equal(t, "sk-global", apiKey)
}

func TestLoadLocalSettingsOverrideGlobal(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeSettings(t, dir, settingsFile, `{"env":{"ANTHROPIC_BASE_URL":"https://global.example.com","ANTHROPIC_AUTH_TOKEN":"sk-global"}}`)
	writeSettings(t, dir, localSettingsFile, `{"env":{"ANTHROPIC_AUTH_TOKEN":"sk-local"}}`)

	source := Load(context.Background(), dir)
	source.lookupEnv = envFrom(nil)

	apiKey, _ := source.APIKey()
	assert.Equal(t, "sk-local", apiKey)

	baseURL, _ := source.BaseURL()
	assert.Equal(t, "https://global.example.com", baseURL)
}

func TestAPIKeyPrefersAuthTokenOverAPIKey(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeSettings(t, dir, settingsFile, `{"env":{"ANTHROPIC_API_KEY":"sk-api","ANTHROPIC_AUTH_TOKEN":"sk-auth"}}`)

	source := Load(context.Background(), dir)
	source.lookupEnv = envFrom(nil)

	apiKey, _ := source.APIKey()
	assert.Equal(t, "sk-auth", apiKey)
}

func TestSettingsWinOverProcessEnvironment(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeSettings(t, dir, settingsFile, `{"env":{"ANTHROPIC_API_KEY":"sk-settings"}}`)

	source := Load(context.Background(), dir)
	source.lookupEnv = envFrom(map[string]string{
		authTokenKey: "sk-env",
		baseURLKey:   "https://env.example.com//",
	})

	apiKey, _ := source.APIKey()
	assert.Equal(t, "sk-settings", apiKey)

	baseURL, ok := source.BaseURL()
	require.True(t, ok)
	assert.Equal(t, "https://env.example.com", baseURL)
}

func TestMissingOrMalformedSettingsFallBackToEnvironment(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeSettings(t, dir, localSettingsFile, `{"env": {`)

	source := Load(context.Background(), dir)
	source.lookupEnv = envFrom(map[string]string{apiKeyKey: "sk-env"})

	apiKey, ok := source.APIKey()
	require.True(t, ok)
	assert.Equal(t, "sk-env", apiKey)

	_, ok = source.BaseURL()
	assert.False(t, ok)
}

func TestEmptyValuesAreNotCredentials(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeSettings(t, dir, settingsFile, `{"env":{"ANTHROPIC_AUTH_TOKEN":"  ","ANTHROPIC_BASE_URL":""}}`)

	source := Load(context.Background(), dir)
	source.lookupEnv = envFrom(map[string]string{authTokenKey: ""})

	_, ok := source.APIKey()
	assert.False(t, ok)
	_, ok = source.BaseURL()
	assert.False(t, ok)
}
