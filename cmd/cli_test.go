package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type gateway struct {
	server       *httptest.Server
	billingFails atomic.Bool
	quotaCalls   atomic.Int32
}

func newGateway(t *testing.T) *gateway {
	t.Helper()

	g := &gateway{}
	g.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/user/self":
			g.quotaCalls.Add(1)
			assert.Equal(t, "Bearer dash-token", r.Header.Get("Authorization"))
			assert.Equal(t, "42", r.Header.Get("New-Api-User"))
			_, _ = fmt.Fprint(w, `{"success":true,"message":"","data":{"quota":1000000,"used_quota":500000}}`)
		case "/v1/dashboard/billing/subscription":
			assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
			if g.billingFails.Load() {
				w.WriteHeader(http.StatusBadGateway)
				return
			}
			_, _ = fmt.Fprint(w, `{"object":"billing_subscription","hard_limit_usd":50.0}`)
		case "/v1/dashboard/billing/usage":
			if g.billingFails.Load() {
				w.WriteHeader(http.StatusBadGateway)
				return
			}
			_, _ = fmt.Fprint(w, `{"object":"list","total_usage":2530}`)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(g.server.Close)

	return g
}

func TestStatuslineWithoutCredentialsPrintsNothing(t *testing.T) {
	home := t.TempDir()

	stdout, _, err := executeCLI(t, home)
	require.NoError(t, err)
	assert.Empty(t, stdout)
}

func TestStatuslineRendersBillingBalance(t *testing.T) {
	g := newGateway(t)
	home := t.TempDir()
	require.NoError(t, writeSettingsFixture(home, g.server.URL))

	stdout, _, err := executeCLI(t, home)
	require.NoError(t, err)
	assert.Equal(t, "¥24.70\n", ansi.Strip(stdout))
	assert.NotEqual(t, stdout, ansi.Strip(stdout), "segment should be styled")

	plain, _, err := executeCLI(t, home, "--plain")
	require.NoError(t, err)
	assert.Equal(t, "¥24.70\n", plain)
}

func TestStatuslineFallsBackToLastKnownBalance(t *testing.T) {
	g := newGateway(t)
	home := t.TempDir()
	require.NoError(t, writeSettingsFixture(home, g.server.URL))

	_, _, err := executeCLI(t, home, "--plain")
	require.NoError(t, err)

	g.billingFails.Store(true)

	stdout, _, err := executeCLI(t, home, "--plain")
	require.NoError(t, err)
	assert.Equal(t, "¥24.70\n", stdout)

	jsonOut, _, err := executeCLI(t, home, "show", "--json")
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(jsonOut), &got))
	assert.Equal(t, true, got["available"])
	assert.Equal(t, "durable", got["source"])
	assert.Equal(t, true, got["stale"])
	assert.NotEmpty(t, got["failures"])
}

func TestStatuslineUnavailableWhenEveryTierFails(t *testing.T) {
	g := newGateway(t)
	g.billingFails.Store(true)
	home := t.TempDir()
	require.NoError(t, writeSettingsFixture(home, g.server.URL))

	stdout, _, err := executeCLI(t, home)
	require.NoError(t, err)
	assert.Empty(t, stdout)
}

func TestStatuslineSurvivesBrokenLogConfig(t *testing.T) {
	g := newGateway(t)
	home := t.TempDir()
	require.NoError(t, writeSettingsFixture(home, g.server.URL))

	stdout, _, err := executeCLI(t, home, "--plain")
	require.NoError(t, err)
	assert.Equal(t, "¥24.70\n", stdout)

	writeConfigFile(t, home, "[log]\nlevel = \"verbose\"\n")
	stdout, _, err = executeCLI(t, home, "--plain")
	require.NoError(t, err)
	assert.Equal(t, "¥24.70\n", stdout)

	blocker := filepath.Join(home, "not-a-dir")
	require.NoError(t, os.WriteFile(blocker, nil, 0o600))
	writeConfigFile(t, home, fmt.Sprintf("[log]\npath = %q\n", filepath.Join(blocker, "balanceline.log")))
	stdout, _, err = executeCLI(t, home, "--plain")
	require.NoError(t, err)
	assert.Equal(t, "¥24.70\n", stdout)
}

func TestStatuslineQuietWhenConfigIsMalformed(t *testing.T) {
	g := newGateway(t)
	home := t.TempDir()
	require.NoError(t, writeSettingsFixture(home, g.server.URL))
	writeConfigFile(t, home, "[http")

	stdout, _, err := executeCLI(t, home, "--plain")
	require.NoError(t, err)
	assert.Empty(t, stdout)

	_, _, err = executeCLI(t, home, "show", "--json")
	require.Error(t, err)
	assert.ErrorContains(t, err, "load config")

	stdout, _, err = executeCLI(t, home, "version")
	require.NoError(t, err)
	assert.Equal(t, "balanceline dev\n", stdout)
}

func TestSetupThenStatuslinePrefersAccountQuota(t *testing.T) {
	g := newGateway(t)
	home := t.TempDir()
	require.NoError(t, writeSettingsFixture(home, g.server.URL))

	stdout, _, err := executeCLI(t, home, "setup", "--access-token", "dash-token", "--user-id", "42")
	require.NoError(t, err)
	assert.Contains(t, stdout, "account quota configured for user 42")

	stdout, _, err = executeCLI(t, home, "--plain")
	require.NoError(t, err)
	assert.Equal(t, "¥14.60\n", stdout)
	assert.Equal(t, int32(1), g.quotaCalls.Load())

	config, err := os.ReadFile(filepath.Join(home, ".claude", "balanceline", "balance.toml"))
	require.NoError(t, err)
	assert.Contains(t, string(config), "user_id = 42")
	assert.NotContains(t, string(config), "dash-token")
}

func TestSetupClearFallsBackToBilling(t *testing.T) {
	g := newGateway(t)
	home := t.TempDir()
	require.NoError(t, writeSettingsFixture(home, g.server.URL))

	_, _, err := executeCLI(t, home, "setup", "--access-token", "dash-token", "--user-id", "42")
	require.NoError(t, err)

	stdout, _, err := executeCLI(t, home, "setup", "--clear")
	require.NoError(t, err)
	assert.Contains(t, stdout, "removed")

	stdout, _, err = executeCLI(t, home, "--plain")
	require.NoError(t, err)
	assert.Equal(t, "¥24.70\n", stdout)
	assert.Equal(t, int32(0), g.quotaCalls.Load())
}

func TestSetupCustomExchangeRate(t *testing.T) {
	g := newGateway(t)
	home := t.TempDir()
	require.NoError(t, writeSettingsFixture(home, g.server.URL))

	_, _, err := executeCLI(t, home,
		"setup",
		"--access-token", "dash-token",
		"--user-id", "42",
		"--exchange-rate", "1",
	)
	require.NoError(t, err)

	stdout, _, err := executeCLI(t, home, "--plain")
	require.NoError(t, err)
	assert.Equal(t, "¥2.00\n", stdout)
}

func TestSetupFlagValidation(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{name: "no flags", args: []string{"setup"}, wantErr: "at least one of the flags"},
		{name: "token without user", args: []string{"setup", "--access-token", "t"}, wantErr: "user-id"},
		{name: "clear with token", args: []string{"setup", "--clear", "--access-token", "t", "--user-id", "1"}, wantErr: "none of the others can be"},
		{name: "bad exchange rate", args: []string{"setup", "--access-token", "t", "--user-id", "1", "--exchange-rate", "abc"}, wantErr: "invalid --exchange-rate"},
		{name: "non positive user", args: []string{"setup", "--access-token", "t", "--user-id", "0"}, wantErr: "user id must be positive"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := executeCLI(t, t.TempDir(), tc.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestShowRendersDetailView(t *testing.T) {
	g := newGateway(t)
	home := t.TempDir()
	require.NoError(t, writeSettingsFixture(home, g.server.URL))

	stdout, _, err := executeCLI(t, home, "show")
	require.NoError(t, err)

	plain := ansi.Strip(stdout)
	assert.Contains(t, plain, "Account Balance")
	assert.Contains(t, plain, "¥24.70")
	assert.Contains(t, plain, "¥50.00")
	assert.Contains(t, plain, "49% left")
}

func TestShowJSONOutput(t *testing.T) {
	g := newGateway(t)
	home := t.TempDir()
	require.NoError(t, writeSettingsFixture(home, g.server.URL))

	stdout, _, err := executeCLI(t, home, "show", "--json")
	require.NoError(t, err)
	assert.True(t, json.Valid([]byte(stdout)))
	assert.Contains(t, stdout, "\"source\": \"billing\"")
	assert.Contains(t, stdout, "\"balance\": \"24.70\"")
	assert.Contains(t, stdout, "\"display\": \"¥24.70\"")
	assert.Contains(t, stdout, "\"stale\": false")
}

func TestShowJSONWhenNotConfigured(t *testing.T) {
	stdout, _, err := executeCLI(t, t.TempDir(), "show", "--json")
	require.NoError(t, err)
	assert.Contains(t, stdout, "\"available\": false")
	assert.Contains(t, stdout, "\"tier\": \"config\"")
}

func TestCachePathPointsIntoCacheDir(t *testing.T) {
	g := newGateway(t)
	home := t.TempDir()
	require.NoError(t, writeSettingsFixture(home, g.server.URL))

	stdout, _, err := executeCLI(t, home, "cache", "path")
	require.NoError(t, err)

	path := strings.TrimSpace(stdout)
	assert.Equal(t, filepath.Join(home, ".claude", "balanceline", "cache"), filepath.Dir(path))
	assert.True(t, strings.HasSuffix(path, ".toml"))

	_, _, err = executeCLI(t, home, "--plain")
	require.NoError(t, err)
	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestCachePathWithoutCredentials(t *testing.T) {
	_, _, err := executeCLI(t, t.TempDir(), "cache", "path")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not configured")
}

func TestCacheDirOverriddenByEnvironment(t *testing.T) {
	g := newGateway(t)
	home := t.TempDir()
	require.NoError(t, writeSettingsFixture(home, g.server.URL))
	cacheDir := filepath.Join(t.TempDir(), "alt-cache")
	t.Setenv("BALANCELINE_CACHE_DIR", cacheDir)

	stdout, _, err := executeCLI(t, home, "cache", "path")
	require.NoError(t, err)
	assert.Equal(t, cacheDir, filepath.Dir(strings.TrimSpace(stdout)))
}

func TestStatuslineWritesMetricsTextfile(t *testing.T) {
	g := newGateway(t)
	home := t.TempDir()
	require.NoError(t, writeSettingsFixture(home, g.server.URL))
	textfile := filepath.Join(t.TempDir(), "textfile", "balanceline.prom")
	t.Setenv("BALANCELINE_METRICS_TEXTFILE", textfile)

	_, _, err := executeCLI(t, home, "--plain")
	require.NoError(t, err)

	data, err := os.ReadFile(textfile)
	require.NoError(t, err)
	assert.Contains(t, string(data), `balanceline_resolution_tier_total{outcome="hit",tier="billing"} 1`)
	assert.Contains(t, string(data), `balanceline_resolution_tier_total{outcome="skipped",tier="account_quota"} 1`)
	assert.Contains(t, string(data), "balanceline_upstream_request_duration_seconds_count{tier=\"billing\"} 1")
}

func TestVersionCommand(t *testing.T) {
	stdout, _, err := executeCLI(t, t.TempDir(), "version")
	require.NoError(t, err)
	assert.Equal(t, "balanceline dev\n", stdout)
}

func executeCLI(t *testing.T, home string, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("HOME", home)
	// Keeps the pass backend out of reach so secrets land in the file store.
	t.Setenv("PATH", t.TempDir())
	t.Setenv("ANTHROPIC_BASE_URL", "")
	t.Setenv("ANTHROPIC_AUTH_TOKEN", "")
	t.Setenv("ANTHROPIC_API_KEY", "")

	root := newRootCmd()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	root.SetIn(strings.NewReader(`{"session_id":"s-1","model":{"id":"claude"}}`))
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetArgs(args)

	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func writeConfigFile(t *testing.T, home, content string) {
	t.Helper()

	appDir := filepath.Join(home, ".claude", "balanceline")
	require.NoError(t, os.MkdirAll(appDir, 0o700))
	require.NoError(t, os.WriteFile(filepath.Join(appDir, "config.toml"), []byte(content), 0o600))
}

func writeSettingsFixture(home, baseURL string) error {
	claudeDir := filepath.Join(home, ".claude")
	if err := os.MkdirAll(claudeDir, 0o755); err != nil {
		return err
	}

	settings := fmt.Sprintf(`{
  "env": {
    "ANTHROPIC_BASE_URL": %q,
    "ANTHROPIC_AUTH_TOKEN": "sk-test"
  },
  "statusLine": {"type": "command", "command": "balanceline"}
}`, baseURL+"/")

	return os.WriteFile(filepath.Join(claudeDir, "settings.json"), []byte(settings), 0o644)
}
