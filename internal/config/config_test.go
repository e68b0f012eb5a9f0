package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0644))
	return p
}

func TestDefaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load(New(), "")
	require.NoError(t, err)
	assert.Equal(t, "default", cfg.Catalog)
	assert.Equal(t, "json", cfg.Format)
	assert.Equal(t, 0, cfg.FailUnder)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, 60, cfg.Server.RateLimit)
	assert.Equal(t, time.Minute, cfg.Server.RateWindow)
	assert.Equal(t, 1<<20, cfg.Server.BodyLimit)
	assert.False(t, cfg.Log.JSON)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "custom.yaml", `
catalog: ./rules.yaml
format: md
fail-under: 70
log:
  json: true
server:
  addr: 127.0.0.1:9000
  rate-window: 30s
`)

	cfg, err := Load(New(), path)
	require.NoError(t, err)
	assert.Equal(t, "./rules.yaml", cfg.Catalog)
	assert.Equal(t, "md", cfg.Format)
	assert.Equal(t, 70, cfg.FailUnder)
	assert.True(t, cfg.Log.JSON)
	assert.Equal(t, "127.0.0.1:9000", cfg.Server.Addr)
	assert.Equal(t, 30*time.Second, cfg.Server.RateWindow)
	assert.Equal(t, 60, cfg.Server.RateLimit, "unset keys keep defaults")
}

func TestLoadFileInWorkingDirectory(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "atscritic.yaml", "format: text\n")
	chdir(t, dir)

	cfg, err := Load(New(), "")
	require.NoError(t, err)
	assert.Equal(t, "text", cfg.Format)
}

func TestLoadExplicitMissing(t *testing.T) {
	_, err := Load(New(), filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config.Load")
}

func TestEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "c.yaml", "format: md\nserver:\n  rate-limit: 5\n")
	t.Setenv("ATSCRITIC_FORMAT", "text")
	t.Setenv("ATSCRITIC_SERVER_RATE_LIMIT", "7")
	t.Setenv("ATSCRITIC_LOG_DEBUG", "true")

	cfg, err := Load(New(), path)
	require.NoError(t, err)
	assert.Equal(t, "text", cfg.Format)
	assert.Equal(t, 7, cfg.Server.RateLimit)
	assert.True(t, cfg.Log.Debug)
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	env := writeFile(t, dir, ".env", "ATSCRITIC_FAIL_UNDER=55\n")
	t.Setenv("ATSCRITIC_FAIL_UNDER", "")
	os.Unsetenv("ATSCRITIC_FAIL_UNDER")

	require.NoError(t, LoadDotEnv(env, filepath.Join(dir, "missing.env")))
	chdir(t, dir)
	cfg, err := Load(New(), "")
	require.NoError(t, err)
	assert.Equal(t, 55, cfg.FailUnder)
}

func TestLoadDotEnvDoesNotOverride(t *testing.T) {
	dir := t.TempDir()
	env := writeFile(t, dir, ".env", "ATSCRITIC_FORMAT=md\n")
	t.Setenv("ATSCRITIC_FORMAT", "text")

	require.NoError(t, LoadDotEnv(env))
	assert.Equal(t, "text", os.Getenv("ATSCRITIC_FORMAT"))
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			Format: "json",
			Server: ServerConfig{Addr: ":8080", RateLimit: 10, RateWindow: time.Second, BodyLimit: 1024},
		}
	}

	tests := []struct {
		name string
		edit func(*Config)
		want string
	}{
		{"bad format", func(c *Config) { c.Format = "xml" }, "format"},
		{"fail-under high", func(c *Config) { c.FailUnder = 101 }, "fail-under"},
		{"fail-under negative", func(c *Config) { c.FailUnder = -1 }, "fail-under"},
		{"parallel negative", func(c *Config) { c.Parallel = -2 }, "parallel"},
		{"no addr", func(c *Config) { c.Server.Addr = " " }, "server.addr"},
		{"no window", func(c *Config) { c.Server.RateWindow = 0 }, "server.rate-window"},
		{"no body limit", func(c *Config) { c.Server.BodyLimit = 0 }, "server.body-limit"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.edit(&c)
			err := c.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}

	c := valid()
	assert.NoError(t, c.Validate())

	c.Server.RateLimit = 0
	c.Server.RateWindow = 0
	assert.NoError(t, c.Validate(), "a zero rate limit disables the window check")
}

func TestLoadRejectsInvalid(t *testing.T) {
	path := writeFile(t, t.TempDir(), "c.yaml", "format: pdf\n")
	_, err := Load(New(), path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "format")
}

// chdir changes the working directory for the duration of the test
// (equivalent to testing.T.Chdir, which requires Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(wd); err != nil {
			t.Fatal(err)
		}
	})
}
