package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv blanks every variable Load reads so the host environment
// cannot leak into a test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"IDGIFT_CONFIG", "IDGIFT_LLM_PROVIDER", "IDGIFT_LLM_TIMEOUT",
		"IDGIFT_ANTHROPIC_API_KEY", "IDGIFT_ANTHROPIC_MODEL",
		"IDGIFT_OPENAI_API_KEY", "IDGIFT_OPENAI_MODEL", "IDGIFT_OPENAI_BASE_URL",
		"IDGIFT_GEMINI_API_KEY", "IDGIFT_GEMINI_MODEL",
		"IDGIFT_OPENROUTER_API_KEY", "IDGIFT_OPENROUTER_MODEL",
		"IDGIFT_IMAGE_PROVIDER", "IDGIFT_IMAGE_MODEL",
		"IDGIFT_ARCHIVE_BACKEND", "IDGIFT_REDIS_URL", "IDGIFT_CATALOG", "IDGIFT_ADDR", "IDGIFT_DB",
		"GEMINI_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY", "OPENROUTER_API_KEY",
	} {
		t.Setenv(k, "")
	}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)

	assert.Equal(t, "anthropic", cfg.LLM.Provider)
	assert.Equal(t, BackendSQLite, cfg.Archive.Backend)
	assert.Equal(t, DefaultAddr, cfg.ServeAddr)
	assert.Empty(t, cfg.Source)
}

func TestLoad_FileValues(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
provider = "openai"
timeout = "15s"
catalog = "/tmp/services.csv"

[openai]
api_key = "sk-file"
model = "gpt-4o"

[image]
provider = "openai"

[archive]
backend = "redis"
redis_url = "redis://localhost:6379/1"

[serve]
addr = ":9090"
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, path, cfg.Source)
	assert.Equal(t, "openai", cfg.LLM.Provider)
	assert.Equal(t, 15*time.Second, cfg.LLM.Timeout)
	assert.Equal(t, "sk-file", cfg.LLM.OpenAI.APIKey)
	assert.Equal(t, "gpt-4o", cfg.LLM.OpenAI.Model)
	assert.Equal(t, "openai", cfg.LLM.Image.Provider)
	assert.Equal(t, BackendRedis, cfg.Archive.Backend)
	assert.Equal(t, "redis://localhost:6379/1", cfg.Archive.RedisURL)
	assert.Equal(t, "/tmp/services.csv", cfg.CatalogPath)
	assert.Equal(t, ":9090", cfg.ServeAddr)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
provider = "openai"
[openai]
model = "gpt-4o"
[serve]
addr = ":9090"
`)
	t.Setenv("IDGIFT_OPENAI_MODEL", "gpt-4o-mini")
	t.Setenv("IDGIFT_OPENAI_API_KEY", "sk-env")
	t.Setenv("IDGIFT_ADDR", ":7070")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "gpt-4o-mini", cfg.LLM.OpenAI.Model)
	assert.Equal(t, "sk-env", cfg.LLM.OpenAI.APIKey)
	assert.Equal(t, ":7070", cfg.ServeAddr)
}

func TestLoad_DiscoversVendorKey(t *testing.T) {
	clearEnv(t)
	t.Setenv("GEMINI_API_KEY", "g-key")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)
	assert.Equal(t, "gemini", cfg.LLM.Provider)
	assert.Equal(t, "g-key", cfg.LLM.Gemini.APIKey)
	assert.Equal(t, "gemini", cfg.LLM.Image.Provider)
}

func TestLoad_Errors(t *testing.T) {
	clearEnv(t)

	_, err := Load(writeConfig(t, `provider = [`))
	assert.Error(t, err, "malformed toml")

	_, err = Load(writeConfig(t, `timeout = "soon"`))
	assert.Error(t, err, "bad duration")

	_, err = Load(writeConfig(t, "[archive]\nbackend = \"redis\"\n"))
	assert.Error(t, err, "redis without url")

	_, err = Load(writeConfig(t, "[archive]\nbackend = \"s3\"\n"))
	assert.Error(t, err, "unknown backend")
}

func TestDefaultPath(t *testing.T) {
	clearEnv(t)
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	p, err := DefaultPath()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/xdg/identitygift/config.toml", p)

	t.Setenv("IDGIFT_CONFIG", "/etc/idgift.toml")
	p, err = DefaultPath()
	require.NoError(t, err)
	assert.Equal(t, "/etc/idgift.toml", p)
}

func TestWriteDefault(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	require.NoError(t, WriteDefault(path))
	assert.Error(t, WriteDefault(path), "must not overwrite")

	f, ok, err := ReadFile(path)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "anthropic", f.Provider)
	assert.Equal(t, "sqlite", f.Archive.Backend)
}
