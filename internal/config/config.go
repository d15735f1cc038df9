// Package config loads identitygift settings from the TOML file and the
// environment. Command-line flags are applied on top by the caller.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/amixedcolor/aws-identity-gift/internal/llm"
)

// Archive backends.
const (
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
)

// DefaultAddr is where `serve` listens when nothing else is configured.
const DefaultAddr = "127.0.0.1:8080"

// Config is the resolved runtime configuration.
type Config struct {
	LLM         llm.Config
	Archive     Archive
	CatalogPath string
	ServeAddr   string
	DBPath      string
	// Source is the file that was read, empty when none existed.
	Source string
}

// Archive selects where results are kept.
type Archive struct {
	Backend  string
	RedisURL string
}

// File mirrors config.toml. Every field is optional.
type File struct {
	Provider string `toml:"provider"`
	Timeout  string `toml:"timeout"`
	DB       string `toml:"db"`
	Catalog  string `toml:"catalog"`

	Anthropic  ProviderSection `toml:"anthropic"`
	OpenAI     ProviderSection `toml:"openai"`
	Gemini     ProviderSection `toml:"gemini"`
	OpenRouter ProviderSection `toml:"openrouter"`

	Image struct {
		Provider string `toml:"provider"`
		Model    string `toml:"model"`
	} `toml:"image"`

	Archive struct {
		Backend  string `toml:"backend"`
		RedisURL string `toml:"redis_url"`
	} `toml:"archive"`

	Serve struct {
		Addr string `toml:"addr"`
	} `toml:"serve"`
}

// ProviderSection holds one vendor's settings.
type ProviderSection struct {
	APIKey  string `toml:"api_key"`
	Model   string `toml:"model"`
	BaseURL string `toml:"base_url"`
}

// DefaultConfigToml is written by `identitygift config init`.
const DefaultConfigToml = `# identitygift configuration

# anthropic, openai, gemini, openrouter or mock
provider = "anthropic"
timeout = "60s"

[anthropic]
model = "claude-sonnet"
# api_key = ""

[openai]
model = "gpt-4o-mini"

[gemini]
model = "gemini-flash"

[image]
# openai, gemini, mock, or empty to disable gift card images
provider = ""

[archive]
# sqlite or redis
backend = "sqlite"
# redis_url = "redis://localhost:6379/0"

[serve]
addr = "127.0.0.1:8080"
`

// DefaultPath returns $XDG_CONFIG_HOME/identitygift/config.toml, or
// IDGIFT_CONFIG when set.
func DefaultPath() (string, error) {
	if p := os.Getenv("IDGIFT_CONFIG"); p != "" {
		return p, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config dir: %w", err)
	}
	return filepath.Join(dir, "identitygift", "config.toml"), nil
}

// ReadFile parses path. A missing file yields a zero File and ok=false.
func ReadFile(path string) (f File, ok bool, err error) {
	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return File{}, false, nil
	}
	if err != nil {
		return File{}, false, fmt.Errorf("read config: %w", err)
	}
	if err := toml.Unmarshal(raw, &f); err != nil {
		return File{}, false, fmt.Errorf("parse %s: %w", path, err)
	}
	return f, true, nil
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		LLM:       llm.DefaultConfig(),
		Archive:   Archive{Backend: BackendSQLite},
		ServeAddr: DefaultAddr,
	}
}

// Load resolves defaults, then the file at path (DefaultPath when empty),
// then IDGIFT_* variables. When the chosen provider still lacks a key the
// vendor's own variables are probed.
func Load(path string) (Config, error) {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return Config{}, err
		}
		path = p
	}

	cfg := Default()
	f, ok, err := ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	if ok {
		if err := cfg.apply(f); err != nil {
			return Config{}, err
		}
		cfg.Source = path
	}

	cfg.applyEnv()

	if cfg.LLM.Validate() != nil {
		if discovered, found := llm.DiscoverConfig(); found {
			discovered.Timeout = cfg.LLM.Timeout
			if cfg.LLM.Image.Provider != "" {
				discovered.Image = cfg.LLM.Image
			}
			cfg.LLM = discovered
		}
	}
	return cfg, cfg.validate()
}

func (c *Config) apply(f File) error {
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}

	set(&c.LLM.Provider, f.Provider)
	if f.Timeout != "" {
		d, err := time.ParseDuration(f.Timeout)
		if err != nil {
			return fmt.Errorf("config timeout %q: %w", f.Timeout, err)
		}
		c.LLM.Timeout = d
	}

	set(&c.LLM.Anthropic.APIKey, f.Anthropic.APIKey)
	set(&c.LLM.Anthropic.Model, f.Anthropic.Model)
	set(&c.LLM.OpenAI.APIKey, f.OpenAI.APIKey)
	set(&c.LLM.OpenAI.Model, f.OpenAI.Model)
	set(&c.LLM.OpenAI.BaseURL, f.OpenAI.BaseURL)
	set(&c.LLM.Gemini.APIKey, f.Gemini.APIKey)
	set(&c.LLM.Gemini.Model, f.Gemini.Model)
	set(&c.LLM.OpenRouter.APIKey, f.OpenRouter.APIKey)
	set(&c.LLM.OpenRouter.Model, f.OpenRouter.Model)
	set(&c.LLM.OpenRouter.BaseURL, f.OpenRouter.BaseURL)
	set(&c.LLM.Image.Provider, f.Image.Provider)
	set(&c.LLM.Image.Model, f.Image.Model)

	set(&c.Archive.Backend, f.Archive.Backend)
	set(&c.Archive.RedisURL, f.Archive.RedisURL)
	set(&c.CatalogPath, f.Catalog)
	set(&c.ServeAddr, f.Serve.Addr)
	set(&c.DBPath, f.DB)
	return nil
}

func (c *Config) applyEnv() {
	c.LLM = llm.ApplyEnv(c.LLM)
	if v := os.Getenv("IDGIFT_ARCHIVE_BACKEND"); v != "" {
		c.Archive.Backend = v
	}
	if v := os.Getenv("IDGIFT_REDIS_URL"); v != "" {
		c.Archive.RedisURL = v
	}
	if v := os.Getenv("IDGIFT_CATALOG"); v != "" {
		c.CatalogPath = v
	}
	if v := os.Getenv("IDGIFT_ADDR"); v != "" {
		c.ServeAddr = v
	}
	if v := os.Getenv("IDGIFT_DB"); v != "" {
		c.DBPath = v
	}
}

// validate checks settings that do not depend on credentials. Missing API
// keys are reported when a provider is built, so offline commands still run.
func (c Config) validate() error {
	switch c.Archive.Backend {
	case BackendSQLite:
	case BackendRedis:
		if c.Archive.RedisURL == "" {
			return fmt.Errorf("archive backend redis needs redis_url or IDGIFT_REDIS_URL")
		}
	default:
		return fmt.Errorf("unknown archive backend: %q", c.Archive.Backend)
	}
	return nil
}

// WriteDefault creates the config file at path unless it already exists.
func WriteDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	return os.WriteFile(path, []byte(DefaultConfigToml), 0o600)
}
