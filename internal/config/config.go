package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/0muji4/postkit/internal/grammar"
)

// DefaultPath is used when POSTKIT_CONFIG is unset.
const DefaultPath = "postkit.yaml"

// Config holds the settings shared by the grammar reporters and the summarizer.
type Config struct {
	Posts struct {
		Root    string `yaml:"root"`
		Pattern string `yaml:"pattern"` // relative to root
	} `yaml:"posts"`
	Git struct {
		BaseRef string `yaml:"base_ref"`
		HeadRef string `yaml:"head_ref"`
	} `yaml:"git"`
	Grammar struct {
		URL            string `yaml:"url"`
		Language       string `yaml:"language"`
		Username       string `yaml:"username"`
		APIKey         string `yaml:"api_key"`
		TimeoutSeconds int    `yaml:"timeout_seconds"`
	} `yaml:"grammar"`
	Summary struct {
		Model  string `yaml:"model"`
		APIKey string `yaml:"api_key"` // 空なら genai が GEMINI_API_KEY を読む
	} `yaml:"summary"`
}

// Default returns the built-in settings.
func Default() *Config {
	var cfg Config
	cfg.Posts.Root = "."
	cfg.Posts.Pattern = "posts/*.md"
	cfg.Git.BaseRef = "origin/main"
	cfg.Git.HeadRef = "HEAD"
	cfg.Grammar.URL = "https://api.languagetool.org"
	cfg.Grammar.Language = "en-US"
	cfg.Grammar.TimeoutSeconds = 60
	cfg.Summary.Model = "gemini-2.5-pro"
	return &cfg
}

// Load reads .env, then the YAML file at path, then environment overrides.
// A missing YAML file leaves the defaults in place.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnv(cfg)
	fillDefaults(cfg)
	return cfg, nil
}

// LoadFromEnv loads the file named by POSTKIT_CONFIG, or DefaultPath.
func LoadFromEnv() (*Config, error) {
	path := os.Getenv("POSTKIT_CONFIG")
	if path == "" {
		path = DefaultPath
	}
	return Load(path)
}

func applyEnv(cfg *Config) {
	overrides := []struct {
		key string
		dst *string
	}{
		{"GITHUB_BASE_REF", &cfg.Git.BaseRef},
		{"GITHUB_HEAD_REF", &cfg.Git.HeadRef},
		{"LANGUAGETOOL_URL", &cfg.Grammar.URL},
		{"LANGUAGETOOL_USERNAME", &cfg.Grammar.Username},
		{"LANGUAGETOOL_API_KEY", &cfg.Grammar.APIKey},
		{"GEMINI_API_KEY", &cfg.Summary.APIKey},
		{"POSTKIT_MODEL", &cfg.Summary.Model},
	}
	for _, o := range overrides {
		if v := os.Getenv(o.key); v != "" {
			*o.dst = v
		}
	}
	if v := os.Getenv("LANGUAGETOOL_TIMEOUT_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Grammar.TimeoutSeconds = n
		}
	}
}

// fillDefaults restores defaults for keys a YAML file set to empty values.
func fillDefaults(cfg *Config) {
	def := Default()
	if cfg.Posts.Root == "" {
		cfg.Posts.Root = def.Posts.Root
	}
	if cfg.Posts.Pattern == "" {
		cfg.Posts.Pattern = def.Posts.Pattern
	}
	if cfg.Git.BaseRef == "" {
		cfg.Git.BaseRef = def.Git.BaseRef
	}
	if cfg.Git.HeadRef == "" {
		cfg.Git.HeadRef = def.Git.HeadRef
	}
	if cfg.Grammar.URL == "" {
		cfg.Grammar.URL = def.Grammar.URL
	}
	if cfg.Grammar.Language == "" {
		cfg.Grammar.Language = def.Grammar.Language
	}
	if cfg.Grammar.TimeoutSeconds <= 0 {
		cfg.Grammar.TimeoutSeconds = def.Grammar.TimeoutSeconds
	}
	if cfg.Summary.Model == "" {
		cfg.Summary.Model = def.Summary.Model
	}
}

// GrammarTimeout returns the per-request timeout for the grammar engine.
func (c *Config) GrammarTimeout() time.Duration {
	return time.Duration(c.Grammar.TimeoutSeconds) * time.Second
}

// LanguageToolOptions maps the grammar section onto the LanguageTool client options.
func (c *Config) LanguageToolOptions() grammar.LanguageToolOptions {
	return grammar.LanguageToolOptions{
		BaseURL:  c.Grammar.URL,
		Language: c.Grammar.Language,
		Username: c.Grammar.Username,
		APIKey:   c.Grammar.APIKey,
		Timeout:  c.GrammarTimeout(),
	}
}
