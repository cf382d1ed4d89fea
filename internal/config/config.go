package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the clusterdex API configuration.
type Config struct {
	HTTP       HTTPConfig       `yaml:"http"`
	Database   DatabaseConfig   `yaml:"database"`
	Search     SearchConfig     `yaml:"search"`
	Clustering ClusteringConfig `yaml:"clustering"`
	Languages  LanguagesConfig  `yaml:"languages"`
	Embedding  EmbeddingConfig  `yaml:"embedding"`
	Auth       AuthConfig       `yaml:"auth"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// AuthConfig holds API authentication settings.
type AuthConfig struct {
	APIKeys []string `yaml:"api_keys"`
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
}

// DatabaseConfig holds database connection settings.
type DatabaseConfig struct {
	Addrs            []string `yaml:"addrs"`
	Password         string   `yaml:"password"`
	ReadinessTimeout int      `yaml:"readiness_timeout_sec"`
}

// SearchConfig maps clustering requests onto FT.SEARCH.
type SearchConfig struct {
	IndexPrefix string          `yaml:"index_prefix"`
	KeyPrefix   string          `yaml:"key_prefix"`
	Indexes     []string        `yaml:"indexes"` // verified at startup and by /health
	Highlight   HighlightConfig `yaml:"highlight"`
}

// HighlightConfig holds SUMMARIZE/HIGHLIGHT settings for highlighted fields.
type HighlightConfig struct {
	Fragments   int    `yaml:"fragments"`
	FragmentLen int    `yaml:"fragment_len"`
	Separator   string `yaml:"separator"`
	OpenTag     string `yaml:"open_tag"`
	CloseTag    string `yaml:"close_tag"`
}

// ClusteringConfig holds clustering service defaults.
type ClusteringConfig struct {
	DefaultAlgorithm string `yaml:"default_algorithm"`
	DefaultLanguage  string `yaml:"default_language"`
	MaxHits          int    `yaml:"max_hits"` // 0 = unbounded
	Workers          int    `yaml:"workers"`  // 1 = sequential per-language dispatch
}

// LanguagesConfig restricts the language catalog and enables detection.
type LanguagesConfig struct {
	Enabled []string `yaml:"enabled"` // empty = all built-in languages
	Detect  bool     `yaml:"detect"`
}

// EmbeddingConfig holds the OpenAI-compatible provider backing the embeddings algorithm.
// An empty APIKey disables the algorithm.
type EmbeddingConfig struct {
	Provider    string `yaml:"provider"`
	APIKey      string `yaml:"api_key"`
	BaseURL     string `yaml:"base_url"`
	Model       string `yaml:"model"`
	Dimensions  int    `yaml:"dimensions"`
	Instruction string `yaml:"instruction"`
	BatchSize   int    `yaml:"batch_size"`
	CacheTTLSec int    `yaml:"cache_ttl_sec"` // 0 = no expiry
	CachePrefix string `yaml:"cache_prefix"`
}

// Enabled reports whether an embedding provider is configured.
func (e *EmbeddingConfig) Enabled() bool { return e.APIKey != "" }

// Load reads configuration from a YAML file by environment name (local, dev, prod).
func Load(env string) (Config, error) {
	configPath := findConfigPath(env)

	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	return Parse(data)
}

// Parse decodes YAML config data, expanding ${VAR} references and applying defaults.
func Parse(data []byte) (Config, error) {
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// MustLoad loads configuration or panics.
func MustLoad(env string) Config {
	cfg, err := Load(env)
	if err != nil {
		panic(err)
	}
	return cfg
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 30
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.Database.ReadinessTimeout <= 0 {
		c.Database.ReadinessTimeout = 10
	}
	if c.Search.Highlight.Fragments <= 0 {
		c.Search.Highlight.Fragments = 3
	}
	if c.Search.Highlight.FragmentLen <= 0 {
		c.Search.Highlight.FragmentLen = 20
	}
	if c.Search.Highlight.Separator == "" {
		c.Search.Highlight.Separator = "..."
	}
	if c.Clustering.DefaultAlgorithm == "" {
		c.Clustering.DefaultAlgorithm = "terms"
	}
	if c.Clustering.DefaultLanguage == "" {
		c.Clustering.DefaultLanguage = "English"
	}
	if c.Clustering.Workers <= 0 {
		c.Clustering.Workers = 1
	}
	if c.Embedding.Provider == "" {
		c.Embedding.Provider = "openai"
	}
	if c.Embedding.CachePrefix == "" {
		c.Embedding.CachePrefix = "clusterdex:"
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	if len(c.Database.Addrs) == 0 {
		return fmt.Errorf("database.addrs is required")
	}
	if c.Clustering.MaxHits < 0 {
		return fmt.Errorf("clustering.max_hits must not be negative, got %d", c.Clustering.MaxHits)
	}
	if c.Embedding.Enabled() && c.Embedding.Model == "" {
		return fmt.Errorf("embedding.model is required when embedding.api_key is set")
	}
	if c.Embedding.CacheTTLSec < 0 {
		return fmt.Errorf("embedding.cache_ttl_sec must not be negative, got %d", c.Embedding.CacheTTLSec)
	}
	return nil
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
