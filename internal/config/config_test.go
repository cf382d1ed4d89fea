package config

import (
	"reflect"
	"strings"
	"testing"
)

func validConfig() Config {
	return Config{
		HTTP:     HTTPConfig{Port: 8080},
		Database: DatabaseConfig{Addrs: []string{"localhost:6379"}},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "invalid port", mutate: func(c *Config) { c.HTTP.Port = 0 }, wantErr: "http.port"},
		{name: "port too large", mutate: func(c *Config) { c.HTTP.Port = 70000 }, wantErr: "http.port"},
		{name: "missing addrs", mutate: func(c *Config) { c.Database.Addrs = nil }, wantErr: "database.addrs"},
		{name: "negative max hits", mutate: func(c *Config) { c.Clustering.MaxHits = -1 }, wantErr: "clustering.max_hits"},
		{
			name:    "embedding without model",
			mutate:  func(c *Config) { c.Embedding.APIKey = "key" },
			wantErr: "embedding.model",
		},
		{
			name:   "embedding with model",
			mutate: func(c *Config) { c.Embedding.APIKey = "key"; c.Embedding.Model = "text-embedding-3-small" },
		},
		{name: "negative cache ttl", mutate: func(c *Config) { c.Embedding.CacheTTLSec = -5 }, wantErr: "cache_ttl_sec"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 10 {
		t.Errorf("expected ReadTimeoutSec=10, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.HTTP.WriteTimeoutSec != 30 {
		t.Errorf("expected WriteTimeoutSec=30, got %d", cfg.HTTP.WriteTimeoutSec)
	}
	if cfg.HTTP.ShutdownSec != 10 {
		t.Errorf("expected ShutdownSec=10, got %d", cfg.HTTP.ShutdownSec)
	}
	if cfg.Database.ReadinessTimeout != 10 {
		t.Errorf("expected ReadinessTimeout=10, got %d", cfg.Database.ReadinessTimeout)
	}
	if cfg.Search.Highlight.Fragments != 3 || cfg.Search.Highlight.FragmentLen != 20 {
		t.Errorf("unexpected highlight defaults: %+v", cfg.Search.Highlight)
	}
	if cfg.Search.Highlight.Separator != "..." {
		t.Errorf("expected Separator='...', got %q", cfg.Search.Highlight.Separator)
	}
	if cfg.Clustering.DefaultAlgorithm != "terms" || cfg.Clustering.DefaultLanguage != "English" {
		t.Errorf("unexpected clustering defaults: %+v", cfg.Clustering)
	}
	if cfg.Clustering.Workers != 1 {
		t.Errorf("expected Workers=1, got %d", cfg.Clustering.Workers)
	}
	if cfg.Embedding.CachePrefix != "clusterdex:" {
		t.Errorf("expected CachePrefix='clusterdex:', got %q", cfg.Embedding.CachePrefix)
	}
	if cfg.Embedding.Enabled() {
		t.Error("embedding must be disabled without api key")
	}
}

func TestApplyDefaults_NoOverride(t *testing.T) {
	cfg := Config{
		HTTP:       HTTPConfig{ReadTimeoutSec: 30, WriteTimeoutSec: 60, ShutdownSec: 5},
		Database:   DatabaseConfig{ReadinessTimeout: 15},
		Clustering: ClusteringConfig{DefaultAlgorithm: "embeddings", DefaultLanguage: "German", Workers: 4},
		Search:     SearchConfig{Highlight: HighlightConfig{Separator: "|"}},
	}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 30 {
		t.Errorf("expected ReadTimeoutSec=30, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.HTTP.WriteTimeoutSec != 60 {
		t.Errorf("expected WriteTimeoutSec=60, got %d", cfg.HTTP.WriteTimeoutSec)
	}
	if cfg.Clustering.DefaultAlgorithm != "embeddings" || cfg.Clustering.DefaultLanguage != "German" {
		t.Errorf("clustering defaults overridden: %+v", cfg.Clustering)
	}
	if cfg.Clustering.Workers != 4 {
		t.Errorf("expected Workers=4, got %d", cfg.Clustering.Workers)
	}
	if cfg.Search.Highlight.Separator != "|" {
		t.Errorf("expected Separator='|', got %q", cfg.Search.Highlight.Separator)
	}
}

func TestParse_ExpandsEnvVars(t *testing.T) {
	t.Setenv("CLUSTERDEX_TEST_PORT", "9090")
	t.Setenv("CLUSTERDEX_TEST_KEY", "")

	data := []byte(`
http:
  port: ${CLUSTERDEX_TEST_PORT}
database:
  addrs: ["${CLUSTERDEX_TEST_ADDR:-localhost:6379}"]
auth:
  api_keys: ["${CLUSTERDEX_TEST_KEY:-dev-key}"]
languages:
  enabled: [English, German]
  detect: true
clustering:
  max_hits: 200
`)

	cfg, err := Parse(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.HTTP.Port != 9090 {
		t.Errorf("expected port 9090, got %d", cfg.HTTP.Port)
	}
	if !reflect.DeepEqual(cfg.Database.Addrs, []string{"localhost:6379"}) {
		t.Errorf("unexpected addrs: %v", cfg.Database.Addrs)
	}
	if !reflect.DeepEqual(cfg.Auth.APIKeys, []string{"dev-key"}) {
		t.Errorf("unexpected api keys: %v", cfg.Auth.APIKeys)
	}
	if !cfg.Languages.Detect || len(cfg.Languages.Enabled) != 2 {
		t.Errorf("unexpected languages: %+v", cfg.Languages)
	}
	if cfg.Clustering.MaxHits != 200 {
		t.Errorf("expected max_hits 200, got %d", cfg.Clustering.MaxHits)
	}
}

func TestParse_Invalid(t *testing.T) {
	if _, err := Parse([]byte("http: [")); err == nil {
		t.Error("expected parse error")
	}
	if _, err := Parse([]byte("http:\n  port: 8080\n")); err == nil {
		t.Error("expected validation error for missing database.addrs")
	}
}
