package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"traduce/internal/config"
)

func TestLoadDefaultConfigExpandsPathsAndAppliesDefaults(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Setenv("CATALOG_API_KEY", "env-key")

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	wantState := filepath.Join(tempHome, ".local", "share", "traduce")
	if cfg.Paths.StateDir != wantState {
		t.Fatalf("unexpected state dir: got %q want %q", cfg.Paths.StateDir, wantState)
	}
	if cfg.QueueDatabasePath() != filepath.Join(wantState, "queue.db") {
		t.Fatalf("unexpected queue db path: %q", cfg.QueueDatabasePath())
	}
	if cfg.Catalog.APIKey != "env-key" {
		t.Fatalf("expected catalog key from env, got %q", cfg.Catalog.APIKey)
	}
	if cfg.Catalog.BaseURL != config.Default().Catalog.BaseURL {
		t.Fatalf("unexpected catalog base url: %q", cfg.Catalog.BaseURL)
	}
	if cfg.Investigation.TargetLanguage != "es" {
		t.Fatalf("unexpected target language: %q", cfg.Investigation.TargetLanguage)
	}
	if cfg.Investigation.MaxCandidates != 40 {
		t.Fatalf("unexpected max candidates: %d", cfg.Investigation.MaxCandidates)
	}
	if !cfg.Investigation.RelaxedTitleSearch {
		t.Fatal("expected relaxed title search enabled by default")
	}
	if cfg.Workflow.HeartbeatInterval != config.Default().Workflow.HeartbeatInterval {
		t.Fatalf("unexpected heartbeat interval: %d", cfg.Workflow.HeartbeatInterval)
	}
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories failed: %v", err)
	}
	for _, dir := range []string{cfg.Paths.StateDir, cfg.Paths.LogDir} {
		info, err := os.Stat(dir)
		if err != nil {
			t.Fatalf("expected directory %q to exist: %v", dir, err)
		}
		if !info.IsDir() {
			t.Fatalf("expected %q to be directory", dir)
		}
	}
}

func TestLoadCustomPath(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "traduce.toml")

	type payload struct {
		Catalog struct {
			APIKey  string `toml:"api_key"`
			BaseURL string `toml:"base_url"`
		} `toml:"catalog"`
		Investigation struct {
			TargetLanguage string `toml:"target_language"`
			MaxCandidates  int    `toml:"max_candidates"`
		} `toml:"investigation"`
		Workflow struct {
			HeartbeatInterval int `toml:"heartbeat_interval"`
			HeartbeatTimeout  int `toml:"heartbeat_timeout"`
		} `toml:"workflow"`
	}
	custom := payload{}
	custom.Catalog.APIKey = "abc123"
	custom.Catalog.BaseURL = "https://example.com/books"
	custom.Investigation.TargetLanguage = "Catalan"
	custom.Investigation.MaxCandidates = 10
	custom.Workflow.HeartbeatInterval = 20
	custom.Workflow.HeartbeatTimeout = 90

	raw, err := toml.Marshal(custom)
	if err != nil {
		t.Fatalf("marshal custom config: %v", err)
	}
	if err := os.WriteFile(configPath, raw, 0o644); err != nil {
		t.Fatalf("write custom config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected config file to exist")
	}
	if resolved != configPath {
		t.Fatalf("unexpected resolved path: %q", resolved)
	}
	if cfg.Catalog.APIKey != "abc123" {
		t.Fatalf("unexpected catalog key: %q", cfg.Catalog.APIKey)
	}
	if cfg.Catalog.BaseURL != "https://example.com/books" {
		t.Fatalf("unexpected catalog base url: %q", cfg.Catalog.BaseURL)
	}
	if cfg.Investigation.TargetLanguage != "catalan" {
		t.Fatalf("expected language lowered, got %q", cfg.Investigation.TargetLanguage)
	}
	if cfg.Investigation.MaxCandidates != 10 {
		t.Fatalf("unexpected max candidates: %d", cfg.Investigation.MaxCandidates)
	}
	if cfg.Workflow.HeartbeatInterval != 20 || cfg.Workflow.HeartbeatTimeout != 90 {
		t.Fatalf("unexpected workflow intervals: %+v", cfg.Workflow)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
	}{
		{"bad base url", func(c *config.Config) { c.Catalog.BaseURL = "not a url" }},
		{"unknown language", func(c *config.Config) { c.Investigation.TargetLanguage = "klingon" }},
		{"zero poll interval", func(c *config.Config) { c.Workflow.QueuePollInterval = 0 }},
		{"timeout below interval", func(c *config.Config) {
			c.Workflow.HeartbeatInterval = 60
			c.Workflow.HeartbeatTimeout = 30
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			cfg.Catalog.BaseURL = "https://example.com/books"
			tt.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestCreateSampleWritesParsableConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample returned error: %v", err)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	var cfg config.Config
	if err := toml.Unmarshal(raw, &cfg); err != nil {
		t.Fatalf("sample config does not parse: %v", err)
	}
	if cfg.Investigation.TargetLanguage != "es" {
		t.Fatalf("unexpected sample target language: %q", cfg.Investigation.TargetLanguage)
	}
}
