// Package testsupport provides shared helpers for package tests.
package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"traduce/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.StateDir = filepath.Join(base, "state")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	for _, dir := range []string{cfg.Paths.StateDir, cfg.Paths.LogDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatalf("create %s: %v", dir, err)
		}
	}
	cfg.Catalog.BaseURL = "https://catalog.invalid/books/v1"
	cfg.Catalog.APIKey = "test"

	for _, opt := range opts {
		opt(&cfg)
	}

	return &cfg
}

// WithCatalogBaseURL points the test config at a custom catalog endpoint,
// usually an httptest server.
func WithCatalogBaseURL(baseURL string) ConfigOption {
	return func(c *config.Config) {
		c.Catalog.BaseURL = baseURL
	}
}

// WithTargetLanguage overrides the investigation target language.
func WithTargetLanguage(lang string) ConfigOption {
	return func(c *config.Config) {
		c.Investigation.TargetLanguage = lang
	}
}
