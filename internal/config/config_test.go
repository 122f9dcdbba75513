package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/adrg/xdg"
	"github.com/matheuskafuri/hnsearch/internal/search"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := loadDefaults()
	if err != nil {
		t.Fatalf("loadDefaults: %v", err)
	}
	if cfg.BaseURL != "https://hn.algolia.com/api/v1" {
		t.Errorf("unexpected default base_url %q", cfg.BaseURL)
	}
	if cfg.DefaultQuery != "redux" {
		t.Errorf("expected default query redux, got %q", cfg.DefaultQuery)
	}
	if cfg.HitsPerPage != 100 {
		t.Errorf("expected 100 hits per page, got %d", cfg.HitsPerPage)
	}
	if err := validate(cfg); err != nil {
		t.Errorf("embedded defaults should validate: %v", err)
	}
}

func TestGetDefaultQuery(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"react", "react"},
		{"", search.DefaultQuery},
		{"   ", search.DefaultQuery},
	}
	for _, tt := range tests {
		cfg := &Config{DefaultQuery: tt.input}
		if got := cfg.GetDefaultQuery(); got != tt.want {
			t.Errorf("GetDefaultQuery(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestTimeoutDuration(t *testing.T) {
	tests := []struct {
		input string
		want  time.Duration
	}{
		{"", 0},
		{"10s", 10 * time.Second},
		{"1m30s", 90 * time.Second},
		{"invalid", 0},
		{"-5s", 0},
	}
	for _, tt := range tests {
		cfg := &Config{Timeout: tt.input}
		if got := cfg.TimeoutDuration(); got != tt.want {
			t.Errorf("TimeoutDuration(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")

	content := `default_query: golang
hits_per_page: 20
timeout: 5s
`
	if err := os.WriteFile(cfgPath, []byte(content), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	cfg, err := Load(cfgPath)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DefaultQuery != "golang" {
		t.Errorf("expected golang, got %s", cfg.DefaultQuery)
	}
	if cfg.HitsPerPage != 20 {
		t.Errorf("expected 20 hits per page, got %d", cfg.HitsPerPage)
	}
	if cfg.TimeoutDuration() != 5*time.Second {
		t.Errorf("expected 5s timeout, got %v", cfg.TimeoutDuration())
	}
	// Fields absent from the file keep their defaults
	if cfg.BaseURL != "https://hn.algolia.com/api/v1" {
		t.Errorf("expected default base_url, got %s", cfg.BaseURL)
	}
}

func TestLoadMissingDefaultWritesDefaults(t *testing.T) {
	configHome := xdg.ConfigHome
	xdg.ConfigHome = t.TempDir()
	t.Cleanup(func() { xdg.ConfigHome = configHome })

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.GetDefaultQuery() != search.DefaultQuery {
		t.Errorf("expected defaults when config doesn't exist, got %q", cfg.DefaultQuery)
	}
	if _, err := os.Stat(DefaultConfigPath()); err != nil {
		t.Errorf("expected default config to be written: %v", err)
	}
}

func TestLoadMissingExplicitPath(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "sub", "confg.yaml")

	_, err := Load(cfgPath)
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
	if _, err := os.Stat(cfgPath); !os.IsNotExist(err) {
		t.Errorf("explicit path should not be created, stat err = %v", err)
	}
}

func TestLoadRejectsInvalidFile(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad yaml", "base_url: [unterminated"},
		{"file scheme", "base_url: file:///etc/passwd"},
		{"zero hits", "hits_per_page: 0"},
		{"too many hits", "hits_per_page: 5000"},
		{"bad timeout", "timeout: soon"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfgPath := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(cfgPath, []byte(tt.content), 0o644); err != nil {
				t.Fatalf("writing config: %v", err)
			}
			if _, err := Load(cfgPath); err == nil {
				t.Errorf("expected error for %s", tt.name)
			}
		})
	}
}

func TestValidateMissingBaseURL(t *testing.T) {
	cfg := &Config{HitsPerPage: 100}
	if err := validate(cfg); err == nil {
		t.Error("expected error for missing base_url")
	}
}

func TestValidateAcceptsHTTPAndHTTPS(t *testing.T) {
	for _, u := range []string{"https://hn.algolia.com/api/v1", "http://localhost:8080/api"} {
		cfg := &Config{BaseURL: u, HitsPerPage: 100}
		if err := validate(cfg); err != nil {
			t.Errorf("unexpected error for %s: %v", u, err)
		}
	}
}

func TestPaths(t *testing.T) {
	if filepath.Base(DefaultConfigPath()) != "config.yaml" {
		t.Errorf("unexpected config path %s", DefaultConfigPath())
	}
	if filepath.Base(filepath.Dir(LogPath())) != "hnsearch" {
		t.Errorf("unexpected log path %s", LogPath())
	}
}
