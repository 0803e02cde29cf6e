package infra

import (
	"errors"
	"testing"
	"time"

	"viewcounter/internal/domain"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("REPO", "octo/widgets")
	t.Setenv("TRAFFIC_TOKEN", "ghp_test")
	t.Setenv("RUN_INTERVAL_MINUTES", "")
	t.Setenv("METRICS_FILE", "")
	t.Setenv("GITHUB_API_URL", "")
}

func TestLoadConfigDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.MetricsFile != "metrics.json" {
		t.Fatalf("MetricsFile mismatch: got %q want %q", cfg.MetricsFile, "metrics.json")
	}
	if cfg.GitHubAPIURL != "https://api.github.com" {
		t.Fatalf("GitHubAPIURL mismatch: got %q", cfg.GitHubAPIURL)
	}
	if cfg.RunInterval != time.Hour {
		t.Fatalf("RunInterval mismatch: got %s want 1h", cfg.RunInterval)
	}
}

func TestLoadConfigRequiresRepo(t *testing.T) {
	setRequired(t)
	t.Setenv("REPO", "")

	if _, err := LoadConfig(); !errors.Is(err, domain.ErrConfig) {
		t.Fatalf("expected ErrConfig, got %v", err)
	}
}

func TestLoadConfigRequiresToken(t *testing.T) {
	setRequired(t)
	t.Setenv("TRAFFIC_TOKEN", " ")

	if _, err := LoadConfig(); !errors.Is(err, domain.ErrConfig) {
		t.Fatalf("expected ErrConfig, got %v", err)
	}
}

func TestLoadConfigRejectsMalformedRepo(t *testing.T) {
	for _, repo := range []string{"widgets", "octo/widgets/extra", "/widgets", "octo/"} {
		setRequired(t)
		t.Setenv("REPO", repo)
		if _, err := LoadConfig(); !errors.Is(err, domain.ErrConfig) {
			t.Fatalf("REPO=%q: expected ErrConfig, got %v", repo, err)
		}
	}
}

func TestLoadConfigHonorsOverrides(t *testing.T) {
	setRequired(t)
	t.Setenv("METRICS_FILE", "data/views.json")
	t.Setenv("RUN_INTERVAL_MINUTES", "15")
	t.Setenv("HTTP_TIMEOUT_SECONDS", "not-a-number")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.MetricsFile != "data/views.json" {
		t.Fatalf("MetricsFile mismatch: got %q", cfg.MetricsFile)
	}
	if cfg.RunInterval != 15*time.Minute {
		t.Fatalf("RunInterval mismatch: got %s", cfg.RunInterval)
	}
	if cfg.HTTPTimeout != 30*time.Second {
		t.Fatalf("HTTPTimeout should fall back to default, got %s", cfg.HTTPTimeout)
	}
}

func TestLoadAPIConfigNeedsNoCredentials(t *testing.T) {
	t.Setenv("REPO", "")
	t.Setenv("TRAFFIC_TOKEN", "")
	t.Setenv("METRICS_FILE", "")
	t.Setenv("PORT", "")

	cfg, err := LoadAPIConfig()
	if err != nil {
		t.Fatalf("LoadAPIConfig returned error: %v", err)
	}
	if cfg.Port != "8080" {
		t.Fatalf("Port mismatch: got %q want %q", cfg.Port, "8080")
	}
}

func TestLoadAPIConfigSplitsCORSOrigins(t *testing.T) {
	t.Setenv("CORS_ALLOWED_ORIGINS", " https://a.example , ,https://b.example")

	cfg, err := LoadAPIConfig()
	if err != nil {
		t.Fatalf("LoadAPIConfig returned error: %v", err)
	}
	expected := []string{"https://a.example", "https://b.example"}
	if len(cfg.CORSOrigins) != len(expected) {
		t.Fatalf("CORSOrigins mismatch: got %#v want %#v", cfg.CORSOrigins, expected)
	}
	for i, origin := range expected {
		if cfg.CORSOrigins[i] != origin {
			t.Fatalf("CORSOrigins[%d] = %q, want %q", i, cfg.CORSOrigins[i], origin)
		}
	}
}
