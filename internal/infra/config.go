package infra

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"viewcounter/internal/domain"
)

// Config represents application configuration loaded from environment variables.
type Config struct {
	AppEnv           string
	Repo             string
	TrafficToken     string
	GitHubAPIURL     string
	MetricsFile      string
	DocsRoot         string
	BadgeSVGFile     string
	BadgeLocale      string
	DatabaseURL      string
	Port             string
	HTTPTimeout      time.Duration
	RunInterval      time.Duration
	HTTPReadTimeout  time.Duration
	HTTPWriteTimeout time.Duration
	HTTPIdleTimeout  time.Duration
	RateLimitPerMin  int
	CORSOrigins      []string
}

// LoadDotenv reads .env files when present. Missing files are not an error.
func LoadDotenv() {
	for _, name := range []string{".env", ".env.local"} {
		if _, err := os.Stat(name); err == nil {
			_ = godotenv.Load(name)
		}
	}
}

// LoadConfig loads configuration for the collecting binaries. REPO and
// TRAFFIC_TOKEN are required because every run calls the traffic API.
func LoadConfig() (*Config, error) {
	cfg := load()

	if cfg.Repo == "" {
		return nil, fmt.Errorf("%w: REPO is required", domain.ErrConfig)
	}
	if strings.Count(cfg.Repo, "/") != 1 || strings.HasPrefix(cfg.Repo, "/") || strings.HasSuffix(cfg.Repo, "/") {
		return nil, fmt.Errorf("%w: REPO must look like owner/name, got %q", domain.ErrConfig, cfg.Repo)
	}
	if cfg.TrafficToken == "" {
		return nil, fmt.Errorf("%w: TRAFFIC_TOKEN is required", domain.ErrConfig)
	}
	if cfg.RunInterval <= 0 {
		return nil, fmt.Errorf("%w: RUN_INTERVAL_MINUTES must be positive", domain.ErrConfig)
	}

	return cfg, nil
}

// LoadAPIConfig loads configuration for the read API, which never talks to
// the traffic source and therefore needs no credentials.
func LoadAPIConfig() (*Config, error) {
	cfg := load()
	if cfg.MetricsFile == "" {
		return nil, fmt.Errorf("%w: METRICS_FILE is required", domain.ErrConfig)
	}
	return cfg, nil
}

func load() *Config {
	return &Config{
		AppEnv:           getEnv("APP_ENV", "production"),
		Repo:             strings.TrimSpace(os.Getenv("REPO")),
		TrafficToken:     strings.TrimSpace(os.Getenv("TRAFFIC_TOKEN")),
		GitHubAPIURL:     getEnv("GITHUB_API_URL", "https://api.github.com"),
		MetricsFile:      getEnv("METRICS_FILE", "metrics.json"),
		DocsRoot:         getEnv("DOCS_ROOT", "."),
		BadgeSVGFile:     strings.TrimSpace(os.Getenv("BADGE_SVG_FILE")),
		BadgeLocale:      getEnv("BADGE_LOCALE", "en"),
		DatabaseURL:      strings.TrimSpace(os.Getenv("DATABASE_URL")),
		Port:             getEnv("PORT", "8080"),
		HTTPTimeout:      time.Second * time.Duration(getEnvInt("HTTP_TIMEOUT_SECONDS", 30)),
		RunInterval:      time.Minute * time.Duration(getEnvInt("RUN_INTERVAL_MINUTES", 60)),
		HTTPReadTimeout:  time.Second * time.Duration(getEnvInt("HTTP_READ_TIMEOUT_SECONDS", 15)),
		HTTPWriteTimeout: time.Second * time.Duration(getEnvInt("HTTP_WRITE_TIMEOUT_SECONDS", 30)),
		HTTPIdleTimeout:  time.Second * time.Duration(getEnvInt("HTTP_IDLE_TIMEOUT_SECONDS", 60)),
		RateLimitPerMin:  getEnvInt("RATE_LIMIT_PER_MINUTE", 120),
		CORSOrigins:      splitList(getEnv("CORS_ALLOWED_ORIGINS", "*")),
	}
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if i, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return i
		}
	}
	return fallback
}
