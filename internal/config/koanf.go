// BibReaders - Library Catalog and Book Recommendations
// Copyright 2026 Raihana A. (RaihanaAm)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/RaihanaAm/Bib-Readers

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in
// order of priority. The first file found wins.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/bibreaders/config.yaml",
	"/etc/bibreaders/config.yml",
}

// ConfigPathEnvVar overrides the config file search path.
const ConfigPathEnvVar = "CONFIG_PATH"

// defaultConfig returns a Config with all default values. Defaults are
// applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:        8080,
			Host:        "0.0.0.0",
			Timeout:     30 * time.Second,
			Environment: "development",
		},
		Database: DatabaseConfig{
			Path:      "data/bibreaders.duckdb",
			MaxMemory: "2GB",
			Threads:   0, // 0 = use runtime.NumCPU()
			SeedData:  false,
		},
		API: APIConfig{
			DefaultPageSize: 20,
			MaxPageSize:     100,
		},
		Security: SecurityConfig{
			JWTSecret:         "",
			TokenTTL:          time.Hour,
			BcryptCost:        12,
			SessionStorePath:  "data/sessions",
			AdminEmail:        "",
			AdminPassword:     "",
			RateLimitDisabled: false,
			CORSOrigins:       []string{"*"},
			OIDC: OIDCConfig{
				Enabled:      false,
				IssuerURL:    "",
				ClientID:     "",
				ClientSecret: "",
				RedirectURL:  "",
				Scopes:       []string{"openid", "profile", "email"},
			},
		},
		Recommend: RecommendConfig{
			ArtifactPath:    "data/recommend/artifact.gob.gz",
			MaxFeatures:     5000,
			DefaultTopK:     5,
			MaxTopK:         50,
			TrainOnStartup:  false,
			RetrainDebounce: 30 * time.Second,
			RetrainInterval: 0, // Periodic retraining disabled by default
			QueryCacheSize:  512,
			QueryCacheTTL:   5 * time.Minute,
		},
		Scrape: ScrapeConfig{
			BaseURL:           "https://books.toscrape.com/",
			MaxPages:          50,
			RequestsPerSecond: 2,
			Timeout:           20 * time.Second,
			UserAgent:         "BibReaders/1.0 (+https://github.com/RaihanaAm/Bib-Readers)",
		},
		Events: EventsConfig{
			BufferSize:   64,
			CloseTimeout: 15 * time.Second,
		},
		Audit: AuditConfig{
			Enabled:         true,
			RetentionDays:   90,
			CleanupInterval: 24 * time.Hour,
			BufferSize:      1000,
			LogToStdout:     false,
		},
		Backup: BackupConfig{
			Enabled:          true,
			Dir:              "data/backups",
			Interval:         24 * time.Hour,
			MaxCount:         20,
			MaxAgeDays:       90,
			MinCount:         3,
			CompressionLevel: 6,
		},
		Metrics: MetricsConfig{
			Enabled: true,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// LoadWithKoanf loads configuration using Koanf v2 with layered sources:
//  1. Defaults: built-in sensible defaults
//  2. Config File: optional YAML config file (if it exists)
//  3. Environment Variables: override any setting
//
// Precedence: ENV > File > Defaults.
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	// Layer 1: defaults from struct
	defaults := defaultConfig()
	if err := k.Load(structs.Provider(defaults, "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: config file (optional)
	configPath := findConfigFile()
	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: environment variables (highest priority)
	envProvider := env.Provider("", ".", envTransformFunc)
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	// Comma-separated env values for slice fields
	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile searches for a config file in the default paths. Returns
// the first file found, or empty string if none exists.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// sliceConfigPaths defines which config paths are parsed as
// comma-separated slices when they arrive as env strings.
var sliceConfigPaths = []string{
	"security.cors_origins",
	"security.oidc.scopes",
}

// processSliceFields converts comma-separated string values to slices for
// known slice fields. Env vars come in as strings but the config expects
// slices.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		val := k.Get(path)
		if val == nil {
			continue
		}

		// Already a slice (from YAML or defaults)
		if _, ok := val.([]interface{}); ok {
			continue
		}
		if _, ok := val.([]string); ok {
			continue
		}

		if strVal, ok := val.(string); ok {
			if strVal == "" {
				continue
			}
			parts := strings.Split(strVal, ",")
			trimmed := make([]string, 0, len(parts))
			for _, p := range parts {
				p = strings.TrimSpace(p)
				if p != "" {
					trimmed = append(trimmed, p)
				}
			}
			if len(trimmed) > 0 {
				if err := k.Set(path, trimmed); err != nil {
					return fmt.Errorf("failed to set %s: %w", path, err)
				}
			}
		}
	}
	return nil
}

// envTransformFunc maps environment variable names to koanf config paths.
// Unmapped variables are skipped so random environment noise never pollutes
// the configuration.
//
// Examples:
//   - HTTP_PORT -> server.port
//   - DUCKDB_PATH -> database.path
//   - JWT_SECRET -> security.jwt_secret
func envTransformFunc(key string) string {
	key = strings.ToLower(key)

	envMappings := map[string]string{
		// Server mappings
		"http_port":    "server.port",
		"http_host":    "server.host",
		"http_timeout": "server.timeout",
		"environment":  "server.environment",

		// Database mappings
		"duckdb_path":       "database.path",
		"duckdb_max_memory": "database.max_memory",
		"duckdb_threads":    "database.threads",
		"seed_data":         "database.seed_data",

		// API mappings
		"api_default_page_size": "api.default_page_size",
		"api_max_page_size":     "api.max_page_size",

		// Security mappings
		"jwt_secret":         "security.jwt_secret",
		"token_ttl":          "security.token_ttl",
		"bcrypt_cost":        "security.bcrypt_cost",
		"session_store_path": "security.session_store_path",
		"admin_email":        "security.admin_email",
		"admin_password":     "security.admin_password",
		"disable_rate_limit": "security.rate_limit_disabled",
		"cors_origins":       "security.cors_origins",

		// OIDC mappings
		"oidc_enabled":       "security.oidc.enabled",
		"oidc_issuer_url":    "security.oidc.issuer_url",
		"oidc_client_id":     "security.oidc.client_id",
		"oidc_client_secret": "security.oidc.client_secret",
		"oidc_redirect_url":  "security.oidc.redirect_url",
		"oidc_scopes":        "security.oidc.scopes",

		// Recommendation mappings
		"recommend_artifact_path":    "recommend.artifact_path",
		"recommend_max_features":     "recommend.max_features",
		"recommend_default_top_k":    "recommend.default_top_k",
		"recommend_max_top_k":        "recommend.max_top_k",
		"recommend_train_on_startup": "recommend.train_on_startup",
		"recommend_retrain_debounce": "recommend.retrain_debounce",
		"recommend_retrain_interval": "recommend.retrain_interval",
		"recommend_query_cache_size": "recommend.query_cache_size",
		"recommend_query_cache_ttl":  "recommend.query_cache_ttl",

		// Scraper mappings
		"scrape_base_url":            "scrape.base_url",
		"scrape_max_pages":           "scrape.max_pages",
		"scrape_requests_per_second": "scrape.requests_per_second",
		"scrape_timeout":             "scrape.timeout",
		"scrape_user_agent":          "scrape.user_agent",

		// Event bus mappings
		"events_buffer_size":   "events.buffer_size",
		"events_close_timeout": "events.close_timeout",

		// Audit mappings
		"audit_enabled":          "audit.enabled",
		"audit_retention_days":   "audit.retention_days",
		"audit_cleanup_interval": "audit.cleanup_interval",
		"audit_buffer_size":      "audit.buffer_size",
		"audit_log_to_stdout":    "audit.log_to_stdout",

		// Backup mappings
		"backup_enabled":           "backup.enabled",
		"backup_dir":               "backup.dir",
		"backup_interval":          "backup.interval",
		"backup_max_count":         "backup.max_count",
		"backup_max_age_days":      "backup.max_age_days",
		"backup_min_count":         "backup.min_count",
		"backup_compression_level": "backup.compression_level",

		// Metrics mappings
		"metrics_enabled": "metrics.enabled",

		// Logging mappings
		"log_level":  "logging.level",
		"log_format": "logging.format",
		"log_caller": "logging.caller",
	}

	if mapped, ok := envMappings[key]; ok {
		return mapped
	}

	return ""
}
