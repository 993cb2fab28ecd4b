// BibReaders - Library Catalog and Book Recommendations
// Copyright 2026 Raihana A. (RaihanaAm)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/RaihanaAm/Bib-Readers

package config

import (
	"fmt"
	"net/url"
	"time"
)

// Validate checks the complete configuration and returns the first problem
// found. Validation is stricter in production mode: weak or missing secrets
// that are tolerable during development become hard errors.
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}

	if err := c.validateDatabase(); err != nil {
		return err
	}

	if err := c.validateAPI(); err != nil {
		return err
	}

	if err := c.validateSecurity(); err != nil {
		return err
	}

	if err := c.validateRecommend(); err != nil {
		return err
	}

	if err := c.validateScrape(); err != nil {
		return err
	}

	if err := c.validateEvents(); err != nil {
		return err
	}

	if err := c.validateAudit(); err != nil {
		return err
	}

	if err := c.validateBackup(); err != nil {
		return err
	}

	return c.validateLogging()
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("server.timeout must be positive, got %s", c.Server.Timeout)
	}
	switch c.Server.Environment {
	case "development", "test", "production":
	default:
		return fmt.Errorf("server.environment must be development, test, or production, got %q", c.Server.Environment)
	}
	return nil
}

func (c *Config) validateDatabase() error {
	if c.Database.Path == "" {
		return fmt.Errorf("database.path must not be empty")
	}
	if c.Database.Threads < 0 {
		return fmt.Errorf("database.threads must be >= 0, got %d", c.Database.Threads)
	}
	return nil
}

func (c *Config) validateAPI() error {
	if c.API.DefaultPageSize < 1 {
		return fmt.Errorf("api.default_page_size must be >= 1, got %d", c.API.DefaultPageSize)
	}
	if c.API.MaxPageSize < c.API.DefaultPageSize {
		return fmt.Errorf("api.max_page_size must be >= api.default_page_size (%d), got %d",
			c.API.DefaultPageSize, c.API.MaxPageSize)
	}
	return nil
}

func (c *Config) validateSecurity() error {
	sec := c.Security

	// Development mode can run with a generated secret; production must
	// carry a real one strong enough for HMAC-SHA256.
	if c.Server.IsProduction() {
		if sec.JWTSecret == "" {
			return fmt.Errorf("security.jwt_secret is required in production")
		}
		if len(sec.JWTSecret) < 32 {
			return fmt.Errorf("security.jwt_secret must be at least 32 characters in production, got %d", len(sec.JWTSecret))
		}
	}

	if sec.TokenTTL <= 0 {
		return fmt.Errorf("security.token_ttl must be positive, got %s", sec.TokenTTL)
	}
	if sec.BcryptCost < 4 || sec.BcryptCost > 31 {
		return fmt.Errorf("security.bcrypt_cost must be between 4 and 31, got %d", sec.BcryptCost)
	}
	if sec.SessionStorePath == "" {
		return fmt.Errorf("security.session_store_path must not be empty")
	}
	if (sec.AdminEmail == "") != (sec.AdminPassword == "") {
		return fmt.Errorf("security.admin_email and security.admin_password must be set together")
	}

	if sec.OIDC.Enabled {
		if sec.OIDC.IssuerURL == "" {
			return fmt.Errorf("security.oidc.issuer_url is required when OIDC is enabled")
		}
		if !isHTTPURL(sec.OIDC.IssuerURL) {
			return fmt.Errorf("security.oidc.issuer_url must be an http(s) URL, got %q", sec.OIDC.IssuerURL)
		}
		if sec.OIDC.ClientID == "" {
			return fmt.Errorf("security.oidc.client_id is required when OIDC is enabled")
		}
		if sec.OIDC.RedirectURL == "" {
			return fmt.Errorf("security.oidc.redirect_url is required when OIDC is enabled")
		}
	}

	return nil
}

func (c *Config) validateRecommend() error {
	rec := c.Recommend

	if rec.ArtifactPath == "" {
		return fmt.Errorf("recommend.artifact_path must not be empty")
	}
	if rec.MaxFeatures < 1 {
		return fmt.Errorf("recommend.max_features must be >= 1, got %d", rec.MaxFeatures)
	}
	if rec.DefaultTopK < 1 {
		return fmt.Errorf("recommend.default_top_k must be >= 1, got %d", rec.DefaultTopK)
	}
	if rec.MaxTopK < rec.DefaultTopK {
		return fmt.Errorf("recommend.max_top_k must be >= recommend.default_top_k (%d), got %d",
			rec.DefaultTopK, rec.MaxTopK)
	}
	if rec.RetrainDebounce < 0 {
		return fmt.Errorf("recommend.retrain_debounce must be >= 0, got %s", rec.RetrainDebounce)
	}
	if rec.RetrainInterval < 0 {
		return fmt.Errorf("recommend.retrain_interval must be >= 0, got %s", rec.RetrainInterval)
	}
	if rec.QueryCacheSize < 0 {
		return fmt.Errorf("recommend.query_cache_size must be >= 0, got %d", rec.QueryCacheSize)
	}
	if rec.QueryCacheSize > 0 && rec.QueryCacheTTL <= 0 {
		return fmt.Errorf("recommend.query_cache_ttl must be positive when the cache is enabled, got %s", rec.QueryCacheTTL)
	}
	return nil
}

func (c *Config) validateScrape() error {
	sc := c.Scrape

	if !isHTTPURL(sc.BaseURL) {
		return fmt.Errorf("scrape.base_url must be an http(s) URL, got %q", sc.BaseURL)
	}
	if sc.MaxPages < 0 {
		return fmt.Errorf("scrape.max_pages must be >= 0, got %d", sc.MaxPages)
	}
	if sc.RequestsPerSecond <= 0 {
		return fmt.Errorf("scrape.requests_per_second must be positive, got %v", sc.RequestsPerSecond)
	}
	if sc.Timeout <= 0 {
		return fmt.Errorf("scrape.timeout must be positive, got %s", sc.Timeout)
	}
	return nil
}

func (c *Config) validateEvents() error {
	if c.Events.BufferSize < 0 {
		return fmt.Errorf("events.buffer_size must be >= 0, got %d", c.Events.BufferSize)
	}
	if c.Events.CloseTimeout <= 0 {
		return fmt.Errorf("events.close_timeout must be positive, got %s", c.Events.CloseTimeout)
	}
	return nil
}

func (c *Config) validateAudit() error {
	if !c.Audit.Enabled {
		return nil
	}
	if c.Audit.RetentionDays < 0 {
		return fmt.Errorf("audit.retention_days must be >= 0, got %d", c.Audit.RetentionDays)
	}
	if c.Audit.CleanupInterval <= 0 {
		return fmt.Errorf("audit.cleanup_interval must be positive, got %s", c.Audit.CleanupInterval)
	}
	if c.Audit.BufferSize < 1 {
		return fmt.Errorf("audit.buffer_size must be >= 1, got %d", c.Audit.BufferSize)
	}
	return nil
}

func (c *Config) validateBackup() error {
	if !c.Backup.Enabled {
		return nil
	}
	if c.Backup.Dir == "" {
		return fmt.Errorf("backup.dir must not be empty")
	}
	if c.Backup.Interval < 0 {
		return fmt.Errorf("backup.interval must be >= 0, got %s", c.Backup.Interval)
	}
	if c.Backup.Interval > 0 && c.Backup.Interval < time.Hour {
		return fmt.Errorf("backup.interval must be at least 1h, got %s", c.Backup.Interval)
	}
	if c.Backup.MinCount < 0 {
		return fmt.Errorf("backup.min_count must be >= 0, got %d", c.Backup.MinCount)
	}
	if c.Backup.MaxCount > 0 && c.Backup.MaxCount < c.Backup.MinCount {
		return fmt.Errorf("backup.max_count must be >= backup.min_count (%d), got %d",
			c.Backup.MinCount, c.Backup.MaxCount)
	}
	if c.Backup.MaxAgeDays < 0 {
		return fmt.Errorf("backup.max_age_days must be >= 0, got %d", c.Backup.MaxAgeDays)
	}
	if c.Backup.CompressionLevel < 1 || c.Backup.CompressionLevel > 9 {
		return fmt.Errorf("backup.compression_level must be between 1 and 9, got %d", c.Backup.CompressionLevel)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "trace", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be trace, debug, info, warn, or error, got %q", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("logging.format must be json or console, got %q", c.Logging.Format)
	}
	return nil
}

// isHTTPURL reports whether s parses as an absolute http or https URL.
func isHTTPURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
