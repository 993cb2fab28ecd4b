// BibReaders - Library Catalog and Book Recommendations
// Copyright 2026 Raihana A. (RaihanaAm)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/RaihanaAm/Bib-Readers

package config

import "time"

// Config holds all application configuration loaded from defaults, an
// optional YAML file, and environment variables.
//
// Configuration Loading Order (Koanf v2):
//  1. Defaults: built-in sensible defaults for all optional settings
//  2. Config File: optional YAML file (config.yaml) for persistent settings
//  3. Environment Variables: override any setting
//
// Configuration Categories:
//
//  1. Infrastructure:
//     - Database: DuckDB configuration (path, memory, seeding)
//     - Server: HTTP server configuration (port, host, timeout)
//
//  2. API & Security:
//     - API: pagination and response limits
//     - Security: JWT auth, sessions, rate limiting, optional OIDC
//
//  3. Features:
//     - Recommend: recommendation artifact location and query limits
//     - Scrape: catalog scraper politeness and source settings
//     - Events: in-process event bus buffering and shutdown
//
//  4. Operations:
//     - Audit: security audit trail retention and buffering
//     - Backup: scheduled catalog backups and retention
//     - Logging: log levels and output formats
//     - Metrics: Prometheus exposure
//
// Thread Safety:
// Config is immutable after Load() and safe for concurrent read access.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Database  DatabaseConfig  `koanf:"database"`
	API       APIConfig       `koanf:"api"`
	Security  SecurityConfig  `koanf:"security"`
	Recommend RecommendConfig `koanf:"recommend"`
	Scrape    ScrapeConfig    `koanf:"scrape"`
	Events    EventsConfig    `koanf:"events"`
	Audit     AuditConfig     `koanf:"audit"`
	Backup    BackupConfig    `koanf:"backup"`
	Metrics   MetricsConfig   `koanf:"metrics"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// ServerConfig holds HTTP server settings.
//
// Environment Variables:
//   - HTTP_PORT: Listen port (default: 8080)
//   - HTTP_HOST: Bind address (default: 0.0.0.0)
//   - HTTP_TIMEOUT: Read/write timeout (default: 30s)
//   - ENVIRONMENT: development, test, or production (default: development)
type ServerConfig struct {
	Port        int           `koanf:"port"`
	Host        string        `koanf:"host"`
	Timeout     time.Duration `koanf:"timeout"`
	Environment string        `koanf:"environment"` // Production tightens security validation
}

// IsProduction reports whether the server runs in production mode.
func (s ServerConfig) IsProduction() bool {
	return s.Environment == "production"
}

// DatabaseConfig holds DuckDB settings. The database is an embedded file;
// no external service is required.
//
// Environment Variables:
//   - DUCKDB_PATH: Database file path (default: data/bibreaders.duckdb)
//   - DUCKDB_MAX_MEMORY: Memory limit, e.g. "2GB" (default: 2GB)
//   - DUCKDB_THREADS: Worker threads, 0 = all cores (default: 0)
//   - SEED_DATA: Insert a starter catalog on first run (default: false)
type DatabaseConfig struct {
	Path      string `koanf:"path"`
	MaxMemory string `koanf:"max_memory"`
	Threads   int    `koanf:"threads"`
	SeedData  bool   `koanf:"seed_data"`
}

// APIConfig holds pagination limits for list endpoints.
//
// Environment Variables:
//   - API_DEFAULT_PAGE_SIZE: Items per page when unspecified (default: 20)
//   - API_MAX_PAGE_SIZE: Upper bound on page size (default: 100)
type APIConfig struct {
	DefaultPageSize int `koanf:"default_page_size"`
	MaxPageSize     int `koanf:"max_page_size"`
}

// SecurityConfig holds authentication and authorization settings.
//
// JWT is the primary authentication mode: members log in with email and
// password and receive a signed bearer token. Sessions are registered in a
// Badger store so logout revokes tokens before they expire. OIDC is an
// optional additional login path for deployments with an identity provider.
//
// Environment Variables:
//   - JWT_SECRET: HMAC signing secret, >= 32 chars in production
//   - TOKEN_TTL: Token lifetime (default: 1h)
//   - BCRYPT_COST: Password hashing cost (default: 12)
//   - SESSION_STORE_PATH: Badger directory (default: data/sessions)
//   - ADMIN_EMAIL / ADMIN_PASSWORD: Bootstrap admin account (optional)
//   - DISABLE_RATE_LIMIT: Turn off request rate limits (default: false)
//   - CORS_ORIGINS: Comma-separated allowed origins (default: *)
type SecurityConfig struct {
	JWTSecret         string        `koanf:"jwt_secret"`
	TokenTTL          time.Duration `koanf:"token_ttl"`
	BcryptCost        int           `koanf:"bcrypt_cost"`
	SessionStorePath  string        `koanf:"session_store_path"`
	AdminEmail        string        `koanf:"admin_email"`
	AdminPassword     string        `koanf:"admin_password"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	CORSOrigins       []string      `koanf:"cors_origins"`
	OIDC              OIDCConfig    `koanf:"oidc"`
}

// OIDCConfig holds optional OpenID Connect relying-party settings. When
// enabled, members can sign in through the configured issuer; accounts are
// matched to catalog members by verified email.
//
// Environment Variables:
//   - OIDC_ENABLED: Enable the OIDC login path (default: false)
//   - OIDC_ISSUER_URL: Identity provider issuer URL
//   - OIDC_CLIENT_ID / OIDC_CLIENT_SECRET: Relying-party credentials
//   - OIDC_REDIRECT_URL: Callback URL registered with the provider
//   - OIDC_SCOPES: Requested scopes (default: openid,profile,email)
type OIDCConfig struct {
	Enabled      bool     `koanf:"enabled"`
	IssuerURL    string   `koanf:"issuer_url"`
	ClientID     string   `koanf:"client_id"`
	ClientSecret string   `koanf:"client_secret"`
	RedirectURL  string   `koanf:"redirect_url"`
	Scopes       []string `koanf:"scopes"`
}

// RecommendConfig holds recommendation subsystem settings. The serving
// engine and the offline trainer both read from it so the artifact location
// and vocabulary limits stay in agreement.
//
// Environment Variables:
//   - RECOMMEND_ARTIFACT_PATH: Model file (default: data/recommend/artifact.gob.gz)
//   - RECOMMEND_MAX_FEATURES: Vocabulary cap (default: 5000)
//   - RECOMMEND_DEFAULT_TOP_K: Results when unspecified (default: 5)
//   - RECOMMEND_MAX_TOP_K: Upper bound on requested results (default: 50)
//   - RECOMMEND_TRAIN_ON_STARTUP: Build an artifact at boot when none exists (default: false)
//   - RECOMMEND_RETRAIN_DEBOUNCE: Quiet period after catalog changes before retraining (default: 30s)
//   - RECOMMEND_RETRAIN_INTERVAL: Periodic retrain interval, 0 disables (default: 0)
//   - RECOMMEND_QUERY_CACHE_SIZE: Cached query results, 0 disables (default: 512)
//   - RECOMMEND_QUERY_CACHE_TTL: Cached result lifetime (default: 5m)
type RecommendConfig struct {
	ArtifactPath    string        `koanf:"artifact_path"`
	MaxFeatures     int           `koanf:"max_features"`
	DefaultTopK     int           `koanf:"default_top_k"`
	MaxTopK         int           `koanf:"max_top_k"`
	TrainOnStartup  bool          `koanf:"train_on_startup"`
	RetrainDebounce time.Duration `koanf:"retrain_debounce"`
	RetrainInterval time.Duration `koanf:"retrain_interval"`
	QueryCacheSize  int           `koanf:"query_cache_size"`
	QueryCacheTTL   time.Duration `koanf:"query_cache_ttl"`
}

// ScrapeConfig holds catalog scraper settings. The scraper walks the
// paginated listing of the configured source, parses each product page, and
// imports the results. Politeness limits are enforced client-side.
//
// Environment Variables:
//   - SCRAPE_BASE_URL: Source site root (default: https://books.toscrape.com/)
//   - SCRAPE_MAX_PAGES: Listing page cap, 0 = until the site runs out (default: 50)
//   - SCRAPE_REQUESTS_PER_SECOND: Client-side rate limit (default: 2)
//   - SCRAPE_TIMEOUT: Per-request timeout (default: 20s)
//   - SCRAPE_USER_AGENT: User-Agent header sent with every request
type ScrapeConfig struct {
	BaseURL           string        `koanf:"base_url"`
	MaxPages          int           `koanf:"max_pages"`
	RequestsPerSecond float64       `koanf:"requests_per_second"`
	Timeout           time.Duration `koanf:"timeout"`
	UserAgent         string        `koanf:"user_agent"`
}

// EventsConfig holds in-process event bus settings. Events flow through a
// Watermill GoChannel pub/sub; the buffer bounds how many undelivered
// messages each subscriber holds before publishers block.
//
// Environment Variables:
//   - EVENTS_BUFFER_SIZE: Per-subscriber channel buffer (default: 64)
//   - EVENTS_CLOSE_TIMEOUT: Wait for in-flight handlers on shutdown (default: 15s)
type EventsConfig struct {
	BufferSize   int           `koanf:"buffer_size"`
	CloseTimeout time.Duration `koanf:"close_timeout"`
}

// AuditConfig holds security audit trail settings. Authentication events,
// catalog writes, and admin actions are appended to a DuckDB table through
// a buffered asynchronous writer; entries older than the retention window
// are purged on a periodic cleanup cycle.
//
// Environment Variables:
//   - AUDIT_ENABLED: Record audit events (default: true)
//   - AUDIT_RETENTION_DAYS: Days to keep events, 0 = forever (default: 90)
//   - AUDIT_CLEANUP_INTERVAL: Purge cycle interval (default: 24h)
//   - AUDIT_BUFFER_SIZE: Async writer queue length (default: 1000)
//   - AUDIT_LOG_TO_STDOUT: Mirror events to the application log (default: false)
type AuditConfig struct {
	Enabled         bool          `koanf:"enabled"`
	RetentionDays   int           `koanf:"retention_days"`
	CleanupInterval time.Duration `koanf:"cleanup_interval"`
	BufferSize      int           `koanf:"buffer_size"`
	LogToStdout     bool          `koanf:"log_to_stdout"`
}

// BackupConfig holds catalog backup settings. A backup is a tar.gz archive
// of the DuckDB database, the recommendation artifact, and a sanitized
// configuration summary, written with per-file checksums and a metadata
// sidecar. Retention keeps the backup directory bounded.
//
// Environment Variables:
//   - BACKUP_ENABLED: Allow backups to run (default: true)
//   - BACKUP_DIR: Archive directory (default: data/backups)
//   - BACKUP_INTERVAL: Scheduled backup interval, 0 disables (default: 24h)
//   - BACKUP_MAX_COUNT: Keep at most this many backups (default: 20)
//   - BACKUP_MAX_AGE_DAYS: Delete backups older than this, 0 = forever (default: 90)
//   - BACKUP_MIN_COUNT: Never delete below this many (default: 3)
//   - BACKUP_COMPRESSION_LEVEL: gzip level 1-9 (default: 6)
type BackupConfig struct {
	Enabled          bool          `koanf:"enabled"`
	Dir              string        `koanf:"dir"`
	Interval         time.Duration `koanf:"interval"`
	MaxCount         int           `koanf:"max_count"`
	MaxAgeDays       int           `koanf:"max_age_days"`
	MinCount         int           `koanf:"min_count"`
	CompressionLevel int           `koanf:"compression_level"`
}

// MetricsConfig holds Prometheus exposure settings.
//
// Environment Variables:
//   - METRICS_ENABLED: Serve the /metrics endpoint (default: true)
type MetricsConfig struct {
	Enabled bool `koanf:"enabled"`
}

// LoggingConfig holds log output settings.
//
// Environment Variables:
//   - LOG_LEVEL: trace, debug, info, warn, error (default: info)
//   - LOG_FORMAT: json or console (default: json)
//   - LOG_CALLER: Include caller file:line (default: false)
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// Load reads configuration from defaults, an optional config file, and
// environment variables, then validates it.
func Load() (*Config, error) {
	return LoadWithKoanf()
}

// Summary returns a sanitized snapshot of the effective settings, safe to
// archive inside backups and show to operators. Secrets and credentials
// are omitted entirely.
func (c *Config) Summary() map[string]interface{} {
	return map[string]interface{}{
		"server": map[string]interface{}{
			"port":        c.Server.Port,
			"host":        c.Server.Host,
			"timeout":     c.Server.Timeout.String(),
			"environment": c.Server.Environment,
		},
		"database": map[string]interface{}{
			"path":       c.Database.Path,
			"max_memory": c.Database.MaxMemory,
			"threads":    c.Database.Threads,
		},
		"api": map[string]interface{}{
			"default_page_size": c.API.DefaultPageSize,
			"max_page_size":     c.API.MaxPageSize,
		},
		"security": map[string]interface{}{
			"token_ttl":           c.Security.TokenTTL.String(),
			"bcrypt_cost":         c.Security.BcryptCost,
			"session_store_path":  c.Security.SessionStorePath,
			"rate_limit_disabled": c.Security.RateLimitDisabled,
			"cors_origins":        c.Security.CORSOrigins,
			"oidc_enabled":        c.Security.OIDC.Enabled,
		},
		"recommend": map[string]interface{}{
			"artifact_path":    c.Recommend.ArtifactPath,
			"max_features":     c.Recommend.MaxFeatures,
			"default_top_k":    c.Recommend.DefaultTopK,
			"max_top_k":        c.Recommend.MaxTopK,
			"retrain_debounce": c.Recommend.RetrainDebounce.String(),
			"retrain_interval": c.Recommend.RetrainInterval.String(),
		},
		"scrape": map[string]interface{}{
			"base_url":            c.Scrape.BaseURL,
			"max_pages":           c.Scrape.MaxPages,
			"requests_per_second": c.Scrape.RequestsPerSecond,
		},
		"audit": map[string]interface{}{
			"enabled":        c.Audit.Enabled,
			"retention_days": c.Audit.RetentionDays,
		},
		"backup": map[string]interface{}{
			"enabled":      c.Backup.Enabled,
			"dir":          c.Backup.Dir,
			"interval":     c.Backup.Interval.String(),
			"max_count":    c.Backup.MaxCount,
			"max_age_days": c.Backup.MaxAgeDays,
			"min_count":    c.Backup.MinCount,
		},
		"metrics": map[string]interface{}{
			"enabled": c.Metrics.Enabled,
		},
		"logging": map[string]interface{}{
			"level":  c.Logging.Level,
			"format": c.Logging.Format,
		},
	}
}
