// BibReaders - Library Catalog and Book Recommendations
// Copyright 2026 Raihana A. (RaihanaAm)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/RaihanaAm/Bib-Readers

package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus instrumentation for:
// - API endpoint latency and throughput
// - Database query performance (DuckDB)
// - Authentication and session activity
// - Recommendation queries and model training
// - Scraper progress
// - WebSocket connections

var (
	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)

	// Database Metrics
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "duckdb_query_duration_seconds",
			Help:    "Duration of DuckDB queries in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation", "table"},
	)

	DBQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "duckdb_query_errors_total",
			Help: "Total number of DuckDB query errors",
		},
		[]string{"operation", "table"},
	)

	CatalogSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "catalog_books",
			Help: "Current number of books in the catalog",
		},
	)

	// Authentication Metrics
	AuthLogins = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_logins_total",
			Help: "Total number of login attempts",
		},
		[]string{"result"}, // "success", "failure"
	)

	AuthRegistrations = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "auth_registrations_total",
			Help: "Total number of member registrations",
		},
	)

	AuthTokenValidations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_token_validations_total",
			Help: "Total number of token validations by the middleware",
		},
		[]string{"result"}, // "success", "invalid", "revoked", "inactive"
	)

	ActiveSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "auth_active_sessions",
			Help: "Current number of entries in the session registry",
		},
	)

	// Recommendation Metrics
	RecommendQueries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommend_queries_total",
			Help: "Total number of recommendation queries",
		},
		[]string{"result"}, // "success", "unavailable", "error"
	)

	RecommendQueryDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommend_query_duration_seconds",
			Help:    "Recommendation query duration in seconds",
			Buckets: []float64{0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
	)

	ModelTrainingDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommend_training_duration_seconds",
			Help:    "Duration of model training runs in seconds",
			Buckets: []float64{0.1, 0.5, 1, 5, 10, 30, 60, 120, 300},
		},
	)

	ModelTrainingRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommend_training_runs_total",
			Help: "Total number of model training runs",
		},
		[]string{"result"}, // "success", "failure"
	)

	ModelLastTrained = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "recommend_model_last_trained_timestamp",
			Help: "Unix timestamp of the last successful model training",
		},
	)

	ModelEntryCount = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "recommend_model_entries",
			Help: "Number of catalog entries in the loaded model",
		},
	)

	ModelVocabularySize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "recommend_model_vocabulary_size",
			Help: "Vocabulary size of the loaded model",
		},
	)

	// Scraper Metrics
	ScrapePages = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scrape_pages_total",
			Help: "Total number of listing pages fetched",
		},
		[]string{"result"}, // "success", "failure"
	)

	ScrapeBooks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scrape_books_total",
			Help: "Total number of books ingested by the scraper",
		},
		[]string{"action"}, // "created", "updated", "failed"
	)

	ScrapeDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "scrape_run_duration_seconds",
			Help:    "Duration of complete scrape runs in seconds",
			Buckets: []float64{1, 5, 10, 30, 60, 120, 300, 600},
		},
	)

	// Backup Metrics
	BackupRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "backup_runs_total",
			Help: "Total number of backup runs",
		},
		[]string{"result"}, // "success", "failure"
	)

	BackupDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "backup_duration_seconds",
			Help:    "Duration of backup runs in seconds",
			Buckets: []float64{0.1, 0.5, 1, 5, 10, 30, 60, 120, 300},
		},
	)

	BackupArchiveSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "backup_archive_size_bytes",
			Help: "Size of the most recent backup archive in bytes",
		},
	)

	BackupLastSuccess = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "backup_last_success_timestamp",
			Help: "Unix timestamp of the last successful backup",
		},
	)

	// Event Bus Metrics
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "events_published_total",
			Help: "Total number of events published to the bus",
		},
		[]string{"topic"},
	)

	EventsProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "events_processed_total",
			Help: "Total number of events handled by subscribers",
		},
		[]string{"topic", "result"},
	)

	// WebSocket Metrics
	WSConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "websocket_connections",
			Help: "Current number of active WebSocket connections",
		},
	)

	WSMessagesSent = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "websocket_messages_sent_total",
			Help: "Total number of WebSocket messages sent",
		},
	)

	// System Metrics
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "app_info",
			Help: "Application version and build information",
		},
		[]string{"version", "go_version"},
	)

	AppUptime = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "app_uptime_seconds",
			Help: "Application uptime in seconds",
		},
	)
)

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint string, statusCode int, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, strconv.Itoa(statusCode)).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// RecordDBQuery records a database query metric
func RecordDBQuery(operation, table string, duration time.Duration, err error) {
	DBQueryDuration.WithLabelValues(operation, table).Observe(duration.Seconds())
	if err != nil {
		DBQueryErrors.WithLabelValues(operation, table).Inc()
	}
}

// TrackActiveRequest increments or decrements the active request gauge
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordLogin records a login attempt
func RecordLogin(success bool) {
	result := "failure"
	if success {
		result = "success"
	}
	AuthLogins.WithLabelValues(result).Inc()
}

// RecordTokenValidation records a middleware token check outcome
func RecordTokenValidation(result string) {
	AuthTokenValidations.WithLabelValues(result).Inc()
}

// RecordRecommendQuery records a recommendation query outcome
func RecordRecommendQuery(result string, duration time.Duration) {
	RecommendQueries.WithLabelValues(result).Inc()
	RecommendQueryDuration.Observe(duration.Seconds())
}

// RecordTrainingRun records a model training run and, on success, the
// loaded model's shape
func RecordTrainingRun(duration time.Duration, entries, vocabSize int, err error) {
	ModelTrainingDuration.Observe(duration.Seconds())
	if err != nil {
		ModelTrainingRuns.WithLabelValues("failure").Inc()
		return
	}
	ModelTrainingRuns.WithLabelValues("success").Inc()
	ModelLastTrained.SetToCurrentTime()
	ModelEntryCount.Set(float64(entries))
	ModelVocabularySize.Set(float64(vocabSize))
}

// RecordScrapePage records the outcome of one listing page fetch
func RecordScrapePage(success bool) {
	result := "failure"
	if success {
		result = "success"
	}
	ScrapePages.WithLabelValues(result).Inc()
}

// RecordScrapedBook records one scraper upsert outcome
func RecordScrapedBook(action string) {
	ScrapeBooks.WithLabelValues(action).Inc()
}

// RecordBackup records a backup run outcome
func RecordBackup(duration time.Duration, sizeBytes int64, err error) {
	BackupDuration.Observe(duration.Seconds())
	if err != nil {
		BackupRuns.WithLabelValues("failure").Inc()
		return
	}
	BackupRuns.WithLabelValues("success").Inc()
	BackupArchiveSize.Set(float64(sizeBytes))
	BackupLastSuccess.SetToCurrentTime()
}

// RecordEventPublished records one event published to the bus
func RecordEventPublished(topic string) {
	EventsPublished.WithLabelValues(topic).Inc()
}

// RecordEventProcessed records one handled event
func RecordEventProcessed(topic string, err error) {
	result := "success"
	if err != nil {
		result = "failure"
	}
	EventsProcessed.WithLabelValues(topic, result).Inc()
}
