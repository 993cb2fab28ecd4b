// BibReaders - Library Catalog and Book Recommendations
// Copyright 2026 Raihana A. (RaihanaAm)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/RaihanaAm/Bib-Readers

// Package audit provides security audit logging for compliance and forensic analysis.
//
// This package implements a security audit trail for the BibReaders application,
// recording security-relevant events such as authentication attempts, authorization
// decisions, catalog mutations, and administrative actions.
//
// # Overview
//
// The audit system provides:
//   - Structured event logging with typed event categories
//   - DuckDB persistence sharing the catalog database file
//   - Asynchronous buffered writes for minimal latency impact
//   - Automatic retention policy enforcement with configurable cleanup
//   - JSON and CSV export for offline review
//   - Flexible querying with multi-dimensional filters
//
// # Event Types
//
// Events are categorized into the following groups:
//
// Authentication Events:
//   - auth.success: Successful login attempts
//   - auth.failure: Failed login attempts
//   - auth.logout: Member logout events
//
// Authorization Events:
//   - authz.denied: Access denied decisions
//
// Catalog Events:
//   - book.created, book.updated, book.deleted: Catalog mutations
//   - catalog.imported: Bulk imports from the scraper or CSV files
//
// Administrative Events:
//   - member.registered: Member account creation
//   - data.export: Audit trail exports
//   - admin.action: Training triggers and other administrative actions
//
// # Architecture
//
// The audit system uses a producer-consumer pattern:
//
//	Logger.Log() -> Event Buffer (chan) -> Async Writer -> Store
//	                     |                      |
//	                 Non-blocking           Background goroutine
//
// Events are buffered in a channel to avoid blocking the caller. A background
// goroutine drains the buffer and persists events to the store.
//
// # Usage Example
//
// Basic audit logging:
//
//	// Initialize store and logger
//	store := audit.NewDuckDBStore(db.Conn())
//	logger := audit.NewLogger(store, audit.DefaultConfig())
//	defer logger.Close()
//
//	// Log authentication success
//	logger.LogAuthSuccess(ctx,
//	    audit.ActorFromMember(member.ID, member.Name, member.Role, "password", sessionID),
//	    audit.SourceFromRequest(r), "password")
//
//	// Log authentication failure
//	logger.LogAuthFailure(ctx, email, audit.SourceFromRequest(r), "invalid_password")
//
//	// Log authorization denial
//	logger.LogAuthzDenied(ctx, actor, source, "training", "write")
//
// Querying audit logs:
//
//	filter := audit.QueryFilter{
//	    Types:     []audit.EventType{audit.EventTypeAuthFailure},
//	    StartTime: &startTime,
//	    EndTime:   &endTime,
//	    ActorID:   "42",
//	    Limit:     100,
//	    OrderDesc: true,
//	}
//	events, err := logger.Query(ctx, filter)
//
// # Configuration
//
// The logger supports the following configuration options:
//
//	cfg := audit.Config{
//	    Enabled:         true,           // Enable audit logging
//	    LogLevel:        audit.SeverityInfo, // Minimum severity level
//	    RetentionDays:   90,             // Keep logs for 90 days
//	    CleanupInterval: 24 * time.Hour, // Run cleanup daily
//	    BufferSize:      1000,           // Event buffer size
//	    LogToStdout:     false,          // Also log to stdout
//	    IncludeDebug:    false,          // Include debug events
//	}
//
// # Export
//
// Export events as JSON or CSV for offline review:
//
//	exporter := &audit.CSVExporter{}
//	events, _ := logger.Query(ctx, filter)
//	csvData, _ := exporter.Export(events)
//
// # Retention Policy
//
// Automatic retention cleanup runs at the configured interval:
//
//	logger.StartCleanupRoutine(ctx)
//	// Events older than RetentionDays are automatically deleted
//
// # Thread Safety
//
// All exported functions are safe for concurrent use:
//   - Logger uses buffered channel for non-blocking writes
//   - Store implementations use appropriate synchronization
//   - Query operations use read locks for concurrent access
//
// # Performance Characteristics
//
//   - Log operation: <1ms (non-blocking, channel send)
//   - Query operation: 1-100ms depending on filter complexity
//   - Buffer overflow: Events dropped with warning log
//   - Memory overhead: ~100 bytes per buffered event
//
// # See Also
//
//   - internal/auth: Authentication events source
//   - internal/authz: Authorization events source
//   - internal/api: Audit handlers for API access
package audit
