// BibReaders - Library Catalog and Book Recommendations
// Copyright 2026 Raihana A. (RaihanaAm)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/RaihanaAm/Bib-Readers

// Package audit provides security audit logging functionality.
// It records security-relevant events for compliance and forensic analysis.
package audit

import (
	"context"
	"time"

	"github.com/goccy/go-json"
)

// EventType categorizes audit events.
type EventType string

const (
	// Authentication events
	EventTypeAuthSuccess EventType = "auth.success"
	EventTypeAuthFailure EventType = "auth.failure"
	EventTypeLogout      EventType = "auth.logout"

	// Authorization events
	EventTypeAuthzDenied EventType = "authz.denied"

	// Member lifecycle events
	EventTypeMemberRegistered EventType = "member.registered"

	// Catalog mutation events
	EventTypeBookCreated EventType = "book.created"
	EventTypeBookUpdated EventType = "book.updated"
	EventTypeBookDeleted EventType = "book.deleted"

	// Bulk data events
	EventTypeCatalogImported EventType = "catalog.imported"
	EventTypeDataExport      EventType = "data.export"

	// Administrative events
	EventTypeAdminAction EventType = "admin.action"
)

// Severity indicates the severity level of an audit event.
type Severity string

const (
	SeverityDebug    Severity = "debug"
	SeverityInfo     Severity = "info"
	SeverityWarning  Severity = "warning"
	SeverityError    Severity = "error"
	SeverityCritical Severity = "critical"
)

// Outcome indicates whether an action succeeded or failed.
type Outcome string

const (
	OutcomeSuccess Outcome = "success"
	OutcomeFailure Outcome = "failure"
	OutcomeUnknown Outcome = "unknown"
)

// Event represents a security audit event.
type Event struct {
	// ID is a unique identifier for this event.
	ID string `json:"id"`

	// Timestamp when the event occurred.
	Timestamp time.Time `json:"timestamp"`

	// Type categorizes the event.
	Type EventType `json:"type"`

	// Severity of the event.
	Severity Severity `json:"severity"`

	// Outcome indicates success or failure.
	Outcome Outcome `json:"outcome"`

	// Actor who performed the action.
	Actor Actor `json:"actor"`

	// Target of the action (optional).
	Target *Target `json:"target,omitempty"`

	// Source of the request.
	Source Source `json:"source"`

	// Action describes what was done.
	Action string `json:"action"`

	// Description provides human-readable details.
	Description string `json:"description"`

	// Metadata contains event-specific details.
	Metadata json.RawMessage `json:"metadata,omitempty"`

	// RequestID from the originating HTTP request.
	RequestID string `json:"request_id,omitempty"`
}

// Actor represents who performed an action.
type Actor struct {
	// ID is the unique identifier (member id or a service name).
	ID string `json:"id"`

	// Type of actor (member, system).
	Type string `json:"type"`

	// Display name of the actor.
	Name string `json:"name,omitempty"`

	// Role the actor held when acting.
	Role string `json:"role,omitempty"`

	// SessionID of the token session, when authenticated.
	SessionID string `json:"session_id,omitempty"`

	// AuthMethod used (password, oidc).
	AuthMethod string `json:"auth_method,omitempty"`
}

// Target represents the object of an action.
type Target struct {
	// ID of the target resource.
	ID string `json:"id"`

	// Type of target (book, member, session, model).
	Type string `json:"type"`

	// Name of the target.
	Name string `json:"name,omitempty"`
}

// Source represents where a request originated.
type Source struct {
	// IPAddress of the client.
	IPAddress string `json:"ip_address"`

	// UserAgent of the client.
	UserAgent string `json:"user_agent,omitempty"`

	// Hostname the request was addressed to.
	Hostname string `json:"hostname,omitempty"`
}

// Store defines the interface for audit event persistence.
type Store interface {
	// Save persists an audit event.
	Save(ctx context.Context, event *Event) error

	// Get retrieves an event by ID.
	Get(ctx context.Context, id string) (*Event, error)

	// Query retrieves events matching the filter.
	Query(ctx context.Context, filter QueryFilter) ([]Event, error)

	// Count returns the number of events matching the filter.
	Count(ctx context.Context, filter QueryFilter) (int64, error)

	// Delete removes events older than the retention period.
	Delete(ctx context.Context, olderThan time.Time) (int64, error)
}

// QueryFilter defines filtering options for audit queries.
type QueryFilter struct {
	// Types filters by event types.
	Types []EventType `json:"types,omitempty"`

	// Severities filters by severity levels.
	Severities []Severity `json:"severities,omitempty"`

	// Outcomes filters by outcome.
	Outcomes []Outcome `json:"outcomes,omitempty"`

	// ActorID filters by actor ID.
	ActorID string `json:"actor_id,omitempty"`

	// TargetID filters by target ID.
	TargetID string `json:"target_id,omitempty"`

	// TargetType filters by target type.
	TargetType string `json:"target_type,omitempty"`

	// SourceIP filters by source IP.
	SourceIP string `json:"source_ip,omitempty"`

	// StartTime is the beginning of the time range.
	StartTime *time.Time `json:"start_time,omitempty"`

	// EndTime is the end of the time range.
	EndTime *time.Time `json:"end_time,omitempty"`

	// RequestID filters by request ID.
	RequestID string `json:"request_id,omitempty"`

	// SearchText performs a text search on description and action.
	SearchText string `json:"search_text,omitempty"`

	// Limit is the maximum number of results.
	Limit int `json:"limit,omitempty"`

	// Offset for pagination.
	Offset int `json:"offset,omitempty"`

	// OrderBy specifies the sort field.
	OrderBy string `json:"order_by,omitempty"`

	// OrderDesc sorts in descending order.
	OrderDesc bool `json:"order_desc,omitempty"`
}

// DefaultQueryFilter returns a sensible default filter.
func DefaultQueryFilter() QueryFilter {
	return QueryFilter{
		Limit:     100,
		OrderBy:   "timestamp",
		OrderDesc: true,
	}
}
