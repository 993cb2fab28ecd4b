// BibReaders - Library Catalog and Book Recommendations
// Copyright 2026 Raihana A. (RaihanaAm)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/RaihanaAm/Bib-Readers

package api

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/RaihanaAm/Bib-Readers/internal/audit"
	"github.com/RaihanaAm/Bib-Readers/internal/logging"
)

// AuditEventPage is one page of audit events plus the total match count.
type AuditEventPage struct {
	Items  []audit.Event `json:"items"`
	Total  int64         `json:"total"`
	Limit  int           `json:"limit"`
	Offset int           `json:"offset"`
}

// requireAuditor checks audit trail availability and returns true if
// available, false if an error response was already sent.
func (h *Handler) requireAuditor(w http.ResponseWriter, r *http.Request) bool {
	if h.auditor == nil {
		respondError(w, r, http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "Audit trail not available", nil)
		return false
	}
	return true
}

// splitCSVParam splits a comma-separated query value into trimmed parts.
func splitCSVParam(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// parseTimeParam parses an optional RFC 3339 query parameter. Returns
// false after sending a BAD_REQUEST response when the value is malformed.
func parseTimeParam(w http.ResponseWriter, r *http.Request, key string) (*time.Time, bool) {
	value := r.URL.Query().Get(key)
	if value == "" {
		return nil, true
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		respondError(w, r, http.StatusBadRequest, "BAD_REQUEST",
			fmt.Sprintf("%s must be an RFC 3339 timestamp", key), err)
		return nil, false
	}
	return &t, true
}

// auditFilterFromQuery builds a store filter from query parameters.
// Returns false after responding when a parameter is invalid. Unknown
// enum values are passed through; they simply match nothing.
func auditFilterFromQuery(w http.ResponseWriter, r *http.Request, maxLimit int) (audit.QueryFilter, bool) {
	filter := audit.DefaultQueryFilter()
	q := r.URL.Query()

	for _, t := range splitCSVParam(q.Get("type")) {
		filter.Types = append(filter.Types, audit.EventType(t))
	}
	for _, s := range splitCSVParam(q.Get("severity")) {
		filter.Severities = append(filter.Severities, audit.Severity(s))
	}
	for _, o := range splitCSVParam(q.Get("outcome")) {
		filter.Outcomes = append(filter.Outcomes, audit.Outcome(o))
	}

	filter.ActorID = q.Get("actor_id")
	filter.TargetID = q.Get("target_id")
	filter.TargetType = q.Get("target_type")
	filter.SourceIP = q.Get("source_ip")
	filter.RequestID = q.Get("request_id")
	filter.SearchText = q.Get("q")

	var ok bool
	if filter.StartTime, ok = parseTimeParam(w, r, "start_time"); !ok {
		return filter, false
	}
	if filter.EndTime, ok = parseTimeParam(w, r, "end_time"); !ok {
		return filter, false
	}

	filter.Limit = clampInt(getIntParam(r, "limit", filter.Limit), 1, maxLimit)
	filter.Offset = clampInt(getIntParam(r, "offset", 0), 0, 1<<30)
	if q.Get("order") == "asc" {
		filter.OrderDesc = false
	}

	return filter, true
}

// AuditEvents returns a filtered page of the audit trail
//
// @Summary Query audit events
// @Description Returns security audit events filtered by type, severity, outcome, actor, target, source IP, time range, and free text. Admin only.
// @Tags Admin
// @Accept json
// @Produce json
// @Param type query string false "Comma-separated event types, e.g. auth.failure,book.deleted"
// @Param severity query string false "Comma-separated severities: debug, info, warning, error, critical"
// @Param outcome query string false "Comma-separated outcomes: success, failure, unknown"
// @Param actor_id query string false "Acting member id"
// @Param target_id query string false "Target resource id"
// @Param target_type query string false "Target resource type, e.g. book"
// @Param source_ip query string false "Client IP address"
// @Param request_id query string false "Originating request id"
// @Param q query string false "Free text search on action and description"
// @Param start_time query string false "RFC 3339 lower bound"
// @Param end_time query string false "RFC 3339 upper bound"
// @Param limit query int false "Maximum events returned" default(100) maximum(1000)
// @Param offset query int false "Events to skip" default(0)
// @Param order query string false "Sort order by timestamp: asc or desc" default(desc)
// @Security BearerAuth
// @Success 200 {object} models.APIResponse{data=AuditEventPage} "Audit events"
// @Failure 400 {object} models.APIResponse "Invalid filter parameter"
// @Failure 401 {object} models.APIResponse "Not authenticated"
// @Failure 403 {object} models.APIResponse "Not an admin"
// @Failure 500 {object} models.APIResponse "Internal server error"
// @Failure 503 {object} models.APIResponse "Audit trail not available"
// @Router /admin/audit [get]
func (h *Handler) AuditEvents(w http.ResponseWriter, r *http.Request) {
	if !h.requireAuditor(w, r) {
		return
	}

	filter, ok := auditFilterFromQuery(w, r, 1000)
	if !ok {
		return
	}

	start := time.Now()
	eventList, err := h.auditor.Query(r.Context(), filter)
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to query audit events", err)
		return
	}

	total, err := h.auditor.Count(r.Context(), filter)
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to count audit events", err)
		return
	}

	respondDataTimed(w, r, http.StatusOK, AuditEventPage{
		Items:  eventList,
		Total:  total,
		Limit:  filter.Limit,
		Offset: filter.Offset,
	}, start)
}

// exportLimit caps how many events a single export pulls from the store.
const exportLimit = 50000

// AuditExport downloads matching audit events as a file
//
// @Summary Export audit events
// @Description Downloads audit events matching the same filters as the query endpoint, as a JSON or CSV attachment. The export itself is recorded in the trail. Admin only.
// @Tags Admin
// @Accept json
// @Produce json,text/csv
// @Param format query string false "Export format: json or csv" default(json)
// @Param type query string false "Comma-separated event types"
// @Param severity query string false "Comma-separated severities"
// @Param start_time query string false "RFC 3339 lower bound"
// @Param end_time query string false "RFC 3339 upper bound"
// @Security BearerAuth
// @Success 200 {string} string "Exported events"
// @Failure 400 {object} models.APIResponse "Invalid filter or format"
// @Failure 401 {object} models.APIResponse "Not authenticated"
// @Failure 403 {object} models.APIResponse "Not an admin"
// @Failure 500 {object} models.APIResponse "Internal server error"
// @Failure 503 {object} models.APIResponse "Audit trail not available"
// @Router /admin/audit/export [get]
func (h *Handler) AuditExport(w http.ResponseWriter, r *http.Request) {
	if !h.requireAuditor(w, r) {
		return
	}

	format := r.URL.Query().Get("format")
	if format == "" {
		format = "json"
	}
	if format != "json" && format != "csv" {
		respondError(w, r, http.StatusBadRequest, "BAD_REQUEST", "format must be json or csv", nil)
		return
	}

	filter, ok := auditFilterFromQuery(w, r, exportLimit)
	if !ok {
		return
	}
	if r.URL.Query().Get("limit") == "" {
		filter.Limit = exportLimit
	}

	eventList, err := h.auditor.Query(r.Context(), filter)
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to query audit events", err)
		return
	}

	var data []byte
	contentType := "application/json"
	if format == "csv" {
		exporter := audit.CSVExporter{}
		data, err = exporter.Export(eventList)
		contentType = "text/csv"
	} else {
		exporter := audit.JSONExporter{}
		data, err = exporter.Export(eventList)
	}
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to export audit events", err)
		return
	}

	h.auditor.LogDataExport(r.Context(), h.requestActor(r), audit.SourceFromRequest(r), format, len(eventList))

	filename := fmt.Sprintf("audit-export-%s.%s", time.Now().UTC().Format("20060102-150405"), format)
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("Failed to write audit export")
	}
}
