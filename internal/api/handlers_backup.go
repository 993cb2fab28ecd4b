// BibReaders - Library Catalog and Book Recommendations
// Copyright 2026 Raihana A. (RaihanaAm)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/RaihanaAm/Bib-Readers

package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/goccy/go-json"

	"github.com/RaihanaAm/Bib-Readers/internal/audit"
	"github.com/RaihanaAm/Bib-Readers/internal/backup"
	"github.com/RaihanaAm/Bib-Readers/internal/logging"
)

// BackupPage is one page of backup records plus the total match count.
type BackupPage struct {
	Items  []*backup.Backup `json:"items"`
	Total  int              `json:"total"`
	Limit  int              `json:"limit"`
	Offset int              `json:"offset"`
}

// requireBackups checks backup subsystem availability and returns true if
// available, false if an error response was already sent.
func (h *Handler) requireBackups(w http.ResponseWriter, r *http.Request) bool {
	if h.backups == nil {
		respondError(w, r, http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "Backups are not enabled", nil)
		return false
	}
	return true
}

// auditBackupAction records a backup operation in the audit trail when it
// is wired.
func (h *Handler) auditBackupAction(r *http.Request, action, description string, metadata map[string]interface{}) {
	if h.auditor == nil {
		return
	}
	h.auditor.LogAdminAction(r.Context(), h.requestActor(r), audit.SourceFromRequest(r), action, description, metadata)
}

// backupListFromQuery builds listing options from query parameters.
// Returns false after responding when a parameter is invalid.
func backupListFromQuery(w http.ResponseWriter, r *http.Request) (backup.ListOptions, bool) {
	opts := backup.ListOptions{
		Limit:    clampInt(getIntParam(r, "limit", 50), 1, 500),
		Offset:   clampInt(getIntParam(r, "offset", 0), 0, 1<<30),
		SortDesc: true,
	}
	q := r.URL.Query()

	if v := q.Get("status"); v != "" {
		status := backup.Status(v)
		opts.Status = &status
	}
	if v := q.Get("trigger"); v != "" {
		trigger := backup.Trigger(v)
		opts.Trigger = &trigger
	}

	var ok bool
	if opts.StartDate, ok = parseTimeParam(w, r, "start_date"); !ok {
		return opts, false
	}
	if opts.EndDate, ok = parseTimeParam(w, r, "end_date"); !ok {
		return opts, false
	}
	if q.Get("order") == "asc" {
		opts.SortDesc = false
	}

	return opts, true
}

// ListBackups returns a filtered page of backup records
//
// @Summary List backups
// @Description Returns backup records filtered by status, trigger, and creation time, newest first. Admin only.
// @Tags Admin
// @Accept json
// @Produce json
// @Param status query string false "Filter by status: in_progress, completed, failed, corrupted"
// @Param trigger query string false "Filter by trigger: manual, scheduled, pre_restore"
// @Param start_date query string false "RFC 3339 lower bound on creation time"
// @Param end_date query string false "RFC 3339 upper bound on creation time"
// @Param limit query int false "Maximum records returned" default(50) maximum(500)
// @Param offset query int false "Records to skip" default(0)
// @Param order query string false "Sort order by creation time: asc or desc" default(desc)
// @Security BearerAuth
// @Success 200 {object} models.APIResponse{data=BackupPage} "Backup records"
// @Failure 400 {object} models.APIResponse "Invalid filter parameter"
// @Failure 401 {object} models.APIResponse "Not authenticated"
// @Failure 403 {object} models.APIResponse "Not an admin"
// @Failure 503 {object} models.APIResponse "Backups are not enabled"
// @Router /admin/backups [get]
func (h *Handler) ListBackups(w http.ResponseWriter, r *http.Request) {
	if !h.requireBackups(w, r) {
		return
	}

	opts, ok := backupListFromQuery(w, r)
	if !ok {
		return
	}

	start := time.Now()
	items, total, err := h.backups.List(opts)
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list backups", err)
		return
	}

	respondDataTimed(w, r, http.StatusOK, BackupPage{
		Items:  items,
		Total:  total,
		Limit:  opts.Limit,
		Offset: opts.Offset,
	}, start)
}

// BackupStats returns aggregate backup statistics
//
// @Summary Backup statistics
// @Description Returns counts by status and trigger, total and average archive sizes, success rate, and the next scheduled run. Admin only.
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.APIResponse{data=backup.Stats} "Backup statistics"
// @Failure 401 {object} models.APIResponse "Not authenticated"
// @Failure 403 {object} models.APIResponse "Not an admin"
// @Failure 503 {object} models.APIResponse "Backups are not enabled"
// @Router /admin/backups/stats [get]
func (h *Handler) BackupStats(w http.ResponseWriter, r *http.Request) {
	if !h.requireBackups(w, r) {
		return
	}
	respondData(w, r, http.StatusOK, h.backups.GetStats())
}

// CreateBackup takes a manual backup
//
// @Summary Create a backup
// @Description Snapshots the database, the recommendation artifact, and a sanitized configuration summary into a new archive. Admin only.
// @Tags Admin
// @Accept json
// @Produce json
// @Param body body CreateBackupRequest false "Optional operator notes"
// @Security BearerAuth
// @Success 201 {object} models.APIResponse{data=backup.Backup} "Backup created"
// @Failure 400 {object} models.APIResponse "Invalid request body"
// @Failure 401 {object} models.APIResponse "Not authenticated"
// @Failure 403 {object} models.APIResponse "Not an admin"
// @Failure 500 {object} models.APIResponse "Backup failed"
// @Failure 503 {object} models.APIResponse "Backups are not enabled"
// @Router /admin/backups [post]
func (h *Handler) CreateBackup(w http.ResponseWriter, r *http.Request) {
	if !h.requireBackups(w, r) {
		return
	}

	var req CreateBackupRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", err)
			return
		}
		if apiErr := validateRequest(&req); apiErr != nil {
			respondValidationError(w, r, apiErr)
			return
		}
	}

	b, err := h.backups.CreateBackup(r.Context(), req.Notes)
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Backup failed", err)
		return
	}

	h.auditBackupAction(r, "backup_create", "Manual backup created", map[string]interface{}{
		"backup_id":  b.ID,
		"size_bytes": b.FileSize,
	})
	logging.Ctx(r.Context()).Info().Str("backup_id", b.ID).Msg("Manual backup created")
	respondData(w, r, http.StatusCreated, b)
}

// GetBackup returns one backup record
//
// @Summary Get a backup
// @Description Returns a single backup record including its archived file manifest. Admin only.
// @Tags Admin
// @Accept json
// @Produce json
// @Param id path string true "Backup id"
// @Security BearerAuth
// @Success 200 {object} models.APIResponse{data=backup.Backup} "Backup record"
// @Failure 401 {object} models.APIResponse "Not authenticated"
// @Failure 403 {object} models.APIResponse "Not an admin"
// @Failure 404 {object} models.APIResponse "Backup not found"
// @Failure 503 {object} models.APIResponse "Backups are not enabled"
// @Router /admin/backups/{id} [get]
func (h *Handler) GetBackup(w http.ResponseWriter, r *http.Request) {
	if !h.requireBackups(w, r) {
		return
	}

	b, err := h.backups.Get(r.PathValue("id"))
	if err != nil {
		if errors.Is(err, backup.ErrNotFound) {
			respondError(w, r, http.StatusNotFound, "NOT_FOUND", "Backup not found", nil)
			return
		}
		respondError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load backup", err)
		return
	}
	respondData(w, r, http.StatusOK, b)
}

// DownloadBackup streams a backup archive to the client
//
// @Summary Download a backup archive
// @Description Streams the tar.gz archive of a backup as an attachment. The download is recorded in the audit trail. Admin only.
// @Tags Admin
// @Produce application/gzip
// @Param id path string true "Backup id"
// @Security BearerAuth
// @Success 200 {string} string "Archive bytes"
// @Failure 401 {object} models.APIResponse "Not authenticated"
// @Failure 403 {object} models.APIResponse "Not an admin"
// @Failure 404 {object} models.APIResponse "Backup not found"
// @Failure 503 {object} models.APIResponse "Backups are not enabled"
// @Router /admin/backups/{id}/download [get]
func (h *Handler) DownloadBackup(w http.ResponseWriter, r *http.Request) {
	if !h.requireBackups(w, r) {
		return
	}

	reader, b, err := h.backups.Download(r.PathValue("id"))
	if err != nil {
		if errors.Is(err, backup.ErrNotFound) {
			respondError(w, r, http.StatusNotFound, "NOT_FOUND", "Backup not found", nil)
			return
		}
		respondError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to open backup archive", err)
		return
	}
	defer reader.Close() //nolint:errcheck // read-only stream

	h.auditBackupAction(r, "backup_download", "Backup archive downloaded", map[string]interface{}{
		"backup_id":  b.ID,
		"size_bytes": b.FileSize,
	})

	filename := fmt.Sprintf("bibreaders-%s.tar.gz", b.ID)
	w.Header().Set("Content-Type", "application/gzip")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", strconv.FormatInt(b.FileSize, 10))
	w.WriteHeader(http.StatusOK)
	if _, err := io.Copy(w, reader); err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("Failed to stream backup archive")
	}
}

// DeleteBackup deletes a backup and its archive
//
// @Summary Delete a backup
// @Description Removes the backup record and its archive file. Admin only.
// @Tags Admin
// @Accept json
// @Produce json
// @Param id path string true "Backup id"
// @Security BearerAuth
// @Success 200 {object} models.APIResponse{data=object{status=string}} "Backup deleted"
// @Failure 401 {object} models.APIResponse "Not authenticated"
// @Failure 403 {object} models.APIResponse "Not an admin"
// @Failure 404 {object} models.APIResponse "Backup not found"
// @Failure 500 {object} models.APIResponse "Failed to delete backup"
// @Failure 503 {object} models.APIResponse "Backups are not enabled"
// @Router /admin/backups/{id} [delete]
func (h *Handler) DeleteBackup(w http.ResponseWriter, r *http.Request) {
	if !h.requireBackups(w, r) {
		return
	}

	id := r.PathValue("id")
	if err := h.backups.Delete(id); err != nil {
		if errors.Is(err, backup.ErrNotFound) {
			respondError(w, r, http.StatusNotFound, "NOT_FOUND", "Backup not found", nil)
			return
		}
		respondError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to delete backup", err)
		return
	}

	h.auditBackupAction(r, "backup_delete", "Backup deleted", map[string]interface{}{"backup_id": id})
	respondData(w, r, http.StatusOK, map[string]string{"status": "deleted"})
}

// RestoreBackup restores the database from a backup archive
//
// @Summary Restore from a backup
// @Description Validates the archive, optionally takes a pre-restore safety backup, then replaces the database file and recommendation artifact. A successful database restore requires a process restart. Admin only.
// @Tags Admin
// @Accept json
// @Produce json
// @Param id path string true "Backup id"
// @Param body body RestoreRequest false "Restore options"
// @Security BearerAuth
// @Success 200 {object} models.APIResponse{data=backup.RestoreResult} "Restore result"
// @Failure 400 {object} models.APIResponse "Invalid request body or corrupt archive"
// @Failure 401 {object} models.APIResponse "Not authenticated"
// @Failure 403 {object} models.APIResponse "Not an admin"
// @Failure 404 {object} models.APIResponse "Backup not found"
// @Failure 500 {object} models.APIResponse "Restore failed"
// @Failure 503 {object} models.APIResponse "Backups are not enabled"
// @Router /admin/backups/{id}/restore [post]
func (h *Handler) RestoreBackup(w http.ResponseWriter, r *http.Request) {
	if !h.requireBackups(w, r) {
		return
	}

	var req RestoreRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", err)
			return
		}
	}

	id := r.PathValue("id")
	opts := backup.RestoreOptions{
		ValidateOnly:       req.ValidateOnly,
		PreRestoreBackup:   !req.SkipPreRestoreBackup,
		Force:              req.Force,
		VerifyAfterRestore: !req.ValidateOnly,
	}

	result, err := h.backups.RestoreFromBackup(r.Context(), id, opts)
	if err != nil {
		if errors.Is(err, backup.ErrNotFound) {
			respondError(w, r, http.StatusNotFound, "NOT_FOUND", "Backup not found", nil)
			return
		}
		if errors.Is(err, backup.ErrValidationFailed) {
			respondError(w, r, http.StatusBadRequest, "BAD_REQUEST", err.Error(), nil)
			return
		}
		respondError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Restore failed", err)
		return
	}

	h.auditBackupAction(r, "backup_restore", "Database restored from backup", map[string]interface{}{
		"backup_id":         id,
		"validate_only":     req.ValidateOnly,
		"database_restored": result.DatabaseRestored,
		"restart_required":  result.RestartRequired,
	})
	logging.Ctx(r.Context()).Warn().
		Str("backup_id", id).
		Bool("restart_required", result.RestartRequired).
		Msg("Restore completed via API")
	respondData(w, r, http.StatusOK, result)
}
