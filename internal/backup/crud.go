// BibReaders - Library Catalog and Book Recommendations
// Copyright 2026 Raihana A. (RaihanaAm)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/RaihanaAm/Bib-Readers

package backup

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/RaihanaAm/Bib-Readers/internal/metrics"
)

// CreateBackup creates a manual backup with optional operator notes.
func (m *Manager) CreateBackup(ctx context.Context, notes string) (*Backup, error) {
	return m.createWithTrigger(ctx, TriggerManual, notes)
}

// CreateScheduledBackup creates a backup on behalf of the scheduler.
func (m *Manager) CreateScheduledBackup(ctx context.Context) (*Backup, error) {
	return m.createWithTrigger(ctx, TriggerScheduled, "Scheduled backup")
}

// createWithTrigger runs one backup end to end: record, archive, archive
// checksum, index update. A failed backup keeps its record with the error
// so operators see what happened and when.
func (m *Manager) createWithTrigger(ctx context.Context, trigger Trigger, notes string) (*Backup, error) {
	if !m.cfg.Enabled {
		return nil, ErrDisabled
	}

	start := time.Now()
	b := &Backup{
		ID:         uuid.New().String(),
		Status:     StatusInProgress,
		Trigger:    trigger,
		CreatedAt:  start,
		Notes:      notes,
		AppVersion: AppVersion,
		Files:      make([]ArchiveFile, 0, 4),
	}
	b.FilePath = m.archivePath(start, b.ID)

	if err := m.createArchive(ctx, b); err != nil {
		return m.failBackup(b, start, err)
	}

	checksum, err := fileChecksum(b.FilePath)
	if err != nil {
		return m.failBackup(b, start, fmt.Errorf("failed to checksum archive: %w", err))
	}
	b.Checksum = checksum
	b.FileSize = getFileSize(b.FilePath)

	b.Status = StatusCompleted
	completedAt := time.Now()
	b.CompletedAt = &completedAt
	b.Duration = time.Since(start)
	m.saveBackup(b)

	metrics.RecordBackup(b.Duration, b.FileSize, nil)
	m.logger.Info().
		Str("backup_id", b.ID).
		Str("trigger", string(trigger)).
		Int64("size_bytes", b.FileSize).
		Dur("duration", b.Duration).
		Msg("backup completed")

	return b, nil
}

// archivePath builds the timestamped archive filename.
func (m *Manager) archivePath(start time.Time, id string) string {
	name := fmt.Sprintf("backup-%s-%s.tar.gz", start.Format("20060102-150405"), id[:8])
	return filepath.Join(m.cfg.Dir, name)
}

// failBackup marks the record failed, removes the partial archive, and
// records the failure in the index and metrics.
func (m *Manager) failBackup(b *Backup, start time.Time, err error) (*Backup, error) {
	b.Status = StatusFailed
	b.Error = err.Error()
	completedAt := time.Now()
	b.CompletedAt = &completedAt
	b.Duration = time.Since(start)
	m.saveBackup(b)

	if fileExists(b.FilePath) {
		if rmErr := os.Remove(b.FilePath); rmErr != nil {
			m.logger.Warn().Err(rmErr).Str("path", b.FilePath).Msg("failed to remove partial archive")
		}
	}

	metrics.RecordBackup(b.Duration, 0, err)
	m.logger.Error().Err(err).Str("backup_id", b.ID).Msg("backup failed")
	return b, err
}

// List returns a filtered, sorted page of backups and the total number of
// records matching the filter before pagination.
func (m *Manager) List(opts ListOptions) ([]*Backup, int, error) {
	m.metadataMu.RLock()
	defer m.metadataMu.RUnlock()

	filtered := make([]*Backup, 0, len(m.metadata.Backups))
	for _, b := range m.metadata.Backups {
		if matchesFilter(b, opts) {
			filtered = append(filtered, b)
		}
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		if opts.SortDesc {
			return filtered[i].CreatedAt.After(filtered[j].CreatedAt)
		}
		return filtered[i].CreatedAt.Before(filtered[j].CreatedAt)
	})

	total := len(filtered)
	return paginate(filtered, opts), total, nil
}

// matchesFilter checks one record against the listing filter.
func matchesFilter(b *Backup, opts ListOptions) bool {
	if opts.Status != nil && b.Status != *opts.Status {
		return false
	}
	if opts.Trigger != nil && b.Trigger != *opts.Trigger {
		return false
	}
	if opts.StartDate != nil && b.CreatedAt.Before(*opts.StartDate) {
		return false
	}
	if opts.EndDate != nil && b.CreatedAt.After(*opts.EndDate) {
		return false
	}
	return true
}

// paginate applies offset and limit.
func paginate(backups []*Backup, opts ListOptions) []*Backup {
	if opts.Offset >= len(backups) {
		return []*Backup{}
	}
	if opts.Offset > 0 {
		backups = backups[opts.Offset:]
	}
	if opts.Limit > 0 && opts.Limit < len(backups) {
		backups = backups[:opts.Limit]
	}
	return backups
}

// Get returns one backup record by ID.
func (m *Manager) Get(id string) (*Backup, error) {
	m.metadataMu.RLock()
	defer m.metadataMu.RUnlock()

	b, _ := m.findBackupLocked(id)
	if b == nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return b, nil
}

// Delete removes a backup's archive and its index record.
func (m *Manager) Delete(id string) error {
	m.metadataMu.Lock()
	defer m.metadataMu.Unlock()

	b, idx := m.findBackupLocked(id)
	if b == nil {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	if fileExists(b.FilePath) {
		if err := os.Remove(b.FilePath); err != nil {
			return fmt.Errorf("failed to delete archive: %w", err)
		}
	}

	m.metadata.Backups = append(m.metadata.Backups[:idx], m.metadata.Backups[idx+1:]...)
	return m.saveMetadataLocked()
}
