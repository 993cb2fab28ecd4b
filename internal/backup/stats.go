// BibReaders - Library Catalog and Book Recommendations
// Copyright 2026 Raihana A. (RaihanaAm)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/RaihanaAm/Bib-Readers

package backup

import (
	"time"
)

// GetStats computes backup statistics from the index on demand, so they
// always reflect the directory's current state.
func (m *Manager) GetStats() *Stats {
	m.metadataMu.RLock()
	defer m.metadataMu.RUnlock()

	stats := &Stats{
		CountByStatus:   make(map[Status]int),
		CountByTrigger:  make(map[Trigger]int),
		RetentionPolicy: m.cfg.Retention,
		NextScheduled:   m.metadata.NextScheduled,
	}

	if len(m.metadata.Backups) == 0 {
		return stats
	}

	var totalDuration time.Duration
	var completed int

	for _, b := range m.metadata.Backups {
		stats.TotalCount++
		stats.CountByStatus[b.Status]++
		stats.CountByTrigger[b.Trigger]++
		stats.TotalSizeBytes += b.FileSize

		if b.Status == StatusCompleted {
			completed++
			totalDuration += b.Duration
		}

		if stats.OldestBackup == nil || b.CreatedAt.Before(*stats.OldestBackup) {
			createdAt := b.CreatedAt
			stats.OldestBackup = &createdAt
		}
		if stats.NewestBackup == nil || b.CreatedAt.After(*stats.NewestBackup) {
			createdAt := b.CreatedAt
			stats.NewestBackup = &createdAt
			stats.LastBackup = b
		}
	}

	if stats.TotalCount > 0 {
		stats.AverageSizeBytes = stats.TotalSizeBytes / int64(stats.TotalCount)
		stats.SuccessRate = float64(completed) / float64(stats.TotalCount) * 100
	}
	if completed > 0 {
		stats.AverageDuration = totalDuration / time.Duration(completed)
	}

	return stats
}
