// BibReaders - Library Catalog and Book Recommendations
// Copyright 2026 Raihana A. (RaihanaAm)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/RaihanaAm/Bib-Readers

package backup

import (
	"context"
	"sort"
	"time"
)

// ApplyRetention prunes backups per the configured policy and returns the
// number of backups deleted.
//
// Rules, applied to completed backups ordered newest first:
//   - the newest MinCount backups are never deleted
//   - backups beyond MaxCount are deleted (0 = unlimited)
//   - backups older than MaxAgeDays are deleted (0 = keep forever)
//
// Failed and corrupted records past the MinCount window are pruned too;
// their archives are gone or untrustworthy, so only the record remains.
func (m *Manager) ApplyRetention(ctx context.Context) (int, error) {
	policy := m.cfg.Retention

	m.metadataMu.Lock()
	doomed := m.selectDoomedLocked(policy)
	m.metadataMu.Unlock()

	deleted := 0
	for _, id := range doomed {
		if err := ctx.Err(); err != nil {
			return deleted, err
		}
		if err := m.Delete(id); err != nil {
			m.logger.Warn().Err(err).Str("backup_id", id).Msg("retention delete failed")
			continue
		}
		deleted++
	}

	if deleted > 0 {
		m.logger.Info().Int("deleted", deleted).Msg("retention applied")
	}
	return deleted, nil
}

// selectDoomedLocked picks the IDs retention will delete. Caller holds
// metadataMu; the actual deletes re-acquire it per backup so a long prune
// does not block the API.
func (m *Manager) selectDoomedLocked(policy RetentionPolicy) []string {
	ordered := make([]*Backup, len(m.metadata.Backups))
	copy(ordered, m.metadata.Backups)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].CreatedAt.After(ordered[j].CreatedAt)
	})

	var cutoff time.Time
	if policy.MaxAgeDays > 0 {
		cutoff = time.Now().AddDate(0, 0, -policy.MaxAgeDays)
	}

	var doomed []string
	kept := 0
	for _, b := range ordered {
		// The newest MinCount survive everything.
		if kept < policy.MinCount {
			kept++
			continue
		}

		switch {
		case b.Status != StatusCompleted:
			// Dead records past the protected window.
			doomed = append(doomed, b.ID)
		case policy.MaxCount > 0 && kept >= policy.MaxCount:
			doomed = append(doomed, b.ID)
		case policy.MaxAgeDays > 0 && b.CreatedAt.Before(cutoff):
			doomed = append(doomed, b.ID)
		default:
			kept++
		}
	}

	return doomed
}
