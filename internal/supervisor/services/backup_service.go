// BibReaders - Library Catalog and Book Recommendations
// Copyright 2026 Raihana A. (RaihanaAm)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/RaihanaAm/Bib-Readers

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/RaihanaAm/Bib-Readers/internal/backup"
)

// BackupRunner is the subset of backup.Manager the scheduler drives.
type BackupRunner interface {
	CreateScheduledBackup(ctx context.Context) (*backup.Backup, error)
	ApplyRetention(ctx context.Context) (int, error)
	MarkScheduledRun(last, next time.Time)
}

// backupTimeout bounds one backup cycle. Archiving a catalog-sized DuckDB
// file is seconds of work; anything past this is a stuck disk.
const backupTimeout = 15 * time.Minute

// BackupService snapshots the database and model artifact on a fixed
// schedule and prunes old archives per the retention policy.
type BackupService struct {
	runner   BackupRunner
	interval time.Duration
	logger   zerolog.Logger
	name     string
}

// NewBackupService creates a new backup scheduler.
func NewBackupService(runner BackupRunner, interval time.Duration, logger zerolog.Logger) *BackupService {
	return &BackupService{
		runner:   runner,
		interval: interval,
		logger:   logger.With().Str("service", "backup").Logger(),
		name:     "backup-scheduler",
	}
}

// Serve implements suture.Service. The first backup runs a full interval
// after startup, not immediately; a crash-looping process must not fill the
// backup directory with near-identical archives.
func (s *BackupService) Serve(ctx context.Context) error {
	s.logger.Info().
		Dur("interval", s.interval).
		Msg("backup scheduler starting")

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("backup scheduler shutting down")
			return ctx.Err()

		case <-ticker.C:
			s.run(ctx)
		}
	}
}

// run executes one backup cycle. Failures are logged, not returned; a full
// disk must not crash the scheduler out of its slot in the tree.
func (s *BackupService) run(ctx context.Context) {
	runCtx, cancel := context.WithTimeout(ctx, backupTimeout)
	defer cancel()

	start := time.Now()
	b, err := s.runner.CreateScheduledBackup(runCtx)
	if err != nil {
		s.logger.Warn().Err(err).Msg("scheduled backup failed, will retry next cycle")
		s.runner.MarkScheduledRun(start, start.Add(s.interval))
		return
	}

	pruned, err := s.runner.ApplyRetention(runCtx)
	if err != nil {
		s.logger.Warn().Err(err).Msg("retention pruning failed")
	}

	s.runner.MarkScheduledRun(start, start.Add(s.interval))

	s.logger.Info().
		Str("backup_id", b.ID).
		Int64("size_bytes", b.FileSize).
		Int("pruned", pruned).
		Dur("duration", time.Since(start)).
		Msg("scheduled backup complete")
}

// String returns the service name for logging.
func (s *BackupService) String() string {
	return s.name
}
