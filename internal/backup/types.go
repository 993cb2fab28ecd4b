// BibReaders - Library Catalog and Book Recommendations
// Copyright 2026 Raihana A. (RaihanaAm)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/RaihanaAm/Bib-Readers

package backup

import (
	"time"
)

// AppVersion is stamped into backup records. Set at build time.
var AppVersion = "dev"

// Status is the lifecycle state of a backup record.
type Status string

const (
	// StatusInProgress marks a backup whose archive is still being written.
	StatusInProgress Status = "in_progress"

	// StatusCompleted marks a backup whose archive was written and checksummed.
	StatusCompleted Status = "completed"

	// StatusFailed marks a backup whose archive could not be written.
	StatusFailed Status = "failed"

	// StatusCorrupted marks a backup that failed checksum verification.
	StatusCorrupted Status = "corrupted"
)

// Trigger records what initiated a backup.
type Trigger string

const (
	// TriggerManual is a backup requested through the admin API.
	TriggerManual Trigger = "manual"

	// TriggerScheduled is a backup created by the interval scheduler.
	TriggerScheduled Trigger = "scheduled"

	// TriggerPreRestore is a safety backup taken before a restore replaces
	// the live database.
	TriggerPreRestore Trigger = "pre_restore"
)

// Backup is the metadata record for one archive.
type Backup struct {
	ID          string     `json:"id"`
	Status      Status     `json:"status"`
	Trigger     Trigger    `json:"trigger"`
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`

	// Duration of the archive write.
	Duration time.Duration `json:"duration_ms"`

	// FilePath is where the archive lives on disk.
	FilePath string `json:"file_path"`

	// FileSize is the archive size in bytes.
	FileSize int64 `json:"file_size"`

	// Checksum is the SHA-256 of the whole archive file.
	Checksum string `json:"checksum"`

	// AppVersion at backup time, for forward-compatibility checks.
	AppVersion string `json:"app_version"`

	// Catalog shape at backup time.
	BookCount   int64 `json:"book_count"`
	MemberCount int64 `json:"member_count"`

	// ArtifactIncluded reports whether a recommendation artifact existed
	// and was archived. A missing artifact is not an error; it is rebuilt
	// from the catalog after restore.
	ArtifactIncluded bool `json:"artifact_included"`

	Notes string `json:"notes,omitempty"`
	Error string `json:"error,omitempty"`

	// Files lists every entry written into the archive with its own
	// checksum, verified entry by entry during validation.
	Files []ArchiveFile `json:"files"`
}

// ArchiveFile is one entry inside a backup archive.
type ArchiveFile struct {
	// Path within the archive, e.g. "database/bibreaders.duckdb".
	Path string `json:"path"`

	// OriginalPath on disk, or "runtime" for generated entries.
	OriginalPath string `json:"original_path"`

	Size     int64     `json:"size"`
	ModTime  time.Time `json:"mod_time"`
	Checksum string    `json:"checksum"`
}

// ListOptions filters and paginates backup listings.
type ListOptions struct {
	Status  *Status  `json:"status,omitempty"`
	Trigger *Trigger `json:"trigger,omitempty"`

	StartDate *time.Time `json:"start_date,omitempty"`
	EndDate   *time.Time `json:"end_date,omitempty"`

	Limit  int `json:"limit"`
	Offset int `json:"offset"`

	// SortDesc orders newest first.
	SortDesc bool `json:"sort_desc"`
}

// RetentionPolicy bounds the backup directory.
type RetentionPolicy struct {
	// MinCount backups are always kept, regardless of age.
	MinCount int `json:"min_count"`

	// MaxCount caps completed backups; 0 means unlimited.
	MaxCount int `json:"max_count"`

	// MaxAgeDays deletes completed backups older than this; 0 keeps forever.
	MaxAgeDays int `json:"max_age_days"`
}

// RestoreOptions configures a restore run.
type RestoreOptions struct {
	// ValidateOnly verifies the archive without touching the database.
	ValidateOnly bool `json:"validate_only"`

	// PreRestoreBackup takes a safety backup before replacing anything.
	PreRestoreBackup bool `json:"pre_restore_backup"`

	// Force skips validation. Dangerous; for operator recovery only.
	Force bool `json:"force"`

	// VerifyAfterRestore reopens the restored database read-only and
	// checks tables and row counts against the backup record.
	VerifyAfterRestore bool `json:"verify_after_restore"`
}

// RestoreResult reports what a restore run did.
type RestoreResult struct {
	Success  bool   `json:"success"`
	BackupID string `json:"backup_id"`

	// PreRestoreBackupID is set when a safety backup was taken.
	PreRestoreBackupID string `json:"pre_restore_backup_id,omitempty"`

	DatabaseRestored bool `json:"database_restored"`
	ArtifactRestored bool `json:"artifact_restored"`

	Duration time.Duration `json:"duration_ms"`

	// RestartRequired is true after the live database file was replaced.
	RestartRequired bool `json:"restart_required"`

	Warnings []string `json:"warnings,omitempty"`
	Error    string   `json:"error,omitempty"`
}

// ValidationResult reports archive integrity for one backup.
type ValidationResult struct {
	Valid  bool    `json:"valid"`
	Backup *Backup `json:"backup"`

	ChecksumValid    bool   `json:"checksum_valid"`
	ExpectedChecksum string `json:"expected_checksum"`
	ActualChecksum   string `json:"actual_checksum"`

	ArchiveReadable bool `json:"archive_readable"`
	FilesComplete   bool `json:"files_complete"`

	MissingFiles   []string `json:"missing_files,omitempty"`
	CorruptedFiles []string `json:"corrupted_files,omitempty"`

	Errors []string `json:"errors,omitempty"`
}

// Stats summarizes the backup system for the admin dashboard.
type Stats struct {
	TotalCount     int             `json:"total_count"`
	CountByStatus  map[Status]int  `json:"count_by_status"`
	CountByTrigger map[Trigger]int `json:"count_by_trigger"`

	TotalSizeBytes   int64 `json:"total_size_bytes"`
	AverageSizeBytes int64 `json:"average_size_bytes"`

	OldestBackup *time.Time `json:"oldest_backup,omitempty"`
	NewestBackup *time.Time `json:"newest_backup,omitempty"`

	// AverageDuration over completed backups.
	AverageDuration time.Duration `json:"average_duration_ms"`

	// SuccessRate is the percentage of completed backups, 0-100.
	SuccessRate float64 `json:"success_rate"`

	LastBackup    *Backup    `json:"last_backup,omitempty"`
	NextScheduled *time.Time `json:"next_scheduled,omitempty"`

	RetentionPolicy RetentionPolicy `json:"retention_policy"`
}
