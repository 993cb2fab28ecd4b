// BibReaders - Library Catalog and Book Recommendations
// Copyright 2026 Raihana A. (RaihanaAm)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/RaihanaAm/Bib-Readers

package backup

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
)

// Sentinel errors callers classify with errors.Is. The API layer maps
// ErrNotFound to 404, ErrDisabled to 503, and ErrValidationFailed to 400.
var (
	ErrNotFound         = errors.New("backup not found")
	ErrDisabled         = errors.New("backups are disabled")
	ErrValidationFailed = errors.New("backup failed validation")
)

// metadataFileName is the index file kept next to the archives.
const metadataFileName = "metadata.json"

// DatabaseInterface is the slice of the database layer the manager needs.
// Implemented by database.DB.
type DatabaseInterface interface {
	// Path returns the database file path.
	Path() string

	// Checkpoint flushes the WAL into the main file for a consistent copy.
	Checkpoint(ctx context.Context) error

	// Close closes the connection. Called before a restore replaces the file.
	Close() error

	// CountBooks and CountMembers record the catalog shape in the backup.
	CountBooks(ctx context.Context) (int64, error)
	CountMembers(ctx context.Context) (int64, error)
}

// Manager creates, indexes, validates, restores, and prunes backups.
//
// Thread Safety: the metadata index is guarded by a RWMutex; archive
// writes go to unique per-backup files and need no coordination.
type Manager struct {
	cfg *Config
	db  DatabaseInterface

	// artifactPath is the recommendation artifact location, archived when
	// present and restored alongside the database.
	artifactPath string

	metadataFile string
	metadata     *metadataStore
	metadataMu   sync.RWMutex

	logger zerolog.Logger
}

// metadataStore is the persisted index of all backups.
type metadataStore struct {
	Backups       []*Backup  `json:"backups"`
	LastScheduled *time.Time `json:"last_scheduled,omitempty"`
	NextScheduled *time.Time `json:"next_scheduled,omitempty"`
}

// NewManager creates a backup manager. The backup directory is created
// when backups are enabled, and an existing metadata index is loaded so
// archives survive process restarts.
func NewManager(cfg *Config, db DatabaseInterface, artifactPath string, logger zerolog.Logger) (*Manager, error) {
	if cfg == nil {
		return nil, fmt.Errorf("backup configuration is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Enabled {
		if err := cfg.EnsureDir(); err != nil {
			return nil, err
		}
	}

	m := &Manager{
		cfg:          cfg,
		db:           db,
		artifactPath: artifactPath,
		metadataFile: filepath.Join(cfg.Dir, metadataFileName),
		logger:       logger.With().Str("component", "backup").Logger(),
	}

	if err := m.loadMetadata(); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			m.logger.Warn().Err(err).Msg("backup index unreadable, starting fresh")
		}
		m.metadata = &metadataStore{Backups: make([]*Backup, 0)}
	}

	return m, nil
}

// Enabled reports whether backup creation is allowed.
func (m *Manager) Enabled() bool {
	return m.cfg.Enabled
}

// Retention returns the configured retention policy.
func (m *Manager) Retention() RetentionPolicy {
	return m.cfg.Retention
}

// loadMetadata reads the backup index from disk.
func (m *Manager) loadMetadata() error {
	m.metadataMu.Lock()
	defer m.metadataMu.Unlock()

	data, err := os.ReadFile(m.metadataFile)
	if err != nil {
		return err
	}

	var store metadataStore
	if err := json.Unmarshal(data, &store); err != nil {
		return fmt.Errorf("failed to parse backup index: %w", err)
	}
	if store.Backups == nil {
		store.Backups = make([]*Backup, 0)
	}

	m.metadata = &store
	return nil
}

// saveMetadataLocked writes the index. Caller holds metadataMu.
func (m *Manager) saveMetadataLocked() error {
	data, err := json.MarshalIndent(m.metadata, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(m.metadataFile, data, 0o600)
}

// saveBackup inserts or updates one record and persists the index. Index
// write failures are logged, not returned: the archive itself is already
// on disk and the index is rebuilt from a re-import if ever lost.
func (m *Manager) saveBackup(b *Backup) {
	m.metadataMu.Lock()
	defer m.metadataMu.Unlock()

	found := false
	for i, existing := range m.metadata.Backups {
		if existing.ID == b.ID {
			m.metadata.Backups[i] = b
			found = true
			break
		}
	}
	if !found {
		m.metadata.Backups = append(m.metadata.Backups, b)
	}

	if err := m.saveMetadataLocked(); err != nil {
		m.logger.Error().Err(err).Str("backup_id", b.ID).Msg("failed to persist backup index")
	}
}

// findBackupLocked returns a record and its index position, or (nil, -1).
// Caller holds metadataMu.
func (m *Manager) findBackupLocked(id string) (*Backup, int) {
	for i, b := range m.metadata.Backups {
		if b.ID == id {
			return b, i
		}
	}
	return nil, -1
}

// MarkScheduledRun records when the scheduler last ran and when it will
// run next, surfaced in Stats.
func (m *Manager) MarkScheduledRun(last, next time.Time) {
	m.metadataMu.Lock()
	defer m.metadataMu.Unlock()

	m.metadata.LastScheduled = &last
	m.metadata.NextScheduled = &next
	if err := m.saveMetadataLocked(); err != nil {
		m.logger.Warn().Err(err).Msg("failed to persist schedule markers")
	}
}
