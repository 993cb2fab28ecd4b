// BibReaders - Library Catalog and Book Recommendations
// Copyright 2026 Raihana A. (RaihanaAm)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/RaihanaAm/Bib-Readers

package backup

import (
	"fmt"
	"os"
)

// Config holds the backup manager's settings. The application config layer
// validates ranges before this package sees them; Validate here is a
// backstop for direct construction in tests and tools.
type Config struct {
	// Enabled gates all backup operations. A disabled manager refuses to
	// create backups but still lists and serves existing ones.
	Enabled bool

	// Dir is the directory holding archives and the metadata index.
	Dir string

	// CompressionLevel is the gzip level for archives, 1-9.
	CompressionLevel int

	// Retention bounds the backup directory.
	Retention RetentionPolicy

	// ConfigSummary is a sanitized snapshot of the application settings,
	// archived for operator reference. Secrets must already be redacted.
	ConfigSummary map[string]interface{}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if !c.Enabled {
		return nil
	}
	if c.Dir == "" {
		return fmt.Errorf("backup directory must not be empty")
	}
	if c.CompressionLevel < 1 || c.CompressionLevel > 9 {
		return fmt.Errorf("compression level must be between 1 and 9, got %d", c.CompressionLevel)
	}
	if c.Retention.MinCount < 0 {
		return fmt.Errorf("retention min_count must be >= 0, got %d", c.Retention.MinCount)
	}
	if c.Retention.MaxCount > 0 && c.Retention.MaxCount < c.Retention.MinCount {
		return fmt.Errorf("retention max_count (%d) must be >= min_count (%d)",
			c.Retention.MaxCount, c.Retention.MinCount)
	}
	if c.Retention.MaxAgeDays < 0 {
		return fmt.Errorf("retention max_age_days must be >= 0, got %d", c.Retention.MaxAgeDays)
	}
	return nil
}

// EnsureDir creates the backup directory if it does not exist.
func (c *Config) EnsureDir() error {
	if err := os.MkdirAll(c.Dir, 0o750); err != nil {
		return fmt.Errorf("failed to create backup directory %s: %w", c.Dir, err)
	}
	return nil
}
