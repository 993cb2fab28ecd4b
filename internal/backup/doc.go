// BibReaders - Library Catalog and Book Recommendations
// Copyright 2026 Raihana A. (RaihanaAm)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/RaihanaAm/Bib-Readers

// Package backup provides catalog backup and restore for BibReaders.
//
// A backup is a single tar.gz snapshot of everything needed to stand the
// application back up on an empty data directory:
//
//	backup-20260115-020000-a1b2c3d4.tar.gz
//	├── database/bibreaders.duckdb        (catalog and members)
//	├── database/bibreaders.duckdb.wal    (WAL, if present at backup time)
//	├── model/artifact.gob.gz             (recommendation artifact, if built)
//	├── config/config.json                (sanitized settings summary)
//	└── backup-metadata.json              (record and per-file checksums)
//
// The Manager keeps a metadata.json index next to the archives, protected
// by a RWMutex for concurrent API access. Every archived file carries a
// SHA-256 checksum, and the archive as a whole carries one more; both are
// verified before a restore is allowed to touch the live database.
//
// Scheduling lives outside this package: the supervisor tree runs a
// BackupService that calls CreateScheduledBackup on an interval and applies
// the retention policy after each run. Manual backups, downloads, and
// restores arrive through the admin API.
//
// Restoring the database replaces the live DuckDB file, so a restore
// closes the connection first and reports RestartRequired; the process is
// expected to be restarted by its supervisor or operator afterwards.
package backup
