// BibReaders - Library Catalog and Book Recommendations
// Copyright 2026 Raihana A. (RaihanaAm)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/RaihanaAm/Bib-Readers

/*
members.go - Member Account Operations

This file provides database operations for registered members.

Key Operations:
  - CreateMember: Register a new member (unique email)
  - GetMemberByEmail: Login lookup
  - GetMemberByID: Token-subject lookup for authenticated requests
  - SetMemberActive: Enable or disable an account
  - EnsureAdmin: Idempotent bootstrap of the configured administrator

Emails are stored lowercased so lookups are case-insensitive without
relying on collation settings.
*/

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/RaihanaAm/Bib-Readers/internal/logging"
	"github.com/RaihanaAm/Bib-Readers/internal/metrics"
	"github.com/RaihanaAm/Bib-Readers/internal/models"
)

// memberColumns is the canonical SELECT list for member rows. Keep in
// sync with scanMemberRow.
const memberColumns = `id, name, email, password_hash, role, is_active, created_at`

// scanMemberRow scans a database row into a Member struct.
func scanMemberRow(scanner interface {
	Scan(dest ...interface{}) error
}) (*models.Member, error) {
	member := &models.Member{}
	err := scanner.Scan(
		&member.ID, &member.Name, &member.Email, &member.PasswordHash,
		&member.Role, &member.IsActive, &member.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return member, nil
}

// normalizeEmail lowercases and trims an email address for storage and
// lookup.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// CreateMember inserts a new member row and fills the generated id and
// created_at back into member. The email is normalized before insert.
// Returns ErrDuplicate if the email is already registered.
func (db *DB) CreateMember(ctx context.Context, member *models.Member) (err error) {
	start := time.Now()
	defer func() { metrics.RecordDBQuery("insert", "members", time.Since(start), err) }()

	member.Email = normalizeEmail(member.Email)
	if member.Role == "" {
		member.Role = models.RoleMember
	}

	query := `
		INSERT INTO members (name, email, password_hash, role, is_active)
		VALUES (?, ?, ?, ?, ?)
		RETURNING id, created_at
	`

	err = db.conn.QueryRowContext(ctx, query,
		member.Name, member.Email, member.PasswordHash, member.Role, member.IsActive,
	).Scan(&member.ID, &member.CreatedAt)
	if err != nil {
		if isDuplicateKeyError(err) {
			return fmt.Errorf("%w: email %s", ErrDuplicate, member.Email)
		}
		return fmt.Errorf("failed to create member: %w", err)
	}
	return nil
}

// GetMemberByEmail retrieves a member by email, case-insensitively.
// Returns ErrNotFound if no member exists.
func (db *DB) GetMemberByEmail(ctx context.Context, email string) (member *models.Member, err error) {
	start := time.Now()
	defer func() { metrics.RecordDBQuery("select", "members", time.Since(start), err) }()

	email = normalizeEmail(email)
	query := fmt.Sprintf(`SELECT %s FROM members WHERE email = ?`, memberColumns)

	member, err = scanMemberRow(db.conn.QueryRowContext(ctx, query, email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: member %s", ErrNotFound, email)
		}
		return nil, fmt.Errorf("failed to query member by email: %w", err)
	}
	return member, nil
}

// GetMemberByID retrieves a member by id.
// Returns ErrNotFound if no member exists.
func (db *DB) GetMemberByID(ctx context.Context, id int64) (member *models.Member, err error) {
	start := time.Now()
	defer func() { metrics.RecordDBQuery("select", "members", time.Since(start), err) }()

	query := fmt.Sprintf(`SELECT %s FROM members WHERE id = ?`, memberColumns)

	stmt, err := db.stmt(ctx, query)
	if err != nil {
		return nil, err
	}

	member, err = scanMemberRow(stmt.QueryRowContext(ctx, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: member %d", ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to query member %d: %w", id, err)
	}
	return member, nil
}

// SetMemberActive flips a member's is_active flag.
// Returns ErrNotFound if no member exists.
func (db *DB) SetMemberActive(ctx context.Context, id int64, active bool) error {
	result, err := db.conn.ExecContext(ctx,
		`UPDATE members SET is_active = ? WHERE id = ?`, active, id)
	if err != nil {
		return fmt.Errorf("failed to update member %d: %w", id, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read update result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: member %d", ErrNotFound, id)
	}
	return nil
}

// CountMembers returns the total number of registered members.
func (db *DB) CountMembers(ctx context.Context) (int64, error) {
	var count int64
	if err := db.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM members`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count members: %w", err)
	}
	return count, nil
}

// EnsureAdmin creates the administrator account with the given email and
// password hash if it does not exist yet, and promotes an existing member
// with that email to admin if needed. Safe to call on every startup.
func (db *DB) EnsureAdmin(ctx context.Context, email, passwordHash string) error {
	email = normalizeEmail(email)

	existing, err := db.GetMemberByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			return err
		}

		admin := &models.Member{
			Name:         "Administrator",
			Email:        email,
			PasswordHash: passwordHash,
			Role:         models.RoleAdmin,
			IsActive:     true,
		}
		if err := db.CreateMember(ctx, admin); err != nil {
			// Another instance may have created it between the lookup
			// and the insert.
			if errors.Is(err, ErrDuplicate) {
				return nil
			}
			return err
		}
		logging.Info().Str("email", email).Msg("Bootstrap administrator created")
		return nil
	}

	if existing.Role == models.RoleAdmin {
		return nil
	}

	_, err = db.conn.ExecContext(ctx,
		`UPDATE members SET role = ? WHERE id = ?`, models.RoleAdmin, existing.ID)
	if err != nil {
		return fmt.Errorf("failed to promote member %d to admin: %w", existing.ID, err)
	}
	logging.Info().Str("email", email).Msg("Existing member promoted to administrator")
	return nil
}
