// BibReaders - Library Catalog and Book Recommendations
// Copyright 2026 Raihana A. (RaihanaAm)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/RaihanaAm/Bib-Readers

package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
)

// Key prefixes for BadgerDB storage
const (
	sessionKeyPrefix       = "session:"
	sessionMemberKeyPrefix = "session_member:"
)

// BadgerSessionStore implements SessionStore using BadgerDB for durable
// storage, so issued tokens stay revocable across restarts.
type BadgerSessionStore struct {
	db *badger.DB
}

// OpenSessionDB opens the BadgerDB instance backing the session store.
// An empty path opens an in-memory database, which tests use.
func OpenSessionDB(path string) (*badger.DB, error) {
	opts := badger.DefaultOptions(path).WithLogger(nil)
	if path == "" {
		opts = opts.WithInMemory(true)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open session store at %q: %w", path, err)
	}
	return db, nil
}

// NewBadgerSessionStore creates a new BadgerDB-backed session store.
func NewBadgerSessionStore(db *badger.DB) *BadgerSessionStore {
	return &BadgerSessionStore{db: db}
}

// memberPrefix builds the per-member index prefix.
func memberPrefix(memberID int64) []byte {
	return []byte(sessionMemberKeyPrefix + strconv.FormatInt(memberID, 10) + ":")
}

// Create stores a new session entry.
func (s *BadgerSessionStore) Create(ctx context.Context, session *Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	return s.db.Update(func(txn *badger.Txn) error {
		// Store session by token id
		sessionKey := []byte(sessionKeyPrefix + session.TokenID)
		if err := txn.Set(sessionKey, data); err != nil {
			return fmt.Errorf("set session: %w", err)
		}

		// Store member-to-session mapping for bulk revocation
		memberKey := append(memberPrefix(session.MemberID), session.TokenID...)
		if err := txn.Set(memberKey, []byte(session.TokenID)); err != nil {
			return fmt.Errorf("set member mapping: %w", err)
		}

		return nil
	})
}

// Get retrieves a session by token id.
func (s *BadgerSessionStore) Get(ctx context.Context, tokenID string) (*Session, error) {
	var session Session

	err := s.db.View(func(txn *badger.Txn) error {
		key := []byte(sessionKeyPrefix + tokenID)
		item, err := txn.Get(key)
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrSessionNotFound
		}
		if err != nil {
			return fmt.Errorf("get session: %w", err)
		}

		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &session)
		})
	})
	if err != nil {
		return nil, err
	}

	if session.IsExpired() {
		return nil, ErrSessionExpired
	}

	return &session, nil
}

// Delete revokes a session by token id.
func (s *BadgerSessionStore) Delete(ctx context.Context, tokenID string) error {
	// Read the entry first to find the member id for index cleanup.
	var session Session
	found := false
	err := s.db.View(func(txn *badger.Txn) error {
		key := []byte(sessionKeyPrefix + tokenID)
		item, err := txn.Get(key)
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil // Already deleted
		}
		if err != nil {
			return err
		}

		found = true
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &session)
		})
	})
	if err != nil {
		return err
	}
	if !found {
		return nil
	}

	return s.db.Update(func(txn *badger.Txn) error {
		sessionKey := []byte(sessionKeyPrefix + tokenID)
		if err := txn.Delete(sessionKey); err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("delete session: %w", err)
		}

		memberKey := append(memberPrefix(session.MemberID), tokenID...)
		if err := txn.Delete(memberKey); err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("delete member mapping: %w", err)
		}

		return nil
	})
}

// DeleteByMemberID revokes all sessions for a member.
func (s *BadgerSessionStore) DeleteByMemberID(ctx context.Context, memberID int64) (int, error) {
	var tokenIDs []string

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := memberPrefix(memberID)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()
			err := item.Value(func(val []byte) error {
				tokenIDs = append(tokenIDs, string(val))
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("list member sessions: %w", err)
	}

	count := 0
	for _, tokenID := range tokenIDs {
		if err := s.Delete(ctx, tokenID); err != nil {
			continue // Keep revoking the rest
		}
		count++
	}

	return count, nil
}

// CleanupExpired removes all expired entries.
func (s *BadgerSessionStore) CleanupExpired(ctx context.Context) (int, error) {
	var expiredIDs []string

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(sessionKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()

			var session Session
			err := item.Value(func(val []byte) error {
				return json.Unmarshal(val, &session)
			})
			if err != nil {
				continue
			}

			if session.IsExpired() {
				expiredIDs = append(expiredIDs, session.TokenID)
			}
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("scan sessions: %w", err)
	}

	count := 0
	for _, tokenID := range expiredIDs {
		if err := s.Delete(ctx, tokenID); err != nil {
			continue
		}
		count++
	}

	return count, nil
}

// Count returns the total number of entries in the registry.
func (s *BadgerSessionStore) Count(ctx context.Context) (int, error) {
	count := 0

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(sessionKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			count++
		}
		return nil
	})

	return count, err
}

// Close closes the underlying BadgerDB.
func (s *BadgerSessionStore) Close() error {
	return s.db.Close()
}
