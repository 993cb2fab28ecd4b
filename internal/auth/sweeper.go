// BibReaders - Library Catalog and Book Recommendations
// Copyright 2026 Raihana A. (RaihanaAm)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/RaihanaAm/Bib-Readers

package auth

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/RaihanaAm/Bib-Readers/internal/metrics"
)

// SessionSweeper periodically removes expired entries from the session
// registry. It implements suture.Service and runs under the supervision
// tree.
type SessionSweeper struct {
	store    SessionStore
	interval time.Duration
	logger   zerolog.Logger
}

// NewSessionSweeper creates a sweeper. Intervals below one minute are
// raised to one minute to keep registry scans off the hot path.
func NewSessionSweeper(store SessionStore, interval time.Duration, logger zerolog.Logger) *SessionSweeper {
	if interval < time.Minute {
		interval = time.Minute
	}
	return &SessionSweeper{
		store:    store,
		interval: interval,
		logger:   logger.With().Str("component", "session-sweeper").Logger(),
	}
}

// Serve runs the sweep loop until the context is cancelled.
func (s *SessionSweeper) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			removed, err := s.store.CleanupExpired(ctx)
			if err != nil {
				s.logger.Warn().Err(err).Msg("session cleanup failed")
				continue
			}
			if removed > 0 {
				s.logger.Debug().Int("removed", removed).Msg("expired sessions removed")
			}
			if count, err := s.store.Count(ctx); err == nil {
				metrics.ActiveSessions.Set(float64(count))
			}
		}
	}
}

// String names the service in supervisor logs.
func (s *SessionSweeper) String() string {
	return "session-sweeper"
}
