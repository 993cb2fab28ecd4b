// BibReaders - Library Catalog and Book Recommendations
// Copyright 2026 Raihana A. (RaihanaAm)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/RaihanaAm/Bib-Readers

package scrape

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/RaihanaAm/Bib-Readers/internal/database"
	"github.com/RaihanaAm/Bib-Readers/internal/events"
	"github.com/RaihanaAm/Bib-Readers/internal/metrics"
	"github.com/RaihanaAm/Bib-Readers/internal/models"
)

// csvHeader is the column order of the CSV output file.
var csvHeader = []string{
	"title", "author", "description", "price",
	"stock", "rating", "image_url", "product_url",
}

// CSVSink writes scraped books to a flat file. The whole file is rewritten
// after every page, so an interrupted run still leaves a complete,
// loadable CSV behind.
type CSVSink struct {
	path string
	rows []Book
}

// NewCSVSink creates a sink writing to path. Parent directories are
// created on the first write.
func NewCSVSink(path string) *CSVSink {
	return &CSVSink{path: path}
}

// Write appends the page's books and rewrites the file.
func (s *CSVSink) Write(_ context.Context, page Page) error {
	s.rows = append(s.rows, page.Books...)
	return s.flush()
}

// Close is a no-op; Write already left a complete file on disk.
func (s *CSVSink) Close(context.Context) error {
	return nil
}

func (s *CSVSink) flush() error {
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	f, err := os.Create(s.path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", s.path, err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		f.Close()
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for i := range s.rows {
		b := &s.rows[i]
		record := []string{
			b.Title,
			b.Author,
			b.Description,
			strconv.FormatFloat(b.Price, 'f', 2, 64),
			strconv.Itoa(b.Stock),
			strconv.Itoa(b.Rating),
			b.ImageURL,
			b.ProductURL,
		}
		if err := w.Write(record); err != nil {
			f.Close()
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("failed to flush CSV: %w", err)
	}
	return f.Close()
}

// CatalogPublisher is the slice of the event bus the database sink needs.
type CatalogPublisher interface {
	PublishCatalogChanged(ctx context.Context, change events.CatalogChanged) error
}

// DBSink upserts scraped books into the catalog, keyed by (title, author).
// A single catalog.changed import event is published when the run closes,
// so the retrain debouncer sees the whole batch as one change instead of a
// thousand.
type DBSink struct {
	db        *database.DB
	publisher CatalogPublisher
	logger    zerolog.Logger

	created int
	updated int
	failed  int
}

// NewDBSink creates a sink upserting into db. publisher may be nil, in
// which case no event is published.
func NewDBSink(db *database.DB, publisher CatalogPublisher, logger zerolog.Logger) *DBSink {
	return &DBSink{db: db, publisher: publisher, logger: logger}
}

// Write upserts the page's books. A single failed row is counted and
// logged, not fatal; a page full of fifty books should not be lost to one
// malformed record.
func (s *DBSink) Write(ctx context.Context, page Page) error {
	for i := range page.Books {
		b := &page.Books[i]
		book := &models.Book{
			Title:       b.Title,
			Author:      b.Author,
			Description: b.Description,
			Price:       b.Price,
			Stock:       b.Stock,
			Rating:      b.Rating,
			ImageURL:    b.ImageURL,
			ProductURL:  b.ProductURL,
		}

		created, err := s.db.UpsertBook(ctx, book)
		switch {
		case err != nil:
			s.failed++
			metrics.RecordScrapedBook("failed")
			s.logger.Warn().Err(err).Str("title", b.Title).Msg("Failed to upsert book")
		case created:
			s.created++
			metrics.RecordScrapedBook("created")
		default:
			s.updated++
			metrics.RecordScrapedBook("updated")
		}
	}
	return nil
}

// Close logs the run totals and publishes the import event if anything
// changed.
func (s *DBSink) Close(ctx context.Context) error {
	s.logger.Info().
		Int("created", s.created).
		Int("updated", s.updated).
		Int("failed", s.failed).
		Msg("Catalog import finished")

	changed := s.created + s.updated
	if changed == 0 || s.publisher == nil {
		return nil
	}
	return s.publisher.PublishCatalogChanged(ctx, events.CatalogChanged{
		Action: events.ActionImported,
		Count:  changed,
	})
}

// Stats reports the upsert outcomes so far.
func (s *DBSink) Stats() (created, updated, failed int) {
	return s.created, s.updated, s.failed
}
