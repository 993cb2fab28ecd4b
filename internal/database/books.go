// BibReaders - Library Catalog and Book Recommendations
// Copyright 2026 Raihana A. (RaihanaAm)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/RaihanaAm/Bib-Readers

/*
books.go - Catalog CRUD Operations

This file provides database operations for the books table.

Key Operations:
  - ListBooks: Paginated catalog listing with optional title search
  - RandomBooks: Random sample for the home page shelf
  - TopRatedBooks: Highest rated books, cheapest first on ties
  - GetBook / CreateBook / UpdateBook / DeleteBook: Row-level CRUD
  - UpsertBook: Scraper ingestion keyed by (title, author)
  - AllEntries: Catalog snapshot for the recommendation model builder

Concurrency:
Upserts serialize per (title, author) key so concurrent scraper workers
cannot race the same book into a duplicate row. All other operations rely
on DuckDB's transaction isolation.
*/

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/RaihanaAm/Bib-Readers/internal/metrics"
	"github.com/RaihanaAm/Bib-Readers/internal/models"
	"github.com/RaihanaAm/Bib-Readers/internal/recommend"
)

// Listing bounds. The API layer applies its own configured defaults; these
// keep direct callers within sane limits.
const (
	defaultPageSize = 20
	maxPageSize     = 100
	defaultSample   = 8
	maxSample       = 50
)

// bookColumns is the canonical SELECT list for book rows. Keep in sync
// with scanBookRow.
const bookColumns = `id, title, author, description, price, stock, rating,
	image_url, product_url, created_at, updated_at`

// ListBooksParams controls pagination and filtering for ListBooks.
type ListBooksParams struct {
	Query    string // optional case-insensitive title match
	Page     int    // 1-based, values < 1 become 1
	PageSize int    // clamped to 1..100, values < 1 become 20
}

// normalize clamps paging values into their supported ranges.
func (p *ListBooksParams) normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = defaultPageSize
	}
	if p.PageSize > maxPageSize {
		p.PageSize = maxPageSize
	}
	p.Query = strings.TrimSpace(p.Query)
}

// scanBookRow scans a database row into a Book struct.
func scanBookRow(scanner interface {
	Scan(dest ...interface{}) error
}) (*models.Book, error) {
	book := &models.Book{}
	err := scanner.Scan(
		&book.ID, &book.Title, &book.Author, &book.Description,
		&book.Price, &book.Stock, &book.Rating,
		&book.ImageURL, &book.ProductURL, &book.CreatedAt, &book.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return book, nil
}

// collectBooks drains rows into a slice of Book values.
func collectBooks(rows *sql.Rows) ([]models.Book, error) {
	defer rows.Close()

	books := []models.Book{}
	for rows.Next() {
		book, err := scanBookRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan book row: %w", err)
		}
		books = append(books, *book)
	}
	return books, rows.Err()
}

// ListBooks returns one page of the catalog ordered by id, with the total
// row count for pagination metadata. When params.Query is non-empty only
// books whose title contains it (case-insensitive) are returned.
func (db *DB) ListBooks(ctx context.Context, params ListBooksParams) (page *models.BookPage, err error) {
	start := time.Now()
	defer func() { metrics.RecordDBQuery("select", "books", time.Since(start), err) }()

	params.normalize()

	where := ""
	args := []interface{}{}
	if params.Query != "" {
		where = `WHERE title ILIKE '%' || ? || '%'`
		args = append(args, params.Query)
	}

	var total int64
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM books %s`, where)
	if err := db.conn.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("failed to count books: %w", err)
	}

	offset := (params.Page - 1) * params.PageSize
	pageQuery := fmt.Sprintf(`SELECT %s FROM books %s ORDER BY id LIMIT ? OFFSET ?`, bookColumns, where)
	pageArgs := append(args, params.PageSize, offset)

	rows, err := db.conn.QueryContext(ctx, pageQuery, pageArgs...)
	if err != nil {
		return nil, fmt.Errorf("failed to query books: %w", err)
	}

	books, err := collectBooks(rows)
	if err != nil {
		return nil, err
	}

	totalPages := 0
	if total > 0 {
		totalPages = int((total + int64(params.PageSize) - 1) / int64(params.PageSize))
	}

	return &models.BookPage{
		Items:      books,
		Page:       params.Page,
		PageSize:   params.PageSize,
		TotalItems: total,
		TotalPages: totalPages,
	}, nil
}

// RandomBooks returns up to n random catalog rows. Values of n outside
// 1..50 fall back to 8.
func (db *DB) RandomBooks(ctx context.Context, n int) (books []models.Book, err error) {
	start := time.Now()
	defer func() { metrics.RecordDBQuery("select", "books", time.Since(start), err) }()

	if n < 1 || n > maxSample {
		n = defaultSample
	}

	query := fmt.Sprintf(`SELECT %s FROM books ORDER BY random() LIMIT ?`, bookColumns)
	rows, err := db.conn.QueryContext(ctx, query, n)
	if err != nil {
		return nil, fmt.Errorf("failed to query random books: %w", err)
	}
	return collectBooks(rows)
}

// TopRatedBooks returns up to limit books ordered by rating descending,
// then price ascending so the cheaper edition wins ties. Values of limit
// outside 1..50 fall back to 8.
func (db *DB) TopRatedBooks(ctx context.Context, limit int) (books []models.Book, err error) {
	start := time.Now()
	defer func() { metrics.RecordDBQuery("select", "books", time.Since(start), err) }()

	if limit < 1 || limit > maxSample {
		limit = defaultSample
	}

	query := fmt.Sprintf(`SELECT %s FROM books ORDER BY rating DESC, price ASC, id ASC LIMIT ?`, bookColumns)
	rows, err := db.conn.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query top rated books: %w", err)
	}
	return collectBooks(rows)
}

// GetBook retrieves a single book by id.
// Returns ErrNotFound if no row exists.
func (db *DB) GetBook(ctx context.Context, id int64) (book *models.Book, err error) {
	start := time.Now()
	defer func() { metrics.RecordDBQuery("select", "books", time.Since(start), err) }()

	query := fmt.Sprintf(`SELECT %s FROM books WHERE id = ?`, bookColumns)

	stmt, err := db.stmt(ctx, query)
	if err != nil {
		return nil, err
	}

	book, err = scanBookRow(stmt.QueryRowContext(ctx, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: book %d", ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to query book %d: %w", id, err)
	}
	return book, nil
}

// CreateBook inserts a new catalog row and fills the generated id and
// timestamps back into book. A (title, author) collision returns
// ErrDuplicate.
func (db *DB) CreateBook(ctx context.Context, book *models.Book) (err error) {
	start := time.Now()
	defer func() { metrics.RecordDBQuery("insert", "books", time.Since(start), err) }()

	query := `
		INSERT INTO books (title, author, description, price, stock, rating, image_url, product_url)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id, created_at, updated_at
	`

	err = db.conn.QueryRowContext(ctx, query,
		book.Title, book.Author, book.Description,
		book.Price, book.Stock, book.Rating,
		book.ImageURL, book.ProductURL,
	).Scan(&book.ID, &book.CreatedAt, &book.UpdatedAt)
	if err != nil {
		if isDuplicateKeyError(err) {
			return fmt.Errorf("%w: book %q by %q", ErrDuplicate, book.Title, book.Author)
		}
		return fmt.Errorf("failed to create book: %w", err)
	}

	db.refreshCatalogSize(ctx)
	return nil
}

// UpdateBook updates all mutable columns of an existing row and refreshes
// updated_at. Returns ErrNotFound if the id does not exist and
// ErrDuplicate if the new (title, author) pair collides with another row.
//
// DuckDB executes UPDATEs on indexed columns as a delete plus insert
// inside the ART index, and rewriting an unchanged unique key trips its
// over-eager duplicate detection. The (title, author) columns are
// therefore only included in the SET clause when they actually change.
func (db *DB) UpdateBook(ctx context.Context, book *models.Book) (err error) {
	start := time.Now()
	defer func() { metrics.RecordDBQuery("update", "books", time.Since(start), err) }()

	existing, err := db.GetBook(ctx, book.ID)
	if err != nil {
		return err
	}

	if existing.Title == book.Title && existing.Author == book.Author {
		return db.updateBookDetails(ctx, book)
	}

	query := `
		UPDATE books
		SET title = ?, author = ?, description = ?, price = ?, stock = ?,
		    rating = ?, image_url = ?, product_url = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`

	_, err = db.conn.ExecContext(ctx, query,
		book.Title, book.Author, book.Description,
		book.Price, book.Stock, book.Rating,
		book.ImageURL, book.ProductURL, book.ID,
	)
	if err != nil {
		if isDuplicateKeyError(err) {
			return fmt.Errorf("%w: book %q by %q", ErrDuplicate, book.Title, book.Author)
		}
		return fmt.Errorf("failed to update book %d: %w", book.ID, err)
	}
	return nil
}

// updateBookDetails refreshes the non-key columns of an existing row.
func (db *DB) updateBookDetails(ctx context.Context, book *models.Book) error {
	query := `
		UPDATE books
		SET description = ?, price = ?, stock = ?, rating = ?,
		    image_url = ?, product_url = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`

	result, err := db.conn.ExecContext(ctx, query,
		book.Description, book.Price, book.Stock, book.Rating,
		book.ImageURL, book.ProductURL, book.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update book %d: %w", book.ID, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read update result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: book %d", ErrNotFound, book.ID)
	}
	return nil
}

// DeleteBook removes a catalog row.
// Returns ErrNotFound if no row exists.
func (db *DB) DeleteBook(ctx context.Context, id int64) (err error) {
	start := time.Now()
	defer func() { metrics.RecordDBQuery("delete", "books", time.Since(start), err) }()

	result, err := db.conn.ExecContext(ctx, `DELETE FROM books WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete book %d: %w", id, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read delete result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: book %d", ErrNotFound, id)
	}

	db.refreshCatalogSize(ctx)
	return nil
}

// UpsertBook inserts the book or, when a row with the same (title, author)
// already exists, refreshes its price, stock, rating, description, and
// URLs. The created return reports whether a new row was inserted.
//
// Upserts for the same key are serialized so concurrent scraper workers
// cannot insert duplicates between the existence check and the insert.
func (db *DB) UpsertBook(ctx context.Context, book *models.Book) (created bool, err error) {
	start := time.Now()
	defer func() { metrics.RecordDBQuery("upsert", "books", time.Since(start), err) }()

	key := book.Title + "\x00" + book.Author
	mu := db.acquireUpsertLock(key)
	defer mu.Unlock()

	var existingID int64
	err = db.conn.QueryRowContext(ctx,
		`SELECT id FROM books WHERE title = ? AND author = ?`,
		book.Title, book.Author,
	).Scan(&existingID)

	switch {
	case errors.Is(err, sql.ErrNoRows):
		if err := db.CreateBook(ctx, book); err != nil {
			return false, err
		}
		return true, nil
	case err != nil:
		return false, fmt.Errorf("failed to check existing book: %w", err)
	default:
		// Title and author are the match key, so only the detail
		// columns need refreshing.
		book.ID = existingID
		if err := db.updateBookDetails(ctx, book); err != nil {
			return false, err
		}
		return false, nil
	}
}

// acquireUpsertLock acquires a per-key mutex for scraper upserts
func (db *DB) acquireUpsertLock(key string) *sync.Mutex {
	muInterface, _ := db.upsertLocks.LoadOrStore(key, &sync.Mutex{})
	mu, ok := muInterface.(*sync.Mutex)
	if !ok {
		mu = &sync.Mutex{}
		db.upsertLocks.Store(key, mu)
	}
	mu.Lock()
	return mu
}

// CountBooks returns the total number of catalog rows.
func (db *DB) CountBooks(ctx context.Context) (int64, error) {
	var count int64
	if err := db.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM books`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count books: %w", err)
	}
	return count, nil
}

// refreshCatalogSize updates the catalog size gauge after a write. Count
// failures are swallowed; the gauge catches up on the next write.
func (db *DB) refreshCatalogSize(ctx context.Context) {
	if count, err := db.CountBooks(ctx); err == nil {
		metrics.CatalogSize.Set(float64(count))
	}
}

// AllEntries returns an id-ordered snapshot of the catalog for the
// recommendation model builder. It satisfies recommend.CatalogSource.
func (db *DB) AllEntries(ctx context.Context) (entries []recommend.CatalogEntry, err error) {
	start := time.Now()
	defer func() { metrics.RecordDBQuery("select", "books", time.Since(start), err) }()

	rows, err := db.conn.QueryContext(ctx, `SELECT id, title, description FROM books ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query catalog entries: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var entry recommend.CatalogEntry
		if err := rows.Scan(&entry.ID, &entry.Title, &entry.Description); err != nil {
			return nil, fmt.Errorf("failed to scan catalog entry: %w", err)
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}
