// BibReaders - Library Catalog and Book Recommendations
// Copyright 2026 Raihana A. (RaihanaAm)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/RaihanaAm/Bib-Readers

package database

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/RaihanaAm/Bib-Readers/internal/models"
)

// seedTestBooks inserts n sequentially titled books and returns them with
// their assigned ids.
func seedTestBooks(t *testing.T, db *DB, n int) []models.Book {
	t.Helper()
	ctx := context.Background()

	books := make([]models.Book, 0, n)
	for i := 0; i < n; i++ {
		book := models.Book{
			Title:       fmt.Sprintf("Catalog Volume %02d", i+1),
			Author:      fmt.Sprintf("Author %d", i%5),
			Description: fmt.Sprintf("Description for catalog volume %d covering shelves and stories.", i+1),
			Price:       float64(10 + i),
			Stock:       i % 7,
			Rating:      i % 6,
		}
		if err := db.CreateBook(ctx, &book); err != nil {
			t.Fatalf("CreateBook(%d) error = %v", i, err)
		}
		books = append(books, book)
	}
	return books
}

func TestCreateBook(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	book := &models.Book{
		Title:       "The Left Hand of Darkness",
		Author:      "Ursula K. Le Guin",
		Description: "An envoy visits a planet whose people have no fixed gender.",
		Price:       12.50,
		Stock:       3,
		Rating:      5,
		ImageURL:    "https://example.com/darkness.jpg",
		ProductURL:  "https://example.com/darkness",
	}

	if err := db.CreateBook(ctx, book); err != nil {
		t.Fatalf("CreateBook() error = %v", err)
	}

	if book.ID == 0 {
		t.Error("CreateBook() did not assign an id")
	}
	if book.CreatedAt.IsZero() {
		t.Error("CreateBook() did not fill created_at")
	}
	if book.UpdatedAt.IsZero() {
		t.Error("CreateBook() did not fill updated_at")
	}

	got, err := db.GetBook(ctx, book.ID)
	if err != nil {
		t.Fatalf("GetBook() error = %v", err)
	}
	if got.Title != book.Title || got.Author != book.Author {
		t.Errorf("GetBook() = %q by %q, want %q by %q", got.Title, got.Author, book.Title, book.Author)
	}
	if got.Price != book.Price || got.Stock != book.Stock || got.Rating != book.Rating {
		t.Errorf("GetBook() price/stock/rating = %v/%v/%v, want %v/%v/%v",
			got.Price, got.Stock, got.Rating, book.Price, book.Stock, book.Rating)
	}
}

func TestCreateBookSequentialIDs(t *testing.T) {
	db := setupTestDB(t)
	books := seedTestBooks(t, db, 3)

	for i := 1; i < len(books); i++ {
		if books[i].ID <= books[i-1].ID {
			t.Errorf("ids not increasing: books[%d].ID = %d, books[%d].ID = %d",
				i-1, books[i-1].ID, i, books[i].ID)
		}
	}
}

func TestCreateBookDuplicate(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	book := &models.Book{Title: "Dune", Author: "Frank Herbert"}
	if err := db.CreateBook(ctx, book); err != nil {
		t.Fatalf("CreateBook() error = %v", err)
	}

	dup := &models.Book{Title: "Dune", Author: "Frank Herbert", Price: 9.99}
	err := db.CreateBook(ctx, dup)
	if !errors.Is(err, ErrDuplicate) {
		t.Errorf("CreateBook() duplicate error = %v, want ErrDuplicate", err)
	}

	// Same title under a different author is a different book.
	other := &models.Book{Title: "Dune", Author: "Brian Herbert"}
	if err := db.CreateBook(ctx, other); err != nil {
		t.Errorf("CreateBook() different author error = %v", err)
	}
}

func TestGetBookNotFound(t *testing.T) {
	db := setupTestDB(t)

	_, err := db.GetBook(context.Background(), 9999)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("GetBook(9999) error = %v, want ErrNotFound", err)
	}
}

func TestListBooks(t *testing.T) {
	db := setupTestDB(t)
	seedTestBooks(t, db, 25)

	tests := []struct {
		name           string
		params         ListBooksParams
		wantItems      int
		wantPage       int
		wantPageSize   int
		wantTotal      int64
		wantTotalPages int
	}{
		{
			name:           "first page default size",
			params:         ListBooksParams{},
			wantItems:      20,
			wantPage:       1,
			wantPageSize:   20,
			wantTotal:      25,
			wantTotalPages: 2,
		},
		{
			name:           "second page remainder",
			params:         ListBooksParams{Page: 2},
			wantItems:      5,
			wantPage:       2,
			wantPageSize:   20,
			wantTotal:      25,
			wantTotalPages: 2,
		},
		{
			name:           "small pages",
			params:         ListBooksParams{Page: 3, PageSize: 10},
			wantItems:      5,
			wantPage:       3,
			wantPageSize:   10,
			wantTotal:      25,
			wantTotalPages: 3,
		},
		{
			name:           "page past the end",
			params:         ListBooksParams{Page: 9, PageSize: 10},
			wantItems:      0,
			wantPage:       9,
			wantPageSize:   10,
			wantTotal:      25,
			wantTotalPages: 3,
		},
		{
			name:           "page below one clamps to one",
			params:         ListBooksParams{Page: -3, PageSize: 10},
			wantItems:      10,
			wantPage:       1,
			wantPageSize:   10,
			wantTotal:      25,
			wantTotalPages: 3,
		},
		{
			name:           "oversized page size clamps to max",
			params:         ListBooksParams{PageSize: 5000},
			wantItems:      25,
			wantPage:       1,
			wantPageSize:   100,
			wantTotal:      25,
			wantTotalPages: 1,
		},
		{
			name:           "title search",
			params:         ListBooksParams{Query: "Volume 02"},
			wantItems:      1,
			wantPage:       1,
			wantPageSize:   20,
			wantTotal:      1,
			wantTotalPages: 1,
		},
		{
			name:           "search is case-insensitive",
			params:         ListBooksParams{Query: "volume 02"},
			wantItems:      1,
			wantPage:       1,
			wantPageSize:   20,
			wantTotal:      1,
			wantTotalPages: 1,
		},
		{
			name:           "search with no matches",
			params:         ListBooksParams{Query: "unrelated words"},
			wantItems:      0,
			wantPage:       1,
			wantPageSize:   20,
			wantTotal:      0,
			wantTotalPages: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, err := db.ListBooks(context.Background(), tt.params)
			if err != nil {
				t.Fatalf("ListBooks() error = %v", err)
			}
			if len(page.Items) != tt.wantItems {
				t.Errorf("len(Items) = %d, want %d", len(page.Items), tt.wantItems)
			}
			if page.Page != tt.wantPage {
				t.Errorf("Page = %d, want %d", page.Page, tt.wantPage)
			}
			if page.PageSize != tt.wantPageSize {
				t.Errorf("PageSize = %d, want %d", page.PageSize, tt.wantPageSize)
			}
			if page.TotalItems != tt.wantTotal {
				t.Errorf("TotalItems = %d, want %d", page.TotalItems, tt.wantTotal)
			}
			if page.TotalPages != tt.wantTotalPages {
				t.Errorf("TotalPages = %d, want %d", page.TotalPages, tt.wantTotalPages)
			}
		})
	}
}

func TestListBooksOrderedByID(t *testing.T) {
	db := setupTestDB(t)
	seedTestBooks(t, db, 10)

	page, err := db.ListBooks(context.Background(), ListBooksParams{PageSize: 10})
	if err != nil {
		t.Fatalf("ListBooks() error = %v", err)
	}
	for i := 1; i < len(page.Items); i++ {
		if page.Items[i].ID <= page.Items[i-1].ID {
			t.Fatalf("page not ordered by id at index %d", i)
		}
	}
}

func TestUpdateBook(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	books := seedTestBooks(t, db, 2)

	updated := books[0]
	updated.Price = 99.95
	updated.Stock = 42
	updated.Rating = 5
	updated.Description = "Revised edition."

	if err := db.UpdateBook(ctx, &updated); err != nil {
		t.Fatalf("UpdateBook() error = %v", err)
	}

	got, err := db.GetBook(ctx, updated.ID)
	if err != nil {
		t.Fatalf("GetBook() error = %v", err)
	}
	if got.Price != 99.95 || got.Stock != 42 || got.Rating != 5 {
		t.Errorf("update not persisted: price/stock/rating = %v/%v/%v", got.Price, got.Stock, got.Rating)
	}
	if got.Description != "Revised edition." {
		t.Errorf("Description = %q, want %q", got.Description, "Revised edition.")
	}
	if !got.UpdatedAt.After(got.CreatedAt) && !got.UpdatedAt.Equal(got.CreatedAt) {
		t.Errorf("UpdatedAt %v is before CreatedAt %v", got.UpdatedAt, got.CreatedAt)
	}
}

func TestUpdateBookNotFound(t *testing.T) {
	db := setupTestDB(t)

	missing := &models.Book{ID: 12345, Title: "Ghost", Author: "Nobody"}
	err := db.UpdateBook(context.Background(), missing)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("UpdateBook() error = %v, want ErrNotFound", err)
	}
}

func TestUpdateBookDuplicate(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	books := seedTestBooks(t, db, 2)

	// Renaming book 2 onto book 1's (title, author) must fail.
	clash := books[1]
	clash.Title = books[0].Title
	clash.Author = books[0].Author

	err := db.UpdateBook(ctx, &clash)
	if !errors.Is(err, ErrDuplicate) {
		t.Errorf("UpdateBook() error = %v, want ErrDuplicate", err)
	}
}

func TestDeleteBook(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	books := seedTestBooks(t, db, 2)

	if err := db.DeleteBook(ctx, books[0].ID); err != nil {
		t.Fatalf("DeleteBook() error = %v", err)
	}

	if _, err := db.GetBook(ctx, books[0].ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetBook() after delete error = %v, want ErrNotFound", err)
	}

	if err := db.DeleteBook(ctx, books[0].ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("DeleteBook() second call error = %v, want ErrNotFound", err)
	}

	count, err := db.CountBooks(ctx)
	if err != nil {
		t.Fatalf("CountBooks() error = %v", err)
	}
	if count != 1 {
		t.Errorf("CountBooks() = %d, want 1", count)
	}
}

func TestRandomBooks(t *testing.T) {
	db := setupTestDB(t)
	seedTestBooks(t, db, 12)
	ctx := context.Background()

	tests := []struct {
		name string
		n    int
		want int
	}{
		{"default on zero", 0, 8},
		{"default on negative", -1, 8},
		{"default on oversized", 51, 8},
		{"explicit within range", 5, 5},
		{"more than catalog", 50, 12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			books, err := db.RandomBooks(ctx, tt.n)
			if err != nil {
				t.Fatalf("RandomBooks(%d) error = %v", tt.n, err)
			}
			if len(books) != tt.want {
				t.Errorf("len(RandomBooks(%d)) = %d, want %d", tt.n, len(books), tt.want)
			}

			seen := make(map[int64]bool, len(books))
			for _, b := range books {
				if seen[b.ID] {
					t.Errorf("RandomBooks(%d) returned id %d twice", tt.n, b.ID)
				}
				seen[b.ID] = true
			}
		})
	}
}

func TestTopRatedBooks(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	fixtures := []models.Book{
		{Title: "Five Star Costly", Author: "A", Rating: 5, Price: 30},
		{Title: "Five Star Cheap", Author: "B", Rating: 5, Price: 10},
		{Title: "Three Star", Author: "C", Rating: 3, Price: 5},
		{Title: "Four Star", Author: "D", Rating: 4, Price: 8},
	}
	for i := range fixtures {
		if err := db.CreateBook(ctx, &fixtures[i]); err != nil {
			t.Fatalf("CreateBook() error = %v", err)
		}
	}

	books, err := db.TopRatedBooks(ctx, 3)
	if err != nil {
		t.Fatalf("TopRatedBooks() error = %v", err)
	}
	if len(books) != 3 {
		t.Fatalf("len(TopRatedBooks(3)) = %d, want 3", len(books))
	}

	wantOrder := []string{"Five Star Cheap", "Five Star Costly", "Four Star"}
	for i, want := range wantOrder {
		if books[i].Title != want {
			t.Errorf("TopRatedBooks()[%d] = %q, want %q", i, books[i].Title, want)
		}
	}

	// Out-of-range limit falls back to the default of 8.
	all, err := db.TopRatedBooks(ctx, 0)
	if err != nil {
		t.Fatalf("TopRatedBooks(0) error = %v", err)
	}
	if len(all) != len(fixtures) {
		t.Errorf("len(TopRatedBooks(0)) = %d, want %d", len(all), len(fixtures))
	}
}

func TestUpsertBook(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	book := &models.Book{
		Title:       "The Hobbit",
		Author:      "J.R.R. Tolkien",
		Description: "There and back again.",
		Price:       14.99,
		Stock:       5,
		Rating:      5,
	}

	created, err := db.UpsertBook(ctx, book)
	if err != nil {
		t.Fatalf("UpsertBook() error = %v", err)
	}
	if !created {
		t.Error("UpsertBook() created = false on first insert, want true")
	}
	firstID := book.ID

	// Second upsert with fresh scrape data updates in place.
	rescrape := &models.Book{
		Title:       "The Hobbit",
		Author:      "J.R.R. Tolkien",
		Description: "There and back again.",
		Price:       12.49,
		Stock:       2,
		Rating:      5,
	}
	created, err = db.UpsertBook(ctx, rescrape)
	if err != nil {
		t.Fatalf("UpsertBook() second call error = %v", err)
	}
	if created {
		t.Error("UpsertBook() created = true on update, want false")
	}
	if rescrape.ID != firstID {
		t.Errorf("UpsertBook() reassigned id %d, want %d", rescrape.ID, firstID)
	}

	got, err := db.GetBook(ctx, firstID)
	if err != nil {
		t.Fatalf("GetBook() error = %v", err)
	}
	if got.Price != 12.49 || got.Stock != 2 {
		t.Errorf("upsert did not refresh row: price = %v, stock = %v", got.Price, got.Stock)
	}

	count, err := db.CountBooks(ctx)
	if err != nil {
		t.Fatalf("CountBooks() error = %v", err)
	}
	if count != 1 {
		t.Errorf("CountBooks() = %d, want 1", count)
	}
}

func TestUpsertBookConcurrent(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	const workers = 8
	var wg sync.WaitGroup
	errs := make(chan error, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			book := &models.Book{
				Title:  "Concurrent Classic",
				Author: "Shared Author",
				Price:  float64(n),
			}
			if _, err := db.UpsertBook(ctx, book); err != nil {
				errs <- err
			}
		}(i)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("concurrent UpsertBook() error = %v", err)
	}

	count, err := db.CountBooks(ctx)
	if err != nil {
		t.Fatalf("CountBooks() error = %v", err)
	}
	if count != 1 {
		t.Errorf("CountBooks() = %d after concurrent upserts, want 1", count)
	}
}

func TestAllEntries(t *testing.T) {
	db := setupTestDB(t)
	books := seedTestBooks(t, db, 5)

	entries, err := db.AllEntries(context.Background())
	if err != nil {
		t.Fatalf("AllEntries() error = %v", err)
	}
	if len(entries) != len(books) {
		t.Fatalf("len(AllEntries()) = %d, want %d", len(entries), len(books))
	}

	for i, entry := range entries {
		if entry.ID != books[i].ID {
			t.Errorf("entries[%d].ID = %d, want %d", i, entry.ID, books[i].ID)
		}
		if entry.Title != books[i].Title {
			t.Errorf("entries[%d].Title = %q, want %q", i, entry.Title, books[i].Title)
		}
		if entry.Description != books[i].Description {
			t.Errorf("entries[%d].Description = %q, want %q", i, entry.Description, books[i].Description)
		}
	}
}

func TestAllEntriesEmptyCatalog(t *testing.T) {
	db := setupTestDB(t)

	entries, err := db.AllEntries(context.Background())
	if err != nil {
		t.Fatalf("AllEntries() error = %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("len(AllEntries()) = %d on empty catalog, want 0", len(entries))
	}
}

func TestSeedCatalog(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	if err := db.SeedCatalog(ctx); err != nil {
		t.Fatalf("SeedCatalog() error = %v", err)
	}

	count, err := db.CountBooks(ctx)
	if err != nil {
		t.Fatalf("CountBooks() error = %v", err)
	}
	if count == 0 {
		t.Fatal("SeedCatalog() inserted no rows")
	}

	// Seeding again must not duplicate anything.
	if err := db.SeedCatalog(ctx); err != nil {
		t.Fatalf("SeedCatalog() second run error = %v", err)
	}

	again, err := db.CountBooks(ctx)
	if err != nil {
		t.Fatalf("CountBooks() error = %v", err)
	}
	if again != count {
		t.Errorf("CountBooks() after reseed = %d, want %d", again, count)
	}
}
