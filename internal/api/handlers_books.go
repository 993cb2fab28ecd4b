// BibReaders - Library Catalog and Book Recommendations
// Copyright 2026 Raihana A. (RaihanaAm)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/RaihanaAm/Bib-Readers

package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/goccy/go-json"

	"github.com/RaihanaAm/Bib-Readers/internal/audit"
	"github.com/RaihanaAm/Bib-Readers/internal/database"
	"github.com/RaihanaAm/Bib-Readers/internal/events"
	"github.com/RaihanaAm/Bib-Readers/internal/models"
)

// auditBookChange records a catalog mutation in the audit trail when it is
// wired. The action must be one of "create", "update", or "delete".
func (h *Handler) auditBookChange(r *http.Request, action string, bookID int64, title string) {
	if h.auditor == nil {
		return
	}
	h.auditor.LogBookChange(r.Context(), h.requestActor(r), audit.SourceFromRequest(r), action, bookID, title)
}

// parseBookID extracts the {id} path parameter. Returns false after
// sending a BAD_REQUEST response when the value is not a positive integer.
func parseBookID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := r.PathValue("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		respondError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Book id must be a positive integer", nil)
		return 0, false
	}
	return id, true
}

// ListBooks returns a page of the catalog
//
// @Summary List books
// @Description Returns a paginated slice of the catalog, optionally filtered by a case-insensitive title search
// @Tags Catalog
// @Accept json
// @Produce json
// @Param q query string false "Title search term"
// @Param page query int false "Page number (1-based)" default(1) minimum(1)
// @Param page_size query int false "Items per page" default(20) minimum(1) maximum(100)
// @Success 200 {object} models.APIResponse{data=models.BookPage} "Books retrieved successfully"
// @Failure 400 {object} models.APIResponse "Invalid parameters"
// @Failure 500 {object} models.APIResponse "Internal server error"
// @Router /books [get]
func (h *Handler) ListBooks(w http.ResponseWriter, r *http.Request) {
	if !h.requireDB(w, r) {
		return
	}

	defaultPageSize, maxPageSize := h.getPageSizeConfig()

	query := listBooksQuery{
		Query:    r.URL.Query().Get("q"),
		Page:     getIntParam(r, "page", 1),
		PageSize: getIntParam(r, "page_size", defaultPageSize),
	}
	if apiErr := validateRequest(&query); apiErr != nil {
		respondValidationError(w, r, apiErr)
		return
	}
	if query.PageSize > maxPageSize {
		query.PageSize = maxPageSize
	}

	start := time.Now()
	page, err := h.db.ListBooks(r.Context(), database.ListBooksParams{
		Query:    query.Query,
		Page:     query.Page,
		PageSize: query.PageSize,
	})
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list books", err)
		return
	}

	respondDataTimed(w, r, http.StatusOK, page, start)
}

// getPageSizeConfig returns page size configuration with safe defaults.
func (h *Handler) getPageSizeConfig() (defaultPageSize, maxPageSize int) {
	defaultPageSize, maxPageSize = 20, 100
	if h.config != nil {
		if h.config.API.DefaultPageSize > 0 {
			defaultPageSize = h.config.API.DefaultPageSize
		}
		if h.config.API.MaxPageSize > 0 {
			maxPageSize = h.config.API.MaxPageSize
		}
	}
	return defaultPageSize, maxPageSize
}

// RandomBooks returns a random catalog sample
//
// @Summary Random books
// @Description Returns n random books for the home page discovery shelf
// @Tags Catalog
// @Accept json
// @Produce json
// @Param n query int false "Number of books" default(8) minimum(1) maximum(50)
// @Success 200 {object} models.APIResponse{data=[]models.Book} "Books retrieved successfully"
// @Failure 400 {object} models.APIResponse "Invalid parameters"
// @Failure 500 {object} models.APIResponse "Internal server error"
// @Router /books/random [get]
func (h *Handler) RandomBooks(w http.ResponseWriter, r *http.Request) {
	if !h.requireDB(w, r) {
		return
	}

	query := sampleSizeQuery{N: getIntParam(r, "n", 8)}
	if apiErr := validateRequest(&query); apiErr != nil {
		respondValidationError(w, r, apiErr)
		return
	}

	start := time.Now()
	books, err := h.db.RandomBooks(r.Context(), query.N)
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to pick random books", err)
		return
	}

	respondDataTimed(w, r, http.StatusOK, books, start)
}

// TopRatedBooks returns the best rated books
//
// @Summary Top rated books
// @Description Returns the best rated books, price ascending as the tie-breaker
// @Tags Catalog
// @Accept json
// @Produce json
// @Param limit query int false "Number of books" default(8) minimum(1) maximum(50)
// @Success 200 {object} models.APIResponse{data=[]models.Book} "Books retrieved successfully"
// @Failure 400 {object} models.APIResponse "Invalid parameters"
// @Failure 500 {object} models.APIResponse "Internal server error"
// @Router /books/top-rated [get]
func (h *Handler) TopRatedBooks(w http.ResponseWriter, r *http.Request) {
	if !h.requireDB(w, r) {
		return
	}

	query := sampleSizeQuery{N: getIntParam(r, "limit", 8)}
	if apiErr := validateRequest(&query); apiErr != nil {
		respondValidationError(w, r, apiErr)
		return
	}

	start := time.Now()
	books, err := h.db.TopRatedBooks(r.Context(), query.N)
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch top rated books", err)
		return
	}

	respondDataTimed(w, r, http.StatusOK, books, start)
}

// GetBook returns a single book
//
// @Summary Get book by id
// @Description Returns the full details of a single book
// @Tags Catalog
// @Accept json
// @Produce json
// @Param id path int true "Book id"
// @Success 200 {object} models.APIResponse{data=models.Book} "Book retrieved successfully"
// @Failure 400 {object} models.APIResponse "Invalid book id"
// @Failure 404 {object} models.APIResponse "Book not found"
// @Failure 500 {object} models.APIResponse "Internal server error"
// @Router /books/{id} [get]
func (h *Handler) GetBook(w http.ResponseWriter, r *http.Request) {
	if !h.requireDB(w, r) {
		return
	}

	id, ok := parseBookID(w, r)
	if !ok {
		return
	}

	start := time.Now()
	book, err := h.db.GetBook(r.Context(), id)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			respondError(w, r, http.StatusNotFound, "NOT_FOUND", "Book not found", nil)
			return
		}
		respondError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch book", err)
		return
	}

	respondDataTimed(w, r, http.StatusOK, book, start)
}

// CreateBook adds a book to the catalog
//
// @Summary Create book
// @Description Adds a new book to the catalog. Admin only.
// @Tags Catalog
// @Accept json
// @Produce json
// @Param book body CreateBookRequest true "Book to create"
// @Security BearerAuth
// @Success 201 {object} models.APIResponse{data=models.Book} "Book created"
// @Failure 400 {object} models.APIResponse "Invalid request body"
// @Failure 401 {object} models.APIResponse "Not authenticated"
// @Failure 403 {object} models.APIResponse "Not an admin"
// @Failure 409 {object} models.APIResponse "Title and author already exist"
// @Failure 500 {object} models.APIResponse "Internal server error"
// @Router /books [post]
func (h *Handler) CreateBook(w http.ResponseWriter, r *http.Request) {
	if !h.requireDB(w, r) {
		return
	}

	var req CreateBookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", err)
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondValidationError(w, r, apiErr)
		return
	}

	book := &models.Book{
		Title:       req.Title,
		Author:      req.Author,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		Rating:      req.Rating,
		ImageURL:    req.ImageURL,
		ProductURL:  req.ProductURL,
	}

	if err := h.db.CreateBook(r.Context(), book); err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			respondError(w, r, http.StatusConflict, "CONFLICT", "A book with this title and author already exists", nil)
			return
		}
		respondError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create book", err)
		return
	}

	h.publishCatalogChanged(r.Context(), events.CatalogChanged{
		Action: events.ActionCreated,
		BookID: book.ID,
		Title:  book.Title,
	})
	h.auditBookChange(r, "create", book.ID, book.Title)

	respondData(w, r, http.StatusCreated, book)
}

// UpdateBook replaces a book's details
//
// @Summary Update book
// @Description Replaces all details of an existing book. Admin only.
// @Tags Catalog
// @Accept json
// @Produce json
// @Param id path int true "Book id"
// @Param book body UpdateBookRequest true "New book details"
// @Security BearerAuth
// @Success 200 {object} models.APIResponse{data=models.Book} "Book updated"
// @Failure 400 {object} models.APIResponse "Invalid request body"
// @Failure 401 {object} models.APIResponse "Not authenticated"
// @Failure 403 {object} models.APIResponse "Not an admin"
// @Failure 404 {object} models.APIResponse "Book not found"
// @Failure 409 {object} models.APIResponse "Title and author already exist"
// @Failure 500 {object} models.APIResponse "Internal server error"
// @Router /books/{id} [put]
func (h *Handler) UpdateBook(w http.ResponseWriter, r *http.Request) {
	if !h.requireDB(w, r) {
		return
	}

	id, ok := parseBookID(w, r)
	if !ok {
		return
	}

	var req UpdateBookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", err)
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondValidationError(w, r, apiErr)
		return
	}

	book := &models.Book{
		ID:          id,
		Title:       req.Title,
		Author:      req.Author,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		Rating:      req.Rating,
		ImageURL:    req.ImageURL,
		ProductURL:  req.ProductURL,
	}

	if err := h.db.UpdateBook(r.Context(), book); err != nil {
		switch {
		case errors.Is(err, database.ErrNotFound):
			respondError(w, r, http.StatusNotFound, "NOT_FOUND", "Book not found", nil)
		case errors.Is(err, database.ErrDuplicate):
			respondError(w, r, http.StatusConflict, "CONFLICT", "A book with this title and author already exists", nil)
		default:
			respondError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update book", err)
		}
		return
	}

	h.publishCatalogChanged(r.Context(), events.CatalogChanged{
		Action: events.ActionUpdated,
		BookID: book.ID,
		Title:  book.Title,
	})
	h.auditBookChange(r, "update", book.ID, book.Title)

	respondData(w, r, http.StatusOK, book)
}

// DeleteBook removes a book from the catalog
//
// @Summary Delete book
// @Description Removes a book from the catalog. Admin only.
// @Tags Catalog
// @Accept json
// @Produce json
// @Param id path int true "Book id"
// @Security BearerAuth
// @Success 204 "Book deleted"
// @Failure 400 {object} models.APIResponse "Invalid book id"
// @Failure 401 {object} models.APIResponse "Not authenticated"
// @Failure 403 {object} models.APIResponse "Not an admin"
// @Failure 404 {object} models.APIResponse "Book not found"
// @Failure 500 {object} models.APIResponse "Internal server error"
// @Router /books/{id} [delete]
func (h *Handler) DeleteBook(w http.ResponseWriter, r *http.Request) {
	if !h.requireDB(w, r) {
		return
	}

	id, ok := parseBookID(w, r)
	if !ok {
		return
	}

	// Fetch first so the deleted event can carry the title.
	book, err := h.db.GetBook(r.Context(), id)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			respondError(w, r, http.StatusNotFound, "NOT_FOUND", "Book not found", nil)
			return
		}
		respondError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch book", err)
		return
	}

	if err := h.db.DeleteBook(r.Context(), id); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			respondError(w, r, http.StatusNotFound, "NOT_FOUND", "Book not found", nil)
			return
		}
		respondError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to delete book", err)
		return
	}

	h.publishCatalogChanged(r.Context(), events.CatalogChanged{
		Action: events.ActionDeleted,
		BookID: book.ID,
		Title:  book.Title,
	})
	h.auditBookChange(r, "delete", book.ID, book.Title)

	w.WriteHeader(http.StatusNoContent)
}
