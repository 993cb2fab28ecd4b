// BibReaders - Library Catalog and Book Recommendations
// Copyright 2026 Raihana A. (RaihanaAm)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/RaihanaAm/Bib-Readers

package api

// Request structs validated with go-playground/validator before handlers
// touch the database. Validation failures produce VALIDATION_ERROR
// envelopes with per-field details.

// RegisterRequest is the body of POST /auth/register.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=120"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=128"`
}

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// CreateBookRequest is the body of POST /books.
type CreateBookRequest struct {
	Title       string  `json:"title" validate:"required,min=1,max=500"`
	Author      string  `json:"author" validate:"required,min=1,max=200"`
	Description string  `json:"description" validate:"max=10000"`
	Price       float64 `json:"price" validate:"gte=0"`
	Stock       int     `json:"stock" validate:"gte=0"`
	Rating      int     `json:"rating" validate:"gte=0,lte=5"`
	ImageURL    string  `json:"image_url" validate:"omitempty,url,max=2000"`
	ProductURL  string  `json:"product_url" validate:"omitempty,url,max=2000"`
}

// UpdateBookRequest is the body of PUT /books/{id}. All fields are
// replaced; there is no partial patch.
type UpdateBookRequest struct {
	Title       string  `json:"title" validate:"required,min=1,max=500"`
	Author      string  `json:"author" validate:"required,min=1,max=200"`
	Description string  `json:"description" validate:"max=10000"`
	Price       float64 `json:"price" validate:"gte=0"`
	Stock       int     `json:"stock" validate:"gte=0"`
	Rating      int     `json:"rating" validate:"gte=0,lte=5"`
	ImageURL    string  `json:"image_url" validate:"omitempty,url,max=2000"`
	ProductURL  string  `json:"product_url" validate:"omitempty,url,max=2000"`
}

// RecommendRequest is the body of POST /recommendations. TopK zero means
// "use the configured default".
type RecommendRequest struct {
	Text string `json:"text" validate:"max=10000"`
	TopK int    `json:"top_k" validate:"omitempty,gte=1,lte=50"`
}

// CreateBackupRequest is the optional body of POST /admin/backups.
type CreateBackupRequest struct {
	Notes string `json:"notes" validate:"max=1000"`
}

// RestoreRequest is the optional body of POST /admin/backups/{id}/restore.
// The pre-restore safety backup is opt-out, not opt-in.
type RestoreRequest struct {
	ValidateOnly         bool `json:"validate_only"`
	SkipPreRestoreBackup bool `json:"skip_pre_restore_backup"`
	Force                bool `json:"force"`
}

// listBooksQuery validates GET /books query parameters.
type listBooksQuery struct {
	Query    string `validate:"max=200"`
	Page     int    `validate:"gte=1"`
	PageSize int    `validate:"gte=1,lte=100"`
}

// sampleSizeQuery validates the n/limit parameter of the random and
// top-rated endpoints.
type sampleSizeQuery struct {
	N int `validate:"gte=1,lte=50"`
}
