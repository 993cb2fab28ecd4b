// BibReaders - Library Catalog and Book Recommendations
// Copyright 2026 Raihana A. (RaihanaAm)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/RaihanaAm/Bib-Readers

package models

import "time"

// Book represents one catalog entry. Books arrive either through the admin
// API or the catalog scraper; both paths normalize into this shape.
//
// Fields:
//   - ID: Database-assigned identifier
//   - Title: Book title (always present; scraper falls back to "Untitled")
//   - Author: Author name (defaults to "Unknown" when the source omits it)
//   - Description: Free-text description used by the recommendation engine
//   - Price: Listed price in the source currency
//   - Stock: Available copies (0 means out of stock)
//   - Rating: Star rating from 0 to 5
//   - ImageURL: Cover image location
//   - ProductURL: Canonical source page for scraped books
//
// Example:
//
//	{
//	  "id": 42,
//	  "title": "A Light in the Attic",
//	  "author": "Shel Silverstein",
//	  "description": "It's hard to imagine a world without...",
//	  "price": 51.77,
//	  "stock": 22,
//	  "rating": 3,
//	  "image_url": "https://books.toscrape.com/media/...jpg",
//	  "product_url": "https://books.toscrape.com/catalogue/...",
//	  "created_at": "2026-08-01T09:30:00Z",
//	  "updated_at": "2026-08-01T09:30:00Z"
//	}
type Book struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Author      string    `json:"author"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Stock       int       `json:"stock"`
	Rating      int       `json:"rating"`
	ImageURL    string    `json:"image_url"`
	ProductURL  string    `json:"product_url"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// InStock reports whether any copies are available.
func (b *Book) InStock() bool {
	return b.Stock > 0
}

// BookPage is one page of catalog results with offset pagination metadata.
//
// Example:
//
//	{
//	  "items": [...],
//	  "page": 2,
//	  "page_size": 20,
//	  "total_items": 1000,
//	  "total_pages": 50
//	}
type BookPage struct {
	Items      []Book `json:"items"`
	Page       int    `json:"page"`
	PageSize   int    `json:"page_size"`
	TotalItems int64  `json:"total_items"`
	TotalPages int    `json:"total_pages"`
}
