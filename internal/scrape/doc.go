// BibReaders - Library Catalog and Book Recommendations
// Copyright 2026 Raihana A. (RaihanaAm)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/RaihanaAm/Bib-Readers

// Package scrape populates the catalog from books.toscrape.com.
//
// The site is a static HTML catalogue paginated under /catalogue/page-N.html
// with fifty product listings per page. The scraper walks the listing pages
// in order, follows each card to its product page for the long description,
// and hands the cleaned records to one or more sinks:
//
//   - CSVSink writes a flat file, rewriting it after every page so an
//     interrupted run still leaves a complete, loadable file behind.
//   - DBSink upserts into the books table keyed by (title, author) and
//     publishes a single catalog.changed import event for the whole run.
//
// Politeness is client-side: a token-bucket rate limiter spaces requests
// and a circuit breaker backs off when the site starts failing. A 404 on a
// listing page is not a failure, it is how the site says the catalogue
// ended.
package scrape
