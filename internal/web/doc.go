// BibReaders - Library Catalog and Book Recommendations
// Copyright 2026 Raihana A. (RaihanaAm)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/RaihanaAm/Bib-Readers

// Package web renders the server-side HTML frontend.
//
// Templates live in templates/ and assets in static/, both embedded into
// the binary, so a deployment is the single executable plus its data
// directory. Every page shares one layout; page templates define a
// content block.
//
// The split between server-side and client-side work:
//
//   - Initial page data (shelves, search results, book detail) is fetched
//     from the database during rendering, so pages work without JS and
//     search results are crawlable.
//   - Session-aware parts (nav state, login, logout) and the
//     recommendation form go through the JSON API from small inline
//     scripts, which keeps token handling in one place (static/app.js).
//
// The template function map provides catalog formatting: price renders
// the pound amount carried over from the source site, stars turns a 0-5
// rating into star glyphs, and truncate shortens descriptions on cards.
package web
