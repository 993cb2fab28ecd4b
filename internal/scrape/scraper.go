// BibReaders - Library Catalog and Book Recommendations
// Copyright 2026 Raihana A. (RaihanaAm)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/RaihanaAm/Bib-Readers

package scrape

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/rs/zerolog"

	"github.com/RaihanaAm/Bib-Readers/internal/metrics"
)

// Sink receives cleaned books page by page. Write is called once per
// listing page, in page order. Close is called exactly once after the walk
// finishes, whether it succeeded or not.
type Sink interface {
	Write(ctx context.Context, page Page) error
	Close(ctx context.Context) error
}

// Page is the yield of one listing page.
type Page struct {
	// Number is the 1-based listing page index.
	Number int
	// Books holds the cleaned records in card order.
	Books []Book
}

// Options tune a single scrape run.
type Options struct {
	// MaxPages caps the listing walk. Zero walks until the site runs out.
	MaxPages int
	// DescLimit caps description fetches per listing page. Zero fetches a
	// description for every book.
	DescLimit int
	// SkipDescriptions skips product page fetches entirely. The records
	// still carry title, price, stock, and rating from the listing card.
	SkipDescriptions bool
}

// Scraper walks the source site's paginated catalogue and feeds cleaned
// books to sinks.
type Scraper struct {
	client  *Client
	baseURL string
	opts    Options
	logger  zerolog.Logger
}

// NewScraper creates a scraper that walks the catalogue under baseURL.
func NewScraper(client *Client, baseURL string, opts Options, logger zerolog.Logger) *Scraper {
	return &Scraper{client: client, baseURL: baseURL, opts: opts, logger: logger}
}

// Run walks the catalogue and writes each page to every sink, returning
// the number of books scraped. The walk ends at the page cap, at a page
// with no next link, or at a 404 from the site; only the first two are
// guaranteed on the real site, the 404 covers a cap larger than the
// catalogue. Sinks are closed before Run returns, even on error.
func (s *Scraper) Run(ctx context.Context, sinks ...Sink) (total int, err error) {
	start := time.Now()
	defer func() {
		metrics.ScrapeDuration.Observe(time.Since(start).Seconds())
	}()

	defer func() {
		for _, sink := range sinks {
			if cerr := sink.Close(ctx); cerr != nil && err == nil {
				err = cerr
			}
		}
	}()

	base, err := url.Parse(s.baseURL)
	if err != nil {
		return 0, fmt.Errorf("invalid base URL %q: %w", s.baseURL, err)
	}
	if base.Scheme == "" || base.Host == "" {
		return 0, fmt.Errorf("base URL %q must be absolute", s.baseURL)
	}

	s.logger.Info().
		Str("base_url", s.baseURL).
		Int("max_pages", s.opts.MaxPages).
		Msg("Scrape run started")

	pageURL := base.JoinPath("catalogue", "page-1.html")
	for pageNum := 1; ; pageNum++ {
		if err := ctx.Err(); err != nil {
			return total, err
		}

		page, next, err := s.scrapePage(ctx, pageURL, pageNum)
		if err != nil {
			if errors.Is(err, ErrPageNotFound) {
				s.logger.Info().Int("pages", pageNum-1).Msg("Reached the end of the catalogue")
				return total, nil
			}
			return total, err
		}

		total += len(page.Books)
		for _, sink := range sinks {
			if err := sink.Write(ctx, page); err != nil {
				return total, fmt.Errorf("sink failed on page %d: %w", pageNum, err)
			}
		}

		s.logger.Info().
			Int("page", pageNum).
			Int("books", len(page.Books)).
			Int("total", total).
			Msg("Listing page scraped")

		if s.opts.MaxPages > 0 && pageNum >= s.opts.MaxPages {
			return total, nil
		}
		if next == "" {
			return total, nil
		}
		nextURL, err := url.Parse(next)
		if err != nil {
			return total, fmt.Errorf("bad next-page link %q: %w", next, err)
		}
		pageURL = nextURL
	}
}

// scrapePage fetches and parses one listing page, then fills in
// descriptions from the product pages. A failed description fetch degrades
// that one record; a failed listing fetch fails the page.
func (s *Scraper) scrapePage(ctx context.Context, pageURL *url.URL, number int) (Page, string, error) {
	body, err := s.client.Fetch(ctx, pageURL.String())
	if err != nil {
		metrics.RecordScrapePage(false)
		return Page{}, "", err
	}

	parsed, err := parseListing(bytes.NewReader(body), pageURL)
	if err != nil {
		metrics.RecordScrapePage(false)
		return Page{}, "", err
	}
	metrics.RecordScrapePage(true)

	books := parsed.books
	if !s.opts.SkipDescriptions {
		attempted := 0
		for i := range books {
			if s.opts.DescLimit > 0 && attempted >= s.opts.DescLimit {
				break
			}
			if books[i].ProductURL == "" {
				continue
			}
			attempted++

			desc, err := s.fetchDescription(ctx, books[i].ProductURL)
			if err != nil {
				if ctx.Err() != nil {
					return Page{}, "", ctx.Err()
				}
				s.logger.Warn().Err(err).
					Str("url", books[i].ProductURL).
					Msg("Failed to fetch description")
				continue
			}
			books[i].Description = desc
		}
	}

	return Page{Number: number, Books: books}, parsed.next, nil
}

func (s *Scraper) fetchDescription(ctx context.Context, productURL string) (string, error) {
	body, err := s.client.Fetch(ctx, productURL)
	if err != nil {
		return "", err
	}
	return parseDescription(bytes.NewReader(body))
}
