// BibReaders - Library Catalog and Book Recommendations
// Copyright 2026 Raihana A. (RaihanaAm)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/RaihanaAm/Bib-Readers

package scrape

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"github.com/RaihanaAm/Bib-Readers/internal/config"
	"github.com/RaihanaAm/Bib-Readers/internal/logging"
)

// ErrPageNotFound reports a 404 from the source site. The page walker
// treats it as the end of the catalogue rather than a failure.
var ErrPageNotFound = errors.New("page not found")

// maxBodySize caps how much of a response body is read. Listing and
// product pages are tens of kilobytes; anything larger is not a page we
// want to parse.
const maxBodySize = 4 << 20

const (
	defaultRequestsPerSecond = 2.0
	defaultTimeout           = 20 * time.Second
	defaultUserAgent         = "BibReadersScraper/1.0 (+https://github.com/RaihanaAm/Bib-Readers)"
)

// Client fetches pages from the source site with client-side politeness.
// A token-bucket rate limiter spaces requests and a circuit breaker stops
// hammering the site once it starts failing.
//
// The breaker uses real time for its interval and recovery timeout. Tests
// exercise the wrapped fetch path directly or keep failure counts below
// the trip threshold.
type Client struct {
	http      *http.Client
	limiter   *rate.Limiter
	breaker   *gobreaker.CircuitBreaker[[]byte]
	userAgent string
}

// NewClient creates a scrape client. Zero or missing configuration values
// fall back to polite defaults: 2 requests per second, a 20 second request
// timeout, and an identifying User-Agent.
func NewClient(cfg *config.ScrapeConfig) *Client {
	rps := defaultRequestsPerSecond
	timeout := defaultTimeout
	userAgent := defaultUserAgent
	if cfg != nil {
		if cfg.RequestsPerSecond > 0 {
			rps = cfg.RequestsPerSecond
		}
		if cfg.Timeout > 0 {
			timeout = cfg.Timeout
		}
		if cfg.UserAgent != "" {
			userAgent = cfg.UserAgent
		}
	}

	logger := logging.WithComponent("scrape")
	breaker := gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:        "scrape-source",
		MaxRequests: 1,           // One probe request in half-open state
		Interval:    time.Minute, // Reset counts after 1 minute in closed state
		Timeout:     30 * time.Second,

		// A batch scraper trips on consecutive failures: five in a row
		// means the site is down or blocking us, not that one page was
		// flaky.
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},

		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("Circuit breaker state transition")
		},

		// A 404 ends the walk; it must not push the breaker open.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, ErrPageNotFound)
		},
	})

	return &Client{
		http:      &http.Client{Timeout: timeout},
		limiter:   rate.NewLimiter(rate.Limit(rps), 1),
		breaker:   breaker,
		userAgent: userAgent,
	}
}

// Fetch retrieves one page. It waits on the rate limiter before touching
// the network, so request spacing holds no matter how fast the caller
// iterates.
func (c *Client) Fetch(ctx context.Context, pageURL string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	return c.breaker.Execute(func() ([]byte, error) {
		return c.fetch(ctx, pageURL)
	})
}

func (c *Client) fetch(ctx context.Context, pageURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w: %s", ErrPageNotFound, pageURL)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("unexpected status %d fetching %s", resp.StatusCode, pageURL)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	return body, nil
}
