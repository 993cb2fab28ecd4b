// BibReaders - Library Catalog and Book Recommendations
// Copyright 2026 Raihana A. (RaihanaAm)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/RaihanaAm/Bib-Readers

// Package main is the BibReaders catalog scraper.
//
// The scraper walks the paginated catalogue of the public demo bookstore at
// books.toscrape.com, cleans every product card into a catalog record, and
// writes the result to a CSV file, straight into the BibReaders database, or
// both. It is polite by default: requests are rate limited, failures trip a
// circuit breaker, and the walk stops at the configured page cap.
//
// Configuration follows the same layering as the server (defaults, optional
// config.yaml, SCRAPE_* environment variables); command-line flags override
// all three.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/RaihanaAm/Bib-Readers/internal/config"
	"github.com/RaihanaAm/Bib-Readers/internal/database"
	"github.com/RaihanaAm/Bib-Readers/internal/logging"
	"github.com/RaihanaAm/Bib-Readers/internal/scrape"
)

// newRootCmd creates the scraper command.
func newRootCmd() *cobra.Command {
	var (
		baseURL   string
		maxPages  int
		rate      float64
		timeout   time.Duration
		userAgent string
		descLimit int
		skipDesc  bool
		outPath   string
		toDB      bool
	)

	cmd := &cobra.Command{
		Use:   "scraper",
		Short: "Scrape books.toscrape.com into a CSV file or the BibReaders catalog",
		Long: `Walk the source site's paginated catalogue and collect every book:
title, author, description, price, stock, rating, and URLs.

At least one output must be selected. With --out the books land in a CSV
file (rewritten after every page, so an interrupted run still leaves a
complete file). With --db they are upserted into the catalog database,
keyed by title and author, so re-running the scraper refreshes prices and
stock instead of duplicating books.

A database import does not notify a running server; the recommendation
model stays stale until the next scheduled or manual training run.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if outPath == "" && !toDB {
				return errors.New("nothing to do: pass --out and/or --db")
			}

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			logging.Init(logging.Config{
				Level:  cfg.Logging.Level,
				Format: cfg.Logging.Format,
				Caller: cfg.Logging.Caller,
			})
			logger := logging.WithComponent("scraper")

			// Flags beat the layered configuration, but only when set, so
			// SCRAPE_* environment variables still apply underneath.
			flags := cmd.Flags()
			if flags.Changed("base-url") {
				cfg.Scrape.BaseURL = baseURL
			}
			if flags.Changed("max-pages") {
				cfg.Scrape.MaxPages = maxPages
			}
			if flags.Changed("rate") {
				cfg.Scrape.RequestsPerSecond = rate
			}
			if flags.Changed("timeout") {
				cfg.Scrape.Timeout = timeout
			}
			if flags.Changed("user-agent") {
				cfg.Scrape.UserAgent = userAgent
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			var sinks []scrape.Sink
			if outPath != "" {
				sinks = append(sinks, scrape.NewCSVSink(outPath))
			}
			if toDB {
				db, err := database.New(&cfg.Database)
				if err != nil {
					return fmt.Errorf("failed to open database: %w", err)
				}
				defer func() {
					if err := db.Close(); err != nil {
						logger.Error().Err(err).Msg("Error closing database")
					}
				}()
				sinks = append(sinks, scrape.NewDBSink(db, nil, logger))
			}

			client := scrape.NewClient(&cfg.Scrape)
			scraper := scrape.NewScraper(client, cfg.Scrape.BaseURL, scrape.Options{
				MaxPages:         cfg.Scrape.MaxPages,
				DescLimit:        descLimit,
				SkipDescriptions: skipDesc,
			}, logger)

			start := time.Now()
			total, err := scraper.Run(ctx, sinks...)
			if err != nil {
				return fmt.Errorf("scrape failed after %d books: %w", total, err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "scraped %d books in %s\n",
				total, time.Since(start).Round(time.Millisecond))
			return nil
		},
	}

	cmd.Flags().StringVar(&baseURL, "base-url", "https://books.toscrape.com/", "root URL of the source site")
	cmd.Flags().IntVar(&maxPages, "max-pages", 50, "maximum listing pages to walk (0 = until the site runs out)")
	cmd.Flags().Float64Var(&rate, "rate", 2, "request rate limit in requests per second")
	cmd.Flags().DurationVar(&timeout, "timeout", 20*time.Second, "per-request timeout")
	cmd.Flags().StringVar(&userAgent, "user-agent", "", "override the User-Agent header")
	cmd.Flags().IntVar(&descLimit, "desc-limit", 0, "description fetches per listing page (0 = every book)")
	cmd.Flags().BoolVar(&skipDesc, "skip-descriptions", false, "skip product page fetches entirely")
	cmd.Flags().StringVar(&outPath, "out", "", "write scraped books to this CSV file")
	cmd.Flags().BoolVar(&toDB, "db", false, "upsert scraped books into the catalog database")

	return cmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
