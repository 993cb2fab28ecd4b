// BibReaders - Library Catalog and Book Recommendations
// Copyright 2026 Raihana A. (RaihanaAm)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/RaihanaAm/Bib-Readers

// Package main is the offline BibReaders model trainer.
//
// The trainer reads the whole catalog from DuckDB, builds the TF-IDF
// artifact, and writes it atomically to the artifact path. A running server
// picks the new model up on its next artifact reload; nothing needs to be
// restarted. The previous artifact survives a failed build untouched, so a
// cron job can run the trainer without risking the serving model.
//
// Configuration follows the same layering as the server (defaults, optional
// config.yaml, RECOMMEND_* environment variables); command-line flags
// override all three.
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
	"github.com/RaihanaAm/Bib-Readers/internal/metrics"
	"github.com/RaihanaAm/Bib-Readers/internal/recommend"
)

// newRootCmd creates the trainer command.
func newRootCmd() *cobra.Command {
	var (
		artifactPath string
		maxFeatures  int
		timeout      time.Duration
	)

	cmd := &cobra.Command{
		Use:   "trainer",
		Short: "Build the BibReaders recommendation model from the catalog",
		Long: `Read every book from the catalog database, vectorize title and
description into a TF-IDF document-term matrix, and persist the result as
a compressed artifact.

The artifact is written atomically: the build lands in a temporary file
that replaces the target only after a successful fsync. An empty catalog
fails the build and leaves any existing artifact in place.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			logging.Init(logging.Config{
				Level:  cfg.Logging.Level,
				Format: cfg.Logging.Format,
				Caller: cfg.Logging.Caller,
			})
			logger := logging.WithComponent("trainer")

			flags := cmd.Flags()
			if flags.Changed("artifact") {
				cfg.Recommend.ArtifactPath = artifactPath
			}
			if flags.Changed("max-features") {
				cfg.Recommend.MaxFeatures = maxFeatures
			}

			db, err := database.New(&cfg.Database)
			if err != nil {
				return fmt.Errorf("failed to open database: %w", err)
			}
			defer func() {
				if err := db.Close(); err != nil {
					logger.Error().Err(err).Msg("Error closing database")
				}
			}()

			store := recommend.NewStore(cfg.Recommend.ArtifactPath)
			engine, err := recommend.NewEngine(store, &recommend.Config{
				ArtifactPath: cfg.Recommend.ArtifactPath,
				MaxFeatures:  cfg.Recommend.MaxFeatures,
				DefaultTopK:  cfg.Recommend.DefaultTopK,
				MaxTopK:      cfg.Recommend.MaxTopK,
			}, logger)
			if err != nil {
				return fmt.Errorf("failed to create engine: %w", err)
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			ctx, cancel := context.WithTimeout(ctx, timeout)
			defer cancel()

			start := time.Now()
			meta, err := engine.Rebuild(ctx, db)
			metrics.RecordTrainingRun(time.Since(start), meta.EntryCount, meta.VocabSize, err)
			if err != nil {
				if errors.Is(err, recommend.ErrEmptyCorpus) {
					return errors.New("the catalog is empty; seed or scrape books before training")
				}
				return fmt.Errorf("model build failed: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "model trained: %d books, %d terms, %s -> %s\n",
				meta.EntryCount, meta.VocabSize,
				time.Since(start).Round(time.Millisecond), cfg.Recommend.ArtifactPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&artifactPath, "artifact", "data/recommend/artifact.gob.gz", "artifact output path")
	cmd.Flags().IntVar(&maxFeatures, "max-features", 5000, "vocabulary size cap")
	cmd.Flags().DurationVar(&timeout, "timeout", 30*time.Minute, "abort the build after this long")

	return cmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
