// BibReaders - Library Catalog and Book Recommendations
// Copyright 2026 Raihana A. (RaihanaAm)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/RaihanaAm/Bib-Readers

package recommend

import "fmt"

// Config contains configuration for the recommendation subsystem. Both the
// builder and the engine read from it so that training and serving agree on
// vocabulary limits and result sizes.
type Config struct {
	// ArtifactPath is where the serialized model lives on disk.
	ArtifactPath string `koanf:"artifact_path" json:"artifact_path"`

	// MaxFeatures caps the vocabulary size. When the corpus produces more
	// distinct terms, the most document-frequent ones are kept.
	MaxFeatures int `koanf:"max_features" json:"max_features"`

	// DefaultTopK is the result count used when a query does not specify one.
	DefaultTopK int `koanf:"default_top_k" json:"default_top_k"`

	// MaxTopK bounds the result count a single query may request.
	MaxTopK int `koanf:"max_top_k" json:"max_top_k"`
}

// DefaultConfig returns a configuration with production defaults.
func DefaultConfig() *Config {
	return &Config{
		ArtifactPath: "data/recommend/artifact.gob.gz",
		MaxFeatures:  5000,
		DefaultTopK:  5,
		MaxTopK:      50,
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.ArtifactPath == "" {
		return fmt.Errorf("artifact_path must not be empty")
	}
	if c.MaxFeatures < 1 {
		return fmt.Errorf("max_features must be >= 1, got %d", c.MaxFeatures)
	}
	if c.DefaultTopK < 1 {
		return fmt.Errorf("default_top_k must be >= 1, got %d", c.DefaultTopK)
	}
	if c.MaxTopK < c.DefaultTopK {
		return fmt.Errorf("max_top_k must be >= default_top_k (%d), got %d", c.DefaultTopK, c.MaxTopK)
	}
	return nil
}
