// BibReaders - Library Catalog and Book Recommendations
// Copyright 2026 Raihana A. (RaihanaAm)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/RaihanaAm/Bib-Readers

package events

import (
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/goccy/go-json"
)

// Topics carried by the bus.
const (
	// TopicCatalogChanged carries CatalogChanged payloads.
	TopicCatalogChanged = "catalog.changed"

	// TopicModelTrained carries ModelTrained payloads.
	TopicModelTrained = "model.trained"
)

// Catalog change actions.
const (
	ActionCreated  = "created"
	ActionUpdated  = "updated"
	ActionDeleted  = "deleted"
	ActionImported = "imported"
)

// CatalogChanged announces a mutation of the book catalog. Single-book
// changes carry the book's identity; scrape imports carry only the batch
// size since individual upserts would flood the bus.
type CatalogChanged struct {
	// Action is one of created, updated, deleted, or imported.
	Action string `json:"action"`

	// BookID identifies the affected book. Zero for batch imports.
	BookID int64 `json:"book_id,omitempty"`

	// Title is the affected book's title. Empty for batch imports.
	Title string `json:"title,omitempty"`

	// Count is the number of books in a batch import. Zero otherwise.
	Count int `json:"count,omitempty"`

	// Timestamp is when the change happened.
	Timestamp time.Time `json:"timestamp"`
}

// ModelTrained announces that a rebuilt recommendation artifact is live.
type ModelTrained struct {
	// Entries is the catalog size the artifact was built from.
	Entries int `json:"entries"`

	// VocabSize is the fitted vocabulary size.
	VocabSize int `json:"vocab_size"`

	// BuildDurationMS is how long the build took.
	BuildDurationMS int64 `json:"build_duration_ms"`

	// TrainedAt is when the build started.
	TrainedAt time.Time `json:"trained_at"`
}

// DecodeCatalogChanged unmarshals a catalog.changed message payload.
func DecodeCatalogChanged(msg *message.Message) (*CatalogChanged, error) {
	var change CatalogChanged
	if err := json.Unmarshal(msg.Payload, &change); err != nil {
		return nil, fmt.Errorf("decode catalog.changed %s: %w", msg.UUID, err)
	}
	return &change, nil
}

// DecodeModelTrained unmarshals a model.trained message payload.
func DecodeModelTrained(msg *message.Message) (*ModelTrained, error) {
	var trained ModelTrained
	if err := json.Unmarshal(msg.Payload, &trained); err != nil {
		return nil, fmt.Errorf("decode model.trained %s: %w", msg.UUID, err)
	}
	return &trained, nil
}
