// BibReaders - Library Catalog and Book Recommendations
// Copyright 2026 Raihana A. (RaihanaAm)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/RaihanaAm/Bib-Readers

package events

import (
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/goccy/go-json"
)

func TestDecodeCatalogChanged(t *testing.T) {
	tests := []struct {
		name       string
		payload    []byte
		wantErr    bool
		wantAction string
		wantBookID int64
	}{
		{
			name:       "created event",
			payload:    []byte(`{"action":"created","book_id":42,"title":"Dune","timestamp":"2026-08-01T12:00:00Z"}`),
			wantAction: ActionCreated,
			wantBookID: 42,
		},
		{
			name:       "imported batch",
			payload:    []byte(`{"action":"imported","count":950,"timestamp":"2026-08-01T12:00:00Z"}`),
			wantAction: ActionImported,
		},
		{
			name:    "malformed payload",
			payload: []byte(`{"action":`),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := message.NewMessage("test-id", tt.payload)
			change, err := DecodeCatalogChanged(msg)
			if (err != nil) != tt.wantErr {
				t.Fatalf("DecodeCatalogChanged() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if change.Action != tt.wantAction {
				t.Errorf("Action = %q, want %q", change.Action, tt.wantAction)
			}
			if change.BookID != tt.wantBookID {
				t.Errorf("BookID = %d, want %d", change.BookID, tt.wantBookID)
			}
		})
	}
}

func TestDecodeModelTrained(t *testing.T) {
	trained := ModelTrained{
		Entries:         1000,
		VocabSize:       5000,
		BuildDurationMS: 230,
		TrainedAt:       time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
	}
	payload, err := json.Marshal(trained)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	got, err := DecodeModelTrained(message.NewMessage("test-id", payload))
	if err != nil {
		t.Fatalf("DecodeModelTrained() error = %v", err)
	}
	if got.Entries != trained.Entries {
		t.Errorf("Entries = %d, want %d", got.Entries, trained.Entries)
	}
	if got.VocabSize != trained.VocabSize {
		t.Errorf("VocabSize = %d, want %d", got.VocabSize, trained.VocabSize)
	}
	if !got.TrainedAt.Equal(trained.TrainedAt) {
		t.Errorf("TrainedAt = %v, want %v", got.TrainedAt, trained.TrainedAt)
	}

	if _, err := DecodeModelTrained(message.NewMessage("bad", []byte("{"))); err == nil {
		t.Error("DecodeModelTrained() with truncated payload expected error, got nil")
	}
}
