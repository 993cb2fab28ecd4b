// BibReaders - Library Catalog and Book Recommendations
// Copyright 2026 Raihana A. (RaihanaAm)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/RaihanaAm/Bib-Readers

package events

import (
	"context"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/rs/zerolog"

	"github.com/RaihanaAm/Bib-Readers/internal/config"
)

func newTestBus(t *testing.T) *Bus {
	t.Helper()
	bus := NewBus(&config.EventsConfig{BufferSize: 16}, zerolog.Nop())
	t.Cleanup(func() {
		if err := bus.Close(); err != nil {
			t.Errorf("Close() error = %v", err)
		}
	})
	return bus
}

func TestBusPublishSubscribeRoundTrip(t *testing.T) {
	bus := newTestBus(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	messages, err := bus.Subscribe(ctx, TopicCatalogChanged)
	if err != nil {
		t.Fatalf("Subscribe() error = %v", err)
	}

	change := CatalogChanged{Action: ActionCreated, BookID: 7, Title: "Dune"}
	if err := bus.PublishCatalogChanged(ctx, change); err != nil {
		t.Fatalf("PublishCatalogChanged() error = %v", err)
	}

	select {
	case msg := <-messages:
		got, err := DecodeCatalogChanged(msg)
		if err != nil {
			t.Fatalf("DecodeCatalogChanged() error = %v", err)
		}
		msg.Ack()

		if got.Action != ActionCreated {
			t.Errorf("Action = %q, want %q", got.Action, ActionCreated)
		}
		if got.BookID != 7 {
			t.Errorf("BookID = %d, want 7", got.BookID)
		}
		if got.Timestamp.IsZero() {
			t.Error("Timestamp not stamped on publish")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for catalog.changed")
	}
}

func TestBusFansOutToAllSubscribers(t *testing.T) {
	bus := newTestBus(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	first, err := bus.Subscribe(ctx, TopicModelTrained)
	if err != nil {
		t.Fatalf("Subscribe() error = %v", err)
	}
	second, err := bus.Subscribe(ctx, TopicModelTrained)
	if err != nil {
		t.Fatalf("Subscribe() error = %v", err)
	}

	if err := bus.PublishModelTrained(ctx, ModelTrained{Entries: 3}); err != nil {
		t.Fatalf("PublishModelTrained() error = %v", err)
	}

	for i, ch := range []<-chan *message.Message{first, second} {
		select {
		case msg := <-ch:
			trained, err := DecodeModelTrained(msg)
			if err != nil {
				t.Fatalf("subscriber %d: DecodeModelTrained() error = %v", i, err)
			}
			msg.Ack()
			if trained.Entries != 3 {
				t.Errorf("subscriber %d: Entries = %d, want 3", i, trained.Entries)
			}
		case <-time.After(2 * time.Second):
			t.Fatalf("subscriber %d timed out waiting for model.trained", i)
		}
	}
}

func TestBusPublishAfterClose(t *testing.T) {
	bus := NewBus(&config.EventsConfig{BufferSize: 1}, zerolog.Nop())
	if err := bus.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	if err := bus.PublishCatalogChanged(context.Background(), CatalogChanged{Action: ActionDeleted}); err == nil {
		t.Error("PublishCatalogChanged() on closed bus expected error, got nil")
	}

	// Close is idempotent.
	if err := bus.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
}
