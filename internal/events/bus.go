// BibReaders - Library Catalog and Book Recommendations
// Copyright 2026 Raihana A. (RaihanaAm)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/RaihanaAm/Bib-Readers

package events

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/RaihanaAm/Bib-Readers/internal/config"
	"github.com/RaihanaAm/Bib-Readers/internal/metrics"
)

// Bus is the process-wide publisher and subscriber over a single GoChannel
// pub/sub. Every subscription on a topic receives its own copy of each
// message, so the retrain debouncer and the WebSocket bridge can both
// consume catalog.changed independently.
//
// Thread Safety: all methods are safe for concurrent use.
type Bus struct {
	pubsub *gochannel.GoChannel
	logger zerolog.Logger

	mu     sync.RWMutex
	closed bool
}

// NewBus creates the event bus. A nil config falls back to an unbuffered
// channel, which is only suitable for tests.
func NewBus(cfg *config.EventsConfig, logger zerolog.Logger) *Bus {
	var buffer int64
	if cfg != nil {
		buffer = int64(cfg.BufferSize)
	}

	pubsub := gochannel.NewGoChannel(gochannel.Config{
		OutputChannelBuffer: buffer,
	}, NewLoggerAdapter(logger))

	return &Bus{
		pubsub: pubsub,
		logger: logger,
	}
}

// PublishCatalogChanged publishes a catalog.changed event. The timestamp is
// stamped here when the caller leaves it zero.
func (b *Bus) PublishCatalogChanged(ctx context.Context, change CatalogChanged) error {
	if change.Timestamp.IsZero() {
		change.Timestamp = time.Now().UTC()
	}
	return b.publish(ctx, TopicCatalogChanged, change)
}

// PublishModelTrained publishes a model.trained event.
func (b *Bus) PublishModelTrained(ctx context.Context, trained ModelTrained) error {
	return b.publish(ctx, TopicModelTrained, trained)
}

// publish marshals the payload and hands it to the GoChannel transport.
func (b *Bus) publish(ctx context.Context, topic string, payload interface{}) error {
	b.mu.RLock()
	if b.closed {
		b.mu.RUnlock()
		return fmt.Errorf("publish %s: bus is closed", topic)
	}
	b.mu.RUnlock()

	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal %s payload: %w", topic, err)
	}

	msg := message.NewMessage(watermill.NewUUID(), data)
	msg.SetContext(ctx)

	if err := b.pubsub.Publish(topic, msg); err != nil {
		return fmt.Errorf("publish %s: %w", topic, err)
	}

	metrics.RecordEventPublished(topic)
	b.logger.Debug().Str("topic", topic).Str("message_id", msg.UUID).Msg("event published")
	return nil
}

// Subscribe opens a new subscription on the topic. Each call fans out
// independently; the returned channel closes when ctx is canceled or the
// bus is closed.
func (b *Bus) Subscribe(ctx context.Context, topic string) (<-chan *message.Message, error) {
	return b.pubsub.Subscribe(ctx, topic)
}

// Subscriber exposes the bus as a Watermill subscriber for router wiring.
func (b *Bus) Subscriber() message.Subscriber {
	return b.pubsub
}

// Close shuts the transport down. Pending messages are dropped; Close is
// idempotent.
func (b *Bus) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil
	}
	b.closed = true

	return b.pubsub.Close()
}
