// BibReaders - Library Catalog and Book Recommendations
// Copyright 2026 Raihana A. (RaihanaAm)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/RaihanaAm/Bib-Readers

package events

import (
	"context"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/rs/zerolog"

	"github.com/RaihanaAm/Bib-Readers/internal/metrics"
)

// WebSocket bridge message types. These are the `type` values browser
// clients see on the events socket.
const (
	MessageTypeCatalogChanged = "catalog_changed"
	MessageTypeModelTrained   = "model_trained"
)

// Broadcaster forwards bus events to connected WebSocket clients.
// Implemented by websocket.Hub.
type Broadcaster interface {
	BroadcastJSON(messageType string, data interface{})
}

// RouterConfig holds Watermill router settings.
type RouterConfig struct {
	// CloseTimeout is how long to wait for in-flight handlers on shutdown.
	CloseTimeout time.Duration

	// Retry configuration for transient handler failures.
	RetryMaxRetries      int
	RetryInitialInterval time.Duration
	RetryMaxInterval     time.Duration
	RetryMultiplier      float64
}

// DefaultRouterConfig returns production defaults.
func DefaultRouterConfig() RouterConfig {
	return RouterConfig{
		CloseTimeout:         15 * time.Second,
		RetryMaxRetries:      3,
		RetryInitialInterval: 500 * time.Millisecond,
		RetryMaxInterval:     10 * time.Second,
		RetryMultiplier:      2.0,
	}
}

// Router consumes bus topics and dispatches them to the retrain debouncer
// and the WebSocket bridge. It wraps a Watermill router with panic
// recovery and exponential-backoff retry, and runs as a supervised
// service.
type Router struct {
	router *message.Router
	logger zerolog.Logger
}

// NewRouter builds the router and registers consumers. The debouncer and
// broadcaster are each optional; passing nil skips the matching handlers.
func NewRouter(cfg RouterConfig, bus *Bus, debouncer *RetrainDebouncer, hub Broadcaster, logger zerolog.Logger) (*Router, error) {
	componentLogger := logger.With().Str("component", "event-router").Logger()

	wmRouter, err := message.NewRouter(message.RouterConfig{
		CloseTimeout: cfg.CloseTimeout,
	}, NewLoggerAdapter(componentLogger))
	if err != nil {
		return nil, fmt.Errorf("create watermill router: %w", err)
	}

	// Recoverer converts handler panics into errors so one bad message
	// cannot take the router down.
	wmRouter.AddMiddleware(middleware.Recoverer)

	retry := middleware.Retry{
		MaxRetries:      cfg.RetryMaxRetries,
		InitialInterval: cfg.RetryInitialInterval,
		MaxInterval:     cfg.RetryMaxInterval,
		Multiplier:      cfg.RetryMultiplier,
		Logger:          NewLoggerAdapter(componentLogger),
	}
	wmRouter.AddMiddleware(retry.Middleware)

	r := &Router{
		router: wmRouter,
		logger: componentLogger,
	}

	if debouncer != nil {
		wmRouter.AddConsumerHandler(
			"retrain-debouncer",
			TopicCatalogChanged,
			bus.Subscriber(),
			r.handleRetrainSignal(debouncer),
		)
	}

	if hub != nil {
		wmRouter.AddConsumerHandler(
			"ws-catalog-bridge",
			TopicCatalogChanged,
			bus.Subscriber(),
			r.handleCatalogBridge(hub),
		)
		wmRouter.AddConsumerHandler(
			"ws-model-bridge",
			TopicModelTrained,
			bus.Subscriber(),
			r.handleModelBridge(hub),
		)
	}

	return r, nil
}

// handleRetrainSignal marks the model stale on every catalog change.
// Malformed payloads are dropped rather than retried; redelivery cannot
// fix a bad payload.
func (r *Router) handleRetrainSignal(debouncer *RetrainDebouncer) message.NoPublishHandlerFunc {
	return func(msg *message.Message) error {
		change, err := DecodeCatalogChanged(msg)
		if err != nil {
			r.logger.Warn().Err(err).Str("message_id", msg.UUID).Msg("dropping malformed catalog.changed")
			metrics.RecordEventProcessed(TopicCatalogChanged, err)
			return nil
		}

		debouncer.Notify()
		metrics.RecordEventProcessed(TopicCatalogChanged, nil)

		r.logger.Debug().
			Str("action", change.Action).
			Int64("book_id", change.BookID).
			Msg("catalog change queued for retrain")
		return nil
	}
}

// handleCatalogBridge forwards catalog changes to WebSocket clients.
func (r *Router) handleCatalogBridge(hub Broadcaster) message.NoPublishHandlerFunc {
	return func(msg *message.Message) error {
		change, err := DecodeCatalogChanged(msg)
		if err != nil {
			r.logger.Warn().Err(err).Str("message_id", msg.UUID).Msg("dropping malformed catalog.changed")
			metrics.RecordEventProcessed(TopicCatalogChanged, err)
			return nil
		}

		hub.BroadcastJSON(MessageTypeCatalogChanged, change)
		metrics.RecordEventProcessed(TopicCatalogChanged, nil)
		return nil
	}
}

// handleModelBridge forwards training completions to WebSocket clients.
func (r *Router) handleModelBridge(hub Broadcaster) message.NoPublishHandlerFunc {
	return func(msg *message.Message) error {
		trained, err := DecodeModelTrained(msg)
		if err != nil {
			r.logger.Warn().Err(err).Str("message_id", msg.UUID).Msg("dropping malformed model.trained")
			metrics.RecordEventProcessed(TopicModelTrained, err)
			return nil
		}

		hub.BroadcastJSON(MessageTypeModelTrained, trained)
		metrics.RecordEventProcessed(TopicModelTrained, nil)
		return nil
	}
}

// Serve runs the router until the context is canceled. It implements
// suture.Service.
func (r *Router) Serve(ctx context.Context) error {
	r.logger.Info().Msg("event router starting")
	err := r.router.Run(ctx)
	r.logger.Info().Msg("event router stopped")
	return err
}

// Running returns a channel that closes once all handlers are consuming.
func (r *Router) Running() <-chan struct{} {
	return r.router.Running()
}

// Close stops the router outside of supervision, waiting up to the close
// timeout for in-flight handlers.
func (r *Router) Close() error {
	return r.router.Close()
}

// String names the service in supervisor logs.
func (r *Router) String() string {
	return "event-router"
}
