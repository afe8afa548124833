package service

import (
	"context"
)

// EnrichmentEvent is the task-queue message that triggers restaurant
// enrichment for one receipt. Delivery is at-least-once; the consumer is
// idempotent under redelivery.
type EnrichmentEvent struct {
	RequestID string          `json:"request_id,omitempty"` // For distributed tracing
	ReceiptID string          `json:"receipt_id"`
	Draft     RestaurantDraft `json:"restaurant_draft"`
}

// EventPublisher defines the interface for publishing events to a message queue.
type EventPublisher interface {
	// PublishEnrichmentEvent publishes an enrichment event for async processing.
	PublishEnrichmentEvent(ctx context.Context, event *EnrichmentEvent) error

	// Close releases any resources held by the publisher.
	Close() error
}
