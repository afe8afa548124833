// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"

	"lunchlog/internal/domain/entity"
	"lunchlog/internal/errors"

	"github.com/google/uuid"
)

// ErrReceiptNotFound is returned when a receipt does not exist or is not
// visible to the requesting owner. The two cases are deliberately
// indistinguishable.
var ErrReceiptNotFound = errors.New("receipt not found")

// ReceiptFilter narrows a receipt listing. Year is always applied; Month
// only when non-nil.
type ReceiptFilter struct {
	Month *int // 1..12
	Year  int
}

// ReceiptRepository defines receipt-related database operations. Every read
// and delete is scoped to the owning user; only the enrichment pipeline
// touches receipts without an owner scope.
type ReceiptRepository interface {
	// Create persists a new receipt. The restaurant link is always nil at
	// creation time.
	Create(ctx context.Context, receipt *entity.Receipt) error

	// FindByIDForOwner retrieves one receipt scoped to its owner, preloading
	// the restaurant and its address. Returns ErrReceiptNotFound when the id
	// is absent or owned by someone else.
	FindByIDForOwner(ctx context.Context, ownerID, id uuid.UUID) (*entity.Receipt, error)

	// UpdateByIDForOwner persists the receipt's price, currency, and date,
	// scoped to its owner. Returns ErrReceiptNotFound when the id is absent
	// or owned by someone else.
	UpdateByIDForOwner(ctx context.Context, ownerID uuid.UUID, receipt *entity.Receipt) error

	// ListByOwner returns the owner's receipts matching the filter, ordered
	// by insertion. A fresh query each call.
	ListByOwner(ctx context.Context, ownerID uuid.UUID, filter ReceiptFilter) ([]*entity.Receipt, error)

	// DeleteByIDForOwner removes one receipt scoped to its owner. Returns
	// ErrReceiptNotFound when nothing was deleted.
	DeleteByIDForOwner(ctx context.Context, ownerID, id uuid.UUID) error

	// ExistsByID reports whether a receipt row exists, regardless of owner.
	// Used by the enrichment pipeline before creating shared rows.
	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)

	// AttachRestaurant links a restaurant to a receipt. Idempotent: setting
	// the same restaurant twice is a no-op. Returns ErrReceiptNotFound when
	// the receipt vanished.
	AttachRestaurant(ctx context.Context, receiptID, restaurantID uuid.UUID) error

	// UpdateImageKey stores the blob key of the receipt's image.
	UpdateImageKey(ctx context.Context, receiptID uuid.UUID, imageKey string) error
}
