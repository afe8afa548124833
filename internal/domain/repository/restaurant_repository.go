package repository

import (
	"context"

	"lunchlog/internal/domain/entity"

	"github.com/google/uuid"
)

// RestaurantRepository maintains the restaurant records shared by receipts,
// one per address.
type RestaurantRepository interface {
	// Upsert atomically inserts or updates the restaurant keyed strictly on
	// its address. Same last-write-wins semantics as the address upsert.
	// The address row must already exist within the same transaction.
	Upsert(ctx context.Context, addressID uuid.UUID, name string, foodTypes []string) (*entity.Restaurant, error)
}
