package repository

import (
	"context"

	"lunchlog/internal/domain/entity"
)

// AddressFields is the mutable field set of an address, overwritten wholesale
// by each upsert with the latest resolver output.
type AddressFields struct {
	Street      string
	Locality    string
	PostalCode  string
	RegionCode  string
	PhoneNumber string
}

// AddressRepository maintains the deduplicated address records shared by
// receipts.
type AddressRepository interface {
	// Upsert atomically inserts or updates the address keyed strictly on the
	// external place id. On conflict all mutable fields are overwritten,
	// last write wins. Safe under concurrent invocation for the same id: the
	// database unique constraint is the correctness mechanism, never a
	// read-then-write check.
	Upsert(ctx context.Context, googlePlaceID string, fields AddressFields) (*entity.Address, error)
}
