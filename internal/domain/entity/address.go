package entity

import (
	"time"

	"github.com/google/uuid"
)

// Address is a physical location shared by receipts, deduplicated by the
// external place identifier returned by the places resolver. There is at
// most one Address row per real-world place as known to the resolver.
type Address struct {
	ID            uuid.UUID // The Global Unique Identifier (GUID) for the address.
	GooglePlaceID string    // External source-of-truth identifier. Unique.
	Street        string    // First address line as reported by the resolver.
	Locality      string    // City or town.
	PostalCode    string    // Postal code.
	RegionCode    string    // CLDR region code, e.g. "DE".
	PhoneNumber   string    // International phone number. May be empty.
	CreatedAt     time.Time // Timestamp of when this address was first resolved.
	UpdatedAt     time.Time // Timestamp of the last resolver overwrite.
}
