package entity

import (
	"time"

	"github.com/google/uuid"
)

// Restaurant is a dining establishment, one-to-one with an Address.
// It is keyed by its address, not its name: re-resolving the same address
// overwrites name and food types instead of creating a duplicate.
type Restaurant struct {
	ID        uuid.UUID // The Global Unique Identifier (GUID) for the restaurant.
	Name      string    // Display name as submitted with the receipt draft.
	FoodTypes []string  // Resolver-supplied taxonomy tags, e.g. "italian_restaurant".
	AddressID uuid.UUID // The address this restaurant occupies. Unique.
	Address   *Address  // Loaded address record, nil when not preloaded.
	CreatedAt time.Time
	UpdatedAt time.Time
}
