package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Receipt is one spending event owned by exactly one user.
//
// The restaurant link is eventually consistent: a receipt is visible to its
// owner immediately after creation and only gains a restaurant once the
// asynchronous enrichment pipeline resolves the submitted draft. A receipt
// whose draft could not be resolved stays without a restaurant forever.
type Receipt struct {
	ID           uuid.UUID       // The Global Unique Identifier (GUID) for the receipt.
	Price        decimal.Decimal // Amount spent, two decimal places.
	Currency     string          // ISO currency code, defaults to "EUR".
	Date         time.Time       // Calendar date of the spending, no time component.
	ImageKey     string          // Blob store key of the receipt image. Empty when no image.
	UserID       uuid.UUID       // Owning user. Receipts are cascade-deleted with their user.
	RestaurantID *uuid.UUID      // Nil until enrichment succeeds.
	Restaurant   *Restaurant     // Loaded restaurant record, nil when unresolved or not preloaded.
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// DefaultCurrency is applied when a receipt is created without one.
const DefaultCurrency = "EUR"
