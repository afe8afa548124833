// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is the principal that owns receipts. It carries only identity
// information; everything else in the system hangs off the receipts table.
type User struct {
	ID           uuid.UUID // The Global Unique Identifier (GUID) for the user.
	Username     string    // Unique login name.
	Email        string    // The user's contact email, also usable as a login identifier.
	PasswordHash string    // Bcrypt hash of the user's password. Never serialized outward.
	CreatedAt    time.Time // Timestamp of when this account was created.
	UpdatedAt    time.Time // Timestamp of the last modification.
}
