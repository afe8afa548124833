package model

import (
	"time"

	"github.com/google/uuid"
)

// AddressModel is the GORM-specific struct for the 'addresses' table.
// The unique index on google_place_id is the upsert conflict target and
// the sole dedup mechanism for concurrent enrichment runs.
type AddressModel struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key"`
	GooglePlaceID string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	Street        string    `gorm:"type:varchar(255);not null"`
	Locality      string    `gorm:"type:varchar(100)"`
	PostalCode    string    `gorm:"type:varchar(20)"`
	RegionCode    string    `gorm:"type:varchar(100);not null"`
	PhoneNumber   string    `gorm:"type:varchar(30)"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TableName explicitly sets the table name for GORM.
func (AddressModel) TableName() string {
	return "addresses"
}
