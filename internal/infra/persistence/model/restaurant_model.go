package model

import (
	"time"

	"github.com/google/uuid"
)

// RestaurantModel is the GORM-specific struct for the 'restaurants' table.
// One restaurant per address: address_id carries the unique index that the
// upsert conflicts on.
type RestaurantModel struct {
	ID        uuid.UUID     `gorm:"type:uuid;primary_key"`
	Name      string        `gorm:"type:varchar(255);not null"`
	FoodTypes []string      `gorm:"type:jsonb;serializer:json"`
	AddressID uuid.UUID     `gorm:"type:uuid;uniqueIndex;not null"`
	Address   *AddressModel `gorm:"foreignKey:AddressID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (RestaurantModel) TableName() string {
	return "restaurants"
}
