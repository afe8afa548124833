package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ReceiptModel is the GORM-specific struct for the 'receipts' table.
//
// The restaurant reference is SET NULL on restaurant deletion: removing a
// shared restaurant record must never destroy user receipts.
type ReceiptModel struct {
	ID           uuid.UUID       `gorm:"type:uuid;primary_key"`
	Price        decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Currency     string          `gorm:"type:varchar(10);not null;default:'EUR'"`
	Date         time.Time       `gorm:"type:date;not null;index"`
	ImageKey     string          `gorm:"type:varchar(512)"`
	UserID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	RestaurantID *uuid.UUID      `gorm:"type:uuid;index"`
	Restaurant   *RestaurantModel `gorm:"foreignKey:RestaurantID;constraint:OnDelete:SET NULL"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName explicitly sets the table name for GORM.
func (ReceiptModel) TableName() string {
	return "receipts"
}
