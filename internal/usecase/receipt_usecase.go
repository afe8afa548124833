// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"
	"time"

	"lunchlog/internal/domain/entity"
	"lunchlog/internal/domain/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// --- Input DTOs ---

// CreateReceiptInput defines the data required to create a receipt.
// Restaurant is optional; when present it is handed to the enrichment
// pipeline, never stored verbatim on the receipt.
type CreateReceiptInput struct {
	Price      decimal.Decimal
	Currency   string
	Date       time.Time
	Restaurant *service.RestaurantDraft
}

// UpdateReceiptInput carries the full replacement state of a receipt.
// Restaurant is optional and, when present, re-dispatches enrichment the
// same way creation does.
type UpdateReceiptInput struct {
	Price      decimal.Decimal
	Currency   string
	Date       time.Time
	Restaurant *service.RestaurantDraft
}

// ListReceiptsInput narrows a receipt listing. Year defaults to the current
// calendar year when nil; Month is applied only when set.
type ListReceiptsInput struct {
	Month *int
	Year  *int
}

// UploadImageInput carries one receipt image upload.
type UploadImageInput struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ReceiptUsecase defines the interface for receipt management use cases.
// Every operation is scoped to the authenticated owner.
type ReceiptUsecase interface {
	CreateReceipt(ctx context.Context, ownerID uuid.UUID, input *CreateReceiptInput) (*entity.Receipt, error)
	UpdateReceipt(ctx context.Context, ownerID, receiptID uuid.UUID, input *UpdateReceiptInput) (*entity.Receipt, error)
	ListReceipts(ctx context.Context, ownerID uuid.UUID, input *ListReceiptsInput) ([]*entity.Receipt, error)
	GetReceipt(ctx context.Context, ownerID, receiptID uuid.UUID) (*entity.Receipt, error)
	DeleteReceipt(ctx context.Context, ownerID, receiptID uuid.UUID) error
	UploadReceiptImage(ctx context.Context, ownerID, receiptID uuid.UUID, input *UploadImageInput) (*entity.Receipt, error)
}
