// Package usecase contains hand-rolled testify mocks for the usecase
// interfaces, used by delivery-layer tests.
package usecase

import (
	"context"

	"lunchlog/internal/domain/entity"
	"lunchlog/internal/domain/service"
	"lunchlog/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// ReceiptUsecase is a mock of usecase.ReceiptUsecase.
type ReceiptUsecase struct {
	mock.Mock
}

func (m *ReceiptUsecase) CreateReceipt(ctx context.Context, ownerID uuid.UUID, input *usecase.CreateReceiptInput) (*entity.Receipt, error) {
	args := m.Called(ctx, ownerID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Receipt), args.Error(1)
}

func (m *ReceiptUsecase) UpdateReceipt(ctx context.Context, ownerID, receiptID uuid.UUID, input *usecase.UpdateReceiptInput) (*entity.Receipt, error) {
	args := m.Called(ctx, ownerID, receiptID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Receipt), args.Error(1)
}

func (m *ReceiptUsecase) ListReceipts(ctx context.Context, ownerID uuid.UUID, input *usecase.ListReceiptsInput) ([]*entity.Receipt, error) {
	args := m.Called(ctx, ownerID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.Receipt), args.Error(1)
}

func (m *ReceiptUsecase) GetReceipt(ctx context.Context, ownerID, receiptID uuid.UUID) (*entity.Receipt, error) {
	args := m.Called(ctx, ownerID, receiptID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Receipt), args.Error(1)
}

func (m *ReceiptUsecase) DeleteReceipt(ctx context.Context, ownerID, receiptID uuid.UUID) error {
	args := m.Called(ctx, ownerID, receiptID)

	return args.Error(0)
}

func (m *ReceiptUsecase) UploadReceiptImage(ctx context.Context, ownerID, receiptID uuid.UUID, input *usecase.UploadImageInput) (*entity.Receipt, error) {
	args := m.Called(ctx, ownerID, receiptID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Receipt), args.Error(1)
}

// UserUsecase is a mock of usecase.UserUsecase.
type UserUsecase struct {
	mock.Mock
}

func (m *UserUsecase) Register(ctx context.Context, input usecase.RegisterUserInput) (*usecase.AuthOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*usecase.AuthOutput), args.Error(1)
}

func (m *UserUsecase) Login(ctx context.Context, input usecase.LoginInput) (*usecase.AuthOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*usecase.AuthOutput), args.Error(1)
}

// EnrichmentUsecase is a mock of usecase.EnrichmentUsecase.
type EnrichmentUsecase struct {
	mock.Mock
}

func (m *EnrichmentUsecase) Enrich(ctx context.Context, event *service.EnrichmentEvent) error {
	args := m.Called(ctx, event)

	return args.Error(0)
}
