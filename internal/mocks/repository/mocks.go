// Package repository contains hand-rolled testify mocks for the
// persistence interfaces.
package repository

import (
	"context"

	"lunchlog/internal/domain/entity"
	"lunchlog/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// ReceiptRepository is a mock of repository.ReceiptRepository.
type ReceiptRepository struct {
	mock.Mock
}

func (m *ReceiptRepository) Create(ctx context.Context, receipt *entity.Receipt) error {
	args := m.Called(ctx, receipt)

	return args.Error(0)
}

func (m *ReceiptRepository) FindByIDForOwner(ctx context.Context, ownerID, id uuid.UUID) (*entity.Receipt, error) {
	args := m.Called(ctx, ownerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Receipt), args.Error(1)
}

func (m *ReceiptRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID, filter repository.ReceiptFilter) ([]*entity.Receipt, error) {
	args := m.Called(ctx, ownerID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.Receipt), args.Error(1)
}

func (m *ReceiptRepository) UpdateByIDForOwner(ctx context.Context, ownerID uuid.UUID, receipt *entity.Receipt) error {
	args := m.Called(ctx, ownerID, receipt)

	return args.Error(0)
}

func (m *ReceiptRepository) DeleteByIDForOwner(ctx context.Context, ownerID, id uuid.UUID) error {
	args := m.Called(ctx, ownerID, id)

	return args.Error(0)
}

func (m *ReceiptRepository) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)

	return args.Bool(0), args.Error(1)
}

func (m *ReceiptRepository) AttachRestaurant(ctx context.Context, receiptID, restaurantID uuid.UUID) error {
	args := m.Called(ctx, receiptID, restaurantID)

	return args.Error(0)
}

func (m *ReceiptRepository) UpdateImageKey(ctx context.Context, receiptID uuid.UUID, imageKey string) error {
	args := m.Called(ctx, receiptID, imageKey)

	return args.Error(0)
}

// AddressRepository is a mock of repository.AddressRepository.
type AddressRepository struct {
	mock.Mock
}

func (m *AddressRepository) Upsert(ctx context.Context, googlePlaceID string, fields repository.AddressFields) (*entity.Address, error) {
	args := m.Called(ctx, googlePlaceID, fields)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Address), args.Error(1)
}

// RestaurantRepository is a mock of repository.RestaurantRepository.
type RestaurantRepository struct {
	mock.Mock
}

func (m *RestaurantRepository) Upsert(ctx context.Context, addressID uuid.UUID, name string, foodTypes []string) (*entity.Restaurant, error) {
	args := m.Called(ctx, addressID, name, foodTypes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Restaurant), args.Error(1)
}

// UserRepository is a mock of repository.UserRepository.
type UserRepository struct {
	mock.Mock
}

func (m *UserRepository) Create(ctx context.Context, user *entity.User) error {
	args := m.Called(ctx, user)

	return args.Error(0)
}

func (m *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *UserRepository) FindByLogin(ctx context.Context, login string) (*entity.User, error) {
	args := m.Called(ctx, login)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.User), args.Error(1)
}

// RepositoryFactory is a mock of repository.RepositoryFactory handing out
// the mocks it was built with.
type RepositoryFactory struct {
	Receipts    *ReceiptRepository
	Addresses   *AddressRepository
	Restaurants *RestaurantRepository
}

func (f *RepositoryFactory) NewReceiptRepository() repository.ReceiptRepository {
	return f.Receipts
}

func (f *RepositoryFactory) NewAddressRepository() repository.AddressRepository {
	return f.Addresses
}

func (f *RepositoryFactory) NewRestaurantRepository() repository.RestaurantRepository {
	return f.Restaurants
}

// TransactionManager is a mock of repository.TransactionManager. Execute
// runs the callback against the configured factory, without any real
// transaction semantics.
type TransactionManager struct {
	mock.Mock

	Factory *RepositoryFactory
}

func (m *TransactionManager) Execute(ctx context.Context, fn func(txRepoFactory repository.RepositoryFactory) error) error {
	args := m.Called(ctx, fn)
	if args.Error(0) != nil {
		return args.Error(0)
	}

	return fn(m.Factory)
}
