package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"lunchlog/internal/domain/entity"
	"lunchlog/internal/domain/repository"
	"lunchlog/internal/domain/service"
	mockrepo "lunchlog/internal/mocks/repository"
	mocksvc "lunchlog/internal/mocks/service"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type enrichmentFixture struct {
	resolver    *mocksvc.PlaceResolver
	receipts    *mockrepo.ReceiptRepository
	addresses   *mockrepo.AddressRepository
	restaurants *mockrepo.RestaurantRepository
	txManager   *mockrepo.TransactionManager
}

func newEnrichmentFixture() *enrichmentFixture {
	receipts := new(mockrepo.ReceiptRepository)
	addresses := new(mockrepo.AddressRepository)
	restaurants := new(mockrepo.RestaurantRepository)

	return &enrichmentFixture{
		resolver:    new(mocksvc.PlaceResolver),
		receipts:    receipts,
		addresses:   addresses,
		restaurants: restaurants,
		txManager: &mockrepo.TransactionManager{
			Factory: &mockrepo.RepositoryFactory{
				Receipts:    receipts,
				Addresses:   addresses,
				Restaurants: restaurants,
			},
		},
	}
}

func testEvent(receiptID uuid.UUID) *service.EnrichmentEvent {
	return &service.EnrichmentEvent{
		ReceiptID: receiptID.String(),
		Draft: service.RestaurantDraft{
			Name: "Trattoria Bella",
			Address: service.AddressDraft{
				Street:     "Hauptstrasse 1",
				Locality:   "Berlin",
				PostalCode: "10115",
				RegionCode: "DE",
			},
		},
	}
}

func testResolvedPlace() *service.ResolvedPlace {
	return &service.ResolvedPlace{
		ExternalID:  "ChIJtest123",
		Street:      "Hauptstrasse 1",
		Locality:    "Berlin",
		PostalCode:  "10115",
		RegionCode:  "DE",
		PhoneNumber: "+49 30 1234567",
		TypeTags:    []string{"italian_restaurant", "restaurant"},
	}
}

func TestEnrichmentService_Enrich_AttachesRestaurant(t *testing.T) {
	f := newEnrichmentFixture()
	receiptID := uuid.New()
	event := testEvent(receiptID)
	resolved := testResolvedPlace()

	address := &entity.Address{ID: uuid.New(), GooglePlaceID: resolved.ExternalID}
	restaurant := &entity.Restaurant{ID: uuid.New(), AddressID: address.ID}

	f.resolver.On("Resolve", mock.Anything, "Trattoria Bella", event.Draft.Address).Return(resolved, nil)
	f.txManager.On("Execute", mock.Anything, mock.Anything).Return(nil)
	f.receipts.On("ExistsByID", mock.Anything, receiptID).Return(true, nil)
	f.addresses.On("Upsert", mock.Anything, "ChIJtest123", repository.AddressFields{
		Street:      "Hauptstrasse 1",
		Locality:    "Berlin",
		PostalCode:  "10115",
		RegionCode:  "DE",
		PhoneNumber: "+49 30 1234567",
	}).Return(address, nil)
	f.restaurants.On("Upsert", mock.Anything, address.ID, "Trattoria Bella", resolved.TypeTags).Return(restaurant, nil)
	f.receipts.On("AttachRestaurant", mock.Anything, receiptID, restaurant.ID).Return(nil)

	svc := NewEnrichmentService(f.resolver, f.txManager, discardLogger())
	err := svc.Enrich(context.Background(), event)

	require.NoError(t, err)
	f.receipts.AssertExpectations(t)
	f.addresses.AssertExpectations(t)
	f.restaurants.AssertExpectations(t)
}

func TestEnrichmentService_Enrich_NoMatchIsTerminal(t *testing.T) {
	f := newEnrichmentFixture()
	event := testEvent(uuid.New())

	f.resolver.On("Resolve", mock.Anything, mock.Anything, mock.Anything).Return(nil, service.ErrNoMatch)

	svc := NewEnrichmentService(f.resolver, f.txManager, discardLogger())
	err := svc.Enrich(context.Background(), event)

	// Terminal outcome, the event is settled and never redelivered.
	assert.NoError(t, err)
	f.txManager.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
}

func TestEnrichmentService_Enrich_TransportFailureIsTerminal(t *testing.T) {
	f := newEnrichmentFixture()
	event := testEvent(uuid.New())

	f.resolver.On("Resolve", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, &service.TransportError{Err: errors.New("dial tcp: timeout")})

	svc := NewEnrichmentService(f.resolver, f.txManager, discardLogger())
	err := svc.Enrich(context.Background(), event)

	assert.NoError(t, err)
	f.txManager.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
}

func TestEnrichmentService_Enrich_InvalidReceiptIDIsSettled(t *testing.T) {
	f := newEnrichmentFixture()
	event := testEvent(uuid.New())
	event.ReceiptID = "not-a-uuid"

	svc := NewEnrichmentService(f.resolver, f.txManager, discardLogger())
	err := svc.Enrich(context.Background(), event)

	assert.NoError(t, err)
	f.resolver.AssertNotCalled(t, "Resolve", mock.Anything, mock.Anything, mock.Anything)
}

func TestEnrichmentService_Enrich_VanishedReceiptLeavesNoRows(t *testing.T) {
	f := newEnrichmentFixture()
	receiptID := uuid.New()
	event := testEvent(receiptID)

	f.resolver.On("Resolve", mock.Anything, mock.Anything, mock.Anything).Return(testResolvedPlace(), nil)
	f.txManager.On("Execute", mock.Anything, mock.Anything).Return(nil)
	f.receipts.On("ExistsByID", mock.Anything, receiptID).Return(false, nil)

	svc := NewEnrichmentService(f.resolver, f.txManager, discardLogger())
	err := svc.Enrich(context.Background(), event)

	require.NoError(t, err)
	f.addresses.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything, mock.Anything)
	f.restaurants.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestEnrichmentService_Enrich_ReceiptDeletedMidTransaction(t *testing.T) {
	f := newEnrichmentFixture()
	receiptID := uuid.New()
	event := testEvent(receiptID)
	resolved := testResolvedPlace()

	address := &entity.Address{ID: uuid.New()}
	restaurant := &entity.Restaurant{ID: uuid.New(), AddressID: address.ID}

	f.resolver.On("Resolve", mock.Anything, mock.Anything, mock.Anything).Return(resolved, nil)
	f.txManager.On("Execute", mock.Anything, mock.Anything).Return(nil)
	f.receipts.On("ExistsByID", mock.Anything, receiptID).Return(true, nil)
	f.addresses.On("Upsert", mock.Anything, mock.Anything, mock.Anything).Return(address, nil)
	f.restaurants.On("Upsert", mock.Anything, address.ID, mock.Anything, mock.Anything).Return(restaurant, nil)
	f.receipts.On("AttachRestaurant", mock.Anything, receiptID, restaurant.ID).Return(repository.ErrReceiptNotFound)

	svc := NewEnrichmentService(f.resolver, f.txManager, discardLogger())
	err := svc.Enrich(context.Background(), event)

	// The transaction rolled back; nothing to retry.
	assert.NoError(t, err)
}

func TestEnrichmentService_Enrich_InfraFailureIsRetried(t *testing.T) {
	f := newEnrichmentFixture()
	receiptID := uuid.New()
	event := testEvent(receiptID)

	f.resolver.On("Resolve", mock.Anything, mock.Anything, mock.Anything).Return(testResolvedPlace(), nil)
	f.txManager.On("Execute", mock.Anything, mock.Anything).Return(nil)
	f.receipts.On("ExistsByID", mock.Anything, receiptID).Return(false, errors.New("connection reset"))

	svc := NewEnrichmentService(f.resolver, f.txManager, discardLogger())
	err := svc.Enrich(context.Background(), event)

	// Database failures surface so the queue redelivers.
	assert.Error(t, err)
}
