package impl

import (
	"context"
	"fmt"
	"testing"
	"time"

	"lunchlog/config"
	"lunchlog/internal/domain/entity"
	domainerrors "lunchlog/internal/domain/errors"
	"lunchlog/internal/domain/repository"
	"lunchlog/internal/domain/service"
	mockrepo "lunchlog/internal/mocks/repository"
	mocksvc "lunchlog/internal/mocks/service"
	"lunchlog/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func testStorageConfig() *config.Config {
	return &config.Config{
		Storage: &config.StorageConfig{
			KeyPrefix:    "lunchlog",
			MaxImageSize: 1 << 20,
		},
	}
}

func TestReceiptService_CreateReceipt_DefaultsCurrency(t *testing.T) {
	receiptRepo := new(mockrepo.ReceiptRepository)
	publisher := new(mocksvc.EventPublisher)
	ownerID := uuid.New()

	var created *entity.Receipt
	receiptRepo.On("Create", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		created = args.Get(1).(*entity.Receipt)
	}).Return(nil)

	svc := NewReceiptService(receiptRepo, publisher, new(mocksvc.BlobStore), testStorageConfig(), discardLogger())

	receipt, err := svc.CreateReceipt(context.Background(), ownerID, &usecase.CreateReceiptInput{
		Price: decimal.RequireFromString("12.345"),
		Date:  time.Date(2026, 8, 14, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	assert.Equal(t, "EUR", receipt.Currency)
	assert.Equal(t, "12.35", receipt.Price.StringFixed(2))
	assert.Equal(t, ownerID, receipt.UserID)
	assert.Nil(t, receipt.RestaurantID)
	require.NotNil(t, created)
	assert.Equal(t, receipt.ID, created.ID)

	// No draft, no enrichment event.
	publisher.AssertNotCalled(t, "PublishEnrichmentEvent", mock.Anything, mock.Anything)
}

func TestReceiptService_CreateReceipt_DispatchesEnrichment(t *testing.T) {
	receiptRepo := new(mockrepo.ReceiptRepository)
	publisher := new(mocksvc.EventPublisher)
	ownerID := uuid.New()

	receiptRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	published := make(chan *service.EnrichmentEvent, 1)
	publisher.On("PublishEnrichmentEvent", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		published <- args.Get(1).(*service.EnrichmentEvent)
	}).Return(nil)

	svc := NewReceiptService(receiptRepo, publisher, new(mocksvc.BlobStore), testStorageConfig(), discardLogger())

	draft := &service.RestaurantDraft{
		Name: "Trattoria Bella",
		Address: service.AddressDraft{
			Street:     "Hauptstrasse 1",
			Locality:   "Berlin",
			PostalCode: "10115",
			RegionCode: "DE",
		},
	}
	receipt, err := svc.CreateReceipt(context.Background(), ownerID, &usecase.CreateReceiptInput{
		Price:      decimal.RequireFromString("9.90"),
		Currency:   "USD",
		Date:       time.Date(2026, 8, 14, 0, 0, 0, 0, time.UTC),
		Restaurant: draft,
	})
	require.NoError(t, err)
	assert.Equal(t, "USD", receipt.Currency)

	select {
	case event := <-published:
		assert.Equal(t, receipt.ID.String(), event.ReceiptID)
		assert.Equal(t, *draft, event.Draft)
	case <-time.After(time.Second):
		t.Fatal("enrichment event was never published")
	}
}

func TestReceiptService_UpdateReceipt_ReplacesFields(t *testing.T) {
	receiptRepo := new(mockrepo.ReceiptRepository)
	publisher := new(mocksvc.EventPublisher)
	ownerID := uuid.New()
	receiptID := uuid.New()

	receiptRepo.On("FindByIDForOwner", mock.Anything, ownerID, receiptID).Return(&entity.Receipt{
		ID:       receiptID,
		Price:    decimal.RequireFromString("12.50"),
		Currency: "EUR",
		Date:     time.Date(2026, 8, 14, 0, 0, 0, 0, time.UTC),
		UserID:   ownerID,
	}, nil)
	receiptRepo.On("UpdateByIDForOwner", mock.Anything, ownerID, mock.MatchedBy(func(receipt *entity.Receipt) bool {
		return receipt.ID == receiptID &&
			receipt.Price.Equal(decimal.RequireFromString("20.01")) &&
			receipt.Currency == "EUR" &&
			receipt.Date.Equal(time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC))
	})).Return(nil)

	svc := NewReceiptService(receiptRepo, publisher, new(mocksvc.BlobStore), testStorageConfig(), discardLogger())

	// Omitted currency falls back to the default, price is rounded, same
	// as creation.
	receipt, err := svc.UpdateReceipt(context.Background(), ownerID, receiptID, &usecase.UpdateReceiptInput{
		Price: decimal.RequireFromString("20.009"),
		Date:  time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	assert.Equal(t, "20.01", receipt.Price.StringFixed(2))
	assert.Equal(t, "EUR", receipt.Currency)
	receiptRepo.AssertExpectations(t)
	publisher.AssertNotCalled(t, "PublishEnrichmentEvent", mock.Anything, mock.Anything)
}

func TestReceiptService_UpdateReceipt_RedispatchesEnrichment(t *testing.T) {
	receiptRepo := new(mockrepo.ReceiptRepository)
	publisher := new(mocksvc.EventPublisher)
	ownerID := uuid.New()
	receiptID := uuid.New()

	receiptRepo.On("FindByIDForOwner", mock.Anything, ownerID, receiptID).Return(&entity.Receipt{
		ID:     receiptID,
		Price:  decimal.RequireFromString("9.90"),
		Date:   time.Date(2026, 8, 14, 0, 0, 0, 0, time.UTC),
		UserID: ownerID,
	}, nil)
	receiptRepo.On("UpdateByIDForOwner", mock.Anything, ownerID, mock.Anything).Return(nil)

	published := make(chan *service.EnrichmentEvent, 1)
	publisher.On("PublishEnrichmentEvent", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		published <- args.Get(1).(*service.EnrichmentEvent)
	}).Return(nil)

	svc := NewReceiptService(receiptRepo, publisher, new(mocksvc.BlobStore), testStorageConfig(), discardLogger())

	draft := &service.RestaurantDraft{
		Name: "Trattoria Bella",
		Address: service.AddressDraft{
			Street:     "Hauptstrasse 1",
			Locality:   "Berlin",
			PostalCode: "10115",
			RegionCode: "DE",
		},
	}
	_, err := svc.UpdateReceipt(context.Background(), ownerID, receiptID, &usecase.UpdateReceiptInput{
		Price:      decimal.RequireFromString("9.90"),
		Currency:   "EUR",
		Date:       time.Date(2026, 8, 14, 0, 0, 0, 0, time.UTC),
		Restaurant: draft,
	})
	require.NoError(t, err)

	select {
	case event := <-published:
		assert.Equal(t, receiptID.String(), event.ReceiptID)
		assert.Equal(t, *draft, event.Draft)
	case <-time.After(time.Second):
		t.Fatal("enrichment event was never published")
	}
}

func TestReceiptService_UpdateReceipt_NotFound(t *testing.T) {
	receiptRepo := new(mockrepo.ReceiptRepository)
	ownerID := uuid.New()
	receiptID := uuid.New()

	receiptRepo.On("FindByIDForOwner", mock.Anything, ownerID, receiptID).Return(nil, repository.ErrReceiptNotFound)

	svc := NewReceiptService(receiptRepo, new(mocksvc.EventPublisher), new(mocksvc.BlobStore), testStorageConfig(), discardLogger())

	_, err := svc.UpdateReceipt(context.Background(), ownerID, receiptID, &usecase.UpdateReceiptInput{
		Price: decimal.RequireFromString("5.00"),
		Date:  time.Now(),
	})
	require.ErrorIs(t, err, domainerrors.ErrReceiptNotFound)
	receiptRepo.AssertNotCalled(t, "UpdateByIDForOwner", mock.Anything, mock.Anything, mock.Anything)
}

func TestReceiptService_CreateReceipt_PublishFailureDoesNotFailCreation(t *testing.T) {
	receiptRepo := new(mockrepo.ReceiptRepository)
	publisher := new(mocksvc.EventPublisher)

	receiptRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	published := make(chan struct{})
	publisher.On("PublishEnrichmentEvent", mock.Anything, mock.Anything).Run(func(mock.Arguments) {
		close(published)
	}).Return(errors.New("broker unavailable"))

	svc := NewReceiptService(receiptRepo, publisher, new(mocksvc.BlobStore), testStorageConfig(), discardLogger())

	_, err := svc.CreateReceipt(context.Background(), uuid.New(), &usecase.CreateReceiptInput{
		Price: decimal.RequireFromString("5.00"),
		Date:  time.Now(),
		Restaurant: &service.RestaurantDraft{
			Name: "Trattoria Bella",
		},
	})
	require.NoError(t, err)

	select {
	case <-published:
	case <-time.After(time.Second):
		t.Fatal("publish was never attempted")
	}
}

func TestReceiptService_ListReceipts_DefaultsToCurrentYear(t *testing.T) {
	receiptRepo := new(mockrepo.ReceiptRepository)
	ownerID := uuid.New()

	receiptRepo.On("ListByOwner", mock.Anything, ownerID, repository.ReceiptFilter{
		Year: time.Now().Year(),
	}).Return([]*entity.Receipt{}, nil)

	svc := NewReceiptService(receiptRepo, new(mocksvc.EventPublisher), new(mocksvc.BlobStore), testStorageConfig(), discardLogger())

	_, err := svc.ListReceipts(context.Background(), ownerID, &usecase.ListReceiptsInput{})
	require.NoError(t, err)
	receiptRepo.AssertExpectations(t)
}

func TestReceiptService_ListReceipts_AppliesMonthAndYear(t *testing.T) {
	receiptRepo := new(mockrepo.ReceiptRepository)
	ownerID := uuid.New()
	month := 3
	year := 2025

	receiptRepo.On("ListByOwner", mock.Anything, ownerID, repository.ReceiptFilter{
		Month: &month,
		Year:  year,
	}).Return([]*entity.Receipt{}, nil)

	svc := NewReceiptService(receiptRepo, new(mocksvc.EventPublisher), new(mocksvc.BlobStore), testStorageConfig(), discardLogger())

	_, err := svc.ListReceipts(context.Background(), ownerID, &usecase.ListReceiptsInput{
		Month: &month,
		Year:  &year,
	})
	require.NoError(t, err)
	receiptRepo.AssertExpectations(t)
}

func TestReceiptService_GetReceipt_MapsNotFound(t *testing.T) {
	receiptRepo := new(mockrepo.ReceiptRepository)
	ownerID := uuid.New()
	receiptID := uuid.New()

	receiptRepo.On("FindByIDForOwner", mock.Anything, ownerID, receiptID).Return(nil, repository.ErrReceiptNotFound)

	svc := NewReceiptService(receiptRepo, new(mocksvc.EventPublisher), new(mocksvc.BlobStore), testStorageConfig(), discardLogger())

	_, err := svc.GetReceipt(context.Background(), ownerID, receiptID)
	assert.ErrorIs(t, err, domainerrors.ErrReceiptNotFound)
}

func TestReceiptService_DeleteReceipt_BlobCleanupIsBestEffort(t *testing.T) {
	receiptRepo := new(mockrepo.ReceiptRepository)
	blobStore := new(mocksvc.BlobStore)
	ownerID := uuid.New()
	receiptID := uuid.New()
	imageKey := fmt.Sprintf("lunchlog/%s/%s_lunch.jpg", ownerID, receiptID)

	receiptRepo.On("FindByIDForOwner", mock.Anything, ownerID, receiptID).Return(&entity.Receipt{
		ID:       receiptID,
		UserID:   ownerID,
		ImageKey: imageKey,
	}, nil)
	receiptRepo.On("DeleteByIDForOwner", mock.Anything, ownerID, receiptID).Return(nil)
	blobStore.On("Delete", mock.Anything, imageKey).Return(errors.New("bucket unreachable"))

	svc := NewReceiptService(receiptRepo, new(mocksvc.EventPublisher), blobStore, testStorageConfig(), discardLogger())

	// The record deletion wins even when the blob cleanup fails.
	err := svc.DeleteReceipt(context.Background(), ownerID, receiptID)
	assert.NoError(t, err)
	blobStore.AssertExpectations(t)
}

func TestReceiptService_DeleteReceipt_NotFound(t *testing.T) {
	receiptRepo := new(mockrepo.ReceiptRepository)
	ownerID := uuid.New()
	receiptID := uuid.New()

	receiptRepo.On("FindByIDForOwner", mock.Anything, ownerID, receiptID).Return(nil, repository.ErrReceiptNotFound)

	svc := NewReceiptService(receiptRepo, new(mocksvc.EventPublisher), new(mocksvc.BlobStore), testStorageConfig(), discardLogger())

	err := svc.DeleteReceipt(context.Background(), ownerID, receiptID)
	assert.ErrorIs(t, err, domainerrors.ErrReceiptNotFound)
}

func TestReceiptService_UploadReceiptImage(t *testing.T) {
	receiptRepo := new(mockrepo.ReceiptRepository)
	blobStore := new(mocksvc.BlobStore)
	ownerID := uuid.New()
	receiptID := uuid.New()

	receiptRepo.On("FindByIDForOwner", mock.Anything, ownerID, receiptID).Return(&entity.Receipt{
		ID:     receiptID,
		UserID: ownerID,
	}, nil)

	expectedKey := fmt.Sprintf("lunchlog/%s/%s_lunch.jpg", ownerID, receiptID)
	payload := []byte("fake image bytes")
	blobStore.On("Write", mock.Anything, expectedKey, payload, "image/jpeg").Return(nil)
	receiptRepo.On("UpdateImageKey", mock.Anything, receiptID, expectedKey).Return(nil)

	svc := NewReceiptService(receiptRepo, new(mocksvc.EventPublisher), blobStore, testStorageConfig(), discardLogger())

	receipt, err := svc.UploadReceiptImage(context.Background(), ownerID, receiptID, &usecase.UploadImageInput{
		Filename:    "lunch.jpg",
		ContentType: "image/jpeg",
		Data:        payload,
	})
	require.NoError(t, err)
	assert.Equal(t, expectedKey, receipt.ImageKey)
	blobStore.AssertExpectations(t)
	receiptRepo.AssertExpectations(t)
}

func TestReceiptService_UploadReceiptImage_TooLarge(t *testing.T) {
	receiptRepo := new(mockrepo.ReceiptRepository)
	blobStore := new(mocksvc.BlobStore)
	ownerID := uuid.New()
	receiptID := uuid.New()

	receiptRepo.On("FindByIDForOwner", mock.Anything, ownerID, receiptID).Return(&entity.Receipt{
		ID:     receiptID,
		UserID: ownerID,
	}, nil)

	cfg := testStorageConfig()
	cfg.Storage.MaxImageSize = 4

	svc := NewReceiptService(receiptRepo, new(mocksvc.EventPublisher), blobStore, cfg, discardLogger())

	_, err := svc.UploadReceiptImage(context.Background(), ownerID, receiptID, &usecase.UploadImageInput{
		Filename: "lunch.jpg",
		Data:     []byte("way too many bytes"),
	})
	assert.ErrorIs(t, err, domainerrors.ErrImageTooLarge)
	blobStore.AssertNotCalled(t, "Write", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestReceiptService_UploadReceiptImage_ReplacesPreviousBlob(t *testing.T) {
	receiptRepo := new(mockrepo.ReceiptRepository)
	blobStore := new(mocksvc.BlobStore)
	ownerID := uuid.New()
	receiptID := uuid.New()
	oldKey := fmt.Sprintf("lunchlog/%s/%s_old.jpg", ownerID, receiptID)
	newKey := fmt.Sprintf("lunchlog/%s/%s_new.jpg", ownerID, receiptID)

	receiptRepo.On("FindByIDForOwner", mock.Anything, ownerID, receiptID).Return(&entity.Receipt{
		ID:       receiptID,
		UserID:   ownerID,
		ImageKey: oldKey,
	}, nil)
	blobStore.On("Write", mock.Anything, newKey, mock.Anything, mock.Anything).Return(nil)
	receiptRepo.On("UpdateImageKey", mock.Anything, receiptID, newKey).Return(nil)
	blobStore.On("Delete", mock.Anything, oldKey).Return(nil)

	svc := NewReceiptService(receiptRepo, new(mocksvc.EventPublisher), blobStore, testStorageConfig(), discardLogger())

	receipt, err := svc.UploadReceiptImage(context.Background(), ownerID, receiptID, &usecase.UploadImageInput{
		Filename: "new.jpg",
		Data:     []byte("bytes"),
	})
	require.NoError(t, err)
	assert.Equal(t, newKey, receipt.ImageKey)
	blobStore.AssertExpectations(t)
}

func TestReceiptService_UploadReceiptImage_BlobWriteFailure(t *testing.T) {
	receiptRepo := new(mockrepo.ReceiptRepository)
	blobStore := new(mocksvc.BlobStore)
	ownerID := uuid.New()
	receiptID := uuid.New()

	receiptRepo.On("FindByIDForOwner", mock.Anything, ownerID, receiptID).Return(&entity.Receipt{
		ID:     receiptID,
		UserID: ownerID,
	}, nil)
	blobStore.On("Write", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("bucket unreachable"))

	svc := NewReceiptService(receiptRepo, new(mocksvc.EventPublisher), blobStore, testStorageConfig(), discardLogger())

	_, err := svc.UploadReceiptImage(context.Background(), ownerID, receiptID, &usecase.UploadImageInput{
		Filename: "lunch.jpg",
		Data:     []byte("bytes"),
	})
	assert.ErrorIs(t, err, domainerrors.ErrImageUploadFailed)

	// The record keeps its previous state when storage fails.
	receiptRepo.AssertNotCalled(t, "UpdateImageKey", mock.Anything, mock.Anything, mock.Anything)
}
