package impl

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"lunchlog/config"
	deliverycontext "lunchlog/internal/delivery/context"
	"lunchlog/internal/domain/entity"
	domainerrors "lunchlog/internal/domain/errors"
	"lunchlog/internal/domain/repository"
	"lunchlog/internal/domain/service"
	"lunchlog/internal/errors"
	"lunchlog/internal/usecase"

	"github.com/google/uuid"
)

type receiptService struct {
	receiptRepo repository.ReceiptRepository
	publisher   service.EventPublisher
	blobStore   service.BlobStore
	cfg         *config.Config
	logger      *slog.Logger
}

// NewReceiptService creates a new receipt service instance.
func NewReceiptService(
	receiptRepo repository.ReceiptRepository,
	publisher service.EventPublisher,
	blobStore service.BlobStore,
	cfg *config.Config,
	logger *slog.Logger,
) usecase.ReceiptUsecase {
	return &receiptService{
		receiptRepo: receiptRepo,
		publisher:   publisher,
		blobStore:   blobStore,
		cfg:         cfg,
		logger:      logger,
	}
}

// CreateReceipt persists a receipt and, when a restaurant draft was
// submitted, dispatches the enrichment event fire-and-forget. The caller
// gets the receipt back before enrichment runs; the restaurant link stays
// nil until the pipeline attaches it.
func (s *receiptService) CreateReceipt(ctx context.Context, ownerID uuid.UUID, input *usecase.CreateReceiptInput) (*entity.Receipt, error) {
	currency := input.Currency
	if currency == "" {
		currency = entity.DefaultCurrency
	}

	receipt := &entity.Receipt{
		ID:       uuid.New(),
		Price:    input.Price.Round(2),
		Currency: currency,
		Date:     input.Date,
		UserID:   ownerID,
	}

	if err := s.receiptRepo.Create(ctx, receipt); err != nil {
		return nil, fmt.Errorf("failed to create receipt: %w", err)
	}

	if input.Restaurant != nil {
		s.dispatchEnrichment(ctx, receipt.ID, input.Restaurant)
	}

	return receipt, nil
}

// UpdateReceipt replaces the receipt's price, currency, and date, scoped to
// the owner. A resubmitted restaurant draft re-dispatches enrichment just
// like creation; the existing restaurant link stays until the pipeline
// overwrites it.
func (s *receiptService) UpdateReceipt(ctx context.Context, ownerID, receiptID uuid.UUID, input *usecase.UpdateReceiptInput) (*entity.Receipt, error) {
	receipt, err := s.receiptRepo.FindByIDForOwner(ctx, ownerID, receiptID)
	if err != nil {
		if errors.Is(err, repository.ErrReceiptNotFound) {
			return nil, domainerrors.ErrReceiptNotFound
		}

		return nil, fmt.Errorf("failed to find receipt: %w", err)
	}

	currency := input.Currency
	if currency == "" {
		currency = entity.DefaultCurrency
	}

	receipt.Price = input.Price.Round(2)
	receipt.Currency = currency
	receipt.Date = input.Date

	if err := s.receiptRepo.UpdateByIDForOwner(ctx, ownerID, receipt); err != nil {
		if errors.Is(err, repository.ErrReceiptNotFound) {
			return nil, domainerrors.ErrReceiptNotFound
		}

		return nil, fmt.Errorf("failed to update receipt: %w", err)
	}

	if input.Restaurant != nil {
		s.dispatchEnrichment(ctx, receipt.ID, input.Restaurant)
	}

	return receipt, nil
}

// dispatchEnrichment publishes the enrichment event without blocking the
// creating request. Publish failures are logged and swallowed: enrichment
// is best-effort and must never fail a receipt creation that already
// committed.
func (s *receiptService) dispatchEnrichment(ctx context.Context, receiptID uuid.UUID, draft *service.RestaurantDraft) {
	event := &service.EnrichmentEvent{
		RequestID: deliverycontext.GetRequestIDFromContext(ctx),
		ReceiptID: receiptID.String(),
		Draft:     *draft,
	}

	logger := deliverycontext.GetLoggerOrDefault(ctx, s.logger)

	// Detach from the request context so a finished request does not cancel
	// the publish.
	publishCtx := context.WithoutCancel(ctx)

	go func() {
		if err := s.publisher.PublishEnrichmentEvent(publishCtx, event); err != nil {
			logger.Error("failed to publish enrichment event",
				slog.String("receipt_id", event.ReceiptID),
				slog.String("restaurant_name", draft.Name),
				slog.Any("error", err),
			)
		}
	}()
}

// ListReceipts returns the owner's receipts. The year filter always
// applies and defaults to the current calendar year; the month filter only
// applies when provided.
func (s *receiptService) ListReceipts(ctx context.Context, ownerID uuid.UUID, input *usecase.ListReceiptsInput) ([]*entity.Receipt, error) {
	filter := repository.ReceiptFilter{
		Year: time.Now().Year(),
	}
	if input != nil {
		if input.Year != nil {
			filter.Year = *input.Year
		}
		filter.Month = input.Month
	}

	receipts, err := s.receiptRepo.ListByOwner(ctx, ownerID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list receipts: %w", err)
	}

	return receipts, nil
}

// GetReceipt fetches one receipt scoped to its owner. A receipt owned by
// someone else is reported as not found.
func (s *receiptService) GetReceipt(ctx context.Context, ownerID, receiptID uuid.UUID) (*entity.Receipt, error) {
	receipt, err := s.receiptRepo.FindByIDForOwner(ctx, ownerID, receiptID)
	if err != nil {
		if errors.Is(err, repository.ErrReceiptNotFound) {
			return nil, domainerrors.ErrReceiptNotFound
		}

		return nil, fmt.Errorf("failed to find receipt: %w", err)
	}

	return receipt, nil
}

// DeleteReceipt removes the record first, then cleans up the image blob
// best-effort. A blob store failure is logged but never blocks or reverses
// the record deletion.
func (s *receiptService) DeleteReceipt(ctx context.Context, ownerID, receiptID uuid.UUID) error {
	receipt, err := s.receiptRepo.FindByIDForOwner(ctx, ownerID, receiptID)
	if err != nil {
		if errors.Is(err, repository.ErrReceiptNotFound) {
			return domainerrors.ErrReceiptNotFound
		}

		return fmt.Errorf("failed to find receipt: %w", err)
	}

	if err := s.receiptRepo.DeleteByIDForOwner(ctx, ownerID, receiptID); err != nil {
		if errors.Is(err, repository.ErrReceiptNotFound) {
			return domainerrors.ErrReceiptNotFound
		}

		return fmt.Errorf("failed to delete receipt: %w", err)
	}

	if receipt.ImageKey != "" {
		if err := s.blobStore.Delete(ctx, receipt.ImageKey); err != nil {
			deliverycontext.GetLoggerOrDefault(ctx, s.logger).Warn("failed to delete receipt image blob",
				slog.String("receipt_id", receiptID.String()),
				slog.String("image_key", receipt.ImageKey),
				slog.Any("error", err),
			)
		}
	}

	return nil
}

// UploadReceiptImage stores the image blob and records its key on the
// receipt. The record is only updated after the blob write succeeds, so a
// storage failure leaves the receipt untouched.
func (s *receiptService) UploadReceiptImage(ctx context.Context, ownerID, receiptID uuid.UUID, input *usecase.UploadImageInput) (*entity.Receipt, error) {
	receipt, err := s.receiptRepo.FindByIDForOwner(ctx, ownerID, receiptID)
	if err != nil {
		if errors.Is(err, repository.ErrReceiptNotFound) {
			return nil, domainerrors.ErrReceiptNotFound
		}

		return nil, fmt.Errorf("failed to find receipt: %w", err)
	}

	if int64(len(input.Data)) > s.cfg.Storage.MaxImageSize {
		return nil, domainerrors.ErrImageTooLarge
	}

	key := fmt.Sprintf("%s/%s/%s_%s", s.cfg.Storage.KeyPrefix, ownerID, receiptID, input.Filename)
	if err := s.blobStore.Write(ctx, key, input.Data, input.ContentType); err != nil {
		deliverycontext.GetLoggerOrDefault(ctx, s.logger).Error("failed to store receipt image",
			slog.String("receipt_id", receiptID.String()),
			slog.Any("error", err),
		)

		return nil, domainerrors.ErrImageUploadFailed
	}

	if err := s.receiptRepo.UpdateImageKey(ctx, receiptID, key); err != nil {
		return nil, fmt.Errorf("failed to record image key: %w", err)
	}

	// Replacing an image leaves the previous blob behind; clean it up
	// best-effort.
	if receipt.ImageKey != "" && receipt.ImageKey != key {
		if err := s.blobStore.Delete(ctx, receipt.ImageKey); err != nil {
			deliverycontext.GetLoggerOrDefault(ctx, s.logger).Warn("failed to delete replaced image blob",
				slog.String("image_key", receipt.ImageKey),
				slog.Any("error", err),
			)
		}
	}

	receipt.ImageKey = key

	return receipt, nil
}
