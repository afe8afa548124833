package impl

import (
	"context"
	"fmt"
	"log/slog"

	deliverycontext "lunchlog/internal/delivery/context"
	"lunchlog/internal/domain/repository"
	"lunchlog/internal/domain/service"
	"lunchlog/internal/errors"
	"lunchlog/internal/usecase"

	"github.com/google/uuid"
)

type enrichmentService struct {
	resolver  service.PlaceResolver
	txManager repository.TransactionManager
	logger    *slog.Logger
}

// NewEnrichmentService creates the enrichment pipeline instance.
func NewEnrichmentService(
	resolver service.PlaceResolver,
	txManager repository.TransactionManager,
	logger *slog.Logger,
) usecase.EnrichmentUsecase {
	return &enrichmentService{
		resolver:  resolver,
		txManager: txManager,
		logger:    logger,
	}
}

// Enrich resolves the receipt's restaurant draft and attaches the canonical
// Address/Restaurant pair inside one transaction.
//
// The resolver call happens before the transaction opens so no lock is held
// across the network. Resolve failures are terminal: the receipt simply
// stays without a restaurant and nothing is reported to its owner.
func (s *enrichmentService) Enrich(ctx context.Context, event *service.EnrichmentEvent) error {
	logger := deliverycontext.GetLoggerOrDefault(ctx, s.logger)

	receiptID, err := uuid.Parse(event.ReceiptID)
	if err != nil {
		// A malformed event can never succeed; settle it instead of looping.
		logger.Error("enrichment event carries invalid receipt id",
			slog.String("receipt_id", event.ReceiptID),
			slog.Any("error", err),
		)

		return nil
	}

	resolved, err := s.resolver.Resolve(ctx, event.Draft.Name, event.Draft.Address)
	if err != nil {
		s.logResolveFailure(logger, event, err)

		return nil
	}

	err = s.txManager.Execute(ctx, func(repos repository.RepositoryFactory) error {
		receipts := repos.NewReceiptRepository()

		// Check the receipt still exists before creating shared rows, so a
		// concurrently deleted receipt leaves no orphan Address/Restaurant.
		exists, err := receipts.ExistsByID(ctx, receiptID)
		if err != nil {
			return fmt.Errorf("failed to check receipt existence: %w", err)
		}
		if !exists {
			logger.Info("receipt vanished before enrichment, discarding result",
				slog.String("receipt_id", event.ReceiptID),
			)

			return nil
		}

		address, err := repos.NewAddressRepository().Upsert(ctx, resolved.ExternalID, repository.AddressFields{
			Street:      resolved.Street,
			Locality:    resolved.Locality,
			PostalCode:  resolved.PostalCode,
			RegionCode:  resolved.RegionCode,
			PhoneNumber: resolved.PhoneNumber,
		})
		if err != nil {
			return fmt.Errorf("failed to upsert address: %w", err)
		}

		restaurant, err := repos.NewRestaurantRepository().Upsert(ctx, address.ID, event.Draft.Name, resolved.TypeTags)
		if err != nil {
			return fmt.Errorf("failed to upsert restaurant: %w", err)
		}

		if err := receipts.AttachRestaurant(ctx, receiptID, restaurant.ID); err != nil {
			return fmt.Errorf("failed to attach restaurant: %w", err)
		}

		return nil
	})
	if err != nil {
		if errors.Is(err, repository.ErrReceiptNotFound) {
			// Deleted between the existence check and the attach. The
			// rollback discarded the upserts; nothing left to do.
			logger.Info("receipt deleted mid-enrichment, transaction rolled back",
				slog.String("receipt_id", event.ReceiptID),
			)

			return nil
		}

		return fmt.Errorf("enrichment transaction failed: %w", err)
	}

	logger.Info("receipt enriched",
		slog.String("receipt_id", event.ReceiptID),
		slog.String("restaurant_name", event.Draft.Name),
	)

	return nil
}

// logResolveFailure records the terminal resolve outcome with enough context
// to diagnose bad drafts. Intentionally silent to the end user.
func (s *enrichmentService) logResolveFailure(logger *slog.Logger, event *service.EnrichmentEvent, err error) {
	attrs := []any{
		slog.String("receipt_id", event.ReceiptID),
		slog.String("restaurant_name", event.Draft.Name),
	}

	var transportErr *service.TransportError
	var upstreamErr *service.UpstreamError
	switch {
	case errors.Is(err, service.ErrNoMatch):
		logger.Warn("no place matched restaurant draft", attrs...)
	case errors.As(err, &transportErr):
		logger.Error("place resolver unreachable", append(attrs, slog.Any("error", err))...)
	case errors.As(err, &upstreamErr):
		logger.Error("place resolver rejected query",
			append(attrs,
				slog.Int("status", upstreamErr.StatusCode),
				slog.String("upstream_message", upstreamErr.Message),
			)...)
	default:
		logger.Error("place resolution failed", append(attrs, slog.Any("error", err))...)
	}
}
