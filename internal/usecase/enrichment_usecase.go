package usecase

import (
	"context"

	"lunchlog/internal/domain/service"
)

// EnrichmentUsecase is the asynchronous pipeline that resolves a receipt's
// restaurant draft and attaches the canonical restaurant record.
//
// Enrichment is best-effort: resolve failures are terminal and never
// propagate to the receipt owner. The operation is idempotent under
// at-least-once event redelivery.
type EnrichmentUsecase interface {
	// Enrich processes one enrichment event to completion. A nil return
	// means the event is settled, including the "draft could not be
	// resolved" terminal state. A non-nil return signals an infrastructure
	// failure the task queue may redeliver.
	Enrich(ctx context.Context, event *service.EnrichmentEvent) error
}
