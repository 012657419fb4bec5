package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/koenbroumels/zelf-bar-dienst/internal/ledger"
	"github.com/koenbroumels/zelf-bar-dienst/internal/models"
	"github.com/koenbroumels/zelf-bar-dienst/internal/storage"
)

// ErrNoItemsSelected is returned by Settle when the selection is empty.
var ErrNoItemsSelected = errors.New("no items selected for settlement")

// PaymentService settles items into payment batches and reverses batches.
type PaymentService struct {
	store *storage.Store

	// now is overridable in tests.
	now func() time.Time
}

// NewPaymentService creates a new PaymentService with the given store.
func NewPaymentService(store *storage.Store) *PaymentService {
	return &PaymentService{store: store, now: time.Now}
}

// Settle creates a payment batch for the selected items and marks them
// paid. The batch is prepended to the batch collection, and both the item
// and batch collections are written in one atomic step.
//
// The selection must be non-empty. Settle does not re-check that the
// selected items are unpaid; callers pre-filter with
// ledger.Filter(OnlyUnpaid: true).
func (s *PaymentService) Settle(ctx context.Context, itemIDs []string, note string) (models.PaymentBatch, error) {
	if len(itemIDs) == 0 {
		return models.PaymentBatch{}, ErrNoItemsSelected
	}

	batch := models.PaymentBatch{
		ID:        uuid.New().String(),
		CreatedAt: s.now().Unix(),
		Note:      note,
	}

	err := s.store.UpdateLedger(ctx, func(items []models.Item, batches []models.PaymentBatch) ([]models.Item, []models.PaymentBatch, error) {
		items = ledger.MarkPaid(items, itemIDs, batch.ID, batch.CreatedAt)
		batches = append([]models.PaymentBatch{batch}, batches...)
		return items, batches, nil
	})
	if err != nil {
		slog.Error("failed to settle items", "item_count", len(itemIDs), "error", err)
		return models.PaymentBatch{}, err
	}

	slog.Info("items settled", "batch_id", batch.ID, "item_count", len(itemIDs))
	return batch, nil
}

// Reverse unsettles the batch: every item referencing it goes back to
// unpaid and the batch is removed, in one atomic step. Reversing an
// unknown batch id is a no-op.
func (s *PaymentService) Reverse(ctx context.Context, batchID string) error {
	err := s.store.UpdateLedger(ctx, func(items []models.Item, batches []models.PaymentBatch) ([]models.Item, []models.PaymentBatch, error) {
		items = ledger.ClearPaid(items, batchID)

		kept := batches[:0:0]
		for _, b := range batches {
			if b.ID != batchID {
				kept = append(kept, b)
			}
		}
		return items, kept, nil
	})
	if err != nil {
		slog.Error("failed to reverse batch", "batch_id", batchID, "error", err)
		return err
	}

	slog.Info("batch reversed", "batch_id", batchID)
	return nil
}

// ListBatches returns all payment batches in stored order (newest first).
func (s *PaymentService) ListBatches(ctx context.Context) []models.PaymentBatch {
	batches, _ := s.store.LoadBatches(ctx)
	return batches
}

// TotalFor sums the locked prices of the items settled by the batch.
func (s *PaymentService) TotalFor(batch models.PaymentBatch, items []models.Item) int64 {
	return ledger.TotalFor(batch, items)
}
