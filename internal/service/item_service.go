package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/koenbroumels/zelf-bar-dienst/internal/models"
	"github.com/koenbroumels/zelf-bar-dienst/internal/pricing"
	"github.com/koenbroumels/zelf-bar-dienst/internal/storage"
)

// ItemService records purchases and lists the item collection.
type ItemService struct {
	store *storage.Store

	// now is overridable in tests.
	now func() time.Time
}

// NewItemService creates a new ItemService with the given store.
func NewItemService(store *storage.Store) *ItemService {
	return &ItemService{store: store, now: time.Now}
}

// Create records a new purchase. The price is derived from the settings
// current right now and locked onto the item; later settings changes never
// touch it. The item is prepended to the stored collection (newest first)
// and the whole collection is persisted.
func (s *ItemService) Create(ctx context.Context, itemType models.ItemType, label string) (models.Item, error) {
	settings, _ := s.store.LoadSettings(ctx)

	item := models.Item{
		ID:         uuid.New().String(),
		Type:       itemType,
		CreatedAt:  s.now().Unix(),
		PriceCents: pricing.PriceFor(itemType, settings),
		Label:      label,
	}

	err := s.store.UpdateItems(ctx, func(items []models.Item) ([]models.Item, error) {
		return append([]models.Item{item}, items...), nil
	})
	if err != nil {
		slog.Error("failed to persist item", "type", itemType, "error", err)
		return models.Item{}, err
	}

	slog.Info("item recorded", "id", item.ID, "type", item.Type, "price_cents", item.PriceCents)
	return item, nil
}

// List returns all items in stored order (newest first). Sorting and
// filtering for display are the caller's concern; see the ledger package.
func (s *ItemService) List(ctx context.Context) []models.Item {
	items, _ := s.store.LoadItems(ctx)
	return items
}
