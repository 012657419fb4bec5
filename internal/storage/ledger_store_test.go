package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/koenbroumels/zelf-bar-dienst/internal/models"
)

func TestStoreLoadDefaults(t *testing.T) {
	store := New(NewMemoryKV())
	ctx := context.Background()

	items, usedDefault := store.LoadItems(ctx)
	assert.Empty(t, items)
	assert.True(t, usedDefault, "absent items should load as default")

	batches, usedDefault := store.LoadBatches(ctx)
	assert.Empty(t, batches)
	assert.True(t, usedDefault)

	settings, usedDefault := store.LoadSettings(ctx)
	assert.True(t, usedDefault)
	assert.Equal(t, models.DefaultSettings(), settings)
	assert.Equal(t, int64(70), settings.BasePriceCents)
	assert.Equal(t, "EUR", settings.CurrencyCode)
}

func TestStoreSettingsRoundTrip(t *testing.T) {
	store := New(NewMemoryKV())
	ctx := context.Background()

	saved := models.Settings{BasePriceCents: 120, CurrencyCode: "USD"}
	require.NoError(t, store.SaveSettings(ctx, saved))

	loaded, usedDefault := store.LoadSettings(ctx)
	assert.False(t, usedDefault)
	assert.Equal(t, saved, loaded)
}

func TestStoreItemsRoundTrip(t *testing.T) {
	store := New(NewMemoryKV())
	ctx := context.Background()

	items := []models.Item{
		{ID: "i1", Type: models.ItemTypeBeer, CreatedAt: 1700000001, PriceCents: 140, Label: "Koen"},
		{ID: "i2", Type: models.ItemTypeSoda, CreatedAt: 1700000002, PriceCents: 70, PaidAt: 1700000100, PaymentBatchID: "b1"},
	}
	require.NoError(t, store.UpdateItems(ctx, func([]models.Item) ([]models.Item, error) {
		return items, nil
	}))

	loaded, usedDefault := store.LoadItems(ctx)
	assert.False(t, usedDefault)
	assert.Equal(t, items, loaded)
}

func TestStoreEmptyCollectionRoundTrip(t *testing.T) {
	store := New(NewMemoryKV())
	ctx := context.Background()

	require.NoError(t, store.UpdateItems(ctx, func([]models.Item) ([]models.Item, error) {
		return []models.Item{}, nil
	}))

	loaded, usedDefault := store.LoadItems(ctx)
	assert.False(t, usedDefault, "a persisted empty collection is not a default")
	assert.Empty(t, loaded)
}

func TestStoreCorruptSnapshotLoadsDefault(t *testing.T) {
	kv := NewMemoryKV()
	store := New(kv)
	ctx := context.Background()

	require.NoError(t, kv.Set(ctx, KeyItems, "{not json"))
	require.NoError(t, kv.Set(ctx, KeySettings, "also not json"))

	items, usedDefault := store.LoadItems(ctx)
	assert.Empty(t, items)
	assert.True(t, usedDefault)

	settings, usedDefault := store.LoadSettings(ctx)
	assert.True(t, usedDefault)
	assert.Equal(t, models.DefaultSettings(), settings)
}

func TestStoreUpdateItemsAbortsOnError(t *testing.T) {
	store := New(NewMemoryKV())
	ctx := context.Background()

	require.NoError(t, store.UpdateItems(ctx, func([]models.Item) ([]models.Item, error) {
		return []models.Item{{ID: "i1", Type: models.ItemTypeCandy, PriceCents: 70}}, nil
	}))

	wantErr := errors.New("nope")
	err := store.UpdateItems(ctx, func([]models.Item) ([]models.Item, error) {
		return nil, wantErr
	})
	require.ErrorIs(t, err, wantErr)

	loaded, _ := store.LoadItems(ctx)
	require.Len(t, loaded, 1, "failed update must not change state")
}

func TestStoreUpdateLedgerWritesBothCollections(t *testing.T) {
	store := New(NewMemoryKV())
	ctx := context.Background()

	err := store.UpdateLedger(ctx, func(items []models.Item, batches []models.PaymentBatch) ([]models.Item, []models.PaymentBatch, error) {
		items = append(items, models.Item{ID: "i1", Type: models.ItemTypeBeer, PriceCents: 140, PaidAt: 5, PaymentBatchID: "b1"})
		batches = append(batches, models.PaymentBatch{ID: "b1", CreatedAt: 5})
		return items, batches, nil
	})
	require.NoError(t, err)

	items, _ := store.LoadItems(ctx)
	batches, _ := store.LoadBatches(ctx)
	require.Len(t, items, 1)
	require.Len(t, batches, 1)
	assert.Equal(t, batches[0].ID, items[0].PaymentBatchID)
}
