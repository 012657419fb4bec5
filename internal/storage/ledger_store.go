package storage

import (
	"context"
	"log/slog"
	"sync"

	"github.com/koenbroumels/zelf-bar-dienst/internal/models"
)

// Store persists the item, settings, and payment batch collections as
// whole snapshots on a KV backend.
//
// All mutations run through Update* methods, which hold a single mutex
// around the read-modify-write cycle so two concurrent mutations cannot
// lose each other's updates. UpdateLedger writes items and batches with one
// atomic SetMulti, so a settlement can never leave a batch without its
// items or vice versa.
type Store struct {
	kv KV
	mu sync.Mutex
}

// New creates a Store on top of the given KV backend.
func New(kv KV) *Store {
	return &Store{kv: kv}
}

// Close closes the underlying KV backend.
func (s *Store) Close() error {
	return s.kv.Close()
}

// LoadItems returns the persisted item collection. An absent or unreadable
// snapshot loads as an empty collection; usedDefault is true in that case
// so callers can tell "empty by design" from "corrupt and recovered".
func (s *Store) LoadItems(ctx context.Context) (items []models.Item, usedDefault bool) {
	loadInto(ctx, s.kv, KeyItems, &items, &usedDefault)
	return items, usedDefault
}

// LoadBatches returns the persisted payment batch collection, empty on
// absent or unreadable data.
func (s *Store) LoadBatches(ctx context.Context) (batches []models.PaymentBatch, usedDefault bool) {
	loadInto(ctx, s.kv, KeyPaymentBatches, &batches, &usedDefault)
	return batches, usedDefault
}

// LoadSettings returns the persisted settings, or the defaults when absent
// or unreadable. It never fails.
func (s *Store) LoadSettings(ctx context.Context) (settings models.Settings, usedDefault bool) {
	settings = models.DefaultSettings()
	loadInto(ctx, s.kv, KeySettings, &settings, &usedDefault)
	if usedDefault {
		settings = models.DefaultSettings()
	}
	return settings, usedDefault
}

// SaveSettings overwrites the persisted settings entirely. Validation is
// the caller's responsibility.
func (s *Store) SaveSettings(ctx context.Context, settings models.Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := encode(settings)
	if err != nil {
		return err
	}
	return s.kv.Set(ctx, KeySettings, raw)
}

// UpdateItems applies fn to the current item collection and persists the
// result as one snapshot. fn receives the loaded collection and returns the
// full replacement; returning an error aborts with no state change.
func (s *Store) UpdateItems(ctx context.Context, fn func(items []models.Item) ([]models.Item, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, _ := s.LoadItems(ctx)
	updated, err := fn(items)
	if err != nil {
		return err
	}

	raw, err := encode(updated)
	if err != nil {
		return err
	}
	return s.kv.Set(ctx, KeyItems, raw)
}

// UpdateLedger applies fn to the current items and batches and persists
// both replacement collections in one atomic write.
func (s *Store) UpdateLedger(ctx context.Context, fn func(items []models.Item, batches []models.PaymentBatch) ([]models.Item, []models.PaymentBatch, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, _ := s.LoadItems(ctx)
	batches, _ := s.LoadBatches(ctx)

	newItems, newBatches, err := fn(items, batches)
	if err != nil {
		return err
	}

	rawItems, err := encode(newItems)
	if err != nil {
		return err
	}
	rawBatches, err := encode(newBatches)
	if err != nil {
		return err
	}

	return s.kv.SetMulti(ctx, map[string]string{
		KeyItems:          rawItems,
		KeyPaymentBatches: rawBatches,
	})
}

// loadInto reads and decodes one snapshot, leaving into untouched and
// setting usedDefault on absent or unreadable data.
func loadInto[T any](ctx context.Context, kv KV, key string, into *T, usedDefault *bool) {
	raw, found, err := kv.Get(ctx, key)
	if err != nil {
		slog.Warn("snapshot read failed, using default", "key", key, "error", err)
		*usedDefault = true
		return
	}
	if !found {
		*usedDefault = true
		return
	}
	if err := decode(raw, into); err != nil {
		slog.Warn("snapshot is corrupt, using default", "key", key, "error", err)
		var zero T
		*into = zero
		*usedDefault = true
	}
}
