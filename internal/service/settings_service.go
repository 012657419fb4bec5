// Package service implements the ledger operations on top of storage:
// settings, item creation and listing, settlement into payment batches,
// and CSV export.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode"

	"github.com/koenbroumels/zelf-bar-dienst/internal/models"
	"github.com/koenbroumels/zelf-bar-dienst/internal/storage"
)

// SettingsService reads and writes the process-wide pricing settings.
type SettingsService struct {
	store *storage.Store
}

// NewSettingsService creates a new SettingsService with the given store.
func NewSettingsService(store *storage.Store) *SettingsService {
	return &SettingsService{store: store}
}

// Load returns the persisted settings, or the defaults when nothing has
// been saved yet or the stored value is unreadable. It never fails.
func (s *SettingsService) Load(ctx context.Context) models.Settings {
	settings, usedDefault := s.store.LoadSettings(ctx)
	if usedDefault {
		slog.Debug("settings not found, using defaults")
	}
	return settings
}

// Save overwrites the persisted settings. It does not validate; callers
// run ValidateSettings first.
func (s *SettingsService) Save(ctx context.Context, settings models.Settings) error {
	if err := s.store.SaveSettings(ctx, settings); err != nil {
		slog.Error("failed to save settings", "error", err)
		return err
	}
	slog.Info("settings saved", "base_price_cents", settings.BasePriceCents, "currency", settings.CurrencyCode)
	return nil
}

// ValidateSettings rejects settings a caller must not save: the base price
// must be positive and the currency code must be exactly three letters.
// The returned settings have the currency code uppercased.
func ValidateSettings(settings models.Settings) (models.Settings, error) {
	if settings.BasePriceCents <= 0 {
		return settings, fmt.Errorf("base price must be positive, got %d", settings.BasePriceCents)
	}

	code := strings.ToUpper(strings.TrimSpace(settings.CurrencyCode))
	if len(code) != 3 {
		return settings, fmt.Errorf("currency code must be 3 letters, got %q", settings.CurrencyCode)
	}
	for _, r := range code {
		if !unicode.IsLetter(r) {
			return settings, fmt.Errorf("currency code must be 3 letters, got %q", settings.CurrencyCode)
		}
	}

	settings.CurrencyCode = code
	return settings, nil
}
