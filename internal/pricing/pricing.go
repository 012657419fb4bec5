// Package pricing derives item prices from the current settings.
//
// Prices are computed exactly once, at item creation, and stored on the
// item. Nothing in this package reads or writes storage.
package pricing

import "github.com/koenbroumels/zelf-bar-dienst/internal/models"

// PriceFor returns the price in cents for an item of the given type under
// the given settings. Beer costs twice the base price; everything else
// costs the base price.
func PriceFor(itemType models.ItemType, settings models.Settings) int64 {
	if itemType == models.ItemTypeBeer {
		return 2 * settings.BasePriceCents
	}
	return settings.BasePriceCents
}
