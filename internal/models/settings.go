package models

// Default settings used when nothing has been persisted yet, or when the
// persisted value cannot be read.
const (
	DefaultBasePriceCents = 70
	DefaultCurrencyCode   = "EUR"
)

// Settings is the process-wide pricing configuration. Changing it never
// retroactively changes existing items' locked prices.
type Settings struct {
	// BasePriceCents is the price for soda and candy; beer costs double.
	// Must be positive; callers validate before saving.
	BasePriceCents int64 `json:"base_price_cents"`

	// CurrencyCode is a 3-letter ISO 4217 code used only for display
	// formatting.
	CurrencyCode string `json:"currency_code"`
}

// DefaultSettings returns the settings used before any save.
func DefaultSettings() Settings {
	return Settings{
		BasePriceCents: DefaultBasePriceCents,
		CurrencyCode:   DefaultCurrencyCode,
	}
}
