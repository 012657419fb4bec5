package models

import "fmt"

// ItemType identifies what was purchased.
type ItemType string

const (
	// ItemTypeBeer is a beer; priced at twice the base price.
	ItemTypeBeer ItemType = "beer"

	// ItemTypeSoda is a soft drink; priced at the base price.
	ItemTypeSoda ItemType = "soda"

	// ItemTypeCandy is a snack; priced at the base price.
	ItemTypeCandy ItemType = "candy"
)

// ItemTypes lists all valid item types in display order.
var ItemTypes = []ItemType{ItemTypeBeer, ItemTypeSoda, ItemTypeCandy}

// ParseItemType converts a string to an ItemType, rejecting unknown values.
func ParseItemType(s string) (ItemType, error) {
	switch ItemType(s) {
	case ItemTypeBeer, ItemTypeSoda, ItemTypeCandy:
		return ItemType(s), nil
	}
	return "", fmt.Errorf("unknown item type: %q", s)
}

// Item represents one recorded purchase.
type Item struct {
	// ID is the unique identifier for the item (UUID format).
	ID string `json:"id"`

	// Type is what was purchased.
	Type ItemType `json:"type"`

	// CreatedAt is the Unix timestamp when the item was recorded.
	// Used for sorting and display only; never edited.
	CreatedAt int64 `json:"created_at"`

	// PriceCents is the price locked in at creation from the settings
	// current at that moment. Never recomputed.
	PriceCents int64 `json:"price_cents"`

	// Label is an optional free-text annotation, typically the name of
	// the person who took the item.
	Label string `json:"label,omitempty"`

	// PaidAt is the Unix timestamp of settlement; 0 while unpaid.
	// Set together with PaymentBatchID, never one without the other.
	PaidAt int64 `json:"paid_at,omitempty"`

	// PaymentBatchID references the batch that settled this item;
	// "" while unpaid.
	PaymentBatchID string `json:"payment_batch_id,omitempty"`
}

// Paid reports whether the item belongs to a settled batch.
func (i Item) Paid() bool {
	return i.PaymentBatchID != ""
}
