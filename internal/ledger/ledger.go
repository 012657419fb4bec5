// Package ledger contains the pure collection transforms behind the item
// and payment ledgers: filtering, settlement marking and its reversal, and
// batch totals.
//
// Every function takes collections in and returns new collections (or
// aggregates) out; persistence is the caller's job. This keeps the
// settlement rules trivially testable.
package ledger

import (
	"strings"

	"github.com/koenbroumels/zelf-bar-dienst/internal/models"
)

// FilterOptions selects a subset of items.
type FilterOptions struct {
	// OnlyUnpaid excludes items that belong to a settled batch.
	OnlyUnpaid bool

	// SearchText matches case-insensitively against an item's label or
	// its type name. Empty matches everything.
	SearchText string
}

// Filter returns the items matching all predicates in opts.
func Filter(items []models.Item, opts FilterOptions) []models.Item {
	search := strings.ToLower(strings.TrimSpace(opts.SearchText))

	var out []models.Item
	for _, item := range items {
		if opts.OnlyUnpaid && item.Paid() {
			continue
		}
		if search != "" && !matchesSearch(item, search) {
			continue
		}
		out = append(out, item)
	}
	return out
}

// matchesSearch reports whether the lowercased search term occurs in the
// item's label or type name.
func matchesSearch(item models.Item, search string) bool {
	return strings.Contains(strings.ToLower(item.Label), search) ||
		strings.Contains(strings.ToLower(string(item.Type)), search)
}

// MarkPaid returns a copy of items where every item whose ID is in ids has
// its paid fields set to the given batch and timestamp. Items outside ids
// are unchanged. Both paid fields are always set together.
func MarkPaid(items []models.Item, ids []string, batchID string, paidAt int64) []models.Item {
	idSet := make(map[string]bool, len(ids))
	for _, id := range ids {
		idSet[id] = true
	}

	out := make([]models.Item, len(items))
	for i, item := range items {
		if idSet[item.ID] {
			item.PaidAt = paidAt
			item.PaymentBatchID = batchID
		}
		out[i] = item
	}
	return out
}

// ClearPaid returns a copy of items where every item referencing batchID
// has both paid fields cleared. Items referencing other batches (or none)
// are unchanged.
func ClearPaid(items []models.Item, batchID string) []models.Item {
	out := make([]models.Item, len(items))
	for i, item := range items {
		if item.PaymentBatchID == batchID {
			item.PaidAt = 0
			item.PaymentBatchID = ""
		}
		out[i] = item
	}
	return out
}

// ItemsInBatch returns the items settled by the given batch, in input order.
func ItemsInBatch(items []models.Item, batchID string) []models.Item {
	var out []models.Item
	for _, item := range items {
		if item.PaymentBatchID == batchID {
			out = append(out, item)
		}
	}
	return out
}

// TotalFor sums the locked prices of all items settled by the given batch.
func TotalFor(batch models.PaymentBatch, items []models.Item) int64 {
	var total int64
	for _, item := range items {
		if item.PaymentBatchID == batch.ID {
			total += item.PriceCents
		}
	}
	return total
}
