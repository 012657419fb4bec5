// Package storage persists the three ledger collections as whole JSON
// snapshots in a key-value store.
//
// The KV interface is the only I/O boundary; backends live in the bolt and
// sqlite subpackages. Store layers the snapshot codec, default-on-corrupt
// loads, and a single-flight mutex for read-modify-write cycles on top of
// any KV.
package storage

import "context"

// Fixed keys for the three persisted collections.
const (
	KeyItems          = "items"
	KeySettings       = "settings"
	KeyPaymentBatches = "payment_batches"
)

// KV is a minimal key-value store for string blobs.
//
// Get returns found=false for an absent key with a nil error; errors are
// reserved for actual read failures. SetMulti writes all entries in one
// atomic step: after an error none of the entries may be visible.
type KV interface {
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string) error
	SetMulti(ctx context.Context, entries map[string]string) error

	// Close releases any resources held by the store.
	Close() error
}
