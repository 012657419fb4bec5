// Package bolt provides a bbolt-backed implementation of the storage.KV
// interface. It is the default backend: a single file, no server, and
// transactional multi-key writes.
package bolt

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	bolt "go.etcd.io/bbolt"

	"github.com/koenbroumels/zelf-bar-dienst/internal/storage"
)

// bucketLedger holds all three collection snapshots.
const bucketLedger = "ledger"

var _ storage.KV = (*KV)(nil)

// KV implements storage.KV using bbolt.
type KV struct {
	db *bolt.DB
}

// New opens (or creates) the database at dbPath and initializes the ledger
// bucket. Parent directories are created as needed.
func New(dbPath string) (*KV, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := bolt.Open(dbPath, 0o600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketLedger))
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create bucket: %w", err)
	}

	return &KV{db: db}, nil
}

// Close closes the database.
func (k *KV) Close() error {
	return k.db.Close()
}

// Get retrieves the value stored under key.
func (k *KV) Get(_ context.Context, key string) (string, bool, error) {
	var value string
	var found bool

	err := k.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket([]byte(bucketLedger)).Get([]byte(key))
		if data == nil {
			return nil
		}
		// Copy the value since it's only valid during the transaction.
		value = string(data)
		found = true
		return nil
	})
	if err != nil {
		return "", false, fmt.Errorf("failed to read key %s: %w", key, err)
	}
	return value, found, nil
}

// Set stores value under key.
func (k *KV) Set(_ context.Context, key, value string) error {
	err := k.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketLedger)).Put([]byte(key), []byte(value))
	})
	if err != nil {
		return fmt.Errorf("failed to write key %s: %w", key, err)
	}
	return nil
}

// SetMulti stores all entries in a single bbolt transaction: either every
// entry becomes visible or none does.
func (k *KV) SetMulti(_ context.Context, entries map[string]string) error {
	err := k.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(bucketLedger))
		for key, value := range entries {
			if err := bucket.Put([]byte(key), []byte(value)); err != nil {
				return fmt.Errorf("failed to write key %s: %w", key, err)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to write entries: %w", err)
	}
	return nil
}
