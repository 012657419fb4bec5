package storage

import (
	"encoding/json"
	"fmt"
)

// encode serializes a collection snapshot to its persisted form.
func encode[T any](value T) (string, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return "", fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return string(data), nil
}

// decode parses a persisted snapshot. Callers treat any error as "corrupt"
// and fall back to the collection's default value.
func decode[T any](raw string, into *T) error {
	if err := json.Unmarshal([]byte(raw), into); err != nil {
		return fmt.Errorf("failed to decode snapshot: %w", err)
	}
	return nil
}
