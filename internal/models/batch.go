package models

// PaymentBatch represents a settlement event: a group of items marked paid
// together. Membership is derived by scanning items for a matching
// PaymentBatchID, not stored on the batch.
type PaymentBatch struct {
	// ID is the unique identifier for the batch (UUID format).
	ID string `json:"id"`

	// CreatedAt is the Unix timestamp of settlement.
	CreatedAt int64 `json:"created_at"`

	// Note is an optional description for the batch.
	Note string `json:"note,omitempty"`
}
