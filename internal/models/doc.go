// Package models defines the core domain types for the bar tab ledger.
//
// # Models
//
//   - Item: one recorded purchase with a price locked in at creation
//   - PaymentBatch: a group of items settled together at one point in time
//   - Settings: process-wide pricing configuration
//
// # Design principles
//
//  1. **Locked prices**: an Item stores the price it was created with;
//     later Settings changes never touch existing items.
//  2. **Avoid circular references**: an Item references its batch by ID
//     string; a batch's membership is derived by scanning items.
//  3. **Zero values mean absent**: optional timestamps are Unix seconds
//     with 0 meaning "not set", optional strings are "".
//
// Collections of these types are persisted as whole snapshots; see the
// storage package.
package models
