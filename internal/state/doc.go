// Package state holds the mutable session copy of the opsboard dataset.
//
// # Store
//
// Store is seeded once from a dataset.Dataset and is the only place rows
// change: tax create/update and incident create/update/resolve. Lookups match
// ids trimmed and case-insensitively, so "iss002 " finds ISS002. New rows get
// the next sequential id (TAX005, ISS004).
//
// Readers take a Snapshot, a deep copy guarded by a sync.RWMutex. Table
// pipelines treat snapshot rows as read-only and swap in a new snapshot after
// each mutation; Version lets a screen tell whether its rows are stale.
//
// # Errors
//
//   - ErrNotFound: unknown id (the edit and detail screens show a
//     "not found" banner)
//   - ErrNotResolvable: resolve requested for an incident that is not Active
package state
