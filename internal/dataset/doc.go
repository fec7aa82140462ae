// Package dataset defines the opsboard row types and loads the seed data.
//
// The default rows are embedded from fixtures.toml. A dataset_path in the
// config replaces them with another TOML file of the same shape. Rows are
// read-only once loaded; session edits go through the state store.
package dataset
