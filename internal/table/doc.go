// Package table implements the tabular data pipeline shared by every opsboard
// screen and by the `opsboard table` command.
//
// # Pipeline
//
// Rows always flow through the same three stages, in this order:
//
//  1. Filter: named, multi-valued inclusion filters (AND across groups, OR
//     within a group). An empty group selection imposes no constraint.
//  2. Sort: a single column and direction. Sorting is stable, so rows with
//     equal keys keep their input order. With no column selected the input
//     order (or a configured default order) is kept.
//  3. Paginate: fixed-size pages with the requested page clamped into range.
//
// Pagination boundaries are therefore always computed over the filtered and
// sorted collection, never over the raw rows.
//
// # Columns and values
//
// Columns are typed descriptors. Each sortable column supplies a Value
// extractor returning a Number, Text, Currency or Missing value; comparison
// follows the value kind (numeric for numbers and currency strings,
// locale-aware collation for text). No reflection is involved.
//
// # State and recomputation
//
// State holds the filter selection, sort state and page of one table
// instance. Its transitions are pure methods; filter and sort transitions
// reset the page to 1 in the same step.
//
// Pipeline memoizes the filtered and sorted rows. The recompute boundary is:
//
//   - source, filter or sort change: rows are filtered and sorted again
//   - page navigation: the cached rows are only re-sliced
//
// When the source shrinks so that the current page no longer exists, the page
// resets to 1 rather than clamping to the new last page.
//
// Several pipelines may share one Selection (for example active and resolved
// incidents split from one list with Partition) while keeping independent
// sort and page state.
//
// # Errors
//
// Nothing in this package returns an error. Empty results are a normal
// outcome and out-of-range pages are recovered locally.
package table
