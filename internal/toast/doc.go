// Package toast implements the post-redirect success banner.
//
// A screen that finishes a mutation redirects with two query parameters, the
// toast kind and the subject id:
//
//	/ops/incident?toast=resolved&id=ISS002
//
// The destination consumes them on arrival: when the kind is one it has a
// template for and the id is non-empty it shows a banner, then replaces its
// history entry with the same route minus those parameters. Going back or
// refreshing therefore never shows the banner twice. Anything unrecognized is
// ignored silently.
package toast
