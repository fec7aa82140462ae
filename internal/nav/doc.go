// Package nav maps opsboard screens to URL-style routes and keeps the
// in-process navigation history.
//
// Routes are the same paths the web console used ("/ops/incident",
// "/ops/finances/taxes/{id}/edit", ...). Query parameters carry one-shot
// signals such as the post-redirect toast. Matching and reverse building are
// delegated to a gorilla/mux router; no HTTP server is involved.
//
// History supports Replace so that a screen can rewrite its own entry, for
// example to strip consumed toast parameters, without growing the back stack.
package nav
