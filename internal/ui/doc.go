// Package ui is the opsboard terminal console, built on Bubble Tea.
//
// Model owns the routing shell: a sidebar with the four sections, a top bar,
// the banner slot and whichever screen the current route resolves to. Screens
// are small tea-style components (Init, Update, View) that share an env with
// the store, router, config and logger.
//
// # Screens
//
//   - Dashboard: stat cards, a case chart and the case, quote and invoice
//     tables behind one shared filter
//   - Incidents: active and resolved tables, report, edit, resolve and detail
//   - Taxes: the tax table with create and edit forms
//   - Activity: the tail of the opsboard log
//
// # Navigation and toasts
//
// Every move between screens goes through nav.Route. Saving a form redirects
// with toast parameters; the destination turns them into a banner once and
// rewrites its history entry without them, so going back never replays it.
//
// # Key Bindings
//
//   - 1-4: Dashboard, Incidents, Taxes, Activity
//   - tab/shift+tab: Move focus between tables or form fields
//   - j/k: Move the row cursor
//   - [ and ]: Previous and next page
//   - s/S: Cycle the sort column, flip its direction
//   - f: Filter
//   - enter/n: Open the selected row, create a new one
//   - ctrl+s/ctrl+r: Submit a form, resolve an incident
//   - b or esc: Back
//   - T: Cycle theme, B: Collapse sidebar, ?: Help
//   - q or ctrl+c: Quit
package ui
