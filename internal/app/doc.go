// Package app is the composition root of opsboard.
//
// Run loads the configuration and dataset, opens the zap log file, seeds the
// session store and hands everything to the Bubble Tea console:
//
//	config.Load ──> dataset.Load ──> logging.New ──> state.NewStore ──> ui.Run
//
// Configuration and dataset errors are fatal and returned to main. Once the
// console is up every failure is shown in-app and logged; cancelling the
// context (SIGINT, SIGTERM) stops the program cleanly.
//
// Load is shared with the non-interactive table command so both read the
// same config and data.
package app
