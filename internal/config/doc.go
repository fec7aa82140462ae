// Package config loads the opsboard configuration file.
//
// # Discovery
//
//  1. An explicit path (the --config flag) wins.
//  2. Otherwise ~/.config/opsboard/config.toml is used.
//  3. A missing file is not an error; defaults apply.
//
// # Format
//
//	dataset_path    = "~/ops/fixtures.toml"  # empty: embedded seed data
//	log_path        = "~/.local/state/opsboard/opsboard.log"
//	log_level       = "info"
//	locale          = "en"                   # collation for text sorting
//	submit_delay_ms = 600
//
//	[page_size]
//	dashboard = 5
//	incidents = 5
//	taxes     = 10
//
// Every field is optional. Blank strings and non-positive numbers keep the
// default. Paths get tilde expansion and are made absolute.
package config
