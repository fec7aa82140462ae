// Package logtail reads the end of the opsboard log for the Activity screen.
//
// Read keeps a ring buffer of the last N lines, so memory stays bounded no
// matter how large the file grows. Parse turns a zap JSON line into an Entry;
// lines that are not JSON (for example a panic trace) are kept as Raw.
//
// A missing log file is not an error: the Activity screen simply shows
// nothing until the first entry is written.
package logtail
