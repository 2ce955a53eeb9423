package models

import "errors"

// Failure categories for a run. Per-line parse failures are a tally on the
// parser, not an error; everything here terminates the run.
var (
	ErrInputNotFound    = errors.New("input log file not found")
	ErrInputUnreadable  = errors.New("input log file unreadable")
	ErrNoValidRecords   = errors.New("no valid records found")
	ErrOutputUnwritable = errors.New("output path unwritable")
)
