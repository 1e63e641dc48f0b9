package tui

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("tui: aborted")
	// ErrNoFactors is returned when the session ends before any factor was
	// accepted.
	ErrNoFactors = errors.New("tui: no factors entered")
)
