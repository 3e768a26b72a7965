package tui

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C) or picked
	// cancel from the action menu.
	ErrAborted = errors.New("tui: aborted")
	// ErrNoForm is returned when Run is called without a form.
	ErrNoForm = errors.New("tui: form is nil")
	// ErrTooManyAttempts is returned when a field keeps being rejected past
	// the configured attempt limit.
	ErrTooManyAttempts = errors.New("tui: too many invalid attempts")
)
