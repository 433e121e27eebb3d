package domain

import "errors"

// Callers branch on these with errors.Is; context is attached with %w.
var (
	// ErrGenerationFailed is returned when the generator spends its attempt
	// budget without sampling a connected graph.
	ErrGenerationFailed = errors.New("graph generation failed")

	// ErrTooFewNodes is returned for orders that cannot carry n+1 distinct edges.
	ErrTooFewNodes = errors.New("too few nodes")

	// ErrInvalidEventTarget marks an event naming a node or control that does
	// not exist. It is logged and dropped, never shown to the player.
	ErrInvalidEventTarget = errors.New("invalid event target")

	ErrNotConfigured = errors.New("dependency not configured")
	ErrClosed        = errors.New("game loop closed")
)
