package services

import "errors"

// Domain failures surfaced to handlers as distinct conditions.
// Handlers match with errors.Is and map each kind to its own HTTP status,
// so not-found, locked, invalid-input and invalid-state never blur together.
var (
	ErrEventNotFound = errors.New("event not found")
	ErrBoutNotFound  = errors.New("bout not found")
	ErrUserNotFound  = errors.New("user not found")
	ErrPickNotFound  = errors.New("pick not found")

	// ErrPickLocked means some lock source (event lifecycle, event or bout
	// admin override, or the pick's own flag) forbids mutation.
	ErrPickLocked = errors.New("pick is locked")

	// ErrInvalidPick covers malformed predictions: unknown corner or method,
	// a round outside 1-5, a round combined with a decision pick, or an
	// event/bout pair that doesn't match.
	ErrInvalidPick = errors.New("invalid pick")

	// ErrNoResult is returned when reverting a bout that has no recorded result
	ErrNoResult = errors.New("bout has no recorded result")
)
