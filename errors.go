package aoc

import "errors"

var (
	// ErrUnreadableInput wraps every failure to load an input: a missing
	// file, a permission problem or a corrupt compressed stream.
	ErrUnreadableInput = errors.New("aoc: input unreadable")

	// ErrUnknownPuzzle is returned for a (day, part) with no solver.
	ErrUnknownPuzzle = errors.New("aoc: unknown puzzle")

	// ErrMalformedInput is returned in strict mode when an input holds
	// tokens that would otherwise be skipped.
	ErrMalformedInput = errors.New("aoc: malformed input")
)
