package aoc

import (
	"fmt"
	"time"
)

// Answer is the result of solving one puzzle.
type Answer struct {
	Puzzle  PuzzleID
	Value   uint64
	Elapsed time.Duration
}

func (a Answer) Repr() string {
	return fmt.Sprintf("%v: %d", a.Puzzle, a.Value)
}

func (a Answer) DebugString() string {
	return fmt.Sprintf("Answer{puzzle: %v, value: %d, elapsed: %v}", a.Puzzle, a.Value, a.Elapsed)
}
