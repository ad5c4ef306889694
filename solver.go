// Package aoc wires the individual puzzle solvers behind a single registry
// keyed by day and part.
package aoc

import (
	"bytes"
	"context"
	"fmt"
	"iter"
	"slices"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"crosswarped.com/aoc/internal/inputsource"
	"crosswarped.com/aoc/pkg/diskmap"
	"crosswarped.com/aoc/pkg/multiplier"
	"crosswarped.com/aoc/pkg/primitives"
	"crosswarped.com/aoc/pkg/reports"
)

type Day int

const (
	Day2 Day = 2
	Day3 Day = 3
	Day9 Day = 9
)

type Part int

const (
	Part1 Part = 1
	Part2 Part = 2
)

// PuzzleID names one half of a day's puzzle.
type PuzzleID struct {
	Day  Day
	Part Part
}

func (id PuzzleID) String() string {
	return fmt.Sprintf("day%02d/part%d", id.Day, id.Part)
}

type solveFunc func(s *Solver, input []byte) (uint64, error)

var registry = map[PuzzleID]solveFunc{
	{Day2, Part1}: func(s *Solver, input []byte) (uint64, error) {
		p, err := s.reports(input)
		return uint64(p.CountSafe()), err
	},
	{Day2, Part2}: func(s *Solver, input []byte) (uint64, error) {
		p, err := s.reports(input)
		return uint64(p.CountSafeDampened()), err
	},
	{Day3, Part1}: func(_ *Solver, input []byte) (uint64, error) {
		return multiplier.Sum(multiplier.FindPairs(string(input))), nil
	},
	{Day3, Part2}: func(_ *Solver, input []byte) (uint64, error) {
		return multiplier.SumEnabled(string(input)), nil
	},
	{Day9, Part1}: func(_ *Solver, input []byte) (uint64, error) {
		blocks, err := diskmap.Parse(LastLine(input))
		if err != nil {
			return 0, fmt.Errorf("%w: %w", ErrMalformedInput, err)
		}
		return diskmap.Checksum(diskmap.Compact(blocks)), nil
	},
}

// Puzzles returns every registered puzzle, ordered by day then part.
func Puzzles() []PuzzleID {
	ids := make([]PuzzleID, 0, len(registry))
	for id := range registry {
		ids = append(ids, id)
	}
	slices.SortFunc(ids, func(a, b PuzzleID) int {
		if a.Day != b.Day {
			return int(a.Day - b.Day)
		}
		return int(a.Part - b.Part)
	})
	return ids
}

// Days returns the distinct days of Puzzles, in order.
func Days() []Day {
	var days []Day
	for _, id := range Puzzles() {
		if len(days) == 0 || days[len(days)-1] != id.Day {
			days = append(days, id.Day)
		}
	}
	return days
}

// LastLine returns the final non-empty line of input, without its line
// terminator.
func LastLine(input []byte) string {
	lines := strings.Split(strings.TrimRight(string(input), "\r\n"), "\n")
	return strings.TrimSuffix(lines[len(lines)-1], "\r")
}

// Source supplies raw inputs by day.
type Source interface {
	Fetch(ctx context.Context, day int) ([]byte, error)
}

type SolverParams struct {
	// Logger receives parse warnings and per-puzzle timings. Nil disables
	// logging.
	Logger *zap.Logger
	// Strict turns skipped input tokens into ErrMalformedInput.
	Strict bool
}

type Solver struct {
	logger *zap.Logger
	strict bool
}

func CreateSolver(params SolverParams) *Solver {
	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Solver{
		logger: logger,
		strict: params.Strict,
	}
}

// Solve computes the answer of puzzle id for input.
func (s *Solver) Solve(ctx context.Context, id PuzzleID, input []byte) (uint64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	solve, ok := registry[id]
	if !ok {
		return 0, fmt.Errorf("%w: %v", ErrUnknownPuzzle, id)
	}

	start := time.Now()
	v, err := solve(s, input)
	if err != nil {
		return 0, fmt.Errorf("%v: %w", id, err)
	}
	s.logger.Debug("solved",
		zap.Stringer("puzzle", id),
		zap.Uint64("answer", v),
		zap.Duration("elapsed", time.Since(start)))
	return v, nil
}

// SolveFile reads path, decompressing *.zst files, and solves puzzle id.
func (s *Solver) SolveFile(ctx context.Context, id PuzzleID, path string) (uint64, error) {
	input, err := ReadInput(path)
	if err != nil {
		return 0, err
	}
	return s.Solve(ctx, id, input)
}

// MustSolveFile is like SolveFile but panics on any error, including an
// unreadable input.
func MustSolveFile(ctx context.Context, s *Solver, id PuzzleID, path string) uint64 {
	return primitives.MustGet(s.SolveFile(ctx, id, path))
}

// ReadInput loads a puzzle input from disk.
func ReadInput(path string) ([]byte, error) {
	b, err := inputsource.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnreadableInput, err)
	}
	return b, nil
}

// SolveAll fetches each day's input once from src and solves every
// registered puzzle concurrently. Answers come back in Puzzles order.
func (s *Solver) SolveAll(ctx context.Context, src Source) ([]Answer, error) {
	inputs := make(map[Day][]byte)
	for _, day := range Days() {
		b, err := src.Fetch(ctx, int(day))
		if err != nil {
			return nil, fmt.Errorf("%w: day %d: %w", ErrUnreadableInput, day, err)
		}
		inputs[day] = b
	}

	ids := Puzzles()
	answers := make([]Answer, len(ids))
	g, ctx := errgroup.WithContext(ctx)
	for i, id := range ids {
		g.Go(func() error {
			start := time.Now()
			v, err := s.Solve(ctx, id, inputs[id.Day])
			if err != nil {
				return err
			}
			answers[i] = Answer{Puzzle: id, Value: v, Elapsed: time.Since(start)}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return answers, nil
}

// Answers yields SolveAll's answers one at a time.
func (s *Solver) Answers(ctx context.Context, src Source) iter.Seq2[Answer, error] {
	return func(yield func(Answer, error) bool) {
		answers, err := s.SolveAll(ctx, src)
		if err != nil {
			yield(Answer{}, err)
			return
		}
		for _, a := range answers {
			if !yield(a, nil) {
				return
			}
		}
	}
}

func (s *Solver) reports(input []byte) (reports.Puzzle, error) {
	p, rejections, err := reports.Parse(bytes.NewReader(input))
	if err != nil {
		return p, err
	}
	for _, r := range rejections {
		if s.strict {
			return p, fmt.Errorf("%w: line %d: %q is not a level", ErrMalformedInput, r.Line, r.Token)
		}
		s.logger.Warn("skipping token", zap.Int("line", r.Line), zap.String("token", r.Token))
	}
	return p, nil
}
