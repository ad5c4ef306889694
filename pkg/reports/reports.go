// Package reports parses level reports and classifies them as safe or unsafe.
//
// A report is one line of whitespace-separated levels. It is safe when the
// levels move in a single direction and every step is between MinStep and
// MaxStep inclusive.
package reports

import (
	"bufio"
	"io"

	"crosswarped.com/aoc/pkg/primitives"
)

const (
	MinStep = 1
	MaxStep = 3
)

// Report is the ordered list of levels parsed from one input line.
type Report struct {
	Levels []uint64
}

// Puzzle holds every report of an input, in line order.
type Puzzle struct {
	Reports []Report
}

// Rejection records a token that was dropped because it is not a level.
type Rejection struct {
	Line  int
	Token string
}

// AddReport parses line and appends it as the next report. Tokens that are
// not non-negative integers are skipped and returned.
func (p *Puzzle) AddReport(line string) []string {
	levels, rejected := primitives.Uints(line)
	p.Reports = append(p.Reports, Report{Levels: levels})
	return rejected
}

// Parse reads one report per line from r.
func Parse(r io.Reader) (Puzzle, []Rejection, error) {
	var (
		p          Puzzle
		rejections []Rejection
	)
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		for _, tok := range p.AddReport(scanner.Text()) {
			rejections = append(rejections, Rejection{Line: line, Token: tok})
		}
	}
	return p, rejections, scanner.Err()
}

// Safe reports whether the levels are strictly monotonic with every step in
// [MinStep, MaxStep]. Reports with fewer than two levels are safe.
func (r Report) Safe() bool {
	return safe(r.Levels, -1)
}

// SafeDampened is like Safe, but tolerates a single bad level: the report is
// also safe if removing any one level makes it safe.
func (r Report) SafeDampened() bool {
	if safe(r.Levels, -1) {
		return true
	}
	for skip := range r.Levels {
		if safe(r.Levels, skip) {
			return true
		}
	}
	return false
}

// safe checks levels with the element at index skip ignored (-1 for none).
func safe(levels []uint64, skip int) bool {
	var (
		prev       uint64
		havePrev   bool
		increasing bool
		haveDir    bool
	)
	for i, v := range levels {
		if i == skip {
			continue
		}
		if !havePrev {
			prev, havePrev = v, true
			continue
		}

		step := primitives.AbsDiff(prev, v)
		if step < MinStep || step > MaxStep {
			return false
		}

		up := v > prev
		if !haveDir {
			increasing, haveDir = up, true
		} else if up != increasing {
			return false
		}
		prev = v
	}
	return true
}

// CountSafe returns the number of safe reports.
func (p Puzzle) CountSafe() int {
	return p.count(Report.Safe)
}

// CountSafeDampened returns the number of reports that are safe with at most
// one level removed.
func (p Puzzle) CountSafeDampened() int {
	return p.count(Report.SafeDampened)
}

func (p Puzzle) count(f func(Report) bool) int {
	n := 0
	for _, r := range p.Reports {
		if f(r) {
			n++
		}
	}
	return n
}
