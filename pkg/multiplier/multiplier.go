// Package multiplier recovers mul(A,B) instructions from corrupted text.
package multiplier

import (
	"iter"
	"regexp"
	"strconv"
)

// Pair is the two operands of a mul instruction.
type Pair struct {
	A, B uint64
}

// Product returns A*B.
func (p Pair) Product() uint64 {
	return p.A * p.B
}

// Op is the kind of an Instruction.
type Op int

const (
	OpMul Op = iota
	OpDo
	OpDont
)

func (o Op) String() string {
	switch o {
	case OpMul:
		return "mul"
	case OpDo:
		return "do"
	case OpDont:
		return "don't"
	default:
		return "unknown"
	}
}

// Instruction is one recognised instruction and the byte offset it starts at.
type Instruction struct {
	Op     Op
	Offset int
	Pair   Pair // only set for OpMul
}

var (
	mulRx         = regexp.MustCompile(`mul\(([0-9]{1,3}),([0-9]{1,3})\)`)
	instructionRx = regexp.MustCompile(`mul\(([0-9]{1,3}),([0-9]{1,3})\)|do\(\)|don't\(\)`)
)

// FindPairs returns the operands of every exact mul(A,B) in text, left to
// right, where A and B are 1 to 3 decimal digits. Anything else is ignored.
func FindPairs(text string) []Pair {
	var pairs []Pair
	for _, m := range mulRx.FindAllStringSubmatch(text, -1) {
		pairs = append(pairs, Pair{A: operand(m[1]), B: operand(m[2])})
	}
	return pairs
}

// Sum adds up the products of pairs.
func Sum(pairs []Pair) uint64 {
	var total uint64
	for _, p := range pairs {
		total += p.Product()
	}
	return total
}

// Instructions yields the mul, do() and don't() instructions of text in the
// order they appear.
func Instructions(text string) iter.Seq[Instruction] {
	return func(yield func(Instruction) bool) {
		for _, loc := range instructionRx.FindAllStringSubmatchIndex(text, -1) {
			var in Instruction
			in.Offset = loc[0]
			switch match := text[loc[0]:loc[1]]; match {
			case "do()":
				in.Op = OpDo
			case "don't()":
				in.Op = OpDont
			default:
				in.Op = OpMul
				in.Pair = Pair{A: operand(text[loc[2]:loc[3]]), B: operand(text[loc[4]:loc[5]])}
			}
			if !yield(in) {
				return
			}
		}
	}
}

// SumEnabled adds up the products of the mul instructions that are enabled.
// Multiplication starts enabled; don't() disables it and do() enables it
// again.
func SumEnabled(text string) uint64 {
	var total uint64
	enabled := true
	for in := range Instructions(text) {
		switch in.Op {
		case OpDo:
			enabled = true
		case OpDont:
			enabled = false
		case OpMul:
			if enabled {
				total += in.Pair.Product()
			}
		}
	}
	return total
}

// operand parses a 1-3 digit match, which always fits.
func operand(s string) uint64 {
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		panic("multiplier: regexp matched non-numeric operand " + strconv.Quote(s))
	}
	return v
}
