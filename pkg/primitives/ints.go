package primitives

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/exp/constraints"
)

// Uints splits line on whitespace and parses every field as a base-10
// unsigned integer. Fields that do not parse are returned in rejected, in the
// order they appeared; they never abort the parse.
func Uints(line string) (values []uint64, rejected []string) {
	fields := strings.Fields(line)
	values = make([]uint64, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseUint(f, 10, 64)
		if err != nil {
			rejected = append(rejected, f)
			continue
		}
		values = append(values, v)
	}
	return values, rejected
}

// Digits returns the value of every byte in s, which must all be '0'..'9'.
func Digits(s string) ([]uint8, error) {
	out := make([]uint8, len(s))
	for i := range len(s) {
		d, err := DigitValue(s[i])
		if err != nil {
			return nil, fmt.Errorf("offset %d: %w", i, err)
		}
		out[i] = d
	}
	return out, nil
}

// DigitValue returns the numeric value of an ASCII decimal digit.
func DigitValue(b byte) (uint8, error) {
	if b < '0' || b > '9' {
		return 0, fmt.Errorf("bogus digit %q", string(b))
	}
	return b - '0', nil
}

// AbsDiff returns |a-b| without overflowing for unsigned T.
func AbsDiff[T constraints.Integer](a, b T) T {
	if a > b {
		return a - b
	}
	return b - a
}

// MustGet returns v as is. It panics if err is non-nil.
func MustGet[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}
