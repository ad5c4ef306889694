// Package diskmap models a dense disk map as alternating file and free-space
// blocks and compacts it by moving file content from the end of the disk into
// the gaps at the front.
package diskmap

import (
	"errors"
	"fmt"
	"slices"

	"crosswarped.com/aoc/pkg/primitives"
)

var ErrInvalidDigit = errors.New("diskmap: invalid digit")

// Block is a contiguous run of Capacity units. ID is the block's position in
// the original disk map.
type Block struct {
	ID       int
	Capacity uint8
	Free     bool
}

func (b Block) String() string {
	kind := "file"
	if b.Free {
		kind = "free"
	}
	return fmt.Sprintf("%s#%d(%d)", kind, b.ID, b.Capacity)
}

// Parse turns a disk map such as "2333133121414131402" into blocks. Every
// character is one block; even positions are files and odd positions are free
// space.
func Parse(line string) ([]Block, error) {
	caps, err := primitives.Digits(line)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDigit, err)
	}
	blocks := make([]Block, len(caps))
	for i, c := range caps {
		blocks[i] = Block{ID: i, Capacity: c, Free: i%2 != 0}
	}
	return blocks, nil
}

// Compact fills free blocks with file content taken from the back of the
// sequence and returns the new layout. blocks is not modified.
//
// The first block is always kept as is. A gap cursor walks forward and a
// donor cursor walks backward over file blocks; a donor gives
// min(gap, donor) units to the current gap, splitting itself when it is
// larger. Compaction stops when the cursors meet. The result holds no free
// blocks, and a sequence with no free blocks comes back unchanged.
func Compact(blocks []Block) []Block {
	if len(blocks) == 0 {
		return []Block{}
	}

	work := slices.Clone(blocks)
	out := make([]Block, 0, len(work))
	out = append(out, work[0])

	gap, donor := 1, len(work)-1
	for gap <= donor {
		cur := &work[gap]
		if !cur.Free {
			out = append(out, *cur)
			gap++
			continue
		}
		if cur.Capacity == 0 {
			gap++
			continue
		}

		for donor > gap && (work[donor].Free || work[donor].Capacity == 0) {
			donor--
		}
		if donor == gap {
			// Nothing left behind this gap to move into it.
			break
		}

		d := &work[donor]
		n := min(cur.Capacity, d.Capacity)
		out = append(out, Block{ID: d.ID, Capacity: n})
		cur.Capacity -= n
		d.Capacity -= n
		if cur.Capacity == 0 {
			gap++
		}
		if d.Capacity == 0 {
			donor--
		}
	}
	return out
}

// CellChecksum expands blocks into single units and returns the sum of
// unit position times file number, where a file's number is ID/2. Free
// units count as zero.
func CellChecksum(blocks []Block) uint64 {
	var sum, pos uint64
	for _, b := range blocks {
		for range b.Capacity {
			if !b.Free {
				sum += pos * uint64(b.ID/2)
			}
			pos++
		}
	}
	return sum
}

// Checksum returns the sum of position*ID over blocks.
func Checksum(blocks []Block) uint64 {
	var sum uint64
	for i, b := range blocks {
		sum += uint64(i) * uint64(b.ID)
	}
	return sum
}
