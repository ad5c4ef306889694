// Package inputsource fetches raw puzzle inputs by day, either from a
// directory of files or from a BigQuery table.
package inputsource

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"
)

// ErrNoInput is returned when a source has no input for a day.
var ErrNoInput = errors.New("inputsource: no input")

// ZstdSuffix marks inputs stored zstd-compressed.
const ZstdSuffix = ".zst"

// ReadFile returns the contents of path, decompressing it first when the name
// ends in ZstdSuffix. Inputs are small, so decoding stays on the calling
// goroutine.
func ReadFile(path string) ([]byte, error) {
	if !strings.HasSuffix(path, ZstdSuffix) {
		return os.ReadFile(path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	dec, err := zstd.NewReader(f, zstd.WithDecoderConcurrency(1))
	if err != nil {
		return nil, fmt.Errorf("zstd: %w", err)
	}
	defer dec.Close()

	b, err := io.ReadAll(bufio.NewReaderSize(dec, 64*1024))
	if err != nil {
		return nil, fmt.Errorf("zstd %s: %w", path, err)
	}
	return b, nil
}

// Compress zstd-compresses b. It is the inverse of ReadFile for ZstdSuffix
// files.
func Compress(b []byte) ([]byte, error) {
	var buf bytes.Buffer
	enc, err := zstd.NewWriter(&buf, zstd.WithEncoderLevel(zstd.SpeedDefault), zstd.WithEncoderConcurrency(1))
	if err != nil {
		return nil, err
	}
	if _, err := enc.Write(b); err != nil {
		enc.Close()
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// FileSource reads "<Dir>/<day>.input", falling back to the zstd-compressed
// "<Dir>/<day>.input.zst".
type FileSource struct {
	Dir string
}

// Path returns the uncompressed input path for day.
func (s FileSource) Path(day int) string {
	return filepath.Join(s.Dir, fmt.Sprintf("%d.input", day))
}

func (s FileSource) Fetch(ctx context.Context, day int) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	plain := s.Path(day)
	b, err := ReadFile(plain)
	if err == nil {
		return b, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	b, zerr := ReadFile(plain + ZstdSuffix)
	if errors.Is(zerr, os.ErrNotExist) {
		return nil, fmt.Errorf("%w for day %d in %s", ErrNoInput, day, s.Dir)
	}
	return b, zerr
}
