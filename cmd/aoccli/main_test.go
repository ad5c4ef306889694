package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"crosswarped.com/aoc/internal/inputsource"
)

func setup(t *testing.T) {
	t.Helper()
	cfg = defaultConfig()
	logger = zap.NewNop()
	day, part, dir = 0, 1, ""
}

func writeInput(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig(t *testing.T) {
	cfg, err := loadConfig("")
	require.NoError(t, err)
	assert.Equal(t, defaultConfig(), cfg)

	path := writeInput(t, t.TempDir(), "aoc.yaml", `
inputs_dir: /srv/inputs
log_level: debug
strict: true
bigquery:
  project: xword-x
  table: xword-x.aoc.puzzle_inputs
`)
	cfg, err = loadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, Config{
		InputsDir: "/srv/inputs",
		LogLevel:  "debug",
		Strict:    true,
		BigQuery:  BigQueryConfig{Project: "xword-x", Table: "xword-x.aoc.puzzle_inputs"},
	}, cfg)

	bad := writeInput(t, t.TempDir(), "aoc.yaml", "bigquery:\n  project: xword-x\n")
	_, err = loadConfig(bad)
	assert.ErrorContains(t, err, "bigquery.table")

	_, err = loadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestNewLogger(t *testing.T) {
	l, err := newLogger("debug")
	require.NoError(t, err)
	assert.True(t, l.Core().Enabled(zap.DebugLevel))

	_, err = newLogger("loud")
	assert.Error(t, err)
}

func TestRunSolve(t *testing.T) {
	setup(t)
	path := writeInput(t, t.TempDir(), "9.input", "2333133121414131402\n")
	day, part = 9, 1

	var out bytes.Buffer
	require.NoError(t, runSolve(context.Background(), &out, path))
	assert.Equal(t, "964\n", out.String())

	day = 4
	assert.Error(t, runSolve(context.Background(), &out, path))
}

func TestRunAll(t *testing.T) {
	setup(t)
	dir = t.TempDir()
	writeInput(t, dir, "2.input", "7 6 4 2 1\n1 3 2 4 5\n")
	writeInput(t, dir, "3.input", "mul(2,3)don't()mul(4,5)")
	writeInput(t, dir, "9.input", "12345\n")

	var out bytes.Buffer
	require.NoError(t, runAll(context.Background(), &out, true))
	assert.Equal(t, strings.Join([]string{
		"day02/part1: 1",
		"day02/part2: 2",
		"day03/part1: 26",
		"day03/part2: 6",
		"day09/part1: 20",
	}, "\n")+"\n", out.String())
}

func TestInputSource(t *testing.T) {
	setup(t)
	assert.Equal(t, inputsource.FileSource{Dir: "inputs"}, inputSource(false))

	dir = "elsewhere"
	assert.Equal(t, inputsource.FileSource{Dir: "elsewhere"}, inputSource(true))

	cfg.BigQuery = BigQueryConfig{Project: "p", Table: "p.d.t"}
	assert.Equal(t, inputsource.BigQuerySource{Project: "p", Table: "p.d.t"}, inputSource(false))
}

func TestListCommand(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"list"})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})

	require.NoError(t, rootCmd.Execute())
	assert.Equal(t, "day02/part1\nday02/part2\nday03/part1\nday03/part2\nday09/part1\n", out.String())
}

// An unreadable input must terminate the process, so the check runs in a
// child process.
func TestRunSolve_MissingInputExits(t *testing.T) {
	if os.Getenv("AOCCLI_FATAL_CHILD") == "1" {
		setup(t)
		var err error
		logger, err = newLogger("info")
		if err != nil {
			t.Fatal(err)
		}
		day = 9
		_ = runSolve(context.Background(), &bytes.Buffer{}, filepath.Join(os.TempDir(), "definitely-missing.input"))
		t.Fatal("runSolve returned instead of exiting")
	}

	cmd := exec.Command(os.Args[0], "-test.run=^TestRunSolve_MissingInputExits$")
	cmd.Env = append(os.Environ(), "AOCCLI_FATAL_CHILD=1")
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	err := cmd.Run()

	var exitErr *exec.ExitError
	require.True(t, errors.As(err, &exitErr), "child error = %v, want non-zero exit", err)
	assert.NotEqual(t, 0, exitErr.ExitCode())
	assert.Contains(t, stderr.String(), "cannot read input")
}
