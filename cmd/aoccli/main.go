package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"crosswarped.com/aoc"
	"crosswarped.com/aoc/internal/inputsource"
)

var (
	configPath string
	verbose    bool
	strict     bool
	timeout    time.Duration

	day  int
	part int
	dir  string

	cfg    Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:           "aoccli",
	Short:         "Solve the calendar puzzles from the command line",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if cfg, err = loadConfig(configPath); err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if cmd.Flags().Changed("strict") {
			cfg.Strict = strict
		}
		if verbose {
			cfg.LogLevel = "debug"
		}
		logger, err = newLogger(cfg.LogLevel)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

var solveCmd = &cobra.Command{
	Use:   "solve [input]",
	Short: "Solve one puzzle from an input file",
	Long: `Reads the input file (zstd-compressed if it ends in .zst) and prints
the answer of the given day and part. An unreadable input aborts the process.

Example:
  aoccli solve --day 9 --part 1 inputs/9.input`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext()
		defer cancel()
		return runSolve(ctx, cmd.OutOrStdout(), args[0])
	},
}

var allCmd = &cobra.Command{
	Use:   "all",
	Short: "Solve every registered puzzle",
	Long: `Fetches each day's input once and solves every puzzle concurrently.
Inputs come from --dir (<day>.input or <day>.input.zst), or from BigQuery
when the config file sets bigquery.project.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext()
		defer cancel()
		return runAll(ctx, cmd.OutOrStdout(), cmd.Flags().Changed("dir"))
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the registered puzzles",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		for _, id := range aoc.Puzzles() {
			fmt.Fprintln(cmd.OutOrStdout(), id)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to aoc.yaml")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&strict, "strict", false, "fail on input tokens that would be skipped")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", time.Minute, "overall timeout")

	solveCmd.Flags().IntVar(&day, "day", 0, "puzzle day")
	solveCmd.Flags().IntVar(&part, "part", 1, "puzzle part")
	_ = solveCmd.MarkFlagRequired("day")

	allCmd.Flags().StringVar(&dir, "dir", "", "directory holding <day>.input files (overrides inputs_dir)")

	rootCmd.AddCommand(solveCmd, allCmd, listCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(lvl)
	return config.Build()
}

func commandContext() (context.Context, context.CancelFunc) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	ctx, cancel := context.WithTimeout(ctx, timeout)
	return ctx, func() {
		cancel()
		stop()
	}
}

func newSolver() *aoc.Solver {
	return aoc.CreateSolver(aoc.SolverParams{Logger: logger, Strict: cfg.Strict})
}

func runSolve(ctx context.Context, out io.Writer, path string) error {
	id := aoc.PuzzleID{Day: aoc.Day(day), Part: aoc.Part(part)}
	input, err := aoc.ReadInput(path)
	if err != nil {
		logger.Fatal("cannot read input", zap.String("path", path), zap.Error(err))
	}

	v, err := newSolver().Solve(ctx, id, input)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, v)
	return nil
}

func runAll(ctx context.Context, out io.Writer, dirFlagSet bool) error {
	src := inputSource(dirFlagSet)
	logger.Debug("solving all puzzles", zap.String("source", fmt.Sprintf("%T", src)))

	for a, err := range newSolver().Answers(ctx, src) {
		if err != nil {
			return err
		}
		fmt.Fprintln(out, a.Repr())
		logger.Debug("answer", zap.Stringer("puzzle", a.Puzzle), zap.Duration("elapsed", a.Elapsed))
	}
	return nil
}

func inputSource(dirFlagSet bool) aoc.Source {
	if dirFlagSet {
		return inputsource.FileSource{Dir: dir}
	}
	if cfg.BigQuery.Project != "" {
		return inputsource.BigQuerySource{
			Project:  cfg.BigQuery.Project,
			Table:    cfg.BigQuery.Table,
			Location: cfg.BigQuery.Location,
		}
	}
	return inputsource.FileSource{Dir: cfg.InputsDir}
}
