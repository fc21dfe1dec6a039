// Command xwfill fills a crossword grid from a word list via single-player
// Monte Carlo Tree Search and writes the result to CSV.
//
// Flag parsing and optional CPU/heap profiling are grounded on the
// teacher's own cmd/xwcli/main.go; every flag also binds to a matching
// XWFILL_* environment variable via github.com/namsral/flag, following
// domino14-macondo/config/config.go's use of the same library.
package main

import (
	"context"
	"fmt"
	"os"
	"runtime/pprof"

	"github.com/namsral/flag"

	"crosswarped.com/xwfill/internal/orchestrate"
	"crosswarped.com/xwfill/internal/xwlog"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSetWithEnvPrefix("xwfill", "XWFILL", flag.ContinueOnError)

	pathToLayout := fs.String("path_to_layout", "", "CSV path or glob for the grid layout; generates a blank grid if empty")
	numRows := fs.Int("num_rows", 4, "number of rows for a generated blank grid (ignored if path_to_layout is set)")
	numCols := fs.Int("num_cols", 5, "number of columns for a generated blank grid (ignored if path_to_layout is set)")
	pathToWords := fs.String("path_to_words", "", "CSV path or glob with an \"answer\" column; uses the bundled dictionary if empty")
	maxNumWords := fs.Int("max_num_words", 0, "cap on the number of words loaded after deduplication (0 = unbounded)")
	maxIterations := fs.Int("max_mcts_iterations", 1000, "MCTS iteration budget")
	randomSeed := fs.Int("random_seed", 0, "seed for the single RNG driving rollouts")
	outputPath := fs.String("output_path", "", "directory to write grid.csv and summary.csv into; skipped if empty")
	cpuProfile := fs.String("cpu_profile", "", "write a CPU profile to this path")
	memProfile := fs.String("mem_profile", "", "write a heap profile to this path")
	debug := fs.Bool("debug", false, "enable debug-level logging")

	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	logger := xwlog.New(*debug)

	if *cpuProfile != "" {
		f, err := os.Create(*cpuProfile)
		if err != nil {
			logger.Error().Err(err).Msg("creating CPU profile")
			return 1
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			logger.Error().Err(err).Msg("starting CPU profile")
			return 1
		}
		defer pprof.StopCPUProfile()
	}

	cfg := orchestrate.Config{
		PathToLayout:      *pathToLayout,
		NumRows:           *numRows,
		NumCols:           *numCols,
		PathToWords:       *pathToWords,
		MaxNumWords:       *maxNumWords,
		MaxMCTSIterations: *maxIterations,
		RandomSeed:        *randomSeed,
		OutputPath:        *outputPath,
	}

	reward, err := orchestrate.Run(context.Background(), cfg, logger)
	if err != nil {
		logger.Error().Err(err).Msg("run failed")
		return 1
	}
	logger.Info().Float64("final_reward", reward).Msg("done")

	if *memProfile != "" {
		f, err := os.Create(*memProfile)
		if err != nil {
			logger.Error().Err(err).Msg("creating heap profile")
			return 1
		}
		defer f.Close()
		if err := pprof.WriteHeapProfile(f); err != nil {
			logger.Error().Err(err).Msg("writing heap profile")
			return 1
		}
	}

	return 0
}
