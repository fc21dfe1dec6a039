// Package orchestrate implements C5: wiring the layout and word suppliers
// into the core (C1-C4) and persisting the result, as driven by
// cmd/xwfill.
package orchestrate

import (
	"context"
	"encoding/csv"
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strconv"

	"github.com/rs/zerolog"

	"crosswarped.com/xwfill/internal/gridmodel"
	"crosswarped.com/xwfill/internal/layout"
	"crosswarped.com/xwfill/internal/mcts"
	"crosswarped.com/xwfill/internal/wordindex"
	"crosswarped.com/xwfill/internal/wordsource"
	"crosswarped.com/xwfill/internal/xwstate"
)

// Config mirrors the CLI surface (SPEC_FULL.md §6), already parsed.
type Config struct {
	PathToLayout      string
	NumRows, NumCols  int
	PathToWords       string
	MaxNumWords       int
	MaxMCTSIterations int
	RandomSeed        int
	OutputPath        string
}

// Run builds the grid and word index, runs the search, and — if
// cfg.OutputPath is set — writes grid.csv and summary.csv there. It logs a
// human-readable summary via logger and returns the final reward and any
// setup error (InvalidLayout/InvalidWordList/InconsistentFixedLetters).
// Exhaustion without a full fill is not an error (§7): it is logged and
// reflected only in the returned reward.
func Run(ctx context.Context, cfg Config, logger zerolog.Logger) (float64, error) {
	grid, err := buildGrid(cfg)
	if err != nil {
		return 0, err
	}
	logger.Info().Int("rows", grid.Rows).Int("cols", grid.Cols).Int("entries", len(grid.Entries)).Msg("grid built")

	index, err := buildIndex(cfg, grid)
	if err != nil {
		return 0, err
	}
	logger.Info().Int("catalogue_size", index.Len()).Msg("word index built")

	initial, err := xwstate.NewInitial(grid, index)
	if err != nil {
		return 0, err
	}
	if initial.IsTerminal() {
		logger.Info().Float64("reward", initial.Reward()).Msg("initial state already terminal")
	}

	rng := rand.New(rand.NewPCG(uint64(cfg.RandomSeed), uint64(cfg.RandomSeed)))
	res := mcts.Search(ctx, initial, mcts.Config{Iterations: cfg.MaxMCTSIterations, Rand: rng}, logger)

	if res.RootExhausted && res.Best.Reward() < 1 {
		logger.Info().Float64("reward", res.Best.Reward()).Msg("search exhausted without a complete fill")
	}
	logger.Info().
		Float64("reward", res.Best.Reward()).
		Int("entries_filled", res.Best.NumFilled()).
		Int("entries_total", res.Best.NumEntries()).
		Int("iterations_run", res.IterationsRun).
		Msg("search finished")

	if cfg.OutputPath != "" {
		if err := writeOutputs(cfg.OutputPath, res); err != nil {
			return res.Best.Reward(), err
		}
	}

	return res.Best.Reward(), nil
}

func buildGrid(cfg Config) (*gridmodel.Grid, error) {
	var src layout.Source
	if cfg.PathToLayout != "" {
		src = layout.ExistingLayout{Path: cfg.PathToLayout}
	} else {
		src = layout.NewLayout{Rows: cfg.NumRows, Cols: cfg.NumCols}
	}
	cells, err := src.Load()
	if err != nil {
		return nil, err
	}
	return gridmodel.Build(cells)
}

func buildIndex(cfg Config, grid *gridmodel.Grid) (*wordindex.Index, error) {
	var src wordsource.Source
	if cfg.PathToWords != "" {
		src = wordsource.FileWords{Paths: []string{cfg.PathToWords}, MaxWords: cfg.MaxNumWords}
	} else {
		src = wordsource.DictionaryWords{}
	}
	words, err := src.Load()
	if err != nil {
		return nil, err
	}

	maxLen := 2
	for i := range grid.Entries {
		if l := grid.Entries[i].Length(); l > maxLen {
			maxLen = l
		}
	}
	return wordindex.Build(words, maxLen, cfg.MaxNumWords), nil
}

func writeOutputs(dir string, res *mcts.Result) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating output directory %s: %w", dir, err)
	}

	gridFile, err := os.Create(filepath.Join(dir, "grid.csv"))
	if err != nil {
		return fmt.Errorf("creating grid.csv: %w", err)
	}
	defer gridFile.Close()
	if err := layout.WriteGridCSV(gridFile, res.Best.Grid(), res.Best.Letters()); err != nil {
		return fmt.Errorf("writing grid.csv: %w", err)
	}

	summaryFile, err := os.Create(filepath.Join(dir, "summary.csv"))
	if err != nil {
		return fmt.Errorf("creating summary.csv: %w", err)
	}
	defer summaryFile.Close()
	return writeSummaryCSV(summaryFile, res.History)
}

func writeSummaryCSV(f *os.File, history []mcts.IterationStat) error {
	w := csv.NewWriter(f)
	defer w.Flush()
	if err := w.Write([]string{"iteration", "best_reward_so_far", "entries_filled_in_best"}); err != nil {
		return err
	}
	for _, h := range history {
		row := []string{
			strconv.Itoa(h.Iteration),
			strconv.FormatFloat(h.BestRewardSoFar, 'f', -1, 64),
			strconv.Itoa(h.EntriesFilledInBest),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return w.Error()
}
