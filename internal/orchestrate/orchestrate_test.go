package orchestrate

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_BlankGridWithFileWordsReachesFullReward(t *testing.T) {
	dir := t.TempDir()
	wordsPath := filepath.Join(dir, "words.csv")
	require.NoError(t, os.WriteFile(wordsPath, []byte("answer\nAB\nCD\nAC\nBD\n"), 0o644))

	outDir := filepath.Join(dir, "out")
	cfg := Config{
		NumRows:           2,
		NumCols:           2,
		PathToWords:       wordsPath,
		MaxMCTSIterations: 100,
		RandomSeed:        0,
		OutputPath:        outDir,
	}

	reward, err := Run(context.Background(), cfg, zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, 1.0, reward)

	gridBytes, err := os.ReadFile(filepath.Join(outDir, "grid.csv"))
	require.NoError(t, err)
	assert.NotEmpty(t, gridBytes)

	summaryBytes, err := os.ReadFile(filepath.Join(outDir, "summary.csv"))
	require.NoError(t, err)
	assert.Contains(t, string(summaryBytes), "iteration,best_reward_so_far,entries_filled_in_best")
}

func TestRun_RejectsMissingLayoutFile(t *testing.T) {
	cfg := Config{
		PathToLayout:      "/nonexistent/layout.csv",
		MaxMCTSIterations: 10,
	}
	_, err := Run(context.Background(), cfg, zerolog.Nop())
	assert.Error(t, err)
}

func TestRun_RejectsMissingWordsFile(t *testing.T) {
	cfg := Config{
		NumRows:           2,
		NumCols:           2,
		PathToWords:       "/nonexistent/words.csv",
		MaxMCTSIterations: 10,
	}
	_, err := Run(context.Background(), cfg, zerolog.Nop())
	assert.Error(t, err)
}

func TestRun_NoOutputPathSkipsFileWrites(t *testing.T) {
	dir := t.TempDir()
	wordsPath := filepath.Join(dir, "words.csv")
	require.NoError(t, os.WriteFile(wordsPath, []byte("answer\nAB\nCD\n"), 0o644))

	cfg := Config{
		NumRows:           2,
		NumCols:           2,
		PathToWords:       wordsPath,
		MaxMCTSIterations: 20,
	}
	_, err := Run(context.Background(), cfg, zerolog.Nop())
	require.NoError(t, err)
}
