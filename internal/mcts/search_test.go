package mcts

import (
	"context"
	"math/rand/v2"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crosswarped.com/xwfill/internal/gridmodel"
	"crosswarped.com/xwfill/internal/wordindex"
	"crosswarped.com/xwfill/internal/xwstate"
)

func open() gridmodel.CellSpec    { return gridmodel.CellSpec{} }
func blocked() gridmodel.CellSpec { return gridmodel.CellSpec{Blocked: true} }

// buildCrossGrid returns a single horizontal/vertical pair of length-3
// entries crossing at the top-left cell, the smallest grid that exercises
// both selection and crossing propagation.
func buildCrossGrid(t *testing.T) *gridmodel.Grid {
	t.Helper()
	g, err := gridmodel.Build([][]gridmodel.CellSpec{
		{open(), open(), open()},
		{open(), blocked(), blocked()},
		{open(), blocked(), blocked()},
	})
	require.NoError(t, err)
	require.Len(t, g.Entries, 2)
	return g
}

func newState(t *testing.T, g *gridmodel.Grid, words []string) *xwstate.State {
	t.Helper()
	ix := wordindex.Build(words, 3, 0)
	s, err := xwstate.NewInitial(g, ix)
	require.NoError(t, err)
	return s
}

// TestSearch_CrossGridReachesRewardOne mirrors the spec's end-to-end
// scenario: a small grid, a handful of three-letter words, enough
// iterations and a fixed seed to find a full fill.
func TestSearch_CrossGridReachesRewardOne(t *testing.T) {
	g := buildCrossGrid(t)
	words := []string{"CAT", "ARE", "TEN", "CAR", "ATE", "REN"}
	s := newState(t, g, words)

	cfg := Config{Iterations: 200, Rand: rand.New(rand.NewPCG(0, 0))}
	res := Search(context.Background(), s, cfg, zerolog.Nop())

	assert.Equal(t, 1.0, res.Best.Reward())
	assert.True(t, res.Best.Filled(0))
	assert.True(t, res.Best.Filled(1))
}

// TestSearch_NoSolutionStaysBelowOne checks that a word list with no
// crossing-compatible pair never reports reward 1, and that the root
// eventually reports exhaustion rather than burning the whole budget.
func TestSearch_NoSolutionStaysBelowOne(t *testing.T) {
	g := buildCrossGrid(t)
	words := []string{"CAT", "DOG"} // no shared first letter
	s := newState(t, g, words)

	cfg := Config{Iterations: 200, Rand: rand.New(rand.NewPCG(1, 1))}
	res := Search(context.Background(), s, cfg, zerolog.Nop())

	assert.Less(t, res.Best.Reward(), 1.0)
	assert.True(t, res.RootExhausted)
}

// TestSearch_DeterministicForFixedSeed runs the same search twice with the
// same seed and asserts identical outcomes (§8 determinism requirement).
func TestSearch_DeterministicForFixedSeed(t *testing.T) {
	g := buildCrossGrid(t)
	words := []string{"CAT", "ARE", "TEN", "CAR", "ATE", "REN"}

	run := func() *Result {
		s := newState(t, g, words)
		cfg := Config{Iterations: 50, Rand: rand.New(rand.NewPCG(7, 7))}
		return Search(context.Background(), s, cfg, zerolog.Nop())
	}

	a, b := run(), run()
	assert.Equal(t, a.Best.Reward(), b.Best.Reward())
	assert.Equal(t, a.IterationsRun, b.IterationsRun)
	assert.Equal(t, a.RootExhausted, b.RootExhausted)
	assert.Equal(t, len(a.History), len(b.History))
	for i := range a.History {
		assert.Equal(t, a.History[i], b.History[i])
	}
}

// TestSearch_AlreadyTerminalInitialState covers a grid with no entries at
// all: the root is terminal immediately and the loop never runs.
func TestSearch_AlreadyTerminalInitialState(t *testing.T) {
	g, err := gridmodel.Build([][]gridmodel.CellSpec{{blocked()}})
	require.NoError(t, err)
	ix := wordindex.Build([]string{"CAT"}, 3, 0)
	s, err := xwstate.NewInitial(g, ix)
	require.NoError(t, err)

	cfg := Config{Iterations: 100, Rand: rand.New(rand.NewPCG(0, 0))}
	res := Search(context.Background(), s, cfg, zerolog.Nop())

	assert.Equal(t, 1.0, res.Best.Reward())
	assert.True(t, res.RootExhausted)
	assert.Equal(t, 0, res.IterationsRun)
}

// TestSearch_ContextCancellationStopsEarly confirms that a cancelled
// context halts the loop between iterations without erroring.
func TestSearch_ContextCancellationStopsEarly(t *testing.T) {
	g := buildCrossGrid(t)
	words := []string{"CAT", "DOG"}
	s := newState(t, g, words)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cfg := Config{Iterations: 1000, Rand: rand.New(rand.NewPCG(0, 0))}
	res := Search(ctx, s, cfg, zerolog.Nop())

	assert.Equal(t, 0, res.IterationsRun)
}
