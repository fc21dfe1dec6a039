// Package mcts implements C4: single-player Monte Carlo Tree Search over
// crossword states — selection (UCB1), expansion, random rollout, and
// cumulative (non-alternating) backpropagation, tracking the best terminal
// state witnessed rather than the most-visited root child.
//
// This component has no direct ancestor in the teacher repository, which
// performs exhaustive backtracking rather than tree search with a reward
// signal. It is grounded instead on the retrieval pack's two MCTS
// references: domino14-macondo's endgame/mcts package (node field layout
// and its use of zerolog for search logging, §4.4) and
// other_examples/IlikeChooros-go-mcts (ucb.go)'s role split between
// expansion, traversal, rollout, and a worker-supplied *rand.Rand — adapted
// here from two-player zero-sum backprop to single-player cumulative
// reward, since a crossword fill has no opponent to alternate signs
// against.
package mcts

import (
	"context"
	"math"
	"math/rand/v2"

	"github.com/rs/zerolog"

	"crosswarped.com/xwfill/internal/xwstate"
)

// explorationConstant is UCB1's c = sqrt(2), per §4.4.
var explorationConstant = math.Sqrt2

// IterationStat is one row of the run's progress, mirrored into summary.csv
// by the orchestrator (§6).
type IterationStat struct {
	Iteration           int
	BestRewardSoFar     float64
	EntriesFilledInBest int
}

// Result is the outcome of a bounded search run.
type Result struct {
	Best           *xwstate.State
	IterationsRun  int
	RootExhausted  bool
	History        []IterationStat
}

// Config bounds and seeds a search run.
type Config struct {
	Iterations int
	Rand       *rand.Rand
}

// Search runs the main MCTS loop (§4.4) to completion: I iterations, or
// until the root is terminal, or until the root is fully exhausted. ctx is
// checked only between iterations (§5) — an iteration in progress always
// runs to completion.
func Search(ctx context.Context, initial *xwstate.State, cfg Config, logger zerolog.Logger) *Result {
	root := newNode(initial, xwstate.Action{}, nil)

	best := initial
	bestReward := initial.Reward()

	res := &Result{Best: best}

	if root.terminal {
		res.RootExhausted = true
		return res
	}

	for i := 0; i < cfg.Iterations; i++ {
		if ctx.Err() != nil {
			logger.Debug().Int("iteration", i).Msg("context cancelled between iterations")
			break
		}

		leaf := selectNode(root)
		child, err := leaf.expand()
		if err != nil {
			logger.Error().Err(err).Msg("expansion failed; treating node as terminal")
			child = leaf
			child.terminal = true
		}

		candidate := child.state
		value := child.state.Reward()
		if !child.terminal {
			rolled := rollout(child.state, cfg.Rand)
			candidate = rolled
			value = rolled.Reward()
		}
		backpropagate(child, value)

		if candidate.Reward() > bestReward {
			best = candidate
			bestReward = candidate.Reward()
		}

		res.IterationsRun = i + 1
		res.History = append(res.History, IterationStat{
			Iteration:           i + 1,
			BestRewardSoFar:     bestReward,
			EntriesFilledInBest: best.NumFilled(),
		})

		if exhausted(root) {
			res.RootExhausted = true
			break
		}
	}

	res.Best = best
	return res
}

// selectNode descends from root while the current node is fully expanded
// and non-terminal, following the child with the highest UCB1 score (ties
// broken by smallest child index, §4.4).
func selectNode(root *node) *node {
	cur := root
	for cur.fullyExpanded() && !cur.terminal && len(cur.children) > 0 {
		cur = bestUCB1Child(cur)
	}
	return cur
}

func bestUCB1Child(parent *node) *node {
	var best *node
	bestScore := math.Inf(-1)
	for _, c := range parent.children {
		score := ucb1(parent, c)
		if score > bestScore {
			bestScore, best = score, c
		}
	}
	return best
}

func ucb1(parent, child *node) float64 {
	if child.visits == 0 {
		return math.Inf(1)
	}
	exploit := child.reward / float64(child.visits)
	explore := explorationConstant * math.Sqrt(math.Log(float64(parent.visits))/float64(child.visits))
	return exploit + explore
}

// rollout plays uniformly random legal actions from state, via a fresh
// scratch clone chain, until terminal, and returns the terminal state. No
// tree nodes are created here.
func rollout(state *xwstate.State, rng *rand.Rand) *xwstate.State {
	cur := state
	for !cur.IsTerminal() {
		action, ok := cur.RandomAction(rng)
		if !ok {
			break
		}
		next, err := cur.Apply(action)
		if err != nil {
			break
		}
		cur = next
	}
	return cur
}
