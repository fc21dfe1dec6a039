package mcts

import "crosswarped.com/xwfill/internal/xwstate"

// node is one tree node: a state, the action that produced it (zero value
// for the root), a parent back-pointer for backpropagation, its still-
// untried actions, and its already-expanded children.
//
// Field layout grounded on domino14-macondo/endgame/mcts's mctsNode (move,
// state, nPlays, value, parent, children), adapted from a map keyed by move
// description to a slice indexed by expansion order, since this system
// needs a stable "smallest index" tie-break (§4.4) that a map can't give.
type node struct {
	state  *xwstate.State
	action xwstate.Action
	parent *node

	untried  []xwstate.Action
	children []*node

	visits int
	reward float64

	terminal bool
}

func newNode(state *xwstate.State, action xwstate.Action, parent *node) *node {
	n := &node{state: state, action: action, parent: parent, terminal: state.IsTerminal()}
	if !n.terminal {
		n.untried = state.LegalActions()
	}
	return n
}

func (n *node) fullyExpanded() bool { return len(n.untried) == 0 }

// expand applies the next untried action (in legal-actions order) and
// attaches the resulting child. If n is terminal, it returns n unchanged.
func (n *node) expand() (*node, error) {
	if n.terminal {
		return n, nil
	}
	action := n.untried[0]
	n.untried = n.untried[1:]

	childState, err := n.state.Apply(action)
	if err != nil {
		return nil, err
	}
	child := newNode(childState, action, n)
	n.children = append(n.children, child)
	return child, nil
}

// backpropagate walks from n up to the root, adding value to every node's
// cumulative reward. Single-player: no sign flip at any level (§4.4).
func backpropagate(n *node, value float64) {
	for cur := n; cur != nil; cur = cur.parent {
		cur.visits++
		cur.reward += value
	}
}

// exhausted reports whether n and every node reachable from it is terminal,
// meaning the search loop can make no further progress. Checked each
// iteration so the run can stop before the iteration budget is spent.
func exhausted(n *node) bool {
	if n.terminal {
		return true
	}
	if !n.fullyExpanded() || len(n.children) == 0 {
		return false
	}
	for _, c := range n.children {
		if !exhausted(c) {
			return false
		}
	}
	return true
}
