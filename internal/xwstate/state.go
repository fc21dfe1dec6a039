// Package xwstate implements C3: the mutable partial assignment of words to
// entries, including the constraint-propagation "apply" protocol that is
// the core of this system's search.
//
// Grounded on the teacher's prefilter function (generator.go): prefilter
// recomputes, for every line on one axis, the CharSet of letters still
// available from the crossing axis and calls PossibleLines.FilterAny to
// shrink it. Apply's step 3 is the same idea — commit a letter, refilter
// the crossing entry's candidates — narrowed from a whole-grid batched pass
// to the single entry touched by one action, since this system commits one
// entry per tree-search action rather than deciding a whole grid at once.
package xwstate

import (
	"fmt"
	"math/rand/v2"

	"crosswarped.com/xwfill/internal/gridmodel"
	"crosswarped.com/xwfill/internal/wordindex"
	"crosswarped.com/xwfill/internal/xwerr"
)

// Action names one legal move: place word (identified by WordID within the
// catalogue's length bucket) into entry EntryID.
type Action struct {
	EntryID int
	WordID  int
	Word    string
}

// State is a snapshot of a partial crossword fill. The grid geometry and
// word index are shared by reference across every State cloned from the
// same initial state; everything else is owned exclusively by this State.
type State struct {
	grid  *gridmodel.Grid
	index *wordindex.Index

	filled       []bool
	assignedWord []string
	patterns     [][]byte // per entry, 0 byte = unknown
	candidates   [][]int  // per entry, sorted word ids; nil once filled
	numFilled    int
}

// NewInitial builds C2's initial_state: every entry unfilled, patterns
// seeded from fixed letters, candidate sets seeded by querying index.
func NewInitial(grid *gridmodel.Grid, index *wordindex.Index) (*State, error) {
	if err := grid.ValidateFixedLetters(); err != nil {
		return nil, fmt.Errorf("%w: %v", xwerr.ErrInconsistentFixedLetters, err)
	}

	n := len(grid.Entries)
	s := &State{
		grid:         grid,
		index:        index,
		filled:       make([]bool, n),
		assignedWord: make([]string, n),
		patterns:     make([][]byte, n),
		candidates:   make([][]int, n),
	}

	for id := range grid.Entries {
		e := &grid.Entries[id]
		length := e.Length()
		pattern := make([]byte, length)
		for i, cell := range e.Cells {
			pattern[i] = grid.Spec(cell.Row, cell.Col).FixedLetter
		}
		s.patterns[id] = pattern
		s.candidates[id] = index.Query(length, constraintsFromPattern(pattern))
	}
	return s, nil
}

func constraintsFromPattern(pattern []byte) []wordindex.Constraint {
	var cs []wordindex.Constraint
	for i, b := range pattern {
		if b != 0 {
			cs = append(cs, wordindex.Constraint{Pos: i, Letter: b})
		}
	}
	return cs
}

// NumEntries returns the total number of entries in the grid.
func (s *State) NumEntries() int { return len(s.grid.Entries) }

// NumFilled returns how many entries are currently filled.
func (s *State) NumFilled() int { return s.numFilled }

// Reward is the fraction of entries filled, in [0,1]. A grid with no
// entries is vacuously complete (empty product), reward 1.
func (s *State) Reward() float64 {
	total := s.NumEntries()
	if total == 0 {
		return 1
	}
	return float64(s.numFilled) / float64(total)
}

// nextEntry returns the id of the unfilled entry with the smallest
// candidate-set size, ties broken by smallest id (the fail-first
// heuristic), or -1 if every entry is filled.
func (s *State) nextEntry() int {
	best := -1
	bestCount := -1
	for id := range s.grid.Entries {
		if s.filled[id] {
			continue
		}
		c := len(s.candidates[id])
		if best == -1 || c < bestCount {
			best, bestCount = id, c
		}
	}
	return best
}

// IsTerminal reports whether every entry is filled, or the entry that
// fail-first would act on next has no candidates left (a dead end: no
// legal action exists).
func (s *State) IsTerminal() bool {
	if s.numFilled == s.NumEntries() {
		return true
	}
	next := s.nextEntry()
	return next == -1 || len(s.candidates[next]) == 0
}

// LegalActions enumerates every (entry, word) action available for the next
// entry to be filled, in the word index's canonical order.
func (s *State) LegalActions() []Action {
	next := s.nextEntry()
	if next == -1 {
		return nil
	}
	length := s.grid.Entries[next].Length()
	ids := s.candidates[next]
	actions := make([]Action, len(ids))
	for i, id := range ids {
		actions[i] = Action{EntryID: next, WordID: id, Word: s.index.Word(length, id)}
	}
	return actions
}

// RandomAction uniformly samples one action from LegalActions using rng.
// The caller must ensure the state is not terminal.
func (s *State) RandomAction(rng *rand.Rand) (Action, bool) {
	actions := s.LegalActions()
	if len(actions) == 0 {
		return Action{}, false
	}
	return actions[rng.IntN(len(actions))], true
}

// Clone returns a deep copy of the per-entry mutable structures, sharing
// the grid and word index by reference.
func (s *State) Clone() *State {
	n := len(s.grid.Entries)
	clone := &State{
		grid:         s.grid,
		index:        s.index,
		filled:       append([]bool(nil), s.filled...),
		assignedWord: append([]string(nil), s.assignedWord...),
		patterns:     make([][]byte, n),
		candidates:   make([][]int, n),
		numFilled:    s.numFilled,
	}
	for id := 0; id < n; id++ {
		clone.patterns[id] = append([]byte(nil), s.patterns[id]...)
		if s.candidates[id] != nil {
			clone.candidates[id] = append([]int(nil), s.candidates[id]...)
		}
	}
	return clone
}

// Apply returns a child state with action applied: a entries are cloned,
// the acted-on entry is marked filled, and the constraint-propagation
// protocol (§4.3) refilters crossing entries and removes the used word from
// every other same-length candidate set.
func (s *State) Apply(a Action) (*State, error) {
	if a.EntryID < 0 || a.EntryID >= s.NumEntries() {
		return nil, fmt.Errorf("%w: entry id %d out of range", xwerr.ErrInternal, a.EntryID)
	}
	entry := &s.grid.Entries[a.EntryID]
	if len(a.Word) != entry.Length() {
		return nil, fmt.Errorf("%w: word %q has length %d, entry %d wants %d",
			xwerr.ErrInternal, a.Word, len(a.Word), a.EntryID, entry.Length())
	}

	child := s.Clone()
	child.filled[a.EntryID] = true
	child.assignedWord[a.EntryID] = a.Word
	child.patterns[a.EntryID] = []byte(a.Word)
	child.candidates[a.EntryID] = nil
	child.numFilled++

	for i, cross := range entry.Crossings {
		if !cross.IsSet() || child.filled[cross.EntryID] {
			continue
		}
		letter := a.Word[i]
		crossPattern := child.patterns[cross.EntryID]
		if crossPattern[cross.Pos] == 0 {
			crossPattern[cross.Pos] = letter
		} else if crossPattern[cross.Pos] != letter {
			return nil, fmt.Errorf("%w: entry %d position %d already committed to %q, got %q",
				xwerr.ErrInternal, cross.EntryID, cross.Pos, crossPattern[cross.Pos], letter)
		}
		crossLen := s.grid.Entries[cross.EntryID].Length()
		posting := s.index.Posting(crossLen, cross.Pos, letter)
		child.candidates[cross.EntryID] = wordindex.IntersectSorted(child.candidates[cross.EntryID], posting)
	}

	for id := range s.grid.Entries {
		if id == a.EntryID || child.filled[id] {
			continue
		}
		if s.grid.Entries[id].Length() != len(a.Word) {
			continue
		}
		child.candidates[id] = wordindex.RemoveID(child.candidates[id], a.WordID)
	}

	return child, nil
}

// Letters renders the grid's committed letters: 0 for a cell whose entries
// (if any) have no committed letter yet, else the upper-case letter.
func (s *State) Letters() [][]byte {
	out := make([][]byte, s.grid.Rows)
	for r := range out {
		out[r] = make([]byte, s.grid.Cols)
	}
	for id := range s.grid.Entries {
		e := &s.grid.Entries[id]
		for i, cell := range e.Cells {
			if b := s.patterns[id][i]; b != 0 {
				out[cell.Row][cell.Col] = b
			}
		}
	}
	return out
}

// AssignedWord returns the word assigned to entry id, or "" if unfilled.
func (s *State) AssignedWord(id int) string { return s.assignedWord[id] }

// Filled reports whether entry id is filled.
func (s *State) Filled(id int) bool { return s.filled[id] }

// Grid exposes the underlying static geometry (read-only use).
func (s *State) Grid() *gridmodel.Grid { return s.grid }
