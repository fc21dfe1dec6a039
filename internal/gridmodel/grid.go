// Package gridmodel implements C2: the static geometry of a crossword —
// cells, entries, and the crossing relation between them.
//
// Grounded on the teacher's Grid (grid.go, a [][]rune with Get/Width/Height)
// for cell storage, and on bcopeland-xword-server's Clue{Row, Col,
// Direction} model (ACROSS/DOWN) for naming an axis-tagged run anchored at a
// cell — generalized here into an explicit Entry with cross-pointers, since
// this system needs to propagate a fixed letter from one entry into the
// specific position of the entry crossing it, not merely render a grid.
package gridmodel

import "fmt"

// Axis is the direction a run of cells is read in.
type Axis int

const (
	Horizontal Axis = iota
	Vertical
)

func (a Axis) String() string {
	if a == Horizontal {
		return "across"
	}
	return "down"
}

// Cell is a 0-based (row, col) position.
type Cell struct {
	Row, Col int
}

// CellSpec describes one cell of the input layout: blocked, open-free, or
// open-fixed with FixedLetter set to an upper-case 'A'-'Z'.
type CellSpec struct {
	Blocked     bool
	FixedLetter byte // 0 means no fixed letter
}

// Crossing names the entry (and position within it) that crosses a given
// position of some other entry, or IsSet()==false if that position has no
// crossing entry (e.g. a length-1 run on the other axis).
type Crossing struct {
	EntryID int
	Pos     int
	set     bool
}

func (c Crossing) IsSet() bool { return c.set }

// Entry is a maximal run of >=2 contiguous open cells along one axis.
type Entry struct {
	ID        int
	Axis      Axis
	Cells     []Cell
	Crossings []Crossing // len(Crossings) == len(Cells)
}

func (e *Entry) Length() int { return len(e.Cells) }

// Grid is the immutable geometry built from a layout: blocked/open cells,
// fixed letters, the derived entry list, and the crossing relation.
type Grid struct {
	Rows, Cols int
	specs      [][]CellSpec // [row][col]
	Entries    []Entry

	// entryAt[axis][row][col] is the id of the entry of that axis covering
	// (row, col), or -1 if none (blocked cell, or a run of length 1).
	entryAt [2][][]int
}

// Spec returns the layout cell at (r, c).
func (g *Grid) Spec(r, c int) CellSpec { return g.specs[r][c] }

// EntryAt returns the entry of the given axis covering (r, c), or nil.
func (g *Grid) EntryAt(axis Axis, r, c int) *Entry {
	id := g.entryAt[axis][r][c]
	if id < 0 {
		return nil
	}
	return &g.Entries[id]
}

// Build derives entries and crossings from a rectangular layout. cells must
// be rectangular (every row the same length) and non-empty.
func Build(cells [][]CellSpec) (*Grid, error) {
	rows := len(cells)
	if rows == 0 {
		return nil, fmt.Errorf("layout has no rows")
	}
	cols := len(cells[0])
	if cols == 0 {
		return nil, fmt.Errorf("layout has no columns")
	}
	for r, row := range cells {
		if len(row) != cols {
			return nil, fmt.Errorf("row %d has %d columns, want %d", r, len(row), cols)
		}
	}

	g := &Grid{Rows: rows, Cols: cols, specs: cells}
	g.entryAt[Horizontal] = makeFilled(rows, cols, -1)
	g.entryAt[Vertical] = makeFilled(rows, cols, -1)

	g.scanAxis(Horizontal)
	g.scanAxis(Vertical)
	g.linkCrossings()

	return g, nil
}

func makeFilled(rows, cols, fill int) [][]int {
	grid := make([][]int, rows)
	for r := range grid {
		grid[r] = make([]int, cols)
		for c := range grid[r] {
			grid[r][c] = fill
		}
	}
	return grid
}

func (g *Grid) open(r, c int) bool {
	return !g.specs[r][c].Blocked
}

// scanAxis finds every maximal run of >=2 contiguous open cells along axis
// and appends one Entry per run, in row-major (Horizontal) or column-major
// (Vertical) order of each run's start cell.
func (g *Grid) scanAxis(axis Axis) {
	if axis == Horizontal {
		for r := 0; r < g.Rows; r++ {
			c := 0
			for c < g.Cols {
				if !g.open(r, c) {
					c++
					continue
				}
				start := c
				for c < g.Cols && g.open(r, c) {
					c++
				}
				g.addRunIfLongEnough(axis, r, start, c-start)
			}
		}
		return
	}
	for c := 0; c < g.Cols; c++ {
		r := 0
		for r < g.Rows {
			if !g.open(r, c) {
				r++
				continue
			}
			start := r
			for r < g.Rows && g.open(r, c) {
				r++
			}
			g.addRunIfLongEnough(axis, c, start, r-start)
		}
	}
}

// addRunIfLongEnough records a run of the given axis. For Horizontal, fixed
// is the row and start/length describe the column range; for Vertical,
// fixed is the column and start/length describe the row range.
func (g *Grid) addRunIfLongEnough(axis Axis, fixed, start, length int) {
	if length < 2 {
		return
	}
	id := len(g.Entries)
	cells := make([]Cell, length)
	for i := 0; i < length; i++ {
		var cell Cell
		if axis == Horizontal {
			cell = Cell{Row: fixed, Col: start + i}
		} else {
			cell = Cell{Row: start + i, Col: fixed}
		}
		cells[i] = cell
		g.entryAt[axis][cell.Row][cell.Col] = id
	}
	g.Entries = append(g.Entries, Entry{
		ID:        id,
		Axis:      axis,
		Cells:     cells,
		Crossings: make([]Crossing, length),
	})
}

// ValidateFixedLetters checks that every crossing pair of fixed letters
// agrees at its shared cell. Fixed letters are stored once per cell
// (CellSpec.FixedLetter), so a disagreement cannot arise from the CSV or
// blank layout suppliers in this repository — both entries sharing a cell
// read the same CellSpec. The check is kept as a defensive invariant (and
// because InconsistentFixedLetters is part of the spec's closed error set)
// against any future layout source that derives fixed letters per-entry
// rather than per-cell.
func (g *Grid) ValidateFixedLetters() error {
	for i := range g.Entries {
		e := &g.Entries[i]
		for pos, cross := range e.Crossings {
			if !cross.IsSet() {
				continue
			}
			cell := e.Cells[pos]
			want := g.Spec(cell.Row, cell.Col).FixedLetter
			if want == 0 {
				continue
			}
			crossEntry := &g.Entries[cross.EntryID]
			gotCell := crossEntry.Cells[cross.Pos]
			got := g.Spec(gotCell.Row, gotCell.Col).FixedLetter
			if got != 0 && got != want {
				return fmt.Errorf("cell (%d,%d) disagrees with crossing cell (%d,%d): %q vs %q",
					cell.Row, cell.Col, gotCell.Row, gotCell.Col, want, got)
			}
		}
	}
	return nil
}

// linkCrossings fills in each entry's Crossings from the entryAt tables
// built by scanAxis.
func (g *Grid) linkCrossings() {
	other := func(a Axis) Axis {
		if a == Horizontal {
			return Vertical
		}
		return Horizontal
	}
	for i := range g.Entries {
		e := &g.Entries[i]
		opp := other(e.Axis)
		for pos, cell := range e.Cells {
			crossEntry := g.EntryAt(opp, cell.Row, cell.Col)
			if crossEntry == nil {
				continue
			}
			crossPos := -1
			for p, cc := range crossEntry.Cells {
				if cc == cell {
					crossPos = p
					break
				}
			}
			e.Crossings[pos] = Crossing{EntryID: crossEntry.ID, Pos: crossPos, set: true}
		}
	}
}
