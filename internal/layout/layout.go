// Package layout implements the layout-ingestion half of the orchestrator's
// suppliers (§6): turning a CSV file or a pair of dimensions into the
// [][]gridmodel.CellSpec that C2 builds a Grid from.
//
// Grounded on the teacher's own CLI loading (cmd/xwcli/main.go's
// loadFromFile: bufio.Scanner, one validity check per line, a plain
// *os.File opened by path) generalized from "one word per line" to "one
// grid row per CSV record," and on §9's closed dispatch-interface
// decision: Source has exactly two variants, NewLayout and ExistingLayout.
package layout

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"crosswarped.com/xwfill/internal/gridmodel"
	"crosswarped.com/xwfill/internal/xwerr"
)

// Source is the closed set of layout suppliers (§9): a blank grid of given
// dimensions, or an existing CSV file.
type Source interface {
	Load() ([][]gridmodel.CellSpec, error)
}

// NewLayout generates an all-open grid of Rows x Cols cells.
type NewLayout struct {
	Rows, Cols int
}

func (n NewLayout) Load() ([][]gridmodel.CellSpec, error) {
	if n.Rows <= 0 || n.Cols <= 0 {
		return nil, fmt.Errorf("%w: num_rows and num_cols must be positive, got %dx%d",
			xwerr.ErrInvalidLayout, n.Rows, n.Cols)
	}
	cells := make([][]gridmodel.CellSpec, n.Rows)
	for r := range cells {
		cells[r] = make([]gridmodel.CellSpec, n.Cols)
	}
	return cells, nil
}

// ExistingLayout reads a layout from a CSV file at Path: a header row, an
// index column, blocked cells as empty strings, open-free cells as "_", and
// open-fixed cells as a single upper- or lower-case letter. The separator
// (comma or semicolon) is auto-detected from the header line. Path may be a
// glob; the first match in lexical order is read.
type ExistingLayout struct {
	Path string
}

func (e ExistingLayout) Load() ([][]gridmodel.CellSpec, error) {
	path := e.Path
	if matches, err := filepath.Glob(e.Path); err == nil && len(matches) > 0 {
		path = matches[0]
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: opening %s: %v", xwerr.ErrInvalidLayout, path, err)
	}
	defer f.Close()
	return parseCSV(f)
}

func detectSeparator(headerLine string) rune {
	if strings.Count(headerLine, ";") > strings.Count(headerLine, ",") {
		return ';'
	}
	return ','
}

func parseCSV(r io.Reader) ([][]gridmodel.CellSpec, error) {
	buf, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: reading layout: %v", xwerr.ErrInvalidLayout, err)
	}
	lines := strings.SplitN(string(buf), "\n", 2)
	if len(lines) == 0 || strings.TrimSpace(lines[0]) == "" {
		return nil, fmt.Errorf("%w: layout file is empty", xwerr.ErrInvalidLayout)
	}
	sep := detectSeparator(lines[0])

	reader := csv.NewReader(strings.NewReader(string(buf)))
	reader.Comma = sep
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: parsing CSV: %v", xwerr.ErrInvalidLayout, err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("%w: layout has no data rows", xwerr.ErrInvalidLayout)
	}

	header := records[0]
	dataRows := records[1:]
	cols := len(header) - 1
	if cols <= 0 {
		return nil, fmt.Errorf("%w: layout header has no grid columns", xwerr.ErrInvalidLayout)
	}

	cells := make([][]gridmodel.CellSpec, len(dataRows))
	for r, row := range dataRows {
		if len(row) != len(header) {
			return nil, fmt.Errorf("%w: row %d has %d fields, want %d", xwerr.ErrInvalidLayout, r, len(row), len(header))
		}
		cells[r] = make([]gridmodel.CellSpec, cols)
		for c := 0; c < cols; c++ {
			spec, err := parseCell(row[c+1])
			if err != nil {
				return nil, fmt.Errorf("%w: cell (%d,%d): %v", xwerr.ErrInvalidLayout, r, c, err)
			}
			cells[r][c] = spec
		}
	}
	return cells, nil
}

func parseCell(raw string) (gridmodel.CellSpec, error) {
	v := strings.TrimSpace(raw)
	switch {
	case v == "":
		return gridmodel.CellSpec{Blocked: true}, nil
	case v == "_":
		return gridmodel.CellSpec{}, nil
	case len(v) == 1 && isLetter(v[0]):
		return gridmodel.CellSpec{FixedLetter: toUpper(v[0])}, nil
	default:
		return gridmodel.CellSpec{}, fmt.Errorf("cell value %q is not empty, \"_\", or a single letter", raw)
	}
}

func isLetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func toUpper(b byte) byte {
	if b >= 'a' && b <= 'z' {
		return b - ('a' - 'A')
	}
	return b
}

// WriteGridCSV mirrors the input layout shape (§6): one row per grid row, a
// leading index column, and letters (fixed or assigned) where the state has
// a committed letter, "_" where a cell is open but still empty, and an
// empty field for blocked cells.
func WriteGridCSV(w io.Writer, grid *gridmodel.Grid, letters [][]byte) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	header := make([]string, grid.Cols+1)
	header[0] = ""
	for c := 0; c < grid.Cols; c++ {
		header[c+1] = fmt.Sprintf("c%d", c)
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	for r := 0; r < grid.Rows; r++ {
		row := make([]string, grid.Cols+1)
		row[0] = fmt.Sprintf("r%d", r)
		for c := 0; c < grid.Cols; c++ {
			row[c+1] = cellRepr(grid.Spec(r, c), letters[r][c])
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	return cw.Error()
}

func cellRepr(spec gridmodel.CellSpec, letter byte) string {
	if spec.Blocked {
		return ""
	}
	if letter != 0 {
		return string(letter)
	}
	return "_"
}
