package maze

import (
	"fmt"
	"strings"
)

// Kind of a single cell in the grid.
type Kind uint8

const (
	CellEmpty    Kind = 0 // cell the agent can move to
	CellOccupied Kind = 1 // cell containing a wall
	// marker for the agent's location in an observation vector
	cellAgent = 2.0
)

// Position of a cell as a (column, row) pair, (0, 0) being the upper left
// corner of the maze. Note that the grid itself is stored row-major; Grid.index
// is the only place where the two conventions are converted.
type Position struct {
	Col int
	Row int
}

func (p Position) String() string {
	return fmt.Sprintf("(%d, %d)", p.Col, p.Row)
}

// Grid is an immutable maze layout.
type Grid struct {
	cells []Kind // row-major
	rows  int
	cols  int
}

// NewGrid creates a grid from rows of cell kinds. All rows must have the
// same length.
func NewGrid(rows [][]Kind) (Grid, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return Grid{}, fmt.Errorf("grid must have at least one cell")
	}
	cols := len(rows[0])
	cells := make([]Kind, 0, len(rows)*cols)
	for i, row := range rows {
		if len(row) != cols {
			return Grid{}, fmt.Errorf("row %d has %d cells, want %d", i, len(row), cols)
		}
		cells = append(cells, row...)
	}
	return Grid{cells: cells, rows: len(rows), cols: cols}, nil
}

// ParseGrid builds a grid from a text sketch with one line per row,
// '.' for empty cells and '#' for walls. Blank lines are skipped.
func ParseGrid(text string) (Grid, error) {
	rows := make([][]Kind, 0)
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		row := make([]Kind, 0, len(line))
		for _, c := range line {
			switch c {
			case '.':
				row = append(row, CellEmpty)
			case '#':
				row = append(row, CellOccupied)
			default:
				return Grid{}, fmt.Errorf("unexpected character %q in maze sketch", c)
			}
		}
		rows = append(rows, row)
	}
	return NewGrid(rows)
}

func (g Grid) Rows() int { return g.rows }
func (g Grid) Cols() int { return g.cols }

// Size is the total cell count.
func (g Grid) Size() int { return g.rows * g.cols }

// index converts a (col, row) position to the row-major storage index.
func (g Grid) index(p Position) int {
	return p.Row*g.cols + p.Col
}

func (g Grid) Contains(p Position) bool {
	return p.Col >= 0 && p.Col < g.cols && p.Row >= 0 && p.Row < g.rows
}

func (g Grid) At(p Position) Kind {
	return g.cells[g.index(p)]
}

func (g Grid) Occupied(p Position) bool {
	return g.At(p) == CellOccupied
}

// Sketch renders the grid back to its text form.
func (g Grid) Sketch() string {
	var b strings.Builder
	for r := 0; r < g.rows; r++ {
		for c := 0; c < g.cols; c++ {
			if g.Occupied(Position{Col: c, Row: r}) {
				b.WriteByte('#')
			} else {
				b.WriteByte('.')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}
