package mines

// Snapshot is a read-only view of a board: every cell value and whether
// the player has seen it.
type Snapshot struct {
	dimSize  int
	grid     []Cell
	revealed []bool
}

func (s Snapshot) DimSize() int {
	return s.dimSize
}

func (s Snapshot) At(row, col int) Cell {
	return s.grid[row*s.dimSize+col]
}

func (s Snapshot) IsRevealed(row, col int) bool {
	return s.revealed[row*s.dimSize+col]
}

// RevealedPoints lists the revealed coordinates in row-major order.
func (s Snapshot) RevealedPoints() []Point {
	points := make([]Point, 0)
	for i, ok := range s.revealed {
		if ok {
			points = append(points, Point{Row: i / s.dimSize, Col: i % s.dimSize})
		}
	}
	return points
}

// RevealAll returns a copy with every cell treated as revealed, for the
// end-of-game display.
func (s Snapshot) RevealAll() Snapshot {
	revealed := make([]bool, len(s.revealed))
	for i := range revealed {
		revealed[i] = true
	}
	return Snapshot{
		dimSize:  s.dimSize,
		grid:     s.grid,
		revealed: revealed,
	}
}

// Visible returns the string a player sees at row, col: a blank for an
// unrevealed cell, otherwise the cell's value.
func (s Snapshot) Visible(row, col int) string {
	if !s.IsRevealed(row, col) {
		return " "
	}
	return s.At(row, col).String()
}
