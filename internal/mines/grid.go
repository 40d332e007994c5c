package mines

import (
	"fmt"
	"strconv"
)

type Cell int8

const (
	Mine Cell = -1
	// 0-8 for a safe cell with given number of mined neighbors
)

func (c Cell) IsMine() bool {
	return c == Mine
}

func (c Cell) String() string {
	switch {
	case c == Mine:
		return "*"
	case 0 <= c && c <= 8:
		return strconv.Itoa(int(c))
	default:
		return "!"
	}
}

type Point struct {
	Row, Col int
}

func (p Point) String() string {
	return fmt.Sprintf("(%d, %d)", p.Row, p.Col)
}

type Params struct {
	DimSize  int
	NumBombs int
}

func (p Params) Unpack() (dimSize int, numBombs int) {
	return p.DimSize, p.NumBombs
}

// Cells returns the number of cells on a board with these params.
func (p Params) Cells() int {
	return p.DimSize * p.DimSize
}

func (p Params) Validate() error {
	if p.DimSize < 1 {
		return fmt.Errorf(
			"%w: dim_size must be positive, got %d",
			ErrInvalidConfiguration, p.DimSize,
		)
	}
	if p.NumBombs < 0 {
		return fmt.Errorf(
			"%w: num_bombs must not be negative, got %d",
			ErrInvalidConfiguration, p.NumBombs,
		)
	}
	if p.NumBombs >= p.Cells() {
		return fmt.Errorf(
			"%w: num_bombs must be less than %d, got %d",
			ErrInvalidConfiguration, p.Cells(), p.NumBombs,
		)
	}
	return nil
}

func (p Params) InBounds(row, col int) bool {
	return 0 <= row && row < p.DimSize && 0 <= col && col < p.DimSize
}
