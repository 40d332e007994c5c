package mines

import (
	"fmt"
	"math/rand/v2"
)

type RevealResult int8

const (
	Safe RevealResult = iota
	Exploded
)

func (r RevealResult) String() string {
	switch r {
	case Safe:
		return "safe"
	case Exploded:
		return "exploded"
	default:
		return fmt.Sprintf("RevealResult(%d)", int8(r))
	}
}

func (r RevealResult) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

type Status int8

const (
	InProgress Status = iota
	Won
	Lost
)

func (s Status) String() string {
	switch s {
	case InProgress:
		return "in_progress"
	case Won:
		return "won"
	case Lost:
		return "lost"
	default:
		return fmt.Sprintf("Status(%d)", int8(s))
	}
}

// Over reports whether no further reveals can change the outcome.
func (s Status) Over() bool {
	return s == Won || s == Lost
}

func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Status) UnmarshalText(text []byte) error {
	v, err := ParseStatus(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

func ParseStatus(s string) (Status, error) {
	switch s {
	case "in_progress":
		return InProgress, nil
	case "won":
		return Won, nil
	case "lost":
		return Lost, nil
	default:
		return InProgress, fmt.Errorf("unknown game status %q", s)
	}
}

// Board is one game's grid together with the cells the player has dug.
// The grid is fixed at construction; only Reveal mutates the board.
type Board struct {
	params    Params
	grid      []Cell /* row-major, Mine or 0-8 */
	revealed  []bool /* row-major */
	nrevealed int
	exploded  bool
}

// New places p.NumBombs mines uniformly at random and derives the
// neighbor counts. A nil r draws from a freshly seeded generator.
func New(p Params, r *rand.Rand) (*Board, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if r == nil {
		r = NewRand(0)
	}
	return newBoard(p, placeMines(p, r)), nil
}

// NewWithMines builds a board with mines at exactly the given points.
func NewWithMines(dimSize int, points []Point) (*Board, error) {
	p := Params{DimSize: dimSize, NumBombs: len(points)}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	mines := make([]bool, p.Cells())
	for _, pt := range points {
		if !p.InBounds(pt.Row, pt.Col) {
			return nil, fmt.Errorf(
				"%w: mine at %s is outside a %dx%d grid",
				ErrInvalidConfiguration, pt, dimSize, dimSize,
			)
		}
		i := pt.Row*dimSize + pt.Col
		if mines[i] {
			return nil, fmt.Errorf(
				"%w: duplicate mine at %s", ErrInvalidConfiguration, pt,
			)
		}
		mines[i] = true
	}
	return newBoard(p, mines), nil
}

func newBoard(p Params, mines []bool) *Board {
	return &Board{
		params:   p,
		grid:     countNeighbors(p.DimSize, mines),
		revealed: make([]bool, p.Cells()),
	}
}

func (b *Board) Params() Params {
	return b.params
}

func (b *Board) DimSize() int {
	return b.params.DimSize
}

func (b *Board) NumBombs() int {
	return b.params.NumBombs
}

func (b *Board) RevealedCount() int {
	return b.nrevealed
}

// Cell returns the value at row, col. It panics when out of bounds.
func (b *Board) Cell(row, col int) Cell {
	return b.grid[row*b.params.DimSize+col]
}

func (b *Board) IsRevealed(row, col int) bool {
	return b.revealed[row*b.params.DimSize+col]
}

// Reveal digs at row, col. Digging a mine reports Exploded and loses the
// game for good. Digging a zero cell also reveals its whole connected zero
// region and the numbered cells bordering it.
func (b *Board) Reveal(row, col int) (RevealResult, error) {
	if !b.params.InBounds(row, col) {
		return Safe, fmt.Errorf(
			"%w: (%d, %d) on a %dx%d grid",
			ErrOutOfBounds, row, col, b.params.DimSize, b.params.DimSize,
		)
	}

	i := row*b.params.DimSize + col
	if b.grid[i] == Mine {
		b.mark(i)
		b.exploded = true
		return Exploded, nil
	}
	if b.revealed[i] {
		return Safe, nil
	}

	b.mark(i)
	if b.grid[i] == 0 {
		b.expand(i)
	}
	return Safe, nil
}

// expand reveals outward from the zero cell at start. Every cell is marked
// before it is queued, so each one is visited once.
func (b *Board) expand(start int) {
	n := b.params.DimSize
	todo := []int{start}
	for len(todo) > 0 {
		i := todo[len(todo)-1]
		todo = todo[:len(todo)-1]
		if b.grid[i] != 0 {
			continue
		}
		forEachNeighbor(n, i, func(j int) {
			if !b.revealed[j] {
				b.mark(j)
				todo = append(todo, j)
			}
		})
	}
}

func (b *Board) mark(i int) {
	if !b.revealed[i] {
		b.revealed[i] = true
		b.nrevealed++
	}
}

func (b *Board) Status() Status {
	switch {
	case b.exploded:
		return Lost
	case b.nrevealed == b.params.Cells()-b.params.NumBombs:
		return Won
	default:
		return InProgress
	}
}

// Snapshot returns a copy of the board for rendering.
func (b *Board) Snapshot() Snapshot {
	return Snapshot{
		dimSize:  b.params.DimSize,
		grid:     append([]Cell(nil), b.grid...),
		revealed: append([]bool(nil), b.revealed...),
	}
}
