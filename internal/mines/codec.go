package mines

import (
	"bytes"
	"encoding/gob"
	"fmt"
)

type boardState struct {
	DimSize, NumBombs int
	Grid              []Cell
	Revealed          []bool
	Exploded          bool
}

// [Board] implements [encoding.BinaryMarshaler]
func (b *Board) MarshalBinary() ([]byte, error) {
	var buf bytes.Buffer
	err := gob.NewEncoder(&buf).Encode(boardState{
		DimSize:  b.params.DimSize,
		NumBombs: b.params.NumBombs,
		Grid:     b.grid,
		Revealed: b.revealed,
		Exploded: b.exploded,
	})
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// [Board] implements [encoding.BinaryUnmarshaler]
func (b *Board) UnmarshalBinary(data []byte) error {
	var state boardState
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&state); err != nil {
		return err
	}

	p := Params{DimSize: state.DimSize, NumBombs: state.NumBombs}
	if err := p.Validate(); err != nil {
		return fmt.Errorf("%w: %w", errCorruptState, err)
	}
	if len(state.Grid) != p.Cells() || len(state.Revealed) != p.Cells() {
		return fmt.Errorf(
			"%w: expected %d cells, got grid=%d revealed=%d",
			errCorruptState, p.Cells(), len(state.Grid), len(state.Revealed),
		)
	}

	mines := make([]bool, p.Cells())
	nmines, nrevealed := 0, 0
	exploded := false
	for i, c := range state.Grid {
		if c < Mine || c > 8 {
			return fmt.Errorf("%w: cell %d has value %d", errCorruptState, i, c)
		}
		if c == Mine {
			mines[i] = true
			nmines++
		}
		if state.Revealed[i] {
			nrevealed++
			exploded = exploded || c == Mine
		}
	}
	if nmines != p.NumBombs {
		return fmt.Errorf(
			"%w: expected %d mines, got %d", errCorruptState, p.NumBombs, nmines,
		)
	}
	for i, c := range countNeighbors(p.DimSize, mines) {
		if state.Grid[i] != c {
			return fmt.Errorf(
				"%w: cell %d holds %d, its neighbors give %d",
				errCorruptState, i, state.Grid[i], c,
			)
		}
	}
	if state.Exploded != exploded {
		return fmt.Errorf(
			"%w: exploded=%t disagrees with the revealed cells",
			errCorruptState, state.Exploded,
		)
	}

	*b = Board{
		params:    p,
		grid:      state.Grid,
		revealed:  state.Revealed,
		nrevealed: nrevealed,
		exploded:  state.Exploded,
	}
	return nil
}

func DecodeBoard(data []byte) (*Board, error) {
	var b Board
	if err := b.UnmarshalBinary(data); err != nil {
		return nil, err
	}
	return &b, nil
}
