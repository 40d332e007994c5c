package handlers

import (
	"github.com/gorilla/schema"

	"github.com/vancomm/minesweeper/internal/mines"
	"github.com/vancomm/minesweeper/internal/render"
	"github.com/vancomm/minesweeper/internal/repository"
)

var decoder = newDecoder()

func newDecoder() *schema.Decoder {
	dec := schema.NewDecoder()
	dec.IgnoreUnknownKeys(true)
	return dec
}

type CreateGameDTO struct {
	DimSize  int `schema:"dim_size"`
	NumBombs int `schema:"num_bombs"`
}

// ParseCreateGameDTO reads the board size from src, falling back to
// defaults for absent keys.
func ParseCreateGameDTO(src map[string][]string, defaults mines.Params) (CreateGameDTO, error) {
	dto := CreateGameDTO{
		DimSize:  defaults.DimSize,
		NumBombs: defaults.NumBombs,
	}
	err := decoder.Decode(&dto, src)
	return dto, err
}

func (dto CreateGameDTO) Params() mines.Params {
	return mines.Params{DimSize: dto.DimSize, NumBombs: dto.NumBombs}
}

type RevealDTO struct {
	Row int `schema:"row,required"`
	Col int `schema:"col,required"`
}

func ParseRevealDTO(src map[string][]string) (RevealDTO, error) {
	var dto RevealDTO
	err := decoder.Decode(&dto, src)
	return dto, err
}

type GameSessionDTO struct {
	ID        string              `json:"id"`
	Token     string              `json:"token,omitempty"`
	DimSize   int                 `json:"dim_size"`
	NumBombs  int                 `json:"num_bombs"`
	Status    mines.Status        `json:"status"`
	Result    *mines.RevealResult `json:"result,omitempty"`
	Revealed  int                 `json:"revealed"`
	Grid      [][]string          `json:"grid"`
	Board     string              `json:"board"`
	StartedAt int64               `json:"started_at"`
	EndedAt   *int64              `json:"ended_at,omitempty"`
}

// NewGameSessionDTO describes session as the player may see it. A lost
// board is shown in full.
func NewGameSessionDTO(s *repository.Session, board *mines.Board) *GameSessionDTO {
	snap := board.Snapshot()
	if board.Status() == mines.Lost {
		snap = snap.RevealAll()
	}

	n := snap.DimSize()
	grid := make([][]string, n)
	for row := range n {
		grid[row] = make([]string, n)
		for col := range n {
			grid[row][col] = snap.Visible(row, col)
		}
	}

	var endedAt *int64
	if s.EndedAt != nil {
		e := s.EndedAt.UnixMilli()
		endedAt = &e
	}

	return &GameSessionDTO{
		ID:        s.ID.String(),
		DimSize:   board.DimSize(),
		NumBombs:  board.NumBombs(),
		Status:    board.Status(),
		Revealed:  board.RevealedCount(),
		Grid:      grid,
		Board:     render.Render(snap),
		StartedAt: s.StartedAt.UnixMilli(),
		EndedAt:   endedAt,
	}
}

func (dto *GameSessionDTO) WithResult(res mines.RevealResult) *GameSessionDTO {
	dto.Result = &res
	return dto
}
