package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/vancomm/minesweeper/internal/mines"
)

var (
	ErrNotFound = errors.New("session not found")
	ErrConflict = errors.New("session conflict")
)

// Session is the stored form of one in-flight game.
type Session struct {
	ID        uuid.UUID    `json:"id"`
	DimSize   int          `json:"dim_size"`
	NumBombs  int          `json:"num_bombs"`
	Status    mines.Status `json:"status"`
	State     []byte       `json:"state"` /* mines.Board binary */
	StartedAt time.Time    `json:"started_at"`
	EndedAt   *time.Time   `json:"ended_at,omitempty"`
	UpdatedAt time.Time    `json:"updated_at"`
}

type Store interface {
	Create(ctx context.Context, s *Session) error
	Fetch(ctx context.Context, id uuid.UUID) (*Session, error)
	Update(ctx context.Context, s *Session) error
	// Prune drops sessions not updated since before and reports how many
	// went away.
	Prune(ctx context.Context, before time.Time) (int64, error)
}

func NewSession(board *mines.Board, now time.Time) (*Session, error) {
	s := &Session{
		ID:        uuid.New(),
		DimSize:   board.DimSize(),
		NumBombs:  board.NumBombs(),
		StartedAt: now,
	}
	if err := s.SetBoard(board, now); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Session) Board() (*mines.Board, error) {
	board, err := mines.DecodeBoard(s.State)
	if err != nil {
		return nil, fmt.Errorf("invalid state for session %s: %w", s.ID, err)
	}
	return board, nil
}

// SetBoard stores board as the session state. The first time the board is
// seen finished, EndedAt is stamped.
func (s *Session) SetBoard(board *mines.Board, now time.Time) error {
	state, err := board.MarshalBinary()
	if err != nil {
		return fmt.Errorf("unable to encode board: %w", err)
	}
	s.State = state
	s.Status = board.Status()
	s.UpdatedAt = now
	if s.Status.Over() && s.EndedAt == nil {
		endedAt := now
		s.EndedAt = &endedAt
	}
	return nil
}

func (s *Session) clone() *Session {
	c := *s
	c.State = append([]byte(nil), s.State...)
	if s.EndedAt != nil {
		endedAt := *s.EndedAt
		c.EndedAt = &endedAt
	}
	return &c
}
