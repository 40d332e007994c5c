package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/vancomm/minesweeper/internal/mines"
)

// DBTX is satisfied by *pgxpool.Pool, *pgx.Conn and pgx.Tx.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

type PostgresStore struct {
	db DBTX
}

func NewPostgresStore(db DBTX) *PostgresStore {
	return &PostgresStore{db: db}
}

type gameSessionRow struct {
	GameSessionID uuid.UUID  `db:"game_session_id"`
	DimSize       int        `db:"dim_size"`
	NumBombs      int        `db:"num_bombs"`
	Status        string     `db:"status"`
	State         []byte     `db:"state"`
	StartedAt     time.Time  `db:"started_at"`
	EndedAt       *time.Time `db:"ended_at"`
	UpdatedAt     time.Time  `db:"updated_at"`
}

func (r gameSessionRow) session() (*Session, error) {
	status, err := mines.ParseStatus(r.Status)
	if err != nil {
		return nil, err
	}
	return &Session{
		ID:        r.GameSessionID,
		DimSize:   r.DimSize,
		NumBombs:  r.NumBombs,
		Status:    status,
		State:     r.State,
		StartedAt: r.StartedAt,
		EndedAt:   r.EndedAt,
		UpdatedAt: r.UpdatedAt,
	}, nil
}

func sessionArgs(s *Session) pgx.NamedArgs {
	return pgx.NamedArgs{
		"game_session_id": s.ID,
		"dim_size":        s.DimSize,
		"num_bombs":       s.NumBombs,
		"status":          s.Status.String(),
		"state":           s.State,
		"started_at":      s.StartedAt,
		"ended_at":        s.EndedAt,
		"updated_at":      s.UpdatedAt,
	}
}

func mapError(err error) error {
	var pgErr *pgconn.PgError
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		return ErrNotFound
	case errors.As(err, &pgErr) && pgerrcode.IsIntegrityConstraintViolation(pgErr.Code):
		return fmt.Errorf("%w: %s", ErrConflict, pgErr.Message)
	default:
		return err
	}
}

func (q *PostgresStore) Create(ctx context.Context, s *Session) error {
	_, err := q.db.Exec(
		ctx,
		`INSERT INTO game_session (
			game_session_id, dim_size, num_bombs, status, state,
			started_at, ended_at, updated_at
		)
		VALUES (
			@game_session_id, @dim_size, @num_bombs, @status, @state,
			@started_at, @ended_at, @updated_at
		);`,
		sessionArgs(s),
	)
	return mapError(err)
}

func (q *PostgresStore) Fetch(ctx context.Context, id uuid.UUID) (*Session, error) {
	rows, _ := q.db.Query(
		ctx,
		`SELECT
			game_session_id, dim_size, num_bombs, status, state,
			started_at, ended_at, updated_at
		FROM game_session
		WHERE game_session_id = $1`,
		id,
	)
	row, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[gameSessionRow])
	if err != nil {
		return nil, mapError(err)
	}
	return row.session()
}

func (q *PostgresStore) Update(ctx context.Context, s *Session) error {
	tag, err := q.db.Exec(
		ctx,
		`UPDATE game_session
		SET status = @status, state = @state,
			ended_at = @ended_at, updated_at = @updated_at
		WHERE game_session_id = @game_session_id`,
		sessionArgs(s),
	)
	if err != nil {
		return mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (q *PostgresStore) Prune(ctx context.Context, before time.Time) (int64, error) {
	tag, err := q.db.Exec(
		ctx, "DELETE FROM game_session WHERE updated_at < $1", before,
	)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
