package repository

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/minesweeper/internal/database"
	"github.com/vancomm/minesweeper/internal/mines"
)

func newTestSession(t *testing.T, now time.Time) *Session {
	t.Helper()
	board, err := mines.NewWithMines(3, []mines.Point{{Row: 1, Col: 1}})
	require.NoError(t, err)
	s, err := NewSession(board, now)
	require.NoError(t, err)
	return s
}

// testStore runs the behavior every Store implementation shares.
func testStore(t *testing.T, store Store) {
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Millisecond)

	t.Run("fetch missing", func(t *testing.T) {
		_, err := store.Fetch(ctx, uuid.New())
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("update missing", func(t *testing.T) {
		err := store.Update(ctx, newTestSession(t, now))
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("create fetch update", func(t *testing.T) {
		s := newTestSession(t, now)
		require.NoError(t, store.Create(ctx, s))
		assert.ErrorIs(t, store.Create(ctx, s), ErrConflict)

		fetched, err := store.Fetch(ctx, s.ID)
		require.NoError(t, err)
		assert.Equal(t, s.ID, fetched.ID)
		assert.Equal(t, 3, fetched.DimSize)
		assert.Equal(t, 1, fetched.NumBombs)
		assert.Equal(t, mines.InProgress, fetched.Status)
		assert.Nil(t, fetched.EndedAt)
		assert.WithinDuration(t, now, fetched.StartedAt, time.Millisecond)

		board, err := fetched.Board()
		require.NoError(t, err)
		res, err := board.Reveal(1, 1)
		require.NoError(t, err)
		require.Equal(t, mines.Exploded, res)

		later := now.Add(time.Minute)
		require.NoError(t, fetched.SetBoard(board, later))
		require.NoError(t, store.Update(ctx, fetched))

		fetched, err = store.Fetch(ctx, s.ID)
		require.NoError(t, err)
		assert.Equal(t, mines.Lost, fetched.Status)
		require.NotNil(t, fetched.EndedAt)
		assert.WithinDuration(t, later, *fetched.EndedAt, time.Millisecond)

		board, err = fetched.Board()
		require.NoError(t, err)
		assert.Equal(t, mines.Lost, board.Status())
	})
}

func TestMemoryStore(t *testing.T) {
	testStore(t, NewMemoryStore())
}

func TestMemoryStoreReturnsCopies(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	s := newTestSession(t, time.Now())
	require.NoError(t, store.Create(ctx, s))

	s.Status = mines.Won
	s.State[0] ^= 0xFF

	fetched, err := store.Fetch(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, mines.InProgress, fetched.Status)
	_, err = fetched.Board()
	assert.NoError(t, err)
}

func TestMemoryStorePrune(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	now := time.Now()

	stale := newTestSession(t, now.Add(-time.Hour))
	fresh := newTestSession(t, now)
	require.NoError(t, store.Create(ctx, stale))
	require.NoError(t, store.Create(ctx, fresh))

	n, err := store.Prune(ctx, now.Add(-time.Minute))
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	_, err = store.Fetch(ctx, stale.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = store.Fetch(ctx, fresh.ID)
	assert.NoError(t, err)
}

func TestSessionSetBoardStampsEnd(t *testing.T) {
	now := time.Now()
	s := newTestSession(t, now)
	assert.Nil(t, s.EndedAt)

	board, err := s.Board()
	require.NoError(t, err)
	for _, p := range []mines.Point{
		{Row: 0, Col: 0}, {Row: 0, Col: 1}, {Row: 0, Col: 2},
		{Row: 1, Col: 0}, {Row: 1, Col: 2},
		{Row: 2, Col: 0}, {Row: 2, Col: 1}, {Row: 2, Col: 2},
	} {
		_, err := board.Reveal(p.Row, p.Col)
		require.NoError(t, err)
	}

	end := now.Add(time.Second)
	require.NoError(t, s.SetBoard(board, end))
	assert.Equal(t, mines.Won, s.Status)
	require.NotNil(t, s.EndedAt)
	assert.Equal(t, end, *s.EndedAt)

	require.NoError(t, s.SetBoard(board, end.Add(time.Hour)))
	assert.Equal(t, end, *s.EndedAt)
}

func TestPostgresStore(t *testing.T) {
	url, ok := os.LookupEnv("DATABASE_URL")
	if !ok || testing.Short() {
		t.Skip("DATABASE_URL not set")
	}

	ctx := context.Background()
	migrator, err := database.Migrate(url, database.Migrations)
	require.NoError(t, err)
	defer migrator.Close()

	pool, err := pgxpool.New(ctx, url)
	require.NoError(t, err)
	defer pool.Close()

	testStore(t, NewPostgresStore(pool))
}

func TestRedisStore(t *testing.T) {
	addr, ok := os.LookupEnv("REDIS_ADDR")
	if !ok || testing.Short() {
		t.Skip("REDIS_ADDR not set")
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	defer client.Close()

	testStore(t, NewRedisStore(client, "mines-test:", time.Minute))
}
