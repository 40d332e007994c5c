package handlers

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/vancomm/minesweeper/internal/config"
	"github.com/vancomm/minesweeper/internal/mines"
	"github.com/vancomm/minesweeper/internal/repository"
)

var errGameOver = errors.New("game is over")

type GameHandler struct {
	logger   logrus.FieldLogger
	store    repository.Store
	jwt      *config.JWT
	ws       *config.WebSocket
	game     config.GameConfig

	mu  sync.Mutex // guards rnd
	rnd *rand.Rand

	now func() time.Time
}

func NewGameHandler(
	logger logrus.FieldLogger,
	store repository.Store,
	jwt *config.JWT,
	ws *config.WebSocket,
	game config.GameConfig,
	rnd *rand.Rand,
) *GameHandler {
	handler := &GameHandler{
		logger:   logger,
		store:    store,
		jwt:      jwt,
		ws:       ws,
		game:     game,
		rnd:      rnd,
		now:      time.Now,
	}

	return handler
}

func (g *GameHandler) newBoard(p mines.Params) (*mines.Board, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return mines.New(p, g.rnd)
}

func (g *GameHandler) NewGame(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		sendErrorOrLog(w, g.logger, http.StatusBadRequest, err)
		return
	}

	dto, err := ParseCreateGameDTO(r.Form, g.game.Params())
	if err != nil {
		sendErrorOrLog(w, g.logger, http.StatusBadRequest, err)
		return
	}
	if err := g.game.CheckDimSize(dto.DimSize); err != nil {
		sendErrorOrLog(w, g.logger, http.StatusBadRequest, err)
		return
	}

	board, err := g.newBoard(dto.Params())
	if err != nil {
		sendErrorOrLog(w, g.logger, http.StatusBadRequest, err)
		return
	}

	now := g.now()
	session, err := repository.NewSession(board, now)
	if err != nil {
		internalError(w, g.logger, "unable to create session", err)
		return
	}
	if err := g.store.Create(r.Context(), session); err != nil {
		internalError(w, g.logger, "unable to store session", err)
		return
	}

	token, err := g.jwt.SessionToken(session.ID.String(), now)
	if err != nil {
		internalError(w, g.logger, "unable to sign session token", err)
		return
	}

	g.logger.WithFields(logrus.Fields{
		"session":   session.ID,
		"dim_size":  board.DimSize(),
		"num_bombs": board.NumBombs(),
	}).Info("created game session")

	res := NewGameSessionDTO(session, board)
	res.Token = token
	sendJSONOrLog(w, g.logger, http.StatusCreated, res)
}

// loadSession resolves the {id} path value into an authorized session and
// its board. On failure the response has been written.
func (g *GameHandler) loadSession(
	w http.ResponseWriter, r *http.Request,
) (*repository.Session, *mines.Board, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		sendErrorOrLog(w, g.logger, http.StatusBadRequest, fmt.Errorf("invalid session id"))
		return nil, nil, false
	}

	if !g.authorize(w, r, id) {
		return nil, nil, false
	}

	session, err := g.store.Fetch(r.Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		sendErrorOrLog(w, g.logger, http.StatusNotFound, err)
		return nil, nil, false
	}
	if err != nil {
		internalError(w, g.logger, "unable to fetch session", err)
		return nil, nil, false
	}

	board, err := session.Board()
	if err != nil {
		internalError(w, g.logger, "stored session has invalid state", err)
		return nil, nil, false
	}

	return session, board, true
}

func (g *GameHandler) Fetch(w http.ResponseWriter, r *http.Request) {
	session, board, ok := g.loadSession(w, r)
	if !ok {
		return
	}
	sendJSONOrLog(w, g.logger, http.StatusOK, NewGameSessionDTO(session, board))
}

func (g *GameHandler) Reveal(w http.ResponseWriter, r *http.Request) {
	session, board, ok := g.loadSession(w, r)
	if !ok {
		return
	}

	if err := r.ParseForm(); err != nil {
		sendErrorOrLog(w, g.logger, http.StatusBadRequest, err)
		return
	}
	dto, err := ParseRevealDTO(r.Form)
	if err != nil {
		sendErrorOrLog(w, g.logger, http.StatusBadRequest, err)
		return
	}

	res, err := g.reveal(r.Context(), session, board, dto.Row, dto.Col)
	switch {
	case errors.Is(err, errGameOver):
		sendErrorOrLog(w, g.logger, http.StatusConflict, err)
		return
	case errors.Is(err, mines.ErrOutOfBounds):
		sendErrorOrLog(w, g.logger, http.StatusBadRequest, err)
		return
	case err != nil:
		internalError(w, g.logger, "unable to update session", err)
		return
	}

	sendJSONOrLog(w, g.logger, http.StatusOK, NewGameSessionDTO(session, board).WithResult(res))
}

// reveal digs on board and writes the result back to the store.
func (g *GameHandler) reveal(
	ctx context.Context,
	session *repository.Session,
	board *mines.Board,
	row, col int,
) (mines.RevealResult, error) {
	if board.Status().Over() {
		return mines.Safe, errGameOver
	}

	res, err := board.Reveal(row, col)
	if err != nil {
		return res, err
	}

	if err := session.SetBoard(board, g.now()); err != nil {
		return res, err
	}
	if err := g.store.Update(ctx, session); err != nil {
		return res, err
	}

	g.logger.WithFields(logrus.Fields{
		"session":  session.ID,
		"row":      row,
		"col":      col,
		"result":   res,
		"status":   session.Status,
		"revealed": board.RevealedCount(),
	}).Debug("revealed cell")

	return res, nil
}
