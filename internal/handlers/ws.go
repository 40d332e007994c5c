package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/vancomm/minesweeper/internal/console"
	"github.com/vancomm/minesweeper/internal/mines"
)

// ConnectWS plays a session over a WebSocket. Every text message holds one
// or more "row,col" lines; each line is answered with the session DTO or
// an error object.
func (g *GameHandler) ConnectWS(w http.ResponseWriter, r *http.Request) {
	session, board, ok := g.loadSession(w, r)
	if !ok {
		return
	}

	conn, err := g.ws.Upgrader.Upgrade(w, r, nil) // headers sent here
	if err != nil {
		g.logger.WithError(err).Error("unable to upgrade")
		return
	}
	defer conn.Close()

	logger := g.logger.WithField("session", session.ID)
	logger.Debug("established WS connection")

	if err := conn.WriteJSON(NewGameSessionDTO(session, board)); err != nil {
		logger.WithError(err).Warn("unable to write json")
		return
	}

	for {
		mt, buf, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger.Debug("WS connection closed")
			} else {
				logger.WithError(err).Warn("error in ws loop")
			}
			return
		}
		if mt != websocket.TextMessage {
			continue
		}

		for _, line := range strings.Split(strings.TrimSpace(string(buf)), "\n") {
			var reply any
			row, col, err := console.ParseLocation(line)
			if err == nil {
				var res mines.RevealResult
				res, err = g.reveal(r.Context(), session, board, row, col)
				reply = NewGameSessionDTO(session, board).WithResult(res)
			}
			switch {
			case err == nil:
			case errors.Is(err, console.ErrMalformedLocation),
				errors.Is(err, mines.ErrOutOfBounds),
				errors.Is(err, errGameOver):
				reply = wrapError(err)
			default:
				logger.WithError(err).Error("unable to update session")
				conn.WriteMessage(
					websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseInternalServerErr, ""),
				)
				return
			}

			if err := conn.WriteJSON(reply); err != nil {
				logger.WithFields(logrus.Fields{"reply": reply}).WithError(err).Warn("unable to write json")
				return
			}
		}
	}
}
