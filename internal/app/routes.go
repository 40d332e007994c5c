package app

import (
	"github.com/vancomm/minesweeper/internal/handlers"
	"github.com/vancomm/minesweeper/internal/mines"
)

func (a *App) loadRoutes() {
	game := handlers.NewGameHandler(
		a.logger, a.store, a.jwt, a.ws,
		a.cfg.Game, mines.NewRand(a.cfg.Game.Seed),
	)

	a.router.HandleFunc("GET /healthz", handlers.Health(a.logger))

	a.router.HandleFunc("POST /game", game.NewGame)
	a.router.HandleFunc("GET /game/{id}", game.Fetch)
	a.router.HandleFunc("POST /game/{id}/reveal", game.Reveal)
	a.router.HandleFunc("GET /game/{id}/connect", game.ConnectWS)
}
