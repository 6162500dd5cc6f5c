package handler

import (
	"github.com/go-chi/chi/v5"

	"github.com/osse101/NiltersBot_Go/internal/game"
)

// RegisterRoutes mounts the game API on r. leaderboardSize is the row count
// served when a leaderboard request names no limit.
func RegisterRoutes(r chi.Router, eng game.Engine, leaderboardSize int) {
	r.Get("/catalog", HandleCatalog(eng))
	r.Get("/leaderboard", HandleLeaderboard(eng, leaderboardSize))

	r.Post("/players", HandleRegister(eng))
	r.Route("/players/{playerID}", func(r chi.Router) {
		r.Get("/", HandleGetProfile(eng))
		r.Get("/inventory", HandleGetInventory(eng))
		r.Post("/battles", HandleBattle(eng))
		r.Post("/purchases", HandlePurchase(eng))
		r.Post("/work", HandleWork(eng))
	})
}
