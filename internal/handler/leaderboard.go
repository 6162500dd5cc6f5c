package handler

import (
	"net/http"

	"github.com/osse101/NiltersBot_Go/internal/catalog"
	"github.com/osse101/NiltersBot_Go/internal/domain"
	"github.com/osse101/NiltersBot_Go/internal/game"
	"github.com/osse101/NiltersBot_Go/internal/leaderboard"
)

// LeaderboardResponse is the ranked view
type LeaderboardResponse struct {
	Entries []domain.LeaderboardEntry `json:"entries"`
}

// CatalogResponse lists bosses by reward and items by price
type CatalogResponse struct {
	Bosses []catalog.Boss `json:"bosses"`
	Items  []catalog.Item `json:"items"`
}

// HandleLeaderboard returns the top players. limit is optional; absent or 0
// means defaultSize, and it is capped at domain.MaxLeaderboardSize.
func HandleLeaderboard(eng game.Engine, defaultSize int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, err := optionalIntQuery(r, "limit", 0)
		if err != nil || limit < 0 {
			respondError(w, http.StatusBadRequest, ErrMsgInvalidLimit)
			return
		}

		entries, err := eng.Leaderboard(r.Context(), leaderboard.Limit(limit, defaultSize))
		if err != nil {
			respondServiceError(w, r, "Leaderboard", err)
			return
		}
		respondJSON(w, http.StatusOK, LeaderboardResponse{Entries: entries})
	}
}

// HandleCatalog returns the static boss and shop menus
func HandleCatalog(eng game.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cat := eng.Catalog()
		respondJSON(w, http.StatusOK, CatalogResponse{Bosses: cat.Bosses(), Items: cat.Items()})
	}
}
