package handler

import (
	"net/http"

	"github.com/osse101/NiltersBot_Go/internal/domain"
	"github.com/osse101/NiltersBot_Go/internal/game"
	"github.com/osse101/NiltersBot_Go/internal/logger"
)

// RegisterRequest registers a chat identity. Repeating it is harmless.
type RegisterRequest struct {
	PlayerID    int64  `json:"player_id" validate:"gt=0"`
	DisplayName string `json:"display_name" validate:"max=256"`
}

// RegisterResponse carries the stored player and whether this call created it
type RegisterResponse struct {
	Player  *domain.Player `json:"player"`
	Created bool           `json:"created"`
}

// InventoryResponse lists a player's entries plus per-item totals
type InventoryResponse struct {
	PlayerID int64                   `json:"player_id"`
	Entries  []domain.InventoryEntry `json:"entries"`
	Totals   map[string]int          `json:"totals"`
}

// HandleRegister ensures a player exists; 201 on first registration, 200 after
func HandleRegister(eng game.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RegisterRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Register"); err != nil {
			return
		}

		p, created, err := eng.Ensure(r.Context(), req.PlayerID, req.DisplayName)
		if err != nil {
			respondServiceError(w, r, "Register", err)
			return
		}

		status := http.StatusOK
		if created {
			status = http.StatusCreated
			logger.FromContext(r.Context()).Info("Player registered", "player_id", p.ID)
		}
		respondJSON(w, status, RegisterResponse{Player: p, Created: created})
	}
}

// HandleGetProfile returns the player with their item count
func HandleGetProfile(eng game.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := playerIDParam(w, r)
		if !ok {
			return
		}

		profile, err := eng.GetProfile(r.Context(), id)
		if err != nil {
			respondServiceError(w, r, "Get profile", err)
			return
		}
		respondJSON(w, http.StatusOK, profile)
	}
}

// HandleGetInventory lists the player's inventory entries
func HandleGetInventory(eng game.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := playerIDParam(w, r)
		if !ok {
			return
		}

		entries, err := eng.Inventory(r.Context(), id)
		if err != nil {
			respondServiceError(w, r, "Get inventory", err)
			return
		}
		respondJSON(w, http.StatusOK, InventoryResponse{
			PlayerID: id,
			Entries:  entries,
			Totals:   domain.CountByName(entries),
		})
	}
}
