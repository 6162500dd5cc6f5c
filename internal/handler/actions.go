package handler

import (
	"net/http"

	"github.com/osse101/NiltersBot_Go/internal/game"
)

// BattleRequest names the boss to fight
type BattleRequest struct {
	Boss string `json:"boss" validate:"required,max=64,excludesall=\x00\n\r\t"`
}

// PurchaseRequest names the shop item to buy
type PurchaseRequest struct {
	Item string `json:"item" validate:"required,max=64,excludesall=\x00\n\r\t"`
}

// HandleBattle resolves one battle for the player
func HandleBattle(eng game.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := playerIDParam(w, r)
		if !ok {
			return
		}
		var req BattleRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Battle"); err != nil {
			return
		}

		outcome, err := eng.ResolveBattle(r.Context(), id, req.Boss)
		if err != nil {
			respondServiceError(w, r, "Battle", err)
			return
		}
		respondJSON(w, http.StatusOK, outcome)
	}
}

// HandlePurchase buys one unit of an item
func HandlePurchase(eng game.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := playerIDParam(w, r)
		if !ok {
			return
		}
		var req PurchaseRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Purchase"); err != nil {
			return
		}

		receipt, err := eng.Purchase(r.Context(), id, req.Item)
		if err != nil {
			respondServiceError(w, r, "Purchase", err)
			return
		}
		respondJSON(w, http.StatusCreated, receipt)
	}
}

// HandleWork grants one random wage. It takes no body.
func HandleWork(eng game.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := playerIDParam(w, r)
		if !ok {
			return
		}

		receipt, err := eng.Work(r.Context(), id)
		if err != nil {
			respondServiceError(w, r, "Work", err)
			return
		}
		respondJSON(w, http.StatusOK, receipt)
	}
}
