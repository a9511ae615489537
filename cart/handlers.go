package cart

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"verdia/models"
	"verdia/mq"
	"verdia/utils"

	"github.com/julienschmidt/httprouter"
)

// Handler exposes the engine over HTTP. One method per cart operation,
// DELETE is disambiguated by the clearAll flag in the payload.
type Handler struct {
	eng  *Engine
	emit func(ctx context.Context, eventName string, content models.Index)
}

func NewHandler(eng *Engine) *Handler {
	return &Handler{eng: eng, emit: mq.Emit}
}

// AddToCart merges the requested item into the user's cart, or inserts a
// new line.
func (h *Handler) AddToCart(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Println("AddToCart decode error:", err)
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	cart, err := h.eng.Add(ctx, userID, req)
	if err != nil {
		respondEngineError(w, err)
		return
	}

	go h.emit(ctx, "cart-added", models.Index{
		EntityType: "cart", EntityId: userID, Method: "POST",
		ItemId: req.ItemID, ItemType: string(req.Kind),
	})
	utils.RespondWithJSON(w, http.StatusCreated, utils.M{"success": true, "cart": cart})
}

// GetCart returns the user's cart lines; an absent cart is an empty list.
func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	lines, skipped, err := h.eng.List(ctx, userID)
	if err != nil {
		respondEngineError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "items": lines, "skipped": skipped})
}

// UpdateCartItem replaces a line's quantity and refreshed snapshot fields.
func (h *Handler) UpdateCartItem(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Println("UpdateCartItem decode error:", err)
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	cart, err := h.eng.UpdateQuantity(ctx, userID, req)
	if err != nil {
		respondEngineError(w, err)
		return
	}

	go h.emit(ctx, "cart-updated", models.Index{
		EntityType: "cart", EntityId: userID, Method: "PATCH",
		ItemId: req.ItemID, ItemType: string(req.Kind),
	})
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "cart": cart})
}

// RemoveFromCart deletes one matching line, or the whole cart when the
// payload carries clearAll.
func (h *Handler) RemoveFromCart(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Println("RemoveFromCart decode error:", err)
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	if req.ClearAll {
		deleted, err := h.eng.Clear(ctx, userID)
		if err != nil {
			respondEngineError(w, err)
			return
		}
		msg := "cart cleared"
		if deleted {
			go h.emit(ctx, "cart-cleared", models.Index{
				EntityType: "cart", EntityId: userID, Method: "DELETE",
			})
		} else {
			msg = "cart already empty"
		}
		utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "message": msg})
		return
	}

	cart, err := h.eng.Remove(ctx, userID, req)
	if err != nil {
		respondEngineError(w, err)
		return
	}

	go h.emit(ctx, "cart-removed", models.Index{
		EntityType: "cart", EntityId: userID, Method: "DELETE",
		ItemId: req.ItemID, ItemType: string(req.Kind),
	})
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "cart": cart})
}

func respondEngineError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch ErrCode(err) {
	case CodeInvalid, CodeUnavailable:
		status = http.StatusBadRequest
	case CodeNotFound:
		status = http.StatusNotFound
	case CodeStorage:
		status = http.StatusInternalServerError
	}
	utils.RespondWithJSON(w, status, utils.M{"success": false, "message": err.Error()})
}
