package runs

import (
	"encoding/json"
	"net/http"

	"Conduit/internal/repo"
)

type Handler struct {
	Repo repo.Repository
}

// List returns the signed-in user's saved run summaries, newest first.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(int)
	if !ok || userID == 0 {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	items, err := h.Repo.ListRuns(r.Context(), userID)
	if err != nil {
		http.Error(w, "DB error", http.StatusInternalServerError)
		return
	}
	if items == nil {
		items = []repo.Run{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(items)
}
