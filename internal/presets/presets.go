package presets

import (
	"encoding/json"
	"net/http"
	"strconv"

	pipe "Conduit/internal/calc/pipe"
	"Conduit/internal/repo"

	"github.com/gorilla/mux"
)

type Handler struct {
	Repo repo.Repository
}

type SaveRequest struct {
	Name   string                `json:"name"`
	Params pipe.DesignParameters `json:"params"`
}

// Save stores a named parameter set. Parameters are defaulted and
// validated before they reach the database, so a listed preset always
// loads back into a runnable configuration.
func (h *Handler) Save(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(int)
	if !ok || userID == 0 {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req SaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if req.Name == "" {
		http.Error(w, "Name required", http.StatusBadRequest)
		return
	}
	params := req.Params.WithDefaults()
	if err := params.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	raw, err := json.Marshal(params)
	if err != nil {
		http.Error(w, "Encoding error", http.StatusInternalServerError)
		return
	}

	id, err := h.Repo.SavePreset(r.Context(), userID, req.Name, raw)
	if err != nil {
		http.Error(w, "DB error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]int{"id": id})
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(int)
	if !ok || userID == 0 {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	items, err := h.Repo.ListPresets(r.Context(), userID)
	if err != nil {
		http.Error(w, "DB error", http.StatusInternalServerError)
		return
	}
	if items == nil {
		items = []repo.Preset{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(items)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(int)
	if !ok || userID == 0 {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid id", http.StatusBadRequest)
		return
	}

	n, err := h.Repo.DeletePreset(r.Context(), userID, id)
	if err != nil {
		http.Error(w, "DB error", http.StatusInternalServerError)
		return
	}
	if n == 0 {
		http.Error(w, "Preset not found", http.StatusNotFound)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
