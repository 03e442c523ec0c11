package importer

import (
	"encoding/json"
	"net/http"

	pipe "Conduit/internal/calc/pipe"
)

type Handler struct{}

type ImportResult struct {
	Count   int                `json:"count"`
	Results []pipe.CheckResult `json:"results"`
	Summary pipe.Summary       `json:"summary"`
}

// Import runs an uploaded schedule through the standard crown-depth grid.
// An optional "params" form field carries a JSON parameter override.
func (h *Handler) Import(w http.ResponseWriter, r *http.Request) {
	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "File required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	table, err := ParseSchedule(file)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var params pipe.DesignParameters
	if raw := r.FormValue("params"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &params); err != nil {
			http.Error(w, "Invalid request payload", http.StatusBadRequest)
			return
		}
	}

	results, err := pipe.Run(params, table, nil)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(ImportResult{
		Count:   len(results),
		Results: results,
		Summary: pipe.Summarize(results),
	})
}
