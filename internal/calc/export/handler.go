package export

import (
	"encoding/json"
	"net/http"

	pipe "Conduit/internal/calc/pipe"
)

type Handler struct{}

// Export runs the grid for the posted configuration and streams the
// results workbook back as an attachment.
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	var input pipe.Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	table, scenarios, err := input.Resolve()
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	results, err := pipe.Run(input.Params, table, scenarios)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	f, err := Workbook(input.Params, table, results)
	if err != nil {
		http.Error(w, "Export error", http.StatusInternalServerError)
		return
	}
	defer f.Close()

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", "attachment; filename=\"Pipe_Design_Results.xlsx\"")
	if err := f.Write(w); err != nil {
		http.Error(w, "Export error", http.StatusInternalServerError)
		return
	}
}
