package pipe

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/google/uuid"
)

// Input is the request body for a grid run. An empty body runs the
// standard schedule over the crown-depth grid with default parameters.
// Explicit depth and surcharge lists override the named basis; a custom
// table overrides the standard schedule.
type Input struct {
	Params         DesignParameters `json:"params"`
	DepthBasis     string           `json:"depth_basis,omitempty"` // "crown" (default) or "sleeper"
	DepthsM        []float64        `json:"depths_m,omitempty"`
	SurchargesKNM2 []float64        `json:"surcharges_kn_m2,omitempty"`
	Table          *Table           `json:"table,omitempty"`
}

// Resolve materialises the schedule and scenario grid for the request.
// Parameter validation is Run's job.
func (in Input) Resolve() (*Table, []BurialScenario, error) {
	table := in.Table
	if table == nil {
		table = DefaultTable()
	}
	if len(in.DepthsM) > 0 || len(in.SurchargesKNM2) > 0 {
		sc, err := Scenarios(in.DepthsM, in.SurchargesKNM2)
		return table, sc, err
	}
	switch in.DepthBasis {
	case "", "crown":
		return table, DefaultScenarios(), nil
	case "sleeper":
		return table, SleeperScenarios(), nil
	}
	return nil, nil, fmt.Errorf("unknown depth basis %q", in.DepthBasis)
}

// Output is the grid response: every row plus the governing summary.
// RunID is set when the run was saved to the user's history.
type Output struct {
	Results []CheckResult `json:"results"`
	Summary Summary       `json:"summary"`
	RunID   string        `json:"run_id,omitempty"`
}

// RunSaver records a run summary in the signed-in user's history.
type RunSaver interface {
	SaveRun(ctx context.Context, userID int, id string, params []byte, maxUtil float64, failures, checks int) error
}

// Handler serves grid runs. Runs is optional: when set, requests with
// ?save=1 get their summary recorded under a fresh run id.
type Handler struct {
	Runs RunSaver
}

func (h *Handler) Check(w http.ResponseWriter, r *http.Request) {
	var input Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	table, scenarios, err := input.Resolve()
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	results, err := Run(input.Params, table, scenarios)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	out := Output{Results: results, Summary: Summarize(results)}

	if r.URL.Query().Get("save") == "1" && h.Runs != nil {
		userID, ok := r.Context().Value("userID").(int)
		if !ok || userID == 0 {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		paramsJSON, err := json.Marshal(input.Params.WithDefaults())
		if err != nil {
			http.Error(w, "Encoding error", http.StatusInternalServerError)
			return
		}
		id := uuid.NewString()
		if err := h.Runs.SaveRun(r.Context(), userID, id, paramsJSON, out.Summary.MaxUtil, out.Summary.Failures, out.Summary.Checks); err != nil {
			http.Error(w, "DB error", http.StatusInternalServerError)
			return
		}
		out.RunID = id
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(out)
}
