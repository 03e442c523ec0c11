// Package recommend picks the lightest pipe class that passes every
// limit state for one diameter in one burial condition.
package recommend

import (
	"fmt"
	"sort"

	pipe "Conduit/internal/calc/pipe"
)

type Input struct {
	DiameterMM    float64               `json:"diameter_mm"`
	CoverDepthM   float64               `json:"cover_depth_m"`
	SurchargeKNM2 float64               `json:"surcharge_kn_m2"`
	Params        pipe.DesignParameters `json:"params"`
	Table         *pipe.Table           `json:"table,omitempty"`
}

// Candidate is one class tried for the diameter, with its governing
// utilisation.
type Candidate struct {
	Class       string  `json:"class"`
	ThicknessMM float64 `json:"thickness_mm"`
	WeightKNM   float64 `json:"weight_kn_m"`
	OverallUtil float64 `json:"overall_util"`
	Pass        bool    `json:"pass"`
}

// Result carries the recommendation and the full candidate list, lightest
// first. Pass is false when no class passes; Recommended is then the
// least-loaded candidate so the caller can see how far off it is.
type Result struct {
	DiameterMM  float64     `json:"diameter_mm"`
	CoverDepthM float64     `json:"cover_depth_m"`
	Recommended Candidate   `json:"recommended"`
	Pass        bool        `json:"pass"`
	Candidates  []Candidate `json:"candidates"`
}

// Calculate runs every class of the schedule for the requested diameter
// against the single burial scenario and recommends the lightest class
// whose every check passes.
func Calculate(in Input) (Result, error) {
	if in.DiameterMM <= 0 {
		return Result{}, fmt.Errorf("invalid diameter")
	}

	table := in.Table
	if table == nil {
		table = pipe.DefaultTable()
	}
	var size *pipe.Size
	for i := range table.Sizes {
		if table.Sizes[i].DiameterMM == in.DiameterMM {
			size = &table.Sizes[i]
			break
		}
	}
	if size == nil {
		return Result{}, fmt.Errorf("diameter %g not in schedule", in.DiameterMM)
	}

	scenarios, err := pipe.Scenarios([]float64{in.CoverDepthM}, []float64{in.SurchargeKNM2})
	if err != nil {
		return Result{}, err
	}

	single := &pipe.Table{Classes: table.Classes, Sizes: []pipe.Size{*size}}
	rows, err := pipe.Run(in.Params, single, scenarios)
	if err != nil {
		return Result{}, err
	}

	candidates := make([]Candidate, 0, len(rows))
	for _, r := range rows {
		cl, _ := table.ClassByName(r.Class)
		candidates = append(candidates, Candidate{
			Class:       r.Class,
			ThicknessMM: r.ThicknessMM,
			WeightKNM:   cl.WeightKNM,
			OverallUtil: r.OverallUtil,
			Pass:        r.Pass,
		})
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].WeightKNM < candidates[j].WeightKNM
	})

	out := Result{
		DiameterMM:  in.DiameterMM,
		CoverDepthM: in.CoverDepthM,
		Candidates:  candidates,
	}
	for _, c := range candidates {
		if c.Pass {
			out.Recommended = c
			out.Pass = true
			return out, nil
		}
	}
	// Nothing passes: surface the least overloaded class.
	best := candidates[0]
	for _, c := range candidates[1:] {
		if c.OverallUtil < best.OverallUtil {
			best = c
		}
	}
	out.Recommended = best
	return out, nil
}
