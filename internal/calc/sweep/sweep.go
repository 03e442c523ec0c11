// Package sweep runs several grid configurations in one request and
// returns one summary per configuration, for comparing parameter sets
// (soil classes, perforation, custom schedules) side by side.
package sweep

import (
	"fmt"

	pipe "Conduit/internal/calc/pipe"
)

// Item is one configuration of the sweep: a full grid request plus an
// optional caller label echoed back in the summary.
type Item struct {
	Label string `json:"label,omitempty"`
	pipe.Input
}

type Input struct {
	Items []Item `json:"items"`
}

// SetSummary is the outcome of one swept configuration. Params carries
// the fully defaulted parameter set the grid actually ran with, so two
// summaries can be compared without re-deriving defaults.
type SetSummary struct {
	Label   string                `json:"label,omitempty"`
	Params  pipe.DesignParameters `json:"params"`
	Summary pipe.Summary          `json:"summary"`
}

type Result struct {
	Sets []SetSummary `json:"sets"`
}

// Calculate evaluates every item in order. The sweep is all or nothing:
// the first invalid item fails the whole request with its index, so a
// comparison never silently misses a column.
func Calculate(in Input) (Result, error) {
	if len(in.Items) == 0 {
		return Result{}, fmt.Errorf("no sweep items")
	}

	out := Result{Sets: make([]SetSummary, 0, len(in.Items))}
	for i, item := range in.Items {
		table, scenarios, err := item.Resolve()
		if err != nil {
			return Result{}, fmt.Errorf("item %d: %w", i, err)
		}
		results, err := pipe.Run(item.Params, table, scenarios)
		if err != nil {
			return Result{}, fmt.Errorf("item %d: %w", i, err)
		}
		out.Sets = append(out.Sets, SetSummary{
			Label:   item.Label,
			Params:  item.Params.WithDefaults(),
			Summary: pipe.Summarize(results),
		})
	}
	return out, nil
}
