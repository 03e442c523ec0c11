package pipe

import (
	"fmt"
	"math"
)

// Metrics a grid run can be pivoted on. Tamping safety pivots as 1/0.
const (
	MetricOverallUtil      = "overall_util"
	MetricOvalisationPct   = "ovalisation_pct"
	MetricOvalisationUtil  = "ovalisation_util"
	MetricFlotationUtil    = "flotation_util"
	MetricBucklingSoilUtil = "buckling_soil_util"
	MetricBucklingAirUtil  = "buckling_air_util"
	MetricTampingSafe      = "tamping_safe"
)

// PivotColumn names one (diameter, class) column.
type PivotColumn struct {
	DiameterMM float64
	Class      string
}

// Pivot is one metric of a grid run arranged the way the published
// results tables are: depths down the side, a column per (diameter,
// class) pair, classes in reverse schedule order within a diameter (the
// thinner wall prints first). Cells with no applicable value, such as the
// air check at depths of 1.5 m and beyond, hold NaN; writers render them
// blank. Not meant for JSON.
type Pivot struct {
	Metric  string
	DepthsM []float64
	Columns []PivotColumn
	Cells   [][]float64 // indexed [depth][column]
}

// BuildPivot arranges one metric of a run into a depth-by-column table.
// Results are expected in Run order.
func BuildPivot(results []CheckResult, metric string) (*Pivot, error) {
	switch metric {
	case MetricOverallUtil, MetricOvalisationPct, MetricOvalisationUtil,
		MetricFlotationUtil, MetricBucklingSoilUtil, MetricBucklingAirUtil,
		MetricTampingSafe:
	default:
		return nil, fmt.Errorf("pivot: unknown metric %q", metric)
	}
	if len(results) == 0 {
		return nil, fmt.Errorf("pivot: no results")
	}

	var depths []float64
	seenDepth := make(map[float64]bool)
	var diameters []float64
	seenDia := make(map[float64]bool)
	var classes []string
	seenClass := make(map[string]bool)
	for _, r := range results {
		if !seenDepth[r.CoverDepthM] {
			seenDepth[r.CoverDepthM] = true
			depths = append(depths, r.CoverDepthM)
		}
		if !seenDia[r.DiameterMM] {
			seenDia[r.DiameterMM] = true
			diameters = append(diameters, r.DiameterMM)
		}
		if !seenClass[r.Class] {
			seenClass[r.Class] = true
			classes = append(classes, r.Class)
		}
	}

	var cols []PivotColumn
	for _, d := range diameters {
		for i := len(classes) - 1; i >= 0; i-- {
			cols = append(cols, PivotColumn{DiameterMM: d, Class: classes[i]})
		}
	}

	type key struct {
		d, depth float64
		class    string
	}
	values := make(map[key]float64, len(results))
	for _, r := range results {
		values[key{r.DiameterMM, r.CoverDepthM, r.Class}] = metricValue(r, metric)
	}

	cells := make([][]float64, len(depths))
	for i, depth := range depths {
		row := make([]float64, len(cols))
		for j, c := range cols {
			v, ok := values[key{c.DiameterMM, depth, c.Class}]
			if !ok {
				v = math.NaN()
			}
			row[j] = v
		}
		cells[i] = row
	}
	return &Pivot{Metric: metric, DepthsM: depths, Columns: cols, Cells: cells}, nil
}

func metricValue(r CheckResult, metric string) float64 {
	switch metric {
	case MetricOverallUtil:
		return r.OverallUtil
	case MetricOvalisationPct:
		return r.OvalisationPct
	case MetricOvalisationUtil:
		return r.OvalisationUtil
	case MetricFlotationUtil:
		return r.FlotationUtil
	case MetricBucklingSoilUtil:
		return r.BucklingSoilUtil
	case MetricBucklingAirUtil:
		if !r.BucklingAirApplies {
			return math.NaN()
		}
		return r.BucklingAirUtil
	case MetricTampingSafe:
		if r.TampingSafe {
			return 1
		}
		return 0
	}
	return math.NaN()
}
