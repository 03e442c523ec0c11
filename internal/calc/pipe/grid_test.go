package pipe

import (
	"math"
	"testing"
)

func findResult(t *testing.T, results []CheckResult, dia float64, class string, depth float64) CheckResult {
	t.Helper()
	for _, r := range results {
		if r.DiameterMM == dia && r.Class == class && r.CoverDepthM == depth {
			return r
		}
	}
	t.Fatalf("no result for d=%g %s depth=%g", dia, class, depth)
	return CheckResult{}
}

func TestRunValidatedRow(t *testing.T) {
	results, err := Run(validatedParams(), nil, nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	r := findResult(t, results, 110, ClassSDR11, 0.675)

	if r.ThicknessMM != 10 || r.SurchargeKNM2 != 690 {
		t.Errorf("row geometry = t%g s%g, want t10 s690", r.ThicknessMM, r.SurchargeKNM2)
	}
	if math.Abs(r.TotalPressureKNM2-703.23) > 1e-9 {
		t.Errorf("total pressure = %.6f, want 703.23", r.TotalPressureKNM2)
	}
	if math.Abs(r.OvalisationPct-8.779162) > 1e-4 {
		t.Errorf("ovalisation = %.6f%%, want 8.779162", r.OvalisationPct)
	}
	if math.Abs(r.OvalisationUtil-2.926387) > 1e-4 {
		t.Errorf("ovalisation util = %.6f, want 2.926387", r.OvalisationUtil)
	}
	if math.Abs(r.BucklingSoilUtil-1.241852) > 1e-3 {
		t.Errorf("soil buckling util = %.6f, want 1.241852", r.BucklingSoilUtil)
	}
	if !r.BucklingAirApplies {
		t.Errorf("air check should apply at 0.675 m")
	}
	if math.Abs(r.BucklingAirUtil-0.659278) > 1e-4 {
		t.Errorf("air buckling util = %.6f, want 0.659278", r.BucklingAirUtil)
	}
	if math.Abs(r.FlotationUtil-0.575526) > 1e-5 {
		t.Errorf("flotation util = %.6f, want 0.575526", r.FlotationUtil)
	}
	if math.Abs(r.OverallUtil-r.OvalisationUtil) > 1e-12 {
		t.Errorf("overall util = %.6f, want the ovalisation value %.6f", r.OverallUtil, r.OvalisationUtil)
	}
	if r.Pass {
		t.Errorf("row should fail at 292%% utilisation")
	}
	if !r.TampingSafe {
		t.Errorf("0.675 m cover should be tamping safe")
	}
}

func TestRunShapeAndOrder(t *testing.T) {
	results, err := Run(DesignParameters{}, nil, nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(results) != 15*2*14 {
		t.Fatalf("got %d results, want 420", len(results))
	}
	// Diameter outermost, class next, depth innermost.
	if r := results[0]; r.DiameterMM != 110 || r.Class != ClassSDR11 || r.CoverDepthM != 0.675 {
		t.Errorf("results[0] = %g %s %g", r.DiameterMM, r.Class, r.CoverDepthM)
	}
	if r := results[1]; r.CoverDepthM != 0.775 {
		t.Errorf("results[1] depth = %g, want 0.775", r.CoverDepthM)
	}
	if r := results[14]; r.DiameterMM != 110 || r.Class != ClassSDR17 || r.CoverDepthM != 0.675 {
		t.Errorf("results[14] = %g %s %g, want 110 SDR17 0.675", r.DiameterMM, r.Class, r.CoverDepthM)
	}
	if r := results[28]; r.DiameterMM != 125 || r.Class != ClassSDR11 {
		t.Errorf("results[28] = %g %s, want 125 SDR11", r.DiameterMM, r.Class)
	}
}

func TestGoverningIsMaximum(t *testing.T) {
	results, err := Run(DesignParameters{}, nil, nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	for _, r := range results {
		want := math.Max(r.OvalisationUtil, math.Max(r.FlotationUtil, r.BucklingSoilUtil))
		if r.BucklingAirApplies {
			want = math.Max(want, r.BucklingAirUtil)
		}
		if r.OverallUtil != want {
			t.Fatalf("d=%g %s depth=%g: overall %.9f, want max %.9f",
				r.DiameterMM, r.Class, r.CoverDepthM, r.OverallUtil, want)
		}
		if r.Pass != (r.OverallUtil <= 1.0) {
			t.Fatalf("d=%g %s depth=%g: pass flag disagrees with overall %.4f",
				r.DiameterMM, r.Class, r.CoverDepthM, r.OverallUtil)
		}
	}
}

func TestAirCheckDepthBoundary(t *testing.T) {
	scenarios, err := Scenarios([]float64{1.4, 1.5, 1.6}, []float64{100, 100, 100})
	if err != nil {
		t.Fatalf("Scenarios: %v", err)
	}
	results, err := Run(DesignParameters{}, nil, scenarios)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	shallow := findResult(t, results, 110, ClassSDR11, 1.4)
	if !shallow.BucklingAirApplies || shallow.BucklingAirUtil <= 0 {
		t.Errorf("air check missing at 1.4 m")
	}
	boundary := findResult(t, results, 110, ClassSDR11, 1.5)
	if boundary.BucklingAirApplies || boundary.BucklingAirUtil != 0 {
		t.Errorf("air check applied at exactly 1.5 m; the exclusion is inclusive of the boundary")
	}
	deep := findResult(t, results, 110, ClassSDR11, 1.6)
	if deep.BucklingAirApplies {
		t.Errorf("air check applied at 1.6 m")
	}
	// Governing at and beyond 1.5 m depends on the remaining three checks only.
	want := math.Max(boundary.OvalisationUtil, math.Max(boundary.FlotationUtil, boundary.BucklingSoilUtil))
	if boundary.OverallUtil != want {
		t.Errorf("overall at 1.5 m = %.9f, want %.9f from the three deep checks", boundary.OverallUtil, want)
	}
}

func TestPerforationAffectsOvalisationOnly(t *testing.T) {
	perforated := validatedParams()
	plain := validatedParams()
	plain.Perforated = false

	rp, err := Run(perforated, nil, nil)
	if err != nil {
		t.Fatalf("Run perforated: %v", err)
	}
	rn, err := Run(plain, nil, nil)
	if err != nil {
		t.Fatalf("Run plain: %v", err)
	}
	for i := range rp {
		if rp[i].OvalisationPct <= rn[i].OvalisationPct {
			t.Fatalf("perforated ovalisation %.6f not above plain %.6f at row %d",
				rp[i].OvalisationPct, rn[i].OvalisationPct, i)
		}
		if rp[i].BucklingSoilUtil != rn[i].BucklingSoilUtil {
			t.Fatalf("perforation moved the soil buckling util at row %d", i)
		}
		if rp[i].BucklingAirUtil != rn[i].BucklingAirUtil {
			t.Fatalf("perforation moved the air buckling util at row %d", i)
		}
	}
}

func TestRunRejectsBadConfiguration(t *testing.T) {
	bad := DefaultParameters()
	bad.GammaFavourable = -0.9
	if res, err := Run(bad, nil, nil); err == nil || res != nil {
		t.Errorf("Run accepted a negative partial factor (results %v)", res != nil)
	}

	table := &Table{
		Classes: []Class{{Name: "SDR11", InitialOvalPct: 0.5, WeightKNM: 0.25}},
		Sizes:   []Size{{DiameterMM: 110, ThicknessMM: map[string]float64{"SDR11": 70}}},
	}
	if res, err := Run(DesignParameters{}, table, nil); err == nil || res != nil {
		t.Errorf("Run accepted a wall beyond half the diameter (results %v)", res != nil)
	}

	if res, err := Run(DesignParameters{}, nil, []BurialScenario{{CoverDepthM: -1, SurchargeKNM2: 5}}); err == nil || res != nil {
		t.Errorf("Run accepted a negative depth (results %v)", res != nil)
	}
}

func TestSummarize(t *testing.T) {
	results, err := Run(validatedParams(), nil, nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	s := Summarize(results)
	if s.Checks != len(results) {
		t.Errorf("summary counts %d checks, want %d", s.Checks, len(results))
	}
	if s.Failures == 0 {
		t.Errorf("validated parameter set should produce failures at shallow depths")
	}
	if s.MaxUtil != s.Worst.OverallUtil {
		t.Errorf("summary max %.6f disagrees with worst row %.6f", s.MaxUtil, s.Worst.OverallUtil)
	}
	for _, r := range results {
		if r.OverallUtil > s.MaxUtil {
			t.Fatalf("row %.6f exceeds summary max %.6f", r.OverallUtil, s.MaxUtil)
		}
	}
}
