package pipe

import "testing"

func TestDefaultTableRoundTrip(t *testing.T) {
	table := DefaultTable()
	if len(table.Sizes) != 15 {
		t.Fatalf("default table has %d sizes, want 15", len(table.Sizes))
	}
	for i, d := range defaultDiametersMM {
		w11, ok := table.Thickness(d, ClassSDR11)
		if !ok || w11 != sdr11WallsMM[i] {
			t.Errorf("Thickness(%g, SDR11) = %g, %v; want %g", d, w11, ok, sdr11WallsMM[i])
		}
		w17, ok := table.Thickness(d, ClassSDR17)
		if !ok || w17 != sdr17WallsMM[i] {
			t.Errorf("Thickness(%g, SDR17) = %g, %v; want %g", d, w17, ok, sdr17WallsMM[i])
		}
	}
	if _, ok := table.Thickness(111, ClassSDR11); ok {
		t.Errorf("Thickness(111) reported a value for an unknown diameter")
	}
	if _, ok := table.Thickness(110, "SDR26"); ok {
		t.Errorf("Thickness(110, SDR26) reported a value for an unknown class")
	}
}

func TestDefaultTableClassProperties(t *testing.T) {
	table := DefaultTable()
	c11, ok := table.ClassByName(ClassSDR11)
	if !ok || c11.InitialOvalPct != 0.5 || c11.WeightKNM != 0.25 {
		t.Errorf("SDR11 class = %+v, %v; want initial 0.5%%, weight 0.25 kN/m", c11, ok)
	}
	c17, ok := table.ClassByName(ClassSDR17)
	if !ok || c17.InitialOvalPct != 2.15 || c17.WeightKNM != 0.16 {
		t.Errorf("SDR17 class = %+v, %v; want initial 2.15%%, weight 0.16 kN/m", c17, ok)
	}
}

func TestNewTableRejectsBadInput(t *testing.T) {
	classes := []Class{
		{Name: "SDR11", InitialOvalPct: 0.5, WeightKNM: 0.25},
		{Name: "SDR17", InitialOvalPct: 2.15, WeightKNM: 0.16},
	}
	cases := []struct {
		name      string
		diameters []float64
		classes   []Class
		walls     [][]float64
	}{
		{"no diameters", nil, classes, [][]float64{{}, {}}},
		{"no classes", []float64{110}, nil, nil},
		{"wall list count mismatch", []float64{110}, classes, [][]float64{{10}}},
		{"wall list length mismatch", []float64{110, 125}, classes, [][]float64{{10, 11.4}, {6.3}}},
		{"duplicate diameter", []float64{110, 110}, classes, [][]float64{{10, 10}, {6.3, 6.3}}},
		{"non-positive diameter", []float64{0}, classes, [][]float64{{10}, {6.3}}},
		{"non-positive wall", []float64{110}, classes, [][]float64{{0}, {6.3}}},
		{"wall at half diameter", []float64{110}, classes, [][]float64{{55}, {6.3}}},
		{"duplicate class", []float64{110}, append([]Class{classes[0]}, classes[0]), [][]float64{{10}, {10}}},
		{"unnamed class", []float64{110}, []Class{{InitialOvalPct: 0.5, WeightKNM: 0.25}}, [][]float64{{10}}},
		{"non-positive weight", []float64{110}, []Class{{Name: "SDR11", InitialOvalPct: 0.5}}, [][]float64{{10}}},
		{"negative initial ovalisation", []float64{110}, []Class{{Name: "SDR11", InitialOvalPct: -0.5, WeightKNM: 0.25}}, [][]float64{{10}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := NewTable(tc.diameters, tc.classes, tc.walls); err == nil {
				t.Errorf("NewTable accepted %s", tc.name)
			}
		})
	}
}

func TestScenariosAlignment(t *testing.T) {
	if _, err := Scenarios([]float64{0.5, 1.0}, []float64{100}); err == nil {
		t.Errorf("Scenarios accepted mismatched lists")
	}
	if _, err := Scenarios(nil, nil); err == nil {
		t.Errorf("Scenarios accepted empty lists")
	}
	if _, err := Scenarios([]float64{0}, []float64{100}); err == nil {
		t.Errorf("Scenarios accepted a non-positive depth")
	}
	if _, err := Scenarios([]float64{0.5}, []float64{-1}); err == nil {
		t.Errorf("Scenarios accepted a negative surcharge")
	}
	got, err := Scenarios([]float64{0.5, 1.0}, []float64{690, 480})
	if err != nil {
		t.Fatalf("Scenarios: %v", err)
	}
	if len(got) != 2 || got[0] != (BurialScenario{0.5, 690}) || got[1] != (BurialScenario{1.0, 480}) {
		t.Errorf("Scenarios = %+v, want zipped pairs", got)
	}
}

func TestDefaultGrids(t *testing.T) {
	crown := DefaultScenarios()
	if len(crown) != 14 {
		t.Fatalf("crown grid has %d scenarios, want 14", len(crown))
	}
	if crown[0] != (BurialScenario{0.675, 690}) {
		t.Errorf("first crown scenario = %+v, want {0.675 690}", crown[0])
	}
	if crown[13] != (BurialScenario{3.175, 15}) {
		t.Errorf("last crown scenario = %+v, want {3.175 15}", crown[13])
	}
	sleeper := SleeperScenarios()
	if len(sleeper) != 14 {
		t.Fatalf("sleeper grid has %d scenarios, want 14", len(sleeper))
	}
	if sleeper[0] != (BurialScenario{0.5, 690}) {
		t.Errorf("first sleeper scenario = %+v, want {0.5 690}", sleeper[0])
	}
}
