package pipe

import "fmt"

// Standard class names for the polyethylene schedule shipped with the
// service. Custom tables may introduce further classes.
const (
	ClassSDR11 = "SDR11"
	ClassSDR17 = "SDR17"
)

// Class is a pipe pressure class (SDR series) with the class-wide
// properties the limit-state checks need: initial ovalisation per BS9295
// Table 17 (Type B installation) and self-weight per metre run.
type Class struct {
	Name           string  `json:"name"`
	InitialOvalPct float64 `json:"initial_oval_pct"`
	WeightKNM      float64 `json:"weight_kn_m"`
}

// Size is one nominal outside diameter with its wall thickness per class,
// keyed by class name.
type Size struct {
	DiameterMM  float64            `json:"diameter_mm"`
	ThicknessMM map[string]float64 `json:"thickness_mm"`
}

// Table is the pipe schedule the grid iterates: every size carries a wall
// thickness for every class. Diameter is the primary lookup key.
type Table struct {
	Classes []Class `json:"classes"`
	Sizes   []Size  `json:"sizes"`
}

// NewTable builds a schedule from ordered parallel sequences: one diameter
// list and one wall-thickness list per class, aligned by index. All
// alignment and geometry problems are reported here, before any check
// runs.
func NewTable(diametersMM []float64, classes []Class, wallsMM [][]float64) (*Table, error) {
	if len(wallsMM) != len(classes) {
		return nil, fmt.Errorf("pipe table: %d classes but %d wall lists", len(classes), len(wallsMM))
	}
	for i, c := range classes {
		if len(wallsMM[i]) != len(diametersMM) {
			return nil, fmt.Errorf("pipe table: class %s: %d walls for %d diameters", c.Name, len(wallsMM[i]), len(diametersMM))
		}
	}
	sizes := make([]Size, len(diametersMM))
	for i, d := range diametersMM {
		walls := make(map[string]float64, len(classes))
		for j, c := range classes {
			walls[c.Name] = wallsMM[j][i]
		}
		sizes[i] = Size{DiameterMM: d, ThicknessMM: walls}
	}
	t := &Table{Classes: classes, Sizes: sizes}
	if err := t.validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// validate checks the schedule invariants: named unique classes with
// positive weight, unique positive diameters, and a wall thickness in
// (0, d/2) for every size/class pair.
func (t *Table) validate() error {
	if len(t.Sizes) == 0 {
		return fmt.Errorf("pipe table: no diameters")
	}
	if len(t.Classes) == 0 {
		return fmt.Errorf("pipe table: no classes")
	}
	seenClass := make(map[string]bool, len(t.Classes))
	for i, c := range t.Classes {
		if c.Name == "" {
			return fmt.Errorf("pipe table: class %d has no name", i)
		}
		if seenClass[c.Name] {
			return fmt.Errorf("pipe table: duplicate class %q", c.Name)
		}
		seenClass[c.Name] = true
		if c.InitialOvalPct < 0 {
			return fmt.Errorf("pipe table: class %s: negative initial ovalisation", c.Name)
		}
		if c.WeightKNM <= 0 {
			return fmt.Errorf("pipe table: class %s: non-positive weight", c.Name)
		}
	}
	seenDia := make(map[float64]bool, len(t.Sizes))
	for _, s := range t.Sizes {
		if s.DiameterMM <= 0 {
			return fmt.Errorf("pipe table: non-positive diameter %g", s.DiameterMM)
		}
		if seenDia[s.DiameterMM] {
			return fmt.Errorf("pipe table: duplicate diameter %g", s.DiameterMM)
		}
		seenDia[s.DiameterMM] = true
		for _, c := range t.Classes {
			w, ok := s.ThicknessMM[c.Name]
			if !ok {
				return fmt.Errorf("pipe table: %s d=%g: missing wall thickness", c.Name, s.DiameterMM)
			}
			if w <= 0 {
				return fmt.Errorf("pipe table: %s d=%g: non-positive wall %g", c.Name, s.DiameterMM, w)
			}
			if w >= s.DiameterMM/2 {
				return fmt.Errorf("pipe table: %s d=%g: wall %g not below half diameter", c.Name, s.DiameterMM, w)
			}
		}
	}
	return nil
}

// Thickness returns the wall thickness for a diameter/class pair.
func (t *Table) Thickness(diameterMM float64, class string) (float64, bool) {
	for _, s := range t.Sizes {
		if s.DiameterMM == diameterMM {
			w, ok := s.ThicknessMM[class]
			return w, ok
		}
	}
	return 0, false
}

// ClassByName looks a class up by its name.
func (t *Table) ClassByName(name string) (Class, bool) {
	for _, c := range t.Classes {
		if c.Name == name {
			return c, true
		}
	}
	return Class{}, false
}

// BurialScenario is one burial condition: cover depth to pipe crown and
// the live surcharge acting at that depth (BS9295 Fig 12).
type BurialScenario struct {
	CoverDepthM   float64 `json:"cover_depth_m"`
	SurchargeKNM2 float64 `json:"surcharge_kn_m2"`
}

// Scenarios zips a depth list and a surcharge list into burial scenarios.
// The lists must align one to one; a mismatch is a configuration fault,
// never silent truncation.
func Scenarios(depthsM, surchargesKNM2 []float64) ([]BurialScenario, error) {
	if len(depthsM) == 0 {
		return nil, fmt.Errorf("scenarios: no depths")
	}
	if len(depthsM) != len(surchargesKNM2) {
		return nil, fmt.Errorf("scenarios: %d depths but %d surcharges", len(depthsM), len(surchargesKNM2))
	}
	out := make([]BurialScenario, len(depthsM))
	for i, d := range depthsM {
		out[i] = BurialScenario{CoverDepthM: d, SurchargeKNM2: surchargesKNM2[i]}
	}
	if err := validateScenarios(out); err != nil {
		return nil, err
	}
	return out, nil
}

func validateScenarios(scenarios []BurialScenario) error {
	if len(scenarios) == 0 {
		return fmt.Errorf("scenarios: none given")
	}
	for _, s := range scenarios {
		if s.CoverDepthM <= 0 {
			return fmt.Errorf("scenarios: non-positive depth %g", s.CoverDepthM)
		}
		if s.SurchargeKNM2 < 0 {
			return fmt.Errorf("scenarios: negative surcharge %g at depth %g", s.SurchargeKNM2, s.CoverDepthM)
		}
	}
	return nil
}

// Standard SDR11/SDR17 polyethylene schedule.
var (
	defaultDiametersMM = []float64{110, 125, 160, 180, 200, 225, 250, 280, 315, 355, 400, 450, 500, 560, 630}

	sdr11WallsMM = []float64{10.0, 11.4, 14.6, 16.4, 18.2, 20.5, 22.8, 25.5, 28.7, 32.3, 36.4, 40.9, 45.4, 50.8, 57.2}
	sdr17WallsMM = []float64{6.3, 7.1, 9.1, 10.2, 11.4, 12.8, 14.2, 15.9, 17.9, 20.1, 22.7, 25.5, 28.3, 31.7, 35.7}

	// Cover depths to pipe crown (m) and the matching surcharge pressures
	// from BS9295 Fig 12 (kN/m²).
	defaultCrownDepthsM = []float64{0.675, 0.775, 0.875, 0.975, 1.075, 1.175, 1.275, 1.375, 1.575, 1.775, 1.975, 2.175, 2.675, 3.175}

	// Depths below sleeper level for rail crossings, 175 mm above the
	// equivalent crown depth. Pairs with the same surcharge list.
	defaultSleeperDepthsM = []float64{0.5, 0.6, 0.7, 0.8, 0.9, 1.0, 1.1, 1.2, 1.4, 1.6, 1.8, 2.0, 2.5, 3.0}

	defaultSurchargesKNM2 = []float64{690, 480, 340, 245, 185, 140, 110, 95, 75, 65, 50, 40, 25, 15}
)

// DefaultTable returns the standard SDR11/SDR17 schedule.
func DefaultTable() *Table {
	classes := []Class{
		{Name: ClassSDR11, InitialOvalPct: 0.5, WeightKNM: 0.25},
		{Name: ClassSDR17, InitialOvalPct: 2.15, WeightKNM: 0.16},
	}
	sizes := make([]Size, len(defaultDiametersMM))
	for i, d := range defaultDiametersMM {
		sizes[i] = Size{
			DiameterMM: d,
			ThicknessMM: map[string]float64{
				ClassSDR11: sdr11WallsMM[i],
				ClassSDR17: sdr17WallsMM[i],
			},
		}
	}
	return &Table{Classes: classes, Sizes: sizes}
}

// DefaultScenarios returns the crown-depth grid with its Fig 12
// surcharges.
func DefaultScenarios() []BurialScenario {
	s, _ := Scenarios(defaultCrownDepthsM, defaultSurchargesKNM2)
	return s
}

// SleeperScenarios returns the below-sleeper depth grid with the same
// surcharge pressures.
func SleeperScenarios() []BurialScenario {
	s, _ := Scenarios(defaultSleeperDepthsM, defaultSurchargesKNM2)
	return s
}
