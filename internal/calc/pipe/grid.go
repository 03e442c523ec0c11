package pipe

// CheckResult is one grid row: a (diameter, class, scenario) combination
// with every limit-state outcome. Utilisations are true demand over
// capacity ratios, never capped; display capping belongs to the
// presentation layers.
type CheckResult struct {
	DiameterMM        float64 `json:"diameter_mm"`
	Class             string  `json:"class"`
	ThicknessMM       float64 `json:"thickness_mm"`
	CoverDepthM       float64 `json:"cover_depth_m"`
	SurchargeKNM2     float64 `json:"surcharge_kn_m2"`
	TotalPressureKNM2 float64 `json:"total_pressure_kn_m2"`

	OvalisationPct  float64 `json:"ovalisation_pct"`
	OvalisationUtil float64 `json:"ovalisation_util"`

	UpliftKNM     float64 `json:"uplift_kn_m"`
	RestraintKNM  float64 `json:"restraint_kn_m"`
	FlotationUtil float64 `json:"flotation_util"`

	BucklingSoilFOS  float64 `json:"buckling_soil_fos"`
	BucklingSoilUtil float64 `json:"buckling_soil_util"`

	// The air check only applies to shallow cover; FOS and utilisation
	// are zero when it does not.
	BucklingAirApplies bool    `json:"buckling_air_applies"`
	BucklingAirFOS     float64 `json:"buckling_air_fos,omitempty"`
	BucklingAirUtil    float64 `json:"buckling_air_util,omitempty"`

	TampingSafe bool    `json:"tamping_safe"`
	OverallUtil float64 `json:"overall_util"`
	Pass        bool    `json:"pass"`
}

// Run evaluates every (size, class) pair of the schedule against every
// burial scenario and returns one row per combination, ordered diameter,
// then class, then scenario. A nil table or empty scenario list falls
// back to the standard schedule and crown-depth grid. All configuration
// is validated up front: on error no results are produced at all.
func Run(params DesignParameters, table *Table, scenarios []BurialScenario) ([]CheckResult, error) {
	p := params.WithDefaults()
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if table == nil {
		table = DefaultTable()
	}
	if err := table.validate(); err != nil {
		return nil, err
	}
	if len(scenarios) == 0 {
		scenarios = DefaultScenarios()
	}
	if err := validateScenarios(scenarios); err != nil {
		return nil, err
	}

	results := make([]CheckResult, 0, len(table.Sizes)*len(table.Classes)*len(scenarios))
	for _, size := range table.Sizes {
		// Trench geometry and the effective embedment modulus depend on
		// the diameter only.
		trenchMM := size.DiameterMM + p.TrenchAllowanceMM
		cl := LeonhardtFactor(trenchMM, size.DiameterMM, p.SoilModulusMNM2, p.EmbedModulusMNM2)
		effMNM2 := p.EmbedModulusMNM2 * cl
		effKNM2 := effMNM2 * 1000

		for _, class := range table.Classes {
			wall := size.ThicknessMM[class.Name]

			// Ovalisation uses the long-term stiffness with the
			// perforation knockdown; both buckling checks use the
			// unperforated values.
			ovalStiffKNM2 := WallStiffness(size.DiameterMM, wall, p.LongModulusNMM2, p.Perforated, p.PerforationReduction) * 1000
			shortStiffMNM2 := WallStiffness(size.DiameterMM, wall, p.ShortModulusNMM2, false, p.PerforationReduction)
			longStiffMNM2 := WallStiffness(size.DiameterMM, wall, p.LongModulusNMM2, false, p.PerforationReduction)

			for _, sc := range scenarios {
				soilP := p.SoilDensityKNM3 * sc.CoverDepthM
				totalP := soilP + sc.SurchargeKNM2

				r := CheckResult{
					DiameterMM:        size.DiameterMM,
					Class:             class.Name,
					ThicknessMM:       wall,
					CoverDepthM:       sc.CoverDepthM,
					SurchargeKNM2:     sc.SurchargeKNM2,
					TotalPressureKNM2: totalP,
					TampingSafe:       TampingSafe(p, sc.CoverDepthM),
				}
				r.OvalisationPct, r.OvalisationUtil = Ovalisation(p, totalP, ovalStiffKNM2, effKNM2, class.InitialOvalPct)
				r.UpliftKNM, r.RestraintKNM, r.FlotationUtil = Flotation(p, size.DiameterMM, sc.CoverDepthM, class.WeightKNM)
				r.BucklingSoilFOS, r.BucklingSoilUtil = BucklingSoil(p, longStiffMNM2, shortStiffMNM2, effMNM2, soilP, sc.SurchargeKNM2)

				overall := max(r.OvalisationUtil, r.FlotationUtil, r.BucklingSoilUtil)
				if sc.CoverDepthM < shallowCoverLimitM {
					r.BucklingAirApplies = true
					r.BucklingAirFOS, r.BucklingAirUtil = BucklingAir(p, shortStiffMNM2, totalP)
					overall = max(overall, r.BucklingAirUtil)
				}
				r.OverallUtil = overall
				r.Pass = overall <= 1.0

				results = append(results, r)
			}
		}
	}
	return results, nil
}

// Summary condenses a grid run for listings, sweeps and reports.
type Summary struct {
	Checks   int         `json:"checks"`
	Failures int         `json:"failures"`
	MaxUtil  float64     `json:"max_util"`
	Worst    CheckResult `json:"worst"`
}

// Summarize finds the governing row of a run and counts failures.
func Summarize(results []CheckResult) Summary {
	s := Summary{Checks: len(results)}
	for i, r := range results {
		if !r.Pass {
			s.Failures++
		}
		if i == 0 || r.OverallUtil > s.MaxUtil {
			s.MaxUtil = r.OverallUtil
			s.Worst = r
		}
	}
	return s
}
