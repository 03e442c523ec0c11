package pipe

import "fmt"

// DesignParameters is the full set of soil, material and partial-factor
// inputs a grid run needs. It is passed explicitly into every call; the
// package keeps no ambient configuration. Zero numeric fields are filled
// from the BS9295:2020 defaults below, so callers only set what they want
// to override.
type DesignParameters struct {
	SoilModulusMNM2      float64 `json:"soil_modulus_mn_m2"`     // native soil
	EmbedModulusMNM2     float64 `json:"embed_modulus_mn_m2"`    // embedment
	SoilDensityKNM3      float64 `json:"soil_density_kn_m3"`
	WaterDensityKNM3     float64 `json:"water_density_kn_m3"`
	LongModulusNMM2      float64 `json:"long_modulus_n_mm2"`     // pipe material, long term
	ShortModulusNMM2     float64 `json:"short_modulus_n_mm2"`    // pipe material, short term
	DeflectionCoeff      float64 `json:"deflection_coeff"`       // BS9295 Table 15
	DeflectionLag        float64 `json:"deflection_lag"`         // BS9295 Table 15
	OvalLimitPct         float64 `json:"oval_limit_pct"`
	GammaUnfavourable    float64 `json:"gamma_unfavourable"`
	GammaFavourable      float64 `json:"gamma_favourable"`
	MinFOSBucklingSoil   float64 `json:"min_fos_buckling_soil"`
	MinFOSBucklingAir    float64 `json:"min_fos_buckling_air"`
	MinTampingDepthM     float64 `json:"min_tamping_depth_m"`
	TrenchAllowanceMM    float64 `json:"trench_allowance_mm"`    // trench width = OD + allowance
	PerforationReduction float64 `json:"perforation_reduction"`
	Perforated           bool    `json:"perforated"`
	InvertLevelM         float64 `json:"invert_level_m"` // 0: flotation head falls back to depth + OD/2
}

// DefaultParameters returns the Class S2 soil defaults with the standard
// BS9295 material constants and partial factors.
func DefaultParameters() DesignParameters {
	return DesignParameters{
		SoilModulusMNM2:      3,    // Class S2 native soil
		EmbedModulusMNM2:     10,   // Class S2 bedding
		SoilDensityKNM3:      19.6,
		WaterDensityKNM3:     10.0,
		LongModulusNMM2:      150,
		ShortModulusNMM2:     800,
		DeflectionCoeff:      0.083,
		DeflectionLag:        1.0, // S2 bedding at 90% compaction
		OvalLimitPct:         5.0,
		GammaUnfavourable:    1.1,
		GammaFavourable:      0.9,
		MinFOSBucklingSoil:   2.0,
		MinFOSBucklingAir:    1.5,
		MinTampingDepthM:     0.4,
		TrenchAllowanceMM:    300,
		PerforationReduction: 0.95,
	}
}

// WithDefaults returns a copy with every zero numeric field replaced by
// its default. Perforated and InvertLevelM stay as given: false and 0 are
// meaningful there.
func (p DesignParameters) WithDefaults() DesignParameters {
	d := DefaultParameters()
	if p.SoilModulusMNM2 == 0 {
		p.SoilModulusMNM2 = d.SoilModulusMNM2
	}
	if p.EmbedModulusMNM2 == 0 {
		p.EmbedModulusMNM2 = d.EmbedModulusMNM2
	}
	if p.SoilDensityKNM3 == 0 {
		p.SoilDensityKNM3 = d.SoilDensityKNM3
	}
	if p.WaterDensityKNM3 == 0 {
		p.WaterDensityKNM3 = d.WaterDensityKNM3
	}
	if p.LongModulusNMM2 == 0 {
		p.LongModulusNMM2 = d.LongModulusNMM2
	}
	if p.ShortModulusNMM2 == 0 {
		p.ShortModulusNMM2 = d.ShortModulusNMM2
	}
	if p.DeflectionCoeff == 0 {
		p.DeflectionCoeff = d.DeflectionCoeff
	}
	if p.DeflectionLag == 0 {
		p.DeflectionLag = d.DeflectionLag
	}
	if p.OvalLimitPct == 0 {
		p.OvalLimitPct = d.OvalLimitPct
	}
	if p.GammaUnfavourable == 0 {
		p.GammaUnfavourable = d.GammaUnfavourable
	}
	if p.GammaFavourable == 0 {
		p.GammaFavourable = d.GammaFavourable
	}
	if p.MinFOSBucklingSoil == 0 {
		p.MinFOSBucklingSoil = d.MinFOSBucklingSoil
	}
	if p.MinFOSBucklingAir == 0 {
		p.MinFOSBucklingAir = d.MinFOSBucklingAir
	}
	if p.MinTampingDepthM == 0 {
		p.MinTampingDepthM = d.MinTampingDepthM
	}
	if p.TrenchAllowanceMM == 0 {
		p.TrenchAllowanceMM = d.TrenchAllowanceMM
	}
	if p.PerforationReduction == 0 {
		p.PerforationReduction = d.PerforationReduction
	}
	return p
}

// Validate reports the first configuration fault. Run on the
// defaults-filled copy before any result is produced.
func (p DesignParameters) Validate() error {
	switch {
	case p.SoilModulusMNM2 <= 0:
		return fmt.Errorf("parameters: non-positive soil modulus")
	case p.EmbedModulusMNM2 <= 0:
		return fmt.Errorf("parameters: non-positive embedment modulus")
	case p.SoilDensityKNM3 <= 0:
		return fmt.Errorf("parameters: non-positive soil density")
	case p.WaterDensityKNM3 <= 0:
		return fmt.Errorf("parameters: non-positive water density")
	case p.LongModulusNMM2 <= 0 || p.ShortModulusNMM2 <= 0:
		return fmt.Errorf("parameters: non-positive pipe modulus")
	case p.DeflectionCoeff <= 0 || p.DeflectionLag <= 0:
		return fmt.Errorf("parameters: non-positive deflection coefficient or lag")
	case p.OvalLimitPct <= 0:
		return fmt.Errorf("parameters: non-positive ovalisation limit")
	case p.GammaUnfavourable <= 0 || p.GammaFavourable <= 0:
		return fmt.Errorf("parameters: non-positive partial factor")
	case p.MinFOSBucklingSoil <= 0 || p.MinFOSBucklingAir <= 0:
		return fmt.Errorf("parameters: non-positive buckling FOS limit")
	case p.MinTampingDepthM < 0:
		return fmt.Errorf("parameters: negative tamping depth")
	case p.TrenchAllowanceMM < 0:
		return fmt.Errorf("parameters: negative trench allowance")
	case p.PerforationReduction <= 0 || p.PerforationReduction > 1:
		return fmt.Errorf("parameters: perforation reduction outside (0, 1]")
	case p.InvertLevelM < 0:
		return fmt.Errorf("parameters: negative invert level")
	}
	return nil
}
