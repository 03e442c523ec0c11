package pipe

// Ovalisation returns the total ovalisation percentage per BS9295 Eq (35)
// and its utilisation of the allowable limit. stiffnessKNM2 is the
// long-term wall stiffness (perforation-reduced where applicable) and
// effModulusKNM2 the Leonhardt-corrected embedment modulus, both in kN/m².
func Ovalisation(p DesignParameters, totalPressureKNM2, stiffnessKNM2, effModulusKNM2, initialOvalPct float64) (ovalPct, util float64) {
	dynamic := p.DeflectionCoeff * p.DeflectionLag * totalPressureKNM2 / (8*stiffnessKNM2 + 0.061*effModulusKNM2) * 100
	ovalPct = initialOvalPct + dynamic
	return ovalPct, ovalPct / p.OvalLimitPct
}

// BucklingAir checks unconfined buckling for shallow cover, where the
// pipe cannot count on soil support: capacity is 24× the short-term
// unperforated stiffness. Returns the achieved factor of safety and the
// utilisation of the required minimum.
func BucklingAir(p DesignParameters, shortStiffnessMNM2, totalPressureKNM2 float64) (fos, util float64) {
	pcr := 24 * shortStiffnessMNM2 * 1000 // kN/m²
	fos = pcr / totalPressureKNM2
	return fos, p.MinFOSBucklingAir / fos
}

// BucklingSoil checks soil-supported buckling. Soil pressure acts long
// term and surcharge short term, each against its own critical pressure;
// both stiffnesses are unperforated.
func BucklingSoil(p DesignParameters, longStiffnessMNM2, shortStiffnessMNM2, effModulusMNM2, soilPressureKNM2, surchargeKNM2 float64) (fos, util float64) {
	pcrLong := CriticalBucklingPressure(longStiffnessMNM2, effModulusMNM2) * 1000   // kN/m²
	pcrShort := CriticalBucklingPressure(shortStiffnessMNM2, effModulusMNM2) * 1000 // kN/m²
	fos = 1 / (soilPressureKNM2/pcrLong + surchargeKNM2/pcrShort)
	return fos, p.MinFOSBucklingSoil / fos
}

// Flotation compares factored uplift on an empty pipe against the
// factored weight of pipe plus soil cover, per metre run. Without an
// invert level the water head falls back to depth + OD/2. Utilisation is
// a direct demand over capacity ratio.
func Flotation(p DesignParameters, odMM, depthM, pipeWeightKNM float64) (upliftKNM, restraintKNM, util float64) {
	odM := odMM / 1000
	soil := p.SoilDensityKNM3 * depthM * odM
	restraintKNM = p.GammaFavourable * (pipeWeightKNM + soil)
	head := p.InvertLevelM
	if head <= 0 {
		head = depthM + odM/2
	}
	upliftKNM = p.GammaUnfavourable * p.WaterDensityKNM3 * head * odM
	return upliftKNM, restraintKNM, upliftKNM / restraintKNM
}

// TampingSafe reports whether the cover protects the pipe from tamping
// damage. Informational only: it never joins the governing utilisation.
func TampingSafe(p DesignParameters, depthM float64) bool {
	return depthM >= p.MinTampingDepthM
}
