package pipe

import "math"

// Air buckling applies to shallow cover only; from this depth on the
// soil-confined check alone governs.
const shallowCoverLimitM = 1.5

// Above this trench-width-to-diameter ratio the embedment response no
// longer feels the native soil and the Leonhardt factor is unity.
const wideTrenchRatio = 4.3

// WallStiffness returns the pipe wall stiffness per BS9295 Eq (31) in
// N/mm² (numerically equal to MN/m²): S = E·I/MD³ with I = t³/12 per mm
// run and mean diameter MD = OD − t. Perforated pipe is knocked down by
// the reduction factor. Callers guarantee 0 < wall < OD/2.
func WallStiffness(odMM, wallMM, modulusNMM2 float64, perforated bool, reduction float64) float64 {
	md := odMM - wallMM
	i := wallMM * wallMM * wallMM / 12
	s := modulusNMM2 * i / (md * md * md)
	if perforated {
		s *= reduction
	}
	return s
}

// LeonhardtFactor returns the correction C_L per BS9295 Eq (29) for the
// trench width, pipe diameter and the native-soil to embedment modulus
// ratio. Trenches wider than 4.3 diameters return exactly 1.0. A
// degenerate combination that zeroes the denominator also yields 1.0
// rather than an error.
func LeonhardtFactor(trenchMM, odMM, soilMNM2, embedMNM2 float64) float64 {
	if trenchMM > wideTrenchRatio*odMM {
		return 1.0
	}
	r := trenchMM / odMM
	num := 0.985 + 0.544*r
	denom := (1.985-0.456*r)*(soilMNM2/embedMNM2) - (1 - r)
	if denom == 0 {
		return 1.0
	}
	return num / denom
}

// CriticalBucklingPressure returns the soil-supported buckling capacity
// 0.6·E_eff^0.67·S^0.33 in MN/m², BS9295 Eq (36) with the rounded
// exponents of the validated design sheet.
func CriticalBucklingPressure(stiffnessMNM2, effModulusMNM2 float64) float64 {
	return 0.6 * math.Pow(effModulusMNM2, 0.67) * math.Pow(stiffnessMNM2, 0.33)
}
