package uplift

import (
	"fmt"
	"math"
	"strings"
)

// Standard gravity and fresh water density at 4 °C.
const (
	gravityMS2       = 9.80665
	waterDensityKGM3 = 999.972
)

type Shape string

const (
	ShapeRectangular Shape = "rectangular"
	ShapeCircular    Shape = "circular"
)

type Input struct {
	Shape      Shape   `json:"shape"` // "rectangular"/"R" or "circular"/"C"
	ThicknessM float64 `json:"thickness_m"`
	DiameterM  float64 `json:"diameter_m"` // circular only
	WidthM     float64 `json:"width_m"`    // rectangular only
	LengthM    float64 `json:"length_m"`   // rectangular only
}

type Result struct {
	Shape    Shape   `json:"shape"`
	VolumeM3 float64 `json:"volume_m3"`
	UpliftKN float64 `json:"uplift_kn"`
	Notes    string  `json:"notes"`
}

// Calculate returns the buoyant uplift force on a fully submerged slab.
func Calculate(in Input) (Result, error) {
	if in.ThicknessM <= 0 {
		return Result{}, fmt.Errorf("invalid slab thickness")
	}

	var vol float64
	var shape Shape
	switch strings.ToUpper(strings.TrimSpace(string(in.Shape))) {
	case "C", "CIRCULAR":
		if in.DiameterM <= 0 {
			return Result{}, fmt.Errorf("invalid diameter")
		}
		vol = math.Pi * in.DiameterM * in.DiameterM / 4 * in.ThicknessM
		shape = ShapeCircular
	case "R", "RECTANGULAR":
		if in.WidthM <= 0 || in.LengthM <= 0 {
			return Result{}, fmt.Errorf("invalid side lengths")
		}
		vol = in.ThicknessM * in.WidthM * in.LengthM
		shape = ShapeRectangular
	default:
		return Result{}, fmt.Errorf("invalid shape: want rectangular or circular")
	}

	return Result{
		Shape:    shape,
		VolumeM3: vol,
		UpliftKN: gravityMS2 * vol * waterDensityKGM3 / 1000,
		Notes:    "Full displacement uplift on a submerged slab.",
	}, nil
}
