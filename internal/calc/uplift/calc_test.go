package uplift

import (
	"math"
	"testing"
)

func TestCalculateCircular(t *testing.T) {
	res, err := Calculate(Input{Shape: "C", ThicknessM: 0.5, DiameterM: 2})
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	if res.Shape != ShapeCircular {
		t.Errorf("shape = %q, want circular", res.Shape)
	}
	if math.Abs(res.VolumeM3-math.Pi/2) > 1e-12 {
		t.Errorf("volume = %.12f m³, want π/2", res.VolumeM3)
	}
	if math.Abs(res.UpliftKN-15.40382) > 1e-4 {
		t.Errorf("uplift = %.5f kN, want 15.40382", res.UpliftKN)
	}
}

func TestCalculateRectangular(t *testing.T) {
	res, err := Calculate(Input{Shape: "rectangular", ThicknessM: 0.5, WidthM: 2, LengthM: 3})
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	if res.VolumeM3 != 3 {
		t.Errorf("volume = %g m³, want 3", res.VolumeM3)
	}
	if math.Abs(res.UpliftKN-29.41913) > 1e-4 {
		t.Errorf("uplift = %.5f kN, want 29.41913", res.UpliftKN)
	}
}

func TestCalculateRejectsBadInput(t *testing.T) {
	cases := []struct {
		name string
		in   Input
	}{
		{"unknown shape", Input{Shape: "T", ThicknessM: 0.5, DiameterM: 2}},
		{"zero thickness", Input{Shape: "C", DiameterM: 2}},
		{"circular without diameter", Input{Shape: "C", ThicknessM: 0.5}},
		{"rectangular without width", Input{Shape: "R", ThicknessM: 0.5, LengthM: 3}},
		{"rectangular without length", Input{Shape: "R", ThicknessM: 0.5, WidthM: 2}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Calculate(tc.in); err == nil {
				t.Errorf("Calculate accepted %s", tc.name)
			}
		})
	}
}
