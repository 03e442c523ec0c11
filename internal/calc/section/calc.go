package section

import (
	"fmt"
	"math"
	"sort"
)

// EC2 short-term design constants for fck <= 50 MPa: rectangular stress
// block depth factor, effective strength factor, ultimate concrete strain,
// steel modulus and the ultimate steel strain beyond which bars are
// discounted.
const (
	lambdaBlock      = 0.8
	alphaCC          = 0.85
	epsilonCU3       = 0.0035
	steelModulusMPa  = 200000.0
	steelLimitStrain = 0.01
)

type Input struct {
	WidthMM       float64 `json:"width_mm"`
	HeightMM      float64 `json:"height_mm"`
	CoverMM       float64 `json:"cover_mm"`
	BarDiameterMM float64 `json:"bar_diameter_mm"`
	TopBars       int     `json:"top_bars"`
	BottomBars    int     `json:"bottom_bars"`
	SideBars      int     `json:"side_bars"` // placed at mid-height: axial only
	FckMPa        float64 `json:"fck_mpa"`
	FykMPa        float64 `json:"fyk_mpa"`
	GammaC        float64 `json:"gamma_c"`
	GammaS        float64 `json:"gamma_s"`
	NEdKN         float64 `json:"n_ed_kn"` // compression positive
	MEdKNM        float64 `json:"m_ed_knm"`
	CurvePoints   int     `json:"curve_points"`
}

// CurvePoint is one point of the N-M envelope, compression positive.
type CurvePoint struct {
	NKN  float64 `json:"n_kn"`
	MKNM float64 `json:"m_knm"`
}

type Result struct {
	FcdMPa       float64      `json:"fcd_mpa"`
	FydMPa       float64      `json:"fyd_mpa"`
	SteelAreaMM2 float64      `json:"steel_area_mm2"`
	NMinKN       float64      `json:"n_min_kn"`
	NMaxKN       float64      `json:"n_max_kn"`
	MRdKNM       float64      `json:"m_rd_knm"` // moment capacity at N_Ed
	Utilization  float64      `json:"utilization"`
	OK           bool         `json:"ok"`
	Envelope     []CurvePoint `json:"envelope"`
	Notes        string       `json:"notes"`
}

type bar struct {
	yMM     float64 // from top fibre to bar centroid
	areaMM2 float64
}

// Calculate builds the uniaxial N-M interaction envelope of a rectangular
// reinforced-concrete section by sweeping the neutral axis from near zero
// to twice the section height, anchored by the pure-tension and
// pure-compression points, and checks the design pair against it.
func Calculate(in Input) (Result, error) {
	if in.WidthMM <= 0 || in.HeightMM <= 0 || in.CoverMM <= 0 || in.BarDiameterMM <= 0 {
		return Result{}, fmt.Errorf("invalid section geometry")
	}
	if in.TopBars < 0 || in.BottomBars < 0 || in.SideBars < 0 || in.TopBars+in.BottomBars+in.SideBars == 0 {
		return Result{}, fmt.Errorf("invalid reinforcement layout")
	}
	if 2*(in.CoverMM+in.BarDiameterMM/2) >= in.HeightMM {
		return Result{}, fmt.Errorf("cover too large for section height")
	}
	if in.FckMPa <= 0 {
		in.FckMPa = 30
	}
	if in.FykMPa <= 0 {
		in.FykMPa = 500
	}
	if in.GammaC <= 0 {
		in.GammaC = 1.5
	}
	if in.GammaS <= 0 {
		in.GammaS = 1.15
	}
	if in.CurvePoints < 2 {
		in.CurvePoints = 100
	}

	fcd := in.FckMPa / in.GammaC
	fyd := in.FykMPa / in.GammaS

	bars := placeBars(in)
	asTotal := 0.0
	for _, b := range bars {
		asTotal += b.areaMM2
	}

	pts := make([]CurvePoint, 0, in.CurvePoints+2)
	// Pure tension: concrete ignored, every bar at design yield.
	pts = append(pts, CurvePoint{NKN: -fyd * asTotal / 1000})

	start, end := 0.01, 2*in.HeightMM
	step := (end - start) / float64(in.CurvePoints-1)
	for i := 0; i < in.CurvePoints; i++ {
		x := start + float64(i)*step
		n, m := nmPoint(x, bars, in.WidthMM, in.HeightMM, fcd, fyd)
		pts = append(pts, CurvePoint{NKN: n, MKNM: m})
	}

	// Pure compression: full block over the section, all steel yielded.
	pts = append(pts, CurvePoint{NKN: (alphaCC*fcd*in.WidthMM*in.HeightMM + fyd*asTotal) / 1000})

	sort.Slice(pts, func(i, j int) bool { return pts[i].NKN < pts[j].NKN })

	mrd := interpolateM(pts, in.NEdKN)
	util := 0.0
	ok := false
	if math.Abs(mrd) > 0 {
		util = math.Abs(in.MEdKNM) / math.Abs(mrd)
		ok = util <= 1.0
	} else {
		ok = in.MEdKNM == 0 && in.NEdKN >= pts[0].NKN && in.NEdKN <= pts[len(pts)-1].NKN
	}

	return Result{
		FcdMPa:       fcd,
		FydMPa:       fyd,
		SteelAreaMM2: asTotal,
		NMinKN:       pts[0].NKN,
		NMaxKN:       pts[len(pts)-1].NKN,
		MRdKNM:       mrd,
		Utilization:  util,
		OK:           ok,
		Envelope:     pts,
		Notes:        "EC2 rectangular stress block, uniaxial bending.",
	}, nil
}

func placeBars(in Input) []bar {
	area := math.Pi * in.BarDiameterMM * in.BarDiameterMM / 4
	yTop := in.CoverMM + in.BarDiameterMM/2
	yBottom := in.HeightMM - in.CoverMM - in.BarDiameterMM/2

	bars := make([]bar, 0, in.TopBars+in.BottomBars+in.SideBars)
	for i := 0; i < in.TopBars; i++ {
		bars = append(bars, bar{yMM: yTop, areaMM2: area})
	}
	for i := 0; i < in.BottomBars; i++ {
		bars = append(bars, bar{yMM: yBottom, areaMM2: area})
	}
	for i := 0; i < in.SideBars; i++ {
		bars = append(bars, bar{yMM: in.HeightMM / 2, areaMM2: area})
	}
	return bars
}

// nmPoint integrates concrete block and bar forces for one neutral-axis
// depth. Strain is compression-positive and varies linearly from
// epsilon_cu3 at the top fibre to zero at the neutral axis; moments are
// taken about mid-height with sagging positive.
func nmPoint(xNA float64, bars []bar, bMM, hMM, fcd, fyd float64) (nKN, mKNM float64) {
	var n, m float64 // N, N·mm

	yc := math.Min(lambdaBlock*xNA, hMM)
	nc := alphaCC * fcd * bMM * yc
	n += nc
	m += nc * (hMM/2 - yc/2)

	for _, b := range bars {
		eps := epsilonCU3 * (1 - b.yMM/xNA)
		fs := steelStress(eps, fyd)
		f := fs * b.areaMM2
		n += f
		m += f * (hMM/2 - b.yMM)
	}
	return n / 1000, m / 1e6
}

// steelStress is the EC2 bilinear diagram: elastic to the design yield
// strain, flat to the ultimate strain, discounted beyond it.
func steelStress(eps, fyd float64) float64 {
	epsYd := fyd / steelModulusMPa
	switch {
	case math.Abs(eps) <= epsYd:
		return eps * steelModulusMPa
	case math.Abs(eps) <= steelLimitStrain:
		return math.Copysign(fyd, eps)
	default:
		return 0
	}
}

// interpolateM reads the moment capacity at an axial load off the sorted
// envelope, clamping outside the axial range.
func interpolateM(pts []CurvePoint, n float64) float64 {
	if n <= pts[0].NKN {
		return pts[0].MKNM
	}
	if n >= pts[len(pts)-1].NKN {
		return pts[len(pts)-1].MKNM
	}
	for i := 1; i < len(pts); i++ {
		if n <= pts[i].NKN {
			a, b := pts[i-1], pts[i]
			if b.NKN == a.NKN {
				return a.MKNM
			}
			t := (n - a.NKN) / (b.NKN - a.NKN)
			return a.MKNM + t*(b.MKNM-a.MKNM)
		}
	}
	return pts[len(pts)-1].MKNM
}
