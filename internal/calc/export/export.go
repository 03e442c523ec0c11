// Package export renders a grid run as the published results workbook:
// one formatted sheet per check, the matching raw sheets, and the design
// parameters used.
package export

import (
	"fmt"
	"math"

	pipe "Conduit/internal/calc/pipe"
	"github.com/xuri/excelize/v2"
)

type sheetSpec struct {
	name   string
	metric string
	cell   func(float64) (any, bool)
}

// Workbook builds the thirteen-sheet results workbook for a finished run.
// A nil table stands for the standard schedule; it only feeds the
// parameters sheet.
func Workbook(params pipe.DesignParameters, table *pipe.Table, results []pipe.CheckResult) (*excelize.File, error) {
	if len(results) == 0 {
		return nil, fmt.Errorf("no results to export")
	}
	p := params.WithDefaults()
	if table == nil {
		table = pipe.DefaultTable()
	}

	sheets := []sheetSpec{
		{"Ovalisation Results", pipe.MetricOvalisationPct, passFail(p.OvalLimitPct)},
		{"Flotation Utilisation", pipe.MetricFlotationUtil, utilPercent},
		{"Buckling Air Utilisation", pipe.MetricBucklingAirUtil, utilPercent},
		{"Buckling Soil Utilisation", pipe.MetricBucklingSoilUtil, utilPercent},
		{"Tamping Safety", pipe.MetricTampingSafe, yesNo},
		{"Overall Utilisation", pipe.MetricOverallUtil, overallStatus},
		{"Raw Ovalisation", pipe.MetricOvalisationPct, rawValue},
		{"Raw Ovalisation Util", pipe.MetricOvalisationUtil, rawPercent},
		{"Raw Flotation Util", pipe.MetricFlotationUtil, rawPercent},
		{"Raw Buckling Air Util", pipe.MetricBucklingAirUtil, rawPercent},
		{"Raw Buckling Soil Util", pipe.MetricBucklingSoilUtil, rawPercent},
		{"Raw Overall Util", pipe.MetricOverallUtil, rawPercent},
	}

	f := excelize.NewFile()
	for _, s := range sheets {
		pv, err := pipe.BuildPivot(results, s.metric)
		if err != nil {
			f.Close()
			return nil, err
		}
		if err := writePivot(f, s.name, pv, s.cell); err != nil {
			f.Close()
			return nil, err
		}
	}
	if err := writeParameters(f, p, table); err != nil {
		f.Close()
		return nil, err
	}

	if err := f.DeleteSheet("Sheet1"); err != nil {
		f.Close()
		return nil, err
	}
	idx, err := f.GetSheetIndex("Ovalisation Results")
	if err != nil {
		f.Close()
		return nil, err
	}
	f.SetActiveSheet(idx)
	return f, nil
}

// writePivot lays one pivot out with two header rows: diameters, then
// classes, with depths down column A. Cells the formatter declines stay
// blank.
func writePivot(f *excelize.File, sheet string, p *pipe.Pivot, cell func(float64) (any, bool)) error {
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}
	f.SetCellValue(sheet, "A1", "Diameter (mm)")
	f.SetCellValue(sheet, "A2", "Crown Depth (m)")
	for j, col := range p.Columns {
		name, err := excelize.CoordinatesToCellName(j+2, 1)
		if err != nil {
			return err
		}
		f.SetCellValue(sheet, name, col.DiameterMM)
		name, err = excelize.CoordinatesToCellName(j+2, 2)
		if err != nil {
			return err
		}
		f.SetCellValue(sheet, name, col.Class)
	}
	for i, depth := range p.DepthsM {
		name, err := excelize.CoordinatesToCellName(1, i+3)
		if err != nil {
			return err
		}
		f.SetCellValue(sheet, name, depth)
		for j := range p.Columns {
			v, ok := cell(p.Cells[i][j])
			if !ok {
				continue
			}
			name, err := excelize.CoordinatesToCellName(j+2, i+3)
			if err != nil {
				return err
			}
			f.SetCellValue(sheet, name, v)
		}
	}
	return nil
}

func writeParameters(f *excelize.File, p pipe.DesignParameters, table *pipe.Table) error {
	const sheet = "Design Parameters"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	perforated := "NO"
	if p.Perforated {
		perforated = "YES"
	}
	rows := [][2]string{
		{"Pipe Material", "PE100"},
		{"Bedding Class", "S2 (90% compaction)"},
		{"Design Standard", "BS9295:2020"},
		{"Native Soil Modulus", fmt.Sprintf("%g MN/m²", p.SoilModulusMNM2)},
		{"Embedment Modulus", fmt.Sprintf("%g MN/m²", p.EmbedModulusMNM2)},
		{"Ovalisation Limit", fmt.Sprintf("%g%%", p.OvalLimitPct)},
	}
	for _, c := range table.Classes {
		rows = append(rows, [2]string{
			fmt.Sprintf("Initial Ovalisation (%s)", c.Name),
			fmt.Sprintf("%g%%", c.InitialOvalPct),
		})
	}
	rows = append(rows,
		[2]string{"Perforated", perforated},
		[2]string{"Perforation Reduction", fmt.Sprintf("%g", p.PerforationReduction)},
		[2]string{"Long-term Modulus", fmt.Sprintf("%g MPa", p.LongModulusNMM2)},
		[2]string{"Short-term Modulus", fmt.Sprintf("%g MPa", p.ShortModulusNMM2)},
		[2]string{"Water Density", fmt.Sprintf("%g kN/m³", p.WaterDensityKNM3)},
		[2]string{"Soil Density", fmt.Sprintf("%g kN/m³", p.SoilDensityKNM3)},
		[2]string{"Uplift Partial Factor (unfav)", fmt.Sprintf("%g", p.GammaUnfavourable)},
		[2]string{"Uplift Partial Factor (fav)", fmt.Sprintf("%g", p.GammaFavourable)},
		[2]string{"Buckling FOS (soil)", fmt.Sprintf("%g", p.MinFOSBucklingSoil)},
		[2]string{"Buckling FOS (air)", fmt.Sprintf("%g", p.MinFOSBucklingAir)},
		[2]string{"Min Tamping Depth", fmt.Sprintf("%g m", p.MinTampingDepthM)},
	)

	f.SetCellValue(sheet, "A1", "Parameter")
	f.SetCellValue(sheet, "B1", "Value")
	for i, r := range rows {
		a, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		b, err := excelize.CoordinatesToCellName(2, i+2)
		if err != nil {
			return err
		}
		f.SetCellValue(sheet, a, r[0])
		f.SetCellValue(sheet, b, r[1])
	}
	return nil
}

// passFail prints ovalisation as PASS/FAIL against the limit, with the
// percentage alongside.
func passFail(limitPct float64) func(float64) (any, bool) {
	return func(v float64) (any, bool) {
		if math.IsNaN(v) {
			return nil, false
		}
		if v <= limitPct {
			return fmt.Sprintf("PASS (%.1f%%)", v), true
		}
		return fmt.Sprintf("FAIL (%.1f%%)", v), true
	}
}

func utilPercent(v float64) (any, bool) {
	if math.IsNaN(v) {
		return nil, false
	}
	pct := v * 100
	if pct <= 100 {
		return fmt.Sprintf("%.1f%%", pct), true
	}
	return "FAIL", true
}

func yesNo(v float64) (any, bool) {
	if math.IsNaN(v) {
		return nil, false
	}
	if v == 1 {
		return "YES", true
	}
	return "NO", true
}

// overallStatus writes the overall utilisation as a percentage, capped at
// the 101 sentinel the published tables use for failures. The uncapped
// value lives in the raw sheet.
func overallStatus(v float64) (any, bool) {
	if math.IsNaN(v) {
		return nil, false
	}
	if v > 1 {
		return 101.0, true
	}
	return v * 100, true
}

func rawValue(v float64) (any, bool) {
	if math.IsNaN(v) {
		return nil, false
	}
	return v, true
}

func rawPercent(v float64) (any, bool) {
	if math.IsNaN(v) {
		return nil, false
	}
	return v * 100, true
}
