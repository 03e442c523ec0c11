package report

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	pipe "Conduit/internal/calc/pipe"
	"github.com/phpdave11/gofpdf"
)

// Input wraps a grid request with the document fields of the issued
// report.
type Input struct {
	Project string     `json:"project"`
	Author  string     `json:"author"`
	Title   string     `json:"title"`
	Notes   string     `json:"notes"`
	Check   pipe.Input `json:"check"`
}

type Handler struct{}

// Failing rows beyond this count are summarised, not listed.
const maxFailureRows = 40

func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	var input Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if input.Title == "" {
		input.Title = "Buried Pipe Design Check"
	}

	table, scenarios, err := input.Check.Resolve()
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	results, err := pipe.Run(input.Check.Params, table, scenarios)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	summary := pipe.Summarize(results)
	params := input.Check.Params.WithDefaults()

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, input.Title)
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 6, fmt.Sprintf("Project: %s", input.Project))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Author: %s", input.Author))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Date: %s", time.Now().Format("2006-01-02")))
	pdf.Ln(6)
	pdf.Cell(0, 6, "Design standard: BS9295:2020")
	pdf.Ln(10)

	writeParameters(pdf, params)
	writeSummary(pdf, summary)
	writeFailures(pdf, results, summary.Failures)

	if input.Notes != "" {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 8, "Notes")
		pdf.Ln(8)
		pdf.SetFont("Helvetica", "", 11)
		pdf.MultiCell(0, 6, input.Notes, "", "L", false)
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=\"pipe_design_report.pdf\"")
	if err := pdf.Output(w); err != nil {
		http.Error(w, "Report generation error", http.StatusInternalServerError)
		return
	}
}

func writeParameters(pdf *gofpdf.Fpdf, p pipe.DesignParameters) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Design Parameters")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 10)

	perforated := "No"
	if p.Perforated {
		perforated = "Yes"
	}
	rows := [][2]string{
		{"Native soil modulus", fmt.Sprintf("%g MN/m2", p.SoilModulusMNM2)},
		{"Embedment modulus", fmt.Sprintf("%g MN/m2", p.EmbedModulusMNM2)},
		{"Soil density", fmt.Sprintf("%g kN/m3", p.SoilDensityKNM3)},
		{"Water density", fmt.Sprintf("%g kN/m3", p.WaterDensityKNM3)},
		{"Pipe modulus (long / short term)", fmt.Sprintf("%g / %g MPa", p.LongModulusNMM2, p.ShortModulusNMM2)},
		{"Ovalisation limit", fmt.Sprintf("%g%%", p.OvalLimitPct)},
		{"Partial factors (unfav / fav)", fmt.Sprintf("%g / %g", p.GammaUnfavourable, p.GammaFavourable)},
		{"Buckling FOS (soil / air)", fmt.Sprintf("%g / %g", p.MinFOSBucklingSoil, p.MinFOSBucklingAir)},
		{"Minimum tamping depth", fmt.Sprintf("%g m", p.MinTampingDepthM)},
		{"Trench allowance", fmt.Sprintf("%g mm", p.TrenchAllowanceMM)},
		{"Perforated", perforated},
	}
	for _, row := range rows {
		pdf.CellFormat(70, 6, row[0], "1", 0, "L", false, 0, "")
		pdf.CellFormat(60, 6, row[1], "1", 1, "L", false, 0, "")
	}
	pdf.Ln(6)
}

func writeSummary(pdf *gofpdf.Fpdf, s pipe.Summary) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Results")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 6, fmt.Sprintf("Combinations checked: %d", s.Checks))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Failures: %d", s.Failures))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Peak utilisation: %.1f%%", s.MaxUtil*100))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Governing case: %g mm %s at %g m cover, %g kN/m2 surcharge",
		s.Worst.DiameterMM, s.Worst.Class, s.Worst.CoverDepthM, s.Worst.SurchargeKNM2))
	pdf.Ln(10)
}

func writeFailures(pdf *gofpdf.Fpdf, results []pipe.CheckResult, failures int) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Failing Combinations")
	pdf.Ln(8)

	if failures == 0 {
		pdf.SetFont("Helvetica", "", 11)
		pdf.Cell(0, 6, "All combinations pass.")
		pdf.Ln(6)
		return
	}

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(30, 6, "Diameter (mm)", "1", 0, "C", false, 0, "")
	pdf.CellFormat(20, 6, "Class", "1", 0, "C", false, 0, "")
	pdf.CellFormat(25, 6, "Depth (m)", "1", 0, "C", false, 0, "")
	pdf.CellFormat(35, 6, "Surcharge (kN/m2)", "1", 0, "C", false, 0, "")
	pdf.CellFormat(30, 6, "Utilisation", "1", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	listed := 0
	for _, r := range results {
		if r.Pass {
			continue
		}
		if listed == maxFailureRows {
			pdf.Cell(0, 6, fmt.Sprintf("... and %d more", failures-listed))
			pdf.Ln(6)
			break
		}
		pdf.CellFormat(30, 6, fmt.Sprintf("%g", r.DiameterMM), "1", 0, "C", false, 0, "")
		pdf.CellFormat(20, 6, r.Class, "1", 0, "C", false, 0, "")
		pdf.CellFormat(25, 6, fmt.Sprintf("%g", r.CoverDepthM), "1", 0, "C", false, 0, "")
		pdf.CellFormat(35, 6, fmt.Sprintf("%g", r.SurchargeKNM2), "1", 0, "C", false, 0, "")
		pdf.CellFormat(30, 6, fmt.Sprintf("%.1f%%", r.OverallUtil*100), "1", 1, "C", false, 0, "")
		listed++
	}
}
