package main

import (
	"fmt"
	"io"
	"math"
	"os"
	"text/tabwriter"

	pipe "Conduit/internal/calc/pipe"
	"github.com/spf13/cobra"
)

var (
	runSoil         float64
	runEmbed        float64
	runOvalLimit    float64
	runLag          float64
	runCoeff        float64
	runSoilDensity  float64
	runWaterDensity float64
	runInvert       float64
	runPerforated   bool
	runSleeper      bool
	runMetric       string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the design grid and print one results table",
	Long: `Evaluate every diameter/class combination of the standard schedule
over the burial scenario grid and print the chosen metric as a table,
followed by the governing summary.

Metrics:
  overall_util, ovalisation_pct, ovalisation_util, flotation_util,
  buckling_soil_util, buckling_air_util, tamping_safe

Examples:
  # Standard grid with class S2 defaults
  pipecheck run

  # Stiff native soil, perforated pipe, 3% limit
  pipecheck run --soil 10 --oval-limit 3 --perforated --metric ovalisation_pct

  # Rail crossing depths measured below sleeper level
  pipecheck run --sleeper`,
	Run: runGrid,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().Float64Var(&runSoil, "soil", 0, "Native soil modulus (MN/m²)")
	runCmd.Flags().Float64Var(&runEmbed, "embed", 0, "Embedment modulus (MN/m²)")
	runCmd.Flags().Float64Var(&runOvalLimit, "oval-limit", 0, "Allowable ovalisation (%)")
	runCmd.Flags().Float64Var(&runLag, "lag", 0, "Deflection lag factor")
	runCmd.Flags().Float64Var(&runCoeff, "coeff", 0, "Deflection coefficient")
	runCmd.Flags().Float64Var(&runSoilDensity, "soil-density", 0, "Soil density (kN/m³)")
	runCmd.Flags().Float64Var(&runWaterDensity, "water-density", 0, "Water density (kN/m³)")
	runCmd.Flags().Float64Var(&runInvert, "invert", 0, "Invert level for the flotation head (m)")
	runCmd.Flags().BoolVar(&runPerforated, "perforated", false, "Perforated pipe")
	runCmd.Flags().BoolVar(&runSleeper, "sleeper", false, "Depths measured below sleeper level")
	runCmd.Flags().StringVar(&runMetric, "metric", pipe.MetricOverallUtil, "Metric to tabulate")
}

func runGrid(cmd *cobra.Command, args []string) {
	in := pipe.Input{
		Params: pipe.DesignParameters{
			SoilModulusMNM2:  runSoil,
			EmbedModulusMNM2: runEmbed,
			OvalLimitPct:     runOvalLimit,
			DeflectionLag:    runLag,
			DeflectionCoeff:  runCoeff,
			SoilDensityKNM3:  runSoilDensity,
			WaterDensityKNM3: runWaterDensity,
			InvertLevelM:     runInvert,
			Perforated:       runPerforated,
		},
	}
	if runSleeper {
		in.DepthBasis = "sleeper"
	}

	table, scenarios, err := in.Resolve()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	results, err := pipe.Run(in.Params, table, scenarios)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	pv, err := pipe.BuildPivot(results, runMetric)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	printPivot(os.Stdout, pv)
	printSummary(os.Stdout, pipe.Summarize(results))
}

func printPivot(w io.Writer, p *pipe.Pivot) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Depth (m)")
	for _, c := range p.Columns {
		fmt.Fprintf(tw, "\t%g %s", c.DiameterMM, c.Class)
	}
	fmt.Fprintln(tw)
	for i, d := range p.DepthsM {
		fmt.Fprintf(tw, "%g", d)
		for j := range p.Columns {
			fmt.Fprintf(tw, "\t%s", cellText(p.Metric, p.Cells[i][j]))
		}
		fmt.Fprintln(tw)
	}
	tw.Flush()
}

// cellText renders one pivot cell: percentages for utilisations, the raw
// percentage for ovalisation, YES/NO for tamping, "-" where the check
// does not apply.
func cellText(metric string, v float64) string {
	if math.IsNaN(v) {
		return "-"
	}
	switch metric {
	case pipe.MetricTampingSafe:
		if v == 1 {
			return "YES"
		}
		return "NO"
	case pipe.MetricOvalisationPct:
		return fmt.Sprintf("%.2f", v)
	default:
		return fmt.Sprintf("%.1f%%", v*100)
	}
}

func printSummary(w io.Writer, s pipe.Summary) {
	fmt.Fprintln(w)
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Combinations:\t%d\n", s.Checks)
	fmt.Fprintf(tw, "Failures:\t%d\n", s.Failures)
	fmt.Fprintf(tw, "Peak utilisation:\t%.1f%%\n", s.MaxUtil*100)
	fmt.Fprintf(tw, "Governing case:\t%g mm %s at %g m cover (%g kN/m²)\n",
		s.Worst.DiameterMM, s.Worst.Class, s.Worst.CoverDepthM, s.Worst.SurchargeKNM2)
	tw.Flush()
}
