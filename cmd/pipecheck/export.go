package main

import (
	"fmt"

	export "Conduit/internal/calc/export"
	pipe "Conduit/internal/calc/pipe"
	"github.com/spf13/cobra"
)

var (
	exportSoil         float64
	exportEmbed        float64
	exportOvalLimit    float64
	exportLag          float64
	exportCoeff        float64
	exportSoilDensity  float64
	exportWaterDensity float64
	exportInvert       float64
	exportPerforated   bool
	exportSleeper      bool
	exportOut          string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Run the design grid and write the results workbook",
	Long: `Evaluate the standard schedule over the burial scenario grid and
write the full results workbook: formatted PASS/FAIL sheets, raw value
sheets and the design parameters used.

Examples:
  # Standard grid, default output name
  pipecheck export

  # Validated design case into a named file
  pipecheck export --soil 10 --oval-limit 3 --perforated -o crossing_4a.xlsx`,
	Run: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().Float64Var(&exportSoil, "soil", 0, "Native soil modulus (MN/m²)")
	exportCmd.Flags().Float64Var(&exportEmbed, "embed", 0, "Embedment modulus (MN/m²)")
	exportCmd.Flags().Float64Var(&exportOvalLimit, "oval-limit", 0, "Allowable ovalisation (%)")
	exportCmd.Flags().Float64Var(&exportLag, "lag", 0, "Deflection lag factor")
	exportCmd.Flags().Float64Var(&exportCoeff, "coeff", 0, "Deflection coefficient")
	exportCmd.Flags().Float64Var(&exportSoilDensity, "soil-density", 0, "Soil density (kN/m³)")
	exportCmd.Flags().Float64Var(&exportWaterDensity, "water-density", 0, "Water density (kN/m³)")
	exportCmd.Flags().Float64Var(&exportInvert, "invert", 0, "Invert level for the flotation head (m)")
	exportCmd.Flags().BoolVar(&exportPerforated, "perforated", false, "Perforated pipe")
	exportCmd.Flags().BoolVar(&exportSleeper, "sleeper", false, "Depths measured below sleeper level")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "Pipe_Design_Results.xlsx", "Output workbook path")
}

func runExport(cmd *cobra.Command, args []string) {
	in := pipe.Input{
		Params: pipe.DesignParameters{
			SoilModulusMNM2:  exportSoil,
			EmbedModulusMNM2: exportEmbed,
			OvalLimitPct:     exportOvalLimit,
			DeflectionLag:    exportLag,
			DeflectionCoeff:  exportCoeff,
			SoilDensityKNM3:  exportSoilDensity,
			WaterDensityKNM3: exportWaterDensity,
			InvertLevelM:     exportInvert,
			Perforated:       exportPerforated,
		},
	}
	if exportSleeper {
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

	f, err := export.Workbook(in.Params, table, results)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	defer f.Close()

	if err := f.SaveAs(exportOut); err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	s := pipe.Summarize(results)
	fmt.Printf("Workbook written to %s\n", exportOut)
	fmt.Printf("%d combinations, %d failures, peak utilisation %.1f%%\n",
		s.Checks, s.Failures, s.MaxUtil*100)
}
