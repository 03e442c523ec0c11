package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "pipecheck",
	Short: "Buried flexible pipe design checks to BS9295:2020",
	Long: `pipecheck evaluates buried polyethylene pipe schedules against the
BS9295:2020 limit states: ovalisation, buckling in air and in soil,
flotation and tamping cover.

Commands:
  run      print one results table for the standard grid
  export   write the full results workbook

Zero-valued parameter flags fall back to the class S2 defaults.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func main() {
	Execute()
}
