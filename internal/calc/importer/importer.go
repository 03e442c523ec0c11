// Package importer accepts pipe schedule workbooks. The expected layout
// is one header row, then one row per nominal diameter: diameter (mm),
// SDR11 wall (mm), SDR17 wall (mm). Rows that do not parse are skipped.
package importer

import (
	"fmt"
	"io"

	pipe "Conduit/internal/calc/pipe"
	"github.com/xuri/excelize/v2"
)

// ParseSchedule reads the first sheet of an uploaded workbook into a pipe
// schedule carrying the standard class properties.
func ParseSchedule(r io.Reader) (*pipe.Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("invalid workbook")
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil || len(rows) < 2 {
		return nil, fmt.Errorf("empty sheet")
	}

	var diameters, sdr11, sdr17 []float64
	for i := 1; i < len(rows); i++ {
		row := rows[i]
		if len(row) < 3 {
			continue
		}
		d, err1 := toFloat(row[0])
		w11, err2 := toFloat(row[1])
		w17, err3 := toFloat(row[2])
		if err1 != nil || err2 != nil || err3 != nil {
			continue
		}
		diameters = append(diameters, d)
		sdr11 = append(sdr11, w11)
		sdr17 = append(sdr17, w17)
	}
	if len(diameters) == 0 {
		return nil, fmt.Errorf("no usable rows")
	}

	// Uploaded schedules reuse the standard class properties; only the
	// geometry comes from the file.
	classes := pipe.DefaultTable().Classes
	return pipe.NewTable(diameters, classes, [][]float64{sdr11, sdr17})
}

func toFloat(s string) (float64, error) {
	var v float64
	_, err := fmt.Sscanf(s, "%f", &v)
	return v, err
}
