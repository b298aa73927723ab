package report

import (
	"github.com/xuri/excelize/v2"

	"trialsim/app"
	"trialsim/domain/trial"
	"trialsim/internal/errors"
)

// WriteSweepWorkbook writes one workbook row per sweep variant: the six
// outcome probabilities plus the realized analysis-time summaries.
func WriteSweepWorkbook(path string, result *app.SweepResult) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Sheet1"
	if idx, err := f.GetSheetIndex(sheet); err != nil || idx == -1 {
		if idx, err := f.NewSheet(sheet); err == nil {
			f.SetActiveSheet(idx)
		}
	}

	headers := []string{"scenario"}
	for _, o := range trial.Outcomes() {
		headers = append(headers, string(o))
	}
	headers = append(headers, "interim_mean_months", "final_mean_months", "stage_two_fraction", "replications", "seed")

	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return errors.ReportFailed("write workbook header", err)
		}
	}

	for r, row := range result.Rows {
		values := []interface{}{row.Label}
		for _, o := range trial.Outcomes() {
			values = append(values, row.Summary.Probability(o))
		}
		values = append(values,
			row.Summary.InterimTime.Mean,
			row.Summary.FinalTime.Mean,
			row.Summary.StageTwoFraction,
			row.Summary.Replications,
			row.Summary.Scenario.Seed,
		)

		for c, v := range values {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return errors.ReportFailed("write workbook row", err)
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		return errors.ReportFailed("save workbook", err)
	}
	return nil
}
