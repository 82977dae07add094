// Package excel exports benchmark estimates to a spreadsheet.
package excel

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"benchlab/domain/estimate"
	"benchlab/internal/errors"
	"benchlab/ports"
)

const sheetName = "Estimates"

// Exporter writes one row per (benchmark, statistic) with the point
// estimate, interval bounds and standard error, plus relative-change
// columns when a comparison exists.
type Exporter struct {
	store          ports.ArtifactStore
	noiseThreshold float64
}

// NewExporter creates an exporter over the artifact store. The noise
// threshold drives the verdict column, matching the comparator's
// classification.
func NewExporter(store ports.ArtifactStore, noiseThreshold float64) *Exporter {
	return &Exporter{store: store, noiseThreshold: noiseThreshold}
}

// Export writes the spreadsheet to path.
func (e *Exporter) Export(path string) error {
	ids, err := e.store.List()
	if err != nil {
		return err
	}
	if len(ids) == 0 {
		return errors.InvalidInput("no benchmark runs to export")
	}

	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", sheetName)
	header := []interface{}{
		"benchmark", "statistic",
		"point estimate (ns)", "lower bound (ns)", "upper bound (ns)", "std error (ns)",
		"change", "change lower", "change upper", "verdict",
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return errors.IOError("failed to write header row", err)
	}

	row := 2
	for _, id := range ids {
		ests, err := e.store.LoadEstimates(id, ports.EstimatesNew)
		if err != nil {
			continue
		}
		changes, _ := e.store.LoadEstimates(id, ports.EstimatesChange)

		for _, statistic := range estimate.All() {
			est, ok := ests[statistic]
			if !ok {
				continue
			}
			ci := est.ConfidenceInterval
			cells := []interface{}{
				id.String(), statistic.String(),
				est.PointEstimate, ci.LowerBound, ci.UpperBound, est.StandardError,
			}
			if change, ok := changes[statistic]; ok {
				cci := change.ConfidenceInterval
				cells = append(cells,
					change.PointEstimate, cci.LowerBound, cci.UpperBound,
					string(estimate.ClassifyChange(change, e.noiseThreshold)))
			}
			cell := fmt.Sprintf("A%d", row)
			if err := f.SetSheetRow(sheetName, cell, &cells); err != nil {
				return errors.IOError("failed to write estimate row", err)
			}
			row++
		}
	}

	if err := f.SaveAs(path); err != nil {
		return errors.IOError("failed to save spreadsheet", err)
	}
	return nil
}
