package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/robert-malhotra/go-spectra/spectra"
)

// Sheet names used by WriteXLSX.
const (
	SpectraSheet = "spectra"
	SummarySheet = "summary"
)

// WriteXLSX saves ds as a workbook. The spectra sheet has one row per
// spectrum; its header row holds the axis values, preceded by map_x and
// map_y columns when ds has coordinates. The summary sheet holds
// Summarize's result, one row per channel.
func WriteXLSX(path string, ds *spectra.Dataset) error {
	summary, err := Summarize(ds)
	if err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SpectraSheet); err != nil {
		return err
	}
	if err := writeSpectra(f, ds); err != nil {
		return fmt.Errorf("sheet %s: %w", SpectraSheet, err)
	}

	if _, err := f.NewSheet(SummarySheet); err != nil {
		return err
	}
	if err := writeSummary(f, summary); err != nil {
		return fmt.Errorf("sheet %s: %w", SummarySheet, err)
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}
	return nil
}

func writeSpectra(f *excelize.File, ds *spectra.Dataset) error {
	lead := 0
	var header []interface{}
	if ds.Coords != nil {
		lead = 2
		header = append(header, "map_x", "map_y")
	}
	for _, a := range ds.Axis {
		header = append(header, a)
	}
	if err := f.SetSheetRow(SpectraSheet, "A1", &header); err != nil {
		return err
	}

	row := make([]interface{}, lead+ds.Channels())
	for i := 0; i < ds.Rows(); i++ {
		if ds.Coords != nil {
			row[0], row[1] = ds.Coords.X[i], ds.Coords.Y[i]
		}
		for j, v := range ds.Spectrum(i) {
			row[lead+j] = v
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(SpectraSheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

func writeSummary(f *excelize.File, summary []ChannelSummary) error {
	header := []interface{}{"axis", "mean", "stddev", "min", "max", "median"}
	if err := f.SetSheetRow(SummarySheet, "A1", &header); err != nil {
		return err
	}
	for i, s := range summary {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []interface{}{s.Axis, s.Mean, s.StdDev, s.Min, s.Max, s.Median}
		if err := f.SetSheetRow(SummarySheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}
