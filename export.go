package portal

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// exportSheetName is the sheet holding the merged table in exported
// workbooks.
const exportSheetName = "Library Statistics"

// exportTextHeaders precede the statistic columns in exported rows.
var exportTextHeaders = []string{
	headerCode,
	headerName,
	headerYear,
	headerServiceRegion,
	headerServiceType,
	headerStreetAddress,
	headerCity,
	headerPostalCode,
	headerWebsite,
	headerLatitude,
	headerLongitude,
}

// ExportXLSX writes the merged dataset to a single workbook, one row per
// (branch, year) in table order. Unreported statistics export as blank
// cells, preserving the unknown/zero distinction on a round-trip through
// ReadStatisticsFile.
func ExportXLSX(d *Dataset, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(exportSheetName)
	if err != nil {
		return fmt.Errorf("creating sheet: %w", err)
	}
	sw, err := f.NewStreamWriter(exportSheetName)
	if err != nil {
		return fmt.Errorf("creating stream writer: %w", err)
	}

	header := make([]interface{}, 0, len(exportTextHeaders)+len(Columns()))
	for _, h := range exportTextHeaders {
		header = append(header, h)
	}
	for _, col := range Columns() {
		header = append(header, string(col))
	}
	if err := sw.SetRow("A1", header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, r := range d.Records() {
		row := []interface{}{
			r.Code, r.Name, r.Year,
			r.ServiceRegion, r.ServiceType,
			r.Address, r.City, r.PostalCode, r.Website,
		}
		if r.HasCoord {
			row = append(row, r.Coord.Lat, r.Coord.Lng)
		} else {
			row = append(row, nil, nil)
		}
		for _, col := range Columns() {
			if s := r.Stat(col); s.Known() {
				row = append(row, s.Value())
			} else {
				row = append(row, nil)
			}
		}

		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := sw.SetRow(cell, row); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}

	if err := sw.Flush(); err != nil {
		return fmt.Errorf("flushing rows: %w", err)
	}

	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving workbook: %w", err)
	}
	return nil
}
