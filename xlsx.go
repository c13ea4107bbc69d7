package portal

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// statisticsFileFormat names the yearly Ontario statistics workbooks.
const statisticsFileFormat = "ontario_public_library_statistics_%d.xlsx"

// Text column headers in the statistics workbooks.
const (
	headerCode           = "Library Number"
	headerName           = "Library Full Name"
	headerServiceRegion  = "Ontario Library Service Region"
	headerServiceType    = "Service Type"
	headerStreetAddress  = "Street Address"
	headerMailingAddress = "Mailing Address"
	headerCity           = "City/Town"
	headerPostalCode     = "Postal Code"
	headerWebsite        = "Web Site Address"
	headerYear           = "Year"
	headerLatitude       = "Latitude"
	headerLongitude      = "Longitude"
)

// DefaultYears are the publication years covered by the dataset.
func DefaultYears() []int { return []int{2017, 2018, 2019} }

// LoadDataset reads the yearly statistics workbooks from dir and merges
// them into a single dataset. Years defaults to DefaultYears.
//
// One workbook per year is expected, named per statisticsFileFormat
// (e.g. "ontario_public_library_statistics_2017.xlsx").
func LoadDataset(dir string, years ...int) (*Dataset, error) {
	if len(years) == 0 {
		years = DefaultYears()
	}

	var records []BranchRecord
	for _, year := range years {
		path := filepath.Join(dir, fmt.Sprintf(statisticsFileFormat, year))
		recs, err := ReadStatisticsFile(path, year)
		if err != nil {
			return nil, fmt.Errorf("loading %d statistics: %w", year, err)
		}
		records = append(records, recs...)
	}
	return NewDataset(records, years...)
}

// ReadStatisticsFile parses one yearly workbook. The first sheet must carry
// a header row; unrecognized columns are ignored and blank statistic cells
// become explicit unknowns, never zeros. Rows without a branch code are
// skipped.
func ReadStatisticsFile(path string, year int) ([]BranchRecord, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, fmt.Errorf("workbook %s has no sheets", path)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("workbook %s is empty", path)
	}

	header := make(map[string]int, len(rows[0]))
	for i, h := range rows[0] {
		header[strings.TrimSpace(h)] = i
	}
	if _, ok := header[headerCode]; !ok {
		return nil, fmt.Errorf("workbook %s: missing %q column", path, headerCode)
	}

	cell := func(row []string, name string) string {
		idx, ok := header[name]
		if !ok || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	var records []BranchRecord
	for _, row := range rows[1:] {
		code := cell(row, headerCode)
		if code == "" {
			continue
		}

		r := BranchRecord{
			Code:          code,
			Name:          cell(row, headerName),
			Year:          year,
			ServiceRegion: cell(row, headerServiceRegion),
			ServiceType:   cell(row, headerServiceType),
			Address:       cell(row, headerStreetAddress),
			City:          cell(row, headerCity),
			PostalCode:    cell(row, headerPostalCode),
			Website:       cell(row, headerWebsite),
			Stats:         make(map[Column]Stat),
		}

		// The source data often leaves Street Address blank where a
		// mailing address exists; fall back as the merged dataset does.
		if r.Address == "" {
			r.Address = cell(row, headerMailingAddress)
		}

		if y, err := strconv.Atoi(cell(row, headerYear)); err == nil && y != 0 {
			r.Year = y
		}

		lat, errLat := strconv.ParseFloat(cell(row, headerLatitude), 64)
		lng, errLng := strconv.ParseFloat(cell(row, headerLongitude), 64)
		if errLat == nil && errLng == nil {
			r.Coord = Coordinate{Lat: lat, Lng: lng}
			r.HasCoord = true
		}

		for _, col := range Columns() {
			if s, ok := parseStat(cell(row, string(col))); ok {
				r.Stats[col] = s
			}
		}

		records = append(records, r)
	}
	return records, nil
}

// parseStat converts a statistic cell to a Stat. Blank and "N/A" cells are
// unknown; the second return is false so they are left out of the record's
// stats map entirely.
func parseStat(raw string) (Stat, bool) {
	cleaned := strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	if cleaned == "" || strings.EqualFold(cleaned, "n/a") {
		return UnknownStat, false
	}
	if v, err := strconv.ParseInt(cleaned, 10, 64); err == nil {
		return KnownStat(v), true
	}
	// Some workbooks store counts as floats ("12345.0").
	if fv, err := strconv.ParseFloat(cleaned, 64); err == nil {
		return KnownStat(int64(fv)), true
	}
	return UnknownStat, false
}
