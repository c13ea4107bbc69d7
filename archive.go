package portal

import "fmt"

// BranchValue names a branch together with its reported value for one
// statistic column.
type BranchValue struct {
	Code  string
	Name  string
	Value int64
}

// ColumnSummary aggregates one statistic column over a year. Total sums
// reported values only; unreported statistics are excluded, not counted as
// zero. Holders lists every branch tied at the maximum reported value,
// sorted by code; it is empty when no branch reported the column.
type ColumnSummary struct {
	Column   Column
	Total    int64
	Reported int
	Holders  []BranchValue
}

// YearlySummary is the archive view of a single year.
type YearlySummary struct {
	Year     int
	Branches int
	Columns  []ColumnSummary // in Columns() order
}

// Column returns the summary for a single column.
func (s YearlySummary) Column(c Column) (ColumnSummary, bool) {
	for _, cs := range s.Columns {
		if cs.Column == c {
			return cs, true
		}
	}
	return ColumnSummary{}, false
}

// Summarize computes the yearly archive: per-column totals and
// record-holders over every branch that reported in that year.
//
// A year outside the dataset's supported set fails with ErrInvalidYear. A
// supported year with zero qualifying records is not an error: it yields
// zero totals and empty holder lists.
func (p *Portal) Summarize(year int) (YearlySummary, error) {
	if !p.data.SupportsYear(year) {
		return YearlySummary{}, fmt.Errorf("%w: %d not in supported years %v", ErrInvalidYear, year, p.data.Years())
	}

	rows := p.data.ByYear(year)
	summary := YearlySummary{Year: year, Branches: len(rows)}

	for _, col := range Columns() {
		cs := ColumnSummary{Column: col}
		var max int64
		for _, r := range rows {
			s := r.Stat(col)
			if !s.Known() {
				continue
			}
			cs.Total += s.Value()
			cs.Reported++
			if cs.Holders == nil || s.Value() > max {
				max = s.Value()
				cs.Holders = cs.Holders[:0]
			}
			if s.Value() == max {
				// Rows are sorted by code, so ties stay code-ascending.
				cs.Holders = append(cs.Holders, BranchValue{Code: r.Code, Name: r.Name, Value: s.Value()})
			}
		}
		summary.Columns = append(summary.Columns, cs)
	}
	return summary, nil
}

// LanguageTotals holds per-language resource counts.
type LanguageTotals struct {
	English int64
	French  int64
	Other   int64
}

// ResourceTrend is one year's system-wide resource totals split by
// language and resource type. Unreported values are excluded from sums.
type ResourceTrend struct {
	Year       int
	Print      LanguageTotals
	Electronic LanguageTotals
}

// ResourceTrends computes per-year language/type totals across the whole
// dataset, year ascending. It feeds the resource charts.
func (p *Portal) ResourceTrends() []ResourceTrend {
	trends := make([]ResourceTrend, 0, len(p.data.Years()))
	for _, year := range p.data.Years() {
		t := ResourceTrend{Year: year}
		for _, r := range p.data.ByYear(year) {
			addKnown(&t.Print.English, r.Stat(ColEnglishPrint))
			addKnown(&t.Print.French, r.Stat(ColFrenchPrint))
			addKnown(&t.Print.Other, r.Stat(ColOtherPrint))
			addKnown(&t.Electronic.English, r.Stat(ColEnglishElectronic))
			addKnown(&t.Electronic.French, r.Stat(ColFrenchElectronic))
			addKnown(&t.Electronic.Other, r.Stat(ColOtherElectronic))
		}
		trends = append(trends, t)
	}
	return trends
}

func addKnown(dst *int64, s Stat) {
	if s.Known() {
		*dst += s.Value()
	}
}
