package portal

import (
	"fmt"
	"sort"
	"strings"
)

// Dataset is the immutable in-memory table of branch records. It is built
// once at startup and shared read-only by every component, so no locking
// is needed after construction.
type Dataset struct {
	records   []BranchRecord   // sorted by (code, year)
	byCode    map[string][]int // uppercase code -> record indices, year ascending
	nameIndex map[string][]int // inverted index: lowercase name -> record indices
	years     []int            // supported years, ascending
}

// NewDataset builds a dataset from parsed branch records. The records are
// copied, validated and sorted; the input slice is not retained.
//
// The supported year set defaults to the distinct years present in the
// records. Passing explicit years overrides that, which allows a declared
// year with zero qualifying records (Summarize then returns empty totals
// instead of ErrInvalidYear).
func NewDataset(records []BranchRecord, years ...int) (*Dataset, error) {
	d := &Dataset{
		records:   make([]BranchRecord, len(records)),
		byCode:    make(map[string][]int),
		nameIndex: make(map[string][]int),
	}
	copy(d.records, records)

	yearSet := make(map[int]bool)
	for i := range d.records {
		r := &d.records[i]
		r.Code = strings.ToUpper(strings.TrimSpace(r.Code))
		if r.Code == "" {
			return nil, fmt.Errorf("record %d: empty branch code", i)
		}
		for col, s := range r.Stats {
			if s.Known() && s.Value() < 0 {
				return nil, fmt.Errorf("branch %s year %d: negative value %d for %q", r.Code, r.Year, s.Value(), col)
			}
		}
		deriveTotalResources(r)
		yearSet[r.Year] = true
	}

	sort.SliceStable(d.records, func(i, j int) bool {
		if d.records[i].Code != d.records[j].Code {
			return d.records[i].Code < d.records[j].Code
		}
		return d.records[i].Year < d.records[j].Year
	})

	for i, r := range d.records {
		if i > 0 && d.records[i-1].Code == r.Code && d.records[i-1].Year == r.Year {
			return nil, fmt.Errorf("duplicate record for branch %s year %d", r.Code, r.Year)
		}
		d.byCode[r.Code] = append(d.byCode[r.Code], i)
		key := strings.ToLower(strings.TrimSpace(r.Name))
		if key != "" {
			d.nameIndex[key] = append(d.nameIndex[key], i)
		}
	}

	if len(years) > 0 {
		for _, y := range years {
			yearSet[y] = true
		}
	}
	for y := range yearSet {
		d.years = append(d.years, y)
	}
	sort.Ints(d.years)

	return d, nil
}

// deriveTotalResources fills in the Total Resources column when the source
// data reports print and electronic holdings but not their sum.
func deriveTotalResources(r *BranchRecord) {
	if r.Stat(ColTotalResources).Known() {
		return
	}
	p := r.Stat(ColTotalPrint)
	e := r.Stat(ColTotalElectronic)
	if !p.Known() || !e.Known() {
		return
	}
	if r.Stats == nil {
		r.Stats = make(map[Column]Stat)
	}
	r.Stats[ColTotalResources] = KnownStat(p.Value() + e.Value())
}

// Len returns the number of records in the table.
func (d *Dataset) Len() int { return len(d.records) }

// Records returns the full table sorted by (code, year). The returned slice
// is shared; callers must treat it as read-only.
func (d *Dataset) Records() []BranchRecord { return d.records }

// Years returns the supported years in ascending order.
func (d *Dataset) Years() []int { return d.years }

// SupportsYear reports whether year is within the supported set.
func (d *Dataset) SupportsYear(year int) bool {
	for _, y := range d.years {
		if y == year {
			return true
		}
	}
	return false
}

// Codes returns every branch code, ascending.
func (d *Dataset) Codes() []string {
	codes := make([]string, 0, len(d.byCode))
	for c := range d.byCode {
		codes = append(codes, c)
	}
	sort.Strings(codes)
	return codes
}

// Branch returns every record for a branch code, year ascending. The match
// is case-insensitive. Returns nil when the code is unknown.
func (d *Dataset) Branch(code string) []BranchRecord {
	idxs, ok := d.byCode[strings.ToUpper(strings.TrimSpace(code))]
	if !ok {
		return nil
	}
	out := make([]BranchRecord, len(idxs))
	for i, idx := range idxs {
		out[i] = d.records[idx]
	}
	return out
}

// Latest returns the most recent record for a branch code.
func (d *Dataset) Latest(code string) (BranchRecord, bool) {
	idxs, ok := d.byCode[strings.ToUpper(strings.TrimSpace(code))]
	if !ok || len(idxs) == 0 {
		return BranchRecord{}, false
	}
	return d.records[idxs[len(idxs)-1]], true
}

// ByYear returns every record for a single year, sorted by code.
func (d *Dataset) ByYear(year int) []BranchRecord {
	var out []BranchRecord
	for _, r := range d.records {
		if r.Year == year {
			out = append(out, r)
		}
	}
	return out
}
