package portal

// Column identifies a numeric statistic column in the dataset. The values
// match the headers of the Ontario Public Library statistics workbooks so
// the loader can map cells to columns directly.
type Column string

const (
	ColCardholders         Column = "No. Cardholders"
	ColTotalPrint          Column = "Total Print Titles Held"
	ColTotalElectronic     Column = "Total E-book and E-audio Titles"
	ColEnglishPrint        Column = "English Print Titles Held"
	ColFrenchPrint         Column = "French Print Titles Held"
	ColOtherPrint          Column = "Other Print Titles Held"
	ColEnglishElectronic   Column = "English E-book and E-audio Titles"
	ColFrenchElectronic    Column = "French E-book and E-audio Titles"
	ColOtherElectronic     Column = "Other E-book and E-audio Titles"
	ColTotalResources      Column = "Total Resources"
)

// Columns returns every statistic column in reporting order.
func Columns() []Column {
	return []Column{
		ColCardholders,
		ColTotalPrint,
		ColTotalElectronic,
		ColEnglishPrint,
		ColFrenchPrint,
		ColOtherPrint,
		ColEnglishElectronic,
		ColFrenchElectronic,
		ColOtherElectronic,
		ColTotalResources,
	}
}

// Stat is a single numeric statistic which may be unreported. A reported
// zero and an unreported value are distinct: aggregates skip unreported
// values instead of counting them as zero.
type Stat struct {
	value int64
	known bool
}

// KnownStat returns a reported statistic value.
func KnownStat(v int64) Stat {
	return Stat{value: v, known: true}
}

// UnknownStat is the explicit marker for a statistic a branch did not report.
var UnknownStat = Stat{}

// Known reports whether the statistic was reported.
func (s Stat) Known() bool { return s.known }

// Value returns the reported value, or 0 when the statistic is unknown.
func (s Stat) Value() int64 { return s.value }

// Coordinate is a latitude/longitude pair in degrees.
type Coordinate struct {
	Lat float64
	Lng float64
}

// BranchRecord is one row of the dataset: a single library branch in a
// single year. (Code, Year) uniquely identifies a record; a branch may be
// absent in a year it did not report.
type BranchRecord struct {
	Code          string // stable branch identifier, e.g. "L0353"
	Name          string // display name, not guaranteed unique
	Year          int
	ServiceRegion string
	ServiceType   string
	Address       string
	City          string
	PostalCode    string
	Website       string

	// Coord is only meaningful when HasCoord is true. Records without a
	// resolvable coordinate are excluded from proximity search.
	Coord    Coordinate
	HasCoord bool

	Stats map[Column]Stat
}

// Stat returns the record's value for a column, UnknownStat if absent.
func (r BranchRecord) Stat(c Column) Stat {
	if s, ok := r.Stats[c]; ok {
		return s
	}
	return UnknownStat
}

// FSA returns the forward sortation area (first three characters) of the
// record's postal code, uppercased, or "" when no postal code is present.
func (r BranchRecord) FSA() string {
	return postalFSA(r.PostalCode)
}

// ResourcesPerCardholder returns the total resources held per registered
// cardholder. The second return is false when either statistic is
// unreported or the branch has zero cardholders.
func (r BranchRecord) ResourcesPerCardholder() (float64, bool) {
	total := r.Stat(ColTotalResources)
	cards := r.Stat(ColCardholders)
	if !total.Known() || !cards.Known() || cards.Value() == 0 {
		return 0, false
	}
	return float64(total.Value()) / float64(cards.Value()), true
}
