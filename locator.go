package portal

import (
	"fmt"
	"sort"
	"strings"

	"github.com/golang/geo/s2"
)

// earthRadiusKm converts s2 angles on the unit sphere to kilometres.
const earthRadiusKm = 6371.01

// Need is a boolean filter criterion for proximity search, evaluated
// against a branch's latest-year record. Multiple needs are a conjunction.
type Need string

const (
	NeedPrintResources      Need = "print_resources"
	NeedElectronicResources Need = "electronic_resources"
	NeedEnglishResources    Need = "english_resources"
	NeedFrenchResources     Need = "french_resources"
	NeedWebsite             Need = "website"
)

// Needs returns every recognized need, in menu order.
func Needs() []Need {
	return []Need{
		NeedPrintResources,
		NeedElectronicResources,
		NeedEnglishResources,
		NeedFrenchResources,
		NeedWebsite,
	}
}

// ParseNeed maps user input to a recognized need.
func ParseNeed(s string) (Need, error) {
	n := Need(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Needs() {
		if n == known {
			return n, nil
		}
	}
	return "", fmt.Errorf("unrecognized need %q", s)
}

// needColumns maps each need to the columns of which at least one must be
// reported and positive. NeedWebsite is handled separately.
var needColumns = map[Need][]Column{
	NeedPrintResources:      {ColTotalPrint},
	NeedElectronicResources: {ColTotalElectronic},
	NeedEnglishResources:    {ColEnglishPrint, ColEnglishElectronic},
	NeedFrenchResources:     {ColFrenchPrint, ColFrenchElectronic},
}

// Satisfied reports whether a record meets the need. An unreported
// statistic does not satisfy a need; only a reported positive value does.
func (n Need) Satisfied(r BranchRecord) bool {
	if n == NeedWebsite {
		return strings.TrimSpace(r.Website) != ""
	}
	for _, col := range needColumns[n] {
		if s := r.Stat(col); s.Known() && s.Value() > 0 {
			return true
		}
	}
	return false
}

// RankedBranch pairs a branch's latest record with its great-circle
// distance from the search reference coordinate.
type RankedBranch struct {
	Branch     BranchRecord
	DistanceKm float64
}

// Nearby finds library branches near a postal code, closest first.
//
// The postal code is validated and its forward sortation area resolved to
// a reference coordinate through the portal's geocoder; failure of either
// step returns ErrUnresolvableLocation. Candidates are each branch's
// latest-year record, excluding branches without a coordinate and branches
// that do not satisfy every requested need.
//
// The full ranked list is returned, ascending by distance with ties broken
// by branch code ascending, so identical inputs always produce identical
// output regardless of dataset row order. An empty list means no branch
// satisfied the filters and is not an error.
func (p *Portal) Nearby(postalCode string, needs ...Need) ([]RankedBranch, error) {
	cleaned, err := NormalizePostalCode(postalCode)
	if err != nil {
		return nil, err
	}
	fsa := cleaned[:3]

	ref, ok := p.geocoder.Locate(fsa)
	if !ok {
		return nil, fmt.Errorf("%w: unknown forward sortation area %q", ErrUnresolvableLocation, fsa)
	}
	refLL := s2.LatLngFromDegrees(ref.Lat, ref.Lng)

	var ranked []RankedBranch
	for _, code := range p.data.Codes() {
		r, ok := p.data.Latest(code)
		if !ok || !r.HasCoord {
			continue
		}
		if !satisfiesAll(r, needs) {
			continue
		}
		branchLL := s2.LatLngFromDegrees(r.Coord.Lat, r.Coord.Lng)
		dist := float64(refLL.Distance(branchLL)) * earthRadiusKm
		ranked = append(ranked, RankedBranch{Branch: r, DistanceKm: dist})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].DistanceKm != ranked[j].DistanceKm {
			return ranked[i].DistanceKm < ranked[j].DistanceKm
		}
		return ranked[i].Branch.Code < ranked[j].Branch.Code
	})
	return ranked, nil
}

func satisfiesAll(r BranchRecord, needs []Need) bool {
	for _, n := range needs {
		if !n.Satisfied(r) {
			return false
		}
	}
	return true
}
