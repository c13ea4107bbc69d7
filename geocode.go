package portal

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/golang/geo/r3"
	"github.com/golang/geo/s2"
)

// Canadian postal codes alternate letter and digit, e.g. "K1A1A1".
var postalCodeRe = regexp.MustCompile(`^([A-Za-z][0-9]){3}$`)

// NormalizePostalCode validates a user-supplied postal code and returns it
// uppercased with interior whitespace removed. A malformed code fails with
// ErrUnresolvableLocation.
func NormalizePostalCode(code string) (string, error) {
	cleaned := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(code), " ", ""))
	if !postalCodeRe.MatchString(cleaned) {
		return "", fmt.Errorf("%w: malformed postal code %q", ErrUnresolvableLocation, code)
	}
	return cleaned, nil
}

// postalFSA returns the forward sortation area of a postal code: its first
// three characters, uppercased. Returns "" for inputs shorter than an FSA.
func postalFSA(code string) string {
	cleaned := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(code), " ", ""))
	if len(cleaned) < 3 {
		return ""
	}
	return cleaned[:3]
}

// Geocoder resolves a forward sortation area to a reference coordinate.
// Implementations are static lookup tables; the portal never calls out to
// a network geocoding service.
type Geocoder interface {
	Locate(fsa string) (Coordinate, bool)
}

// FSATable is a Geocoder backed by a map of FSA centroids. Keys are
// uppercase three-character FSAs.
type FSATable map[string]Coordinate

// Locate implements Geocoder.
func (t FSATable) Locate(fsa string) (Coordinate, bool) {
	c, ok := t[strings.ToUpper(fsa)]
	return c, ok
}

// ontarioFSACentroids seeds the default geocoder with approximate centroids
// for well-known Ontario forward sortation areas. Ontario FSAs begin with
// K, L, M, N or P. The table is intentionally partial; DeriveFSATable
// extends it with centroids computed from the dataset itself.
var ontarioFSACentroids = FSATable{
	// Ottawa and eastern Ontario
	"K1A": {45.4215, -75.6996}, "K1P": {45.4200, -75.6990},
	"K2P": {45.4140, -75.6920}, "K7L": {44.2312, -76.4860},
	"K8N": {44.1628, -77.3832}, "K9H": {44.3021, -78.3215},
	// Greater Toronto and central Ontario
	"L1N": {43.8975, -78.9429}, "L4M": {44.3894, -79.6903},
	"L5B": {43.5890, -79.6441}, "L6Y": {43.6834, -79.7599},
	"L8P": {43.2520, -79.8767}, "L9Y": {44.5001, -80.2169},
	"M4W": {43.6793, -79.3805}, "M5J": {43.6426, -79.3780},
	"M5S": {43.6629, -79.3957}, "M5V": {43.6440, -79.3954},
	"M6K": {43.6393, -79.4252}, "M9W": {43.7067, -79.5940},
	// Southwestern Ontario
	"N1H": {43.5460, -80.2640}, "N2J": {43.4668, -80.5164},
	"N5Y": {43.0096, -81.2453}, "N6B": {42.9849, -81.2453},
	"N8X": {42.3043, -83.0370}, "N9A": {42.3149, -83.0364},
	// Northern Ontario
	"P1B": {46.3091, -79.4608}, "P3E": {46.4680, -80.9692},
	"P4N": {48.4758, -81.3305}, "P6A": {46.5219, -84.3461},
	"P7B": {48.4120, -89.2590},
}

// OntarioFSACentroids returns a copy of the built-in seed table.
func OntarioFSACentroids() FSATable {
	t := make(FSATable, len(ontarioFSACentroids))
	for k, v := range ontarioFSACentroids {
		t[k] = v
	}
	return t
}

// DeriveFSATable builds the default geocoding table for a dataset: the
// Ontario seed centroids, extended with a centroid per FSA computed from
// the coordinates of the branches located in it. Any FSA that hosts a
// branch with a known coordinate is therefore always resolvable.
//
// Dataset-derived centroids take precedence over seeds so the reference
// point stays consistent with the branch coordinates distances are
// measured against.
func DeriveFSATable(d *Dataset) FSATable {
	t := OntarioFSACentroids()

	sums := make(map[string]r3.Vector)
	counts := make(map[string]int)
	for _, code := range d.Codes() {
		r, ok := d.Latest(code)
		if !ok || !r.HasCoord {
			continue
		}
		fsa := r.FSA()
		if fsa == "" {
			continue
		}
		p := s2.PointFromLatLng(s2.LatLngFromDegrees(r.Coord.Lat, r.Coord.Lng))
		sums[fsa] = sums[fsa].Add(p.Vector)
		counts[fsa]++
	}

	for fsa, sum := range sums {
		if counts[fsa] == 0 {
			continue
		}
		ll := s2.LatLngFromPoint(s2.Point{Vector: sum.Normalize()})
		t[fsa] = Coordinate{Lat: ll.Lat.Degrees(), Lng: ll.Lng.Degrees()}
	}
	return t
}
