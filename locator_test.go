package portal

import (
	"errors"
	"reflect"
	"testing"
)

func rankedCodes(ranked []RankedBranch) []string {
	out := make([]string, len(ranked))
	for i, rb := range ranked {
		out[i] = rb.Branch.Code
	}
	return out
}

func TestNearbyOrdering(t *testing.T) {
	p := fixturePortal(t)

	ranked, err := p.Nearby("M5J 2N8")
	if err != nil {
		t.Fatal(err)
	}

	// The two island reading rooms share the reference coordinate, so both
	// are at distance zero and order by code. Toronto is a few kilometres
	// out, Waterloo further, Ottawa furthest. Whitby has no coordinate and
	// never appears.
	want := []string{"L0005", "L0006", "L0001", "L0003", "L0002"}
	if got := rankedCodes(ranked); !reflect.DeepEqual(got, want) {
		t.Fatalf("Nearby codes = %v, want %v", got, want)
	}

	for i := 0; i < 2; i++ {
		if ranked[i].DistanceKm != 0 {
			t.Errorf("ranked[%d].DistanceKm = %v, want 0", i, ranked[i].DistanceKm)
		}
	}
	for i := 1; i < len(ranked); i++ {
		if ranked[i].DistanceKm < ranked[i-1].DistanceKm {
			t.Fatalf("distances not non-decreasing at index %d", i)
		}
	}
	for _, rb := range ranked {
		if rb.Branch.Year != 2019 {
			t.Errorf("%s ranked with year %d, want latest year 2019", rb.Branch.Code, rb.Branch.Year)
		}
	}
}

func TestNearbyOrderIndependentOfInput(t *testing.T) {
	recs := fixtureRecords()
	for i, j := 0, len(recs)-1; i < j; i, j = i+1, j-1 {
		recs[i], recs[j] = recs[j], recs[i]
	}
	d, err := NewDataset(recs)
	if err != nil {
		t.Fatal(err)
	}
	p := New(d, WithGeocoder(fixtureGeocoder()))

	ranked, err := p.Nearby("M5J2N8")
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"L0005", "L0006", "L0001", "L0003", "L0002"}
	if got := rankedCodes(ranked); !reflect.DeepEqual(got, want) {
		t.Fatalf("Nearby codes = %v, want %v", got, want)
	}
}

func TestNearbyNeedsFilter(t *testing.T) {
	p := fixturePortal(t)

	all, err := p.Nearby("M5J2N8")
	if err != nil {
		t.Fatal(err)
	}

	// French resources: Waterloo reported zero in its latest year and the
	// reading rooms did not report at all, so none of them qualify.
	french, err := p.Nearby("M5J2N8", NeedFrenchResources)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"L0001", "L0002"}
	if got := rankedCodes(french); !reflect.DeepEqual(got, want) {
		t.Fatalf("french filter codes = %v, want %v", got, want)
	}

	// A filtered result is a subset of the unfiltered one, distances intact.
	unfiltered := make(map[string]float64, len(all))
	for _, rb := range all {
		unfiltered[rb.Branch.Code] = rb.DistanceKm
	}
	for _, rb := range french {
		d, ok := unfiltered[rb.Branch.Code]
		if !ok {
			t.Errorf("%s appears filtered but not unfiltered", rb.Branch.Code)
			continue
		}
		if d != rb.DistanceKm {
			t.Errorf("%s distance changed under filtering: %v vs %v", rb.Branch.Code, rb.DistanceKm, d)
		}
	}

	website, err := p.Nearby("M5J2N8", NeedWebsite)
	if err != nil {
		t.Fatal(err)
	}
	want = []string{"L0006", "L0001", "L0002"}
	if got := rankedCodes(website); !reflect.DeepEqual(got, want) {
		t.Fatalf("website filter codes = %v, want %v", got, want)
	}

	// Conjunction of needs.
	both, err := p.Nearby("M5J2N8", NeedFrenchResources, NeedWebsite, NeedPrintResources)
	if err != nil {
		t.Fatal(err)
	}
	want = []string{"L0001", "L0002"}
	if got := rankedCodes(both); !reflect.DeepEqual(got, want) {
		t.Fatalf("combined filter codes = %v, want %v", got, want)
	}
}

func TestNearbyUnresolvableLocation(t *testing.T) {
	p := fixturePortal(t)

	tests := []string{
		"not a postal code",
		"M5J",    // too short
		"",       //
		"N2J4V2", // valid format, FSA absent from the fixture geocoder
	}
	for _, input := range tests {
		_, err := p.Nearby(input)
		if !errors.Is(err, ErrUnresolvableLocation) {
			t.Errorf("Nearby(%q) error = %v, want ErrUnresolvableLocation", input, err)
		}
	}
}

func TestNearbyEmptyResultIsNotAnError(t *testing.T) {
	// A dataset whose only branch lacks a coordinate leaves no candidates.
	d, err := NewDataset([]BranchRecord{
		fixtureRecord("L0004", "Whitby Public Library", 2019, "L1N6A1", "whitby.example.ca", 0, 0,
			branchStats{card: 340, engP: 1300, frP: 25, othP: 35, engE: 440, frE: 7, othE: 3}),
	})
	if err != nil {
		t.Fatal(err)
	}
	p := New(d, WithGeocoder(fixtureGeocoder()))

	ranked, err := p.Nearby("M5J2N8")
	if err != nil {
		t.Fatalf("empty result should not be an error, got %v", err)
	}
	if len(ranked) != 0 {
		t.Fatalf("expected no ranked branches, got %v", rankedCodes(ranked))
	}
}

func TestNearbyIdempotent(t *testing.T) {
	p := fixturePortal(t)

	first, err := p.Nearby("M4W1A1", NeedEnglishResources)
	if err != nil {
		t.Fatal(err)
	}
	second, err := p.Nearby("M4W1A1", NeedEnglishResources)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("identical Nearby calls returned different results")
	}
}

func TestParseNeed(t *testing.T) {
	tests := []struct {
		in      string
		want    Need
		wantErr bool
	}{
		{"french_resources", NeedFrenchResources, false},
		{" Website ", NeedWebsite, false},
		{"PRINT_RESOURCES", NeedPrintResources, false},
		{"wifi", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := ParseNeed(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseNeed(%q) succeeded, want error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseNeed(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseNeed(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
