package portal

import "testing"

// branchStats is the shorthand for a fixture record's statistic columns.
// A value of -1 means the branch did not report that statistic.
type branchStats struct {
	card, engP, frP, othP, engE, frE, othE int64
}

func (b branchStats) toMap() map[Column]Stat {
	stats := make(map[Column]Stat)
	put := func(col Column, v int64) {
		if v >= 0 {
			stats[col] = KnownStat(v)
		}
	}
	put(ColCardholders, b.card)
	put(ColEnglishPrint, b.engP)
	put(ColFrenchPrint, b.frP)
	put(ColOtherPrint, b.othP)
	put(ColEnglishElectronic, b.engE)
	put(ColFrenchElectronic, b.frE)
	put(ColOtherElectronic, b.othE)
	if b.engP >= 0 && b.frP >= 0 && b.othP >= 0 {
		stats[ColTotalPrint] = KnownStat(b.engP + b.frP + b.othP)
	}
	if b.engE >= 0 && b.frE >= 0 && b.othE >= 0 {
		stats[ColTotalElectronic] = KnownStat(b.engE + b.frE + b.othE)
	}
	return stats
}

func fixtureRecord(code, name string, year int, postal, website string, lat, lng float64, stats branchStats) BranchRecord {
	r := BranchRecord{
		Code:          code,
		Name:          name,
		Year:          year,
		ServiceRegion: "Southern Ontario Library Service",
		ServiceType:   "Public",
		Address:       "1 Library Lane",
		City:          "Testington",
		PostalCode:    postal,
		Website:       website,
		Stats:         stats.toMap(),
	}
	if lat != 0 || lng != 0 {
		r.Coord = Coordinate{Lat: lat, Lng: lng}
		r.HasCoord = true
	}
	return r
}

// fixtureRecords builds the shared synthetic dataset:
//
//	L0001 Toronto Public Library     M4W, 2017-2019, French resources, website
//	L0002 Ottawa Public Library      K1P, 2017-2019, French resources, website
//	L0003 Waterloo Public Library    N2J, 2018-2019, French unreported in 2018
//	                                 and reported as zero in 2019, no website
//	L0004 Whitby Public Library      L1N, 2017-2019, no coordinate
//	L0005 Toronto Island Reading Room M5J, 2019 only, French unreported
//	L0006 Harbourfront Reading Room  M5J, 2019 only, same coordinate as L0005
func fixtureRecords() []BranchRecord {
	const (
		torontoLat = 43.6711
		torontoLng = -79.3876
		islandLat  = 43.6205
		islandLng  = -79.3790
	)
	return []BranchRecord{
		fixtureRecord("L0001", "Toronto Public Library", 2017, "M4W2R2", "tpl.example.ca", torontoLat, torontoLng,
			branchStats{card: 1000, engP: 5000, frP: 100, othP: 400, engE: 2000, frE: 10, othE: 5}),
		fixtureRecord("L0001", "Toronto Public Library", 2018, "M4W2R2", "tpl.example.ca", torontoLat, torontoLng,
			branchStats{card: 1100, engP: 5200, frP: 110, othP: 500, engE: 2100, frE: 11, othE: 6}),
		fixtureRecord("L0001", "Toronto Public Library", 2019, "M4W2R2", "tpl.example.ca", torontoLat, torontoLng,
			branchStats{card: 1200, engP: 5400, frP: 120, othP: 510, engE: 2200, frE: 12, othE: 7}),

		fixtureRecord("L0002", "Ottawa Public Library", 2017, "K1P5M2", "opl.example.ca", 45.4215, -75.6972,
			branchStats{card: 850, engP: 3900, frP: 780, othP: 480, engE: 1400, frE: 280, othE: 18}),
		fixtureRecord("L0002", "Ottawa Public Library", 2018, "K1P5M2", "opl.example.ca", 45.4215, -75.6972,
			branchStats{card: 900, engP: 4000, frP: 800, othP: 500, engE: 1500, frE: 300, othE: 20}),
		fixtureRecord("L0002", "Ottawa Public Library", 2019, "K1P5M2", "opl.example.ca", 45.4215, -75.6972,
			branchStats{card: 950, engP: 4100, frP: 820, othP: 520, engE: 1600, frE: 320, othE: 22}),

		fixtureRecord("L0003", "Waterloo Public Library", 2018, "N2J4V2", "", 43.4643, -80.5204,
			branchStats{card: 700, engP: 3000, frP: -1, othP: 50, engE: 1000, frE: -1, othE: 5}),
		fixtureRecord("L0003", "Waterloo Public Library", 2019, "N2J4V2", "", 43.4643, -80.5204,
			branchStats{card: 750, engP: 3100, frP: 0, othP: 60, engE: 1100, frE: 0, othE: 6}),

		fixtureRecord("L0004", "Whitby Public Library", 2017, "L1N6A1", "whitby.example.ca", 0, 0,
			branchStats{card: 300, engP: 1200, frP: 30, othP: 10, engE: 400, frE: 5, othE: 1}),
		fixtureRecord("L0004", "Whitby Public Library", 2018, "L1N6A1", "whitby.example.ca", 0, 0,
			branchStats{card: 320, engP: 1250, frP: 20, othP: 30, engE: 420, frE: 6, othE: 2}),
		fixtureRecord("L0004", "Whitby Public Library", 2019, "L1N6A1", "whitby.example.ca", 0, 0,
			branchStats{card: 340, engP: 1300, frP: 25, othP: 35, engE: 440, frE: 7, othE: 3}),

		fixtureRecord("L0005", "Toronto Island Reading Room", 2019, "M5J2E3", "", islandLat, islandLng,
			branchStats{card: 150, engP: 800, frP: -1, othP: 5, engE: 300, frE: -1, othE: 2}),
		fixtureRecord("L0006", "Harbourfront Reading Room", 2019, "M5J1A7", "harbourfront.example.ca", islandLat, islandLng,
			branchStats{card: 120, engP: 700, frP: -1, othP: 4, engE: 280, frE: -1, othE: 1}),
	}
}

func fixtureDataset(t testing.TB) *Dataset {
	t.Helper()
	d, err := NewDataset(fixtureRecords())
	if err != nil {
		t.Fatalf("building fixture dataset: %v", err)
	}
	return d
}

// fixtureGeocoder pins the FSA reference coordinates the locator tests
// measure against. M5J resolves to the exact coordinate of the two island
// branches so zero-distance behaviour is observable.
func fixtureGeocoder() FSATable {
	return FSATable{
		"M5J": {Lat: 43.6205, Lng: -79.3790},
		"M4W": {Lat: 43.6711, Lng: -79.3876},
		"K1P": {Lat: 45.4215, Lng: -75.6972},
	}
}

func fixturePortal(t testing.TB, opts ...Option) *Portal {
	t.Helper()
	opts = append([]Option{WithGeocoder(fixtureGeocoder())}, opts...)
	return New(fixtureDataset(t), opts...)
}
