package portal

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestCacheRoundTrip(t *testing.T) {
	dir := t.TempDir()
	d := fixtureDataset(t)

	if err := StoreCache(d, dir); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(filepath.Join(dir, cacheFileName)); err != nil {
		t.Fatalf("cache file not written: %v", err)
	}

	loaded, err := LoadCache(dir)
	if err != nil {
		t.Fatal(err)
	}

	if !reflect.DeepEqual(loaded.Years(), d.Years()) {
		t.Errorf("Years() = %v, want %v", loaded.Years(), d.Years())
	}
	if !reflect.DeepEqual(loaded.Records(), d.Records()) {
		t.Error("cached records differ from the originals")
	}

	// The unknown/zero distinction survives the snapshot: Waterloo's 2018
	// French print count stays unreported, its 2019 count stays a reported
	// zero.
	recs := loaded.Branch("L0003")
	if recs[0].Stat(ColFrenchPrint).Known() {
		t.Error("unreported statistic became known through the cache")
	}
	if s := recs[1].Stat(ColFrenchPrint); !s.Known() || s.Value() != 0 {
		t.Errorf("reported zero became %+v through the cache", s)
	}
}

func TestCacheDeclaredYearsSurvive(t *testing.T) {
	dir := t.TempDir()
	d, err := NewDataset(fixtureRecords(), 2017, 2018, 2019, 2020)
	if err != nil {
		t.Fatal(err)
	}

	if err := StoreCache(d, dir); err != nil {
		t.Fatal(err)
	}
	loaded, err := LoadCache(dir)
	if err != nil {
		t.Fatal(err)
	}
	if !loaded.SupportsYear(2020) {
		t.Error("declared empty year lost through the cache")
	}
}

func TestLoadCacheMissing(t *testing.T) {
	if _, err := LoadCache(t.TempDir()); err == nil {
		t.Fatal("expected an error for a missing cache file")
	}
}
