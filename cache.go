package portal

import (
	"bytes"
	"compress/bzip2"
	"encoding/gob"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// cacheFileName is the gob snapshot of the merged dataset. A ".bz2"
// compressed variant is preferred when present.
const cacheFileName = "dataset.dmp"

// branchRecordGob is the serialization form of BranchRecord: statistics are
// flattened to a plain map holding only the reported values, so an absent
// key round-trips back to an explicit unknown.
type branchRecordGob struct {
	Code          string
	Name          string
	Year          int
	ServiceRegion string
	ServiceType   string
	Address       string
	City          string
	PostalCode    string
	Website       string
	Lat           float64
	Lng           float64
	HasCoord      bool
	Stats         map[string]int64
}

// datasetGob is the cache envelope.
type datasetGob struct {
	Years   []int
	Records []branchRecordGob
}

// StoreCache writes a gob snapshot of the dataset so later runs can skip
// workbook parsing.
func StoreCache(d *Dataset, cacheDir string) error {
	if err := os.MkdirAll(cacheDir, 0755); err != nil {
		return fmt.Errorf("creating cache directory: %w", err)
	}

	env := datasetGob{Years: d.Years()}
	for _, r := range d.Records() {
		gr := branchRecordGob{
			Code:          r.Code,
			Name:          r.Name,
			Year:          r.Year,
			ServiceRegion: r.ServiceRegion,
			ServiceType:   r.ServiceType,
			Address:       r.Address,
			City:          r.City,
			PostalCode:    r.PostalCode,
			Website:       r.Website,
			Lat:           r.Coord.Lat,
			Lng:           r.Coord.Lng,
			HasCoord:      r.HasCoord,
			Stats:         make(map[string]int64, len(r.Stats)),
		}
		for col, s := range r.Stats {
			if s.Known() {
				gr.Stats[string(col)] = s.Value()
			}
		}
		env.Records = append(env.Records, gr)
	}

	b := new(bytes.Buffer)
	if err := gob.NewEncoder(b).Encode(env); err != nil {
		return fmt.Errorf("encoding dataset cache: %w", err)
	}
	if err := os.WriteFile(filepath.Join(cacheDir, cacheFileName), b.Bytes(), 0644); err != nil {
		return fmt.Errorf("writing dataset cache: %w", err)
	}
	return nil
}

// LoadCache rebuilds a dataset from a snapshot written by StoreCache.
func LoadCache(cacheDir string) (*Dataset, error) {
	fh, cleanup, err := openOptionallyBzippedFile(filepath.Join(cacheDir, cacheFileName))
	if err != nil {
		return nil, err
	}
	defer cleanup()

	var env datasetGob
	if err := gob.NewDecoder(fh).Decode(&env); err != nil {
		return nil, fmt.Errorf("decoding dataset cache: %w", err)
	}

	records := make([]BranchRecord, 0, len(env.Records))
	for _, gr := range env.Records {
		r := BranchRecord{
			Code:          gr.Code,
			Name:          gr.Name,
			Year:          gr.Year,
			ServiceRegion: gr.ServiceRegion,
			ServiceType:   gr.ServiceType,
			Address:       gr.Address,
			City:          gr.City,
			PostalCode:    gr.PostalCode,
			Website:       gr.Website,
			Coord:         Coordinate{Lat: gr.Lat, Lng: gr.Lng},
			HasCoord:      gr.HasCoord,
			Stats:         make(map[Column]Stat, len(gr.Stats)),
		}
		for col, v := range gr.Stats {
			r.Stats[Column(col)] = KnownStat(v)
		}
		records = append(records, r)
	}
	return NewDataset(records, env.Years...)
}

// openOptionallyBzippedFile opens file+".bz2" when present, otherwise the
// plain file.
func openOptionallyBzippedFile(file string) (io.Reader, func() error, error) {
	fh, err := os.Open(file + ".bz2")
	if err != nil {
		fh, err = os.Open(file)
		if err != nil {
			return nil, nil, fmt.Errorf("opening %s: %w", file, err)
		}
		return fh, fh.Close, nil
	}
	return bzip2.NewReader(fh), fh.Close, nil
}
