// Package portal implements an information lookup service over the Ontario
// Public Library statistics dataset (2017-2019): branch lookup by name or
// code, proximity search by postal code, and yearly archive summaries.
//
// The dataset is loaded once into an immutable table; every operation is a
// pure read, so a Portal is safe for concurrent use after construction.
package portal

// Portal ties the dataset to a geocoder and exposes the lookup, locator
// and archive operations.
type Portal struct {
	data          *Dataset
	geocoder      Geocoder
	fuzzyDistance int
}

// Option configures a Portal.
type Option func(*Portal)

// WithGeocoder replaces the default dataset-derived FSA table.
func WithGeocoder(g Geocoder) Option {
	return func(p *Portal) {
		p.geocoder = g
	}
}

// WithFuzzyDistance sets the maximum Levenshtein distance for the lookup
// typo fallback. 0 disables fuzzy matching; values above 3 are capped.
func WithFuzzyDistance(n int) Option {
	return func(p *Portal) {
		if n < 0 {
			n = 0
		}
		if n > maxFuzzyDistance {
			n = maxFuzzyDistance
		}
		p.fuzzyDistance = n
	}
}

// New creates a portal over an already-built dataset.
//
// By default postal codes resolve through DeriveFSATable(data) and the
// lookup tolerates one character of typo:
//
//	data, err := portal.LoadDataset("./library-data")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	p := portal.New(data)
//	results, err := p.Nearby("M5V2T6", portal.NeedFrenchResources)
func New(data *Dataset, opts ...Option) *Portal {
	p := &Portal{
		data:          data,
		fuzzyDistance: 1,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.geocoder == nil {
		p.geocoder = DeriveFSATable(data)
	}
	return p
}

// Dataset returns the portal's underlying read-only table.
func (p *Portal) Dataset() *Dataset { return p.data }
