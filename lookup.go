package portal

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

// maxFuzzyDistance caps the Levenshtein fallback so a single lookup never
// degenerates into matching most of the name index.
const maxFuzzyDistance = 3

// maxLookupInputLen truncates absurdly long queries before any edit
// distance computation.
const maxLookupInputLen = 256

// Find resolves a user-supplied branch name or code to matching records.
//
// Matching order: case-insensitive exact code, then exact name, then name
// substring, then (when the portal has a fuzzy distance configured) a
// Levenshtein scan of branch names. The first stage that produces matches
// wins; later stages are not consulted.
//
// Every record of every matched branch is returned, across all years,
// sorted by (code, year). An empty result means not found and is not an
// error; the caller decides how to report it.
func (p *Portal) Find(query string) []BranchRecord {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}
	if runes := []rune(query); len(runes) > maxLookupInputLen {
		query = string(runes[:maxLookupInputLen])
	}

	if recs := p.data.Branch(query); len(recs) > 0 {
		return recs
	}

	lower := strings.ToLower(query)

	// Exact name via the inverted index.
	if idxs, ok := p.data.nameIndex[lower]; ok {
		return p.collect(idxs)
	}

	// Substring scan over the indexed names.
	var matched []int
	for name, idxs := range p.data.nameIndex {
		if strings.Contains(name, lower) {
			matched = append(matched, idxs...)
		}
	}
	if len(matched) > 0 {
		return p.collect(matched)
	}

	// Fuzzy fallback for typos.
	if p.fuzzyDistance > 0 && len(lower) > 2 {
		for name, idxs := range p.data.nameIndex {
			if levenshtein.ComputeDistance(lower, name) <= p.fuzzyDistance {
				matched = append(matched, idxs...)
			}
		}
	}
	return p.collect(matched)
}

// collect expands matched record indices to the full history of each
// matched branch, sorted by (code, year). A branch that was renamed mid
// dataset still yields all of its years when any one year's name matches.
func (p *Portal) collect(idxs []int) []BranchRecord {
	if len(idxs) == 0 {
		return nil
	}
	codeSet := make(map[string]bool)
	for _, idx := range idxs {
		codeSet[p.data.records[idx].Code] = true
	}
	codes := make([]string, 0, len(codeSet))
	for c := range codeSet {
		codes = append(codes, c)
	}
	sort.Strings(codes)

	var out []BranchRecord
	for _, c := range codes {
		out = append(out, p.data.Branch(c)...)
	}
	return out
}
