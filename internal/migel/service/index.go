package service

import (
	"sort"

	"swissdamed-migel/internal/migel/model"
)

// Index: keyword -> ids (positions in the catalog slice) of the items whose
// index keywords contain it. Written once by BuildIndex, read-only after.
type Index struct {
	keys     []string // sorted, for a deterministic scan
	postings map[string][]int
}

func BuildIndex(items []model.CatalogItem) *Index {
	idx := &Index{postings: make(map[string][]int)}
	for i := range items {
		for _, kw := range items[i].Index {
			if _, ok := idx.postings[kw]; !ok {
				idx.keys = append(idx.keys, kw)
			}
			idx.postings[kw] = append(idx.postings[kw], i)
		}
	}
	sort.Strings(idx.keys)
	return idx
}

// Len is the number of distinct keywords.
func (idx *Index) Len() int { return len(idx.keys) }

// Lookup returns the ids indexed under kw (caller must not modify).
func (idx *Index) Lookup(kw string) []int { return idx.postings[kw] }

// candidates scans every keyword against the folded product text and returns
// the sorted ids of all items behind a keyword that fuzzyContains accepts.
func (idx *Index) candidates(combined string, fuzzyMinLen int) []int {
	seen := make(map[int]struct{})
	for _, kw := range idx.keys {
		if !fuzzyContains(combined, kw, fuzzyMinLen) {
			continue
		}
		for _, id := range idx.postings[kw] {
			seen[id] = struct{}{}
		}
	}
	out := make([]int, 0, len(seen))
	for id := range seen {
		out = append(out, id)
	}
	sort.Ints(out)
	return out
}
