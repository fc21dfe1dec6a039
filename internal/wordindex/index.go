// Package wordindex implements C1: an immutable word catalogue bucketed by
// length, queryable by positional letter constraints.
//
// Grounded on the teacher's pkg/primitives.CharSet (a fixed-alphabet
// membership set) and PossibleLines (a lazily filtered set of candidate
// lines): CharSet.Contains becomes a posting-list membership test, and
// PossibleLines.FilterAny becomes Query's constraint intersection — but
// reworked from "all same-length strings matching a pattern" to "catalogue
// words of a fixed length", since this system fills entries from a finite
// list rather than generating lines from the full alphabet.
package wordindex

import "sort"

// Constraint pins the letter at a 0-based position within a word.
type Constraint struct {
	Pos    int
	Letter byte
}

type bucket struct {
	words []string // canonical (sorted) order; index is the word id within this bucket
	// postings[pos*26+(letter-'A')] is the sorted list of word ids in this
	// bucket whose letter at pos is letter.
	postings map[int][]int
}

// Index is the immutable, queryable word catalogue (C1).
type Index struct {
	buckets map[int]*bucket // keyed by word length
}

func postingKey(pos int, letter byte) int {
	return pos*26 + int(letter-'A')
}

// Build constructs an Index from raw words. Inputs are deduplicated,
// normalized (Normalize), filtered to length [2, maxLen], and optionally
// capped to the first maxNumWords survivors in input order (0 means
// unbounded). Word order within the result is not guaranteed to match input
// order — buckets store words in a canonical (sorted) order so that
// posting-list intersections in Query run in linear time over the shortest
// list, per the word-query contract.
func Build(words []string, maxLen int, maxNumWords int) *Index {
	seen := make(map[string]bool)
	var kept []string
	for _, raw := range words {
		w, ok := Normalize(raw, 2, maxLen)
		if !ok || seen[w] {
			continue
		}
		seen[w] = true
		kept = append(kept, w)
		if maxNumWords > 0 && len(kept) >= maxNumWords {
			break
		}
	}

	byLen := make(map[int][]string)
	for _, w := range kept {
		byLen[len(w)] = append(byLen[len(w)], w)
	}

	ix := &Index{buckets: make(map[int]*bucket)}
	for length, ws := range byLen {
		sort.Strings(ws)
		b := &bucket{words: ws, postings: make(map[int][]int)}
		for id, w := range ws {
			for pos := 0; pos < length; pos++ {
				k := postingKey(pos, w[pos])
				b.postings[k] = append(b.postings[k], id)
			}
		}
		ix.buckets[length] = b
	}
	return ix
}

// Len returns the number of distinct catalogue words.
func (ix *Index) Len() int {
	n := 0
	for _, b := range ix.buckets {
		n += len(b.words)
	}
	return n
}

// BucketSize returns the number of catalogue words of the given length.
func (ix *Index) BucketSize(length int) int {
	b := ix.buckets[length]
	if b == nil {
		return 0
	}
	return len(b.words)
}

// Word returns the catalogue word identified by (length, id).
func (ix *Index) Word(length, id int) string {
	return ix.buckets[length].words[id]
}

// AllIDs returns the sorted id slice for every catalogue word of the given
// length — the starting candidate set before any constraint is applied.
func (ix *Index) AllIDs(length int) []int {
	b := ix.buckets[length]
	if b == nil {
		return nil
	}
	ids := make([]int, len(b.words))
	for i := range ids {
		ids[i] = i
	}
	return ids
}

// Posting returns the sorted id list of words of the given length whose
// letter at pos equals letter. The returned slice must not be mutated by
// the caller; it is shared catalogue state.
func (ix *Index) Posting(length, pos int, letter byte) []int {
	b := ix.buckets[length]
	if b == nil {
		return nil
	}
	return b.postings[postingKey(pos, letter)]
}

// Query returns the sorted id list of every catalogue word of the given
// length that satisfies every constraint. With no constraints it returns
// AllIDs(length).
func (ix *Index) Query(length int, constraints []Constraint) []int {
	if len(constraints) == 0 {
		return ix.AllIDs(length)
	}
	result := ix.Posting(length, constraints[0].Pos, constraints[0].Letter)
	for _, c := range constraints[1:] {
		if len(result) == 0 {
			return nil
		}
		result = IntersectSorted(result, ix.Posting(length, c.Pos, c.Letter))
	}
	return result
}

// IntersectSorted returns the sorted intersection of two sorted, duplicate
// free id slices, running in linear time over the shorter list.
func IntersectSorted(a, b []int) []int {
	if len(a) == 0 || len(b) == 0 {
		return nil
	}
	if len(b) < len(a) {
		a, b = b, a
	}
	out := make([]int, 0, len(a))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] == b[j]:
			out = append(out, a[i])
			i++
			j++
		case a[i] < b[j]:
			i++
		default:
			j++
		}
	}
	return out
}

// RemoveID returns a copy of ids with target removed, preserving order. If
// target is not present, ids itself is returned, not a copy.
// Used when a word is assigned to one entry and must disappear from every
// other unfilled entry's candidate set of the same length.
func RemoveID(ids []int, target int) []int {
	idx := sort.SearchInts(ids, target)
	if idx >= len(ids) || ids[idx] != target {
		return ids
	}
	out := make([]int, 0, len(ids)-1)
	out = append(out, ids[:idx]...)
	out = append(out, ids[idx+1:]...)
	return out
}
