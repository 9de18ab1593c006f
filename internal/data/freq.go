// ABOUTME: Insertion-ordered frequency counter for most-frequent reductions
// ABOUTME: Ties break by first-encountered order among maximal candidates
package data

import (
	"sort"

	"github.com/JahazielHernandezHoyos/embedding-with-groq-and-qdrant/internal/models"
)

type freqCounter struct {
	counts map[string]int
	order  []string
}

func newFreqCounter() *freqCounter {
	return &freqCounter{counts: make(map[string]int)}
}

func (f *freqCounter) Add(v string) {
	if _, seen := f.counts[v]; !seen {
		f.order = append(f.order, v)
	}
	f.counts[v]++
}

// Most returns the most frequent value; on a tie, the first encountered.
func (f *freqCounter) Most() string {
	best, bestCount := "", 0
	for _, v := range f.order {
		if f.counts[v] > bestCount {
			best, bestCount = v, f.counts[v]
		}
	}
	return best
}

// Top returns up to n values ranked by count, first-seen order on ties.
func (f *freqCounter) Top(n int) []models.ProductLineCount {
	ranked := make([]models.ProductLineCount, 0, len(f.order))
	for _, v := range f.order {
		ranked = append(ranked, models.ProductLineCount{Line: v, Count: f.counts[v]})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// Counts returns a copy of the raw distribution.
func (f *freqCounter) Counts() map[string]int {
	out := make(map[string]int, len(f.counts))
	for k, v := range f.counts {
		out[k] = v
	}
	return out
}
