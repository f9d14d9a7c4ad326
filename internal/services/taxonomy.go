package services

import (
	"sort"
	"strings"
)

// Taxonomy is a closed label set that every reported mapping must cover.
// Keys are in declaration order, which also breaks ranking ties.
type Taxonomy struct {
	Keys     []string
	Fallback string
}

var (
	CategoryTaxonomy = Taxonomy{
		Keys:     []string{"accommodation", "food", "facilities", "staff", "security", "maintenance", "uncategorized"},
		Fallback: "uncategorized",
	}
	SentimentTaxonomy = Taxonomy{
		Keys:     []string{"positive", "neutral", "negative"},
		Fallback: "neutral",
	}
	UrgencyTaxonomy = Taxonomy{
		Keys:     []string{"low", "medium", "high"},
		Fallback: "low",
	}
)

// LabelCount is one entry of a ranked mapping.
type LabelCount struct {
	Label string
	Count int
}

// Normalize maps a label onto the taxonomy, case-insensitively. Labels outside
// the taxonomy map to the fallback key.
func (t Taxonomy) Normalize(label string) string {
	l := strings.ToLower(strings.TrimSpace(label))
	for _, k := range t.Keys {
		if k == l {
			return k
		}
	}
	return t.Fallback
}

// Merge returns a mapping holding exactly the taxonomy keys: observed counts
// where present, zero elsewhere. Counts for unknown labels are added to the
// fallback key.
func (t Taxonomy) Merge(observed map[string]int) map[string]int {
	merged := make(map[string]int, len(t.Keys))
	for _, k := range t.Keys {
		merged[k] = 0
	}
	for label, n := range observed {
		merged[t.Normalize(label)] += n
	}
	return merged
}

// Ranked orders the non-zero entries of a merged mapping by count descending.
// Equal counts keep taxonomy order. limit <= 0 means no limit.
func (t Taxonomy) Ranked(merged map[string]int, limit int) []LabelCount {
	ranked := make([]LabelCount, 0, len(t.Keys))
	for _, k := range t.Keys {
		if n := merged[k]; n > 0 {
			ranked = append(ranked, LabelCount{Label: k, Count: n})
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})
	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

func labels(counts []LabelCount) []string {
	out := make([]string, len(counts))
	for i, c := range counts {
		out[i] = c.Label
	}
	return out
}
