package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTaxonomyMerge_ZeroFillsEveryKey(t *testing.T) {
	merged := SentimentTaxonomy.Merge(map[string]int{"negative": 2})

	assert.Equal(t, map[string]int{"positive": 0, "neutral": 0, "negative": 2}, merged)
}

func TestTaxonomyMerge_UnknownLabelsFoldIntoFallback(t *testing.T) {
	merged := CategoryTaxonomy.Merge(map[string]int{
		"Food":          1,
		"plumbing":      2,
		"uncategorized": 1,
	})

	assert.Len(t, merged, len(CategoryTaxonomy.Keys))
	assert.Equal(t, 1, merged["food"])
	assert.Equal(t, 3, merged["uncategorized"])
	assert.NotContains(t, merged, "plumbing")
}

func TestTaxonomyMerge_NilInput(t *testing.T) {
	merged := UrgencyTaxonomy.Merge(nil)

	assert.Equal(t, map[string]int{"low": 0, "medium": 0, "high": 0}, merged)
}

func TestTaxonomyRanked_TiesKeepTaxonomyOrder(t *testing.T) {
	merged := CategoryTaxonomy.Merge(map[string]int{
		"security": 2,
		"food":     2,
		"staff":    3,
	})

	ranked := CategoryTaxonomy.Ranked(merged, 0)

	assert.Equal(t, []LabelCount{
		{Label: "staff", Count: 3},
		{Label: "food", Count: 2},
		{Label: "security", Count: 2},
	}, ranked)
}

func TestTaxonomyRanked_LimitAndZeroFiltering(t *testing.T) {
	merged := CategoryTaxonomy.Merge(map[string]int{
		"accommodation": 1, "food": 1, "facilities": 1, "staff": 1,
		"security": 1, "maintenance": 1, "uncategorized": 1,
	})

	ranked := CategoryTaxonomy.Ranked(merged, 5)
	assert.Len(t, ranked, 5)

	sparse := CategoryTaxonomy.Ranked(CategoryTaxonomy.Merge(map[string]int{"food": 1}), 5)
	assert.Equal(t, []string{"food"}, labels(sparse))
}

func TestTaxonomyNormalize(t *testing.T) {
	assert.Equal(t, "high", UrgencyTaxonomy.Normalize(" HIGH "))
	assert.Equal(t, "low", UrgencyTaxonomy.Normalize("critical"))
	assert.Equal(t, "neutral", SentimentTaxonomy.Normalize(""))
}
