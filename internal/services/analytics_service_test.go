package services

import (
	"errors"
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/grievance-portal/internal/storage/storagetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAnalyticsService(store *storagetest.MemStore) *AnalyticsService {
	svc := NewAnalyticsService(store, nil)
	svc.now = func() time.Time { return time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC) }
	return svc
}

func TestComputeAnalytics_EmptyStore(t *testing.T) {
	svc := newTestAnalyticsService(storagetest.New())

	payload, err := svc.ComputeAnalytics()
	require.NoError(t, err)

	assert.Equal(t, 0, payload.TotalComplaints)
	assert.Equal(t, emptyWeeklySummary, payload.WeeklySummary)
	assert.Equal(t, 0, payload.Insights.NegativePercentage)
	assert.Equal(t, 0, payload.Insights.UrgentPercentage)
	assert.Equal(t, "none", payload.Insights.MostCommonCategory)
	assert.Empty(t, payload.TopRecurringIssues)
	assert.NotNil(t, payload.ProcessedComplaints)
	assert.Len(t, payload.ComplaintVolumeByCategory, 7)
	assert.Len(t, payload.SentimentOverview, 3)
	assert.Len(t, payload.UrgencyDistribution, 3)
	for _, n := range payload.ComplaintVolumeByCategory {
		assert.Zero(t, n)
	}
	assert.Equal(t, "connected", payload.DatabaseStatus)
	assert.Equal(t, "2026-03-02T10:00:00Z", payload.LastUpdated)
}

func TestComputeAnalytics_Percentages(t *testing.T) {
	store := storagetest.New()
	store.Seed("cold showers", "facilities", "negative", "high")
	store.Seed("rude warden", "staff", "negative", "low")
	store.Seed("great mess food", "food", "positive", "medium")
	store.Seed("wifi is fine", "facilities", "neutral", "low")
	svc := newTestAnalyticsService(store)

	payload, err := svc.ComputeAnalytics()
	require.NoError(t, err)

	assert.Equal(t, 50, payload.Insights.NegativePercentage)
	assert.Equal(t, 25, payload.Insights.UrgentPercentage)
	assert.Equal(t, "facilities", payload.Insights.MostCommonCategory)
	assert.Equal(t, []string{"facilities", "food", "staff"}, payload.TopRecurringIssues)
	assert.Equal(t,
		"Analysis of 4 complaints: 50% showed negative sentiment and 25% were marked as high urgency. Top categories: facilities, food, staff.",
		payload.WeeklySummary)
	assert.Equal(t, 2, payload.ComplaintVolumeByCategory["facilities"])
	assert.Equal(t, 0, payload.ComplaintVolumeByCategory["security"])
	assert.Equal(t, 4, payload.Insights.TotalAnalyzed)
	assert.Equal(t, 0, payload.Insights.PendingAnalysis)
}

func TestComputeAnalytics_PendingGrievanceUsesFallbackLabels(t *testing.T) {
	store := storagetest.New()
	store.Seed("leaking tap", "maintenance", "negative", "medium")
	pendingID := store.Seed("  raw text only  ")
	svc := newTestAnalyticsService(store)

	payload, err := svc.ComputeAnalytics()
	require.NoError(t, err)

	require.Len(t, payload.ProcessedComplaints, 2)
	assert.Equal(t, 1, payload.Insights.TotalAnalyzed)
	assert.Equal(t, 1, payload.Insights.PendingAnalysis)
	assert.Equal(t, 2, payload.TotalComplaints)

	var found bool
	for _, view := range payload.ProcessedComplaints {
		if view.ID != pendingID {
			assert.NotNil(t, view.ProcessedAt)
			continue
		}
		found = true
		assert.Equal(t, "uncategorized", view.Category)
		assert.Equal(t, "neutral", view.Sentiment)
		assert.Equal(t, "low", view.Urgency)
		assert.Equal(t, view.RawText, view.CleanText)
		assert.Nil(t, view.ProcessedAt)
	}
	assert.True(t, found)
}

func TestComputeAnalytics_TopIssuesCappedAtFive(t *testing.T) {
	store := storagetest.New()
	for _, category := range CategoryTaxonomy.Keys {
		store.Seed("complaint about "+category, category, "neutral", "low")
	}
	store.Seed("another food complaint", "food", "negative", "high")
	svc := newTestAnalyticsService(store)

	payload, err := svc.ComputeAnalytics()
	require.NoError(t, err)

	assert.Equal(t, []string{"food", "accommodation", "facilities", "staff", "security"}, payload.TopRecurringIssues)
	assert.Contains(t, payload.WeeklySummary, "Top categories: food, accommodation, facilities.")
}

func TestComputeAnalytics_SingleComplaintWording(t *testing.T) {
	store := storagetest.New()
	store.Seed("noisy neighbours", "accommodation", "negative", "medium")
	svc := newTestAnalyticsService(store)

	payload, err := svc.ComputeAnalytics()
	require.NoError(t, err)

	assert.Equal(t,
		"Analysis of 1 complaint: 100% showed negative sentiment and 0% were marked as high urgency. Top categories: accommodation.",
		payload.WeeklySummary)
}

func TestComputeAnalytics_OnlyPendingOmitsTopCategories(t *testing.T) {
	store := storagetest.New()
	store.Seed("not classified yet")
	svc := newTestAnalyticsService(store)

	payload, err := svc.ComputeAnalytics()
	require.NoError(t, err)

	assert.Equal(t,
		"Analysis of 1 complaint: 0% showed negative sentiment and 0% were marked as high urgency.",
		payload.WeeklySummary)
	assert.Equal(t, "none", payload.Insights.MostCommonCategory)
}

func TestComputeAnalytics_StoreUnavailable(t *testing.T) {
	store := storagetest.New()
	store.PingErr = errors.New("connection refused")
	svc := newTestAnalyticsService(store)

	_, err := svc.ComputeAnalytics()

	assert.ErrorIs(t, err, ErrStoreUnavailable)
}

func TestComputeAndPersist_StoresSnapshot(t *testing.T) {
	store := storagetest.New()
	store.Seed("broken lock", "security", "negative", "high")
	store.Seed("fan not working", "maintenance", "negative", "medium")
	notifier := &recordingNotifier{}
	svc := NewAnalyticsService(store, notifier)

	payload, err := svc.ComputeAndPersist("dashboard")
	require.NoError(t, err)

	require.NotNil(t, payload.BatchID)
	require.Len(t, store.Summaries, 1)
	summary := store.Summaries[0]
	assert.Equal(t, *payload.BatchID, summary.ID)
	assert.Equal(t, "dashboard", *summary.BatchName)
	assert.Equal(t, 2, summary.TotalComplaints)
	assert.Len(t, summary.ComplaintVolumeByCategory.Data(), 7)
	assert.ElementsMatch(t, []uint{1, 2}, []uint(summary.GrievanceIDs))
	assert.Equal(t, []string{"snapshot"}, notifier.reasons)
}

func TestComputeAndPersist_SummaryFailureKeepsPayload(t *testing.T) {
	store := storagetest.New()
	store.Seed("broken lock", "security", "negative", "high")
	store.FailSummaryInsert = true
	svc := NewAnalyticsService(store, nil)

	payload, err := svc.ComputeAndPersist("")
	require.NoError(t, err)

	assert.Nil(t, payload.BatchID)
	assert.Equal(t, 1, payload.TotalComplaints)
}

func TestLatestBatchSummary_NoneStored(t *testing.T) {
	svc := NewAnalyticsService(storagetest.New(), nil)

	summary, err := svc.LatestBatchSummary()

	assert.NoError(t, err)
	assert.Nil(t, summary)
}
