package services

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/ahmetcoskunkizilkaya/grievance-portal/internal/dto"
	"github.com/ahmetcoskunkizilkaya/grievance-portal/internal/models"
	"github.com/ahmetcoskunkizilkaya/grievance-portal/internal/storage"
	"gorm.io/datatypes"
)

const (
	topIssuesLimit     = 5
	summaryTopLimit    = 3
	noCategory         = "none"
	emptyWeeklySummary = "No complaints have been submitted yet. The system is ready to receive and analyze grievances."
)

type AnalyticsService struct {
	store    storage.Storage
	notifier ChangeNotifier
	now      func() time.Time
}

func NewAnalyticsService(store storage.Storage, notifier ChangeNotifier) *AnalyticsService {
	return &AnalyticsService{
		store:    store,
		notifier: notifierOrNop(notifier),
		now:      time.Now,
	}
}

// ComputeAnalytics aggregates every stored grievance into the dashboard
// payload.
func (s *AnalyticsService) ComputeAnalytics() (*dto.AnalyticsPayload, error) {
	if err := s.store.Ping(); err != nil {
		slog.Error("grievance store unreachable", "error", err)
		return nil, ErrStoreUnavailable
	}

	stats, err := s.store.GetGrievanceStats()
	if err != nil {
		return nil, err
	}

	rows, err := s.store.ListGrievancesWithAnalysis(storage.GrievanceFilter{})
	if err != nil {
		return nil, err
	}

	return buildAnalytics(stats, rows, s.now()), nil
}

// ComputeAndPersist computes the payload and stores it as a batch summary.
// The payload is still returned when only the summary write fails; BatchID
// is nil in that case.
func (s *AnalyticsService) ComputeAndPersist(batchName string) (*dto.AnalyticsPayload, error) {
	payload, err := s.ComputeAnalytics()
	if err != nil {
		return nil, err
	}

	ids := make([]uint, 0, len(payload.ProcessedComplaints))
	for _, c := range payload.ProcessedComplaints {
		ids = append(ids, c.ID)
	}

	summary := &models.BatchSummary{
		TotalComplaints:           payload.TotalComplaints,
		ComplaintVolumeByCategory: datatypes.NewJSONType(payload.ComplaintVolumeByCategory),
		SentimentOverview:         datatypes.NewJSONType(payload.SentimentOverview),
		UrgencyDistribution:       datatypes.NewJSONType(payload.UrgencyDistribution),
		WeeklySummary:             payload.WeeklySummary,
		TopRecurringIssues:        datatypes.NewJSONSlice(payload.TopRecurringIssues),
		GrievanceIDs:              datatypes.NewJSONSlice(ids),
	}
	if batchName != "" {
		summary.BatchName = &batchName
	}

	if err := s.store.InsertBatchSummary(summary); err != nil {
		slog.Error("failed to persist analytics snapshot", "batch", batchName, "error", err)
		return payload, nil
	}

	payload.BatchID = &summary.ID
	s.notifier.GrievancesChanged("snapshot")
	return payload, nil
}

func (s *AnalyticsService) ListBatchSummaries() ([]models.BatchSummary, error) {
	return s.store.ListBatchSummaries()
}

func (s *AnalyticsService) LatestBatchSummary() (*models.BatchSummary, error) {
	summary, err := s.store.GetLatestBatchSummary()
	if errors.Is(err, storage.ErrNotFound) {
		return nil, nil
	}
	return summary, err
}

func buildAnalytics(stats *storage.GrievanceStats, rows []models.Grievance, now time.Time) *dto.AnalyticsPayload {
	views := make([]dto.ComplaintView, 0, len(rows))
	analyzed := 0
	for _, g := range rows {
		if g.Analysis != nil {
			analyzed++
		}
		views = append(views, complaintView(g))
	}

	categories := CategoryTaxonomy.Merge(stats.Categories)
	sentiments := SentimentTaxonomy.Merge(stats.Sentiments)
	urgencies := UrgencyTaxonomy.Merge(stats.Urgencies)

	frequency := CategoryTaxonomy.Ranked(categories, topIssuesLimit)

	total := stats.Total
	negative := percentage(sentiments["negative"], total)
	urgent := percentage(urgencies["high"], total)

	mostCommon := noCategory
	if len(frequency) > 0 {
		mostCommon = frequency[0].Label
	}

	return &dto.AnalyticsPayload{
		ProcessedComplaints:       views,
		TotalComplaints:           total,
		ComplaintVolumeByCategory: categories,
		SentimentOverview:         sentiments,
		UrgencyDistribution:       urgencies,
		WeeklySummary:             weeklySummary(total, negative, urgent, frequency),
		TopRecurringIssues:        labels(frequency),
		Insights: dto.Insights{
			TotalAnalyzed:      analyzed,
			PendingAnalysis:    len(rows) - analyzed,
			NegativePercentage: negative,
			UrgentPercentage:   urgent,
			MostCommonCategory: mostCommon,
		},
		DatabaseStatus: "connected",
		LastUpdated:    now.UTC().Format(time.RFC3339),
	}
}

func complaintView(g models.Grievance) dto.ComplaintView {
	view := dto.ComplaintView{
		ID:          g.ID,
		RawText:     g.RawText,
		SubmittedAt: g.SubmittedAt,
		UserInfo:    g.UserInfo,
	}
	if a := g.Analysis; a != nil {
		processedAt := a.ProcessedAt
		view.CleanText = a.CleanText
		view.Category = a.Category
		view.Sentiment = a.Sentiment
		view.Urgency = a.Urgency
		view.Confidence = a.Confidence
		view.ProcessedAt = &processedAt
		return view
	}
	fallback := fallbackClassification(g.RawText)
	view.CleanText = fallback.CleanText
	view.Category = fallback.Category
	view.Sentiment = fallback.Sentiment
	view.Urgency = fallback.Urgency
	return view
}

func percentage(count, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(count) / float64(total) * 100))
}

func weeklySummary(total, negative, urgent int, frequency []LabelCount) string {
	if total == 0 {
		return emptyWeeklySummary
	}

	noun := "complaints"
	if total == 1 {
		noun = "complaint"
	}
	summary := fmt.Sprintf("Analysis of %d %s: %d%% showed negative sentiment and %d%% were marked as high urgency.",
		total, noun, negative, urgent)

	top := frequency
	if len(top) > summaryTopLimit {
		top = top[:summaryTopLimit]
	}
	if len(top) > 0 {
		summary += " Top categories: " + strings.Join(labels(top), ", ") + "."
	}
	return summary
}
