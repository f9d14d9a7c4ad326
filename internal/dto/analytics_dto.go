package dto

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/grievance-portal/internal/models"
)

// ComplaintView is one grievance as the dashboard shows it. Grievances that
// were never classified carry the fallback labels and a null processed_at.
type ComplaintView struct {
	ID          uint               `json:"id"`
	RawText     string             `json:"raw_text"`
	CleanText   string             `json:"clean_text"`
	Category    string             `json:"category"`
	Sentiment   string             `json:"sentiment"`
	Urgency     string             `json:"urgency"`
	Confidence  map[string]float64 `json:"confidence,omitempty"`
	SubmittedAt time.Time          `json:"submitted_at"`
	ProcessedAt *time.Time         `json:"processed_at"`
	UserInfo    *models.UserInfo   `json:"user_info"`
}

type Insights struct {
	TotalAnalyzed      int    `json:"total_analyzed"`
	PendingAnalysis    int    `json:"pending_analysis"`
	NegativePercentage int    `json:"negative_percentage"`
	UrgentPercentage   int    `json:"urgent_percentage"`
	MostCommonCategory string `json:"most_common_category"`
}

type AnalyticsPayload struct {
	ProcessedComplaints       []ComplaintView `json:"processed_complaints"`
	TotalComplaints           int             `json:"total_complaints"`
	ComplaintVolumeByCategory map[string]int  `json:"complaint_volume_by_category"`
	SentimentOverview         map[string]int  `json:"sentiment_overview"`
	UrgencyDistribution       map[string]int  `json:"urgency_distribution"`
	WeeklySummary             string          `json:"weekly_summary"`
	TopRecurringIssues        []string        `json:"top_recurring_issues"`
	Insights                  Insights        `json:"insights"`
	DatabaseStatus            string          `json:"database_status"`
	LastUpdated               string          `json:"last_updated"`
	BatchID                   *uint           `json:"batch_id,omitempty"`
}
