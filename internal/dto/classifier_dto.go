package dto

// Classification is the classifier's verdict for one complaint.
type Classification struct {
	Category   string             `json:"category"`
	Sentiment  string             `json:"sentiment"`
	Urgency    string             `json:"urgency"`
	CleanText  string             `json:"clean_text"`
	Confidence map[string]float64 `json:"confidence,omitempty"`
}

type ClassifyRequest struct {
	RawText string `json:"raw_text"`
}

type ClassifiedComplaint struct {
	RawText string `json:"raw_text"`
	Classification
}

// BatchAnalysis is the classifier's answer to a CSV upload: one entry per row
// plus totals it aggregated itself.
type BatchAnalysis struct {
	ProcessedComplaints       []ClassifiedComplaint `json:"processed_complaints,omitempty"`
	TotalComplaints           int                   `json:"total_complaints"`
	ComplaintVolumeByCategory map[string]int        `json:"complaint_volume_by_category"`
	SentimentOverview         map[string]int        `json:"sentiment_overview"`
	UrgencyDistribution       map[string]int        `json:"urgency_distribution"`
	WeeklySummary             string                `json:"weekly_summary"`
	TopRecurringIssues        []string              `json:"top_recurring_issues"`
}

// BatchComplaint is a classified row with the ids it was stored under. Both
// ids are omitted for rows that could not be stored.
type BatchComplaint struct {
	ClassifiedComplaint
	ID         *uint `json:"id,omitempty"`
	AnalysisID *uint `json:"analysis_id,omitempty"`
}

type BatchResult struct {
	ProcessedComplaints       []BatchComplaint `json:"processed_complaints,omitempty"`
	TotalComplaints           int              `json:"total_complaints"`
	ComplaintVolumeByCategory map[string]int   `json:"complaint_volume_by_category"`
	SentimentOverview         map[string]int   `json:"sentiment_overview"`
	UrgencyDistribution       map[string]int   `json:"urgency_distribution"`
	WeeklySummary             string           `json:"weekly_summary"`
	TopRecurringIssues        []string         `json:"top_recurring_issues"`
	BatchID                   *uint            `json:"batch_id"`
	StoredGrievances          int              `json:"stored_grievances"`
}
