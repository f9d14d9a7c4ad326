package models

import (
	"time"

	"gorm.io/datatypes"
)

// BatchSummary is the aggregate persisted after a CSV ingestion or an
// on-demand analytics computation.
type BatchSummary struct {
	ID                        uint                               `gorm:"primaryKey;autoIncrement" json:"id"`
	BatchName                 *string                            `gorm:"size:255" json:"batch_name"`
	TotalComplaints           int                                `gorm:"not null" json:"total_complaints"`
	ComplaintVolumeByCategory datatypes.JSONType[map[string]int] `gorm:"type:jsonb;not null" json:"complaint_volume_by_category"`
	SentimentOverview         datatypes.JSONType[map[string]int] `gorm:"type:jsonb;not null" json:"sentiment_overview"`
	UrgencyDistribution       datatypes.JSONType[map[string]int] `gorm:"type:jsonb;not null" json:"urgency_distribution"`
	WeeklySummary             string                             `gorm:"type:text;not null" json:"weekly_summary"`
	TopRecurringIssues        datatypes.JSONSlice[string]        `gorm:"type:jsonb;not null" json:"top_recurring_issues"`
	CreatedAt                 time.Time                          `gorm:"index" json:"created_at"`
	GrievanceIDs              datatypes.JSONSlice[uint]          `gorm:"column:grievance_ids;type:jsonb;not null;default:'[]'" json:"grievance_ids"`
}

func (BatchSummary) TableName() string {
	return "batch_summaries"
}
