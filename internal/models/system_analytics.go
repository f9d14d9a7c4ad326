package models

import (
	"time"

	"gorm.io/datatypes"
)

// SystemAnalytics holds periodic system-wide trend snapshots. The table is
// migrated for schema parity with the dashboard database but no code path
// writes to it yet.
type SystemAnalytics struct {
	ID              uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	AnalyticsDate   time.Time      `gorm:"not null;default:now()" json:"analytics_date"`
	TotalGrievances int            `gorm:"not null" json:"total_grievances"`
	CategoryCounts  datatypes.JSON `gorm:"type:jsonb;not null;default:'{}'" json:"category_counts"`
	SentimentCounts datatypes.JSON `gorm:"type:jsonb;not null;default:'{}'" json:"sentiment_counts"`
	UrgencyCounts   datatypes.JSON `gorm:"type:jsonb;not null;default:'{}'" json:"urgency_counts"`
	TrendingIssues  datatypes.JSON `gorm:"type:jsonb;default:'[]'" json:"trending_issues"`
	WeeklyGrowth    datatypes.JSON `gorm:"type:jsonb;default:'{}'" json:"weekly_growth"`
}

func (SystemAnalytics) TableName() string {
	return "system_analytics"
}
