package models

import "time"

// Analysis is the classifier output for exactly one grievance.
type Analysis struct {
	ID          uint               `gorm:"primaryKey;autoIncrement" json:"id"`
	GrievanceID uint               `gorm:"not null;index" json:"grievance_id"`
	Category    string             `gorm:"size:100;not null;index" json:"category"`
	Sentiment   string             `gorm:"size:50;not null;index" json:"sentiment"`
	Urgency     string             `gorm:"size:50;not null;index" json:"urgency"`
	CleanText   string             `gorm:"type:text;not null" json:"clean_text"`
	Confidence  map[string]float64 `gorm:"type:jsonb;serializer:json" json:"confidence,omitempty"`
	ProcessedAt time.Time          `gorm:"not null;default:now()" json:"processed_at"`
	Grievance   *Grievance         `gorm:"foreignKey:GrievanceID;constraint:OnDelete:RESTRICT" json:"-"`
}

func (Analysis) TableName() string {
	return "analysis_results"
}
