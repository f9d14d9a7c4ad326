package models

import "time"

// UserInfo is the optional submitter context stored alongside a grievance.
// Every member is optional; an absent field stays nil rather than "".
type UserInfo struct {
	Name       *string `json:"name,omitempty"`
	RoomNumber *string `json:"room_number,omitempty"`
	Email      *string `json:"email,omitempty"`
	Source     *string `json:"source,omitempty"`
	Filename   *string `json:"filename,omitempty"`
}

// IsEmpty reports whether no field was supplied.
func (u *UserInfo) IsEmpty() bool {
	return u == nil ||
		(u.Name == nil && u.RoomNumber == nil && u.Email == nil && u.Source == nil && u.Filename == nil)
}

// Grievance is a raw complaint submission. Rows are never updated or deleted.
type Grievance struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	RawText     string    `gorm:"type:text;not null" json:"raw_text"`
	SubmittedAt time.Time `gorm:"not null;default:now();index" json:"submitted_at"`
	UserInfo    *UserInfo `gorm:"type:jsonb;serializer:json" json:"user_info"`
	IPAddress   *string   `gorm:"size:45" json:"ip_address,omitempty"`
	Analysis    *Analysis `gorm:"foreignKey:GrievanceID" json:"analysis,omitempty"`
}

func (Grievance) TableName() string {
	return "user_grievances"
}
