package dto

import "github.com/ahmetcoskunkizilkaya/grievance-portal/internal/models"

// SubmitRequest is the public form. Fields are accepted as form values or JSON.
type SubmitRequest struct {
	RawText    string `json:"raw_text" form:"raw_text"`
	Name       string `json:"name" form:"name"`
	RoomNumber string `json:"roomNumber" form:"roomNumber"`
	Email      string `json:"email" form:"email"`
}

type SubmitResponse struct {
	Success bool   `json:"success"`
	ID      uint   `json:"id"`
	Message string `json:"message"`
}

type AnalyzeRequest struct {
	RawText  string           `json:"raw_text"`
	UserInfo *models.UserInfo `json:"user_info,omitempty"`
}

type AnalyzeResponse struct {
	Success           bool   `json:"success"`
	ID                uint   `json:"id"`
	Complaint         string `json:"complaint"`
	AnalysisID        *uint  `json:"analysis_id"`
	AnalysisAvailable bool   `json:"analysis_available"`
	Message           string `json:"message"`
	Classification
}

type GrievanceListResponse struct {
	Grievances []models.Grievance `json:"grievances"`
	Count      int                `json:"count"`
}
