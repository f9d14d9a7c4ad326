package services

import "errors"

var (
	ErrValidation         = errors.New("grievance text is required")
	ErrStoreUnavailable   = errors.New("database connection failed")
	ErrServiceUnavailable = errors.New("AI analysis service is not available")
	ErrInvalidFile        = errors.New("file must be a CSV")
	ErrGrievanceNotFound  = errors.New("grievance not found")
	ErrAlreadyAnalyzed    = errors.New("grievance already has an analysis")
	ErrInvalidCredentials = errors.New("invalid email or password")
)
