package dto

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

type ErrorResponse struct {
	Error          bool   `json:"error"`
	Message        string `json:"message"`
	Code           string `json:"code,omitempty"`
	Details        string `json:"details,omitempty"`
	DatabaseStatus string `json:"database_status,omitempty"`
	BackendURL     string `json:"backend_url,omitempty"`
}

type HealthResponse struct {
	Status           string `json:"status"`
	Timestamp        string `json:"timestamp"`
	DB               string `json:"db"`
	ClassifierStatus string `json:"classifier_status"`
}

type ClassifierStatusResponse struct {
	Status     string `json:"ai_service_status"`
	BackendURL string `json:"backend_url"`
	Timestamp  string `json:"timestamp"`
}
