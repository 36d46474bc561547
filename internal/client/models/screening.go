package models

import "time"

// TestResult is a completed screening: the model verdict for one X-ray plus
// the symptom answers submitted with it.
type TestResult struct {
	ID           int64          `json:"id"`
	XrayImageURL string         `json:"xray_image_url"`
	Result       string         `json:"result"`
	Confidence   float64        `json:"confidence_score"`
	RiskLevel    string         `json:"risk_level"`
	Symptoms     map[string]any `json:"symptoms_data,omitempty"`
	PatientName  string         `json:"patient_name,omitempty"`
	PatientState string         `json:"patient_state,omitempty"`
	DateTested   time.Time      `json:"date_tested"`
}

// DashboardStats is the aggregate block of the doctor dashboard.
type DashboardStats struct {
	Total    int `json:"total"`
	Positive int `json:"positive"`
	Negative int `json:"negative"`
}

// Dashboard is the doctor dashboard payload: aggregate counts plus the
// matching screening records.
type Dashboard struct {
	Stats   DashboardStats `json:"stats"`
	Records []TestResult   `json:"records"`
}

// Stats is the public landing-page counter block. No authentication needed.
type Stats struct {
	TotalTests    int `json:"total_tests"`
	TotalPatients int `json:"total_patients"`
	TotalDoctors  int `json:"total_doctors"`
}
