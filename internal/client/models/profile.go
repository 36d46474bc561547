package models

// Profile is the backend user profile record, the authoritative source of
// the application role.
type Profile struct {
	Role          Role   `json:"role"`
	FullName      string `json:"full_name,omitempty"`
	State         string `json:"state,omitempty"`
	City          string `json:"city,omitempty"`
	Age           int    `json:"age,omitempty"`
	Gender        string `json:"gender,omitempty"`
	LicenseNumber string `json:"license_number,omitempty"`
}

// ProfileInput is the payload for creating or completing a profile.
// LicenseNumber is required for doctors only.
type ProfileInput struct {
	Role          Role   `json:"role"`
	State         string `json:"state"`
	City          string `json:"city"`
	Age           int    `json:"age"`
	Gender        string `json:"gender"`
	LicenseNumber string `json:"licenseNumber,omitempty"`
}
