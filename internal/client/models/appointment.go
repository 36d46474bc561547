package models

import "time"

// Appointment is a scheduled consultation between a patient and a doctor.
type Appointment struct {
	ID          string    `json:"id"`
	DoctorID    string    `json:"doctor_id"`
	DoctorName  string    `json:"doctor_name,omitempty"`
	PatientName string    `json:"patient_name,omitempty"`
	ScheduledAt time.Time `json:"scheduled_at"`
	Reason      string    `json:"reason,omitempty"`
	Status      string    `json:"status"`
}

// AppointmentInput is the payload for booking an appointment.
type AppointmentInput struct {
	DoctorID    string    `json:"doctor_id"`
	ScheduledAt time.Time `json:"scheduled_at"`
	Reason      string    `json:"reason,omitempty"`
}

// Doctor is one entry of the bookable-doctors listing.
type Doctor struct {
	ID       string `json:"id"`
	FullName string `json:"full_name"`
	State    string `json:"state,omitempty"`
	City     string `json:"city,omitempty"`
}
