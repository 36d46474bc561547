package api

import (
	"context"

	"github.com/respirex/respirex-client/internal/client/models"
)

// TokenSource supplies the current bearer token for outbound requests.
// An empty token with a nil error means "no session"; requests then go out
// unauthenticated and the backend rejects what it must.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// TokenSourceFunc adapts a function to the TokenSource interface.
type TokenSourceFunc func(ctx context.Context) (string, error)

func (f TokenSourceFunc) Token(ctx context.Context) (string, error) {
	return f(ctx)
}

// Client is the transport-agnostic contract for the RespireX backend.
// Every operation is a single outbound call subject to the in-flight
// deduplication and token-injection rules of the implementation.
type Client interface {
	// Profile returns the current user's backend profile. A missing
	// profile surfaces as a StatusError with code 404.
	Profile(ctx context.Context) (*models.Profile, error)

	// CompleteProfile creates or updates the backend profile.
	CompleteProfile(ctx context.Context, in models.ProfileInput) (*models.Profile, error)

	// Predict submits an X-ray image with the symptom answers and returns
	// the screening verdict.
	Predict(ctx context.Context, image []byte, filename string, symptoms map[string]any) (*models.TestResult, error)

	// History returns the current patient's past screenings, newest first.
	History(ctx context.Context) ([]models.TestResult, error)

	// DoctorDashboard returns aggregate stats and records for doctors.
	// stateFilter narrows records to one state; "all" disables the filter.
	DoctorDashboard(ctx context.Context, stateFilter string) (*models.Dashboard, error)

	// Report downloads the PDF report for a screening.
	Report(ctx context.Context, id int64) ([]byte, error)

	// EmailReport asks the backend to mail the report to the patient.
	EmailReport(ctx context.Context, id int64) error

	// Stats returns the public landing-page counters.
	Stats(ctx context.Context) (*models.Stats, error)

	Appointments(ctx context.Context) ([]models.Appointment, error)
	BookAppointment(ctx context.Context, in models.AppointmentInput) (*models.Appointment, error)
	CancelAppointment(ctx context.Context, id string) error
	Doctors(ctx context.Context) ([]models.Doctor, error)

	Close() error
}
