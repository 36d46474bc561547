package services

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/respirex/respirex-client/internal/client/api"
	"github.com/respirex/respirex-client/internal/client/models"
)

// AppointmentService manages consultations between patients and doctors.
type AppointmentService interface {
	List(ctx context.Context) ([]models.Appointment, error)
	Book(ctx context.Context, doctorID string, at time.Time, reason string) (*models.Appointment, error)
	Cancel(ctx context.Context, id string) error
	Doctors(ctx context.Context) ([]models.Doctor, error)
}

type appointmentService struct {
	client api.Client
}

func NewAppointmentService(client api.Client) AppointmentService {
	return &appointmentService{client: client}
}

func (s *appointmentService) List(ctx context.Context) ([]models.Appointment, error) {
	items, err := s.client.Appointments(ctx)
	if err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}
	return items, nil
}

func (s *appointmentService) Book(ctx context.Context, doctorID string, at time.Time, reason string) (*models.Appointment, error) {
	if doctorID == "" {
		return nil, fmt.Errorf("doctor id is required")
	}
	if at.Before(time.Now()) {
		return nil, fmt.Errorf("appointment time must be in the future")
	}

	a, err := s.client.BookAppointment(ctx, models.AppointmentInput{
		DoctorID:    doctorID,
		ScheduledAt: at,
		Reason:      reason,
	})
	if err != nil {
		return nil, fmt.Errorf("book appointment: %w", err)
	}
	return a, nil
}

func (s *appointmentService) Cancel(ctx context.Context, id string) error {
	err := s.client.CancelAppointment(ctx, id)
	if err != nil {
		if api.HasStatus(err, http.StatusNotFound) {
			return fmt.Errorf("appointment %s does not exist", id)
		}
		return fmt.Errorf("cancel appointment: %w", err)
	}
	return nil
}

func (s *appointmentService) Doctors(ctx context.Context) ([]models.Doctor, error) {
	items, err := s.client.Doctors(ctx)
	if err != nil {
		return nil, fmt.Errorf("list doctors: %w", err)
	}
	return items, nil
}
