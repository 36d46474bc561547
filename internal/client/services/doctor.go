package services

import (
	"context"
	"fmt"
	"net/http"

	"github.com/respirex/respirex-client/internal/client/api"
	"github.com/respirex/respirex-client/internal/client/models"
)

// DoctorService exposes the doctor-only views of the backend.
type DoctorService interface {
	// Dashboard returns aggregate stats plus the screening records,
	// optionally narrowed to one state. "all" or "" disables the filter.
	Dashboard(ctx context.Context, stateFilter string) (*models.Dashboard, error)
}

type doctorService struct {
	client api.Client
}

func NewDoctorService(client api.Client) DoctorService {
	return &doctorService{client: client}
}

func (s *doctorService) Dashboard(ctx context.Context, stateFilter string) (*models.Dashboard, error) {
	if stateFilter == "" {
		stateFilter = "all"
	}
	d, err := s.client.DoctorDashboard(ctx, stateFilter)
	if err != nil {
		if api.HasStatus(err, http.StatusForbidden) {
			return nil, fmt.Errorf("doctor access required: %w", err)
		}
		return nil, fmt.Errorf("load dashboard: %w", err)
	}
	return d, nil
}
