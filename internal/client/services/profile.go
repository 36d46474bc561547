package services

import (
	"context"
	"fmt"
	"net/http"

	"github.com/respirex/respirex-client/internal/client/api"
	"github.com/respirex/respirex-client/internal/client/models"
)

// ProfileService reads and completes the backend user profile.
type ProfileService interface {
	Get(ctx context.Context) (*models.Profile, error)
	Complete(ctx context.Context, in models.ProfileInput) (*models.Profile, error)
}

type profileService struct {
	client api.Client
}

func NewProfileService(client api.Client) ProfileService {
	return &profileService{client: client}
}

func (s *profileService) Get(ctx context.Context) (*models.Profile, error) {
	p, err := s.client.Profile(ctx)
	if err != nil {
		if api.HasStatus(err, http.StatusNotFound) {
			return nil, ErrProfileMissing
		}
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return p, nil
}

func (s *profileService) Complete(ctx context.Context, in models.ProfileInput) (*models.Profile, error) {
	if in.Role == models.RoleDoctor && in.LicenseNumber == "" {
		return nil, fmt.Errorf("a license number is required for doctor accounts")
	}

	p, err := s.client.CompleteProfile(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("complete profile: %w", err)
	}
	return p, nil
}
