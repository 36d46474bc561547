// Package services contains application services for the RespireX client:
// role resolution, profile management, screening, and appointments. Each
// service is a thin consumer of the api.Client gateway; none of them hold
// navigation or session state.
package services

import (
	"context"
	"errors"
	"net/http"

	"github.com/respirex/respirex-client/internal/client/api"
	"github.com/respirex/respirex-client/internal/client/identity"
	"github.com/respirex/respirex-client/internal/client/models"
	"github.com/respirex/respirex-client/internal/logging"
)

// ErrProfileMissing means the user is authenticated but has no backend
// profile yet. The caller must route to profile completion, never to a
// role-specific home view.
var ErrProfileMissing = errors.New("backend profile does not exist")

// RoleResolver maps an authenticated identity to an application role.
//
// The backend profile is authoritative. The role embedded in the identity
// metadata is a best-effort cache populated at account creation; it is used
// only when the backend cannot answer, and never overrides a successful
// backend response.
type RoleResolver struct {
	client api.Client
	log    logging.Logger
}

func NewRoleResolver(client api.Client, log logging.Logger) *RoleResolver {
	return &RoleResolver{client: client, log: log}
}

// Resolve determines the role for user. It returns ErrProfileMissing when
// the backend reports no profile; every other backend failure degrades to
// the metadata role, defaulting to patient. Resolve never blocks beyond the
// gateway's own bounded waits.
func (r *RoleResolver) Resolve(ctx context.Context, user *identity.User) (models.Role, error) {
	profile, err := r.client.Profile(ctx)
	if err == nil {
		if profile.Role.Valid() {
			return profile.Role, nil
		}
		// A profile without a role is as good as no profile.
		return "", ErrProfileMissing
	}

	if api.HasStatus(err, http.StatusNotFound) {
		return "", ErrProfileMissing
	}

	r.log.Warn(ctx, "profile fetch failed, falling back to identity metadata",
		"user_id", user.ID, "error", err)

	if m := models.Role(user.Metadata.Role); m.Valid() {
		return m, nil
	}
	return models.RolePatient, nil
}
