package identity

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/respirex/respirex-client/internal/common"
)

// accessClaims is the subset of access-token claims the client reads.
type accessClaims struct {
	jwt.RegisteredClaims
	Email        string       `json:"email"`
	UserMetadata UserMetadata `json:"user_metadata"`
}

// decodeAccessToken extracts the user record and expiry embedded in the
// access token. The signature is not verified: only the backend holds the
// signing secret, and it re-verifies every request anyway.
func decodeAccessToken(token string) (User, time.Time, error) {
	claims := &accessClaims{}

	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return User{}, time.Time{}, fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}

	user := User{
		Email:    claims.Email,
		Metadata: claims.UserMetadata,
	}
	if claims.Subject != "" {
		user.ID = claims.Subject
	}

	var expiresAt time.Time
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}

	return user, expiresAt, nil
}
