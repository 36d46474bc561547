// Package identity implements the client of the external identity provider:
// session retrieval, credential sign-in, OAuth sign-in with PKCE, sign-out,
// and a push-event subscription for session lifecycle changes.
//
// The rest of the application treats every Session returned from here as
// possibly revoked by the time it is used; nothing outside this package
// mutates a Session.
package identity

import (
	"context"
	"errors"
	"time"
)

// AuthEvent is a session lifecycle event pushed to subscribers.
type AuthEvent string

const (
	EventSignedIn       AuthEvent = "SIGNED_IN"
	EventTokenRefreshed AuthEvent = "TOKEN_REFRESHED"
	EventSignedOut      AuthEvent = "SIGNED_OUT"
)

var (
	// ErrSessionUnavailable means the provider could not be reached to
	// establish whether a session exists. Callers degrade to unauthenticated.
	ErrSessionUnavailable = errors.New("identity provider unavailable")

	// ErrInvalidCredentials means the provider rejected the email/password.
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// UserMetadata is the best-effort profile snapshot embedded in the identity
// record at account creation. The role here is only a degraded-mode fallback;
// the backend profile is authoritative.
type UserMetadata struct {
	FullName  string `json:"full_name,omitempty"`
	Role      string `json:"role,omitempty"`
	Gender    string `json:"gender,omitempty"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

// User is the identity-provider user record.
type User struct {
	ID       string       `json:"id"`
	Email    string       `json:"email"`
	Metadata UserMetadata `json:"user_metadata"`
}

// Session is the provider-issued proof of authentication. It is created on
// sign-in, OAuth code exchange, or token refresh, and invalidated on
// sign-out or expiry.
type Session struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
	User         User      `json:"user"`
}

// Expired reports whether the access token is past (or within skew of) its
// expiry.
func (s *Session) Expired(skew time.Duration) bool {
	return time.Now().Add(skew).After(s.ExpiresAt)
}

// Subscription is a handle for an auth-event subscription. Unsubscribe is
// idempotent; events delivered after Unsubscribe are dropped.
type Subscription interface {
	Unsubscribe()
}

// AuthorizeRequest describes a started OAuth flow: the URL the user must
// open, plus the state and PKCE verifier the caller needs for the code
// exchange.
type AuthorizeRequest struct {
	URL      string
	State    string
	Verifier string
}

// Provider is the identity-provider contract the application consumes.
type Provider interface {
	// CurrentSession returns the current session, refreshing it when close
	// to expiry, or (nil, nil) when no session exists. A provider that
	// cannot be reached returns an error wrapping ErrSessionUnavailable.
	CurrentSession(ctx context.Context) (*Session, error)

	SignInWithPassword(ctx context.Context, email string, password []byte) (*Session, error)

	// SignUp creates an account carrying the given metadata. The returned
	// session is nil when the provider requires email confirmation first.
	SignUp(ctx context.Context, email string, password []byte, meta UserMetadata) (*Session, error)

	// OAuthURL starts an authorization-code flow with PKCE for the named
	// OAuth provider ("google", ...).
	OAuthURL(provider string) (*AuthorizeRequest, error)

	// ExchangeCode trades the authorization code plus PKCE verifier for a
	// session.
	ExchangeCode(ctx context.Context, code, verifier string) (*Session, error)

	// SignOut revokes the session. The resulting SIGNED_OUT push event,
	// not the return value, is what drives application state.
	SignOut(ctx context.Context) error

	// Subscribe registers fn for session lifecycle events for the lifetime
	// of the returned handle.
	Subscribe(fn func(event AuthEvent, session *Session)) Subscription

	Close() error
}

// Store persists the current session across process restarts, the way a
// browser client keeps it in local storage. Load returns (nil, nil) when
// nothing is stored.
type Store interface {
	Load(ctx context.Context) (*Session, error)
	Save(ctx context.Context, s *Session) error
	Clear(ctx context.Context) error
}
