package cli

import (
	"bufio"
	"context"
	"errors"
	"os"
	"sync"
	"time"

	"github.com/respirex/respirex-client/internal/client/config"
	"github.com/respirex/respirex-client/internal/client/identity"
	"github.com/respirex/respirex-client/internal/client/models"
	"github.com/respirex/respirex-client/internal/client/services"
	"github.com/respirex/respirex-client/internal/logging"
)

// roleResolver is the slice of services.RoleResolver the controller needs.
type roleResolver interface {
	Resolve(ctx context.Context, user *identity.User) (models.Role, error)
}

// App is the top-level session/navigation state machine. It owns the
// (user, role, currentPage, isLoading) surface; all mutation goes through
// Bootstrap, the auth-event handler, role-resolution completion, Navigate,
// and the safety timeout. Nothing else writes these fields.
type App struct {
	config       *config.Config
	log          logging.Logger
	provider     identity.Provider
	resolver     roleResolver
	screenings   services.ScreeningService
	appointments services.AppointmentService
	profiles     services.ProfileService
	doctors      services.DoctorService
	reader       *bufio.Reader

	mu              sync.Mutex
	user            *identity.User
	role            models.Role
	currentPage     Page
	isLoading       bool
	isResolvingRole bool
	// generation increments on every sign-out. A role resolution started
	// under an older generation is discarded when it completes.
	generation uint64
	closed     bool

	sub         identity.Subscription
	safetyTimer *time.Timer

	// lastResult is the payload of the test-result page, set when a
	// screening submission completes.
	lastResult *models.TestResult
}

func NewApp(cfg *config.Config, log logging.Logger, provider identity.Provider,
	resolver roleResolver, screenings services.ScreeningService,
	appointments services.AppointmentService, profiles services.ProfileService,
	doctors services.DoctorService) *App {
	return &App{
		config:       cfg,
		log:          log,
		provider:     provider,
		resolver:     resolver,
		screenings:   screenings,
		appointments: appointments,
		profiles:     profiles,
		doctors:      doctors,
		reader:       bufio.NewReader(os.Stdin),
		currentPage:  PageLoading,
		isLoading:    true,
	}
}

// Bootstrap establishes the initial session state: it subscribes to provider
// push events, arms the safety timeout, and asks the provider for the
// current session exactly once. A provider that cannot be reached degrades
// to the unauthenticated state; bootstrap is never fatal.
//
// Push events may arrive before the session query returns. The
// isResolvingRole guard keeps the two paths from starting concurrent
// resolutions; whichever arrives second still updates the stored user.
func (a *App) Bootstrap(ctx context.Context) {
	a.mu.Lock()
	a.isLoading = true
	a.currentPage = PageLoading
	a.safetyTimer = time.AfterFunc(a.config.SafetyTimeout, a.safetyTimeoutFired)
	a.mu.Unlock()

	sub := a.provider.Subscribe(func(event identity.AuthEvent, session *identity.Session) {
		a.handleAuthEvent(ctx, event, session)
	})
	a.mu.Lock()
	a.sub = sub
	a.mu.Unlock()

	session, err := a.provider.CurrentSession(ctx)
	if err != nil {
		a.log.Warn(ctx, "could not restore session, starting unauthenticated", "error", err)
	}
	if err != nil || session == nil {
		a.toUnauthenticated()
		return
	}
	a.handleAuthEvent(ctx, identity.EventSignedIn, session)
}

// toUnauthenticated clears loading and shows the landing page unless the
// user already navigated somewhere.
func (a *App) toUnauthenticated() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		return
	}
	a.clearLoadingLocked()
	if a.currentPage == PageLoading {
		a.currentPage = PageLanding
	}
}

// handleAuthEvent applies one provider push event.
//
// SIGNED_OUT wins unconditionally: it bumps the session generation so any
// in-flight resolution is discarded on completion, and resets the surface to
// the landing page. SIGNED_IN and TOKEN_REFRESHED record the new user and
// start a role resolution unless one is already running.
func (a *App) handleAuthEvent(ctx context.Context, event identity.AuthEvent, session *identity.Session) {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return
	}

	switch event {
	case identity.EventSignedOut:
		a.generation++
		a.user = nil
		a.role = ""
		a.isResolvingRole = false
		a.clearLoadingLocked()
		a.currentPage = PageLanding
		a.mu.Unlock()

	case identity.EventSignedIn, identity.EventTokenRefreshed:
		if session == nil {
			a.mu.Unlock()
			return
		}
		user := session.User
		a.user = &user
		if a.isResolvingRole {
			a.mu.Unlock()
			return
		}
		a.isResolvingRole = true
		gen := a.generation
		a.mu.Unlock()
		go a.resolveRole(ctx, &user, gen)

	default:
		a.mu.Unlock()
	}
}

// resolveRole runs one role-resolution cycle and applies its outcome. A
// completion whose generation is stale (a sign-out happened meanwhile) is
// discarded without touching any state.
func (a *App) resolveRole(ctx context.Context, user *identity.User, gen uint64) {
	role, err := a.resolver.Resolve(ctx, user)

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.closed || gen != a.generation {
		return
	}

	a.isResolvingRole = false
	a.clearLoadingLocked()

	if err != nil {
		if errors.Is(err, services.ErrProfileMissing) {
			a.role = ""
			a.currentPage = PageCompleteProfile
			return
		}
		a.log.Error(ctx, "role resolution failed", "error", err)
		a.role = models.RolePatient
	} else {
		a.role = role
	}

	if a.currentPage.placeholder() {
		a.currentPage = roleHome(a.role)
	}
}

// safetyTimeoutFired unblocks rendering when neither bootstrap nor any push
// event has cleared the loading flag in time. It does not cancel a pending
// resolution; a resolution that completes later still applies normally.
func (a *App) safetyTimeoutFired() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed || !a.isLoading {
		return
	}
	a.log.Warn(context.Background(), "session bootstrap did not finish in time, rendering unauthenticated")
	a.isLoading = false
	if a.currentPage == PageLoading {
		a.currentPage = PageLanding
	}
}

func (a *App) clearLoadingLocked() {
	a.isLoading = false
	if a.safetyTimer != nil {
		a.safetyTimer.Stop()
	}
}

// Navigate switches the current page. It is always available regardless of
// auth state and never triggers role resolution.
func (a *App) Navigate(page Page) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		return
	}
	a.currentPage = page
}

// Logout asks the provider to revoke the session. The resulting SIGNED_OUT
// push event, not this call, drives the state transition, so a race between
// the event and the return cannot apply the transition twice.
func (a *App) Logout(ctx context.Context) error {
	return a.provider.SignOut(ctx)
}

// Close tears the controller down: the subscription is closed exactly once
// and every later event or resolution completion becomes a no-op.
func (a *App) Close() error {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return nil
	}
	a.closed = true
	if a.safetyTimer != nil {
		a.safetyTimer.Stop()
	}
	sub := a.sub
	a.mu.Unlock()

	if sub != nil {
		sub.Unsubscribe()
	}
	return nil
}

// CurrentUser returns the signed-in user, or nil.
func (a *App) CurrentUser() *identity.User {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.user
}

// Role returns the resolved role, or "" while unresolved.
func (a *App) Role() models.Role {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.role
}

func (a *App) CurrentPage() Page {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.currentPage
}

func (a *App) IsLoading() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.isLoading
}

func (a *App) isLoggedIn() bool {
	return a.CurrentUser() != nil
}
