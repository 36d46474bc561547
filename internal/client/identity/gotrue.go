package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/respirex/respirex-client/internal/common"
	"github.com/respirex/respirex-client/internal/cryptox"
	"github.com/respirex/respirex-client/internal/logging"
	"github.com/respirex/respirex-client/internal/netx"
)

// expirySkew is how close to expiry a token may get before CurrentSession
// refreshes it proactively.
const expirySkew = 30 * time.Second

// GoTrueProvider talks to a GoTrue-compatible identity service (the hosted
// auth API the RespireX deployment uses) over HTTP.
type GoTrueProvider struct {
	baseURL     string
	apiKey      string
	redirectURL string
	http        *http.Client
	store       Store
	log         logging.Logger

	mu       sync.Mutex
	cur      *Session
	restored bool
	subs     map[int64]func(AuthEvent, *Session)
	nextSub  int64
	closed   bool

	// refreshMu serializes token refreshes. GoTrue rotates refresh tokens,
	// so a second concurrent refresh with the same token gets rejected and
	// would be mistaken for a revoked session.
	refreshMu sync.Mutex
}

// GoTrueConfig configures a GoTrueProvider. Store may be nil, in which case
// sessions do not survive restarts.
type GoTrueConfig struct {
	BaseURL     string
	APIKey      string
	RedirectURL string
	Timeout     time.Duration
}

func NewGoTrueProvider(cfg GoTrueConfig, store Store, log logging.Logger) *GoTrueProvider {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &GoTrueProvider{
		baseURL:     cfg.BaseURL,
		apiKey:      cfg.APIKey,
		redirectURL: cfg.RedirectURL,
		http:        &http.Client{Timeout: timeout},
		store:       store,
		log:         log,
		subs:        make(map[int64]func(AuthEvent, *Session)),
	}
}

// wire formats

type wireUser struct {
	ID           string       `json:"id"`
	Email        string       `json:"email"`
	UserMetadata UserMetadata `json:"user_metadata"`
}

type tokenResponse struct {
	AccessToken  string    `json:"access_token"`
	TokenType    string    `json:"token_type"`
	ExpiresIn    int64     `json:"expires_in"`
	RefreshToken string    `json:"refresh_token"`
	User         *wireUser `json:"user"`
}

type apiError struct {
	Error       string `json:"error"`
	Description string `json:"error_description"`
	Msg         string `json:"msg"`
}

func (e *apiError) message() string {
	switch {
	case e.Description != "":
		return e.Description
	case e.Msg != "":
		return e.Msg
	default:
		return e.Error
	}
}

// session assembles a Session from a token response, decoding the access
// token for the expiry and for the user record when the response omits it.
func (r *tokenResponse) session() (*Session, error) {
	user, exp, err := decodeAccessToken(r.AccessToken)
	if err != nil {
		return nil, err
	}
	if r.User != nil {
		user = User{ID: r.User.ID, Email: r.User.Email, Metadata: r.User.UserMetadata}
	}
	if r.ExpiresIn > 0 {
		exp = time.Now().Add(time.Duration(r.ExpiresIn) * time.Second)
	}
	return &Session{
		AccessToken:  r.AccessToken,
		RefreshToken: r.RefreshToken,
		ExpiresAt:    exp,
		User:         user,
	}, nil
}

// post sends a JSON request to the auth service and decodes a JSON response
// into out (when out is non-nil). Transport failures are wrapped in
// ErrSessionUnavailable; 4xx auth rejections map to ErrInvalidCredentials.
func (p *GoTrueProvider) post(ctx context.Context, path, query string, body, out any, bearer string) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	u := p.baseURL + path
	if query != "" {
		u += "?" + query
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", p.apiKey)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := p.http.Do(req)
	if err != nil {
		if netx.IsCancelled(err) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrSessionUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSessionUnavailable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var ae apiError
		_ = json.Unmarshal(data, &ae)
		if resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusUnauthorized ||
			resp.StatusCode == http.StatusUnprocessableEntity {
			return fmt.Errorf("%w: %s", ErrInvalidCredentials, ae.message())
		}
		return fmt.Errorf("auth service returned %d: %s", resp.StatusCode, ae.message())
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// CurrentSession returns the cached session, restoring a persisted one on
// first use and refreshing it when close to expiry. A session whose refresh
// is rejected by the provider is treated as revoked.
func (p *GoTrueProvider) CurrentSession(ctx context.Context) (*Session, error) {
	p.mu.Lock()

	if !p.restored {
		p.restored = true
		if p.store != nil {
			s, err := p.store.Load(ctx)
			if err != nil {
				p.log.Warn(ctx, "could not restore persisted session", "error", err)
			} else {
				p.cur = s
			}
		}
	}

	if p.cur == nil {
		p.mu.Unlock()
		return nil, nil
	}

	if !p.cur.Expired(expirySkew) {
		s := *p.cur
		p.mu.Unlock()
		return &s, nil
	}

	p.mu.Unlock()

	return p.refresh(ctx)
}

// refresh exchanges the stored refresh token for a new session, one caller
// at a time. A caller that lost the race returns the session the winner
// stored instead of replaying the now-rotated token.
func (p *GoTrueProvider) refresh(ctx context.Context) (*Session, error) {
	p.refreshMu.Lock()
	defer p.refreshMu.Unlock()

	p.mu.Lock()
	if p.cur == nil {
		p.mu.Unlock()
		return nil, nil
	}
	if !p.cur.Expired(expirySkew) {
		s := *p.cur
		p.mu.Unlock()
		return &s, nil
	}
	refreshToken := p.cur.RefreshToken
	p.mu.Unlock()

	var tr tokenResponse
	body := map[string]string{"refresh_token": refreshToken}
	err := p.post(ctx, "/token", "grant_type=refresh_token", body, &tr, "")

	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			// The refresh token was revoked; the stored session is dead.
			p.log.Info(ctx, "session refresh rejected, signing out")
			p.clearSession(ctx)
			p.emit(EventSignedOut, nil)
			return nil, nil
		}
		return nil, err
	}

	s, err := tr.session()
	if err != nil {
		return nil, err
	}

	p.setSession(ctx, s)
	p.emit(EventTokenRefreshed, s)
	return s, nil
}

func (p *GoTrueProvider) SignInWithPassword(ctx context.Context, email string, password []byte) (*Session, error) {
	var tr tokenResponse
	body := map[string]string{"email": email, "password": string(password)}
	if err := p.post(ctx, "/token", "grant_type=password", body, &tr, ""); err != nil {
		return nil, err
	}

	s, err := tr.session()
	if err != nil {
		return nil, err
	}

	p.setSession(ctx, s)
	p.emit(EventSignedIn, s)
	return s, nil
}

func (p *GoTrueProvider) SignUp(ctx context.Context, email string, password []byte, meta UserMetadata) (*Session, error) {
	var tr tokenResponse
	body := map[string]any{"email": email, "password": string(password), "data": meta}
	if err := p.post(ctx, "/signup", "", body, &tr, ""); err != nil {
		return nil, err
	}

	// Deployments with email confirmation enabled return no tokens here;
	// the user signs in after confirming.
	if tr.AccessToken == "" {
		return nil, nil
	}

	s, err := tr.session()
	if err != nil {
		return nil, err
	}

	p.setSession(ctx, s)
	p.emit(EventSignedIn, s)
	return s, nil
}

func (p *GoTrueProvider) OAuthURL(provider string) (*AuthorizeRequest, error) {
	state, err := common.MakeRandHexString(16)
	if err != nil {
		return nil, fmt.Errorf("generate state: %w", err)
	}
	verifier := cryptox.GenerateCodeVerifier()

	q := url.Values{
		"provider":              {provider},
		"redirect_to":           {p.redirectURL},
		"state":                 {state},
		"code_challenge":        {cryptox.CodeChallengeS256(verifier)},
		"code_challenge_method": {"s256"},
	}

	return &AuthorizeRequest{
		URL:      p.baseURL + "/authorize?" + q.Encode(),
		State:    state,
		Verifier: verifier,
	}, nil
}

func (p *GoTrueProvider) ExchangeCode(ctx context.Context, code, verifier string) (*Session, error) {
	var tr tokenResponse
	body := map[string]string{"auth_code": code, "code_verifier": verifier}
	if err := p.post(ctx, "/token", "grant_type=pkce", body, &tr, ""); err != nil {
		return nil, err
	}

	s, err := tr.session()
	if err != nil {
		return nil, err
	}

	p.setSession(ctx, s)
	p.emit(EventSignedIn, s)
	return s, nil
}

// SignOut revokes the current session. The local session is cleared and
// SIGNED_OUT is emitted even when revocation fails: an unreachable provider
// must not keep the user signed in on this device.
func (p *GoTrueProvider) SignOut(ctx context.Context) error {
	p.mu.Lock()
	var token string
	if p.cur != nil {
		token = p.cur.AccessToken
	}
	p.mu.Unlock()

	if token != "" {
		if err := p.post(ctx, "/logout", "", nil, nil, token); err != nil {
			p.log.Warn(ctx, "remote sign-out failed", "error", err)
		}
	}

	p.clearSession(ctx)
	p.emit(EventSignedOut, nil)
	return nil
}

func (p *GoTrueProvider) setSession(ctx context.Context, s *Session) {
	p.mu.Lock()
	p.cur = s
	p.restored = true
	p.mu.Unlock()

	if p.store != nil {
		if err := p.store.Save(ctx, s); err != nil {
			p.log.Warn(ctx, "could not persist session", "error", err)
		}
	}
}

func (p *GoTrueProvider) clearSession(ctx context.Context) {
	p.mu.Lock()
	p.cur = nil
	p.restored = true
	p.mu.Unlock()

	if p.store != nil {
		if err := p.store.Clear(ctx); err != nil {
			p.log.Warn(ctx, "could not clear persisted session", "error", err)
		}
	}
}

type subscription struct {
	p    *GoTrueProvider
	id   int64
	once sync.Once
}

func (s *subscription) Unsubscribe() {
	s.once.Do(func() {
		s.p.mu.Lock()
		delete(s.p.subs, s.id)
		s.p.mu.Unlock()
	})
}

func (p *GoTrueProvider) Subscribe(fn func(event AuthEvent, session *Session)) Subscription {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.nextSub++
	id := p.nextSub
	p.subs[id] = fn
	return &subscription{p: p, id: id}
}

// emit delivers an event to all current subscribers. Callbacks run outside
// the provider lock so they may call back into the provider.
func (p *GoTrueProvider) emit(event AuthEvent, s *Session) {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	fns := make([]func(AuthEvent, *Session), 0, len(p.subs))
	for _, fn := range p.subs {
		fns = append(fns, fn)
	}
	p.mu.Unlock()

	for _, fn := range fns {
		var copied *Session
		if s != nil {
			c := *s
			copied = &c
		}
		fn(event, copied)
	}
}

func (p *GoTrueProvider) Close() error {
	p.mu.Lock()
	p.closed = true
	p.subs = make(map[int64]func(AuthEvent, *Session))
	p.mu.Unlock()
	return nil
}
