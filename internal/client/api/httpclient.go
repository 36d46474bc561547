// Package api is the single outbound gateway to the RespireX backend.
//
// Every call goes through one choke point that (1) suppresses a call whose
// (method, path) twin is already in flight, and (2) attaches the freshest
// available bearer token, waiting a bounded time for it and proceeding
// unauthenticated when the wait runs out. Failures are classified into
// sentinel errors callers can match with errors.Is / errors.As:
// ErrDuplicateSuppressed, ErrCancelled, ErrUnreachable, and StatusError.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/respirex/respirex-client/internal/client/models"
	"github.com/respirex/respirex-client/internal/logging"
	"github.com/respirex/respirex-client/internal/netx"
)

// DefaultTokenWait bounds how long a request waits for the identity provider
// to produce a token before going out unauthenticated.
const DefaultTokenWait = 15 * time.Second

// HTTPClient implements Client over the backend's REST API.
type HTTPClient struct {
	baseURL   string
	tokens    TokenSource
	tokenWait time.Duration
	http      *http.Client
	inFlight  *inFlightSet
	log       logging.Logger
}

// Options tune an HTTPClient. Zero values fall back to defaults.
type Options struct {
	// Timeout is the per-request HTTP timeout. The backend runs the ML
	// model synchronously, so this defaults generously to 120 s.
	Timeout time.Duration

	// TokenWait bounds the wait for a bearer token (DefaultTokenWait).
	TokenWait time.Duration
}

func NewHTTPClient(baseURL string, tokens TokenSource, opts Options, log logging.Logger) *HTTPClient {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 120 * time.Second
	}
	tokenWait := opts.TokenWait
	if tokenWait <= 0 {
		tokenWait = DefaultTokenWait
	}
	return &HTTPClient{
		baseURL:   baseURL,
		tokens:    tokens,
		tokenWait: tokenWait,
		http:      &http.Client{Timeout: timeout},
		inFlight:  newInFlightSet(),
		log:       log,
	}
}

// bearerToken races token acquisition against the bounded wait. It never
// fails a request: on timeout or provider error the request goes out without
// a token and the backend rejects it if it must. The acquisition itself is
// not cancelled by the timeout; only this caller stops waiting.
func (c *HTTPClient) bearerToken(ctx context.Context) string {
	type result struct {
		token string
		err   error
	}

	ch := make(chan result, 1)
	go func() {
		t, err := c.tokens.Token(ctx)
		ch <- result{token: t, err: err}
	}()

	timer := time.NewTimer(c.tokenWait)
	defer timer.Stop()

	select {
	case r := <-ch:
		if r.err != nil {
			c.log.Warn(ctx, "token acquisition failed, sending request unauthenticated", "error", r.err)
			return ""
		}
		return r.token
	case <-timer.C:
		c.log.Warn(ctx, "token acquisition timed out, sending request unauthenticated", "wait", c.tokenWait)
		return ""
	case <-ctx.Done():
		return ""
	}
}

// do performs one deduplicated call and returns the raw response body.
// contentType is ignored when body is nil.
func (c *HTTPClient) do(ctx context.Context, method, path, contentType string, body io.Reader) ([]byte, error) {
	key := method + " " + path
	if !c.inFlight.tryAdd(key) {
		c.log.Debug(ctx, "duplicate request suppressed", "key", key)
		return nil, ErrDuplicateSuppressed
	}
	// The key must be released no matter how the request settles.
	defer c.inFlight.remove(key)

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("X-Request-ID", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", contentType)
	}
	if token := c.bearerToken(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	c.log.Debug(ctx, "api request", "method", method, "path", path)

	resp, err := c.http.Do(req)
	if err != nil {
		switch {
		case netx.IsCancelled(err):
			return nil, fmt.Errorf("%w: %v", ErrCancelled, err)
		case netx.IsUnreachable(err):
			return nil, fmt.Errorf("%w: %v", ErrUnreachable, err)
		default:
			return nil, fmt.Errorf("request failed: %w", err)
		}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		// An abort can land mid-read just as well as mid-dial.
		if netx.IsCancelled(err) {
			return nil, fmt.Errorf("%w: %v", ErrCancelled, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrUnreachable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: data}
	}

	return data, nil
}

// doJSON performs a call with an optional JSON request body, decoding the
// response into out when out is non-nil.
func (c *HTTPClient) doJSON(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	data, err := c.do(ctx, method, path, "application/json", body)
	if err != nil {
		return err
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

func (c *HTTPClient) Profile(ctx context.Context) (*models.Profile, error) {
	var p models.Profile
	if err := c.doJSON(ctx, http.MethodGet, "/profile/", nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *HTTPClient) CompleteProfile(ctx context.Context, in models.ProfileInput) (*models.Profile, error) {
	var p models.Profile
	if err := c.doJSON(ctx, http.MethodPost, "/profile/", in, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *HTTPClient) Predict(ctx context.Context, image []byte, filename string, symptoms map[string]any) (*models.TestResult, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	fw, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("build upload: %w", err)
	}
	if _, err := fw.Write(image); err != nil {
		return nil, fmt.Errorf("build upload: %w", err)
	}

	symptomsJSON, err := json.Marshal(symptoms)
	if err != nil {
		return nil, fmt.Errorf("encode symptoms: %w", err)
	}
	if err := mw.WriteField("symptoms", string(symptomsJSON)); err != nil {
		return nil, fmt.Errorf("build upload: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("build upload: %w", err)
	}

	data, err := c.do(ctx, http.MethodPost, "/predict/", mw.FormDataContentType(), &buf)
	if err != nil {
		return nil, err
	}

	var tr models.TestResult
	if err := json.Unmarshal(data, &tr); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &tr, nil
}

func (c *HTTPClient) History(ctx context.Context) ([]models.TestResult, error) {
	var results []models.TestResult
	if err := c.doJSON(ctx, http.MethodGet, "/history/", nil, &results); err != nil {
		return nil, err
	}
	return results, nil
}

func (c *HTTPClient) DoctorDashboard(ctx context.Context, stateFilter string) (*models.Dashboard, error) {
	path := "/doctor/dashboard/"
	if stateFilter != "" && stateFilter != "all" {
		path += "?state=" + stateFilter
	}
	var d models.Dashboard
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

func (c *HTTPClient) Report(ctx context.Context, id int64) ([]byte, error) {
	return c.do(ctx, http.MethodGet, fmt.Sprintf("/report/%d/", id), "", nil)
}

func (c *HTTPClient) EmailReport(ctx context.Context, id int64) error {
	return c.doJSON(ctx, http.MethodPost, fmt.Sprintf("/email-report/%d/", id), nil, nil)
}

func (c *HTTPClient) Stats(ctx context.Context) (*models.Stats, error) {
	var s models.Stats
	if err := c.doJSON(ctx, http.MethodGet, "/stats/", nil, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (c *HTTPClient) Appointments(ctx context.Context) ([]models.Appointment, error) {
	var items []models.Appointment
	if err := c.doJSON(ctx, http.MethodGet, "/appointments/", nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *HTTPClient) BookAppointment(ctx context.Context, in models.AppointmentInput) (*models.Appointment, error) {
	var a models.Appointment
	if err := c.doJSON(ctx, http.MethodPost, "/appointments/", in, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

func (c *HTTPClient) CancelAppointment(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/appointments/"+id+"/", nil, nil)
}

func (c *HTTPClient) Doctors(ctx context.Context) ([]models.Doctor, error) {
	var items []models.Doctor
	if err := c.doJSON(ctx, http.MethodGet, "/doctors-list/", nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *HTTPClient) Close() error {
	c.http.CloseIdleConnections()
	return nil
}
