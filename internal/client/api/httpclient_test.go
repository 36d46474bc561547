package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/respirex/respirex-client/internal/client/models"
	"github.com/respirex/respirex-client/internal/logging"
)

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func staticToken(token string) TokenSource {
	return TokenSourceFunc(func(ctx context.Context) (string, error) {
		return token, nil
	})
}

func newTestClient(t *testing.T, handler http.Handler, tokens TokenSource, opts Options) *HTTPClient {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)
	return NewHTTPClient(ts.URL, tokens, opts, testLogger())
}

// ---- token injection ----

func TestDo_AttachesBearerTokenAndRequestID(t *testing.T) {
	var gotAuth, gotReqID string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotReqID = r.Header.Get("X-Request-ID")
		_, _ = w.Write([]byte(`{"role":"patient"}`))
	})

	c := newTestClient(t, handler, staticToken("tok-123"), Options{})

	_, err := c.Profile(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-123", gotAuth)
	assert.NotEmpty(t, gotReqID)
}

func TestDo_FailOpenWhenTokenTimesOut(t *testing.T) {
	var gotAuth string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{"role":"patient"}`))
	})

	slow := TokenSourceFunc(func(ctx context.Context) (string, error) {
		time.Sleep(200 * time.Millisecond)
		return "too-late", nil
	})

	c := newTestClient(t, handler, slow, Options{TokenWait: 10 * time.Millisecond})

	_, err := c.Profile(context.Background())
	require.NoError(t, err, "the request must proceed without a token")
	assert.Empty(t, gotAuth)
}

func TestDo_FailOpenWhenTokenSourceErrors(t *testing.T) {
	var gotAuth string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{"role":"patient"}`))
	})

	failing := TokenSourceFunc(func(ctx context.Context) (string, error) {
		return "", errors.New("provider down")
	})

	c := newTestClient(t, handler, failing, Options{})

	_, err := c.Profile(context.Background())
	require.NoError(t, err)
	assert.Empty(t, gotAuth)
}

// ---- in-flight deduplication ----

func TestDo_SuppressesConcurrentDuplicate(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	var calls int
	var mu sync.Mutex

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		calls++
		mu.Unlock()
		close(entered)
		<-release
		_, _ = w.Write([]byte(`[]`))
	})

	c := newTestClient(t, handler, staticToken(""), Options{})

	var wg sync.WaitGroup
	wg.Add(1)
	var firstErr error
	go func() {
		defer wg.Done()
		_, firstErr = c.History(context.Background())
	}()

	<-entered // the first request is on the wire

	_, err := c.History(context.Background())
	require.ErrorIs(t, err, ErrDuplicateSuppressed)

	close(release)
	wg.Wait()
	require.NoError(t, firstErr)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 1, calls, "exactly one network call must be attempted")
	assert.Equal(t, 0, c.inFlight.len(), "all keys released after settle")
}

func TestDo_DifferentKeysAreNotSuppressed(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/history/" {
			close(entered)
			<-release
		}
		_, _ = w.Write([]byte(`[]`))
	})

	c := newTestClient(t, handler, staticToken(""), Options{})

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, _ = c.History(context.Background())
	}()

	<-entered

	// same path, different method: distinct key, must go through
	_, err := c.Appointments(context.Background())
	require.NoError(t, err)

	close(release)
	wg.Wait()
}

func TestDo_KeyReleasedAfterEverySettle(t *testing.T) {
	var status int
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(`[]`))
	})

	c := newTestClient(t, handler, staticToken(""), Options{})
	ctx := context.Background()

	status = http.StatusOK
	_, err := c.History(ctx)
	require.NoError(t, err)

	status = http.StatusInternalServerError
	_, err = c.History(ctx)
	require.Error(t, err)

	// the failed call must not wedge the key
	status = http.StatusOK
	_, err = c.History(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, c.inFlight.len())
}

// ---- error classification ----

func TestDo_Unreachable(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	baseURL := ts.URL
	ts.Close()

	c := NewHTTPClient(baseURL, staticToken(""), Options{}, testLogger())

	_, err := c.History(context.Background())
	require.ErrorIs(t, err, ErrUnreachable)
	assert.Equal(t, 0, c.inFlight.len())
}

func TestDo_Cancelled(t *testing.T) {
	started := make(chan struct{})
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(started)
		<-r.Context().Done()
	})

	c := newTestClient(t, handler, staticToken(""), Options{})

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		<-started
		cancel()
	}()

	_, err := c.History(ctx)
	require.ErrorIs(t, err, ErrCancelled)
	assert.Equal(t, 0, c.inFlight.len())
}

func TestDo_CancelledMidBodyRead(t *testing.T) {
	// Headers go out first, so the abort lands while the body is being
	// read. That is still a caller-initiated cancel, not an outage.
	started := make(chan struct{})
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`[{"id":`))
		w.(http.Flusher).Flush()
		close(started)
		<-r.Context().Done()
	})

	c := newTestClient(t, handler, staticToken(""), Options{})

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		<-started
		cancel()
	}()

	_, err := c.History(ctx)
	require.ErrorIs(t, err, ErrCancelled)
	require.NotErrorIs(t, err, ErrUnreachable)
	assert.Equal(t, 0, c.inFlight.len())
}

func TestDo_ServerErrorKeepsStatusAndBody(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error":"Unauthorized"}`))
	})

	c := newTestClient(t, handler, staticToken("t"), Options{})

	_, err := c.DoctorDashboard(context.Background(), "all")
	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusForbidden, se.StatusCode)
	assert.JSONEq(t, `{"error":"Unauthorized"}`, string(se.Body))
	assert.True(t, HasStatus(err, http.StatusForbidden))
	assert.False(t, HasStatus(err, http.StatusNotFound))
}

func TestProfile_NotFound(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"Profile not found"}`))
	})

	c := newTestClient(t, handler, staticToken("t"), Options{})

	_, err := c.Profile(context.Background())
	assert.True(t, HasStatus(err, http.StatusNotFound))
}

// ---- domain calls ----

func TestPredict_SendsMultipart(t *testing.T) {
	var gotFile []byte
	var gotSymptoms string

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/predict/", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))

		f, _, err := r.FormFile("file")
		require.NoError(t, err)
		gotFile, err = io.ReadAll(f)
		require.NoError(t, err)
		gotSymptoms = r.FormValue("symptoms")

		_ = json.NewEncoder(w).Encode(models.TestResult{
			ID:         7,
			Result:     "Negative",
			Confidence: 0.93,
			RiskLevel:  "low",
		})
	})

	c := newTestClient(t, handler, staticToken("t"), Options{})

	image := []byte{0x89, 0x50, 0x4e, 0x47}
	tr, err := c.Predict(context.Background(), image, "xray.png", map[string]any{"cough": true, "fever": false})
	require.NoError(t, err)

	assert.Equal(t, image, gotFile)
	assert.JSONEq(t, `{"cough":true,"fever":false}`, gotSymptoms)
	assert.Equal(t, int64(7), tr.ID)
	assert.Equal(t, "Negative", tr.Result)
}

func TestReport_ReturnsRawBytes(t *testing.T) {
	pdf := []byte("%PDF-1.4 data")
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/report/42/", r.URL.Path)
		_, _ = w.Write(pdf)
	})

	c := newTestClient(t, handler, staticToken("t"), Options{})

	data, err := c.Report(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, pdf, data)
}

func TestDoctorDashboard_StateFilter(t *testing.T) {
	var gotQuery string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		_ = json.NewEncoder(w).Encode(models.Dashboard{})
	})

	c := newTestClient(t, handler, staticToken("t"), Options{})

	_, err := c.DoctorDashboard(context.Background(), "KA")
	require.NoError(t, err)
	assert.Equal(t, "state=KA", gotQuery)

	_, err = c.DoctorDashboard(context.Background(), "all")
	require.NoError(t, err)
	assert.Empty(t, gotQuery)
}
