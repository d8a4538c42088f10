package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-gamma/internal/logging"
	"github.com/cwbudde/algo-gamma/internal/testutil"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *APIError       `json:"error"`
	Meta    APIMeta         `json:"meta"`
}

func quietLogs(t *testing.T) {
	t.Helper()
	logging.Init(logging.LevelError, logging.FormatText, io.Discard)
}

func do(t *testing.T, h http.Handler, method, path string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var r io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		r = strings.NewReader(b)
	default:
		data, err := json.Marshal(b)
		require.NoError(t, err)
		r = bytes.NewReader(data)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, path, r))

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return rec, env
}

func scenarioRequest() CorrectRequest {
	req := CorrectRequest{
		Reference: testutil.GaussianPeaks(256, testutil.ReferencePeaks, 1000, 3),
		Shifted:   testutil.GaussianPeaks(256, testutil.ShiftedPeaks, 1000, 3),
	}
	req.Config.Step = 1e-3
	req.Config.Degree = 1
	req.Config.PeaksReference = testutil.ReferencePeaks
	req.Config.PeaksShifted = testutil.ShiftedPeaks
	return req
}

func TestHealth(t *testing.T) {
	quietLogs(t)
	s := New(Config{Version: "1.2.3"})

	rec, env := do(t, s.Handler(), http.MethodGet, "/api/v1/health", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, env.Success)
	require.NotEmpty(t, env.Meta.RequestID)
	require.Equal(t, env.Meta.RequestID, rec.Header().Get(logging.RequestIDHeader))

	var info HealthInfo
	require.NoError(t, json.Unmarshal(env.Data, &info))
	require.Equal(t, "healthy", info.Status)
	require.Equal(t, "1.2.3", info.Version)
	require.Equal(t, 128, info.Cache.MaxSize)

	rec, env = do(t, s.Handler(), http.MethodPost, "/api/v1/health", nil)
	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	require.Equal(t, CodeMethodNotAllowed, env.Error.Code)
}

func TestCorrectAndCache(t *testing.T) {
	quietLogs(t)
	s := New(Config{})
	h := s.Handler()

	req := scenarioRequest()
	req.Diagnose = true

	rec, env := do(t, h, http.MethodPost, "/api/v1/correct", req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.True(t, env.Success)

	var first CorrectResponse
	require.NoError(t, json.Unmarshal(env.Data, &first))
	require.False(t, first.Cached)
	require.Len(t, first.Key, 64)
	require.Len(t, first.Table.Rows, 256)
	require.Len(t, first.Forward, 2)
	require.Len(t, first.Inverse, 2)
	require.NotNil(t, first.Diagnostics)
	require.True(t, first.Diagnostics.LagOK)

	rec, env = do(t, h, http.MethodPost, "/api/v1/correct", req)
	require.Equal(t, http.StatusOK, rec.Code)

	var second CorrectResponse
	require.NoError(t, json.Unmarshal(env.Data, &second))
	require.True(t, second.Cached)
	require.Equal(t, first.Key, second.Key)
	require.Equal(t, first.Table, second.Table)

	stats := s.CacheStats()
	require.EqualValues(t, 1, stats.Hits)
	require.EqualValues(t, 1, stats.Misses)
	require.Equal(t, 1, stats.Size)
}

func TestCachedResultsExpire(t *testing.T) {
	quietLogs(t)
	s := New(Config{CacheTTL: time.Nanosecond})
	h := s.Handler()
	req := scenarioRequest()

	for range 2 {
		rec, env := do(t, h, http.MethodPost, "/api/v1/correct", req)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var resp CorrectResponse
		require.NoError(t, json.Unmarshal(env.Data, &resp))
		require.False(t, resp.Cached)

		time.Sleep(time.Millisecond)
	}

	stats := s.CacheStats()
	require.Zero(t, stats.Hits)
	require.EqualValues(t, 2, stats.Misses)
}

func TestCorrectDefaultsConfig(t *testing.T) {
	quietLogs(t)
	s := New(Config{})

	body := `{"reference": [1, 2, 3, 4], "shifted": [1, 2, 3, 4], "config": {"step": 0.01, "peaks_reference": [0, 3], "peaks_shifted": [0, 3]}}`
	rec, env := do(t, s.Handler(), http.MethodPost, "/api/v1/correct", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp CorrectResponse
	require.NoError(t, json.Unmarshal(env.Data, &resp))
	require.Equal(t, 1, resp.Config.Degree)
	require.Equal(t, 0.01, resp.Config.Step)
	require.Nil(t, resp.Diagnostics)
}

func TestCorrectErrors(t *testing.T) {
	quietLogs(t)
	h := New(Config{}).Handler()

	mismatch := scenarioRequest()
	mismatch.Config.PeaksShifted = []float64{51, 89, 101}

	badStep := scenarioRequest()
	badStep.Config.Step = -1e-4

	shortShifted := scenarioRequest()
	shortShifted.Shifted = shortShifted.Shifted[:100]

	negative := scenarioRequest()
	negative.Reference = []float64{1, -2, 3}

	badMethod := scenarioRequest()
	badMethod.Config.Method = "trapezoid"

	for _, tc := range []struct {
		name   string
		method string
		body   any
		status int
		code   string
	}{
		{name: "get", method: http.MethodGet, status: http.StatusMethodNotAllowed, code: CodeMethodNotAllowed},
		{name: "bad json", method: http.MethodPost, body: "{", status: http.StatusBadRequest, code: CodeBadRequest},
		{name: "unknown field", method: http.MethodPost, body: `{"ref": []}`, status: http.StatusBadRequest, code: CodeBadRequest},
		{name: "empty", method: http.MethodPost, body: `{}`, status: http.StatusUnprocessableEntity, code: CodeInvalidInput},
		{name: "peak mismatch", method: http.MethodPost, body: mismatch, status: http.StatusUnprocessableEntity, code: CodeInvalidInput},
		{name: "bad step", method: http.MethodPost, body: badStep, status: http.StatusUnprocessableEntity, code: CodeInvalidInput},
		{name: "length mismatch", method: http.MethodPost, body: shortShifted, status: http.StatusUnprocessableEntity, code: CodeInvalidInput},
		{name: "negative count", method: http.MethodPost, body: negative, status: http.StatusUnprocessableEntity, code: CodeInvalidInput},
		{name: "bad method", method: http.MethodPost, body: badMethod, status: http.StatusUnprocessableEntity, code: CodeInvalidInput},
	} {
		t.Run(tc.name, func(t *testing.T) {
			rec, env := do(t, h, tc.method, "/api/v1/correct", tc.body)
			require.Equal(t, tc.status, rec.Code, rec.Body.String())
			require.False(t, env.Success)
			require.NotNil(t, env.Error)
			require.Equal(t, tc.code, env.Error.Code)
		})
	}
}

func TestBodyLimit(t *testing.T) {
	quietLogs(t)
	h := New(Config{MaxBodyBytes: 64}).Handler()

	req := scenarioRequest()
	rec, env := do(t, h, http.MethodPost, "/api/v1/correct", req)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, CodeBadRequest, env.Error.Code)
}

func TestServeShutsDownOnCancel(t *testing.T) {
	quietLogs(t)
	s := New(Config{})

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, ln) }()

	url := "http://" + ln.Addr().String() + "/api/v1/health"

	var resp *http.Response
	require.Eventually(t, func() bool {
		resp, err = http.Get(url)
		return err == nil
	}, 5*time.Second, 20*time.Millisecond)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, resp.Body.Close())

	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("server did not stop")
	}
}
