package api

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shaiso/glimpse/internal/domain"
	"github.com/shaiso/glimpse/internal/mq"
	"github.com/shaiso/glimpse/internal/repo"
	"github.com/shaiso/glimpse/internal/repo/memrepo"
)

// --- Helpers ---

type fakePublisher struct {
	mu     sync.Mutex
	events []mq.CatalogEvent
	err    error
}

func (p *fakePublisher) PublishCatalogEvent(_ context.Context, event mq.CatalogEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, event)
	return nil
}

func (p *fakePublisher) types() []mq.MessageType {
	p.mu.Lock()
	defer p.mu.Unlock()

	types := make([]mq.MessageType, len(p.events))
	for i, e := range p.events {
		types[i] = e.Type()
	}
	return types
}

type testServer struct {
	handler   http.Handler
	repos     repo.Repos
	publisher *fakePublisher
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	return newTestServerWith(t, memrepo.New().Repos())
}

func newTestServerWith(t *testing.T, repos repo.Repos) *testServer {
	t.Helper()

	pub := &fakePublisher{}
	h := NewHandler(Config{
		Repos:     repos,
		Publisher: pub,
		Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	return &testServer{handler: h.Routes(), repos: repos, publisher: pub}
}

type envelope struct {
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Total   int             `json:"total"`
	Error   *ErrorDetail    `json:"error"`
}

func (s *testServer) do(t *testing.T, method, path string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)

	var env envelope
	if rec.Body.Len() > 0 && rec.Header().Get("Content-Type") == "application/json" {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	}
	return rec, env
}

func decodeData[T any](t *testing.T, env envelope) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(env.Data, &v), string(env.Data))
	return v
}

func (s *testServer) createMovie(t *testing.T, title string) MovieResponse {
	t.Helper()

	rec, env := s.do(t, http.MethodPost, "/movies", CreateMovieRequest{Title: title, VoteAverage: 7.5, OriginalLanguage: "en"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decodeData[MovieResponse](t, env)
}

func (s *testServer) createCategory(t *testing.T, name, typ string) CategoryResponse {
	t.Helper()

	rec, env := s.do(t, http.MethodPost, "/categories", CreateCategoryRequest{Name: name, Type: typ})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decodeData[CategoryResponse](t, env)
}

func (s *testServer) createGenre(t *testing.T, name string) GenreResponse {
	t.Helper()

	rec, env := s.do(t, http.MethodPost, "/genres", CreateGenreRequest{Name: name})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decodeData[GenreResponse](t, env)
}

// --- Root / Health ---

func TestRoot(t *testing.T) {
	s := newTestServer(t)

	rec, env := s.do(t, http.MethodGet, "/", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Hello World!", env.Message)
}

type failingPinger struct{}

func (failingPinger) Ping(context.Context) error { return errors.New("connection refused") }

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	rec, _ := s.do(t, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	repos := memrepo.New().Repos()
	repos.Pinger = failingPinger{}
	s = newTestServerWith(t, repos)

	rec, _ = s.do(t, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "connection refused")
}

func TestMetricsEndpoint(t *testing.T) {
	s := newTestServer(t)
	s.do(t, http.MethodGet, "/movies", nil)

	rec, _ := s.do(t, http.MethodGet, "/metrics", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `glimpse_http_requests_total{method="GET",route="GET /movies",status="200"}`)
}

// --- Errors ---

type failingMovies struct {
	repo.MovieRepo
}

func (failingMovies) List(context.Context) ([]domain.Movie, error) {
	return nil, errors.New("store is down")
}

func TestStoreFailure_Returns500(t *testing.T) {
	repos := memrepo.New().Repos()
	repos.Movies = failingMovies{repos.Movies}
	s := newTestServerWith(t, repos)

	rec, env := s.do(t, http.MethodGet, "/movies", nil)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, ErrCodeInternalError, env.Error.Code)
	assert.NotContains(t, env.Error.Message, "store is down")
}

func TestInvalidID_Returns400(t *testing.T) {
	s := newTestServer(t)

	paths := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/movies/not-an-id"},
		{http.MethodDelete, "/movies/123"},
		{http.MethodGet, "/categories/xyz"},
		{http.MethodPost, "/genres/xyz/restore"},
		{http.MethodGet, "/genres/xyz/movies"},
	}

	for _, p := range paths {
		t.Run(p.method+" "+p.path, func(t *testing.T) {
			rec, env := s.do(t, p.method, p.path, nil)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			require.NotNil(t, env.Error)
			assert.Equal(t, ErrCodeBadRequest, env.Error.Code)
		})
	}
}

func TestMissingRecord_Returns404(t *testing.T) {
	s := newTestServer(t)
	missing := domain.NewID().String()

	paths := []struct {
		method string
		path   string
		body   any
	}{
		{http.MethodGet, "/movies/" + missing, nil},
		{http.MethodPatch, "/movies/" + missing, `{"title":"x"}`},
		{http.MethodDelete, "/movies/" + missing, nil},
		{http.MethodPost, "/movies/" + missing + "/restore", nil},
		{http.MethodGet, "/categories/" + missing, nil},
		{http.MethodDelete, "/genres/" + missing, nil},
		{http.MethodPost, "/categories/" + missing + "/movies", `{"movieIds":[]}`},
		{http.MethodPost, "/genres/" + missing + "/movies", `{"movieIds":[]}`},
	}

	for _, p := range paths {
		t.Run(p.method+" "+p.path, func(t *testing.T) {
			rec, env := s.do(t, p.method, p.path, p.body)
			assert.Equal(t, http.StatusNotFound, rec.Code)
			require.NotNil(t, env.Error)
			assert.Equal(t, ErrCodeNotFound, env.Error.Code)
		})
	}
}

func TestCreate_RequiredFields(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		path    string
		body    any
		wantMsg string
	}{
		{"/movies", `{"overview":"no title"}`, "title is required"},
		{"/categories", `{"type":"list"}`, "name is required"},
		{"/genres", `{}`, "name is required"},
		{"/movies", ``, "request body is empty"},
		{"/movies", `{"title":`, "invalid JSON body"},
	}

	for _, tt := range tests {
		t.Run(tt.path+" "+tt.wantMsg, func(t *testing.T) {
			rec, env := s.do(t, http.MethodPost, tt.path, tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			require.NotNil(t, env.Error)
			assert.Equal(t, tt.wantMsg, env.Error.Message)
		})
	}

	assert.Empty(t, s.publisher.types(), "no events on failed requests")
}

// --- Middleware ---

func TestMiddleware_Headers(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/movies", nil)
	req.Header.Set(HeaderRequestID, "req-42")
	req.Header.Set("Origin", "http://localhost:5173")
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)

	assert.Equal(t, "req-42", rec.Header().Get(HeaderRequestID))
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestMiddleware_GeneratesRequestID(t *testing.T) {
	s := newTestServer(t)

	rec, _ := s.do(t, http.MethodGet, "/", nil)

	assert.Len(t, rec.Header().Get(HeaderRequestID), 36)
}

func TestMiddleware_CORSPreflight(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/movies", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPatch)
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)

	assert.Less(t, rec.Code, 300)
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), http.MethodPatch)
}

func TestRecovery(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := Recovery(logger)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), string(ErrCodeInternalError))
}

func TestResponseWriter_KeepsFirstStatus(t *testing.T) {
	rec := httptest.NewRecorder()
	rw := wrap(rec)

	rw.WriteHeader(http.StatusCreated)
	rw.WriteHeader(http.StatusInternalServerError)

	assert.Equal(t, http.StatusCreated, rw.status)
	assert.Same(t, rw, wrap(rw))
}
