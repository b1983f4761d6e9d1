package telemetry

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
)

func TestInit_Idempotent(t *testing.T) {
	Init()
	require.NotPanics(t, Init)
	require.NotNil(t, rendersTotal)
	require.NotNil(t, upstreamRequestsTotal)
}

func TestObservers_DoNotPanic(t *testing.T) {
	Init()
	require.NotPanics(t, func() {
		ObserveRender("slug", ModeCrawler, OutcomeRendered)
		ObserveRender("id", ModePassthrough, OutcomeRedirect)
		ObserveUpstream("get_article", "ok")
		ObserveHTTPRequest(http.MethodGet, "/article/{ref}", 200, 15*time.Millisecond)
	})
}

func TestMiddleware_RecordsRoutePattern(t *testing.T) {
	Init()

	r := chi.NewRouter()
	r.Use(Middleware)
	r.Get("/article/{ref}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	req := httptest.NewRequest(http.MethodGet, "/article/42-x", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusTeapot, rec.Code)
}

func TestHandler_ServesMetrics(t *testing.T) {
	Init()

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "http_request_duration_seconds")
}
