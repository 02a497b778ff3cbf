package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestRecordLogin(t *testing.T) {
	c := NewCollector(prometheus.NewRegistry())

	c.RecordLogin("local", ResultSuccess)
	c.RecordLogin("local", ResultSuccess)
	c.RecordLogin("kakao", ResultRejected)

	require.Equal(t, 2.0, testutil.ToFloat64(c.logins.WithLabelValues("local", ResultSuccess)))
	require.Equal(t, 1.0, testutil.ToFloat64(c.logins.WithLabelValues("kakao", ResultRejected)))
}

func TestMiddlewareUsesRoutePattern(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	r := chi.NewRouter()
	r.Use(c.Middleware)
	r.Get("/folders/{folderId}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	for _, id := range []string{"1", "2", "3"} {
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/folders/"+id, nil))
		require.Equal(t, http.StatusNotFound, rr.Code)
	}

	require.Equal(t, 3.0, testutil.ToFloat64(c.httpRequests.WithLabelValues("GET", "/folders/{folderId}", "404")))
}

func TestHandlerExposesMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)
	c.ObserveOAuthExchange("google", 120*time.Millisecond)

	rr := httptest.NewRecorder()
	Handler(reg).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	require.True(t, strings.Contains(rr.Body.String(), "markeep_oauth_exchange_duration_seconds"))
}
