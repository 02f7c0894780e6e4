package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMiddleware_UsesRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware)
	r.Get("/api/threads/{board}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	before := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "/api/threads/{board}", "418"))

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest("GET", "/api/threads/somewhere", nil))
	require.Equal(t, http.StatusTeapot, rr.Code)

	after := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "/api/threads/{board}", "418"))
	assert.Equal(t, before+1, after)
}

func TestRecordOutcome(t *testing.T) {
	before := testutil.ToFloat64(outcomes.WithLabelValues("delete_thread", "success"))
	RecordOutcome("delete_thread", "success")
	assert.Equal(t, before+1, testutil.ToFloat64(outcomes.WithLabelValues("delete_thread", "success")))
}

func TestHandler(t *testing.T) {
	RecordOutcome("report_reply", "reported")

	rr := httptest.NewRecorder()
	Handler().ServeHTTP(rr, httptest.NewRequest("GET", "/metrics", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, strings.Contains(rr.Body.String(), "msgboard_board_outcomes_total"))
}
