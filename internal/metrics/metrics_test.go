package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMiddlewareLabelsByRoutePattern(t *testing.T) {
	m := New(prometheus.NewRegistry())
	r := chi.NewRouter()
	r.Use(m.Middleware)
	r.Get("/quizzes/{quizID}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	for _, id := range []string{"a", "b"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/quizzes/"+id, nil))
	}
	assert.Equal(t, 2.0, testutil.ToFloat64(m.RequestCounter.WithLabelValues("GET", "/quizzes/{quizID}", "404")))
}

func TestObservers(t *testing.T) {
	m := New(prometheus.NewRegistry())
	m.ObserveValidation("ORDERING", "error")
	m.ObserveGraded("MATCHING", true)
	m.ObserveSubmission(3, 4)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Validations.WithLabelValues("ORDERING", "error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.QuestionsGraded.WithLabelValues("MATCHING", "true")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Submissions))

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "quiz_submissions_total 1"))

	var nilMetrics *Metrics
	assert.NotPanics(t, func() { nilMetrics.ObserveSubmission(1, 1) })
}
