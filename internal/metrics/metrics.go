// Package metrics exposes Prometheus collectors for the HTTP surface and for
// quiz authoring and scoring.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	RequestCounter  *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	Validations     *prometheus.CounterVec
	Submissions     prometheus.Counter
	QuestionsGraded *prometheus.CounterVec
	ScoreRatio      prometheus.Histogram

	gatherer prometheus.Gatherer
}

// New creates the collectors and registers them on reg. Pass
// prometheus.NewRegistry() in tests to keep runs isolated.
func New(reg *prometheus.Registry) *Metrics {
	m := &Metrics{
		RequestCounter: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "Duration of HTTP requests",
				Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5},
			},
			[]string{"method", "route"},
		),
		Validations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "quiz_question_validations_total",
				Help: "Question validations by question type and resulting status",
			},
			[]string{"type", "status"},
		),
		Submissions: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "quiz_submissions_total",
			Help: "Scored quiz submissions",
		}),
		QuestionsGraded: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "quiz_questions_graded_total",
				Help: "Graded questions by type and correctness",
			},
			[]string{"type", "correct"},
		),
		ScoreRatio: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "quiz_submission_score_ratio",
			Help:    "Total score divided by max score per submission",
			Buckets: prometheus.LinearBuckets(0, 0.1, 11),
		}),
		gatherer: reg,
	}
	reg.MustRegister(
		m.RequestCounter,
		m.RequestDuration,
		m.Validations,
		m.Submissions,
		m.QuestionsGraded,
		m.ScoreRatio,
	)
	return m
}

// ObserveValidation counts one validation report. A nil receiver is a no-op.
func (m *Metrics) ObserveValidation(questionType, status string) {
	if m == nil {
		return
	}
	m.Validations.WithLabelValues(questionType, status).Inc()
}

func (m *Metrics) ObserveGraded(questionType string, correct bool) {
	if m == nil {
		return
	}
	m.QuestionsGraded.WithLabelValues(questionType, strconv.FormatBool(correct)).Inc()
}

func (m *Metrics) ObserveSubmission(total, maxScore float64) {
	if m == nil {
		return
	}
	m.Submissions.Inc()
	if maxScore > 0 {
		m.ScoreRatio.Observe(total / maxScore)
	}
}

// Middleware records request counts and latency labelled by chi route
// pattern, so path parameters do not explode cardinality.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rc := chi.RouteContext(r.Context()); rc != nil {
			if p := rc.RoutePattern(); p != "" {
				route = p
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		m.RequestCounter.WithLabelValues(r.Method, route, strconv.Itoa(status)).Inc()
		m.RequestDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
