package quiz

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mind-engage/mindengage-quiz/internal/answer"
	"github.com/mind-engage/mindengage-quiz/internal/grading"
	"github.com/mind-engage/mindengage-quiz/internal/metrics"
	"github.com/mind-engage/mindengage-quiz/internal/question"
	"github.com/mind-engage/mindengage-quiz/internal/validate"
)

var ErrNoQuestions = errors.New("quiz has no questions")

// IncompleteError carries the per-question reports of a quiz that may not be
// persisted yet. errors.Is(err, ErrIncomplete) matches it.
type IncompleteError struct {
	Reports map[string]validate.Report
}

func (e *IncompleteError) Error() string {
	var bad []string
	for id, r := range e.Reports {
		if !r.OK() {
			bad = append(bad, fmt.Sprintf("%s (%s)", id, r.Status))
		}
	}
	sort.Strings(bad)
	return fmt.Sprintf("%v: %s", ErrIncomplete, strings.Join(bad, ", "))
}

func (e *IncompleteError) Unwrap() error { return ErrIncomplete }

type Service struct {
	store   Store
	grader  grading.Grader
	cache   Cache
	log     *zap.Logger
	metrics *metrics.Metrics
	now     func() time.Time
}

type ServiceOption func(*Service)

func WithCache(c Cache) ServiceOption              { return func(s *Service) { s.cache = c } }
func WithLogger(l *zap.Logger) ServiceOption       { return func(s *Service) { s.log = l } }
func WithMetrics(m *metrics.Metrics) ServiceOption { return func(s *Service) { s.metrics = m } }
func WithClock(now func() time.Time) ServiceOption { return func(s *Service) { s.now = now } }

func NewService(store Store, grader grading.Grader, opts ...ServiceOption) *Service {
	s := &Service{
		store:  store,
		grader: grader,
		log:    zap.NewNop(),
		now:    time.Now,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// ValidateQuestion runs the authoring validator and records the outcome.
func (s *Service) ValidateQuestion(q question.Question) validate.Report {
	r := validate.Question(q)
	s.metrics.ObserveValidation(string(q.Type), string(r.Status))
	return r
}

// SaveQuiz persists q once every question validates as complete. A missing
// id is assigned.
func (s *Service) SaveQuiz(ctx context.Context, q Quiz) (Quiz, error) {
	if len(q.Questions) == 0 {
		return Quiz{}, ErrNoQuestions
	}
	reports := validate.Quiz(q.Questions)
	for _, qq := range q.Questions {
		s.metrics.ObserveValidation(string(qq.Type), string(reports[qq.ID].Status))
	}
	if !validate.AllComplete(reports) {
		return Quiz{}, &IncompleteError{Reports: reports}
	}

	if q.ID == "" {
		q.ID = uuid.NewString()
	}
	q.UpdatedAt = s.now().Unix()
	if err := s.store.PutQuiz(ctx, q); err != nil {
		return Quiz{}, fmt.Errorf("save quiz %s: %w", q.ID, err)
	}
	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, q.ID); err != nil {
			s.log.Warn("cache invalidate failed", zap.String("quiz_id", q.ID), zap.Error(err))
		}
	}
	s.log.Info("quiz saved", zap.String("quiz_id", q.ID), zap.Int("questions", len(q.Questions)))
	return s.store.GetQuizAdmin(ctx, q.ID)
}

// GetQuiz returns the student-safe view.
func (s *Service) GetQuiz(ctx context.Context, id string) (Quiz, error) {
	return s.store.GetQuiz(ctx, id)
}

// GetQuizAdmin returns the full quiz, preferring the cache.
func (s *Service) GetQuizAdmin(ctx context.Context, id string) (Quiz, error) {
	if s.cache != nil {
		q, ok, err := s.cache.GetQuiz(ctx, id)
		if err != nil {
			s.log.Warn("cache read failed", zap.String("quiz_id", id), zap.Error(err))
		} else if ok {
			return q, nil
		}
	}
	q, err := s.store.GetQuizAdmin(ctx, id)
	if err != nil {
		return Quiz{}, err
	}
	if s.cache != nil {
		if err := s.cache.SetQuiz(ctx, q); err != nil {
			s.log.Warn("cache write failed", zap.String("quiz_id", id), zap.Error(err))
		}
	}
	return q, nil
}

// Submit scores a frozen set of answers and stores the result.
func (s *Service) Submit(ctx context.Context, quizID, userID string, answers []answer.Answer) (Submission, error) {
	q, err := s.GetQuizAdmin(ctx, quizID)
	if err != nil {
		return Submission{}, err
	}
	sum := grading.Score(s.grader, q.Questions, answers)

	sub := Submission{
		ID:          uuid.NewString(),
		QuizID:      q.ID,
		UserID:      userID,
		Answers:     sum.Results,
		TotalScore:  sum.TotalScore,
		MaxScore:    sum.MaxScore,
		SubmittedAt: s.now().Unix(),
	}
	if err := s.store.PutSubmission(ctx, sub); err != nil {
		return Submission{}, fmt.Errorf("store submission: %w", err)
	}

	for i, r := range sum.Results {
		s.metrics.ObserveGraded(string(q.Questions[i].Type), r.IsCorrect)
	}
	s.metrics.ObserveSubmission(sum.TotalScore, sum.MaxScore)
	s.log.Info("submission scored",
		zap.String("submission_id", sub.ID),
		zap.String("quiz_id", q.ID),
		zap.String("user_id", userID),
		zap.Float64("score", sub.TotalScore),
		zap.Float64("max_score", sub.MaxScore),
		zap.Int("correct", sum.Correct()),
	)
	return sub, nil
}

func (s *Service) GetSubmission(ctx context.Context, id string) (Submission, error) {
	return s.store.GetSubmission(ctx, id)
}

func (s *Service) ListSubmissions(ctx context.Context, opts SubmissionListOpts) ([]Submission, error) {
	return s.store.ListSubmissions(ctx, opts)
}
