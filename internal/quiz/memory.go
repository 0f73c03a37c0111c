package quiz

import (
	"context"
	"sort"
	"sync"

	"github.com/mind-engage/mindengage-quiz/internal/question"
)

type memoryStore struct {
	mu          sync.RWMutex
	quizzes     map[string]Quiz
	submissions map[string]Submission
}

func NewInMemoryStore() Store {
	return &memoryStore{
		quizzes:     map[string]Quiz{},
		submissions: map[string]Submission{},
	}
}

func cloneQuiz(q Quiz) Quiz {
	out := q
	out.Questions = make([]question.Question, len(q.Questions))
	for i, qq := range q.Questions {
		out.Questions[i] = qq.Clone()
	}
	return out
}

func (m *memoryStore) PutQuiz(_ context.Context, q Quiz) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if q.CreatedAt == 0 {
		if prev, ok := m.quizzes[q.ID]; ok {
			q.CreatedAt = prev.CreatedAt
		} else {
			q.CreatedAt = q.UpdatedAt
		}
	}
	m.quizzes[q.ID] = cloneQuiz(q)
	return nil
}

func (m *memoryStore) GetQuiz(ctx context.Context, id string) (Quiz, error) {
	q, err := m.GetQuizAdmin(ctx, id)
	if err != nil {
		return Quiz{}, err
	}
	return q.Redacted(), nil
}

func (m *memoryStore) GetQuizAdmin(_ context.Context, id string) (Quiz, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	q, ok := m.quizzes[id]
	if !ok {
		return Quiz{}, ErrNotFound
	}
	return cloneQuiz(q), nil
}

func (m *memoryStore) PutSubmission(_ context.Context, s Submission) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.quizzes[s.QuizID]; !ok {
		return ErrNotFound
	}
	m.submissions[s.ID] = s
	return nil
}

func (m *memoryStore) GetSubmission(_ context.Context, id string) (Submission, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.submissions[id]
	if !ok {
		return Submission{}, ErrNotFound
	}
	return s, nil
}

func (m *memoryStore) ListSubmissions(_ context.Context, opts SubmissionListOpts) ([]Submission, error) {
	m.mu.RLock()
	out := []Submission{}
	for _, s := range m.submissions {
		if opts.QuizID != "" && s.QuizID != opts.QuizID {
			continue
		}
		if opts.UserID != "" && s.UserID != opts.UserID {
			continue
		}
		out = append(out, s)
	}
	m.mu.RUnlock()

	// newest first, id breaks ties
	sort.Slice(out, func(i, j int) bool {
		if out[i].SubmittedAt != out[j].SubmittedAt {
			return out[i].SubmittedAt > out[j].SubmittedAt
		}
		return out[i].ID < out[j].ID
	})
	if off := max(opts.Offset, 0); off < len(out) {
		out = out[off:]
	} else {
		out = out[:0]
	}
	if n := opts.limit(); len(out) > n {
		out = out[:n]
	}
	return out, nil
}
