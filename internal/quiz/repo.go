package quiz

import (
	"context"
	"errors"
)

var (
	ErrNotFound   = errors.New("not found")
	ErrIncomplete = errors.New("quiz has incomplete questions")
)

type Store interface {
	PutQuiz(ctx context.Context, q Quiz) error
	GetQuiz(ctx context.Context, id string) (Quiz, error)      // student-safe (no correctness data)
	GetQuizAdmin(ctx context.Context, id string) (Quiz, error) // full quiz, for scoring and teachers
	PutSubmission(ctx context.Context, s Submission) error
	GetSubmission(ctx context.Context, id string) (Submission, error)
	ListSubmissions(ctx context.Context, opts SubmissionListOpts) ([]Submission, error)
}

// Cache is an optional read-through layer in front of GetQuizAdmin.
type Cache interface {
	GetQuiz(ctx context.Context, id string) (Quiz, bool, error)
	SetQuiz(ctx context.Context, q Quiz) error
	Invalidate(ctx context.Context, id string) error
}
