package quiz

import (
	"github.com/mind-engage/mindengage-quiz/internal/grading"
	"github.com/mind-engage/mindengage-quiz/internal/question"
)

type Quiz struct {
	ID        string              `json:"id"`
	Title     string              `json:"title"`
	Questions []question.Question `json:"questions"`

	CreatedAt int64 `json:"createdAt,omitempty"`
	UpdatedAt int64 `json:"updatedAt,omitempty"`
}

// Redacted returns a copy safe to hand to students.
func (q Quiz) Redacted() Quiz {
	out := q
	out.Questions = make([]question.Question, len(q.Questions))
	for i, qq := range q.Questions {
		out.Questions[i] = qq.Redacted()
	}
	return out
}

// Submission is a scored, immutable record of one student's answers.
type Submission struct {
	ID          string                   `json:"id"`
	QuizID      string                   `json:"quizId"`
	UserID      string                   `json:"userId"`
	Answers     []grading.QuestionResult `json:"answers"`
	TotalScore  float64                  `json:"totalScore"`
	MaxScore    float64                  `json:"maxScore"`
	SubmittedAt int64                    `json:"submittedAt"`
}

type SubmissionListOpts struct {
	QuizID string
	UserID string // optional: only this student's submissions
	Limit  int
	Offset int
}

func (o SubmissionListOpts) limit() int {
	if o.Limit <= 0 || o.Limit > 200 {
		return 50
	}
	return o.Limit
}
