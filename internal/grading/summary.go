package grading

import (
	"github.com/mind-engage/mindengage-quiz/internal/answer"
	"github.com/mind-engage/mindengage-quiz/internal/question"
)

// QuestionResult is one graded entry of a submission.
type QuestionResult struct {
	QuestionID string        `json:"questionId"`
	Answer     answer.Answer `json:"answer"`
	Result
}

// Summary totals a whole submission.
type Summary struct {
	TotalScore float64          `json:"totalScore"`
	MaxScore   float64          `json:"maxScore"`
	Results    []QuestionResult `json:"results"`
}

// Score grades every question in quiz order. Questions without an answer are
// graded against a nil response so they still count toward MaxScore; answers
// for unknown questions are ignored.
func Score(g Grader, questions []question.Question, answers []answer.Answer) Summary {
	byID := answer.Index(answers)
	sum := Summary{Results: make([]QuestionResult, 0, len(questions))}
	for _, q := range questions {
		r := byID[q.ID]
		res := g.Grade(q, r)
		sum.TotalScore += res.Score
		sum.MaxScore += res.MaxScore
		sum.Results = append(sum.Results, QuestionResult{
			QuestionID: q.ID,
			Answer:     answer.Answer{QuestionID: q.ID, Response: r},
			Result:     res,
		})
	}
	return sum
}

// Correct counts the fully correct results.
func (s Summary) Correct() int {
	n := 0
	for _, r := range s.Results {
		if r.IsCorrect {
			n++
		}
	}
	return n
}
