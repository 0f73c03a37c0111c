// Package validate scores how complete an authored question is and reports
// structural errors that must be fixed before it can be published.
package validate

import (
	"fmt"
	"math"
	"strings"

	"github.com/mind-engage/mindengage-quiz/internal/question"
)

type Status string

const (
	StatusComplete   Status = "complete"
	StatusPartial    Status = "partial"
	StatusIncomplete Status = "incomplete"
	StatusError      Status = "error"
)

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e FieldError) Error() string { return e.Field + ": " + e.Message }

type Report struct {
	Status               Status       `json:"status"`
	Errors               []FieldError `json:"errors"`
	MissingFields        []string     `json:"missingFields"`
	CompletionPercentage int          `json:"completionPercentage"`
}

// OK reports whether the question may be persisted.
func (r Report) OK() bool { return r.Status == StatusComplete }

// checker accumulates requirements and structural errors for one question.
type checker struct {
	total, met int
	errors     []FieldError
	missing    []string
}

func (c *checker) require(ok bool, field string) {
	c.total++
	if ok {
		c.met++
		return
	}
	c.missing = append(c.missing, field)
}

func (c *checker) fail(field, format string, args ...any) {
	c.errors = append(c.errors, FieldError{Field: field, Message: fmt.Sprintf(format, args...)})
}

func (c *checker) report() Report {
	r := Report{
		Errors:        c.errors,
		MissingFields: c.missing,
	}
	if r.Errors == nil {
		r.Errors = []FieldError{}
	}
	if r.MissingFields == nil {
		r.MissingFields = []string{}
	}
	if c.total > 0 {
		r.CompletionPercentage = int(math.Round(float64(c.met) * 100 / float64(c.total)))
	}
	// errors dominate: a fully filled question can still be broken
	switch {
	case len(r.Errors) > 0:
		r.Status = StatusError
	case r.CompletionPercentage == 100:
		r.Status = StatusComplete
	case r.CompletionPercentage > 0:
		r.Status = StatusPartial
	default:
		r.Status = StatusIncomplete
	}
	return r
}

func blank(s string) bool { return strings.TrimSpace(s) == "" }

// Question validates one authored question.
func Question(q question.Question) Report {
	c := &checker{}
	c.require(!blank(q.Text), "text")

	if !q.Type.Valid() {
		c.fail("questionType", "unknown question type %q", q.Type)
		return c.report()
	}
	if !q.PayloadMatches() {
		c.fail("questionType", "payload does not belong to a %s question", q.Type)
		return c.report()
	}

	switch q.Type {
	case question.SingleChoice:
		checkSingleChoice(c, q)
	case question.MultipleChoice:
		checkMultipleChoice(c, q)
	case question.TextInput:
		p, _ := q.TextInputData()
		checkTextInput(c, p)
	case question.Dropdown:
		p, _ := q.DropdownData()
		checkDropdown(c, p)
	case question.Ordering:
		p, _ := q.OrderingData()
		checkOrdering(c, p)
	case question.Matching:
		p, _ := q.MatchingData()
		checkMatching(c, p)
	}
	return c.report()
}

// Quiz validates every question and keys the reports by question id.
// Questions sharing an id are reported as errors on the later entry.
func Quiz(questions []question.Question) map[string]Report {
	out := make(map[string]Report, len(questions))
	for i, q := range questions {
		r := Question(q)
		if _, dup := out[q.ID]; dup {
			r.Errors = append(r.Errors, FieldError{Field: "id", Message: fmt.Sprintf("question %d reuses id %q", i, q.ID)})
			r.Status = StatusError
		}
		if blank(q.ID) {
			r.Errors = append(r.Errors, FieldError{Field: "id", Message: fmt.Sprintf("question %d has no id", i)})
			r.Status = StatusError
		}
		out[q.ID] = r
	}
	return out
}

// AllComplete reports whether every report is complete.
func AllComplete(reports map[string]Report) bool {
	for _, r := range reports {
		if !r.OK() {
			return false
		}
	}
	return true
}

// duplicateIDs returns ids that appear more than once, in first-seen order.
func duplicateIDs(ids []string) []string {
	seen := make(map[string]int, len(ids))
	var out []string
	for _, id := range ids {
		if id == "" {
			continue
		}
		seen[id]++
		if seen[id] == 2 {
			out = append(out, id)
		}
	}
	return out
}
