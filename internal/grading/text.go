package grading

import (
	"strings"
	"unicode"

	"github.com/mind-engage/mindengage-quiz/internal/answer"
	"github.com/mind-engage/mindengage-quiz/internal/question"
)

type textInputStrategy struct{ maxEdit int }

func (s textInputStrategy) Grade(q question.Question, r answer.Response) Result {
	res := Result{MaxScore: 1}
	p, ok := q.TextInputData()
	if !ok {
		return res
	}
	resp, _ := r.(answer.TextInput)
	got := strings.TrimSpace(resp.Text)
	if got == "" {
		res.Details.MissedCount = 1
		return res
	}
	if !p.CaseSensitive {
		got = strings.ToLower(got)
	}
	var tolerance float64
	if p.NumericTolerance != nil {
		tolerance = *p.NumericTolerance
	}

	near := false
	for _, a := range p.AcceptableAnswers {
		want := strings.TrimSpace(a)
		if want == "" {
			continue
		}
		if !p.CaseSensitive {
			want = strings.ToLower(want)
		}
		if p.InputType == question.InputNumber {
			if match, ok := numericMatch(got, want, tolerance); ok {
				if match {
					return correctText(res)
				}
				continue
			}
		}
		if got == want {
			return correctText(res)
		}
		if s.maxEdit > 0 && levenshtein(normalize(want), normalize(got)) <= s.maxEdit {
			near = true
		}
	}
	res.Details.IncorrectCount = 1
	if near {
		res.Details.Feedback = append(res.Details.Feedback, "close to an accepted answer")
	}
	return res
}

func correctText(res Result) Result {
	res.IsCorrect = true
	res.Score = res.MaxScore
	res.Details.CorrectCount = 1
	return res
}

// normalize lowercases, drops punctuation and collapses whitespace. It only
// feeds near-miss feedback; scoring compares trimmed text.
func normalize(s string) string {
	s = strings.Map(func(r rune) rune {
		if unicode.IsPunct(r) {
			return -1
		}
		return unicode.ToLower(r)
	}, s)
	return strings.Join(strings.Fields(s), " ")
}

// levenshtein is the edit distance with unit costs.
func levenshtein(a, b string) int {
	ar, br := []rune(a), []rune(b)
	if len(ar) == 0 {
		return len(br)
	}
	prev := make([]int, len(br)+1)
	cur := make([]int, len(br)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(ar); i++ {
		cur[0] = i
		for j := 1; j <= len(br); j++ {
			cost := 1
			if ar[i-1] == br[j-1] {
				cost = 0
			}
			cur[j] = min(prev[j]+1, cur[j-1]+1, prev[j-1]+cost)
		}
		prev, cur = cur, prev
	}
	return prev[len(br)]
}
