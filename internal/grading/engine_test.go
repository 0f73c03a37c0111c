package grading

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mind-engage/mindengage-quiz/internal/answer"
	"github.com/mind-engage/mindengage-quiz/internal/question"
)

func TestSingleChoice(t *testing.T) {
	g := NewDefaultGrader()
	q := question.NewSingleChoice("q", "2+2?").Option("a", "4", true).Option("b", "5", false).Build()

	tests := []struct {
		name  string
		resp  answer.Response
		score float64
	}{
		{"correct", answer.SingleChoice{OptionID: "a"}, 1},
		{"wrong", answer.SingleChoice{OptionID: "b"}, 0},
		{"unknown option", answer.SingleChoice{OptionID: "zz"}, 0},
		{"no answer", nil, 0},
		{"wrong response type", answer.TextInput{Text: "a"}, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			res := g.Grade(q, tc.resp)
			assert.Equal(t, tc.score, res.Score)
			assert.Equal(t, 1.0, res.MaxScore)
			assert.Equal(t, tc.score == 1, res.IsCorrect)
		})
	}
}

func TestMultipleChoice_AllOrNothing(t *testing.T) {
	g := NewDefaultGrader()
	q := question.NewMultipleChoice("q", "Primes").
		Option("a", "2", true).Option("b", "3", true).Option("c", "4", false).Build()

	res := g.Grade(q, answer.MultipleChoice{OptionIDs: []string{"b", "a"}})
	assert.True(t, res.IsCorrect)
	assert.Equal(t, 1.0, res.Score)

	res = g.Grade(q, answer.MultipleChoice{OptionIDs: []string{"a"}})
	assert.False(t, res.IsCorrect)
	assert.Equal(t, 0.0, res.Score)
	assert.Equal(t, 1, res.Details.MissedCount)
}

func TestMultipleChoice_PartialCredit(t *testing.T) {
	g := NewDefaultGrader()
	q := question.NewMultipleChoice("q", "Pick").
		Option("A", "A", true).Option("B", "B", true).Option("C", "C", false).Option("D", "D", false).
		PartialCredit(1, -0.5, 0).Build()

	tests := []struct {
		name     string
		selected []string
		score    float64
		correct  bool
	}{
		{"one right one wrong", []string{"A", "C"}, 0.5, false},
		{"all right", []string{"A", "B"}, 2, true},
		{"floored at min score", []string{"C", "D"}, 0, false},
		{"two right one wrong", []string{"A", "B", "C"}, 1.5, false},
		{"nothing", nil, 0, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			res := g.Grade(q, answer.MultipleChoice{OptionIDs: tc.selected})
			assert.InDelta(t, tc.score, res.Score, 1e-9)
			assert.Equal(t, 2.0, res.MaxScore)
			assert.Equal(t, tc.correct, res.IsCorrect)
		})
	}
}

func TestMultipleChoice_PartialCreditDefaultsRules(t *testing.T) {
	q := question.NewMultipleChoice("q", "Pick").
		Option("A", "A", true).Option("B", "B", true).Option("C", "C", false).Build()
	p, _ := q.MultipleChoiceData()
	p.Settings.ScoringMethod = question.PartialCredit

	res := NewDefaultGrader().Grade(q, answer.MultipleChoice{OptionIDs: []string{"A", "C"}})
	assert.Equal(t, 2.0, res.MaxScore)
	assert.Equal(t, 1.0, res.Score)
}

func TestTextInput(t *testing.T) {
	g := NewDefaultGrader()
	paris := question.NewTextInput("q", "Capital?").Answer("Paris", "paris").Build()
	strict := question.NewTextInput("q", "Capital?").Answer("Paris").CaseSensitive(true).Build()
	pi := question.NewTextInput("q", "Pi?").Answer("3.14").Numeric(0.01).Build()
	exact := question.NewTextInput("q", "Ten?").Answer("10").InputType(question.InputNumber).Build()

	tests := []struct {
		name string
		q    question.Question
		text string
		want bool
	}{
		{"case insensitive", paris, "PARIS", true},
		{"trimmed", paris, "  Paris ", true},
		{"case sensitive mismatch", strict, "paris", false},
		{"case sensitive match", strict, "Paris", true},
		{"within tolerance", pi, "3.149", true},
		{"outside tolerance", pi, "3.2", false},
		{"numeric forms", exact, "10.0", true},
		{"not a number falls back to text", exact, "ten", false},
		{"trailing text is not a number", exact, "10 wrong trailing junk", false},
		{"tolerance ignores trailing text", pi, "3.14 approx", false},
		{"empty", paris, "", false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			res := g.Grade(tc.q, answer.TextInput{Text: tc.text})
			assert.Equal(t, tc.want, res.IsCorrect)
			assert.Equal(t, 1.0, res.MaxScore)
		})
	}
}

func TestTextInput_NearMissIsFeedbackOnly(t *testing.T) {
	q := question.NewTextInput("q", "Capital?").Answer("Paris").Build()

	res := NewDefaultGrader().Grade(q, answer.TextInput{Text: "Pariss"})
	assert.False(t, res.IsCorrect)
	assert.Equal(t, 0.0, res.Score)
	assert.Equal(t, []string{"close to an accepted answer"}, res.Details.Feedback)

	res = NewDefaultGrader(WithMaxEditDistance(0)).Grade(q, answer.TextInput{Text: "Pariss"})
	assert.Empty(t, res.Details.Feedback)
}

func dropdownQ(s question.DropdownScoring) question.Question {
	return question.NewDropdown("q", "Fill", "{a} {b} {c}").
		Field("a", "A", [][2]string{{"a1", "x"}, {"a2", "y"}}, "a1").
		Field("b", "B", [][2]string{{"b1", "x"}, {"b2", "y"}}, "b1").
		Field("c", "C", [][2]string{{"c1", "x"}, {"c2", "y"}}, "c1").
		Scoring(s).Build()
}

func TestDropdown(t *testing.T) {
	g := NewDefaultGrader()
	tests := []struct {
		name    string
		scoring question.DropdownScoring
		sel     map[string]string
		score   float64
		max     float64
		correct bool
	}{
		{"all correct", question.DropdownScoring{PointsPerDropdown: 2}, map[string]string{"a": "a1", "b": "b1", "c": "c1"}, 6, 6, true},
		{"partial", question.DropdownScoring{PointsPerDropdown: 2}, map[string]string{"a": "a1", "b": "b2"}, 2, 6, false},
		{"default points", question.DropdownScoring{}, map[string]string{"a": "a1"}, 1, 3, false},
		{"require all", question.DropdownScoring{PointsPerDropdown: 1, RequireAllCorrect: true}, map[string]string{"a": "a1", "b": "b1"}, 0, 3, false},
		{"penalty defaults to points", question.DropdownScoring{PointsPerDropdown: 1, PenalizeIncorrect: true}, map[string]string{"a": "a1", "b": "b1", "c": "c2"}, 1, 3, false},
		{"unanswered not penalised", question.DropdownScoring{PointsPerDropdown: 1, PenalizeIncorrect: true}, map[string]string{"a": "a1"}, 1, 3, false},
		{"explicit penalty", question.DropdownScoring{PointsPerDropdown: 1, PenalizeIncorrect: true, PenaltyPerIncorrect: 0.25}, map[string]string{"a": "a1", "b": "b2", "c": "c2"}, 0.5, 3, false},
		// penalties are summed over the question before a single floor at 0
		{"clamped once after summing", question.DropdownScoring{PointsPerDropdown: 1, PenalizeIncorrect: true}, map[string]string{"a": "a2", "b": "b2", "c": "c1"}, 0, 3, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			res := g.Grade(dropdownQ(tc.scoring), answer.Dropdown{Selections: tc.sel})
			assert.InDelta(t, tc.score, res.Score, 1e-9)
			assert.Equal(t, tc.max, res.MaxScore)
			assert.Equal(t, tc.correct, res.IsCorrect)
		})
	}
}

func TestDropdown_Details(t *testing.T) {
	res := NewDefaultGrader().Grade(dropdownQ(question.DropdownScoring{}), answer.Dropdown{Selections: map[string]string{"a": "a1", "c": "c2"}})
	assert.Equal(t, []int{1}, res.Details.CorrectPositions)
	assert.Equal(t, []int{2, 3}, res.Details.IncorrectPositions)
	assert.Equal(t, 1, res.Details.MissedCount)
	assert.Equal(t, 1, res.Details.IncorrectCount)
}

func orderingQ() question.Question {
	return question.NewOrdering("q", "Sort", "Smallest first").
		Item("three", "3", 3).Item("one", "1", 1).Item("two", "2", 2).Build()
}

func TestOrdering(t *testing.T) {
	g := NewDefaultGrader()

	res := g.Grade(orderingQ(), answer.Ordering{Order: []string{"one", "two", "three"}})
	assert.True(t, res.IsCorrect)
	assert.Equal(t, 1.0, res.Score)
	assert.Equal(t, []int{1, 2, 3}, res.Details.CorrectPositions)

	res = g.Grade(orderingQ(), answer.Ordering{Order: []string{"one", "three", "two"}})
	assert.False(t, res.IsCorrect)
	assert.Equal(t, 0.0, res.Score)
	assert.Equal(t, 1.0, res.MaxScore)
	assert.Equal(t, []int{1}, res.Details.CorrectPositions)
	assert.Equal(t, []int{2, 3}, res.Details.IncorrectPositions)

	res = g.Grade(orderingQ(), answer.Ordering{Order: []string{"one", "two"}})
	assert.False(t, res.IsCorrect)
	assert.Equal(t, 1, res.Details.MissedCount)

	res = g.Grade(orderingQ(), nil)
	assert.Equal(t, 0.0, res.Score)
	assert.Equal(t, 3, res.Details.MissedCount)
}

func TestOrdering_PartialCredit(t *testing.T) {
	g := NewDefaultGrader(WithOrderingPartialCredit(true))
	res := g.Grade(orderingQ(), answer.Ordering{Order: []string{"one", "three", "two"}})
	assert.InDelta(t, 1.0/3, res.Score, 1e-9)
	assert.False(t, res.IsCorrect)
}

func matchingQ(s question.MatchingScoring) question.Question {
	return question.NewMatching("q", "Capitals", "Connect").
		Left("fr", "France").Left("de", "Germany").Left("it", "Italy").
		Right("paris", "Paris").Right("berlin", "Berlin").Right("rome", "Rome").
		Match("fr", "paris").Match("de", "berlin").Match("it", "rome").
		Scoring(s).Build()
}

func conns(pairs ...string) answer.Matching {
	var out []question.Match
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, question.Match{LeftID: pairs[i], RightID: pairs[i+1]})
	}
	return answer.Matching{Connections: out}
}

func TestMatching(t *testing.T) {
	g := NewDefaultGrader()
	tests := []struct {
		name    string
		scoring question.MatchingScoring
		resp    answer.Matching
		score   float64
		correct bool
	}{
		{"all correct", question.MatchingScoring{PointsPerMatch: 1, PartialCredit: true}, conns("fr", "paris", "de", "berlin", "it", "rome"), 3, true},
		{"require all with one missed", question.MatchingScoring{PointsPerMatch: 1, PartialCredit: true, RequireAllMatches: true}, conns("fr", "paris", "de", "berlin"), 2, false},
		{"partial without require all", question.MatchingScoring{PointsPerMatch: 1, PartialCredit: true}, conns("fr", "paris", "de", "berlin"), 2, true},
		{"incorrect connection", question.MatchingScoring{PointsPerMatch: 1, PartialCredit: true}, conns("fr", "paris", "de", "rome"), 1, false},
		{"penalised", question.MatchingScoring{PointsPerMatch: 1, PartialCredit: true, PenalizeIncorrect: true, PenaltyPerIncorrect: 0.5}, conns("fr", "paris", "de", "rome"), 0.5, false},
		{"penalty clamped once", question.MatchingScoring{PointsPerMatch: 1, PartialCredit: true, PenalizeIncorrect: true, PenaltyPerIncorrect: 1}, conns("fr", "berlin", "de", "rome", "it", "paris"), 0, false},
		{"no partial credit", question.MatchingScoring{PointsPerMatch: 1}, conns("fr", "paris", "de", "rome"), 0, false},
		{"no partial credit one of three", question.MatchingScoring{PointsPerMatch: 1}, conns("fr", "paris"), 0, false},
		{"no partial credit all correct", question.MatchingScoring{PointsPerMatch: 2, RequireAllMatches: true}, conns("fr", "paris", "de", "berlin", "it", "rome"), 6, true},
		{"nothing submitted", question.MatchingScoring{PointsPerMatch: 1, PartialCredit: true}, answer.Matching{}, 0, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			res := g.Grade(matchingQ(tc.scoring), tc.resp)
			assert.InDelta(t, tc.score, res.Score, 1e-9)
			assert.Equal(t, tc.correct, res.IsCorrect)
		})
	}
}

func TestMatching_Details(t *testing.T) {
	res := NewDefaultGrader().Grade(matchingQ(question.MatchingScoring{RequireAllMatches: true, PartialCredit: true}), conns("fr", "paris", "de", "rome"))
	assert.Equal(t, 3.0, res.MaxScore)
	assert.Equal(t, 1, res.Details.CorrectCount)
	assert.Equal(t, 1, res.Details.IncorrectCount)
	assert.Equal(t, 2, res.Details.MissedCount)
	assert.NotEmpty(t, res.Details.Feedback)
}

func TestGrade_IsPure(t *testing.T) {
	g := NewDefaultGrader()
	q := matchingQ(question.MatchingScoring{PointsPerMatch: 1, PartialCredit: true})
	before := q.Redacted()
	resp := conns("fr", "paris")

	first := g.Grade(q, resp)
	second := g.Grade(q, resp)
	assert.Equal(t, first, second)
	assert.Equal(t, before, q.Redacted())
}

type fixed struct{ score float64 }

func (f fixed) Grade(question.Question, answer.Response) Result {
	return Result{Score: f.score, MaxScore: 10}
}

func TestWithStrategy(t *testing.T) {
	g := NewDefaultGrader(WithStrategy(question.TextInput, fixed{score: 7}))
	res := g.Grade(question.NewTextInput("q", "x").Answer("y").Build(), nil)
	assert.Equal(t, 7.0, res.Score)

	res = g.Grade(question.Question{ID: "q", Type: "ESSAY"}, nil)
	assert.Equal(t, 0.0, res.MaxScore)
	assert.Equal(t, []string{"no strategy available"}, res.Details.Feedback)
}

func TestScore(t *testing.T) {
	qs := []question.Question{
		question.NewSingleChoice("sc", "Pick").Option("a", "A", true).Option("b", "B", false).Build(),
		question.NewTextInput("ti", "Capital?").Answer("Paris").Build(),
		orderingQ(),
	}
	answers := []answer.Answer{
		{QuestionID: "sc", Response: answer.SingleChoice{OptionID: "a"}},
		{QuestionID: "ti", Response: answer.TextInput{Text: "Rome"}},
		{QuestionID: "ghost", Response: answer.TextInput{Text: "x"}},
	}
	sum := Score(NewDefaultGrader(), qs, answers)
	require.Len(t, sum.Results, 3)
	assert.Equal(t, 1.0, sum.TotalScore)
	assert.Equal(t, 3.0, sum.MaxScore)
	assert.Equal(t, 1, sum.Correct())
	assert.Equal(t, "q", sum.Results[2].QuestionID)
	assert.Nil(t, sum.Results[2].Answer.Response)
}
