package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mind-engage/mindengage-quiz/internal/question"
)

func fieldsOf(errs []FieldError) []string {
	out := make([]string, 0, len(errs))
	for _, e := range errs {
		out = append(out, e.Field)
	}
	return out
}

func TestQuestion_SingleChoiceNeedsExactlyOneCorrect(t *testing.T) {
	tests := []struct {
		name    string
		correct []bool
		want    Status
	}{
		{"one correct", []bool{true, false, false}, StatusComplete},
		{"none correct", []bool{false, false}, StatusError},
		{"two correct", []bool{true, true, false}, StatusError},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b := question.NewSingleChoice("q", "Pick one")
			for i, c := range tc.correct {
				b.Option(string(rune('a'+i)), "opt", c)
			}
			r := Question(b.Build())
			assert.Equal(t, tc.want, r.Status)
		})
	}
}

func TestQuestion_EmptyQuestionIsIncomplete(t *testing.T) {
	r := Question(question.Question{ID: "q", Type: question.TextInput})
	assert.Equal(t, StatusIncomplete, r.Status)
	assert.Equal(t, 0, r.CompletionPercentage)
	assert.Equal(t, []string{"text", "textInputData", "textInputData.acceptableAnswers"}, r.MissingFields)
	assert.Empty(t, r.Errors)
}

func TestQuestion_PartialPercentageIsRounded(t *testing.T) {
	// 1 of 3 requirements met
	r := Question(question.Question{ID: "q", Type: question.TextInput, Text: "Capital?"})
	assert.Equal(t, StatusPartial, r.Status)
	assert.Equal(t, 33, r.CompletionPercentage)

	q := question.NewTextInput("q", "Capital?").Answer("Paris").Build()
	r = Question(q)
	assert.Equal(t, StatusComplete, r.Status)
	assert.Equal(t, 100, r.CompletionPercentage)
	assert.True(t, r.OK())
}

func TestQuestion_TypeErrors(t *testing.T) {
	r := Question(question.Question{ID: "q", Text: "x", Type: "ESSAY"})
	assert.Equal(t, StatusError, r.Status)

	q := question.NewTextInput("q", "x").Answer("y").Build()
	q.Type = question.Ordering
	r = Question(q)
	assert.Equal(t, StatusError, r.Status)
	assert.Contains(t, fieldsOf(r.Errors), "questionType")
}

func TestQuestion_TextInput(t *testing.T) {
	q := question.NewTextInput("q", "How many?").Answer("4", "four").InputType(question.InputNumber).Build()
	r := Question(q)
	assert.Equal(t, StatusError, r.Status)
	assert.Equal(t, []string{"textInputData.acceptableAnswers[1]"}, fieldsOf(r.Errors))

	q = question.NewTextInput("q", "How many?").Answer("4").Numeric(-1).Build()
	r = Question(q)
	assert.Contains(t, fieldsOf(r.Errors), "textInputData.numericTolerance")

	q = question.NewTextInput("q", "How many?").Answer("  ").Build()
	r = Question(q)
	assert.Equal(t, StatusPartial, r.Status)
	assert.Contains(t, r.MissingFields, "textInputData.acceptableAnswers")
}

func TestQuestion_MultipleChoiceSelections(t *testing.T) {
	two, five, zero := 2, 5, 0
	tests := []struct {
		name    string
		minSel  int
		maxSel  *int
		wantErr bool
	}{
		{"unbounded", 0, nil, false},
		{"within bounds", 1, &two, false},
		{"max above option count", 1, &five, true},
		{"min above max", 3, &two, true},
		{"negative min", -1, nil, true},
		{"zero max", 0, &zero, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			q := question.NewMultipleChoice("q", "Pick").
				Option("a", "A", true).Option("b", "B", true).Option("c", "C", false).
				Selections(tc.minSel, tc.maxSel).Build()
			r := Question(q)
			if tc.wantErr {
				assert.Equal(t, StatusError, r.Status)
			} else {
				assert.Equal(t, StatusComplete, r.Status, r.Errors)
			}
		})
	}
}

func TestQuestion_MultipleChoiceNeedsCorrectAndTwoOptions(t *testing.T) {
	q := question.NewMultipleChoice("q", "Pick").Option("a", "A", false).Build()
	r := Question(q)
	assert.Equal(t, StatusPartial, r.Status)
	assert.Contains(t, r.MissingFields, "options")
	assert.Contains(t, r.MissingFields, "options.isCorrect")
}

func TestQuestion_DuplicateOptionIDs(t *testing.T) {
	q := question.NewSingleChoice("q", "Pick").Option("a", "A", true).Option("a", "B", false).Build()
	r := Question(q)
	assert.Equal(t, StatusError, r.Status)
}

func dropdownQuestion(template string) question.Question {
	return question.NewDropdown("q", "Fill the blanks", template).
		Field("a", "Animal", [][2]string{{"fox", "fox"}, {"cow", "cow"}}, "fox").
		Field("b", "Thing", [][2]string{{"dog", "dog"}, {"moon", "moon"}}, "dog").
		Build()
}

func TestQuestion_Dropdown(t *testing.T) {
	r := Question(dropdownQuestion("The {a} jumped over the {b}"))
	assert.Equal(t, StatusComplete, r.Status, r.Errors)

	r = Question(dropdownQuestion("The {a} jumped over the {b} and {c}"))
	assert.Equal(t, StatusError, r.Status)
	require.Len(t, r.Errors, 1)
	assert.Equal(t, "dropdownData.template", r.Errors[0].Field)
	assert.Contains(t, r.Errors[0].Message, "{c}")
}

func TestQuestion_DropdownFieldRequirements(t *testing.T) {
	q := question.NewDropdown("q", "Fill", "Pick {x}").
		Field("x", "", [][2]string{{"only", "only"}}).
		Build()
	r := Question(q)
	assert.Equal(t, StatusPartial, r.Status)
	assert.ElementsMatch(t, []string{
		"dropdownData.dropdowns[0].label",
		"dropdownData.dropdowns[0].options",
		"dropdownData.dropdowns[0].options.isCorrect",
	}, r.MissingFields)

	q = question.NewDropdown("q", "Fill", "{x} {x}").
		Field("x", "X", [][2]string{{"1", "one"}, {"2", "two"}}, "1").
		Field("x", "X again", [][2]string{{"1", "one"}, {"2", "two"}}, "2").
		Build()
	r = Question(q)
	assert.Equal(t, StatusError, r.Status)
	assert.Contains(t, fieldsOf(r.Errors), "dropdownData.dropdowns")
}

func TestQuestion_OrderingPositions(t *testing.T) {
	tests := []struct {
		name      string
		positions []int
		want      Status
	}{
		{"exact sequence", []int{2, 1, 3}, StatusComplete},
		{"gap", []int{1, 2, 4}, StatusError},
		{"duplicate", []int{1, 2, 2}, StatusError},
		{"starts at zero", []int{0, 1, 2}, StatusPartial},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b := question.NewOrdering("q", "Sort", "Smallest first")
			for i, p := range tc.positions {
				b.Item(string(rune('a'+i)), "item", p)
			}
			r := Question(b.Build())
			assert.Equal(t, tc.want, r.Status)
			if tc.want == StatusError {
				// every item is filled in; the sequence alone is wrong
				assert.Equal(t, 100, r.CompletionPercentage)
			}
		})
	}
}

func TestQuestion_OrderingItemCount(t *testing.T) {
	b := question.NewOrdering("q", "Sort", "Any")
	for i := 0; i < 11; i++ {
		b.Item(string(rune('a'+i)), "item", i+1)
	}
	r := Question(b.Build())
	assert.Equal(t, StatusError, r.Status)
	assert.Contains(t, fieldsOf(r.Errors), "orderingData.items")

	r = Question(question.NewOrdering("q", "Sort", "Any").Item("a", "only", 1).Build())
	assert.Equal(t, StatusPartial, r.Status)
	assert.Contains(t, r.MissingFields, "orderingData.items")
}

func TestQuestion_OrderingContent(t *testing.T) {
	q := question.NewOrdering("q", "Sort", "Any").
		ItemContent("a", question.Content{Type: question.ContentImage, ImageURL: "https://x/a.png"}, 1).
		ItemContent("b", question.Content{Type: question.ContentMixed, ImageURL: "https://x/b.png"}, 2).
		Build()
	r := Question(q)
	assert.Equal(t, StatusPartial, r.Status)
	assert.Equal(t, []string{"orderingData.items[0].content"}, r.MissingFields)

	q = question.NewOrdering("q", "Sort", "Any").
		ItemContent("a", question.Content{Type: "video", Text: "x"}, 1).
		Item("b", "b", 2).
		Build()
	r = Question(q)
	assert.Equal(t, StatusError, r.Status)
	assert.Contains(t, fieldsOf(r.Errors), "orderingData.items[0].content.type")
}

func matchingBuilder() *question.MatchingBuilder {
	return question.NewMatching("q", "Capitals", "Connect country and capital").
		Left("fr", "France").Left("de", "Germany").
		Right("paris", "Paris").Right("berlin", "Berlin")
}

func TestQuestion_Matching(t *testing.T) {
	r := Question(matchingBuilder().Match("fr", "paris").Match("de", "berlin").Build())
	assert.Equal(t, StatusComplete, r.Status, r.Errors)

	r = Question(matchingBuilder().Build())
	assert.Equal(t, StatusPartial, r.Status)
	assert.Equal(t, []string{"matchingData.correctMatches"}, r.MissingFields)

	r = Question(matchingBuilder().Match("fr", "rome").Build())
	assert.Equal(t, StatusError, r.Status)
	assert.Equal(t, []string{"matchingData.correctMatches[0].rightId"}, fieldsOf(r.Errors))

	r = Question(matchingBuilder().Match("fr", "paris").Match("de", "paris").Build())
	assert.Equal(t, StatusError, r.Status)
	assert.Equal(t, []string{"matchingData.correctMatches[1].rightId"}, fieldsOf(r.Errors))
}

func TestQuiz(t *testing.T) {
	qs := []question.Question{
		question.NewTextInput("q1", "A?").Answer("a").Build(),
		question.NewTextInput("q2", "B?").Build(),
	}
	reports := Quiz(qs)
	require.Len(t, reports, 2)
	assert.Equal(t, StatusComplete, reports["q1"].Status)
	assert.Equal(t, StatusPartial, reports["q2"].Status)
	assert.False(t, AllComplete(reports))

	dup := Quiz([]question.Question{qs[0], qs[0]})
	assert.Equal(t, StatusError, dup["q1"].Status)

	ok := Quiz(qs[:1])
	assert.True(t, AllComplete(ok))
}
