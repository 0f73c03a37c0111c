package answer

import (
	"encoding/json"
	"fmt"

	"github.com/mind-engage/mindengage-quiz/internal/question"
)

// Response is a student's answer to one question. Like question.Payload it
// is a closed set of variants, one per question type.
type Response interface {
	responseType() question.Type
}

type SingleChoice struct {
	OptionID string
}

type MultipleChoice struct {
	OptionIDs []string
}

type TextInput struct {
	Text string
}

type Dropdown struct {
	Selections map[string]string // dropdown field id -> option id
}

type Ordering struct {
	Order []string // item ids, first position first
}

type Matching struct {
	Connections []question.Match
}

func (SingleChoice) responseType() question.Type   { return question.SingleChoice }
func (MultipleChoice) responseType() question.Type { return question.MultipleChoice }
func (TextInput) responseType() question.Type      { return question.TextInput }
func (Dropdown) responseType() question.Type       { return question.Dropdown }
func (Ordering) responseType() question.Type       { return question.Ordering }
func (Matching) responseType() question.Type       { return question.Matching }

// TypeOf reports the question type a response answers, or "" for nil.
func TypeOf(r Response) question.Type {
	if r == nil {
		return ""
	}
	return r.responseType()
}

// Answer ties a response to its question.
type Answer struct {
	QuestionID string
	Response   Response
}

type wire struct {
	QuestionID        string            `json:"questionId" yaml:"questionId"`
	QuestionType      question.Type     `json:"questionType" yaml:"questionType"`
	SelectedOptionID  string            `json:"selectedOptionId,omitempty" yaml:"selectedOptionId,omitempty"`
	SelectedOptionIDs []string          `json:"selectedOptionIds,omitempty" yaml:"selectedOptionIds,omitempty"`
	Text              *string           `json:"text,omitempty" yaml:"text,omitempty"`
	Selections        map[string]string `json:"selections,omitempty" yaml:"selections,omitempty"`
	Order             []string          `json:"order,omitempty" yaml:"order,omitempty"`
	Connections       []question.Match  `json:"connections,omitempty" yaml:"connections,omitempty"`
}

func (a Answer) toWire() wire {
	w := wire{QuestionID: a.QuestionID, QuestionType: TypeOf(a.Response)}
	switch r := a.Response.(type) {
	case SingleChoice:
		w.SelectedOptionID = r.OptionID
	case MultipleChoice:
		w.SelectedOptionIDs = r.OptionIDs
	case TextInput:
		t := r.Text
		w.Text = &t
	case Dropdown:
		w.Selections = r.Selections
	case Ordering:
		w.Order = r.Order
	case Matching:
		w.Connections = r.Connections
	}
	return w
}

func (a *Answer) fromWire(w wire) error {
	a.QuestionID = w.QuestionID
	switch w.QuestionType {
	case question.SingleChoice:
		a.Response = SingleChoice{OptionID: w.SelectedOptionID}
	case question.MultipleChoice:
		a.Response = MultipleChoice{OptionIDs: w.SelectedOptionIDs}
	case question.TextInput:
		var t string
		if w.Text != nil {
			t = *w.Text
		}
		a.Response = TextInput{Text: t}
	case question.Dropdown:
		a.Response = Dropdown{Selections: w.Selections}
	case question.Ordering:
		a.Response = Ordering{Order: w.Order}
	case question.Matching:
		a.Response = Matching{Connections: w.Connections}
	case "":
		a.Response = nil
	default:
		return fmt.Errorf("answer %q: %w: %q", w.QuestionID, question.ErrUnknownType, w.QuestionType)
	}
	return nil
}

func (a Answer) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.toWire())
}

func (a *Answer) UnmarshalJSON(b []byte) error {
	var w wire
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	return a.fromWire(w)
}

func (a Answer) MarshalYAML() (interface{}, error) {
	return a.toWire(), nil
}

func (a *Answer) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var w wire
	if err := unmarshal(&w); err != nil {
		return err
	}
	return a.fromWire(w)
}

// Index returns the answers keyed by question id. Later entries win.
func Index(answers []Answer) map[string]Response {
	out := make(map[string]Response, len(answers))
	for _, a := range answers {
		out[a.QuestionID] = a.Response
	}
	return out
}
