package question

import (
	"encoding/json"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

var (
	ErrUnknownType      = errors.New("unknown questionType")
	ErrPayloadMismatch  = errors.New("payload does not match questionType")
	ErrMultiplePayloads = errors.New("more than one payload populated")
)

// wire is the flat persisted shape shared with the storage collaborator.
type wire struct {
	ID                 string                  `json:"id" yaml:"id"`
	Text               string                  `json:"text" yaml:"text"`
	TextSL             string                  `json:"text_sl,omitempty" yaml:"text_sl,omitempty"`
	TextHR             string                  `json:"text_hr,omitempty" yaml:"text_hr,omitempty"`
	ImageURL           string                  `json:"imageUrl,omitempty" yaml:"imageUrl,omitempty"`
	QuestionType       Type                    `json:"questionType" yaml:"questionType"`
	Options            []Option                `json:"options,omitempty" yaml:"options,omitempty"`
	MultipleChoiceData *MultipleChoiceSettings `json:"multipleChoiceData,omitempty" yaml:"multipleChoiceData,omitempty"`
	TextInputData      *TextInputData          `json:"textInputData,omitempty" yaml:"textInputData,omitempty"`
	DropdownData       *DropdownData           `json:"dropdownData,omitempty" yaml:"dropdownData,omitempty"`
	OrderingData       *OrderingData           `json:"orderingData,omitempty" yaml:"orderingData,omitempty"`
	MatchingData       *MatchingData           `json:"matchingData,omitempty" yaml:"matchingData,omitempty"`
}

func (q Question) toWire() wire {
	w := wire{
		ID:           q.ID,
		Text:         q.Text,
		TextSL:       q.TextSL,
		TextHR:       q.TextHR,
		ImageURL:     q.ImageURL,
		QuestionType: q.Type,
	}
	switch p := q.Payload.(type) {
	case *SingleChoiceData:
		if p != nil {
			w.Options = p.Options
		}
	case *MultipleChoiceData:
		if p != nil {
			w.Options = p.Options
			s := p.Settings
			w.MultipleChoiceData = &s
		}
	case *TextInputData:
		w.TextInputData = p
	case *DropdownData:
		w.DropdownData = p
	case *OrderingData:
		w.OrderingData = p
	case *MatchingData:
		w.MatchingData = p
	}
	return w
}

func (q *Question) fromWire(w wire) error {
	if !w.QuestionType.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownType, w.QuestionType)
	}
	populated := 0
	for _, set := range []bool{
		w.Options != nil || w.MultipleChoiceData != nil,
		w.TextInputData != nil,
		w.DropdownData != nil,
		w.OrderingData != nil,
		w.MatchingData != nil,
	} {
		if set {
			populated++
		}
	}
	if populated > 1 {
		return ErrMultiplePayloads
	}

	*q = Question{
		ID:       w.ID,
		Text:     w.Text,
		TextSL:   w.TextSL,
		TextHR:   w.TextHR,
		ImageURL: w.ImageURL,
		Type:     w.QuestionType,
	}

	mismatch := func(key string) error {
		return fmt.Errorf("%w: %s on %s question", ErrPayloadMismatch, key, w.QuestionType)
	}

	switch w.QuestionType {
	case SingleChoice:
		if w.MultipleChoiceData != nil {
			return mismatch("multipleChoiceData")
		}
		if w.Options != nil {
			q.Payload = &SingleChoiceData{Options: w.Options}
		}
	case MultipleChoice:
		if w.Options != nil || w.MultipleChoiceData != nil {
			p := &MultipleChoiceData{Options: w.Options}
			if w.MultipleChoiceData != nil {
				p.Settings = *w.MultipleChoiceData
			}
			q.Payload = p
		}
	case TextInput:
		if w.TextInputData == nil && populated > 0 {
			return mismatch(populatedKey(w))
		}
		if w.TextInputData != nil {
			q.Payload = w.TextInputData
		}
	case Dropdown:
		if w.DropdownData == nil && populated > 0 {
			return mismatch(populatedKey(w))
		}
		if w.DropdownData != nil {
			q.Payload = w.DropdownData
		}
	case Ordering:
		if w.OrderingData == nil && populated > 0 {
			return mismatch(populatedKey(w))
		}
		if w.OrderingData != nil {
			q.Payload = w.OrderingData
		}
	case Matching:
		if w.MatchingData == nil && populated > 0 {
			return mismatch(populatedKey(w))
		}
		if w.MatchingData != nil {
			q.Payload = w.MatchingData
		}
	}
	if (q.Type == SingleChoice || q.Type == MultipleChoice) && populated > 0 && q.Payload == nil {
		return mismatch(populatedKey(w))
	}
	return nil
}

func populatedKey(w wire) string {
	switch {
	case w.Options != nil:
		return "options"
	case w.MultipleChoiceData != nil:
		return "multipleChoiceData"
	case w.TextInputData != nil:
		return "textInputData"
	case w.DropdownData != nil:
		return "dropdownData"
	case w.OrderingData != nil:
		return "orderingData"
	case w.MatchingData != nil:
		return "matchingData"
	}
	return ""
}

func (q Question) MarshalJSON() ([]byte, error) {
	return json.Marshal(q.toWire())
}

func (q *Question) UnmarshalJSON(b []byte) error {
	var w wire
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	return q.fromWire(w)
}

func (q Question) MarshalYAML() (interface{}, error) {
	return q.toWire(), nil
}

func (q *Question) UnmarshalYAML(node *yaml.Node) error {
	var w wire
	if err := node.Decode(&w); err != nil {
		return err
	}
	return q.fromWire(w)
}
