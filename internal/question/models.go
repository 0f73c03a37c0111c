package question

import (
	"cmp"
	"slices"
)

// Type names one of the six supported question shapes.
type Type string

const (
	SingleChoice   Type = "SINGLE_CHOICE"
	MultipleChoice Type = "MULTIPLE_CHOICE"
	TextInput      Type = "TEXT_INPUT"
	Dropdown       Type = "DROPDOWN"
	Ordering       Type = "ORDERING"
	Matching       Type = "MATCHING"
)

// Types lists every known question type in a stable order.
var Types = []Type{SingleChoice, MultipleChoice, TextInput, Dropdown, Ordering, Matching}

func (t Type) Valid() bool {
	switch t {
	case SingleChoice, MultipleChoice, TextInput, Dropdown, Ordering, Matching:
		return true
	}
	return false
}

// Question is the shared envelope. Exactly one payload variant applies, and
// it is chosen by Type. Payload is nil while an author has not filled it in.
type Question struct {
	ID       string
	Text     string // canonical prompt; the only one validation and scoring read
	TextSL   string
	TextHR   string
	ImageURL string
	Type     Type
	Payload  Payload
}

// Payload is implemented only by the six variant types of this package.
type Payload interface {
	payloadType() Type
}

type Option struct {
	ID        string `json:"id" yaml:"id"`
	Text      string `json:"text" yaml:"text"`
	TextSL    string `json:"text_sl,omitempty" yaml:"text_sl,omitempty"`
	TextHR    string `json:"text_hr,omitempty" yaml:"text_hr,omitempty"`
	IsCorrect bool   `json:"isCorrect" yaml:"isCorrect"`
}

// ---- SINGLE_CHOICE ----

type SingleChoiceData struct {
	Options []Option
}

func (*SingleChoiceData) payloadType() Type { return SingleChoice }

// ---- MULTIPLE_CHOICE ----

type ScoringMethod string

const (
	AllOrNothing  ScoringMethod = "ALL_OR_NOTHING"
	PartialCredit ScoringMethod = "PARTIAL_CREDIT"
)

type PartialCreditRules struct {
	CorrectSelectionPoints    float64 `json:"correctSelectionPoints" yaml:"correctSelectionPoints"`
	IncorrectSelectionPenalty float64 `json:"incorrectSelectionPenalty" yaml:"incorrectSelectionPenalty"` // usually negative
	MinScore                  float64 `json:"minScore" yaml:"minScore"`
}

type MultipleChoiceSettings struct {
	ScoringMethod      ScoringMethod       `json:"scoringMethod" yaml:"scoringMethod"`
	MinSelections      int                 `json:"minSelections" yaml:"minSelections"`
	MaxSelections      *int                `json:"maxSelections,omitempty" yaml:"maxSelections,omitempty"`
	PartialCreditRules *PartialCreditRules `json:"partialCreditRules,omitempty" yaml:"partialCreditRules,omitempty"`
}

type MultipleChoiceData struct {
	Options  []Option
	Settings MultipleChoiceSettings
}

func (*MultipleChoiceData) payloadType() Type { return MultipleChoice }

// ---- TEXT_INPUT ----

type InputType string

const (
	InputText   InputType = "text"
	InputNumber InputType = "number"
	InputEmail  InputType = "email"
	InputURL    InputType = "url"
)

func (t InputType) Valid() bool {
	switch t {
	case "", InputText, InputNumber, InputEmail, InputURL:
		return true
	}
	return false
}

type TextInputData struct {
	AcceptableAnswers []string  `json:"acceptableAnswers" yaml:"acceptableAnswers"`
	CaseSensitive     bool      `json:"caseSensitive" yaml:"caseSensitive"`
	InputType         InputType `json:"inputType,omitempty" yaml:"inputType,omitempty"`
	NumericTolerance  *float64  `json:"numericTolerance,omitempty" yaml:"numericTolerance,omitempty"`
}

func (*TextInputData) payloadType() Type { return TextInput }

// ---- DROPDOWN ----

type DropdownField struct {
	ID      string   `json:"id" yaml:"id"`
	Label   string   `json:"label" yaml:"label"`
	LabelSL string   `json:"label_sl,omitempty" yaml:"label_sl,omitempty"`
	LabelHR string   `json:"label_hr,omitempty" yaml:"label_hr,omitempty"`
	Options []Option `json:"options" yaml:"options"`
}

type DropdownScoring struct {
	PointsPerDropdown   float64 `json:"pointsPerDropdown" yaml:"pointsPerDropdown"`
	RequireAllCorrect   bool    `json:"requireAllCorrect" yaml:"requireAllCorrect"`
	PenalizeIncorrect   bool    `json:"penalizeIncorrect" yaml:"penalizeIncorrect"`
	PenaltyPerIncorrect float64 `json:"penaltyPerIncorrect,omitempty" yaml:"penaltyPerIncorrect,omitempty"` // 0 means PointsPerDropdown
}

type DropdownData struct {
	Template   string          `json:"template" yaml:"template"`
	TemplateSL string          `json:"template_sl,omitempty" yaml:"template_sl,omitempty"`
	TemplateHR string          `json:"template_hr,omitempty" yaml:"template_hr,omitempty"`
	Dropdowns  []DropdownField `json:"dropdowns" yaml:"dropdowns"`
	Scoring    DropdownScoring `json:"scoring" yaml:"scoring"`
}

func (*DropdownData) payloadType() Type { return Dropdown }

// Field returns the dropdown with the given id.
func (d *DropdownData) Field(id string) (DropdownField, bool) {
	for _, f := range d.Dropdowns {
		if f.ID == id {
			return f, true
		}
	}
	return DropdownField{}, false
}

// ---- ORDERING / MATCHING content ----

type ContentType string

const (
	ContentText  ContentType = "text"
	ContentImage ContentType = "image"
	ContentMixed ContentType = "mixed"
)

type Content struct {
	Type     ContentType `json:"type" yaml:"type"`
	Text     string      `json:"text,omitempty" yaml:"text,omitempty"`
	TextSL   string      `json:"text_sl,omitempty" yaml:"text_sl,omitempty"`
	TextHR   string      `json:"text_hr,omitempty" yaml:"text_hr,omitempty"`
	ImageURL string      `json:"imageUrl,omitempty" yaml:"imageUrl,omitempty"`
	AltText  string      `json:"altText,omitempty" yaml:"altText,omitempty"`
}

// ---- ORDERING ----

type OrderingItem struct {
	ID              string  `json:"id" yaml:"id"`
	Content         Content `json:"content" yaml:"content"`
	CorrectPosition int     `json:"correctPosition" yaml:"correctPosition"` // 1-based
}

const (
	MinOrderingItems = 2
	MaxOrderingItems = 10
)

type OrderingData struct {
	Instructions   string         `json:"instructions" yaml:"instructions"`
	InstructionsSL string         `json:"instructions_sl,omitempty" yaml:"instructions_sl,omitempty"`
	InstructionsHR string         `json:"instructions_hr,omitempty" yaml:"instructions_hr,omitempty"`
	Items          []OrderingItem `json:"items" yaml:"items"`
}

func (*OrderingData) payloadType() Type { return Ordering }

// ---- MATCHING ----

type MatchItem struct {
	ID       string  `json:"id" yaml:"id"`
	Position int     `json:"position" yaml:"position"`
	Content  Content `json:"content" yaml:"content"`
}

// Match pairs a left item with a right item. It is used both for authored
// correct matches and for connections recorded by a student.
type Match struct {
	LeftID  string `json:"leftId" yaml:"leftId"`
	RightID string `json:"rightId" yaml:"rightId"`
}

type MatchingScoring struct {
	PointsPerMatch      float64 `json:"pointsPerMatch" yaml:"pointsPerMatch"`
	PenalizeIncorrect   bool    `json:"penalizeIncorrect" yaml:"penalizeIncorrect"`
	PenaltyPerIncorrect float64 `json:"penaltyPerIncorrect" yaml:"penaltyPerIncorrect"`
	RequireAllMatches   bool    `json:"requireAllMatches" yaml:"requireAllMatches"`
	PartialCredit       bool    `json:"partialCredit" yaml:"partialCredit"`
}

type MatchingData struct {
	Instructions   string          `json:"instructions" yaml:"instructions"`
	InstructionsSL string          `json:"instructions_sl,omitempty" yaml:"instructions_sl,omitempty"`
	InstructionsHR string          `json:"instructions_hr,omitempty" yaml:"instructions_hr,omitempty"`
	LeftItems      []MatchItem     `json:"leftItems" yaml:"leftItems"`
	RightItems     []MatchItem     `json:"rightItems" yaml:"rightItems"`
	CorrectMatches []Match         `json:"correctMatches" yaml:"correctMatches"`
	Scoring        MatchingScoring `json:"scoring" yaml:"scoring"`
}

func (*MatchingData) payloadType() Type { return Matching }

// ---- typed accessors ----

func (q Question) SingleChoiceData() (*SingleChoiceData, bool) {
	p, ok := q.Payload.(*SingleChoiceData)
	return p, ok && p != nil
}

func (q Question) MultipleChoiceData() (*MultipleChoiceData, bool) {
	p, ok := q.Payload.(*MultipleChoiceData)
	return p, ok && p != nil
}

func (q Question) TextInputData() (*TextInputData, bool) {
	p, ok := q.Payload.(*TextInputData)
	return p, ok && p != nil
}

func (q Question) DropdownData() (*DropdownData, bool) {
	p, ok := q.Payload.(*DropdownData)
	return p, ok && p != nil
}

func (q Question) OrderingData() (*OrderingData, bool) {
	p, ok := q.Payload.(*OrderingData)
	return p, ok && p != nil
}

func (q Question) MatchingData() (*MatchingData, bool) {
	p, ok := q.Payload.(*MatchingData)
	return p, ok && p != nil
}

// Options returns the choice list for SINGLE_CHOICE and MULTIPLE_CHOICE
// questions and nil for every other type.
func (q Question) Options() []Option {
	switch p := q.Payload.(type) {
	case *SingleChoiceData:
		if p != nil {
			return p.Options
		}
	case *MultipleChoiceData:
		if p != nil {
			return p.Options
		}
	}
	return nil
}

// PayloadMatches reports whether the populated payload belongs to q.Type.
// A nil payload matches any type.
func (q Question) PayloadMatches() bool {
	if q.Payload == nil {
		return true
	}
	return q.Payload.payloadType() == q.Type
}

// CorrectOrder returns item ids sorted by their authored position.
func (d *OrderingData) CorrectOrder() []string {
	items := slices.Clone(d.Items)
	// stable: ties keep authored order
	slices.SortStableFunc(items, func(a, b OrderingItem) int {
		return cmp.Compare(a.CorrectPosition, b.CorrectPosition)
	})
	return itemIDs(items)
}
