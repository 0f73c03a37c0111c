package question

// Builders give authoring code a typed accessor per question type. They never
// validate: run the result through the validate package for feedback.

type SingleChoiceBuilder struct {
	q Question
	p *SingleChoiceData
}

func NewSingleChoice(id, text string) *SingleChoiceBuilder {
	p := &SingleChoiceData{}
	return &SingleChoiceBuilder{q: Question{ID: id, Text: text, Type: SingleChoice, Payload: p}, p: p}
}

func (b *SingleChoiceBuilder) Image(url string) *SingleChoiceBuilder { b.q.ImageURL = url; return b }

func (b *SingleChoiceBuilder) Translate(sl, hr string) *SingleChoiceBuilder {
	b.q.TextSL, b.q.TextHR = sl, hr
	return b
}

func (b *SingleChoiceBuilder) Option(id, text string, correct bool) *SingleChoiceBuilder {
	b.p.Options = append(b.p.Options, Option{ID: id, Text: text, IsCorrect: correct})
	return b
}

func (b *SingleChoiceBuilder) Build() Question { return clone(b.q) }

type MultipleChoiceBuilder struct {
	q Question
	p *MultipleChoiceData
}

func NewMultipleChoice(id, text string) *MultipleChoiceBuilder {
	p := &MultipleChoiceData{Settings: MultipleChoiceSettings{ScoringMethod: AllOrNothing}}
	return &MultipleChoiceBuilder{q: Question{ID: id, Text: text, Type: MultipleChoice, Payload: p}, p: p}
}

func (b *MultipleChoiceBuilder) Option(id, text string, correct bool) *MultipleChoiceBuilder {
	b.p.Options = append(b.p.Options, Option{ID: id, Text: text, IsCorrect: correct})
	return b
}

func (b *MultipleChoiceBuilder) Selections(minSel int, maxSel *int) *MultipleChoiceBuilder {
	b.p.Settings.MinSelections = minSel
	b.p.Settings.MaxSelections = maxSel
	return b
}

func (b *MultipleChoiceBuilder) AllOrNothing() *MultipleChoiceBuilder {
	b.p.Settings.ScoringMethod = AllOrNothing
	b.p.Settings.PartialCreditRules = nil
	return b
}

func (b *MultipleChoiceBuilder) PartialCredit(correctPoints, incorrectPenalty, minScore float64) *MultipleChoiceBuilder {
	b.p.Settings.ScoringMethod = PartialCredit
	b.p.Settings.PartialCreditRules = &PartialCreditRules{
		CorrectSelectionPoints:    correctPoints,
		IncorrectSelectionPenalty: incorrectPenalty,
		MinScore:                  minScore,
	}
	return b
}

func (b *MultipleChoiceBuilder) Build() Question { return clone(b.q) }

type TextInputBuilder struct {
	q Question
	p *TextInputData
}

func NewTextInput(id, text string) *TextInputBuilder {
	p := &TextInputData{InputType: InputText}
	return &TextInputBuilder{q: Question{ID: id, Text: text, Type: TextInput, Payload: p}, p: p}
}

func (b *TextInputBuilder) Answer(answers ...string) *TextInputBuilder {
	b.p.AcceptableAnswers = append(b.p.AcceptableAnswers, answers...)
	return b
}

func (b *TextInputBuilder) CaseSensitive(v bool) *TextInputBuilder { b.p.CaseSensitive = v; return b }

func (b *TextInputBuilder) Numeric(tolerance float64) *TextInputBuilder {
	b.p.InputType = InputNumber
	b.p.NumericTolerance = &tolerance
	return b
}

func (b *TextInputBuilder) InputType(t InputType) *TextInputBuilder { b.p.InputType = t; return b }

func (b *TextInputBuilder) Build() Question { return clone(b.q) }

type DropdownBuilder struct {
	q Question
	p *DropdownData
}

func NewDropdown(id, text, template string) *DropdownBuilder {
	p := &DropdownData{Template: template, Scoring: DropdownScoring{PointsPerDropdown: 1}}
	return &DropdownBuilder{q: Question{ID: id, Text: text, Type: Dropdown, Payload: p}, p: p}
}

// Field appends a dropdown. Options are given as (id, text) pairs; correct
// lists the ids of the correct options.
func (b *DropdownBuilder) Field(id, label string, options [][2]string, correct ...string) *DropdownBuilder {
	isCorrect := make(map[string]bool, len(correct))
	for _, c := range correct {
		isCorrect[c] = true
	}
	f := DropdownField{ID: id, Label: label}
	for _, o := range options {
		f.Options = append(f.Options, Option{ID: o[0], Text: o[1], IsCorrect: isCorrect[o[0]]})
	}
	b.p.Dropdowns = append(b.p.Dropdowns, f)
	return b
}

func (b *DropdownBuilder) Scoring(s DropdownScoring) *DropdownBuilder { b.p.Scoring = s; return b }

func (b *DropdownBuilder) Build() Question { return clone(b.q) }

type OrderingBuilder struct {
	q Question
	p *OrderingData
}

func NewOrdering(id, text, instructions string) *OrderingBuilder {
	p := &OrderingData{Instructions: instructions}
	return &OrderingBuilder{q: Question{ID: id, Text: text, Type: Ordering, Payload: p}, p: p}
}

// Item appends a text item at the given 1-based correct position.
func (b *OrderingBuilder) Item(id, text string, position int) *OrderingBuilder {
	return b.ItemContent(id, Content{Type: ContentText, Text: text}, position)
}

func (b *OrderingBuilder) ItemContent(id string, c Content, position int) *OrderingBuilder {
	b.p.Items = append(b.p.Items, OrderingItem{ID: id, Content: c, CorrectPosition: position})
	return b
}

func (b *OrderingBuilder) Build() Question { return clone(b.q) }

type MatchingBuilder struct {
	q Question
	p *MatchingData
}

func NewMatching(id, text, instructions string) *MatchingBuilder {
	p := &MatchingData{
		Instructions: instructions,
		Scoring:      MatchingScoring{PointsPerMatch: 1, PartialCredit: true},
	}
	return &MatchingBuilder{q: Question{ID: id, Text: text, Type: Matching, Payload: p}, p: p}
}

func (b *MatchingBuilder) Left(id, text string) *MatchingBuilder {
	b.p.LeftItems = append(b.p.LeftItems, MatchItem{ID: id, Position: len(b.p.LeftItems) + 1, Content: Content{Type: ContentText, Text: text}})
	return b
}

func (b *MatchingBuilder) Right(id, text string) *MatchingBuilder {
	b.p.RightItems = append(b.p.RightItems, MatchItem{ID: id, Position: len(b.p.RightItems) + 1, Content: Content{Type: ContentText, Text: text}})
	return b
}

func (b *MatchingBuilder) Match(leftID, rightID string) *MatchingBuilder {
	b.p.CorrectMatches = append(b.p.CorrectMatches, Match{LeftID: leftID, RightID: rightID})
	return b
}

func (b *MatchingBuilder) Scoring(s MatchingScoring) *MatchingBuilder { b.p.Scoring = s; return b }

func (b *MatchingBuilder) Build() Question { return clone(b.q) }

// Clone returns a copy whose payload slices are not shared with q.
func (q Question) Clone() Question { return clone(q) }

// clone detaches the built question from the builder so later builder calls
// do not leak into it.
func clone(q Question) Question {
	out := q
	switch p := q.Payload.(type) {
	case *SingleChoiceData:
		if p == nil {
			break
		}
		out.Payload = &SingleChoiceData{Options: append([]Option(nil), p.Options...)}
	case *MultipleChoiceData:
		if p == nil {
			break
		}
		c := *p
		c.Options = append([]Option(nil), p.Options...)
		if p.Settings.PartialCreditRules != nil {
			r := *p.Settings.PartialCreditRules
			c.Settings.PartialCreditRules = &r
		}
		out.Payload = &c
	case *TextInputData:
		if p == nil {
			break
		}
		c := *p
		c.AcceptableAnswers = append([]string(nil), p.AcceptableAnswers...)
		out.Payload = &c
	case *DropdownData:
		if p == nil {
			break
		}
		c := *p
		c.Dropdowns = make([]DropdownField, len(p.Dropdowns))
		for i, f := range p.Dropdowns {
			f.Options = append([]Option(nil), f.Options...)
			c.Dropdowns[i] = f
		}
		out.Payload = &c
	case *OrderingData:
		if p == nil {
			break
		}
		c := *p
		c.Items = append([]OrderingItem(nil), p.Items...)
		out.Payload = &c
	case *MatchingData:
		if p == nil {
			break
		}
		c := *p
		c.LeftItems = append([]MatchItem(nil), p.LeftItems...)
		c.RightItems = append([]MatchItem(nil), p.RightItems...)
		c.CorrectMatches = append([]Match(nil), p.CorrectMatches...)
		out.Payload = &c
	}
	return out
}
