// Package answer holds the student-side answer variants and the per-session
// Tracker that records them while a quiz is being taken.
package answer

import (
	"errors"
	"math/rand"

	"github.com/mind-engage/mindengage-quiz/internal/matching"
	"github.com/mind-engage/mindengage-quiz/internal/ordering"
	"github.com/mind-engage/mindengage-quiz/internal/question"
)

var (
	ErrFrozen          = errors.New("answers are frozen after submission")
	ErrUnknownQuestion = errors.New("unknown question")
	ErrWrongType       = errors.New("operation does not apply to this question type")
	ErrUnknownOption   = errors.New("unknown option")
	ErrMaxSelections   = errors.New("maximum number of selections reached")
)

// Tracker is private to one quiz-taking session and is not safe for
// concurrent use. It never mutates the questions it was built from.
type Tracker struct {
	sessionID  string
	questions  map[string]question.Question
	order      []string
	responses  map[string]Response
	orderings  map[string]*ordering.Presenter
	connectors map[string]*matching.Connector
	frozen     bool
}

// NewTracker starts an empty session. sessionID seeds the ordering shuffles
// so a reload with the same id shows the same arrangement.
func NewTracker(sessionID string, questions []question.Question) *Tracker {
	t := &Tracker{
		sessionID:  sessionID,
		questions:  make(map[string]question.Question, len(questions)),
		responses:  map[string]Response{},
		orderings:  map[string]*ordering.Presenter{},
		connectors: map[string]*matching.Connector{},
	}
	for _, q := range questions {
		if _, dup := t.questions[q.ID]; !dup {
			t.order = append(t.order, q.ID)
		}
		t.questions[q.ID] = q
	}
	return t
}

// Resume reloads saved answers into a fresh session, for example after a page
// reload. Answers for unknown questions or of the wrong type are skipped. A
// saved ordering that is not a permutation of the items is replaced by the
// session shuffle; invalid saved connections are dropped.
func (t *Tracker) Resume(saved []Answer) error {
	if t.frozen {
		return ErrFrozen
	}
	for _, a := range saved {
		q, ok := t.questions[a.QuestionID]
		if !ok || a.Response == nil || TypeOf(a.Response) != q.Type {
			continue
		}
		switch r := a.Response.(type) {
		case Ordering:
			d, ok := q.OrderingData()
			if !ok {
				continue
			}
			p := ordering.Restore(d, r.Order)
			if p.State() == ordering.StateUnshuffled {
				p.Shuffle(rand.New(rand.NewSource(ordering.SeedFor(t.sessionID, q.ID))))
			}
			t.orderings[q.ID] = p
		case Matching:
			d, ok := q.MatchingData()
			if !ok {
				continue
			}
			t.connectors[q.ID] = matching.Restore(d, r.Connections)
		default:
			t.responses[q.ID] = r
		}
	}
	return nil
}

func (t *Tracker) lookup(qid string, want question.Type) (question.Question, error) {
	if t.frozen {
		return question.Question{}, ErrFrozen
	}
	q, ok := t.questions[qid]
	if !ok {
		return question.Question{}, ErrUnknownQuestion
	}
	if q.Type != want {
		return question.Question{}, ErrWrongType
	}
	return q, nil
}

func hasOption(opts []question.Option, id string) bool {
	for _, o := range opts {
		if o.ID == id {
			return true
		}
	}
	return false
}

// SelectOption records the single chosen option of a SINGLE_CHOICE question.
func (t *Tracker) SelectOption(qid, optionID string) error {
	q, err := t.lookup(qid, question.SingleChoice)
	if err != nil {
		return err
	}
	if !hasOption(q.Options(), optionID) {
		return ErrUnknownOption
	}
	t.responses[qid] = SingleChoice{OptionID: optionID}
	return nil
}

// ToggleOption adds or removes an option of a MULTIPLE_CHOICE question.
// Adding beyond the configured maximum fails with ErrMaxSelections.
func (t *Tracker) ToggleOption(qid, optionID string) error {
	q, err := t.lookup(qid, question.MultipleChoice)
	if err != nil {
		return err
	}
	if !hasOption(q.Options(), optionID) {
		return ErrUnknownOption
	}
	var current []string
	if r, ok := t.responses[qid].(MultipleChoice); ok {
		current = r.OptionIDs
	}
	next := make([]string, 0, len(current)+1)
	removed := false
	for _, id := range current {
		if id == optionID {
			removed = true
			continue
		}
		next = append(next, id)
	}
	if !removed {
		if p, ok := q.MultipleChoiceData(); ok && p.Settings.MaxSelections != nil && len(current) >= *p.Settings.MaxSelections {
			return ErrMaxSelections
		}
		next = append(next, optionID)
	}
	t.responses[qid] = MultipleChoice{OptionIDs: next}
	return nil
}

// SetText records the typed value of a TEXT_INPUT question.
func (t *Tracker) SetText(qid, text string) error {
	if _, err := t.lookup(qid, question.TextInput); err != nil {
		return err
	}
	t.responses[qid] = TextInput{Text: text}
	return nil
}

// SelectDropdown records the chosen option of one field of a DROPDOWN
// question. An empty optionID clears the field.
func (t *Tracker) SelectDropdown(qid, fieldID, optionID string) error {
	q, err := t.lookup(qid, question.Dropdown)
	if err != nil {
		return err
	}
	p, _ := q.DropdownData()
	if p == nil {
		return ErrUnknownOption
	}
	f, ok := p.Field(fieldID)
	if !ok || (optionID != "" && !hasOption(f.Options, optionID)) {
		return ErrUnknownOption
	}
	sel := map[string]string{}
	if r, ok := t.responses[qid].(Dropdown); ok {
		for k, v := range r.Selections {
			sel[k] = v
		}
	}
	if optionID == "" {
		delete(sel, fieldID)
	} else {
		sel[fieldID] = optionID
	}
	t.responses[qid] = Dropdown{Selections: sel}
	return nil
}

// Ordering returns the presenter of an ORDERING question, shuffling it on
// first access with the session seed.
func (t *Tracker) Ordering(qid string) (*ordering.Presenter, error) {
	if p, ok := t.orderings[qid]; ok {
		if t.frozen {
			return p, ErrFrozen
		}
		return p, nil
	}
	q, err := t.lookup(qid, question.Ordering)
	if err != nil {
		return nil, err
	}
	d, ok := q.OrderingData()
	if !ok {
		return nil, ErrWrongType
	}
	p := ordering.New(d)
	p.Shuffle(rand.New(rand.NewSource(ordering.SeedFor(t.sessionID, qid))))
	t.orderings[qid] = p
	return p, nil
}

// MoveItem reorders an ORDERING question.
func (t *Tracker) MoveItem(qid string, from, to int) error {
	p, err := t.Ordering(qid)
	if err != nil {
		return err
	}
	return p.Move(from, to)
}

// Matching returns the connector of a MATCHING question.
func (t *Tracker) Matching(qid string) (*matching.Connector, error) {
	if c, ok := t.connectors[qid]; ok {
		if t.frozen {
			return c, ErrFrozen
		}
		return c, nil
	}
	q, err := t.lookup(qid, question.Matching)
	if err != nil {
		return nil, err
	}
	d, ok := q.MatchingData()
	if !ok {
		return nil, ErrWrongType
	}
	c := matching.New(d)
	t.connectors[qid] = c
	return c, nil
}

func (t *Tracker) ClickLeft(qid, leftID string) (matching.Outcome, error) {
	c, err := t.Matching(qid)
	if err != nil {
		return matching.OutcomeNone, err
	}
	return c.ClickLeft(leftID), nil
}

func (t *Tracker) ClickRight(qid, rightID string) (matching.Outcome, error) {
	c, err := t.Matching(qid)
	if err != nil {
		return matching.OutcomeNone, err
	}
	return c.ClickRight(rightID), nil
}

func (t *Tracker) ClearConnections(qid string) error {
	c, err := t.Matching(qid)
	if err != nil {
		return err
	}
	c.Clear()
	return nil
}

// Freeze ends the session: presenters and connectors are locked and every
// later mutation fails with ErrFrozen. Scoring must only see frozen answers.
func (t *Tracker) Freeze() {
	if t.frozen {
		return
	}
	t.frozen = true
	for _, p := range t.orderings {
		p.Submit()
	}
	for _, c := range t.connectors {
		c.Freeze()
	}
}

func (t *Tracker) Frozen() bool { return t.frozen }

// Response returns the current response for one question.
func (t *Tracker) Response(qid string) (Response, bool) {
	if p, ok := t.orderings[qid]; ok {
		return Ordering{Order: p.Order()}, true
	}
	if c, ok := t.connectors[qid]; ok {
		return Matching{Connections: c.Connections()}, true
	}
	r, ok := t.responses[qid]
	return r, ok
}

// Answers snapshots every question the student interacted with, in quiz
// order.
func (t *Tracker) Answers() []Answer {
	out := make([]Answer, 0, len(t.order))
	for _, qid := range t.order {
		if r, ok := t.Response(qid); ok {
			out = append(out, Answer{QuestionID: qid, Response: r})
		}
	}
	return out
}

// Submit freezes the tracker and returns the final answers.
func (t *Tracker) Submit() []Answer {
	t.Freeze()
	return t.Answers()
}
