package grading

import (
	"github.com/mind-engage/mindengage-quiz/internal/answer"
	"github.com/mind-engage/mindengage-quiz/internal/question"
)

// Details explains a score. Positions are 1-based.
type Details struct {
	CorrectPositions   []int    `json:"correctPositions,omitempty"`
	IncorrectPositions []int    `json:"incorrectPositions,omitempty"`
	CorrectCount       int      `json:"correctCount"`
	IncorrectCount     int      `json:"incorrectCount"`
	MissedCount        int      `json:"missedCount"`
	Feedback           []string `json:"feedback,omitempty"`
}

// Result is the outcome of grading a single question response.
type Result struct {
	IsCorrect bool    `json:"isCorrect"`
	Score     float64 `json:"score"`
	MaxScore  float64 `json:"maxScore"`
	Details   Details `json:"details"`
}

// Strategy grades a single question. Strategies never fail: a missing or
// mismatched response scores 0 against the question's max score.
type Strategy interface {
	Grade(q question.Question, r answer.Response) Result
}

// Grader routes by question type to the correct Strategy.
type Grader interface {
	Grade(q question.Question, r answer.Response) Result
}

type defaultGrader struct {
	strategies map[question.Type]Strategy
}

func (g *defaultGrader) Grade(q question.Question, r answer.Response) Result {
	s, ok := g.strategies[q.Type]
	if !ok {
		return Result{Details: Details{Feedback: []string{"no strategy available"}}}
	}
	return s.Grade(q, r)
}

// Engine options

type Option func(*config)

type config struct {
	MaxEditDistance       int  // near-miss feedback for text input, never points
	OrderingPartialCredit bool // score correct positions / N instead of all-or-nothing
	strategyOverrides     map[question.Type]Strategy
}

func WithMaxEditDistance(n int) Option { return func(c *config) { c.MaxEditDistance = n } }

func WithOrderingPartialCredit(b bool) Option {
	return func(c *config) { c.OrderingPartialCredit = b }
}

// WithStrategy replaces the built-in strategy for one question type.
func WithStrategy(t question.Type, s Strategy) Option {
	return func(c *config) {
		if c.strategyOverrides == nil {
			c.strategyOverrides = map[question.Type]Strategy{}
		}
		c.strategyOverrides[t] = s
	}
}

// NewDefaultGrader installs built-in strategies.
func NewDefaultGrader(opts ...Option) Grader {
	cfg := &config{
		MaxEditDistance: 1,
	}
	for _, o := range opts {
		o(cfg)
	}
	g := &defaultGrader{
		strategies: map[question.Type]Strategy{
			question.SingleChoice:   singleChoiceStrategy{},
			question.MultipleChoice: multipleChoiceStrategy{},
			question.TextInput:      textInputStrategy{maxEdit: cfg.MaxEditDistance},
			question.Dropdown:       dropdownStrategy{},
			question.Ordering:       orderingStrategy{partial: cfg.OrderingPartialCredit},
			question.Matching:       matchingStrategy{},
		},
	}
	for t, s := range cfg.strategyOverrides {
		g.strategies[t] = s
	}
	return g
}

// --- Strategies ---

type singleChoiceStrategy struct{}

func (singleChoiceStrategy) Grade(q question.Question, r answer.Response) Result {
	res := Result{MaxScore: 1}
	resp, ok := r.(answer.SingleChoice)
	if !ok || resp.OptionID == "" {
		res.Details.MissedCount = 1
		return res
	}
	for _, o := range q.Options() {
		if o.ID == resp.OptionID && o.IsCorrect {
			res.IsCorrect = true
			res.Score = 1
			res.Details.CorrectCount = 1
			return res
		}
	}
	res.Details.IncorrectCount = 1
	return res
}

type multipleChoiceStrategy struct{}

func (multipleChoiceStrategy) Grade(q question.Question, r answer.Response) Result {
	correct := map[string]struct{}{}
	for _, o := range q.Options() {
		if o.IsCorrect {
			correct[o.ID] = struct{}{}
		}
	}

	var settings question.MultipleChoiceSettings
	if p, ok := q.MultipleChoiceData(); ok {
		settings = p.Settings
	}
	rules := question.PartialCreditRules{CorrectSelectionPoints: 1}
	if settings.PartialCreditRules != nil {
		rules = *settings.PartialCreditRules
	}
	partial := settings.ScoringMethod == question.PartialCredit

	res := Result{MaxScore: 1}
	if partial {
		res.MaxScore = rules.CorrectSelectionPoints * float64(len(correct))
	}

	var selected map[string]struct{}
	if resp, ok := r.(answer.MultipleChoice); ok {
		selected = toSet(resp.OptionIDs)
	}
	hit, wrong := 0, 0
	for id := range selected {
		if _, ok := correct[id]; ok {
			hit++
		} else {
			wrong++
		}
	}
	res.Details.CorrectCount = hit
	res.Details.IncorrectCount = wrong
	res.Details.MissedCount = len(correct) - hit
	res.IsCorrect = len(correct) > 0 && setEqual(correct, selected)

	if !partial {
		if res.IsCorrect {
			res.Score = res.MaxScore
		}
		return res
	}
	score := rules.CorrectSelectionPoints*float64(hit) + rules.IncorrectSelectionPenalty*float64(wrong)
	res.Score = clamp(score, rules.MinScore, res.MaxScore)
	return res
}

type dropdownStrategy struct{}

func (dropdownStrategy) Grade(q question.Question, r answer.Response) Result {
	p, ok := q.DropdownData()
	if !ok {
		return Result{}
	}
	ppd := p.Scoring.PointsPerDropdown
	if ppd <= 0 {
		ppd = 1
	}
	penalty := p.Scoring.PenaltyPerIncorrect
	if penalty <= 0 {
		penalty = ppd
	}
	res := Result{MaxScore: ppd * float64(len(p.Dropdowns))}

	var sel map[string]string
	if resp, ok := r.(answer.Dropdown); ok {
		sel = resp.Selections
	}
	for i, f := range p.Dropdowns {
		chosen := sel[f.ID]
		switch {
		case chosen == "":
			res.Details.MissedCount++
			res.Details.IncorrectPositions = append(res.Details.IncorrectPositions, i+1)
		case optionCorrect(f.Options, chosen):
			res.Details.CorrectCount++
			res.Details.CorrectPositions = append(res.Details.CorrectPositions, i+1)
		default:
			res.Details.IncorrectCount++
			res.Details.IncorrectPositions = append(res.Details.IncorrectPositions, i+1)
		}
	}
	res.IsCorrect = len(p.Dropdowns) > 0 && res.Details.CorrectCount == len(p.Dropdowns)

	score := ppd * float64(res.Details.CorrectCount)
	if p.Scoring.RequireAllCorrect && !res.IsCorrect {
		score = 0
	}
	if p.Scoring.PenalizeIncorrect {
		// unanswered fields are not penalised
		score -= penalty * float64(res.Details.IncorrectCount)
	}
	res.Score = clamp(score, 0, res.MaxScore)
	return res
}

type orderingStrategy struct{ partial bool }

func (s orderingStrategy) Grade(q question.Question, r answer.Response) Result {
	res := Result{MaxScore: 1}
	p, ok := q.OrderingData()
	if !ok {
		return res
	}
	want := p.CorrectOrder()
	var got []string
	if resp, ok := r.(answer.Ordering); ok {
		got = resp.Order
	}
	for i, id := range want {
		switch {
		case i >= len(got):
			res.Details.MissedCount++
			res.Details.IncorrectPositions = append(res.Details.IncorrectPositions, i+1)
		case got[i] == id:
			res.Details.CorrectCount++
			res.Details.CorrectPositions = append(res.Details.CorrectPositions, i+1)
		default:
			res.Details.IncorrectCount++
			res.Details.IncorrectPositions = append(res.Details.IncorrectPositions, i+1)
		}
	}
	res.IsCorrect = len(want) > 0 && len(got) == len(want) && res.Details.CorrectCount == len(want)
	switch {
	case res.IsCorrect:
		res.Score = 1
	case s.partial && len(want) > 0:
		res.Score = float64(res.Details.CorrectCount) / float64(len(want))
	}
	return res
}

type matchingStrategy struct{}

func (matchingStrategy) Grade(q question.Question, r answer.Response) Result {
	p, ok := q.MatchingData()
	if !ok {
		return Result{}
	}
	sc := p.Scoring
	ppm := sc.PointsPerMatch
	if ppm <= 0 {
		ppm = 1
	}
	res := Result{MaxScore: ppm * float64(len(p.CorrectMatches))}

	want := make(map[question.Match]bool, len(p.CorrectMatches))
	for _, m := range p.CorrectMatches {
		want[m] = true
	}
	var conns []question.Match
	if resp, ok := r.(answer.Matching); ok {
		conns = resp.Connections
	}
	found := map[question.Match]bool{}
	for _, c := range conns {
		if want[c] && !found[c] {
			found[c] = true
			res.Details.CorrectCount++
		} else {
			res.Details.IncorrectCount++
		}
	}
	res.Details.MissedCount = len(want) - len(found)

	res.IsCorrect = res.Details.CorrectCount > 0 && res.Details.IncorrectCount == 0 &&
		(!sc.RequireAllMatches || res.Details.MissedCount == 0)
	if sc.RequireAllMatches && res.Details.MissedCount > 0 {
		res.Details.Feedback = append(res.Details.Feedback, "not every match was made")
	}

	if !sc.PartialCredit {
		// all or nothing: every correct match made and nothing wrong
		full := res.Details.MissedCount == 0 && res.Details.IncorrectCount == 0 && len(want) > 0
		res.IsCorrect = full
		if full {
			res.Score = res.MaxScore
		}
		return res
	}
	score := ppm * float64(res.Details.CorrectCount)
	if sc.PenalizeIncorrect {
		score -= sc.PenaltyPerIncorrect * float64(res.Details.IncorrectCount)
	}
	res.Score = clamp(score, 0, res.MaxScore)
	return res
}

// helpers

func optionCorrect(opts []question.Option, id string) bool {
	for _, o := range opts {
		if o.ID == id {
			return o.IsCorrect
		}
	}
	return false
}

func toSet(arr []string) map[string]struct{} {
	m := make(map[string]struct{}, len(arr))
	for _, s := range arr {
		m[s] = struct{}{}
	}
	return m
}

func setEqual(a, b map[string]struct{}) bool {
	if len(a) != len(b) {
		return false
	}
	for k := range a {
		if _, ok := b[k]; !ok {
			return false
		}
	}
	return true
}

// clamp bounds v to [lo, hi]; lo wins when the bounds cross.
func clamp(v, lo, hi float64) float64 {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}
