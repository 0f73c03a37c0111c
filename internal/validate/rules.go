package validate

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/mind-engage/mindengage-quiz/internal/dropdown"
	"github.com/mind-engage/mindengage-quiz/internal/question"
)

// ---- choices ----

func checkOptions(c *checker, field string, opts []question.Option) (correct int) {
	c.require(len(opts) >= 2, field)
	ids := make([]string, 0, len(opts))
	for i, o := range opts {
		c.require(!blank(o.Text), fmt.Sprintf("%s[%d].text", field, i))
		if blank(o.ID) {
			c.fail(fmt.Sprintf("%s[%d].id", field, i), "option id is required")
		}
		ids = append(ids, o.ID)
		if o.IsCorrect {
			correct++
		}
	}
	for _, id := range duplicateIDs(ids) {
		c.fail(field, "option id %q is used more than once", id)
	}
	return correct
}

func checkSingleChoice(c *checker, q question.Question) {
	opts := q.Options()
	correct := checkOptions(c, "options", opts)
	c.require(correct == 1, "options.isCorrect")
	if len(opts) > 0 && correct != 1 {
		c.fail("options.isCorrect", "exactly one option must be correct, found %d", correct)
	}
}

func checkMultipleChoice(c *checker, q question.Question) {
	opts := q.Options()
	correct := checkOptions(c, "options", opts)
	c.require(correct >= 1, "options.isCorrect")

	p, ok := q.MultipleChoiceData()
	if !ok {
		return
	}
	s := p.Settings
	switch s.ScoringMethod {
	case "", question.AllOrNothing, question.PartialCredit:
	default:
		c.fail("multipleChoiceData.scoringMethod", "unknown scoring method %q", s.ScoringMethod)
	}
	if s.MinSelections < 0 {
		c.fail("multipleChoiceData.minSelections", "must not be negative")
	}
	if s.MinSelections > len(opts) && len(opts) > 0 {
		c.fail("multipleChoiceData.minSelections", "%d exceeds the %d available options", s.MinSelections, len(opts))
	}
	if s.MaxSelections != nil {
		limit := *s.MaxSelections
		if limit < 1 {
			c.fail("multipleChoiceData.maxSelections", "must be at least 1")
		}
		if limit > len(opts) {
			c.fail("multipleChoiceData.maxSelections", "%d exceeds the %d available options", limit, len(opts))
		}
		if s.MinSelections > limit {
			c.fail("multipleChoiceData.minSelections", "%d is greater than maxSelections %d", s.MinSelections, limit)
		}
		if correct > limit {
			c.fail("multipleChoiceData.maxSelections", "%d correct options cannot all be selected with maxSelections %d", correct, limit)
		}
	}
	if r := s.PartialCreditRules; r != nil && s.ScoringMethod == question.PartialCredit {
		if r.CorrectSelectionPoints <= 0 {
			c.fail("multipleChoiceData.partialCreditRules.correctSelectionPoints", "must be positive")
		}
		if r.IncorrectSelectionPenalty > 0 {
			c.fail("multipleChoiceData.partialCreditRules.incorrectSelectionPenalty", "must be zero or negative")
		}
	}
}

// ---- text input ----

func checkTextInput(c *checker, p *question.TextInputData) {
	c.require(p != nil, "textInputData")
	if p == nil {
		c.require(false, "textInputData.acceptableAnswers")
		return
	}
	nonEmpty := 0
	for _, a := range p.AcceptableAnswers {
		if !blank(a) {
			nonEmpty++
		}
	}
	c.require(nonEmpty >= 1, "textInputData.acceptableAnswers")

	if !p.InputType.Valid() {
		c.fail("textInputData.inputType", "unknown input type %q", p.InputType)
	}
	if p.InputType == question.InputNumber {
		for i, a := range p.AcceptableAnswers {
			if blank(a) {
				continue
			}
			if _, err := strconv.ParseFloat(strings.TrimSpace(a), 64); err != nil {
				c.fail(fmt.Sprintf("textInputData.acceptableAnswers[%d]", i), "%q is not a number", a)
			}
		}
	}
	if p.NumericTolerance != nil && *p.NumericTolerance < 0 {
		c.fail("textInputData.numericTolerance", "must not be negative")
	}
}

// ---- dropdown ----

func checkDropdown(c *checker, p *question.DropdownData) {
	if p == nil {
		c.require(false, "dropdownData.template")
		c.require(false, "dropdownData.dropdowns")
		return
	}
	c.require(!blank(p.Template), "dropdownData.template")
	c.require(len(p.Dropdowns) >= 1, "dropdownData.dropdowns")

	ids := make([]string, 0, len(p.Dropdowns))
	for i, f := range p.Dropdowns {
		field := fmt.Sprintf("dropdownData.dropdowns[%d]", i)
		if blank(f.ID) {
			c.fail(field+".id", "dropdown id is required")
		}
		ids = append(ids, f.ID)
		c.require(!blank(f.Label), field+".label")

		filled, correct := 0, 0
		for _, o := range f.Options {
			if !blank(o.Text) {
				filled++
			}
			if o.IsCorrect {
				correct++
			}
		}
		c.require(len(f.Options) >= 2 && filled == len(f.Options), field+".options")
		c.require(correct >= 1, field+".options.isCorrect")
	}
	for _, id := range duplicateIDs(ids) {
		c.fail("dropdownData.dropdowns", "dropdown id %q is used more than once", id)
	}
	for _, u := range dropdown.Unresolved(p.Template, p.Dropdowns) {
		c.fail("dropdownData.template", "placeholder {%s} does not match any dropdown", u.ID)
	}
	if p.Scoring.PointsPerDropdown < 0 {
		c.fail("dropdownData.scoring.pointsPerDropdown", "must not be negative")
	}
	if p.Scoring.PenaltyPerIncorrect < 0 {
		c.fail("dropdownData.scoring.penaltyPerIncorrect", "must not be negative")
	}
}

// ---- ordering / matching content ----

func validContent(ct question.Content) (ok bool, known bool) {
	switch ct.Type {
	case "", question.ContentText:
		return !blank(ct.Text), true
	case question.ContentImage:
		return !blank(ct.ImageURL) && !blank(ct.AltText), true
	case question.ContentMixed:
		return !blank(ct.Text) || !blank(ct.ImageURL), true
	}
	return false, false
}

func checkContent(c *checker, field string, ct question.Content) bool {
	ok, known := validContent(ct)
	if !known {
		c.fail(field+".type", "unknown content type %q", ct.Type)
	}
	c.require(ok, field)
	return ok
}

// ---- ordering ----

func checkOrdering(c *checker, p *question.OrderingData) {
	if p == nil {
		c.require(false, "orderingData.instructions")
		c.require(false, "orderingData.items")
		return
	}
	c.require(!blank(p.Instructions), "orderingData.instructions")
	c.require(len(p.Items) >= question.MinOrderingItems, "orderingData.items")
	if len(p.Items) > question.MaxOrderingItems {
		c.fail("orderingData.items", "at most %d items are allowed, found %d", question.MaxOrderingItems, len(p.Items))
	}

	itemsOK := true
	ids := make([]string, 0, len(p.Items))
	for i, it := range p.Items {
		field := fmt.Sprintf("orderingData.items[%d]", i)
		c.require(!blank(it.ID), field+".id")
		contentOK := checkContent(c, field+".content", it.Content)
		c.require(it.CorrectPosition > 0, field+".correctPosition")
		if blank(it.ID) || !contentOK || it.CorrectPosition <= 0 {
			itemsOK = false
		}
		ids = append(ids, it.ID)
	}
	for _, id := range duplicateIDs(ids) {
		c.fail("orderingData.items", "item id %q is used more than once", id)
	}

	// positions are only compared once every item is individually valid
	if itemsOK && len(p.Items) > 0 {
		positions := make([]int, len(p.Items))
		for i, it := range p.Items {
			positions[i] = it.CorrectPosition
		}
		sort.Ints(positions)
		for i, pos := range positions {
			if pos != i+1 {
				c.fail("orderingData.items.correctPosition",
					"positions must be 1..%d without gaps or duplicates, got %v", len(positions), positions)
				break
			}
		}
	}
}

// ---- matching ----

func checkMatching(c *checker, p *question.MatchingData) {
	if p == nil {
		for _, f := range []string{"matchingData.instructions", "matchingData.leftItems", "matchingData.rightItems", "matchingData.correctMatches"} {
			c.require(false, f)
		}
		return
	}
	c.require(!blank(p.Instructions), "matchingData.instructions")
	left := checkMatchColumn(c, "matchingData.leftItems", p.LeftItems)
	right := checkMatchColumn(c, "matchingData.rightItems", p.RightItems)
	c.require(len(p.CorrectMatches) >= 1, "matchingData.correctMatches")

	usedLeft := map[string]bool{}
	usedRight := map[string]bool{}
	for i, m := range p.CorrectMatches {
		field := fmt.Sprintf("matchingData.correctMatches[%d]", i)
		if !left[m.LeftID] {
			c.fail(field+".leftId", "unknown left item %q", m.LeftID)
		}
		if !right[m.RightID] {
			c.fail(field+".rightId", "unknown right item %q", m.RightID)
		}
		if usedLeft[m.LeftID] {
			c.fail(field+".leftId", "left item %q is matched more than once", m.LeftID)
		}
		if usedRight[m.RightID] {
			c.fail(field+".rightId", "right item %q is matched more than once", m.RightID)
		}
		usedLeft[m.LeftID] = true
		usedRight[m.RightID] = true
	}

	s := p.Scoring
	if s.PointsPerMatch < 0 {
		c.fail("matchingData.scoring.pointsPerMatch", "must not be negative")
	}
	if s.PenaltyPerIncorrect < 0 {
		c.fail("matchingData.scoring.penaltyPerIncorrect", "must not be negative")
	}
}

func checkMatchColumn(c *checker, field string, items []question.MatchItem) map[string]bool {
	c.require(len(items) >= 2, field)
	ids := make(map[string]bool, len(items))
	list := make([]string, 0, len(items))
	for i, it := range items {
		f := fmt.Sprintf("%s[%d]", field, i)
		c.require(!blank(it.ID), f+".id")
		checkContent(c, f+".content", it.Content)
		ids[it.ID] = true
		list = append(list, it.ID)
	}
	for _, id := range duplicateIDs(list) {
		c.fail(field, "item id %q is used more than once", id)
	}
	return ids
}
