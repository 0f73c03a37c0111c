package question

import (
	"cmp"
	"hash/fnv"
	"slices"
)

// Redacted returns a deep copy that is safe to hand to students: every field
// that reveals the correct answer is cleared.
func (q Question) Redacted() Question {
	out := q
	switch p := q.Payload.(type) {
	case *SingleChoiceData:
		if p != nil {
			out.Payload = &SingleChoiceData{Options: redactOptions(p.Options)}
		}
	case *MultipleChoiceData:
		if p != nil {
			s := p.Settings
			if s.MaxSelections != nil {
				v := *s.MaxSelections
				s.MaxSelections = &v
			}
			// scoring rules stay hidden; min/max selections drive the UI
			s.PartialCreditRules = nil
			out.Payload = &MultipleChoiceData{Options: redactOptions(p.Options), Settings: s}
		}
	case *TextInputData:
		if p != nil {
			out.Payload = &TextInputData{InputType: p.InputType}
		}
	case *DropdownData:
		if p != nil {
			c := *p
			c.Dropdowns = make([]DropdownField, len(p.Dropdowns))
			for i, f := range p.Dropdowns {
				f.Options = redactOptions(f.Options)
				c.Dropdowns[i] = f
			}
			out.Payload = &c
		}
	case *OrderingData:
		if p != nil {
			c := *p
			c.Items = scrambleItems(q.ID, p)
			for i := range c.Items {
				c.Items[i].CorrectPosition = 0
			}
			out.Payload = &c
		}
	case *MatchingData:
		if p != nil {
			c := *p
			c.LeftItems = append([]MatchItem(nil), p.LeftItems...)
			c.RightItems = append([]MatchItem(nil), p.RightItems...)
			c.CorrectMatches = nil
			out.Payload = &c
		}
	}
	return out
}

func redactOptions(in []Option) []Option {
	if in == nil {
		return nil
	}
	out := make([]Option, len(in))
	for i, o := range in {
		o.IsCorrect = false
		out[i] = o
	}
	return out
}

// scrambleItems orders items by a hash of question and item id, so the
// student view never follows authored order. A result that still equals the
// correct order is rotated by one.
func scrambleItems(qid string, d *OrderingData) []OrderingItem {
	items := slices.Clone(d.Items)
	key := func(it OrderingItem) uint64 {
		h := fnv.New64a()
		h.Write([]byte(qid))
		h.Write([]byte{0})
		h.Write([]byte(it.ID))
		return h.Sum64()
	}
	slices.SortStableFunc(items, func(a, b OrderingItem) int {
		return cmp.Compare(key(a), key(b))
	})
	if len(items) > 1 && slices.Equal(itemIDs(items), d.CorrectOrder()) {
		items = append(items[1:], items[0])
	}
	return items
}

func itemIDs(items []OrderingItem) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}
