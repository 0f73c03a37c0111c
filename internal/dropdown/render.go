// Package dropdown turns a DROPDOWN prompt template into an ordered list of
// literal text and interactive field segments.
package dropdown

import (
	"fmt"
	"regexp"

	"github.com/mind-engage/mindengage-quiz/internal/question"
)

var placeholderRe = regexp.MustCompile(`\{([A-Za-z0-9_-]+)\}`)

type SegmentKind string

const (
	KindLiteral    SegmentKind = "literal"
	KindField      SegmentKind = "field"
	KindUnresolved SegmentKind = "unresolved"
)

// Segment is one piece of a rendered template. For KindField, Field and
// Selected are set; for KindUnresolved, Text holds the raw token.
type Segment struct {
	Kind     SegmentKind             `json:"kind"`
	Text     string                  `json:"text,omitempty"`
	FieldID  string                  `json:"fieldId,omitempty"`
	Field    *question.DropdownField `json:"field,omitempty"`
	Selected string                  `json:"selected,omitempty"`
}

// UnresolvedPlaceholder marks a template token with no matching field.
type UnresolvedPlaceholder struct {
	ID     string `json:"id"`
	Offset int    `json:"offset"` // byte offset of the token in the template
}

func (u UnresolvedPlaceholder) Error() string {
	return fmt.Sprintf("placeholder {%s} at offset %d does not match any dropdown", u.ID, u.Offset)
}

// Selections maps a dropdown field id to the chosen option id.
type Selections map[string]string

type Rendered struct {
	Segments []Segment              `json:"segments"`
	Errors   []UnresolvedPlaceholder `json:"errors,omitempty"`
}

func (r Rendered) OK() bool { return len(r.Errors) == 0 }

// Render splits template on {identifier} tokens. Tokens that resolve to a
// field become field segments bound to its options and current selection;
// the rest stay visible as unresolved segments and are reported in Errors.
func Render(template string, fields []question.DropdownField, sel Selections) Rendered {
	byID := make(map[string]int, len(fields))
	for i, f := range fields {
		if _, dup := byID[f.ID]; !dup {
			byID[f.ID] = i
		}
	}

	out := Rendered{Segments: []Segment{}}
	last := 0
	for _, m := range placeholderRe.FindAllStringSubmatchIndex(template, -1) {
		start, end := m[0], m[1]
		id := template[m[2]:m[3]]
		if start > last {
			out.Segments = append(out.Segments, Segment{Kind: KindLiteral, Text: template[last:start]})
		}
		if i, ok := byID[id]; ok {
			f := fields[i]
			out.Segments = append(out.Segments, Segment{
				Kind:     KindField,
				FieldID:  id,
				Field:    &f,
				Selected: sel[id],
			})
		} else {
			out.Segments = append(out.Segments, Segment{Kind: KindUnresolved, Text: template[start:end], FieldID: id})
			out.Errors = append(out.Errors, UnresolvedPlaceholder{ID: id, Offset: start})
		}
		last = end
	}
	if last < len(template) {
		out.Segments = append(out.Segments, Segment{Kind: KindLiteral, Text: template[last:]})
	}
	return out
}

// RenderQuestion renders the DROPDOWN payload of q in the given language.
func RenderQuestion(q question.Question, lang string, sel Selections) (Rendered, bool) {
	p, ok := q.DropdownData()
	if !ok {
		return Rendered{}, false
	}
	return Render(p.DisplayTemplate(lang), p.Dropdowns, sel), true
}

// Placeholders lists identifiers in template order, duplicates included.
func Placeholders(template string) []string {
	matches := placeholderRe.FindAllStringSubmatch(template, -1)
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, m[1])
	}
	return out
}

// Unresolved returns the placeholders in template that match no field id.
func Unresolved(template string, fields []question.DropdownField) []UnresolvedPlaceholder {
	return Render(template, fields, nil).Errors
}
