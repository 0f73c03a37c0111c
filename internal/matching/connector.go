// Package matching records a student's left-to-right connections for a
// MATCHING question and keeps them one-to-one by construction.
package matching

import "github.com/mind-engage/mindengage-quiz/internal/question"

// Outcome describes what a click did to the connection set.
type Outcome string

const (
	OutcomeNone     Outcome = "none"     // selection changed or click ignored
	OutcomeAdded    Outcome = "added"    // a connection was created
	OutcomeRemoved  Outcome = "removed"  // an existing connection was toggled off
	OutcomeRejected Outcome = "rejected" // one side is already connected elsewhere
)

type Connector struct {
	left        map[string]bool
	right       map[string]bool
	connections []question.Match
	selected    string // empty means no left item is selected
	frozen      bool
}

// New builds a connector for the items of d. Clicks on ids that are not part
// of d are ignored.
func New(d *question.MatchingData) *Connector {
	c := &Connector{
		left:  make(map[string]bool, len(d.LeftItems)),
		right: make(map[string]bool, len(d.RightItems)),
	}
	for _, it := range d.LeftItems {
		c.left[it.ID] = true
	}
	for _, it := range d.RightItems {
		c.right[it.ID] = true
	}
	return c
}

// Restore resumes a connector from saved connections. Entries that reference
// unknown ids or would break the one-to-one rule are dropped.
func Restore(d *question.MatchingData, saved []question.Match) *Connector {
	c := New(d)
	for _, m := range saved {
		if !c.left[m.LeftID] || !c.right[m.RightID] {
			continue
		}
		if c.leftConnected(m.LeftID) || c.rightConnected(m.RightID) {
			continue
		}
		c.connections = append(c.connections, m)
	}
	return c
}

// ClickLeft selects a left item, or deselects it when it is already selected.
func (c *Connector) ClickLeft(id string) Outcome {
	if c.frozen || !c.left[id] {
		return OutcomeNone
	}
	if c.selected == id {
		c.selected = ""
	} else {
		c.selected = id
	}
	return OutcomeNone
}

// ClickRight connects the selected left item to id, removes that connection
// if it already exists, or silently rejects it when either side is taken.
// A rejected click keeps the current selection.
func (c *Connector) ClickRight(id string) Outcome {
	if c.frozen || c.selected == "" || !c.right[id] {
		return OutcomeNone
	}
	l := c.selected
	for i, m := range c.connections {
		if m.LeftID == l && m.RightID == id {
			c.connections = append(c.connections[:i], c.connections[i+1:]...)
			c.selected = ""
			return OutcomeRemoved
		}
	}
	if c.leftConnected(l) || c.rightConnected(id) {
		return OutcomeRejected
	}
	c.connections = append(c.connections, question.Match{LeftID: l, RightID: id})
	c.selected = ""
	return OutcomeAdded
}

// Clear drops every connection and the selection.
func (c *Connector) Clear() {
	if c.frozen {
		return
	}
	c.connections = nil
	c.selected = ""
}

// Freeze turns every later click into a no-op.
func (c *Connector) Freeze() {
	c.frozen = true
	c.selected = ""
}

func (c *Connector) Frozen() bool { return c.frozen }

// Selected returns the selected left id, if any.
func (c *Connector) Selected() (string, bool) {
	return c.selected, c.selected != ""
}

// Connections returns a copy in the order they were made.
func (c *Connector) Connections() []question.Match {
	out := make([]question.Match, len(c.connections))
	copy(out, c.connections)
	return out
}

// partnerOfLeft returns the right id connected to a left id.
func (c *Connector) partnerOfLeft(leftID string) (string, bool) {
	for _, m := range c.connections {
		if m.LeftID == leftID {
			return m.RightID, true
		}
	}
	return "", false
}

func (c *Connector) leftConnected(id string) bool {
	_, ok := c.partnerOfLeft(id)
	return ok
}

func (c *Connector) rightConnected(id string) bool {
	for _, m := range c.connections {
		if m.RightID == id {
			return true
		}
	}
	return false
}
