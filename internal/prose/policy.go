package prose

import (
	"fmt"
	"strings"
)

// Policy decides how a candidate description is combined with an entry
// that may already exist for the same name.
type Policy int

// Merge policies.
const (
	// Append adds the text to an existing entry, separated by a space.
	Append Policy = iota
	// LongerWins replaces an existing entry only with strictly longer text.
	LongerWins
	// FirstWins writes only if no entry exists yet.
	FirstWins
	// Replace always overwrites an existing entry.
	Replace
)

type mergeFunc func(existing string, exists bool, text string) string

var mergeFuncs = map[Policy]mergeFunc{
	Append: func(existing string, exists bool, text string) string {
		if !exists || existing == "" {
			return text
		}
		return existing + " " + text
	},
	LongerWins: func(existing string, exists bool, text string) string {
		if exists && len(text) <= len(existing) {
			return existing
		}
		return text
	},
	FirstWins: func(existing string, exists bool, text string) string {
		if exists {
			return existing
		}
		return text
	},
	Replace: func(_ string, _ bool, text string) string {
		return text
	},
}

func (p Policy) String() string {
	switch p {
	case Append:
		return "append"
	case LongerWins:
		return "longer-wins"
	case FirstWins:
		return "first-wins"
	case Replace:
		return "replace"
	default:
		return fmt.Sprintf("policy(%d)", int(p))
	}
}

// Candidate is a description proposed by a strategy.
type Candidate struct {
	Name   string
	Text   string
	Policy Policy
}

// Descriptions maps lower-cased names to description text.
type Descriptions map[string]string

// Apply merges the candidate into the map according to its policy.
// Candidates with empty text are ignored.
func (d Descriptions) Apply(c Candidate) {
	if c.Name == "" || c.Text == "" {
		return
	}
	merge, ok := mergeFuncs[c.Policy]
	if !ok {
		panic(fmt.Sprintf("unsupported merge policy %s", c.Policy))
	}
	existing, exists := d[c.Name]
	d[c.Name] = merge(existing, exists, c.Text)
}

// Lookup returns the description for name, matched case-insensitively.
func (d Descriptions) Lookup(name string) (string, bool) {
	text, ok := d[strings.ToLower(name)]
	return text, ok
}
