package prose

import (
	"regexp"
	"strings"
)

// Target selects the description map that a strategy writes into.
type Target int

// Description maps.
const (
	Instructions Target = iota
	CSRs
)

// Strategy is a single extraction heuristic. Extract is a pure function
// of the document and returns its candidates in document order.
type Strategy struct {
	Name    string
	Target  Target
	Extract func(doc Document) []Candidate
}

const minProseLength = 30

var (
	normativePattern = regexp.MustCompile(`\[#norm:([A-Za-z0-9_.]+?)_(op|desc|enc|behavior)\]#([^#]*)#`)
	anySpanPattern   = regexp.MustCompile(`\[#norm:[^\]]*\]#([^#]*)#`)

	mnemonicTitle = regexp.MustCompile(`^(?:[A-Z][A-Z0-9]*(?:\.[A-Z0-9]+)*|[a-z][a-z0-9]*(?:\.[a-z0-9]+)*)$`)
	registerTitle = regexp.MustCompile(`^[a-z][a-z0-9]*$`)
	registerParen = regexp.MustCompile("\\(([^()]*)\\)\\s*$")
	quotedName    = regexp.MustCompile("`([a-z][a-z0-9]*)`")

	prosePattern = regexp.MustCompile("`?\\b([A-Z][A-Z0-9]*(?:\\.[A-Z0-9]+)*)\\b`?\\s+" +
		`(?i:performs|computes|loads|stores|branches|jumps|adds|subtracts|multiplies|divides|` +
		`shifts|compares|sets|writes|reads|moves|copies|converts|returns|transfers|atomically|` +
		`swaps|generates|provides|calculates|places|takes)\b[^.]*\.`)

	registerProsePattern = regexp.MustCompile("(?i:\\bthe)\\s+`?([a-z][a-z0-9]*)`?\\s+" +
		`(?i:csr|register)\s+(?i:is|contains|controls)\b[^.]*\.`)
)

// DefaultStrategies returns the extraction strategies in the order they
// are applied to every document.
func DefaultStrategies() []Strategy {
	return []Strategy{
		{Name: "normative-anchor", Target: Instructions, Extract: normativeAnchors},
		{Name: "section-heading", Target: Instructions, Extract: instructionSections},
		{Name: "prose-pattern", Target: Instructions, Extract: instructionProse},
		{Name: "csr-section-heading", Target: CSRs, Extract: registerSections},
		{Name: "csr-inline-prose", Target: CSRs, Extract: registerProse},
	}
}

// normativeAnchors collects [#norm:<name>_<kind>]#...# spans. Spans are
// cumulative, all spans of a name are appended to each other.
func normativeAnchors(doc Document) []Candidate {
	var result []Candidate
	for _, match := range normativePattern.FindAllStringSubmatch(doc.Text, -1) {
		result = append(result, Candidate{
			Name:   strings.ToLower(match[1]),
			Text:   Clean(match[3]),
			Policy: Append,
		})
	}
	return result
}

// instructionSections uses sections titled with a bare mnemonic.
func instructionSections(doc Document) []Candidate {
	headings := parseHeadings(doc.Text)

	var result []Candidate
	for i, h := range headings {
		if !mnemonicTitle.MatchString(h.title) {
			continue
		}
		body := sectionBody(doc.Text, headings, i)
		name := strings.ToLower(h.title)
		result = append(result, sectionCandidates(name, body, LongerWins)...)
	}
	return result
}

// instructionProse finds sentences like "ADD performs ...".
func instructionProse(doc Document) []Candidate {
	var result []Candidate
	for _, match := range prosePattern.FindAllStringSubmatchIndex(doc.Text, -1) {
		text := Clean(doc.Text[match[0]:match[1]])
		if len(text) <= minProseLength {
			continue
		}
		result = append(result, Candidate{
			Name:   strings.ToLower(doc.Text[match[2]:match[3]]),
			Text:   text,
			Policy: FirstWins,
		})
	}
	return result
}

// registerSections uses sections titled with a register name, either bare
// or as back-quoted names in a trailing parenthetical.
func registerSections(doc Document) []Candidate {
	headings := parseHeadings(doc.Text)

	var result []Candidate
	for i, h := range headings {
		names := registerNames(h.title)
		if len(names) == 0 {
			continue
		}
		body := sectionBody(doc.Text, headings, i)
		for _, name := range names {
			result = append(result, sectionCandidates(name, body, Replace)...)
		}
	}
	return result
}

// registerProse finds sentences like "The mtvec register contains ...".
func registerProse(doc Document) []Candidate {
	var result []Candidate
	for _, match := range registerProsePattern.FindAllStringSubmatch(doc.Text, -1) {
		result = append(result, Candidate{
			Name:   strings.ToLower(match[1]),
			Text:   Clean(match[0]),
			Policy: FirstWins,
		})
	}
	return result
}

// sectionCandidates returns the concatenated normative spans of the body
// using the given policy, or the first usable paragraph that only fills a
// missing entry.
func sectionCandidates(name, body string, spanPolicy Policy) []Candidate {
	spans := anySpanPattern.FindAllStringSubmatch(body, -1)
	if len(spans) > 0 {
		parts := make([]string, 0, len(spans))
		for _, span := range spans {
			if text := Clean(span[1]); text != "" {
				parts = append(parts, text)
			}
		}
		return []Candidate{{Name: name, Text: strings.Join(parts, " "), Policy: spanPolicy}}
	}

	para, ok := firstParagraph(body)
	if !ok {
		return nil
	}
	return []Candidate{{Name: name, Text: para, Policy: FirstWins}}
}

func registerNames(title string) []string {
	if registerTitle.MatchString(title) {
		return []string{title}
	}
	paren := registerParen.FindStringSubmatch(title)
	if paren == nil {
		return nil
	}
	var names []string
	for _, match := range quotedName.FindAllStringSubmatch(paren[1], -1) {
		names = append(names, match[1])
	}
	return names
}
