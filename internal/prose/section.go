package prose

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	// maxSectionLength caps a section body that runs to the end of the
	// document because no following heading closes it.
	maxSectionLength = 4000

	// minParagraphLength is the cleaned length a paragraph has to exceed
	// to be used as fallback description.
	minParagraphLength = 40
)

var (
	headingPattern   = regexp.MustCompile(`^(=+)[ \t]+(.+?)[ \t]*$`)
	blockDelimiter   = regexp.MustCompile(`^(-{4,}|\.{4,}|\+{4,}|/{4,})[ \t]*$`)
	paragraphSplit   = regexp.MustCompile(`\n[ \t]*\n`)
	directivePattern = regexp.MustCompile(`^(\[|:|//|-{4}|\.{4}|\*{4}|\+{4}|={4}|[a-z]+::|\.[A-Za-z])`)
)

// heading is a section title line of a document.
type heading struct {
	level     int
	title     string
	lineStart int // offset of the heading line
	bodyStart int // offset of the first byte after the heading line
}

// parseHeadings returns all headings of the document in order. Lines
// inside delimited listing or literal blocks are not considered.
func parseHeadings(text string) []heading {
	var (
		result  []heading
		inBlock string
	)

	offset := 0
	for offset < len(text) {
		end := strings.IndexByte(text[offset:], '\n')
		next := len(text)
		line := text[offset:]
		if end >= 0 {
			line = text[offset : offset+end]
			next = offset + end + 1
		}
		line = strings.TrimSuffix(line, "\r")

		if delim := blockDelimiter.FindStringSubmatch(line); delim != nil {
			switch inBlock {
			case "":
				inBlock = delim[1]
			case delim[1]:
				inBlock = ""
			}
		} else if inBlock == "" {
			if match := headingPattern.FindStringSubmatch(line); match != nil {
				result = append(result, heading{
					level:     len(match[1]),
					title:     match[2],
					lineStart: offset,
					bodyStart: next,
				})
			}
		}

		offset = next
	}
	return result
}

// sectionBody returns the text between heading i and the next heading of
// the same or a shallower level. Without such a heading the body extends
// to the end of the document, capped at maxSectionLength bytes.
func sectionBody(text string, headings []heading, i int) string {
	h := headings[i]
	for _, next := range headings[i+1:] {
		if next.level <= h.level {
			return text[h.bodyStart:next.lineStart]
		}
	}

	body := text[h.bodyStart:]
	if len(body) <= maxSectionLength {
		return body
	}
	cut := maxSectionLength
	for cut > 0 && !utf8.RuneStart(body[cut]) {
		cut--
	}
	return body[:cut]
}

// firstParagraph returns the first cleaned paragraph of the body that is
// longer than minParagraphLength and is neither a table nor a directive.
func firstParagraph(body string) (string, bool) {
	for _, para := range paragraphSplit.Split(body, -1) {
		para = strings.TrimSpace(para)
		if para == "" || looksTabular(para) || directivePattern.MatchString(para) {
			continue
		}
		cleaned := Clean(para)
		if len(cleaned) > minParagraphLength {
			return cleaned, true
		}
	}
	return "", false
}

func looksTabular(para string) bool {
	return strings.HasPrefix(para, "|") || strings.Contains(para, "|===")
}
