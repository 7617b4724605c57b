package prose

import (
	"strings"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

const sectionDoc = `= Manual

== Chapter

=== ADD

Body of add.

==== Encoding

Nested body.

=== SUB

Body of sub.

== Next Chapter

----
== not a heading
----

Tail.
`

func TestParseHeadings(t *testing.T) {
	headings := parseHeadings(sectionDoc)

	var titles []string
	var levels []int
	for _, h := range headings {
		titles = append(titles, h.title)
		levels = append(levels, h.level)
	}
	assert.Equal(t, []string{"Manual", "Chapter", "ADD", "Encoding", "SUB", "Next Chapter"}, titles)
	assert.Equal(t, []int{1, 2, 3, 4, 3, 2}, levels)
}

func TestSectionBody(t *testing.T) {
	headings := parseHeadings(sectionDoc)

	add := sectionBody(sectionDoc, headings, 2)
	assert.Equal(t, "\nBody of add.\n\n==== Encoding\n\nNested body.\n\n", add)

	sub := sectionBody(sectionDoc, headings, 4)
	assert.Equal(t, "\nBody of sub.\n\n", sub)

	last := sectionBody(sectionDoc, headings, 5)
	assert.True(t, strings.Contains(last, "== not a heading"))
	assert.True(t, strings.HasSuffix(last, "Tail.\n"))
}

func TestSectionBodyCap(t *testing.T) {
	doc := "== ADD\n" + strings.Repeat("word ", 2000)
	headings := parseHeadings(doc)

	body := sectionBody(doc, headings, 0)
	assert.Equal(t, maxSectionLength, len(body))

	// a following heading removes the cap
	doc += "\n== SUB\n"
	headings = parseHeadings(doc)
	body = sectionBody(doc, headings, 0)
	assert.Equal(t, 10001, len(body))
}

func TestSectionBodyCapRuneBoundary(t *testing.T) {
	doc := "== ADD\n" + strings.Repeat("a", maxSectionLength-1) + "é" + "tail"
	headings := parseHeadings(doc)

	body := sectionBody(doc, headings, 0)
	assert.Equal(t, maxSectionLength-1, len(body))
}

func TestFirstParagraph(t *testing.T) {
	body := strings.Join([]string{
		"",
		"Too short.",
		"",
		"|===",
		"| a table row that is definitely long enough to count | x",
		"|===",
		"",
		"[NOTE]",
		"====",
		"An admonition block that is long enough to be a paragraph.",
		"====",
		"",
		"include::other.adoc[leveloffset=+1]",
		"",
		"The *first* real paragraph is long enough to be selected.",
		"",
		"The second paragraph is also long enough but comes later.",
	}, "\n")

	para, ok := firstParagraph(body)
	assert.True(t, ok)
	assert.Equal(t, "The first real paragraph is long enough to be selected.", para)

	_, ok = firstParagraph("short\n\n|=== table |===")
	assert.False(t, ok)
}
