package prose

import (
	"regexp"
	"strings"
)

type rewrite struct {
	pattern     *regexp.Regexp
	replacement string
}

// cleanRules are applied in order on every pass.
var cleanRules = []rewrite{
	// footnotes are dropped with their content
	{regexp.MustCompile(`footnote:[A-Za-z0-9_-]*\[[^\]]*\]`), ""},

	// attribute entries and block attribute lines
	{regexp.MustCompile(`(?m)^[ \t]*:!?[A-Za-z0-9_-]+!?:.*$`), ""},
	{regexp.MustCompile(`(?m)^[ \t]*\[[^\]\n]*\][ \t]*$`), ""},

	// annotated spans keep their text
	{regexp.MustCompile(`\[[^\]\n]*\]#([^#]*)#`), "${1}"},

	// anchor definitions
	{regexp.MustCompile(`\[\[[^\]]*\]\]`), ""},
	{regexp.MustCompile(`\[#[A-Za-z0-9_:.\-]+\]`), ""},
	{regexp.MustCompile(`anchor:[A-Za-z0-9_:.\-]+\[[^\]]*\]`), ""},

	// cross references keep an explicit label only
	{regexp.MustCompile(`<<[^,>]+,\s*([^>]+)>>`), "${1}"},
	{regexp.MustCompile(`<<[^>]*>>`), ""},
	{regexp.MustCompile(`xref:[^\[\s]+\[([^\]]*)\]`), "${1}"},

	// emphasis, bold and code
	{regexp.MustCompile(`\*\*([^*]+)\*\*`), "${1}"},
	{regexp.MustCompile(`__([^_]+)__`), "${1}"},
	{regexp.MustCompile("`\\+([^`]*)\\+`"), "${1}"},
	{regexp.MustCompile("`([^`]*)`"), "${1}"},
	{regexp.MustCompile(`(^|[^\w*])\*([^*\s](?:[^*]*[^*\s])?)\*($|[^\w*])`), "${1}${2}${3}"},
	{regexp.MustCompile(`(^|[^\w_])_([^_\s](?:[^_]*[^_\s])?)_($|[^\w_])`), "${1}${2}${3}"},

	{regexp.MustCompile(`\s+`), " "},
}

// Clean strips markup from an extracted span and normalizes whitespace.
// The rules are repeated until the text no longer changes, which makes
// Clean idempotent.
func Clean(text string) string {
	for {
		cleaned := text
		for _, rule := range cleanRules {
			cleaned = rule.pattern.ReplaceAllString(cleaned, rule.replacement)
		}
		cleaned = strings.TrimSpace(cleaned)
		if cleaned == text {
			return cleaned
		}
		text = cleaned
	}
}
