package segment

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// A predicate is one named header rule. Predicates are evaluated in a fixed
// order with short-circuit on the first match, and each rule is line-local:
// it never looks at neighboring lines.
type predicate struct {
	name  string
	match func(line string) bool
}

// numberedRe matches a numbered list marker followed by text ("1. 목표").
var numberedRe = regexp.MustCompile(`^\d+\.\s+\S`)

// letterRe matches a single alphabetic or Hangul-syllable marker followed by
// a period and text ("가. 개요", "A. Overview").
var letterRe = regexp.MustCompile(`^[A-Za-z가-힣]\.\s+\S`)

// markdownRe matches a markdown-style heading ("## 결론").
var markdownRe = regexp.MustCompile(`^#{1,6}\s+\S`)

// bracketRe matches a line fully wrapped in [] or 【】 bracket pairs.
var bracketRe = regexp.MustCompile(`^(\[.+\]|【.+】)$`)

// sentenceEndRe matches a line ending in terminal punctuation, optionally
// followed by trailing closing quotes or brackets.
var sentenceEndRe = regexp.MustCompile(`[.!?。!?]["')\]」』]*$`)

// headerPredicates builds the ordered rule chain for the given settings.
// maxLen bounds the colon and keyword rules in runes, and it distributes
// across every keyword alternative: a long line is never a keyword header
// no matter which keyword it contains. The keyword rule additionally skips
// sentence-like lines, so a body sentence that merely mentions a keyword
// ("달성할 목표는 매출 증가입니다.") is never promoted to a header.
func headerPredicates(maxLen int, keywords []string) []predicate {
	lowered := make([]string, len(keywords))
	for i, kw := range keywords {
		lowered[i] = strings.ToLower(kw)
	}
	short := func(line string) bool {
		return utf8.RuneCountInString(line) < maxLen
	}
	return []predicate{
		{name: "numbered", match: numberedRe.MatchString},
		{name: "lettered", match: letterRe.MatchString},
		{name: "markdown", match: markdownRe.MatchString},
		{name: "colon", match: func(line string) bool {
			return short(line) && strings.HasSuffix(line, ":")
		}},
		{name: "bracket", match: bracketRe.MatchString},
		{name: "keyword", match: func(line string) bool {
			if !short(line) || sentenceEndRe.MatchString(line) {
				return false
			}
			l := strings.ToLower(line)
			for _, kw := range lowered {
				if kw != "" && strings.Contains(l, kw) {
					return true
				}
			}
			return false
		}},
	}
}
