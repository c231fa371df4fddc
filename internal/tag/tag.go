// Package tag implements the inline tag wire format embedded in document
// text: "#" followed by one or more non-whitespace characters, optionally
// carrying an underscore-separated span suffix "+N" that extends the tag
// over the next N elements (e.g. "#goals_+2").
package tag

import (
	"regexp"
	"strconv"
	"strings"
)

// Pattern matches one tag token. Tags never contain whitespace.
var Pattern = regexp.MustCompile(`#\S+`)

var spaceRuns = regexp.MustCompile(`[ \t]{2,}`)

// Parse splits a matched token into its tag identity and declared span
// width. The token is split at the first underscore: the prefix is the tag,
// and a "+N" suffix with positive integer N declares a span over the next N
// elements. A suffix that does not parse as a positive integer demotes the
// token to a plain single-element tag under the prefix.
func Parse(token string) (tag string, span int) {
	idx := strings.Index(token, "_")
	if idx < 0 {
		return token, 0
	}
	tag = token[:idx]
	suffix := token[idx+1:]
	if !strings.HasPrefix(suffix, "+") {
		return tag, 0
	}
	n, err := strconv.Atoi(suffix[1:])
	if err != nil || n <= 0 {
		return tag, 0
	}
	return tag, n
}

// Find returns all tag tokens in the text, in order
func Find(text string) []string {
	return Pattern.FindAllString(text, -1)
}

// Strip removes every tag token from the text and tidies the leftover
// whitespace
func Strip(text string) string {
	out := Pattern.ReplaceAllString(text, "")
	out = spaceRuns.ReplaceAllString(out, " ")
	return strings.TrimSpace(out)
}
