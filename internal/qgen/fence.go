package qgen

import (
	"regexp"
	"strings"
)

var (
	openFenceRegex  = regexp.MustCompile("^```[a-zA-Z]*[ \t]*\r?\n?")
	closeFenceRegex = regexp.MustCompile("\r?\n?[ \t]*```$")
)

// stripCodeFence removes an optional Markdown code fence (three backticks,
// optionally tagged with a language) wrapping the text. The service is
// asked for bare JSON but does not always omit the fence.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = openFenceRegex.ReplaceAllString(s, "")
	s = closeFenceRegex.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}
