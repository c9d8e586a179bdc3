// Package htmlsanitize cleans user-supplied HTML such as product descriptions.
package htmlsanitize

import (
	"html/template"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// policy allows ordinary formatting, lists, links and tables.
var policy = func() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowAttrs("class").OnElements("table", "tr", "td", "th", "p", "span")
	return p
}()

// strict removes every tag.
var strict = bluemonday.StrictPolicy()

// Sanitize returns s with unsafe elements and attributes removed.
func Sanitize(s string) string {
	if s == "" {
		return ""
	}
	return policy.Sanitize(s)
}

// ToHTML sanitizes s and marks the result safe for templates.
func ToHTML(s string) template.HTML {
	return template.HTML(Sanitize(s)) // #nosec G203 -- sanitized above
}

// PlainText strips all markup, for list summaries and titles.
func PlainText(s string) string {
	return strings.TrimSpace(strict.Sanitize(s))
}
