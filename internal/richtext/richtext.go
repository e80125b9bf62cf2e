// Package richtext cleans the HTML produced by the console's WYSIWYG editor
// before it is stored.
package richtext

import (
	"html"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var (
	editorPolicy = newEditorPolicy()
	textPolicy   = bluemonday.StrictPolicy()
)

// Editor output carries its alignment, indent and font choices as ql-* classes.
var editorClass = regexp.MustCompile(`^(ql-[a-z0-9-]+)(\s+ql-[a-z0-9-]+)*$`)

func newEditorPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowAttrs("class").Matching(editorClass).Globally()
	p.AllowElements("s", "u", "sub", "sup")
	p.RequireNoFollowOnLinks(true)
	p.AddTargetBlankToFullyQualifiedLinks(true)
	return p
}

// Sanitize strips scripts, event handlers and unknown markup, keeping the
// formatting the editor emits.
func Sanitize(s string) string {
	return strings.TrimSpace(editorPolicy.Sanitize(s))
}

// IsBlank reports whether s has no visible content once sanitised. The
// editor's empty document "<p><br></p>" is blank.
func IsBlank(s string) bool {
	clean := Sanitize(s)
	if strings.Contains(clean, "<img") {
		return false
	}
	text := html.UnescapeString(textPolicy.Sanitize(clean))
	return strings.TrimSpace(text) == ""
}
