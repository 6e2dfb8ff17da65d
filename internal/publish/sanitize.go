// Package publish uploads a CV document to a running cvpress server,
// sanitizes the generated page, and commits the result to a hosted Git
// repository via its contents API.
package publish

import (
	"github.com/microcosm-cc/bluemonday"
)

// NewPolicy builds the sanitization policy applied to generated pages before
// they leave the machine. The allowlist is the fixed set of tags and
// attributes the renderer emits; script elements and on* event-handler
// attributes are never allowed, so anything that slipped through rendering
// is dropped here.
func NewPolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements(
		"html", "head", "meta", "title", "style", "body",
		"div", "main", "header", "section",
		"h1", "h2", "p", "ul", "li", "br",
	)
	p.AllowAttrs("lang").OnElements("html")
	p.AllowAttrs("charset", "name", "content").OnElements("meta")
	p.AllowAttrs("class").OnElements("body", "div", "header", "section", "p", "ul", "li")
	p.AllowAttrs("style").OnElements("body", "div", "header", "section")
	return p
}

// Sanitize runs html through the fixed allowlist policy.
func Sanitize(html string) string {
	return NewPolicy().Sanitize(html)
}
