package view

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	markupPolicyOnce sync.Once
	markupPolicy     *bluemonday.Policy

	strictPolicyOnce sync.Once
	strictPolicy     *bluemonday.Policy
)

// SafeHTML wraps caller-provided markup after sanitising it. Only inline
// formatting, links and lists survive; scripts, styles and event attributes
// are dropped.
func SafeHTML(markup string) *Node {
	cleaned := strings.TrimSpace(markupSanitizer().Sanitize(markup))
	if cleaned == "" {
		return nil
	}
	return &Node{kind: kindRaw, text: cleaned}
}

func markupSanitizer() *bluemonday.Policy {
	markupPolicyOnce.Do(func() {
		policy := bluemonday.StrictPolicy()
		policy.AllowElements("p", "br", "strong", "em", "b", "i", "u", "code", "span", "ul", "ol", "li")
		policy.AllowAttrs("href").OnElements("a")
		policy.AllowStandardURLs()
		policy.RequireNoFollowOnLinks(true)
		policy.AddTargetBlankToFullyQualifiedLinks(true)
		policy.AllowAttrs("class").OnElements("span", "code")
		markupPolicy = policy
	})
	return markupPolicy
}

func stripTags(markup string) string {
	strictPolicyOnce.Do(func() {
		strictPolicy = bluemonday.StrictPolicy()
	})
	return html.UnescapeString(strictPolicy.Sanitize(markup))
}
