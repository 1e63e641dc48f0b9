package htmlsheet

import (
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	sheetPolicyOnce sync.Once
	sheetPolicy     *bluemonday.Policy
)

// sheetSanitizer allows headings, paragraphs and table markup with class
// attributes. Everything else, templates overrides included, is stripped.
func sheetSanitizer() *bluemonday.Policy {
	sheetPolicyOnce.Do(func() {
		policy := bluemonday.StrictPolicy()
		policy.AllowElements(
			"h1", "h2", "h3", "p", "table", "caption", "thead", "tbody", "tfoot",
			"tr", "th", "td", "span", "strong", "em",
		)
		policy.AllowAttrs("class").Globally()
		policy.AllowAttrs("scope").OnElements("th")
		sheetPolicy = policy
	})
	return sheetPolicy
}
