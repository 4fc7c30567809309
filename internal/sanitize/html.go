package sanitize

import (
	"github.com/microcosm-cc/bluemonday"

	"github.com/Guyuepp/threaded-blog/domain"
)

// HTML strips comment bodies down to the user generated content allow-list.
type HTML struct {
	policy *bluemonday.Policy
}

var _ domain.HTMLSanitizer = (*HTML)(nil)

func NewHTML() *HTML {
	policy := bluemonday.UGCPolicy()
	policy.AllowURLSchemes("http", "https", "mailto")
	policy.RequireNoFollowOnLinks(true)
	policy.RequireNoReferrerOnLinks(true)
	return &HTML{policy: policy}
}

func (h *HTML) Sanitize(html string) string {
	return h.policy.Sanitize(html)
}
