package sanitizer

import "github.com/microcosm-cc/bluemonday"

// HTMLStripperer strips markup from user-supplied strings.
type HTMLStripperer interface {
	StripHTML(s string) string
}

type HTMLStripper struct {
	policy *bluemonday.Policy
}

// NewHTMLStripper returns a stripper backed by bluemonday's strict policy.
func NewHTMLStripper() *HTMLStripper {
	return &HTMLStripper{policy: bluemonday.StrictPolicy()}
}

func (hs *HTMLStripper) StripHTML(s string) string {
	return hs.policy.Sanitize(s)
}
