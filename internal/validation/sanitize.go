package validation

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// Sanitizer strips unsafe markup from user-supplied text before it is stored.
// Rich bodies written by operators keep UGC-safe HTML; text typed by visitors keeps none.
type Sanitizer struct {
	rich  *bluemonday.Policy
	plain *bluemonday.Policy
}

// NewSanitizer creates a sanitizer with the UGC and strict policies
func NewSanitizer() *Sanitizer {
	rich := bluemonday.UGCPolicy()
	rich.RequireNoFollowOnLinks(true)
	return &Sanitizer{
		rich:  rich,
		plain: bluemonday.StrictPolicy(),
	}
}

// Rich sanitizes operator-authored HTML such as article and content bodies
func (s *Sanitizer) Rich(input string) string {
	return s.rich.Sanitize(input)
}

// Plain removes every tag from visitor text such as comments, reviews and contact messages
func (s *Sanitizer) Plain(input string) string {
	return strings.TrimSpace(s.plain.Sanitize(input))
}
