package similarity

import (
	"regexp"

	"github.com/agenthands/resolve/internal/core/model"
)

// Hint extraction patterns. Kept as an explicit table rather than scattered
// module state so each pattern is independently testable.
var (
	emailPattern  = regexp.MustCompile(`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`)
	ticketPattern = regexp.MustCompile(`\b[A-Z][A-Z0-9]+-[0-9]+\b`)
)

// hintKeys maps extracted hint names to the candidate property they are
// checked against.
const (
	hintEmail = "email"
	hintKey   = "key"
)

// ExtractHints pulls structured identifiers out of a mention: an email
// address, a ticket-style id, plus any context entries under known keys.
func ExtractHints(mention *model.EntityMention) map[string]string {
	hints := make(map[string]string)

	text := mention.SurfaceForm
	if m := emailPattern.FindString(text); m != "" {
		hints[hintEmail] = m
	}
	if m := ticketPattern.FindString(text); m != "" {
		hints[hintKey] = m
	}

	// Context entries override text-derived hints; the caller put them there
	// deliberately.
	for _, k := range []string{hintEmail, hintKey} {
		if v, ok := mention.Context[k]; ok && !v.IsNull() && v.String() != "" {
			hints[k] = v.String()
		}
	}

	return hints
}
