package rules

import (
	"strings"

	"github.com/agenthands/resolve/internal/core/model"
)

type MergeStrategy string

const (
	PreserveLatest            MergeStrategy = "preserve_latest"
	PreserveMostComplete      MergeStrategy = "preserve_most_complete"
	PreserveMostAuthoritative MergeStrategy = "preserve_most_authoritative"
	CustomMerge               MergeStrategy = "custom"
)

// conflictIdentifierKeys are the identifier-class properties for conflict
// resolution. Two textually different values here are a genuine conflict; the
// current policy keeps the first value rather than escalating.
var conflictIdentifierKeys = map[string]bool{
	"email": true,
	"id":    true,
	"key":   true,
}

// DetermineMergeStrategy picks the strategy for folding two candidates.
// Currently always preserve_most_complete; the enum is the extension point
// for source-authority or recency policies.
func DetermineMergeStrategy(a, b model.EntityCandidate) MergeStrategy {
	return PreserveMostComplete
}

// ResolvePropertyConflict picks the surviving value for one property name.
// Identifier-class properties that are textually equal after normalization
// collapse to one value; if they differ, the first value wins. Everything
// else resolves to the longer string representation as a completeness proxy.
func ResolvePropertyConflict(name string, v1, v2 model.PropertyValue) model.PropertyValue {
	if conflictIdentifierKeys[strings.ToLower(name)] {
		if v1.EqualFold(v2) {
			return v1
		}
		// Two different identifiers under the same key. First wins; a
		// production deployment should surface this instead.
		return v1
	}
	if len(v2.String()) > len(v1.String()) {
		return v2
	}
	return v1
}
