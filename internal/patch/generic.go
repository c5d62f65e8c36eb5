package patch

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// GenericResult reports how ApplyGeneric resolved a patch, so the caller
// can choose the right outcome tag for the progress log.
type GenericResult struct {
	Content string
	Applied bool
	// Strategy is "structured" when the diffmatchpatch patch-text parse
	// and hunk application succeeded, "snippet" when the ellipsis-split
	// fallback fired, or "" when neither applied and Content equals the
	// original current text.
	Strategy string
}

var dmp = diffmatchpatch.New()

// ApplyGeneric applies a non-TOML patch to current, trying a structured
// diff application first and an ellipsis-snippet splice second. The splice
// is tried only when patchBody does not parse as a structured patch; a
// structured patch whose hunks fail to apply is a failure. Every failure
// path returns current unchanged, byte for byte.
func ApplyGeneric(current, patchBody string) GenericResult {
	patched, parsed, ok := applyStructured(current, patchBody)
	if ok {
		return GenericResult{Content: patched, Applied: true, Strategy: "structured"}
	}
	if !parsed {
		if patched, ok := applySnippet(current, patchBody); ok {
			return GenericResult{Content: patched, Applied: true, Strategy: "snippet"}
		}
	}
	return GenericResult{Content: current, Applied: false}
}

// applyStructured treats patchBody (with ellipsis markers stripped) as a
// diffmatchpatch patch-text document and applies every hunk with fuzzy
// matching. parsed reports whether patchBody parsed into at least one
// patch; ok is false on a parse failure or when any hunk fails to apply,
// with no partial mutation of current.
func applyStructured(current, patchBody string) (patched string, parsed, ok bool) {
	cleaned := strings.ReplaceAll(patchBody, "...", "")
	patches, err := dmp.PatchFromText(cleaned)
	if err != nil || len(patches) == 0 {
		return "", false, false
	}

	patched, applied := dmp.PatchApply(patches, current)
	for _, hunkOK := range applied {
		if !hunkOK {
			return "", true, false
		}
	}
	return patched, true, true
}

// applySnippet implements the ellipsis-split fallback: patchBody must
// split into exactly prefix and suffix around the literal "...". The
// prefix's leftmost occurrence in current and the suffix's rightmost
// occurrence bound the region replaced by the collapsed patch body.
func applySnippet(current, patchBody string) (string, bool) {
	parts := strings.Split(patchBody, "...")
	if len(parts) != 2 {
		return "", false
	}
	prefix, suffix := parts[0], parts[1]

	start := strings.Index(current, prefix)
	if start < 0 {
		return "", false
	}
	suffixIdx := strings.LastIndex(current, suffix)
	if suffixIdx < 0 {
		return "", false
	}
	end := suffixIdx + len(suffix)

	return current[:start] + collapseEllipsisLine(patchBody) + current[end:], true
}

// collapseEllipsisLine removes the ellipsis sentinel from a patch body.
// When the sentinel sits alone on its own line, the whole "\n...\n" line
// collapses to a single newline rather than leaving a blank line behind;
// otherwise only the literal "..." token is dropped.
func collapseEllipsisLine(patchBody string) string {
	if strings.Contains(patchBody, "\n...\n") {
		return strings.Replace(patchBody, "\n...\n", "\n", 1)
	}
	return strings.Replace(patchBody, "...", "", 1)
}
