package transcript

import "regexp"

// headerPathRe matches a trailing "### <path>" line, the strongest signal
// a reply gives for which file a code block targets.
var headerPathRe = regexp.MustCompile(`###\s+([\w./\-_]+)\s*$`)

// prosePathRe matches a path-like token anywhere in prose, optionally
// wrapped in backticks. Extensions are restricted to the set the original
// transcripts actually used; a bare word never qualifies.
var prosePathRe = regexp.MustCompile("`?((?:[\\w\\-_]+/)*[\\w\\-_]+\\.(?:rs|toml|md|json|gitignore|zsh))`?")

// Resolve recovers a destination path from the prose preceding a code
// block. An end-anchored "### path" header always wins; failing that, the
// last path-like token mentioned anywhere in the prose is used. The second
// return value is false when no path could be recovered at all, in which
// case the caller must drop the block.
func Resolve(prose string) (string, bool) {
	if m := headerPathRe.FindStringSubmatch(prose); m != nil {
		return m[1], true
	}

	matches := prosePathRe.FindAllStringSubmatch(prose, -1)
	if len(matches) == 0 {
		return "", false
	}
	last := matches[len(matches)-1]
	return last[1], true
}
