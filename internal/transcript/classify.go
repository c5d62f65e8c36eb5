package transcript

import "strings"

// IsPatch decides whether a block's content is a partial patch rather than
// a full file replacement, and names the heuristic that fired so callers
// can surface it in logs. The ellipsis sentinel is checked first since it
// applies to any file type; the Cargo.toml heuristic only narrows a block
// that would otherwise be treated as a full replacement.
func IsPatch(path, content string) (bool, string) {
	if strings.Contains(content, "\n...\n") {
		return true, "ellipsis sentinel present"
	}
	if strings.HasSuffix(path, "Cargo.toml") && !strings.Contains(content, "[package]") {
		return true, "Cargo.toml section without [package]"
	}
	return false, ""
}
