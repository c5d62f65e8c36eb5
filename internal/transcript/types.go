// Package transcript implements the transcript-to-file-operation pipeline:
// turn segmentation, markdown walking, path resolution, and patch-vs-replace
// classification. Nothing in this package touches the filesystem.
package transcript

// TurnBody is the trimmed text of exactly one assistant reply, free of any
// role-delimiter lines.
type TurnBody string

// CodeBlockContext pairs a fenced code block's body with the prose that
// preceded it since the previous code block (or turn start).
type CodeBlockContext struct {
	Prose string
	Body  string
}

// FileOperation is a (path, content) pair derived from one fenced code
// block whose preceding prose resolved to a path.
type FileOperation struct {
	Path    string
	Content string
}
