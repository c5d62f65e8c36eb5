package transcript

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	gmtext "github.com/yuin/goldmark/text"
)

var markdown = goldmark.New()

// Walk parses a turn body as CommonMark and emits one CodeBlockContext per
// fenced (or indented) code block, in document order. current_prose is
// cleared after each block, per the load-bearing reset the path resolver
// downstream depends on.
func Walk(turn TurnBody) []CodeBlockContext {
	source := []byte(turn)
	doc := markdown.Parser().Parse(gmtext.NewReader(source))

	var contexts []CodeBlockContext
	var prose strings.Builder

	// The ast.Walk callback fires once per node per direction (entering,
	// then leaving); only the entering pass matters here since every node
	// we care about is handled atomically on the way in.
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch node := n.(type) {
		case *ast.FencedCodeBlock:
			contexts = append(contexts, CodeBlockContext{
				Prose: prose.String(),
				Body:  linesText(node.Lines(), source),
			})
			prose.Reset()
			return ast.WalkSkipChildren, nil

		case *ast.CodeBlock:
			contexts = append(contexts, CodeBlockContext{
				Prose: prose.String(),
				Body:  linesText(node.Lines(), source),
			})
			prose.Reset()
			return ast.WalkSkipChildren, nil

		case *ast.Heading:
			// A leading "### " header on a line must survive into
			// current_prose with the "###" token recoverable, so the
			// path resolver's end-anchored regex can find it. Headings at
			// any other level still carry prose a Priority-2 mention can
			// resolve from, so their inner text is forwarded too, just
			// without the "###" prefix.
			if node.Level == 3 {
				prose.WriteString("### ")
			}
			prose.WriteString(inlineText(node, source))
			prose.WriteString("\n")
			return ast.WalkSkipChildren, nil

		case *ast.Text:
			prose.Write(node.Segment.Value(source))
			if node.SoftLineBreak() || node.HardLineBreak() {
				prose.WriteString("\n")
			}
		}

		return ast.WalkContinue, nil
	})

	return contexts
}

// linesText concatenates a code block's raw source lines into a single
// body string. Block bodies arrive from the parser as a run of line
// segments; joining them here guarantees exactly one CodeBlockContext per
// fenced block regardless of how many segments the parser produced.
func linesText(lines *gmtext.Segments, source []byte) string {
	var b strings.Builder
	for i := 0; i < lines.Len(); i++ {
		b.Write(lines.At(i).Value(source))
	}
	return b.String()
}

// inlineText flattens a node's inline children (text, code spans, emphasis,
// links) down to their plain textual content.
func inlineText(n ast.Node, source []byte) string {
	var b strings.Builder
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*ast.Text); ok {
			b.Write(t.Segment.Value(source))
			continue
		}
		b.WriteString(inlineText(c, source))
	}
	return b.String()
}
