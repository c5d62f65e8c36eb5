package transcript

// Extract turns a single assistant reply into its ordered FileOperations,
// dropping any code block whose preceding prose resolves to no path.
func Extract(turn TurnBody) []FileOperation {
	blocks := Walk(turn)
	ops := make([]FileOperation, 0, len(blocks))
	for _, block := range blocks {
		path, ok := Resolve(block.Prose)
		if !ok {
			continue
		}
		ops = append(ops, FileOperation{Path: path, Content: block.Body})
	}
	return ops
}
