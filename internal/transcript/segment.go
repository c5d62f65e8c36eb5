package transcript

import "strings"

const (
	assistantDelim = "\n### ASSISTANT\n"
	userDelim      = "\n### USER\n"
)

// Segment splits a transcript into the ordered sequence of assistant turn
// bodies, discarding the initial user preamble and any trailing user turns.
// A transcript with no "### ASSISTANT" marker yields an empty sequence.
func Segment(transcriptText string) []TurnBody {
	fragments := strings.Split(transcriptText, assistantDelim)
	if len(fragments) <= 1 {
		return nil
	}

	turns := make([]TurnBody, 0, len(fragments)-1)
	for _, fragment := range fragments[1:] {
		body := fragment
		// The split consumed the newline before a USER marker that directly
		// follows the ASSISTANT marker, so such a turn is empty.
		if strings.HasPrefix(fragment, userDelim[1:]) {
			body = ""
		} else if idx := strings.Index(fragment, userDelim); idx >= 0 {
			body = fragment[:idx]
		}
		turns = append(turns, TurnBody(strings.TrimSpace(body)))
	}
	return turns
}
