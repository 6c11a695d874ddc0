package narrate

import "github.com/offbeam/narrator/pkg/vision"

// History is the append-only conversation log shared by every reaction
// call. Only the scheduler appends, and only at one point per iteration, so
// no locking is needed.
type History struct {
	lines []string
}

// Append records a completed utterance. Entries are in generation-completion
// order, which the single-pending-task pipeline makes identical to turn
// order.
func (h *History) Append(speaker, text string) {
	h.lines = append(h.lines, vision.HistoryLine(speaker, text))
}

// Lines returns a copy of the history so callers cannot alias the
// scheduler-owned slice.
func (h *History) Lines() []string {
	return append([]string(nil), h.lines...)
}

// Len returns the number of recorded utterances.
func (h *History) Len() int {
	return len(h.lines)
}
