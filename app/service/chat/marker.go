package chat

import "strings"

const (
	goalMarker     = "Goal identified:"
	questionMarker = "Question:"
	planMarker     = "Action Plan:"
)

type markerKind int

const (
	markerNone markerKind = iota
	markerGoal
	markerQuestion
	markerPlan
)

type replyMarker struct {
	kind markerKind
	// goal or question text, trimmed; empty for plan and none
	text string
}

// classifyReply inspects free-form model output for step markers. Checks are
// priority-chained: a reply containing several markers only fires the first
// matching branch (goal, then question, then plan).
func classifyReply(reply string) replyMarker {
	switch {
	case strings.Contains(reply, goalMarker):
		return replyMarker{kind: markerGoal, text: firstLineAfter(reply, goalMarker)}
	case strings.Contains(reply, questionMarker):
		return replyMarker{kind: markerQuestion, text: firstLineAfter(reply, questionMarker)}
	case strings.Contains(reply, planMarker):
		return replyMarker{kind: markerPlan}
	default:
		return replyMarker{kind: markerNone}
	}
}

func firstLineAfter(reply, marker string) string {
	_, after, _ := strings.Cut(reply, marker)
	line, _, _ := strings.Cut(after, "\n")

	return strings.TrimSpace(line)
}
