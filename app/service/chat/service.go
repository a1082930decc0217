package chat

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/GQAdonis/goal-app/app/client/claude"

	_ "embed"

	"github.com/elliotchance/pie/v2"
	"github.com/samber/do"
)

//go:embed system_prompt.txt
var systemPrompt string

const replyFallback = "No response received from the AI"

type Completer interface {
	Complete(ctx context.Context, system string, turns []claude.Turn) ([]claude.ContentBlock, error)
}

// Service is the stateless dialogue engine. It owns the 5-step protocol
// prompt and derives a state delta from each reply; the caller-supplied
// snapshot is treated as ground truth and never retained between turns.
type Service struct {
	completer Completer
}

func New(di *do.Injector) (*Service, error) {
	return &Service{
		completer: do.MustInvoke[*claude.Client](di),
	}, nil
}

func NewWithCompleter(completer Completer) *Service {
	return &Service{completer: completer}
}

func (s *Service) HandleTurn(ctx context.Context, messages []Message, state ConversationState) (string, *StateDelta, error) {
	stateJSON, err := json.Marshal(state)
	if err != nil {
		return "", nil, fmt.Errorf("failed to serialize conversation state: %w", err)
	}

	system := systemPrompt + "\n\nCurrent conversation state: " + string(stateJSON)

	turns := pie.Map(messages, func(msg Message) claude.Turn {
		return claude.Turn{
			Role:    claude.Role(msg.Role),
			Content: msg.Content,
		}
	})

	blocks, err := s.completer.Complete(ctx, system, turns)
	if err != nil {
		return "", nil, fmt.Errorf("completion failed: %w", err)
	}

	reply := replyFallback
	for _, block := range blocks {
		if block.Type == "text" {
			reply = block.Text
			break
		}
	}

	return reply, s.deriveDelta(reply, messages, state), nil
}

// deriveDelta applies classification, the step-advancement override and
// answer capture, in that order. The override and answer capture both
// evaluate the incoming state, so a later assignment wins over an earlier
// one within the same turn.
func (s *Service) deriveDelta(reply string, messages []Message, state ConversationState) *StateDelta {
	delta := &StateDelta{}

	switch marker := classifyReply(reply); marker.kind {
	case markerGoal:
		delta.CurrentStep = ptr(StepGeneratingQuestions)
		delta.Goal = ptr(marker.text)
	case markerQuestion:
		questions := make([]string, 0, len(state.Questions)+1)
		questions = append(questions, state.Questions...)

		delta.CurrentStep = ptr(StepCollectingAnswers)
		delta.Questions = append(questions, marker.text)
		delta.CurrentQuestionIndex = ptr(len(state.Questions))
	case markerPlan:
		delta.CurrentStep = ptr(StepGeneratingActionPlan)
		delta.ActionPlan = ptr(reply)
	}

	collecting := state.CurrentStep == StepCollectingAnswers

	if collecting && !strings.Contains(reply, questionMarker) {
		if state.CurrentQuestionIndex == len(state.Questions)-1 {
			delta.CurrentStep = ptr(StepGeneratingActionPlan)
		} else {
			delta.CurrentQuestionIndex = ptr(state.CurrentQuestionIndex + 1)
		}
	}

	if collecting && len(messages) > 0 {
		last := messages[len(messages)-1]

		// index bounds are the caller's invariant, answer capture skips
		// silently if the snapshot violates it
		if last.Role == RoleUser && state.CurrentQuestionIndex >= 0 && state.CurrentQuestionIndex < len(state.Questions) {
			answers := make(map[string]string, len(state.Answers)+1)
			for question, answer := range state.Answers {
				answers[question] = answer
			}
			answers[state.Questions[state.CurrentQuestionIndex]] = last.Content

			delta.Answers = answers
		}
	}

	return delta
}
