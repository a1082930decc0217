package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/GQAdonis/goal-app/app/service/chat"
	"github.com/GQAdonis/goal-app/app/service/store"
	"github.com/google/uuid"
)

var (
	ErrTurnInFlight = errors.New("a turn is already in flight")
	ErrEmptyMessage = errors.New("message text is empty")
)

const planTrigger = "generate action plan"

type TurnClient interface {
	Turn(ctx context.Context, messages []chat.Message, state chat.ConversationState) (*chat.TurnResponse, error)
}

// Orchestrator drives one conversation: it appends the user message, runs
// the round trip, merges the returned delta and auto-requests the action
// plan once every question has been answered. At most one turn is in flight
// at any time.
type Orchestrator struct {
	store  *store.Store
	client TurnClient

	inFlight      sync.Mutex
	typing        atomic.Bool
	planRequested atomic.Bool
}

func New(st *store.Store, client TurnClient) *Orchestrator {
	return &Orchestrator{
		store:  st,
		client: client,
	}
}

// SubmitUserText runs one user-initiated turn. Empty text is rejected
// unless the conversation is collecting answers, where it is coerced to
// "continue" so the current question is shown again. A submission while
// another turn is in flight fails with ErrTurnInFlight.
func (o *Orchestrator) SubmitUserText(ctx context.Context, text string) error {
	if !o.inFlight.TryLock() {
		return ErrTurnInFlight
	}
	defer o.inFlight.Unlock()

	text = strings.TrimSpace(text)
	if text == "" {
		if o.store.State().CurrentStep != chat.StepCollectingAnswers {
			return ErrEmptyMessage
		}

		text = "continue"
	}

	if err := o.roundTrip(ctx, text); err != nil {
		return err
	}

	return o.maybeGeneratePlan(ctx)
}

// roundTrip appends the outgoing user message, posts the full log plus the
// current state snapshot and merges the result. On failure nothing is
// merged and the user message stays appended, so no input is lost.
func (o *Orchestrator) roundTrip(ctx context.Context, text string) error {
	o.typing.Store(true)
	defer o.typing.Store(false)

	o.store.Append(chat.Message{
		ID:      uuid.NewString(),
		Sender:  chat.RoleUser,
		Role:    chat.RoleUser,
		Content: text,
	})

	result, err := o.client.Turn(ctx, o.store.Messages(), o.store.State())
	if err != nil {
		return fmt.Errorf("turn failed: %w", err)
	}

	o.store.Append(chat.Message{
		ID:                uuid.NewString(),
		Sender:            chat.RoleAssistant,
		Role:              chat.RoleAssistant,
		Content:           result.Message,
		FollowUpQuestions: result.FollowUpQuestions,
	})
	o.store.Merge(result.NewState)

	return nil
}

// maybeGeneratePlan fires the one client-initiated turn of the protocol:
// once the question index has run past the question list, a synthetic
// message prompts the engine to produce the action plan. The step gate and
// the once-flag keep it from firing twice.
func (o *Orchestrator) maybeGeneratePlan(ctx context.Context) error {
	state := o.store.State()

	if state.CurrentStep != chat.StepCollectingAnswers {
		return nil
	}
	if state.CurrentQuestionIndex < len(state.Questions) {
		return nil
	}
	if o.planRequested.Load() {
		return nil
	}

	// the flag is only consumed on success, so a failed synthetic turn can
	// be retried by the next submission
	if err := o.roundTrip(ctx, planTrigger); err != nil {
		return err
	}

	o.planRequested.Store(true)

	return nil
}

// IsTyping reports whether a round trip is currently in progress. It is
// presentation-only state and is cleared on every exit path.
func (o *Orchestrator) IsTyping() bool {
	return o.typing.Load()
}
