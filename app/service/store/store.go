package store

import (
	"sync"

	"github.com/GQAdonis/goal-app/app/service/chat"
)

// Store is the client-resident conversation state: the ordered message log
// plus the current structured state. It performs no validation, invariants
// are maintained by the orchestrator and the dialogue engine.
type Store struct {
	mu       sync.RWMutex
	messages []chat.Message
	state    chat.ConversationState
}

func New() *Store {
	return &Store{
		state: chat.NewConversationState(),
	}
}

// Append adds a message to the end of the log. It never reorders and never
// deduplicates.
func (s *Store) Append(msg chat.Message) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.messages = append(s.messages, msg)
}

// Merge shallow-merges a delta into the current state, last write wins per
// field. A set Questions or Answers field replaces the previous value
// entirely.
func (s *Store) Merge(delta *chat.StateDelta) {
	if delta == nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if delta.CurrentStep != nil {
		s.state.CurrentStep = *delta.CurrentStep
	}
	if delta.Goal != nil {
		s.state.Goal = delta.Goal
	}
	if delta.Questions != nil {
		s.state.Questions = delta.Questions
	}
	if delta.CurrentQuestionIndex != nil {
		s.state.CurrentQuestionIndex = *delta.CurrentQuestionIndex
	}
	if delta.Answers != nil {
		s.state.Answers = delta.Answers
	}
	if delta.ActionPlan != nil {
		s.state.ActionPlan = delta.ActionPlan
	}
}

func (s *Store) Messages() []chat.Message {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]chat.Message, len(s.messages))
	copy(result, s.messages)

	return result
}

func (s *Store) State() chat.ConversationState {
	s.mu.RLock()
	defer s.mu.RUnlock()

	state := s.state

	state.Questions = make([]string, len(s.state.Questions))
	copy(state.Questions, s.state.Questions)

	state.Answers = make(map[string]string, len(s.state.Answers))
	for question, answer := range s.state.Answers {
		state.Answers[question] = answer
	}

	return state
}
