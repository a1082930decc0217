package chat

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

type Step string

const (
	StepGoalIdentification   Step = "goalIdentification"
	StepGeneratingQuestions  Step = "generatingQuestions"
	StepCollectingAnswers    Step = "collectingAnswers"
	StepGeneratingActionPlan Step = "generatingActionPlan"
	StepFollowUp             Step = "followUp"
)

// Message is one immutable entry of the conversation log. Sender and Role
// always match; Role is the field forwarded to the completion engine.
type Message struct {
	ID                string   `json:"id"`
	Sender            Role     `json:"sender"`
	Role              Role     `json:"role"`
	Content           string   `json:"content"`
	FollowUpQuestions []string `json:"followUpQuestions,omitempty"`
}

type ConversationState struct {
	CurrentStep          Step              `json:"currentStep"`
	Goal                 *string           `json:"goal"`
	Questions            []string          `json:"questions"`
	CurrentQuestionIndex int               `json:"currentQuestionIndex"`
	Answers              map[string]string `json:"answers"`
	ActionPlan           *string           `json:"actionPlan"`
}

func NewConversationState() ConversationState {
	return ConversationState{
		CurrentStep:          StepGoalIdentification,
		Questions:            []string{},
		CurrentQuestionIndex: -1,
		Answers:              map[string]string{},
	}
}

// StateDelta carries only the fields that changed during a turn. A nil field
// means "no change"; a set Questions or Answers field replaces the whole
// field on merge, it is never merged element-wise.
type StateDelta struct {
	CurrentStep          *Step             `json:"currentStep,omitempty"`
	Goal                 *string           `json:"goal,omitempty"`
	Questions            []string          `json:"questions,omitempty"`
	CurrentQuestionIndex *int              `json:"currentQuestionIndex,omitempty"`
	Answers              map[string]string `json:"answers,omitempty"`
	ActionPlan           *string           `json:"actionPlan,omitempty"`
}

// TurnRequest is the body of one call to the turn endpoint.
type TurnRequest struct {
	Messages          []Message         `json:"messages"`
	ConversationState ConversationState `json:"conversationState"`
}

type TurnResponse struct {
	Message           string      `json:"message"`
	NewState          *StateDelta `json:"newState,omitempty"`
	FollowUpQuestions []string    `json:"followUpQuestions,omitempty"`
}

func ptr[T any](v T) *T {
	return &v
}
