package chat_test

import (
	"context"
	"testing"

	"github.com/GQAdonis/goal-app/app/client/claude"
	"github.com/GQAdonis/goal-app/app/service/chat"
	"github.com/GQAdonis/goal-app/app/service/store"
)

type replayCompleter struct {
	replies []string
}

func (r *replayCompleter) Complete(_ context.Context, _ string, _ []claude.Turn) ([]claude.ContentBlock, error) {
	reply := r.replies[0]
	r.replies = r.replies[1:]

	return []claude.ContentBlock{{Type: "text", Text: reply}}, nil
}

// Walks a whole conversation through the engine and the store, the way the
// orchestrator does, and checks the step sequence stays monotonic.
func TestConversationFlow(t *testing.T) {
	completer := &replayCompleter{replies: []string{
		"Step 1: Goal Identification\nGoal identified: run a marathon\nLet's get started.",
		"Step 2: Generating Questions\nQuestion: How much running experience do you have?",
		"Step 3: Collecting Answers\nQuestion: How many months until the race?",
		"Step 3: Collecting Answers\nThanks, that's everything I need.",
		"Step 4: Generating Action Plan\nAction Plan:\n1. Build a base\n2. Taper before the race\nYou've got this!",
	}}
	svc := chat.NewWithCompleter(completer)
	st := store.New()

	rank := map[chat.Step]int{
		chat.StepGoalIdentification:   0,
		chat.StepGeneratingQuestions:  1,
		chat.StepCollectingAnswers:    2,
		chat.StepGeneratingActionPlan: 3,
		chat.StepFollowUp:             4,
	}

	turn := func(text string) {
		t.Helper()

		st.Append(chat.Message{ID: text, Sender: chat.RoleUser, Role: chat.RoleUser, Content: text})

		before := st.State()

		reply, delta, err := svc.HandleTurn(context.Background(), st.Messages(), before)
		if err != nil {
			t.Fatalf("turn %q failed: %v", text, err)
		}

		st.Append(chat.Message{ID: text + "-reply", Sender: chat.RoleAssistant, Role: chat.RoleAssistant, Content: reply})
		st.Merge(delta)

		after := st.State()
		if rank[after.CurrentStep] < rank[before.CurrentStep] {
			t.Fatalf("step regressed from %v to %v", before.CurrentStep, after.CurrentStep)
		}
	}

	turn("I want to run a marathon")

	state := st.State()
	if state.CurrentStep != chat.StepGeneratingQuestions || state.Goal == nil || *state.Goal != "run a marathon" {
		t.Fatalf("goal not identified: %+v", state)
	}

	turn("ok")

	state = st.State()
	if state.CurrentStep != chat.StepCollectingAnswers || len(state.Questions) != 1 || state.CurrentQuestionIndex != 0 {
		t.Fatalf("first question not recorded: %+v", state)
	}

	turn("About two years of casual jogging")

	state = st.State()
	if len(state.Questions) != 2 || state.CurrentQuestionIndex != 1 {
		t.Fatalf("second question not recorded: %+v", state)
	}
	if state.Answers["How much running experience do you have?"] != "About two years of casual jogging" {
		t.Fatalf("first answer not captured: %v", state.Answers)
	}

	turn("Six months")

	state = st.State()
	if state.CurrentStep != chat.StepGeneratingActionPlan {
		t.Fatalf("terminal override did not fire: %+v", state)
	}
	if state.Answers["How many months until the race?"] != "Six months" {
		t.Fatalf("last answer not captured: %v", state.Answers)
	}

	turn("generate action plan")

	state = st.State()
	if state.ActionPlan == nil {
		t.Fatalf("action plan not stored")
	}
	if len(state.Answers) != 2 {
		t.Fatalf("answers must be exactly the collected ones: %v", state.Answers)
	}
}
