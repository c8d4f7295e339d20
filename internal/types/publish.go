package types

import (
	"context"
	"fmt"

	"github.com/looplab/fsm"
)

// Publish lifecycle states.
const (
	StatePending        = "pending"
	StateBranchCreated  = "branch_created"
	StateFilesCommitted = "files_committed"
	StatePROpened       = "pr_opened"
)

// Publish lifecycle events.
const (
	EventBranchCreated  = "branch_created"
	EventFilesCommitted = "files_committed"
	EventPROpened       = "pr_opened"
)

// PublishRun tracks one bundle's journey to a pull request with a finite state
// machine, so out-of-order publishing steps are rejected instead of silently skipped.
type PublishRun struct {
	BranchName   string `json:"branch_name"`
	CurrentState string `json:"current_state"`

	fsm *fsm.FSM
}

func NewPublishRun(branchName string) *PublishRun {
	run := &PublishRun{
		BranchName:   branchName,
		CurrentState: StatePending,
	}

	run.fsm = fsm.NewFSM(
		StatePending,
		fsm.Events{
			{Name: EventBranchCreated, Src: []string{StatePending}, Dst: StateBranchCreated},
			{Name: EventFilesCommitted, Src: []string{StateBranchCreated}, Dst: StateFilesCommitted},
			{Name: EventPROpened, Src: []string{StateFilesCommitted}, Dst: StatePROpened},
		},
		fsm.Callbacks{
			"enter_state": func(_ context.Context, e *fsm.Event) {
				run.CurrentState = e.Dst
			},
		},
	)

	return run
}

func (r *PublishRun) Transition(ctx context.Context, event string) error {
	if err := r.fsm.Event(ctx, event); err != nil {
		return fmt.Errorf("invalid publish transition %q from state %q: %w", event, r.CurrentState, err)
	}
	return nil
}

func (r *PublishRun) State() string {
	return r.CurrentState
}
