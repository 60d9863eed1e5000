package bot

import "sync"

type wizardStep int

const (
	stepCycleLength wizardStep = iota + 1
	stepPeriodLength
	stepLastStart
	stepSign
)

type wizardDraft struct {
	step         wizardStep
	cycleLength  int
	periodLength int
}

// wizardState tracks in-flight setup conversations. Drafts live only in
// memory; a restart drops unfinished wizards.
type wizardState struct {
	mu     sync.Mutex
	drafts map[int64]*wizardDraft
}

func newWizardState() *wizardState {
	return &wizardState{drafts: make(map[int64]*wizardDraft)}
}

func (state *wizardState) begin(chatID int64) {
	state.mu.Lock()
	defer state.mu.Unlock()

	state.drafts[chatID] = &wizardDraft{step: stepCycleLength}
}

func (state *wizardState) current(chatID int64) (*wizardDraft, bool) {
	state.mu.Lock()
	defer state.mu.Unlock()

	draft, exists := state.drafts[chatID]
	return draft, exists
}

func (state *wizardState) clear(chatID int64) {
	state.mu.Lock()
	defer state.mu.Unlock()

	delete(state.drafts, chatID)
}
