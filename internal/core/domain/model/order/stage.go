package order

import (
	"fmt"

	"cafe/internal/pkg/errs"
)

// Stage is the position of an item in the preparation pipeline.
//
// State transitions:
//
//	Waiting ──> Preparing ──> Ready ──> Collected
//	   │            │           │
//	   └────────────┴───────────┴──> Abandoned
//
// Collected and Abandoned are terminal.
type Stage int

const (
	// UnknownStage is the zero value and is never valid.
	UnknownStage Stage = iota

	// Waiting items are queued FIFO until a preparation slot frees up.
	Waiting

	// Preparing items occupy one of the bounded preparation slots.
	Preparing

	// Ready items sit on the tray until their owner collects them.
	Ready

	// Collected items were handed to their owner.
	Collected

	// Abandoned items were discarded because their owner left.
	Abandoned
)

func getStageStrings() map[Stage]string {
	return map[Stage]string{
		UnknownStage: "Unknown",
		Waiting:      "Waiting",
		Preparing:    "Preparing",
		Ready:        "Ready",
		Collected:    "Collected",
		Abandoned:    "Abandoned",
	}
}

// Validate checks that the stage is one of the defined stages.
func (s Stage) Validate() error {
	if _, ok := getStageStrings()[s]; !ok || s == UnknownStage {
		return errs.NewValueIsInvalidErrorWithCause("stage is invalid", fmt.Errorf("%d is not a valid stage", s))
	}
	return nil
}

// String returns the stage name, "Unknown" for invalid values.
func (s Stage) String() string {
	if str, ok := getStageStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsTerminal reports whether no further transition is possible.
func (s Stage) IsTerminal() bool {
	return s == Collected || s == Abandoned
}

// IsActive reports whether the item still occupies the pipeline.
func (s Stage) IsActive() bool {
	return s == Waiting || s == Preparing || s == Ready
}

// StartPreparing transitions Waiting -> Preparing.
func (s Stage) StartPreparing() (Stage, error) {
	return s.transition(Waiting, Preparing)
}

// FinishPreparing transitions Preparing -> Ready.
func (s Stage) FinishPreparing() (Stage, error) {
	return s.transition(Preparing, Ready)
}

// Collect transitions Ready -> Collected.
func (s Stage) Collect() (Stage, error) {
	return s.transition(Ready, Collected)
}

// Abandon transitions any active stage to Abandoned.
func (s Stage) Abandon() (Stage, error) {
	if !s.IsActive() {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"stage is invalid",
			fmt.Errorf("%s is not a valid stage to abandon", s.String()),
		)
	}
	return Abandoned, nil
}

func (s Stage) transition(from, to Stage) (Stage, error) {
	if s != from {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"stage is invalid",
			fmt.Errorf("%s is not a valid stage to move to %s", s.String(), to.String()),
		)
	}
	return to, nil
}
