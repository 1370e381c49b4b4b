package stepper

import (
	"errors"
	"time"
)

// State is where a form controller currently sits.
type State int

const (
	StateLoadingExisting State = iota
	StateStep1
	StateStep2
	StateStep3
	// StateConfirmPending waits for the user to acknowledge that saving an edit
	// sends the record back to PENDENTE.
	StateConfirmPending
	StateSubmitting
	StateDone
	// StateFailed is terminal: the form could not be opened at all.
	StateFailed
)

var stateNames = map[State]string{
	StateLoadingExisting: "loading",
	StateStep1:           "step-1",
	StateStep2:           "step-2",
	StateStep3:           "step-3",
	StateConfirmPending:  "confirm",
	StateSubmitting:      "submitting",
	StateDone:            "done",
	StateFailed:          "failed",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "unknown"
}

// Step returns 1, 2 or 3 for the form steps and 0 for every other state.
func (s State) Step() int {
	switch s {
	case StateStep1:
		return 1
	case StateStep2:
		return 2
	case StateStep3:
		return 3
	}
	return 0
}

var (
	// ErrBusy is returned for any action attempted while a submission is in flight
	// or awaiting confirmation. The action has no effect.
	ErrBusy = errors.New("form is busy")
	// ErrInvalidTransition is returned when the action does not apply to the current state.
	ErrInvalidTransition = errors.New("action not allowed in the current state")
	ErrMissingRecordID   = errors.New("no record id given")
	ErrRecordCompleted   = errors.New("record is completed and read-only")
	ErrDayNotSelected    = errors.New("weekday is not selected")
	// ErrPriorSemesterIncomplete blocks creation while an earlier semester's request is unfinished.
	ErrPriorSemesterIncomplete = errors.New("an earlier semester has an unfinished request")
	ErrClosureNotAllowed       = errors.New("closure cannot be requested for this record")
)

type Severity int

const (
	SeverityInfo Severity = iota
	SeveritySuccess
	SeverityWarning
	SeverityError
)

// Notice is the single user-facing message a controller currently wants shown.
type Notice struct {
	Severity Severity
	Message  string
	// NavigateAfter is set on success; the view leaves the form once it elapses.
	NavigateAfter time.Duration
}

func (n Notice) IsZero() bool {
	return n.Message == ""
}
