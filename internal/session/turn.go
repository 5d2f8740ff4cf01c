package session

import (
	"errors"
	"fmt"

	"github.com/quocvuong92/ai-exec/internal/keygate"
)

// ErrInterrupted ends the session after an operator interrupt
var ErrInterrupted = errors.New("session interrupted")

// OutcomeKind classifies how a turn ended
type OutcomeKind int

const (
	// Idle means nothing happened, e.g. a blank input line
	Idle OutcomeKind = iota
	DirectoryChanged
	Executed
	Cancelled
	TranslationEmpty
	TranslationFailure
	DirectoryError
	ExecutionError
	Exited
)

var outcomeNames = map[OutcomeKind]string{
	Idle:               "idle",
	DirectoryChanged:   "directory_changed",
	Executed:           "executed",
	Cancelled:          "cancelled",
	TranslationEmpty:   "translation_empty",
	TranslationFailure: "translation_failure",
	DirectoryError:     "directory_error",
	ExecutionError:     "execution_error",
	Exited:             "exited",
}

func (k OutcomeKind) String() string {
	if name, ok := outcomeNames[k]; ok {
		return name
	}
	return fmt.Sprintf("outcome(%d)", int(k))
}

// Outcome is the result of a turn. ExitStatus is set for Executed, Path for
// DirectoryChanged and DirectoryError, and Err for the failure kinds.
type Outcome struct {
	Kind       OutcomeKind
	ExitStatus int
	Path       string
	Err        error
}

// Turn records one iteration of the loop
type Turn struct {
	Request  string
	Command  string
	Decision keygate.Decision
	Outcome  Outcome
}
