package fsm

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrMissingConfig = errors.New("missing config: machine requires a configuration")
	ErrInvalidConfig = errors.New("invalid config")
)

// ErrUnknownState indicates a direct state change targeted a state the configuration does not declare.
type ErrUnknownState struct {
	State string
}

func (e *ErrUnknownState) Error() string {
	return fmt.Sprintf("unknown state '%s'", e.State)
}

func NewErrUnknownState(state string) *ErrUnknownState {
	return &ErrUnknownState{State: state}
}

// ErrInvalidTransition indicates the current state has no rule for the given event.
type ErrInvalidTransition struct {
	State string
	Event string
}

func (e *ErrInvalidTransition) Error() string {
	return fmt.Sprintf("no transition from state '%s' for event '%s'", e.State, e.Event)
}

func NewErrInvalidTransition(state, event string) *ErrInvalidTransition {
	return &ErrInvalidTransition{
		State: state,
		Event: event,
	}
}

func IsUnknownStateError(err error) bool {
	var e *ErrUnknownState
	return errors.As(err, &e)
}

func IsInvalidTransitionError(err error) bool {
	var e *ErrInvalidTransition
	return errors.As(err, &e)
}

// IssueUnknownTarget marks a transition whose target state is not declared.
const IssueUnknownTarget = "UNKNOWN_TARGET"

// ValidationIssue is a single problem found by Config.Validate.
type ValidationIssue struct {
	Code    string
	Message string
	Path    []string // e.g. ["states", "busy", "transitions", "get_tired"]
}

func (v ValidationIssue) String() string {
	if len(v.Path) > 0 {
		return fmt.Sprintf("[%s] %s (at %s)", v.Code, v.Message, strings.Join(v.Path, "."))
	}
	return fmt.Sprintf("[%s] %s", v.Code, v.Message)
}

// ValidationError collects every issue found by Config.Validate.
type ValidationError struct {
	Issues []ValidationIssue
}

func (e *ValidationError) Error() string {
	switch len(e.Issues) {
	case 0:
		return "config validation failed"
	case 1:
		return e.Issues[0].String()
	}

	var b strings.Builder
	fmt.Fprintf(&b, "config validation failed with %d issues:", len(e.Issues))
	for i, issue := range e.Issues {
		fmt.Fprintf(&b, "\n  %d. %s", i+1, issue.String())
	}
	return b.String()
}

// Unwrap lets errors.Is(err, ErrInvalidConfig) match strict validation failures.
func (e *ValidationError) Unwrap() error {
	return ErrInvalidConfig
}

func (e *ValidationError) add(code, message string, path ...string) {
	e.Issues = append(e.Issues, ValidationIssue{
		Code:    code,
		Message: message,
		Path:    path,
	})
}

func IsValidationError(err error) bool {
	var e *ValidationError
	return errors.As(err, &e)
}
