package joystick

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrDeviceNotFound      = errors.New("device not found")
	ErrActionNotFound      = errors.New("action not found")
	ErrRunNotFound         = errors.New("action not bound to device model")
	ErrNotPermitted        = errors.New("action not permitted")
	ErrParametersRequired  = errors.New("parameters are required for this action")
	ErrInvalidParameters   = errors.New("invalid parameters for this action")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrSessionExpired      = errors.New("session expired")
	ErrInvalidNotification = errors.New("invalid notification")
)

// ParamError carries the per-field issues of a rejected parameter set. It
// matches ErrInvalidParameters with errors.Is.
type ParamError struct {
	Issues []ParamIssue
}

func (e *ParamError) Error() string {
	msgs := make([]string, len(e.Issues))
	for i, issue := range e.Issues {
		msgs[i] = fmt.Sprintf("%s: %s", issue.Field, issue.Message)
	}
	return fmt.Sprintf("%s (%s)", ErrInvalidParameters.Error(), strings.Join(msgs, "; "))
}

func (e *ParamError) Is(target error) bool {
	return target == ErrInvalidParameters
}

// CommandError is a command that ran and failed. Stderr is what the user sees.
type CommandError struct {
	Command string
	Stderr  string
	Err     error
}

func (e *CommandError) Error() string {
	if s := strings.TrimSpace(e.Stderr); s != "" {
		return s
	}
	return e.Err.Error()
}

func (e *CommandError) Unwrap() error {
	return e.Err
}
