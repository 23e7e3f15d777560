package cachecheck

import (
	"errors"
	"fmt"
)

// Sentinel errors, one per failure kind. Every failure ends the run.
var (
	ErrMissingCapability = errors.New("cache client capability missing")
	ErrMissingArgument   = errors.New("missing or invalid argument")
	ErrConnection        = errors.New("connection failure")
	ErrWrite             = errors.New("write failure")
	ErrRead              = errors.New("read failure")
)

// StepError records the stage a run failed in, the key being handled (if any)
// and the kind sentinel alongside the underlying cause.
type StepError struct {
	Stage Stage
	Kind  error
	Key   string
	Err   error
}

func (e *StepError) Error() string {
	switch {
	case e.Key != "" && e.Err != nil:
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Key, e.Err)
	case e.Key != "":
		return fmt.Sprintf("%s: %s", e.Kind, e.Key)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	default:
		return e.Kind.Error()
	}
}

// Unwrap exposes both the kind and the cause to errors.Is and errors.As.
func (e *StepError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}
