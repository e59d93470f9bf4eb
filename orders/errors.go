package orders

import (
	"errors"
	"fmt"
)

// ErrStoreUnavailable marks failures caused by an unreachable or unconfigured
// persistence collaborator. Operations depending on it fail closed.
var ErrStoreUnavailable = errors.New("order store unavailable")

// ValidationError reports caller-supplied input that fails a precondition.
// It is always raised before any side effect.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// PersistStage identifies which half of the two-phase order insert failed.
type PersistStage string

const (
	StageHeader PersistStage = "header"
	StageItems  PersistStage = "items"
)

// PersistenceFailure reports a failed order write with enough detail to
// distinguish "header not created" from "header created, items not created".
// The latter leaves an orphaned pending order that needs operator attention.
type PersistenceFailure struct {
	Stage     PersistStage
	OrderID   string
	OrderCode string
	Err       error
}

func (e *PersistenceFailure) Error() string {
	if e.Stage == StageItems {
		return fmt.Sprintf("order %s was saved without its items and needs operator attention: %v", e.OrderCode, e.Err)
	}
	return fmt.Sprintf("order %s could not be saved: %v", e.OrderCode, e.Err)
}

func (e *PersistenceFailure) Unwrap() error {
	return e.Err
}

// Orphaned reports whether the header exists without its items.
func (e *PersistenceFailure) Orphaned() bool {
	return e.Stage == StageItems
}

// HandoffFailure reports that the messaging handoff could not be prepared.
// It is non-fatal: the order may still be persisted.
type HandoffFailure struct {
	Reason string
}

func (e *HandoffFailure) Error() string {
	return e.Reason
}
