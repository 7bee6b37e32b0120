package expense

import (
	"errors"
	"fmt"

	"github.com/mmynk/expenseflow/internal/models"
)

// Sentinel errors. Every structured error below unwraps to exactly one of these,
// so callers can classify failures with errors.Is.
var (
	// ErrValidation covers client input that can be fixed by resubmitting.
	ErrValidation = errors.New("validation failed")

	ErrNotFound           = errors.New("not found")
	ErrPermission         = errors.New("permission denied")
	ErrLocked             = errors.New("expense is locked")
	ErrNotAParticipant    = errors.New("not a participant")
	ErrTransitionRejected = errors.New("status transition rejected")

	// ErrInvalidState means stored statuses contradict each other in a way the
	// transition guard should have made impossible.
	ErrInvalidState = errors.New("invalid expense state")

	// ErrInconsistentState means one participant's shares within an expense carry
	// different statuses.
	ErrInconsistentState = errors.New("inconsistent expense state")
)

// ValidationError reports a malformed field in a create or update request.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// ImbalancedSplitError is returned when an item's proportions do not sum to exactly 1.
type ImbalancedSplitError struct {
	Item string
	Sum  float64
}

func (e *ImbalancedSplitError) Error() string {
	return fmt.Sprintf("the total proportion of item %q is %v, it must add to 1", e.Item, e.Sum)
}

func (e *ImbalancedSplitError) Unwrap() error { return ErrValidation }

// DuplicateParticipantError is returned when one participant appears twice in an item's splits.
type DuplicateParticipantError struct {
	Item          string
	ParticipantID string
}

func (e *DuplicateParticipantError) Error() string {
	return fmt.Sprintf("participant '%s' is duplicated in splits for item %q", e.ParticipantID, e.Item)
}

func (e *DuplicateParticipantError) Unwrap() error { return ErrValidation }

// NotFoundError reports a failed lookup. Kind is "expense", "participant" or "parent".
type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s under the id '%s' could not be found", e.Kind, e.ID)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// PermissionError is returned when the actor may not perform Action on the expense.
type PermissionError struct {
	ActorID   string
	ExpenseID string
	Action    string
}

func (e *PermissionError) Error() string {
	return fmt.Sprintf("user '%s' may not %s expense '%s'", e.ActorID, e.Action, e.ExpenseID)
}

func (e *PermissionError) Unwrap() error { return ErrPermission }

// LockedStateError is returned when an expense has progressed past requested and
// can no longer be rewritten.
type LockedStateError struct {
	ExpenseID string
	Status    models.Status
}

func (e *LockedStateError) Error() string {
	return fmt.Sprintf("expense '%s' is %s and can no longer be changed", e.ExpenseID, e.Status)
}

func (e *LockedStateError) Unwrap() error { return ErrLocked }

// InvalidStateError is raised by the transition guard when its preconditions fail.
type InvalidStateError struct {
	Participant models.Status
	Expense     models.Status
	Reason      string
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("invalid state (participant %s, expense %s): %s", e.Participant, e.Expense, e.Reason)
}

func (e *InvalidStateError) Unwrap() error { return ErrInvalidState }

// InconsistentStateError is returned when a participant's shares disagree on status,
// or an expense has no shares at all.
type InconsistentStateError struct {
	ExpenseID     string
	ParticipantID string
	Statuses      []models.Status
}

func (e *InconsistentStateError) Error() string {
	if e.ParticipantID == "" {
		return fmt.Sprintf("expense '%s' has no shares", e.ExpenseID)
	}
	return fmt.Sprintf("participant '%s' has mixed statuses %v in expense '%s'",
		e.ParticipantID, e.Statuses, e.ExpenseID)
}

func (e *InconsistentStateError) Unwrap() error { return ErrInconsistentState }

// NotAParticipantError is returned when a user has no stake in an expense.
type NotAParticipantError struct {
	ExpenseID     string
	ParticipantID string
}

func (e *NotAParticipantError) Error() string {
	return fmt.Sprintf("user '%s' is not a participant of expense '%s'", e.ParticipantID, e.ExpenseID)
}

func (e *NotAParticipantError) Unwrap() error { return ErrNotAParticipant }

// TransitionRejectedError is returned when the guard refuses a status change.
type TransitionRejectedError struct {
	Target      models.Status
	Participant models.Status
	Expense     models.Status
}

func (e *TransitionRejectedError) Error() string {
	return fmt.Sprintf("cannot move from %s to %s while the expense is %s", e.Participant, e.Target, e.Expense)
}

func (e *TransitionRejectedError) Unwrap() error { return ErrTransitionRejected }

// IsClientError returns true if the error is due to invalid client input or state
// the client can act upon.
func IsClientError(err error) bool {
	return errors.Is(err, ErrValidation) ||
		errors.Is(err, ErrLocked) ||
		errors.Is(err, ErrTransitionRejected) ||
		errors.Is(err, ErrInvalidState) ||
		errors.Is(err, ErrNotAParticipant)
}

// IsInternalConsistency reports errors that indicate corrupted stored state.
func IsInternalConsistency(err error) bool {
	return errors.Is(err, ErrInvalidState) || errors.Is(err, ErrInconsistentState)
}
