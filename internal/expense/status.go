package expense

import (
	"sort"

	"github.com/mmynk/expenseflow/internal/models"
)

// AggregateStatus returns the lowest-ranked status across every share of the
// expense: an expense is only as settled as its least settled share.
func AggregateStatus(e *models.Expense) (models.Status, error) {
	var lowest models.Status
	for _, share := range e.Shares() {
		if lowest == "" || share.Status.Less(lowest) {
			lowest = share.Status
		}
	}
	if lowest == "" {
		return "", &InconsistentStateError{ExpenseID: e.ID}
	}
	return lowest, nil
}

// ParticipantStatus returns one participant's status within the expense.
//
// All of a participant's shares must carry the same status; mixed statuses are
// reported as InconsistentStateError. A participant without shares who uploaded or
// owns the expense is implicitly paid.
func ParticipantStatus(e *models.Expense, participantID string) (models.Status, error) {
	var (
		status   models.Status
		statuses []models.Status
		mixed    bool
	)
	for _, share := range e.Shares() {
		if share.ParticipantID != participantID {
			continue
		}
		if status != "" && share.Status != status {
			mixed = true
		}
		status = share.Status
		statuses = append(statuses, share.Status)
	}

	if mixed {
		return "", &InconsistentStateError{
			ExpenseID:     e.ID,
			ParticipantID: participantID,
			Statuses:      statuses,
		}
	}
	if status != "" {
		return status, nil
	}
	if e.IsOwnedBy(participantID) {
		return models.StatusPaid, nil
	}
	return "", &NotAParticipantError{ExpenseID: e.ID, ParticipantID: participantID}
}

// ParticipantState pairs a participant with their uniform status.
type ParticipantState struct {
	ParticipantID string
	Status        models.Status
}

// AllStatuses returns the status of every share holder, ordered by participant ID.
func AllStatuses(e *models.Expense) ([]ParticipantState, error) {
	participants := e.Participants()
	states := make([]ParticipantState, 0, len(participants))
	for _, id := range participants {
		status, err := ParticipantStatus(e, id)
		if err != nil {
			return nil, err
		}
		states = append(states, ParticipantState{ParticipantID: id, Status: status})
	}
	sort.Slice(states, func(i, j int) bool {
		return states[i].ParticipantID < states[j].ParticipantID
	})
	return states, nil
}

// holdsShares reports whether participantID has at least one share in the expense.
func holdsShares(e *models.Expense, participantID string) bool {
	for _, share := range e.Shares() {
		if share.ParticipantID == participantID {
			return true
		}
	}
	return false
}

// soleCreatorSplit reports whether every share of the expense belongs to its uploader.
func soleCreatorSplit(e *models.Expense) bool {
	shares := e.Shares()
	if len(shares) == 0 {
		return false
	}
	for _, share := range shares {
		if share.ParticipantID != e.UploaderID {
			return false
		}
	}
	return true
}
