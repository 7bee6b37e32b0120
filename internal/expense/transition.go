package expense

import "github.com/mmynk/expenseflow/internal/models"

// ValidateTransition decides whether a participant currently at participant may move
// to target while the expense as a whole is at expense.
//
// It returns an *InvalidStateError when the inputs themselves are impossible (the
// expense outranks the participant, or the two are a full state apart). Otherwise it
// returns true to accept and false to reject. Rules, first match wins:
//
//  1. target == participant == expense: accept (no-op).
//  2. target is two ranks from participant or from expense: reject.
//  3. participant == expense and target is one rank below: reject.
//  4. accept.
func ValidateTransition(target, participant, expense models.Status) (bool, error) {
	if expense.Rank() > participant.Rank() {
		return false, &InvalidStateError{
			Participant: participant,
			Expense:     expense,
			Reason:      "expense status outranks participant status",
		}
	}
	if gap(participant, expense) == 2 {
		return false, &InvalidStateError{
			Participant: participant,
			Expense:     expense,
			Reason:      "participant and expense statuses are a full state apart",
		}
	}

	if target == participant && participant == expense {
		return true, nil
	}
	if gap(target, participant) == 2 || gap(target, expense) == 2 {
		return false, nil
	}
	if expense == participant && target.Rank() == participant.Rank()-1 {
		return false, nil
	}
	return true, nil
}

func gap(a, b models.Status) int {
	d := a.Rank() - b.Rank()
	if d < 0 {
		return -d
	}
	return d
}
