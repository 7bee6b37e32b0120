package expense

import "fmt"

// Proportion is one participant's requested fraction of an item.
type Proportion struct {
	ParticipantID string
	Proportion    float64
}

// ValidateProportions checks that splits reference distinct participants, that each
// proportion lies in (0, 1], and that the proportions sum to exactly 1.
//
// The sum is compared with == and no tolerance: 1/3 + 1/3 + 1/3 passes, 0.1 * 10
// accumulated term by term does not.
func ValidateProportions(item string, splits []Proportion) error {
	seen := make(map[string]bool, len(splits))
	for _, s := range splits {
		if seen[s.ParticipantID] {
			return &DuplicateParticipantError{Item: item, ParticipantID: s.ParticipantID}
		}
		seen[s.ParticipantID] = true
	}

	var sum float64
	for _, s := range splits {
		if s.ParticipantID == "" {
			return &ValidationError{Field: "participant_id", Message: fmt.Sprintf("missing in splits for item %q", item)}
		}
		if s.Proportion <= 0 || s.Proportion > 1 {
			return &ValidationError{
				Field:   "proportion",
				Message: fmt.Sprintf("%v for participant '%s' is outside (0, 1]", s.Proportion, s.ParticipantID),
			}
		}
		sum += s.Proportion
	}
	if sum != 1.0 {
		return &ImbalancedSplitError{Item: item, Sum: sum}
	}
	return nil
}
