package expense

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateProportions(t *testing.T) {
	third := 1.0 / 3.0

	tests := []struct {
		name    string
		splits  []Proportion
		wantErr error
	}{
		{
			name:   "single full share",
			splits: []Proportion{{"alice", 1.0}},
		},
		{
			name:   "halves",
			splits: []Proportion{{"alice", 0.5}, {"bob", 0.5}},
		},
		{
			name:   "thirds",
			splits: []Proportion{{"alice", third}, {"bob", third}, {"carol", third}},
		},
		{
			name:    "under one",
			splits:  []Proportion{{"alice", 0.5}, {"bob", 0.25}},
			wantErr: ErrValidation,
		},
		{
			name:    "over one",
			splits:  []Proportion{{"alice", 0.75}, {"bob", 0.5}},
			wantErr: ErrValidation,
		},
		{
			name:    "zero proportion",
			splits:  []Proportion{{"alice", 1.0}, {"bob", 0}},
			wantErr: ErrValidation,
		},
		{
			name:    "negative proportion",
			splits:  []Proportion{{"alice", 1.5}, {"bob", -0.5}},
			wantErr: ErrValidation,
		},
		{
			name:    "duplicate participant",
			splits:  []Proportion{{"alice", 0.5}, {"alice", 0.5}},
			wantErr: ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateProportions("Pizza", tt.splits)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestValidateProportions_ExactSum(t *testing.T) {
	// Ten tenths accumulate to 0.9999999999999999.
	splits := make([]Proportion, 10)
	for i := range splits {
		splits[i] = Proportion{ParticipantID: string(rune('a' + i)), Proportion: 0.1}
	}

	err := ValidateProportions("Dinner", splits)
	var imbalanced *ImbalancedSplitError
	require.True(t, errors.As(err, &imbalanced), "got %v", err)
	assert.Equal(t, "Dinner", imbalanced.Item)
	assert.NotEqual(t, 1.0, imbalanced.Sum)
}

func TestValidateProportions_DuplicateCheckedFirst(t *testing.T) {
	// Imbalanced as well as duplicated: the duplicate wins.
	err := ValidateProportions("Taxi", []Proportion{{"bob", 0.2}, {"bob", 0.2}})

	var dup *DuplicateParticipantError
	require.True(t, errors.As(err, &dup), "got %v", err)
	assert.Equal(t, "bob", dup.ParticipantID)
	assert.Contains(t, err.Error(), "bob")
}
