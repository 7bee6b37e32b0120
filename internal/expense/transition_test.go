package expense

import (
	"errors"
	"fmt"
	"testing"

	"github.com/mmynk/expenseflow/internal/models"
)

type outcome int

const (
	accept outcome = iota
	reject
	invalid
)

func TestValidateTransition(t *testing.T) {
	r, a, p := models.StatusRequested, models.StatusAccepted, models.StatusPaid

	tests := []struct {
		target, participant, expense models.Status
		want                         outcome
	}{
		{r, r, r, accept},
		{r, r, a, invalid},
		{r, r, p, invalid},
		{r, a, r, accept},
		{r, a, a, reject},
		{r, a, p, invalid},
		{r, p, r, invalid},
		{r, p, a, reject},
		{r, p, p, reject},

		{a, r, r, accept},
		{a, r, a, invalid},
		{a, r, p, invalid},
		{a, a, r, accept},
		{a, a, a, accept},
		{a, a, p, invalid},
		{a, p, r, invalid},
		{a, p, a, accept},
		{a, p, p, reject},

		{p, r, r, reject},
		{p, r, a, invalid},
		{p, r, p, invalid},
		{p, a, r, reject},
		{p, a, a, accept},
		{p, a, p, invalid},
		{p, p, r, invalid},
		{p, p, a, accept},
		{p, p, p, accept},
	}

	for _, tt := range tests {
		name := fmt.Sprintf("%s->%s/expense_%s", tt.participant, tt.target, tt.expense)
		t.Run(name, func(t *testing.T) {
			ok, err := ValidateTransition(tt.target, tt.participant, tt.expense)
			switch tt.want {
			case invalid:
				var stateErr *InvalidStateError
				if !errors.As(err, &stateErr) {
					t.Fatalf("expected InvalidStateError, got ok=%v err=%v", ok, err)
				}
				if !errors.Is(err, ErrInvalidState) {
					t.Errorf("expected error to unwrap to ErrInvalidState")
				}
			case accept:
				if err != nil || !ok {
					t.Fatalf("expected accept, got ok=%v err=%v", ok, err)
				}
			case reject:
				if err != nil || ok {
					t.Fatalf("expected reject, got ok=%v err=%v", ok, err)
				}
			}
		})
	}
}
