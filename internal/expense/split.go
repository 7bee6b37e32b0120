package expense

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/mmynk/expenseflow/internal/models"
	"github.com/mmynk/expenseflow/internal/storage"
)

// maxConcurrentLookups bounds participant lookups issued for one request.
const maxConcurrentLookups = 8

// ItemInput is one requested item of a create or update call.
// An empty Splits means the creator owns the whole item.
type ItemInput struct {
	Name     string
	Quantity int64
	Price    decimal.Decimal
	Splits   []Proportion
}

// ParticipantResolver looks up users referenced by splits.
type ParticipantResolver interface {
	GetUserByID(ctx context.Context, id string) (*models.User, error)
}

// SplitFactory turns requested items into items with shares.
type SplitFactory struct {
	resolver ParticipantResolver
}

// NewSplitFactory creates a SplitFactory that resolves participants through resolver.
func NewSplitFactory(resolver ParticipantResolver) *SplitFactory {
	return &SplitFactory{resolver: resolver}
}

// BuildItems validates inputs and produces items with shares for creatorID.
//
// Items without explicit splits get a single share owned by the creator with status
// paid. Items with explicit splits get one share per entry; the creator's own entry is
// paid and every other entry is requested. IDs are left empty for the store to assign.
func (f *SplitFactory) BuildItems(ctx context.Context, creatorID string, inputs []ItemInput) ([]models.Item, error) {
	if len(inputs) == 0 {
		return nil, &ValidationError{Field: "items", Message: "an expense needs at least one item"}
	}

	for _, in := range inputs {
		if err := validateItem(in); err != nil {
			return nil, err
		}
	}

	if err := f.resolveParticipants(ctx, creatorID, inputs); err != nil {
		return nil, err
	}

	items := make([]models.Item, len(inputs))
	for i, in := range inputs {
		items[i] = models.Item{
			Name:     in.Name,
			Quantity: in.Quantity,
			Price:    in.Price,
			Shares:   buildShares(creatorID, in.Splits),
		}
	}
	return items, nil
}

func validateItem(in ItemInput) error {
	if in.Name == "" {
		return &ValidationError{Field: "name", Message: "item name is required"}
	}
	if in.Quantity < 0 {
		return &ValidationError{Field: "quantity", Message: fmt.Sprintf("%d for item %q is negative", in.Quantity, in.Name)}
	}
	if in.Price.IsNegative() {
		return &ValidationError{Field: "price", Message: fmt.Sprintf("%s for item %q is negative", in.Price, in.Name)}
	}
	if len(in.Splits) == 0 {
		return nil
	}
	return ValidateProportions(in.Name, in.Splits)
}

// resolveParticipants checks that every referenced participant exists. Lookups are
// independent, so they run concurrently.
func (f *SplitFactory) resolveParticipants(ctx context.Context, creatorID string, inputs []ItemInput) error {
	seen := map[string]bool{creatorID: true}
	var ids []string
	for _, in := range inputs {
		for _, s := range in.Splits {
			if !seen[s.ParticipantID] {
				seen[s.ParticipantID] = true
				ids = append(ids, s.ParticipantID)
			}
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentLookups)
	for _, id := range ids {
		g.Go(func() error {
			user, err := f.resolver.GetUserByID(gctx, id)
			if errors.Is(err, storage.ErrNotFound) || (err == nil && user == nil) {
				return &NotFoundError{Kind: "participant", ID: id}
			}
			if err != nil {
				return fmt.Errorf("failed to resolve participant %s: %w", id, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		slog.Debug("Participant resolution failed", "creator_id", creatorID, "error", err)
		return err
	}
	return nil
}

func buildShares(creatorID string, splits []Proportion) []models.Share {
	if len(splits) == 0 {
		return []models.Share{{
			ParticipantID: creatorID,
			Proportion:    1.0,
			Status:        models.StatusPaid,
		}}
	}

	shares := make([]models.Share, len(splits))
	for i, s := range splits {
		status := models.StatusRequested
		if s.ParticipantID == creatorID {
			status = models.StatusPaid
		}
		shares[i] = models.Share{
			ParticipantID: s.ParticipantID,
			Proportion:    s.Proportion,
			Status:        status,
		}
	}
	return shares
}
