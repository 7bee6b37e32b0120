package expense

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mmynk/expenseflow/internal/calculator"
	"github.com/mmynk/expenseflow/internal/metrics"
	"github.com/mmynk/expenseflow/internal/models"
	"github.com/mmynk/expenseflow/internal/storage"
)

// CreateInput is a request to create an expense. An empty ParentID attributes the
// expense to the creator.
type CreateInput struct {
	Name        string
	Description string
	Category    models.Category
	ExpenseDate int64
	ParentID    string
	Items       []ItemInput
}

// UpdateInput replaces the mutable fields and all items of an expense.
type UpdateInput struct {
	Name        string
	Description string
	Category    models.Category
	ExpenseDate int64
	Items       []ItemInput
}

// Service orchestrates expense creation, updates and status changes on top of a store.
type Service struct {
	store   storage.Store
	factory *SplitFactory
}

// NewService creates a Service backed by store. The store also resolves participants.
func NewService(store storage.Store) *Service {
	return &Service{
		store:   store,
		factory: NewSplitFactory(store),
	}
}

// Create builds items and shares for the creator and persists the expense atomically.
// Any authenticated user may create an expense for themselves or for a parent they name.
func (s *Service) Create(ctx context.Context, creatorID string, in CreateInput) (*models.Expense, error) {
	if err := validateFields(in.Name, in.Category); err != nil {
		return nil, err
	}

	parent, err := s.resolveParent(ctx, creatorID, in.ParentID)
	if err != nil {
		return nil, err
	}

	items, err := s.factory.BuildItems(ctx, creatorID, in.Items)
	if err != nil {
		return nil, err
	}

	expense := &models.Expense{
		Name:        in.Name,
		Description: in.Description,
		Category:    in.Category,
		ExpenseDate: in.ExpenseDate,
		UploaderID:  creatorID,
		ParentID:    parent.EntityID(),
		ParentKind:  parent.EntityKind(),
		Items:       items,
	}
	if err := s.store.CreateExpense(ctx, expense); err != nil {
		return nil, fmt.Errorf("failed to create expense: %w", err)
	}

	metrics.ExpensesCreated.Inc()
	slog.Info("Expense created",
		"expense_id", expense.ID,
		"uploader_id", creatorID,
		"parent_id", expense.ParentID,
		"items_count", len(expense.Items),
	)
	return expense, nil
}

// Get returns an expense visible to the actor. Expenses the actor cannot see are
// reported as not found.
func (s *Service) Get(ctx context.Context, actorID, expenseID string) (*models.Expense, error) {
	expense, err := s.store.GetExpense(ctx, expenseID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, &NotFoundError{Kind: "expense", ID: expenseID}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}

	visible, err := s.canView(ctx, actorID, expense)
	if err != nil {
		return nil, err
	}
	if !visible {
		return nil, &NotFoundError{Kind: "expense", ID: expenseID}
	}
	return expense, nil
}

// Update rewrites an expense. Only the uploader or the owning parent may update, and
// only while every share is still requested. An expense split solely with its
// uploader can always be edited by the uploader. Items and shares are rebuilt from
// scratch, so progress made on the old shares is discarded.
func (s *Service) Update(ctx context.Context, actorID, expenseID string, in UpdateInput) (*models.Expense, error) {
	if err := validateFields(in.Name, in.Category); err != nil {
		return nil, err
	}

	current, err := s.Get(ctx, actorID, expenseID)
	if err != nil {
		return nil, err
	}

	check := func(e *models.Expense) error { return authorizeEdit(e, actorID, "update") }
	if err := check(current); err != nil {
		s.recordMutation("update", err)
		return nil, err
	}

	// Rebuilt shares start over: the uploader's are paid as on create, the rest requested.
	items, err := s.factory.BuildItems(ctx, current.UploaderID, in.Items)
	if err != nil {
		return nil, err
	}

	replacement := &models.Expense{
		Name:        in.Name,
		Description: in.Description,
		Category:    in.Category,
		ExpenseDate: in.ExpenseDate,
		Items:       items,
	}
	if err := s.store.ReplaceExpense(ctx, expenseID, check, replacement); err != nil {
		s.recordMutation("update", err)
		return nil, s.storeError(expenseID, err)
	}
	s.recordMutation("update", nil)

	slog.Info("Expense updated", "expense_id", expenseID, "actor_id", actorID, "items_count", len(items))
	return s.Get(ctx, actorID, expenseID)
}

// Delete removes an expense under the same permission and lock rules as Update.
func (s *Service) Delete(ctx context.Context, actorID, expenseID string) error {
	if _, err := s.Get(ctx, actorID, expenseID); err != nil {
		return err
	}

	check := func(e *models.Expense) error { return authorizeEdit(e, actorID, "delete") }
	if err := s.store.DeleteExpense(ctx, expenseID, check); err != nil {
		s.recordMutation("delete", err)
		return s.storeError(expenseID, err)
	}
	s.recordMutation("delete", nil)

	slog.Info("Expense deleted", "expense_id", expenseID, "actor_id", actorID)
	return nil
}

// ParticipantStatus returns the status of participantID within an expense the actor can see.
func (s *Service) ParticipantStatus(ctx context.Context, actorID, expenseID, participantID string) (models.Status, error) {
	expense, err := s.Get(ctx, actorID, expenseID)
	if err != nil {
		return "", err
	}
	status, err := ParticipantStatus(expense, participantID)
	if err != nil {
		logConsistency(err, "expense_id", expenseID, "participant_id", participantID)
		return "", err
	}
	return status, nil
}

// AggregateStatus returns the least settled share status of an expense.
func (s *Service) AggregateStatus(ctx context.Context, actorID, expenseID string) (models.Status, error) {
	expense, err := s.Get(ctx, actorID, expenseID)
	if err != nil {
		return "", err
	}
	status, err := AggregateStatus(expense)
	if err != nil {
		logConsistency(err, "expense_id", expenseID)
		return "", err
	}
	return status, nil
}

// AllStatuses returns every share holder's status.
func (s *Service) AllStatuses(ctx context.Context, actorID, expenseID string) ([]ParticipantState, error) {
	expense, err := s.Get(ctx, actorID, expenseID)
	if err != nil {
		return nil, err
	}
	states, err := AllStatuses(expense)
	if err != nil {
		logConsistency(err, "expense_id", expenseID)
		return nil, err
	}
	return states, nil
}

// SetStatus moves all of the actor's shares in an expense to target, if the
// transition guard accepts it. The guard runs inside the store transaction against
// the freshly read expense.
func (s *Service) SetStatus(ctx context.Context, actorID, expenseID string, target models.Status) (*models.Expense, error) {
	if !target.Valid() {
		return nil, &ValidationError{Field: "status", Message: fmt.Sprintf("unknown status %q", target)}
	}
	if _, err := s.Get(ctx, actorID, expenseID); err != nil {
		return nil, err
	}

	var from models.Status
	check := func(e *models.Expense) error {
		if !holdsShares(e, actorID) {
			return &NotAParticipantError{ExpenseID: e.ID, ParticipantID: actorID}
		}
		participant, err := ParticipantStatus(e, actorID)
		if err != nil {
			return err
		}
		from = participant
		aggregate, err := AggregateStatus(e)
		if err != nil {
			return err
		}

		ok, err := ValidateTransition(target, participant, aggregate)
		if err != nil {
			return err
		}
		if !ok {
			return &TransitionRejectedError{Target: target, Participant: participant, Expense: aggregate}
		}
		return nil
	}

	err := s.store.SetParticipantStatus(ctx, expenseID, actorID, check, target)
	metrics.StatusTransitions.WithLabelValues(string(from), string(target), transitionResult(err)).Inc()
	if err != nil {
		logConsistency(err, "expense_id", expenseID, "participant_id", actorID, "target", target)
		return nil, s.storeError(expenseID, err)
	}

	slog.Info("Participant status changed",
		"expense_id", expenseID,
		"participant_id", actorID,
		"from", from,
		"to", target,
	)
	return s.Get(ctx, actorID, expenseID)
}

// ListUploaded returns every expense the actor uploaded.
func (s *Service) ListUploaded(ctx context.Context, actorID string) ([]*models.Expense, error) {
	expenses, err := s.store.ListExpensesByUploader(ctx, actorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list uploaded expenses: %w", err)
	}
	return expenses, nil
}

// ListOwned returns the expenses owned by parentID, which must be the actor or a
// group the actor belongs to.
func (s *Service) ListOwned(ctx context.Context, actorID, parentID string) ([]*models.Expense, error) {
	if err := s.authorizeParent(ctx, actorID, parentID); err != nil {
		return nil, err
	}
	expenses, err := s.store.ListExpensesByParent(ctx, parentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list owned expenses: %w", err)
	}
	return expenses, nil
}

// Overview totals the expenses the actor uploaded, overall and per category.
func (s *Service) Overview(ctx context.Context, actorID string) (calculator.Overview, error) {
	expenses, err := s.ListUploaded(ctx, actorID)
	if err != nil {
		return calculator.Overview{}, err
	}
	return calculator.Summarize(expenses), nil
}

// Outstanding computes unpaid balances across the expenses owned by parentID.
func (s *Service) Outstanding(ctx context.Context, actorID, parentID string) ([]calculator.MemberBalance, []calculator.DebtEdge, error) {
	expenses, err := s.ListOwned(ctx, actorID, parentID)
	if err != nil {
		return nil, nil, err
	}
	balances, debts := calculator.CalculateOutstanding(expenses)
	return balances, debts, nil
}

func (s *Service) resolveParent(ctx context.Context, creatorID, parentID string) (models.Entity, error) {
	if parentID == "" {
		parentID = creatorID
	}
	parent, err := s.store.GetEntity(ctx, parentID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, &NotFoundError{Kind: "parent", ID: parentID}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to resolve parent: %w", err)
	}
	return parent, nil
}

func (s *Service) authorizeParent(ctx context.Context, actorID, parentID string) error {
	if parentID == "" || parentID == actorID {
		return nil
	}
	parent, err := s.store.GetEntity(ctx, parentID)
	if errors.Is(err, storage.ErrNotFound) {
		return &NotFoundError{Kind: "parent", ID: parentID}
	}
	if err != nil {
		return fmt.Errorf("failed to resolve parent: %w", err)
	}
	if group, ok := parent.(*models.Group); ok && group.HasMember(actorID) {
		return nil
	}
	return &PermissionError{ActorID: actorID, ExpenseID: parentID, Action: "list expenses of"}
}

// canView reports whether the actor uploaded, owns, holds a share in, or belongs to
// the group owning the expense.
func (s *Service) canView(ctx context.Context, actorID string, e *models.Expense) (bool, error) {
	if e.IsOwnedBy(actorID) || holdsShares(e, actorID) {
		return true, nil
	}
	if e.ParentKind != models.EntityKindGroup {
		return false, nil
	}
	group, err := s.store.GetGroup(ctx, e.ParentID)
	if errors.Is(err, storage.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to get parent group: %w", err)
	}
	return group.HasMember(actorID), nil
}

// storeError converts store failures into domain errors. Errors raised by checks
// already are domain errors and pass through.
func (s *Service) storeError(expenseID string, err error) error {
	if errors.Is(err, storage.ErrNotFound) {
		return &NotFoundError{Kind: "expense", ID: expenseID}
	}
	return err
}

func (s *Service) recordMutation(operation string, err error) {
	result := "ok"
	switch {
	case err == nil:
	case errors.Is(err, ErrPermission):
		result = "forbidden"
	case errors.Is(err, ErrLocked):
		result = "locked"
	default:
		result = "error"
	}
	metrics.ExpenseMutations.WithLabelValues(operation, result).Inc()
}

// authorizeEdit enforces who may rewrite an expense and when.
func authorizeEdit(e *models.Expense, actorID, action string) error {
	if soleCreatorSplit(e) && actorID == e.UploaderID {
		return nil
	}
	if !e.IsOwnedBy(actorID) {
		return &PermissionError{ActorID: actorID, ExpenseID: e.ID, Action: action}
	}
	status, err := AggregateStatus(e)
	if err != nil {
		return err
	}
	if status != models.StatusRequested {
		return &LockedStateError{ExpenseID: e.ID, Status: status}
	}
	return nil
}

func validateFields(name string, category models.Category) error {
	if name == "" {
		return &ValidationError{Field: "name", Message: "expense name is required"}
	}
	if _, err := models.ParseCategory(string(category)); err != nil {
		return &ValidationError{Field: "category", Message: err.Error()}
	}
	return nil
}

func transitionResult(err error) string {
	switch {
	case err == nil:
		return "accepted"
	case errors.Is(err, ErrTransitionRejected):
		return "rejected"
	case errors.Is(err, ErrInvalidState):
		return "invalid_state"
	default:
		return "error"
	}
}

// logConsistency logs corrupted-state errors loudly; other errors are left to the caller.
func logConsistency(err error, args ...any) {
	if !IsInternalConsistency(err) {
		return
	}
	slog.Error("Expense state violates invariants", append(args, "error", err)...)
}
