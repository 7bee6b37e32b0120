package service

import (
	"context"
	"fmt"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/expenseflow/internal/expense"
	"github.com/mmynk/expenseflow/internal/idempotency"
	"github.com/mmynk/expenseflow/internal/models"
	"github.com/mmynk/expenseflow/pkg/api"
	"github.com/mmynk/expenseflow/pkg/api/apiconnect"
)

// IdempotencyKeyHeader carries a client-chosen key that makes CreateExpense safe to retry.
const IdempotencyKeyHeader = "Idempotency-Key"

// ExpenseService implements the Connect ExpenseService.
type ExpenseService struct {
	expenses    *expense.Service
	idempotency idempotency.Guard
}

var _ apiconnect.ExpenseServiceHandler = (*ExpenseService)(nil)

// NewExpenseService creates an ExpenseService. A nil guard disables idempotency keys.
func NewExpenseService(expenses *expense.Service, guard idempotency.Guard) *ExpenseService {
	if guard == nil {
		guard = idempotency.Noop{}
	}
	return &ExpenseService{expenses: expenses, idempotency: guard}
}

// CreateExpense creates an expense uploaded by the caller.
func (s *ExpenseService) CreateExpense(ctx context.Context, req *connect.Request[api.CreateExpenseRequest]) (*connect.Response[api.CreateExpenseResponse], error) {
	userID, err := actorID(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("CreateExpense request received",
		"user_id", userID,
		"name", req.Msg.Name,
		"items_count", len(req.Msg.Items),
	)

	key := req.Header().Get(IdempotencyKeyHeader)
	if key != "" {
		fresh, err := s.idempotency.Claim(ctx, userID, key)
		if err != nil {
			slog.Error("Idempotency check failed", "user_id", userID, "error", err)
			return nil, connect.NewError(connect.CodeUnavailable, fmt.Errorf("idempotency check failed: %w", err))
		}
		if !fresh {
			return nil, connect.NewError(connect.CodeAlreadyExists, fmt.Errorf("request with idempotency key %q already processed", key))
		}
	}

	created, err := s.expenses.Create(ctx, userID, expense.CreateInput{
		Name:        req.Msg.Name,
		Description: req.Msg.Description,
		Category:    models.Category(req.Msg.Category),
		ExpenseDate: req.Msg.ExpenseDate,
		ParentID:    req.Msg.ParentID,
		Items:       fromAPIItems(req.Msg.Items),
	})
	if err != nil {
		if key != "" {
			if relErr := s.idempotency.Release(ctx, userID, key); relErr != nil {
				slog.Warn("Failed to release idempotency key", "user_id", userID, "error", relErr)
			}
		}
		return nil, toConnectError(err)
	}

	out, err := toAPIExpense(created)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.CreateExpenseResponse{Expense: out}), nil
}

// GetExpense returns an expense visible to the caller.
func (s *ExpenseService) GetExpense(ctx context.Context, req *connect.Request[api.GetExpenseRequest]) (*connect.Response[api.GetExpenseResponse], error) {
	userID, err := actorID(ctx)
	if err != nil {
		return nil, err
	}

	e, err := s.expenses.Get(ctx, userID, req.Msg.ExpenseID)
	if err != nil {
		return nil, toConnectError(err)
	}
	out, err := toAPIExpense(e)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.GetExpenseResponse{Expense: out}), nil
}

// UpdateExpense rewrites an expense and all of its items.
func (s *ExpenseService) UpdateExpense(ctx context.Context, req *connect.Request[api.UpdateExpenseRequest]) (*connect.Response[api.UpdateExpenseResponse], error) {
	userID, err := actorID(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("UpdateExpense request received",
		"user_id", userID,
		"expense_id", req.Msg.ExpenseID,
		"items_count", len(req.Msg.Items),
	)

	updated, err := s.expenses.Update(ctx, userID, req.Msg.ExpenseID, expense.UpdateInput{
		Name:        req.Msg.Name,
		Description: req.Msg.Description,
		Category:    models.Category(req.Msg.Category),
		ExpenseDate: req.Msg.ExpenseDate,
		Items:       fromAPIItems(req.Msg.Items),
	})
	if err != nil {
		return nil, toConnectError(err)
	}

	out, err := toAPIExpense(updated)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.UpdateExpenseResponse{Expense: out}), nil
}

// DeleteExpense removes an expense.
func (s *ExpenseService) DeleteExpense(ctx context.Context, req *connect.Request[api.DeleteExpenseRequest]) (*connect.Response[api.DeleteExpenseResponse], error) {
	userID, err := actorID(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("DeleteExpense request received", "user_id", userID, "expense_id", req.Msg.ExpenseID)

	if err := s.expenses.Delete(ctx, userID, req.Msg.ExpenseID); err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.DeleteExpenseResponse{}), nil
}

// ListUploadedExpenses lists the caller's uploads, newest first.
func (s *ExpenseService) ListUploadedExpenses(ctx context.Context, req *connect.Request[api.ListUploadedExpensesRequest]) (*connect.Response[api.ListUploadedExpensesResponse], error) {
	userID, err := actorID(ctx)
	if err != nil {
		return nil, err
	}

	expenses, err := s.expenses.ListUploaded(ctx, userID)
	if err != nil {
		return nil, toConnectError(err)
	}
	out, err := toAPIExpenses(expenses)
	if err != nil {
		return nil, toConnectError(err)
	}

	slog.Info("ListUploadedExpenses successful", "user_id", userID, "count", len(out))
	return connect.NewResponse(&api.ListUploadedExpensesResponse{Expenses: out}), nil
}

// ListOwnedExpenses lists expenses owned by the caller or one of their groups.
func (s *ExpenseService) ListOwnedExpenses(ctx context.Context, req *connect.Request[api.ListOwnedExpensesRequest]) (*connect.Response[api.ListOwnedExpensesResponse], error) {
	userID, err := actorID(ctx)
	if err != nil {
		return nil, err
	}
	parentID := req.Msg.ParentID
	if parentID == "" {
		parentID = userID
	}

	expenses, err := s.expenses.ListOwned(ctx, userID, parentID)
	if err != nil {
		return nil, toConnectError(err)
	}
	out, err := toAPIExpenses(expenses)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.ListOwnedExpensesResponse{Expenses: out}), nil
}

func (s *ExpenseService) GetParticipantStatus(ctx context.Context, req *connect.Request[api.GetParticipantStatusRequest]) (*connect.Response[api.GetParticipantStatusResponse], error) {
	userID, err := actorID(ctx)
	if err != nil {
		return nil, err
	}
	participantID := req.Msg.ParticipantID
	if participantID == "" {
		participantID = userID
	}

	status, err := s.expenses.ParticipantStatus(ctx, userID, req.Msg.ExpenseID, participantID)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.GetParticipantStatusResponse{Status: string(status)}), nil
}

func (s *ExpenseService) GetAggregateStatus(ctx context.Context, req *connect.Request[api.GetAggregateStatusRequest]) (*connect.Response[api.GetAggregateStatusResponse], error) {
	userID, err := actorID(ctx)
	if err != nil {
		return nil, err
	}

	status, err := s.expenses.AggregateStatus(ctx, userID, req.Msg.ExpenseID)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.GetAggregateStatusResponse{Status: string(status)}), nil
}

func (s *ExpenseService) GetAllStatuses(ctx context.Context, req *connect.Request[api.GetAllStatusesRequest]) (*connect.Response[api.GetAllStatusesResponse], error) {
	userID, err := actorID(ctx)
	if err != nil {
		return nil, err
	}

	states, err := s.expenses.AllStatuses(ctx, userID, req.Msg.ExpenseID)
	if err != nil {
		return nil, toConnectError(err)
	}
	out := make([]*api.ParticipantStatus, len(states))
	for i, st := range states {
		out[i] = &api.ParticipantStatus{ParticipantID: st.ParticipantID, Status: string(st.Status)}
	}
	return connect.NewResponse(&api.GetAllStatusesResponse{Statuses: out}), nil
}

// SetStatus moves the caller's shares in an expense to a new status.
func (s *ExpenseService) SetStatus(ctx context.Context, req *connect.Request[api.SetStatusRequest]) (*connect.Response[api.SetStatusResponse], error) {
	userID, err := actorID(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("SetStatus request received",
		"user_id", userID,
		"expense_id", req.Msg.ExpenseID,
		"status", req.Msg.Status,
	)

	updated, err := s.expenses.SetStatus(ctx, userID, req.Msg.ExpenseID, models.Status(req.Msg.Status))
	if err != nil {
		return nil, toConnectError(err)
	}
	out, err := toAPIExpense(updated)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.SetStatusResponse{Expense: out}), nil
}

// GetOverview totals the caller's uploads by category.
func (s *ExpenseService) GetOverview(ctx context.Context, req *connect.Request[api.GetOverviewRequest]) (*connect.Response[api.GetOverviewResponse], error) {
	userID, err := actorID(ctx)
	if err != nil {
		return nil, err
	}

	overview, err := s.expenses.Overview(ctx, userID)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(toAPIOverview(overview)), nil
}

// GetOutstanding reports unpaid balances across the expenses of a parent.
func (s *ExpenseService) GetOutstanding(ctx context.Context, req *connect.Request[api.GetOutstandingRequest]) (*connect.Response[api.GetOutstandingResponse], error) {
	userID, err := actorID(ctx)
	if err != nil {
		return nil, err
	}
	parentID := req.Msg.ParentID
	if parentID == "" {
		parentID = userID
	}

	balances, debts, err := s.expenses.Outstanding(ctx, userID, parentID)
	if err != nil {
		return nil, toConnectError(err)
	}

	slog.Info("GetOutstanding successful",
		"parent_id", parentID,
		"members_count", len(balances),
		"debts_count", len(debts),
	)
	return connect.NewResponse(toAPIOutstanding(balances, debts)), nil
}
