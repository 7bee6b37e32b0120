package service

import (
	"context"
	"errors"

	"connectrpc.com/connect"

	"github.com/mmynk/expenseflow/internal/auth"
	"github.com/mmynk/expenseflow/internal/expense"
	"github.com/mmynk/expenseflow/internal/middleware"
	"github.com/mmynk/expenseflow/internal/storage"
)

// toConnectError maps domain errors onto connect codes.
func toConnectError(err error) error {
	var connectErr *connect.Error
	if errors.As(err, &connectErr) {
		return err
	}
	return connect.NewError(codeOf(err), err)
}

func codeOf(err error) connect.Code {
	var notFound *expense.NotFoundError
	switch {
	case errors.Is(err, context.Canceled):
		return connect.CodeCanceled
	case errors.Is(err, context.DeadlineExceeded):
		return connect.CodeDeadlineExceeded
	case errors.Is(err, expense.ErrValidation):
		return connect.CodeInvalidArgument
	case errors.As(err, &notFound) && notFound.Kind == "participant":
		return connect.CodeInvalidArgument
	case errors.Is(err, expense.ErrNotFound), errors.Is(err, storage.ErrNotFound):
		return connect.CodeNotFound
	case errors.Is(err, expense.ErrPermission):
		return connect.CodePermissionDenied
	case errors.Is(err, expense.ErrLocked),
		errors.Is(err, expense.ErrTransitionRejected),
		errors.Is(err, expense.ErrNotAParticipant),
		errors.Is(err, expense.ErrInvalidState):
		return connect.CodeFailedPrecondition
	default:
		// Includes ErrInconsistentState.
		return connect.CodeInternal
	}
}

// actorID returns the authenticated caller.
func actorID(ctx context.Context) (string, error) {
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		return "", connect.NewError(connect.CodeUnauthenticated, auth.ErrMissingToken)
	}
	return userID, nil
}
