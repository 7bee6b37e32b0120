// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/expenseflow/internal/models"
)

// ErrNotFound is returned (wrapped) when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// ExpenseCheck inspects an expense read inside a write transaction. A non-nil error
// aborts the transaction and is returned to the caller unchanged.
type ExpenseCheck func(current *models.Expense) error

// Store defines the interface for persistence operations.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the service layer.
//
// Every mutating expense method is atomic: the expense is read, checked and written
// in one transaction, so checks never run against a stale snapshot.
type Store interface {
	UserStore
	GroupStore
	ExpenseStore

	// Close releases any resources held by the store.
	Close() error
}

// UserStore persists registered users.
type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
}

// GroupStore persists groups and their members.
type GroupStore interface {
	// CreateGroup persists a group with its members. ID and CreatedAt are filled in.
	CreateGroup(ctx context.Context, group *models.Group) error
	GetGroup(ctx context.Context, groupID string) (*models.Group, error)
	AddGroupMember(ctx context.Context, groupID string, member models.GroupMember) error
	ListGroupsForUser(ctx context.Context, userID string) ([]*models.Group, error)

	// GetEntity resolves an ID to the user or group it names.
	GetEntity(ctx context.Context, id string) (models.Entity, error)
}

// ExpenseStore persists expenses together with their items and shares.
type ExpenseStore interface {
	// CreateExpense persists a new expense, its items and shares in one transaction.
	// Expense, item and share IDs are assigned by the store.
	CreateExpense(ctx context.Context, expense *models.Expense) error

	// GetExpense retrieves an expense with items and shares in stored order.
	GetExpense(ctx context.Context, expenseID string) (*models.Expense, error)

	// ReplaceExpense runs check against the current expense and, if it passes,
	// overwrites the mutable fields and replaces all items and shares with those of
	// replacement. Old items and shares are discarded, not merged.
	ReplaceExpense(ctx context.Context, expenseID string, check ExpenseCheck, replacement *models.Expense) error

	// DeleteExpense runs check and deletes the expense with its items and shares.
	DeleteExpense(ctx context.Context, expenseID string, check ExpenseCheck) error

	// SetParticipantStatus runs check and moves every share of participantID within
	// the expense to status.
	SetParticipantStatus(ctx context.Context, expenseID, participantID string, check ExpenseCheck, status models.Status) error

	ListExpensesByUploader(ctx context.Context, uploaderID string) ([]*models.Expense, error)
	ListExpensesByParent(ctx context.Context, parentID string) ([]*models.Expense, error)
}
