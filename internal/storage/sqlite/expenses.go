package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/expenseflow/internal/models"
	"github.com/mmynk/expenseflow/internal/storage"
)

// CreateExpense persists a new expense with its items and shares.
func (s *SQLiteStore) CreateExpense(ctx context.Context, expense *models.Expense) error {
	// Generate IDs if not set
	if expense.ID == "" {
		expense.ID = uuid.New().String()
	}
	now := time.Now().Unix()
	if expense.CreatedAt == 0 {
		expense.CreatedAt = now
	}
	expense.UpdatedAt = expense.CreatedAt
	if expense.ExpenseDate == 0 {
		expense.ExpenseDate = expense.CreatedAt
	}

	return s.withTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO expenses (id, name, description, category, expense_date, uploader_id, parent_id, created_at, updated_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			expense.ID, expense.Name, expense.Description, expense.Category, expense.ExpenseDate,
			expense.UploaderID, expense.ParentID, expense.CreatedAt, expense.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert expense: %w", err)
		}
		return insertItems(ctx, tx, expense)
	})
}

// GetExpense retrieves an expense by ID, including all items and shares.
func (s *SQLiteStore) GetExpense(ctx context.Context, expenseID string) (*models.Expense, error) {
	return getExpense(ctx, s.db, expenseID)
}

// ReplaceExpense overwrites an expense's fields and rebuilds its items and shares.
func (s *SQLiteStore) ReplaceExpense(ctx context.Context, expenseID string, check storage.ExpenseCheck, replacement *models.Expense) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		current, err := getExpense(ctx, tx, expenseID)
		if err != nil {
			return err
		}
		if check != nil {
			if err := check(current); err != nil {
				return err
			}
		}

		replacement.ID = current.ID
		replacement.UploaderID = current.UploaderID
		replacement.ParentID = current.ParentID
		replacement.ParentKind = current.ParentKind
		replacement.CreatedAt = current.CreatedAt
		replacement.UpdatedAt = time.Now().Unix()
		if replacement.ExpenseDate == 0 {
			replacement.ExpenseDate = current.ExpenseDate
		}

		_, err = tx.ExecContext(ctx,
			`UPDATE expenses SET name = ?, description = ?, category = ?, expense_date = ?, updated_at = ?
			 WHERE id = ?`,
			replacement.Name, replacement.Description, replacement.Category, replacement.ExpenseDate,
			replacement.UpdatedAt, expenseID,
		)
		if err != nil {
			return fmt.Errorf("failed to update expense: %w", err)
		}

		// Shares go with their items via ON DELETE CASCADE
		if _, err := tx.ExecContext(ctx, "DELETE FROM expense_items WHERE expense_id = ?", expenseID); err != nil {
			return fmt.Errorf("failed to delete old items: %w", err)
		}

		for i := range replacement.Items {
			replacement.Items[i].ID = ""
		}
		return insertItems(ctx, tx, replacement)
	})
}

// DeleteExpense removes an expense; items and shares cascade.
func (s *SQLiteStore) DeleteExpense(ctx context.Context, expenseID string, check storage.ExpenseCheck) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		current, err := getExpense(ctx, tx, expenseID)
		if err != nil {
			return err
		}
		if check != nil {
			if err := check(current); err != nil {
				return err
			}
		}

		if _, err := tx.ExecContext(ctx, "DELETE FROM expenses WHERE id = ?", expenseID); err != nil {
			return fmt.Errorf("failed to delete expense: %w", err)
		}
		return nil
	})
}

// SetParticipantStatus moves all of one participant's shares in an expense to status.
func (s *SQLiteStore) SetParticipantStatus(ctx context.Context, expenseID, participantID string, check storage.ExpenseCheck, status models.Status) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		current, err := getExpense(ctx, tx, expenseID)
		if err != nil {
			return err
		}
		if check != nil {
			if err := check(current); err != nil {
				return err
			}
		}

		res, err := tx.ExecContext(ctx,
			`UPDATE expense_item_shares SET status = ?
			 WHERE participant_id = ? AND status <> ?
			   AND item_id IN (SELECT id FROM expense_items WHERE expense_id = ?)`,
			status, participantID, status, expenseID,
		)
		if err != nil {
			return fmt.Errorf("failed to update share status: %w", err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return nil
		}

		_, err = tx.ExecContext(ctx,
			"UPDATE expenses SET updated_at = ? WHERE id = ?",
			time.Now().Unix(), expenseID,
		)
		if err != nil {
			return fmt.Errorf("failed to touch expense: %w", err)
		}
		return nil
	})
}

// ListExpensesByUploader retrieves all expenses uploaded by a user, newest first.
func (s *SQLiteStore) ListExpensesByUploader(ctx context.Context, uploaderID string) ([]*models.Expense, error) {
	return s.listExpenses(ctx,
		"SELECT id FROM expenses WHERE uploader_id = ? ORDER BY created_at DESC, rowid DESC",
		uploaderID,
	)
}

// ListExpensesByParent retrieves all expenses owned by a user or group, newest first.
func (s *SQLiteStore) ListExpensesByParent(ctx context.Context, parentID string) ([]*models.Expense, error) {
	return s.listExpenses(ctx,
		"SELECT id FROM expenses WHERE parent_id = ? ORDER BY created_at DESC, rowid DESC",
		parentID,
	)
}

func (s *SQLiteStore) listExpenses(ctx context.Context, query string, args ...any) ([]*models.Expense, error) {
	ids, err := queryIDs(ctx, s.db, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}

	expenses := make([]*models.Expense, 0, len(ids))
	for _, id := range ids {
		expense, err := getExpense(ctx, s.db, id)
		if err != nil {
			return nil, err
		}
		expenses = append(expenses, expense)
	}
	return expenses, nil
}

func getExpense(ctx context.Context, q queryer, expenseID string) (*models.Expense, error) {
	expense := &models.Expense{}
	err := q.QueryRowContext(ctx,
		`SELECT e.id, e.name, e.description, e.category, e.expense_date, e.uploader_id,
		        e.parent_id, en.kind, e.created_at, e.updated_at
		 FROM expenses e JOIN entities en ON en.id = e.parent_id
		 WHERE e.id = ?`,
		expenseID,
	).Scan(&expense.ID, &expense.Name, &expense.Description, &expense.Category, &expense.ExpenseDate,
		&expense.UploaderID, &expense.ParentID, &expense.ParentKind, &expense.CreatedAt, &expense.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound("expense", expenseID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}

	itemRows, err := q.QueryContext(ctx,
		"SELECT id, name, quantity, price FROM expense_items WHERE expense_id = ? ORDER BY position",
		expenseID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get items: %w", err)
	}
	defer itemRows.Close()

	index := make(map[string]int)
	for itemRows.Next() {
		item := models.Item{ExpenseID: expenseID}
		if err := itemRows.Scan(&item.ID, &item.Name, &item.Quantity, &item.Price); err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		index[item.ID] = len(expense.Items)
		expense.Items = append(expense.Items, item)
	}
	if err := itemRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate items: %w", err)
	}
	itemRows.Close()

	shareRows, err := q.QueryContext(ctx,
		`SELECT s.item_id, s.participant_id, s.proportion, s.status
		 FROM expense_item_shares s JOIN expense_items i ON i.id = s.item_id
		 WHERE i.expense_id = ?
		 ORDER BY i.position, s.position`,
		expenseID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get shares: %w", err)
	}
	defer shareRows.Close()

	for shareRows.Next() {
		var share models.Share
		if err := shareRows.Scan(&share.ItemID, &share.ParticipantID, &share.Proportion, &share.Status); err != nil {
			return nil, fmt.Errorf("failed to scan share: %w", err)
		}
		i, ok := index[share.ItemID]
		if !ok {
			return nil, fmt.Errorf("share references unknown item %s", share.ItemID)
		}
		expense.Items[i].Shares = append(expense.Items[i].Shares, share)
	}
	if err := shareRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate shares: %w", err)
	}

	return expense, nil
}

func insertItems(ctx context.Context, q queryer, expense *models.Expense) error {
	for i := range expense.Items {
		item := &expense.Items[i]
		if item.ID == "" {
			item.ID = uuid.New().String()
		}
		item.ExpenseID = expense.ID

		_, err := q.ExecContext(ctx,
			"INSERT INTO expense_items (id, expense_id, position, name, quantity, price) VALUES (?, ?, ?, ?, ?, ?)",
			item.ID, expense.ID, i, item.Name, item.Quantity, item.Price,
		)
		if err != nil {
			return fmt.Errorf("failed to insert item: %w", err)
		}

		for j := range item.Shares {
			share := &item.Shares[j]
			share.ItemID = item.ID
			_, err = q.ExecContext(ctx,
				`INSERT INTO expense_item_shares (item_id, participant_id, position, proportion, status)
				 VALUES (?, ?, ?, ?, ?)`,
				item.ID, share.ParticipantID, j, share.Proportion, share.Status,
			)
			if err != nil {
				return fmt.Errorf("failed to insert share: %w", err)
			}
		}
	}
	return nil
}
