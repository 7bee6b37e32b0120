package api

import "github.com/shopspring/decimal"

// Expense is the wire form of an expense with its aggregate status.
type Expense struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Category    string          `json:"category"`
	ExpenseDate int64           `json:"expense_date"`
	UploaderID  string          `json:"uploader_id"`
	ParentID    string          `json:"parent_id"`
	ParentKind  string          `json:"parent_kind"`
	Status      string          `json:"status"`
	Total       decimal.Decimal `json:"total"`
	Items       []*Item         `json:"items"`
	Splits      []*PersonSplit  `json:"splits"`
	CreatedAt   int64           `json:"created_at"`
	UpdatedAt   int64           `json:"updated_at"`
}

// Item is one line of an expense.
type Item struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Quantity int64           `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
	Total    decimal.Decimal `json:"total"`
	Shares   []*Share        `json:"shares"`
}

// Share is one participant's stake in an item.
type Share struct {
	ParticipantID string          `json:"participant_id"`
	Proportion    float64         `json:"proportion"`
	Status        string          `json:"status"`
	Amount        decimal.Decimal `json:"amount"`
}

// PersonSplit is the total a participant carries across all items of an expense.
type PersonSplit struct {
	ParticipantID string          `json:"participant_id"`
	Total         decimal.Decimal `json:"total"`
}

// ItemInput describes an item to create. Leaving Splits empty assigns the whole
// item to the caller.
type ItemInput struct {
	Name     string          `json:"name"`
	Quantity int64           `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
	Splits   []*SplitInput   `json:"splits,omitempty"`
}

// SplitInput assigns a proportion of an item to a participant.
type SplitInput struct {
	ParticipantID string  `json:"participant_id"`
	Proportion    float64 `json:"proportion"`
}

type CreateExpenseRequest struct {
	Name        string       `json:"name"`
	Description string       `json:"description,omitempty"`
	Category    string       `json:"category"`
	ExpenseDate int64        `json:"expense_date,omitempty"`
	ParentID    string       `json:"parent_id,omitempty"`
	Items       []*ItemInput `json:"items"`
}

type CreateExpenseResponse struct {
	Expense *Expense `json:"expense"`
}

type GetExpenseRequest struct {
	ExpenseID string `json:"expense_id"`
}

type GetExpenseResponse struct {
	Expense *Expense `json:"expense"`
}

type UpdateExpenseRequest struct {
	ExpenseID   string       `json:"expense_id"`
	Name        string       `json:"name"`
	Description string       `json:"description,omitempty"`
	Category    string       `json:"category"`
	ExpenseDate int64        `json:"expense_date,omitempty"`
	Items       []*ItemInput `json:"items"`
}

type UpdateExpenseResponse struct {
	Expense *Expense `json:"expense"`
}

type DeleteExpenseRequest struct {
	ExpenseID string `json:"expense_id"`
}

type DeleteExpenseResponse struct{}

type ListUploadedExpensesRequest struct{}

type ListUploadedExpensesResponse struct {
	Expenses []*Expense `json:"expenses"`
}

// ListOwnedExpensesRequest lists expenses owned by ParentID, or by the caller when
// ParentID is empty.
type ListOwnedExpensesRequest struct {
	ParentID string `json:"parent_id,omitempty"`
}

type ListOwnedExpensesResponse struct {
	Expenses []*Expense `json:"expenses"`
}

type GetParticipantStatusRequest struct {
	ExpenseID     string `json:"expense_id"`
	ParticipantID string `json:"participant_id"`
}

type GetParticipantStatusResponse struct {
	Status string `json:"status"`
}

type GetAggregateStatusRequest struct {
	ExpenseID string `json:"expense_id"`
}

type GetAggregateStatusResponse struct {
	Status string `json:"status"`
}

type GetAllStatusesRequest struct {
	ExpenseID string `json:"expense_id"`
}

type ParticipantStatus struct {
	ParticipantID string `json:"participant_id"`
	Status        string `json:"status"`
}

type GetAllStatusesResponse struct {
	Statuses []*ParticipantStatus `json:"statuses"`
}

// SetStatusRequest moves the caller's shares in an expense to Status.
type SetStatusRequest struct {
	ExpenseID string `json:"expense_id"`
	Status    string `json:"status"`
}

type SetStatusResponse struct {
	Expense *Expense `json:"expense"`
}

type GetOverviewRequest struct{}

type CategoryTotal struct {
	Category string          `json:"category"`
	Total    decimal.Decimal `json:"total"`
}

type GetOverviewResponse struct {
	Total      decimal.Decimal  `json:"total"`
	Categories []*CategoryTotal `json:"categories"`
}

type GetOutstandingRequest struct {
	ParentID string `json:"parent_id,omitempty"`
}

// MemberBalance is positive when the participant is owed money.
type MemberBalance struct {
	ParticipantID string          `json:"participant_id"`
	NetBalance    decimal.Decimal `json:"net_balance"`
	TotalOwed     decimal.Decimal `json:"total_owed"`
	TotalLent     decimal.Decimal `json:"total_lent"`
}

// Debt says From owes To Amount.
type Debt struct {
	From   string          `json:"from"`
	To     string          `json:"to"`
	Amount decimal.Decimal `json:"amount"`
}

type GetOutstandingResponse struct {
	Balances []*MemberBalance `json:"balances"`
	Debts    []*Debt          `json:"debts"`
}
