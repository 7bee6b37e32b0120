package models

import "github.com/shopspring/decimal"

// Expense is an uploaded cost record, divided into items and shares.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string

	Name        string
	Description string
	Category    Category

	// ExpenseDate is the Unix timestamp of when the cost was incurred.
	ExpenseDate int64

	// UploaderID is the user who uploaded (and paid for) the expense.
	UploaderID string

	// ParentID is the owning entity; ParentKind tells whether it is a user or a group.
	ParentID   string
	ParentKind EntityKind

	// Items are the ordered line items. Never empty after creation.
	Items []Item

	CreatedAt int64
	UpdatedAt int64
}

// Item is one line within an expense.
type Item struct {
	ID        string
	ExpenseID string
	Name      string
	Quantity  int64
	Price     decimal.Decimal

	// Shares divide the item among participants. Proportions sum to exactly 1.
	Shares []Share
}

// Total returns quantity x unit price.
func (i Item) Total() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(i.Quantity))
}

// Share is one participant's proportional stake in one item.
type Share struct {
	ItemID        string
	ParticipantID string
	Proportion    float64
	Status        Status
}

// Shares returns every share across all items, in item order.
func (e *Expense) Shares() []Share {
	var shares []Share
	for _, item := range e.Items {
		shares = append(shares, item.Shares...)
	}
	return shares
}

// Participants returns the distinct participant IDs of the expense in first-seen order.
func (e *Expense) Participants() []string {
	seen := make(map[string]bool)
	var ids []string
	for _, s := range e.Shares() {
		if !seen[s.ParticipantID] {
			seen[s.ParticipantID] = true
			ids = append(ids, s.ParticipantID)
		}
	}
	return ids
}

// Total returns the sum of all item totals.
func (e *Expense) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range e.Items {
		total = total.Add(item.Total())
	}
	return total
}

// IsOwnedBy reports whether entityID is the uploader or the owning parent.
func (e *Expense) IsOwnedBy(entityID string) bool {
	return e.UploaderID == entityID || e.ParentID == entityID
}
