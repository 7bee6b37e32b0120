// Package models defines the core domain models for ExpenseFlow.
//
// # Models
//
//   - Expense: an uploaded cost record owned by a parent entity
//   - Item: one line of an expense (quantity x unit price)
//   - Share: one participant's proportional stake in an item, with its own status
//   - User, Group: the two kinds of Entity that can own expenses
//
// # Ownership
//
// An Expense exclusively owns its Items and each Item exclusively owns its Shares.
// Shares reference participants (users) by ID only; relationships between models use
// ID strings rather than pointers to avoid circular references.
//
// # Status
//
// Share status is a small ordered enum (requested < accepted < paid). The order is
// defined once by Status.Rank and consumed by both status aggregation and the
// transition guard in package expense.
package models
