// Package calculator derives money amounts from expenses: per-participant shares,
// category overviews and outstanding balances. All arithmetic uses decimal.Decimal.
package calculator

import (
	"github.com/shopspring/decimal"

	"github.com/mmynk/expenseflow/internal/models"
)

// PersonItem is one participant's part of one item.
type PersonItem struct {
	ItemID string
	Name   string
	Amount decimal.Decimal
	Status models.Status
}

// PersonSplit is one participant's calculated share of an expense.
type PersonSplit struct {
	Total decimal.Decimal
	Items []PersonItem
}

// ShareAmount returns proportion x item total, rounded to cents.
func ShareAmount(item models.Item, share models.Share) decimal.Decimal {
	return item.Total().Mul(decimal.NewFromFloat(share.Proportion)).Round(2)
}

// CalculateSplit computes how much each participant owes for an expense.
func CalculateSplit(expense *models.Expense) map[string]*PersonSplit {
	splits := make(map[string]*PersonSplit)
	for _, item := range expense.Items {
		for _, share := range item.Shares {
			split, ok := splits[share.ParticipantID]
			if !ok {
				split = &PersonSplit{Total: decimal.Zero}
				splits[share.ParticipantID] = split
			}
			amount := ShareAmount(item, share)
			split.Total = split.Total.Add(amount)
			split.Items = append(split.Items, PersonItem{
				ItemID: item.ID,
				Name:   item.Name,
				Amount: amount,
				Status: share.Status,
			})
		}
	}
	return splits
}
