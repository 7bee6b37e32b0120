package calculator

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/mmynk/expenseflow/internal/models"
)

// CategoryTotal is the summed item totals of one category.
type CategoryTotal struct {
	Category models.Category
	Total    decimal.Decimal
}

// Overview summarises a set of expenses.
type Overview struct {
	Total      decimal.Decimal
	Categories []CategoryTotal
}

// Summarize totals quantity x price over every item, overall and per category.
// Categories are ordered by descending total, then name. Amounts are rounded to cents.
func Summarize(expenses []*models.Expense) Overview {
	byCategory := make(map[models.Category]decimal.Decimal)
	total := decimal.Zero
	for _, e := range expenses {
		t := e.Total()
		total = total.Add(t)
		byCategory[e.Category] = byCategory[e.Category].Add(t)
	}

	categories := make([]CategoryTotal, 0, len(byCategory))
	for c, t := range byCategory {
		categories = append(categories, CategoryTotal{Category: c, Total: t.Round(2)})
	}
	sort.Slice(categories, func(i, j int) bool {
		if !categories[i].Total.Equal(categories[j].Total) {
			return categories[i].Total.GreaterThan(categories[j].Total)
		}
		return categories[i].Category < categories[j].Category
	})

	return Overview{Total: total.Round(2), Categories: categories}
}
