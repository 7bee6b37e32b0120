package calculator

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/expenseflow/internal/models"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func item(name string, qty int64, price string, shares ...models.Share) models.Item {
	return models.Item{ID: name, Name: name, Quantity: qty, Price: dec(price), Shares: shares}
}

func share(participant string, proportion float64, status models.Status) models.Share {
	return models.Share{ParticipantID: participant, Proportion: proportion, Status: status}
}

func TestCalculateSplit(t *testing.T) {
	e := &models.Expense{
		UploaderID: "alice",
		Items: []models.Item{
			item("Pizza", 1, "30", share("alice", 0.5, models.StatusPaid), share("bob", 0.5, models.StatusRequested)),
			item("Beer", 3, "4.50", share("bob", 1, models.StatusRequested)),
		},
	}

	splits := CalculateSplit(e)
	require.Len(t, splits, 2)
	assert.True(t, splits["alice"].Total.Equal(dec("15")), splits["alice"].Total.String())
	assert.True(t, splits["bob"].Total.Equal(dec("28.5")), splits["bob"].Total.String())
	require.Len(t, splits["bob"].Items, 2)
	assert.Equal(t, "Beer", splits["bob"].Items[1].Name)
	assert.Equal(t, models.StatusRequested, splits["bob"].Items[1].Status)
}

func TestShareAmount_RoundsToCents(t *testing.T) {
	i := item("Cake", 1, "10", share("a", 1.0/3.0, models.StatusRequested))
	assert.Equal(t, "3.33", ShareAmount(i, i.Shares[0]).StringFixed(2))
}

func TestSummarize(t *testing.T) {
	expenses := []*models.Expense{
		{Category: models.CategoryFood, Items: []models.Item{item("a", 2, "10.005")}},
		{Category: models.CategoryTransport, Items: []models.Item{item("b", 1, "45")}},
		{Category: models.CategoryFood, Items: []models.Item{item("c", 1, "25")}},
		{Category: models.CategoryHealth, Items: []models.Item{item("d", 1, "45")}},
	}

	o := Summarize(expenses)
	assert.True(t, o.Total.Equal(dec("135.01")), o.Total.String())
	require.Len(t, o.Categories, 3)
	assert.Equal(t, models.CategoryFood, o.Categories[0].Category)
	assert.True(t, o.Categories[0].Total.Equal(dec("45.01")))
	// Equal totals fall back to name order.
	assert.Equal(t, models.CategoryHealth, o.Categories[1].Category)
	assert.Equal(t, models.CategoryTransport, o.Categories[2].Category)
}

func TestSummarize_Empty(t *testing.T) {
	o := Summarize(nil)
	assert.True(t, o.Total.IsZero())
	assert.Empty(t, o.Categories)
}

func TestCalculateOutstanding(t *testing.T) {
	expenses := []*models.Expense{
		{
			UploaderID: "alice",
			Items: []models.Item{
				item("Dinner", 1, "90",
					share("alice", 1.0/3.0, models.StatusPaid),
					share("bob", 1.0/3.0, models.StatusAccepted),
					share("carol", 1.0/3.0, models.StatusPaid),
				),
			},
		},
		{
			UploaderID: "bob",
			Items: []models.Item{
				item("Taxi", 1, "20", share("alice", 0.5, models.StatusRequested), share("bob", 0.5, models.StatusPaid)),
			},
		},
	}

	balances, debts := CalculateOutstanding(expenses)

	require.Len(t, balances, 2)
	assert.Equal(t, "alice", balances[0].ParticipantID)
	assert.True(t, balances[0].TotalLent.Equal(dec("30")))
	assert.True(t, balances[0].TotalOwed.Equal(dec("10")))
	assert.True(t, balances[0].NetBalance.Equal(dec("20")))
	assert.Equal(t, "bob", balances[1].ParticipantID)
	assert.True(t, balances[1].NetBalance.Equal(dec("-20")))

	require.Len(t, debts, 1)
	assert.Equal(t, DebtEdge{From: "bob", To: "alice", Amount: debts[0].Amount}, debts[0])
	assert.True(t, debts[0].Amount.Equal(dec("20")))
}

func TestCalculateOutstanding_Simplifies(t *testing.T) {
	// carol owes bob, bob owes alice: carol pays alice directly.
	expenses := []*models.Expense{
		{UploaderID: "alice", Items: []models.Item{item("x", 1, "10", share("bob", 1, models.StatusRequested))}},
		{UploaderID: "bob", Items: []models.Item{item("y", 1, "10", share("carol", 1, models.StatusRequested))}},
	}

	_, debts := CalculateOutstanding(expenses)
	require.Len(t, debts, 1)
	assert.Equal(t, "carol", debts[0].From)
	assert.Equal(t, "alice", debts[0].To)
	assert.True(t, debts[0].Amount.Equal(dec("10")))
}

func TestCalculateOutstanding_AllSettled(t *testing.T) {
	expenses := []*models.Expense{
		{UploaderID: "alice", Items: []models.Item{item("x", 1, "10", share("bob", 1, models.StatusPaid))}},
	}

	balances, debts := CalculateOutstanding(expenses)
	assert.Empty(t, balances)
	assert.Empty(t, debts)
}
