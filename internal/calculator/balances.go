package calculator

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/mmynk/expenseflow/internal/models"
)

// MemberBalance represents the outstanding position of one participant.
type MemberBalance struct {
	ParticipantID string
	NetBalance    decimal.Decimal // Positive = owed money, Negative = owes money
	TotalOwed     decimal.Decimal // Unpaid amount this participant owes others
	TotalLent     decimal.Decimal // Unpaid amount others owe this participant
}

// DebtEdge represents a debt from one participant to another.
type DebtEdge struct {
	From   string // Participant who owes
	To     string // Participant who is owed
	Amount decimal.Decimal
}

// CalculateOutstanding computes who still owes whom across expenses.
//
// Algorithm:
//   - Every share that is not paid and not held by the uploader is a debt of
//     proportion x item total from the share holder to the uploader
//   - Aggregate: net_balance = total_lent - total_owed
//   - Debt list: simplified by greedily matching largest debtors with largest creditors
func CalculateOutstanding(expenses []*models.Expense) ([]MemberBalance, []DebtEdge) {
	balances := make(map[string]*MemberBalance)
	get := func(id string) *MemberBalance {
		b, ok := balances[id]
		if !ok {
			b = &MemberBalance{ParticipantID: id, NetBalance: decimal.Zero, TotalOwed: decimal.Zero, TotalLent: decimal.Zero}
			balances[id] = b
		}
		return b
	}

	for _, e := range expenses {
		for _, item := range e.Items {
			for _, share := range item.Shares {
				if share.Status == models.StatusPaid || share.ParticipantID == e.UploaderID {
					continue
				}
				amount := ShareAmount(item, share)
				get(share.ParticipantID).TotalOwed = get(share.ParticipantID).TotalOwed.Add(amount)
				get(e.UploaderID).TotalLent = get(e.UploaderID).TotalLent.Add(amount)
			}
		}
	}

	var creditors, debtors []*MemberBalance
	memberBalances := make([]MemberBalance, 0, len(balances))
	for _, b := range balances {
		b.NetBalance = b.TotalLent.Sub(b.TotalOwed)
		memberBalances = append(memberBalances, *b)
		switch b.NetBalance.Sign() {
		case 1:
			creditors = append(creditors, b)
		case -1:
			debtors = append(debtors, b)
		}
	}
	sort.Slice(memberBalances, func(i, j int) bool {
		return memberBalances[i].ParticipantID < memberBalances[j].ParticipantID
	})
	sortByMagnitude(creditors)
	sortByMagnitude(debtors)

	remaining := make(map[string]decimal.Decimal, len(creditors)+len(debtors))
	for _, b := range creditors {
		remaining[b.ParticipantID] = b.NetBalance
	}
	for _, b := range debtors {
		remaining[b.ParticipantID] = b.NetBalance.Neg()
	}

	// Greedy algorithm: match largest debts with largest credits
	var edges []DebtEdge
	i, j := 0, 0
	for i < len(debtors) && j < len(creditors) {
		debtor := debtors[i].ParticipantID
		creditor := creditors[j].ParticipantID

		amount := decimal.Min(remaining[debtor], remaining[creditor])
		if amount.IsPositive() {
			edges = append(edges, DebtEdge{From: debtor, To: creditor, Amount: amount})
		}

		remaining[debtor] = remaining[debtor].Sub(amount)
		remaining[creditor] = remaining[creditor].Sub(amount)

		if !remaining[debtor].IsPositive() {
			i++
		}
		if !remaining[creditor].IsPositive() {
			j++
		}
	}

	return memberBalances, edges
}

// sortByMagnitude orders balances by descending absolute net balance, then ID.
func sortByMagnitude(bs []*MemberBalance) {
	sort.Slice(bs, func(i, j int) bool {
		a, b := bs[i].NetBalance.Abs(), bs[j].NetBalance.Abs()
		if !a.Equal(b) {
			return a.GreaterThan(b)
		}
		return bs[i].ParticipantID < bs[j].ParticipantID
	})
}
