package service

import (
	"sort"

	"github.com/mmynk/expenseflow/internal/calculator"
	"github.com/mmynk/expenseflow/internal/expense"
	"github.com/mmynk/expenseflow/internal/models"
	"github.com/mmynk/expenseflow/pkg/api"
)

func toAPIExpense(e *models.Expense) (*api.Expense, error) {
	status, err := expense.AggregateStatus(e)
	if err != nil {
		return nil, err
	}

	items := make([]*api.Item, len(e.Items))
	for i, item := range e.Items {
		shares := make([]*api.Share, len(item.Shares))
		for j, share := range item.Shares {
			shares[j] = &api.Share{
				ParticipantID: share.ParticipantID,
				Proportion:    share.Proportion,
				Status:        string(share.Status),
				Amount:        calculator.ShareAmount(item, share),
			}
		}
		items[i] = &api.Item{
			ID:       item.ID,
			Name:     item.Name,
			Quantity: item.Quantity,
			Price:    item.Price,
			Total:    item.Total(),
			Shares:   shares,
		}
	}

	return &api.Expense{
		ID:          e.ID,
		Name:        e.Name,
		Description: e.Description,
		Category:    string(e.Category),
		ExpenseDate: e.ExpenseDate,
		UploaderID:  e.UploaderID,
		ParentID:    e.ParentID,
		ParentKind:  string(e.ParentKind),
		Status:      string(status),
		Total:       e.Total(),
		Items:       items,
		Splits:      toAPISplits(calculator.CalculateSplit(e)),
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}, nil
}

func toAPIExpenses(expenses []*models.Expense) ([]*api.Expense, error) {
	out := make([]*api.Expense, len(expenses))
	for i, e := range expenses {
		converted, err := toAPIExpense(e)
		if err != nil {
			return nil, err
		}
		out[i] = converted
	}
	return out, nil
}

func toAPISplits(splits map[string]*calculator.PersonSplit) []*api.PersonSplit {
	out := make([]*api.PersonSplit, 0, len(splits))
	for id, split := range splits {
		out = append(out, &api.PersonSplit{ParticipantID: id, Total: split.Total})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ParticipantID < out[j].ParticipantID })
	return out
}

func fromAPIItems(items []*api.ItemInput) []expense.ItemInput {
	out := make([]expense.ItemInput, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		in := expense.ItemInput{
			Name:     item.Name,
			Quantity: item.Quantity,
			Price:    item.Price,
		}
		for _, s := range item.Splits {
			if s == nil {
				continue
			}
			in.Splits = append(in.Splits, expense.Proportion{
				ParticipantID: s.ParticipantID,
				Proportion:    s.Proportion,
			})
		}
		out = append(out, in)
	}
	return out
}

func toAPIOverview(o calculator.Overview) *api.GetOverviewResponse {
	resp := &api.GetOverviewResponse{
		Total:      o.Total,
		Categories: make([]*api.CategoryTotal, len(o.Categories)),
	}
	for i, c := range o.Categories {
		resp.Categories[i] = &api.CategoryTotal{Category: string(c.Category), Total: c.Total}
	}
	return resp
}

func toAPIOutstanding(balances []calculator.MemberBalance, debts []calculator.DebtEdge) *api.GetOutstandingResponse {
	resp := &api.GetOutstandingResponse{
		Balances: make([]*api.MemberBalance, len(balances)),
		Debts:    make([]*api.Debt, len(debts)),
	}
	for i, b := range balances {
		resp.Balances[i] = &api.MemberBalance{
			ParticipantID: b.ParticipantID,
			NetBalance:    b.NetBalance,
			TotalOwed:     b.TotalOwed,
			TotalLent:     b.TotalLent,
		}
	}
	for i, d := range debts {
		resp.Debts[i] = &api.Debt{From: d.From, To: d.To, Amount: d.Amount}
	}
	return resp
}

func toAPIUser(u *models.User) *api.User {
	return &api.User{
		ID:          u.ID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		CreatedAt:   u.CreatedAt,
	}
}

func toAPIGroup(g *models.Group) *api.Group {
	members := make([]*api.GroupMember, len(g.Members))
	for i, m := range g.Members {
		members[i] = &api.GroupMember{UserID: m.UserID, Role: string(m.Role), JoinedAt: m.JoinedAt}
	}
	return &api.Group{
		ID:          g.ID,
		Name:        g.Name,
		Description: g.Description,
		Members:     members,
		CreatedAt:   g.CreatedAt,
	}
}
