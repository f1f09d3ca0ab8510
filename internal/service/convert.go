package service

import (
	"github.com/splitpot/splitpot/internal/api"
	"github.com/splitpot/splitpot/internal/ledger"
	"github.com/splitpot/splitpot/internal/models"
)

// personNames builds an ID to display name index for response
// decoration. Names of deleted people simply come out empty.
func personNames(people []models.Person) map[string]string {
	names := make(map[string]string, len(people))
	for _, p := range people {
		names[p.ID] = p.Name
	}
	return names
}

func toAPIPerson(p *models.Person) *api.Person {
	return &api.Person{
		ID:        p.ID,
		Name:      p.Name,
		CreatedAt: p.CreatedAt,
	}
}

func toAPIPeople(people []models.Person) []*api.Person {
	out := make([]*api.Person, len(people))
	for i := range people {
		out[i] = toAPIPerson(&people[i])
	}
	return out
}

func toAPIExpense(e *models.Expense, names map[string]string) *api.Expense {
	splits := make([]*api.Split, len(e.Splits))
	for i, split := range e.Splits {
		splits[i] = &api.Split{
			PersonID:   split.PersonID,
			PersonName: names[split.PersonID],
			Amount:     split.Amount,
		}
	}
	return &api.Expense{
		ID:          e.ID,
		Description: e.Description,
		Amount:      e.Amount,
		SpentOn:     e.SpentOn,
		PayerID:     e.PayerID,
		PayerName:   names[e.PayerID],
		Splits:      splits,
		CreatedAt:   e.CreatedAt,
	}
}

func toAPISettlement(s *models.Settlement, names map[string]string) *api.Settlement {
	return &api.Settlement{
		ID:           s.ID,
		FromPersonID: s.FromPersonID,
		FromName:     names[s.FromPersonID],
		ToPersonID:   s.ToPersonID,
		ToName:       names[s.ToPersonID],
		Amount:       s.Amount,
		Note:         s.Note,
		SettledOn:    s.SettledOn,
		CreatedAt:    s.CreatedAt,
	}
}

func toAPIBalances(balances []ledger.Balance) []*api.Balance {
	out := make([]*api.Balance, len(balances))
	for i, b := range balances {
		out[i] = &api.Balance{
			PersonID:  b.PersonID,
			Name:      b.Name,
			TotalPaid: b.TotalPaid,
			TotalOwed: b.TotalOwed,
			Net:       b.Net,
		}
	}
	return out
}

func toAPITransfers(transfers []ledger.Transfer) []*api.Transfer {
	out := make([]*api.Transfer, len(transfers))
	for i, t := range transfers {
		out[i] = &api.Transfer{
			FromPersonID: t.FromPersonID,
			FromName:     t.FromName,
			ToPersonID:   t.ToPersonID,
			ToName:       t.ToName,
			Amount:       t.Amount,
		}
	}
	return out
}

func toAPIUser(u *models.User) *api.User {
	return &api.User{
		ID:          u.ID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		CreatedAt:   u.CreatedAt,
	}
}
