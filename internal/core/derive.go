package core

import (
	"sort"
	"strings"
)

// CategoryAmount is an amount of spend attributed to a category.
type CategoryAmount struct {
	Category    string `json:"category"`
	AmountCents int64  `json:"amountCents"`
}

// AccountBalanceView pairs an account with its derived balance.
type AccountBalanceView struct {
	Account      Account `json:"account"`
	BalanceCents int64   `json:"balanceCents"`
}

// BudgetStatus is the derived utilization of one category budget for a
// given month.
type BudgetStatus struct {
	Category       string  `json:"category"`
	Budget         Budget  `json:"budget"`
	SpentCents     int64   `json:"spentCents"`
	RemainingCents int64   `json:"remainingCents"`
	Utilization    float64 `json:"utilization"` // clamped to [0, 1]
	OverBudget     bool    `json:"overBudget"`
	OverCents      int64   `json:"overCents"`
}

// All derivations below are pure and recompute from scratch on every call.
// Month filtering is a string-prefix match against a YYYY-MM key, so a
// transaction with a malformed date never contributes to a monthly total.

// AccountBalance sums all transactions referencing the account: income adds,
// expense subtracts. Transfers are recorded but contribute nothing; each leg
// of a transfer must be entered as a separate income/expense transaction.
func AccountBalance(s Snapshot, accountID string) int64 {
	var sum int64
	for _, t := range s.Transactions {
		if t.AccountID != accountID {
			continue
		}
		switch t.Type {
		case Income:
			sum += t.AmountCents
		case Expense:
			sum -= t.AmountCents
		}
	}
	return sum
}

// TotalBalance sums the balances of every account in the snapshot.
func TotalBalance(s Snapshot) int64 {
	var sum int64
	for _, a := range s.Accounts {
		sum += AccountBalance(s, a.ID)
	}
	return sum
}

// AccountBalances returns every account with its balance, in account order.
func AccountBalances(s Snapshot) []AccountBalanceView {
	out := make([]AccountBalanceView, len(s.Accounts))
	for i, a := range s.Accounts {
		out[i] = AccountBalanceView{Account: a, BalanceCents: AccountBalance(s, a.ID)}
	}
	return out
}

// MonthlyCategorySpend sums expense amounts for a category within a month.
func MonthlyCategorySpend(s Snapshot, category, month string) int64 {
	var sum int64
	for _, t := range s.Transactions {
		if t.Type == Expense && t.Category == category && strings.HasPrefix(t.Date, month) {
			sum += t.AmountCents
		}
	}
	return sum
}

// MonthlySpendByCategory aggregates expense amounts per category for a
// month. Categories appear in first-encountered transaction order.
func MonthlySpendByCategory(s Snapshot, month string) []CategoryAmount {
	index := map[string]int{}
	var out []CategoryAmount
	for _, t := range s.Transactions {
		if t.Type != Expense || !strings.HasPrefix(t.Date, month) {
			continue
		}
		i, ok := index[t.Category]
		if !ok {
			i = len(out)
			index[t.Category] = i
			out = append(out, CategoryAmount{Category: t.Category})
		}
		out[i].AmountCents += t.AmountCents
	}
	return out
}

// TopSpendingCategories returns up to n categories with spend > 0 for the
// month, sorted by spend descending. Ties keep first-encountered order.
func TopSpendingCategories(s Snapshot, month string, n int) []CategoryAmount {
	spend := MonthlySpendByCategory(s, month)
	filtered := spend[:0]
	for _, ca := range spend {
		if ca.AmountCents > 0 {
			filtered = append(filtered, ca)
		}
	}
	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].AmountCents > filtered[j].AmountCents
	})
	if n >= 0 && len(filtered) > n {
		filtered = filtered[:n]
	}
	return filtered
}

// MonthlyIncome sums income amounts within a month.
func MonthlyIncome(s Snapshot, month string) int64 {
	var sum int64
	for _, t := range s.Transactions {
		if t.Type == Income && strings.HasPrefix(t.Date, month) {
			sum += t.AmountCents
		}
	}
	return sum
}

// MonthlyExpenses sums expense amounts within a month.
func MonthlyExpenses(s Snapshot, month string) int64 {
	var sum int64
	for _, t := range s.Transactions {
		if t.Type == Expense && strings.HasPrefix(t.Date, month) {
			sum += t.AmountCents
		}
	}
	return sum
}

// NetCashFlow is monthly income minus monthly expenses.
func NetCashFlow(s Snapshot, month string) int64 {
	return MonthlyIncome(s, month) - MonthlyExpenses(s, month)
}

// BudgetUtilization derives the status of one category budget against the
// spend of the given month. A category without a budget gets a zero budget
// carrying the queried month; a zero budget yields utilization 0.
func BudgetUtilization(s Snapshot, category, month string) BudgetStatus {
	budget, ok := s.Budgets[category]
	if !ok {
		budget = Budget{AmountCents: 0, Month: month}
	}
	spent := MonthlyCategorySpend(s, category, month)
	st := BudgetStatus{
		Category:       category,
		Budget:         budget,
		SpentCents:     spent,
		RemainingCents: budget.AmountCents - spent,
	}
	if budget.AmountCents > 0 {
		ratio := float64(spent) / float64(budget.AmountCents)
		if ratio > 1 {
			ratio = 1
		}
		st.Utilization = ratio
	}
	if spent > budget.AmountCents {
		st.OverBudget = true
		st.OverCents = spent - budget.AmountCents
	}
	return st
}
