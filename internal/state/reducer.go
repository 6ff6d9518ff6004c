package state

import (
	"time"

	"trackfin/internal/core"
)

// Reduce is the total transition function from (snapshot, action) to the
// next snapshot. It never fails and never mutates its input: every case
// copies the collection it touches before changing it. A nil or unknown
// action returns the input unchanged.
//
// Reduce performs no validation. Well-formedness of ids, dates, and amounts
// is the calling layer's responsibility.
func Reduce(s core.Snapshot, a Action) core.Snapshot {
	switch a := a.(type) {
	case Login:
		u := a.User
		s.Session = core.Session{IsAuthenticated: true, User: &u}
		return s

	case Logout:
		s.Session = core.Session{IsAuthenticated: false, User: nil}
		return s

	case AddAccount:
		s.Accounts = append(cloneAccounts(s.Accounts), a.Account)
		return s

	case UpdateAccount:
		accounts := cloneAccounts(s.Accounts)
		for i := range accounts {
			if accounts[i].ID == a.Account.ID {
				accounts[i] = a.Account
			}
		}
		s.Accounts = accounts
		return s

	case DeleteAccount:
		// Permissive: transactions referencing the account are left in
		// place and keep a dangling accountId.
		accounts := make([]core.Account, 0, len(s.Accounts))
		for _, acc := range s.Accounts {
			if acc.ID != a.ID {
				accounts = append(accounts, acc)
			}
		}
		s.Accounts = accounts
		return s

	case AddTransaction:
		s.Transactions = append(cloneTransactions(s.Transactions), a.Transaction)
		return s

	case UpdateTransaction:
		transactions := cloneTransactions(s.Transactions)
		for i := range transactions {
			if transactions[i].ID == a.Transaction.ID {
				transactions[i] = a.Transaction
			}
		}
		s.Transactions = transactions
		return s

	case DeleteTransaction:
		transactions := make([]core.Transaction, 0, len(s.Transactions))
		for _, tx := range s.Transactions {
			if tx.ID != a.ID {
				transactions = append(transactions, tx)
			}
		}
		s.Transactions = transactions
		return s

	case SetBudget:
		budgets := cloneBudgets(s.Budgets)
		budgets[a.Category] = a.Budget
		s.Budgets = budgets
		return s

	case UpdateSettings:
		if a.Patch.Currency != nil {
			s.Settings.Currency = *a.Patch.Currency
		}
		if a.Patch.Locale != nil {
			s.Settings.Locale = *a.Patch.Locale
		}
		if a.Patch.Name != nil {
			s.Settings.Name = *a.Patch.Name
		}
		return s

	case LoadExampleData:
		now := a.Now
		if now.IsZero() {
			now = time.Now()
		}
		example := core.ExampleSnapshot(now)
		s.Accounts = example.Accounts
		s.Transactions = example.Transactions
		s.Budgets = example.Budgets
		s.Settings = example.Settings
		return s

	case ResetData:
		return core.InitialSnapshot()

	default:
		return s
	}
}

func cloneAccounts(in []core.Account) []core.Account {
	return append([]core.Account(nil), in...)
}

func cloneTransactions(in []core.Transaction) []core.Transaction {
	return append([]core.Transaction(nil), in...)
}

func cloneBudgets(in map[string]core.Budget) map[string]core.Budget {
	out := make(map[string]core.Budget, len(in)+1)
	for k, v := range in {
		out[k] = v
	}
	return out
}
