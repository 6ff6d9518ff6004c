package core

import "time"

// ExampleSnapshot returns the fixed demo dataset: three USD accounts, three
// transactions dated "today" on the checking account, and three budgets for
// the current month. The session is left untouched by LoadExampleData, so
// it is not part of the example payload; callers merge it themselves.
func ExampleSnapshot(now time.Time) Snapshot {
	today := DateKey(now)
	month := MonthKey(now)
	return Snapshot{
		Accounts: []Account{
			{ID: "a1", Name: "Checking", Type: Checking, Currency: "USD"},
			{ID: "a2", Name: "Savings", Type: Savings, Currency: "USD"},
			{ID: "a3", Name: "Credit Card", Type: Credit, Currency: "USD"},
		},
		Transactions: []Transaction{
			{
				ID:          "t1",
				Date:        today,
				AccountID:   "a1",
				Type:        Income,
				AmountCents: 500000, // $5000
				Category:    "Salary",
				Notes:       "Monthly salary",
				Tags:        []string{"work", "salary"},
			},
			{
				ID:          "t2",
				Date:        today,
				AccountID:   "a1",
				Type:        Expense,
				AmountCents: 15000, // $150
				Category:    "Food",
				Notes:       "Grocery shopping",
				Tags:        []string{"grocery", "food"},
			},
			{
				ID:          "t3",
				Date:        today,
				AccountID:   "a1",
				Type:        Expense,
				AmountCents: 8000, // $80
				Category:    "Transport",
				Notes:       "Gas and parking",
				Tags:        []string{"transport", "gas"},
			},
		},
		Budgets: map[string]Budget{
			"Food":          {AmountCents: 50000, Month: month}, // $500
			"Transport":     {AmountCents: 20000, Month: month}, // $200
			"Entertainment": {AmountCents: 10000, Month: month}, // $100
		},
		Settings: Settings{
			Currency: "USD",
			Locale:   "en-US",
			Name:     "Alex Doe",
		},
	}
}
