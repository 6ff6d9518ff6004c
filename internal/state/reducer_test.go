package state

import (
	"reflect"
	"testing"
	"time"

	"trackfin/internal/core"
)

func seedSnapshot() core.Snapshot {
	s := core.InitialSnapshot()
	s.Accounts = []core.Account{
		{ID: "a1", Name: "Checking", Type: core.Checking, Currency: "USD"},
		{ID: "a2", Name: "Savings", Type: core.Savings, Currency: "USD"},
	}
	s.Transactions = []core.Transaction{
		{ID: "t1", Date: "2026-08-01", AccountID: "a1", Type: core.Income, AmountCents: 500000, Category: "Salary"},
		{ID: "t2", Date: "2026-08-02", AccountID: "a1", Type: core.Expense, AmountCents: 15000, Category: "Food"},
	}
	s.Budgets = map[string]core.Budget{
		"Food": {AmountCents: 50000, Month: "2026-08"},
	}
	return s
}

func TestReduceIdentityFallback(t *testing.T) {
	s := seedSnapshot()

	if got := Reduce(s, nil); !reflect.DeepEqual(got, s) {
		t.Error("nil action must return the snapshot unchanged")
	}
}

func TestReduceNeverMutatesInput(t *testing.T) {
	s := seedSnapshot()
	before := core.Snapshot{
		Session:      s.Session,
		Accounts:     append([]core.Account(nil), s.Accounts...),
		Transactions: append([]core.Transaction(nil), s.Transactions...),
		Budgets:      map[string]core.Budget{"Food": s.Budgets["Food"]},
		Settings:     s.Settings,
	}

	actions := []Action{
		Login{User: core.User{ID: "u1", Name: "Alex"}},
		Logout{},
		AddAccount{Account: core.Account{ID: "a3", Name: "Credit", Type: core.Credit, Currency: "USD"}},
		UpdateAccount{Account: core.Account{ID: "a1", Name: "Renamed", Type: core.Checking, Currency: "USD"}},
		DeleteAccount{ID: "a2"},
		AddTransaction{Transaction: core.Transaction{ID: "t3", Date: "2026-08-03", AccountID: "a1", Type: core.Expense, AmountCents: 100, Category: "Misc"}},
		UpdateTransaction{Transaction: core.Transaction{ID: "t2", Date: "2026-08-02", AccountID: "a1", Type: core.Expense, AmountCents: 999, Category: "Food"}},
		DeleteTransaction{ID: "t1"},
		SetBudget{Category: "Transport", Budget: core.Budget{AmountCents: 10000, Month: "2026-08"}},
		UpdateSettings{Patch: core.SettingsPatch{Name: strPtr("Alex")}},
		LoadExampleData{Now: time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)},
		ResetData{},
	}

	for _, a := range actions {
		Reduce(s, a)
	}
	if !reflect.DeepEqual(s, before) {
		t.Errorf("input snapshot mutated:\n got %+v\nwant %+v", s, before)
	}
}

func TestReduceSession(t *testing.T) {
	s := core.InitialSnapshot()

	got := Reduce(s, Login{User: core.User{ID: "u1", Name: "Alex", Email: "alex@example.com"}})
	if !got.Session.IsAuthenticated || got.Session.User == nil || got.Session.User.ID != "u1" {
		t.Fatalf("session after login = %+v", got.Session)
	}

	// Login overwrites an existing session wholesale.
	got = Reduce(got, Login{User: core.User{ID: "u2", Name: "Sam"}})
	if got.Session.User.ID != "u2" {
		t.Fatalf("second login user = %q, want u2", got.Session.User.ID)
	}

	got = Reduce(got, Logout{})
	if got.Session.IsAuthenticated || got.Session.User != nil {
		t.Fatalf("session after logout = %+v", got.Session)
	}
}

func TestReduceAccounts(t *testing.T) {
	s := seedSnapshot()

	got := Reduce(s, AddAccount{Account: core.Account{ID: "a3", Name: "Credit", Type: core.Credit, Currency: "USD"}})
	if len(got.Accounts) != 3 || got.Accounts[2].ID != "a3" {
		t.Fatalf("accounts after add = %+v", got.Accounts)
	}

	update := UpdateAccount{Account: core.Account{ID: "a1", Name: "Main", Type: core.Checking, Currency: "EUR"}}
	got = Reduce(s, update)
	if got.Accounts[0].Name != "Main" || got.Accounts[0].Currency != "EUR" {
		t.Fatalf("account after update = %+v", got.Accounts[0])
	}
	if got.Accounts[1].Name != "Savings" {
		t.Fatal("unrelated account changed")
	}

	// Updating is idempotent: applying the same update twice gives the
	// same snapshot as applying it once.
	if twice := Reduce(got, update); !reflect.DeepEqual(twice, got) {
		t.Error("update not idempotent")
	}

	// Updating a missing id is a no-op.
	if got := Reduce(s, UpdateAccount{Account: core.Account{ID: "nope", Name: "X", Type: core.Checking, Currency: "USD"}}); !reflect.DeepEqual(got, s) {
		t.Error("update of missing id changed the snapshot")
	}

	got = Reduce(s, DeleteAccount{ID: "a2"})
	if len(got.Accounts) != 1 || got.Accounts[0].ID != "a1" {
		t.Fatalf("accounts after delete = %+v", got.Accounts)
	}
}

func TestReduceDeleteAccountKeepsTransactions(t *testing.T) {
	s := seedSnapshot()

	// The reducer does not veto deleting an account with transactions;
	// the rows stay behind with a dangling accountId.
	got := Reduce(s, DeleteAccount{ID: "a1"})
	if len(got.Transactions) != 2 {
		t.Fatalf("transactions after account delete = %d, want 2", len(got.Transactions))
	}
	for _, tx := range got.Transactions {
		if tx.AccountID != "a1" {
			t.Fatalf("transaction accountId = %q", tx.AccountID)
		}
	}
}

func TestReduceTransactions(t *testing.T) {
	s := seedSnapshot()

	got := Reduce(s, AddTransaction{Transaction: core.Transaction{ID: "t3", Date: "2026-08-03", AccountID: "a2", Type: core.Income, AmountCents: 100, Category: "Interest"}})
	if len(got.Transactions) != 3 {
		t.Fatalf("transactions after add = %d", len(got.Transactions))
	}

	got = Reduce(s, UpdateTransaction{Transaction: core.Transaction{ID: "t2", Date: "2026-08-02", AccountID: "a1", Type: core.Expense, AmountCents: 20000, Category: "Food"}})
	if got.Transactions[1].AmountCents != 20000 {
		t.Fatalf("transaction after update = %+v", got.Transactions[1])
	}

	got = Reduce(s, DeleteTransaction{ID: "t1"})
	if len(got.Transactions) != 1 || got.Transactions[0].ID != "t2" {
		t.Fatalf("transactions after delete = %+v", got.Transactions)
	}
}

func TestReduceSetBudgetLastWins(t *testing.T) {
	s := core.InitialSnapshot()

	got := Reduce(s, SetBudget{Category: "Food", Budget: core.Budget{AmountCents: 50000, Month: "2026-08"}})
	got = Reduce(got, SetBudget{Category: "Food", Budget: core.Budget{AmountCents: 20000, Month: "2026-09"}})

	if len(got.Budgets) != 1 {
		t.Fatalf("budgets = %+v, want single category entry", got.Budgets)
	}
	b := got.Budgets["Food"]
	if b.AmountCents != 20000 || b.Month != "2026-09" {
		t.Fatalf("budget = %+v, want the later set", b)
	}
}

func TestReduceUpdateSettings(t *testing.T) {
	s := core.InitialSnapshot()

	got := Reduce(s, UpdateSettings{Patch: core.SettingsPatch{Currency: strPtr("EUR")}})
	if got.Settings.Currency != "EUR" {
		t.Errorf("Currency = %q", got.Settings.Currency)
	}
	if got.Settings.Locale != "en-US" {
		t.Errorf("Locale = %q, want untouched default", got.Settings.Locale)
	}

	got = Reduce(got, UpdateSettings{Patch: core.SettingsPatch{Locale: strPtr("it-IT"), Name: strPtr("Alex")}})
	if got.Settings.Currency != "EUR" || got.Settings.Locale != "it-IT" || got.Settings.Name != "Alex" {
		t.Errorf("settings after second patch = %+v", got.Settings)
	}

	// Empty patch changes nothing.
	if same := Reduce(got, UpdateSettings{}); !reflect.DeepEqual(same, got) {
		t.Error("empty patch changed the snapshot")
	}
}

func TestReduceLoadExampleDataKeepsSession(t *testing.T) {
	s := core.InitialSnapshot()
	s = Reduce(s, Login{User: core.User{ID: "u1", Name: "Alex"}})

	now := time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)
	got := Reduce(s, LoadExampleData{Now: now})

	if !got.Session.IsAuthenticated || got.Session.User.ID != "u1" {
		t.Fatalf("session not kept: %+v", got.Session)
	}
	if len(got.Accounts) == 0 || len(got.Transactions) == 0 || len(got.Budgets) == 0 {
		t.Fatal("example collections not loaded")
	}
	for _, tx := range got.Transactions {
		if tx.Date != "2026-08-15" {
			t.Fatalf("transaction date = %q, want anchored to Now", tx.Date)
		}
	}
}

func TestReduceResetData(t *testing.T) {
	s := seedSnapshot()
	s = Reduce(s, Login{User: core.User{ID: "u1", Name: "Alex"}})

	got := Reduce(s, ResetData{})
	if !reflect.DeepEqual(got, core.InitialSnapshot()) {
		t.Errorf("reset = %+v, want initial snapshot", got)
	}
}

func TestReduceScriptedScenario(t *testing.T) {
	s := core.InitialSnapshot()
	s = Reduce(s, AddAccount{Account: core.Account{ID: "a1", Name: "Checking", Type: core.Checking, Currency: "USD"}})
	s = Reduce(s, AddTransaction{Transaction: core.Transaction{ID: "t1", Date: "2026-08-01", AccountID: "a1", Type: core.Income, AmountCents: 500000, Category: "Salary"}})

	if got := core.AccountBalance(s, "a1"); got != 500000 {
		t.Fatalf("balance after income = %d, want 500000", got)
	}

	s = Reduce(s, AddTransaction{Transaction: core.Transaction{ID: "t2", Date: "2026-08-02", AccountID: "a1", Type: core.Expense, AmountCents: 15000, Category: "Food"}})

	if got := core.AccountBalance(s, "a1"); got != 485000 {
		t.Fatalf("balance after expense = %d, want 485000", got)
	}
	if got := core.MonthlyCategorySpend(s, "Food", "2026-08"); got != 15000 {
		t.Fatalf("Food spend = %d, want 15000", got)
	}
}

func strPtr(s string) *string { return &s }
