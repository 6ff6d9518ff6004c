package core

import "testing"

func TestAccountValidate(t *testing.T) {
	good := Account{ID: "a1", Name: "Checking", Type: Checking, Currency: "USD"}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	bads := []Account{
		{ID: "", Name: "Checking", Type: Checking, Currency: "USD"},
		{ID: "a1", Name: "  ", Type: Checking, Currency: "USD"},
		{ID: "a1", Name: "Checking", Type: "brokerage", Currency: "USD"},
		{ID: "a1", Name: "Checking", Type: Checking, Currency: ""},
	}
	for i, a := range bads {
		if err := a.Validate(); err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}

func TestTransactionValidate(t *testing.T) {
	good := Transaction{
		ID:          "t1",
		Date:        "2024-03-05",
		AccountID:   "a1",
		Type:        Income,
		AmountCents: 500000,
		Category:    "Salary",
		Tags:        []string{},
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	// Zero amounts are allowed; only negatives are rejected.
	zero := good
	zero.AmountCents = 0
	if err := zero.Validate(); err != nil {
		t.Fatalf("expected zero amount ok, got %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*Transaction)
	}{
		{"empty id", func(tx *Transaction) { tx.ID = "" }},
		{"bad date", func(tx *Transaction) { tx.Date = "03/05/2024" }},
		{"empty account", func(tx *Transaction) { tx.AccountID = "" }},
		{"bad type", func(tx *Transaction) { tx.Type = "refund" }},
		{"negative amount", func(tx *Transaction) { tx.AmountCents = -1 }},
		{"empty category", func(tx *Transaction) { tx.Category = " " }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tx := good
			tc.mutate(&tx)
			if err := tx.Validate(); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestBudgetValidate(t *testing.T) {
	if err := (Budget{AmountCents: 50000, Month: "2024-03"}).Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if err := (Budget{AmountCents: -1, Month: "2024-03"}).Validate(); err == nil {
		t.Fatalf("expected error for negative amount")
	}
	if err := (Budget{AmountCents: 1, Month: "2024-3"}).Validate(); err == nil {
		t.Fatalf("expected error for malformed month")
	}
}

func TestValidDateAndMonth(t *testing.T) {
	cases := []struct {
		s  string
		ok bool
	}{
		{"2024-03-05", true},
		{"2024-13-05", false},
		{"2024-02-30", false},
		{"not-a-date", false},
		{"", false},
	}
	for _, tc := range cases {
		if got := ValidDate(tc.s); got != tc.ok {
			t.Fatalf("ValidDate(%q) = %v, want %v", tc.s, got, tc.ok)
		}
	}
	if !ValidMonth("2024-03") || ValidMonth("2024") || ValidMonth("2024-3") {
		t.Fatalf("ValidMonth misbehaves")
	}
}

func TestInitialSnapshot(t *testing.T) {
	s := InitialSnapshot()
	if s.Session.IsAuthenticated || s.Session.User != nil {
		t.Fatalf("initial session must be signed out")
	}
	if len(s.Accounts) != 0 || len(s.Transactions) != 0 || len(s.Budgets) != 0 {
		t.Fatalf("initial collections must be empty")
	}
	if s.Settings.Currency != "USD" || s.Settings.Locale != "en-US" || s.Settings.Name != "" {
		t.Fatalf("unexpected initial settings: %+v", s.Settings)
	}
}
