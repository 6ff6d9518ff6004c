package core

import (
	"errors"
	"strings"
	"time"
)

const (
	Checking AccountType = "checking"
	Savings  AccountType = "savings"
	Credit   AccountType = "credit"
)

const (
	Income   TransactionType = "income"
	Expense  TransactionType = "expense"
	Transfer TransactionType = "transfer"
)

type (
	AccountType     string
	TransactionType string

	// User identifies the signed-in person. Replaced wholesale on login.
	User struct {
		ID    string `json:"id"`
		Name  string `json:"name"`
		Email string `json:"email"`
	}

	// Session is part of the snapshot so it round-trips through the blob
	// store and survives a restart.
	Session struct {
		IsAuthenticated bool  `json:"isAuthenticated"`
		User            *User `json:"user"`
	}

	Account struct {
		ID       string      `json:"id"`
		Name     string      `json:"name"`
		Type     AccountType `json:"type"`
		Currency string      `json:"currency"`
	}

	// Transaction amounts are integer minor currency units. All money
	// arithmetic stays in int64 cents.
	Transaction struct {
		ID             string          `json:"id"`
		Date           string          `json:"date"` // ISO calendar date, YYYY-MM-DD
		AccountID      string          `json:"accountId"`
		Type           TransactionType `json:"type"`
		AmountCents    int64           `json:"amountCents"`
		Category       string          `json:"category"`
		Notes          string          `json:"notes,omitempty"`
		Tags           []string        `json:"tags"`
		TransferLinkID string          `json:"transferLinkId,omitempty"`
	}

	// Budget is keyed by category name in the snapshot map. The month field
	// is carried on the record but is not part of the key, so setting a new
	// month's figure overwrites the previous one.
	Budget struct {
		AmountCents int64  `json:"amountCents"`
		Month       string `json:"month"` // YYYY-MM
	}

	Settings struct {
		Currency string `json:"currency"`
		Locale   string `json:"locale"`
		Name     string `json:"name"`
	}

	// SettingsPatch is a partial settings update; nil fields are retained.
	SettingsPatch struct {
		Currency *string `json:"currency,omitempty"`
		Locale   *string `json:"locale,omitempty"`
		Name     *string `json:"name,omitempty"`
	}

	// Snapshot is the complete application state at a point in time. It is
	// the sole owner of all entities; accounts and transactions are
	// cross-referenced by id only.
	Snapshot struct {
		Session      Session           `json:"session"`
		Accounts     []Account         `json:"accounts"`
		Transactions []Transaction     `json:"transactions"`
		Budgets      map[string]Budget `json:"budgets"`
		Settings     Settings          `json:"settings"`
	}
)

var (
	ErrEmptyID        = errors.New("empty id")
	ErrEmptyName      = errors.New("empty name")
	ErrEmptyAccountID = errors.New("empty account id")
	ErrEmptyCategory  = errors.New("empty category")
	ErrEmptyCurrency  = errors.New("empty currency")
	ErrInvalidType    = errors.New("invalid type")
	ErrInvalidDate    = errors.New("invalid date")
	ErrInvalidMonth   = errors.New("invalid month")
	ErrInvalidAmount  = errors.New("invalid amount")
)

// InitialSnapshot returns the empty application state: signed out, no
// collections, USD/en-US settings.
func InitialSnapshot() Snapshot {
	return Snapshot{
		Session: Session{IsAuthenticated: false, User: nil},
		Budgets: map[string]Budget{},
		Settings: Settings{
			Currency: "USD",
			Locale:   "en-US",
			Name:     "",
		},
	}
}

func (at AccountType) IsValid() bool {
	switch at {
	case Checking, Savings, Credit:
		return true
	default:
		return false
	}
}

func (tt TransactionType) IsValid() bool {
	switch tt {
	case Income, Expense, Transfer:
		return true
	default:
		return false
	}
}

// DateKey formats a time as the ISO calendar date used on transactions.
func DateKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// MonthKey formats a time as the YYYY-MM key used for month filtering.
func MonthKey(t time.Time) string {
	return t.Format("2006-01")
}

// ValidDate reports whether s is a well-formed YYYY-MM-DD calendar date.
// Malformed dates are not an error at the snapshot level; they are simply
// excluded from every month-filtered total by the prefix match.
func ValidDate(s string) bool {
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}

// ValidMonth reports whether s is a well-formed YYYY-MM month key.
func ValidMonth(s string) bool {
	_, err := time.Parse("2006-01", s)
	return err == nil
}

func (u User) Validate() error {
	if strings.TrimSpace(u.ID) == "" {
		return ErrEmptyID
	}
	if strings.TrimSpace(u.Name) == "" {
		return ErrEmptyName
	}
	return nil
}

func (a Account) Validate() error {
	if strings.TrimSpace(a.ID) == "" {
		return ErrEmptyID
	}
	if strings.TrimSpace(a.Name) == "" {
		return ErrEmptyName
	}
	if len(a.Name) > 200 {
		return errors.New("name too long (max 200 characters)")
	}
	if !a.Type.IsValid() {
		return ErrInvalidType
	}
	if strings.TrimSpace(a.Currency) == "" {
		return ErrEmptyCurrency
	}
	return nil
}

func (t Transaction) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return ErrEmptyID
	}
	if !ValidDate(t.Date) {
		return ErrInvalidDate
	}
	if strings.TrimSpace(t.AccountID) == "" {
		return ErrEmptyAccountID
	}
	if !t.Type.IsValid() {
		return ErrInvalidType
	}
	if t.AmountCents < 0 {
		return ErrInvalidAmount
	}
	if strings.TrimSpace(t.Category) == "" {
		return ErrEmptyCategory
	}
	if len(t.Notes) > 500 {
		return errors.New("notes too long (max 500 characters)")
	}
	return nil
}

func (b Budget) Validate() error {
	if b.AmountCents < 0 {
		return ErrInvalidAmount
	}
	if !ValidMonth(b.Month) {
		return ErrInvalidMonth
	}
	return nil
}

func (s Settings) Validate() error {
	if strings.TrimSpace(s.Currency) == "" {
		return ErrEmptyCurrency
	}
	if strings.TrimSpace(s.Locale) == "" {
		return errors.New("empty locale")
	}
	return nil
}
