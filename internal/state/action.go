// Package state holds the action set, the reducer, and the owned state
// container. All mutations of the snapshot go through Reduce; nothing else
// in the repository writes application state.
package state

import (
	"time"

	"trackfin/internal/core"
)

// Action is a named, immutable description of a requested state transition.
// The set is closed: adding an action means adding a case to Reduce, which
// the sealed interface makes a compile-time-checked change.
type Action interface {
	isAction()
}

type (
	// Login sets the session to authenticated with the given user,
	// overwriting any existing session.
	Login struct {
		User core.User
	}

	// Logout clears the session; other collections are untouched.
	Logout struct{}

	// AddAccount appends the account. Id uniqueness is the caller's job.
	AddAccount struct {
		Account core.Account
	}

	// UpdateAccount replaces entries matching the account's id wholesale;
	// a no-op when nothing matches.
	UpdateAccount struct {
		Account core.Account
	}

	// DeleteAccount removes entries with the id. The reducer does not veto
	// deleting an account that still has transactions; that check belongs
	// to the calling layer.
	DeleteAccount struct {
		ID string
	}

	AddTransaction struct {
		Transaction core.Transaction
	}

	UpdateTransaction struct {
		Transaction core.Transaction
	}

	DeleteTransaction struct {
		ID string
	}

	// SetBudget sets the category's budget, overwriting any prior value.
	// Budgets are keyed by category only; the month on the record is not
	// part of the key, so history is not retained.
	SetBudget struct {
		Category string
		Budget   core.Budget
	}

	// UpdateSettings shallow-merges the patch; nil fields are retained.
	UpdateSettings struct {
		Patch core.SettingsPatch
	}

	// LoadExampleData replaces accounts, transactions, budgets, and
	// settings with the fixed demo dataset. The session is kept. Now
	// anchors the dataset's dates; the dispatcher fills it when zero.
	LoadExampleData struct {
		Now time.Time
	}

	// ResetData replaces the entire snapshot with the initial state.
	ResetData struct{}
)

func (Login) isAction()             {}
func (Logout) isAction()            {}
func (AddAccount) isAction()        {}
func (UpdateAccount) isAction()     {}
func (DeleteAccount) isAction()     {}
func (AddTransaction) isAction()    {}
func (UpdateTransaction) isAction() {}
func (DeleteTransaction) isAction() {}
func (SetBudget) isAction()         {}
func (UpdateSettings) isAction()    {}
func (LoadExampleData) isAction()   {}
func (ResetData) isAction()         {}

// ActionName returns a stable wire/log name for an action.
func ActionName(a Action) string {
	switch a.(type) {
	case Login:
		return "login"
	case Logout:
		return "logout"
	case AddAccount:
		return "add_account"
	case UpdateAccount:
		return "update_account"
	case DeleteAccount:
		return "delete_account"
	case AddTransaction:
		return "add_transaction"
	case UpdateTransaction:
		return "update_transaction"
	case DeleteTransaction:
		return "delete_transaction"
	case SetBudget:
		return "set_budget"
	case UpdateSettings:
		return "update_settings"
	case LoadExampleData:
		return "load_example_data"
	case ResetData:
		return "reset_data"
	default:
		return "unknown"
	}
}
