package http

import (
	"net/http"

	"trackfin/internal/core"
	applog "trackfin/internal/log"
	"trackfin/internal/state"
)

type accountRequest struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Type     string `json:"type"`
	Currency string `json:"currency"`
}

func (req accountRequest) toAccount(defaultCurrency string) core.Account {
	currency := sanitizeInput(req.Currency)
	if currency == "" {
		currency = defaultCurrency
	}
	return core.Account{
		ID:       sanitizeInput(req.ID),
		Name:     sanitizeInput(req.Name),
		Type:     core.AccountType(sanitizeInput(req.Type)),
		Currency: currency,
	}
}

func (s *Server) handleAccounts(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		snap := s.store.Snapshot()
		writeJSON(w, http.StatusOK, core.AccountBalances(snap))

	case http.MethodPost:
		var req accountRequest
		if err := decodeJSON(r, &req); err != nil {
			writeErrorCtx(w, r, http.StatusBadRequest, "malformed request body")
			return
		}

		account := req.toAccount(s.store.Snapshot().Settings.Currency)
		if account.ID == "" {
			account.ID = newID()
		}
		if err := account.Validate(); err != nil {
			writeErrorCtx(w, r, http.StatusUnprocessableEntity, err.Error())
			return
		}
		if _, ok := findAccount(s.store.Snapshot(), account.ID); ok {
			writeErrorCtx(w, r, http.StatusConflict, "account id already exists")
			return
		}

		s.store.Dispatch(r.Context(), state.AddAccount{Account: account})

		applog.FromContext(r.Context()).InfoContext(r.Context(), "Account created",
			"account_id", account.ID, "account_type", string(account.Type))
		writeJSON(w, http.StatusCreated, account)

	default:
		methodNotAllowed(w, "GET", "POST")
	}
}

func (s *Server) handleAccountByID(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeErrorCtx(w, r, http.StatusBadRequest, "missing account id")
		return
	}

	switch r.Method {
	case http.MethodGet:
		snap := s.store.Snapshot()
		account, ok := findAccount(snap, id)
		if !ok {
			writeErrorCtx(w, r, http.StatusNotFound, "account not found")
			return
		}
		writeJSON(w, http.StatusOK, core.AccountBalanceView{
			Account:      account,
			BalanceCents: core.AccountBalance(snap, id),
		})

	case http.MethodPut:
		var req accountRequest
		if err := decodeJSON(r, &req); err != nil {
			writeErrorCtx(w, r, http.StatusBadRequest, "malformed request body")
			return
		}

		account := req.toAccount(s.store.Snapshot().Settings.Currency)
		account.ID = id // path wins over body
		if err := account.Validate(); err != nil {
			writeErrorCtx(w, r, http.StatusUnprocessableEntity, err.Error())
			return
		}
		if _, ok := findAccount(s.store.Snapshot(), id); !ok {
			writeErrorCtx(w, r, http.StatusNotFound, "account not found")
			return
		}

		s.store.Dispatch(r.Context(), state.UpdateAccount{Account: account})
		writeJSON(w, http.StatusOK, account)

	case http.MethodDelete:
		snap := s.store.Snapshot()
		if _, ok := findAccount(snap, id); !ok {
			writeErrorCtx(w, r, http.StatusNotFound, "account not found")
			return
		}
		// The state layer deletes unconditionally; referential integrity
		// is enforced here, at the boundary.
		if accountHasTransactions(snap, id) {
			writeErrorCtx(w, r, http.StatusConflict, "account still has transactions")
			return
		}

		s.store.Dispatch(r.Context(), state.DeleteAccount{ID: id})

		applog.FromContext(r.Context()).InfoContext(r.Context(), "Account deleted",
			"account_id", id)
		w.WriteHeader(http.StatusNoContent)

	default:
		methodNotAllowed(w, "GET", "PUT", "DELETE")
	}
}

func findAccount(snap core.Snapshot, id string) (core.Account, bool) {
	for _, a := range snap.Accounts {
		if a.ID == id {
			return a, true
		}
	}
	return core.Account{}, false
}

func accountHasTransactions(snap core.Snapshot, accountID string) bool {
	for _, t := range snap.Transactions {
		if t.AccountID == accountID {
			return true
		}
	}
	return false
}
