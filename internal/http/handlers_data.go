package http

import (
	"net/http"
	"time"

	applog "trackfin/internal/log"
	"trackfin/internal/state"
)

// handleLoadExample replaces all collections with the demo dataset,
// keeping the session.
func (s *Server) handleLoadExample(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, "POST")
		return
	}

	snap := s.store.Dispatch(r.Context(), state.LoadExampleData{Now: time.Now()})

	applog.FromContext(r.Context()).InfoContext(r.Context(), "Example data loaded",
		"accounts", len(snap.Accounts),
		"transactions", len(snap.Transactions),
		"budgets", len(snap.Budgets))
	writeJSON(w, http.StatusOK, snap)
}

// handleResetData wipes everything back to the initial state, session
// included.
func (s *Server) handleResetData(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, "POST")
		return
	}

	snap := s.store.Dispatch(r.Context(), state.ResetData{})

	applog.FromContext(r.Context()).InfoContext(r.Context(), "Application state reset")
	writeJSON(w, http.StatusOK, snap)
}
