package http

import (
	"net/http"

	"trackfin/internal/core"
	applog "trackfin/internal/log"
	"trackfin/internal/state"
)

type loginRequest struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// handleSession serves the session endpoint: GET returns the current
// session, POST signs in, DELETE signs out. Sign-in is demo-grade: any
// well-formed user is accepted without a credential check.
func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, s.store.Snapshot().Session)

	case http.MethodPost:
		var req loginRequest
		if err := decodeJSON(r, &req); err != nil {
			writeErrorCtx(w, r, http.StatusBadRequest, "malformed request body")
			return
		}

		user := core.User{
			ID:    sanitizeInput(req.ID),
			Name:  sanitizeInput(req.Name),
			Email: sanitizeInput(req.Email),
		}
		if user.ID == "" {
			user.ID = newID()
		}
		if err := user.Validate(); err != nil {
			writeErrorCtx(w, r, http.StatusUnprocessableEntity, err.Error())
			return
		}

		snap := s.store.Dispatch(r.Context(), state.Login{User: user})

		applog.FromContext(r.Context()).InfoContext(r.Context(), "User signed in",
			"user_id", user.ID)
		writeJSON(w, http.StatusOK, snap.Session)

	case http.MethodDelete:
		snap := s.store.Dispatch(r.Context(), state.Logout{})
		writeJSON(w, http.StatusOK, snap.Session)

	default:
		methodNotAllowed(w, "GET", "POST", "DELETE")
	}
}
