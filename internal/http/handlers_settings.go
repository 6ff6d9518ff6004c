package http

import (
	"net/http"
	"strings"

	"trackfin/internal/core"
	"trackfin/internal/state"
)

func (s *Server) handleSettings(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, s.store.Snapshot().Settings)

	case http.MethodPatch:
		var patch core.SettingsPatch
		if err := decodeJSON(r, &patch); err != nil {
			writeErrorCtx(w, r, http.StatusBadRequest, "malformed request body")
			return
		}

		// A present-but-blank currency or locale would leave the snapshot
		// unable to render money; absent fields are fine.
		if patch.Currency != nil && strings.TrimSpace(*patch.Currency) == "" {
			writeErrorCtx(w, r, http.StatusUnprocessableEntity, core.ErrEmptyCurrency.Error())
			return
		}
		if patch.Locale != nil && strings.TrimSpace(*patch.Locale) == "" {
			writeErrorCtx(w, r, http.StatusUnprocessableEntity, "empty locale")
			return
		}

		snap := s.store.Dispatch(r.Context(), state.UpdateSettings{Patch: patch})
		writeJSON(w, http.StatusOK, snap.Settings)

	default:
		methodNotAllowed(w, "GET", "PATCH")
	}
}
