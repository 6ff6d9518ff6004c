package http

import (
	"net/http"
	"sort"
	"strings"

	"trackfin/internal/core"
	applog "trackfin/internal/log"
	"trackfin/internal/state"
)

// budgetRequest accepts the amount as integer cents or a decimal string.
type budgetRequest struct {
	AmountCents int64  `json:"amountCents"`
	Amount      string `json:"amount"`
	Month       string `json:"month"`
}

func (s *Server) handleBudgets(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, "GET")
		return
	}
	writeJSON(w, http.StatusOK, s.store.Snapshot().Budgets)
}

func (s *Server) handleBudgetByCategory(w http.ResponseWriter, r *http.Request) {
	category := sanitizeInput(r.PathValue("category"))
	if category == "" {
		writeErrorCtx(w, r, http.StatusBadRequest, "missing budget category")
		return
	}

	switch r.Method {
	case http.MethodGet:
		budget, ok := s.store.Snapshot().Budgets[category]
		if !ok {
			writeErrorCtx(w, r, http.StatusNotFound, "no budget for category")
			return
		}
		writeJSON(w, http.StatusOK, budget)

	case http.MethodPut:
		var req budgetRequest
		if err := decodeJSON(r, &req); err != nil {
			writeErrorCtx(w, r, http.StatusBadRequest, "malformed request body")
			return
		}

		cents, err := parseAmountCents(req.Amount, req.AmountCents)
		if err != nil {
			writeErrorCtx(w, r, http.StatusUnprocessableEntity, "invalid amount")
			return
		}
		budget := core.Budget{
			AmountCents: cents,
			Month:       strings.TrimSpace(req.Month),
		}
		if err := budget.Validate(); err != nil {
			writeErrorCtx(w, r, http.StatusUnprocessableEntity, err.Error())
			return
		}

		// Budgets are keyed by category alone, so this overwrites any
		// prior month's figure for the category.
		s.store.Dispatch(r.Context(), state.SetBudget{Category: category, Budget: budget})

		applog.FromContext(r.Context()).InfoContext(r.Context(), "Budget set",
			"category", category,
			applog.FieldMonth, budget.Month,
			"amount_cents", budget.AmountCents)
		writeJSON(w, http.StatusOK, budget)

	default:
		methodNotAllowed(w, "GET", "PUT")
	}
}

// handleBudgetStatus derives utilization for every budgeted category in the
// requested month, in category order.
func (s *Server) handleBudgetStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, "GET")
		return
	}

	month, err := parseMonth(r)
	if err != nil {
		writeErrorCtx(w, r, http.StatusBadRequest, err.Error())
		return
	}

	snap := s.store.Snapshot()
	categories := make([]string, 0, len(snap.Budgets))
	for category := range snap.Budgets {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	statuses := make([]core.BudgetStatus, len(categories))
	for i, category := range categories {
		statuses[i] = core.BudgetUtilization(snap, category, month)
	}
	writeJSON(w, http.StatusOK, statuses)
}
