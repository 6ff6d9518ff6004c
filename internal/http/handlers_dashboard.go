package http

import (
	"net/http"

	"trackfin/internal/core"
	applog "trackfin/internal/log"
)

// dashboardResponse is the aggregate view for one month. Every field is a
// pure derivation of the snapshot; the response is cached per revision, so
// a cached read is indistinguishable from recomputation.
type dashboardResponse struct {
	Month             string                    `json:"month"`
	Accounts          []core.AccountBalanceView `json:"accounts"`
	TotalBalanceCents int64                     `json:"totalBalanceCents"`
	IncomeCents       int64                     `json:"incomeCents"`
	ExpenseCents      int64                     `json:"expenseCents"`
	NetCashFlowCents  int64                     `json:"netCashFlowCents"`
	TopCategories     []core.CategoryAmount     `json:"topCategories"`
}

const topCategoryCount = 3

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, "GET")
		return
	}

	month, err := parseMonth(r)
	if err != nil {
		writeErrorCtx(w, r, http.StatusBadRequest, err.Error())
		return
	}

	key := s.dashboardCacheKey(month)
	if cached, found := s.dashboardCache.Get(key); found {
		applog.FromContext(r.Context()).DebugContext(r.Context(), "Dashboard cache hit",
			applog.FieldMonth, month)
		writeJSON(w, http.StatusOK, cached)
		return
	}

	snap := s.store.Snapshot()
	resp := dashboardResponse{
		Month:             month,
		Accounts:          core.AccountBalances(snap),
		TotalBalanceCents: core.TotalBalance(snap),
		IncomeCents:       core.MonthlyIncome(snap, month),
		ExpenseCents:      core.MonthlyExpenses(snap, month),
		NetCashFlowCents:  core.NetCashFlow(snap, month),
		TopCategories:     core.TopSpendingCategories(snap, month, topCategoryCount),
	}
	if resp.TopCategories == nil {
		resp.TopCategories = []core.CategoryAmount{}
	}

	s.dashboardCache.Set(key, resp)
	writeJSON(w, http.StatusOK, resp)
}
