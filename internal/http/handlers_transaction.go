package http

import (
	"net/http"
	"strings"

	"trackfin/internal/core"
	applog "trackfin/internal/log"
	"trackfin/internal/state"
)

// transactionRequest accepts amounts either as integer cents or as a
// decimal string ("12.34" or "12,34"); the decimal wins when both are set.
type transactionRequest struct {
	ID             string   `json:"id"`
	Date           string   `json:"date"`
	AccountID      string   `json:"accountId"`
	Type           string   `json:"type"`
	AmountCents    int64    `json:"amountCents"`
	Amount         string   `json:"amount"`
	Category       string   `json:"category"`
	Notes          string   `json:"notes"`
	Tags           []string `json:"tags"`
	TransferLinkID string   `json:"transferLinkId"`
}

func (req transactionRequest) toTransaction() (core.Transaction, error) {
	cents, err := parseAmountCents(req.Amount, req.AmountCents)
	if err != nil {
		return core.Transaction{}, err
	}
	return core.Transaction{
		ID:             sanitizeInput(req.ID),
		Date:           strings.TrimSpace(req.Date),
		AccountID:      sanitizeInput(req.AccountID),
		Type:           core.TransactionType(sanitizeInput(req.Type)),
		AmountCents:    cents,
		Category:       sanitizeInput(req.Category),
		Notes:          sanitizeInput(req.Notes),
		Tags:           req.Tags,
		TransferLinkID: sanitizeInput(req.TransferLinkID),
	}, nil
}

func (s *Server) handleTransactions(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		snap := s.store.Snapshot()
		transactions := snap.Transactions

		// Optional YYYY-MM filter; prefix match like the derivations.
		if month := strings.TrimSpace(r.URL.Query().Get("month")); month != "" {
			if !core.ValidMonth(month) {
				writeErrorCtx(w, r, http.StatusBadRequest, "invalid month: want YYYY-MM")
				return
			}
			filtered := make([]core.Transaction, 0)
			for _, t := range transactions {
				if strings.HasPrefix(t.Date, month) {
					filtered = append(filtered, t)
				}
			}
			transactions = filtered
		}
		if transactions == nil {
			transactions = []core.Transaction{}
		}
		writeJSON(w, http.StatusOK, transactions)

	case http.MethodPost:
		var req transactionRequest
		if err := decodeJSON(r, &req); err != nil {
			writeErrorCtx(w, r, http.StatusBadRequest, "malformed request body")
			return
		}

		txn, err := req.toTransaction()
		if err != nil {
			writeErrorCtx(w, r, http.StatusUnprocessableEntity, "invalid amount")
			return
		}
		if txn.ID == "" {
			txn.ID = newID()
		}
		if err := txn.Validate(); err != nil {
			writeErrorCtx(w, r, http.StatusUnprocessableEntity, err.Error())
			return
		}
		if _, ok := findAccount(s.store.Snapshot(), txn.AccountID); !ok {
			writeErrorCtx(w, r, http.StatusUnprocessableEntity, "unknown account id")
			return
		}

		s.store.Dispatch(r.Context(), state.AddTransaction{Transaction: txn})

		applog.FromContext(r.Context()).InfoContext(r.Context(), "Transaction created",
			"transaction_id", txn.ID,
			"transaction_type", string(txn.Type),
			"amount_cents", txn.AmountCents,
			"category", txn.Category)
		writeJSON(w, http.StatusCreated, txn)

	default:
		methodNotAllowed(w, "GET", "POST")
	}
}

func (s *Server) handleTransactionByID(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeErrorCtx(w, r, http.StatusBadRequest, "missing transaction id")
		return
	}

	switch r.Method {
	case http.MethodGet:
		txn, ok := findTransaction(s.store.Snapshot(), id)
		if !ok {
			writeErrorCtx(w, r, http.StatusNotFound, "transaction not found")
			return
		}
		writeJSON(w, http.StatusOK, txn)

	case http.MethodPut:
		var req transactionRequest
		if err := decodeJSON(r, &req); err != nil {
			writeErrorCtx(w, r, http.StatusBadRequest, "malformed request body")
			return
		}

		txn, err := req.toTransaction()
		if err != nil {
			writeErrorCtx(w, r, http.StatusUnprocessableEntity, "invalid amount")
			return
		}
		txn.ID = id // path wins over body
		if err := txn.Validate(); err != nil {
			writeErrorCtx(w, r, http.StatusUnprocessableEntity, err.Error())
			return
		}
		snap := s.store.Snapshot()
		if _, ok := findTransaction(snap, id); !ok {
			writeErrorCtx(w, r, http.StatusNotFound, "transaction not found")
			return
		}
		if _, ok := findAccount(snap, txn.AccountID); !ok {
			writeErrorCtx(w, r, http.StatusUnprocessableEntity, "unknown account id")
			return
		}

		s.store.Dispatch(r.Context(), state.UpdateTransaction{Transaction: txn})
		writeJSON(w, http.StatusOK, txn)

	case http.MethodDelete:
		if _, ok := findTransaction(s.store.Snapshot(), id); !ok {
			writeErrorCtx(w, r, http.StatusNotFound, "transaction not found")
			return
		}

		s.store.Dispatch(r.Context(), state.DeleteTransaction{ID: id})
		w.WriteHeader(http.StatusNoContent)

	default:
		methodNotAllowed(w, "GET", "PUT", "DELETE")
	}
}

func findTransaction(snap core.Snapshot, id string) (core.Transaction, bool) {
	for _, t := range snap.Transactions {
		if t.ID == id {
			return t, true
		}
	}
	return core.Transaction{}, false
}
