package http

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"trackfin/internal/core"
	"trackfin/internal/middleware/trace"
)

const maxBodyBytes = 1 << 20 // 1 MiB

type errorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"requestId,omitempty"`
}

// writeJSON serializes v with the proper content type.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	// The status line is already out; an encode failure here can only be
	// logged by the request middleware, not reported to the client.
	_ = json.NewEncoder(w).Encode(v)
}

// writeError sends a JSON error envelope.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// writeErrorCtx sends a JSON error envelope carrying the request ID.
func writeErrorCtx(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg, RequestID: trace.GetRequestID(r.Context())})
}

// decodeJSON reads a bounded request body into v, rejecting unknown fields.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("decode request body: %w", err)
	}
	return nil
}

// methodNotAllowed replies 405 with the Allow header set.
func methodNotAllowed(w http.ResponseWriter, allowed ...string) {
	w.Header().Set("Allow", strings.Join(allowed, ", "))
	writeError(w, http.StatusMethodNotAllowed, "method not allowed")
}

// parseMonth extracts a YYYY-MM month from the query, defaulting to the
// current month. The error names the offending value.
func parseMonth(r *http.Request) (string, error) {
	month := strings.TrimSpace(r.URL.Query().Get("month"))
	if month == "" {
		return core.MonthKey(time.Now()), nil
	}
	if !core.ValidMonth(month) {
		return "", fmt.Errorf("invalid month %q: want YYYY-MM", month)
	}
	return month, nil
}

// newID generates an opaque entity id for requests that omit one.
func newID() string {
	bytes := make([]byte, 8)
	if _, err := rand.Read(bytes); err != nil {
		return fmt.Sprintf("id_%d", time.Now().UnixNano())
	}
	return hex.EncodeToString(bytes)
}

// sanitizeInput removes control characters and trims whitespace.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
}

// parseAmountCents resolves an amount from either an integer cents field or
// a decimal string, preferring the decimal when both are present.
func parseAmountCents(decimal string, cents int64) (int64, error) {
	if strings.TrimSpace(decimal) != "" {
		return core.ParseDecimalToCents(decimal)
	}
	if cents < 0 {
		return 0, core.ErrInvalidAmount
	}
	return cents, nil
}
