package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/iho/gowallet/internal/adapter/http/dto"
	"github.com/iho/gowallet/internal/domain"
)

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, status int, message, details string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(dto.ErrorResponse{
		Error:   message,
		Message: details,
	})
}

// mapDomainError maps domain errors to HTTP status codes. Insufficient funds
// is a well-formed request the ledger refuses, hence 422 rather than 400.
func mapDomainError(err error) int {
	switch {
	case errors.Is(err, domain.ErrWalletNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrEntryNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrMalformedEntry):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrInvalidLabel):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrInvalidBalance):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrInsufficientFunds):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrDuplicateEntry):
		return http.StatusConflict
	case errors.Is(err, domain.ErrLockTimeout):
		return http.StatusServiceUnavailable
	case errors.Is(err, domain.ErrStoreUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// parseIntQuery parses an integer query parameter with a default value.
func parseIntQuery(r *http.Request, key string, defaultValue int) int {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultValue
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		return defaultValue
	}
	return i
}

// parseDecimalQuery parses a decimal query parameter. Returns nil when the
// parameter is absent or malformed.
func parseDecimalQuery(r *http.Request, key string) *decimal.Decimal {
	val := r.URL.Query().Get(key)
	if val == "" {
		return nil
	}
	d, err := decimal.NewFromString(val)
	if err != nil {
		return nil
	}
	return &d
}

// parseOrdering parses an ordering query parameter of the form "field" or
// "-field" into a sort key and direction.
func parseOrdering(r *http.Request, key string) (string, domain.SortOrder) {
	val := r.URL.Query().Get(key)
	if val == "" {
		return "", ""
	}
	if strings.HasPrefix(val, "-") {
		return strings.TrimPrefix(val, "-"), domain.SortDesc
	}
	return val, domain.SortAsc
}
