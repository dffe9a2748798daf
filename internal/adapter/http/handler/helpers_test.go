package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/iho/gowallet/internal/domain"
)

func TestMapDomainError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"wallet not found", domain.ErrWalletNotFound, http.StatusNotFound},
		{"entry not found", domain.ErrEntryNotFound, http.StatusNotFound},
		{"malformed entry", domain.ErrMalformedEntry, http.StatusBadRequest},
		{"invalid label", domain.ErrInvalidLabel, http.StatusBadRequest},
		{"invalid balance", domain.ErrInvalidBalance, http.StatusBadRequest},
		{"insufficient funds", domain.ErrInsufficientFunds, http.StatusUnprocessableEntity},
		{"duplicate entry", domain.ErrDuplicateEntry, http.StatusConflict},
		{"lock timeout", domain.ErrLockTimeout, http.StatusServiceUnavailable},
		{"store unavailable", domain.ErrStoreUnavailable, http.StatusServiceUnavailable},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := mapDomainError(tt.err); got != tt.want {
				t.Fatalf("mapDomainError(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestParseDecimalQuery(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/wallets?balance_gt=12.5&bad=abc", nil)

	if d := parseDecimalQuery(req, "balance_gt"); d == nil || d.String() != "12.5" {
		t.Fatalf("expected 12.5, got %v", d)
	}
	if d := parseDecimalQuery(req, "bad"); d != nil {
		t.Fatalf("expected nil for malformed value, got %v", d)
	}
	if d := parseDecimalQuery(req, "missing"); d != nil {
		t.Fatalf("expected nil for missing value, got %v", d)
	}
}

func TestParseOrdering(t *testing.T) {
	tests := []struct {
		query     string
		wantField string
		wantOrder domain.SortOrder
	}{
		{"ordering=balance", "balance", domain.SortAsc},
		{"ordering=-created_at", "created_at", domain.SortDesc},
		{"", "", ""},
	}

	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, "/wallets?"+tt.query, nil)
		field, order := parseOrdering(req, "ordering")
		if field != tt.wantField || order != tt.wantOrder {
			t.Fatalf("parseOrdering(%q) = (%q, %q), want (%q, %q)", tt.query, field, order, tt.wantField, tt.wantOrder)
		}
	}
}

func TestParseIntQuery(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/wallets?limit=5&bad=x", nil)

	if got := parseIntQuery(req, "limit", 20); got != 5 {
		t.Fatalf("expected 5, got %d", got)
	}
	if got := parseIntQuery(req, "bad", 20); got != 20 {
		t.Fatalf("expected default 20 for malformed value, got %d", got)
	}
	if got := parseIntQuery(req, "missing", 20); got != 20 {
		t.Fatalf("expected default 20 for missing value, got %d", got)
	}
}
