package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/gowallet/internal/adapter/http/dto"
	"github.com/iho/gowallet/internal/domain"
	"github.com/iho/gowallet/internal/usecase"
)

// LedgerService defines the behavior needed by LedgerHandler.
type LedgerService interface {
	ApplyEntry(ctx context.Context, input usecase.ApplyEntryInput) (*domain.Entry, error)
	GetEntryByIdempotencyKey(ctx context.Context, key string) (*domain.Entry, error)
	VerifyConsistency(ctx context.Context) ([]domain.ConsistencyViolation, error)
}

// LedgerHandler handles entry application and ledger-wide operations.
type LedgerHandler struct {
	ledgerUC LedgerService
}

// NewLedgerHandler creates a new LedgerHandler.
func NewLedgerHandler(ledgerUC LedgerService) *LedgerHandler {
	return &LedgerHandler{ledgerUC: ledgerUC}
}

// ApplyEntry applies a signed amount to a wallet.
func (h *LedgerHandler) ApplyEntry(w http.ResponseWriter, r *http.Request) {
	walletID := chi.URLParam(r, "id")
	if walletID == "" {
		writeError(w, http.StatusBadRequest, "missing wallet ID", "")
		return
	}

	var req dto.ApplyEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	entry, err := h.ledgerUC.ApplyEntry(r.Context(), req.ToUseCaseInput(walletID))
	if err != nil {
		// A reused key means the entry was already applied; answer with the
		// recorded entry so the caller can see the original outcome.
		if errors.Is(err, domain.ErrDuplicateEntry) && req.IdempotencyKey != "" {
			if existing, lookupErr := h.ledgerUC.GetEntryByIdempotencyKey(r.Context(), req.IdempotencyKey); lookupErr == nil {
				writeJSON(w, http.StatusConflict, dto.EntryFromDomain(existing))
				return
			}
		}
		writeError(w, mapDomainError(err), "failed to apply entry", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.EntryFromDomain(entry))
}

// VerifyConsistency checks every wallet's balance against its entries.
func (h *LedgerHandler) VerifyConsistency(w http.ResponseWriter, r *http.Request) {
	violations, err := h.ledgerUC.VerifyConsistency(r.Context())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to verify consistency", err.Error())
		return
	}

	report := dto.ConsistencyReportFromDomain(violations)
	status := http.StatusOK
	if !report.Consistent {
		status = http.StatusConflict
	}

	writeJSON(w, status, report)
}
