package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/gowallet/internal/adapter/http/dto"
	"github.com/iho/gowallet/internal/domain"
	"github.com/iho/gowallet/internal/usecase"
)

// WalletService defines the behavior needed by WalletHandler.
type WalletService interface {
	CreateWallet(ctx context.Context, input usecase.CreateWalletInput) (*domain.Wallet, error)
	GetWallet(ctx context.Context, id string) (*domain.Wallet, error)
	ListWallets(ctx context.Context, filter domain.WalletFilter) ([]*domain.Wallet, error)
	CountWallets(ctx context.Context) (int64, error)
	UpdateLabel(ctx context.Context, id, label string) (*domain.Wallet, error)
	DeleteWallet(ctx context.Context, id string) error
}

// WalletHandler handles wallet-related HTTP requests.
type WalletHandler struct {
	walletUC WalletService
}

// NewWalletHandler creates a new WalletHandler.
func NewWalletHandler(walletUC WalletService) *WalletHandler {
	return &WalletHandler{walletUC: walletUC}
}

// Create creates a new wallet.
func (h *WalletHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateWalletRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	wallet, err := h.walletUC.CreateWallet(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to create wallet", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.WalletFromDomain(wallet))
}

// Get retrieves a wallet by ID.
func (h *WalletHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing wallet ID", "")
		return
	}

	wallet, err := h.walletUC.GetWallet(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get wallet", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.WalletFromDomain(wallet))
}

// List lists wallets. Filters: label (substring, case-insensitive), balance_gt,
// balance_lt, balance, id. Ordering: "field" or "-field".
func (h *WalletHandler) List(w http.ResponseWriter, r *http.Request) {
	orderBy, order := parseOrdering(r, "ordering")

	filter := domain.WalletFilter{
		ID:            r.URL.Query().Get("id"),
		LabelContains: r.URL.Query().Get("label"),
		BalanceGT:     parseDecimalQuery(r, "balance_gt"),
		BalanceLT:     parseDecimalQuery(r, "balance_lt"),
		BalanceEQ:     parseDecimalQuery(r, "balance"),
		OrderBy:       orderBy,
		Order:         order,
		Limit:         parseIntQuery(r, "limit", 20),
		Offset:        parseIntQuery(r, "offset", 0),
	}

	wallets, err := h.walletUC.ListWallets(r.Context(), filter)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list wallets", err.Error())
		return
	}

	// An unfiltered listing reports the full wallet count so clients can page;
	// filtered listings report the page they got.
	total := int64(len(wallets))
	if !filter.HasPredicates() {
		if count, err := h.walletUC.CountWallets(r.Context()); err == nil {
			total = count
		}
	}

	writeJSON(w, http.StatusOK, dto.ListWalletsResponse{
		Wallets: dto.WalletsFromDomain(wallets),
		Total:   total,
	})
}

// UpdateLabel renames a wallet.
func (h *WalletHandler) UpdateLabel(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing wallet ID", "")
		return
	}

	var req dto.UpdateWalletLabelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	wallet, err := h.walletUC.UpdateLabel(r.Context(), id, req.Label)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to update wallet", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.WalletFromDomain(wallet))
}

// Delete removes a wallet and its entries.
func (h *WalletHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing wallet ID", "")
		return
	}

	if err := h.walletUC.DeleteWallet(r.Context(), id); err != nil {
		writeError(w, mapDomainError(err), "failed to delete wallet", err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
