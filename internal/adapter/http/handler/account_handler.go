package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/payments-engine/internal/adapter/http/dto"
	"github.com/iho/payments-engine/internal/domain"
)

// AccountService defines the behavior needed by AccountHandler.
type AccountService interface {
	Accounts() []domain.Account
	Account(clientID domain.ClientID) (domain.Account, error)
}

// AccountHandler serves read-only account views.
type AccountHandler struct {
	accounts AccountService
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(accounts AccountService) *AccountHandler {
	return &AccountHandler{accounts: accounts}
}

// Get retrieves a single account by client id.
func (h *AccountHandler) Get(w http.ResponseWriter, r *http.Request) {
	clientID, err := parseClientID(chi.URLParam(r, "client"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid client id", err.Error())
		return
	}

	account, err := h.accounts.Account(clientID)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to get account", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.AccountFromDomain(account))
}

// List lists all accounts ordered by client id.
func (h *AccountHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, dto.AccountsFromDomain(h.accounts.Accounts()))
}
