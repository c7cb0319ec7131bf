package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/hpfs74/family-budget/internal/api/middleware"
	"github.com/hpfs74/family-budget/internal/domain"
	"github.com/hpfs74/family-budget/internal/dynamo"
)

// AccountsHandler handles account CRUD endpoints.
type AccountsHandler struct {
	repo dynamo.AccountRepository
	log  zerolog.Logger
}

// NewAccountsHandler creates a new accounts handler.
func NewAccountsHandler(repo dynamo.AccountRepository, log zerolog.Logger) *AccountsHandler {
	return &AccountsHandler{repo: repo, log: log}
}

// List handles GET /accounts
func (h *AccountsHandler) List(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.repo.ListAccounts(r.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list accounts")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to list accounts")
		return
	}
	if accounts == nil {
		accounts = []*domain.Account{}
	}

	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"accounts": accounts,
		"count":    len(accounts),
	})
}

// Create handles POST /accounts
func (h *AccountsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var account domain.Account
	if err := json.NewDecoder(r.Body).Decode(&account); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := account.Validate(); err != nil {
		writeServiceError(w, h.log, "CreateAccount", err)
		return
	}

	now := time.Now().UTC()
	account.AccountID = uuid.New().String()
	account.Active = true
	account.CreatedAt = now
	account.UpdatedAt = now

	if err := h.repo.PutAccount(r.Context(), &account); err != nil {
		writeServiceError(w, h.log, "CreateAccount", err)
		return
	}

	middleware.WriteJSON(w, http.StatusCreated, &account)
}

// Get handles GET /accounts/{id}
func (h *AccountsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	account, err := h.repo.GetAccount(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			middleware.WriteError(w, http.StatusNotFound, "account not found")
			return
		}
		writeServiceError(w, h.log, "GetAccount", err)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, account)
}

// Update handles PUT /accounts/{id}
func (h *AccountsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	existing, err := h.repo.GetAccount(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			middleware.WriteError(w, http.StatusNotFound, "account not found")
			return
		}
		writeServiceError(w, h.log, "UpdateAccount", err)
		return
	}

	var account domain.Account
	if err := json.NewDecoder(r.Body).Decode(&account); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := account.Validate(); err != nil {
		writeServiceError(w, h.log, "UpdateAccount", err)
		return
	}

	account.AccountID = existing.AccountID
	account.CreatedAt = existing.CreatedAt
	account.UpdatedAt = time.Now().UTC()

	if err := h.repo.PutAccount(r.Context(), &account); err != nil {
		writeServiceError(w, h.log, "UpdateAccount", err)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, &account)
}

// Delete handles DELETE /accounts/{id}
func (h *AccountsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := h.repo.DeleteAccount(r.Context(), id); err != nil {
		writeServiceError(w, h.log, "DeleteAccount", err)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, map[string]string{"deleted": id})
}
