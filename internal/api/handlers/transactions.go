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

// TransactionsHandler handles plain transaction CRUD. Every route is scoped
// to one account via the ?account= query parameter because transaction
// identity is the composite (account, transactionId).
type TransactionsHandler struct {
	repo dynamo.TransactionRepository
	log  zerolog.Logger
}

// NewTransactionsHandler creates a new transactions handler.
func NewTransactionsHandler(repo dynamo.TransactionRepository, log zerolog.Logger) *TransactionsHandler {
	return &TransactionsHandler{repo: repo, log: log}
}

func accountParam(r *http.Request) string {
	return r.URL.Query().Get("account")
}

// List handles GET /transactions?account=X with optional category or
// startDate/endDate filters, each served by its own secondary index.
func (h *TransactionsHandler) List(w http.ResponseWriter, r *http.Request) {
	account := accountParam(r)
	if account == "" {
		middleware.WriteError(w, http.StatusBadRequest, "account query parameter is required")
		return
	}

	var (
		txns []*domain.Transaction
		err  error
	)
	query := r.URL.Query()
	switch {
	case query.Get("category") != "":
		txns, err = h.repo.QueryByAccountAndCategory(r.Context(), account, query.Get("category"))
	case query.Get("startDate") != "" && query.Get("endDate") != "":
		txns, err = h.repo.QueryByAccountAndDate(r.Context(), account, query.Get("startDate"), query.Get("endDate"))
	default:
		txns, err = h.repo.QueryByAccount(r.Context(), account)
	}
	if err != nil {
		h.log.Error().Err(err).Str("account", account).Msg("Failed to list transactions")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to list transactions")
		return
	}
	if txns == nil {
		txns = []*domain.Transaction{}
	}

	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"transactions": txns,
		"count":        len(txns),
	})
}

// Create handles POST /transactions
func (h *TransactionsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var txn domain.Transaction
	if err := json.NewDecoder(r.Body).Decode(&txn); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := txn.Validate(); err != nil {
		writeServiceError(w, h.log, "CreateTransaction", err)
		return
	}

	now := time.Now().UTC()
	txn.TransactionID = uuid.New().String()
	txn.Amount = domain.Round2(txn.Amount)
	txn.Fee = domain.Round2(txn.Fee)
	// A transaction is born plain; linkage fields only ever appear through
	// the transfer engine.
	txn.TransferID = ""
	txn.TransferType = ""
	txn.RelatedAccount = ""
	txn.CreatedAt = now
	txn.UpdatedAt = now

	if err := h.repo.PutTransaction(r.Context(), &txn); err != nil {
		writeServiceError(w, h.log, "CreateTransaction", err)
		return
	}

	middleware.WriteJSON(w, http.StatusCreated, &txn)
}

// Get handles GET /transactions/{id}?account=X
func (h *TransactionsHandler) Get(w http.ResponseWriter, r *http.Request) {
	account := accountParam(r)
	if account == "" {
		middleware.WriteError(w, http.StatusBadRequest, "account query parameter is required")
		return
	}
	id := mux.Vars(r)["id"]

	txn, err := h.repo.GetTransaction(r.Context(), account, id)
	if err != nil {
		writeServiceError(w, h.log, "GetTransaction", err)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, txn)
}

// Update handles PUT /transactions/{id}?account=X. The full record is
// replaced; identity and creation time are preserved. Updating one leg of a
// transfer does not touch its partner leg.
func (h *TransactionsHandler) Update(w http.ResponseWriter, r *http.Request) {
	account := accountParam(r)
	if account == "" {
		middleware.WriteError(w, http.StatusBadRequest, "account query parameter is required")
		return
	}
	id := mux.Vars(r)["id"]

	existing, err := h.repo.GetTransaction(r.Context(), account, id)
	if err != nil {
		writeServiceError(w, h.log, "UpdateTransaction", err)
		return
	}

	var txn domain.Transaction
	if err := json.NewDecoder(r.Body).Decode(&txn); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	txn.AccountID = account
	if err := txn.Validate(); err != nil {
		writeServiceError(w, h.log, "UpdateTransaction", err)
		return
	}

	txn.TransactionID = existing.TransactionID
	txn.Amount = domain.Round2(txn.Amount)
	txn.Fee = domain.Round2(txn.Fee)
	txn.CreatedAt = existing.CreatedAt
	txn.UpdatedAt = time.Now().UTC()

	if err := h.repo.PutTransaction(r.Context(), &txn); err != nil {
		writeServiceError(w, h.log, "UpdateTransaction", err)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, &txn)
}

// Delete handles DELETE /transactions/{id}?account=X. Deleting one leg of a
// transfer leaves the partner leg in place.
func (h *TransactionsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	account := accountParam(r)
	if account == "" {
		middleware.WriteError(w, http.StatusBadRequest, "account query parameter is required")
		return
	}
	id := mux.Vars(r)["id"]

	if err := h.repo.DeleteTransaction(r.Context(), account, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			middleware.WriteError(w, http.StatusNotFound, "transaction not found")
			return
		}
		writeServiceError(w, h.log, "DeleteTransaction", err)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, map[string]string{"deleted": id})
}
