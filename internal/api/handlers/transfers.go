package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/hpfs74/family-budget/internal/api/middleware"
	"github.com/hpfs74/family-budget/internal/service"
)

// Messages for the two distinguishable zero-count bulk outcomes.
const (
	msgNoTransactions = "no transactions found for account"
	msgNoMatches      = "no transactions matched the description"
)

// TransfersHandler exposes the transfer engine and the bulk
// recategorization engine.
type TransfersHandler struct {
	transfers    *service.TransferService
	recategorize *service.RecategorizeService
	log          zerolog.Logger
}

// NewTransfersHandler creates a new transfers handler.
func NewTransfersHandler(transfers *service.TransferService, recategorize *service.RecategorizeService, log zerolog.Logger) *TransfersHandler {
	return &TransfersHandler{transfers: transfers, recategorize: recategorize, log: log}
}

// CreateTransfer handles POST /transactions/transfer
func (h *TransfersHandler) CreateTransfer(w http.ResponseWriter, r *http.Request) {
	var in service.TransferInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.transfers.CreateTransfer(r.Context(), in)
	if err != nil {
		writeServiceError(w, h.log, "CreateTransfer", err)
		return
	}

	middleware.WriteJSON(w, http.StatusCreated, result)
}

// Convert handles PUT /transactions/{id}/convert-to-transfer?account=X
func (h *TransfersHandler) Convert(w http.ResponseWriter, r *http.Request) {
	account := accountParam(r)
	id := mux.Vars(r)["id"]

	var body struct {
		ToAccount string `json:"toAccount"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.transfers.ConvertToTransfer(r.Context(), account, id, body.ToAccount)
	if err != nil {
		writeServiceError(w, h.log, "ConvertToTransfer", err)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, result)
}

// BulkUpdate handles POST /transactions/bulkUpdate
func (h *TransfersHandler) BulkUpdate(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Account     string `json:"account"`
		Description string `json:"description"`
		Category    string `json:"category"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.recategorize.BulkUpdateByDescription(r.Context(), body.Account, body.Description, body.Category)
	if err != nil {
		if domain500 := writeBulkError(w, h.log, result, err); domain500 {
			return
		}
		writeServiceError(w, h.log, "BulkUpdate", err)
		return
	}

	var message string
	switch result.Outcome {
	case service.BulkNoTransactions:
		message = msgNoTransactions
	case service.BulkNoMatches:
		message = msgNoMatches
	default:
		message = fmt.Sprintf("updated %d transactions", result.Updated)
	}

	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"updated": result.Updated,
		"message": message,
	})
}

// writeBulkError reports a mid-batch failure. Records from completed
// batches stay written, so the accumulated count rides along with the
// generic failure instead of being discarded.
func writeBulkError(w http.ResponseWriter, log zerolog.Logger, result service.BulkResult, err error) bool {
	if result.Updated == 0 && result.Outcome == "" {
		// Nothing was written; let the shared mapping classify it.
		return false
	}

	log.Error().Err(err).Int("updated", result.Updated).Msg("Bulk recategorization failed mid-batch")
	middleware.WriteJSON(w, http.StatusInternalServerError, map[string]interface{}{
		"error":   "bulk update failed",
		"updated": result.Updated,
	})
	return true
}
