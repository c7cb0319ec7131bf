package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/hpfs74/family-budget/internal/api/handlers"
	"github.com/hpfs74/family-budget/internal/api/middleware"
	"github.com/hpfs74/family-budget/internal/dynamo"
	"github.com/hpfs74/family-budget/internal/service"
)

// Deps bundles everything the HTTP surface needs.
type Deps struct {
	Accounts     dynamo.AccountRepository
	Categories   dynamo.CategoryRepository
	Transactions dynamo.TransactionRepository
	Transfers    *service.TransferService
	Recategorize *service.RecategorizeService
	Analytics    *service.AnalyticsService
	Log          zerolog.Logger
}

// NewHandler builds the full REST surface with its middleware chain. The
// CORS layer wraps the router from outside so preflight requests get
// answered even for paths the router would reject.
func NewHandler(deps Deps) http.Handler {
	accountsHandler := handlers.NewAccountsHandler(deps.Accounts, deps.Log)
	categoriesHandler := handlers.NewCategoriesHandler(deps.Categories, deps.Log)
	transactionsHandler := handlers.NewTransactionsHandler(deps.Transactions, deps.Log)
	transfersHandler := handlers.NewTransfersHandler(deps.Transfers, deps.Recategorize, deps.Log)
	analyticsHandler := handlers.NewAnalyticsHandler(deps.Analytics, deps.Log)

	r := mux.NewRouter()

	r.HandleFunc("/accounts", accountsHandler.List).Methods(http.MethodGet)
	r.HandleFunc("/accounts", accountsHandler.Create).Methods(http.MethodPost)
	r.HandleFunc("/accounts/{id}", accountsHandler.Get).Methods(http.MethodGet)
	r.HandleFunc("/accounts/{id}", accountsHandler.Update).Methods(http.MethodPut)
	r.HandleFunc("/accounts/{id}", accountsHandler.Delete).Methods(http.MethodDelete)

	r.HandleFunc("/categories", categoriesHandler.List).Methods(http.MethodGet)
	r.HandleFunc("/categories", categoriesHandler.Create).Methods(http.MethodPost)
	r.HandleFunc("/categories/{id}", categoriesHandler.Get).Methods(http.MethodGet)
	r.HandleFunc("/categories/{id}", categoriesHandler.Update).Methods(http.MethodPut)
	r.HandleFunc("/categories/{id}", categoriesHandler.Delete).Methods(http.MethodDelete)

	// Fixed transaction paths are registered ahead of the {id} routes.
	r.HandleFunc("/transactions/transfer", transfersHandler.CreateTransfer).Methods(http.MethodPost)
	r.HandleFunc("/transactions/bulkUpdate", transfersHandler.BulkUpdate).Methods(http.MethodPost)
	r.HandleFunc("/transactions/{id}/convert-to-transfer", transfersHandler.Convert).Methods(http.MethodPut)

	r.HandleFunc("/transactions", transactionsHandler.List).Methods(http.MethodGet)
	r.HandleFunc("/transactions", transactionsHandler.Create).Methods(http.MethodPost)
	r.HandleFunc("/transactions/{id}", transactionsHandler.Get).Methods(http.MethodGet)
	r.HandleFunc("/transactions/{id}", transactionsHandler.Update).Methods(http.MethodPut)
	r.HandleFunc("/transactions/{id}", transactionsHandler.Delete).Methods(http.MethodDelete)

	r.HandleFunc("/analytics", analyticsHandler.Get).Methods(http.MethodGet)

	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		middleware.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	var handler http.Handler = r
	handler = middleware.Metrics(handler)
	handler = middleware.Logger(handler)
	handler = middleware.Recovery(deps.Log)(handler)
	handler = middleware.CORS(handler)
	handler = middleware.RequestID(deps.Log)(handler)
	return handler
}
