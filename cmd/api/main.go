package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/hpfs74/family-budget/internal/api"
	"github.com/hpfs74/family-budget/internal/config"
	"github.com/hpfs74/family-budget/internal/dynamo"
	"github.com/hpfs74/family-budget/internal/logger"
	"github.com/hpfs74/family-budget/internal/service"
)

func main() {
	// .env is optional; real deployments configure through the environment.
	_ = godotenv.Load()

	cfg := config.Load()
	log := logger.New()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client, err := dynamo.NewClient(ctx, dynamo.Config{
		Region:            cfg.AWSRegion,
		Endpoint:          cfg.DynamoEndpoint,
		AccountsTable:     cfg.AccountsTable,
		CategoriesTable:   cfg.CategoriesTable,
		TransactionsTable: cfg.TransactionsTable,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create DynamoDB client")
	}

	accounts := dynamo.NewAccountStore(client, cfg.AccountsTable)
	categories := dynamo.NewCategoryStore(client, cfg.CategoriesTable)
	transactions := dynamo.NewTransactionStore(client, cfg.TransactionsTable)

	handler := api.NewHandler(api.Deps{
		Accounts:     accounts,
		Categories:   categories,
		Transactions: transactions,
		Transfers:    service.NewTransferService(transactions, log),
		Recategorize: service.NewRecategorizeService(transactions, log, cfg.BulkBatchSize, cfg.BulkBatchPause),
		Analytics:    service.NewAnalyticsService(transactions),
		Log:          log,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("port", cfg.Port).Msg("API server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Fatal().Err(err).Msg("Server stopped with error")
	}
}
