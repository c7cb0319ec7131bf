// The Lambda entrypoint serves the same REST surface as cmd/api behind an
// API Gateway proxy integration. The handler graph is built once in init so
// warm invocations reuse the DynamoDB client.
package main

import (
	"context"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/awslabs/aws-lambda-go-api-proxy/httpadapter"

	"github.com/hpfs74/family-budget/internal/api"
	"github.com/hpfs74/family-budget/internal/config"
	"github.com/hpfs74/family-budget/internal/dynamo"
	"github.com/hpfs74/family-budget/internal/logger"
	"github.com/hpfs74/family-budget/internal/service"
)

var adapter *httpadapter.HandlerAdapter

func init() {
	cfg := config.Load()
	log := logger.New()

	client, err := dynamo.NewClient(context.Background(), dynamo.Config{
		Region:            cfg.AWSRegion,
		Endpoint:          cfg.DynamoEndpoint,
		AccountsTable:     cfg.AccountsTable,
		CategoriesTable:   cfg.CategoriesTable,
		TransactionsTable: cfg.TransactionsTable,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create DynamoDB client")
	}

	transactions := dynamo.NewTransactionStore(client, cfg.TransactionsTable)
	handler := api.NewHandler(api.Deps{
		Accounts:     dynamo.NewAccountStore(client, cfg.AccountsTable),
		Categories:   dynamo.NewCategoryStore(client, cfg.CategoriesTable),
		Transactions: transactions,
		Transfers:    service.NewTransferService(transactions, log),
		Recategorize: service.NewRecategorizeService(transactions, log, cfg.BulkBatchSize, cfg.BulkBatchPause),
		Analytics:    service.NewAnalyticsService(transactions),
		Log:          log,
	})

	adapter = httpadapter.New(handler)
}

func main() {
	lambda.Start(adapter.ProxyWithContext)
}
