// The seeder loads a starter set of categories, and optionally a pair of
// demo accounts, into the configured tables. Existing categories are left
// alone so reruns are safe.
package main

import (
	"context"
	"errors"
	"flag"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/hpfs74/family-budget/internal/config"
	"github.com/hpfs74/family-budget/internal/domain"
	"github.com/hpfs74/family-budget/internal/dynamo"
	"github.com/hpfs74/family-budget/internal/logger"
)

var defaultCategories = []domain.Category{
	{CategoryID: "cat-groceries", Name: "Groceries", Icon: "cart", Color: "#4caf50"},
	{CategoryID: "cat-rent", Name: "Rent", Icon: "home", Color: "#f44336"},
	{CategoryID: "cat-utilities", Name: "Utilities", Icon: "bolt", Color: "#ff9800"},
	{CategoryID: "cat-transport", Name: "Transport", Icon: "bus", Color: "#2196f3"},
	{CategoryID: "cat-eating-out", Name: "Eating Out", Icon: "restaurant", Color: "#9c27b0"},
	{CategoryID: "cat-entertainment", Name: "Entertainment", Icon: "film", Color: "#e91e63"},
	{CategoryID: "cat-health", Name: "Health", Icon: "heart", Color: "#00bcd4"},
	{CategoryID: "cat-salary", Name: "Salary", Icon: "briefcase", Color: "#8bc34a"},
	{CategoryID: "cat-savings", Name: "Savings", Icon: "bank", Color: "#607d8b"},
}

func main() {
	demo := flag.Bool("demo", false, "also create two demo accounts")
	flag.Parse()

	_ = godotenv.Load()
	cfg := config.Load()
	log := logger.New()

	ctx := context.Background()
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

	categories := dynamo.NewCategoryStore(client, cfg.CategoriesTable)
	now := time.Now().UTC()

	g, gctx := errgroup.WithContext(ctx)
	for _, category := range defaultCategories {
		category := category
		g.Go(func() error {
			if _, err := categories.GetCategory(gctx, category.CategoryID); err == nil {
				log.Info().Str("category", category.CategoryID).Msg("Category exists, skipping")
				return nil
			} else if !errors.Is(err, domain.ErrNotFound) {
				return err
			}

			category.Active = true
			category.CreatedAt = now
			category.UpdatedAt = now
			return categories.PutCategory(gctx, &category)
		})
	}
	if err := g.Wait(); err != nil {
		log.Fatal().Err(err).Msg("Seeding categories failed")
	}
	log.Info().Int("count", len(defaultCategories)).Msg("Categories seeded")

	if !*demo {
		return
	}

	accounts := dynamo.NewAccountStore(client, cfg.AccountsTable)
	demoAccounts := []domain.Account{
		{
			AccountID:     uuid.New().String(),
			Name:          "Everyday",
			AccountNumber: "00001234",
			BankName:      "Demo Bank",
			Type:          domain.AccountChecking,
			Currency:      domain.CurrencyGBP,
		},
		{
			AccountID:     uuid.New().String(),
			Name:          "Rainy Day",
			AccountNumber: "00005678",
			BankName:      "Demo Bank",
			Type:          domain.AccountSavings,
			Currency:      domain.CurrencyGBP,
		},
	}
	for i := range demoAccounts {
		demoAccounts[i].Active = true
		demoAccounts[i].CreatedAt = now
		demoAccounts[i].UpdatedAt = now
		if err := accounts.PutAccount(ctx, &demoAccounts[i]); err != nil {
			log.Fatal().Err(err).Msg("Seeding accounts failed")
		}
	}
	log.Info().Int("count", len(demoAccounts)).Msg("Demo accounts seeded")
}
