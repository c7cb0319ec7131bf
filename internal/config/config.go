package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds everything the binaries read from the environment.
type Config struct {
	// HTTP Server
	Port string

	// DynamoDB
	AWSRegion         string
	DynamoEndpoint    string // set for DynamoDB Local
	AccountsTable     string
	CategoriesTable   string
	TransactionsTable string

	// Bulk recategorization throttle. The batch size must stay within the
	// store's 25-item per-call ceiling; the pause between batches is a
	// throughput courtesy, not a correctness requirement.
	BulkBatchSize  int
	BulkBatchPause time.Duration
}

// Load reads configuration from the environment, falling back to defaults
// that work against DynamoDB Local.
func Load() Config {
	return Config{
		Port:              getEnv("PORT", "8080"),
		AWSRegion:         getEnv("AWS_REGION", "eu-west-1"),
		DynamoEndpoint:    os.Getenv("DYNAMODB_ENDPOINT"),
		AccountsTable:     getEnv("ACCOUNTS_TABLE", "accounts"),
		CategoriesTable:   getEnv("CATEGORIES_TABLE", "categories"),
		TransactionsTable: getEnv("TRANSACTIONS_TABLE", "transactions"),
		BulkBatchSize:     getEnvInt("BULK_BATCH_SIZE", 25),
		BulkBatchPause:    getEnvDuration("BULK_BATCH_PAUSE", 100*time.Millisecond),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d >= 0 {
			return d
		}
	}
	return fallback
}
