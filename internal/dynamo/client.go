package dynamo

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

// Config holds the connection settings and table names for the store.
type Config struct {
	Region   string
	Endpoint string // non-empty for DynamoDB Local

	AccountsTable     string
	CategoriesTable   string
	TransactionsTable string
}

// NewClient builds a DynamoDB client from the default AWS credential chain.
// A custom endpoint routes every call to a local instance.
func NewClient(ctx context.Context, cfg Config) (*dynamodb.Client, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("NewClient: loading AWS config: %w", err)
	}

	if cfg.Endpoint != "" {
		awsCfg.EndpointResolverWithOptions = aws.EndpointResolverWithOptionsFunc(
			func(service, region string, options ...interface{}) (aws.Endpoint, error) {
				return aws.Endpoint{URL: cfg.Endpoint, SigningRegion: cfg.Region}, nil
			})
	}

	return dynamodb.NewFromConfig(awsCfg), nil
}
