package dynamo

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/hpfs74/family-budget/internal/domain"
)

// AccountStore is the DynamoDB implementation of AccountRepository.
type AccountStore struct {
	client *dynamodb.Client
	table  string
}

// NewAccountStore creates an account store over the given table.
func NewAccountStore(client *dynamodb.Client, table string) *AccountStore {
	return &AccountStore{client: client, table: table}
}

// PutAccount creates or fully replaces an account record.
func (s *AccountStore) PutAccount(ctx context.Context, account *domain.Account) error {
	item, err := attributevalue.MarshalMap(account)
	if err != nil {
		return fmt.Errorf("PutAccount: marshaling: %w", err)
	}

	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.table),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("PutAccount: put item: %w", err)
	}
	return nil
}

// GetAccount returns the account or domain.ErrNotFound.
func (s *AccountStore) GetAccount(ctx context.Context, accountID string) (*domain.Account, error) {
	out, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.table),
		Key: map[string]types.AttributeValue{
			"accountId": &types.AttributeValueMemberS{Value: accountID},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("GetAccount: get item: %w", err)
	}
	if len(out.Item) == 0 {
		return nil, domain.ErrNotFound
	}

	var account domain.Account
	if err := attributevalue.UnmarshalMap(out.Item, &account); err != nil {
		return nil, fmt.Errorf("GetAccount: unmarshaling: %w", err)
	}
	return &account, nil
}

// ListAccounts scans the whole accounts table.
func (s *AccountStore) ListAccounts(ctx context.Context) ([]*domain.Account, error) {
	var accounts []*domain.Account
	var lastKey map[string]types.AttributeValue

	for {
		out, err := s.client.Scan(ctx, &dynamodb.ScanInput{
			TableName:         aws.String(s.table),
			ExclusiveStartKey: lastKey,
		})
		if err != nil {
			return nil, fmt.Errorf("ListAccounts: scan: %w", err)
		}
		for _, item := range out.Items {
			var account domain.Account
			if err := attributevalue.UnmarshalMap(item, &account); err != nil {
				return nil, fmt.Errorf("ListAccounts: unmarshaling: %w", err)
			}
			accounts = append(accounts, &account)
		}
		if len(out.LastEvaluatedKey) == 0 {
			break
		}
		lastKey = out.LastEvaluatedKey
	}

	return accounts, nil
}

// DeleteAccount removes the account record. Transactions belonging to the
// account are left in place.
func (s *AccountStore) DeleteAccount(ctx context.Context, accountID string) error {
	_, err := s.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(s.table),
		Key: map[string]types.AttributeValue{
			"accountId": &types.AttributeValueMemberS{Value: accountID},
		},
	})
	if err != nil {
		return fmt.Errorf("DeleteAccount: delete item: %w", err)
	}
	return nil
}
