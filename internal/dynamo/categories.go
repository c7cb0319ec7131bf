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

// CategoryStore is the DynamoDB implementation of CategoryRepository.
type CategoryStore struct {
	client *dynamodb.Client
	table  string
}

// NewCategoryStore creates a category store over the given table.
func NewCategoryStore(client *dynamodb.Client, table string) *CategoryStore {
	return &CategoryStore{client: client, table: table}
}

// PutCategory creates or fully replaces a category record.
func (s *CategoryStore) PutCategory(ctx context.Context, category *domain.Category) error {
	item, err := attributevalue.MarshalMap(category)
	if err != nil {
		return fmt.Errorf("PutCategory: marshaling: %w", err)
	}

	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.table),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("PutCategory: put item: %w", err)
	}
	return nil
}

// GetCategory returns the category or domain.ErrNotFound.
func (s *CategoryStore) GetCategory(ctx context.Context, categoryID string) (*domain.Category, error) {
	out, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.table),
		Key: map[string]types.AttributeValue{
			"categoryId": &types.AttributeValueMemberS{Value: categoryID},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("GetCategory: get item: %w", err)
	}
	if len(out.Item) == 0 {
		return nil, domain.ErrNotFound
	}

	var category domain.Category
	if err := attributevalue.UnmarshalMap(out.Item, &category); err != nil {
		return nil, fmt.Errorf("GetCategory: unmarshaling: %w", err)
	}
	return &category, nil
}

// ListCategories scans the whole categories table.
func (s *CategoryStore) ListCategories(ctx context.Context) ([]*domain.Category, error) {
	var categories []*domain.Category
	var lastKey map[string]types.AttributeValue

	for {
		out, err := s.client.Scan(ctx, &dynamodb.ScanInput{
			TableName:         aws.String(s.table),
			ExclusiveStartKey: lastKey,
		})
		if err != nil {
			return nil, fmt.Errorf("ListCategories: scan: %w", err)
		}
		for _, item := range out.Items {
			var category domain.Category
			if err := attributevalue.UnmarshalMap(item, &category); err != nil {
				return nil, fmt.Errorf("ListCategories: unmarshaling: %w", err)
			}
			categories = append(categories, &category)
		}
		if len(out.LastEvaluatedKey) == 0 {
			break
		}
		lastKey = out.LastEvaluatedKey
	}

	return categories, nil
}

// DeleteCategory removes the category record. Transactions referencing the
// id keep their now-dangling reference; that soft-reference model is
// deliberate.
func (s *CategoryStore) DeleteCategory(ctx context.Context, categoryID string) error {
	_, err := s.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(s.table),
		Key: map[string]types.AttributeValue{
			"categoryId": &types.AttributeValueMemberS{Value: categoryID},
		},
	})
	if err != nil {
		return fmt.Errorf("DeleteCategory: delete item: %w", err)
	}
	return nil
}
