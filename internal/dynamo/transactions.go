package dynamo

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/hpfs74/family-budget/internal/domain"
)

const (
	// maxBatchItems is DynamoDB's BatchWriteItem per-call ceiling.
	maxBatchItems = 25

	dateIndex     = "date-index"
	categoryIndex = "category-index"
)

// TransactionStore is the DynamoDB implementation of TransactionRepository.
// The table is keyed (accountId HASH, transactionId RANGE) with secondary
// indexes on (accountId, date) and (accountId, category).
type TransactionStore struct {
	client *dynamodb.Client
	table  string
}

// NewTransactionStore creates a transaction store over the given table.
func NewTransactionStore(client *dynamodb.Client, table string) *TransactionStore {
	return &TransactionStore{client: client, table: table}
}

func transactionKey(accountID, transactionID string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"accountId":     &types.AttributeValueMemberS{Value: accountID},
		"transactionId": &types.AttributeValueMemberS{Value: transactionID},
	}
}

// PutTransaction creates or fully replaces a transaction record.
func (s *TransactionStore) PutTransaction(ctx context.Context, txn *domain.Transaction) error {
	item, err := attributevalue.MarshalMap(txn)
	if err != nil {
		return fmt.Errorf("PutTransaction: marshaling: %w", err)
	}

	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.table),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("PutTransaction: put item: %w", err)
	}
	return nil
}

// GetTransaction returns the transaction or domain.ErrNotFound.
func (s *TransactionStore) GetTransaction(ctx context.Context, accountID, transactionID string) (*domain.Transaction, error) {
	out, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.table),
		Key:       transactionKey(accountID, transactionID),
	})
	if err != nil {
		return nil, fmt.Errorf("GetTransaction: get item: %w", err)
	}
	if len(out.Item) == 0 {
		return nil, domain.ErrNotFound
	}

	var txn domain.Transaction
	if err := attributevalue.UnmarshalMap(out.Item, &txn); err != nil {
		return nil, fmt.Errorf("GetTransaction: unmarshaling: %w", err)
	}
	return &txn, nil
}

// DeleteTransaction removes one transaction. Deleting one leg of a transfer
// does not cascade to its partner leg.
func (s *TransactionStore) DeleteTransaction(ctx context.Context, accountID, transactionID string) error {
	_, err := s.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(s.table),
		Key:       transactionKey(accountID, transactionID),
	})
	if err != nil {
		return fmt.Errorf("DeleteTransaction: delete item: %w", err)
	}
	return nil
}

// QueryByAccount returns every transaction belonging to the account.
func (s *TransactionStore) QueryByAccount(ctx context.Context, accountID string) ([]*domain.Transaction, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(s.table),
		KeyConditionExpression: aws.String("accountId = :accountId"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":accountId": &types.AttributeValueMemberS{Value: accountID},
		},
	}
	return s.queryAll(ctx, input, "QueryByAccount")
}

// QueryByAccountAndDate returns the account's transactions whose date falls
// in [startDate, endDate], served by the date secondary index.
func (s *TransactionStore) QueryByAccountAndDate(ctx context.Context, accountID, startDate, endDate string) ([]*domain.Transaction, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(s.table),
		IndexName:              aws.String(dateIndex),
		KeyConditionExpression: aws.String("accountId = :accountId AND #date BETWEEN :start AND :end"),
		ExpressionAttributeNames: map[string]string{
			"#date": "date",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":accountId": &types.AttributeValueMemberS{Value: accountID},
			":start":     &types.AttributeValueMemberS{Value: startDate},
			":end":       &types.AttributeValueMemberS{Value: endDate},
		},
	}
	return s.queryAll(ctx, input, "QueryByAccountAndDate")
}

// QueryByAccountAndCategory returns the account's transactions carrying the
// given category id, served by the category secondary index.
func (s *TransactionStore) QueryByAccountAndCategory(ctx context.Context, accountID, category string) ([]*domain.Transaction, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(s.table),
		IndexName:              aws.String(categoryIndex),
		KeyConditionExpression: aws.String("accountId = :accountId AND category = :category"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":accountId": &types.AttributeValueMemberS{Value: accountID},
			":category":  &types.AttributeValueMemberS{Value: category},
		},
	}
	return s.queryAll(ctx, input, "QueryByAccountAndCategory")
}

func (s *TransactionStore) queryAll(ctx context.Context, input *dynamodb.QueryInput, op string) ([]*domain.Transaction, error) {
	var txns []*domain.Transaction

	for {
		out, err := s.client.Query(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("%s: query: %w", op, err)
		}
		for _, item := range out.Items {
			var txn domain.Transaction
			if err := attributevalue.UnmarshalMap(item, &txn); err != nil {
				return nil, fmt.Errorf("%s: unmarshaling: %w", op, err)
			}
			txns = append(txns, &txn)
		}
		if len(out.LastEvaluatedKey) == 0 {
			break
		}
		input.ExclusiveStartKey = out.LastEvaluatedKey
	}

	return txns, nil
}

// BatchPutTransactions re-persists full records through BatchWriteItem,
// chunked at the store's 25-item ceiling. Items the store reports back as
// unprocessed are surfaced as an error rather than silently dropped.
func (s *TransactionStore) BatchPutTransactions(ctx context.Context, txns []*domain.Transaction) error {
	if len(txns) == 0 {
		return nil
	}

	for _, chunk := range ChunkTransactions(txns, maxBatchItems) {
		writes := make([]types.WriteRequest, 0, len(chunk))
		for _, txn := range chunk {
			item, err := attributevalue.MarshalMap(txn)
			if err != nil {
				return fmt.Errorf("BatchPutTransactions: marshaling: %w", err)
			}
			writes = append(writes, types.WriteRequest{
				PutRequest: &types.PutRequest{Item: item},
			})
		}

		out, err := s.client.BatchWriteItem(ctx, &dynamodb.BatchWriteItemInput{
			RequestItems: map[string][]types.WriteRequest{s.table: writes},
		})
		if err != nil {
			return fmt.Errorf("BatchPutTransactions: batch write: %w", err)
		}
		if unprocessed := out.UnprocessedItems[s.table]; len(unprocessed) > 0 {
			return fmt.Errorf("BatchPutTransactions: %d items were not processed", len(unprocessed))
		}
	}

	return nil
}

// CreateTransferPair writes both legs of a transfer in one TransactWriteItems
// call, so either both rows land or neither does. Fresh leg identities are
// fenced against collisions.
func (s *TransactionStore) CreateTransferPair(ctx context.Context, outgoing, incoming *domain.Transaction) error {
	items, err := transferPutItems(s.table, outgoing, incoming,
		aws.String("attribute_not_exists(transactionId)"),
		aws.String("attribute_not_exists(transactionId)"))
	if err != nil {
		return fmt.Errorf("CreateTransferPair: %w", err)
	}

	_, err = s.client.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: items,
	})
	if err != nil {
		return fmt.Errorf("CreateTransferPair: transact write: %w", err)
	}
	return nil
}

// PromoteToTransfer atomically rewrites the original record as the outgoing
// leg and creates the incoming leg. The rewrite is conditioned on the record
// still existing and not already carrying a transferType; a concurrent
// conversion yields domain.ErrAlreadyTransfer and a concurrent deletion
// yields domain.ErrNotFound.
func (s *TransactionStore) PromoteToTransfer(ctx context.Context, outgoing, incoming *domain.Transaction) error {
	items, err := transferPutItems(s.table, outgoing, incoming,
		aws.String("attribute_exists(transactionId) AND attribute_not_exists(transferType)"),
		aws.String("attribute_not_exists(transactionId)"))
	if err != nil {
		return fmt.Errorf("PromoteToTransfer: %w", err)
	}

	_, err = s.client.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: items,
	})
	if err != nil {
		// Item 0 is the conditioned rewrite of the original record. Its
		// condition fails both when the record was already converted and
		// when it was deleted; a re-read tells the two apart.
		if conditionalFailureIndex(err) == 0 {
			if _, getErr := s.GetTransaction(ctx, outgoing.AccountID, outgoing.TransactionID); errors.Is(getErr, domain.ErrNotFound) {
				return domain.ErrNotFound
			}
			return domain.ErrAlreadyTransfer
		}
		return fmt.Errorf("PromoteToTransfer: transact write: %w", err)
	}
	return nil
}

func transferPutItems(table string, outgoing, incoming *domain.Transaction, outCond, inCond *string) ([]types.TransactWriteItem, error) {
	outItem, err := attributevalue.MarshalMap(outgoing)
	if err != nil {
		return nil, fmt.Errorf("marshaling outgoing leg: %w", err)
	}
	inItem, err := attributevalue.MarshalMap(incoming)
	if err != nil {
		return nil, fmt.Errorf("marshaling incoming leg: %w", err)
	}

	return []types.TransactWriteItem{
		{Put: &types.Put{
			TableName:           aws.String(table),
			Item:                outItem,
			ConditionExpression: outCond,
		}},
		{Put: &types.Put{
			TableName:           aws.String(table),
			Item:                inItem,
			ConditionExpression: inCond,
		}},
	}, nil
}

// conditionalFailureIndex returns the index of the first transact item
// whose condition expression failed, or -1 when the error is not a
// conditional cancellation.
func conditionalFailureIndex(err error) int {
	var cancelled *types.TransactionCanceledException
	if !errors.As(err, &cancelled) {
		return -1
	}
	for i, reason := range cancelled.CancellationReasons {
		if reason.Code != nil && *reason.Code == "ConditionalCheckFailed" {
			return i
		}
	}
	return -1
}

// ChunkTransactions splits txns into consecutive slices of at most size
// elements. The slices alias the input.
func ChunkTransactions(txns []*domain.Transaction, size int) [][]*domain.Transaction {
	if size <= 0 || len(txns) == 0 {
		return nil
	}
	chunks := make([][]*domain.Transaction, 0, (len(txns)+size-1)/size)
	for start := 0; start < len(txns); start += size {
		end := start + size
		if end > len(txns) {
			end = len(txns)
		}
		chunks = append(chunks, txns[start:end])
	}
	return chunks
}
