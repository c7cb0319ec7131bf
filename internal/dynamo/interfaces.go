package dynamo

import (
	"context"

	"github.com/hpfs74/family-budget/internal/domain"
)

// AccountRepository is the account persistence surface consumed by the API.
type AccountRepository interface {
	PutAccount(ctx context.Context, account *domain.Account) error
	GetAccount(ctx context.Context, accountID string) (*domain.Account, error)
	ListAccounts(ctx context.Context) ([]*domain.Account, error)
	DeleteAccount(ctx context.Context, accountID string) error
}

// CategoryRepository is the category persistence surface consumed by the API.
type CategoryRepository interface {
	PutCategory(ctx context.Context, category *domain.Category) error
	GetCategory(ctx context.Context, categoryID string) (*domain.Category, error)
	ListCategories(ctx context.Context) ([]*domain.Category, error)
	DeleteCategory(ctx context.Context, categoryID string) error
}

// TransactionRepository translates domain reads and writes onto the store's
// query capabilities. Transactions are addressed by the composite
// (accountId, transactionId) key.
type TransactionRepository interface {
	PutTransaction(ctx context.Context, txn *domain.Transaction) error
	GetTransaction(ctx context.Context, accountID, transactionID string) (*domain.Transaction, error)
	DeleteTransaction(ctx context.Context, accountID, transactionID string) error

	QueryByAccount(ctx context.Context, accountID string) ([]*domain.Transaction, error)
	QueryByAccountAndDate(ctx context.Context, accountID, startDate, endDate string) ([]*domain.Transaction, error)
	QueryByAccountAndCategory(ctx context.Context, accountID, category string) ([]*domain.Transaction, error)

	// BatchPutTransactions re-persists full records in chunks bounded by
	// the store's per-call item ceiling.
	BatchPutTransactions(ctx context.Context, txns []*domain.Transaction) error

	// CreateTransferPair writes both legs of a new transfer in one atomic
	// multi-item write.
	CreateTransferPair(ctx context.Context, outgoing, incoming *domain.Transaction) error

	// PromoteToTransfer atomically replaces an existing transaction with
	// its promoted outgoing form and creates the incoming leg. The write
	// is fenced on the original record existing and not already being a
	// transfer leg; racing a conversion yields domain.ErrAlreadyTransfer
	// and racing a delete yields domain.ErrNotFound.
	PromoteToTransfer(ctx context.Context, outgoing, incoming *domain.Transaction) error
}
