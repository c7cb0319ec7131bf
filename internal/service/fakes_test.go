package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/hpfs74/family-budget/internal/domain"
)

// fakeTransactionRepo is an in-memory stand-in for the DynamoDB store. It
// keeps insertion order so assertions stay deterministic.
type fakeTransactionRepo struct {
	txns []*domain.Transaction

	putCalls      int
	batchCalls    int
	failOnBatch   int // 1-based batch call index to fail on; 0 disables
	failTransacts bool

	// deleteBeforePromote drops the target record at promotion time,
	// simulating a delete racing the conversion.
	deleteBeforePromote bool
}

var errFakeStore = errors.New("store unavailable")

func (f *fakeTransactionRepo) key(accountID, transactionID string) int {
	for i, txn := range f.txns {
		if txn.AccountID == accountID && txn.TransactionID == transactionID {
			return i
		}
	}
	return -1
}

func (f *fakeTransactionRepo) PutTransaction(_ context.Context, txn *domain.Transaction) error {
	f.putCalls++
	f.upsert(txn)
	return nil
}

func (f *fakeTransactionRepo) upsert(txn *domain.Transaction) {
	copied := *txn
	if i := f.key(txn.AccountID, txn.TransactionID); i >= 0 {
		f.txns[i] = &copied
		return
	}
	f.txns = append(f.txns, &copied)
}

func (f *fakeTransactionRepo) GetTransaction(_ context.Context, accountID, transactionID string) (*domain.Transaction, error) {
	if i := f.key(accountID, transactionID); i >= 0 {
		copied := *f.txns[i]
		return &copied, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeTransactionRepo) DeleteTransaction(_ context.Context, accountID, transactionID string) error {
	if i := f.key(accountID, transactionID); i >= 0 {
		f.txns = append(f.txns[:i], f.txns[i+1:]...)
	}
	return nil
}

func (f *fakeTransactionRepo) QueryByAccount(_ context.Context, accountID string) ([]*domain.Transaction, error) {
	var out []*domain.Transaction
	for _, txn := range f.txns {
		if txn.AccountID == accountID {
			copied := *txn
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (f *fakeTransactionRepo) QueryByAccountAndDate(ctx context.Context, accountID, startDate, endDate string) ([]*domain.Transaction, error) {
	all, _ := f.QueryByAccount(ctx, accountID)
	var out []*domain.Transaction
	for _, txn := range all {
		if txn.Date >= startDate && txn.Date <= endDate {
			out = append(out, txn)
		}
	}
	return out, nil
}

func (f *fakeTransactionRepo) QueryByAccountAndCategory(ctx context.Context, accountID, category string) ([]*domain.Transaction, error) {
	all, _ := f.QueryByAccount(ctx, accountID)
	var out []*domain.Transaction
	for _, txn := range all {
		if txn.Category == category {
			out = append(out, txn)
		}
	}
	return out, nil
}

func (f *fakeTransactionRepo) BatchPutTransactions(_ context.Context, txns []*domain.Transaction) error {
	f.batchCalls++
	if f.failOnBatch > 0 && f.batchCalls == f.failOnBatch {
		return fmt.Errorf("BatchPutTransactions: %w", errFakeStore)
	}
	for _, txn := range txns {
		f.upsert(txn)
	}
	return nil
}

func (f *fakeTransactionRepo) CreateTransferPair(_ context.Context, outgoing, incoming *domain.Transaction) error {
	if f.failTransacts {
		return fmt.Errorf("CreateTransferPair: %w", errFakeStore)
	}
	f.upsert(outgoing)
	f.upsert(incoming)
	return nil
}

func (f *fakeTransactionRepo) PromoteToTransfer(_ context.Context, outgoing, incoming *domain.Transaction) error {
	if f.failTransacts {
		return fmt.Errorf("PromoteToTransfer: %w", errFakeStore)
	}
	if f.deleteBeforePromote {
		if i := f.key(outgoing.AccountID, outgoing.TransactionID); i >= 0 {
			f.txns = append(f.txns[:i], f.txns[i+1:]...)
		}
	}
	i := f.key(outgoing.AccountID, outgoing.TransactionID)
	if i < 0 {
		return domain.ErrNotFound
	}
	if f.txns[i].IsTransferLeg() {
		return domain.ErrAlreadyTransfer
	}
	f.upsert(outgoing)
	f.upsert(incoming)
	return nil
}
