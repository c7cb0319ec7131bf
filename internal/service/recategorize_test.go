package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/rs/zerolog"

	"github.com/hpfs74/family-budget/internal/domain"
)

func newRecategorizeService(repo *fakeTransactionRepo, batchSize int) *RecategorizeService {
	return NewRecategorizeService(repo, zerolog.Nop(), batchSize, 0)
}

func seedTxn(repo *fakeTransactionRepo, account, id, description, category string) {
	repo.upsert(&domain.Transaction{
		AccountID:     account,
		TransactionID: id,
		Date:          "2024-01-10",
		Description:   description,
		Currency:      domain.CurrencyGBP,
		Amount:        -12.30,
		Category:      category,
	})
}

func TestBulkUpdateByDescription(t *testing.T) {
	repo := &fakeTransactionRepo{}
	seedTxn(repo, "acc1", "t1", "TESCO STORES", "cat-misc")
	seedTxn(repo, "acc1", "t2", "TESCO STORES", "cat-misc")
	seedTxn(repo, "acc1", "t3", "tesco stores", "cat-misc") // case differs, untouched
	seedTxn(repo, "acc1", "t4", "SHELL", "cat-misc")
	seedTxn(repo, "acc2", "t5", "TESCO STORES", "cat-misc") // other account, untouched
	svc := newRecategorizeService(repo, 25)

	result, err := svc.BulkUpdateByDescription(context.Background(), "acc1", "TESCO STORES", "cat-groceries")
	if err != nil {
		t.Fatalf("BulkUpdateByDescription failed: %v", err)
	}
	if result.Updated != 2 || result.Outcome != BulkUpdated {
		t.Fatalf("result = %+v, want 2 updated", result)
	}

	assertCategory := func(account, id, want string) {
		t.Helper()
		txn, _ := repo.GetTransaction(context.Background(), account, id)
		if txn.Category != want {
			t.Errorf("%s/%s category = %q, want %q", account, id, txn.Category, want)
		}
	}
	assertCategory("acc1", "t1", "cat-groceries")
	assertCategory("acc1", "t2", "cat-groceries")
	assertCategory("acc1", "t3", "cat-misc")
	assertCategory("acc1", "t4", "cat-misc")
	assertCategory("acc2", "t5", "cat-misc")

	updated, _ := repo.GetTransaction(context.Background(), "acc1", "t1")
	if updated.UpdatedAt.IsZero() {
		t.Error("expected updatedAt to be stamped")
	}
	if updated.Description != "TESCO STORES" || updated.Amount != -12.30 {
		t.Errorf("bulk update altered unrelated fields: %+v", updated)
	}
}

func TestBulkUpdateZeroOutcomes(t *testing.T) {
	repo := &fakeTransactionRepo{}
	svc := newRecategorizeService(repo, 25)

	// Account with no transactions at all.
	result, err := svc.BulkUpdateByDescription(context.Background(), "acc-empty", "ANYTHING", "cat-x")
	if err != nil {
		t.Fatalf("BulkUpdateByDescription failed: %v", err)
	}
	if result.Updated != 0 || result.Outcome != BulkNoTransactions {
		t.Errorf("result = %+v, want no-transactions outcome", result)
	}

	// Account with transactions but no description match. The two
	// zero-count outcomes must stay distinguishable.
	seedTxn(repo, "acc1", "t1", "SHELL", "cat-misc")
	result, err = svc.BulkUpdateByDescription(context.Background(), "acc1", "TESCO STORES", "cat-x")
	if err != nil {
		t.Fatalf("BulkUpdateByDescription failed: %v", err)
	}
	if result.Updated != 0 || result.Outcome != BulkNoMatches {
		t.Errorf("result = %+v, want no-matches outcome", result)
	}
}

func TestBulkUpdateValidation(t *testing.T) {
	svc := newRecategorizeService(&fakeTransactionRepo{}, 25)

	for name, args := range map[string][3]string{
		"missing account":     {"", "D", "C"},
		"missing description": {"A", "", "C"},
		"missing category":    {"A", "D", ""},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := svc.BulkUpdateByDescription(context.Background(), args[0], args[1], args[2])
			if !domain.IsValidation(err) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestBulkUpdateBatching(t *testing.T) {
	repo := &fakeTransactionRepo{}
	for i := 0; i < 60; i++ {
		seedTxn(repo, "acc1", fmt.Sprintf("t%02d", i), "NETFLIX", "cat-misc")
	}
	svc := newRecategorizeService(repo, 25)

	result, err := svc.BulkUpdateByDescription(context.Background(), "acc1", "NETFLIX", "cat-entertainment")
	if err != nil {
		t.Fatalf("BulkUpdateByDescription failed: %v", err)
	}
	if result.Updated != 60 {
		t.Errorf("updated = %d, want 60", result.Updated)
	}
	if repo.batchCalls != 3 {
		t.Errorf("batch calls = %d, want 3 (25+25+10)", repo.batchCalls)
	}
}

func TestBulkUpdateMidBatchFailure(t *testing.T) {
	repo := &fakeTransactionRepo{failOnBatch: 2}
	for i := 0; i < 40; i++ {
		seedTxn(repo, "acc1", fmt.Sprintf("t%02d", i), "NETFLIX", "cat-misc")
	}
	svc := newRecategorizeService(repo, 25)

	result, err := svc.BulkUpdateByDescription(context.Background(), "acc1", "NETFLIX", "cat-entertainment")
	if err == nil {
		t.Fatal("expected an error from the failing batch")
	}
	// The first batch completed, so its count survives the failure.
	if result.Updated != 25 {
		t.Errorf("updated = %d, want 25 from the completed batch", result.Updated)
	}
	if result.Outcome != BulkUpdated {
		t.Errorf("outcome = %q, want %q", result.Outcome, BulkUpdated)
	}
}
