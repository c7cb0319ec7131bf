package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/hpfs74/family-budget/internal/domain"
	"github.com/hpfs74/family-budget/internal/dynamo"
)

// BulkOutcome distinguishes the ways a bulk recategorization can finish.
// Both zero-count outcomes report count 0 but mean different things to the
// caller.
type BulkOutcome string

const (
	BulkUpdated        BulkOutcome = "updated"
	BulkNoTransactions BulkOutcome = "no_transactions"
	BulkNoMatches      BulkOutcome = "no_matches"
)

// BulkResult reports how many records were rewritten. On a mid-batch
// failure Updated still holds the count from the batches that completed.
type BulkResult struct {
	Updated int
	Outcome BulkOutcome
}

// RecategorizeService rewrites the category of every transaction on one
// account whose description matches a given string exactly. Writes go out
// in fixed-size sequential batches with a pause between them; the throttle
// is policy, not correctness, and both knobs come from configuration.
type RecategorizeService struct {
	txns       dynamo.TransactionRepository
	log        zerolog.Logger
	batchSize  int
	batchPause time.Duration
	now        func() time.Time
}

// NewRecategorizeService builds the bulk engine. batchSize must respect the
// store's per-call item ceiling; batchPause may be zero.
func NewRecategorizeService(txns dynamo.TransactionRepository, log zerolog.Logger, batchSize int, batchPause time.Duration) *RecategorizeService {
	if batchSize <= 0 {
		batchSize = 25
	}
	return &RecategorizeService{
		txns:       txns,
		log:        log,
		batchSize:  batchSize,
		batchPause: batchPause,
		now:        time.Now,
	}
}

// BulkUpdateByDescription reassigns newCategory to every transaction of
// accountID whose description equals description character for character.
// Matching is case-sensitive. Each match is re-persisted as a full record
// with a fresh updatedAt stamp.
func (s *RecategorizeService) BulkUpdateByDescription(ctx context.Context, accountID, description, newCategory string) (BulkResult, error) {
	if accountID == "" {
		return BulkResult{}, domain.NewValidationError("account is required")
	}
	if description == "" {
		return BulkResult{}, domain.NewValidationError("description is required")
	}
	if newCategory == "" {
		return BulkResult{}, domain.NewValidationError("category is required")
	}

	all, err := s.txns.QueryByAccount(ctx, accountID)
	if err != nil {
		return BulkResult{}, fmt.Errorf("BulkUpdateByDescription: %w", err)
	}
	if len(all) == 0 {
		return BulkResult{Outcome: BulkNoTransactions}, nil
	}

	now := s.now().UTC()
	var matches []*domain.Transaction
	for _, txn := range all {
		if txn.Description != description {
			continue
		}
		updated := *txn
		updated.Category = newCategory
		updated.UpdatedAt = now
		matches = append(matches, &updated)
	}
	if len(matches) == 0 {
		return BulkResult{Outcome: BulkNoMatches}, nil
	}

	result := BulkResult{Outcome: BulkUpdated}
	chunks := dynamo.ChunkTransactions(matches, s.batchSize)
	for i, chunk := range chunks {
		if i > 0 && s.batchPause > 0 {
			if err := sleepCtx(ctx, s.batchPause); err != nil {
				return result, fmt.Errorf("BulkUpdateByDescription: %w", err)
			}
		}
		if err := s.txns.BatchPutTransactions(ctx, chunk); err != nil {
			// Completed batches stay written; the count so far goes
			// back with the error instead of being discarded.
			return result, fmt.Errorf("BulkUpdateByDescription: batch %d of %d: %w", i+1, len(chunks), err)
		}
		result.Updated += len(chunk)
	}

	s.log.Info().
		Str("account", accountID).
		Str("category", newCategory).
		Int("updated", result.Updated).
		Msg("Bulk recategorization completed")

	return result, nil
}

// sleepCtx waits for d or until the context is cancelled.
func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
