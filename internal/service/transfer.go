package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/hpfs74/family-budget/internal/domain"
	"github.com/hpfs74/family-budget/internal/dynamo"
)

// TransferService creates linked two-leg money movements between accounts
// and promotes existing transactions into transfers. A transfer is always
// exactly two transaction rows sharing one transferId: the outgoing leg
// carries the negative amount and the whole fee, the incoming leg carries
// the positive amount and a zero fee, and each points at the other's
// account through relatedAccount.
type TransferService struct {
	txns dynamo.TransactionRepository
	log  zerolog.Logger
	now  func() time.Time
}

// NewTransferService builds a transfer service over the transaction store.
func NewTransferService(txns dynamo.TransactionRepository, log zerolog.Logger) *TransferService {
	return &TransferService{txns: txns, log: log, now: time.Now}
}

// TransferInput is the payload for creating a transfer. The sign of Amount
// is ignored; only its magnitude moves.
type TransferInput struct {
	FromAccount string          `json:"fromAccount"`
	ToAccount   string          `json:"toAccount"`
	Amount      float64         `json:"amount"`
	Date        string          `json:"date"`
	Description string          `json:"description"`
	Currency    domain.Currency `json:"currency"`
	Fee         float64         `json:"fee"`
}

// Validate rejects the input before any write happens.
func (in *TransferInput) Validate() error {
	if in.FromAccount == "" {
		return domain.NewValidationError("fromAccount is required")
	}
	if in.ToAccount == "" {
		return domain.NewValidationError("toAccount is required")
	}
	if in.Amount == 0 {
		return domain.NewValidationError("amount is required")
	}
	if in.Date == "" {
		return domain.NewValidationError("date is required")
	}
	if in.Description == "" {
		return domain.NewValidationError("description is required")
	}
	if in.FromAccount == in.ToAccount {
		return domain.NewValidationError("cannot transfer between the same account")
	}
	if !in.Currency.Valid() {
		return domain.NewValidationError("currency must be GBP or EUR")
	}
	if in.Fee < 0 {
		return domain.NewValidationError("fee cannot be negative")
	}
	return nil
}

// TransferResult carries both persisted legs and their shared transferId.
type TransferResult struct {
	TransferID string              `json:"transferId"`
	Outgoing   *domain.Transaction `json:"outgoing"`
	Incoming   *domain.Transaction `json:"incoming"`
}

// CreateTransfer writes both legs of a new transfer in a single atomic
// multi-item write, so a partial transfer can never be observed.
func (s *TransferService) CreateTransfer(ctx context.Context, in TransferInput) (*TransferResult, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	transferID := uuid.New().String()
	magnitude := domain.Round2(domain.Abs(in.Amount))

	outgoing := &domain.Transaction{
		AccountID:      in.FromAccount,
		TransactionID:  uuid.New().String(),
		Date:           in.Date,
		Description:    in.Description,
		Currency:       in.Currency,
		Amount:         -magnitude,
		Fee:            domain.Round2(in.Fee),
		Category:       domain.CategoryTransfer,
		TransferID:     transferID,
		TransferType:   domain.TransferOutgoing,
		RelatedAccount: in.ToAccount,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	incoming := &domain.Transaction{
		AccountID:      in.ToAccount,
		TransactionID:  uuid.New().String(),
		Date:           in.Date,
		Description:    in.Description,
		Currency:       in.Currency,
		Amount:         magnitude,
		Fee:            0,
		Category:       domain.CategoryTransfer,
		TransferID:     transferID,
		TransferType:   domain.TransferIncoming,
		RelatedAccount: in.FromAccount,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.txns.CreateTransferPair(ctx, outgoing, incoming); err != nil {
		return nil, fmt.Errorf("CreateTransfer: %w", err)
	}

	s.log.Info().
		Str("transfer_id", transferID).
		Str("from_account", in.FromAccount).
		Str("to_account", in.ToAccount).
		Float64("amount", magnitude).
		Msg("Transfer created")

	return &TransferResult{TransferID: transferID, Outgoing: outgoing, Incoming: incoming}, nil
}

// ConvertToTransfer promotes an existing plain transaction into the outgoing
// leg of a transfer towards toAccount, creating the incoming leg in the same
// atomic write. The original record keeps its identity; its amount is forced
// to negative magnitude regardless of the sign it started with. Promotion is
// a one-time transition: a transaction that already carries a transferType
// is rejected with domain.ErrAlreadyTransfer.
func (s *TransferService) ConvertToTransfer(ctx context.Context, accountID, transactionID, toAccount string) (*TransferResult, error) {
	if accountID == "" {
		return nil, domain.NewValidationError("account is required")
	}
	if transactionID == "" {
		return nil, domain.NewValidationError("transactionId is required")
	}
	if toAccount == "" {
		return nil, domain.NewValidationError("toAccount is required")
	}
	if toAccount == accountID {
		return nil, domain.NewValidationError("cannot transfer between the same account")
	}

	original, err := s.txns.GetTransaction(ctx, accountID, transactionID)
	if err != nil {
		if err == domain.ErrNotFound {
			return nil, err
		}
		return nil, fmt.Errorf("ConvertToTransfer: %w", err)
	}
	if original.IsTransferLeg() {
		return nil, domain.ErrAlreadyTransfer
	}

	now := s.now().UTC()
	transferID := uuid.New().String()
	magnitude := domain.Round2(domain.Abs(original.Amount))

	outgoing := *original
	outgoing.Amount = -magnitude
	outgoing.Category = domain.CategoryTransfer
	outgoing.TransferID = transferID
	outgoing.TransferType = domain.TransferOutgoing
	outgoing.RelatedAccount = toAccount
	outgoing.UpdatedAt = now

	incoming := &domain.Transaction{
		AccountID:      toAccount,
		TransactionID:  uuid.New().String(),
		Date:           original.Date,
		Description:    original.Description,
		Currency:       original.Currency,
		Amount:         magnitude,
		Fee:            0,
		Category:       domain.CategoryTransfer,
		TransferID:     transferID,
		TransferType:   domain.TransferIncoming,
		RelatedAccount: accountID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.txns.PromoteToTransfer(ctx, &outgoing, incoming); err != nil {
		if err == domain.ErrAlreadyTransfer {
			return nil, err
		}
		return nil, fmt.Errorf("ConvertToTransfer: %w", err)
	}

	s.log.Info().
		Str("transfer_id", transferID).
		Str("account", accountID).
		Str("transaction_id", transactionID).
		Str("to_account", toAccount).
		Msg("Transaction converted to transfer")

	return &TransferResult{TransferID: transferID, Outgoing: &outgoing, Incoming: incoming}, nil
}
