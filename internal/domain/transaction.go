package domain

import (
	"time"
)

// CategoryTransfer is the literal category both legs of a transfer carry.
// It is a marker value, not the id of a row in the categories table.
const CategoryTransfer = "transfer"

// TransferType marks which side of a transfer a transaction is.
type TransferType string

const (
	TransferOutgoing TransferType = "outgoing"
	TransferIncoming TransferType = "incoming"
)

// Currency is the ISO currency code of an account or transaction.
type Currency string

const (
	CurrencyGBP Currency = "GBP"
	CurrencyEUR Currency = "EUR"
)

// Valid reports whether the currency is one of the supported codes.
func (c Currency) Valid() bool {
	return c == CurrencyGBP || c == CurrencyEUR
}

// Transaction is one movement of money on a single account. Its identity is
// the composite (AccountID, TransactionID); TransactionID alone cannot be
// looked up without the account. A plain transaction has empty transfer
// linkage fields; the two legs of a transfer share one TransferID and point
// at each other through RelatedAccount.
type Transaction struct {
	AccountID     string   `json:"accountId" dynamodbav:"accountId"`
	TransactionID string   `json:"transactionId" dynamodbav:"transactionId"`
	Date          string   `json:"date" dynamodbav:"date"` // YYYY-MM-DD
	Description   string   `json:"description" dynamodbav:"description"`
	Currency      Currency `json:"currency" dynamodbav:"currency"`

	// Amount is signed: positive is income, negative is expense. Fee is
	// non-negative and only ever carried by the outgoing leg of a transfer.
	Amount float64 `json:"amount" dynamodbav:"amount"`
	Fee    float64 `json:"fee" dynamodbav:"fee"`

	// Category holds a categoryId, or CategoryTransfer for transfer legs.
	// Dangling category ids are tolerated; there is no referential
	// integrity between transactions and the categories table.
	Category string `json:"category" dynamodbav:"category"`

	TransferID     string       `json:"transferId,omitempty" dynamodbav:"transferId,omitempty"`
	TransferType   TransferType `json:"transferType,omitempty" dynamodbav:"transferType,omitempty"`
	RelatedAccount string       `json:"relatedAccount,omitempty" dynamodbav:"relatedAccount,omitempty"`

	CreatedAt time.Time `json:"createdAt" dynamodbav:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" dynamodbav:"updatedAt"`
}

// IsTransferLeg reports whether the transaction already belongs to a
// transfer. Conversion into a transfer is a one-time transition, so this
// gates promotion.
func (t *Transaction) IsTransferLeg() bool {
	return t.TransferType != ""
}

// Validate checks the fields required for a plain transaction create/update.
func (t *Transaction) Validate() error {
	if t.AccountID == "" {
		return NewValidationError("accountId is required")
	}
	if t.Date == "" {
		return NewValidationError("date is required")
	}
	if _, err := time.Parse(DateLayout, t.Date); err != nil {
		return NewValidationError("date must be formatted as YYYY-MM-DD")
	}
	if t.Description == "" {
		return NewValidationError("description is required")
	}
	if !t.Currency.Valid() {
		return NewValidationError("currency must be GBP or EUR")
	}
	if t.Fee < 0 {
		return NewValidationError("fee cannot be negative")
	}
	return nil
}

// DateLayout is the calendar-date format used on transaction records.
const DateLayout = "2006-01-02"
