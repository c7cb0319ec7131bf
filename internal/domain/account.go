package domain

import "time"

// AccountType classifies a bank account.
type AccountType string

const (
	AccountChecking   AccountType = "CHECKING"
	AccountSavings    AccountType = "SAVINGS"
	AccountCredit     AccountType = "CREDIT"
	AccountInvestment AccountType = "INVESTMENT"
)

// Valid reports whether the account type is one of the known values.
func (a AccountType) Valid() bool {
	switch a {
	case AccountChecking, AccountSavings, AccountCredit, AccountInvestment:
		return true
	}
	return false
}

// Account is a bank account owned by the user. Balance is whatever the user
// last recorded; it is not maintained by the transfer engine.
type Account struct {
	AccountID     string      `json:"accountId" dynamodbav:"accountId"`
	Name          string      `json:"name" dynamodbav:"name"`
	AccountNumber string      `json:"accountNumber" dynamodbav:"accountNumber"`
	BankName      string      `json:"bankName" dynamodbav:"bankName"`
	Type          AccountType `json:"type" dynamodbav:"type"`
	Currency      Currency    `json:"currency" dynamodbav:"currency"`
	Balance       *float64    `json:"balance,omitempty" dynamodbav:"balance,omitempty"`
	Active        bool        `json:"active" dynamodbav:"active"`
	CreatedAt     time.Time   `json:"createdAt" dynamodbav:"createdAt"`
	UpdatedAt     time.Time   `json:"updatedAt" dynamodbav:"updatedAt"`
}

// Validate checks the fields required to create or update an account.
func (a *Account) Validate() error {
	if a.Name == "" {
		return NewValidationError("name is required")
	}
	if !a.Type.Valid() {
		return NewValidationError("type must be one of CHECKING, SAVINGS, CREDIT, INVESTMENT")
	}
	if !a.Currency.Valid() {
		return NewValidationError("currency must be GBP or EUR")
	}
	return nil
}
