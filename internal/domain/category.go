package domain

import "time"

// Category labels transactions for reporting. Transactions reference it by
// id only; deleting a category leaves those references dangling on purpose.
type Category struct {
	CategoryID  string    `json:"categoryId" dynamodbav:"categoryId"`
	Name        string    `json:"name" dynamodbav:"name"`
	Description string    `json:"description,omitempty" dynamodbav:"description,omitempty"`
	Color       string    `json:"color,omitempty" dynamodbav:"color,omitempty"`
	Icon        string    `json:"icon,omitempty" dynamodbav:"icon,omitempty"`
	Active      bool      `json:"active" dynamodbav:"active"`
	CreatedAt   time.Time `json:"createdAt" dynamodbav:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt" dynamodbav:"updatedAt"`
}

// Validate checks the fields required to create or update a category.
func (c *Category) Validate() error {
	if c.Name == "" {
		return NewValidationError("name is required")
	}
	return nil
}
