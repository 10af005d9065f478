package entity

import (
	"time"

	"github.com/sangkips/retail-api/internal/domain/enum"
	"github.com/shopspring/decimal"
)

// Transaction records a sale or a restock. Transactions are immutable once
// written; Total is fixed at creation and never recomputed from the current
// product price.
type Transaction struct {
	ID           string               `json:"id"`
	Type         enum.TransactionType `json:"type"`
	ProductID    string               `json:"productId"`
	ProductName  string               `json:"productName"`
	ProductPrice decimal.Decimal      `json:"productPrice"`
	Quantity     int                  `json:"quantity"`
	Total        decimal.Decimal      `json:"total"`
	Date         time.Time            `json:"date"`
	CustomerID   *string              `json:"customerId,omitempty"`
	Customer     *CustomerContact     `json:"customer,omitempty"`
}

// CustomerContact is the contact detail captured at the till
type CustomerContact struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// IsSale reports whether the transaction is a sale
func (t Transaction) IsSale() bool {
	return t.Type == enum.TransactionTypeSale
}

// IsRestock reports whether the transaction is a restock
func (t Transaction) IsRestock() bool {
	return t.Type == enum.TransactionTypeRestock
}
