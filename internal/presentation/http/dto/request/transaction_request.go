package request

import (
	"github.com/sangkips/retail-api/internal/application/service"
	"github.com/sangkips/retail-api/internal/domain/entity"
	"github.com/sangkips/retail-api/internal/domain/enum"
)

// CreateTransactionRequest represents a sale or restock request
type CreateTransactionRequest struct {
	Type       enum.TransactionType    `json:"type"`
	ProductID  string                  `json:"productId"`
	Quantity   int                     `json:"quantity"`
	CustomerID *string                 `json:"customerId"`
	Customer   *entity.CustomerContact `json:"customer"`
}

func (r *CreateTransactionRequest) ToInput() *service.CreateTransactionInput {
	return &service.CreateTransactionInput{
		Type:       r.Type,
		ProductID:  r.ProductID,
		Quantity:   r.Quantity,
		CustomerID: r.CustomerID,
		Customer:   r.Customer,
	}
}

