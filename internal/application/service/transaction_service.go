package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sangkips/retail-api/internal/application/analytics"
	"github.com/sangkips/retail-api/internal/domain/entity"
	"github.com/sangkips/retail-api/internal/domain/enum"
	"github.com/sangkips/retail-api/internal/domain/repository"
	"github.com/sangkips/retail-api/internal/infrastructure/messaging"
	"github.com/sangkips/retail-api/pkg/apperror"
)

// TransactionService records sales and restocks
type TransactionService struct {
	store     repository.Store
	factory   *RecordFactory
	publisher messaging.TransactionPublisher
}

// NewTransactionService creates a new transaction service. A nil publisher
// disables event publishing.
func NewTransactionService(
	store repository.Store,
	factory *RecordFactory,
	publisher messaging.TransactionPublisher,
) *TransactionService {
	if publisher == nil {
		publisher = messaging.NoopPublisher{}
	}
	return &TransactionService{store: store, factory: factory, publisher: publisher}
}

// CreateTransactionInput represents the create transaction input
type CreateTransactionInput struct {
	Type       enum.TransactionType
	ProductID  string
	Quantity   int
	CustomerID *string
	Customer   *entity.CustomerContact
}

// ListTransactions returns every transaction in recorded order
func (s *TransactionService) ListTransactions(ctx context.Context) ([]entity.Transaction, error) {
	return s.store.Transactions(ctx)
}

func validateTransactionInput(input *CreateTransactionInput) error {
	v := &validator{}
	v.check(input.Type.IsValid(), "type", "Type must be sale or restock")
	v.required(input.ProductID, "productId", "Product is required")
	v.check(input.Quantity > 0, "quantity", "Quantity must be greater than 0")
	return v.err()
}

// CreateTransaction records a sale or restock and applies its effects in one
// write: the product's stock and dates change, and for a sale to a known
// customer the customer's visit statistics are updated. A sale larger than
// the stock on hand is rejected and nothing changes.
func (s *TransactionService) CreateTransaction(ctx context.Context, input *CreateTransactionInput) (*entity.Transaction, error) {
	const op = "service.TransactionService.CreateTransaction"
	log := slog.With("op", op)

	if err := validateTransactionInput(input); err != nil {
		return nil, err
	}
	customerID := input.CustomerID
	if customerID != nil && strings.TrimSpace(*customerID) == "" {
		customerID = nil
	}

	var txn entity.Transaction
	err := s.store.Mutate(ctx, func(snap *entity.Snapshot) error {
		pi := snap.ProductIndex(input.ProductID)
		if pi < 0 {
			return apperror.NewNotFoundError("Product")
		}
		product := snap.Products[pi]

		ci := -1
		if customerID != nil {
			if ci = snap.CustomerIndex(*customerID); ci < 0 {
				return apperror.NewFieldError("customerId", "Customer does not exist")
			}
		}

		if input.Type == enum.TransactionTypeSale && input.Quantity > product.Quantity {
			return apperror.NewFieldError("quantity",
				fmt.Sprintf("Insufficient stock: %d available", product.Quantity))
		}

		contact := input.Customer
		if contact == nil && ci >= 0 {
			c := snap.Customers[ci]
			contact = &entity.CustomerContact{
				Name:  c.Name,
				Email: entity.StringValue(c.Email),
				Phone: entity.StringValue(c.Phone),
			}
		}

		txn = s.factory.NewTransaction(input.Type, product, input.Quantity, customerID, contact)

		switch input.Type {
		case enum.TransactionTypeSale:
			product.Quantity -= txn.Quantity
			sold := txn.Date
			product.LastSold = &sold
			if ci >= 0 {
				snap.Customers[ci] = analytics.UpdateCustomerStats(snap.Customers[ci], txn.Total, txn.Date)
			}
		case enum.TransactionTypeRestock:
			product.Quantity += txn.Quantity
		}
		product.LastUpdated = txn.Date.Format(entity.DateLayout)
		snap.Products[pi] = product

		snap.Transactions = append(snap.Transactions, txn)
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info("transaction recorded",
		"id", txn.ID,
		"type", txn.Type,
		"product_id", txn.ProductID,
		"quantity", txn.Quantity,
		"total", txn.Total.String(),
	)

	if err := s.publisher.Publish(ctx, txn); err != nil {
		log.Warn("failed to publish transaction", "id", txn.ID, "err", err)
	}
	return &txn, nil
}
