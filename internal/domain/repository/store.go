package repository

import (
	"context"

	"github.com/sangkips/retail-api/internal/domain/entity"
)

// Store owns the three collections. Reads return copies the caller may keep;
// writes replace a whole collection or run a serialized read-modify-write.
type Store interface {
	Products(ctx context.Context) ([]entity.Product, error)
	Customers(ctx context.Context) ([]entity.Customer, error)
	Transactions(ctx context.Context) ([]entity.Transaction, error)
	// Snapshot returns a copy of all three collections taken at one instant.
	Snapshot(ctx context.Context) (*entity.Snapshot, error)

	ReplaceProducts(ctx context.Context, products []entity.Product) error
	ReplaceCustomers(ctx context.Context, customers []entity.Customer) error
	ReplaceTransactions(ctx context.Context, transactions []entity.Transaction) error

	// Mutate applies fn to a working copy of the snapshot and persists it.
	// If fn or persistence fails nothing is changed.
	Mutate(ctx context.Context, fn func(s *entity.Snapshot) error) error
}
