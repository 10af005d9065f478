// Package messaging publishes persisted transactions to a Kafka topic.
package messaging

import (
	"context"
	"fmt"
	"strings"

	"github.com/sangkips/retail-api/internal/domain/entity"
	"github.com/sangkips/retail-api/pkg/schema"
)

// TransactionPublisher emits an event for every persisted transaction
type TransactionPublisher interface {
	Publish(ctx context.Context, txn entity.Transaction) error
	Close()
}

// NoopPublisher is used when no brokers are configured
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, entity.Transaction) error { return nil }

func (NoopPublisher) Close() {}

func transactionToSchemaV1(txn entity.Transaction) schema.TransactionV1 {
	return schema.TransactionV1{
		ID:           txn.ID,
		Type:         txn.Type.String(),
		ProductID:    txn.ProductID,
		ProductName:  txn.ProductName,
		ProductPrice: txn.ProductPrice.String(),
		Quantity:     int64(txn.Quantity),
		Total:        txn.Total.String(),
		Date:         txn.Date.UTC(),
		CustomerID:   txn.CustomerID,
	}
}

func makeOp(s ...string) string {
	return strings.Join(s, ".")
}

func opErr(err error, op ...string) error {
	return fmt.Errorf("%s: %w", makeOp(op...), err)
}
