// Package schema holds the avro schemas of the events the service emits.
package schema

import (
	"fmt"
	"time"

	"github.com/hamba/avro/v2"
)

const TransactionSchemaTextV1 = `{
	"type": "record",
	"namespace": "retail",
	"name": "transaction",
	"fields": [
		{"name": "id", "type": "string"},
		{"name": "type", "type": "string"},
		{"name": "product_id", "type": "string"},
		{"name": "product_name", "type": "string"},
		{"name": "product_price", "type": "string"},
		{"name": "quantity", "type": "long"},
		{"name": "total", "type": "string"},
		{"name": "date", "type": {"type": "long", "logicalType": "timestamp-millis"}},
		{"name": "customer_id", "type": ["null", "string"], "default": null}
	]
}`

// TransactionV1 is a persisted sale or restock. Money is carried as decimal
// strings so no precision is lost in transit.
type TransactionV1 struct {
	ID           string    `avro:"id"`
	Type         string    `avro:"type"`
	ProductID    string    `avro:"product_id"`
	ProductName  string    `avro:"product_name"`
	ProductPrice string    `avro:"product_price"`
	Quantity     int64     `avro:"quantity"`
	Total        string    `avro:"total"`
	Date         time.Time `avro:"date"`
	CustomerID   *string   `avro:"customer_id"`
}

// Codec encodes values against a single parsed avro schema
type Codec struct {
	schema avro.Schema
}

// NewTransactionCodecV1 parses the transaction schema
func NewTransactionCodecV1() (Codec, error) {
	const op = "NewTransactionCodecV1"
	s, err := avro.Parse(TransactionSchemaTextV1)
	if err != nil {
		return Codec{}, fmt.Errorf("%s: %w", op, err)
	}
	return Codec{schema: s}, nil
}

func (c Codec) Encode(v any) ([]byte, error) {
	return avro.Marshal(c.schema, v)
}

func (c Codec) Decode(data []byte, v any) error {
	return avro.Unmarshal(c.schema, data, v)
}
