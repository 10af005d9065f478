package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the calendar date format used for Product.LastUpdated
const DateLayout = "2006-01-02"

func init() {
	// Money is persisted as JSON numbers, not quoted strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// Product represents a product in the inventory
type Product struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Category      string          `json:"category"`
	Price         decimal.Decimal `json:"price"`
	Quantity      int             `json:"quantity"`
	MinStockLevel int             `json:"minStockLevel"`
	LastUpdated   string          `json:"lastUpdated"`
	LastSold      *time.Time      `json:"lastSold,omitempty"`
}

// Value returns price × quantity
func (p Product) Value() decimal.Decimal {
	return p.Price.Mul(decimal.NewFromInt(int64(p.Quantity)))
}

// IsOutOfStock reports whether nothing is left on hand
func (p Product) IsOutOfStock() bool {
	return p.Quantity == 0
}

// IsLowStock reports whether stock is positive but at or below the minimum level
func (p Product) IsLowStock() bool {
	return p.Quantity > 0 && p.Quantity <= p.MinStockLevel
}

// ProductPatch lists the product fields a client may change. Identity and
// bookkeeping fields (id, lastUpdated, lastSold) are not patchable.
type ProductPatch struct {
	Name          *string
	Description   *string
	Category      *string
	Price         *decimal.Decimal
	Quantity      *int
	MinStockLevel *int
}

// Apply returns a copy of p with the patch applied
func (patch ProductPatch) Apply(p Product) Product {
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.Category != nil {
		p.Category = *patch.Category
	}
	if patch.Price != nil {
		p.Price = *patch.Price
	}
	if patch.Quantity != nil {
		p.Quantity = *patch.Quantity
	}
	if patch.MinStockLevel != nil {
		p.MinStockLevel = *patch.MinStockLevel
	}
	return p
}
