package service

import (
	"strings"
	"time"

	"github.com/sangkips/retail-api/internal/domain/entity"
	"github.com/sangkips/retail-api/internal/domain/enum"
	"github.com/sangkips/retail-api/pkg/utils"
	"github.com/shopspring/decimal"
)

// Defaults applied to new products when the client leaves a field out
const (
	DefaultCategory      = "Beverages"
	DefaultMinStockLevel = 5
)

// RecordFactory assigns identity and default fields to new records. It is the
// only place that reads the clock or issues ids for persisted data.
type RecordFactory struct {
	ids *utils.IDGenerator
	now func() time.Time
}

// NewRecordFactory creates a record factory. A nil clock means time.Now.
func NewRecordFactory(ids *utils.IDGenerator, now func() time.Time) *RecordFactory {
	if now == nil {
		now = time.Now
	}
	return &RecordFactory{ids: ids, now: now}
}

// Now returns the current time in UTC
func (f *RecordFactory) Now() time.Time {
	return f.now().UTC()
}

// Today returns the current calendar date token
func (f *RecordFactory) Today() string {
	return f.Now().Format(entity.DateLayout)
}

// NewProduct builds a product from validated input
func (f *RecordFactory) NewProduct(input *CreateProductInput) entity.Product {
	category := strings.TrimSpace(input.Category)
	if category == "" {
		category = DefaultCategory
	}
	minStock := DefaultMinStockLevel
	if input.MinStockLevel != nil {
		minStock = *input.MinStockLevel
	}

	return entity.Product{
		ID:            f.ids.Next(),
		Name:          strings.TrimSpace(input.Name),
		Description:   input.Description,
		Category:      category,
		Price:         input.Price,
		Quantity:      input.Quantity,
		MinStockLevel: minStock,
		LastUpdated:   f.Today(),
	}
}

// NewCustomer builds a customer with empty visit statistics
func (f *RecordFactory) NewCustomer(input *CreateCustomerInput) entity.Customer {
	return entity.Customer{
		ID:         f.ids.Next(),
		Name:       strings.TrimSpace(input.Name),
		Email:      input.Email,
		Phone:      input.Phone,
		Address:    input.Address,
		Notes:      input.Notes,
		VisitCount: 0,
		TotalSpent: decimal.Zero,
	}
}

// NewTransaction records quantity units of product at its current price. The
// total is fixed here and never recomputed.
func (f *RecordFactory) NewTransaction(
	typ enum.TransactionType,
	product entity.Product,
	quantity int,
	customerID *string,
	contact *entity.CustomerContact,
) entity.Transaction {
	return entity.Transaction{
		ID:           f.ids.Next(),
		Type:         typ,
		ProductID:    product.ID,
		ProductName:  product.Name,
		ProductPrice: product.Price,
		Quantity:     quantity,
		Total:        product.Price.Mul(decimal.NewFromInt(int64(quantity))),
		Date:         f.Now(),
		CustomerID:   customerID,
		Customer:     contact,
	}
}
