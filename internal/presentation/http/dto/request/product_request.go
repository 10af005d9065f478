package request

import (
	"github.com/sangkips/retail-api/internal/application/service"
	"github.com/sangkips/retail-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// CreateProductRequest represents a product creation request
type CreateProductRequest struct {
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Category      string          `json:"category"`
	Price         decimal.Decimal `json:"price"`
	Quantity      int             `json:"quantity"`
	MinStockLevel *int            `json:"minStockLevel"`
}

func (r *CreateProductRequest) ToInput() *service.CreateProductInput {
	return &service.CreateProductInput{
		Name:          r.Name,
		Description:   r.Description,
		Category:      r.Category,
		Price:         r.Price,
		Quantity:      r.Quantity,
		MinStockLevel: r.MinStockLevel,
	}
}

// UpdateProductRequest represents a partial product update; absent fields are left alone
type UpdateProductRequest struct {
	Name          *string          `json:"name"`
	Description   *string          `json:"description"`
	Category      *string          `json:"category"`
	Price         *decimal.Decimal `json:"price"`
	Quantity      *int             `json:"quantity"`
	MinStockLevel *int             `json:"minStockLevel"`
}

func (r *UpdateProductRequest) ToInput(id string) *service.UpdateProductInput {
	return &service.UpdateProductInput{
		ID: id,
		Patch: entity.ProductPatch{
			Name:          r.Name,
			Description:   r.Description,
			Category:      r.Category,
			Price:         r.Price,
			Quantity:      r.Quantity,
			MinStockLevel: r.MinStockLevel,
		},
	}
}
