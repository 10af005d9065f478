package service

import (
	"context"

	"github.com/sangkips/retail-api/internal/application/analytics"
	"github.com/sangkips/retail-api/internal/domain/entity"
	"github.com/sangkips/retail-api/internal/domain/repository"
	"github.com/sangkips/retail-api/pkg/apperror"
	"github.com/shopspring/decimal"
)

// ProductService handles product-related operations
type ProductService struct {
	store   repository.Store
	factory *RecordFactory
}

// NewProductService creates a new product service
func NewProductService(store repository.Store, factory *RecordFactory) *ProductService {
	return &ProductService{store: store, factory: factory}
}

// CreateProductInput represents the create product input
type CreateProductInput struct {
	Name          string
	Description   string
	Category      string
	Price         decimal.Decimal
	Quantity      int
	MinStockLevel *int
}

// UpdateProductInput represents the update product input
type UpdateProductInput struct {
	ID    string
	Patch entity.ProductPatch
}

func validateProduct(p entity.Product) error {
	v := &validator{}
	v.required(p.Name, "name", "Product name is required")
	v.check(p.Price.IsPositive(), "price", "Price must be greater than 0")
	v.check(p.Quantity >= 0, "quantity", "Quantity cannot be negative")
	v.check(p.MinStockLevel >= 0, "minStockLevel", "Minimum stock level cannot be negative")
	return v.err()
}

// ListProducts returns every product in stored order
func (s *ProductService) ListProducts(ctx context.Context) ([]entity.Product, error) {
	return s.store.Products(ctx)
}

// GetProduct retrieves a product by ID
func (s *ProductService) GetProduct(ctx context.Context, id string) (*entity.Product, error) {
	products, err := s.store.Products(ctx)
	if err != nil {
		return nil, err
	}
	for i := range products {
		if products[i].ID == id {
			return &products[i], nil
		}
	}
	return nil, apperror.NewNotFoundError("Product")
}

// LowStockProducts returns the products at or below their minimum level
func (s *ProductService) LowStockProducts(ctx context.Context) ([]entity.Product, error) {
	products, err := s.store.Products(ctx)
	if err != nil {
		return nil, err
	}
	return analytics.LowStockProducts(products), nil
}

// CreateProduct creates a new product
func (s *ProductService) CreateProduct(ctx context.Context, input *CreateProductInput) (*entity.Product, error) {
	product := s.factory.NewProduct(input)
	if err := validateProduct(product); err != nil {
		return nil, err
	}

	err := s.store.Mutate(ctx, func(snap *entity.Snapshot) error {
		snap.Products = append(snap.Products, product)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// UpdateProduct applies a partial update and stamps lastUpdated
func (s *ProductService) UpdateProduct(ctx context.Context, input *UpdateProductInput) (*entity.Product, error) {
	var updated entity.Product
	err := s.store.Mutate(ctx, func(snap *entity.Snapshot) error {
		i := snap.ProductIndex(input.ID)
		if i < 0 {
			return apperror.NewNotFoundError("Product")
		}

		next := input.Patch.Apply(snap.Products[i])
		if err := validateProduct(next); err != nil {
			return err
		}
		next.LastUpdated = s.factory.Today()

		snap.Products[i] = next
		updated = next
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteProduct removes a product and returns it. Past transactions keep
// their copy of the product name and price.
func (s *ProductService) DeleteProduct(ctx context.Context, id string) (*entity.Product, error) {
	var deleted entity.Product
	err := s.store.Mutate(ctx, func(snap *entity.Snapshot) error {
		i := snap.ProductIndex(id)
		if i < 0 {
			return apperror.NewNotFoundError("Product")
		}
		deleted = snap.Products[i]
		snap.Products = append(snap.Products[:i], snap.Products[i+1:]...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &deleted, nil
}
