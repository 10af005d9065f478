package service

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/sangkips/retail-api/internal/application/analytics"
	"github.com/sangkips/retail-api/internal/domain/entity"
	"github.com/sangkips/retail-api/internal/domain/repository"
	"github.com/sangkips/retail-api/pkg/apperror"
	"github.com/sangkips/retail-api/pkg/export"
)

// CustomerExportBaseName prefixes export filenames
const CustomerExportBaseName = "customers_export"

var customerExportHeaders = []string{
	"Name", "Email", "Phone", "Address", "Total Spent", "Visit Count", "Last Visit", "Loyalty Tier",
}

// CustomerService handles customer-related operations
type CustomerService struct {
	store   repository.Store
	factory *RecordFactory
}

// NewCustomerService creates a new customer service
func NewCustomerService(store repository.Store, factory *RecordFactory) *CustomerService {
	return &CustomerService{store: store, factory: factory}
}

// CreateCustomerInput represents the create customer input
type CreateCustomerInput struct {
	Name    string
	Email   *string
	Phone   *string
	Address *string
	Notes   *string
}

// UpdateCustomerInput represents the update customer input
type UpdateCustomerInput struct {
	ID    string
	Patch entity.CustomerPatch
}

func validateCustomer(c entity.Customer) error {
	v := &validator{}
	v.required(c.Name, "name", "Customer name is required")
	if c.Email != nil && *c.Email != "" {
		v.check(strings.Contains(*c.Email, "@"), "email", "Email address is invalid")
	}
	return v.err()
}

// ListCustomers returns every customer in stored order
func (s *CustomerService) ListCustomers(ctx context.Context) ([]entity.Customer, error) {
	return s.store.Customers(ctx)
}

// GetCustomer retrieves a customer by ID
func (s *CustomerService) GetCustomer(ctx context.Context, id string) (*entity.Customer, error) {
	customers, err := s.store.Customers(ctx)
	if err != nil {
		return nil, err
	}
	for i := range customers {
		if customers[i].ID == id {
			return &customers[i], nil
		}
	}
	return nil, apperror.NewNotFoundError("Customer")
}

// CreateCustomer creates a new customer
func (s *CustomerService) CreateCustomer(ctx context.Context, input *CreateCustomerInput) (*entity.Customer, error) {
	customer := s.factory.NewCustomer(input)
	if err := validateCustomer(customer); err != nil {
		return nil, err
	}

	err := s.store.Mutate(ctx, func(snap *entity.Snapshot) error {
		snap.Customers = append(snap.Customers, customer)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

// UpdateCustomer applies a partial update to a customer's contact details
func (s *CustomerService) UpdateCustomer(ctx context.Context, input *UpdateCustomerInput) (*entity.Customer, error) {
	var updated entity.Customer
	err := s.store.Mutate(ctx, func(snap *entity.Snapshot) error {
		i := snap.CustomerIndex(input.ID)
		if i < 0 {
			return apperror.NewNotFoundError("Customer")
		}

		next := input.Patch.Apply(snap.Customers[i])
		if err := validateCustomer(next); err != nil {
			return err
		}

		snap.Customers[i] = next
		updated = next
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteCustomer removes a customer and returns it. Transactions that
// reference the customer keep the id and the contact captured at the till.
func (s *CustomerService) DeleteCustomer(ctx context.Context, id string) (*entity.Customer, error) {
	var deleted entity.Customer
	err := s.store.Mutate(ctx, func(snap *entity.Snapshot) error {
		i := snap.CustomerIndex(id)
		if i < 0 {
			return apperror.NewNotFoundError("Customer")
		}
		deleted = snap.Customers[i]
		snap.Customers = append(snap.Customers[:i], snap.Customers[i+1:]...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &deleted, nil
}

// CustomerTransactions returns the purchase history of a customer
func (s *CustomerService) CustomerTransactions(ctx context.Context, id string) ([]entity.Transaction, error) {
	snap, err := s.store.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	if snap.CustomerIndex(id) < 0 {
		return nil, apperror.NewNotFoundError("Customer")
	}
	return analytics.CustomerTransactions(snap.Transactions, id), nil
}

// ExportCustomers writes every customer to w in the given format and returns
// the suggested download filename
func (s *CustomerService) ExportCustomers(ctx context.Context, w io.Writer, format export.Format) (string, error) {
	customers, err := s.store.Customers(ctx)
	if err != nil {
		return "", err
	}
	if err := export.Write(w, format, CustomerExportTable(customers)); err != nil {
		return "", err
	}
	return format.Filename(CustomerExportBaseName, s.factory.Now()), nil
}

// CustomerExportTable lays out customers as export rows, one per customer
func CustomerExportTable(customers []entity.Customer) export.Table {
	rows := make([][]any, 0, len(customers))
	for _, c := range customers {
		lastVisit := ""
		if c.LastVisit != nil {
			lastVisit = c.LastVisit.UTC().Format(time.DateOnly)
		}
		rows = append(rows, []any{
			c.Name,
			entity.StringValue(c.Email),
			entity.StringValue(c.Phone),
			entity.StringValue(c.Address),
			c.TotalSpent,
			c.VisitCount,
			lastVisit,
			analytics.LoyaltyTier(c.TotalSpent).String(),
		})
	}
	return export.Table{Sheet: "Customers", Headers: customerExportHeaders, Rows: rows}
}
