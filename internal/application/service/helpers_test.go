package service

import (
	"context"
	"testing"
	"time"

	"github.com/sangkips/retail-api/internal/domain/entity"
	"github.com/sangkips/retail-api/internal/infrastructure/storage"
	"github.com/sangkips/retail-api/pkg/apperror"
	"github.com/sangkips/retail-api/pkg/utils"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

type testEnv struct {
	repo    *storage.MemoryRepository
	store   *storage.Store
	factory *RecordFactory
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	repo := storage.NewMemoryRepository()
	return &testEnv{
		repo:    repo,
		store:   storage.Open(context.Background(), repo),
		factory: NewRecordFactory(utils.NewIDGenerator(), fixedClock),
	}
}

func (e *testEnv) seedProduct(t *testing.T, name, price string, quantity int) entity.Product {
	t.Helper()
	p, err := NewProductService(e.store, e.factory).CreateProduct(context.Background(), &CreateProductInput{
		Name: name, Price: decimal.RequireFromString(price), Quantity: quantity,
	})
	require.NoError(t, err)
	return *p
}

func (e *testEnv) seedCustomer(t *testing.T, name string) entity.Customer {
	t.Helper()
	c, err := NewCustomerService(e.store, e.factory).CreateCustomer(context.Background(), &CreateCustomerInput{Name: name})
	require.NoError(t, err)
	return *c
}

func appErr(t *testing.T, err error) *apperror.AppError {
	t.Helper()
	require.Error(t, err)
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	return appErr
}

func fieldNames(e *apperror.AppError) []string {
	out := make([]string, len(e.Errors))
	for i, f := range e.Errors {
		out[i] = f.Field
	}
	return out
}

func ptr[T any](v T) *T { return &v }

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, txn entity.Transaction) error {
	args := m.Called(ctx, txn)
	return args.Error(0)
}

func (m *MockPublisher) Close() {
	m.Called()
}
