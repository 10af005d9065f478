package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/sangkips/retail-api/internal/domain/entity"
	"github.com/sangkips/retail-api/internal/domain/enum"
	"github.com/sangkips/retail-api/pkg/apperror"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func sampleSnapshot() *entity.Snapshot {
	sold := time.Date(2024, 3, 2, 14, 30, 0, 0, time.UTC)
	visit := time.Date(2024, 3, 2, 14, 31, 5, 123000000, time.UTC)
	return &entity.Snapshot{
		Products: []entity.Product{
			{
				ID: "p1", Name: "Flat white", Description: "Double shot", Category: "Beverages",
				Price: decimal.RequireFromString("32.5"), Quantity: 12, MinStockLevel: 5,
				LastUpdated: "2024-03-01", LastSold: &sold,
			},
			{
				ID: "p2", Name: "Muffin", Category: "Bakery",
				Price: decimal.NewFromInt(18), Quantity: 0, MinStockLevel: 3,
				LastUpdated: "2024-02-28",
			},
		},
		Customers: []entity.Customer{
			{
				ID: "c1", Name: "Thandi", Email: strPtr("thandi@example.com"), Phone: strPtr(""),
				VisitCount: 3, TotalSpent: decimal.RequireFromString("210.75"), LastVisit: &visit,
			},
			{ID: "c2", Name: "Walk-in"},
		},
		Transactions: []entity.Transaction{
			{
				ID: "t1", Type: enum.TransactionTypeSale, ProductID: "p1", ProductName: "Flat white",
				ProductPrice: decimal.RequireFromString("32.5"), Quantity: 2,
				Total: decimal.RequireFromString("65"), Date: visit,
				CustomerID: strPtr("c1"),
				Customer:   &entity.CustomerContact{Name: "thandi", Email: "thandi@example.com"},
			},
			{
				ID: "t2", Type: enum.TransactionTypeRestock, ProductID: "p2", ProductName: "Muffin",
				ProductPrice: decimal.NewFromInt(18), Quantity: 10,
				Total: decimal.NewFromInt(180), Date: sold,
			},
		},
	}
}

func TestOpen(t *testing.T) {
	t.Run("CreatesMissingDocument", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "db.json")
		store := Open(context.Background(), NewJSONFileRepository(path))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.JSONEq(t, `{"products":[],"customers":[],"transactions":[]}`, string(data))

		healthy, _ := store.Healthy()
		assert.True(t, healthy)
		products, err := store.Products(context.Background())
		require.NoError(t, err)
		assert.Empty(t, products)
	})

	t.Run("UnreadableDocumentStartsDegraded", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "db.json")
		require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

		store := Open(context.Background(), NewJSONFileRepository(path))
		healthy, lastErr := store.Healthy()
		assert.False(t, healthy)
		assert.Error(t, lastErr)

		snap, err := store.Snapshot(context.Background())
		require.NoError(t, err)
		assert.Empty(t, snap.Products)

		err = store.Mutate(context.Background(), func(s *entity.Snapshot) error {
			s.Products = append(s.Products, entity.Product{ID: "x"})
			return nil
		})
		require.Error(t, err)
		assert.Equal(t, 503, apperror.GetAppError(err).Code)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "{not json", string(data), "unreadable document must not be overwritten")
	})
}

func TestRoundTrip(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	first := NewJSONFileRepository(filepath.Join(dir, "first.json"))
	second := NewJSONFileRepository(filepath.Join(dir, "second.json"))

	require.NoError(t, first.Save(ctx, sampleSnapshot()))
	loaded, err := first.Load(ctx)
	require.NoError(t, err)
	require.NoError(t, second.Save(ctx, loaded))

	a, err := os.ReadFile(first.Path())
	require.NoError(t, err)
	b, err := os.ReadFile(second.Path())
	require.NoError(t, err)
	assert.Equal(t, string(a), string(b))

	require.Len(t, loaded.Products, 2)
	assert.True(t, loaded.Products[0].Price.Equal(decimal.RequireFromString("32.5")))
	require.NotNil(t, loaded.Products[0].LastSold)
	assert.Nil(t, loaded.Products[1].LastSold)
	require.Len(t, loaded.Customers, 2)
	assert.Equal(t, "", entity.StringValue(loaded.Customers[0].Phone))
	assert.NotNil(t, loaded.Customers[0].Phone)
	assert.Nil(t, loaded.Customers[1].LastVisit)
	require.Len(t, loaded.Transactions, 2)
	assert.Equal(t, "c1", *loaded.Transactions[0].CustomerID)
	assert.Equal(t, enum.TransactionTypeRestock, loaded.Transactions[1].Type)
}

func TestMillisecondTimestamps(t *testing.T) {
	ctx := context.Background()
	repo := NewJSONFileRepository(filepath.Join(t.TempDir(), "db.json"))
	doc := `{"products":[],"customers":[],"transactions":[` +
		`{"id":"t1","type":"sale","productId":"p1","quantity":1,"total":10,"date":"2024-03-02T14:30:05.000Z"},` +
		`{"id":"t2","type":"sale","productId":"p1","quantity":1,"total":10,"date":"2024-03-02T14:30:05.250Z"}]}`
	require.NoError(t, os.WriteFile(repo.Path(), []byte(doc), 0o644))

	loaded, err := repo.Load(ctx)
	require.NoError(t, err)
	require.Len(t, loaded.Transactions, 2)
	assert.True(t, loaded.Transactions[0].Date.Equal(time.Date(2024, 3, 2, 14, 30, 5, 0, time.UTC)))
	assert.True(t, loaded.Transactions[1].Date.Equal(time.Date(2024, 3, 2, 14, 30, 5, 250000000, time.UTC)))

	require.NoError(t, repo.Save(ctx, loaded))
	saved, err := os.ReadFile(repo.Path())
	require.NoError(t, err)
	// zero fractions are dropped on re-save; the instant is unchanged
	assert.Contains(t, string(saved), `"2024-03-02T14:30:05Z"`)
	assert.Contains(t, string(saved), `"2024-03-02T14:30:05.25Z"`)
}

func TestStoreMutate(t *testing.T) {
	ctx := context.Background()

	t.Run("CommitsAndPersists", func(t *testing.T) {
		repo := NewMemoryRepository()
		store := Open(ctx, repo)

		err := store.Mutate(ctx, func(s *entity.Snapshot) error {
			s.Products = append(s.Products, entity.Product{ID: "p1", Name: "Tea", Quantity: 4})
			return nil
		})
		require.NoError(t, err)

		reopened := Open(ctx, repo)
		products, err := reopened.Products(ctx)
		require.NoError(t, err)
		require.Len(t, products, 1)
		assert.Equal(t, "Tea", products[0].Name)
	})

	t.Run("CallbackErrorLeavesStateUnchanged", func(t *testing.T) {
		repo := NewMemoryRepository()
		store := Open(ctx, repo)
		require.NoError(t, store.ReplaceProducts(ctx, []entity.Product{{ID: "p1", Quantity: 5}}))
		before := repo.Bytes()

		boom := errors.New("boom")
		err := store.Mutate(ctx, func(s *entity.Snapshot) error {
			s.Products[0].Quantity = 0
			s.Transactions = append(s.Transactions, entity.Transaction{ID: "t1"})
			return boom
		})
		require.ErrorIs(t, err, boom)

		products, _ := store.Products(ctx)
		assert.Equal(t, 5, products[0].Quantity)
		transactions, _ := store.Transactions(ctx)
		assert.Empty(t, transactions)
		assert.Equal(t, before, repo.Bytes())
	})

	t.Run("SaveFailureLeavesStateUnchanged", func(t *testing.T) {
		repo := NewMemoryRepository()
		store := Open(ctx, repo)
		require.NoError(t, store.ReplaceCustomers(ctx, []entity.Customer{{ID: "c1", Name: "Ann"}}))

		repo.SetErr(errors.New("disk full"))
		err := store.ReplaceCustomers(ctx, nil)
		require.Error(t, err)
		assert.ErrorIs(t, err, apperror.ErrStorageUnavailable)

		customers, _ := store.Customers(ctx)
		require.Len(t, customers, 1)
		assert.Equal(t, "Ann", customers[0].Name)
	})

	t.Run("ReadsAreCopies", func(t *testing.T) {
		store := Open(ctx, NewMemoryRepository())
		require.NoError(t, store.ReplaceProducts(ctx, []entity.Product{{ID: "p1", Quantity: 5}}))

		products, _ := store.Products(ctx)
		products[0].Quantity = 99

		again, _ := store.Products(ctx)
		assert.Equal(t, 5, again[0].Quantity)
	})

	t.Run("ConcurrentWritesAreSerialized", func(t *testing.T) {
		store := Open(ctx, NewMemoryRepository())
		require.NoError(t, store.ReplaceProducts(ctx, []entity.Product{{ID: "p1", Quantity: 0}}))

		const writers = 50
		var wg sync.WaitGroup
		for i := 0; i < writers; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_ = store.Mutate(ctx, func(s *entity.Snapshot) error {
					s.Products[0].Quantity++
					return nil
				})
			}()
		}
		wg.Wait()

		products, _ := store.Products(ctx)
		assert.Equal(t, writers, products[0].Quantity)
	})

	t.Run("ReloadKeepsLastKnownGood", func(t *testing.T) {
		repo := NewMemoryRepository()
		store := Open(ctx, repo)
		require.NoError(t, store.ReplaceProducts(ctx, []entity.Product{{ID: "p1"}}))

		repo.SetErr(errors.New("unreachable"))
		require.Error(t, store.Reload(ctx))

		products, err := store.Products(ctx)
		require.NoError(t, err)
		assert.Len(t, products, 1)

		repo.SetErr(nil)
		require.NoError(t, store.Reload(ctx))
		healthy, _ := store.Healthy()
		assert.True(t, healthy)
	})
}
