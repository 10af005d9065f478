package repository

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/sangkips/retail-api/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdempotencyRepository(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	repo := newIdempotencyRepository(func() time.Time { return now })

	first := &entity.IdempotencyKey{
		Key: "abc", Scope: "10.0.0.1", Endpoint: "POST /api/transactions",
		CreatedAt: now, ExpiresAt: now.Add(24 * time.Hour),
	}

	t.Run("ReserveClaimsKey", func(t *testing.T) {
		existing, ok, err := repo.Reserve(ctx, first)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Nil(t, existing)
	})

	t.Run("SecondReserveSeesPending", func(t *testing.T) {
		existing, ok, err := repo.Reserve(ctx, first)
		require.NoError(t, err)
		assert.False(t, ok)
		require.NotNil(t, existing)
		assert.True(t, existing.Pending)
	})

	t.Run("CreateCompletesReservation", func(t *testing.T) {
		done := *first
		done.ResponseCode = 201
		done.ResponseBody = `{"id":"t1"}`
		require.NoError(t, repo.Create(ctx, &done))

		existing, ok, err := repo.Reserve(ctx, first)
		require.NoError(t, err)
		assert.False(t, ok)
		require.NotNil(t, existing)
		assert.False(t, existing.Pending)
		assert.Equal(t, `{"id":"t1"}`, existing.ResponseBody)
	})

	t.Run("ScopedPerClient", func(t *testing.T) {
		other := *first
		other.Scope = "10.0.0.2"
		_, ok, err := repo.Reserve(ctx, &other)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("FirstResponseWins", func(t *testing.T) {
		second := *first
		second.ResponseCode = 201
		second.ResponseBody = `{"id":"t2"}`
		require.NoError(t, repo.Create(ctx, &second))

		existing, _, _ := repo.Reserve(ctx, first)
		assert.Equal(t, `{"id":"t1"}`, existing.ResponseBody)
	})

	t.Run("ReleaseKeepsCompletedKeys", func(t *testing.T) {
		require.NoError(t, repo.Release(ctx, "abc", "10.0.0.1"))
		existing, ok, _ := repo.Reserve(ctx, first)
		assert.False(t, ok)
		assert.Equal(t, `{"id":"t1"}`, existing.ResponseBody)
	})

	t.Run("ReleaseDropsPendingKeys", func(t *testing.T) {
		require.NoError(t, repo.Release(ctx, "abc", "10.0.0.2"))
		other := *first
		other.Scope = "10.0.0.2"
		_, ok, err := repo.Reserve(ctx, &other)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("ExpiredKeysAreReusableAndPurged", func(t *testing.T) {
		now = now.Add(25 * time.Hour)

		require.NoError(t, repo.DeleteExpired(ctx))
		assert.Empty(t, repo.keys)

		fresh := *first
		fresh.ExpiresAt = now.Add(24 * time.Hour)
		_, ok, err := repo.Reserve(ctx, &fresh)
		require.NoError(t, err)
		assert.True(t, ok)
	})
}

func TestIdempotencyRepositoryConcurrentReserve(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	repo := newIdempotencyRepository(func() time.Time { return now })

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		wins int
	)
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, ok, err := repo.Reserve(ctx, &entity.IdempotencyKey{
				Key: "same", Scope: "10.0.0.1", ExpiresAt: now.Add(time.Hour),
			})
			assert.NoError(t, err)
			if ok {
				mu.Lock()
				wins++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, wins)
}
