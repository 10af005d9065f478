// Package storage holds the in-memory snapshot store and the backends it
// persists through.
package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/sangkips/retail-api/internal/domain/entity"
	"github.com/sangkips/retail-api/internal/domain/repository"
	"github.com/sangkips/retail-api/pkg/apperror"
)

// Store keeps the current snapshot in memory and serializes every write
// through a single lock, so concurrent mutations never lose each other's
// changes. Reads are served from memory.
type Store struct {
	mu       sync.RWMutex
	repo     repository.SnapshotRepository
	snapshot *entity.Snapshot
	// degraded is set while the backend could not be read; writes are refused
	// until a reload succeeds so an unreadable document is never overwritten.
	degraded bool
	lastErr  error
}

var _ repository.Store = (*Store)(nil)

// Open loads the snapshot from repo. A missing document is initialized with
// three empty collections. If the backend is unreadable the store starts
// degraded with an empty snapshot instead of failing.
func Open(ctx context.Context, repo repository.SnapshotRepository) *Store {
	s := &Store{repo: repo, snapshot: entity.NewSnapshot()}
	if err := s.load(ctx); err != nil {
		slog.Warn("storage unavailable, serving empty snapshot", "op", "storage.Open", "err", err)
	}
	return s
}

func (s *Store) load(ctx context.Context) error {
	const op = "storage.Store.load"
	log := slog.With("op", op)

	snap, err := s.repo.Load(ctx)
	switch {
	case errors.Is(err, repository.ErrSnapshotNotFound):
		snap = entity.NewSnapshot()
		if err := s.repo.Save(ctx, snap); err != nil {
			s.degraded, s.lastErr = true, err
			return fmt.Errorf("%s: initialize: %w", op, err)
		}
		log.Info("created new snapshot document")
	case err != nil:
		s.degraded, s.lastErr = true, err
		return fmt.Errorf("%s: %w", op, err)
	}

	snap.Normalize()
	s.snapshot = snap
	s.degraded, s.lastErr = false, nil
	log.Debug("snapshot loaded",
		"products", len(snap.Products),
		"customers", len(snap.Customers),
		"transactions", len(snap.Transactions),
	)
	return nil
}

// Reload rereads the backend. On failure the last-known-good snapshot is kept.
func (s *Store) Reload(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.load(ctx); err != nil {
		return fmt.Errorf("%w: %w", apperror.ErrStorageUnavailable, err)
	}
	return nil
}

// Healthy reports whether the backend was reachable on the last attempt
func (s *Store) Healthy() (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return !s.degraded, s.lastErr
}

func (s *Store) Products(ctx context.Context) ([]entity.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]entity.Product{}, s.snapshot.Products...), nil
}

func (s *Store) Customers(ctx context.Context) ([]entity.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]entity.Customer{}, s.snapshot.Customers...), nil
}

func (s *Store) Transactions(ctx context.Context) ([]entity.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]entity.Transaction{}, s.snapshot.Transactions...), nil
}

func (s *Store) Snapshot(ctx context.Context) (*entity.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot.Clone(), nil
}

func (s *Store) ReplaceProducts(ctx context.Context, products []entity.Product) error {
	return s.Mutate(ctx, func(snap *entity.Snapshot) error {
		snap.Products = append([]entity.Product{}, products...)
		return nil
	})
}

func (s *Store) ReplaceCustomers(ctx context.Context, customers []entity.Customer) error {
	return s.Mutate(ctx, func(snap *entity.Snapshot) error {
		snap.Customers = append([]entity.Customer{}, customers...)
		return nil
	})
}

func (s *Store) ReplaceTransactions(ctx context.Context, transactions []entity.Transaction) error {
	return s.Mutate(ctx, func(snap *entity.Snapshot) error {
		snap.Transactions = append([]entity.Transaction{}, transactions...)
		return nil
	})
}

// Mutate runs fn against a working copy under the write lock, persists the
// result, and only then makes it current. Errors from fn are returned as is;
// persistence failures are reported as apperror.ErrStorageUnavailable.
func (s *Store) Mutate(ctx context.Context, fn func(snap *entity.Snapshot) error) error {
	const op = "storage.Store.Mutate"

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.degraded {
		if err := s.load(ctx); err != nil {
			return fmt.Errorf("%w: %w", apperror.ErrStorageUnavailable, err)
		}
	}

	next := s.snapshot.Clone()
	if err := fn(next); err != nil {
		return err
	}
	next.Normalize()

	if err := s.repo.Save(ctx, next); err != nil {
		slog.Error("failed to persist snapshot", "op", op, "err", err)
		return fmt.Errorf("%w: %w", apperror.ErrStorageUnavailable, err)
	}

	s.snapshot = next
	return nil
}
