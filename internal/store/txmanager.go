package store

import (
	"context"
	"sync"
)

//go:generate mockgen -source=txmanager.go -destination=mock_txmanager.go -package=store

type TransactionalFn func(ctx context.Context) error

// TXManager runs fn as one serialized unit of work. Repositories touched inside
// fn see no interleaving writes from other Begin calls on the same manager.
type TXManager interface {
	Begin(ctx context.Context, fn TransactionalFn) error
}

type LockManager struct {
	mu sync.Mutex
}

func NewTXManager() *LockManager {
	return &LockManager{}
}

func (m *LockManager) Begin(ctx context.Context, fn TransactionalFn) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return fn(ctx)
}
