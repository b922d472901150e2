package repomanager

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/apptbook/internal/server/repositories/appointments"
	"github.com/dmitrijs2005/apptbook/internal/server/repositories/memory"
	"github.com/dmitrijs2005/apptbook/internal/server/repositories/users"
)

// MemoryRepositoryManager keeps all data in process. Transactions are
// serialized by a single mutex; there is no rollback.
type MemoryRepositoryManager struct {
	store *memory.Store
	txMu  sync.Mutex
}

func NewMemoryRepositoryManager() *MemoryRepositoryManager {
	return &MemoryRepositoryManager{store: memory.NewStore()}
}

func (m *MemoryRepositoryManager) Users() users.Repository {
	return m.store.Users()
}

func (m *MemoryRepositoryManager) Appointments() appointments.Repository {
	return m.store.Appointments()
}

func (m *MemoryRepositoryManager) InTx(ctx context.Context, fn func(ctx context.Context, r Repositories) error) error {
	m.txMu.Lock()
	defer m.txMu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	return fn(ctx, m)
}

func (m *MemoryRepositoryManager) RunMigrations(ctx context.Context) error {
	return nil
}

func (m *MemoryRepositoryManager) Close() error {
	return nil
}
