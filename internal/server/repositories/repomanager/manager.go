// Package repomanager wires the credential and scheduling stores to a
// storage backend and runs multi-step operations atomically against it.
package repomanager

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/apptbook/internal/server/repositories/appointments"
	"github.com/dmitrijs2005/apptbook/internal/server/repositories/users"
)

const (
	memoryScheme = "memory://"
)

// Repositories gives access to both stores bound to one handle: the shared
// connection pool or an open transaction.
type Repositories interface {
	Users() users.Repository
	Appointments() appointments.Repository
}

type RepositoryManager interface {
	Repositories
	// InTx runs fn with stores bound to a single transaction. fn's error
	// rolls the transaction back and is returned unchanged.
	InTx(ctx context.Context, fn func(ctx context.Context, r Repositories) error) error
	RunMigrations(ctx context.Context) error
	Close() error
}

// New selects a backend by DSN: "memory://" keeps everything in process,
// "postgres://" and "postgresql://" open a pgx pool.
func New(dsn string) (RepositoryManager, error) {
	switch {
	case dsn == "" || strings.HasPrefix(dsn, memoryScheme):
		return NewMemoryRepositoryManager(), nil
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"):
		return OpenPostgres(dsn)
	default:
		return nil, fmt.Errorf("unsupported database DSN %q", dsn)
	}
}
