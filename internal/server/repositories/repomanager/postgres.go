package repomanager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/apptbook/internal/dbx"
	"github.com/dmitrijs2005/apptbook/internal/server/migrations"
	"github.com/dmitrijs2005/apptbook/internal/server/repositories/appointments"
	"github.com/dmitrijs2005/apptbook/internal/server/repositories/users"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// maxTxAttempts bounds retries of a serializable transaction that lost a
// conflict to a concurrent one.
const maxTxAttempts = 3

// PostgresRepositoryManager vends PostgreSQL-backed stores.
type PostgresRepositoryManager struct {
	db *sql.DB
}

type pgRepositories struct {
	db dbx.DBTX
}

func (r pgRepositories) Users() users.Repository {
	return users.NewPostgresRepository(r.db)
}

func (r pgRepositories) Appointments() appointments.Repository {
	return appointments.NewPostgresRepository(r.db)
}

// Users returns a users.Repository bound to the pool.
func (m *PostgresRepositoryManager) Users() users.Repository {
	return users.NewPostgresRepository(m.db)
}

// Appointments returns an appointments.Repository bound to the pool.
func (m *PostgresRepositoryManager) Appointments() appointments.Repository {
	return appointments.NewPostgresRepository(m.db)
}

// InTx runs fn in a serializable transaction, retrying on serialization
// failures.
func (m *PostgresRepositoryManager) InTx(ctx context.Context, fn func(ctx context.Context, r Repositories) error) error {
	var err error
	for attempt := 0; attempt < maxTxAttempts; attempt++ {
		err = dbx.WithTx(ctx, m.db, dbx.Serializable, func(ctx context.Context, tx dbx.DBTX) error {
			return fn(ctx, pgRepositories{db: tx})
		})
		if !dbx.IsSerializationFailure(err) {
			return err
		}
	}
	return fmt.Errorf("transaction retries exhausted: %w", err)
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// RunMigrations sets up goose with the embedded migrations and applies them.
func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}
	if err := gooseUpContext(ctx, m.db, "."); err != nil {
		return err
	}
	return nil
}

func (m *PostgresRepositoryManager) Close() error {
	return m.db.Close()
}

// NewPostgresRepositoryManager wraps an already opened pool.
func NewPostgresRepositoryManager(db *sql.DB) (*PostgresRepositoryManager, error) {
	if db == nil {
		return nil, errors.New("nil database handle")
	}
	return &PostgresRepositoryManager{db: db}, nil
}

// OpenPostgres opens a pgx pool for dsn.
func OpenPostgres(dsn string) (*PostgresRepositoryManager, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}
	return NewPostgresRepositoryManager(db)
}
