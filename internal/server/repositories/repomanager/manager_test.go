package repomanager

import (
	"context"
	"errors"
	"testing"

	"github.com/dmitrijs2005/apptbook/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_SelectsBackend(t *testing.T) {
	m, err := New("memory://")
	require.NoError(t, err)
	assert.IsType(t, &MemoryRepositoryManager{}, m)

	m, err = New("")
	require.NoError(t, err)
	assert.IsType(t, &MemoryRepositoryManager{}, m)

	m, err = New("postgres://u:p@localhost:5432/appt?sslmode=disable")
	require.NoError(t, err)
	assert.IsType(t, &PostgresRepositoryManager{}, m)
	require.NoError(t, m.Close())

	_, err = New("mysql://localhost")
	assert.Error(t, err)
}

func TestMemory_InTxSharesStores(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryRepositoryManager()
	require.NoError(t, m.RunMigrations(ctx))

	err := m.InTx(ctx, func(ctx context.Context, r Repositories) error {
		_, err := r.Users().Create(ctx, &models.User{UserName: "ann", Role: models.RoleUser})
		return err
	})
	require.NoError(t, err)

	u, err := m.Users().GetByUsername(ctx, "ann")
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, u.Role)
}

func TestMemory_InTxPropagatesError(t *testing.T) {
	boom := errors.New("boom")
	m := NewMemoryRepositoryManager()

	err := m.InTx(context.Background(), func(ctx context.Context, r Repositories) error { return boom })
	assert.ErrorIs(t, err, boom)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	called := false
	err = m.InTx(ctx, func(ctx context.Context, r Repositories) error { called = true; return nil })
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}
