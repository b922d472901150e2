package users

import (
	"context"

	"github.com/dmitrijs2005/apptbook/internal/server/models"
)

// Repository is the credential store.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByUsername(ctx context.Context, userName string) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]*models.User, error)
	ListEmployees(ctx context.Context) ([]*models.User, error)
	UsernameByID(ctx context.Context, id int64) (string, error)
}
