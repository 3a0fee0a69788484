// Package users is the credential store: persistence of user accounts.
package users

import (
	"context"

	"github.com/sankharanarayanan07/pharmacy-crud-app/internal/server/models"
)

type Repository interface {
	// Create inserts the user and fills in ID and CreatedAt. A taken
	// username yields common.ErrorAlreadyExists.
	Create(ctx context.Context, user *models.User) (*models.User, error)
	// GetUserByLogin looks up a user by exact username; common.ErrorNotFound
	// when absent.
	GetUserByLogin(ctx context.Context, login string) (*models.User, error)
}
