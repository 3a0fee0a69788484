package client

import (
	"context"

	"github.com/sankharanarayanan07/pharmacy-crud-app/internal/client/models"
)

type Client interface {
	Register(ctx context.Context, username string, password []byte) error
	// Login stores the returned token for later calls and returns it.
	Login(ctx context.Context, username string, password []byte) (string, error)
	SetToken(token string)
	Ping(ctx context.Context) error
	List(ctx context.Context) ([]models.Medicine, error)
	Create(ctx context.Context, f models.MedicineForm) (*models.Medicine, error)
	Update(ctx context.Context, id int64, f models.MedicineForm) (*models.Medicine, error)
	Delete(ctx context.Context, id int64) error
}
