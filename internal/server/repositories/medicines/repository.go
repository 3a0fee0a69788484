// Package medicines is the inventory store: persistence of medicine records.
package medicines

import (
	"context"

	"github.com/sankharanarayanan07/pharmacy-crud-app/internal/server/models"
)

type Repository interface {
	// Create inserts item and fills in ID, CreatedAt and UpdatedAt.
	Create(ctx context.Context, item *models.MedicineItem) (*models.MedicineItem, error)
	// List returns every record ordered by id.
	List(ctx context.Context) ([]*models.MedicineItem, error)
	// GetForUpdate reads one record and locks its row until the surrounding
	// transaction ends; common.ErrorNotFound when absent.
	GetForUpdate(ctx context.Context, id int64) (*models.MedicineItem, error)
	// Update overwrites every scalar field of the record item.ID. A nil
	// attachment path keeps the stored one. Returns the record as stored.
	Update(ctx context.Context, item *models.MedicineItem) (*models.MedicineItem, error)
	// Delete removes the record and returns it as it was.
	Delete(ctx context.Context, id int64) (*models.MedicineItem, error)
	// AttachmentRefs returns every attachment path still referenced.
	AttachmentRefs(ctx context.Context) ([]string, error)
}
