package medicines

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/sankharanarayanan07/pharmacy-crud-app/internal/common"
	"github.com/sankharanarayanan07/pharmacy-crud-app/internal/dbx"
	"github.com/sankharanarayanan07/pharmacy-crud-app/internal/server/models"
)

const itemColumns = `id, user_name, age, contact, drug_name, medicine_type,
		 profile_image, document_proof, created_at, updated_at`

// PostgresRepository implements Repository over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanItem(s scanner) (*models.MedicineItem, error) {
	var item models.MedicineItem
	if err := s.Scan(
		&item.ID, &item.UserName, &item.Age, &item.Contact, &item.DrugName, &item.MedicineType,
		&item.ProfileImage, &item.DocumentProof, &item.CreatedAt, &item.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *PostgresRepository) Create(ctx context.Context, item *models.MedicineItem) (*models.MedicineItem, error) {
	query :=
		`INSERT INTO medicine_items (user_name, age, contact, drug_name, medicine_type, profile_image, document_proof)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id, created_at, updated_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		item.UserName, item.Age, item.Contact, item.DrugName, item.MedicineType,
		item.ProfileImage, item.DocumentProof,
	).Scan(&item.ID, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return item, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]*models.MedicineItem, error) {
	query := `SELECT ` + itemColumns + `
		 FROM medicine_items
		 ORDER BY id
		 `

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]*models.MedicineItem, 0)
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan error: %w", err)
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) GetForUpdate(ctx context.Context, id int64) (*models.MedicineItem, error) {
	query := `SELECT ` + itemColumns + `
		 FROM medicine_items
		 WHERE id = $1
		 FOR UPDATE
		 `

	item, err := scanItem(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return item, nil
}

func (r *PostgresRepository) Update(ctx context.Context, item *models.MedicineItem) (*models.MedicineItem, error) {
	query :=
		`UPDATE medicine_items SET
		 user_name = $2, age = $3, contact = $4, drug_name = $5, medicine_type = $6,
		 profile_image = COALESCE($7, profile_image),
		 document_proof = COALESCE($8, document_proof),
		 updated_at = now()
		 WHERE id = $1
		 RETURNING ` + itemColumns + `
		 `

	updated, err := scanItem(r.db.QueryRowContext(ctx, query,
		item.ID, item.UserName, item.Age, item.Contact, item.DrugName, item.MedicineType,
		item.ProfileImage, item.DocumentProof,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return updated, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id int64) (*models.MedicineItem, error) {
	query := `DELETE FROM medicine_items
		 WHERE id = $1
		 RETURNING ` + itemColumns + `
		 `

	item, err := scanItem(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return item, nil
}

func (r *PostgresRepository) AttachmentRefs(ctx context.Context) ([]string, error) {
	query :=
		`SELECT profile_image FROM medicine_items WHERE profile_image IS NOT NULL
		 UNION
		 SELECT document_proof FROM medicine_items WHERE document_proof IS NOT NULL
		 `

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var refs []string
	for rows.Next() {
		var ref string
		if err := rows.Scan(&ref); err != nil {
			return nil, fmt.Errorf("scan error: %w", err)
		}
		refs = append(refs, ref)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return refs, nil
}
