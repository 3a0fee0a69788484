package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"github.com/sankharanarayanan07/pharmacy-crud-app/internal/common"
	"github.com/sankharanarayanan07/pharmacy-crud-app/internal/dbx"
	"github.com/sankharanarayanan07/pharmacy-crud-app/internal/logging"
	"github.com/sankharanarayanan07/pharmacy-crud-app/internal/server/config"
	"github.com/sankharanarayanan07/pharmacy-crud-app/internal/server/models"
	"github.com/sankharanarayanan07/pharmacy-crud-app/internal/server/repositories/repomanager"
	"github.com/sankharanarayanan07/pharmacy-crud-app/internal/server/storage"
)

// MedicineInput is the form sent on create and update. Age arrives as text
// and must parse as a base-10 integer.
type MedicineInput struct {
	UserName     string `json:"userName" validate:"required"`
	Age          string `json:"age" validate:"required"`
	Contact      string `json:"contact" validate:"required"`
	DrugName     string `json:"drugName" validate:"required"`
	MedicineType string `json:"medicineType" validate:"required"`
}

// Attachments holds the optional files of a request; nil means "not sent".
type Attachments struct {
	ProfileImage  *storage.Upload
	DocumentProof *storage.Upload
}

func (a Attachments) empty() bool {
	return a.ProfileImage == nil && a.DocumentProof == nil
}

// MedicineService runs the inventory lifecycle: validate, store attachments,
// then write the record.
type MedicineService struct {
	db               *sql.DB
	repomanager      repomanager.RepositoryManager
	attachments      *storage.AttachmentStore
	pruneAttachments bool
	logger           logging.Logger
}

func NewMedicineService(db *sql.DB, m repomanager.RepositoryManager, a *storage.AttachmentStore, cfg *config.Config, l logging.Logger) *MedicineService {
	return &MedicineService{
		db:               db,
		repomanager:      m,
		attachments:      a,
		pruneAttachments: cfg.PruneAttachments,
		logger:           l.With("module", "medicine_service"),
	}
}

func (in MedicineInput) toItem() (*models.MedicineItem, error) {
	if err := validateStruct(in); err != nil {
		return nil, err
	}

	// age is an INTEGER column
	age, err := strconv.ParseInt(in.Age, 10, 32)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return nil, fmt.Errorf("%w: age is out of range", common.ErrorValidation)
		}
		return nil, fmt.Errorf("%w: age must be an integer", common.ErrorValidation)
	}

	return &models.MedicineItem{
		UserName:     in.UserName,
		Age:          int(age),
		Contact:      in.Contact,
		DrugName:     in.DrugName,
		MedicineType: in.MedicineType,
	}, nil
}

// storeAttachments writes the supplied files and sets the matching paths on
// item. Fields without a file stay nil.
func (s *MedicineService) storeAttachments(ctx context.Context, item *models.MedicineItem, a Attachments) error {
	if a.ProfileImage != nil {
		p, err := s.attachments.Store(ctx, a.ProfileImage)
		if err != nil {
			return err
		}
		item.ProfileImage = &p
	}
	if a.DocumentProof != nil {
		p, err := s.attachments.Store(ctx, a.DocumentProof)
		if err != nil {
			return err
		}
		item.DocumentProof = &p
	}
	return nil
}

// Create validates in, stores the attachments and inserts the record.
func (s *MedicineService) Create(ctx context.Context, in MedicineInput, a Attachments) (*models.MedicineItem, error) {
	item, err := in.toItem()
	if err != nil {
		return nil, err
	}

	if err := s.storeAttachments(ctx, item, a); err != nil {
		s.prune(ctx, item.AttachmentRefs()...)
		return nil, err
	}

	created, err := s.repomanager.Medicines(s.db).Create(ctx, item)
	if err != nil {
		s.prune(ctx, item.AttachmentRefs()...)
		return nil, err
	}
	return created, nil
}

// List returns every record.
func (s *MedicineService) List(ctx context.Context) ([]*models.MedicineItem, error) {
	return s.repomanager.Medicines(s.db).List(ctx)
}

// Update replaces every scalar field of record id. An attachment reference
// changes only when a new file for that field is supplied.
func (s *MedicineService) Update(ctx context.Context, id int64, in MedicineInput, a Attachments) (*models.MedicineItem, error) {
	item, err := in.toItem()
	if err != nil {
		return nil, err
	}
	item.ID = id

	var before, after *models.MedicineItem
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Medicines(tx)

		var err error
		if before, err = repo.GetForUpdate(ctx, id); err != nil {
			return err
		}
		if err := s.storeAttachments(ctx, item, a); err != nil {
			return err
		}
		after, err = repo.Update(ctx, item)
		return err
	})
	if err != nil {
		if !a.empty() {
			s.prune(ctx, item.AttachmentRefs()...)
		}
		return nil, err
	}

	s.prune(ctx, replaced(before.ProfileImage, after.ProfileImage)...)
	s.prune(ctx, replaced(before.DocumentProof, after.DocumentProof)...)

	return after, nil
}

// Delete removes record id for good.
func (s *MedicineService) Delete(ctx context.Context, id int64) error {
	deleted, err := s.repomanager.Medicines(s.db).Delete(ctx, id)
	if err != nil {
		return err
	}
	s.prune(ctx, deleted.AttachmentRefs()...)
	return nil
}

// prune removes attachment objects that no record points at any more. It is
// a no-op unless PruneAttachments is set; failures are only logged.
func (s *MedicineService) prune(ctx context.Context, refs ...string) {
	if !s.pruneAttachments {
		return
	}
	for _, ref := range refs {
		if err := s.attachments.Remove(ctx, ref); err != nil {
			s.logger.Warn(ctx, "attachment prune failed", "path", ref, "error", err)
		}
	}
}

func replaced(before, after *string) []string {
	if before == nil || after == nil || *before == *after {
		return nil
	}
	return []string{*before}
}
