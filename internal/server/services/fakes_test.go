package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/sankharanarayanan07/pharmacy-crud-app/internal/common"
	"github.com/sankharanarayanan07/pharmacy-crud-app/internal/dbx"
	"github.com/sankharanarayanan07/pharmacy-crud-app/internal/logging"
	"github.com/sankharanarayanan07/pharmacy-crud-app/internal/server/config"
	"github.com/sankharanarayanan07/pharmacy-crud-app/internal/server/models"
	medicinesrepo "github.com/sankharanarayanan07/pharmacy-crud-app/internal/server/repositories/medicines"
	usersrepo "github.com/sankharanarayanan07/pharmacy-crud-app/internal/server/repositories/users"
	"github.com/sankharanarayanan07/pharmacy-crud-app/internal/server/storage"
)

var errBoom = errors.New("boom")

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

// fakeUsersRepo is an in-memory credential store keyed by username.
type fakeUsersRepo struct {
	byName    map[string]*models.User
	nextID    int
	createErr error
	getErr    error
}

func newFakeUsersRepo() *fakeUsersRepo {
	return &fakeUsersRepo{byName: map[string]*models.User{}}
}

func (f *fakeUsersRepo) Create(_ context.Context, u *models.User) (*models.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	if _, ok := f.byName[u.UserName]; ok {
		return nil, common.ErrorAlreadyExists
	}
	f.nextID++
	u.ID = fmt.Sprintf("user-%d", f.nextID)
	u.CreatedAt = time.Now()
	f.byName[u.UserName] = u
	return u, nil
}

func (f *fakeUsersRepo) GetUserByLogin(_ context.Context, name string) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	u, ok := f.byName[name]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return u, nil
}

// fakeMedicinesRepo is an in-memory inventory store with the same
// keep-on-nil attachment semantics as the SQL implementation.
type fakeMedicinesRepo struct {
	items     map[int64]*models.MedicineItem
	order     []int64
	nextID    int64
	createErr error
	updateErr error
}

func newFakeMedicinesRepo() *fakeMedicinesRepo {
	return &fakeMedicinesRepo{items: map[int64]*models.MedicineItem{}}
}

func clone(m *models.MedicineItem) *models.MedicineItem {
	c := *m
	return &c
}

func (f *fakeMedicinesRepo) Create(_ context.Context, item *models.MedicineItem) (*models.MedicineItem, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.nextID++
	item.ID = f.nextID
	item.CreatedAt = time.Now()
	item.UpdatedAt = item.CreatedAt
	f.items[item.ID] = clone(item)
	f.order = append(f.order, item.ID)
	return item, nil
}

func (f *fakeMedicinesRepo) List(context.Context) ([]*models.MedicineItem, error) {
	out := make([]*models.MedicineItem, 0, len(f.order))
	for _, id := range f.order {
		if it, ok := f.items[id]; ok {
			out = append(out, clone(it))
		}
	}
	return out, nil
}

func (f *fakeMedicinesRepo) GetForUpdate(_ context.Context, id int64) (*models.MedicineItem, error) {
	it, ok := f.items[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return clone(it), nil
}

func (f *fakeMedicinesRepo) Update(_ context.Context, item *models.MedicineItem) (*models.MedicineItem, error) {
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	cur, ok := f.items[item.ID]
	if !ok {
		return nil, common.ErrorNotFound
	}
	next := clone(item)
	if next.ProfileImage == nil {
		next.ProfileImage = cur.ProfileImage
	}
	if next.DocumentProof == nil {
		next.DocumentProof = cur.DocumentProof
	}
	next.CreatedAt = cur.CreatedAt
	next.UpdatedAt = time.Now()
	f.items[item.ID] = next
	return clone(next), nil
}

func (f *fakeMedicinesRepo) Delete(_ context.Context, id int64) (*models.MedicineItem, error) {
	it, ok := f.items[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	delete(f.items, id)
	return it, nil
}

func (f *fakeMedicinesRepo) AttachmentRefs(context.Context) ([]string, error) {
	var refs []string
	for _, it := range f.items {
		refs = append(refs, it.AttachmentRefs()...)
	}
	return refs, nil
}

type fakeRepoManager struct {
	u *fakeUsersRepo
	m *fakeMedicinesRepo
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Users(dbx.DBTX) usersrepo.Repository         { return m.u }
func (m *fakeRepoManager) Medicines(dbx.DBTX) medicinesrepo.Repository { return m.m }

func testConfig() *config.Config {
	return &config.Config{
		SecretKey:                   "k",
		AccessTokenValidityDuration: time.Hour,
	}
}

func newLocalStore(t *testing.T) (*storage.AttachmentStore, *storage.LocalBackend) {
	t.Helper()
	b, err := storage.NewLocalBackend(filepath.Join(t.TempDir(), "uploads"))
	if err != nil {
		t.Fatalf("NewLocalBackend: %v", err)
	}
	return storage.NewAttachmentStore(b), b
}

func discardLogger() logging.Logger { return logging.Discard() }
