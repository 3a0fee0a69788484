package repomanager

import (
	"context"
	"database/sql"

	"github.com/sankharanarayanan07/pharmacy-crud-app/internal/dbx"
	"github.com/sankharanarayanan07/pharmacy-crud-app/internal/server/repositories/medicines"
	"github.com/sankharanarayanan07/pharmacy-crud-app/internal/server/repositories/users"
)

// RepositoryManager vends repositories bound to a DBTX, so the same
// repository code runs against *sql.DB or inside a transaction.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Medicines(db dbx.DBTX) medicines.Repository
}
