package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/gophsync/internal/dbx"
	"github.com/dmitrijs2005/gophsync/internal/server/repositories/blobs"
	"github.com/dmitrijs2005/gophsync/internal/server/repositories/users"
)

// RepositoryManager vends repositories bound to a DBTX, so services can run
// them either on the pool or inside dbx.WithTx.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Blobs(db dbx.DBTX) blobs.Repository
}
