// Package repomanager vends the repositories over a shared DB handle so
// services can run several of them inside one transaction.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/provcred/credportal/internal/dbx"
	"github.com/provcred/credportal/internal/server/repositories/documents"
	"github.com/provcred/credportal/internal/server/repositories/drafts"
	"github.com/provcred/credportal/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(ctx context.Context, db *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Drafts(db dbx.DBTX) drafts.Repository
	Documents(db dbx.DBTX) documents.Repository
}
