package repomanager

import (
	"context"
	"database/sql"

	"github.com/chenterphai/article-stack/internal/dbx"
	"github.com/chenterphai/article-stack/internal/server/repositories/sessions"
	"github.com/chenterphai/article-stack/internal/server/repositories/users"
)

// RepositoryManager vends repositories bound to a DBTX, so services can
// run the same repository code on the pool connection or inside a
// transaction.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Sessions(db dbx.DBTX) sessions.Repository
}
