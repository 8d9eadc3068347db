// Package repomanager vends repository implementations bound to a DBTX and
// runs the schema migrations for the configured dialect.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/postbox/internal/dbx"
	"github.com/dmitrijs2005/postbox/internal/server/repositories/messages"
	"github.com/dmitrijs2005/postbox/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Messages(db dbx.DBTX) messages.Repository
}
