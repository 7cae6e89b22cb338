package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/favfood/internal/dbx"
	"github.com/dmitrijs2005/favfood/internal/server/repositories/documents"
	"github.com/dmitrijs2005/favfood/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/favfood/internal/server/repositories/users"
)

// RepositoryManager hands out repositories bound to a DBTX, so services can
// use the same repositories with *sql.DB or inside dbx.WithTx.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	RefreshTokens(db dbx.DBTX) refreshtokens.Repository
	Documents(db dbx.DBTX) documents.Repository
}
