package repomanager

import (
	"context"
	"database/sql"

	"github.com/oneearth-admin/oeff-docs/internal/dbx"
	"github.com/oneearth-admin/oeff-docs/internal/server/repositories/records"
	"github.com/oneearth-admin/oeff-docs/internal/server/repositories/submissions"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Submissions(db dbx.DBTX) submissions.Repository
	Records(db dbx.DBTX) records.Repository
}
