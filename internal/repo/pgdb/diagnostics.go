package pgdb

import (
	"tender-marketplace-api/pkg/postgres"
)

type DiagnosticsRepo struct {
	*postgres.Postgres
}

func NewDiagnosticsRepo(pg *postgres.Postgres) *DiagnosticsRepo {
	return &DiagnosticsRepo{pg}
}

func (r *DiagnosticsRepo) Ping() error {
	return r.DB.Ping()
}
