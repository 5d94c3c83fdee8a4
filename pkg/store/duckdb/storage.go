package duckdb

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"

	"github.com/marcboeker/go-duckdb/v2"
)

const TokensTableSchema = `
	CREATE TABLE IF NOT EXISTS tokens (
		profile VARCHAR NOT NULL,
		access_token VARCHAR NOT NULL,
		scopes VARCHAR,
		expires_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (profile)
	);
`
const ReportsTableSchema = `
	CREATE TABLE IF NOT EXISTS reports (
		id VARCHAR NOT NULL,
		profile VARCHAR NOT NULL,
		report_type VARCHAR NOT NULL,
		start_date DATE NOT NULL,
		end_date DATE NOT NULL,
		retrieved_at TIMESTAMP NOT NULL,
		payload VARCHAR NOT NULL,
		PRIMARY KEY (id)
	);
`

var bootQueries = []string{
	TokensTableSchema,
	ReportsTableSchema,
}

type Settings struct {
	DbPath string
}

func NewDB(settings Settings) (*sql.DB, error) {
	c, err := duckdb.NewConnector(fmt.Sprintf("%s?threads=4", settings.DbPath), func(exec driver.ExecerContext) error {
		bootQueries := append([]string{}, bootQueries...)

		for _, query := range bootQueries {
			_, err := exec.ExecContext(context.Background(), query, nil)
			if err != nil {
				return err
			}
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	db := sql.OpenDB(c)
	return db, nil
}
