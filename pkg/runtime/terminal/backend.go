package terminal

import (
	"context"
	"fmt"

	"github.com/de-tools/analytix/pkg/runtime/export"
	"github.com/de-tools/analytix/pkg/runtime/terminal/commands"
	"github.com/de-tools/analytix/pkg/services/config"
	"github.com/de-tools/analytix/pkg/services/report"
	"github.com/de-tools/analytix/pkg/services/reporttype"
	"github.com/de-tools/analytix/pkg/store/client"
	"github.com/de-tools/analytix/pkg/store/duckdb"
	reportstore "github.com/de-tools/analytix/pkg/store/duckdb/report"
	tokenstore "github.com/de-tools/analytix/pkg/store/duckdb/token"
)

// OpenBackend loads profile from the profiles file and opens its local
// database.
func OpenBackend(ctx context.Context, configPath, profile string) (*commands.Backend, error) {
	registry, err := config.NewRegistry(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create config registry: %w", err)
	}
	cfg, err := registry.GetConfig(ctx, profile)
	if err != nil {
		return nil, err
	}

	db, err := duckdb.NewDB(duckdb.Settings{DbPath: cfg.Database})
	if err != nil {
		return nil, fmt.Errorf("failed to create DuckDB instance: %w", err)
	}

	tokens, err := tokenstore.NewStore(db)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create token store: %w", err)
	}
	reports, err := reportstore.NewStore(db)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create report store: %w", err)
	}

	credentials, err := report.NewCredentials(tokens)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	history, err := report.NewHistory(db, reports)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	service, err := report.NewService(reporttype.Default(), client.NewClient(client.Options{}))
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &commands.Backend{
		Profile:     cfg,
		Service:     service,
		Credentials: credentials,
		History:     history,
		S3: func(ctx context.Context, awsProfile string) (export.PutObjectAPI, error) {
			return export.NewS3Client(ctx, awsProfile)
		},
		Closer: db,
	}, nil
}
