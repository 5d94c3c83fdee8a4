package main

import (
	"fmt"
	"net"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/de-tools/analytix/pkg/server"
	"github.com/de-tools/analytix/pkg/services/config"
	"github.com/de-tools/analytix/pkg/services/report"
	"github.com/de-tools/analytix/pkg/services/reporttype"
	"github.com/de-tools/analytix/pkg/store/client"
	"github.com/de-tools/analytix/pkg/store/duckdb"
	reportstore "github.com/de-tools/analytix/pkg/store/duckdb/report"
	tokenstore "github.com/de-tools/analytix/pkg/store/duckdb/token"
)

var (
	cfgPath string
	profile string
)

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the web server for Analytix",
		RunE:  runServer,
	}

	defaultPath, err := config.DefaultProfilesPath()
	if err != nil {
		defaultPath = config.DefaultProfilesFile
	}

	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", defaultPath,
		"Path to the .analytixcfg file (default is $HOME/.analytixcfg)")
	rootCmd.Flags().StringVarP(&profile, "profile", "p", config.DefaultProfile,
		"Profile used when a request does not name one")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Error loading .env file: %v\n", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	ctx := logger.WithContext(cmd.Context())

	registry, err := config.NewRegistry(cfgPath)
	if err != nil {
		return fmt.Errorf("failed to create config registry: %w", err)
	}

	cfg, err := registry.GetConfig(ctx, profile)
	if err != nil {
		return fmt.Errorf("failed to load profile: %w", err)
	}

	db, err := duckdb.NewDB(duckdb.Settings{
		DbPath: cfg.Database,
	})
	if err != nil {
		return fmt.Errorf("failed to create DuckDB instance: %w", err)
	}
	defer db.Close()

	tokens, err := tokenstore.NewStore(db)
	if err != nil {
		return fmt.Errorf("failed to create token store: %w", err)
	}
	reports, err := reportstore.NewStore(db)
	if err != nil {
		return fmt.Errorf("failed to create report store: %w", err)
	}

	credentials, err := report.NewCredentials(tokens)
	if err != nil {
		return fmt.Errorf("failed to create credentials: %w", err)
	}
	history, err := report.NewHistory(db, reports)
	if err != nil {
		return fmt.Errorf("failed to create report history: %w", err)
	}

	catalog := reporttype.Default()
	service, err := report.NewService(catalog, client.NewClient(client.Options{}))
	if err != nil {
		return fmt.Errorf("failed to create report service: %w", err)
	}

	logger.Info().Msgf("Configuration found at `%s` successfully loaded.", cfgPath)
	logger.Info().Msgf("Found the following profiles:")
	profiles, _ := registry.GetProfiles(ctx)
	for _, name := range profiles {
		logger.Info().Msgf("Name: `%s`", name)
	}

	host := os.Getenv("SERVER_HOST")
	port := os.Getenv("SERVER_PORT")

	if host == "" || port == "" {
		logger.Error().Msgf("Missing server configuration from .env file")
		os.Exit(1)
	}

	api := server.NewWebAPI(server.Config{
		Addr: net.JoinHostPort(host, port),
		Dependencies: server.Dependencies{
			Catalog:     catalog,
			Reports:     service,
			Credentials: credentials,
			History:     history,
			Profile:     profile,
			Logger:      logger,
		},
	})

	return api.Start()
}
