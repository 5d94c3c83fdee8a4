package terminal

import (
	"context"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/de-tools/analytix/pkg/runtime/terminal/commands"
	"github.com/de-tools/analytix/pkg/runtime/terminal/export"
	"github.com/de-tools/analytix/pkg/services/config"
	"github.com/de-tools/analytix/pkg/services/report"
	"github.com/de-tools/analytix/pkg/services/reporttype"
	"github.com/de-tools/analytix/pkg/store/client"
)

// CLI represents the command-line interface
type CLI struct {
	catalog  *reporttype.Catalog
	service  report.Service
	session  *commands.Session
	reporter *export.Reporter
	logs     io.Writer
	verbose  bool
	rootCmd  *cobra.Command
}

// Options contain configuration for the CLI
type Options struct {
	Catalog *reporttype.Catalog
	// Open resolves a profile into its services. Defaults to OpenBackend.
	Open   commands.Opener
	Output io.Writer
	Input  io.Reader
	// Logs receives the structured log output. Defaults to stderr.
	Logs io.Writer
}

// NewCLI creates a new CLI instance
func NewCLI(opts Options) (*CLI, error) {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Input == nil {
		opts.Input = os.Stdin
	}
	if opts.Logs == nil {
		opts.Logs = os.Stderr
	}
	if opts.Catalog == nil {
		opts.Catalog = reporttype.Default()
	}
	if opts.Open == nil {
		opts.Open = OpenBackend
	}

	// Planning never fetches, so the check command shares a service backed
	// by an unauthenticated client.
	service, err := report.NewService(opts.Catalog, client.NewClient(client.Options{}))
	if err != nil {
		return nil, err
	}

	cli := &CLI{
		catalog:  opts.Catalog,
		service:  service,
		session:  &commands.Session{Open: opts.Open},
		reporter: export.NewReporter(opts.Output),
		logs:     opts.Logs,
	}

	cli.rootCmd = cli.newRootCmd()
	cli.rootCmd.SetOut(opts.Output)
	cli.rootCmd.SetIn(opts.Input)
	return cli, nil
}

func (cli *CLI) Execute() error {
	return cli.rootCmd.Execute()
}

// ExecuteContext runs the command line given in args.
func (cli *CLI) ExecuteContext(ctx context.Context, args ...string) error {
	cli.rootCmd.SetArgs(args)
	return cli.rootCmd.ExecuteContext(ctx)
}

func (cli *CLI) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "analytix",
		Short:             "Retrieve YouTube Analytics reports",
		SilenceUsage:      true,
		PersistentPreRunE: cli.setupLogger,
	}

	defaultPath, err := config.DefaultProfilesPath()
	if err != nil {
		defaultPath = config.DefaultProfilesFile
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&cli.session.ConfigPath, "config", "c", defaultPath, "Path to the profiles file")
	flags.StringVarP(&cli.session.Profile, "profile", "p", config.DefaultProfile, "Profile to use")
	flags.BoolVarP(&cli.verbose, "verbose", "v", false, "Enable debug logging")

	cmd.AddCommand(commands.NewTypesCmd(cli.catalog, cli.reporter))
	cmd.AddCommand(commands.NewCheckCmd(cli.service))
	cmd.AddCommand(commands.NewAuthoriseCmd(cli.session))
	cmd.AddCommand(commands.NewRetrieveCmd(cli.session, cli.reporter))

	return cmd
}

func (cli *CLI) setupLogger(cmd *cobra.Command, _ []string) error {
	level := zerolog.InfoLevel
	if cli.verbose {
		level = zerolog.DebugLevel
	}

	logger := zerolog.New(zerolog.ConsoleWriter{Out: cli.logs}).
		Level(level).
		With().
		Timestamp().
		Logger()
	cmd.SetContext(logger.WithContext(cmd.Context()))
	return nil
}
