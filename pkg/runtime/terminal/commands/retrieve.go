package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/de-tools/analytix/pkg/models/domain"
	fileexport "github.com/de-tools/analytix/pkg/runtime/export"
	"github.com/de-tools/analytix/pkg/runtime/terminal/export"
)

const jsonIndent = 4

type exportFlags struct {
	jsonPath    string
	csvPath     string
	delimiter   string
	parquetPath string
	featherPath string
	excelPath   string
	sheetName   string
	s3Bucket    string
	s3Prefix    string
	awsProfile  string
}

func (f *exportFlags) bind(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVar(&f.jsonPath, "json", "", "Save the raw report as JSON to this path")
	flags.StringVar(&f.csvPath, "csv", "", "Save the report as delimited text to this path")
	flags.StringVar(&f.delimiter, "delimiter", fileexport.DefaultDelimiter, `Delimiter for --csv, use "\t" for TSV`)
	flags.StringVar(&f.parquetPath, "parquet", "", "Save the report as Apache Parquet to this path")
	flags.StringVar(&f.featherPath, "feather", "", "Save the report as Apache Feather to this path")
	flags.StringVar(&f.excelPath, "excel", "", "Save the report as an Excel workbook to this path")
	flags.StringVar(&f.sheetName, "sheet-name", fileexport.DefaultSheetName, "Worksheet name for --excel")
	flags.StringVar(&f.s3Bucket, "s3-bucket", "", "Upload every saved file to this S3 bucket")
	flags.StringVar(&f.s3Prefix, "s3-prefix", "", "Key prefix for uploaded files")
	flags.StringVar(&f.awsProfile, "aws-profile", "", "Shared AWS config profile used for uploads")
}

// savers returns one save function per requested export.
func (f *exportFlags) savers(report *domain.Report) []func() (string, error) {
	delimiter := f.delimiter
	if delimiter == `\t` {
		delimiter = "\t"
	}

	var savers []func() (string, error)
	if f.jsonPath != "" {
		savers = append(savers, func() (string, error) { return fileexport.SaveJSON(f.jsonPath, report, jsonIndent) })
	}
	if f.csvPath != "" {
		savers = append(savers, func() (string, error) { return fileexport.SaveCSV(f.csvPath, report, delimiter) })
	}
	if f.parquetPath != "" {
		savers = append(savers, func() (string, error) { return fileexport.SaveParquet(f.parquetPath, report) })
	}
	if f.featherPath != "" {
		savers = append(savers, func() (string, error) { return fileexport.SaveFeather(f.featherPath, report) })
	}
	if f.excelPath != "" {
		savers = append(savers, func() (string, error) { return fileexport.SaveExcel(f.excelPath, report, f.sheetName) })
	}
	return savers
}

type RetrieveCmd struct {
	request  requestFlags
	exports  exportFlags
	session  *Session
	reporter *export.Reporter
	now      func() time.Time
}

func NewRetrieveCmd(session *Session, reporter *export.Reporter) *cobra.Command {
	rc := &RetrieveCmd{session: session, reporter: reporter, now: time.Now}
	cmd := &cobra.Command{
		Use:   "retrieve",
		Short: "Retrieve a report and optionally export it",
		Args:  cobra.NoArgs,
		RunE:  rc.run,
	}

	rc.request.bind(cmd)
	rc.exports.bind(cmd)

	return cmd
}

func (rc *RetrieveCmd) run(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	logger := zerolog.Ctx(ctx)

	b, err := rc.session.open(ctx)
	if err != nil {
		return err
	}
	defer b.Close()

	req, err := rc.request.build(rc.now(), b.Profile.Currency)
	if err != nil {
		return err
	}

	auth, err := b.Credentials.AuthState(ctx, b.Profile.Name)
	if err != nil {
		return fmt.Errorf("failed to read cached token: %w", err)
	}

	report, err := b.Service.Retrieve(ctx, auth, req)
	if errors.Is(err, domain.ErrUnauthorized) {
		return fmt.Errorf("%w. Run 'analytix authorise' first", err)
	}
	if err != nil {
		return err
	}

	if b.History != nil {
		if entry, err := b.History.Record(ctx, b.Profile.Name, req, report); err != nil {
			logger.Warn().Err(err).Msg("failed to record report")
		} else {
			logger.Debug().Str("id", entry.ID).Msg("report recorded")
		}
	}

	if err := rc.reporter.Handle(report); err != nil {
		return err
	}

	paths, err := rc.save(report)
	if err != nil {
		return err
	}
	for _, p := range paths {
		fmt.Fprintf(cmd.OutOrStdout(), "Saved %s\n", p)
	}

	if rc.exports.s3Bucket == "" || len(paths) == 0 {
		return nil
	}
	uris, err := rc.upload(ctx, b, paths)
	if err != nil {
		return err
	}
	for _, uri := range uris {
		fmt.Fprintf(cmd.OutOrStdout(), "Uploaded %s\n", uri)
	}
	return nil
}

// save runs every requested export concurrently and returns the written
// paths in flag order.
func (rc *RetrieveCmd) save(report *domain.Report) ([]string, error) {
	savers := rc.exports.savers(report)
	results := make([]<-chan fileexport.Result, len(savers))
	for i, save := range savers {
		results[i] = fileexport.SaveAsync(save)
	}

	var paths []string
	var errs []error
	for _, ch := range results {
		res := <-ch
		if res.Err != nil {
			errs = append(errs, res.Err)
			continue
		}
		paths = append(paths, res.Path)
	}
	if len(errs) > 0 {
		return paths, fmt.Errorf("failed to save report: %w", errors.Join(errs...))
	}
	return paths, nil
}

func (rc *RetrieveCmd) upload(ctx context.Context, b *Backend, paths []string) ([]string, error) {
	if b.S3 == nil {
		return nil, fmt.Errorf("S3 uploads are not configured")
	}
	s3Client, err := b.S3(ctx, rc.exports.awsProfile)
	if err != nil {
		return nil, err
	}
	uploader := fileexport.NewS3Uploader(s3Client, rc.exports.s3Bucket, rc.exports.s3Prefix)

	uris := make([]string, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	for i, p := range paths {
		g.Go(func() error {
			uri, err := uploader.Upload(ctx, p)
			if err != nil {
				return err
			}
			uris[i] = uri
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return uris, nil
}
