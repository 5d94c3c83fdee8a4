package report

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/de-tools/analytix/pkg/models/domain"
	"github.com/de-tools/analytix/pkg/services/reporttype"
	"github.com/de-tools/analytix/pkg/store/client"
)

// Plan is a request that passed classification and verification.
type Plan struct {
	Type    reporttype.ReportType
	Metrics []string
	Query   client.Query
}

type Service interface {
	// Plan classifies and verifies req without any network interaction.
	Plan(ctx context.Context, req *domain.Request) (*Plan, error)
	// Retrieve plans req and fetches the report with the given credential.
	Retrieve(ctx context.Context, auth domain.AuthState, req *domain.Request) (*domain.Report, error)
}

type reportService struct {
	catalog *reporttype.Catalog
	fetcher client.Fetcher
	now     func() time.Time
}

func NewService(catalog *reporttype.Catalog, fetcher client.Fetcher) (Service, error) {
	if catalog == nil {
		return nil, fmt.Errorf("report type catalog is nil")
	}
	if fetcher == nil {
		return nil, fmt.Errorf("report fetcher is nil")
	}
	return &reportService{
		catalog: catalog,
		fetcher: fetcher,
		now:     time.Now,
	}, nil
}

func (s *reportService) Plan(ctx context.Context, req *domain.Request) (*Plan, error) {
	logger := zerolog.Ctx(ctx)

	rt, err := s.catalog.Determine(req.Dimensions, req.Metrics, req.Filters)
	if err != nil {
		return nil, err
	}
	logger.Info().Str("report_type", rt.ID).Msg("report type determined")

	metrics := req.Metrics
	if req.AllMetrics() {
		metrics = append([]string{}, rt.Metrics...)
	}
	logger.Debug().Str("metrics", strings.Join(metrics, ",")).Msg("using metrics")

	if err := rt.Verify(req.Dimensions, metrics, req.Filters, req.SortBy, req.MaxResults); err != nil {
		return nil, err
	}

	return &Plan{
		Type:    rt,
		Metrics: metrics,
		Query:   client.BuildQuery(req, metrics),
	}, nil
}

func (s *reportService) Retrieve(ctx context.Context, auth domain.AuthState, req *domain.Request) (*domain.Report, error) {
	logger := zerolog.Ctx(ctx)

	plan, err := s.Plan(ctx, req)
	if err != nil {
		return nil, err
	}
	if !auth.Valid(s.now()) {
		return nil, fmt.Errorf("%w: the access token is missing or expired", domain.ErrUnauthorized)
	}

	payload, err := s.fetcher.Fetch(ctx, auth.Token(), plan.Query)
	if err != nil {
		logger.Warn().Err(err).Str("report_type", plan.Type.ID).Msg("failed to fetch report")
		return nil, err
	}

	report, err := domain.NewReport(plan.Type.ID, payload)
	if err != nil {
		return nil, fmt.Errorf("invalid report payload: %w", err)
	}
	rows, cols := report.Shape()
	logger.Info().Str("report_type", plan.Type.ID).Int("rows", rows).Int("columns", cols).Msg("report created")
	return report, nil
}
