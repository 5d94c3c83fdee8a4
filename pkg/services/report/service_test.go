package report

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/de-tools/analytix/pkg/models/domain"
	"github.com/de-tools/analytix/pkg/services/reporttype"
	"github.com/de-tools/analytix/pkg/store/client"
)

type mockFetcher struct {
	mock.Mock
}

func (m *mockFetcher) Fetch(ctx context.Context, token string, query client.Query) (domain.Payload, error) {
	args := m.Called(ctx, token, query)
	return args.Get(0).(domain.Payload), args.Error(1)
}

var now = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func newTestService(t *testing.T, fetcher client.Fetcher) *reportService {
	t.Helper()
	svc, err := NewService(reporttype.Default(), fetcher)
	require.NoError(t, err)
	s := svc.(*reportService)
	s.now = func() time.Time { return now }
	return s
}

func newRequest(t *testing.T, modify func(o *domain.RequestOptions)) *domain.Request {
	t.Helper()
	opts := domain.DefaultRequestOptions()
	if modify != nil {
		modify(&opts)
	}
	req, err := domain.NewRequest(
		time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC),
		opts,
	)
	require.NoError(t, err)
	return req
}

func validAuth() domain.AuthState {
	return domain.NewAuthState("token", now.Add(time.Hour))
}

func TestService_Retrieve(t *testing.T) {
	// Given
	fetcher := new(mockFetcher)
	payload := domain.Payload{
		ColumnHeaders: []domain.ColumnHeader{
			{Name: "day", ColumnType: domain.ColumnTypeDimension},
			{Name: "views", ColumnType: domain.ColumnTypeMetric},
		},
		Rows: [][]any{{"2024-01-01", float64(5)}},
	}
	fetcher.On("Fetch", mock.Anything, "token", mock.MatchedBy(func(q client.Query) bool {
		metrics, _ := q.Get("metrics")
		dims, _ := q.Get("dimensions")
		return metrics == "views" && dims == "day"
	})).Return(payload, nil)

	svc := newTestService(t, fetcher)
	req := newRequest(t, func(o *domain.RequestOptions) {
		o.Dimensions = []string{"day"}
		o.Metrics = []string{"views"}
	})

	// When
	report, err := svc.Retrieve(context.Background(), validAuth(), req)

	// Then
	require.NoError(t, err)
	assert.Equal(t, "time-based-activity", report.Type())
	rows, cols := report.Shape()
	assert.Equal(t, 1, rows)
	assert.Equal(t, 2, cols)
	fetcher.AssertExpectations(t)
}

func TestService_Plan_AllMetrics(t *testing.T) {
	svc := newTestService(t, new(mockFetcher))

	plan, err := svc.Plan(context.Background(), newRequest(t, func(o *domain.RequestOptions) {
		o.Dimensions = []string{"ageGroup"}
	}))

	require.NoError(t, err)
	assert.Equal(t, "viewer-demographics-by-age", plan.Type.ID)
	assert.Equal(t, []string{"viewerPercentage"}, plan.Metrics)
}

func TestService_Retrieve_Errors(t *testing.T) {
	tests := []struct {
		name    string
		auth    domain.AuthState
		modify  func(o *domain.RequestOptions)
		wantErr error
	}{
		{
			name:    "unclassifiable",
			auth:    validAuth(),
			modify:  func(o *domain.RequestOptions) { o.Dimensions = []string{"planet"} },
			wantErr: domain.ErrUnclassifiable,
		},
		{
			name: "sort by unselected metric",
			auth: validAuth(),
			modify: func(o *domain.RequestOptions) {
				o.Metrics = []string{"views", "likes"}
				o.SortBy = []string{"dislikes"}
			},
			wantErr: domain.ErrInvalidForType,
		},
		{
			name: "top playlists without curated filter",
			auth: validAuth(),
			modify: func(o *domain.RequestOptions) {
				o.Dimensions = []string{"playlist"}
				o.SortBy = []string{"-views"}
				o.MaxResults = 10
			},
			wantErr: domain.ErrInvalidForType,
		},
		{
			name:    "expired credential",
			auth:    domain.NewAuthState("token", now.Add(-time.Minute)),
			wantErr: domain.ErrUnauthorized,
		},
		{
			name:    "no credential",
			wantErr: domain.ErrUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fetcher := new(mockFetcher)
			svc := newTestService(t, fetcher)

			_, err := svc.Retrieve(context.Background(), tt.auth, newRequest(t, tt.modify))

			assert.ErrorIs(t, err, tt.wantErr)
			fetcher.AssertNotCalled(t, "Fetch", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestService_Retrieve_RemoteError(t *testing.T) {
	fetcher := new(mockFetcher)
	remote := &domain.RemoteError{Code: 403, Message: "Forbidden"}
	fetcher.On("Fetch", mock.Anything, "token", mock.Anything).Return(domain.Payload{}, remote)

	_, err := newTestService(t, fetcher).Retrieve(context.Background(), validAuth(), newRequest(t, nil))

	var got *domain.RemoteError
	require.True(t, errors.As(err, &got))
	assert.Equal(t, 403, got.Code)
}

func TestNewService_NilDependencies(t *testing.T) {
	_, err := NewService(nil, new(mockFetcher))
	assert.Error(t, err)

	_, err = NewService(reporttype.Default(), nil)
	assert.Error(t, err)
}
