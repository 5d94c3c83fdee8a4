package report

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/de-tools/analytix/pkg/models/domain"
	"github.com/de-tools/analytix/pkg/models/store"
	"github.com/de-tools/analytix/pkg/store/duckdb"
)

type mockStore struct {
	mock.Mock
}

func (m *mockStore) Add(ctx context.Context, record store.ReportRecord) (string, error) {
	args := m.Called(ctx, record)
	return args.String(0), args.Error(1)
}

func (m *mockStore) Get(ctx context.Context, id string) (*store.ReportRecord, error) {
	args := m.Called(ctx, id)
	if r := args.Get(0); r != nil {
		return r.(*store.ReportRecord), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockStore) List(ctx context.Context, profile string, limit int) ([]store.ReportRecord, error) {
	args := m.Called(ctx, profile, limit)
	if r := args.Get(0); r != nil {
		return r.([]store.ReportRecord), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestHistory_Record(t *testing.T) {
	report, err := domain.NewReport("basic-user-activity", domain.Payload{
		ColumnHeaders: []domain.ColumnHeader{{Name: "views", ColumnType: domain.ColumnTypeMetric}},
		Rows:          [][]any{{float64(1)}},
	})
	require.NoError(t, err)

	inTransaction := mock.MatchedBy(func(ctx context.Context) bool {
		return duckdb.GetTransaction(ctx) != nil
	})

	tests := []struct {
		name    string
		addID   string
		addErr  error
		expect  func(m sqlmock.Sqlmock)
		wantID  string
		wantErr string
	}{
		{
			name:  "commits the stored entry",
			addID: "generated",
			expect: func(m sqlmock.Sqlmock) {
				m.ExpectBegin()
				m.ExpectCommit()
			},
			wantID: "generated",
		},
		{
			name:   "rolls back when the store fails",
			addErr: errors.New("disk full"),
			expect: func(m sqlmock.Sqlmock) {
				m.ExpectBegin()
				m.ExpectRollback()
			},
			wantErr: "disk full",
		},
		{
			name: "fails when the transaction cannot begin",
			expect: func(m sqlmock.Sqlmock) {
				m.ExpectBegin().WillReturnError(errors.New("locked"))
			},
			wantErr: "failed to begin transaction: locked",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Given
			db, dbMock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()
			tt.expect(dbMock)

			s := new(mockStore)
			s.On("Add", inTransaction, mock.MatchedBy(func(r store.ReportRecord) bool {
				return r.Profile == "default" && r.ReportType == "basic-user-activity" && r.RetrievedAt.Equal(now)
			})).Return(tt.addID, tt.addErr).Maybe()

			history, err := NewHistory(db, s)
			require.NoError(t, err)
			history.now = func() time.Time { return now }

			// When
			entry, err := history.Record(context.Background(), "default", newRequest(t, nil), report)

			// Then
			if tt.wantErr != "" {
				assert.EqualError(t, err, tt.wantErr)
				assert.Nil(t, entry)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.wantID, entry.ID)
				s.AssertExpectations(t)
			}
			assert.NoError(t, dbMock.ExpectationsWereMet())
		})
	}
}

func TestNewHistory_RequiresDependencies(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	_, err = NewHistory(nil, new(mockStore))
	assert.EqualError(t, err, "database connection is nil")

	_, err = NewHistory(db, nil)
	assert.EqualError(t, err, "report store is nil")
}

func TestHistory_List(t *testing.T) {
	s := new(mockStore)
	s.On("List", mock.Anything, "default", 5).Return([]store.ReportRecord{
		{
			ID:         "a",
			Profile:    "default",
			ReportType: "top-videos",
			Payload:    []byte(`{"columnHeaders":[{"name":"video","columnType":"DIMENSION"}],"rows":[["x"]]}`),
		},
	}, nil)
	s.On("List", mock.Anything, "broken", 0).Return(nil, errors.New("boom"))

	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	history, err := NewHistory(db, s)
	require.NoError(t, err)

	entries, err := history.List(context.Background(), "default", 5)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, []string{"video"}, entries[0].Report.Dimensions())

	_, err = history.List(context.Background(), "broken", 0)
	assert.EqualError(t, err, "boom")
}
