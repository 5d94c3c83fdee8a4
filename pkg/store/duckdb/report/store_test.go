package report

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/de-tools/analytix/pkg/models/store"
	"github.com/de-tools/analytix/pkg/store/duckdb"
	"github.com/google/uuid"
	_ "github.com/marcboeker/go-duckdb/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	db    *sql.DB
	store Store
}

func setupFixture(t *testing.T) *fixture {
	db, err := duckdb.NewDB(duckdb.Settings{DbPath: ":memory:"})
	require.NoError(t, err)

	s, err := NewStore(db)
	require.NoError(t, err)

	t.Cleanup(func() {
		db.Close()
	})

	return &fixture{db: db, store: s}
}

func record(profile string, retrievedAt time.Time) store.ReportRecord {
	return store.ReportRecord{
		Profile:     profile,
		ReportType:  "time-based-activity",
		StartDate:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC),
		RetrievedAt: retrievedAt,
		Payload:     []byte(`{"columnHeaders":[{"name":"day"}],"rows":[["2024-01-01"]]}`),
	}
}

func TestReportStore_Add(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	t.Run("generates an identifier", func(t *testing.T) {
		id, err := f.store.Add(ctx, record("default", time.Now()))
		require.NoError(t, err)

		_, err = uuid.Parse(id)
		assert.NoError(t, err)

		stored, err := f.store.Get(ctx, id)
		require.NoError(t, err)
		require.NotNil(t, stored)
		assert.Equal(t, "time-based-activity", stored.ReportType)
		assert.JSONEq(t, `{"columnHeaders":[{"name":"day"}],"rows":[["2024-01-01"]]}`, string(stored.Payload))
		assert.Equal(t, 2024, stored.StartDate.Year())
	})

	t.Run("duplicate identifier", func(t *testing.T) {
		r := record("default", time.Now())
		r.ID = "fixed"

		_, err := f.store.Add(ctx, r)
		require.NoError(t, err)
		_, err = f.store.Add(ctx, r)
		assert.Error(t, err)
	})

	t.Run("unknown identifier", func(t *testing.T) {
		stored, err := f.store.Get(ctx, "missing")
		require.NoError(t, err)
		assert.Nil(t, stored)
	})
}

func TestReportStore_List(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()
	base := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		_, err := f.store.Add(ctx, record("default", base.Add(time.Duration(i)*time.Hour)))
		require.NoError(t, err)
	}
	_, err := f.store.Add(ctx, record("other", base))
	require.NoError(t, err)

	all, err := f.store.List(ctx, "default", 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.True(t, all[0].RetrievedAt.After(all[1].RetrievedAt))

	limited, err := f.store.List(ctx, "default", 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)

	none, err := f.store.List(ctx, "nobody", 0)
	require.NoError(t, err)
	assert.Empty(t, none)
}
