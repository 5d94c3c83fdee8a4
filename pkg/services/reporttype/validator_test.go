package reporttype

import (
	"testing"

	"github.com/de-tools/analytix/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lookup(t *testing.T, id string) ReportType {
	t.Helper()
	rt, ok := Default().Lookup(id)
	require.True(t, ok, "report type %s is not registered", id)
	return rt
}

func TestReportType_Verify_TotalsReport(t *testing.T) {
	// Given
	rt, err := Default().Determine(nil, []string{"views", "likes"}, nil)
	require.NoError(t, err)
	require.Equal(t, "basic-user-activity", rt.ID)

	t.Run("sort by a selected metric", func(t *testing.T) {
		err := rt.Verify(nil, []string{"views", "likes"}, nil, []string{"views"}, 0)
		assert.NoError(t, err)
	})

	t.Run("sort by a metric that was not selected", func(t *testing.T) {
		err := rt.Verify(nil, []string{"views", "likes"}, nil, []string{"dislikes"}, 0)
		assert.ErrorIs(t, err, domain.ErrInvalidForType)
		assert.Contains(t, err.Error(), "dislikes")
	})
}

func TestReportType_Verify_PlaylistReports(t *testing.T) {
	t.Run("curated filter without dimensions", func(t *testing.T) {
		filters := map[string]string{"isCurated": "1"}
		rt, err := Default().Determine(nil, nil, filters)
		require.NoError(t, err)
		assert.Equal(t, "playlist-basic-stats", rt.ID)

		assert.NoError(t, rt.Verify(nil, []string{"views", "playlistStarts"}, filters, nil, 0))
	})

	t.Run("top playlists without curated filter", func(t *testing.T) {
		dims := []string{"playlist"}
		rt, err := Default().Determine(dims, nil, nil)
		require.NoError(t, err)
		assert.Equal(t, "top-playlists", rt.ID)

		err = rt.Verify(dims, []string{"views"}, nil, []string{"-views"}, 10)
		assert.ErrorIs(t, err, domain.ErrInvalidForType)
		assert.Contains(t, err.Error(), "isCurated")
	})

	t.Run("curated filter with the wrong value", func(t *testing.T) {
		rt := lookup(t, "playlist-basic-stats")
		err := rt.Verify(nil, []string{"views"}, map[string]string{"isCurated": "0"}, nil, 0)
		assert.ErrorIs(t, err, domain.ErrInvalidForType)
	})
}

func TestReportType_Verify_Metrics(t *testing.T) {
	rt := lookup(t, "viewer-demographics-by-age")
	dims := []string{"ageGroup"}

	assert.NoError(t, rt.Verify(dims, []string{"viewerPercentage"}, nil, nil, 0))

	err := rt.Verify(dims, []string{"viewerPercentage", "views"}, nil, nil, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidForType)
	assert.Contains(t, err.Error(), `metric "views"`)
}

func TestReportType_Verify_SortMarkerIsIgnoredForMembership(t *testing.T) {
	rt := lookup(t, "time-based-activity")
	dims := []string{"day"}
	metrics := []string{"views"}

	for _, sortBy := range [][]string{{"day"}, {"-day"}, {"views"}, {"-views"}} {
		assert.NoError(t, rt.Verify(dims, metrics, nil, sortBy, 0), sortBy)
	}
	for _, sortBy := range [][]string{{"likes"}, {"-likes"}} {
		assert.ErrorIs(t, rt.Verify(dims, metrics, nil, sortBy, 0), domain.ErrInvalidForType, sortBy)
	}
}

func TestReportType_Verify_Filters(t *testing.T) {
	rt := lookup(t, "time-based-activity")
	dims := []string{"day"}
	metrics := []string{"views"}

	tests := []struct {
		name    string
		filters map[string]string
		wantErr bool
	}{
		{name: "single location filter", filters: map[string]string{"country": "US"}},
		{name: "location and content filter", filters: map[string]string{"country": "US", "video": "abc"}},
		{name: "accepted enumerated value", filters: map[string]string{"continent": "150"}},
		{name: "rejected enumerated value", filters: map[string]string{"continent": "999"}, wantErr: true},
		{name: "unknown filter", filters: map[string]string{"playlist": "abc"}, wantErr: true},
		{name: "two location filters", filters: map[string]string{"country": "US", "continent": "019"}, wantErr: true},
		{name: "two content filters", filters: map[string]string{"video": "a", "group": "b"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := rt.Verify(dims, metrics, tt.filters, nil, 0)
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrInvalidForType)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestReportType_Verify_ForbiddenFilters(t *testing.T) {
	rt := ReportType{ID: "plain", Metrics: []string{"views"}}

	err := rt.Verify(nil, []string{"views"}, map[string]string{"country": "US"}, nil, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidForType)
	assert.Contains(t, err.Error(), "filters are not supported")
}

func TestReportType_Verify_OptionalDimensionBound(t *testing.T) {
	rt := lookup(t, "device-type")
	metrics := []string{"views"}

	assert.NoError(t, rt.Verify([]string{"deviceType", "day"}, metrics, nil, nil, 0))
	assert.NoError(t, rt.Verify([]string{"deviceType", "operatingSystem"}, metrics, nil, nil, 0))

	err := rt.Verify([]string{"deviceType", "operatingSystem", "day"}, metrics, nil, nil, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidForType)
}

func TestReportType_Verify_Structure(t *testing.T) {
	rt := lookup(t, "top-videos")
	dims := []string{"video"}
	metrics := []string{"views", "likes"}

	tests := []struct {
		name       string
		sortBy     []string
		maxResults int
		wantErr    string
	}{
		{name: "valid", sortBy: []string{"-views"}, maxResults: 200},
		{name: "missing max results", sortBy: []string{"-views"}, wantErr: "max results"},
		{name: "max results above bound", sortBy: []string{"-views"}, maxResults: 201, wantErr: "max results"},
		{name: "missing sort", maxResults: 10, wantErr: "descending sort"},
		{name: "ascending sort", sortBy: []string{"views"}, maxResults: 10, wantErr: "must be descending"},
		{name: "sort key outside whitelist", sortBy: []string{"-video"}, maxResults: 10, wantErr: "not supported"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := rt.Verify(dims, metrics, nil, tt.sortBy, tt.maxResults)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, domain.ErrInvalidForType)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestReportType_Verify_FixedFilterValue(t *testing.T) {
	rt := lookup(t, "playback-location-details")
	dims := []string{"insightPlaybackLocationDetail"}
	metrics := []string{"views"}
	sortBy := []string{"-views"}

	err := rt.Verify(dims, metrics, nil, sortBy, 25)
	assert.ErrorIs(t, err, domain.ErrInvalidForType)
	assert.Contains(t, err.Error(), `"EMBEDDED"`)

	err = rt.Verify(dims, metrics, map[string]string{"insightPlaybackLocationType": "EMBEDDED"}, sortBy, 25)
	assert.NoError(t, err)
}

func TestReportType_Verify_EveryTypeAcceptsItsMinimalRequest(t *testing.T) {
	for _, rt := range Default().Types() {
		t.Run(rt.ID, func(t *testing.T) {
			var sortBy []string
			if rt.DescendingSort {
				key := rt.Metrics[0]
				if len(rt.SortKeys) > 0 {
					key = rt.SortKeys[0]
				}
				sortBy = []string{"-" + key}
			}

			err := rt.Verify(rt.RequiredDimensions(), rt.Metrics, rt.RequiredFilters(), sortBy, rt.MaxResults)
			assert.NoError(t, err)
		})
	}
}
