package report

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/de-tools/analytix/pkg/adapters"
	"github.com/de-tools/analytix/pkg/models/api"
	"github.com/de-tools/analytix/pkg/models/domain"
	"github.com/de-tools/analytix/pkg/services/report"
	"github.com/de-tools/analytix/pkg/services/reporttype"
)

const (
	dateLayout   = "2006-01-02"
	defaultLimit = 20
)

// Recorder keeps the report history.
type Recorder interface {
	Record(ctx context.Context, profile string, req *domain.Request, r *domain.Report) (*domain.ReportEntry, error)
	List(ctx context.Context, profile string, limit int) ([]*domain.ReportEntry, error)
}

type Handler struct {
	catalog        *reporttype.Catalog
	service        report.Service
	credentials    report.Credentials
	history        Recorder
	defaultProfile string
	now            func() time.Time
}

func NewHandler(
	catalog *reporttype.Catalog,
	service report.Service,
	credentials report.Credentials,
	history Recorder,
	defaultProfile string,
) *Handler {
	return &Handler{
		catalog:        catalog,
		service:        service,
		credentials:    credentials,
		history:        history,
		defaultProfile: defaultProfile,
		now:            time.Now,
	}
}

func (h *Handler) ListReportTypes(w http.ResponseWriter, r *http.Request) {
	types := h.catalog.Types()
	response := make([]api.ReportType, 0, len(types))
	for _, rt := range types {
		response = append(response, adapters.MapReportTypeDomainToApi(rt))
	}
	writeJSON(r.Context(), w, http.StatusOK, response)
}

func (h *Handler) DetermineReportType(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var body api.DetermineRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if body.MaxResults < 0 {
		writeError(ctx, w, fmt.Errorf("%w: max_results should be no less than 0", domain.ErrMalformedRequest))
		return
	}
	if err := domain.CheckRetiredDimensions(body.Dimensions); err != nil {
		writeError(ctx, w, err)
		return
	}

	rt, err := h.catalog.Determine(body.Dimensions, body.Metrics, body.Filters)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	metrics := body.Metrics
	if len(metrics) == 0 {
		metrics = rt.Metrics
	}
	if err := rt.Verify(body.Dimensions, metrics, body.Filters, body.SortBy, body.MaxResults); err != nil {
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, api.DetermineResponse{
		ReportType: rt.ID,
		Name:       rt.Name,
		Metrics:    metrics,
	})
}

func (h *Handler) GetReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)
	profile := h.profile(r)

	req, err := h.parseRequest(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	auth, err := h.credentials.AuthState(ctx, profile)
	if err != nil {
		logger.Error().Err(err).Str("profile", profile).Msg("failed to load credentials")
		http.Error(w, "failed to load credentials", http.StatusInternalServerError)
		return
	}

	result, err := h.service.Retrieve(ctx, auth, req)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	id := ""
	if h.history != nil {
		entry, err := h.history.Record(ctx, profile, req, result)
		if err != nil {
			logger.Warn().Err(err).Msg("failed to record report")
		} else {
			id = entry.ID
		}
	}

	writeJSON(ctx, w, http.StatusOK, adapters.MapReportDomainToApi(id, result))
}

func (h *Handler) ListHistory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if h.history == nil {
		writeJSON(ctx, w, http.StatusOK, []api.HistoryEntry{})
		return
	}

	limit := defaultLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			http.Error(w, "invalid 'limit'. Expected a non-negative integer", http.StatusBadRequest)
			return
		}
		limit = n
	}

	entries, err := h.history.List(ctx, h.profile(r), limit)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	response := make([]api.HistoryEntry, 0, len(entries))
	for _, e := range entries {
		response = append(response, adapters.MapReportEntryDomainToApi(e))
	}
	writeJSON(ctx, w, http.StatusOK, response)
}

func (h *Handler) profile(r *http.Request) string {
	if p := r.URL.Query().Get("profile"); p != "" {
		return p
	}
	return h.defaultProfile
}

func (h *Handler) parseRequest(r *http.Request) (*domain.Request, error) {
	q := r.URL.Query()
	opts := domain.DefaultRequestOptions()

	start, err := parseDate(q.Get("start_date"), "start_date", time.Time{})
	if err != nil {
		return nil, err
	}
	today := h.now().UTC().Truncate(24 * time.Hour)
	end, err := parseDate(q.Get("end_date"), "end_date", today)
	if err != nil {
		return nil, err
	}

	opts.Dimensions = splitList(q.Get("dimensions"))
	opts.Metrics = splitList(q.Get("metrics"))
	opts.SortBy = splitList(q.Get("sort"))
	if opts.Filters, err = domain.ParseFilters(q.Get("filters")); err != nil {
		return nil, err
	}
	if v := q.Get("currency"); v != "" {
		opts.Currency = v
	}
	if opts.MaxResults, err = parseInt(q.Get("max_results"), "max_results", 0); err != nil {
		return nil, err
	}
	if opts.StartIndex, err = parseInt(q.Get("start_index"), "start_index", domain.DefaultStartIndex); err != nil {
		return nil, err
	}
	if v := q.Get("include_historical_data"); v != "" {
		if opts.IncludeHistoricalData, err = strconv.ParseBool(v); err != nil {
			return nil, fmt.Errorf("%w: invalid 'include_historical_data'", domain.ErrMalformedRequest)
		}
	}

	return domain.NewRequest(start, end, opts)
}

func parseDate(v, name string, fallback time.Time) (time.Time, error) {
	if v == "" {
		return fallback, nil
	}
	t, err := time.Parse(dateLayout, v)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid '%s' date format. Expected format: YYYY-MM-DD",
			domain.ErrMalformedRequest, name)
	}
	return t, nil
}

func parseInt(v, name string, fallback int) (int, error) {
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid '%s'. Expected an integer", domain.ErrMalformedRequest, name)
	}
	return n, nil
}

func splitList(v string) []string {
	if v == "" {
		return nil
	}
	var items []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

func statusOf(err error) int {
	var remote *domain.RemoteError
	switch {
	case errors.Is(err, domain.ErrMalformedRequest):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrUnclassifiable), errors.Is(err, domain.ErrInvalidForType):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.As(err, &remote):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	status := statusOf(err)
	if status == http.StatusInternalServerError {
		zerolog.Ctx(ctx).Error().Err(err).Msg("request failed")
	}
	writeJSON(ctx, w, status, api.Error{Error: err.Error()})
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("failed to encode response")
	}
}
