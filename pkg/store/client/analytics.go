package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/de-tools/analytix/pkg/models/domain"
)

const (
	DefaultEndpoint = "https://youtubeanalytics.googleapis.com/v2/reports"
	DefaultTimeout  = 30 * time.Second
)

// Fetcher retrieves raw report payloads.
type Fetcher interface {
	Fetch(ctx context.Context, token string, query Query) (domain.Payload, error)
}

type Options struct {
	Endpoint   string
	HTTPClient *http.Client
	// Limiter throttles outgoing requests. Nil uses 5 requests per second.
	Limiter *rate.Limiter
}

// Client calls the reports endpoint with a bearer token.
type Client struct {
	endpoint string
	http     *http.Client
	limiter  *rate.Limiter
}

var _ Fetcher = (*Client)(nil)

func NewClient(opts Options) *Client {
	if opts.Endpoint == "" {
		opts.Endpoint = DefaultEndpoint
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{Timeout: DefaultTimeout}
	}
	if opts.Limiter == nil {
		opts.Limiter = rate.NewLimiter(rate.Limit(5), 1)
	}

	return &Client{
		endpoint: opts.Endpoint,
		http:     opts.HTTPClient,
		limiter:  opts.Limiter,
	}
}

type apiError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Status  string `json:"status"`
}

type reportResponse struct {
	Error *apiError `json:"error"`
	domain.Payload
}

func (c *Client) Fetch(ctx context.Context, token string, query Query) (domain.Payload, error) {
	logger := zerolog.Ctx(ctx)

	if err := c.limiter.Wait(ctx); err != nil {
		return domain.Payload{}, fmt.Errorf("rate limiter: %w", err)
	}

	url := c.endpoint + "?" + query.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return domain.Payload{}, fmt.Errorf("failed to create report request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")

	logger.Debug().Str("url", url).Msg("requesting report")
	resp, err := c.http.Do(req)
	if err != nil {
		logger.Warn().Err(err).Msg("failed to request report")
		return domain.Payload{}, err
	}
	defer func(Body io.ReadCloser) {
		err := Body.Close()
		if err != nil {
			logger.Warn().Err(err).Msg("failed to close response body")
		}
	}(resp.Body)

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.Payload{}, fmt.Errorf("failed to read report response: %w", err)
	}

	var decoded reportResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		if resp.StatusCode >= http.StatusBadRequest {
			return domain.Payload{}, &domain.RemoteError{Code: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		}
		return domain.Payload{}, fmt.Errorf("failed to unmarshal report response: %w", err)
	}

	if decoded.Error != nil {
		logger.Warn().Int("code", decoded.Error.Code).Str("message", decoded.Error.Message).Msg("report request rejected")
		return domain.Payload{}, &domain.RemoteError{
			Code:    decoded.Error.Code,
			Message: decoded.Error.Message,
			Status:  decoded.Error.Status,
		}
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return domain.Payload{}, &domain.RemoteError{Code: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
	}

	return decoded.Payload, nil
}
