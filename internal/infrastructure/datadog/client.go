package datadog

import (
	"context"
	"fmt"

	"github.com/DataDog/datadog-api-client-go/v2/api/datadog"
	"github.com/DataDog/datadog-api-client-go/v2/api/datadogV2"

	"github.com/nerrad567/hass-metrics-bridge/internal/infrastructure/config"
	"github.com/nerrad567/hass-metrics-bridge/internal/metrics"
)

// Client submits metric series to the Datadog v2 metrics intake API.
//
// It implements metrics.Sink: one SubmitMetrics call per flush, with
// partial-failure detail surfaced through SubmitResult and transport
// failures returned as errors. The client performs no retries; delivery
// policy belongs to the buffer.
//
// Thread Safety: all methods are safe for concurrent use, though the
// bridge only ever calls Submit from one goroutine.
type Client struct {
	api    *datadogV2.MetricsApi
	client *datadog.APIClient
	cfg    config.DatadogConfig
}

// compile-time interface check
var _ metrics.Sink = (*Client)(nil)

// Connect creates a Datadog client from configuration.
//
// No network round-trip is made: the intake API has no cheap ping, and a
// bad key surfaces as a submission error on the first flush.
//
// Parameters:
//   - cfg: Datadog configuration from config.yaml
//
// Returns:
//   - *Client: Client ready for use
//   - error: If required credentials are missing
func Connect(cfg config.DatadogConfig) (*Client, error) {
	if cfg.APIKey == "" || cfg.AppKey == "" {
		return nil, ErrMissingCredentials
	}

	configuration := datadog.NewConfiguration()
	client := datadog.NewAPIClient(configuration)

	return &Client{
		api:    datadogV2.NewMetricsApi(client),
		client: client,
		cfg:    cfg,
	}, nil
}

// Submit sends one batch of series to the metrics intake endpoint.
//
// All series are submitted as gauges in a single payload. The returned
// SubmitResult carries the intake response's error strings; a non-nil
// error means the submission as a whole failed and nothing is known
// about individual points.
func (c *Client) Submit(ctx context.Context, series []metrics.Series) (metrics.SubmitResult, error) {
	if len(series) == 0 {
		return metrics.SubmitResult{}, nil
	}

	body := datadogV2.MetricPayload{
		Series: buildPayloadSeries(series),
	}

	resp, _, err := c.api.SubmitMetrics(c.authContext(ctx), body, *datadogV2.NewSubmitMetricsOptionalParameters())
	if err != nil {
		return metrics.SubmitResult{}, fmt.Errorf("%w: %w", ErrSubmitFailed, err)
	}

	return metrics.SubmitResult{Errors: resp.GetErrors()}, nil
}

// Close releases the client's idle connections. The API client itself
// holds no other resources.
func (c *Client) Close() error {
	if c.client != nil {
		c.client.GetConfig().HTTPClient.CloseIdleConnections()
	}
	return nil
}

// authContext attaches API credentials and the configured site to the
// request context, the datadog-api-client convention for per-request
// authentication.
func (c *Client) authContext(ctx context.Context) context.Context {
	ctx = context.WithValue(ctx, datadog.ContextAPIKeys, map[string]datadog.APIKey{
		"apiKeyAuth": {Key: c.cfg.APIKey},
		"appKeyAuth": {Key: c.cfg.AppKey},
	})
	if c.cfg.Site != "" {
		ctx = context.WithValue(ctx, datadog.ContextServerVariables, map[string]string{
			"site": c.cfg.Site,
		})
	}
	return ctx
}

// buildPayloadSeries maps the bridge's series onto the intake model.
// Units are optional in the payload and omitted when empty.
func buildPayloadSeries(series []metrics.Series) []datadogV2.MetricSeries {
	out := make([]datadogV2.MetricSeries, 0, len(series))
	for _, s := range series {
		points := make([]datadogV2.MetricPoint, 0, len(s.Points))
		for _, p := range s.Points {
			points = append(points, datadogV2.MetricPoint{
				Timestamp: datadog.PtrInt64(p.Timestamp),
				Value:     datadog.PtrFloat64(p.Value),
			})
		}

		ms := datadogV2.MetricSeries{
			Metric: s.Metric,
			Points: points,
			Tags:   s.Tags,
			Type:   datadogV2.METRICINTAKETYPE_GAUGE.Ptr(),
		}
		if s.Unit != "" {
			ms.Unit = datadog.PtrString(s.Unit)
		}
		out = append(out, ms)
	}
	return out
}
