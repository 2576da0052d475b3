package cloudsdk

import (
	"context"
	"time"
)

type HealthAPI struct {
	sdk *CloudSDK
}

// Probe issues a lightweight authenticated read against the equipments
// resource and returns the round-trip time. Any failure, transport or
// non-success response, yields an error.
func (a *HealthAPI) Probe(ctx context.Context) (time.Duration, error) {
	baseURL, apiKey, ok := a.sdk.endpoint()
	if !ok {
		return 0, ErrNotConfigured
	}

	start := time.Now()
	res, err := a.sdk.client.R().
		SetContext(ctx).
		SetHeader(HeaderAPIKey, apiKey).
		SetBearerAuthToken(apiKey).
		SetQueryParam("select", "count").
		Get(baseURL + "/equipments")

	if err := handleAPIError(res, err, "reachability probe"); err != nil {
		return 0, err
	}

	return time.Since(start), nil
}
