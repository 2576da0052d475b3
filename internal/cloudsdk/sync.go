package cloudsdk

import (
	"context"
	"fmt"
)

// merge-on-conflict upsert semantics: duplicate remote records are
// reconciled on the record id, not duplicated
const preferMergeDuplicates = "resolution=merge-duplicates"

// markerField is stripped from every record before transmission; sync
// markers are local bookkeeping only.
const markerField = "syncStatus"

type SyncAPI struct {
	sdk *CloudSDK
}

// UpsertRecords uploads one collection's records as a single batch to the
// collection resource under the configured base URL.
func (a *SyncAPI) UpsertRecords(ctx context.Context, collection string, records []map[string]any) error {
	baseURL, apiKey, ok := a.sdk.endpoint()
	if !ok {
		return ErrNotConfigured
	}
	if len(records) == 0 {
		return nil
	}

	res, err := a.sdk.client.R().
		SetContext(ctx).
		SetHeader(HeaderAPIKey, apiKey).
		SetBearerAuthToken(apiKey).
		SetHeader(HeaderPrefer, preferMergeDuplicates).
		SetBody(records).
		Post(baseURL + "/" + collection)

	return handleAPIError(res, err, "upsert "+collection)
}

// WireRecords converts records to their upload shape with the sync marker
// stripped, preserving order.
func WireRecords(records []any) ([]map[string]any, error) {
	out := make([]map[string]any, 0, len(records))
	for _, record := range records {
		raw, err := jsonMarshal(record)
		if err != nil {
			return nil, fmt.Errorf("marshal record: %w", err)
		}

		wire := map[string]any{}
		if err := jsonUnmarshal(raw, &wire); err != nil {
			return nil, fmt.Errorf("unmarshal record: %w", err)
		}

		delete(wire, markerField)
		out = append(out, wire)
	}
	return out, nil
}
