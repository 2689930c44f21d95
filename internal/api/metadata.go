package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/iupui-soic/dhis2-android-sdk/internal/logger"
	"github.com/iupui-soic/dhis2-android-sdk/models"
)

// Metadata fetches every record of schema.Resource matching filters, using
// the schema as the `fields` projection and paging disabled, so the full
// result set arrives in one response.
//
// The returned time is the server's authoritative response date (the Date
// header), which pull uses as the new watermark instead of the client clock.
// Network failures wrap [ErrTransport]; in either failure case no partial
// result is returned.
func (c *Client) Metadata(ctx context.Context, schema Schema, filters ...Filter) ([]models.Record, time.Time, error) {
	log := logger.FromContext(ctx)

	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("fields", schema.Encode()).
		SetQueryParam("paging", "false").
		SetQueryParamsFromValues(filterValues(filters)).
		Get("/api/" + schema.Resource)
	if err != nil {
		return nil, time.Time{}, transportError("metadata request", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, time.Time{}, fmt.Errorf("metadata %s: %w", schema.Resource, err)
	}

	serverTime, err := responseDate(resp.Header().Get("Date"))
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("metadata %s: %w", schema.Resource, err)
	}

	records, err := decodePayload(resp.Body(), schema.Resource)
	if err != nil {
		return nil, time.Time{}, err
	}

	log.Debug().
		Str("resource", schema.Resource).
		Int("records", len(records)).
		Time("server_time", serverTime).
		Msg("fetched metadata payload")

	return records, serverTime, nil
}

// decodePayload unwraps the collection keyed by the resource name from the
// payload envelope. A payload without the collection key is an empty result.
func decodePayload(body []byte, resource string) ([]models.Record, error) {
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("decode %s payload: %w", resource, err)
	}

	raw, ok := envelope[resource]
	if !ok {
		return nil, nil
	}

	var records []models.Record
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("decode %s collection: %w", resource, err)
	}

	for i := range records {
		records[i].Resource = resource
		records[i].Synced = true
	}

	return records, nil
}

func responseDate(header string) (time.Time, error) {
	if header == "" {
		return time.Time{}, fmt.Errorf("response carries no Date header")
	}

	t, err := http.ParseTime(header)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse response date: %w", err)
	}
	return t, nil
}
