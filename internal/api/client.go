// Package api implements the remote web API client used by the sync engine:
// projected, filtered metadata queries and single/batch record submission.
package api

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/iupui-soic/dhis2-android-sdk/internal/config"
	"github.com/iupui-soic/dhis2-android-sdk/internal/logger"
)

// Client talks to one remote server instance over HTTP. It is safe for
// concurrent use; all mutable state lives in the underlying resty client.
type Client struct {
	http   *resty.Client
	logger *logger.Logger
}

// NewClient constructs a [Client] from adapter settings. It normalises and
// validates the base URL, configures the request timeout, and installs the
// Basic credentials used by every request.
//
// Returns an error if cfg.BaseURL is empty or cannot be parsed as a valid URL.
func NewClient(cfg config.ClientAdapter, log *logger.Logger) (*Client, error) {
	baseURL, err := normalizeBaseURL(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid api base url: %w", err)
	}

	http := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(cfg.RequestTimeout).
		SetHeader("Accept", "application/json")

	if cfg.Username != "" {
		http.SetBasicAuth(cfg.Username, cfg.Password)
	}

	return &Client{http: http, logger: log}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}
