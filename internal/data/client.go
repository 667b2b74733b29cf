// Package data fetches raw report payloads from the dashboard API.
//
// Responses are decoded into loosely-typed JSON values on purpose: shape
// checking belongs to the validate package and typed construction to the
// transform package, so a malformed payload can be gated instead of
// partially unmarshalled.
package data

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

var log = logrus.WithField("component", "api")

// APIError represents a transport-level failure from the report API.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

// ReportClient provides methods to fetch data from the report API.
type ReportClient struct {
	BaseURL string
	Client  *http.Client
}

// NewReportClient creates a report API client. baseURL should point at the
// API root, e.g. "http://127.0.0.1:8080/api".
func NewReportClient(baseURL string, timeout time.Duration) *ReportClient {
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &ReportClient{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		Client: &http.Client{
			Timeout: timeout,
		},
	}
}

// GetBids fetches the raw market bids payload for a date.
func (c *ReportClient) GetBids(ctx context.Context, date string) (any, error) {
	return c.getJSON(ctx, "/bids/"+date)
}

// GetReport fetches the raw energy report payload for a date.
func (c *ReportClient) GetReport(ctx context.Context, date string) (any, error) {
	return c.getJSON(ctx, "/report/"+date)
}

// GetDates fetches the raw catalog of dates with available reports.
func (c *ReportClient) GetDates(ctx context.Context) (any, error) {
	return c.getJSON(ctx, "/dates")
}

// EnergyExportURL is the CSV download location for a date's energy report.
func (c *ReportClient) EnergyExportURL(date string) string {
	return c.BaseURL + "/downloads/energy/" + date
}

// BidsExportURL is the CSV download location for a date's bids.
func (c *ReportClient) BidsExportURL(date string) string {
	return c.BaseURL + "/downloads/bids/" + date
}

// FetchExport downloads a CSV export. The body is returned as-is; this
// client never parses the export files.
func (c *ReportClient) FetchExport(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, statusError(resp.StatusCode, url)
	}
	return io.ReadAll(resp.Body)
}

func (c *ReportClient) getJSON(ctx context.Context, path string) (any, error) {
	url := c.BaseURL + path

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.Client.Do(req)
	duration := time.Since(start)
	if err != nil {
		log.Errorf("GET %s failed: %v (duration: %v)", path, err, duration)
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	log.Debugf("GET %s -> %d (duration: %v)", path, resp.StatusCode, duration)

	if resp.StatusCode != http.StatusOK {
		log.Errorf("GET %s returned %d %s", path, resp.StatusCode, resp.Status)
		return nil, statusError(resp.StatusCode, path)
	}

	var payload any
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		log.Errorf("GET %s: decoding response: %v", path, err)
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Code:       "BAD_PAYLOAD",
			Message:    fmt.Sprintf("response to %s is not valid JSON: %v", path, err),
		}
	}
	return payload, nil
}

func statusError(status int, path string) *APIError {
	code := "API_ERROR"
	if status == http.StatusNotFound {
		code = "NOT_FOUND"
	}
	return &APIError{
		StatusCode: status,
		Code:       code,
		Message:    fmt.Sprintf("API returned status %d for %s", status, path),
	}
}
