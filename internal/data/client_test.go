package data

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetJSONEndpoints(t *testing.T) {
	var gotPaths []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPaths = append(gotPaths, r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":[]}`))
	}))
	defer srv.Close()

	c := NewReportClient(srv.URL+"/api/", time.Second)
	ctx := context.Background()

	_, err := c.GetBids(ctx, "2021-07-22")
	require.NoError(t, err)
	_, err = c.GetReport(ctx, "2021-07")
	require.NoError(t, err)
	_, err = c.GetDates(ctx)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"/api/bids/2021-07-22",
		"/api/report/2021-07",
		"/api/dates",
	}, gotPaths)
}

func TestGetJSONDecodesLoosely(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":[["2021-07-22",0,"SELL",10,50]]}`))
	}))
	defer srv.Close()

	c := NewReportClient(srv.URL, time.Second)
	payload, err := c.GetBids(context.Background(), "2021-07-22")
	require.NoError(t, err)

	obj, ok := payload.(map[string]any)
	require.True(t, ok)
	rows, ok := obj["data"].([]any)
	require.True(t, ok)
	require.Len(t, rows, 1)
}

func TestGetJSONNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewReportClient(srv.URL, time.Second)
	_, err := c.GetReport(context.Background(), "1999-01-01")
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "NOT_FOUND", apiErr.Code)
}

func TestGetJSONRejectsNonJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>oops</html>"))
	}))
	defer srv.Close()

	c := NewReportClient(srv.URL, time.Second)
	_, err := c.GetDates(context.Background())
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "BAD_PAYLOAD", apiErr.Code)
}

func TestExportURLs(t *testing.T) {
	c := NewReportClient("http://api.test/api", time.Second)
	assert.Equal(t, "http://api.test/api/downloads/energy/2021-07-22", c.EnergyExportURL("2021-07-22"))
	assert.Equal(t, "http://api.test/api/downloads/bids/2021-07-22", c.BidsExportURL("2021-07-22"))
}

func TestFetchExport(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/downloads/energy/2021-07-22" {
			w.Write([]byte("a,b\n1,2\n"))
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewReportClient(srv.URL, time.Second)
	body, err := c.FetchExport(context.Background(), c.EnergyExportURL("2021-07-22"))
	require.NoError(t, err)
	assert.Equal(t, "a,b\n1,2\n", string(body))

	_, err = c.FetchExport(context.Background(), c.BidsExportURL("2021-07-22"))
	assert.Error(t, err)
}
