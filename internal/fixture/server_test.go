package fixture

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"energy-report/internal/data"
	"energy-report/internal/model"
	"energy-report/internal/nav"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFixtureServer(t *testing.T) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	store, err := Load(writeFixtureDir(t), map[string]float64{"2021-07-22": 0.2})
	require.NoError(t, err)
	srv := httptest.NewServer(Router(store))
	t.Cleanup(srv.Close)
	return srv
}

func TestServerDates(t *testing.T) {
	srv := newFixtureServer(t)

	resp, err := http.Get(srv.URL + "/api/dates")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var catalog map[string][]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&catalog))
	assert.Equal(t, map[string][]string{"2021-07": {"22"}}, catalog)
}

func TestServerReportNotFound(t *testing.T) {
	srv := newFixtureServer(t)

	resp, err := http.Get(srv.URL + "/api/report/1999-01-01")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestServerDownload(t *testing.T) {
	srv := newFixtureServer(t)

	resp, err := http.Get(srv.URL + "/api/downloads/bids/2021-07-22")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, bidsCSV, string(body))

	resp, err = http.Get(srv.URL + "/api/downloads/energy/1999-01-01")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestServerCORSHeaders(t *testing.T) {
	srv := newFixtureServer(t)

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/api/dates", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://dashboard.test")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.NotEmpty(t, resp.Header.Get("Access-Control-Allow-Origin"))
}

type nopUI struct{}

func (nopUI) SetPage(string, model.Granularity)              {}
func (nopUI) SetSkeleton(model.Section, model.SkeletonState) {}

type nopRender struct{}

func (nopRender) RenderEnergy(string, *model.EnergyData)  {}
func (nopRender) RenderBids(string, *model.BidData)       {}
func (nopRender) RenderCatalog(model.ReportMonths)        {}

type nopDownload struct{}

func (nopDownload) Download(string) error { return nil }

// TestEngineAgainstFixture drives the full controller pipeline against
// the fixture server: catalog, resolution, both fetch pipelines, and the
// derived aggregates.
func TestEngineAgainstFixture(t *testing.T) {
	srv := newFixtureServer(t)

	client := data.NewReportClient(srv.URL+"/api", 5*time.Second)
	ctrl := nav.New(client, nopUI{}, nopRender{}, nopDownload{})

	require.NoError(t, ctrl.Start(context.Background(), "2021-07-22"))
	ctrl.Wait()

	date, g := ctrl.PageDate()
	assert.Equal(t, "2021-07-22", date)
	assert.Equal(t, model.GranularityDay, g)

	bids, ok := ctrl.BidData()
	require.True(t, ok)
	assert.Equal(t, 300.0, bids.Profit)
	assert.Equal(t, 15.0, bids.TotalVolume)

	energy, ok := ctrl.EnergyData()
	require.True(t, ok)
	require.Equal(t, 2, energy.Len())
	assert.Equal(t, 100.0, energy.PredictedTotal[0])
	// The second row has a null demand cell in the CSV: total computes,
	// net stays null.
	require.NotNil(t, energy.RealTotal[1])
	assert.Nil(t, energy.RealNet[1])
}
