package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KaramelBytes/odpanel/internal/dataset"
	"github.com/KaramelBytes/odpanel/internal/session"
	"github.com/KaramelBytes/odpanel/internal/views"
)

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func tripsOnly(context.Context) (*dataset.Registry, error) {
	trips := dataset.NewTable("Deslocamentos",
		[]string{"cidadeori", "cidadeoritabulada", "cidadedes", "idpesquisador", "modo", "motivoori", "horasaida"},
		[][]string{
			{"6", "Guará", "14", "1", "10", "1", "07:00:00"},
			{"6", "Guará", "14", "1", "99", "1", "07:30:00"},
			{"14", "Plano Piloto", "6", "2", "13", "0", "18:00:00"},
		})
	return dataset.NewRegistry(dataset.Entry{Name: "Deslocamentos", Kind: dataset.KindTrips, Table: trips})
}

func newTestServer(t *testing.T, load session.LoadFunc) *httptest.Server {
	t.Helper()
	store := session.NewStore(load, 8, time.Minute)
	ts := httptest.NewServer(New(store, views.DefaultSettings(), Options{}).Routes())
	t.Cleanup(ts.Close)
	return ts
}

func do(t *testing.T, method, url string) (int, envelope) {
	t.Helper()
	req, err := http.NewRequest(method, url, nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	var env envelope
	if resp.StatusCode != http.StatusNoContent && resp.Header.Get("Content-Type") != "" {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	}
	return resp.StatusCode, env
}

func createSession(t *testing.T, ts *httptest.Server) views.HomeView {
	t.Helper()
	status, env := do(t, http.MethodPost, ts.URL+"/api/v1/sessions")
	require.Equal(t, http.StatusCreated, status)
	var home views.HomeView
	require.NoError(t, json.Unmarshal(env.Data, &home))
	require.NotEmpty(t, home.SessionID)
	return home
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t, tripsOnly)
	status, env := do(t, http.MethodGet, ts.URL+"/health")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, 0, env.Code)
	assert.Equal(t, "success", env.Message)
}

func TestTripsEndpoint(t *testing.T) {
	ts := newTestServer(t, tripsOnly)
	home := createSession(t, ts)
	assert.True(t, home.Loaded)
	base := ts.URL + "/api/v1/sessions/" + home.SessionID

	status, env := do(t, http.MethodGet, base+"/trips?cities=6,14")
	require.Equal(t, http.StatusOK, status)
	var v views.TripsView
	require.NoError(t, json.Unmarshal(env.Data, &v))
	require.NotNil(t, v.Matrix)
	assert.Equal(t, [][]int{{0, 2}, {1, 0}}, v.Matrix.Values)
	assert.Equal(t, []string{"Guará", "Plano Piloto"}, v.Matrix.Rows)

	status, env = do(t, http.MethodGet, base+"/trips")
	require.Equal(t, http.StatusOK, status)
	v = views.TripsView{}
	require.NoError(t, json.Unmarshal(env.Data, &v))
	assert.Equal(t, []int{6, 14}, v.Selected)

	status, env = do(t, http.MethodGet, base+"/trips?cities=")
	require.Equal(t, http.StatusOK, status)
	v = views.TripsView{}
	require.NoError(t, json.Unmarshal(env.Data, &v))
	assert.Nil(t, v.Matrix)
	assert.Equal(t, views.SelectionPrompt, v.Prompt)

	status, env = do(t, http.MethodGet, base+"/trips?cities=6,abc")
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, http.StatusBadRequest, env.Code)

	status, _ = do(t, http.MethodGet, base+"/trips?cities=6,6")
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestStatusMapping(t *testing.T) {
	ts := newTestServer(t, tripsOnly)
	home := createSession(t, ts)
	base := ts.URL + "/api/v1/sessions/" + home.SessionID

	status, env := do(t, http.MethodGet, base+"/socio")
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Contains(t, env.Message, "Socio")

	status, _ = do(t, http.MethodGet, ts.URL+"/api/v1/sessions/nope/management")
	assert.Equal(t, http.StatusNotFound, status)

	failing := newTestServer(t, func(context.Context) (*dataset.Registry, error) {
		return nil, dataset.ErrMissingFile
	})
	home = createSession(t, failing)
	assert.False(t, home.Loaded)
	status, _ = do(t, http.MethodGet, failing.URL+"/api/v1/sessions/"+home.SessionID+"/management")
	assert.Equal(t, http.StatusServiceUnavailable, status)
}

func TestLabelsEndpoint(t *testing.T) {
	ts := newTestServer(t, tripsOnly)
	home := createSession(t, ts)
	base := ts.URL + "/api/v1/sessions/" + home.SessionID

	status, env := do(t, http.MethodGet, base+"/labels/cities")
	require.Equal(t, http.StatusOK, status)
	var opts []struct {
		Code  int    `json:"code"`
		Label string `json:"label"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &opts))
	require.Len(t, opts, 2)
	assert.Equal(t, "Guará", opts[0].Label)

	status, _ = do(t, http.MethodGet, base+"/labels/modes")
	assert.Equal(t, http.StatusOK, status)

	status, _ = do(t, http.MethodGet, base+"/labels/colors")
	assert.Equal(t, http.StatusNotFound, status)
}

func TestSessionLifecycle(t *testing.T) {
	ts := newTestServer(t, tripsOnly)
	home := createSession(t, ts)
	base := ts.URL + "/api/v1/sessions/" + home.SessionID

	status, _ := do(t, http.MethodPost, base+"/reload")
	assert.Equal(t, http.StatusOK, status)

	status, _ = do(t, http.MethodDelete, base)
	assert.Equal(t, http.StatusNoContent, status)

	status, _ = do(t, http.MethodGet, base)
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = do(t, http.MethodDelete, base)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestMetricsEndpoint(t *testing.T) {
	ts := newTestServer(t, tripsOnly)
	resp, err := http.Get(ts.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestParseCities(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/trips?cities=6,%2014&cities=3", nil)
	got, err := parseCities(r)
	require.NoError(t, err)
	assert.Equal(t, []int{6, 14, 3}, got)

	r = httptest.NewRequest(http.MethodGet, "/trips", nil)
	got, err = parseCities(r)
	require.NoError(t, err)
	assert.Nil(t, got)

	// Options as listed by the labels endpoint are accepted too
	r = httptest.NewRequest(http.MethodGet, "/trips?cities=6%20-%20Guar%C3%A1,14%20-%20Plano%20Piloto", nil)
	got, err = parseCities(r)
	require.NoError(t, err)
	assert.Equal(t, []int{6, 14}, got)

	r = httptest.NewRequest(http.MethodGet, "/trips?cities=", nil)
	got, err = parseCities(r)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)

	r = httptest.NewRequest(http.MethodGet, "/trips?cities=6,Guar%C3%A1", nil)
	_, err = parseCities(r)
	assert.ErrorIs(t, err, errBadQuery)
}

func TestUnmatchedRouteLabel(t *testing.T) {
	ts := newTestServer(t, tripsOnly)
	status, _ := do(t, http.MethodGet, ts.URL+"/wp-admin/scan-7f3a")
	assert.Equal(t, http.StatusNotFound, status)

	families, err := prometheus.DefaultGatherer.Gather()
	require.NoError(t, err)
	var routes []string
	for _, f := range families {
		if f.GetName() != "odpanel_http_request_duration_seconds" {
			continue
		}
		for _, m := range f.GetMetric() {
			for _, l := range m.GetLabel() {
				if l.GetName() == "route" {
					routes = append(routes, l.GetValue())
				}
			}
		}
	}
	assert.Contains(t, routes, unmatchedRoute)
	assert.NotContains(t, routes, "/wp-admin/scan-7f3a")
}
