package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	neturl "net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"statlab/adapters/gonumdist"
	"statlab/adapters/store"
	"statlab/app"
	"statlab/domain/analysis"
	"statlab/internal/errors"
)

func newTestServer(t *testing.T) (*httptest.Server, string) {
	t.Helper()

	dir := t.TempDir()
	source := store.NewFileSource(dir)
	service := app.NewAnalysisService(gonumdist.New())
	handler := NewHandler(source, service, nil)

	server := httptest.NewServer(handler.Routes())
	t.Cleanup(server.Close)
	return server, dir
}

func writeSample(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
}

func decodeJSON(t *testing.T, resp *http.Response, into interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(into))
}

func TestListSamples(t *testing.T) {
	server, dir := newTestServer(t)
	writeSample(t, dir, "lab.json", `{"values": [1, 2, 3]}`)

	resp, err := http.Get(server.URL + "/samples")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Samples []string `json:"samples"`
	}
	decodeJSON(t, resp, &body)
	assert.Equal(t, []string{"lab"}, body.Samples)
}

func TestAnalyzeSampleByName(t *testing.T) {
	server, dir := newTestServer(t)
	writeSample(t, dir, "lab.json", `{
		"values": [2, 4, 4, 4, 5, 5, 7, 9],
		"confidence": 0.95,
		"meanConfidenceIntervalWithUnknownVariance": true
	}`)

	resp, err := http.Post(server.URL+"/samples/lab/analyze", "application/json", nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var report analysis.Report
	decodeJSON(t, resp, &report)

	require.NotNil(t, report.Record.Statistics.Mean)
	assert.InDelta(t, 5.0, *report.Record.Statistics.Mean, 1e-12)

	result := report.Intervals[analysis.MeanUnknownVariance]
	require.False(t, result.Failed())
	assert.InDelta(t, 5.0, (result.Interval.Low+result.Interval.High)/2, 1e-9)
}

func TestAnalyzeSampleNotFound(t *testing.T) {
	server, _ := newTestServer(t)

	resp, err := http.Post(server.URL+"/samples/ghost/analyze", "application/json", nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	var body map[string]string
	decodeJSON(t, resp, &body)
	assert.Equal(t, errors.CodeNotFound, body["code"])
}

func TestAnalyzeSampleRejectsTraversalName(t *testing.T) {
	server, _ := newTestServer(t)

	url := server.URL + "/samples/" + neturl.PathEscape("../outside") + "/analyze"
	resp, err := http.Post(url, "application/json", nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body map[string]string
	decodeJSON(t, resp, &body)
	assert.Equal(t, errors.CodeInvalidParameter, body["code"])
}

func TestAnalyzeInlineRecord(t *testing.T) {
	server, _ := newTestServer(t)

	payload := `{"variationalSeries": {"1": 3, "2": 5}}`
	resp, err := http.Post(server.URL+"/analyze", "application/json", strings.NewReader(payload))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var report analysis.Report
	decodeJSON(t, resp, &report)
	assert.InDelta(t, 1.625, *report.Record.Statistics.Mean, 1e-12)
}

func TestAnalyzeRejectsBothShapes(t *testing.T) {
	server, _ := newTestServer(t)

	payload := `{"values": [1], "variationalSeries": {"1": 1}}`
	resp, err := http.Post(server.URL+"/analyze", "application/json", strings.NewReader(payload))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body map[string]string
	decodeJSON(t, resp, &body)
	assert.Equal(t, errors.CodeMalformedInput, body["code"])
}

func TestAnalyzeRejectsInvalidBody(t *testing.T) {
	server, _ := newTestServer(t)

	resp, err := http.Post(server.URL+"/analyze", "application/json", strings.NewReader("not json"))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAnalyzeHTMLFormat(t *testing.T) {
	server, _ := newTestServer(t)

	payload := `{"values": [1, 2, 3]}`
	resp, err := http.Post(server.URL+"/analyze?format=html", "application/json", strings.NewReader(payload))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")
}
