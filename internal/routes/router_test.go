package routes_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"cardsapi/internal/config"
	"cardsapi/internal/gallery"
	"cardsapi/internal/routes"

	"github.com/stretchr/testify/require"
)

func fakeNotion(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer secret_test" {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"object":"error","status":401,"code":"unauthorized","message":"API token is invalid."}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func testConfig(baseURL string) *config.Cfg {
	return &config.Cfg{
		NotionSecret:     "secret_test",
		NotionDatabaseID: "db-test",
		NotionBaseURL:    baseURL,
		NotionVersion:    "2022-06-28",
		PageSize:         100,
		CORSOrigin:       "*",
	}
}

const onePage = `{"results":[{"id":"p1","properties":{
	"Name":{"type":"title","title":[{"plain_text":"Hello"}]},
	"Attachment":{"type":"files","files":[{"type":"file","file":{"url":"https://s3.example/a.png"}}]}
}}],"has_more":false}`

func TestRouter_Cards(t *testing.T) {
	notionSrv := fakeNotion(t, http.StatusOK, onePage)
	r := routes.NewRouter(testConfig(notionSrv.URL), gallery.DefaultFields())

	for _, path := range []string{"/api/notion", "/api/items"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		require.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
		var body map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		require.Equal(t, true, body["ok"])
		require.EqualValues(t, 1, body["count"])
	}
}

func TestRouter_UpstreamStatusPassedThrough(t *testing.T) {
	notionSrv := fakeNotion(t, http.StatusOK, onePage)
	cfg := testConfig(notionSrv.URL)
	cfg.NotionSecret = "wrong"
	r := routes.NewRouter(cfg, gallery.DefaultFields())

	req := httptest.NewRequest(http.MethodGet, "/api/notion", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Contains(t, w.Body.String(), "API token is invalid.")
	require.Contains(t, w.Body.String(), `"hint"`)
}

func TestRouter_Health(t *testing.T) {
	notionSrv := fakeNotion(t, http.StatusOK, onePage)
	r := routes.NewRouter(testConfig(notionSrv.URL), gallery.DefaultFields())

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		OK       bool `json:"ok"`
		Services map[string]struct {
			OK     bool `json:"ok"`
			Status int  `json:"status"`
			Items  int  `json:"items"`
		} `json:"services"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.True(t, body.OK)
	require.True(t, body.Services["notion"].OK)
	require.Equal(t, 1, body.Services["notion"].Items)
}

func TestRouter_HealthWithoutConfig(t *testing.T) {
	cfg := testConfig("http://127.0.0.1:1")
	cfg.NotionDatabaseID = ""
	r := routes.NewRouter(cfg, gallery.DefaultFields())

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusServiceUnavailable, w.Code)
	require.Contains(t, w.Body.String(), "NOTION_DATABASE_ID")

	req = httptest.NewRequest(http.MethodGet, "/api/notion", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusInternalServerError, w.Code)
	require.Contains(t, w.Body.String(), "Missing environment variables")
}

func TestRouter_Preflight(t *testing.T) {
	r := routes.NewRouter(testConfig("http://127.0.0.1:1"), gallery.DefaultFields())

	req := httptest.NewRequest(http.MethodOptions, "/api/notion", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusNoContent, w.Code)
	require.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "GET")
}

func TestRouter_Metrics(t *testing.T) {
	notionSrv := fakeNotion(t, http.StatusOK, onePage)
	r := routes.NewRouter(testConfig(notionSrv.URL), gallery.DefaultFields())

	req := httptest.NewRequest(http.MethodGet, "/api/notion", nil)
	r.ServeHTTP(httptest.NewRecorder(), req)

	req = httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.True(t, strings.Contains(w.Body.String(), "cardsapi_notion_requests_total"))
}

func TestRouter_UnknownPathsShareMetricsLabel(t *testing.T) {
	r := routes.NewRouter(testConfig("http://127.0.0.1:1"), gallery.DefaultFields())

	for _, path := range []string{"/no-such-page-a", "/no-such-page-b"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		require.Equal(t, http.StatusNotFound, w.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	out := w.Body.String()
	require.NotContains(t, out, "no-such-page")
	require.Equal(t, 1, strings.Count(out, `cardsapi_http_requests_total{route="unmatched",status="404"}`))
}
