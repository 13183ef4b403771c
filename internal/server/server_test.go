package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"notes-app/internal/client/queries"
	"notes-app/internal/config"
	"notes-app/internal/model"
	"notes-app/internal/query"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := &config.Config{}
	cfg.ApplyDefaults()
	cfg.Server.Host = "127.0.0.1"
	cfg.Server.PortHTTP = 0
	cfg.Server.GracefulShutdownTimeout = 2
	cfg.API.WatchReconnectSeconds = 1
	cfg.Swagger.Enabled = true
	return cfg
}

func startServer(t *testing.T, cfg *config.Config) *Server {
	t.Helper()
	srv, err := NewServer(cfg, zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, srv.Initialize())
	errChan := srv.Start()
	t.Cleanup(func() {
		assert.NoError(t, srv.Shutdown())
		select {
		case err := <-errChan:
			t.Errorf("unexpected server error: %v", err)
		default:
		}
	})
	return srv
}

func get(t *testing.T, url string) (int, string) {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(b)
}

func TestServer_ServesAPIAndUI(t *testing.T) {
	srv := startServer(t, testConfig(t))
	base := "http://" + srv.HTTPAddr

	assert.Equal(t, base+"/api", srv.APIBaseURL)

	code, body := get(t, base+"/api/notes")
	require.Equal(t, http.StatusOK, code)
	var list []model.Note
	require.NoError(t, json.Unmarshal([]byte(body), &list))
	require.Len(t, list, 1)
	assert.Equal(t, "Welcome to Notes App", list[0].Title)

	code, body = get(t, base+"/")
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, "Welcome to Notes App")
	assert.Contains(t, body, "+ New Note")

	code, body = get(t, base+"/swagger.json")
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, `"basePath": "/api"`)
}

func TestServer_CustomBasePath(t *testing.T) {
	cfg := testConfig(t)
	cfg.API.BaseURL = "/backend/v1/"
	cfg.Mock.Seed = false
	srv := startServer(t, cfg)

	code, body := get(t, "http://"+srv.HTTPAddr+"/backend/v1/notes")

	assert.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `[]`, body)
}

func TestServer_SQLiteStorage(t *testing.T) {
	cfg := testConfig(t)
	cfg.Mock.Storage = "sqlite"
	cfg.Mock.SQLitePath = filepath.Join(t.TempDir(), "notes.sqlite")
	srv := startServer(t, cfg)

	code, body := get(t, "http://"+srv.HTTPAddr+"/api/notes/1")

	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, "Welcome to Notes App")
}

func TestServer_UnknownStorage(t *testing.T) {
	cfg := testConfig(t)
	cfg.Mock.Storage = "postgres"
	srv, err := NewServer(cfg, zerolog.Nop())
	require.NoError(t, err)
	defer srv.Shutdown()

	err = srv.Initialize()

	assert.ErrorContains(t, err, `unknown mock storage "postgres"`)
}

func TestServer_WatcherInvalidatesCache(t *testing.T) {
	cfg := testConfig(t)
	cfg.API.WatchEvents = true
	srv := startServer(t, cfg)
	ctx := context.Background()

	require.Eventually(t, func() bool { return srv.events.Subscribers() == 1 }, 3*time.Second, 20*time.Millisecond)
	require.True(t, srv.queries.Notes(ctx).IsSuccess())
	require.False(t, srv.queries.Cache().Invalidated(queries.Lists()))

	// Изменение в обход кэша приходит через поток событий
	_, err := srv.client.CreateNote(ctx, model.NoteRequest{Title: "from elsewhere"})
	require.NoError(t, err)

	assert.Eventually(t, func() bool {
		return srv.queries.Cache().Invalidated(queries.Lists())
	}, 3*time.Second, 20*time.Millisecond)

	res := srv.queries.Notes(ctx)
	require.Equal(t, query.StatusSuccess, res.Status)
	assert.Equal(t, "from elsewhere", res.Data[0].Title)
}
