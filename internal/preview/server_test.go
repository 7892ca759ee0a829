package preview_test

import (
	"context"
	"encoding/json"
	"image"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/planforge/internal/app"
	"github.com/alexanderramin/planforge/internal/export"
	"github.com/alexanderramin/planforge/internal/preview"
	"github.com/alexanderramin/planforge/internal/repository"
	"github.com/alexanderramin/planforge/internal/testutil"
	"github.com/alexanderramin/planforge/internal/view"
)

type boxRasterizer struct{}

func (boxRasterizer) Capture(context.Context, string, string, export.RasterOptions) ([]image.Image, error) {
	return []image.Image{image.NewRGBA(image.Rect(0, 0, 40, 30))}, nil
}

func newServer(t *testing.T) (*httptest.Server, repository.KVStore) {
	t.Helper()
	database := testutil.NewTestDB(t)
	store := repository.NewSQLiteKVRepo(database, 0)
	renderer, err := view.NewRenderer()
	require.NoError(t, err)
	ws := app.NewWorkspace(
		app.NewServices(store, testutil.NewTestUoW(database), 0, nil),
		renderer,
		export.NewExporter(boxRasterizer{}, export.WithClock(func() time.Time {
			return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		})),
	)
	srv := httptest.NewServer(preview.New(ws, nil).Handler())
	t.Cleanup(srv.Close)
	return srv, store
}

func get(t *testing.T, url string) (*http.Response, string) {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

func TestHealthz(t *testing.T) {
	srv, _ := newServer(t)
	resp, body := get(t, srv.URL+"/healthz")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"status":"ok"}`, body)
}

func TestIndexLinksArtifacts(t *testing.T) {
	srv, _ := newServer(t)
	resp, body := get(t, srv.URL+"/")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")
	assert.Contains(t, body, "/artifacts/canvas")
}

func TestArtifactPage(t *testing.T) {
	srv, store := newServer(t)
	require.NoError(t, store.Set(context.Background(), repository.KeyCanvas, `{"channels":"Farmers markets"}`))

	resp, body := get(t, srv.URL+"/artifacts/canvas")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `id="canvas-content"`)
	assert.Contains(t, body, "Farmers markets")

	resp, _ = get(t, srv.URL+"/artifacts/nope")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestExportAttachment(t *testing.T) {
	srv, _ := newServer(t)

	resp, body := get(t, srv.URL+"/export/roadmap.png")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/png", resp.Header.Get("Content-Type"))
	assert.Equal(t, `attachment; filename="roadmap.png"`, resp.Header.Get("Content-Disposition"))
	assert.True(t, strings.HasPrefix(body, "\x89PNG"))
}

func TestExportNativeDeck(t *testing.T) {
	srv, _ := newServer(t)

	resp, _ := get(t, srv.URL+"/export/deck.pptx?mode=native")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, `attachment; filename="pitch-deck.pptx"`, resp.Header.Get("Content-Disposition"))
}

func TestExportErrors(t *testing.T) {
	srv, _ := newServer(t)

	resp, _ := get(t, srv.URL+"/export/canvas.docx")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = get(t, srv.URL+"/export/canvas.pptx")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = get(t, srv.URL+"/export/unknown.png")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = get(t, srv.URL+"/export/deck.pptx?mode=vector")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestBackupRoundTrip(t *testing.T) {
	srv, store := newServer(t)
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, repository.KeyRoadmap, `[{"id":"m1","title":"Launch"}]`))

	resp, body := get(t, srv.URL+"/backup")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "business-plan-backup-")

	require.NoError(t, store.Delete(ctx, repository.KeyRoadmap))

	post, err := http.Post(srv.URL+"/backup", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer post.Body.Close()
	require.Equal(t, http.StatusOK, post.StatusCode)

	var out struct {
		Restored []string `json:"restored"`
	}
	require.NoError(t, json.NewDecoder(post.Body).Decode(&out))
	assert.Equal(t, []string{"roadmap"}, out.Restored)

	v, found, err := store.Get(ctx, repository.KeyRoadmap)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, `[{"id":"m1","title":"Launch"}]`, v)
}

func TestRestoreRejectsInvalidBody(t *testing.T) {
	srv, _ := newServer(t)

	resp, err := http.Post(srv.URL+"/backup", "application/json", strings.NewReader("not json"))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
