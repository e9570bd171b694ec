package ghrel

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const latestJSON = `{
  "tag_name": "v0.3.1",
  "name": "Shifremen v0.3.1",
  "html_url": "https://github.com/pheianox/shifremen/releases/tag/v0.3.1",
  "published_at": "2023-02-11T10:00:00Z",
  "assets": [
    {"name": "shifremen_0.3.1_amd64.deb", "size": 5242880, "browser_download_url": "https://example.invalid/a.deb"},
    {"name": "shifremen_0.3.1_x64_en-US.msi", "size": 4194304, "browser_download_url": "https://example.invalid/a.msi"}
  ]
}`

func TestGetLatestRelease(t *testing.T) {
	t.Parallel()

	var gotPath, gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(latestJSON))
	}))
	t.Cleanup(srv.Close)

	rel, err := GetLatestRelease(context.Background(), srv.Client(), srv.URL, "pheianox", "shifremen", "secret")
	require.NoError(t, err)

	assert.Equal(t, "/repos/pheianox/shifremen/releases/latest", gotPath)
	assert.Equal(t, "Bearer secret", gotAuth)
	assert.Equal(t, "v0.3.1", rel.TagName)
	assert.Equal(t, "Shifremen v0.3.1", rel.Name)
	assert.Equal(t, time.Date(2023, 2, 11, 10, 0, 0, 0, time.UTC), rel.PublishedAt.UTC())
	require.Len(t, rel.Assets, 2)
	assert.Equal(t, Asset{
		Name:               "shifremen_0.3.1_amd64.deb",
		Size:               5242880,
		BrowserDownloadURL: "https://example.invalid/a.deb",
	}, rel.Assets[0])
}

func TestGetLatestRelease_NoToken(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"tag_name":"v1","assets":[]}`))
	}))
	t.Cleanup(srv.Close)

	rel, err := GetLatestRelease(context.Background(), srv.Client(), srv.URL+"/", "o", "r", "")
	require.NoError(t, err)
	assert.Equal(t, "v1", rel.TagName)
	assert.Empty(t, rel.Assets)
}

func TestGetLatestRelease_HTTPError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"Not Found"}`, http.StatusNotFound)
	}))
	t.Cleanup(srv.Close)

	_, err := GetLatestRelease(context.Background(), srv.Client(), srv.URL, "o", "r", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fetch latest release")
}

func TestGetLatestRelease_NonOKSuccess(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
		_, _ = w.Write([]byte(`{"tag_name":"v1","assets":[]}`))
	}))
	t.Cleanup(srv.Close)

	_, err := GetLatestRelease(context.Background(), srv.Client(), srv.URL, "o", "r", "")
	require.Error(t, err)
}

func TestGetLatestRelease_RequiresOwnerRepo(t *testing.T) {
	t.Parallel()

	_, err := GetLatestRelease(context.Background(), http.DefaultClient, "", "", "r", "")
	require.Error(t, err)
}

func TestFindAsset(t *testing.T) {
	t.Parallel()

	rel := &Release{Assets: []Asset{
		{Name: "a.deb", BrowserDownloadURL: "u1"},
		{Name: "b.msi"},
	}}

	a, err := FindAsset(rel, "a.deb")
	require.NoError(t, err)
	assert.Equal(t, "u1", a.BrowserDownloadURL)

	_, err = FindAsset(rel, "b.msi")
	assert.ErrorContains(t, err, "empty browser_download_url")

	_, err = FindAsset(rel, "c.dmg")
	assert.ErrorContains(t, err, "not found")

	_, err = FindAsset(nil, "a.deb")
	assert.Error(t, err)
}

func TestDownloadAsset(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("binary-payload"))
	}))
	t.Cleanup(srv.Close)

	out := filepath.Join(t.TempDir(), "nested", "app.deb")
	n, err := DownloadAsset(context.Background(), srv.Client(), Asset{
		Name:               "app.deb",
		BrowserDownloadURL: srv.URL + "/app.deb",
	}, out, "")
	require.NoError(t, err)
	assert.EqualValues(t, len("binary-payload"), n)

	b, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "binary-payload", string(b))
}

func TestDownloadAsset_FailureLeavesNoFile(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)

	dir := t.TempDir()
	out := filepath.Join(dir, "app.deb")
	_, err := DownloadAsset(context.Background(), srv.Client(), Asset{
		Name:               "app.deb",
		BrowserDownloadURL: srv.URL,
	}, out, "")
	require.Error(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "temp files must be cleaned up")
}

func TestWriteFileAtomically_EmptyPath(t *testing.T) {
	t.Parallel()

	err := WriteFileAtomically("", func(*os.File) error { return nil })
	assert.Error(t, err)
}
