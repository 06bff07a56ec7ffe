package assets

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrepper/markdown-server/internal/logging"
)

func TestMain(m *testing.M) {
	logging.Init(logging.Config{Level: logging.ErrorLevel, Output: io.Discard})
	os.Exit(m.Run())
}

func newTestCache(t *testing.T, handler http.HandlerFunc) (*Cache, *int64) {
	t.Helper()
	var requests int64
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&requests, 1)
		handler(w, r)
	}))
	t.Cleanup(ts.Close)

	c := NewCache(t.TempDir(), "gitlab.example.com", ts.Client())
	c.BaseURL = ts.URL
	return c, &requests
}

func serveAsset(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte("asset: " + r.URL.Path))
}

func TestEnsureDownloadsAllAssets(t *testing.T) {
	c, requests := newTestCache(t, serveAsset)

	require.NoError(t, c.Ensure(context.Background()))

	all := c.Manifest.All()
	assert.Equal(t, int64(len(all)), *requests)
	for _, name := range all {
		path := filepath.Join(c.Dir, DirName, filepath.FromSlash(name))
		fi, err := os.Stat(path)
		require.NoError(t, err, "asset %s must exist", name)
		assert.Equal(t, os.FileMode(0o644), fi.Mode().Perm())

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "asset: /assets/"+name, string(data))
	}
}

func TestEnsureIsIdempotent(t *testing.T) {
	c, requests := newTestCache(t, serveAsset)

	require.NoError(t, c.Ensure(context.Background()))
	first := *requests

	// Everything is on disk now; the second pass must stay offline.
	require.NoError(t, c.Ensure(context.Background()))
	assert.Equal(t, first, *requests)
}

func TestEnsureSkipsFailedAssets(t *testing.T) {
	c, _ := newTestCache(t, func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.URL.Path, "icon_anchor") {
			http.Error(w, "gone", http.StatusNotFound)
			return
		}
		serveAsset(w, r)
	})

	require.NoError(t, c.Ensure(context.Background()))

	for _, name := range c.Manifest.All() {
		path := filepath.Join(c.Dir, DirName, filepath.FromSlash(name))
		_, err := os.Stat(path)
		if strings.Contains(name, "icon_anchor") {
			assert.Error(t, err, "failed asset must be absent")
		} else {
			assert.NoError(t, err, "asset %s must exist", name)
		}
	}
}

func TestEnsureUnreachableHostStillWritesFavicon(t *testing.T) {
	c := NewCache(t.TempDir(), "gitlab.example.com", &http.Client{})
	c.BaseURL = "http://127.0.0.1:1"

	require.NoError(t, c.Ensure(context.Background()))

	data, err := os.ReadFile(filepath.Join(c.Dir, FaviconName))
	require.NoError(t, err)
	assert.Equal(t, Favicon(), data)
}

func TestEnsureRegeneratesFavicon(t *testing.T) {
	c, _ := newTestCache(t, serveAsset)
	favPath := filepath.Join(c.Dir, FaviconName)
	require.NoError(t, os.WriteFile(favPath, []byte("stale"), 0o644))

	require.NoError(t, c.Ensure(context.Background()))

	data, err := os.ReadFile(favPath)
	require.NoError(t, err)
	assert.Equal(t, Favicon(), data)
}

func TestFaviconIsSingleLine(t *testing.T) {
	fav := string(Favicon())
	assert.True(t, strings.HasPrefix(fav, "<svg"))
	assert.True(t, strings.HasSuffix(fav, "</svg>"))
	assert.NotContains(t, fav, "\n")
}
