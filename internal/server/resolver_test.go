package server

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestResolver(t *testing.T) (*Resolver, string, string) {
	t.Helper()
	root := t.TempDir()
	cache := t.TempDir()
	return &Resolver{Root: root, AssetRoot: cache}, root, cache
}

func TestResolveEscapeAttempts(t *testing.T) {
	rv, _, _ := newTestResolver(t)

	paths := []string{
		"/../secret.txt",
		"/../../etc/passwd",
		"/%2e%2e/%2e%2e/etc/passwd",
		"/docs/../../../etc/passwd",
		"/_gitlab_assets/../../etc/passwd",
	}
	for _, p := range paths {
		_, err := rv.Resolve(p)
		assert.Error(t, err, "path %q must not resolve", p)
	}
}

func TestResolveFile(t *testing.T) {
	rv, root, _ := newTestResolver(t)
	require.NoError(t, os.WriteFile(filepath.Join(root, "style.css"), []byte("body{}"), 0o644))

	res, err := rv.Resolve("/style.css")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "style.css"), res.Path)
	assert.True(t, strings.HasPrefix(res.MIME, "text/css"), "got %q", res.MIME)
}

func TestResolveUnknownExtension(t *testing.T) {
	rv, root, _ := newTestResolver(t)

	res, err := rv.Resolve("/blob.xyz123")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "blob.xyz123"), res.Path)
	assert.Equal(t, "application/octet-stream", res.MIME)
}

func TestResolvePercentDecoding(t *testing.T) {
	rv, root, _ := newTestResolver(t)
	require.NoError(t, os.WriteFile(filepath.Join(root, "my file.txt"), []byte("x"), 0o644))

	res, err := rv.Resolve("/my%20file.txt")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "my file.txt"), res.Path)
}

func TestResolveDirectoryRedirect(t *testing.T) {
	rv, root, _ := newTestResolver(t)
	require.NoError(t, os.Mkdir(filepath.Join(root, "docs"), 0o755))

	res, err := rv.Resolve("/docs")
	require.NoError(t, err)
	assert.Equal(t, "/docs/", res.Redirect)
}

func TestResolveDirectoryRedirectKeepsQuery(t *testing.T) {
	rv, root, _ := newTestResolver(t)
	require.NoError(t, os.Mkdir(filepath.Join(root, "docs"), 0o755))

	res, err := rv.Resolve("/docs?sort=name")
	require.NoError(t, err)
	assert.Equal(t, "/docs/?sort=name", res.Redirect)
}

func TestResolveDirectoryIndex(t *testing.T) {
	rv, root, _ := newTestResolver(t)
	require.NoError(t, os.Mkdir(filepath.Join(root, "docs"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "docs", "index.html"), []byte("<html>"), 0o644))

	res, err := rv.Resolve("/docs/")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "docs", "index.html"), res.Path)
	assert.False(t, res.ListDir)
}

func TestResolveDirectoryListing(t *testing.T) {
	rv, root, _ := newTestResolver(t)
	require.NoError(t, os.Mkdir(filepath.Join(root, "docs"), 0o755))

	res, err := rv.Resolve("/docs/")
	require.NoError(t, err)
	assert.True(t, res.ListDir)
	assert.Equal(t, filepath.Join(root, "docs"), res.Path)
}

func TestResolveTrailingSlashOnFile(t *testing.T) {
	rv, root, _ := newTestResolver(t)
	require.NoError(t, os.WriteFile(filepath.Join(root, "file.txt"), []byte("x"), 0o644))

	_, err := rv.Resolve("/file.txt/")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestResolveAssetRoot(t *testing.T) {
	rv, _, cache := newTestResolver(t)

	res, err := rv.Resolve("/_gitlab_assets/app.css")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(cache, "_gitlab_assets", "app.css"), res.Path)

	res, err = rv.Resolve("/favicon.svg")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(cache, "favicon.svg"), res.Path)
}
