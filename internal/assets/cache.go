package assets

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/mrepper/markdown-server/internal/logging"
)

// Cache downloads the manifest's assets into a local directory so rendered
// pages can reference them without touching the remote host again.
type Cache struct {
	// Dir is the cache directory the assets are written under.
	Dir string
	// Host is the GitLab host the assets are fetched from.
	Host string
	// BaseURL overrides the https://Host origin. Used by tests.
	BaseURL string
	// Client is the HTTP client used for asset downloads.
	Client *http.Client

	Manifest Manifest
}

// NewCache returns a Cache for the given directory and host.
func NewCache(dir, host string, client *http.Client) *Cache {
	if client == nil {
		client = http.DefaultClient
	}
	return &Cache{
		Dir:      dir,
		Host:     host,
		Client:   client,
		Manifest: DefaultManifest(),
	}
}

// Ensure makes every manifest asset present on disk, fetching only the ones
// that are missing, and (re)writes the favicon. Individual download
// failures are logged and skipped so a missing asset never prevents the
// server from starting; only favicon write errors are returned.
func (c *Cache) Ensure(ctx context.Context) error {
	for _, name := range c.Manifest.All() {
		dest := filepath.Join(c.Dir, DirName, filepath.FromSlash(name))
		if _, err := os.Stat(dest); err == nil {
			continue
		}
		if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
			logging.Warn().Err(err).Str("asset", name).Msg("failed to create asset directory")
			continue
		}
		if err := c.fetch(ctx, name, dest); err != nil {
			logging.Warn().Err(err).Str("asset", name).Msg("failed to download asset")
			continue
		}
		logging.Info().Str("path", dest).Msg("wrote GitLab asset file")
	}

	return os.WriteFile(filepath.Join(c.Dir, FaviconName), Favicon(), 0o644)
}

// fetch streams one asset to dest, writing through a temp file so a partial
// download never satisfies the exists-means-current check.
func (c *Cache) fetch(ctx context.Context, name, dest string) error {
	base := c.BaseURL
	if base == "" {
		base = "https://" + c.Host
	}
	url := base + "/assets/" + name

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := c.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("GET %s: status %d", url, resp.StatusCode)
	}

	tmp, err := os.CreateTemp(filepath.Dir(dest), ".asset-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, resp.Body); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), dest)
}
