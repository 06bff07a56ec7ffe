package server

import (
	"errors"
	"mime"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/mrepper/markdown-server/internal/assets"
)

var (
	// ErrNotFound indicates the request path has no servable file.
	ErrNotFound = errors.New("file not found")
	// ErrPathEscape indicates the request path resolves outside the
	// active root. Reported to clients as a plain 404.
	ErrPathEscape = errors.New("path escapes served root")
)

// Resolution is the outcome of resolving a request path. Exactly one of
// the three shapes applies: a redirect (Redirect non-empty), a directory
// listing (ListDir set, Path is the directory), or a file (Path and MIME
// set).
type Resolution struct {
	Path     string
	MIME     string
	Redirect string
	ListDir  bool
}

// Resolver maps request paths onto the filesystem. Paths under the
// reserved asset prefix (and the favicon) resolve against AssetRoot
// instead of Root; everything else must stay inside Root.
type Resolver struct {
	// Root is the absolute served directory.
	Root string
	// AssetRoot is the absolute cache directory holding GitLab assets.
	AssetRoot string
}

// Resolve maps a raw request URI to a Resolution. The request path is
// attacker-controlled, so any path resolving outside the active root is
// rejected with ErrPathEscape.
func (rv *Resolver) Resolve(rawURI string) (Resolution, error) {
	u, err := url.ParseRequestURI(rawURI)
	if err != nil {
		return Resolution{}, ErrNotFound
	}
	upath := u.Path
	hadSlash := strings.HasSuffix(upath, "/")

	root := rv.Root
	if strings.HasPrefix(upath, "/"+assets.DirName+"/") || upath == "/"+assets.FaviconName {
		root = rv.AssetRoot
	}

	fsPath := filepath.Join(root, filepath.FromSlash(upath))
	if fsPath != root && !strings.HasPrefix(fsPath, root+string(filepath.Separator)) {
		return Resolution{}, ErrPathEscape
	}

	if fi, err := os.Stat(fsPath); err == nil && fi.IsDir() {
		if !hadSlash {
			// redirect browser, doing basically what apache does
			redirect := *u
			redirect.Path = upath + "/"
			return Resolution{Redirect: redirect.String()}, nil
		}
		for _, index := range []string{"index.html", "index.htm"} {
			candidate := filepath.Join(fsPath, index)
			if _, err := os.Stat(candidate); err == nil {
				return Resolution{Path: candidate, MIME: mimeType(candidate)}, nil
			}
		}
		return Resolution{Path: fsPath, ListDir: true}, nil
	}

	// A trailing slash on anything but a directory is not servable,
	// even on platforms that would accept it as a filename.
	if hadSlash {
		return Resolution{}, ErrNotFound
	}

	return Resolution{Path: fsPath, MIME: mimeType(fsPath)}, nil
}

// mimeType guesses a content type from the file extension alone.
func mimeType(path string) string {
	if ctype := mime.TypeByExtension(filepath.Ext(path)); ctype != "" {
		return ctype
	}
	return "application/octet-stream"
}

// isMarkdown reports whether path should be routed through the renderer.
func isMarkdown(path string) bool {
	return strings.HasSuffix(strings.ToLower(path), ".md")
}
