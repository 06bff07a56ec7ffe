package server

import (
	"io"
	"net/http"
	"os"
	"strconv"

	"github.com/mrepper/markdown-server/internal/logging"
	"github.com/mrepper/markdown-server/internal/render"
)

// serveFile handles GET and HEAD for every path. One invocation owns the
// whole decision tree: resolve the path, honor conditional headers, then
// either stream the file verbatim or substitute the rendered markdown.
func (s *Server) serveFile(w http.ResponseWriter, r *http.Request) {
	res, err := s.resolver.Resolve(r.RequestURI)
	if err != nil {
		// Escape attempts get the same 404 as a missing file.
		s.notFound(w)
		return
	}

	if res.Redirect != "" {
		w.Header().Set("Location", res.Redirect)
		w.Header().Set("Content-Length", "0")
		w.WriteHeader(http.StatusMovedPermanently)
		return
	}
	if res.ListDir {
		s.listDirectory(w, r, res.Path)
		return
	}

	f, err := os.Open(res.Path)
	if err != nil {
		s.notFound(w)
		return
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		s.notFound(w)
		return
	}

	if notModifiedSince(r.Header, fi.ModTime()) {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	ctype := res.MIME
	var body []byte
	if isMarkdown(res.Path) {
		logging.Info().Str("path", r.URL.Path).Msg("requesting GitLab markdown rendering")
		raw, err := io.ReadAll(f)
		if err != nil {
			s.notFound(w)
			return
		}
		result, err := s.renderer.Render(r.Context(), string(raw))
		if err != nil {
			// Serve a displayable diagnostic page instead of an
			// error status.
			logging.Error().Err(err).Str("path", r.URL.Path).Msg("markdown rendering failed")
			result = render.ErrorPage(err)
		}
		body = result.Body
		ctype = result.Type
	}

	w.Header().Set("Content-Type", ctype)
	if body != nil {
		w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	} else {
		w.Header().Set("Content-Length", strconv.FormatInt(fi.Size(), 10))
	}
	w.Header().Set("Last-Modified", fi.ModTime().UTC().Format(http.TimeFormat))
	w.WriteHeader(http.StatusOK)

	if r.Method == http.MethodHead {
		return
	}
	if body != nil {
		w.Write(body)
		return
	}
	io.Copy(w, f)
}

func (s *Server) notFound(w http.ResponseWriter) {
	http.Error(w, "File not found", http.StatusNotFound)
}
