package server

import (
	"fmt"
	"html"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
)

// listDirectory writes a bare-bones HTML index of dir. Entries come back
// from os.ReadDir already sorted by name; directories get a trailing slash
// so relative links keep working.
func (s *Server) listDirectory(w http.ResponseWriter, r *http.Request, dir string) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		s.notFound(w)
		return
	}

	title := "Directory listing for " + html.EscapeString(r.URL.Path)

	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n")
	fmt.Fprintf(&b, "<title>%s</title>\n</head>\n<body>\n<h1>%s</h1>\n<hr>\n<ul>\n", title, title)
	for _, entry := range entries {
		link := url.PathEscape(entry.Name())
		display := html.EscapeString(entry.Name())
		if entry.IsDir() {
			link += "/"
			display += "/"
		}
		fmt.Fprintf(&b, "<li><a href=\"%s\">%s</a></li>\n", link, display)
	}
	b.WriteString("</ul>\n<hr>\n</body>\n</html>\n")

	body := []byte(b.String())
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.WriteHeader(http.StatusOK)
	if r.Method != http.MethodHead {
		w.Write(body)
	}
}
