// Package render turns raw markdown into a self-contained HTML document by
// way of the GitLab markdown rendering API.
package render

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"github.com/mrepper/markdown-server/internal/assets"
)

// RenderError indicates the rendering API returned a non-success status.
type RenderError struct {
	Status int
	URL    string
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render request to %s returned status %d", e.URL, e.Status)
}

// Result is a rendered document ready to be served.
type Result struct {
	Body []byte
	Type string
}

// Len returns the body length, used as the response Content-Length.
func (r *Result) Len() int { return len(r.Body) }

// Renderer renders markdown via a GitLab instance's /api/v4/markdown
// endpoint. It is safe for concurrent use.
type Renderer struct {
	// Host is the GitLab host rendering requests go to.
	Host string
	// BaseURL overrides the https://Host origin. Used by tests.
	BaseURL string
	// Token is sent as the PRIVATE-TOKEN header.
	Token string
	// Project, when non-empty, is passed so project-relative references
	// (issues, merge requests, members) resolve.
	Project string
	// Client is the HTTP client used for rendering calls.
	Client *http.Client

	Manifest assets.Manifest
}

// New returns a Renderer for the given GitLab host.
func New(host, token, project string, client *http.Client) *Renderer {
	if client == nil {
		client = http.DefaultClient
	}
	return &Renderer{
		Host:     host,
		Token:    token,
		Project:  project,
		Client:   client,
		Manifest: assets.DefaultManifest(),
	}
}

type renderRequest struct {
	Text    string `json:"text"`
	GFM     bool   `json:"gfm"`
	Project string `json:"project,omitempty"`
}

type renderResponse struct {
	HTML string `json:"html"`
}

// The GitLab API emits <pre> blocks with class "code" but without the
// "white" theme class the highlight stylesheet keys on.
var preCodeClass = regexp.MustCompile(`<pre ([^>]* *)class="code `)

// Render sends markdown to the rendering API and wraps the returned HTML
// fragment in a complete document referencing the locally cached assets.
// A non-201 API response yields a *RenderError.
func (r *Renderer) Render(ctx context.Context, markdown string) (*Result, error) {
	base := r.BaseURL
	if base == "" {
		base = "https://" + r.Host
	}
	url := base + "/api/v4/markdown"

	payload, err := json.Marshal(renderRequest{
		Text:    markdown,
		GFM:     true,
		Project: r.Project,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	req.Header.Set("PRIVATE-TOKEN", r.Token)

	resp, err := r.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("render request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return nil, &RenderError{Status: resp.StatusCode, URL: url}
	}

	var body renderResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode render response: %w", err)
	}

	html := preCodeClass.ReplaceAllString(body.HTML, `<pre ${1}class="code white `)

	return &Result{
		Body: r.wrapDocument(html),
		Type: "text/html",
	}, nil
}

// wrapDocument builds the final HTML document around a rendered fragment.
// All asset references point at this server's reserved paths, never at the
// GitLab origin.
func (r *Renderer) wrapDocument(html string) []byte {
	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n")
	b.WriteString(`<html class="" lang="en">` + "\n")
	b.WriteString("<meta charset=\"utf-8\">\n")
	b.WriteString("<head>\n")
	b.WriteString(`<link rel="icon" href="/` + assets.FaviconName + `">` + "\n")
	for _, css := range r.Manifest.CSS {
		fmt.Fprintf(&b, "<link rel=\"stylesheet\" href=\"/%s/%s\">\n", assets.DirName, css)
	}
	for _, font := range r.Manifest.Fonts {
		fmt.Fprintf(&b, "<link as=\"font\" crossorigin=\"\" href=\"/%s/%s\" rel=\"preload\">\n", assets.DirName, font)
	}
	b.WriteString("</head>\n")
	b.WriteString("<body>\n")
	b.WriteString(`<div class="file-content md">` + "\n")
	b.WriteString(strings.TrimSpace(html))
	b.WriteString("\n</div>\n")
	b.WriteString("</body>\n")
	b.WriteString("</html>\n")
	return []byte(b.String())
}

// ErrorPage builds the degraded response body served when rendering fails.
// The page is served with status 200 so the browser always shows something
// displayable.
func ErrorPage(err error) *Result {
	var msg string
	var re *RenderError
	if errors.As(err, &re) {
		msg = fmt.Sprintf("Internal error. Status code %d from %s.", re.Status, re.URL)
	} else {
		msg = fmt.Sprintf("Internal error. Markdown rendering failed: %v.", err)
	}
	return &Result{
		Body: []byte("<html>" + msg + "</html>"),
		Type: "text/html",
	}
}
