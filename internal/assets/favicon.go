package assets

import "regexp"

// FaviconName is the favicon's filename inside the cache directory and its
// reserved URL path (under "/").
const FaviconName = "favicon.svg"

const faviconTemplate = `<svg xmlns="http://www.w3.org/2000/svg" version="1.1" width="208" height="128" viewBox="0 0 208 128">
    <mask id="mask">
        <rect style="fill:#fff" width="100%" height="100%" />
        <path d="m 30,98 0,-68 20,0 20,25 20,-25 20,0 0,68 -20,0 0,-39 -20,25 -20,-25 0,39 z" />
        <path d="m 155,98 -30,-33 20,0 0,-35 20,0 0,35 20,0 z" />
    </mask>
    <rect width="100%" height="100%" ry="15" mask="url(#mask)" />
</svg>`

var faviconWhitespace = regexp.MustCompile(`\s*\n\s*`)

// Favicon returns the favicon SVG with inter-tag whitespace stripped.
func Favicon() []byte {
	return []byte(faviconWhitespace.ReplaceAllString(faviconTemplate, ""))
}
