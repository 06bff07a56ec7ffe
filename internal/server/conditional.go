package server

import (
	"net/http"
	"time"
)

// notModifiedSince reports whether a request's If-Modified-Since header
// proves the client already has the current file, so a 304 suffices.
//
// The date comparison is deliberately conservative: only header dates in
// UTC (or with no timezone at all, which the obsolete formats imply is
// UTC) can match; an explicit non-UTC offset always serves full content.
// If-None-Match is a stronger validator, so its presence disables the
// date check entirely. Malformed dates are treated as no header.
func notModifiedSince(h http.Header, modTime time.Time) bool {
	ims := h.Get("If-Modified-Since")
	if ims == "" || h.Get("If-None-Match") != "" {
		return false
	}

	t, err := http.ParseTime(ims)
	if err != nil {
		return false
	}
	if zone, offset := t.Zone(); offset != 0 || (zone != "GMT" && zone != "UTC" && zone != "") {
		return false
	}

	// The header has second resolution; drop the file's sub-second part
	// so an mtime of 12:00:00.5 still matches a header of 12:00:00.
	return !modTime.Truncate(time.Second).After(t)
}
