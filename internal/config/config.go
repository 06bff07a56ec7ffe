// Package config provides server configuration and credential resolution.
package config

// ServerConfig holds the process-wide configuration. It is built once at
// startup and never mutated afterwards, so it is safe to share across
// concurrently handled requests without locking.
type ServerConfig struct {
	// Bind is the address to listen on.
	Bind string
	// Port is the TCP port to listen on.
	Port int
	// Root is the absolute path of the served directory.
	Root string
	// GitLabHost is the hostname of the GitLab instance used for
	// markdown rendering and asset downloads.
	GitLabHost string
	// Project is an optional "group/project" identifier passed to the
	// renderer so project-relative references resolve.
	Project string
	// Token is the GitLab API token. Empty means no token was found.
	Token string
	// CacheDir is the directory holding downloaded GitLab assets and
	// the generated favicon.
	CacheDir string
}
