package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bgentry/go-netrc/netrc"
	"github.com/joho/godotenv"
)

// ErrNoToken indicates that no GitLab API token could be resolved from any
// source. It is fatal: the server must not start without a token.
var ErrNoToken = errors.New("no GitLab API token provided")

// ResolveToken resolves the GitLab API token, trying sources in order:
//
//  1. tokenFile, if non-empty (contents are whitespace-trimmed)
//  2. the GITLAB_TOKEN environment variable (a .env file in the working
//     directory is loaded first, if present)
//  3. the netrc entry for host
//
// Returns ErrNoToken when every source comes up empty.
func ResolveToken(tokenFile, host string) (string, error) {
	if tokenFile != "" {
		data, err := os.ReadFile(tokenFile)
		if err != nil {
			return "", fmt.Errorf("read token file: %w", err)
		}
		token := strings.TrimSpace(string(data))
		if token == "" {
			return "", fmt.Errorf("token file %s is empty: %w", tokenFile, ErrNoToken)
		}
		return token, nil
	}

	_ = godotenv.Load()
	if token := os.Getenv("GITLAB_TOKEN"); token != "" {
		return token, nil
	}

	if token := netrcLookup(host); token != "" {
		return token, nil
	}

	return "", ErrNoToken
}

// netrcLookup returns the netrc password for host, or empty. The NETRC
// environment variable overrides the default ~/.netrc location. Parse
// failures and missing files are treated as "no entry".
func netrcLookup(host string) string {
	path := os.Getenv("NETRC")
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		path = filepath.Join(home, ".netrc")
	}

	rc, err := netrc.ParseFile(path)
	if err != nil {
		return ""
	}

	machine := rc.FindMachine(host)
	if machine == nil {
		return ""
	}
	return machine.Password
}
