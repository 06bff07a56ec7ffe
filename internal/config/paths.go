package config

import (
	"os"
	"path/filepath"
)

// cacheDirName is the subdirectory of the user cache directory that holds
// downloaded assets and the generated favicon.
const cacheDirName = "markdown_server"

// CacheDir returns the server cache directory, honoring XDG_CACHE_HOME.
func CacheDir() string {
	return filepath.Join(getEnvOrDefault("XDG_CACHE_HOME", defaultCacheHome()), cacheDirName)
}

// EnsureCacheDir creates the cache directory, readable only by the owner.
func EnsureCacheDir() (string, error) {
	dir := CacheDir()
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", err
	}
	return dir, nil
}

// getEnvOrDefault returns the environment variable value or a default.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func defaultCacheHome() string {
	return filepath.Join(os.Getenv("HOME"), ".cache")
}
