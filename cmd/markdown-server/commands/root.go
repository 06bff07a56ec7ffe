// Package commands provides the CLI for the markdown server.
package commands

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/mrepper/markdown-server/internal/assets"
	"github.com/mrepper/markdown-server/internal/config"
	"github.com/mrepper/markdown-server/internal/logging"
	"github.com/mrepper/markdown-server/internal/render"
	"github.com/mrepper/markdown-server/internal/server"
)

// Version information set at build time
var Version = "0.1.0"

var (
	bind          string
	port          int
	directory     string
	gitlabServer  string
	gitlabTokenFile   string
	gitlabProject string
	logLevel      string
	prettyLogs    bool
)

var rootCmd = &cobra.Command{
	Use:   "markdown-server",
	Short: "Local file server that renders markdown through GitLab",
	Long: `markdown-server serves a local directory over HTTP. Requests for
markdown files are rendered to HTML by a GitLab instance's markdown API,
so pages look the way GitLab would display them, including GFM extensions.

A GitLab API token is required; it is read from --gitlab-token-file, the
GITLAB_TOKEN environment variable, or your netrc file, in that order.`,
	Version:      Version,
	SilenceUsage: true,
	RunE:         runServe,
}

func init() {
	rootCmd.Flags().StringVarP(&bind, "bind", "b", "127.0.0.1", "Address to bind to")
	rootCmd.Flags().IntVarP(&port, "port", "p", 9000, "Port to listen on")
	rootCmd.Flags().StringVarP(&directory, "directory", "d", ".", "Directory to serve from")
	rootCmd.Flags().StringVar(&gitlabServer, "gitlab-server", "gitlab.com", "GitLab server hostname")
	rootCmd.Flags().StringVar(&gitlabTokenFile, "gitlab-token-file", "", "File containing the GitLab API token")
	rootCmd.Flags().StringVar(&gitlabProject, "gitlab-project", "", "GitLab project (group/project) used as rendering context")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "INFO", "Log level (DEBUG|INFO|WARN|ERROR)")
	rootCmd.PersistentFlags().BoolVar(&prettyLogs, "pretty-logs", false, "Human-readable log output")

	rootCmd.SetVersionTemplate(fmt.Sprintf("markdown-server %s\n", Version))
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func runServe(cmd *cobra.Command, args []string) error {
	logging.Init(logging.Config{
		Level:  logging.ParseLevel(logLevel),
		Pretty: prettyLogs,
	})

	root, err := filepath.Abs(directory)
	if err != nil {
		return err
	}
	if resolved, err := filepath.EvalSymlinks(root); err == nil {
		root = resolved
	}

	cacheDir, err := config.EnsureCacheDir()
	if err != nil {
		return fmt.Errorf("create cache directory: %w", err)
	}

	token, err := config.ResolveToken(gitlabTokenFile, gitlabServer)
	if err != nil {
		return err
	}

	cfg := &config.ServerConfig{
		Bind:       bind,
		Port:       port,
		Root:       root,
		GitLabHost: gitlabServer,
		Project:    gitlabProject,
		Token:      token,
		CacheDir:   cacheDir,
	}

	logging.Info().Str("host", cfg.GitLabHost).Msg("downloading GitLab asset files")
	cache := assets.NewCache(cfg.CacheDir, cfg.GitLabHost, &http.Client{Timeout: 15 * time.Second})
	if err := cache.Ensure(cmd.Context()); err != nil {
		return fmt.Errorf("write favicon: %w", err)
	}

	renderer := render.New(cfg.GitLabHost, cfg.Token, cfg.Project, &http.Client{Timeout: 30 * time.Second})

	srvConfig := server.DefaultConfig()
	srvConfig.Bind = cfg.Bind
	srvConfig.Port = cfg.Port
	srvConfig.Root = cfg.Root
	srvConfig.CacheDir = cfg.CacheDir

	srv := server.New(srvConfig, renderer)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()
	logging.Info().Str("root", cfg.Root).Msgf("markdown server started at http://%s", srv.Addr())

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	logging.Info().Msg("markdown server stopped")
	return nil
}
