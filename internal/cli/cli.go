// Package cli implements the cygraph command-line interface.
//
// This package provides commands for converting property graphs between the
// JSON interchange format and OpenCypher bulk-load CSV tables, rendering
// graphs as diagrams, serving the conversion API over HTTP, and managing the
// render cache. The CLI is built using cobra and supports verbose logging
// via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - encode: Convert a JSON graph to vertex and edge CSV tables
//   - decode: Convert CSV tables back to a JSON graph
//   - render: Generate DOT, SVG, or PNG diagrams
//   - serve: Run the HTTP conversion and storage API
//   - cache: Manage the local render cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context to allow structured progress tracking.
package cli

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/cygraph/pkg/buildinfo"
	"github.com/matzehuels/cygraph/pkg/cache"
)

// appName is the application name used for directories and display.
const appName = "cygraph"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: log.NewWithOptions(w, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05.00",
			Level:           level,
		}),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "cygraph",
		Short:        "Cygraph converts property graphs to and from bulk-load CSV",
		Long:         `Cygraph is a CLI tool for converting directed property graphs between a JSON interchange format and the OpenCypher bulk-load CSV convention, with typed columns for vertices and edges.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.encodeCommand())
	root.AddCommand(c.decodeCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())

	return root
}

// newRenderCache builds the cache backing the render command.
func newRenderCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// cacheDir returns the cache directory using XDG standard (~/.cache/cygraph/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
