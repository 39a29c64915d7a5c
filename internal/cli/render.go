package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/cygraph/pkg/cache"
	"github.com/matzehuels/cygraph/pkg/graph"
	graphio "github.com/matzehuels/cygraph/pkg/io"
	"github.com/matzehuels/cygraph/pkg/render"
)

const (
	formatDOT = "dot"
	formatSVG = "svg"
	formatPNG = "png"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output   string // output file path
	format   string // output format: "dot", "svg", "png"
	detailed bool   // include labels and properties in node labels
	noCache  bool   // bypass the render cache entirely
	refresh  bool   // recompute even if a cached result exists
}

// renderCommand creates the render command for generating diagrams.
//
// Input is either a JSON graph file or a vertex/edge CSV table pair.
// Rendered output is cached under the user cache directory, keyed by the
// input contents and render options, so re-rendering an unchanged graph is
// instant. Use --refresh to force recomputation or --no-cache to bypass the
// cache entirely.
func (c *CLI) renderCommand() *cobra.Command {
	opts := renderOpts{format: formatSVG}

	cmd := &cobra.Command{
		Use:   "render [graph.json | vertices.csv edges.csv]",
		Short: "Render a graph as a node-link diagram",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateFormat(opts.format); err != nil {
				return err
			}
			if opts.output == "" {
				opts.output = strings.TrimSuffix(args[0], filepath.Ext(args[0])) + "." + opts.format
			}
			return runRender(cmd.Context(), args, &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default <input>.<format>)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: svg (default), dot, png")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "include labels and properties in node labels")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "bypass the render cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "recompute even if a cached result exists")

	return cmd
}

// validateFormat checks that the format is one of dot, svg or png.
func validateFormat(f string) error {
	switch f {
	case formatDOT, formatSVG, formatPNG:
		return nil
	}
	return fmt.Errorf("invalid format: %s (must be 'dot', 'svg', or 'png')", f)
}

// loadInput reads a graph from either a JSON file or a CSV table pair,
// along with the raw input bytes used as the cache key.
func loadInput(inputs []string) (*graph.DiGraph, []byte, error) {
	var raw []byte
	for _, path := range inputs {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, nil, err
		}
		raw = append(raw, data...)
	}

	if len(inputs) == 2 {
		g, err := graphio.ImportCSV(inputs[0], inputs[1])
		return g, raw, err
	}
	g, err := graphio.ImportJSON(inputs[0])
	return g, raw, err
}

func runRender(ctx context.Context, inputs []string, opts *renderOpts) error {
	logger := loggerFromContext(ctx)
	logger.Infof("Rendering %s", strings.Join(inputs, ", "))

	g, raw, err := loadInput(inputs)
	if err != nil {
		return err
	}
	logger.Debugf("Loaded graph: %d vertices, %d edges", g.Order(), g.Size())

	renderCache, err := newRenderCache(opts.noCache)
	if err != nil {
		return err
	}
	defer renderCache.Close()

	key := cache.ConversionKey(renderKeyNamespace(opts), raw)
	cached := false
	var data []byte
	if !opts.refresh {
		if hit, ok, _ := renderCache.Get(ctx, key); ok {
			data = hit
			cached = true
			logger.Debug("Using cached render", "key", key)
		}
	}

	if data == nil {
		data, err = renderFresh(ctx, g, opts)
		if err != nil {
			return err
		}
		if err := renderCache.Set(ctx, key, data, 0); err != nil {
			logger.Warn("cache render result", "err", err)
		}
	}

	if err := os.WriteFile(opts.output, data, 0o644); err != nil {
		return err
	}

	printSuccess("Generated %s", opts.output)
	printStats(g.Order(), g.Size(), cached)
	return nil
}

// renderKeyNamespace derives the cache key namespace from render options,
// so outputs with different formats or detail levels never collide.
func renderKeyNamespace(opts *renderOpts) string {
	return fmt.Sprintf("render:%s:detailed=%t", opts.format, opts.detailed)
}

func renderFresh(ctx context.Context, g *graph.DiGraph, opts *renderOpts) ([]byte, error) {
	dot := render.ToDOT(g, render.Options{Detailed: opts.detailed})
	if opts.format == formatDOT {
		return []byte(dot), nil
	}

	spin := newSpinner(ctx, fmt.Sprintf("Rendering %s", opts.format))
	spin.Start()
	defer spin.Stop()

	switch opts.format {
	case formatSVG:
		return render.RenderSVG(dot)
	case formatPNG:
		return render.RenderPNG(dot)
	default:
		return nil, fmt.Errorf("unknown format: %s", opts.format)
	}
}
