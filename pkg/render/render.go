// Package render renders property graphs as node-link diagrams.
//
// [ToDOT] converts a graph to Graphviz DOT source, which [RenderSVG] and
// [RenderPNG] rasterize in-process via [github.com/goccy/go-graphviz]. The
// DOT output can also be saved as-is and processed with external Graphviz
// tools.
package render

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/goccy/go-graphviz"
)

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	svg, err := renderFormat(dot, graphviz.SVG)
	if err != nil {
		return nil, err
	}
	return normalizeViewBox(svg), nil
}

// RenderPNG renders a DOT graph to PNG using Graphviz.
func RenderPNG(dot string) ([]byte, error) {
	return renderFormat(dot, graphviz.PNG)
}

func renderFormat(dot string, format graphviz.Format) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the SVG root element so the viewBox origin is
// zero and width/height match it. Graphviz emits point-based dimensions that
// scale inconsistently across viewers.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
