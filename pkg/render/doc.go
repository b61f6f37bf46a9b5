// Package render is an in-memory drawing backend for gooey effects.
//
// # Overview
//
// A [Canvas] stands in for a list row: it has a size, a background chain,
// captured content and a stack of [Layer]s. It implements
// [effect.Container], so an effect can be started on it directly:
//
//	c := render.DemoCanvas(geom.Sz(375, 88), 0)
//	e := effect.New(c, 0.5, effect.ToRight, &effect.Config{Color: render.ActionGreen})
//	e.UpdateProgress(0.6)
//	svg := render.RenderSVG(c)
//
// # Output Formats
//
//   - [RenderSVG]: a standalone SVG document; bitmaps are embedded as PNG
//   - [Rasterize], [RenderPNG]: anti-aliased raster output via gg
//   - [GIFRecorder]: animated GIF of successive frames
//   - [ToPDF], [ToPNG]: SVG conversion through rsvg-convert (from librsvg)
//   - [ToTerminal]: half-block character art for the terminal playground
//
// # Assets
//
// [BuiltinIcon] draws the check and cross action icons; [DrawDemoRow] draws
// the content of a demo inbox row.
package render
