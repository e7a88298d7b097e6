// Package render provides shared visualization helpers: named colormaps,
// base64-PNG encoding of result rasters, and small overlay primitives
// (numeric labels, rings, arrows) used by heatmap and phase visualizations.
//
// Visualization is deliberately decoupled from analysis. Analyzers expose a
// compute method returning a typed result and a separate visualization
// builder; this package only serves the latter, so numeric results stay
// testable without rendering.
package render
