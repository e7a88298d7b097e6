// Package server implements the MCP (Model Context Protocol) server for the
// spectral analysis tools.
//
// This package provides a JSON-RPC 2.0 server that exposes gradient, edge and
// frequency-domain image analysis through the MCP protocol, enabling
// MCP-compatible clients to inspect image structure numerically and visually.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Basic Image Information:
//   - image_load: Load image and get metadata, including the power-of-two check
//   - image_dimensions: Get width and height
//
// Gradient Analysis:
//   - gradient_magnitude: Magnitude statistics with optional histogram
//   - gradient_magnitude_map: Colorized magnitude raster
//   - gradient_phase: Directional statistics (dominant directions, coherence)
//   - gradient_phase_map: Hue-wheel direction raster with optional arrows
//
// Edge Analysis:
//   - edge_density: Sliding-window edge density with hotspot extraction
//   - edge_density_heatmap: Colorized density grid with hotspot annotations
//   - edge_detect: Raw graded edge map as a grayscale raster
//
// Spectrum Analysis:
//   - spectrum_analyze: Windowed 2D FFT with band energies and peak detection
//   - spectrum_visualize: Magnitude/phase spectrum rendering
//
// # Image Caching
//
// The server maintains an in-memory cache of loaded images. Images are cached
// by path and reused across multiple tool calls, avoiding redundant disk I/O.
// The cache persists for the lifetime of the server process. Analysis results
// are not cached; every tool call recomputes from the decoded pixels.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: Additional error details (typically the Go error string)
//
// The spectrum tools reject images whose dimensions are not powers of two
// before any transform work; the resulting error carries the offending
// dimensions.
//
// # Usage
//
// The server is typically started by an MCP client:
//
//	srv := server.New()
//	if err := srv.Run(); err != nil {
//	    log.Fatal(err)
//	}
package server
