package server

import (
	"encoding/json"
	"fmt"

	"github.com/spectralab/spectral-tools-mcp/internal/edges"
	"github.com/spectralab/spectral-tools-mcp/internal/gradient"
	"github.com/spectralab/spectral-tools-mcp/internal/magnitude"
	"github.com/spectralab/spectral-tools-mcp/internal/phase"
	"github.com/spectralab/spectral-tools-mcp/internal/raster"
	"github.com/spectralab/spectral-tools-mcp/internal/spectrum"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_load", "spectrum_analyze").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
//
// Each tool handler:
//  1. Unmarshals arguments from JSON
//  2. Applies default values for optional parameters
//  3. Loads images from cache as needed
//  4. Calls the appropriate analysis function
//  5. Returns the result or error
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Basic Image Information
	case "image_load":
		return s.handleImageLoad(args)
	case "image_dimensions":
		return s.handleImageDimensions(args)

	// Gradient Magnitude
	case "gradient_magnitude":
		return s.handleGradientMagnitude(args)
	case "gradient_magnitude_map":
		return s.handleGradientMagnitudeMap(args)

	// Gradient Phase
	case "gradient_phase":
		return s.handleGradientPhase(args)
	case "gradient_phase_map":
		return s.handleGradientPhaseMap(args)

	// Edge Detection
	case "edge_density":
		return s.handleEdgeDensity(args)
	case "edge_density_heatmap":
		return s.handleEdgeDensityHeatmap(args)
	case "edge_detect":
		return s.handleEdgeDetect(args)

	// Spectrum Analysis
	case "spectrum_analyze":
		return s.handleSpectrumAnalyze(args)
	case "spectrum_visualize":
		return s.handleSpectrumVisualize(args)

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// === Basic Image Information Handlers ===

type imageLoadArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return raster.LoadImageInfo(s.cache, a.Path)
}

func (s *Server) handleImageDimensions(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return raster.GetDimensions(s.cache, a.Path)
}

// === Gradient Magnitude Handlers ===

type gradientMagnitudeArgs struct {
	Path              string  `json:"path"`
	Method            string  `json:"method"`
	KernelSize        int     `json:"kernel_size"`
	Threshold         float64 `json:"threshold"`
	Normalize         bool    `json:"normalize"`
	GenerateHistogram bool    `json:"generate_histogram"`
}

func (s *Server) handleGradientMagnitude(args json.RawMessage) (interface{}, error) {
	var a gradientMagnitudeArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}

	analyzer := magnitude.NewAnalyzer(gradient.New(a.Method, a.KernelSize))
	return analyzer.Analyze(img, magnitude.Options{
		Threshold:         a.Threshold,
		Normalize:         a.Normalize,
		GenerateHistogram: a.GenerateHistogram,
	}), nil
}

type gradientMagnitudeMapArgs struct {
	Path      string  `json:"path"`
	Method    string  `json:"method"`
	Threshold float64 `json:"threshold"`
	Colormap  string  `json:"colormap"`
}

func (s *Server) handleGradientMagnitudeMap(args json.RawMessage) (interface{}, error) {
	var a gradientMagnitudeMapArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}

	analyzer := magnitude.NewAnalyzer(gradient.New(a.Method, 0))
	res := analyzer.Analyze(img, magnitude.Options{Threshold: a.Threshold})
	return magnitude.Visualize(res, a.Colormap)
}

// === Gradient Phase Handlers ===

type gradientPhaseArgs struct {
	Path               string  `json:"path"`
	Method             string  `json:"method"`
	AngleUnit          string  `json:"angle_unit"`
	MagnitudeThreshold float64 `json:"magnitude_threshold"`
	Smoothing          bool    `json:"smoothing"`

	// Defaults to true when omitted, so a pointer distinguishes "absent"
	// from an explicit false.
	GenerateStatistics *bool `json:"generate_statistics"`
}

func (s *Server) handleGradientPhase(args json.RawMessage) (interface{}, error) {
	var a gradientPhaseArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}

	genStats := true
	if a.GenerateStatistics != nil {
		genStats = *a.GenerateStatistics
	}

	analyzer := phase.NewAnalyzer(gradient.New(a.Method, 0))
	return analyzer.Analyze(img, phase.Options{
		AngleUnit:          a.AngleUnit,
		MagnitudeThreshold: a.MagnitudeThreshold,
		Smoothing:          a.Smoothing,
		GenerateStatistics: genStats,
	}), nil
}

type gradientPhaseMapArgs struct {
	Path               string  `json:"path"`
	Method             string  `json:"method"`
	MagnitudeThreshold float64 `json:"magnitude_threshold"`
	ShowArrows         bool    `json:"show_arrows"`
	ArrowDensity       int     `json:"arrow_density"`
}

func (s *Server) handleGradientPhaseMap(args json.RawMessage) (interface{}, error) {
	var a gradientPhaseMapArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}

	analyzer := phase.NewAnalyzer(gradient.New(a.Method, 0))
	res := analyzer.Analyze(img, phase.Options{
		MagnitudeThreshold: a.MagnitudeThreshold,
	})
	return phase.Visualize(res, "degrees", phase.VisualizeOptions{
		ShowArrows:   a.ShowArrows,
		ArrowDensity: a.ArrowDensity,
	})
}

// === Edge Density Handlers ===

type edgeDensityArgs struct {
	Path             string  `json:"path"`
	Detector         string  `json:"detector"`
	LowThreshold     float64 `json:"low_threshold"`
	HighThreshold    float64 `json:"high_threshold"`
	RegionSize       int     `json:"region_size"`
	OverlapRatio     float64 `json:"overlap_ratio"`
	HeatmapMode      string  `json:"heatmap_mode"`
	Colormap         string  `json:"colormap"`
	AnnotateHotspots bool    `json:"annotate_hotspots"`
}

// densityOptions applies threshold defaults and maps arguments onto the
// analyzer's options. Both tools share the argument surface.
func (a *edgeDensityArgs) densityOptions() edges.DensityOptions {
	if a.LowThreshold == 0 {
		a.LowThreshold = 50
	}
	if a.HighThreshold == 0 {
		a.HighThreshold = 150
	}
	return edges.DensityOptions{
		RegionSize:   a.RegionSize,
		OverlapRatio: a.OverlapRatio,
		EdgeParams: edges.Params{
			LowThreshold:  a.LowThreshold,
			HighThreshold: a.HighThreshold,
		},
		HeatmapMode: a.HeatmapMode,
	}
}

func (s *Server) handleEdgeDensity(args json.RawMessage) (interface{}, error) {
	var a edgeDensityArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}

	analyzer := edges.NewDensityAnalyzer(edges.NewStrategy(a.Detector))
	return analyzer.Analyze(img, a.densityOptions()), nil
}

func (s *Server) handleEdgeDensityHeatmap(args json.RawMessage) (interface{}, error) {
	var a edgeDensityArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}

	analyzer := edges.NewDensityAnalyzer(edges.NewStrategy(a.Detector))
	res := analyzer.Analyze(img, a.densityOptions())
	return edges.VisualizeDensity(res, a.Colormap, a.AnnotateHotspots)
}

type edgeDetectArgs struct {
	Path          string  `json:"path"`
	Detector      string  `json:"detector"`
	LowThreshold  float64 `json:"low_threshold"`
	HighThreshold float64 `json:"high_threshold"`
}

func (s *Server) handleEdgeDetect(args json.RawMessage) (interface{}, error) {
	var a edgeDetectArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.LowThreshold == 0 {
		a.LowThreshold = 50
	}
	if a.HighThreshold == 0 {
		a.HighThreshold = 150
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}

	m := edges.NewStrategy(a.Detector).Detect(img, edges.Params{
		LowThreshold:  a.LowThreshold,
		HighThreshold: a.HighThreshold,
	})
	return edges.VisualizeMap(m)
}

// === Spectrum Analysis Handlers ===

type spectrumAnalyzeArgs struct {
	Path            string  `json:"path"`
	WindowFunction  string  `json:"window_function"`
	FilterType      string  `json:"filter_type"`
	CutoffFrequency float64 `json:"cutoff_frequency"`
	FilterOrder     int     `json:"filter_order"`

	// Defaults to true when omitted.
	CenterDC *bool `json:"center_dc"`
}

func (s *Server) handleSpectrumAnalyze(args json.RawMessage) (interface{}, error) {
	var a spectrumAnalyzeArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}

	centerDC := true
	if a.CenterDC != nil {
		centerDC = *a.CenterDC
	}

	return spectrum.NewAnalyzer().Analyze(img, spectrum.Options{
		WindowFunction:  a.WindowFunction,
		CenterDC:        centerDC,
		FilterType:      a.FilterType,
		CutoffFrequency: a.CutoffFrequency,
		FilterOrder:     a.FilterOrder,
	})
}

type spectrumVisualizeArgs struct {
	Path              string `json:"path"`
	Mode              string `json:"mode"`
	WindowFunction    string `json:"window_function"`
	Colormap          string `json:"colormap"`
	ShowRadialProfile bool   `json:"show_radial_profile"`

	// Default to true when omitted.
	LogScale  *bool `json:"log_scale"`
	Normalize *bool `json:"normalize"`
}

func (s *Server) handleSpectrumVisualize(args json.RawMessage) (interface{}, error) {
	var a spectrumVisualizeArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}

	logScale := true
	if a.LogScale != nil {
		logScale = *a.LogScale
	}
	normalize := true
	if a.Normalize != nil {
		normalize = *a.Normalize
	}

	// Rendering assumes the DC-centered layout.
	res, err := spectrum.NewAnalyzer().Analyze(img, spectrum.Options{
		WindowFunction: a.WindowFunction,
		CenterDC:       true,
	})
	if err != nil {
		return nil, err
	}

	return spectrum.Visualize(res, spectrum.VisualizeOptions{
		Mode:              a.Mode,
		Colormap:          a.Colormap,
		LogScale:          logScale,
		Normalize:         normalize,
		ShowRadialProfile: a.ShowRadialProfile,
	})
}
