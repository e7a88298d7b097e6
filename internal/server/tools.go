package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Basic Image Information
		{
			Name:        "image_load",
			Description: "Load an image file and return its dimensions, format, color depth and whether the dimensions satisfy the FFT power-of-two precondition.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_dimensions",
			Description: "Get the width and height of an image file.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
				},
				"required": []string{"path"},
			},
		},

		// Gradient Magnitude
		{
			Name:        "gradient_magnitude",
			Description: "Compute per-pixel gradient magnitudes and summarize their distribution: min/max/average over nonzero pixels, optional histogram and percentiles.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
					"method": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"sobel", "scharr", "laplacian"},
						"description": "Gradient operator (default sobel)",
						"default":     "sobel",
					},
					"kernel_size": map[string]interface{}{
						"type":        "integer",
						"description": "Advisory kernel size for the sobel operator (default 3)",
						"default":     3,
					},
					"threshold": map[string]interface{}{
						"type":        "number",
						"description": "Zero magnitudes below this value before statistics (default 0)",
						"default":     0,
					},
					"normalize": map[string]interface{}{
						"type":        "boolean",
						"description": "Rescale the magnitude map linearly to 0-255",
						"default":     false,
					},
					"generate_histogram": map[string]interface{}{
						"type":        "boolean",
						"description": "Include the 256-bucket histogram and percentiles",
						"default":     false,
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "gradient_magnitude_map",
			Description: "Render the gradient magnitude map as a colorized raster. Zero-magnitude pixels are transparent so the result works as an overlay.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
					"method": map[string]interface{}{
						"type":    "string",
						"enum":    []string{"sobel", "scharr", "laplacian"},
						"default": "sobel",
					},
					"threshold": map[string]interface{}{
						"type":    "number",
						"default": 0,
					},
					"colormap": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"jet", "hot", "cool", "grayscale", "hsv"},
						"description": "Colormap for magnitude values (default jet)",
						"default":     "jet",
					},
				},
				"required": []string{"path"},
			},
		},

		// Gradient Phase
		{
			Name:        "gradient_phase",
			Description: "Compute per-pixel gradient directions with magnitude masking and summarize directionality: dominant directions, coherence, circular mean, angular histogram.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
					"method": map[string]interface{}{
						"type":    "string",
						"enum":    []string{"sobel", "scharr", "laplacian"},
						"default": "sobel",
					},
					"angle_unit": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"degrees", "radians"},
						"description": "Unit for all reported angles (default degrees)",
						"default":     "degrees",
					},
					"magnitude_threshold": map[string]interface{}{
						"type":        "number",
						"description": "Mask pixels whose gradient magnitude is below this (default 0)",
						"default":     0,
					},
					"smoothing": map[string]interface{}{
						"type":        "boolean",
						"description": "Apply 3x3 circular smoothing to the phase map",
						"default":     false,
					},
					"generate_statistics": map[string]interface{}{
						"type":        "boolean",
						"description": "Include the directional statistics block",
						"default":     true,
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "gradient_phase_map",
			Description: "Render gradient directions as a hue wheel raster with alpha scaled by magnitude, optionally overlaying direction arrows on a sampling grid.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
					"method": map[string]interface{}{
						"type":    "string",
						"enum":    []string{"sobel", "scharr", "laplacian"},
						"default": "sobel",
					},
					"magnitude_threshold": map[string]interface{}{
						"type":    "number",
						"default": 0,
					},
					"show_arrows": map[string]interface{}{
						"type":        "boolean",
						"description": "Overlay direction vectors on a regular grid",
						"default":     false,
					},
					"arrow_density": map[string]interface{}{
						"type":        "integer",
						"description": "Arrows per shortest image dimension (default 16)",
						"default":     16,
					},
				},
				"required": []string{"path"},
			},
		},

		// Edge Density
		{
			Name:        "edge_density",
			Description: "Detect edges and aggregate their density over sliding windows: per-region occupancy, statistics, distribution and hotspot regions.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
					"detector": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"canny", "sobel"},
						"description": "Edge detection strategy (default canny)",
						"default":     "canny",
					},
					"low_threshold": map[string]interface{}{
						"type":        "number",
						"description": "Weak-edge floor for Canny hysteresis (default 50)",
						"default":     50,
					},
					"high_threshold": map[string]interface{}{
						"type":        "number",
						"description": "Strong-edge floor for Canny, binary threshold for sobel (default 150)",
						"default":     150,
					},
					"region_size": map[string]interface{}{
						"type":        "integer",
						"description": "Analysis window side length in pixels (default 32)",
						"default":     32,
					},
					"overlap_ratio": map[string]interface{}{
						"type":        "number",
						"description": "Window overlap in [0, 0.9] (default 0)",
						"default":     0,
					},
					"heatmap_mode": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"density", "strength", "direction"},
						"description": "Reported per-region channel (default density)",
						"default":     "density",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "edge_density_heatmap",
			Description: "Render the edge density grid as a colorized heatmap, upscaled so each region reads as a solid cell, with optional hotspot annotations.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
					"detector": map[string]interface{}{
						"type":    "string",
						"enum":    []string{"canny", "sobel"},
						"default": "canny",
					},
					"low_threshold": map[string]interface{}{
						"type":    "number",
						"default": 50,
					},
					"high_threshold": map[string]interface{}{
						"type":    "number",
						"default": 150,
					},
					"region_size": map[string]interface{}{
						"type":    "integer",
						"default": 32,
					},
					"overlap_ratio": map[string]interface{}{
						"type":    "number",
						"default": 0,
					},
					"heatmap_mode": map[string]interface{}{
						"type":    "string",
						"enum":    []string{"density", "strength", "direction"},
						"default": "density",
					},
					"colormap": map[string]interface{}{
						"type":    "string",
						"enum":    []string{"jet", "hot", "cool", "grayscale", "hsv"},
						"default": "jet",
					},
					"annotate_hotspots": map[string]interface{}{
						"type":        "boolean",
						"description": "Mark hotspot cells with rings and rank labels",
						"default":     false,
					},
				},
				"required": []string{"path"},
			},
		},

		{
			Name:        "edge_detect",
			Description: "Return the raw edge map as a grayscale raster: white for confirmed edges, black elsewhere.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
					"detector": map[string]interface{}{
						"type":    "string",
						"enum":    []string{"canny", "sobel"},
						"default": "canny",
					},
					"low_threshold": map[string]interface{}{
						"type":    "number",
						"default": 50,
					},
					"high_threshold": map[string]interface{}{
						"type":    "number",
						"default": 150,
					},
				},
				"required": []string{"path"},
			},
		},

		// Spectrum Analysis
		{
			Name:        "spectrum_analyze",
			Description: "Run a windowed 2D FFT over the image and report spectral statistics: DC component, band energies, dominant frequency peaks. Both image dimensions must be powers of two.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
					"window_function": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"none", "hanning", "hamming", "blackman", "kaiser"},
						"description": "Taper applied before the transform (default none)",
						"default":     "none",
					},
					"center_dc": map[string]interface{}{
						"type":        "boolean",
						"description": "Shift the zero-frequency bin to the spectrum center",
						"default":     true,
					},
					"filter_type": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"lowpass", "highpass", "bandpass", "notch"},
						"description": "Optional frequency-domain filter applied to the transform",
					},
					"cutoff_frequency": map[string]interface{}{
						"type":        "number",
						"description": "Filter cutoff as a normalized radius in (0, 1]",
					},
					"filter_order": map[string]interface{}{
						"type":        "integer",
						"description": "Filter steepness (default 2)",
						"default":     2,
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "spectrum_visualize",
			Description: "Render the image's frequency spectrum as a raster: magnitude, phase, both side by side, or magnitude with a radial profile strip. Both image dimensions must be powers of two.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
					"mode": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"magnitude", "phase", "both", "spectrum"},
						"description": "What to render (default magnitude)",
						"default":     "magnitude",
					},
					"window_function": map[string]interface{}{
						"type":    "string",
						"enum":    []string{"none", "hanning", "hamming", "blackman", "kaiser"},
						"default": "none",
					},
					"colormap": map[string]interface{}{
						"type":    "string",
						"enum":    []string{"jet", "hot", "cool", "grayscale", "hsv"},
						"default": "jet",
					},
					"log_scale": map[string]interface{}{
						"type":        "boolean",
						"description": "Compress magnitude dynamic range with log(1+m)",
						"default":     true,
					},
					"normalize": map[string]interface{}{
						"type":        "boolean",
						"description": "Rescale magnitudes so the brightest bin maps to the top of the colormap",
						"default":     true,
					},
					"show_radial_profile": map[string]interface{}{
						"type":        "boolean",
						"description": "Append the angle-averaged radial profile strip in spectrum mode",
						"default":     false,
					},
				},
				"required": []string{"path"},
			},
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
