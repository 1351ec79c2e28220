package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

func pathProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Absolute path to the image file",
	}
}

// paletteProperties are the inputs shared by every swatch_* tool.
func paletteProperties() map[string]interface{} {
	return map[string]interface{}{
		"path": pathProperty(),
		"max_depth": map[string]interface{}{
			"type":        "integer",
			"description": "Median-cut depth; the palette has 2^max_depth colors. 0 returns the single average color. Default 4",
			"default":     4,
			"minimum":     0,
			"maximum":     24,
		},
		"max_dimension": map[string]interface{}{
			"type":        "integer",
			"description": "Downscale the sampled area so neither side exceeds this many pixels before quantizing. 0 keeps full resolution",
			"default":     0,
		},
		"region": map[string]interface{}{
			"type":        "object",
			"description": "Optional region to sample; (x1,y1) inclusive, (x2,y2) exclusive",
			"properties": map[string]interface{}{
				"x1": map[string]interface{}{"type": "integer"},
				"y1": map[string]interface{}{"type": "integer"},
				"x2": map[string]interface{}{"type": "integer"},
				"y2": map[string]interface{}{"type": "integer"},
			},
			"required": []string{"x1", "y1", "x2", "y2"},
		},
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	renderProps := paletteProperties()
	renderProps["format"] = map[string]interface{}{
		"type":        "string",
		"enum":        []string{"html", "json", "file"},
		"description": "html or json returns the rendered text; file writes swatch.html to output_dir. Default html",
		"default":     "html",
	}
	renderProps["output_dir"] = map[string]interface{}{
		"type":        "string",
		"description": "Directory for swatch.html when format is file. Defaults to the image's directory",
	}

	repaintProps := paletteProperties()
	repaintProps["output_path"] = map[string]interface{}{
		"type":        "string",
		"description": "Optional path to also save the repainted PNG to",
	}

	return []Tool{
		// Image Information
		{
			Name:        "image_load",
			Description: "Load an image file and return its dimensions, format, pixel count and the deepest max_depth it supports.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
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
					"path": pathProperty(),
				},
				"required": []string{"path"},
			},
		},

		// Palette Operations
		{
			Name:        "swatch_palette",
			Description: "Reduce an image to 2^max_depth representative colors with median cut. Colors are ordered brightest first; 'primary' is the most saturated entry.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": paletteProperties(),
				"required":   []string{"path"},
			},
		},
		{
			Name:        "swatch_dominant_color",
			Description: "Return the single most variant (highest channel spread) color of an image's median-cut palette.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": paletteProperties(),
				"required":   []string{"path"},
			},
		},
		{
			Name:        "swatch_render",
			Description: "Render an image's palette as an HTML swatch page or as JSON.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": renderProps,
				"required":   []string{"path"},
			},
		},
		{
			Name:        "swatch_repaint",
			Description: "Repaint every pixel of an image with the mean color of its median-cut bucket and return the result as base64-encoded PNG.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": repaintProps,
				"required":   []string{"path"},
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
