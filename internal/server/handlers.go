package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"path/filepath"

	"github.com/ironsheep/swatch/internal/imaging"
	"github.com/ironsheep/swatch/internal/render"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_load", "swatch_palette").
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
// A result that cannot be encoded returns -32603.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	text, err := marshalResult(result)
	if err != nil {
		log.Printf("Failed to encode %s result: %v", params.Name, err)
		return s.errorResponse(req.ID, -32603, "Internal error", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": text,
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Image Information
	case "image_load":
		return s.handleImageLoad(args)
	case "image_dimensions":
		return s.handleImageDimensions(args)

	// Palette Operations
	case "swatch_palette":
		return s.handleSwatchPalette(args)
	case "swatch_dominant_color":
		return s.handleSwatchDominantColor(args)
	case "swatch_render":
		return s.handleSwatchRender(args)
	case "swatch_repaint":
		return s.handleSwatchRepaint(args)

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

// marshalResult converts a tool result to a pretty-printed JSON string.
func marshalResult(v interface{}) (string, error) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode result: %w", err)
	}
	return string(b), nil
}

// === Image Information Handlers ===

type imageLoadArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Path == "" {
		return nil, fmt.Errorf("path is required")
	}
	return imaging.LoadImageInfo(s.cache, a.Path)
}

func (s *Server) handleImageDimensions(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Path == "" {
		return nil, fmt.Errorf("path is required")
	}
	return imaging.GetDimensions(s.cache, a.Path)
}

// === Palette Handlers ===

// paletteArgs are shared by every swatch_* tool. MaxDepth is a pointer because
// 0 is a valid depth (a single mean color) and must not be replaced by the default.
type paletteArgs struct {
	Path         string          `json:"path"`
	MaxDepth     *int            `json:"max_depth,omitempty"`
	Region       *imaging.Region `json:"region,omitempty"`
	MaxDimension int             `json:"max_dimension"`
}

func (a paletteArgs) options() imaging.PaletteOptions {
	depth := imaging.DefaultMaxDepth
	if a.MaxDepth != nil {
		depth = *a.MaxDepth
	}
	return imaging.PaletteOptions{
		MaxDepth:     depth,
		Region:       a.Region,
		MaxDimension: a.MaxDimension,
	}
}

func (s *Server) palette(a paletteArgs) (*imaging.PaletteResult, error) {
	if a.Path == "" {
		return nil, fmt.Errorf("path is required")
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return imaging.ExtractPalette(img, a.options())
}

func (s *Server) handleSwatchPalette(args json.RawMessage) (interface{}, error) {
	var a paletteArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return s.palette(a)
}

// DominantColorResult is the swatch_dominant_color tool result.
type DominantColorResult struct {
	Color       imaging.ColorResult `json:"color"`
	PaletteSize int                 `json:"palette_size"`
}

func (s *Server) handleSwatchDominantColor(args json.RawMessage) (interface{}, error) {
	var a paletteArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	result, err := s.palette(a)
	if err != nil {
		return nil, err
	}
	return &DominantColorResult{
		Color:       result.Primary,
		PaletteSize: len(result.Colors),
	}, nil
}

type swatchRenderArgs struct {
	paletteArgs
	Format    string `json:"format"`
	OutputDir string `json:"output_dir"`
}

// RenderResult is the swatch_render tool result. Content is empty when the
// page was written to SavedPath instead.
type RenderResult struct {
	Format    string `json:"format"`
	Content   string `json:"content,omitempty"`
	SavedPath string `json:"saved_path,omitempty"`
}

func (s *Server) handleSwatchRender(args json.RawMessage) (interface{}, error) {
	var a swatchRenderArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Format == "" {
		a.Format = "html"
	}
	format, err := render.ParseFormat(a.Format)
	if err != nil {
		return nil, err
	}
	if format == render.FormatFile && a.OutputDir == "" {
		a.OutputDir = filepath.Dir(a.Path)
	}

	result, err := s.palette(a.paletteArgs)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	saved, err := render.Write(format, &buf, a.OutputDir, filepath.Base(a.Path), result.Pixels)
	if err != nil {
		return nil, err
	}

	return &RenderResult{
		Format:    format.String(),
		Content:   buf.String(),
		SavedPath: saved,
	}, nil
}

type swatchRepaintArgs struct {
	paletteArgs
	OutputPath string `json:"output_path"`
}

// RepaintToolResult is the swatch_repaint tool result.
type RepaintToolResult struct {
	*imaging.RepaintResult
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
	SavedPath   string `json:"saved_path,omitempty"`
}

func (s *Server) handleSwatchRepaint(args json.RawMessage) (interface{}, error) {
	var a swatchRepaintArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Path == "" {
		return nil, fmt.Errorf("path is required")
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}

	repainted, err := imaging.RepaintImage(img, a.options())
	if err != nil {
		return nil, err
	}

	encoded, err := imaging.EncodePNGBase64(repainted.Image)
	if err != nil {
		return nil, err
	}

	if a.OutputPath != "" {
		if err := imaging.SavePNG(a.OutputPath, repainted.Image); err != nil {
			return nil, err
		}
	}

	return &RepaintToolResult{
		RepaintResult: repainted,
		ImageBase64:   encoded,
		MimeType:      "image/png",
		SavedPath:     a.OutputPath,
	}, nil
}
