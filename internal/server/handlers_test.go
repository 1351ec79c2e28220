package server

import (
	"encoding/base64"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ironsheep/swatch/internal/imaging"
)

// createTestImageFile writes a PNG with four solid quadrants (red, green,
// blue, white) and returns its path.
func createTestImageFile(t *testing.T, width, height int) string {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			var c color.Color
			switch {
			case x < width/2 && y < height/2:
				c = color.RGBA{255, 0, 0, 255}
			case y < height/2:
				c = color.RGBA{0, 255, 0, 255}
			case x < width/2:
				c = color.RGBA{0, 0, 255, 255}
			default:
				c = color.RGBA{255, 255, 255, 255}
			}
			img.Set(x, y, c)
		}
	}

	path := filepath.Join(t.TempDir(), "handler-test.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		t.Fatalf("failed to encode image: %v", err)
	}

	return path
}

// callTool runs a tools/call request and decodes the text content into out.
func callTool(t *testing.T, s *Server, name string, args map[string]interface{}, out interface{}) *MCPResponse {
	t.Helper()

	params := map[string]interface{}{
		"name":      name,
		"arguments": args,
	}
	paramsJSON, _ := json.Marshal(params)

	resp := s.handleRequest(&MCPRequest{
		JSONRPC: "2.0",
		ID:      1,
		Method:  "tools/call",
		Params:  paramsJSON,
	})
	if resp == nil {
		t.Fatal("handleRequest returned nil")
	}
	if resp.Error != nil || out == nil {
		return resp
	}

	result := resp.Result.(map[string]interface{})
	content := result["content"].([]map[string]interface{})
	text := content[0]["text"].(string)
	if err := json.Unmarshal([]byte(text), out); err != nil {
		t.Fatalf("failed to decode tool result: %v\n%s", err, text)
	}
	return resp
}

func TestHandleToolsCall_ImageLoad(t *testing.T) {
	s := New()
	imgPath := createTestImageFile(t, 100, 80)

	var info imaging.ImageInfo
	resp := callTool(t, s, "image_load", map[string]interface{}{"path": imgPath}, &info)
	if resp.Error != nil {
		t.Fatalf("Unexpected error: %v", resp.Error)
	}

	if info.Width != 100 || info.Height != 80 {
		t.Errorf("dimensions: got %dx%d, want 100x80", info.Width, info.Height)
	}
	if info.MaxDepth != 12 {
		t.Errorf("MaxDepth: got %d, want 12", info.MaxDepth)
	}
}

func TestHandleToolsCall_ImageDimensions(t *testing.T) {
	s := New()
	imgPath := createTestImageFile(t, 200, 150)

	var dims imaging.DimensionsResult
	resp := callTool(t, s, "image_dimensions", map[string]interface{}{"path": imgPath}, &dims)
	if resp.Error != nil {
		t.Fatalf("Unexpected error: %v", resp.Error)
	}
	if dims.Width != 200 || dims.Height != 150 {
		t.Errorf("dimensions: got %dx%d, want 200x150", dims.Width, dims.Height)
	}
}

func TestHandleToolsCall_NonExistentFile(t *testing.T) {
	s := New()

	resp := callTool(t, s, "swatch_palette", map[string]interface{}{"path": "/nonexistent/image.png"}, nil)
	if resp.Error == nil {
		t.Fatal("expected an error for a missing file")
	}
	if resp.Error.Code != -32000 {
		t.Errorf("Error code: got %d, want -32000", resp.Error.Code)
	}
}

func TestHandleToolsCall_MissingPath(t *testing.T) {
	s := New()

	for _, name := range []string{"image_load", "image_dimensions", "swatch_palette", "swatch_repaint"} {
		t.Run(name, func(t *testing.T) {
			resp := callTool(t, s, name, map[string]interface{}{}, nil)
			if resp.Error == nil {
				t.Fatal("expected an error when path is missing")
			}
			if !strings.Contains(resp.Error.Data.(string), "path is required") {
				t.Errorf("unexpected error data: %v", resp.Error.Data)
			}
		})
	}
}

func TestHandleToolsCall_InvalidParams(t *testing.T) {
	s := New()

	resp := s.handleToolsCall(&MCPRequest{
		JSONRPC: "2.0",
		ID:      1,
		Params:  json.RawMessage(`"not an object"`),
	})
	if resp.Error == nil || resp.Error.Code != -32602 {
		t.Errorf("expected -32602, got %+v", resp.Error)
	}
}

func TestHandleToolsCall_SwatchPalette(t *testing.T) {
	s := New()
	imgPath := createTestImageFile(t, 32, 32)

	var result imaging.PaletteResult
	resp := callTool(t, s, "swatch_palette", map[string]interface{}{"path": imgPath, "max_depth": 2}, &result)
	if resp.Error != nil {
		t.Fatalf("Unexpected error: %v", resp.Error)
	}

	want := []string{"#FFFFFF", "#00FF00", "#FF0000", "#0000FF"}
	if len(result.Colors) != len(want) {
		t.Fatalf("expected %d colors, got %d", len(want), len(result.Colors))
	}
	for i, c := range result.Colors {
		if c.Hex != want[i] {
			t.Errorf("color %d: got %s, want %s", i, c.Hex, want[i])
		}
	}
	if result.Primary.Hex != "#00FF00" {
		t.Errorf("primary: got %s, want #00FF00", result.Primary.Hex)
	}
}

func TestHandleToolsCall_SwatchPalette_DefaultDepth(t *testing.T) {
	s := New()
	imgPath := createTestImageFile(t, 32, 32)

	var result imaging.PaletteResult
	resp := callTool(t, s, "swatch_palette", map[string]interface{}{"path": imgPath}, &result)
	if resp.Error != nil {
		t.Fatalf("Unexpected error: %v", resp.Error)
	}
	if len(result.Colors) != 16 || result.MaxDepth != imaging.DefaultMaxDepth {
		t.Errorf("expected 16 colors at default depth, got %d at depth %d", len(result.Colors), result.MaxDepth)
	}
}

func TestHandleToolsCall_SwatchPalette_DepthZero(t *testing.T) {
	s := New()
	imgPath := createTestImageFile(t, 32, 32)

	var result imaging.PaletteResult
	resp := callTool(t, s, "swatch_palette", map[string]interface{}{"path": imgPath, "max_depth": 0}, &result)
	if resp.Error != nil {
		t.Fatalf("Unexpected error: %v", resp.Error)
	}
	if len(result.Colors) != 1 {
		t.Fatalf("expected a single mean color, got %d", len(result.Colors))
	}
	// (255+0+0+255)/4, (0+255+0+255)/4, (0+0+255+255)/4
	if result.Colors[0].Hex != "#7F7F7F" {
		t.Errorf("mean: got %s, want #7F7F7F", result.Colors[0].Hex)
	}
}

func TestHandleToolsCall_SwatchPalette_WithRegion(t *testing.T) {
	s := New()
	imgPath := createTestImageFile(t, 32, 32)

	args := map[string]interface{}{
		"path":      imgPath,
		"max_depth": 1,
		"region":    map[string]interface{}{"x1": 0, "y1": 0, "x2": 16, "y2": 16},
	}
	var result imaging.PaletteResult
	resp := callTool(t, s, "swatch_palette", args, &result)
	if resp.Error != nil {
		t.Fatalf("Unexpected error: %v", resp.Error)
	}
	for i, c := range result.Colors {
		if c.Hex != "#FF0000" {
			t.Errorf("color %d: got %s, want #FF0000", i, c.Hex)
		}
	}
}

func TestHandleToolsCall_SwatchPalette_TooDeep(t *testing.T) {
	s := New()
	imgPath := createTestImageFile(t, 4, 4)

	resp := callTool(t, s, "swatch_palette", map[string]interface{}{"path": imgPath, "max_depth": 5}, nil)
	if resp.Error == nil {
		t.Fatal("expected an error when the image has fewer pixels than buckets")
	}
}

func TestHandleToolsCall_SwatchDominantColor(t *testing.T) {
	s := New()
	imgPath := createTestImageFile(t, 32, 32)

	var result DominantColorResult
	resp := callTool(t, s, "swatch_dominant_color", map[string]interface{}{"path": imgPath, "max_depth": 2}, &result)
	if resp.Error != nil {
		t.Fatalf("Unexpected error: %v", resp.Error)
	}
	if result.Color.Hex != "#00FF00" || result.PaletteSize != 4 {
		t.Errorf("got %s from %d colors, want #00FF00 from 4", result.Color.Hex, result.PaletteSize)
	}
}

func TestHandleToolsCall_SwatchRender(t *testing.T) {
	s := New()
	imgPath := createTestImageFile(t, 32, 32)

	var htmlResult RenderResult
	resp := callTool(t, s, "swatch_render", map[string]interface{}{"path": imgPath, "max_depth": 2}, &htmlResult)
	if resp.Error != nil {
		t.Fatalf("Unexpected error: %v", resp.Error)
	}
	if htmlResult.Format != "html" || !strings.Contains(htmlResult.Content, "<title>handler-test.png</title>") {
		t.Errorf("unexpected html result: %+v", htmlResult)
	}

	var jsonResult RenderResult
	resp = callTool(t, s, "swatch_render", map[string]interface{}{"path": imgPath, "max_depth": 2, "format": "json"}, &jsonResult)
	if resp.Error != nil {
		t.Fatalf("Unexpected error: %v", resp.Error)
	}
	var colors []map[string]int
	if err := json.Unmarshal([]byte(jsonResult.Content), &colors); err != nil {
		t.Fatalf("json content did not decode: %v", err)
	}
	if len(colors) != 4 {
		t.Errorf("expected 4 colors, got %d", len(colors))
	}
}

func TestHandleToolsCall_SwatchRender_File(t *testing.T) {
	s := New()
	imgPath := createTestImageFile(t, 32, 32)
	outDir := t.TempDir()

	var result RenderResult
	args := map[string]interface{}{"path": imgPath, "max_depth": 1, "format": "file", "output_dir": outDir}
	resp := callTool(t, s, "swatch_render", args, &result)
	if resp.Error != nil {
		t.Fatalf("Unexpected error: %v", resp.Error)
	}
	if result.SavedPath != filepath.Join(outDir, "swatch.html") {
		t.Errorf("SavedPath: got %s", result.SavedPath)
	}
	if result.Content != "" {
		t.Error("file output should not return content")
	}
	if _, err := os.Stat(result.SavedPath); err != nil {
		t.Errorf("swatch.html not written: %v", err)
	}
}

func TestHandleToolsCall_SwatchRender_BadFormat(t *testing.T) {
	s := New()
	imgPath := createTestImageFile(t, 8, 8)

	resp := callTool(t, s, "swatch_render", map[string]interface{}{"path": imgPath, "format": "xml"}, nil)
	if resp.Error == nil {
		t.Fatal("expected an error for an unknown format")
	}
}

func TestHandleToolsCall_SwatchRepaint(t *testing.T) {
	s := New()
	imgPath := createTestImageFile(t, 16, 16)
	outPath := filepath.Join(t.TempDir(), "repainted.png")

	var result RepaintToolResult
	args := map[string]interface{}{"path": imgPath, "max_depth": 2, "output_path": outPath}
	resp := callTool(t, s, "swatch_repaint", args, &result)
	if resp.Error != nil {
		t.Fatalf("Unexpected error: %v", resp.Error)
	}

	if result.MimeType != "image/png" || result.SavedPath != outPath {
		t.Errorf("unexpected result metadata: %s %s", result.MimeType, result.SavedPath)
	}

	raw, err := base64.StdEncoding.DecodeString(result.ImageBase64)
	if err != nil {
		t.Fatalf("failed to decode base64: %v", err)
	}
	decoded, err := png.Decode(strings.NewReader(string(raw)))
	if err != nil {
		t.Fatalf("failed to decode png: %v", err)
	}
	if decoded.Bounds().Dx() != 16 || decoded.Bounds().Dy() != 16 {
		t.Errorf("repainted size: got %v, want 16x16", decoded.Bounds())
	}

	// Four solid quadrants repaint to themselves.
	r, g, b, _ := decoded.At(12, 2).RGBA()
	if r>>8 != 0 || g>>8 != 255 || b>>8 != 0 {
		t.Errorf("top-right pixel: got (%d,%d,%d), want green", r>>8, g>>8, b>>8)
	}

	if _, err := os.Stat(outPath); err != nil {
		t.Errorf("repainted file not saved: %v", err)
	}
}

func TestExecuteTool_UnknownTool(t *testing.T) {
	s := New()

	_, err := s.executeTool("unknown_tool", json.RawMessage(`{}`))
	if err == nil {
		t.Error("executeTool should fail for unknown tool")
	}
}

func TestExecuteTool_InvalidJSON(t *testing.T) {
	s := New()

	for _, tool := range GetToolDefinitions() {
		if _, err := s.executeTool(tool.Name, json.RawMessage(`{invalid`)); err == nil {
			t.Errorf("%s: executeTool should fail for invalid JSON", tool.Name)
		}
	}
}

func TestMarshalResult(t *testing.T) {
	text, err := marshalResult(&DominantColorResult{PaletteSize: 4})
	if err != nil {
		t.Fatalf("marshalResult failed: %v", err)
	}
	if !strings.Contains(text, `"palette_size": 4`) {
		t.Errorf("unexpected encoding: %s", text)
	}

	if _, err := marshalResult(math.NaN()); err == nil {
		t.Error("marshalResult should fail for a value JSON cannot represent")
	}
}
