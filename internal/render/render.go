package render

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"os"
	"path/filepath"

	"github.com/ironsheep/swatch/internal/quantize"
)

var pageTemplate = template.Must(template.New("swatch").Parse(`<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>{{.Title}}</title>
    <style>
        html, body { width: 100%; height: 100%; margin: 0; padding: 0}
        body { display: flex; flex-wrap: wrap;}
        .color { width: 25%; height: 25%; box-sizing: border-box;}
    </style>
</head>
<body>
{{- range .Swatches}}
	<div class="color" title="{{.Hex}}" style="background-color: {{.Background}}; border: 1px solid {{.Border}}"></div>
{{- end}}
</body>
</html>
`))

type swatch struct {
	Hex        string
	Background template.CSS
	Border     template.CSS
}

type page struct {
	Title    string
	Swatches []swatch
}

func newSwatch(p quantize.Pixel) swatch {
	edge := p.Darker(25)
	return swatch{
		Hex:        p.Hex(),
		Background: template.CSS(fmt.Sprintf("rgb(%d,%d,%d)", p.R, p.G, p.B)),
		Border:     template.CSS(fmt.Sprintf("rgb(%d,%d,%d)", edge.R, edge.G, edge.B)),
	}
}

// Swatches returns palette reordered for display: the most variant color
// first, then every other entry in its original order. Entries equal to the
// most variant color are dropped.
func Swatches(palette []quantize.Pixel) ([]quantize.Pixel, error) {
	primary, err := quantize.MostVariant(palette)
	if err != nil {
		return nil, fmt.Errorf("failed to pick primary color: %w", err)
	}

	out := make([]quantize.Pixel, 0, len(palette))
	out = append(out, primary)
	for _, p := range palette {
		if p.Equal(primary) {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

// HTML writes the swatch page for palette to w.
func HTML(w io.Writer, title string, palette []quantize.Pixel) error {
	ordered, err := Swatches(palette)
	if err != nil {
		return err
	}

	pg := page{Title: title, Swatches: make([]swatch, len(ordered))}
	for i, p := range ordered {
		pg.Swatches[i] = newSwatch(p)
	}

	if err := pageTemplate.Execute(w, pg); err != nil {
		return fmt.Errorf("failed to render html: %w", err)
	}
	return nil
}

// JSON writes palette to w as a pretty-printed JSON array.
func JSON(w io.Writer, palette []quantize.Pixel) error {
	if palette == nil {
		palette = []quantize.Pixel{}
	}
	b, err := json.MarshalIndent(palette, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode json: %w", err)
	}
	if _, err := w.Write(b); err != nil {
		return fmt.Errorf("failed to write json: %w", err)
	}
	return nil
}

// Write renders palette in the given format. html and json go to stdout;
// file writes DefaultFileName inside dir and returns the path written.
func Write(format Format, stdout io.Writer, dir, title string, palette []quantize.Pixel) (string, error) {
	switch format {
	case FormatHTML:
		return "", HTML(stdout, title, palette)
	case FormatJSON:
		return "", JSON(stdout, palette)
	case FormatFile:
		var buf bytes.Buffer
		if err := HTML(&buf, title, palette); err != nil {
			return "", err
		}
		path := filepath.Join(dir, DefaultFileName)
		if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
			return "", fmt.Errorf("failed to write %s: %w", path, err)
		}
		return path, nil
	default:
		return "", fmt.Errorf("unknown output format: %v", format)
	}
}
