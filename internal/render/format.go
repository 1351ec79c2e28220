package render

import (
	"fmt"
	"strings"
)

// Format selects how and where a palette is written.
type Format int

const (
	// FormatHTML writes the swatch page to stdout.
	FormatHTML Format = iota
	// FormatJSON writes the palette as JSON to stdout.
	FormatJSON
	// FormatFile writes the swatch page to DefaultFileName.
	FormatFile
)

// DefaultFileName is the file FormatFile writes to.
const DefaultFileName = "swatch.html"

// ParseFormat accepts "html", "json" or "file" in any letter case.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "html":
		return FormatHTML, nil
	case "json":
		return FormatJSON, nil
	case "file":
		return FormatFile, nil
	default:
		return FormatHTML, fmt.Errorf("invalid value provided for output %s. value can be html | json | file", s)
	}
}

func (f Format) String() string {
	switch f {
	case FormatHTML:
		return "html"
	case FormatJSON:
		return "json"
	case FormatFile:
		return "file"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// Set implements flag.Value.
func (f *Format) Set(s string) error {
	parsed, err := ParseFormat(s)
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}
