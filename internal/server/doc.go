// Package server exposes the swatch palette pipeline as an MCP (Model Context
// Protocol) server.
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
// Image Information:
//   - image_load: Load image and get metadata, including the deepest usable max_depth
//   - image_dimensions: Get width and height
//
// Palette Operations:
//   - swatch_palette: Median-cut palette, brightest first, with the most variant color
//   - swatch_dominant_color: Only the most variant palette color
//   - swatch_render: Palette rendered as the HTML swatch page or JSON
//   - swatch_repaint: Image redrawn with its own palette, as base64 PNG
//
// # Image Caching
//
// Images are cached by path for the lifetime of the server process, so several
// palette requests with different depths decode the file once.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure), -32602 (invalid params) or
//     -32700 (unparseable request line)
//   - message: Human-readable error description
//   - data: The Go error string
package server
