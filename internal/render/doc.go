// Package render presents a palette as an HTML swatch page or as JSON.
//
// The HTML page shows the most variant palette color first and then the rest
// of the palette in the order given (normally brightest first), skipping any
// entry with the same color as the first. JSON output is the plain list of
// {"r","g","b"} objects, pretty printed with two-space indentation.
//
// Output goes to stdout for the html and json formats. The file format writes
// the HTML page to swatch.html instead.
package render
