// Package render defines the renderer contract shared by the output formats
// and a registry to look them up by name.
package render
