// Package renderarray models the render tree handed to pre-render callbacks.
// A Node is a mutable string-keyed mapping; nested mappings are child
// elements and everything else is a property of the element.
package renderarray
