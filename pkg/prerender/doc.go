// Package prerender runs trusted callbacks over a render tree before it is
// handed to a renderer. Element definitions map render array types to the
// callback references that must run for them; every reference is resolved
// through a callbacks.Registry so only manifest-listed operations execute.
package prerender
