// Package callbacks implements the trusted callback registry used by the
// pre-render pipeline. Providers declare the operations they allow the host to
// call by name; the registry refuses everything else and never falls back to
// reflection.
package callbacks
