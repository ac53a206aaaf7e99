// Package template defines the seam between view renderers and the template
// engine that executes view templates. The gotemplate subpackage provides a
// pongo2-backed implementation and a go-template one behind the same
// interface.
package template
