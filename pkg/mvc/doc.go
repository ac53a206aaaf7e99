// Package mvc hosts the dispatcher inside an HTTP request lifecycle. Event is
// the per-request carrier the dispatcher populates; Handler wires option
// lookup, dispatch and rendering into an http.Handler.
package mvc
