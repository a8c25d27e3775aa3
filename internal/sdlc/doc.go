// Package sdlc implements the Port-1 frame layer: declarative frame
// definitions, build-time layout validation, decode into and encode out of
// the cabinet store, and the command/response dispatcher.
//
// Ownership boundary: sdlc owns wire layout. It never interprets what a
// cell means; it only moves bits between frames and cabinet Refs.
package sdlc
