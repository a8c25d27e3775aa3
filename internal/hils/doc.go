// Package hils connects a traffic simulator to the virtual cabinet: it
// loads the wiring document, propagates simulator state through the store
// each tick, and owns the SDLC polling loop on the serial device.
//
// Ownership boundary: hils owns the device lifecycle and the wiring
// bindings. Frame semantics live in sdlc; cell identity lives in cabinet.
package hils
