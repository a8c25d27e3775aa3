// Package cabinet holds the virtual cabinet's variable store.
//
// Ownership boundary: cabinet owns cell identity (namespace + index) and
// atomic cell state. It does not know about frame layouts, wire encoding,
// or wiring documents; those layers address cells exclusively through Refs
// authored here.
package cabinet
