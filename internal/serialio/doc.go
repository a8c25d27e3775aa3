// Package serialio abstracts the synchronous HDLC adapter the cabinet
// polls on. The Device contract is intentionally small: blocking frame
// reads and writes plus cancellation hooks so the SDLC loop can be torn
// down while a read is in flight.
package serialio
