package sdlc

import "strings"

const hexDigits = "0123456789ABCDEF"

// BytesToHex renders a frame as uppercase hex for the frame log.
func BytesToHex(data []byte) string {
	var b strings.Builder
	b.Grow(2 * len(data))
	for _, v := range data {
		b.WriteByte(hexDigits[v>>4])
		b.WriteByte(hexDigits[v&0x0F])
	}
	return b.String()
}
