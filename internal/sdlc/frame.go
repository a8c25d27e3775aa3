package sdlc

import (
	"fmt"

	"github.com/danmuck/vtcab/internal/cabinet"
)

const (
	// HeaderSize covers station address, the 0x83 control byte, and the
	// frame type id. The CRC is stripped by the HDLC transport before
	// frames reach this layer.
	HeaderSize = 3

	// MaxFrameSize is the largest Port-1 frame after CRC stripping.
	MaxFrameSize = 64

	controlByte = 0x83

	// BroadcastAddress frames carry no station address and elicit no
	// response.
	BroadcastAddress = 0xFF
)

// Direction tells whether a frame is decoded from the wire (Command) or
// generated onto it (Response).
type Direction uint8

const (
	Command Direction = iota
	Response
)

// FieldKind selects how a field maps between wire positions and a cell.
type FieldKind uint8

const (
	// KindBit maps one wire bit to one cell.
	KindBit FieldKind = iota
	// KindSharedBit maps two wire bits (the dimming half-waves) to one
	// cell: decode ORs them, encode mirrors the cell to both.
	KindSharedBit
	// KindByte maps one wire byte to one cell.
	KindByte
	// KindWord maps two wire bytes, low byte first, to one cell.
	KindWord
)

// Field binds one wire position to one cabinet cell. Pos is a bit position
// for bit kinds and a byte offset for byte/word kinds. Pos2 is only
// meaningful for KindSharedBit.
type Field struct {
	Kind FieldKind
	Pos  int
	Pos2 int
	Var  cabinet.Ref
}

func Bit(pos int, v cabinet.Ref) Field {
	return Field{Kind: KindBit, Pos: pos, Var: v}
}

func SharedBit(pos, pos2 int, v cabinet.Ref) Field {
	return Field{Kind: KindSharedBit, Pos: pos, Pos2: pos2, Var: v}
}

func ByteField(pos int, v cabinet.Ref) Field {
	return Field{Kind: KindByte, Pos: pos, Var: v}
}

func WordField(pos int, v cabinet.Ref) Field {
	return Field{Kind: KindWord, Pos: pos, Var: v}
}

// Def is one frame type: its header constants, wire size, direction, and
// field layout.
type Def struct {
	Address byte
	ID      byte
	Size    int
	Dir     Direction
	Fields  []Field
}

// Validate checks that the layout is realizable: the size fits the bus,
// every position lands inside the payload, and no two fields claim the
// same wire bit. Definitions are static, so a failure here is an authoring
// bug, caught once at catalog construction.
func (d *Def) Validate() error {
	if d.Size < HeaderSize || d.Size > MaxFrameSize {
		return &ValidationError{d.ID, fmt.Sprintf("size %d outside [%d,%d]", d.Size, HeaderSize, MaxFrameSize)}
	}
	claimed := make(map[int]cabinet.Ref)
	claim := func(bitPos int, v cabinet.Ref) error {
		if prev, dup := claimed[bitPos]; dup {
			return &ValidationError{d.ID, fmt.Sprintf("bit %d claimed by %s and %s", bitPos, prev, v)}
		}
		claimed[bitPos] = v
		return nil
	}
	limit := 8 * d.Size
	for _, f := range d.Fields {
		switch f.Kind {
		case KindBit:
			if f.Pos < 8*HeaderSize || f.Pos >= limit {
				return &ValidationError{d.ID, fmt.Sprintf("bit position %d outside payload", f.Pos)}
			}
			if err := claim(f.Pos, f.Var); err != nil {
				return err
			}
		case KindSharedBit:
			for _, p := range [2]int{f.Pos, f.Pos2} {
				if p < 8*HeaderSize || p >= limit {
					return &ValidationError{d.ID, fmt.Sprintf("bit position %d outside payload", p)}
				}
				if err := claim(p, f.Var); err != nil {
					return err
				}
			}
		case KindByte:
			if f.Pos < HeaderSize || f.Pos >= d.Size {
				return &ValidationError{d.ID, fmt.Sprintf("byte offset %d outside payload", f.Pos)}
			}
			for b := 0; b < 8; b++ {
				if err := claim(8*f.Pos+b, f.Var); err != nil {
					return err
				}
			}
		case KindWord:
			if f.Pos < HeaderSize || f.Pos+1 >= d.Size {
				return &ValidationError{d.ID, fmt.Sprintf("word offset %d outside payload", f.Pos)}
			}
			for b := 0; b < 16; b++ {
				if err := claim(8*f.Pos+b, f.Var); err != nil {
					return err
				}
			}
		default:
			return &ValidationError{d.ID, fmt.Sprintf("unknown field kind %d", f.Kind)}
		}
	}
	return nil
}

// Decode writes the frame's fields into the store. Header bytes are not
// re-checked; the dispatcher routes by type id before decoding.
func (d *Def) Decode(store *cabinet.Store, data []byte) error {
	if len(data) < d.Size {
		return ErrFrameTooShort
	}
	for _, f := range d.Fields {
		switch f.Kind {
		case KindBit:
			store.SetBit(f.Var, bitAt(data, f.Pos))
		case KindSharedBit:
			// A dimmed output drives only one half-wave; either bit means on.
			store.SetBit(f.Var, bitAt(data, f.Pos) || bitAt(data, f.Pos2))
		case KindByte:
			store.SetByte(f.Var, data[f.Pos])
		case KindWord:
			store.SetWord(f.Var, uint16(data[f.Pos])|uint16(data[f.Pos+1])<<8)
		}
	}
	return nil
}

// Encode generates the frame from the store: zero-filled payload, header,
// then fields.
func (d *Def) Encode(store *cabinet.Store) []byte {
	buf := make([]byte, d.Size)
	buf[0] = d.Address
	buf[1] = controlByte
	buf[2] = d.ID
	for _, f := range d.Fields {
		switch f.Kind {
		case KindBit:
			if store.Bit(f.Var) {
				setBit(buf, f.Pos)
			}
		case KindSharedBit:
			if store.Bit(f.Var) {
				setBit(buf, f.Pos)
				setBit(buf, f.Pos2)
			}
		case KindByte:
			buf[f.Pos] = store.Byte(f.Var)
		case KindWord:
			w := store.Word(f.Var)
			buf[f.Pos] = byte(w)
			buf[f.Pos+1] = byte(w >> 8)
		}
	}
	return buf
}

// Wire bit p lives in byte p/8, bit p%8, least significant bit first.

func bitAt(data []byte, pos int) bool {
	return data[pos/8]>>(pos%8)&1 != 0
}

func setBit(data []byte, pos int) {
	data[pos/8] |= 1 << (pos % 8)
}
