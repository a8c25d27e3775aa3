package cabinet

import (
	"fmt"
	"sync/atomic"
)

// Store holds one lock-free cell per authored Ref. Cells are written by the
// frame dispatcher and the wiring tick concurrently; every access is a
// single atomic load or store, never a read-modify-write across cells.
type Store struct {
	cells map[Ref]*atomic.Uint32
	kinds map[Ref]Kind
}

// NewStore materializes every catalog cell. A duplicate index in the
// catalog is an authoring bug and panics here rather than aliasing two
// variables onto one cell.
func NewStore() *Store {
	entries := Catalog()
	s := &Store{
		cells: make(map[Ref]*atomic.Uint32, len(entries)),
		kinds: make(map[Ref]Kind, len(entries)),
	}
	for _, e := range entries {
		if _, dup := s.cells[e.Ref]; dup {
			panic(fmt.Sprintf("cabinet: duplicate cell %s", e.Ref))
		}
		s.cells[e.Ref] = new(atomic.Uint32)
		s.kinds[e.Ref] = e.Kind
	}
	return s
}

// Len reports the number of authored cells.
func (s *Store) Len() int { return len(s.cells) }

// Has reports whether r is an authored cell.
func (s *Store) Has(r Ref) bool {
	_, ok := s.cells[r]
	return ok
}

// KindOf returns the authored value width of r.
func (s *Store) KindOf(r Ref) (Kind, bool) {
	k, ok := s.kinds[r]
	return k, ok
}

func (s *Store) cell(r Ref) *atomic.Uint32 {
	c, ok := s.cells[r]
	if !ok {
		panic(fmt.Sprintf("cabinet: unknown cell %s", r))
	}
	return c
}

func (s *Store) Bit(r Ref) bool { return s.cell(r).Load() != 0 }

func (s *Store) SetBit(r Ref, on bool) {
	var v uint32
	if on {
		v = 1
	}
	s.cell(r).Store(v)
}

func (s *Store) Byte(r Ref) uint8 { return uint8(s.cell(r).Load()) }

func (s *Store) SetByte(r Ref, v uint8) { s.cell(r).Store(uint32(v)) }

func (s *Store) Word(r Ref) uint16 { return uint16(s.cell(r).Load()) }

func (s *Store) SetWord(r Ref, v uint16) { s.cell(r).Store(uint32(v)) }
