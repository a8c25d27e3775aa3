package mmu

import (
	"errors"
	"fmt"

	"github.com/danmuck/vtcab/internal/cabinet"
)

const (
	// Channels is the number of monitored load switch channels.
	Channels = 16
	// PairCount is the number of unordered channel pairs.
	PairCount = Channels * (Channels - 1) / 2
	// HexLength is the length of the card's hex programming string: 120
	// bits in 30 nibbles.
	HexLength = 30
)

var (
	ErrBadHexString   = errors.New("mmu: compatibility hex must be 30 hex digits")
	ErrBadChannelPair = errors.New("mmu: channel pair out of range")
)

// bitIndex maps the pair (i, j), 1 <= i < j <= 16, onto its position in
// the 120-bit triangle. Row i starts after the 16-i, 16-i+1, ... slots of
// the rows above it.
func bitIndex(i, j int) int {
	row := 16*(i-1) - (i-1)*i/2
	return row + j - i - 1
}

// Pattern is a full card image, staged and validated before it touches the
// store. Bit k corresponds to bitIndex order.
type Pattern [PairCount]bool

func (p *Pattern) Set(i, j int, on bool) error {
	if i < 1 || j <= i || j > Channels {
		return fmt.Errorf("%w: (%d,%d)", ErrBadChannelPair, i, j)
	}
	p[bitIndex(i, j)] = on
	return nil
}

func (p *Pattern) Get(i, j int) bool {
	return p[bitIndex(i, j)]
}

const hexDigits = "0123456789ABCDEF"

// Hex renders the pattern in card order: nibble n holds bits 4n..4n+3 and
// prints at string position 29-n, so the highest bits lead the string.
func (p *Pattern) Hex() string {
	out := make([]byte, HexLength)
	for n := 0; n < HexLength; n++ {
		var nib byte
		for b := 0; b < 4; b++ {
			if p[4*n+b] {
				nib |= 1 << b
			}
		}
		out[HexLength-1-n] = hexDigits[nib]
	}
	return string(out)
}

// ParseHex stages a card image from its 30-digit hex form. Lowercase
// digits are accepted.
func ParseHex(s string) (Pattern, error) {
	var p Pattern
	if len(s) != HexLength {
		return p, fmt.Errorf("%w: got %d characters", ErrBadHexString, len(s))
	}
	for n := 0; n < HexLength; n++ {
		nib, ok := hexValue(s[HexLength-1-n])
		if !ok {
			return Pattern{}, fmt.Errorf("%w: bad digit %q", ErrBadHexString, s[HexLength-1-n])
		}
		for b := 0; b < 4; b++ {
			p[4*n+b] = nib>>b&1 != 0
		}
	}
	return p, nil
}

func hexValue(c byte) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	}
	return 0, false
}

// DefaultPattern is the conventional dual-ring eight-phase card: each
// phase is compatible with the non-conflicting phases of the other ring
// and with its overlap.
func DefaultPattern() Pattern {
	pairs := [][2]int{
		{1, 5}, {1, 6}, {1, 11},
		{2, 5}, {2, 6}, {2, 9}, {2, 11},
		{3, 7}, {3, 8}, {3, 12},
		{4, 7}, {4, 8}, {4, 10}, {4, 12},
		{5, 9},
		{6, 9}, {6, 11},
		{7, 10},
		{8, 10}, {8, 12},
		{9, 11},
		{10, 12},
	}
	var p Pattern
	for _, pr := range pairs {
		p[bitIndex(pr[0], pr[1])] = true
	}
	return p
}

// Card is the live compatibility state, backed by cabinet cells so the
// type 131 response reads the same bits the wiring loader programs.
type Card struct {
	store *cabinet.Store
}

func NewCard(store *cabinet.Store) *Card {
	return &Card{store: store}
}

func (c *Card) Set(i, j int, on bool) error {
	if i < 1 || j <= i || j > Channels {
		return fmt.Errorf("%w: (%d,%d)", ErrBadChannelPair, i, j)
	}
	c.store.SetBit(cabinet.MMUChannelCompatibility(i, j), on)
	return nil
}

func (c *Card) Get(i, j int) bool {
	return c.store.Bit(cabinet.MMUChannelCompatibility(i, j))
}

// Apply programs every pair from a staged pattern.
func (c *Card) Apply(p Pattern) {
	for i := 1; i < Channels; i++ {
		for j := i + 1; j <= Channels; j++ {
			c.store.SetBit(cabinet.MMUChannelCompatibility(i, j), p[bitIndex(i, j)])
		}
	}
}

// Snapshot reads the live card back into a pattern.
func (c *Card) Snapshot() Pattern {
	var p Pattern
	for i := 1; i < Channels; i++ {
		for j := i + 1; j <= Channels; j++ {
			p[bitIndex(i, j)] = c.store.Bit(cabinet.MMUChannelCompatibility(i, j))
		}
	}
	return p
}

func (c *Card) Hex() string {
	p := c.Snapshot()
	return p.Hex()
}

func (c *Card) SetHex(s string) error {
	p, err := ParseHex(s)
	if err != nil {
		return err
	}
	c.Apply(p)
	return nil
}

func (c *Card) Zero() {
	c.Apply(Pattern{})
}

func (c *Card) SetDefaultPattern() {
	c.Apply(DefaultPattern())
}
