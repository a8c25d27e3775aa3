package mmu

import (
	"errors"
	"strings"
	"testing"

	"github.com/danmuck/vtcab/internal/cabinet"
	"github.com/danmuck/vtcab/internal/testutil/testlog"
)

const defaultHex = "00001020A020280202B02300A60218"

func TestBitIndexTriangle(t *testing.T) {
	testlog.Start(t)

	cases := []struct {
		i, j, want int
	}{
		{1, 2, 0},
		{1, 16, 14},
		{2, 3, 15},
		{3, 4, 29},
		{15, 16, 119},
	}
	for _, c := range cases {
		if got := bitIndex(c.i, c.j); got != c.want {
			t.Fatalf("bitIndex(%d,%d) = %d, want %d", c.i, c.j, got, c.want)
		}
	}

	// Every pair maps to a distinct slot.
	seen := make(map[int]bool, PairCount)
	for i := 1; i < Channels; i++ {
		for j := i + 1; j <= Channels; j++ {
			k := bitIndex(i, j)
			if k < 0 || k >= PairCount || seen[k] {
				t.Fatalf("bitIndex(%d,%d) = %d collides or out of range", i, j, k)
			}
			seen[k] = true
		}
	}
}

func TestDefaultPatternHex(t *testing.T) {
	testlog.Start(t)

	p := DefaultPattern()
	if got := p.Hex(); got != defaultHex {
		t.Fatalf("default pattern hex = %s, want %s", got, defaultHex)
	}
	if !p.Get(1, 5) || !p.Get(2, 9) || !p.Get(10, 12) {
		t.Fatal("default pattern missing a ring-crossing pair")
	}
	if p.Get(1, 2) || p.Get(5, 6) {
		t.Fatal("default pattern marks conflicting phases compatible")
	}
}

func TestParseHexRoundTrip(t *testing.T) {
	testlog.Start(t)

	p, err := ParseHex(defaultHex)
	if err != nil {
		t.Fatalf("ParseHex: %v", err)
	}
	if p != DefaultPattern() {
		t.Fatal("parsed pattern differs from default")
	}

	lower, err := ParseHex(strings.ToLower(defaultHex))
	if err != nil {
		t.Fatalf("ParseHex lowercase: %v", err)
	}
	if lower.Hex() != defaultHex {
		t.Fatal("lowercase input did not normalize")
	}
}

func TestParseHexRejectsMalformed(t *testing.T) {
	testlog.Start(t)

	cases := []string{
		"",
		"00",
		defaultHex + "0",
		"0000102.A020280202B02300A60218",
	}
	for _, s := range cases {
		if _, err := ParseHex(s); !errors.Is(err, ErrBadHexString) {
			t.Fatalf("ParseHex(%q) err = %v, want ErrBadHexString", s, err)
		}
	}
}

func TestCardProgramsStore(t *testing.T) {
	testlog.Start(t)

	store := cabinet.NewStore()
	card := NewCard(store)

	card.SetDefaultPattern()
	if !store.Bit(cabinet.MMUChannelCompatibility(1, 5)) {
		t.Fatal("default pattern did not reach store cell (1,5)")
	}
	if got := card.Hex(); got != defaultHex {
		t.Fatalf("card hex = %s, want %s", got, defaultHex)
	}

	if err := card.Set(1, 2, true); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if !card.Get(1, 2) {
		t.Fatal("pair (1,2) did not latch")
	}
	if err := card.Set(2, 2, true); !errors.Is(err, ErrBadChannelPair) {
		t.Fatalf("Set(2,2) err = %v, want ErrBadChannelPair", err)
	}
	if err := card.Set(5, 3, true); !errors.Is(err, ErrBadChannelPair) {
		t.Fatalf("Set(5,3) err = %v, want ErrBadChannelPair", err)
	}

	card.Zero()
	if card.Hex() != strings.Repeat("0", HexLength) {
		t.Fatal("Zero left pairs set")
	}
}

func TestSetHexRejectsWithoutTouchingCard(t *testing.T) {
	testlog.Start(t)

	store := cabinet.NewStore()
	card := NewCard(store)
	card.SetDefaultPattern()

	if err := card.SetHex("nonsense"); err == nil {
		t.Fatal("SetHex accepted malformed input")
	}
	if got := card.Hex(); got != defaultHex {
		t.Fatalf("failed SetHex disturbed the card: %s", got)
	}
}
