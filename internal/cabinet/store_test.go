package cabinet

import (
	"testing"

	"github.com/danmuck/vtcab/internal/testutil/testlog"
)

func TestNewStoreAuthorsEveryCellOnce(t *testing.T) {
	testlog.Start(t)

	s := NewStore()
	if s.Len() != len(Catalog()) {
		t.Fatalf("store has %d cells, catalog has %d", s.Len(), len(Catalog()))
	}

	seen := make(map[Ref]bool, s.Len())
	for _, e := range Catalog() {
		if seen[e.Ref] {
			t.Fatalf("catalog authors %s twice", e.Ref)
		}
		seen[e.Ref] = true
	}
}

func TestCompatibilityPairIndexes(t *testing.T) {
	testlog.Start(t)

	if got := MMUChannelCompatibility(1, 2); got.Index != 0x0102 {
		t.Fatalf("pair (1,2) index = 0x%04X, want 0x0102", got.Index)
	}
	if got := MMUChannelCompatibility(15, 16); got.Index != 0x0F10 {
		t.Fatalf("pair (15,16) index = 0x%04X, want 0x0F10", got.Index)
	}

	s := NewStore()
	pairs := 0
	for i := 1; i < MaxMMUChannels; i++ {
		for j := i + 1; j <= MaxMMUChannels; j++ {
			if !s.Has(MMUChannelCompatibility(i, j)) {
				t.Fatalf("pair (%d,%d) not authored", i, j)
			}
			pairs++
		}
	}
	if pairs != 120 {
		t.Fatalf("authored %d pairs, want 120", pairs)
	}
}

func TestStoreAccessors(t *testing.T) {
	testlog.Start(t)

	s := NewStore()

	r := InVehicleDetCall(64)
	if s.Bit(r) {
		t.Fatalf("%s not zero-initialized", r)
	}
	s.SetBit(r, true)
	if !s.Bit(r) {
		t.Fatalf("%s did not latch", r)
	}
	s.SetBit(r, false)
	if s.Bit(r) {
		t.Fatalf("%s did not clear", r)
	}

	s.SetByte(BcastHour, 0x17)
	if got := s.Byte(BcastHour); got != 0x17 {
		t.Fatalf("broadcast hour = 0x%02X, want 0x17", got)
	}

	s.SetByte(OutDetectorReset(4), 0xA5)
	if got := s.Byte(OutDetectorReset(4)); got != 0xA5 {
		t.Fatalf("detector reset 4 = 0x%02X, want 0xA5", got)
	}

	if k, ok := s.KindOf(BcastMonth); !ok || k != KindByte {
		t.Fatalf("broadcast month kind = %v,%v, want byte", k, ok)
	}
}

func TestConstructorRangeChecks(t *testing.T) {
	testlog.Start(t)

	cases := []struct {
		name string
		call func()
	}{
		{"vehicle detector 0", func() { InVehicleDetCall(0) }},
		{"vehicle detector 129", func() { InVehicleDetCall(129) }},
		{"ped detector 73", func() { InPedDetCall(73) }},
		{"mmu channel 17", func() { MMUChannelGreenWalkStatus(17) }},
		{"compat i==j", func() { MMUChannelCompatibility(4, 4) }},
		{"compat j<i", func() { MMUChannelCompatibility(9, 3) }},
		{"phase 41", func() { OutPhaseOn(41) }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Fatalf("%s did not panic", tc.name)
				}
			}()
			tc.call()
		})
	}
}
