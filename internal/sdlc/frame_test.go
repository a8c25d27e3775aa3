package sdlc

import (
	"errors"
	"testing"

	"github.com/danmuck/vtcab/internal/cabinet"
	"github.com/danmuck/vtcab/internal/testutil/testlog"
)

func TestCatalogBuildsClean(t *testing.T) {
	testlog.Start(t)

	cat, err := NewCatalog()
	if err != nil {
		t.Fatalf("NewCatalog: %v", err)
	}
	if len(cat) != 32 {
		t.Fatalf("catalog holds %d frame types, want 32", len(cat))
	}
	for _, id := range []byte{0, 1, 3, 9, 10, 11, 12, 13, 18, 128, 129, 131} {
		if cat[id] == nil {
			t.Fatalf("frame type %d missing", id)
		}
	}
	for id := byte(20); id <= 27; id++ {
		if cat[id] == nil {
			t.Fatalf("frame type %d missing", id)
		}
	}
	for id := byte(148); id <= 155; id++ {
		if cat[id] == nil {
			t.Fatalf("frame type %d missing", id)
		}
	}
}

func TestValidateRejectsBadLayouts(t *testing.T) {
	testlog.Start(t)

	ref := cabinet.MMULoadSwitchFlash
	other := cabinet.MMUConflict
	cases := []struct {
		name string
		def  Def
	}{
		{"size above bus limit", Def{ID: 7, Size: 65}},
		{"size below header", Def{ID: 7, Size: 2}},
		{"bit inside header", Def{ID: 7, Size: 8, Fields: []Field{Bit(0x17, ref)}}},
		{"bit past payload", Def{ID: 7, Size: 8, Fields: []Field{Bit(64, ref)}}},
		{"duplicate bit", Def{ID: 7, Size: 8, Fields: []Field{Bit(0x18, ref), Bit(0x18, other)}}},
		{"shared bit collides", Def{ID: 7, Size: 8, Fields: []Field{
			SharedBit(0x18, 0x19, ref), Bit(0x19, other),
		}}},
		{"byte overlaps bit", Def{ID: 7, Size: 8, Fields: []Field{
			Bit(0x1C, ref), ByteField(3, other),
		}}},
		{"word past payload", Def{ID: 7, Size: 8, Fields: []Field{WordField(7, ref)}}},
		{"byte inside header", Def{ID: 7, Size: 8, Fields: []Field{ByteField(2, ref)}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.def.Validate()
			if err == nil {
				t.Fatalf("Validate accepted %s", tc.name)
			}
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("error type %T, want *ValidationError", err)
			}
		})
	}
}

func TestLoadSwitchDriversDecode(t *testing.T) {
	testlog.Start(t)

	store := cabinet.NewStore()
	def := loadSwitchDriversFrame()

	data := make([]byte, def.Size)
	data[0], data[1], data[2] = 0x10, 0x83, 0x00
	data[3] = 0xC3  // channels 1 and 4 green, both half-waves
	data[15] = 0x80 // load switch flash
	if err := def.Decode(store, data); err != nil {
		t.Fatalf("Decode: %v", err)
	}

	for ch := 1; ch <= 16; ch++ {
		want := ch == 1 || ch == 4
		if got := store.Bit(cabinet.MMUChannelGreenWalkDriver(ch)); got != want {
			t.Fatalf("green driver ch%d = %v, want %v", ch, got, want)
		}
	}
	if !store.Bit(cabinet.MMULoadSwitchFlash) {
		t.Fatal("load switch flash not set")
	}
}

func TestSharedBitPolicy(t *testing.T) {
	testlog.Start(t)

	store := cabinet.NewStore()
	def := loadSwitchDriversFrame()

	// One half-wave driven (dimmed output) still reads as on.
	data := make([]byte, def.Size)
	data[3] = 0x01
	if err := def.Decode(store, data); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !store.Bit(cabinet.MMUChannelGreenWalkDriver(1)) {
		t.Fatal("single half-wave did not read as on")
	}

	// Encode mirrors the cell to both half-waves.
	out := def.Encode(store)
	if out[3]&0x03 != 0x03 {
		t.Fatalf("encoded half-waves = 0x%02X, want both set", out[3]&0x03)
	}
}

func TestDateTimeBroadcastDecode(t *testing.T) {
	testlog.Start(t)

	store := cabinet.NewStore()
	def := dateTimeBroadcastFrame()

	data := []byte{0xFF, 0x83, 0x09, 0x03, 0x12, 0x16, 0x11, 0x20, 0x00, 0x00, 0x01, 0x02}
	if err := def.Decode(store, data); err != nil {
		t.Fatalf("Decode: %v", err)
	}

	byteChecks := []struct {
		name string
		ref  cabinet.Ref
		want uint8
	}{
		{"month", cabinet.BcastMonth, 3},
		{"day", cabinet.BcastDay, 18},
		{"year", cabinet.BcastYear, 22},
		{"hour", cabinet.BcastHour, 17},
		{"minute", cabinet.BcastMinute, 32},
		{"second", cabinet.BcastSecond, 0},
		{"tenths", cabinet.BcastTenthsOfSecond, 0},
	}
	for _, c := range byteChecks {
		if got := store.Byte(c.ref); got != c.want {
			t.Fatalf("%s = %d, want %d", c.name, got, c.want)
		}
	}

	for biu := 1; biu <= 8; biu++ {
		if got := store.Bit(cabinet.BcastTFBIUPresence(biu)); got != (biu == 1) {
			t.Fatalf("tf biu %d presence = %v", biu, got)
		}
		if got := store.Bit(cabinet.BcastDETBIUPresence(biu)); got != (biu == 2) {
			t.Fatalf("det biu %d presence = %v", biu, got)
		}
	}
}

func TestMMUStatusEncode(t *testing.T) {
	testlog.Start(t)

	store := cabinet.NewStore()
	def := mmuStatusFrame()

	store.SetBit(cabinet.MMUChannelGreenWalkStatus(15), true)
	store.SetBit(cabinet.MMURedEnable, true)

	out := def.Encode(store)
	if len(out) != 13 {
		t.Fatalf("frame length %d, want 13", len(out))
	}
	if out[0] != 0x10 || out[1] != 0x83 || out[2] != 0x81 {
		t.Fatalf("header = % X", out[:3])
	}
	// Channel 15 green status is bit 0x26.
	if out[4]&0x40 == 0 {
		t.Fatal("channel 15 green status bit not set")
	}
	// Red enable is bit 0x4D.
	if out[9]&0x20 == 0 {
		t.Fatal("red enable bit not set")
	}
}

func TestDecodeShortFrame(t *testing.T) {
	testlog.Start(t)

	store := cabinet.NewStore()
	def := loadSwitchDriversFrame()
	if err := def.Decode(store, []byte{0x10, 0x83, 0x00}); !errors.Is(err, ErrFrameTooShort) {
		t.Fatalf("err = %v, want ErrFrameTooShort", err)
	}
}

func TestWordFieldRoundTrip(t *testing.T) {
	testlog.Start(t)

	store := cabinet.NewStore()
	def := &Def{
		Address: 0x08, ID: 152, Size: 19, Dir: Response,
		Fields: []Field{WordField(3, cabinet.BcastMonth)},
	}
	if err := def.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}

	store.SetWord(cabinet.BcastMonth, 0xBEEF)
	out := def.Encode(store)
	// Low byte first.
	if out[3] != 0xEF || out[4] != 0xBE {
		t.Fatalf("word bytes = %02X %02X, want EF BE", out[3], out[4])
	}

	store.SetWord(cabinet.BcastMonth, 0)
	if err := def.Decode(store, out); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got := store.Word(cabinet.BcastMonth); got != 0xBEEF {
		t.Fatalf("word = 0x%04X, want 0xBEEF", got)
	}
}

func TestBytesToHex(t *testing.T) {
	testlog.Start(t)

	if got := BytesToHex([]byte{0x10, 0x83, 0x0A, 0xFF}); got != "10830AFF" {
		t.Fatalf("hex = %q", got)
	}
	if got := BytesToHex(nil); got != "" {
		t.Fatalf("empty hex = %q", got)
	}
}
