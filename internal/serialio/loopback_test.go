package serialio

import (
	"errors"
	"testing"
	"time"

	"github.com/danmuck/vtcab/internal/testutil/testlog"
)

func TestLoopbackReadWrite(t *testing.T) {
	testlog.Start(t)

	lb := NewLoopback()
	defer lb.Close()

	lb.Push([]byte{0x10, 0x83, 0x03})
	buf := make([]byte, 64)
	n, err := lb.Read(buf)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if n != 3 || buf[2] != 0x03 {
		t.Fatalf("read %d bytes: % X", n, buf[:n])
	}

	if _, err := lb.Write([]byte{0x10, 0x83, 0x83}); err != nil {
		t.Fatalf("Write: %v", err)
	}
	select {
	case resp := <-lb.Responses():
		if len(resp) != 3 || resp[2] != 0x83 {
			t.Fatalf("response = % X", resp)
		}
	case <-time.After(time.Second):
		t.Fatal("no response observed")
	}
}

func TestLoopbackCancelReadUnblocksAndRearms(t *testing.T) {
	testlog.Start(t)

	lb := NewLoopback()
	defer lb.Close()

	got := make(chan error, 1)
	go func() {
		buf := make([]byte, 64)
		_, err := lb.Read(buf)
		got <- err
	}()

	time.Sleep(10 * time.Millisecond)
	lb.CancelRead()

	select {
	case err := <-got:
		if !errors.Is(err, ErrReadCanceled) {
			t.Fatalf("err = %v, want ErrReadCanceled", err)
		}
	case <-time.After(time.Second):
		t.Fatal("cancel did not unblock read")
	}

	// The next session's read must not see the stale cancel.
	lb.Push([]byte{0x01})
	buf := make([]byte, 8)
	if _, err := lb.Read(buf); err != nil {
		t.Fatalf("re-armed Read: %v", err)
	}
}

func TestLoopbackClosedDevice(t *testing.T) {
	testlog.Start(t)

	lb := NewLoopback()
	if err := lb.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := lb.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}

	if _, err := lb.Read(make([]byte, 8)); !errors.Is(err, ErrDeviceClosed) {
		t.Fatalf("Read err = %v, want ErrDeviceClosed", err)
	}
	if _, err := lb.Write([]byte{0x00}); !errors.Is(err, ErrDeviceClosed) {
		t.Fatalf("Write err = %v, want ErrDeviceClosed", err)
	}

	var derr *DeviceError
	_, err := lb.Read(make([]byte, 8))
	if !errors.As(err, &derr) || derr.Op != "read" || derr.Name != "loopback" {
		t.Fatalf("device error = %#v", err)
	}
}

func TestDefaultParams(t *testing.T) {
	testlog.Start(t)

	p := DefaultParams()
	if p.Mode != ModeHDLC {
		t.Fatalf("mode = %d, want HDLC", p.Mode)
	}
	if p.Clock != PortClockHz {
		t.Fatalf("clock = %d, want %d", p.Clock, PortClockHz)
	}
	if p.ClockSourceFlags != ClockFlagRxPin|ClockFlagTxBRG {
		t.Fatalf("clock source flags = 0x%04X", p.ClockSourceFlags)
	}
	if p.CRCType != CRCTypeCCITT16 || p.IdleMode != IdleModeOnes {
		t.Fatalf("framing params = %+v", p)
	}
	if p.AddrFilter != AddressFilterAll || p.RxErrorMask != 1 {
		t.Fatalf("filter params = %+v", p)
	}
	if p.Loopback || p.RxPoll != 0 || p.TxPoll != 0 {
		t.Fatalf("polling params = %+v", p)
	}
}
