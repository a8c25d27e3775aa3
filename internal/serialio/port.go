package serialio

import (
	"sync"

	"go.bug.st/serial"
)

// Port is a Device backed by a real serial adapter. CancelRead and
// CancelWrite tear the underlying handle down to unblock in-flight calls;
// the next Read or Write reopens it, so a polling loop can be disabled
// and re-enabled without reloading the wiring. Close is permanent.
type Port struct {
	name string
	open func() (serial.Port, error)

	mu     sync.Mutex
	port   serial.Port
	closed bool
}

// portMode maps Params onto the plain serial backend. Only the clock is
// realizable here: HDLC framing, CRC stripping, address filtering, and
// idle-line behavior live in the external adapter firmware (the loopback
// device models them in-process). The remaining Params fields exist so
// callers state the full channel contract the adapter must be programmed
// with.
func portMode(p Params) *serial.Mode {
	return &serial.Mode{
		BaudRate: p.Clock,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}
}

// Open opens the named adapter with the given channel setup.
func Open(name string, p Params) (*Port, error) {
	mode := portMode(p)
	open := func() (serial.Port, error) {
		return serial.Open(name, mode)
	}
	sp, err := open()
	if err != nil {
		return nil, &DeviceError{Op: "open", Name: name, Err: err}
	}
	return &Port{name: name, open: open, port: sp}, nil
}

// Name reports the adapter path this port was opened on.
func (p *Port) Name() string { return p.name }

// handle returns the live serial handle, reopening after a cancel.
func (p *Port) handle(op string) (serial.Port, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil, &DeviceError{Op: op, Name: p.name, Err: ErrDeviceClosed}
	}
	if p.port == nil {
		sp, err := p.open()
		if err != nil {
			return nil, &DeviceError{Op: op, Name: p.name, Err: err}
		}
		p.port = sp
	}
	return p.port, nil
}

func (p *Port) Read(buf []byte) (int, error) {
	sp, err := p.handle("read")
	if err != nil {
		return 0, err
	}
	n, err := sp.Read(buf)
	if err != nil {
		return n, &DeviceError{Op: "read", Name: p.name, Err: err}
	}
	return n, nil
}

func (p *Port) Write(frame []byte) (int, error) {
	sp, err := p.handle("write")
	if err != nil {
		return 0, err
	}
	n, err := sp.Write(frame)
	if err != nil {
		return n, &DeviceError{Op: "write", Name: p.name, Err: err}
	}
	return n, nil
}

func (p *Port) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil
	}
	p.closed = true
	if p.port == nil {
		return nil
	}
	sp := p.port
	p.port = nil
	if err := sp.Close(); err != nil {
		return &DeviceError{Op: "close", Name: p.name, Err: err}
	}
	return nil
}

// CancelRead unblocks an in-flight Read. The adapter has no selective
// cancel, so this drops the underlying handle; the next Read reopens it.
func (p *Port) CancelRead() {
	p.dropHandle()
}

func (p *Port) CancelWrite() {
	p.dropHandle()
}

func (p *Port) dropHandle() {
	p.mu.Lock()
	sp := p.port
	p.port = nil
	p.mu.Unlock()
	if sp != nil {
		_ = sp.Close()
	}
}
