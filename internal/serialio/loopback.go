package serialio

import (
	"errors"
	"sync"
)

var ErrReadCanceled = errors.New("serialio: read canceled")

const loopbackDepth = 64

// Loopback is an in-memory Device: frames queued with Push come back out
// of Read, and frames written by the loop are observable on Responses.
// It stands in for the adapter's local-loopback mode and carries the
// controller tests.
type Loopback struct {
	in  chan []byte
	out chan []byte

	mu     sync.Mutex
	closed bool
	cancel chan struct{}
	done   chan struct{}
}

func NewLoopback() *Loopback {
	return &Loopback{
		in:     make(chan []byte, loopbackDepth),
		out:    make(chan []byte, loopbackDepth),
		cancel: make(chan struct{}),
		done:   make(chan struct{}),
	}
}

// Push queues one inbound frame for the next Read.
func (l *Loopback) Push(frame []byte) {
	cp := make([]byte, len(frame))
	copy(cp, frame)
	l.in <- cp
}

// Responses exposes frames the loop has written.
func (l *Loopback) Responses() <-chan []byte { return l.out }

func (l *Loopback) Read(buf []byte) (int, error) {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return 0, &DeviceError{Op: "read", Name: "loopback", Err: ErrDeviceClosed}
	}
	cancel := l.cancel
	l.mu.Unlock()

	select {
	case frame := <-l.in:
		return copy(buf, frame), nil
	case <-cancel:
		// Arm the next session's read before reporting the cancel.
		l.mu.Lock()
		if l.cancel == cancel {
			l.cancel = make(chan struct{})
		}
		l.mu.Unlock()
		return 0, &DeviceError{Op: "read", Name: "loopback", Err: ErrReadCanceled}
	case <-l.done:
		return 0, &DeviceError{Op: "read", Name: "loopback", Err: ErrDeviceClosed}
	}
}

func (l *Loopback) Write(frame []byte) (int, error) {
	l.mu.Lock()
	closed := l.closed
	l.mu.Unlock()
	if closed {
		return 0, &DeviceError{Op: "write", Name: "loopback", Err: ErrDeviceClosed}
	}
	cp := make([]byte, len(frame))
	copy(cp, frame)
	select {
	case l.out <- cp:
	default:
		// Nothing is draining responses; dropping beats deadlocking the loop.
	}
	return len(frame), nil
}

func (l *Loopback) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return nil
	}
	l.closed = true
	close(l.done)
	return nil
}

func (l *Loopback) CancelRead() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return
	}
	select {
	case <-l.cancel:
	default:
		close(l.cancel)
	}
}

func (l *Loopback) CancelWrite() {}
