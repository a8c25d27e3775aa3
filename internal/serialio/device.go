package serialio

import (
	"errors"
	"fmt"
)

var ErrDeviceClosed = errors.New("serialio: device closed")

// DeviceError wraps a transport failure with the operation and device that
// produced it.
type DeviceError struct {
	Op   string
	Name string
	Err  error
}

func (e *DeviceError) Error() string {
	return fmt.Sprintf("serialio: %s %s: %v", e.Op, e.Name, e.Err)
}

func (e *DeviceError) Unwrap() error { return e.Err }

// Device is one synchronous HDLC channel. Read blocks until a whole frame
// arrives (the adapter strips the CRC); Write sends a whole frame.
// CancelRead and CancelWrite unblock in-flight calls so a loop can join.
type Device interface {
	Read(buf []byte) (int, error)
	Write(frame []byte) (int, error)
	Close() error
	CancelRead()
	CancelWrite()
}

// Encoding and clocking constants of the adapter contract.
const (
	ModeHDLC = 2

	ClockFlagRxPin   = 0x0000
	ClockFlagTxBRG   = 0x0800
	EncodingNRZ      = 0
	CRCTypeCCITT16   = 1
	IdleModeOnes     = 3
	PortClockHz      = 153600
	AddressFilterAll = 0xFF
)

// Params carries the HDLC channel setup. Values mirror what a TS2 Port-1
// adapter expects; DefaultParams is correct for every known deployment.
// On the plain serial backend only Clock reaches the hardware; the
// framing fields describe what the adapter firmware (or the loopback)
// must provide.
type Params struct {
	Mode             int
	Loopback         bool
	ClockSourceFlags int
	Encoding         int
	Clock            int
	CRCType          int
	AddrFilter       byte
	RxPoll           int
	TxPoll           int
	RxErrorMask      int
	IdleMode         int
}

func DefaultParams() Params {
	return Params{
		Mode:             ModeHDLC,
		Loopback:         false,
		ClockSourceFlags: ClockFlagRxPin | ClockFlagTxBRG,
		Encoding:         EncodingNRZ,
		Clock:            PortClockHz,
		CRCType:          CRCTypeCCITT16,
		AddrFilter:       AddressFilterAll,
		RxPoll:           0,
		TxPoll:           0,
		RxErrorMask:      1,
		IdleMode:         IdleModeOnes,
	}
}
