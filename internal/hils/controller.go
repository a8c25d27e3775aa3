package hils

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/danmuck/vtcab/internal/cabinet"
	"github.com/danmuck/vtcab/internal/mmu"
	"github.com/danmuck/vtcab/internal/observability"
	"github.com/danmuck/vtcab/internal/sdlc"
	"github.com/danmuck/vtcab/internal/serialio"
)

var (
	ErrLoopRunning    = errors.New("hils: sdlc loop is running")
	ErrLoopNotRunning = errors.New("hils: sdlc loop is not running")
	ErrNoDevice       = errors.New("hils: no device loaded")
)

// OpenDeviceFunc opens the serial device named in the wiring document.
type OpenDeviceFunc func(name string) (serialio.Device, error)

// defaultOpenDevice opens a real adapter, or an in-memory loopback when
// the document names the loopback scheme.
func defaultOpenDevice(name string) (serialio.Device, error) {
	if strings.HasPrefix(name, "loopback") {
		return serialio.NewLoopback(), nil
	}
	return serialio.Open(name, serialio.DefaultParams())
}

// Options tune a Controller. Zero values select the global logger, the
// default device opener, and an anonymous node label.
type Options struct {
	Node       string
	OpenDevice OpenDeviceFunc
	Logger     *zerolog.Logger
}

// Controller owns the wiring bindings, the compatibility card, the serial
// device, and the SDLC polling goroutine.
type Controller struct {
	store      *cabinet.Store
	dispatcher *sdlc.Dispatcher
	card       *mmu.Card
	log        zerolog.Logger
	node       string
	openDevice OpenDeviceFunc

	mu             sync.Mutex
	device         serialio.Device
	deviceName     string
	loadswitches   []LoadswitchWiring
	detectors      []DetectorWiring
	simulationStep float64
	logFrames      bool

	enabled atomic.Bool
	cancel  context.CancelFunc
	done    chan struct{}
}

func New(store *cabinet.Store, dispatcher *sdlc.Dispatcher, card *mmu.Card, opts Options) *Controller {
	c := &Controller{
		store:      store,
		dispatcher: dispatcher,
		card:       card,
		log:        log.Logger,
		node:       opts.Node,
		openDevice: defaultOpenDevice,
	}
	if opts.Node == "" {
		c.node = "vtcab"
	}
	if opts.OpenDevice != nil {
		c.openDevice = opts.OpenDevice
	}
	if opts.Logger != nil {
		c.log = *opts.Logger
	}
	return c
}

// LoadConfig reads the wiring document, verifies every binding through
// the simulator callbacks, opens the device, and only then commits: a
// failed load leaves the store, the card, and any previous wiring exactly
// as they were.
func (c *Controller) LoadConfig(path string, cb Callbacks) error {
	if c.enabled.Load() {
		return ErrLoopRunning
	}

	doc, err := readDocument(path)
	if err != nil {
		return err
	}
	loadswitches, detectors, err := stageWirings(path, doc, cb)
	if err != nil {
		return err
	}

	// The compatibility program is advisory: a missing or malformed hex
	// string falls back to the default dual-ring card.
	pattern := mmu.DefaultPattern()
	if doc.MMU != nil && doc.MMU.ChannelCompatibility != "" {
		if parsed, perr := mmu.ParseHex(doc.MMU.ChannelCompatibility); perr != nil {
			c.log.Warn().Err(perr).Str("path", path).
				Msg("channel compatibility unusable, applying default pattern")
		} else {
			pattern = parsed
		}
	}

	device, err := c.openDevice(doc.Device)
	if err != nil {
		return &ConfigError{Path: path, Reason: "device open failed", Err: err}
	}

	c.mu.Lock()
	old := c.device
	c.device = device
	c.deviceName = doc.Device
	c.loadswitches = loadswitches
	c.detectors = detectors
	c.simulationStep = doc.SimulationStep
	c.logFrames = doc.LogSDLCFrames
	c.mu.Unlock()

	c.card.Apply(pattern)
	if old != nil {
		_ = old.Close()
	}

	c.log.Info().
		Str("path", path).
		Str("device", doc.Device).
		Float64("simulation_step", doc.SimulationStep).
		Int("loadswitch_wirings", len(loadswitches)).
		Int("detector_wirings", len(detectors)).
		Msg("wiring config loaded")
	return nil
}

// SimulationStep reports the loaded tick interval in seconds.
func (c *Controller) SimulationStep() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.simulationStep
}

// DeviceName reports the loaded device path.
func (c *Controller) DeviceName() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.deviceName
}

// SetFrameLogging overrides the document's log_sdlc_frames flag.
func (c *Controller) SetFrameLogging(on bool) {
	c.mu.Lock()
	c.logFrames = on
	c.mu.Unlock()
}

// EnableSDLC starts the polling goroutine. The loop runs until the
// context is canceled or DisableSDLC is called.
func (c *Controller) EnableSDLC(ctx context.Context) error {
	c.mu.Lock()
	device := c.device
	c.mu.Unlock()
	if device == nil {
		return ErrNoDevice
	}
	if !c.enabled.CompareAndSwap(false, true) {
		return ErrLoopRunning
	}

	loopCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	c.cancel = cancel
	c.done = done
	go c.runIO(loopCtx, device, done)
	c.log.Info().Str("device", c.DeviceName()).Msg("sdlc loop enabled")
	return nil
}

// DisableSDLC stops the loop, unblocks any in-flight read, and joins the
// goroutine before returning.
func (c *Controller) DisableSDLC() error {
	if !c.enabled.CompareAndSwap(true, false) {
		return ErrLoopNotRunning
	}
	c.cancel()
	c.mu.Lock()
	device := c.device
	c.mu.Unlock()
	if device != nil {
		device.CancelRead()
	}
	<-c.done
	c.log.Info().Msg("sdlc loop disabled")
	return nil
}

// Enabled reports whether the loop is running.
func (c *Controller) Enabled() bool { return c.enabled.Load() }

// Close tears the controller down: stops the loop if running and closes
// the device.
func (c *Controller) Close() error {
	if c.enabled.Load() {
		_ = c.DisableSDLC()
	}
	c.mu.Lock()
	device := c.device
	c.device = nil
	c.mu.Unlock()
	if device != nil {
		return device.Close()
	}
	return nil
}

func (c *Controller) runIO(ctx context.Context, device serialio.Device, done chan struct{}) {
	defer close(done)
	buf := make([]byte, sdlc.MaxFrameSize)
	for {
		if ctx.Err() != nil {
			return
		}
		n, err := device.Read(buf)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			if errors.Is(err, serialio.ErrDeviceClosed) {
				c.log.Warn().Err(err).Msg("device closed under sdlc loop")
				return
			}
			observability.RecordSDLCIOError(c.node, "read")
			c.log.Warn().Err(err).Msg("sdlc read failed")
			continue
		}
		if n < sdlc.HeaderSize {
			continue
		}
		frame := buf[:n]

		c.mu.Lock()
		logFrames := c.logFrames
		c.mu.Unlock()
		if logFrames {
			c.log.Info().
				Uint8("type", frame[2]).
				Uint8("addr", frame[0]).
				Str("frame", sdlc.BytesToHex(frame)).
				Msg("command frame")
		}

		resp, matched, err := c.dispatcher.Dispatch(frame)
		observability.RecordSDLCFrame(c.node, frame[2], matched)
		if err != nil {
			c.log.Warn().Err(err).Uint8("type", frame[2]).Msg("dispatch failed")
			continue
		}
		if !matched || len(resp) == 0 {
			continue
		}
		if _, err := device.Write(resp); err != nil {
			observability.RecordSDLCIOError(c.node, "write")
			c.log.Warn().Err(err).Uint8("type", resp[2]).Msg("sdlc write failed")
			continue
		}
		if logFrames {
			c.log.Info().
				Uint8("type", resp[2]).
				Uint8("addr", resp[0]).
				Str("frame", sdlc.BytesToHex(resp)).
				Msg("response frame")
		}
	}
}

// ProcessWirings propagates one simulation tick: detector channels OR
// their bound sensors into the store, and every bound movement receives
// its channel's derived indication.
func (c *Controller) ProcessWirings(cb Callbacks) {
	start := time.Now()

	c.mu.Lock()
	detectors := c.detectors
	loadswitches := c.loadswitches
	c.mu.Unlock()

	for _, dw := range detectors {
		call := false
		for _, id := range dw.SensorIDs {
			if cb.SensorPresence != nil && cb.SensorPresence(dw.Channel, id) {
				call = true
				break
			}
		}
		c.store.SetBit(cabinet.InVehicleDetCall(dw.Channel), call)
	}

	if cb.LoadswitchState != nil {
		for _, lw := range loadswitches {
			state := channelState(c.store, lw.Channel)
			for _, m := range lw.Movements {
				cb.LoadswitchState(lw.Channel, state, m.Approach, m.Turn)
			}
		}
	}

	observability.RecordWiringTick(c.node, time.Since(start))
}
