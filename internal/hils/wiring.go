package hils

import (
	"github.com/danmuck/vtcab/internal/cabinet"
)

// Channel capacity of the wiring surface.
const (
	MaxLoadswitchChannels = 16
	MaxDetectorChannels   = 64
)

// Turn is a turning movement kind at an approach.
type Turn int

const (
	TurnRight Turn = iota
	TurnThrough
	TurnLeft
	TurnUTurn
)

func (t Turn) Valid() bool { return t >= TurnRight && t <= TurnUTurn }

func (t Turn) String() string {
	switch t {
	case TurnRight:
		return "right"
	case TurnThrough:
		return "through"
	case TurnLeft:
		return "left"
	case TurnUTurn:
		return "uturn"
	default:
		return "invalid"
	}
}

// LoadswitchChannelState is the signal indication a load switch channel
// currently drives.
type LoadswitchChannelState int

const (
	StateBlank LoadswitchChannelState = iota
	StateRed
	StateYellow
	StateGreen
)

func (s LoadswitchChannelState) String() string {
	switch s {
	case StateBlank:
		return "blank"
	case StateRed:
		return "red"
	case StateYellow:
		return "yellow"
	case StateGreen:
		return "green"
	default:
		return "invalid"
	}
}

// DeriveChannelState maps the three channel drivers to an indication.
// Exactly one driver must be active; anything else (dark or conflicting)
// is Blank, the fail-safe reading.
func DeriveChannelState(green, yellow, red bool) LoadswitchChannelState {
	switch {
	case green && !yellow && !red:
		return StateGreen
	case !green && yellow && !red:
		return StateYellow
	case !green && !yellow && red:
		return StateRed
	default:
		return StateBlank
	}
}

// TurningMovement is one simulator movement bound to a load switch
// channel.
type TurningMovement struct {
	Approach int
	Turn     Turn
}

// LoadswitchWiring binds one channel's signal head to its movements.
type LoadswitchWiring struct {
	Channel   int
	Movements []TurningMovement
}

// DetectorWiring binds one detector channel to the simulator sensors that
// feed it.
type DetectorWiring struct {
	Channel   int
	SensorIDs []int
}

// Callbacks are the simulator-facing hooks. Verify hooks run during
// config load; a nil hook accepts everything. Tick hooks run from
// ProcessWirings.
type Callbacks struct {
	// VerifyStep vets the document's simulation step against the
	// simulator's own tick length.
	VerifyStep func(seconds float64) error
	// VerifyMovement vets one loadswitch binding against the simulator.
	VerifyMovement func(channel int, m TurningMovement) error
	// VerifySensor vets one detector binding against the simulator.
	VerifySensor func(channel, sensorID int) error
	// SensorPresence reports whether the sensor feeding a detector
	// channel is occupied this tick.
	SensorPresence func(channel, sensorID int) bool
	// LoadswitchState receives the derived indication for every bound
	// movement this tick.
	LoadswitchState func(channel int, state LoadswitchChannelState, approach int, turn Turn)
}

// channelState reads a channel's three drivers from the store and derives
// its indication.
func channelState(store *cabinet.Store, ch int) LoadswitchChannelState {
	return DeriveChannelState(
		store.Bit(cabinet.OutChannelGreenWalkDriver(ch)),
		store.Bit(cabinet.OutChannelYellowPedClearDriver(ch)),
		store.Bit(cabinet.OutChannelRedDoNotWalkDriver(ch)),
	)
}
