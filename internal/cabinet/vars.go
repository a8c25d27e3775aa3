package cabinet

import "fmt"

// Namespace partitions the cell index space by the hardware surface a cell
// models.
type Namespace uint8

const (
	NSInput Namespace = iota
	NSOutput
	NSMMU
	NSControllerUnit
	NSBIU
	NSBroadcast
)

func (ns Namespace) String() string {
	switch ns {
	case NSInput:
		return "input"
	case NSOutput:
		return "output"
	case NSMMU:
		return "mmu"
	case NSControllerUnit:
		return "cu"
	case NSBIU:
		return "biu"
	case NSBroadcast:
		return "broadcast"
	default:
		return fmt.Sprintf("namespace(%d)", uint8(ns))
	}
}

// Kind is the value width a cell carries. Every cell lives in a uint32;
// Kind records how much of it is meaningful.
type Kind uint8

const (
	KindBit Kind = iota
	KindByte
	KindWord
	KindInteger
)

// Ref identifies one cell in the store.
type Ref struct {
	NS    Namespace
	Index uint16
}

func (r Ref) String() string {
	return fmt.Sprintf("%s:0x%04X", r.NS, r.Index)
}

// Cabinet capacity limits. Frame layouts address a subset of each family;
// the store carries the full complement.
const (
	MaxChannels           = 32
	MaxLoadSwitchChannels = 16
	MaxPhases             = 40
	MaxVehicleDetectors   = 128
	MaxPedDetectors       = 72
	MaxRings              = 16
	MaxPreempts           = 40
	MaxSpecialFunctions   = 16
	MaxTFBIUs             = 8
	MaxDETBIUs            = 8
	MaxMMUChannels        = 16
)

// Index bands. Families never overlap: every band below leaves room for its
// family's maximum before the next base.
const (
	// Input namespace.
	inVehicleDetCallBase     = 0x0000 // 1..128
	inPedDetCallBase         = 0x0080 // 1..72
	inPreemptInputBase       = 0x00D0 // 1..40
	inRingStopTimingBase     = 0x0100 // 1..16
	inRingMax2SelectionBase  = 0x0110
	inRingForceOffBase       = 0x0120
	inRingRedRestBase        = 0x0130
	inRingOmitRedClearBase   = 0x0140
	inRingPedRecycleBase     = 0x0150
	inRingInhibitMaxTermBase = 0x0160
	inPhasePhaseOmitBase     = 0x0170 // 1..40
	inPhasePedOmitBase       = 0x01A0 // 1..40
	inUnitSystemAddressBase  = 0x01D0 // bits 0..4
	inSingleBase             = 0x0200

	// Output namespace.
	outGreenDriverBase     = 0x0000 // 1..32
	outYellowDriverBase    = 0x0020
	outRedDriverBase       = 0x0040
	outSpecialFunctionBase = 0x0060 // 1..16
	outPreemptStatusBase   = 0x0080 // 1..40
	outPhaseOnBase         = 0x00C0 // 1..40
	outPhaseNextBase       = 0x0100
	outPhaseCheckBase      = 0x0140
	outDetectorResetBase   = 0x0180 // 1..8, byte cells
	outRingStatusBitABase  = 0x0190 // 1..16
	outRingStatusBitBBase  = 0x01A0
	outRingStatusBitCBase  = 0x01B0
	outSingleBase          = 0x01C0

	// MMU namespace. Compatibility pairs live at i<<8|j (>= 0x0102), above
	// every band here.
	mmuGreenStatusBase      = 0x0000 // 1..16
	mmuYellowStatusBase     = 0x0020
	mmuRedStatusBase        = 0x0040
	mmuGreenDriverBase      = 0x0060
	mmuYellowDriverBase     = 0x0080
	mmuRedDriverBase        = 0x00A0
	mmuMinYellowDisableBase = 0x00C0 // 1..16
	mmuMinFlashTimeBase     = 0x00D0 // bits 0..3
	mmuSingleBase           = 0x00E0

	// Broadcast namespace.
	bcastTimeByteBase       = 0x0000 // 7 byte cells
	bcastTFBIUPresenceBase  = 0x0010 // 1..8
	bcastDETBIUPresenceBase = 0x0020
)

func mustIndex(n, lo, hi int, what string) {
	if n < lo || n > hi {
		panic(fmt.Sprintf("cabinet: %s %d out of range [%d,%d]", what, n, lo, hi))
	}
}

// Input constructors.

func InVehicleDetCall(n int) Ref {
	mustIndex(n, 1, MaxVehicleDetectors, "vehicle detector")
	return Ref{NSInput, uint16(inVehicleDetCallBase + n - 1)}
}

func InPedDetCall(n int) Ref {
	mustIndex(n, 1, MaxPedDetectors, "ped detector")
	return Ref{NSInput, uint16(inPedDetCallBase + n - 1)}
}

func InPreemptInput(n int) Ref {
	mustIndex(n, 1, MaxPreempts, "preempt")
	return Ref{NSInput, uint16(inPreemptInputBase + n - 1)}
}

func InRingStopTiming(ring int) Ref {
	mustIndex(ring, 1, MaxRings, "ring")
	return Ref{NSInput, uint16(inRingStopTimingBase + ring - 1)}
}

func InRingMax2Selection(ring int) Ref {
	mustIndex(ring, 1, MaxRings, "ring")
	return Ref{NSInput, uint16(inRingMax2SelectionBase + ring - 1)}
}

func InRingForceOff(ring int) Ref {
	mustIndex(ring, 1, MaxRings, "ring")
	return Ref{NSInput, uint16(inRingForceOffBase + ring - 1)}
}

func InRingRedRest(ring int) Ref {
	mustIndex(ring, 1, MaxRings, "ring")
	return Ref{NSInput, uint16(inRingRedRestBase + ring - 1)}
}

func InRingOmitRedClearance(ring int) Ref {
	mustIndex(ring, 1, MaxRings, "ring")
	return Ref{NSInput, uint16(inRingOmitRedClearBase + ring - 1)}
}

func InRingPedestrianRecycle(ring int) Ref {
	mustIndex(ring, 1, MaxRings, "ring")
	return Ref{NSInput, uint16(inRingPedRecycleBase + ring - 1)}
}

func InRingInhibitMaxTermination(ring int) Ref {
	mustIndex(ring, 1, MaxRings, "ring")
	return Ref{NSInput, uint16(inRingInhibitMaxTermBase + ring - 1)}
}

func InPhasePhaseOmit(phase int) Ref {
	mustIndex(phase, 1, MaxPhases, "phase")
	return Ref{NSInput, uint16(inPhasePhaseOmitBase + phase - 1)}
}

func InPhasePedOmit(phase int) Ref {
	mustIndex(phase, 1, MaxPhases, "phase")
	return Ref{NSInput, uint16(inPhasePedOmitBase + phase - 1)}
}

func InUnitSystemAddressBit(bit int) Ref {
	mustIndex(bit, 0, 4, "system address bit")
	return Ref{NSInput, uint16(inUnitSystemAddressBase + bit)}
}

// Input singletons.
var (
	InUnitTestInputA          = Ref{NSInput, inSingleBase + 0}
	InUnitTestInputB          = Ref{NSInput, inSingleBase + 1}
	InUnitTestInputC          = Ref{NSInput, inSingleBase + 2}
	InUnitAutomaticFlash      = Ref{NSInput, inSingleBase + 3}
	InUnitDimming             = Ref{NSInput, inSingleBase + 4}
	InUnitManualControlEnable = Ref{NSInput, inSingleBase + 5}
	InUnitIntervalAdvance     = Ref{NSInput, inSingleBase + 6}
	InUnitExternalMinRecall   = Ref{NSInput, inSingleBase + 7}
	InUnitExternalStart       = Ref{NSInput, inSingleBase + 8}
	InUnitTBCOnline           = Ref{NSInput, inSingleBase + 9}
	InUnitCallToNonActuated1  = Ref{NSInput, inSingleBase + 10}
	InUnitCallToNonActuated2  = Ref{NSInput, inSingleBase + 11}
	InUnitWalkRestModifier    = Ref{NSInput, inSingleBase + 12}
	InUnitLocalFlash          = Ref{NSInput, inSingleBase + 13}
	InUnitCMUMMUFlashStatus   = Ref{NSInput, inSingleBase + 14}
	InUnitAlarm1              = Ref{NSInput, inSingleBase + 15}
	InUnitAlarm2              = Ref{NSInput, inSingleBase + 16}
	InCoordFreeSwitch         = Ref{NSInput, inSingleBase + 17}
	InUnitAlternateSequenceA  = Ref{NSInput, inSingleBase + 18}
	InUnitAlternateSequenceB  = Ref{NSInput, inSingleBase + 19}
	InUnitAlternateSequenceC  = Ref{NSInput, inSingleBase + 20}
	InUnitAlternateSequenceD  = Ref{NSInput, inSingleBase + 21}
	InUnitTimingPlanA         = Ref{NSInput, inSingleBase + 22}
	InUnitTimingPlanB         = Ref{NSInput, inSingleBase + 23}
	InUnitTimingPlanC         = Ref{NSInput, inSingleBase + 24}
	InUnitTimingPlanD         = Ref{NSInput, inSingleBase + 25}
	InUnitOffset1             = Ref{NSInput, inSingleBase + 26}
	InUnitOffset2             = Ref{NSInput, inSingleBase + 27}
	InUnitOffset3             = Ref{NSInput, inSingleBase + 28}
)

// Output constructors.

func OutChannelGreenWalkDriver(ch int) Ref {
	mustIndex(ch, 1, MaxChannels, "channel")
	return Ref{NSOutput, uint16(outGreenDriverBase + ch - 1)}
}

func OutChannelYellowPedClearDriver(ch int) Ref {
	mustIndex(ch, 1, MaxChannels, "channel")
	return Ref{NSOutput, uint16(outYellowDriverBase + ch - 1)}
}

func OutChannelRedDoNotWalkDriver(ch int) Ref {
	mustIndex(ch, 1, MaxChannels, "channel")
	return Ref{NSOutput, uint16(outRedDriverBase + ch - 1)}
}

func OutSpecialFunction(n int) Ref {
	mustIndex(n, 1, MaxSpecialFunctions, "special function")
	return Ref{NSOutput, uint16(outSpecialFunctionBase + n - 1)}
}

func OutPreemptStatus(n int) Ref {
	mustIndex(n, 1, MaxPreempts, "preempt")
	return Ref{NSOutput, uint16(outPreemptStatusBase + n - 1)}
}

func OutPhaseOn(phase int) Ref {
	mustIndex(phase, 1, MaxPhases, "phase")
	return Ref{NSOutput, uint16(outPhaseOnBase + phase - 1)}
}

func OutPhaseNext(phase int) Ref {
	mustIndex(phase, 1, MaxPhases, "phase")
	return Ref{NSOutput, uint16(outPhaseNextBase + phase - 1)}
}

func OutPhaseCheck(phase int) Ref {
	mustIndex(phase, 1, MaxPhases, "phase")
	return Ref{NSOutput, uint16(outPhaseCheckBase + phase - 1)}
}

// OutDetectorReset addresses a byte cell, one per DET BIU.
func OutDetectorReset(biu int) Ref {
	mustIndex(biu, 1, MaxDETBIUs, "det biu")
	return Ref{NSOutput, uint16(outDetectorResetBase + biu - 1)}
}

func OutRingStatusBitA(ring int) Ref {
	mustIndex(ring, 1, MaxRings, "ring")
	return Ref{NSOutput, uint16(outRingStatusBitABase + ring - 1)}
}

func OutRingStatusBitB(ring int) Ref {
	mustIndex(ring, 1, MaxRings, "ring")
	return Ref{NSOutput, uint16(outRingStatusBitBBase + ring - 1)}
}

func OutRingStatusBitC(ring int) Ref {
	mustIndex(ring, 1, MaxRings, "ring")
	return Ref{NSOutput, uint16(outRingStatusBitCBase + ring - 1)}
}

// Output singletons.
var (
	OutUnitTBCAux1         = Ref{NSOutput, outSingleBase + 0}
	OutUnitTBCAux2         = Ref{NSOutput, outSingleBase + 1}
	OutUnitTBCAux3         = Ref{NSOutput, outSingleBase + 2}
	OutUnitFreeCoordStatus = Ref{NSOutput, outSingleBase + 3}
	OutUnitTimingPlanA     = Ref{NSOutput, outSingleBase + 4}
	OutUnitTimingPlanB     = Ref{NSOutput, outSingleBase + 5}
	OutUnitTimingPlanC     = Ref{NSOutput, outSingleBase + 6}
	OutUnitTimingPlanD     = Ref{NSOutput, outSingleBase + 7}
	OutUnitOffset1         = Ref{NSOutput, outSingleBase + 8}
	OutUnitOffset2         = Ref{NSOutput, outSingleBase + 9}
	OutUnitOffset3         = Ref{NSOutput, outSingleBase + 10}
	OutUnitAutomaticFlash  = Ref{NSOutput, outSingleBase + 11}
)

// MMU constructors.

func MMUChannelGreenWalkStatus(ch int) Ref {
	mustIndex(ch, 1, MaxMMUChannels, "mmu channel")
	return Ref{NSMMU, uint16(mmuGreenStatusBase + ch - 1)}
}

func MMUChannelYellowPedClearStatus(ch int) Ref {
	mustIndex(ch, 1, MaxMMUChannels, "mmu channel")
	return Ref{NSMMU, uint16(mmuYellowStatusBase + ch - 1)}
}

func MMUChannelRedDoNotWalkStatus(ch int) Ref {
	mustIndex(ch, 1, MaxMMUChannels, "mmu channel")
	return Ref{NSMMU, uint16(mmuRedStatusBase + ch - 1)}
}

func MMUChannelGreenWalkDriver(ch int) Ref {
	mustIndex(ch, 1, MaxMMUChannels, "mmu channel")
	return Ref{NSMMU, uint16(mmuGreenDriverBase + ch - 1)}
}

func MMUChannelYellowPedClearDriver(ch int) Ref {
	mustIndex(ch, 1, MaxMMUChannels, "mmu channel")
	return Ref{NSMMU, uint16(mmuYellowDriverBase + ch - 1)}
}

func MMUChannelRedDoNotWalkDriver(ch int) Ref {
	mustIndex(ch, 1, MaxMMUChannels, "mmu channel")
	return Ref{NSMMU, uint16(mmuRedDriverBase + ch - 1)}
}

func MMUMinimumYellowChangeDisable(ch int) Ref {
	mustIndex(ch, 1, MaxMMUChannels, "mmu channel")
	return Ref{NSMMU, uint16(mmuMinYellowDisableBase + ch - 1)}
}

func MMUMinimumFlashTimeBit(bit int) Ref {
	mustIndex(bit, 0, 3, "flash time bit")
	return Ref{NSMMU, uint16(mmuMinFlashTimeBase + bit)}
}

// MMUChannelCompatibility addresses the compatibility cell for the channel
// pair (i, j), 1 <= i < j <= 16. Pair cells occupy i<<8|j, above every
// other MMU band.
func MMUChannelCompatibility(i, j int) Ref {
	mustIndex(i, 1, MaxMMUChannels-1, "channel")
	mustIndex(j, i+1, MaxMMUChannels, "channel")
	return Ref{NSMMU, uint16(i)<<8 | uint16(j)}
}

// MMU singletons.
var (
	MMULoadSwitchFlash                 = Ref{NSMMU, mmuSingleBase + 0}
	MMUControllerVoltMonitor           = Ref{NSMMU, mmuSingleBase + 1}
	MMU24VoltMonitorI                  = Ref{NSMMU, mmuSingleBase + 2}
	MMU24VoltMonitorII                 = Ref{NSMMU, mmuSingleBase + 3}
	MMU24VoltMonitorInhibit            = Ref{NSMMU, mmuSingleBase + 4}
	MMUReset                           = Ref{NSMMU, mmuSingleBase + 5}
	MMURedEnable                       = Ref{NSMMU, mmuSingleBase + 6}
	MMUConflict                        = Ref{NSMMU, mmuSingleBase + 7}
	MMURedFailure                      = Ref{NSMMU, mmuSingleBase + 8}
	MMUDiagnosticFailure               = Ref{NSMMU, mmuSingleBase + 9}
	MMUMinimumClearanceFailure         = Ref{NSMMU, mmuSingleBase + 10}
	MMUPort1TimeoutFailure             = Ref{NSMMU, mmuSingleBase + 11}
	MMUFailedAndOutputRelayTransferred = Ref{NSMMU, mmuSingleBase + 12}
	MMUFailedAndImmediateResponse      = Ref{NSMMU, mmuSingleBase + 13}
	MMULocalFlashStatus                = Ref{NSMMU, mmuSingleBase + 14}
	MMUStartupFlashCall                = Ref{NSMMU, mmuSingleBase + 15}
	MMUFYAFlashRateFailure             = Ref{NSMMU, mmuSingleBase + 16}
	MMU24VoltLatch                     = Ref{NSMMU, mmuSingleBase + 17}
	MMUCVMFaultMonitorLatch            = Ref{NSMMU, mmuSingleBase + 18}
)

// Broadcast constructors and singletons. The date/time cells are byte-wide.

func BcastTFBIUPresence(biu int) Ref {
	mustIndex(biu, 1, MaxTFBIUs, "tf biu")
	return Ref{NSBroadcast, uint16(bcastTFBIUPresenceBase + biu - 1)}
}

func BcastDETBIUPresence(biu int) Ref {
	mustIndex(biu, 1, MaxDETBIUs, "det biu")
	return Ref{NSBroadcast, uint16(bcastDETBIUPresenceBase + biu - 1)}
}

var (
	BcastMonth          = Ref{NSBroadcast, bcastTimeByteBase + 0}
	BcastDay            = Ref{NSBroadcast, bcastTimeByteBase + 1}
	BcastYear           = Ref{NSBroadcast, bcastTimeByteBase + 2}
	BcastHour           = Ref{NSBroadcast, bcastTimeByteBase + 3}
	BcastMinute         = Ref{NSBroadcast, bcastTimeByteBase + 4}
	BcastSecond         = Ref{NSBroadcast, bcastTimeByteBase + 5}
	BcastTenthsOfSecond = Ref{NSBroadcast, bcastTimeByteBase + 6}
)
