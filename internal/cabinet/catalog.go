package cabinet

// Entry is one authored cell: its Ref and the value width it carries.
type Entry struct {
	Ref  Ref
	Kind Kind
}

// Catalog enumerates every cell the cabinet owns. The store is built from
// this list exactly once; nothing outside this file authors cells.
func Catalog() []Entry {
	var out []Entry
	bit := func(r Ref) { out = append(out, Entry{r, KindBit}) }
	byteCell := func(r Ref) { out = append(out, Entry{r, KindByte}) }

	// Input: detector calls, preempts, ring and phase controls, unit inputs.
	for n := 1; n <= MaxVehicleDetectors; n++ {
		bit(InVehicleDetCall(n))
	}
	for n := 1; n <= MaxPedDetectors; n++ {
		bit(InPedDetCall(n))
	}
	for n := 1; n <= MaxPreempts; n++ {
		bit(InPreemptInput(n))
	}
	for ring := 1; ring <= MaxRings; ring++ {
		bit(InRingStopTiming(ring))
		bit(InRingMax2Selection(ring))
		bit(InRingForceOff(ring))
		bit(InRingRedRest(ring))
		bit(InRingOmitRedClearance(ring))
		bit(InRingPedestrianRecycle(ring))
		bit(InRingInhibitMaxTermination(ring))
	}
	for phase := 1; phase <= MaxPhases; phase++ {
		bit(InPhasePhaseOmit(phase))
		bit(InPhasePedOmit(phase))
	}
	for b := 0; b <= 4; b++ {
		bit(InUnitSystemAddressBit(b))
	}
	for _, r := range []Ref{
		InUnitTestInputA, InUnitTestInputB, InUnitTestInputC,
		InUnitAutomaticFlash, InUnitDimming, InUnitManualControlEnable,
		InUnitIntervalAdvance, InUnitExternalMinRecall, InUnitExternalStart,
		InUnitTBCOnline, InUnitCallToNonActuated1, InUnitCallToNonActuated2,
		InUnitWalkRestModifier, InUnitLocalFlash, InUnitCMUMMUFlashStatus,
		InUnitAlarm1, InUnitAlarm2, InCoordFreeSwitch,
		InUnitAlternateSequenceA, InUnitAlternateSequenceB,
		InUnitAlternateSequenceC, InUnitAlternateSequenceD,
		InUnitTimingPlanA, InUnitTimingPlanB, InUnitTimingPlanC,
		InUnitTimingPlanD, InUnitOffset1, InUnitOffset2, InUnitOffset3,
	} {
		bit(r)
	}

	// Output: load switch drivers, phase and ring status, unit outputs.
	for ch := 1; ch <= MaxChannels; ch++ {
		bit(OutChannelGreenWalkDriver(ch))
		bit(OutChannelYellowPedClearDriver(ch))
		bit(OutChannelRedDoNotWalkDriver(ch))
	}
	for n := 1; n <= MaxSpecialFunctions; n++ {
		bit(OutSpecialFunction(n))
	}
	for n := 1; n <= MaxPreempts; n++ {
		bit(OutPreemptStatus(n))
	}
	for phase := 1; phase <= MaxPhases; phase++ {
		bit(OutPhaseOn(phase))
		bit(OutPhaseNext(phase))
		bit(OutPhaseCheck(phase))
	}
	for biu := 1; biu <= MaxDETBIUs; biu++ {
		byteCell(OutDetectorReset(biu))
	}
	for ring := 1; ring <= MaxRings; ring++ {
		bit(OutRingStatusBitA(ring))
		bit(OutRingStatusBitB(ring))
		bit(OutRingStatusBitC(ring))
	}
	for _, r := range []Ref{
		OutUnitTBCAux1, OutUnitTBCAux2, OutUnitTBCAux3,
		OutUnitFreeCoordStatus,
		OutUnitTimingPlanA, OutUnitTimingPlanB, OutUnitTimingPlanC,
		OutUnitTimingPlanD,
		OutUnitOffset1, OutUnitOffset2, OutUnitOffset3,
		OutUnitAutomaticFlash,
	} {
		bit(r)
	}

	// MMU: channel status/drivers, compatibility pairs, monitor flags.
	for ch := 1; ch <= MaxMMUChannels; ch++ {
		bit(MMUChannelGreenWalkStatus(ch))
		bit(MMUChannelYellowPedClearStatus(ch))
		bit(MMUChannelRedDoNotWalkStatus(ch))
		bit(MMUChannelGreenWalkDriver(ch))
		bit(MMUChannelYellowPedClearDriver(ch))
		bit(MMUChannelRedDoNotWalkDriver(ch))
		bit(MMUMinimumYellowChangeDisable(ch))
	}
	for b := 0; b <= 3; b++ {
		bit(MMUMinimumFlashTimeBit(b))
	}
	for i := 1; i < MaxMMUChannels; i++ {
		for j := i + 1; j <= MaxMMUChannels; j++ {
			bit(MMUChannelCompatibility(i, j))
		}
	}
	for _, r := range []Ref{
		MMULoadSwitchFlash, MMUControllerVoltMonitor,
		MMU24VoltMonitorI, MMU24VoltMonitorII, MMU24VoltMonitorInhibit,
		MMUReset, MMURedEnable, MMUConflict, MMURedFailure,
		MMUDiagnosticFailure, MMUMinimumClearanceFailure,
		MMUPort1TimeoutFailure, MMUFailedAndOutputRelayTransferred,
		MMUFailedAndImmediateResponse, MMULocalFlashStatus,
		MMUStartupFlashCall, MMUFYAFlashRateFailure,
		MMU24VoltLatch, MMUCVMFaultMonitorLatch,
	} {
		bit(r)
	}

	// Broadcast: date/time bytes and BIU presence flags.
	for _, r := range []Ref{
		BcastMonth, BcastDay, BcastYear, BcastHour,
		BcastMinute, BcastSecond, BcastTenthsOfSecond,
	} {
		byteCell(r)
	}
	for biu := 1; biu <= MaxTFBIUs; biu++ {
		bit(BcastTFBIUPresence(biu))
	}
	for biu := 1; biu <= MaxDETBIUs; biu++ {
		bit(BcastDETBIUPresence(biu))
	}

	return out
}
