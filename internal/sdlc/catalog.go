package sdlc

import (
	"github.com/danmuck/vtcab/internal/cabinet"
)

// Station addresses on the Port-1 bus.
const (
	addrMMU     = 0x10
	addrTFBIU1  = 0x00
	addrTFBIU2  = 0x01
	addrTFBIU3  = 0x02
	addrTFBIU4  = 0x03
	addrDETBIU1 = 0x08
	addrDETBIU2 = 0x09
	addrDETBIU3 = 0x0A
	addrDETBIU4 = 0x0B
)

// Catalog holds every frame definition keyed by type id.
type Catalog map[byte]*Def

// NewCatalog builds and validates the full Port-1 frame set. Layouts are
// authored here and nowhere else; a validation failure is an authoring
// bug surfaced before any I/O happens.
func NewCatalog() (Catalog, error) {
	defs := []*Def{
		loadSwitchDriversFrame(),
		{Address: addrMMU, ID: 1, Size: 3, Dir: Command},
		{Address: addrMMU, ID: 3, Size: 3, Dir: Command},
		dateTimeBroadcastFrame(),
		tfBIUOutputsFrame1(),
		tfBIUOutputsFrame2(),
		tfBIUOutputsFrame3(),
		tfBIUOutputsFrame4(),
		{Address: BroadcastAddress, ID: 18, Size: 3, Dir: Command},
		{Address: addrDETBIU1, ID: 20, Size: 3, Dir: Command},
		{Address: addrDETBIU2, ID: 21, Size: 3, Dir: Command},
		{Address: addrDETBIU3, ID: 22, Size: 3, Dir: Command},
		{Address: addrDETBIU4, ID: 23, Size: 3, Dir: Command},
		detectorResetFrame(addrDETBIU1, 24, 1),
		detectorResetFrame(addrDETBIU2, 25, 2),
		detectorResetFrame(addrDETBIU3, 26, 3),
		detectorResetFrame(addrDETBIU4, 27, 4),
		{Address: addrMMU, ID: 128, Size: 3, Dir: Response},
		mmuStatusFrame(),
		mmuProgrammingFrame(),
		tfBIUInputsFrame1(),
		tfBIUInputsFrame2(),
		tfBIUInputsFrame3(),
		tfBIUInputsFrame4(),
		detBIUCallDataFrame(addrDETBIU1, 148, 1),
		detBIUCallDataFrame(addrDETBIU2, 149, 17),
		detBIUCallDataFrame(addrDETBIU3, 150, 33),
		detBIUCallDataFrame(addrDETBIU4, 151, 49),
		{Address: addrDETBIU1, ID: 152, Size: 19, Dir: Response},
		{Address: addrDETBIU2, ID: 153, Size: 19, Dir: Response},
		{Address: addrDETBIU3, ID: 154, Size: 19, Dir: Response},
		{Address: addrDETBIU4, ID: 155, Size: 19, Dir: Response},
	}

	cat := make(Catalog, len(defs))
	for _, d := range defs {
		if err := d.Validate(); err != nil {
			return nil, err
		}
		if _, dup := cat[d.ID]; dup {
			return nil, ErrDuplicateType
		}
		cat[d.ID] = d
	}
	return cat, nil
}

// Type 0: CU -> MMU load switch drivers. Each channel driver occupies two
// adjacent half-wave bits.
func loadSwitchDriversFrame() *Def {
	d := &Def{Address: addrMMU, ID: 0, Size: 16, Dir: Command}
	for ch := 1; ch <= 16; ch++ {
		g := 0x18 + 2*(ch-1)
		y := 0x38 + 2*(ch-1)
		r := 0x58 + 2*(ch-1)
		d.Fields = append(d.Fields,
			SharedBit(g, g+1, cabinet.MMUChannelGreenWalkDriver(ch)),
			SharedBit(y, y+1, cabinet.MMUChannelYellowPedClearDriver(ch)),
			SharedBit(r, r+1, cabinet.MMUChannelRedDoNotWalkDriver(ch)),
		)
	}
	d.Fields = append(d.Fields, Bit(0x7F, cabinet.MMULoadSwitchFlash))
	return d
}

// Type 9: time and date broadcast, plus BIU presence flags.
func dateTimeBroadcastFrame() *Def {
	d := &Def{Address: BroadcastAddress, ID: 9, Size: 12, Dir: Command}
	d.Fields = append(d.Fields,
		ByteField(3, cabinet.BcastMonth),
		ByteField(4, cabinet.BcastDay),
		ByteField(5, cabinet.BcastYear),
		ByteField(6, cabinet.BcastHour),
		ByteField(7, cabinet.BcastMinute),
		ByteField(8, cabinet.BcastSecond),
		ByteField(9, cabinet.BcastTenthsOfSecond),
	)
	for biu := 1; biu <= 8; biu++ {
		d.Fields = append(d.Fields,
			Bit(0x50+biu-1, cabinet.BcastTFBIUPresence(biu)),
			Bit(0x58+biu-1, cabinet.BcastDETBIUPresence(biu)),
		)
	}
	return d
}

// Types 10 and 11: CU -> TF BIU #1/#2 load switch outputs, eight channels
// each in Red/Yellow/Green half-wave pairs.
func tfBIUOutputChannels(d *Def, firstCh int) {
	for i := 0; i < 8; i++ {
		ch := firstCh + i
		base := 0x18 + 6*i
		d.Fields = append(d.Fields,
			SharedBit(base, base+1, cabinet.OutChannelRedDoNotWalkDriver(ch)),
			SharedBit(base+2, base+3, cabinet.OutChannelYellowPedClearDriver(ch)),
			SharedBit(base+4, base+5, cabinet.OutChannelGreenWalkDriver(ch)),
		)
	}
}

func tfBIUOutputsFrame1() *Def {
	d := &Def{Address: addrTFBIU1, ID: 10, Size: 11, Dir: Command}
	tfBIUOutputChannels(d, 1)
	d.Fields = append(d.Fields,
		Bit(0x48, cabinet.OutUnitTBCAux1),
		Bit(0x49, cabinet.OutUnitTBCAux2),
		Bit(0x4A, cabinet.OutPreemptStatus(1)),
		Bit(0x4B, cabinet.OutPreemptStatus(2)),
	)
	return d
}

func tfBIUOutputsFrame2() *Def {
	d := &Def{Address: addrTFBIU2, ID: 11, Size: 11, Dir: Command}
	tfBIUOutputChannels(d, 9)
	d.Fields = append(d.Fields,
		Bit(0x48, cabinet.OutUnitTBCAux3),
		Bit(0x49, cabinet.OutUnitFreeCoordStatus),
		Bit(0x4A, cabinet.OutPreemptStatus(3)),
		Bit(0x4B, cabinet.OutPreemptStatus(4)),
		Bit(0x4C, cabinet.OutPreemptStatus(5)),
		Bit(0x4D, cabinet.OutPreemptStatus(6)),
	)
	return d
}

// Type 12: CU -> TF BIU #3 pattern and ring status outputs.
func tfBIUOutputsFrame3() *Def {
	d := &Def{Address: addrTFBIU3, ID: 12, Size: 8, Dir: Command}
	d.Fields = append(d.Fields,
		Bit(0x18, cabinet.OutUnitTimingPlanA),
		Bit(0x19, cabinet.OutUnitTimingPlanB),
		Bit(0x1A, cabinet.OutUnitTimingPlanC),
		Bit(0x1B, cabinet.OutUnitTimingPlanD),
		Bit(0x1C, cabinet.OutUnitOffset1),
		Bit(0x1D, cabinet.OutUnitOffset2),
		Bit(0x1E, cabinet.OutUnitOffset3),
		Bit(0x1F, cabinet.OutUnitAutomaticFlash),
	)
	for n := 1; n <= 4; n++ {
		d.Fields = append(d.Fields, Bit(0x20+n-1, cabinet.OutSpecialFunction(n)))
	}
	d.Fields = append(d.Fields,
		Bit(0x28, cabinet.OutRingStatusBitA(1)),
		Bit(0x29, cabinet.OutRingStatusBitB(1)),
		Bit(0x2A, cabinet.OutRingStatusBitC(1)),
		Bit(0x2B, cabinet.OutRingStatusBitA(2)),
		Bit(0x2C, cabinet.OutRingStatusBitB(2)),
		Bit(0x2D, cabinet.OutRingStatusBitC(2)),
	)
	return d
}

// Type 13: CU -> TF BIU #4 phase state outputs.
func tfBIUOutputsFrame4() *Def {
	d := &Def{Address: addrTFBIU4, ID: 13, Size: 8, Dir: Command}
	for phase := 1; phase <= 8; phase++ {
		d.Fields = append(d.Fields, Bit(0x18+phase-1, cabinet.OutPhaseOn(phase)))
	}
	for phase := 1; phase <= 7; phase++ {
		d.Fields = append(d.Fields, Bit(0x20+phase-1, cabinet.OutPhaseNext(phase)))
	}
	d.Fields = append(d.Fields, Bit(0x28, cabinet.OutPhaseNext(8)))
	for phase := 1; phase <= 7; phase++ {
		d.Fields = append(d.Fields, Bit(0x29+phase-1, cabinet.OutPhaseCheck(phase)))
	}
	d.Fields = append(d.Fields, Bit(0x30, cabinet.OutPhaseCheck(8)))
	return d
}

// Types 24..27: detector reset byte for one DET BIU.
func detectorResetFrame(addr byte, id byte, biu int) *Def {
	return &Def{
		Address: addr, ID: id, Size: 4, Dir: Command,
		Fields: []Field{ByteField(3, cabinet.OutDetectorReset(biu))},
	}
}

// Type 129: MMU -> CU channel status and monitor flags.
func mmuStatusFrame() *Def {
	d := &Def{Address: addrMMU, ID: 129, Size: 13, Dir: Response}
	for ch := 1; ch <= 16; ch++ {
		d.Fields = append(d.Fields,
			Bit(0x18+ch-1, cabinet.MMUChannelGreenWalkStatus(ch)),
			Bit(0x28+ch-1, cabinet.MMUChannelYellowPedClearStatus(ch)),
			Bit(0x38+ch-1, cabinet.MMUChannelRedDoNotWalkStatus(ch)),
		)
	}
	d.Fields = append(d.Fields,
		Bit(0x48, cabinet.MMUControllerVoltMonitor),
		Bit(0x49, cabinet.MMU24VoltMonitorI),
		Bit(0x4A, cabinet.MMU24VoltMonitorII),
		Bit(0x4B, cabinet.MMU24VoltMonitorInhibit),
		Bit(0x4C, cabinet.MMUReset),
		Bit(0x4D, cabinet.MMURedEnable),
		Bit(0x50, cabinet.MMUConflict),
		Bit(0x51, cabinet.MMURedFailure),
		Bit(0x58, cabinet.MMUDiagnosticFailure),
		Bit(0x59, cabinet.MMUMinimumClearanceFailure),
		Bit(0x5A, cabinet.MMUPort1TimeoutFailure),
		Bit(0x5B, cabinet.MMUFailedAndOutputRelayTransferred),
		Bit(0x5C, cabinet.MMUFailedAndImmediateResponse),
		Bit(0x5E, cabinet.MMULocalFlashStatus),
		Bit(0x5F, cabinet.MMUStartupFlashCall),
		Bit(0x60, cabinet.MMUFYAFlashRateFailure),
	)
	return d
}

// Type 131: MMU -> CU programming. The 120 compatibility pairs stream out
// in (1,2)(1,3)..(15,16) order from bit 0x18.
func mmuProgrammingFrame() *Def {
	d := &Def{Address: addrMMU, ID: 131, Size: 23, Dir: Response}
	pos := 0x18
	for i := 1; i < 16; i++ {
		for j := i + 1; j <= 16; j++ {
			d.Fields = append(d.Fields, Bit(pos, cabinet.MMUChannelCompatibility(i, j)))
			pos++
		}
	}
	for ch := 1; ch <= 16; ch++ {
		d.Fields = append(d.Fields, Bit(0x90+ch-1, cabinet.MMUMinimumYellowChangeDisable(ch)))
	}
	for b := 0; b <= 3; b++ {
		d.Fields = append(d.Fields, Bit(0xA0+b, cabinet.MMUMinimumFlashTimeBit(b)))
	}
	d.Fields = append(d.Fields,
		Bit(0xA4, cabinet.MMU24VoltLatch),
		Bit(0xA5, cabinet.MMUCVMFaultMonitorLatch),
	)
	return d
}

// Type 138: TF BIU #1 -> CU inputs.
func tfBIUInputsFrame1() *Def {
	d := &Def{Address: addrTFBIU1, ID: 138, Size: 8, Dir: Response}
	d.Fields = append(d.Fields,
		Bit(0x25, cabinet.InPreemptInput(1)),
		Bit(0x26, cabinet.InPreemptInput(2)),
		Bit(0x27, cabinet.InUnitTestInputA),
		Bit(0x28, cabinet.InUnitTestInputB),
		Bit(0x29, cabinet.InUnitAutomaticFlash),
		Bit(0x2A, cabinet.InUnitDimming),
		Bit(0x2B, cabinet.InUnitManualControlEnable),
		Bit(0x2C, cabinet.InUnitIntervalAdvance),
		Bit(0x2D, cabinet.InUnitExternalMinRecall),
		Bit(0x2E, cabinet.InUnitExternalStart),
		Bit(0x2F, cabinet.InUnitTBCOnline),
		Bit(0x30, cabinet.InRingStopTiming(1)),
		Bit(0x31, cabinet.InRingStopTiming(2)),
		Bit(0x32, cabinet.InRingMax2Selection(1)),
		Bit(0x33, cabinet.InRingMax2Selection(2)),
		Bit(0x34, cabinet.InRingForceOff(1)),
		Bit(0x35, cabinet.InRingForceOff(2)),
		Bit(0x36, cabinet.InUnitCallToNonActuated1),
		Bit(0x37, cabinet.InUnitWalkRestModifier),
	)
	for n := 1; n <= 4; n++ {
		d.Fields = append(d.Fields, Bit(0x38+n-1, cabinet.InPedDetCall(n)))
	}
	return d
}

// Type 139: TF BIU #2 -> CU inputs.
func tfBIUInputsFrame2() *Def {
	d := &Def{Address: addrTFBIU2, ID: 139, Size: 8, Dir: Response}
	d.Fields = append(d.Fields,
		Bit(0x27, cabinet.InPreemptInput(3)),
		Bit(0x28, cabinet.InPreemptInput(4)),
		Bit(0x29, cabinet.InPreemptInput(5)),
		Bit(0x2A, cabinet.InPreemptInput(6)),
		Bit(0x2B, cabinet.InUnitCallToNonActuated2),
		Bit(0x30, cabinet.InRingInhibitMaxTermination(1)),
		Bit(0x31, cabinet.InRingInhibitMaxTermination(2)),
		Bit(0x32, cabinet.InUnitLocalFlash),
		Bit(0x33, cabinet.InUnitCMUMMUFlashStatus),
		Bit(0x34, cabinet.InUnitAlarm1),
		Bit(0x35, cabinet.InUnitAlarm2),
		Bit(0x36, cabinet.InCoordFreeSwitch),
		Bit(0x37, cabinet.InUnitTestInputC),
	)
	for n := 5; n <= 8; n++ {
		d.Fields = append(d.Fields, Bit(0x38+n-5, cabinet.InPedDetCall(n)))
	}
	return d
}

// Type 140: TF BIU #3 -> CU inputs.
func tfBIUInputsFrame3() *Def {
	d := &Def{Address: addrTFBIU3, ID: 140, Size: 8, Dir: Response}
	d.Fields = append(d.Fields,
		Bit(0x1E, cabinet.InRingRedRest(1)),
		Bit(0x1F, cabinet.InRingRedRest(2)),
		Bit(0x20, cabinet.InRingOmitRedClearance(1)),
		Bit(0x21, cabinet.InRingOmitRedClearance(2)),
		Bit(0x22, cabinet.InRingPedestrianRecycle(1)),
		Bit(0x23, cabinet.InRingPedestrianRecycle(2)),
		Bit(0x24, cabinet.InUnitAlternateSequenceA),
		Bit(0x25, cabinet.InUnitAlternateSequenceB),
		Bit(0x26, cabinet.InUnitAlternateSequenceC),
		Bit(0x27, cabinet.InUnitAlternateSequenceD),
	)
	for phase := 1; phase <= 8; phase++ {
		d.Fields = append(d.Fields,
			Bit(0x28+phase-1, cabinet.InPhasePhaseOmit(phase)),
			Bit(0x30+phase-1, cabinet.InPhasePedOmit(phase)),
		)
	}
	d.Fields = append(d.Fields,
		Bit(0x38, cabinet.InUnitTimingPlanA),
		Bit(0x39, cabinet.InUnitTimingPlanB),
		Bit(0x3A, cabinet.InUnitTimingPlanC),
		Bit(0x3B, cabinet.InUnitTimingPlanD),
	)
	return d
}

// Type 141: TF BIU #4 -> CU inputs.
func tfBIUInputsFrame4() *Def {
	d := &Def{Address: addrTFBIU4, ID: 141, Size: 8, Dir: Response}
	for b := 0; b <= 4; b++ {
		d.Fields = append(d.Fields, Bit(0x21+b, cabinet.InUnitSystemAddressBit(b)))
	}
	for phase := 1; phase <= 8; phase++ {
		d.Fields = append(d.Fields, Bit(0x30+phase-1, cabinet.InPhasePedOmit(phase)))
	}
	d.Fields = append(d.Fields,
		Bit(0x38, cabinet.InUnitOffset1),
		Bit(0x39, cabinet.InUnitOffset2),
		Bit(0x3A, cabinet.InUnitOffset3),
	)
	return d
}

// Types 148..151: DET BIU call data, sixteen consecutive detector channels
// per BIU. The per-detector timestamp words stay zero; the cabinet reports
// live calls only.
func detBIUCallDataFrame(addr byte, id byte, firstDet int) *Def {
	d := &Def{Address: addr, ID: id, Size: 39, Dir: Response}
	for i := 0; i < 16; i++ {
		d.Fields = append(d.Fields, Bit(0x118+i, cabinet.InVehicleDetCall(firstDet+i)))
	}
	return d
}
