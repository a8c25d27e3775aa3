package hils

import (
	"encoding/xml"
	"fmt"
	"os"
)

// ConfigError reports why a wiring document was rejected. Nothing is
// committed when one is returned.
type ConfigError struct {
	Path   string
	Reason string
	Err    error
}

func (e *ConfigError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("hils: config %s: %s: %v", e.Path, e.Reason, e.Err)
	}
	return fmt.Sprintf("hils: config %s: %s", e.Path, e.Reason)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// Wiring document schema.

type xmlDocument struct {
	XMLName        xml.Name        `xml:"HilsCI"`
	Device         string          `xml:"device,attr"`
	SimulationStep float64         `xml:"simulation_step,attr"`
	LogSDLCFrames  bool            `xml:"log_sdlc_frames,attr"`
	MMU            *xmlMMU         `xml:"mmu"`
	Loadswitches   []xmlLoadswitch `xml:"loadswitch_wiring"`
	Detectors      []xmlDetector   `xml:"detector_wiring"`
}

type xmlMMU struct {
	ChannelCompatibility string `xml:"channel_compatibility,attr"`
}

type xmlLoadswitch struct {
	Channel   int           `xml:"channel,attr"`
	Movements []xmlMovement `xml:"signal_head>turning_movement"`
}

type xmlMovement struct {
	Approach int `xml:"approach,attr"`
	Turn     int `xml:"turn,attr"`
}

type xmlDetector struct {
	Channel int         `xml:"channel,attr"`
	Sensors []xmlSensor `xml:"sensors>sensor"`
}

type xmlSensor struct {
	ID int `xml:"id,attr"`
}

func readDocument(path string) (*xmlDocument, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, &ConfigError{Path: path, Reason: "read failed", Err: err}
	}
	var doc xmlDocument
	if err := xml.Unmarshal(raw, &doc); err != nil {
		return nil, &ConfigError{Path: path, Reason: "malformed xml", Err: err}
	}
	return &doc, nil
}

// ValidateDocument parses and stages a wiring document without a
// simulator attached, reporting the first structural problem.
func ValidateDocument(path string) error {
	doc, err := readDocument(path)
	if err != nil {
		return err
	}
	_, _, err = stageWirings(path, doc, Callbacks{})
	return err
}

// stageWirings validates the document's bindings onto fresh slices,
// running the simulator verifiers as it goes. The caller commits only
// when this succeeds.
func stageWirings(path string, doc *xmlDocument, cb Callbacks) ([]LoadswitchWiring, []DetectorWiring, error) {
	if doc.SimulationStep <= 0 {
		return nil, nil, &ConfigError{Path: path, Reason: fmt.Sprintf("simulation_step %v must be positive", doc.SimulationStep)}
	}
	if cb.VerifyStep != nil {
		if err := cb.VerifyStep(doc.SimulationStep); err != nil {
			return nil, nil, &ConfigError{Path: path, Reason: fmt.Sprintf("simulation_step %v rejected", doc.SimulationStep), Err: err}
		}
	}

	seenLS := make(map[int]bool, len(doc.Loadswitches))
	loadswitches := make([]LoadswitchWiring, 0, len(doc.Loadswitches))
	for _, ls := range doc.Loadswitches {
		if ls.Channel < 1 || ls.Channel > MaxLoadswitchChannels {
			return nil, nil, &ConfigError{Path: path, Reason: fmt.Sprintf("loadswitch channel %d outside [1,%d]", ls.Channel, MaxLoadswitchChannels)}
		}
		if seenLS[ls.Channel] {
			return nil, nil, &ConfigError{Path: path, Reason: fmt.Sprintf("loadswitch channel %d wired twice", ls.Channel)}
		}
		seenLS[ls.Channel] = true

		w := LoadswitchWiring{Channel: ls.Channel}
		for _, m := range ls.Movements {
			mv := TurningMovement{Approach: m.Approach, Turn: Turn(m.Turn)}
			if !mv.Turn.Valid() {
				return nil, nil, &ConfigError{Path: path, Reason: fmt.Sprintf("loadswitch channel %d: turn %d invalid", ls.Channel, m.Turn)}
			}
			if cb.VerifyMovement != nil {
				if err := cb.VerifyMovement(ls.Channel, mv); err != nil {
					return nil, nil, &ConfigError{Path: path, Reason: fmt.Sprintf("loadswitch channel %d rejected", ls.Channel), Err: err}
				}
			}
			w.Movements = append(w.Movements, mv)
		}
		loadswitches = append(loadswitches, w)
	}

	seenDet := make(map[int]bool, len(doc.Detectors))
	detectors := make([]DetectorWiring, 0, len(doc.Detectors))
	for _, det := range doc.Detectors {
		if det.Channel < 1 || det.Channel > MaxDetectorChannels {
			return nil, nil, &ConfigError{Path: path, Reason: fmt.Sprintf("detector channel %d outside [1,%d]", det.Channel, MaxDetectorChannels)}
		}
		if seenDet[det.Channel] {
			return nil, nil, &ConfigError{Path: path, Reason: fmt.Sprintf("detector channel %d wired twice", det.Channel)}
		}
		seenDet[det.Channel] = true

		w := DetectorWiring{Channel: det.Channel}
		for _, s := range det.Sensors {
			if cb.VerifySensor != nil {
				if err := cb.VerifySensor(det.Channel, s.ID); err != nil {
					return nil, nil, &ConfigError{Path: path, Reason: fmt.Sprintf("detector channel %d sensor %d rejected", det.Channel, s.ID), Err: err}
				}
			}
			w.SensorIDs = append(w.SensorIDs, s.ID)
		}
		detectors = append(detectors, w)
	}

	return loadswitches, detectors, nil
}
