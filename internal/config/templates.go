package config

import (
	"fmt"
	"os"
	"strings"
)

func Template(kind string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "daemon":
		return daemonTemplate, nil
	case "wiring":
		return wiringTemplate, nil
	case "compat":
		return compatTemplate, nil
	default:
		return "", fmt.Errorf("unknown config kind: %s", kind)
	}
}

func WriteTemplate(path, kind string, overwrite bool) error {
	template, err := Template(kind)
	if err != nil {
		return err
	}
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config already exists: %s", path)
		}
	}
	return os.WriteFile(path, []byte(template), 0o600)
}

const daemonTemplate = `node = "vtcab"
wiring = "wiring.xml"
admin_addr = ":9400"
cors_origins = ["http://localhost:3000"]
log_frames = false

# Optional: replace the wiring document's compatibility program.
# compat_file = "compat.toml"
`

const wiringTemplate = `<HilsCI device="loopback" simulation_step="0.1" log_sdlc_frames="false">
  <mmu channel_compatibility="00001020A020280202B02300A60218"/>
  <loadswitch_wiring channel="1">
    <signal_head>
      <turning_movement approach="1" turn="1"/>
      <turning_movement approach="1" turn="0"/>
    </signal_head>
  </loadswitch_wiring>
  <detector_wiring channel="1">
    <sensors>
      <sensor id="101"/>
      <sensor id="102"/>
    </sensors>
  </detector_wiring>
</HilsCI>
`

const compatTemplate = `# Channel compatibility card, as the 30-digit hex program and/or
# explicit channel pairs.
hex = "00001020A020280202B02300A60218"
pairs = [[1, 5], [2, 6]]
`
