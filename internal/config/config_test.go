package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/danmuck/vtcab/internal/mmu"
	"github.com/danmuck/vtcab/internal/testutil/testlog"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoadDaemonConfigDefaults(t *testing.T) {
	testlog.Start(t)

	path := writeFile(t, "daemon.toml", `wiring = "wiring.xml"`)
	cfg, err := LoadDaemonConfig(path)
	if err != nil {
		t.Fatalf("LoadDaemonConfig: %v", err)
	}
	if cfg.Node != "vtcab" {
		t.Fatalf("node default = %q", cfg.Node)
	}
	if cfg.AdminAddr != ":9400" {
		t.Fatalf("admin_addr default = %q", cfg.AdminAddr)
	}
	if cfg.Wiring != "wiring.xml" {
		t.Fatalf("wiring = %q", cfg.Wiring)
	}
	if cfg.LogFrames {
		t.Fatal("log_frames default should be false")
	}
}

func TestLoadDaemonConfigRejectsMissingWiring(t *testing.T) {
	testlog.Start(t)

	path := writeFile(t, "daemon.toml", `node = "cab-1"`)
	if _, err := LoadDaemonConfig(path); err == nil {
		t.Fatal("config without wiring accepted")
	}
}

func TestLoadDaemonConfigFull(t *testing.T) {
	testlog.Start(t)

	path := writeFile(t, "daemon.toml", `
node = "cab-7"
wiring = "/etc/vtcab/wiring.xml"
admin_addr = ":8088"
cors_origins = ["http://localhost:3000"]
compat_file = "/etc/vtcab/compat.toml"
log_frames = true
`)
	cfg, err := LoadDaemonConfig(path)
	if err != nil {
		t.Fatalf("LoadDaemonConfig: %v", err)
	}
	if cfg.Node != "cab-7" || cfg.AdminAddr != ":8088" || !cfg.LogFrames {
		t.Fatalf("cfg = %+v", cfg)
	}
	if len(cfg.CorsOrigins) != 1 || cfg.CompatFile == "" {
		t.Fatalf("cfg = %+v", cfg)
	}
}

func TestLoadDaemonConfigMissingFile(t *testing.T) {
	testlog.Start(t)

	if _, err := LoadDaemonConfig(filepath.Join(t.TempDir(), "absent.toml")); err == nil {
		t.Fatal("missing file accepted")
	}
}

func TestLoadCompatOverrideHex(t *testing.T) {
	testlog.Start(t)

	path := writeFile(t, "compat.toml", `hex = "00001020A020280202B02300A60218"`)
	ov, err := LoadCompatOverride(path)
	if err != nil {
		t.Fatalf("LoadCompatOverride: %v", err)
	}
	if !ov.HasHex {
		t.Fatal("hex not recognized")
	}
	if ov.Pattern != mmu.DefaultPattern() {
		t.Fatal("hex pattern mismatch")
	}
}

func TestLoadCompatOverridePairs(t *testing.T) {
	testlog.Start(t)

	path := writeFile(t, "compat.toml", `pairs = [[5, 1], [2, 6]]`)
	ov, err := LoadCompatOverride(path)
	if err != nil {
		t.Fatalf("LoadCompatOverride: %v", err)
	}
	if ov.HasHex {
		t.Fatal("hex claimed without being defined")
	}
	if !ov.Pattern.Get(1, 5) || !ov.Pattern.Get(2, 6) {
		t.Fatal("pairs not applied (with normalization)")
	}
}

func TestLoadCompatOverrideRejects(t *testing.T) {
	testlog.Start(t)

	cases := []struct {
		name string
		body string
	}{
		{"empty", ``},
		{"short hex", `hex = "00"`},
		{"bad pair arity", `pairs = [[1]]`},
		{"self pair", `pairs = [[4, 4]]`},
		{"channel out of range", `pairs = [[1, 17]]`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeFile(t, "compat.toml", tc.body)
			if _, err := LoadCompatOverride(path); err == nil {
				t.Fatalf("%s accepted", tc.name)
			}
		})
	}
}

func TestTemplates(t *testing.T) {
	testlog.Start(t)

	for _, kind := range []string{"daemon", "wiring", "compat"} {
		if _, err := Template(kind); err != nil {
			t.Fatalf("Template(%s): %v", kind, err)
		}
	}
	if _, err := Template("ghost"); err == nil {
		t.Fatal("unknown template kind accepted")
	}

	path := filepath.Join(t.TempDir(), "daemon.toml")
	if err := WriteTemplate(path, "daemon", false); err != nil {
		t.Fatalf("WriteTemplate: %v", err)
	}
	if err := WriteTemplate(path, "daemon", false); err == nil {
		t.Fatal("overwrite without force accepted")
	}
	if err := WriteTemplate(path, "daemon", true); err != nil {
		t.Fatalf("forced WriteTemplate: %v", err)
	}

	// The daemon template must load cleanly.
	cfg, err := LoadDaemonConfig(path)
	if err != nil {
		t.Fatalf("template does not load: %v", err)
	}
	if cfg.Wiring != "wiring.xml" {
		t.Fatalf("template wiring = %q", cfg.Wiring)
	}
}
