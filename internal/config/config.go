package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// DaemonConfig drives vtcabd: where the wiring document lives, which
// device to open, and how the admin surface is exposed.
type DaemonConfig struct {
	Node        string   `toml:"node"`
	Wiring      string   `toml:"wiring"`
	AdminAddr   string   `toml:"admin_addr"`
	CorsOrigins []string `toml:"cors_origins"`
	CompatFile  string   `toml:"compat_file"`
	LogFrames   bool     `toml:"log_frames"`
}

func LoadDaemonConfig(path string) (DaemonConfig, error) {
	var cfg DaemonConfig
	if err := loadToml(path, &cfg); err != nil {
		return DaemonConfig{}, err
	}
	if cfg.Node == "" {
		cfg.Node = "vtcab"
	}
	if cfg.AdminAddr == "" {
		cfg.AdminAddr = ":9400"
	}
	if err := ValidateDaemonConfig(cfg); err != nil {
		return DaemonConfig{}, err
	}
	return cfg, nil
}

func loadToml(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config load failed (%s): %w", path, err)
	}
	if err := toml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("config parse failed (%s): %w", path, err)
	}
	return nil
}

func ValidateDaemonConfig(cfg DaemonConfig) error {
	if strings.TrimSpace(cfg.Node) == "" {
		return fmt.Errorf("daemon config missing node")
	}
	if strings.TrimSpace(cfg.Wiring) == "" {
		return fmt.Errorf("daemon config missing wiring path")
	}
	if strings.TrimSpace(cfg.AdminAddr) == "" {
		return fmt.Errorf("daemon config missing admin_addr")
	}
	return nil
}
