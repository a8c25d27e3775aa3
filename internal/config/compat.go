package config

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/danmuck/vtcab/internal/mmu"
)

// CompatOverride replaces the wiring document's compatibility program.
// The file may give the card either as its 30-digit hex string or as an
// explicit pair list; when both appear the pairs are applied on top of
// the hex image.
type CompatOverride struct {
	Pattern mmu.Pattern
	HasHex  bool
	Pairs   [][2]int
}

type compatFile struct {
	Hex   string  `toml:"hex"`
	Pairs [][]int `toml:"pairs"`
}

func LoadCompatOverride(path string) (CompatOverride, error) {
	var raw compatFile
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return CompatOverride{}, fmt.Errorf("load compat override: %w", err)
	}

	var out CompatOverride
	if meta.IsDefined("hex") {
		p, err := mmu.ParseHex(strings.TrimSpace(raw.Hex))
		if err != nil {
			return CompatOverride{}, fmt.Errorf("compat override %s: %w", path, err)
		}
		out.Pattern = p
		out.HasHex = true
	}

	if meta.IsDefined("pairs") {
		for i, pr := range raw.Pairs {
			if len(pr) != 2 {
				return CompatOverride{}, fmt.Errorf("compat override %s: pairs[%d] needs two channels", path, i)
			}
			lo, hi := pr[0], pr[1]
			if lo > hi {
				lo, hi = hi, lo
			}
			if err := out.Pattern.Set(lo, hi, true); err != nil {
				return CompatOverride{}, fmt.Errorf("compat override %s: pairs[%d]: %w", path, i, err)
			}
			out.Pairs = append(out.Pairs, [2]int{lo, hi})
		}
	}

	if !out.HasHex && len(out.Pairs) == 0 {
		return CompatOverride{}, fmt.Errorf("compat override %s: neither hex nor pairs defined", path)
	}
	return out, nil
}
