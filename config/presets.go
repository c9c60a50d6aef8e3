package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/patsoffice/arcadecore/errors"
)

// Preset is a named, shareable set of default key bindings for one or more
// machines, the shape a front-end ships under config/presets/*.yaml (a
// "recommended bindings for a cocktail cabinet" pack, say) distinct from a
// single user's own TOML config. Presets are naturally tabular/list data —
// a name plus a flat list of machine/input/key triples — which is why this
// format uses YAML rather than the user config's TOML: list-of-records data
// reads and hand-edits more naturally as YAML than as TOML's table arrays.
type Preset struct {
	Name     string          `yaml:"name"`
	Bindings []PresetBinding `yaml:"bindings"`
}

// PresetBinding is one machine/input/key triple within a Preset.
type PresetBinding struct {
	Machine string `yaml:"machine"`
	Input   string `yaml:"input"`
	Key     string `yaml:"key"`
}

// LoadPreset reads and decodes a preset YAML file.
func LoadPreset(path string) (Preset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Preset{}, errors.Errorf("config: preset %v", err)
	}

	var p Preset
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Preset{}, errors.Errorf("config: preset %v", err)
	}
	return p, nil
}

// Apply merges p's bindings into cfg.KeyBindings, overwriting any existing
// binding for the same machine/input pair. A Config's own TOML bindings
// are expected to be loaded and applied after any preset, so a player's
// explicit choices always win over a shipped preset.
func (p Preset) Apply(cfg *Config) {
	if cfg.KeyBindings == nil {
		cfg.KeyBindings = map[string]map[string]string{}
	}
	for _, b := range p.Bindings {
		m, ok := cfg.KeyBindings[b.Machine]
		if !ok {
			m = map[string]string{}
			cfg.KeyBindings[b.Machine] = m
		}
		m[b.Input] = b.Key
	}
}
