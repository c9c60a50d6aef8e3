// Package config loads and saves arcadecore's user-facing settings: where
// ROM sets live, per-machine key bindings, audio output tuning, and the
// checksum-verification escape hatch spec.md §7 describes for a front-end
// retrying a ROM load with verification disabled. Settings are TOML,
// decoded and encoded with github.com/BurntSushi/toml, the format the rest
// of this example pack's tooling standardizes on for user-editable files.
package config

import (
	"os"

	"github.com/BurntSushi/toml"

	"github.com/patsoffice/arcadecore/errors"
)

// Config is the complete set of user-configurable options.
type Config struct {
	// RomPaths lists directories searched, in order, for ROM sets (either
	// loose files or MAME-style ZIPs) when a machine is selected by name.
	RomPaths []string `toml:"rom_paths"`

	// Checksums is loaded and saved with the other settings, but ROM
	// loading does not read it: each machine package passes its own fixed
	// verifyChecksums argument to rom.Region.Load.
	Checksums bool `toml:"checksums"`

	// AudioSampleRate overrides a machine's native FillAudio resample
	// target. Zero means "use the machine's own AudioSampleRate()".
	AudioSampleRate int `toml:"audio_sample_rate"`

	// Locale selects the i18n bundle used to localize input button labels,
	// e.g. "en", "fr". Empty means the i18n package's default (English).
	Locale string `toml:"locale"`

	// KeyBindings maps machine name -> logical input name -> key name,
	// e.g. KeyBindings["joust"]["P1 Left"] = "ArrowLeft". Input names are
	// matched against machine.InputButton.Name (post-localization, in the
	// configured Locale), so bindings follow whatever label a front-end
	// actually shows the player.
	KeyBindings map[string]map[string]string `toml:"key_bindings"`
}

// Default returns a Config with conservative built-in defaults: no ROM
// paths configured, checksum verification on, and no sample-rate override.
func Default() Config {
	return Config{
		Checksums:   true,
		KeyBindings: map[string]map[string]string{},
	}
}

// Load reads and decodes a TOML config file at path. A missing file is not
// an error: it returns Default() unchanged, so a first run with no config
// file yet behaves sanely.
func Load(path string) (Config, error) {
	cfg := Default()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, errors.Errorf("config: %v", err)
	}
	if cfg.KeyBindings == nil {
		cfg.KeyBindings = map[string]map[string]string{}
	}
	return cfg, nil
}

// Save encodes cfg as TOML and writes it to path, creating or truncating
// the file as needed.
func Save(cfg Config, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Errorf("config: %v", err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return errors.Errorf("config: %v", err)
	}
	return nil
}

// Binding looks up the configured key name for a machine's logical input
// button, returning ok=false if nothing is bound.
func (c Config) Binding(machineName, inputName string) (key string, ok bool) {
	m, found := c.KeyBindings[machineName]
	if !found {
		return "", false
	}
	key, ok = m[inputName]
	return key, ok
}
