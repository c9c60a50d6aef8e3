// Command arcadecore is a headless CLI front-end for this module's
// machine cores: it loads a ROM set, runs a machine for a fixed number of
// frames, and writes the resulting framebuffer and audio out as plain
// files — enough to drive regression and smoke testing without a GUI
// layer, in the spirit of the teacher's own playMode/regression tooling
// but scoped to this domain's headless core.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/patsoffice/arcadecore/config"
	"github.com/patsoffice/arcadecore/i18n"
	"github.com/patsoffice/arcadecore/logger"
	"github.com/patsoffice/arcadecore/machine/registry"

	// Each machine package self-registers at init(); importing for side
	// effect only is the whole point of the registry pattern.
	_ "github.com/patsoffice/arcadecore/machine/joust"
	_ "github.com/patsoffice/arcadecore/machine/missilecommand"
	_ "github.com/patsoffice/arcadecore/machine/robotron"
	"github.com/patsoffice/arcadecore/rom"
)

var log = logger.NewLogger(256)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "arcadecore:", err)
		log.Tail(os.Stderr, 20)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("arcadecore", flag.ContinueOnError)
	machineName := fs.String("machine", "", "machine to run (see -list)")
	romPath := fs.String("rom", "", "path to a ROM directory or MAME-style ZIP")
	configPath := fs.String("config", "arcadecore.toml", "path to a TOML config file")
	frames := fs.Int("frames", 60, "number of frames to run before exiting")
	outPPM := fs.String("out", "", "write the final frame to this path as a PPM image")
	outPCM := fs.String("audioout", "", "write drained audio to this path as raw signed 16-bit PCM")
	list := fs.Bool("list", false, "list registered machines and exit")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *list {
		for _, e := range registry.All() {
			fmt.Println(e.Name)
		}
		return nil
	}

	if *machineName == "" || *romPath == "" {
		fs.Usage()
		return fmt.Errorf("both -machine and -rom are required (or pass -list)")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}

	entry, ok := registry.Find(*machineName)
	if !ok {
		return fmt.Errorf("unknown machine %q (see -list)", *machineName)
	}

	set, err := loadROMSet(*romPath)
	if err != nil {
		return err
	}

	m, err := entry.Create(set)
	if err != nil {
		return err
	}
	log.Logf(logger.Allow, "arcadecore", "loaded %s from %s", *machineName, *romPath)

	loc := i18n.New(cfg.Locale)
	for _, b := range m.InputMap() {
		log.Logf(logger.Allow, "input", "%s (%s)", b.Name, loc.Label(b.Name))
	}

	var pcm []int16
	for i := 0; i < *frames; i++ {
		m.RunFrame()
		if *outPCM != "" {
			chunk := make([]int16, m.AudioSampleRate())
			n := m.FillAudio(chunk)
			pcm = append(pcm, chunk[:n]...)
		}
	}
	log.Logf(logger.Allow, "arcadecore", "ran %d frames", *frames)

	if *outPCM != "" {
		if err := writePCM(*outPCM, pcm); err != nil {
			return err
		}
	}

	if cfg.AudioSampleRate != 0 && cfg.AudioSampleRate != m.AudioSampleRate() {
		log.Logf(logger.Allow, "arcadecore", "config requests %dHz audio; machine's native rate is %dHz (no resampler wired yet)", cfg.AudioSampleRate, m.AudioSampleRate())
	}

	if *outPPM != "" {
		w, h := m.DisplaySize()
		buf := make([]byte, w*h*3)
		m.RenderFrame(buf)
		if err := writePPM(*outPPM, w, h, buf); err != nil {
			return err
		}
	}

	return nil
}

// loadROMSet builds a rom.Set from either a directory of loose ROM files
// or a MAME-style ZIP, chosen by the path's extension.
func loadROMSet(path string) (*rom.Set, error) {
	if strings.EqualFold(filepath.Ext(path), ".zip") {
		return rom.FromZip(path)
	}
	return rom.FromDirectory(path)
}

// writePCM writes samples as little-endian signed 16-bit PCM, the simplest
// container a regression test or external tool can load without a WAV
// header parser.
func writePCM(path string, samples []int16) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	buf := make([]byte, len(samples)*2)
	for i, s := range samples {
		buf[2*i] = byte(s)
		buf[2*i+1] = byte(s >> 8)
	}
	_, err = f.Write(buf)
	return err
}

// writePPM writes rgb (packed RGB24, row-major) as a binary (P6) PPM file,
// the simplest format that needs no external image codec dependency for a
// one-off regression snapshot.
func writePPM(path string, w, h int, rgb []byte) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := fmt.Fprintf(f, "P6\n%d %d\n255\n", w, h); err != nil {
		return err
	}
	_, err = f.Write(rgb)
	return err
}
